package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/cockroachdb/errors"
)

// Writer persists documents under Dir as YYYY-MM-DD[-N].md.
type Writer struct {
	Dir string
	Now func() time.Time

	// create opens a new file exclusively; nil means createExclusive.
	create func(path string) (io.WriteCloser, error)
}

func createExclusive(path string) (io.WriteCloser, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
}

// NewWriter returns a Writer for dir using the wall clock.
func NewWriter(dir string) *Writer {
	return &Writer{Dir: dir, Now: time.Now}
}

func (w *Writer) now() time.Time {
	if w.Now == nil {
		return time.Now()
	}
	return w.Now()
}

// FileName returns the name for the nth document of a day; n == 0 has no
// suffix.
func FileName(day time.Time, n int) string {
	base := day.Format("2006-01-02")
	if n == 0 {
		return base + ".md"
	}
	return fmt.Sprintf("%s-%d.md", base, n)
}

// NextPath returns the path the next Write would use today, without
// creating anything.
func (w *Writer) NextPath() (string, error) {
	day := w.now()
	for n := 0; ; n++ {
		p := filepath.Join(w.Dir, FileName(day, n))
		_, err := os.Stat(p)
		if os.IsNotExist(err) {
			return p, nil
		}
		if err != nil {
			return "", errors.Wrapf(err, "checking %s", p)
		}
	}
}

// Write stores doc under today's date, creating Dir if needed. Existing
// files are never overwritten: the first free suffix is taken.
func (w *Writer) Write(doc string) (string, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "creating archive directory %s", w.Dir)
	}

	create := w.create
	if create == nil {
		create = createExclusive
	}

	day := w.now()
	for n := 0; ; n++ {
		p := filepath.Join(w.Dir, FileName(day, n))
		f, err := create(p)
		if os.IsExist(err) {
			continue
		}
		if err != nil {
			return "", errors.Wrapf(err, "creating %s", p)
		}
		_, err = io.WriteString(f, doc)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			// A partial document must not hold the day's slot.
			_ = os.Remove(p)
			return "", errors.Wrapf(err, "writing %s", p)
		}
		return p, nil
	}
}
