package archive

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aezell/branchkit/internal/changes"
	"github.com/aezell/branchkit/internal/model"
)

var day = time.Date(2025, 1, 1, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return day }

func TestWriteResolvesCollisions(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2025-01-01.md"), []byte("existing"), 0o644))

	w := &Writer{Dir: dir, Now: fixedClock}

	p, err := w.Write("second")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "2025-01-01-1.md"), p)

	p, err = w.Write("third")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "2025-01-01-2.md"), p)

	data, err := os.ReadFile(filepath.Join(dir, "2025-01-01.md"))
	require.NoError(t, err)
	assert.Equal(t, "existing", string(data), "existing archive must not be overwritten")
}

func TestWriteCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "docs", "archives")
	w := &Writer{Dir: dir, Now: fixedClock}

	next, err := w.NextPath()
	require.NoError(t, err)

	p, err := w.Write("# doc\n")
	require.NoError(t, err)
	assert.Equal(t, next, p)
	assert.Equal(t, filepath.Join(dir, "2025-01-01.md"), p)

	next, err = w.NextPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "2025-01-01-1.md"), next)
}

// shortFile is created on disk but fails every write.
type shortFile struct{ f *os.File }

func (s shortFile) Write(p []byte) (int, error) { return 0, errors.New("disk full") }
func (s shortFile) Close() error                { return s.f.Close() }

func TestWriteFailureFreesSlot(t *testing.T) {
	dir := t.TempDir()
	w := &Writer{Dir: dir, Now: fixedClock}
	w.create = func(path string) (io.WriteCloser, error) {
		f, err := createExclusive(path)
		if err != nil {
			return nil, err
		}
		return shortFile{f.(*os.File)}, nil
	}

	_, err := w.Write("# doc\n")
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "2025-01-01.md"))

	w.create = nil
	p, err := w.Write("# doc\n")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "2025-01-01.md"), p)
}

func TestDetectWorkType(t *testing.T) {
	tests := []struct {
		branch, subject string
		want            WorkType
	}{
		{"feature/login", "fix: typo", WorkFeature},
		{"fix/rounding", "", WorkFix},
		{"chore/deps", "", WorkChore},
		{"main", "docs: update readme", WorkDocs},
		{"main", "refactor(api): split handlers", WorkRefactor},
		{"wip", "random words", WorkGeneral},
		{"wip", "style: tidy", WorkGeneral},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectWorkType(tt.branch, tt.subject), "%s %q", tt.branch, tt.subject)
	}
}

func TestCompose(t *testing.T) {
	set := changes.NewSet(
		changes.NewEntry("app/models/event.rb", model.StatusModified),
		changes.NewEntry("spec/models/event_spec.rb", model.StatusAdded),
	)
	doc := Compose(Info{
		Branch:     "feature/event-fees",
		LastCommit: "abc1234 feat: add event fees",
		Subjects:   []string{"feat: add event fees"},
		Set:        set,
		Time:       day,
	})

	for _, want := range []string{
		"# Work Summary - 2025-01-01",
		"- **Work type**: New feature implementation",
		"- **Title**: feat: add event fees",
		"| `app/models/event.rb` | Domain logic | modified |",
		"| `spec/models/event_spec.rb` | Tests | added |",
		"- **Total files changed**: 2",
		"- **Domain logic**: 1",
		"- Test coverage grew alongside the change.",
		"- **Commit**: abc1234 feat: add event fees",
	} {
		assert.Contains(t, doc, want)
	}
	assert.NotContains(t, doc, "Documentation was updated")
}

func TestComposeEmpty(t *testing.T) {
	doc := Compose(Info{Branch: "main", Time: day})
	assert.Contains(t, doc, "No files changed.")
	assert.Contains(t, doc, "- **Latest commit**: unknown")
	assert.Contains(t, doc, "- **Work type**: General work")
}
