// Package diff handles parsing git diffs into change sets.
package diff

import (
	"fmt"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
	"github.com/cockroachdb/errors"

	"github.com/aezell/branchkit/internal/changes"
	"github.com/aezell/branchkit/internal/model"
)

// File represents a single file in a diff.
type File struct {
	OldName      string
	NewName      string
	IsNew        bool
	IsDeleted    bool
	IsRenamed    bool
	IsBinary     bool
	AddedLines   int
	DeletedLines int
}

// Name returns the display name for the file.
func (f *File) Name() string {
	if f.IsRenamed {
		return fmt.Sprintf("%s -> %s", f.OldName, f.NewName)
	}
	return f.Path()
}

// Path returns the path the file has after the change.
func (f *File) Path() string {
	if f.IsDeleted || f.NewName == "" {
		return f.OldName
	}
	return f.NewName
}

// Status maps the file's flags to a change status.
func (f *File) Status() model.ChangeStatus {
	switch {
	case f.IsNew:
		return model.StatusAdded
	case f.IsDeleted:
		return model.StatusDeleted
	case f.IsRenamed:
		return model.StatusRenamed
	default:
		return model.StatusModified
	}
}

// DiffSet holds the parsed diff for all files.
type DiffSet struct {
	Files []*File
}

// Stats returns aggregate statistics.
func (ds *DiffSet) Stats() (files, added, deleted int) {
	files = len(ds.Files)
	for _, f := range ds.Files {
		added += f.AddedLines
		deleted += f.DeletedLines
	}
	return
}

// Entry returns the file as a categorised change entry.
func (f *File) Entry() changes.Entry {
	e := changes.NewEntry(f.Path(), f.Status())
	if f.IsRenamed {
		e.OldPath = f.OldName
	}
	return e
}

// ChangeSet converts the diff into a change set.
func (ds *DiffSet) ChangeSet() *changes.Set {
	set := changes.NewSet()
	for _, f := range ds.Files {
		set.Add(f.Entry())
	}
	return set
}

// Parse reads a unified diff string and returns a DiffSet.
func Parse(raw string) (*DiffSet, error) {
	if strings.TrimSpace(raw) == "" {
		return &DiffSet{}, nil
	}

	parsed, _, err := gitdiff.Parse(strings.NewReader(raw))
	if err != nil {
		return nil, errors.Wrap(err, "parsing diff")
	}

	ds := &DiffSet{}
	for _, f := range parsed {
		df := &File{
			OldName:   f.OldName,
			NewName:   f.NewName,
			IsNew:     f.IsNew,
			IsDeleted: f.IsDelete,
			IsRenamed: f.IsRename,
			IsBinary:  f.IsBinary,
		}

		for _, frag := range f.TextFragments {
			for _, line := range frag.Lines {
				switch line.Op {
				case gitdiff.OpAdd:
					df.AddedLines++
				case gitdiff.OpDelete:
					df.DeletedLines++
				}
			}
		}

		ds.Files = append(ds.Files, df)
	}

	return ds, nil
}
