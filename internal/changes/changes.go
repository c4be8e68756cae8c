// Package changes models the set of paths touched by a piece of work.
package changes

import (
	"github.com/aezell/branchkit/internal/model"
)

// Entry is one changed path.
type Entry struct {
	Path     string
	OldPath  string // set for renames
	Status   model.ChangeStatus
	Category model.Category
}

// NewEntry builds an Entry and assigns its category from the path.
func NewEntry(path string, status model.ChangeStatus) Entry {
	return Entry{Path: path, Status: status, Category: Categorize(path)}
}

// Set is an ordered, path-deduplicated sequence of entries.
type Set struct {
	entries []Entry
	index   map[string]int
}

// NewSet builds a Set from entries. A later entry for a path already in the
// set replaces the earlier one in place.
func NewSet(entries ...Entry) *Set {
	s := &Set{index: make(map[string]int)}
	for _, e := range entries {
		s.Add(e)
	}
	return s
}

// Add inserts or replaces an entry.
func (s *Set) Add(e Entry) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if i, ok := s.index[e.Path]; ok {
		s.entries[i] = e
		return
	}
	s.index[e.Path] = len(s.entries)
	s.entries = append(s.entries, e)
}

// Entries returns the entries in insertion order.
func (s *Set) Entries() []Entry {
	if s == nil {
		return nil
	}
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of distinct paths.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Empty reports whether the set has no entries.
func (s *Set) Empty() bool { return s.Len() == 0 }

// Paths returns the paths in order.
func (s *Set) Paths() []string {
	var out []string
	for _, e := range s.Entries() {
		out = append(out, e.Path)
	}
	return out
}

// HasNewFiles reports whether any entry was added.
func (s *Set) HasNewFiles() bool {
	for _, e := range s.Entries() {
		if e.Status == model.StatusAdded {
			return true
		}
	}
	return false
}

// HasCategory reports whether any entry falls in c.
func (s *Set) HasCategory(c model.Category) bool {
	return s.CategoryCounts()[c] > 0
}

// CategoryCounts returns the number of entries per category.
func (s *Set) CategoryCounts() map[model.Category]int {
	counts := make(map[model.Category]int)
	for _, e := range s.Entries() {
		counts[e.Category]++
	}
	return counts
}

// ByCategory groups entries by category, preserving order within a group.
func (s *Set) ByCategory() map[model.Category][]Entry {
	m := make(map[model.Category][]Entry)
	for _, e := range s.Entries() {
		m[e.Category] = append(m[e.Category], e)
	}
	return m
}

// OnlyCategory reports whether the set is non-empty and every entry is in c.
func (s *Set) OnlyCategory(c model.Category) bool {
	if s.Empty() {
		return false
	}
	for _, e := range s.Entries() {
		if e.Category != c {
			return false
		}
	}
	return true
}
