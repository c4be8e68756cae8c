// Package archive writes dated work-summary documents.
package archive

import (
	"strings"

	"github.com/aezell/branchkit/internal/content"
)

// WorkType is the kind of work a branch carried out.
type WorkType int

const (
	WorkGeneral WorkType = iota
	WorkFeature
	WorkFix
	WorkRefactor
	WorkDocs
	WorkTest
	WorkChore
)

func (w WorkType) String() string {
	switch w {
	case WorkFeature:
		return "New feature implementation"
	case WorkFix:
		return "Bug fix"
	case WorkRefactor:
		return "Refactoring"
	case WorkDocs:
		return "Documentation update"
	case WorkTest:
		return "Test implementation"
	case WorkChore:
		return "Environment and tooling improvements"
	default:
		return "General work"
	}
}

var branchPrefixes = []struct {
	prefix string
	work   WorkType
}{
	{"feature/", WorkFeature},
	{"fix/", WorkFix},
	{"refactor/", WorkRefactor},
	{"docs/", WorkDocs},
	{"test/", WorkTest},
	{"chore/", WorkChore},
}

var commitPrefixes = []struct {
	prefix string
	work   WorkType
}{
	{"feat", WorkFeature},
	{"fix", WorkFix},
	{"docs", WorkDocs},
	{"refactor", WorkRefactor},
	{"test", WorkTest},
	{"chore", WorkChore},
}

// DetectWorkType maps the branch prefix to a work type, falling back to the
// conventional prefix of the latest commit subject.
func DetectWorkType(branch, latestSubject string) WorkType {
	for _, p := range branchPrefixes {
		if strings.HasPrefix(branch, p.prefix) {
			return p.work
		}
	}
	prefix, _, ok := content.ParseSubject(latestSubject)
	if !ok {
		return WorkGeneral
	}
	for _, p := range commitPrefixes {
		if prefix == p.prefix {
			return p.work
		}
	}
	return WorkGeneral
}
