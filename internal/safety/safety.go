// Package safety decides whether the repository is in a state where a new
// work branch can be started.
package safety

import (
	"fmt"

	"github.com/aezell/branchkit/internal/model"
	"github.com/aezell/branchkit/internal/vcs"
)

// Finding is one issue or warning with the error it corresponds to.
type Finding struct {
	Message string
	Kind    error
}

// Assessment lists blocking issues and non-blocking warnings. It describes
// the state it was computed from and is never updated afterwards.
type Assessment struct {
	Issues   []Finding
	Warnings []Finding
}

// Safe reports whether there are no blocking issues.
func (a Assessment) Safe() bool { return len(a.Issues) == 0 }

// Clean reports whether there are neither issues nor warnings.
func (a Assessment) Clean() bool { return a.Safe() && len(a.Warnings) == 0 }

// Assess classifies a repository state. Unstaged changes and an unreachable
// remote block; staged changes and a trunk that is behind its remote warn.
func Assess(st vcs.RepositoryState, trunk string) Assessment {
	var a Assessment

	if st.Tree.HasUnstaged {
		a.Issues = append(a.Issues, Finding{
			Message: "working tree has uncommitted changes; commit or stash them first",
			Kind:    model.ErrDirtyWorkingTree,
		})
	}
	if !st.RemoteReachable {
		a.Issues = append(a.Issues, Finding{
			Message: "cannot reach the remote repository; check your network connection",
			Kind:    model.ErrRemoteUnreachable,
		})
	}

	if st.Tree.HasStaged {
		a.Warnings = append(a.Warnings, Finding{Message: "there are staged changes"})
	}
	if st.Branch == trunk && st.Sync.Behind > 0 {
		a.Warnings = append(a.Warnings, Finding{
			Message: fmt.Sprintf("%s is %d commit(s) behind the remote", trunk, st.Sync.Behind),
		})
	}
	return a
}
