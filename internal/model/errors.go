package model

import "github.com/cockroachdb/errors"

// Error taxonomy. Concrete failures are marked with one of these so callers
// can classify them with errors.Is.
var (
	ErrNotARepository     = errors.New("not a git repository")
	ErrDirtyWorkingTree   = errors.New("working tree has unstaged changes")
	ErrRemoteUnreachable  = errors.New("remote is unreachable")
	ErrBranchNameConflict = errors.New("branch already exists")
	ErrUserAborted        = errors.New("aborted by operator")
	ErrCommandFailure     = errors.New("git command failed")

	ErrInvalidBranchType = errors.New("invalid branch type")
	ErrEmptySlug         = errors.New("task description yields an empty branch name")
	ErrNoChanges         = errors.New("no changes")
	ErrProtectedBranch   = errors.New("refusing to operate on a protected branch")
)
