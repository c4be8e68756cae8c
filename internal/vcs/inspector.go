package vcs

import (
	"context"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/aezell/branchkit/internal/changes"
	"github.com/aezell/branchkit/internal/diff"
	"github.com/aezell/branchkit/internal/logging"
	"github.com/aezell/branchkit/internal/model"
)

// SyncStatus is the result of comparing a branch with its remote tracking ref.
type SyncStatus struct {
	Ahead        int
	Behind       int
	RemoteExists bool
}

// RepositoryState is a snapshot of the repository. It is computed on demand
// and must be recomputed after any mutating step.
type RepositoryState struct {
	Branch          string
	Tree            model.TreeStatus
	Sync            SyncStatus
	RemoteReachable bool
}

// RefScope selects local or remote-tracking refs.
type RefScope int

const (
	Local RefScope = iota
	Remote
)

// Scope selects which changes ChangeSet reports.
type Scope int

const (
	// ScopeStaged reports the index, falling back to ScopeAll when nothing
	// is staged.
	ScopeStaged Scope = iota
	// ScopeAll reports everything modified since the last commit, including
	// untracked files.
	ScopeAll
)

// Inspector answers read-only questions about the repository.
type Inspector struct {
	client Client
	remote string
}

// NewInspector returns an Inspector that compares against remote.
func NewInspector(client Client, remote string) *Inspector {
	if remote == "" {
		remote = "origin"
	}
	return &Inspector{client: client, remote: remote}
}

// Remote returns the remote name the inspector compares against.
func (i *Inspector) Remote() string { return i.remote }

// CurrentBranch returns the checked-out branch name.
func (i *Inspector) CurrentBranch(ctx context.Context) (string, error) {
	name, err := i.client.CurrentBranch(ctx)
	if err != nil {
		return "", errors.Mark(errors.Wrap(err, "reading current branch"), model.ErrNotARepository)
	}
	if name == "" {
		return "", errors.Mark(errors.New("no branch is checked out"), model.ErrNotARepository)
	}
	return name, nil
}

// WorkingTreeStatus summarizes `git status --porcelain`.
func (i *Inspector) WorkingTreeStatus(ctx context.Context) (model.TreeStatus, error) {
	out, err := i.client.Status(ctx)
	if err != nil {
		return model.TreeStatus{}, errors.Mark(errors.Wrap(err, "reading working tree status"), model.ErrNotARepository)
	}
	return ParseStatus(out), nil
}

// ParseStatus reads porcelain v1 output. The first column is the index, the
// second the working tree; untracked files count as unstaged.
func ParseStatus(out string) model.TreeStatus {
	var st model.TreeStatus
	for _, line := range splitLines(out) {
		if len(line) < 2 {
			continue
		}
		x, y := line[0], line[1]
		if x == '?' && y == '?' {
			st.HasUnstaged = true
			continue
		}
		if x != ' ' && x != '!' {
			st.HasStaged = true
		}
		if y != ' ' && y != '!' {
			st.HasUnstaged = true
		}
	}
	st.Clean = !st.HasStaged && !st.HasUnstaged
	return st
}

// RemoteSync fetches the remote and counts commits ahead of and behind
// remote/branch. A missing tracking ref is not an error: the branch simply
// has not been pushed yet.
func (i *Inspector) RemoteSync(ctx context.Context, branch string) (SyncStatus, error) {
	if err := i.client.Fetch(ctx, i.remote); err != nil {
		return SyncStatus{}, errors.Mark(errors.Wrapf(err, "fetching %s", i.remote), model.ErrRemoteUnreachable)
	}

	exists, err := i.client.VerifyRef(ctx, "refs/remotes/"+i.remote+"/"+branch)
	if err != nil {
		return SyncStatus{}, errors.Mark(errors.Wrapf(err, "verifying %s/%s", i.remote, branch), model.ErrRemoteUnreachable)
	}
	if !exists {
		logging.FromContext(ctx).Debug("no remote tracking ref", zap.String("branch", branch))
		return SyncStatus{}, nil
	}

	ahead, behind, err := i.client.AheadBehind(ctx, i.remote, branch)
	if err != nil {
		return SyncStatus{}, errors.Mark(errors.Wrapf(err, "comparing %s with %s/%s", branch, i.remote, branch), model.ErrRemoteUnreachable)
	}
	return SyncStatus{Ahead: ahead, Behind: behind, RemoteExists: true}, nil
}

// RemoteReachable probes the remote without touching local refs.
func (i *Inspector) RemoteReachable(ctx context.Context) bool {
	return i.client.LsRemote(ctx, i.remote) == nil
}

// BranchExists reports whether name exists locally or on the remote.
func (i *Inspector) BranchExists(ctx context.Context, name string, scope RefScope) (bool, error) {
	ref := "refs/heads/" + name
	if scope == Remote {
		ref = "refs/remotes/" + i.remote + "/" + name
	}
	return i.client.VerifyRef(ctx, ref)
}

// ChangeSet returns the changes in scope.
func (i *Inspector) ChangeSet(ctx context.Context, scope Scope) (*changes.Set, error) {
	if scope == ScopeStaged {
		set, err := i.diffSet(ctx, "--cached", "-M")
		if err != nil {
			return nil, err
		}
		if !set.Empty() {
			return set, nil
		}
	}

	set, err := i.diffSet(ctx, "HEAD", "-M")
	if err != nil {
		// No HEAD yet; everything in the index is new.
		set, err = i.diffSet(ctx, "--cached", "-M")
		if err != nil {
			return nil, err
		}
	}

	status, err := i.client.Status(ctx)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "reading working tree status"), model.ErrNotARepository)
	}
	for _, p := range untrackedPaths(status) {
		set.Add(changes.NewEntry(p, model.StatusAdded))
	}
	return set, nil
}

// RangeChangeSet returns the changes between two refs.
func (i *Inspector) RangeChangeSet(ctx context.Context, from, to string) (*changes.Set, error) {
	return i.diffSet(ctx, "-M", fmt.Sprintf("%s...%s", from, to))
}

func (i *Inspector) diffSet(ctx context.Context, args ...string) (*changes.Set, error) {
	raw, err := i.client.Diff(ctx, args...)
	if err != nil {
		return nil, errors.Wrap(err, "reading diff")
	}
	ds, err := diff.Parse(raw)
	if err != nil {
		return nil, err
	}
	return ds.ChangeSet(), nil
}

func untrackedPaths(status string) []string {
	var paths []string
	for _, line := range splitLines(status) {
		if strings.HasPrefix(line, "?? ") {
			paths = append(paths, strings.Trim(line[3:], `"`))
		}
	}
	return paths
}

// RecentSubjects returns up to n commit subjects from HEAD, newest first.
// A repository without commits yields none.
func (i *Inspector) RecentSubjects(ctx context.Context, n int) []string {
	return i.RangeSubjects(ctx, "", n)
}

// RangeSubjects returns commit subjects in revRange, newest first.
func (i *Inspector) RangeSubjects(ctx context.Context, revRange string, n int) []string {
	subjects, err := i.client.Log(ctx, revRange, n)
	if err != nil {
		logging.FromContext(ctx).Debug("reading commit log", zap.String("range", revRange), zap.Error(err))
		return nil
	}
	return subjects
}

// State gathers a RepositoryState. Sync counts are only computed while the
// trunk branch is checked out, where falling behind matters before branching.
func (i *Inspector) State(ctx context.Context, trunk string) (RepositoryState, error) {
	var st RepositoryState
	var err error

	if st.Branch, err = i.CurrentBranch(ctx); err != nil {
		return st, err
	}
	if st.Tree, err = i.WorkingTreeStatus(ctx); err != nil {
		return st, err
	}

	st.RemoteReachable = i.RemoteReachable(ctx)
	// Off trunk the counts stay zero even when trunk is behind: the
	// workflow checks out and pulls trunk before branching either way.
	if st.RemoteReachable && st.Branch == trunk {
		sync, err := i.RemoteSync(ctx, trunk)
		if err != nil {
			logging.FromContext(ctx).Warn("remote sync failed", zap.Error(err))
			st.RemoteReachable = false
		} else {
			st.Sync = sync
		}
	}
	return st, nil
}
