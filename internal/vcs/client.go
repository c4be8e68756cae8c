// Package vcs wraps the git command surface and inspects repository state.
package vcs

import (
	"context"
	"fmt"
	"strings"
)

// Client is the set of git operations branchkit issues. Each call is a
// one-shot external command; stdout and the exit code are the whole contract.
type Client interface {
	CurrentBranch(ctx context.Context) (string, error)
	// Status returns `git status --porcelain` output.
	Status(ctx context.Context) (string, error)
	Fetch(ctx context.Context, remote string) error
	// AheadBehind counts commits on branch but not on remote/branch (ahead)
	// and the reverse (behind).
	AheadBehind(ctx context.Context, remote, branch string) (ahead, behind int, err error)
	// LsRemote probes the remote for connectivity.
	LsRemote(ctx context.Context, remote string) error
	// VerifyRef reports whether a fully qualified ref exists.
	VerifyRef(ctx context.Context, ref string) (bool, error)
	Checkout(ctx context.Context, branch string, create bool) error
	// Pull fast-forwards the current branch from remote/branch.
	Pull(ctx context.Context, remote, branch string) error
	AddAll(ctx context.Context) error
	Commit(ctx context.Context, message string, allowEmpty bool) error
	Push(ctx context.Context, remote, branch string, setUpstream bool) error
	// Log returns commit subjects, newest first. An empty revRange means HEAD.
	Log(ctx context.Context, revRange string, limit int) ([]string, error)
	// Diff returns unified diff output for the given diff arguments.
	Diff(ctx context.Context, args ...string) (string, error)
}

// CommandError describes a git invocation that exited non-zero.
type CommandError struct {
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("git %s: exit status %d", strings.Join(e.Args, " "), e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

// Command returns the failing command line.
func (e *CommandError) Command() string {
	return "git " + strings.Join(e.Args, " ")
}
