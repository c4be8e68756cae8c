package vcs

import (
	"context"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/aezell/branchkit/internal/model"
)

// Fake is an in-memory Client for tests. It keeps just enough state for
// branch switching to be observable, records every call, and fails any
// operation listed in Fail.
type Fake struct {
	mu sync.Mutex

	Branch    string
	StatusOut string
	Refs      map[string]bool
	Ahead     int
	Behind    int
	Subjects  []string
	// Diffs maps joined diff arguments to canned unified diff output.
	Diffs map[string]string
	// Fail maps "op" or "op arg" (e.g. "push", "checkout main") to an error.
	Fail map[string]error

	Calls []string
}

// NewFake returns a Fake on branch with a clean tree and a local ref for
// that branch.
func NewFake(branch string) *Fake {
	return &Fake{
		Branch: branch,
		Refs:   map[string]bool{"refs/heads/" + branch: true},
		Diffs:  map[string]string{},
		Fail:   map[string]error{},
	}
}

// FailOn makes op (optionally qualified by its argument) fail with a
// command error carrying exit code 1.
func (f *Fake) FailOn(key string) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Fail == nil {
		f.Fail = map[string]error{}
	}
	f.Fail[key] = errors.Mark(&CommandError{Args: strings.Fields(key), ExitCode: 1, Stderr: "simulated failure"}, model.ErrCommandFailure)
	return f
}

// CallLog returns the recorded calls.
func (f *Fake) CallLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.Calls...)
}

func (f *Fake) record(op string, args ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	call := strings.TrimSpace(op + " " + strings.Join(args, " "))
	f.Calls = append(f.Calls, call)
	if err, ok := f.Fail[call]; ok {
		return err
	}
	if len(args) > 0 {
		if err, ok := f.Fail[op+" "+args[len(args)-1]]; ok {
			return err
		}
	}
	return f.Fail[op]
}

func (f *Fake) CurrentBranch(ctx context.Context) (string, error) {
	if err := f.record("rev-parse"); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Branch, nil
}

func (f *Fake) Status(ctx context.Context) (string, error) {
	if err := f.record("status"); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.StatusOut, nil
}

func (f *Fake) Fetch(ctx context.Context, remote string) error {
	return f.record("fetch", remote)
}

func (f *Fake) AheadBehind(ctx context.Context, remote, branch string) (int, int, error) {
	if err := f.record("rev-list", remote+"/"+branch+"..."+branch); err != nil {
		return 0, 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Ahead, f.Behind, nil
}

func (f *Fake) LsRemote(ctx context.Context, remote string) error {
	return f.record("ls-remote", remote)
}

func (f *Fake) VerifyRef(ctx context.Context, ref string) (bool, error) {
	if err := f.record("show-ref", ref); err != nil {
		return false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Refs[ref], nil
}

func (f *Fake) Checkout(ctx context.Context, branch string, create bool) error {
	var err error
	if create {
		err = f.record("checkout", "-b", branch)
	} else {
		err = f.record("checkout", branch)
	}
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if create {
		f.Refs["refs/heads/"+branch] = true
	}
	f.Branch = branch
	return nil
}

func (f *Fake) Pull(ctx context.Context, remote, branch string) error {
	if err := f.record("pull", remote, branch); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Behind = 0
	return nil
}

func (f *Fake) AddAll(ctx context.Context) error {
	return f.record("add")
}

func (f *Fake) Commit(ctx context.Context, message string, allowEmpty bool) error {
	if err := f.record("commit", message); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	subject, _, _ := strings.Cut(message, "\n")
	f.Subjects = append([]string{subject}, f.Subjects...)
	f.StatusOut = ""
	return nil
}

func (f *Fake) Push(ctx context.Context, remote, branch string, setUpstream bool) error {
	if err := f.record("push", remote, branch); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Refs["refs/remotes/"+remote+"/"+branch] = true
	return nil
}

func (f *Fake) Log(ctx context.Context, revRange string, limit int) ([]string, error) {
	if err := f.record("log", revRange); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.Subjects
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return append([]string(nil), out...), nil
}

func (f *Fake) Diff(ctx context.Context, args ...string) (string, error) {
	key := strings.Join(args, " ")
	if err := f.record("diff", key); err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Diffs[key], nil
}
