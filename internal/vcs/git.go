package vcs

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/aezell/branchkit/internal/logging"
	"github.com/aezell/branchkit/internal/model"
)

// Git runs the git binary in Dir.
type Git struct {
	Dir string
}

// NewGit returns a client rooted at dir. An empty dir means the process
// working directory.
func NewGit(dir string) *Git {
	return &Git{Dir: dir}
}

func (g *Git) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.Dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	code := 0
	if err != nil {
		code = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
	}
	logging.FromContext(ctx).Debug("git",
		zap.Strings("args", args),
		zap.Int("exit_code", code),
	)
	if err != nil {
		cmdErr := &CommandError{Args: args, ExitCode: code, Stderr: stderr.String()}
		if code == -1 {
			cmdErr.Stderr = err.Error()
		}
		return stdout.String(), errors.Mark(cmdErr, model.ErrCommandFailure)
	}
	return stdout.String(), nil
}

func (g *Git) CurrentBranch(ctx context.Context) (string, error) {
	out, err := g.run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (g *Git) Status(ctx context.Context) (string, error) {
	return g.run(ctx, "status", "--porcelain")
}

func (g *Git) Fetch(ctx context.Context, remote string) error {
	_, err := g.run(ctx, "fetch", remote)
	return err
}

func (g *Git) AheadBehind(ctx context.Context, remote, branch string) (int, int, error) {
	out, err := g.run(ctx, "rev-list", "--left-right", "--count", remote+"/"+branch+"..."+branch)
	if err != nil {
		return 0, 0, err
	}
	return parseLeftRight(out)
}

// parseLeftRight reads "<behind>\t<ahead>" from rev-list --left-right --count.
func parseLeftRight(out string) (ahead, behind int, err error) {
	fields := strings.Fields(out)
	if len(fields) != 2 {
		return 0, 0, errors.Newf("unexpected rev-list output %q", strings.TrimSpace(out))
	}
	if behind, err = strconv.Atoi(fields[0]); err != nil {
		return 0, 0, errors.Wrap(err, "parsing behind count")
	}
	if ahead, err = strconv.Atoi(fields[1]); err != nil {
		return 0, 0, errors.Wrap(err, "parsing ahead count")
	}
	return ahead, behind, nil
}

func (g *Git) LsRemote(ctx context.Context, remote string) error {
	_, err := g.run(ctx, "ls-remote", remote, "HEAD")
	return err
}

func (g *Git) VerifyRef(ctx context.Context, ref string) (bool, error) {
	_, err := g.run(ctx, "show-ref", "--verify", "--quiet", ref)
	if err == nil {
		return true, nil
	}
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) && cmdErr.ExitCode == 1 {
		return false, nil
	}
	return false, err
}

func (g *Git) Checkout(ctx context.Context, branch string, create bool) error {
	args := []string{"checkout"}
	if create {
		args = append(args, "-b")
	}
	_, err := g.run(ctx, append(args, branch)...)
	return err
}

func (g *Git) Pull(ctx context.Context, remote, branch string) error {
	_, err := g.run(ctx, "pull", "--ff-only", remote, branch)
	return err
}

func (g *Git) AddAll(ctx context.Context) error {
	_, err := g.run(ctx, "add", "-A")
	return err
}

func (g *Git) Commit(ctx context.Context, message string, allowEmpty bool) error {
	args := []string{"commit"}
	if allowEmpty {
		args = append(args, "--allow-empty")
	}
	_, err := g.run(ctx, append(args, "-m", message)...)
	return err
}

func (g *Git) Push(ctx context.Context, remote, branch string, setUpstream bool) error {
	args := []string{"push"}
	if setUpstream {
		args = append(args, "-u")
	}
	_, err := g.run(ctx, append(args, remote, branch)...)
	return err
}

func (g *Git) Log(ctx context.Context, revRange string, limit int) ([]string, error) {
	args := []string{"log", "--format=%s"}
	if limit > 0 {
		args = append(args, "-n", strconv.Itoa(limit))
	}
	if revRange != "" {
		args = append(args, revRange)
	}
	out, err := g.run(ctx, args...)
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

func (g *Git) Diff(ctx context.Context, args ...string) (string, error) {
	return g.run(ctx, append([]string{"diff"}, args...)...)
}

func splitLines(out string) []string {
	var lines []string
	for _, l := range strings.Split(out, "\n") {
		if l = strings.TrimRight(l, "\r"); strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
