package hosting

import (
	"bytes"
	"context"
	"os/exec"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/aezell/branchkit/internal/logging"
	"github.com/aezell/branchkit/internal/model"
)

// Runner executes a program and returns its stdout.
type Runner func(ctx context.Context, name string, args ...string) (string, error)

// GH creates pull requests with the gh CLI.
type GH struct {
	Run Runner
}

// NewGH returns a creator that shells out to gh.
func NewGH() *GH {
	return &GH{Run: execRunner}
}

func (g *GH) Name() string { return KindGH }

func (g *GH) Create(ctx context.Context, pr PullRequest) (string, error) {
	args := []string{"pr", "create", "--title", pr.Title, "--body", pr.Body}
	if pr.Base != "" {
		args = append(args, "--base", pr.Base)
	}
	if pr.Head != "" {
		args = append(args, "--head", pr.Head)
	}
	out, err := g.Run(ctx, "gh", args...)
	if err != nil {
		return "", errors.WithHint(
			errors.Mark(errors.Wrap(err, "gh pr create"), model.ErrCommandFailure),
			"install and authenticate the GitHub CLI (gh auth login), or set GITHUB_TOKEN",
		)
	}
	return lastLine(out), nil
}

func execRunner(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	logging.FromContext(ctx).Debug("exec",
		zap.String("name", name),
		zap.Strings("args", args[:min(len(args), 2)]),
		zap.Bool("ok", err == nil),
	)
	if err != nil {
		if msg := bytes.TrimSpace(stderr.Bytes()); len(msg) > 0 {
			return stdout.String(), errors.Newf("%s: %s", err, msg)
		}
		return stdout.String(), err
	}
	return stdout.String(), nil
}
