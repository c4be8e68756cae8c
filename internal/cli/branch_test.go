package cli

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aezell/branchkit/internal/model"
	"github.com/aezell/branchkit/internal/prompt"
	"github.com/aezell/branchkit/internal/vcs"
)

func TestCreateBranchCLI(t *testing.T) {
	git := vcs.NewFake("main")
	a, out, _ := newTestApp(t, git, prompt.Auto{})

	require.NoError(t, a.createBranchCLI(context.Background(), "feature", "Add User Login!", false))

	assert.Equal(t, "feature/add-user-login", git.Branch)
	calls := git.CallLog()
	assert.True(t, hasCall(calls, "pull origin main"))
	assert.True(t, hasCall(calls, "checkout -b feature/add-user-login"))
	assert.True(t, hasCall(calls, "commit chore: initialize feature/add-user-login branch"))
	assert.True(t, hasCall(calls, "push origin feature/add-user-login"))
	assert.Contains(t, out.String(), "✓ safety check passed")
	assert.Contains(t, out.String(), "✓ created branch feature/add-user-login and pushed it")
	assert.NotContains(t, out.String(), "Next steps")
}

func TestCreateBranchCLIInvalidType(t *testing.T) {
	git := vcs.NewFake("main")
	a, _, _ := newTestApp(t, git, prompt.Auto{})

	err := a.createBranchCLI(context.Background(), "hotfix", "rounding", false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrInvalidBranchType))
	assert.Contains(t, errors.FlattenHints(err), "feature, fix, refactor, docs, test, chore")
	assert.Empty(t, git.CallLog())
}

func TestWorkStartCLIShowsNextSteps(t *testing.T) {
	git := vcs.NewFake("main")
	a, out, _ := newTestApp(t, git, prompt.Auto{})

	require.NoError(t, a.createBranchCLI(context.Background(), "docs", "Setup guide", true))
	assert.Equal(t, "docs/setup-guide", git.Branch)
	assert.Contains(t, out.String(), "Next steps")
	assert.Contains(t, out.String(), "branchkit smart-commit")
}

func TestCreateBranchInteractive(t *testing.T) {
	git := vcs.NewFake("main")
	p := prompt.NewScripted("2", "Rounding fees", "y")
	a, _, _ := newTestApp(t, git, p)

	require.NoError(t, a.createBranchInteractive(context.Background(), false))
	assert.Equal(t, "fix/rounding-fees", git.Branch)
	assert.Equal(t, []string{"Branch type", "Task name", "Create branch fix/rounding-fees? (Y/n)"}, p.Asked)
}

func TestCreateBranchInteractiveEmptyTask(t *testing.T) {
	git := vcs.NewFake("main")
	a, _, _ := newTestApp(t, git, prompt.NewScripted("1", "  "))

	err := a.createBranchInteractive(context.Background(), false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrUserAborted))
	assert.Empty(t, git.CallLog())
}

func TestWorkStartSuggestsType(t *testing.T) {
	git := vcs.NewFake("main")
	git.Subjects = []string{"fix: rounding bug in fees"}
	a, out, _ := newTestApp(t, git, prompt.NewScripted("", "Fee totals", ""))

	require.NoError(t, a.createBranchInteractive(context.Background(), true))
	assert.Contains(t, out.String(), "Suggested branch type: fix")
	assert.Equal(t, "fix/fee-totals", git.Branch)
}

func TestStartBranchUnsafeNonInteractive(t *testing.T) {
	git := vcs.NewFake("main")
	git.StatusOut = " M app/models/event.rb\n"
	a, out, _ := newTestApp(t, git, prompt.Auto{})

	err := a.createBranchCLI(context.Background(), "feature", "login", false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrUserAborted))
	assert.True(t, errors.Is(err, errReported))
	assert.Contains(t, out.String(), "✗ working tree has uncommitted changes")
	assert.Contains(t, out.String(), "✗ failed during init")
	assert.False(t, hasCall(git.CallLog(), "checkout -b feature/login"))
}

func TestStartBranchPushFailureIsPartial(t *testing.T) {
	git := vcs.NewFake("main").FailOn("push")
	a, out, _ := newTestApp(t, git, prompt.Auto{})

	require.NoError(t, a.createBranchCLI(context.Background(), "chore", "bump deps", false))
	assert.Equal(t, "chore/bump-deps", git.Branch)
	assert.Contains(t, out.String(), "finish with: git push -u origin chore/bump-deps")
}
