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

func loginBranchFake(pushed bool) *vcs.Fake {
	git := vcs.NewFake("feature/login")
	git.Subjects = []string{"feat: add login form", "chore: initialize feature/login branch"}
	git.Diffs["-M main...feature/login"] = loginDiff
	if pushed {
		git.Refs["refs/remotes/origin/feature/login"] = true
	}
	return git
}

func TestAutoPRCreate(t *testing.T) {
	git := loginBranchFake(true)
	a, out, creator := newTestApp(t, git, prompt.Auto{})

	require.NoError(t, a.createPR(context.Background(), false))

	require.True(t, creator.called)
	assert.Equal(t, "feat: add login form", creator.got.Title)
	assert.Equal(t, "feature/login", creator.got.Head)
	assert.Equal(t, "main", creator.got.Base)
	assert.Contains(t, creator.got.Body, "## Summary")
	assert.Contains(t, creator.got.Body, "app/views/login.html.erb")
	assert.Equal(t, "acme", creator.remote.Owner)
	assert.Equal(t, "widgets", creator.remote.Name)
	assert.True(t, hasCall(git.CallLog(), "log main..feature/login"))
	assert.Contains(t, out.String(), "Title: feat: add login form")
	assert.Contains(t, out.String(), "pull request created via fake: https://github.com/acme/widgets/pull/1")
}

func TestAutoPRCreateDryRun(t *testing.T) {
	git := loginBranchFake(false)
	a, out, creator := newTestApp(t, git, prompt.Auto{})

	require.NoError(t, a.createPR(context.Background(), true))
	assert.False(t, creator.called)
	assert.Contains(t, out.String(), "## Summary")
	assert.Contains(t, out.String(), "dry run: pull request not created")
}

func TestAutoPRCreateRequiresPushedBranch(t *testing.T) {
	git := loginBranchFake(false)
	a, _, creator := newTestApp(t, git, prompt.Auto{})

	err := a.createPR(context.Background(), false)
	require.Error(t, err)
	assert.Contains(t, errors.FlattenHints(err), "branchkit auto-push")
	assert.False(t, creator.called)
}

func TestAutoPRCreateDeclined(t *testing.T) {
	git := loginBranchFake(true)
	a, _, creator := newTestApp(t, git, prompt.NewScripted("n"))

	err := a.createPR(context.Background(), false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrUserAborted))
	assert.False(t, creator.called)
}

func TestAutoPRCreateWithoutCommits(t *testing.T) {
	git := vcs.NewFake("feature/login")
	a, _, creator := newTestApp(t, git, prompt.Auto{})

	err := a.createPR(context.Background(), true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrNoChanges))
	assert.False(t, creator.called)
}

func TestAutoPRCreateFromTrunk(t *testing.T) {
	git := vcs.NewFake("main")
	a, _, creator := newTestApp(t, git, prompt.Auto{})

	err := a.createPR(context.Background(), false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrProtectedBranch))
	assert.False(t, creator.called)
}
