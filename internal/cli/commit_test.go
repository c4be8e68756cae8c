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

func dirtyDocsFake() *vcs.Fake {
	git := vcs.NewFake("feature/docs")
	git.StatusOut = " M README.md\n"
	git.Diffs["HEAD -M"] = readmeDiff
	return git
}

func TestSmartCommitAcceptsRecommendation(t *testing.T) {
	git := dirtyDocsFake()
	p := prompt.NewScripted("", "")
	a, out, _ := newTestApp(t, git, p)

	require.NoError(t, a.commit(context.Background(), true, false))

	calls := git.CallLog()
	assert.True(t, hasCall(calls, "add"))
	assert.True(t, hasCall(calls, "commit docs: update documentation"))
	assert.False(t, hasCall(calls, "push origin feature/docs"))
	assert.Contains(t, out.String(), "M README.md (documentation)")
	assert.Contains(t, out.String(), "Recommended commit type: docs (90% confidence)")
	assert.Equal(t, []string{`Use "docs: update documentation"? (Y/n)`, "Push after committing? (y/N)"}, p.Asked)
}

func TestSmartCommitDeclineChoosesType(t *testing.T) {
	git := dirtyDocsFake()
	a, out, _ := newTestApp(t, git, prompt.NewScripted("n", "2", "correct fee rounding", "y"))

	require.NoError(t, a.commit(context.Background(), true, false))

	calls := git.CallLog()
	assert.True(t, hasCall(calls, "commit fix: correct fee rounding"))
	assert.True(t, hasCall(calls, "push origin feature/docs"))
	assert.Contains(t, out.String(), "✓ pushed feature/docs to origin")
}

func TestSmartCommitEmptyMessageAborts(t *testing.T) {
	git := dirtyDocsFake()
	a, _, _ := newTestApp(t, git, prompt.NewScripted("n", "1", ""))

	err := a.commit(context.Background(), true, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrUserAborted))
	assert.False(t, hasCall(git.CallLog(), "add"))
}

func TestCommitNothingToCommit(t *testing.T) {
	git := vcs.NewFake("feature/docs")
	a, out, _ := newTestApp(t, git, prompt.Auto{})

	require.NoError(t, a.commit(context.Background(), true, false))
	assert.Contains(t, out.String(), "nothing to commit")
	assert.False(t, hasCall(git.CallLog(), "add"))
}

func TestAutoCommitNonInteractiveTakesDefaults(t *testing.T) {
	git := dirtyDocsFake()
	a, out, _ := newTestApp(t, git, prompt.Auto{})

	require.NoError(t, a.commit(context.Background(), false, false))
	assert.True(t, hasCall(git.CallLog(), "commit docs: update documentation"))
	assert.NotContains(t, out.String(), "Recommended commit type")
}

func TestSmartCommitPushFailureKeepsCommit(t *testing.T) {
	git := dirtyDocsFake().FailOn("push")
	a, out, _ := newTestApp(t, git, prompt.NewScripted("y", "y"))

	require.NoError(t, a.commit(context.Background(), true, false))
	assert.True(t, hasCall(git.CallLog(), "commit docs: update documentation"))
	assert.Contains(t, out.String(), "commit kept, but the push failed")
	assert.Contains(t, out.String(), "git push -u origin feature/docs")
}

func TestCommitFailureCarriesRetryHint(t *testing.T) {
	git := dirtyDocsFake().FailOn("commit")
	a, _, _ := newTestApp(t, git, prompt.Auto{})

	err := a.commit(context.Background(), true, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrCommandFailure))
	assert.Contains(t, errors.FlattenHints(err), `git commit -m "docs: update documentation"`)
}

const configDiff = `diff --git a/config/app.yml b/config/app.yml
index 1111111..2222222 100644
--- a/config/app.yml
+++ b/config/app.yml
@@ -1 +1 @@
-timeout: 5
+timeout: 10
`

// mixedFake has config/app.yml staged and README.md modified but unstaged.
func mixedFake() *vcs.Fake {
	git := vcs.NewFake("feature/settings")
	git.StatusOut = "M  config/app.yml\n M README.md\n"
	git.Diffs["--cached -M"] = configDiff
	git.Diffs["HEAD -M"] = configDiff + readmeDiff
	return git
}

func TestCommitClassifiesEveryCommittedFile(t *testing.T) {
	git := mixedFake()
	a, out, _ := newTestApp(t, git, prompt.Auto{})

	require.NoError(t, a.commit(context.Background(), true, false))

	calls := git.CallLog()
	assert.False(t, hasCall(calls, "diff --cached -M"))
	assert.True(t, hasCall(calls, "add"))
	assert.True(t, hasCall(calls, "commit docs: update documentation"))
	assert.Contains(t, out.String(), "M config/app.yml (configuration)")
	assert.Contains(t, out.String(), "M README.md (documentation)")
}

func TestCommitStagedOnly(t *testing.T) {
	git := mixedFake()
	a, out, _ := newTestApp(t, git, prompt.Auto{})

	require.NoError(t, a.commit(context.Background(), true, true))

	calls := git.CallLog()
	assert.False(t, hasCall(calls, "add"))
	assert.True(t, hasCall(calls, "commit chore: update configuration"))
	assert.Contains(t, out.String(), "M config/app.yml (configuration)")
	assert.NotContains(t, out.String(), "README.md")
}

func TestCommitStagedOnlyWithNothingStaged(t *testing.T) {
	git := dirtyDocsFake()
	a, out, _ := newTestApp(t, git, prompt.Auto{})

	require.NoError(t, a.commit(context.Background(), true, true))
	assert.Contains(t, out.String(), "nothing staged")
	assert.False(t, hasCall(git.CallLog(), "commit docs: update documentation"))
}
