package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/aezell/branchkit/internal/config"
	"github.com/aezell/branchkit/internal/hosting"
	"github.com/aezell/branchkit/internal/prompt"
	"github.com/aezell/branchkit/internal/render"
	"github.com/aezell/branchkit/internal/repo"
	"github.com/aezell/branchkit/internal/vcs"
)

const readmeDiff = `diff --git a/README.md b/README.md
index abc1234..def5678 100644
--- a/README.md
+++ b/README.md
@@ -1 +1 @@
-# old
+# new
`

const loginDiff = `diff --git a/app/views/login.html.erb b/app/views/login.html.erb
new file mode 100644
index 0000000..e69de29
--- /dev/null
+++ b/app/views/login.html.erb
@@ -0,0 +1 @@
+<form></form>
`

type fakeMeta struct {
	url  string
	head string
}

func (m fakeMeta) RemoteURL(name string) (string, error) {
	if m.url == "" {
		return "", errors.Newf("no remote %q", name)
	}
	return m.url, nil
}

func (m fakeMeta) HeadLine() (string, error) {
	if m.head == "" {
		return "", errors.New("no commits")
	}
	return m.head, nil
}

type fakeCreator struct {
	got    hosting.PullRequest
	called bool
	remote repo.Remote
}

func (c *fakeCreator) Create(_ context.Context, pr hosting.PullRequest) (string, error) {
	c.got, c.called = pr, true
	return "https://github.com/acme/widgets/pull/1", nil
}

func (c *fakeCreator) Name() string { return "fake" }

var testDay = time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

// newTestApp returns an app over git answering with p. Output is captured
// without colour.
func newTestApp(t *testing.T, git *vcs.Fake, p prompt.Prompter) (*app, *bytes.Buffer, *fakeCreator) {
	t.Helper()
	var out bytes.Buffer
	creator := &fakeCreator{}
	cfg := config.Default()
	a := &app{
		cfg:       cfg,
		git:       git,
		inspector: vcs.NewInspector(git, cfg.Remote),
		prompter:  p,
		out:       render.New(&out, false),
		root:      t.TempDir(),
		meta:      fakeMeta{url: "git@github.com:acme/widgets.git", head: "abc1234 feat: add login form"},
		creator: func(_ context.Context, remote repo.Remote) (hosting.Creator, error) {
			creator.remote = remote
			return creator, nil
		},
		now: func() time.Time { return testDay },
	}
	return a, &out, creator
}

func hasCall(calls []string, want string) bool {
	for _, c := range calls {
		if c == want {
			return true
		}
	}
	return false
}
