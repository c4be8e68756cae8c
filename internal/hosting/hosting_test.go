package hosting

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aezell/branchkit/internal/model"
	"github.com/aezell/branchkit/internal/repo"
)

func TestGitHubCreate(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v3/repos/acme/widgets/pulls", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"number": 7, "html_url": "https://github.example.com/acme/widgets/pull/7"}`))
	}))
	defer srv.Close()

	gh, err := NewGitHub(context.Background(), GitHubOptions{
		Token: "secret", APIURL: srv.URL + "/", Owner: "acme", Repo: "widgets",
	})
	require.NoError(t, err)

	url, err := gh.Create(context.Background(), PullRequest{
		Title: "feat: login", Body: "## Summary", Head: "feature/login", Base: "main",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://github.example.com/acme/widgets/pull/7", url)
	assert.Equal(t, map[string]string{
		"title": "feat: login", "body": "## Summary", "head": "feature/login", "base": "main",
	}, got)
}

func TestGitHubCreateFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message": "Validation Failed"}`))
	}))
	defer srv.Close()

	gh, err := NewGitHub(context.Background(), GitHubOptions{
		Token: "secret", APIURL: srv.URL + "/", Owner: "acme", Repo: "widgets",
	})
	require.NoError(t, err)

	_, err = gh.Create(context.Background(), PullRequest{Title: "t", Head: "h", Base: "main"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrCommandFailure))
}

func TestNewGitHubRequiresToken(t *testing.T) {
	_, err := NewGitHub(context.Background(), GitHubOptions{Owner: "acme", Repo: "widgets"})
	require.Error(t, err)
	assert.NotEmpty(t, errors.FlattenHints(err))
}

func TestGHCreate(t *testing.T) {
	var gotName string
	var gotArgs []string
	gh := &GH{Run: func(_ context.Context, name string, args ...string) (string, error) {
		gotName, gotArgs = name, args
		return "Creating pull request...\nhttps://github.com/acme/widgets/pull/3\n", nil
	}}

	url, err := gh.Create(context.Background(), PullRequest{Title: "fix: x", Body: "b", Base: "main"})
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/acme/widgets/pull/3", url)
	assert.Equal(t, "gh", gotName)
	assert.Equal(t, []string{"pr", "create", "--title", "fix: x", "--body", "b", "--base", "main"}, gotArgs)
}

func TestGHCreateFailure(t *testing.T) {
	gh := &GH{Run: func(context.Context, string, ...string) (string, error) {
		return "", errors.New("exit status 1")
	}}
	_, err := gh.Create(context.Background(), PullRequest{Title: "t"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrCommandFailure))
}

func TestSelect(t *testing.T) {
	ctx := context.Background()
	gh := repo.Remote{Host: "github.com", Owner: "acme", Name: "widgets"}
	other := repo.Remote{Host: "git.example.com", Owner: "acme", Name: "widgets"}

	tests := []struct {
		name string
		in   Settings
		want string
	}{
		{"auto with token", Settings{Token: "t", Remote: gh}, KindAPI},
		{"auto without token", Settings{Remote: gh}, KindGH},
		{"auto non-github host", Settings{Token: "t", Remote: other}, KindGH},
		{"auto enterprise url", Settings{Token: "t", APIURL: "https://git.example.com/", Remote: other}, KindAPI},
		{"forced gh", Settings{Kind: KindGH, Token: "t", Remote: gh}, KindGH},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Select(ctx, tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Name())
		})
	}

	_, err := Select(ctx, Settings{Kind: "gitlab"})
	assert.Error(t, err)
}
