package hosting

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/google/go-github/v57/github"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/aezell/branchkit/internal/logging"
	"github.com/aezell/branchkit/internal/model"
)

// GitHubOptions configures the REST creator. APIURL is only needed for
// GitHub Enterprise.
type GitHubOptions struct {
	Token  string
	APIURL string
	Owner  string
	Repo   string
}

// GitHub creates pull requests through the REST API.
type GitHub struct {
	client *github.Client
	owner  string
	repo   string
}

// NewGitHub returns an authenticated REST creator.
func NewGitHub(ctx context.Context, opts GitHubOptions) (*GitHub, error) {
	if opts.Token == "" {
		return nil, errors.WithHint(
			errors.New("GitHub token not set"),
			"set GITHUB_TOKEN, or use pr_creator: gh",
		)
	}
	if opts.Owner == "" || opts.Repo == "" {
		return nil, errors.New("GitHub owner and repository are required")
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token})
	client := github.NewClient(oauth2.NewClient(ctx, ts))
	if opts.APIURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(opts.APIURL, opts.APIURL)
		if err != nil {
			return nil, errors.Wrapf(err, "configuring GitHub API URL %s", opts.APIURL)
		}
	}
	return &GitHub{client: client, owner: opts.Owner, repo: opts.Repo}, nil
}

func (g *GitHub) Name() string { return KindAPI }

func (g *GitHub) Create(ctx context.Context, pr PullRequest) (string, error) {
	created, resp, err := g.client.PullRequests.Create(ctx, g.owner, g.repo, &github.NewPullRequest{
		Title: github.String(pr.Title),
		Body:  github.String(pr.Body),
		Head:  github.String(pr.Head),
		Base:  github.String(pr.Base),
	})
	if err != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		logging.FromContext(ctx).Debug("github create pull request failed",
			zap.String("repo", g.owner+"/"+g.repo),
			zap.Int("status", status),
			zap.Error(err),
		)
		return "", errors.Mark(
			errors.Wrapf(err, "creating pull request %s -> %s", pr.Head, pr.Base),
			model.ErrCommandFailure,
		)
	}
	return created.GetHTMLURL(), nil
}
