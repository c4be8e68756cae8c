// Package hosting opens pull requests on the code host.
package hosting

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/aezell/branchkit/internal/repo"
)

// PullRequest is what gets submitted.
type PullRequest struct {
	Title string
	Body  string
	Head  string
	Base  string
}

// Creator submits a pull request and returns its URL.
type Creator interface {
	Create(ctx context.Context, pr PullRequest) (string, error)
	Name() string
}

// Kinds accepted by Select.
const (
	KindAuto = "auto"
	KindAPI  = "api"
	KindGH   = "gh"
)

// Settings chooses and configures a Creator.
type Settings struct {
	Kind   string
	Token  string
	APIURL string
	Remote repo.Remote
}

// Select returns the creator for s. Auto prefers the REST API when a token is
// available and falls back to the gh CLI otherwise.
func Select(ctx context.Context, s Settings) (Creator, error) {
	kind := s.Kind
	if kind == "" || kind == KindAuto {
		kind = KindGH
		if s.Token != "" && (s.Remote.IsGitHub() || s.APIURL != "") {
			kind = KindAPI
		}
	}

	switch kind {
	case KindAPI:
		return NewGitHub(ctx, GitHubOptions{
			Token:  s.Token,
			APIURL: s.APIURL,
			Owner:  s.Remote.Owner,
			Repo:   s.Remote.Name,
		})
	case KindGH:
		return NewGH(), nil
	default:
		return nil, errors.Newf("unknown pull request creator %q", s.Kind)
	}
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
