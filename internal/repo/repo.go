// Package repo reads repository metadata through go-git without shelling out.
package repo

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-git/go-git/v5"

	"github.com/aezell/branchkit/internal/model"
)

// Repo is an opened working copy.
type Repo struct {
	repo *git.Repository
	root string
}

// Open finds the repository containing dir, walking up to the nearest .git.
func Open(dir string) (*Repo, error) {
	r, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "opening repository at %s", dir), model.ErrNotARepository)
	}
	wt, err := r.Worktree()
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "repository has no working tree"), model.ErrNotARepository)
	}
	return &Repo{repo: r, root: wt.Filesystem.Root()}, nil
}

// Root is the top-level directory of the working tree.
func (r *Repo) Root() string { return r.root }

// RemoteURL returns the first configured URL of the named remote.
func (r *Repo) RemoteURL(name string) (string, error) {
	remote, err := r.repo.Remote(name)
	if err != nil {
		return "", errors.Wrapf(err, "looking up remote %q", name)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", errors.Newf("remote %q has no URL", name)
	}
	return urls[0], nil
}

// HeadLine returns "<short hash> <subject>" for the HEAD commit.
func (r *Repo) HeadLine() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", errors.Wrap(err, "resolving HEAD")
	}
	c, err := r.repo.CommitObject(head.Hash())
	if err != nil {
		return "", errors.Wrap(err, "reading HEAD commit")
	}
	subject, _, _ := strings.Cut(c.Message, "\n")
	return head.Hash().String()[:7] + " " + strings.TrimSpace(subject), nil
}

// Remote identifies a hosted repository.
type Remote struct {
	Host  string
	Owner string
	Name  string
}

// WebURL is the repository's browser address.
func (r Remote) WebURL() string {
	return fmt.Sprintf("https://%s/%s/%s", r.Host, r.Owner, r.Name)
}

// PullsURL lists the repository's pull requests.
func (r Remote) PullsURL() string {
	return r.WebURL() + "/pulls"
}

// NewPullURL opens a pull request form for branch.
func (r Remote) NewPullURL(branch string) string {
	return r.WebURL() + "/pull/new/" + branch
}

// IsGitHub reports whether the remote is hosted on github.com.
func (r Remote) IsGitHub() bool {
	return strings.EqualFold(r.Host, "github.com")
}

// ParseRemote understands scp-style (git@host:owner/name.git) and URL-style
// (https://host/owner/name, ssh://git@host/owner/name.git) remotes.
func ParseRemote(raw string) (Remote, error) {
	raw = strings.TrimSpace(raw)
	var host, path string

	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return Remote{}, errors.Wrapf(err, "parsing remote URL %q", raw)
		}
		host, path = u.Hostname(), u.Path
	} else if at, rest, ok := strings.Cut(raw, ":"); ok {
		if i := strings.LastIndex(at, "@"); i >= 0 {
			at = at[i+1:]
		}
		host, path = at, rest
	}

	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")
	owner, name, ok := strings.Cut(path, "/")
	if host == "" || !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return Remote{}, errors.Newf("unrecognised remote URL %q", raw)
	}
	return Remote{Host: host, Owner: owner, Name: name}, nil
}
