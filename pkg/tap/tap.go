// Package tap converts between Homebrew tap names and the GitHub
// repositories that back them.
//
// A tap named user/repo lives in the repository user/homebrew-repo.
package tap

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/arthur-debert/homebrew-automation/pkg/errors"
)

const (
	repoPrefix = "homebrew-"
	githubHost = "github.com"
)

var segmentRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)

// Name is a tap name, user/repo.
type Name struct {
	User string
	Repo string
}

// Parse validates a tap name of the form user/repo. A repo already carrying
// the homebrew- prefix is accepted and stripped.
func Parse(name string) (Name, error) {
	user, repo, ok := strings.Cut(name, "/")
	if !ok || strings.Contains(repo, "/") || !segmentRe.MatchString(user) || !segmentRe.MatchString(repo) {
		return Name{}, errors.Newf(errors.ErrInvalidInput, "invalid tap name %q, want user/repo", name)
	}
	repo = strings.TrimPrefix(repo, repoPrefix)
	if repo == "" {
		return Name{}, errors.Newf(errors.ErrInvalidInput, "invalid tap name %q, want user/repo", name)
	}
	return Name{User: user, Repo: repo}, nil
}

// FromRepository derives the tap name from a GitHub slug such as
// easoncxz/homebrew-tap.
func FromRepository(slug string) (Name, error) {
	user, repo, ok := strings.Cut(slug, "/")
	if !ok || !strings.HasPrefix(repo, repoPrefix) {
		return Name{}, errors.Newf(errors.ErrInvalidInput,
			"repository %q is not a tap, its name must start with %q", slug, repoPrefix)
	}
	return Parse(user + "/" + repo)
}

// FromURL derives the tap name from a GitHub clone URL such as
// https://github.com/easoncxz/homebrew-tap.git.
func FromURL(rawURL string) (Name, error) {
	u, err := url.Parse(rawURL)
	if err != nil || !strings.EqualFold(u.Host, githubHost) {
		return Name{}, errors.Newf(errors.ErrInvalidInput, "%q is not a GitHub repository URL", rawURL)
	}
	slug := strings.TrimSuffix(strings.Trim(u.Path, "/"), ".git")
	return FromRepository(slug)
}

func (n Name) String() string {
	return n.User + "/" + n.Repo
}

// Repository returns the GitHub slug backing the tap.
func (n Name) Repository() string {
	return n.User + "/" + repoPrefix + n.Repo
}

// URL returns an HTTPS clone URL for the tap.
func (n Name) URL() string {
	return "https://" + githubHost + "/" + n.Repository() + ".git"
}
