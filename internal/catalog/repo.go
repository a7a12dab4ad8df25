// Package catalog builds the ranked project index: it lists the owner's
// public repositories, ranks them, resolves latest releases and classifies
// their assets, and maintains the file-backed index cache.
package catalog

import (
	"strings"
	"time"

	"github.com/google/go-github/v72/github"
)

// excludedRepositoryKeys holds normalized names of repositories that must
// never appear in the project listing.
var excludedRepositoryKeys = map[string]bool{
	"rgtools": true,
}

// Repo is the validated snapshot of an upstream repository record
type Repo struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	HTMLURL       string    `json:"htmlUrl"`
	Description   string    `json:"description"`
	Language      string    `json:"language"`
	Topics        []string  `json:"topics,omitempty"`
	Stars         int       `json:"stars"`
	Forks         int       `json:"forks"`
	OpenIssues    int       `json:"openIssues"`
	UpdatedAt     time.Time `json:"updatedAt"`
	PushedAt      time.Time `json:"pushedAt"`
	Homepage      string    `json:"homepage,omitempty"`
	DefaultBranch string    `json:"defaultBranch"`
	Private       bool      `json:"private"`
}

// newRepo converts an upstream payload into a Repo. The second return value
// is false when the payload is missing its identity and must be discarded.
func newRepo(r *github.Repository) (Repo, bool) {
	if r == nil || r.GetName() == "" {
		return Repo{}, false
	}

	return Repo{
		ID:            r.GetID(),
		Name:          r.GetName(),
		HTMLURL:       r.GetHTMLURL(),
		Description:   r.GetDescription(),
		Language:      r.GetLanguage(),
		Topics:        r.Topics,
		Stars:         r.GetStargazersCount(),
		Forks:         r.GetForksCount(),
		OpenIssues:    r.GetOpenIssuesCount(),
		UpdatedAt:     r.GetUpdatedAt().Time,
		PushedAt:      r.GetPushedAt().Time,
		Homepage:      r.GetHomepage(),
		DefaultBranch: r.GetDefaultBranch(),
		Private:       r.GetPrivate(),
	}, true
}

// normalizeRepositoryKey lowercases a repository name and strips every
// non-alphanumeric character, so exclusion matching survives renames like
// "RG-Tools" vs "rgtools".
func normalizeRepositoryKey(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isExcludedRepository(name string) bool {
	return excludedRepositoryKeys[normalizeRepositoryKey(name)]
}

// activityMillis is the repo's most recent activity (push or metadata
// update) as epoch milliseconds. Unknown timestamps count as epoch zero.
func (r Repo) activityMillis() int64 {
	var ts int64
	if !r.PushedAt.IsZero() {
		ts = r.PushedAt.UnixMilli()
	}
	if !r.UpdatedAt.IsZero() && r.UpdatedAt.UnixMilli() > ts {
		ts = r.UpdatedAt.UnixMilli()
	}
	if ts < 0 {
		ts = 0
	}
	return ts
}
