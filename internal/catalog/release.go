package catalog

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/go-github/v72/github"

	"github.com/robertg761/showcase/internal/githubapi"
)

// ReleaseAsset is one downloadable file attached to a release
type ReleaseAsset struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	DownloadURL string `json:"downloadUrl"`
	Size        int    `json:"size"`
}

// Release is the latest published release of a repository
type Release struct {
	TagName     string         `json:"tagName"`
	Name        string         `json:"name"`
	HTMLURL     string         `json:"htmlUrl"`
	PublishedAt *time.Time     `json:"publishedAt,omitempty"`
	Assets      []ReleaseAsset `json:"assets"`
}

// newRelease converts an upstream release payload, keeping only assets in
// the "uploaded" state (or with no state at all) that carry a direct
// download URL.
func newRelease(rr *github.RepositoryRelease) *Release {
	if rr == nil {
		return nil
	}

	rel := &Release{
		TagName: rr.GetTagName(),
		Name:    rr.GetName(),
		HTMLURL: rr.GetHTMLURL(),
	}
	if ts := rr.PublishedAt; ts != nil {
		t := ts.Time
		rel.PublishedAt = &t
	}

	for _, a := range rr.Assets {
		if a == nil {
			continue
		}
		if state := a.GetState(); state != "" && state != "uploaded" {
			continue
		}
		if a.GetBrowserDownloadURL() == "" {
			continue
		}
		rel.Assets = append(rel.Assets, ReleaseAsset{
			ID:          a.GetID(),
			Name:        a.GetName(),
			DownloadURL: a.GetBrowserDownloadURL(),
			Size:        a.GetSize(),
		})
	}

	return rel
}

// releaseResolver fetches latest releases, memoized per repository name for
// the lifetime of the resolver (one index-build pass).
type releaseResolver struct {
	client *githubapi.Client
	owner  string

	mu   sync.Mutex
	memo map[string]*Release
}

func newReleaseResolver(client *githubapi.Client, owner string) *releaseResolver {
	return &releaseResolver{
		client: client,
		owner:  owner,
		memo:   make(map[string]*Release),
	}
}

// Latest returns the repository's latest release, or nil when it has none.
// An unreachable upstream also resolves to nil (with a warning) so a single
// flaky release lookup cannot fail a whole index rebuild.
func (r *releaseResolver) Latest(ctx context.Context, name string) (*Release, error) {
	r.mu.Lock()
	if rel, ok := r.memo[name]; ok {
		r.mu.Unlock()
		return rel, nil
	}
	r.mu.Unlock()

	rr, err := r.client.LatestRelease(ctx, r.owner, name)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		slog.Warn("Release lookup failed, treating as no release", "repo", name, "error", err)
		rr = nil
	}

	rel := newRelease(rr)

	r.mu.Lock()
	r.memo[name] = rel
	r.mu.Unlock()

	return rel, nil
}
