// Package githubapi wraps the GitHub REST API client with the retry policy
// used by the index builder. Not-found is always reported as absence (a zero
// value with a nil error), never as an error.
package githubapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v72/github"
	"golang.org/x/oauth2"
)

const (
	// defaultMaxRetries is the number of additional attempts after the
	// first failed call.
	defaultMaxRetries = 2
	// defaultBackoff is multiplied by the attempt number, giving a
	// linearly increasing delay between attempts.
	defaultBackoff = 500 * time.Millisecond
)

// ErrUnavailable marks an upstream that kept failing after the retry budget
// was exhausted. Callers that need the legacy "treat as absent" behavior can
// test for it with errors.Is.
var ErrUnavailable = errors.New("github: upstream unavailable")

// Client is a retrying wrapper around the GitHub REST API
type Client struct {
	gh         *github.Client
	maxRetries int
	backoff    time.Duration
}

// NewClient creates a new Client instance. An empty token means
// unauthenticated (rate-limited) access.
func NewClient(token string) *Client {
	var tc *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		tc = oauth2.NewClient(context.Background(), ts)
	}

	return &Client{
		gh:         github.NewClient(tc),
		maxRetries: defaultMaxRetries,
		backoff:    defaultBackoff,
	}
}

// SetBaseURL points the client at an alternative API endpoint. Used by tests
// to target a mock server.
func (c *Client) SetBaseURL(rawURL string) error {
	if !strings.HasSuffix(rawURL, "/") {
		rawURL += "/"
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("failed to parse base URL %s: %w", rawURL, err)
	}
	c.gh.BaseURL = u
	return nil
}

// SetRetryPolicy overrides the retry budget and backoff unit
func (c *Client) SetRetryPolicy(maxRetries int, backoff time.Duration) {
	c.maxRetries = maxRetries
	c.backoff = backoff
}

// retryable reports whether an HTTP status is worth another attempt
func retryable(status int) bool {
	switch status {
	case http.StatusForbidden, http.StatusTooManyRequests,
		http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// fetch runs a single API call through the retry policy. The second return
// value is false when the resource does not exist (HTTP 404).
func fetch[T any](ctx context.Context, c *Client, what string, call func() (T, *github.Response, error)) (T, bool, error) {
	var zero T

	attempts := c.maxRetries + 1
	for attempt := 1; attempt <= attempts; attempt++ {
		v, resp, err := call()
		if err == nil {
			return v, true, nil
		}

		status := 0
		if resp != nil {
			status = resp.StatusCode
		}

		if status == http.StatusNotFound {
			return zero, false, nil
		}

		// Network errors arrive without a response; retry those too.
		if status != 0 && !retryable(status) {
			return zero, false, fmt.Errorf("failed to %s: %w", what, err)
		}

		if attempt < attempts {
			select {
			case <-time.After(c.backoff * time.Duration(attempt)):
			case <-ctx.Done():
				return zero, false, ctx.Err()
			}
		}
	}

	return zero, false, fmt.Errorf("failed to %s after %d attempts: %w", what, attempts, ErrUnavailable)
}

// ListRepoPage fetches one page of the owner's repositories, most recently
// updated first. A nil slice with a nil error means the owner has no such
// page (or does not exist).
func (c *Client) ListRepoPage(ctx context.Context, owner string, page, perPage int) ([]*github.Repository, error) {
	repos, found, err := fetch(ctx, c, "list repositories", func() ([]*github.Repository, *github.Response, error) {
		opt := &github.RepositoryListByUserOptions{
			Type:      "owner",
			Sort:      "updated",
			Direction: "desc",
			ListOptions: github.ListOptions{
				Page:    page,
				PerPage: perPage,
			},
		}
		return c.gh.Repositories.ListByUser(ctx, owner, opt)
	})
	if err != nil || !found {
		return nil, err
	}
	return repos, nil
}

// GetRepo fetches a single repository by name. Returns nil when the
// repository does not exist.
func (c *Client) GetRepo(ctx context.Context, owner, name string) (*github.Repository, error) {
	repo, found, err := fetch(ctx, c, "get repository", func() (*github.Repository, *github.Response, error) {
		return c.gh.Repositories.Get(ctx, owner, name)
	})
	if err != nil || !found {
		return nil, err
	}
	return repo, nil
}

// LatestRelease fetches the latest published release for a repository.
// Returns nil when the repository has no releases.
func (c *Client) LatestRelease(ctx context.Context, owner, name string) (*github.RepositoryRelease, error) {
	rel, found, err := fetch(ctx, c, "get latest release", func() (*github.RepositoryRelease, *github.Response, error) {
		return c.gh.Repositories.GetLatestRelease(ctx, owner, name)
	})
	if err != nil || !found {
		return nil, err
	}
	return rel, nil
}

// Readme fetches a repository's README and returns its decoded markdown
// text. Returns an empty string when the repository has no README.
func (c *Client) Readme(ctx context.Context, owner, name string) (string, error) {
	content, found, err := fetch(ctx, c, "get readme", func() (*github.RepositoryContent, *github.Response, error) {
		return c.gh.Repositories.GetReadme(ctx, owner, name, &github.RepositoryContentGetOptions{})
	})
	if err != nil || !found {
		return "", err
	}

	text, err := content.GetContent()
	if err != nil {
		return "", fmt.Errorf("failed to decode readme content: %w", err)
	}
	return text, nil
}
