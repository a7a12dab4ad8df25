package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robertg761/showcase/internal/githubapi"
)

const (
	listPageSize = 100
	maxListPages = 10
)

// listPublicRepos fetches every public repository for the owner, one page at
// a time, stopping at the first short or empty page (or the hard page cap).
// Private and excluded repositories never make it into the result.
//
// A first-page failure is propagated so the caller can decide between
// failing the build and falling back to the cache; a later-page failure
// stops pagination with what was collected so far.
func listPublicRepos(ctx context.Context, client *githubapi.Client, owner string) ([]Repo, error) {
	var repos []Repo

	for page := 1; page <= maxListPages; page++ {
		pageRepos, err := client.ListRepoPage(ctx, owner, page, listPageSize)
		if err != nil {
			if page == 1 {
				return nil, fmt.Errorf("failed to list repositories for %s: %w", owner, err)
			}
			slog.Warn("Repository page fetch failed, stopping pagination", "owner", owner, "page", page, "error", err)
			break
		}

		if len(pageRepos) == 0 {
			break
		}

		for _, raw := range pageRepos {
			repo, ok := newRepo(raw)
			if !ok {
				slog.Warn("Skipping malformed repository payload", "owner", owner, "page", page)
				continue
			}
			if repo.Private || isExcludedRepository(repo.Name) {
				continue
			}
			repos = append(repos, repo)
		}

		if len(pageRepos) < listPageSize {
			break
		}
	}

	return repos, nil
}
