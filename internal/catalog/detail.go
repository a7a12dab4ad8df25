package catalog

import (
	"context"
	"errors"
	"log/slog"
)

const fallbackBranch = "main"

// ProjectDetail is the bundle behind a project's detail page: the repository
// snapshot, its raw README, the resolved branch and, when one exists, the
// latest release with its classified downloads.
type ProjectDetail struct {
	Repo      Repo       `json:"repo"`
	Readme    string     `json:"readme"`
	Branch    string     `json:"branch"`
	Release   *Release   `json:"release,omitempty"`
	Downloads *Downloads `json:"downloads,omitempty"`
}

// ProjectDetail looks up one project by slug (or raw repository name).
// Returns nil when the repository does not exist, is private or is excluded
// from the listing.
func (s *Service) ProjectDetail(ctx context.Context, slug string) (*ProjectDetail, error) {
	owner := s.cfg.GitHubOwner
	name := FromSlug(slug)

	raw, err := s.client.GetRepo(ctx, owner, name)
	if err != nil {
		return nil, err
	}
	repo, ok := newRepo(raw)
	if !ok {
		return nil, nil
	}
	if repo.Private || isExcludedRepository(repo.Name) {
		return nil, nil
	}

	readme, err := s.client.Readme(ctx, owner, repo.Name)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		slog.Warn("README fetch failed, rendering without it", "repo", repo.Name, "error", err)
		readme = ""
	}

	branch := repo.DefaultBranch
	if branch == "" {
		branch = fallbackBranch
	}

	resolver := newReleaseResolver(s.client, owner)
	rel, err := resolver.Latest(ctx, repo.Name)
	if err != nil {
		return nil, err
	}

	detail := &ProjectDetail{
		Repo:    repo,
		Readme:  readme,
		Branch:  branch,
		Release: rel,
	}
	if rel != nil {
		downloads := ClassifyAssets(rel.Assets)
		detail.Downloads = &downloads
	}

	return detail, nil
}
