package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/robertg761/showcase/internal/config"
	"github.com/robertg761/showcase/internal/githubapi"
)

// IndexPublisher receives the project list after every successful rebuild.
// Publishing is always best-effort.
type IndexPublisher interface {
	PublishJSON(v any) error
}

// RefreshResult is the outcome of one index rebuild. Warnings carry the
// failures that were deliberately swallowed (cache write, publish) so
// callers and tests can observe them without them ever failing the build.
type RefreshResult struct {
	Projects []Project
	Warnings []string
}

// Service owns the project index: the hot cache, the single-flight rebuild
// and the last successful in-memory result. Construct one per process and
// share it.
type Service struct {
	cfg    *config.Config
	client *githubapi.Client
	pub    IndexPublisher
	now    func() time.Time

	flight singleflight.Group

	mu        sync.Mutex
	last      []Project
	lastValid bool
}

// New creates a new Service instance. pub may be nil to disable publishing.
func New(cfg *config.Config, client *githubapi.Client, pub IndexPublisher) *Service {
	return &Service{
		cfg:    cfg,
		client: client,
		pub:    pub,
		now:    time.Now,
	}
}

// Owner returns the configured repository owner
func (s *Service) Owner() string {
	return s.cfg.GitHubOwner
}

// Projects returns the current ranked project list. A fresh persisted cache
// is served without touching the network; otherwise the index is rebuilt
// (once, shared across concurrent callers). On rebuild failure the service
// falls back to the stale persisted cache, then to the last successful
// in-memory result; with nothing left it fails in strict mode and serves an
// empty list otherwise.
func (s *Service) Projects(ctx context.Context) ([]Project, error) {
	if doc := readCache(s.cfg.CacheFile); doc.fresh(s.now()) {
		return doc.Projects, nil
	}

	res, err := s.refreshShared(ctx)
	if err == nil {
		return res.Projects, nil
	}

	if doc := readCache(s.cfg.CacheFile); doc != nil {
		slog.Warn("Index rebuild failed, serving stale cache", "error", err)
		return doc.Projects, nil
	}

	s.mu.Lock()
	if s.lastValid {
		last := s.last
		s.mu.Unlock()
		slog.Warn("Index rebuild failed, serving last in-memory result", "error", err)
		return last, nil
	}
	s.mu.Unlock()

	if s.cfg.Strict {
		return nil, err
	}
	slog.Error("Index rebuild failed with no fallback available", "error", err)
	return []Project{}, nil
}

// Refresh rebuilds the index now, sharing the in-flight rebuild with any
// concurrent callers. Used by the cron schedule and the indexer binary.
func (s *Service) Refresh(ctx context.Context) (RefreshResult, error) {
	return s.refreshShared(ctx)
}

// refreshShared funnels all rebuild requests through a single in-flight
// computation. The flight entry is dropped when the call returns, so a
// failed rebuild can be retried by a later request.
func (s *Service) refreshShared(ctx context.Context) (RefreshResult, error) {
	v, err, _ := s.flight.Do("projects", func() (any, error) {
		return s.rebuild(ctx)
	})
	if err != nil {
		return RefreshResult{}, err
	}
	return v.(RefreshResult), nil
}

// rebuild runs the full pipeline: list, rank, resolve releases with bounded
// concurrency, map to projects, write through to the cache and publish.
func (s *Service) rebuild(ctx context.Context) (RefreshResult, error) {
	owner := s.cfg.GitHubOwner

	repos, err := listPublicRepos(ctx, s.client, owner)
	if err != nil {
		return RefreshResult{}, err
	}

	ranked := rankRepos(repos)

	resolver := newReleaseResolver(s.client, owner)
	releases, err := mapWithLimit(ctx, ranked, releaseConcurrency, func(ctx context.Context, r Repo) (*Release, error) {
		return resolver.Latest(ctx, r.Name)
	})
	if err != nil {
		return RefreshResult{}, err
	}

	projects := make([]Project, 0, len(ranked))
	for i, repo := range ranked {
		projects = append(projects, toProject(repo, releases[i]))
	}

	var warnings []string
	if err := writeCache(s.cfg.CacheFile, projects, s.now()); err != nil {
		warnings = append(warnings, fmt.Sprintf("cache write failed: %v", err))
		slog.Warn("Cache write failed", "path", s.cfg.CacheFile, "error", err)
	}
	if s.pub != nil {
		if err := s.pub.PublishJSON(projects); err != nil {
			warnings = append(warnings, fmt.Sprintf("index publish failed: %v", err))
			slog.Warn("Index publish failed", "error", err)
		}
	}

	s.mu.Lock()
	s.last = projects
	s.lastValid = true
	s.mu.Unlock()

	slog.Info("Project index rebuilt", "owner", owner, "projects", len(projects), "warnings", len(warnings))
	return RefreshResult{Projects: projects, Warnings: warnings}, nil
}
