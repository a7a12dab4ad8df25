package catalog

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/robertg761/showcase/internal/config"
	"github.com/robertg761/showcase/internal/githubapi"
)

// newCatalogClient points a fast-retrying API client at a mock GitHub server
func newCatalogClient(t *testing.T, handler http.Handler) *githubapi.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := githubapi.NewClient("")
	if err := client.SetBaseURL(server.URL + "/"); err != nil {
		t.Fatalf("Failed to set base URL: %v", err)
	}
	client.SetRetryPolicy(1, time.Millisecond)
	return client
}

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		GitHubOwner: "testowner",
		CacheFile:   filepath.Join(t.TempDir(), "projects.json"),
	}
}

func mockRepoJSON(name string, stars int, pushedAt string) map[string]any {
	return map[string]any{
		"id":               int64(len(name)*1000 + stars),
		"name":             name,
		"html_url":         "https://github.com/testowner/" + name,
		"description":      "Test repository " + name,
		"language":         "Go",
		"topics":           []string{"test"},
		"stargazers_count": stars,
		"pushed_at":        pushedAt,
		"updated_at":       pushedAt,
		"default_branch":   "main",
		"private":          false,
	}
}
