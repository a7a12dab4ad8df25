package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// cacheFreshness is how long a persisted index counts as "hot" and can be
// served without contacting the network.
const cacheFreshness = 5 * time.Minute

// cacheDocument is the persisted index file
type cacheDocument struct {
	UpdatedAt int64     `json:"updatedAt"` // epoch milliseconds
	Projects  []Project `json:"projects"`
}

// readCache loads the persisted index. A missing, unparsable or
// wrong-shaped file is treated identically to "no cache" and returns nil.
func readCache(path string) *cacheDocument {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var doc cacheDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil
	}
	if doc.UpdatedAt <= 0 || doc.Projects == nil {
		return nil
	}
	return &doc
}

// fresh reports whether the document is inside the freshness window and has
// something to serve.
func (d *cacheDocument) fresh(now time.Time) bool {
	if d == nil || len(d.Projects) == 0 {
		return false
	}
	age := now.UnixMilli() - d.UpdatedAt
	return age >= 0 && age <= cacheFreshness.Milliseconds()
}

// writeCache persists the index as a whole-file replace: the document is
// written to a temp file and renamed into place, so concurrent readers see
// either the old file or the new one, never a torn write.
func writeCache(path string, projects []Project, now time.Time) error {
	doc := cacheDocument{
		UpdatedAt: now.UnixMilli(),
		Projects:  projects,
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal project cache: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create cache temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write cache temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close cache temp file: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace cache file: %w", err)
	}
	return nil
}
