package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"log/slog"

	errpkg "github.com/YukiMaitani/tcgp-card-data/internal/errors"
)

// Cache persists the last successfully fetched manifest so reruns can
// proceed while the catalog endpoint is unreachable.
type Cache struct {
	mu   sync.RWMutex
	file string
}

type cacheState struct {
	FetchedAt time.Time `json:"fetched_at"`
	Manifest  *Manifest `json:"manifest"`
}

// NewCache creates a Cache backed by the given file path.
func NewCache(filePath string) *Cache {
	return &Cache{file: filepath.Clean(filePath)}
}

// Load reads the cached manifest and when it was fetched. Returns
// ErrCacheMissing if no cache has been written yet.
func (c *Cache) Load() (*Manifest, time.Time, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, time.Time{}, errpkg.ErrCacheMissing
		}
		return nil, time.Time{}, fmt.Errorf("read cache file: %w", err)
	}

	var state cacheState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, time.Time{}, fmt.Errorf("unmarshal cache file: %w", err)
	}
	if state.Manifest == nil {
		return nil, time.Time{}, errpkg.ErrCacheMissing
	}

	slog.Debug("catalog cache loaded", "file_path", c.file, "fetched_at", state.FetchedAt)
	return state.Manifest, state.FetchedAt, nil
}

// Store writes the manifest to the cache file. The write goes through a
// temporary file and a rename so a crash never leaves a torn cache.
func (c *Cache) Store(m *Manifest) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := cacheState{
		FetchedAt: time.Now().UTC(),
		Manifest:  m,
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache state: %w", err)
	}

	tempFile := c.file + ".tmp"
	if err := os.WriteFile(tempFile, data, 0o644); err != nil {
		return fmt.Errorf("write temporary cache file: %w", err)
	}

	if err := os.Rename(tempFile, c.file); err != nil {
		return fmt.Errorf("rename temporary cache file: %w", err)
	}

	slog.Debug("catalog cache saved", "file_path", c.file, "sets", len(m.Sets))
	return nil
}
