package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/noelruault/shepherd/internal/core"
)

// FileCache keeps the last fetched function list in a JSON file.
type FileCache struct {
	path string
}

// New returns a FileCache backed by path. The file is created lazily.
func New(path string) *FileCache {
	return &FileCache{path: path}
}

// Path returns the backing file path.
func (c *FileCache) Path() string {
	return c.path
}

// Read loads the cached list. A missing or unreadable file is a miss.
func (c *FileCache) Read() ([]core.FunctionSummary, bool) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, false
	}

	var functions []core.FunctionSummary
	if err := json.Unmarshal(data, &functions); err != nil {
		return nil, false
	}
	return functions, true
}

// Write replaces the cached list.
func (c *FileCache) Write(functions []core.FunctionSummary) error {
	if err := os.MkdirAll(filepath.Dir(c.path), 0700); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	if functions == nil {
		functions = []core.FunctionSummary{}
	}
	data, err := json.Marshal(functions)
	if err != nil {
		return fmt.Errorf("encode function list: %w", err)
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("replace cache: %w", err)
	}
	return nil
}

// Clear removes the cached list. Clearing an absent cache is not an error.
func (c *FileCache) Clear() error {
	if err := os.Remove(c.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove cache: %w", err)
	}
	return nil
}

// ModTime reports when the cache was last written.
func (c *FileCache) ModTime() (time.Time, bool) {
	info, err := os.Stat(c.path)
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}
