// Package cache is a TTL file cache for JSON documents.
package cache

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Manager reads and writes JSON documents under a single root directory.
// Writes are atomic (temp file plus rename), so readers never observe a
// partially written document.
type Manager struct {
	root string
}

// New returns a manager rooted at dir.
func New(dir string) Manager {
	return Manager{root: dir}
}

// Path resolves a cache entry name to its absolute path.
func (m Manager) Path(name string) string {
	return filepath.Join(m.root, name)
}

// Read loads a cached document into v. It reports false on a miss: a
// missing file, a stale file, or one that fails to parse. A negative TTL
// means the entry never goes stale; zero means it always is.
func (m Manager) Read(name string, ttl time.Duration, v any) bool {
	path := m.Path(name)
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	if ttl >= 0 && time.Since(info.ModTime()) >= ttl {
		return false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.WithError(err).Warnf("failed to read cache %s", path)
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		logrus.WithError(err).Warnf("failed to parse cache %s", path)
		return false
	}
	return true
}

// Write serializes v and atomically replaces the named entry, creating
// parent directories as needed.
func (m Manager) Write(name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding cache %s: %w", name, err)
	}
	return m.WriteRaw(name, data)
}

// WriteRaw atomically replaces the named entry with raw bytes. The temp
// file lives in the target directory so the final rename stays on one
// filesystem.
func (m Manager) WriteRaw(name string, data []byte) error {
	path := m.Path(name)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensuring cache dir %s: %w", dir, err)
	}
	tempPath := fmt.Sprintf("%s.tmp.%s", path, uuid.New().String())
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return fmt.Errorf("writing cache temp %s: %w", tempPath, err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("replacing cache %s: %w", path, err)
	}
	logrus.Debugf("wrote cache %s", path)
	return nil
}

// Remove deletes a cache entry, which may be a file or a directory tree.
// It reports whether anything was actually removed; a missing entry is
// not an error.
func (m Manager) Remove(name string) (bool, error) {
	path := m.Path(name)
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("inspecting %s: %w", path, err)
	}
	if info.IsDir() {
		err = os.RemoveAll(path)
	} else {
		err = os.Remove(path)
	}
	if err != nil {
		return false, fmt.Errorf("removing %s: %w", path, err)
	}
	return true, nil
}
