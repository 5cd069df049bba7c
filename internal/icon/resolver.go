// Package icon acquires and resolves provider icons. The read path
// (Resolver) is synchronous and never touches the network; acquisition
// happens in a detached background process that reports back through a
// lock-guarded metadata file.
package icon

import (
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fbettag/alfred-openrouter/internal/config"
	"github.com/fbettag/alfred-openrouter/internal/format"
)

// FetchCommand is the hidden CLI subcommand implementing the background
// downloader role.
const FetchCommand = "fetch-icons"

// Resolver maps provider names to local icon paths. It loads the metadata
// document once and remembers which providers it already triggered, so each
// provider spawns at most one background fetch per process.
type Resolver struct {
	cfg       config.Config
	meta      map[string]Entry
	loaded    bool
	triggered map[string]struct{}

	// spawn launches the background downloader; swapped out in tests.
	spawn func(cacheDir, provider string) error
}

// NewResolver builds a resolver for the given config.
func NewResolver(cfg config.Config) *Resolver {
	r := &Resolver{
		cfg:       cfg,
		triggered: make(map[string]struct{}),
	}
	r.spawn = r.spawnDownloader
	return r
}

// IconPath resolves a provider to an icon path that exists on disk, falling
// back to the bundled default. It may kick off a background refresh but
// never waits for one.
func (r *Resolver) IconPath(provider string) string {
	if provider == "" {
		return r.cfg.DefaultIcon()
	}

	entry, ok := r.lookup(provider)
	cachedPath := r.resolveCached(provider, entry, ok)

	if r.shouldRefresh(entry, ok, cachedPath) {
		r.trigger(provider)
	}

	if cachedPath != "" {
		return cachedPath
	}
	return r.cfg.DefaultIcon()
}

func (r *Resolver) lookup(provider string) (Entry, bool) {
	if !r.loaded {
		r.meta = LoadMetadata(r.cfg.CacheDir)
		r.loaded = true
	}
	entry, ok := r.meta[provider]
	return entry, ok
}

// resolveCached returns the on-disk icon path for a provider, or "" when
// nothing usable is cached. Without metadata it probes the icons directory
// for files left by earlier runs.
func (r *Resolver) resolveCached(provider string, entry Entry, ok bool) string {
	if ok {
		if (entry.Status == StatusSuccess || entry.Status == StatusCached) && entry.Filename != "" {
			path := filepath.Join(r.cfg.IconsDir(), entry.Filename)
			if fileExists(path) {
				return path
			}
		}
		return ""
	}

	safeName := format.SanitizeName(provider)
	for _, ext := range config.ImageExtensions {
		path := filepath.Join(r.cfg.IconsDir(), safeName+ext)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// shouldRefresh decides whether a background fetch is due. Failed lookups
// are retried only after the negative-result TTL; good icons refresh on a
// much longer cadence, or immediately when their file went missing.
func (r *Resolver) shouldRefresh(entry Entry, ok bool, cachedPath string) bool {
	if !ok {
		return true
	}
	age := time.Since(time.Unix(entry.Timestamp, 0))
	switch entry.Status {
	case StatusFailed:
		return age >= r.cfg.IconsTTL
	case StatusSuccess, StatusCached:
		if cachedPath == "" {
			return true
		}
		return age > config.IconRefreshInterval
	default:
		return true
	}
}

func (r *Resolver) trigger(provider string) {
	if _, done := r.triggered[provider]; done {
		return
	}
	r.triggered[provider] = struct{}{}
	if err := r.spawn(r.cfg.CacheDir, provider); err != nil {
		logrus.WithError(err).Errorf("failed to spawn icon fetch for %s", provider)
	}
}

// spawnDownloader re-executes this binary as a detached background process.
// Nothing waits on it and nothing reads its output; the metadata store is
// the only channel back.
func (r *Resolver) spawnDownloader(cacheDir, provider string) error {
	exe, err := os.Executable()
	if err != nil {
		return err
	}
	cmd := exec.Command(exe, FetchCommand, cacheDir, provider)
	if r.cfg.Debug {
		cmd.Stdout = os.Stderr
		cmd.Stderr = os.Stderr
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
