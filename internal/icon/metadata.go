package icon

import (
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
	"github.com/gofrs/flock"
	"github.com/sirupsen/logrus"

	"github.com/fbettag/alfred-openrouter/internal/cache"
)

const (
	metadataFile = "icons.json"
	lockFile     = metadataFile + ".lock"
)

// Entry statuses.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
	StatusCached  = "cached"
)

// Entry records the outcome of the last icon acquisition attempt for one
// provider. Filename is set only for success/cached entries and always
// names a file directly under the icons directory.
type Entry struct {
	Provider  string `json:"provider"`
	Status    string `json:"status"`
	Filename  string `json:"filename,omitempty"`
	URL       string `json:"url,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

// LoadMetadata reads the metadata document without locking. Reads are best
// effort: a missing or corrupt document comes back empty.
func LoadMetadata(cacheDir string) map[string]Entry {
	data, err := os.ReadFile(filepath.Join(cacheDir, metadataFile))
	if err != nil {
		return map[string]Entry{}
	}
	var meta map[string]Entry
	if err := json.Unmarshal(data, &meta); err != nil {
		logrus.WithError(err).Error("failed to parse icon metadata")
		return map[string]Entry{}
	}
	if meta == nil {
		meta = map[string]Entry{}
	}
	return meta
}

// UpdateMetadata merges entries into the metadata document under an
// exclusive cross-process lock. The whole read-merge-write sequence sits
// inside the critical section, so concurrent writers cannot drop each
// other's keys. Failures are logged, never returned: losing one update is
// acceptable, crashing the workflow is not.
func UpdateMetadata(cacheDir string, entries map[string]Entry) {
	if len(entries) == 0 {
		return
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		logrus.WithError(err).Error("failed to create cache dir for icon metadata")
		return
	}

	// The lock file is created on first use and never deleted; removing it
	// would race against another process acquiring it.
	lock := flock.New(filepath.Join(cacheDir, lockFile))
	if err := lock.Lock(); err != nil {
		logrus.WithError(err).Error("failed to lock icon metadata")
		return
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logrus.WithError(err).Error("failed to unlock icon metadata")
		}
	}()

	current := LoadMetadata(cacheDir)
	for provider, entry := range entries {
		current[provider] = mergeEntry(current[provider], entry)
	}
	saveMetadata(cacheDir, current)
}

// mergeEntry reconciles a new attempt with the previous state:
//   - a failed attempt never erases a known-good icon reference, it only
//     refreshes the timestamp;
//   - a cached re-validation inherits the previous source URL, keeping
//     provenance sticky across refresh cycles;
//   - everything else replaces the old entry outright.
func mergeEntry(old, next Entry) Entry {
	switch {
	case next.Status == StatusFailed && old.Status == StatusSuccess:
		old.Timestamp = next.Timestamp
		return old
	case next.Status == StatusCached && old.URL != "":
		next.URL = old.URL
		return next
	default:
		return next
	}
}

func saveMetadata(cacheDir string, meta map[string]Entry) {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		logrus.WithError(err).Error("failed to encode icon metadata")
		return
	}
	if err := cache.New(cacheDir).WriteRaw(metadataFile, data); err != nil {
		logrus.WithError(err).Error("failed to save icon metadata")
	}
}
