package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

const (
	// DefaultFileName is the expected file name under the config directory.
	DefaultFileName = "config.toml"

	// UserAgent identifies the workflow on every outbound request.
	UserAgent = "Alfred-OpenRouter-Workflow"

	// ModelsURL lists the full model catalog.
	ModelsURL = "https://openrouter.ai/api/v1/models"
	// EndpointsURL lists serving endpoints for one model id.
	EndpointsURL = "https://openrouter.ai/api/v1/models/%s/endpoints"
	// ChatURL is the completion endpoint used in generated curl commands.
	ChatURL = "https://openrouter.ai/api/v1/chat/completions"
	// ModelPageURL is the human-facing model page.
	ModelPageURL = "https://openrouter.ai/models/%s"
	// HuggingFaceURL is the human-facing HuggingFace model page.
	HuggingFaceURL = "https://huggingface.co/%s"
	// ModelScopeURL is the human-facing ModelScope model page.
	ModelScopeURL = "https://modelscope.cn/models/%s"

	// NewModelWindow marks catalog entries created within this window as new.
	NewModelWindow = 14 * 24 * time.Hour

	// IconRefreshInterval governs re-download of known-good icons. Provider
	// logos rarely change, so this is measured in months, not hours.
	IconRefreshInterval = 180 * 24 * time.Hour
)

// ImageExtensions are the icon file extensions the workflow understands.
var ImageExtensions = []string{".svg", ".png", ".jpg", ".jpeg"}

// Config captures runtime settings for the workflow. Alfred supplies most of
// them through environment variables; a TOML file can pre-seed values for
// manual runs outside Alfred.
type Config struct {
	APIKey   string `toml:"api_key"`
	CacheDir string `toml:"cache_dir"`
	Debug    bool   `toml:"debug"`

	// TTLs are minutes in the file/environment, durations in memory.
	ModelsTTL    time.Duration `toml:"-"`
	EndpointsTTL time.Duration `toml:"-"`
	IconsTTL     time.Duration `toml:"-"`
}

type fileTTLs struct {
	ModelsTTL    int `toml:"models_ttl"`
	EndpointsTTL int `toml:"endpoints_ttl"`
	IconsTTL     int `toml:"icons_ttl"`
}

// Default returns config populated with safe defaults.
func Default() Config {
	return Config{
		ModelsTTL:    1440 * time.Minute,
		EndpointsTTL: 30 * time.Minute,
		IconsTTL:     43200 * time.Minute,
	}
}

// DefaultPath resolves ~/.alfred-openrouter/config.toml (creating the
// directory if necessary).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home dir: %w", err)
	}
	dir := filepath.Join(home, ".alfred-openrouter")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("ensuring config dir: %w", err)
	}
	return filepath.Join(dir, DefaultFileName), nil
}

// Load resolves config in ascending precedence: defaults, TOML file,
// environment. A missing file is not an error. A .env file in the working
// directory is folded into the environment first, which makes manual runs
// outside Alfred behave like Alfred-spawned ones.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}
	raw, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if len(raw) > 0 {
		if err := toml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config: %w", err)
		}
		var ttls fileTTLs
		if err := toml.Unmarshal(raw, &ttls); err == nil {
			applyMinutes(&cfg.ModelsTTL, ttls.ModelsTTL)
			applyMinutes(&cfg.EndpointsTTL, ttls.EndpointsTTL)
			applyMinutes(&cfg.IconsTTL, ttls.IconsTTL)
		}
	}
	applyEnv(&cfg)
	if cfg.CacheDir == "" {
		cfg.CacheDir = debugCacheDir()
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("OPENROUTER_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("alfred_workflow_cache"); v != "" {
		cfg.CacheDir = v
	}
	if os.Getenv("ALFRED_WORKFLOW_DEBUG") == "1" {
		cfg.Debug = true
	}
	applyEnvMinutes(&cfg.ModelsTTL, "MODELS_TTL")
	applyEnvMinutes(&cfg.EndpointsTTL, "ENDPOINTS_TTL")
	applyEnvMinutes(&cfg.IconsTTL, "ICONS_TTL")
}

func applyEnvMinutes(dst *time.Duration, key string) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	minutes, err := strconv.Atoi(v)
	if err != nil {
		return
	}
	*dst = time.Duration(minutes) * time.Minute
}

func applyMinutes(dst *time.Duration, minutes int) {
	if minutes != 0 {
		*dst = time.Duration(minutes) * time.Minute
	}
}

// debugCacheDir is used when Alfred did not supply a cache directory.
func debugCacheDir() string {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	return filepath.Join(wd, ".temp", "alfred-openrouter")
}

// IconsDir returns the directory holding downloaded provider icons.
func (c Config) IconsDir() string {
	return filepath.Join(c.CacheDir, "icons")
}

// EndpointsDir returns the directory holding cached endpoint documents.
func (c Config) EndpointsDir() string {
	return filepath.Join(c.CacheDir, "endpoints")
}

// DefaultIcon returns the bundled fallback icon, resolved relative to the
// workflow bundle (the executable's directory).
func (c Config) DefaultIcon() string {
	return ResourceIcon("openrouter.svg")
}

// ResourceIcon returns a bundled icon by file name.
func ResourceIcon(name string) string {
	return filepath.Join(resourcesDir(), name)
}

func resourcesDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "resources"
	}
	return filepath.Join(filepath.Dir(exe), "resources")
}
