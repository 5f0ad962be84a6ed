package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	BoxBreathingMerged   = "merged"
	BoxBreathingDiscrete = "discrete"
)

type Config struct {
	DataDir       string
	DBPath        string
	StorePath     string
	TemplatesPath string
	JournalDir    string
	LogPath       string
	LogLevel      string
	StrictRuntime bool
	BoxBreathing  string
	TickInterval  time.Duration
}

// fileConfig mirrors config.yaml; nil fields keep the defaults.
type fileConfig struct {
	LogLevel       *string `yaml:"log_level"`
	StrictRuntime  *bool   `yaml:"strict_runtime"`
	BoxBreathing   *string `yaml:"box_breathing"`
	TickIntervalMS *int    `yaml:"tick_interval_ms"`
}

func New(dataDir string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	return Config{
		DataDir:       dataDir,
		DBPath:        filepath.Join(dataDir, "apnea.db"),
		StorePath:     filepath.Join(dataDir, "profiles.json"),
		TemplatesPath: filepath.Join(dataDir, "templates.yaml"),
		JournalDir:    filepath.Join(dataDir, "journal"),
		LogPath:       filepath.Join(dataDir, "apnea.log"),
		BoxBreathing:  BoxBreathingMerged,
		TickInterval:  time.Second,
	}, nil
}

// Load builds the default layout for dataDir, overlays <dataDir>/config.yaml
// when present and finally applies APNEA_* environment overrides.
func Load(dataDir string) (Config, error) {
	cfg, err := New(dataDir)
	if err != nil {
		return Config{}, err
	}
	raw, err := os.ReadFile(filepath.Join(dataDir, "config.yaml"))
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	default:
		var file fileConfig
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return Config{}, fmt.Errorf("decode config: %w", err)
		}
		cfg.apply(file)
	}
	if v := os.Getenv("APNEA_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("APNEA_STRICT"); v != "" {
		if strict, err := strconv.ParseBool(v); err == nil {
			cfg.StrictRuntime = strict
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) apply(file fileConfig) {
	if file.LogLevel != nil {
		c.LogLevel = *file.LogLevel
	}
	if file.StrictRuntime != nil {
		c.StrictRuntime = *file.StrictRuntime
	}
	if file.BoxBreathing != nil {
		c.BoxBreathing = *file.BoxBreathing
	}
	if file.TickIntervalMS != nil {
		c.TickInterval = time.Duration(*file.TickIntervalMS) * time.Millisecond
	}
}

func (c Config) Validate() error {
	switch c.BoxBreathing {
	case BoxBreathingMerged, BoxBreathingDiscrete:
	default:
		return fmt.Errorf("box_breathing must be %q or %q, got %q", BoxBreathingMerged, BoxBreathingDiscrete, c.BoxBreathing)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick_interval_ms must be positive")
	}
	return nil
}

// DefaultDataDir is $HOME/.apnea, or .apnea when no home directory is known.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".apnea"
	}
	return filepath.Join(home, ".apnea")
}
