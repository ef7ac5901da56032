package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"mintai/internal/download"
	"mintai/internal/modelpath"
)

// Environment variables read by FromEnv.
const (
	EnvAddr      = "MINTAI_ADDR"
	EnvConfigDir = "MINTAI_CONFIG_DIR"
	EnvLogLevel  = "MINTAI_LOG_LEVEL"
)

const (
	DefaultAddr         = "127.0.0.1:8765"
	DefaultLogLevel     = "info"
	DefaultMaxBodyBytes = 1 << 20
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and are filled by Merge over Defaults.
type Config struct {
	Addr         string   `json:"addr" yaml:"addr" toml:"addr"`
	AppID        string   `json:"app_id" yaml:"app_id" toml:"app_id"`
	ConfigDir    string   `json:"config_dir" yaml:"config_dir" toml:"config_dir"`
	ModelFile    string   `json:"model_file" yaml:"model_file" toml:"model_file"`
	DownloadURL  string   `json:"download_url" yaml:"download_url" toml:"download_url"`
	LogLevel     string   `json:"log_level" yaml:"log_level" toml:"log_level"`
	CORSOrigins  []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
	MaxBodyBytes int64    `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
}

// Defaults returns the configuration used when nothing is specified.
// ConfigDir stays empty: the per-user config directory is resolved lazily.
func Defaults() Config {
	return Config{
		Addr:         DefaultAddr,
		AppID:        modelpath.DefaultAppID,
		ModelFile:    modelpath.DefaultModelFile,
		DownloadURL:  download.DefaultURL,
		LogLevel:     DefaultLogLevel,
		MaxBodyBytes: DefaultMaxBodyBytes,
	}
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// Merge returns base with every non-zero field of over applied on top.
func Merge(base, over Config) Config {
	out := base
	if over.Addr != "" {
		out.Addr = over.Addr
	}
	if over.AppID != "" {
		out.AppID = over.AppID
	}
	if over.ConfigDir != "" {
		out.ConfigDir = over.ConfigDir
	}
	if over.ModelFile != "" {
		out.ModelFile = over.ModelFile
	}
	if over.DownloadURL != "" {
		out.DownloadURL = over.DownloadURL
	}
	if over.LogLevel != "" {
		out.LogLevel = over.LogLevel
	}
	if len(over.CORSOrigins) > 0 {
		out.CORSOrigins = append([]string(nil), over.CORSOrigins...)
	}
	if over.MaxBodyBytes > 0 {
		out.MaxBodyBytes = over.MaxBodyBytes
	}
	return out
}

// FromEnv reads the overrides present in the environment. getenv may be nil
// to use os.Getenv.
func FromEnv(getenv func(string) string) Config {
	if getenv == nil {
		getenv = os.Getenv
	}
	return Config{
		Addr:      strings.TrimSpace(getenv(EnvAddr)),
		ConfigDir: strings.TrimSpace(getenv(EnvConfigDir)),
		LogLevel:  strings.TrimSpace(getenv(EnvLogLevel)),
	}
}

// Resolve layers defaults, the optional file at path and the environment,
// in that order.
func Resolve(path string, getenv func(string) string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		fc, err := Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = Merge(cfg, fc)
	}
	cfg = Merge(cfg, FromEnv(getenv))
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values the service cannot start with.
func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max_body_bytes must be positive, got %d", c.MaxBodyBytes)
	}
	if strings.ContainsAny(c.ModelFile, `/\`) {
		return fmt.Errorf("model_file must be a file name, got %q", c.ModelFile)
	}
	return nil
}

// Level parses LogLevel, defaulting to info.
func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return lvl
}
