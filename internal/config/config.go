// Package config loads the automata.yaml settings file.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the settings file looked up when none is given.
const DefaultPath = "automata.yaml"

// Config holds every setting of the command line tool. Flags override it.
type Config struct {
	Log    LogConfig    `yaml:"log" json:"log"`
	Engine EngineConfig `yaml:"engine" json:"engine"`
	Server ServerConfig `yaml:"server" json:"server"`
	Cache  CacheConfig  `yaml:"cache" json:"cache"`
	MCP    MCPConfig    `yaml:"mcp" json:"mcp"`
}

type LogConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

type EngineConfig struct {
	// Budget is the per-word exploration budget; 0 keeps the engine default
	// and a negative value disables the cap.
	Budget  int `yaml:"budget" json:"budget"`
	Workers int `yaml:"workers" json:"workers"`
}

type ServerConfig struct {
	Port         int           `yaml:"port" json:"port"`
	RateLimit    float64       `yaml:"rate_limit" json:"rate_limit"`
	Burst        int           `yaml:"burst" json:"burst"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" json:"max_body_bytes"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout"`
}

// CacheConfig selects the verdict cache: Redis wins over Dir, and neither
// means verdicts are recomputed every time.
type CacheConfig struct {
	Dir      string        `yaml:"dir" json:"dir"`
	Redis    string        `yaml:"redis" json:"redis"`
	Prefix   string        `yaml:"prefix" json:"prefix"`
	LockTTL  time.Duration `yaml:"lock_ttl" json:"lock_ttl"`
	Disabled bool          `yaml:"disabled" json:"disabled"`
}

type MCPConfig struct {
	Transport string `yaml:"transport" json:"transport"`
	Port      int    `yaml:"port" json:"port"`
}

// Default returns the settings used when no file is present.
func Default() *Config {
	return &Config{
		Log:    LogConfig{Level: "info", Format: "text"},
		Engine: EngineConfig{},
		Server: ServerConfig{
			Port:         8080,
			Burst:        20,
			MaxBodyBytes: 4 << 20,
			Timeout:      30 * time.Second,
		},
		Cache: CacheConfig{Prefix: "automata:verdict:", LockTTL: 10 * time.Second},
		MCP:   MCPConfig{Transport: "stdio", Port: 8081},
	}
}

// Load reads a YAML or JSON settings file over the defaults. A missing file
// at the default path is not an error; a missing explicit path is.
func Load(path string) (*Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var errs []error
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	if c.Server.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("server.rate_limit must not be negative"))
	}
	if c.Engine.Workers < 0 {
		errs = append(errs, fmt.Errorf("engine.workers must not be negative"))
	}
	switch c.MCP.Transport {
	case "stdio", "sse":
	default:
		errs = append(errs, fmt.Errorf("mcp.transport must be stdio or sse, got %q", c.MCP.Transport))
	}
	return errors.Join(errs...)
}

// ParseLevel maps a level name to its slog level.
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", name)
	}
	return level, nil
}
