package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	defaultConfigPath = "~/.config/shepherd/config.toml"
	defaultCacheDir   = "~/.config/shepherd"
	defaultRegion     = "us-east-1"
	defaultTickRate   = 250 * time.Millisecond
)

// Config holds the application configuration
type Config struct {
	Region      string
	Profile     string
	CachePath   string
	TickRate    time.Duration
	LogFile     string
	Credentials *StaticCredentials
}

// StaticCredentials are explicit keys that bypass the default credential chain.
type StaticCredentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

type fileConfig struct {
	Region      string `toml:"region"`
	Profile     string `toml:"profile"`
	CachePath   string `toml:"cache_path"`
	TickRate    string `toml:"tick_rate"`
	LogFile     string `toml:"log_file"`
	Credentials struct {
		AccessKeyID     string `toml:"access_key_id"`
		SecretAccessKey string `toml:"secret_access_key"`
		SessionToken    string `toml:"session_token"`
	} `toml:"credentials"`
}

// LoadConfig loads the configuration from path, or from the default
// location when path is empty. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = defaultConfigPath
	}
	resolved, err := expandPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return defaults(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML config data and fills in defaults.
func Parse(data []byte) (*Config, error) {
	var raw fileConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := defaults()
	if region := strings.TrimSpace(raw.Region); region != "" {
		cfg.Region = region
	}
	cfg.Profile = strings.TrimSpace(raw.Profile)
	cfg.LogFile = strings.TrimSpace(raw.LogFile)

	if cachePath := strings.TrimSpace(raw.CachePath); cachePath != "" {
		cfg.CachePath = mustExpand(cachePath)
	}

	if tick := strings.TrimSpace(raw.TickRate); tick != "" {
		d, err := time.ParseDuration(tick)
		if err != nil {
			return nil, fmt.Errorf("parse tick_rate: %w", err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("tick_rate must be positive, got %s", d)
		}
		cfg.TickRate = d
	}

	creds := raw.Credentials
	if creds.AccessKeyID != "" || creds.SecretAccessKey != "" {
		if creds.AccessKeyID == "" || creds.SecretAccessKey == "" {
			return nil, fmt.Errorf("credentials require both access_key_id and secret_access_key")
		}
		cfg.Credentials = &StaticCredentials{
			AccessKeyID:     creds.AccessKeyID,
			SecretAccessKey: creds.SecretAccessKey,
			SessionToken:    creds.SessionToken,
		}
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Region:   GetDefaultRegion(),
		TickRate: defaultTickRate,
	}
}

// CacheFile returns CachePath when set and otherwise a file keyed by
// profile and region.
func (c *Config) CacheFile() string {
	if c.CachePath != "" {
		return c.CachePath
	}
	return DefaultCacheFile(c.Profile, c.Region)
}

// DefaultCacheFile returns ~/.config/shepherd/lambdas-<profile>-<region>.json.
func DefaultCacheFile(profile, region string) string {
	if profile == "" {
		profile = "default"
	}
	name := fmt.Sprintf("lambdas-%s-%s.json", sanitize(profile), sanitize(region))
	return mustExpand(filepath.Join(defaultCacheDir, name))
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		default:
			return '_'
		}
	}, s)
}

// GetDefaultRegion returns the default AWS region
func GetDefaultRegion() string {
	if region, ok := os.LookupEnv("AWS_REGION"); ok && region != "" {
		return region
	}
	if region, ok := os.LookupEnv("AWS_DEFAULT_REGION"); ok && region != "" {
		return region
	}
	return defaultRegion
}

// ExpandPath resolves a leading ~ and makes path absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
