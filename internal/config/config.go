package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// YouTube Data API settings
	APIKey      string
	QuotaBudget int // max quota units per run (0 = unlimited)

	// Collection settings
	Regions       []string
	PerRegionMax  int64
	PerChannelMax int64
	FetchWorkers  int

	// Classification / scoring policy
	MinDurationSec    int64
	CategoryBlacklist []string
	BreakoutRatio     float64
	BreakoutViewFloor uint64

	// Digest layout
	Views []ViewConfig
	Zones []ZoneConfig

	// Comment enrichment
	CommentsEnabled  bool
	CommentCachePath string
	CommentTTLHours  int

	// Output
	OutputHTMLPath string
	SnapshotPath   string

	// App settings
	Debug          bool
	RequestTimeout time.Duration
	RetryAttempts  int
	RetryDelay     time.Duration
}

// ViewConfig names one ranked slice of the digest.
type ViewConfig struct {
	Bucket string `yaml:"bucket"`
	Metric string `yaml:"metric"`
	Quota  int    `yaml:"quota"`
}

// ZoneConfig is one named roster group.
type ZoneConfig struct {
	Name     string   `yaml:"name"`
	Channels []string `yaml:"channels"`
}

// fileConfig is the YAML layout of the digest config file.
type fileConfig struct {
	Regions   []string     `yaml:"regions"`
	Blacklist []string     `yaml:"blacklist"`
	Views     []ViewConfig `yaml:"views"`
	Zones     []ZoneConfig `yaml:"zones"`
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		PerRegionMax:      50,
		PerChannelMax:     1,
		FetchWorkers:      4,
		MinDurationSec:    60,
		BreakoutRatio:     3.0,
		BreakoutViewFloor: 50_000,
		CommentsEnabled:   true,
		CommentCachePath:  "comment_cache.json",
		CommentTTLHours:   48,
		OutputHTMLPath:    "index.html",
		SnapshotPath:      "digest.json",
		RequestTimeout:    30 * time.Second,
		RetryAttempts:     3,
		RetryDelay:        2 * time.Second,
	}

	// Load from environment
	cfg.APIKey = os.Getenv("YOUTUBE_API_KEY")
	cfg.QuotaBudget = getEnvIntOrDefault("QUOTA_BUDGET", 0)
	cfg.FetchWorkers = getEnvIntOrDefault("FETCH_WORKERS", cfg.FetchWorkers)
	cfg.CommentCachePath = getEnvOrDefault("COMMENT_CACHE_PATH", cfg.CommentCachePath)
	cfg.CommentTTLHours = getEnvIntOrDefault("COMMENT_CACHE_TTL_HOURS", cfg.CommentTTLHours)
	cfg.OutputHTMLPath = getEnvOrDefault("OUTPUT_HTML_PATH", cfg.OutputHTMLPath)
	cfg.SnapshotPath = getEnvOrDefault("SNAPSHOT_PATH", cfg.SnapshotPath)

	if v := os.Getenv("PER_REGION_MAX"); v != "" {
		if val, err := strconv.ParseInt(v, 10, 64); err == nil && val > 0 {
			cfg.PerRegionMax = val
		}
	}
	if v := os.Getenv("PER_CHANNEL_MAX"); v != "" {
		if val, err := strconv.ParseInt(v, 10, 64); err == nil && val > 0 {
			cfg.PerChannelMax = val
		}
	}
	if v := os.Getenv("MIN_DURATION_SEC"); v != "" {
		if val, err := strconv.ParseInt(v, 10, 64); err == nil && val >= 0 {
			cfg.MinDurationSec = val
		}
	}
	if v := os.Getenv("BREAKOUT_RATIO"); v != "" {
		if val, err := strconv.ParseFloat(v, 64); err == nil && val > 0 {
			cfg.BreakoutRatio = val
		}
	}
	if v := os.Getenv("BREAKOUT_VIEW_FLOOR"); v != "" {
		if val, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.BreakoutViewFloor = val
		}
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.RequestTimeout = time.Duration(val) * time.Second
		}
	}
	if os.Getenv("DISABLE_COMMENTS") == "true" {
		cfg.CommentsEnabled = false
	}
	if os.Getenv("DEBUG") == "true" {
		cfg.Debug = true
	}

	path := getEnvOrDefault("VISION_CONFIG_PATH", "configs/vision.yaml")
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}

	return cfg, cfg.Validate()
}

// loadFile merges the YAML digest layout into cfg. A missing file leaves the
// defaults in place; a present but unreadable one is a configuration error.
func (c *Config) loadFile(path string) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()

	var fc fileConfig
	if err := yaml.NewDecoder(f).Decode(&fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if len(fc.Regions) > 0 {
		c.Regions = fc.Regions
	}
	if len(fc.Blacklist) > 0 {
		c.CategoryBlacklist = fc.Blacklist
	}
	if len(fc.Views) > 0 {
		c.Views = fc.Views
	}
	if len(fc.Zones) > 0 {
		c.Zones = fc.Zones
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// Validate checks the fatal preconditions. A missing API key aborts before
// any work; everything else degrades at runtime instead.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("YOUTUBE_API_KEY is required")
	}
	if len(c.Regions) == 0 && len(c.Zones) == 0 {
		return fmt.Errorf("at least one region or roster zone must be configured")
	}
	// Bucket+metric doubles as the tab id on the rendered page, so each
	// pair may appear only once.
	seen := make(map[string]struct{}, len(c.Views))
	for _, v := range c.Views {
		switch v.Bucket {
		case "music", "entertainment", "general", "breakout":
		default:
			return fmt.Errorf("view references unknown bucket %q", v.Bucket)
		}
		switch v.Metric {
		case "likes", "comments", "reach":
		default:
			return fmt.Errorf("view references unknown metric %q", v.Metric)
		}
		if v.Quota <= 0 {
			return fmt.Errorf("view %s/%s needs a positive quota", v.Bucket, v.Metric)
		}
		key := v.Bucket + "/" + v.Metric
		if _, dup := seen[key]; dup {
			return fmt.Errorf("view %s configured twice", key)
		}
		seen[key] = struct{}{}
	}
	return nil
}
