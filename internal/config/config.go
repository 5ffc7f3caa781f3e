/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mikeb26/boylstonchessclub-pairings/internal"
	"github.com/mikeb26/boylstonchessclub-pairings/swisssystems"
	"github.com/mikeb26/boylstonchessclub-pairings/tournament"
)

// Config holds the swisspair settings.
type Config struct {
	System                string            `yaml:"system"`
	InitialColor          string            `yaml:"initial_color"`
	AllowRepeatPairings   bool              `yaml:"allow_repeat_pairings"`
	RelaxFinalRoundColors bool              `yaml:"relax_final_round_colors"`
	PairingTimeout        time.Duration     `yaml:"pairing_timeout"`
	PointSystem           PointSystemConfig `yaml:"point_system"`
	Storage               StorageConfig     `yaml:"storage"`
	HTTPCache             HTTPCacheConfig   `yaml:"http_cache"`
	Log                   LogConfig         `yaml:"log"`
}

// PointSystemConfig holds the points awarded per result.
type PointSystemConfig struct {
	Win         float64 `yaml:"win"`
	Draw        float64 `yaml:"draw"`
	Loss        float64 `yaml:"loss"`
	ForfeitWin  float64 `yaml:"forfeit_win"`
	ForfeitLoss float64 `yaml:"forfeit_loss"`
	PairingBye  float64 `yaml:"pairing_bye"`
	HalfBye     float64 `yaml:"half_bye"`
	ZeroBye     float64 `yaml:"zero_bye"`
}

// StorageConfig selects where tournament files live. A non-empty Bucket
// selects S3; otherwise files are kept under Dir.
type StorageConfig struct {
	Dir    string `yaml:"dir"`
	Bucket string `yaml:"bucket"`
	Gzip   bool   `yaml:"gzip"`
}

// HTTPCacheConfig holds the S3 response cache used for USCF and BCC fetches.
type HTTPCacheConfig struct {
	Bucket string        `yaml:"bucket"`
	TTL    time.Duration `yaml:"ttl"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		System:         swisssystems.Burstein.String(),
		InitialColor:   "w",
		PairingTimeout: 30 * time.Second,
		PointSystem: PointSystemConfig{
			Win:        1,
			Draw:       0.5,
			ForfeitWin: 1,
			PairingBye: 1,
			HalfBye:    0.5,
		},
		Storage:   StorageConfig{Dir: "."},
		HTTPCache: HTTPCacheConfig{Bucket: internal.WebCacheBucket, TTL: time.Hour},
		Log:       LogConfig{Level: "info", Format: "console"},
	}
}

// LoadConfig loads the configuration from a YAML file. A missing file yields
// the defaults. Environment variables override both.
func LoadConfig(filename string) (*Config, error) {
	cfg := Default()

	if filename != "" {
		data, err := os.ReadFile(filename)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to unmarshal config: %w", err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// envBool sets *dst from the named variable when it is set.
func envBool(name string, dst *bool) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid %v value: %w", name, err)
	}
	*dst = b

	return nil
}

func (cfg *Config) applyEnv() error {
	if v := os.Getenv("SWISSPAIR_SYSTEM"); v != "" {
		cfg.System = v
	}
	if v := os.Getenv("SWISSPAIR_INITIAL_COLOR"); v != "" {
		cfg.InitialColor = v
	}
	if err := envBool("SWISSPAIR_ALLOW_REPEAT_PAIRINGS", &cfg.AllowRepeatPairings); err != nil {
		return err
	}
	if err := envBool("SWISSPAIR_RELAX_FINAL_ROUND_COLORS", &cfg.RelaxFinalRoundColors); err != nil {
		return err
	}
	if v := os.Getenv("SWISSPAIR_PAIRING_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SWISSPAIR_PAIRING_TIMEOUT value: %w", err)
		}
		cfg.PairingTimeout = d
	}
	if v := os.Getenv("SWISSPAIR_STORAGE_DIR"); v != "" {
		cfg.Storage.Dir = v
	}
	if v := os.Getenv("SWISSPAIR_STORAGE_BUCKET"); v != "" {
		cfg.Storage.Bucket = v
	}
	if err := envBool("SWISSPAIR_STORAGE_GZIP", &cfg.Storage.Gzip); err != nil {
		return err
	}
	if v := os.Getenv("SWISSPAIR_HTTP_CACHE_BUCKET"); v != "" {
		cfg.HTTPCache.Bucket = v
	}
	if v := os.Getenv("SWISSPAIR_HTTP_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SWISSPAIR_HTTP_CACHE_TTL value: %w", err)
		}
		cfg.HTTPCache.TTL = d
	}
	if v := os.Getenv("SWISSPAIR_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("SWISSPAIR_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}

	return nil
}

// Validate rejects settings the pairing tools cannot act on.
func (cfg *Config) Validate() error {
	if _, err := swisssystems.ParseSwissSystem(cfg.System); err != nil {
		return err
	}
	if _, err := tournament.ParseColor(cfg.InitialColor); err != nil {
		return fmt.Errorf("initial_color: %w", err)
	}
	if cfg.PairingTimeout <= 0 {
		return fmt.Errorf("pairing_timeout must be positive; got %v", cfg.PairingTimeout)
	}

	return nil
}

// SwissSystem returns the configured pairing system.
func (cfg *Config) SwissSystem() swisssystems.SwissSystem {
	s, _ := swisssystems.ParseSwissSystem(cfg.System)
	return s
}

// PointSystemValue converts the configured points to tenths.
func (cfg *Config) PointSystemValue() tournament.PointSystem {
	ps := cfg.PointSystem
	return tournament.PointSystem{
		Win:         tournament.PointsFromFloat(ps.Win),
		Draw:        tournament.PointsFromFloat(ps.Draw),
		Loss:        tournament.PointsFromFloat(ps.Loss),
		ForfeitWin:  tournament.PointsFromFloat(ps.ForfeitWin),
		ForfeitLoss: tournament.PointsFromFloat(ps.ForfeitLoss),
		PairingBye:  tournament.PointsFromFloat(ps.PairingBye),
		HalfBye:     tournament.PointsFromFloat(ps.HalfBye),
		ZeroBye:     tournament.PointsFromFloat(ps.ZeroBye),
	}
}

// Apply copies the rule settings onto a newly created tournament.
func (cfg *Config) Apply(t *tournament.Tournament) {
	t.PointSystem = cfg.PointSystemValue()
	if c, err := tournament.ParseColor(cfg.InitialColor); err == nil &&
		c != tournament.ColorNone {
		t.InitialColor = c
	}
	t.AllowRepeatPairings = cfg.AllowRepeatPairings
	t.RelaxFinalRoundColors = cfg.RelaxFinalRoundColors
}
