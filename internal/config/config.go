package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/cashbook/internal/aggregate"
	"github.com/cleared-dev/cashbook/internal/ledger"
)

// FileName is the configuration file looked up inside the ledger directory.
const FileName = "cashbook.yaml"

// Config represents the top-level cashbook.yaml configuration.
type Config struct {
	Payables    []string       `yaml:"payables"`
	IgnoreFiles []string       `yaml:"ignore_files,omitempty"`
	Dues        DuesConfig     `yaml:"dues"`
	Rounding    RoundingConfig `yaml:"rounding"`
	Grid        GridConfig     `yaml:"grid"`
	Split       bool           `yaml:"split"`
	Git         GitConfig      `yaml:"git"`
}

// DuesConfig describes membership dues.
type DuesConfig struct {
	Pattern string `yaml:"pattern"` // regular expression over hashtags
	Rate    string `yaml:"rate"`    // expected monthly dues per member
}

// RoundingConfig sets the precision computed amounts are floored to.
type RoundingConfig struct {
	Places int32 `yaml:"places"`
}

// GridConfig controls the grid report.
type GridConfig struct {
	WindowDays    int    `yaml:"window_days"`
	UntaggedLabel string `yaml:"untagged_label"`
}

// GitConfig is the identity used for commits made by init and make_balance.
type GitConfig struct {
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a cashbook.yaml file from disk. Keys missing from the file
// keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config %s: %w", path, err)
	}
	return cfg, nil
}

// Discover loads explicit when set, else dir/cashbook.yaml when it exists,
// else the defaults. It returns the path it loaded, if any.
func Discover(dir, explicit string) (*Config, string, error) {
	path := explicit
	if path == "" {
		path = filepath.Join(dir, FileName)
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return Default(), "", nil
		}
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with the defaults of a small hackerspace ledger.
func Default() *Config {
	return &Config{
		Payables:    []string{"rent", "electricity", "internet", "water"},
		IgnoreFiles: []string{"membershipfees"},
		Dues: DuesConfig{
			Pattern: aggregate.DefaultDuesPattern,
			Rate:    "0",
		},
		Rounding: RoundingConfig{Places: 2},
		Grid: GridConfig{
			WindowDays:    640,
			UntaggedLabel: "Untagged",
		},
		Split: true,
		Git: GitConfig{
			AuthorName:  "cashbook",
			AuthorEmail: "cashbook@localhost",
		},
	}
}

// Validate checks the values that cannot be checked by YAML decoding.
func (c *Config) Validate() error {
	if c.Rounding.Places < 0 {
		return fmt.Errorf("rounding.places must not be negative, got %d", c.Rounding.Places)
	}
	if c.Grid.WindowDays < 0 {
		return fmt.Errorf("grid.window_days must not be negative, got %d", c.Grid.WindowDays)
	}
	if _, err := regexp.Compile(c.Dues.Pattern); err != nil {
		return fmt.Errorf("dues.pattern: %w", err)
	}
	if _, err := c.DuesRate(); err != nil {
		return err
	}
	return nil
}

// DuesRate parses dues.rate. An empty rate is zero.
func (c *Config) DuesRate() (decimal.Decimal, error) {
	if c.Dues.Rate == "" {
		return decimal.Zero, nil
	}
	rate, err := decimal.NewFromString(c.Dues.Rate)
	if err != nil {
		return decimal.Zero, fmt.Errorf("dues.rate %q: %w", c.Dues.Rate, err)
	}
	return rate, nil
}

// RoundingPolicy returns the rounding applied to computed amounts.
func (c *Config) RoundingPolicy() ledger.Rounding {
	return ledger.Rounding{Places: c.Rounding.Places}
}

// Ignored returns the file names the ledger loader must skip.
func (c *Config) Ignored() []string {
	return append([]string{FileName}, c.IgnoreFiles...)
}
