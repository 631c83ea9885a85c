// Package config loads and saves runway's TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"
	"github.com/theirongolddev/runway/internal/engine"
	"github.com/theirongolddev/runway/internal/model"
)

// DateLayout is the on-disk format for semester_end.
const DateLayout = "2006-01-02"

// DefaultSemesterDays is how far ahead the semester end defaults to.
const DefaultSemesterDays = 90

// Config holds all runway configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Budget     BudgetConfig     `toml:"budget"`
	Purchase   PurchaseConfig   `toml:"purchase"`
	Advisor    AdvisorConfig    `toml:"advisor"`
	Appearance AppearanceConfig `toml:"appearance"`
	Server     ServerConfig     `toml:"server"`
	Log        LogConfig        `toml:"log"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	Currency string `toml:"currency"`
}

// BudgetConfig holds the budget inputs. SemesterEnd is empty when unset.
type BudgetConfig struct {
	Balance       float64 `toml:"balance"`
	FixedCosts    float64 `toml:"fixed_costs"`
	SemesterEnd   string  `toml:"semester_end,omitempty"`
	BufferPercent int     `toml:"buffer_percent"`
}

// PurchaseConfig holds tiering and reference-unit settings.
type PurchaseConfig struct {
	Policy           string  `toml:"policy"`
	RejectMultiplier float64 `toml:"reject_multiplier"`
	UnitPrice        float64 `toml:"unit_price"`
	UnitLabel        string  `toml:"unit_label"`
}

// AdvisorConfig holds text-generation API settings.
type AdvisorConfig struct {
	APIKey     string `toml:"api_key,omitempty"`
	Model      string `toml:"model,omitempty"`
	BaseURL    string `toml:"base_url,omitempty"`
	TimeoutSec int    `toml:"timeout_sec,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{Currency: "$"},
		Budget: BudgetConfig{
			Balance:       1500,
			FixedCosts:    500,
			BufferPercent: 10,
		},
		Purchase: PurchaseConfig{
			Policy:           string(model.PolicyThreeTier),
			RejectMultiplier: 3,
			UnitPrice:        0.5,
			UnitLabel:        "packs of instant noodles",
		},
		Appearance: AppearanceConfig{Theme: "flexoki-dark"},
		Server:     ServerConfig{Addr: "127.0.0.1:8787"},
		Log:        LogConfig{Level: "info"},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "runway")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "runway")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// apiKeyEnv lists the environment variables checked for the advisor key, in
// priority order.
var apiKeyEnv = []string{"RUNWAY_GEMINI_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY"}

// GetAPIKey returns the advisor API key from env vars or config, in that order.
func GetAPIKey(cfg Config) string {
	for _, name := range apiKeyEnv {
		if key := strings.TrimSpace(os.Getenv(name)); key != "" {
			return key
		}
	}
	return strings.TrimSpace(cfg.Advisor.APIKey)
}

// SemesterEnd parses the configured semester end, defaulting to
// DefaultSemesterDays after today when unset.
func (c Config) SemesterEnd(today time.Time) (time.Time, error) {
	s := strings.TrimSpace(c.Budget.SemesterEnd)
	if s == "" {
		y, m, d := today.AddDate(0, 0, DefaultSemesterDays).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing semester_end %q: %w", s, err)
	}
	return t, nil
}

// Inputs converts the budget section into engine inputs for today.
func (c Config) Inputs(today time.Time) (model.Inputs, error) {
	end, err := c.SemesterEnd(today)
	if err != nil {
		return model.Inputs{}, err
	}
	return model.Inputs{
		CurrentBalance: decimal.NewFromFloat(c.Budget.Balance),
		FixedCosts:     decimal.NewFromFloat(c.Budget.FixedCosts),
		SemesterEnd:    end,
		Today:          today,
		BufferPercent:  c.Budget.BufferPercent,
	}, nil
}

// Tiers converts the purchase section as written. Only an empty unit label
// falls back to the default; numeric values are kept even when zero so the
// engine can reject them.
func (c Config) Tiers() (model.TierConfig, error) {
	tc := model.DefaultTierConfig()

	policy, err := model.ParseTierPolicy(c.Purchase.Policy)
	if err != nil {
		return tc, err
	}
	tc.Policy = policy
	tc.RejectMultiplier = decimal.NewFromFloat(c.Purchase.RejectMultiplier)
	tc.UnitPrice = decimal.NewFromFloat(c.Purchase.UnitPrice)
	if label := strings.TrimSpace(c.Purchase.UnitLabel); label != "" {
		tc.UnitLabel = label
	}
	return tc, nil
}

// TierConfig is Tiers followed by engine validation. A zero unit price or
// a three-tier multiplier below 1 fails with engine.ErrInvalidInput.
func (c Config) TierConfig() (model.TierConfig, error) {
	tc, err := c.Tiers()
	if err != nil {
		return tc, err
	}
	if err := engine.ValidateTierConfig(tc); err != nil {
		return tc, fmt.Errorf("config [purchase]: %w", err)
	}
	return tc, nil
}

// AdvisorTimeout returns the configured per-request advisor timeout, or zero
// to use the client default.
func (c Config) AdvisorTimeout() time.Duration {
	if c.Advisor.TimeoutSec <= 0 {
		return 0
	}
	return time.Duration(c.Advisor.TimeoutSec) * time.Second
}
