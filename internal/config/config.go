// Package config provides configuration management for smokefree.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/xvierd/smokefree-cli/internal/domain"
)

// Config holds all configuration for the smokefree application.
type Config struct {
	Recovery      RecoveryConfig     `mapstructure:"recovery"`
	Milestones    MilestoneConfig    `mapstructure:"milestones"`
	Habits        HabitsConfig       `mapstructure:"habits"`
	API           APIConfig          `mapstructure:"api"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	MCP           MCPConfig          `mapstructure:"mcp"`
	Server        ServerConfig       `mapstructure:"server"`
	Storage       StorageConfig      `mapstructure:"storage"`
	Log           LogConfig          `mapstructure:"log"`
	Theme         ThemeConfig        `mapstructure:"theme"`
}

// RecoveryConfig holds the per-metric recovery rate multipliers.
type RecoveryConfig struct {
	HorizonDays float64 `mapstructure:"horizon_days"`
	LungRate    float64 `mapstructure:"lung_rate"`
	HeartRate   float64 `mapstructure:"heart_rate"`
	EnergyRate  float64 `mapstructure:"energy_rate"`
	TasteRate   float64 `mapstructure:"taste_rate"`
}

// MilestoneConfig holds the milestone band boundaries in days.
type MilestoneConfig struct {
	Thresholds []int `mapstructure:"thresholds"`
}

// HabitsConfig holds the habit defaults used before the user sets their own.
type HabitsConfig struct {
	CigarettesPerDay  int     `mapstructure:"cigarettes_per_day"`
	CostPerPack       float64 `mapstructure:"cost_per_pack"`
	CigarettesPerPack int     `mapstructure:"cigarettes_per_pack"`
	Currency          string  `mapstructure:"currency"`
}

// APIConfig holds the remote backend settings.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// NotificationConfig holds notification settings.
type NotificationConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Sound   bool `mapstructure:"sound"`
}

// MCPConfig holds MCP server settings.
type MCPConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// ServerConfig holds the local HTTP API settings.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Debug bool `mapstructure:"debug"`
}

// ThemeConfig holds theme customization settings (colors and icons).
type ThemeConfig struct {
	ColorLung      string `mapstructure:"color_lung"`
	ColorHeart     string `mapstructure:"color_heart"`
	ColorEnergy    string `mapstructure:"color_energy"`
	ColorTaste     string `mapstructure:"color_taste"`
	ColorTitle     string `mapstructure:"color_title"`
	ColorMuted     string `mapstructure:"color_muted"`
	ColorMilestone string `mapstructure:"color_milestone"`
	IconApp        string `mapstructure:"icon_app"`
	IconMilestone  string `mapstructure:"icon_milestone"`
	IconSavings    string `mapstructure:"icon_savings"`
}

// DefaultThemeConfig returns the default theme configuration.
func DefaultThemeConfig() ThemeConfig {
	return ThemeConfig{
		ColorLung:      "#3B82F6",
		ColorHeart:     "#EF4444",
		ColorEnergy:    "#F97316",
		ColorTaste:     "#7C3AED",
		ColorTitle:     "#10B981",
		ColorMuted:     "#6B7280",
		ColorMilestone: "#F472B6",
		IconApp:        "🚭",
		IconMilestone:  "🏆",
		IconSavings:    "💰",
	}
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Recovery: RecoveryConfig{
			HorizonDays: domain.DefaultHorizonDays,
			LungRate:    1.0,
			HeartRate:   1.2,
			EnergyRate:  1.5,
			TasteRate:   2.0,
		},
		Milestones: MilestoneConfig{
			Thresholds: append([]int(nil), domain.DefaultMilestoneThresholds...),
		},
		Habits: HabitsConfig{
			CigarettesPerDay:  10,
			CostPerPack:       10.0,
			CigarettesPerPack: 20,
			Currency:          "₹",
		},
		API: APIConfig{
			BaseURL: "https://api.smokefree.app/",
			Timeout: 15 * time.Second,
		},
		Notifications: NotificationConfig{
			Enabled: true,
			Sound:   true,
		},
		MCP: MCPConfig{
			Enabled: true,
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8787",
		},
		Storage: StorageConfig{
			DataDir: "~/.smokefree",
		},
		Theme: DefaultThemeConfig(),
	}
}

// Load loads the configuration from the default config file.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from path, creating it with defaults
// when it does not exist. SMOKEFREE_* environment variables override the file.
func LoadFrom(configPath string) (*Config, error) {
	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	// If config file doesn't exist, create it with defaults
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := SaveTo(configPath, DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	v := newViper(configPath)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Expand ~ in data directory
	if cfg.Storage.DataDir == "~/.smokefree" || cfg.Storage.DataDir == "" {
		dir, err := defaultDataDir()
		if err != nil {
			return nil, err
		}
		cfg.Storage.DataDir = dir
	}

	return &cfg, nil
}

// Save saves the configuration to the default config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	return SaveTo(configPath, cfg)
}

// SaveTo writes the configuration to path.
func SaveTo(configPath string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")

	v.Set("recovery.horizon_days", cfg.Recovery.HorizonDays)
	v.Set("recovery.lung_rate", cfg.Recovery.LungRate)
	v.Set("recovery.heart_rate", cfg.Recovery.HeartRate)
	v.Set("recovery.energy_rate", cfg.Recovery.EnergyRate)
	v.Set("recovery.taste_rate", cfg.Recovery.TasteRate)
	v.Set("milestones.thresholds", cfg.Milestones.Thresholds)
	v.Set("habits.cigarettes_per_day", cfg.Habits.CigarettesPerDay)
	v.Set("habits.cost_per_pack", cfg.Habits.CostPerPack)
	v.Set("habits.cigarettes_per_pack", cfg.Habits.CigarettesPerPack)
	v.Set("habits.currency", cfg.Habits.Currency)
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.timeout", cfg.API.Timeout.String())
	v.Set("notifications.enabled", cfg.Notifications.Enabled)
	v.Set("notifications.sound", cfg.Notifications.Sound)
	v.Set("mcp.enabled", cfg.MCP.Enabled)
	v.Set("server.addr", cfg.Server.Addr)
	v.Set("storage.data_dir", cfg.Storage.DataDir)
	v.Set("log.debug", cfg.Log.Debug)
	v.Set("theme.color_lung", cfg.Theme.ColorLung)
	v.Set("theme.color_heart", cfg.Theme.ColorHeart)
	v.Set("theme.color_energy", cfg.Theme.ColorEnergy)
	v.Set("theme.color_taste", cfg.Theme.ColorTaste)
	v.Set("theme.color_title", cfg.Theme.ColorTitle)
	v.Set("theme.color_muted", cfg.Theme.ColorMuted)
	v.Set("theme.color_milestone", cfg.Theme.ColorMilestone)
	v.Set("theme.icon_app", cfg.Theme.IconApp)
	v.Set("theme.icon_milestone", cfg.Theme.IconMilestone)
	v.Set("theme.icon_savings", cfg.Theme.IconSavings)

	return v.WriteConfigAs(configPath)
}

// SetValue updates a single known key in the config file at path.
func SetValue(configPath, key, value string) error {
	v := newViper(configPath)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	key = strings.ToLower(key)
	if !isKnownKey(key) {
		return fmt.Errorf("unknown config key %q", key)
	}
	if key == "milestones.thresholds" {
		v.Set(key, strings.Split(value, ","))
	} else {
		v.Set(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if _, err := cfg.MilestoneTable(); err != nil {
		return err
	}
	return SaveTo(configPath, &cfg)
}

// Keys lists every settable config key.
func Keys() []string {
	v := viper.New()
	setDefaults(v)
	return v.AllKeys()
}

func isKnownKey(key string) bool {
	for _, k := range Keys() {
		if k == key {
			return true
		}
	}
	return false
}

// GetConfigDir returns the smokefree home directory.
// SMOKEFREE_HOME overrides the default ~/.smokefree.
func GetConfigDir() (string, error) {
	if dir := os.Getenv("SMOKEFREE_HOME"); dir != "" {
		return dir, nil
	}
	return defaultDataDir()
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// GetDBPath returns the path to the database file.
func GetDBPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "smokefree.db")
}

func defaultDataDir() (string, error) {
	if dir := os.Getenv("SMOKEFREE_HOME"); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".smokefree"), nil
}

func newViper(configPath string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	v.SetEnvPrefix("SMOKEFREE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

// setDefaults sets default values for viper.
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("recovery.horizon_days", d.Recovery.HorizonDays)
	v.SetDefault("recovery.lung_rate", d.Recovery.LungRate)
	v.SetDefault("recovery.heart_rate", d.Recovery.HeartRate)
	v.SetDefault("recovery.energy_rate", d.Recovery.EnergyRate)
	v.SetDefault("recovery.taste_rate", d.Recovery.TasteRate)
	v.SetDefault("milestones.thresholds", d.Milestones.Thresholds)
	v.SetDefault("habits.cigarettes_per_day", d.Habits.CigarettesPerDay)
	v.SetDefault("habits.cost_per_pack", d.Habits.CostPerPack)
	v.SetDefault("habits.cigarettes_per_pack", d.Habits.CigarettesPerPack)
	v.SetDefault("habits.currency", d.Habits.Currency)
	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.timeout", d.API.Timeout.String())
	v.SetDefault("notifications.enabled", true)
	v.SetDefault("notifications.sound", true)
	v.SetDefault("mcp.enabled", true)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("storage.data_dir", "~/.smokefree")
	v.SetDefault("log.debug", false)

	// Theme defaults
	theme := DefaultThemeConfig()
	v.SetDefault("theme.color_lung", theme.ColorLung)
	v.SetDefault("theme.color_heart", theme.ColorHeart)
	v.SetDefault("theme.color_energy", theme.ColorEnergy)
	v.SetDefault("theme.color_taste", theme.ColorTaste)
	v.SetDefault("theme.color_title", theme.ColorTitle)
	v.SetDefault("theme.color_muted", theme.ColorMuted)
	v.SetDefault("theme.color_milestone", theme.ColorMilestone)
	v.SetDefault("theme.icon_app", theme.IconApp)
	v.SetDefault("theme.icon_milestone", theme.IconMilestone)
	v.SetDefault("theme.icon_savings", theme.IconSavings)
}

// RecoveryDomain converts the config to the domain RecoveryConfig.
func (c *Config) RecoveryDomain() domain.RecoveryConfig {
	return domain.RecoveryConfig{
		HorizonDays: c.Recovery.HorizonDays,
		Rates: map[domain.MetricID]float64{
			domain.MetricLung:   c.Recovery.LungRate,
			domain.MetricHeart:  c.Recovery.HeartRate,
			domain.MetricEnergy: c.Recovery.EnergyRate,
			domain.MetricTaste:  c.Recovery.TasteRate,
		},
	}
}

// MilestoneTable builds the milestone bands from the configured thresholds.
func (c *Config) MilestoneTable() (domain.MilestoneTable, error) {
	t, err := domain.NewMilestoneTable(c.Milestones.Thresholds)
	if err != nil {
		return nil, fmt.Errorf("invalid milestones.thresholds: %w", err)
	}
	return t, nil
}

// DefaultHabits converts the habit defaults to the domain type.
func (c *Config) DefaultHabits() domain.Habits {
	h := domain.Habits{
		CigarettesPerDay:  c.Habits.CigarettesPerDay,
		CostPerPack:       c.Habits.CostPerPack,
		CigarettesPerPack: c.Habits.CigarettesPerPack,
		Currency:          c.Habits.Currency,
	}
	if h.Validate() != nil {
		return domain.DefaultHabits()
	}
	return h
}
