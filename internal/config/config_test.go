package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xvierd/smokefree-cli/internal/domain"
)

func TestDefaultConfig_RecoveryRates(t *testing.T) {
	cfg := DefaultConfig()
	rc := cfg.RecoveryDomain()

	tests := []struct {
		metric domain.MetricID
		want   float64
	}{
		{domain.MetricLung, 1.0},
		{domain.MetricHeart, 1.2},
		{domain.MetricEnergy, 1.5},
		{domain.MetricTaste, 2.0},
	}
	for _, tt := range tests {
		if got := rc.Rate(tt.metric); got != tt.want {
			t.Errorf("Rate(%s) = %v, want %v", tt.metric, got, tt.want)
		}
	}
	if rc.HorizonDays != 365 {
		t.Errorf("expected horizon 365, got %v", rc.HorizonDays)
	}
}

func TestDefaultConfig_MilestoneTable(t *testing.T) {
	cfg := DefaultConfig()
	table, err := cfg.MilestoneTable()
	if err != nil {
		t.Fatalf("MilestoneTable() error = %v", err)
	}
	if len(table) != 5 {
		t.Fatalf("expected 5 bands, got %d", len(table))
	}
	if table[4].UpperDays != 365 {
		t.Errorf("expected last band at 365, got %d", table[4].UpperDays)
	}
}

func TestDefaultHabits_FallsBackWhenInvalid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Habits.CigarettesPerPack = 0
	h := cfg.DefaultHabits()
	if h != domain.DefaultHabits() {
		t.Errorf("expected default habits, got %+v", h)
	}
}

func TestLoadFrom_CreatesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file to be created: %v", err)
	}
	if cfg.Recovery.EnergyRate != 1.5 {
		t.Errorf("expected energy rate 1.5, got %v", cfg.Recovery.EnergyRate)
	}
	if cfg.API.Timeout != 15*time.Second {
		t.Errorf("expected timeout 15s, got %v", cfg.API.Timeout)
	}
	if cfg.Server.Addr != "127.0.0.1:8787" {
		t.Errorf("expected default server addr, got %q", cfg.Server.Addr)
	}
}

func TestSaveTo_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg := DefaultConfig()
	cfg.Recovery.LungRate = 1.3
	cfg.Milestones.Thresholds = []int{2, 5, 20, 100, 400}
	cfg.Habits.Currency = "$"
	cfg.Storage.DataDir = dir

	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if loaded.Recovery.LungRate != 1.3 {
		t.Errorf("expected lung rate 1.3, got %v", loaded.Recovery.LungRate)
	}
	if loaded.Habits.Currency != "$" {
		t.Errorf("expected currency $, got %q", loaded.Habits.Currency)
	}
	table, err := loaded.MilestoneTable()
	if err != nil {
		t.Fatalf("MilestoneTable() error = %v", err)
	}
	if table[0].UpperDays != 2 || table[4].UpperDays != 400 {
		t.Errorf("unexpected thresholds: %+v", table)
	}
	if GetDBPath(loaded) != filepath.Join(dir, "smokefree.db") {
		t.Errorf("unexpected db path %q", GetDBPath(loaded))
	}
}

func TestLoadFrom_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	t.Setenv("SMOKEFREE_API_BASE_URL", "http://localhost:9999/")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:9999/" {
		t.Errorf("expected env override, got %q", cfg.API.BaseURL)
	}
}

func TestSetValue(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if _, err := LoadFrom(path); err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if err := SetValue(path, "recovery.heart_rate", "1.4"); err != nil {
		t.Fatalf("SetValue() error = %v", err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Recovery.HeartRate != 1.4 {
		t.Errorf("expected heart rate 1.4, got %v", cfg.Recovery.HeartRate)
	}

	if err := SetValue(path, "recovery.nope", "1"); err == nil {
		t.Error("expected error for unknown key")
	}
	if err := SetValue(path, "milestones.thresholds", "5,4,3,2,1"); err == nil {
		t.Error("expected error for unsorted thresholds")
	}
}

func TestGetConfigPath_HomeOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SMOKEFREE_HOME", dir)
	got, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() error = %v", err)
	}
	if got != filepath.Join(dir, "config.toml") {
		t.Errorf("GetConfigPath() = %q", got)
	}
}
