package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lixenwraith/tile-wall/constants"
)

func noEnv(string) (string, bool) { return "", false }

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func writeEnvFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg, err := LoadFrom("test", nil, "", noEnv)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.PollInterval != constants.PollInterval {
		t.Errorf("PollInterval = %v, want %v", cfg.PollInterval, constants.PollInterval)
	}
	if cfg.TickInterval != constants.TickInterval {
		t.Errorf("TickInterval = %v, want %v", cfg.TickInterval, constants.TickInterval)
	}
	if cfg.Group != constants.DefaultGroup {
		t.Errorf("Group = %d, want %d", cfg.Group, constants.DefaultGroup)
	}
	if cfg.UnitID == "" {
		t.Error("UnitID should be generated when unset")
	}
	if cfg.GPIO().Enabled() {
		t.Error("GPIO should be disabled by default")
	}
}

func TestMissingEnvFileIgnored(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.env")
	if _, err := LoadFrom("test", nil, missing, noEnv); err != nil {
		t.Fatalf("missing env file should be ignored, got %v", err)
	}
}

func TestPrecedence(t *testing.T) {
	path := writeEnvFile(t, "TILEWALL_GROUP=7\nTILEWALL_TICK=1s\nTILEWALL_POLL=2s\nTILEWALL_UNIT_ID=fromfile\n")

	t.Run("file over defaults", func(t *testing.T) {
		cfg, err := LoadFrom("test", nil, path, noEnv)
		if err != nil {
			t.Fatalf("LoadFrom: %v", err)
		}
		if cfg.Group != 7 || cfg.TickInterval != time.Second || cfg.UnitID != "fromfile" {
			t.Errorf("got group=%d tick=%v id=%q", cfg.Group, cfg.TickInterval, cfg.UnitID)
		}
	})

	t.Run("environment over file", func(t *testing.T) {
		env := envMap(map[string]string{"TILEWALL_GROUP": "9"})
		cfg, err := LoadFrom("test", nil, path, env)
		if err != nil {
			t.Fatalf("LoadFrom: %v", err)
		}
		if cfg.Group != 9 {
			t.Errorf("Group = %d, want 9", cfg.Group)
		}
		if cfg.TickInterval != time.Second {
			t.Errorf("TickInterval = %v, want file value 1s", cfg.TickInterval)
		}
	})

	t.Run("flags over environment", func(t *testing.T) {
		env := envMap(map[string]string{"TILEWALL_GROUP": "9", "TILEWALL_POLL": "3s"})
		cfg, err := LoadFrom("test", []string{"-group", "11", "-id", "cli"}, path, env)
		if err != nil {
			t.Fatalf("LoadFrom: %v", err)
		}
		if cfg.Group != 11 {
			t.Errorf("Group = %d, want 11", cfg.Group)
		}
		if cfg.UnitID != "cli" {
			t.Errorf("UnitID = %q, want cli", cfg.UnitID)
		}
		if cfg.PollInterval != 3*time.Second {
			t.Errorf("PollInterval = %v, want 3s", cfg.PollInterval)
		}
	})
}

func TestLoadUsesProcessEnvironment(t *testing.T) {
	t.Setenv("TILEWALL_UNITS", "5")
	cfg, err := Load("test", nil, "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Units != 5 {
		t.Errorf("Units = %d, want 5", cfg.Units)
	}
}

func TestInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"bad int", map[string]string{"TILEWALL_GROUP": "x"}, nil},
		{"bad duration", map[string]string{"TILEWALL_TICK": "soon"}, nil},
		{"bad bool", map[string]string{"TILEWALL_SOUND": "maybe"}, nil},
		{"zero tick", nil, []string{"-tick", "0s"}},
		{"negative poll", nil, []string{"-poll", "-1s"}},
		{"too many units", nil, []string{"-units", "10"}},
		{"drop rate one", nil, []string{"-drop", "1"}},
		{"shared gpio line", nil, []string{"-gpio-chip", "gpiochip0", "-gpio-leader", "5", "-gpio-start", "5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFrom("test", tt.args, "", envMap(tt.env))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("err = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestUnknownFlag(t *testing.T) {
	if _, err := LoadFrom("test", []string{"-bogus"}, "", noEnv); err == nil {
		t.Error("unknown flag should fail")
	}
}

func TestDerivedConfigs(t *testing.T) {
	cfg, err := LoadFrom("test", []string{
		"-group", "3", "-id", "u1", "-addr", "239.1.2.3:5000",
		"-tick", "50ms", "-poll", "100ms",
		"-gpio-chip", "gpiochip0", "-gpio-leader", "4", "-gpio-start", "5",
		"-drop", "0.25", "-dup", "0.5", "-seed", "42",
	}, "", noEnv)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	nc := cfg.Network()
	if nc.Group != 3 || nc.UnitID != "u1" || nc.Address != "239.1.2.3:5000" {
		t.Errorf("Network() = %+v", nc)
	}

	uc := cfg.Unit()
	if uc.TickInterval != 50*time.Millisecond || uc.PollInterval != 100*time.Millisecond {
		t.Errorf("Unit() = %+v", uc)
	}
	if uc.InboxSize <= 0 {
		t.Errorf("Unit().InboxSize = %d, want positive", uc.InboxSize)
	}

	gc := cfg.GPIO()
	if !gc.Enabled() || gc.LeaderLine != 4 || gc.StartLine != 5 {
		t.Errorf("GPIO() = %+v", gc)
	}

	bc := cfg.Bus()
	if bc.DropRate != 0.25 || bc.DuplicateRate != 0.5 || bc.Seed != 42 {
		t.Errorf("Bus() = %+v", bc)
	}
}
