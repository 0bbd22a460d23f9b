package tuning

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	d := Defaults()
	if d.TickRateHz != 60 || d.BroadcastEveryTicks != 10 {
		t.Fatalf("tick defaults: %+v", d)
	}
	if d.MaxSpeed != 300 || d.RespawnDelayMs != 5000 || d.MaxHealth != 100 {
		t.Fatalf("combat defaults: %+v", d)
	}
	if d.GangMaxMembers != 4 || d.GangWarDurationMs != 300000 || d.GangWarAward != 500 {
		t.Fatalf("gang defaults: %+v", d)
	}
	if d.RateLimits.ChatMax != 10 || d.RateLimits.ChatWindowTicks != 300 {
		t.Fatalf("rate limit defaults: %+v", d.RateLimits)
	}
}

func TestLoad_OverridesAndFillsGaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	blob := `
tick_rate_hz: 30
max_speed: 150
gang_max_members: 8
rate_limits:
  chat_max: 3
`
	if err := os.WriteFile(path, []byte(blob), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.TickRateHz != 30 || got.MaxSpeed != 150 || got.GangMaxMembers != 8 {
		t.Fatalf("overrides lost: %+v", got)
	}
	if got.RateLimits.ChatMax != 3 || got.RateLimits.ChatWindowTicks != 300 {
		t.Fatalf("partial rate limits: %+v", got.RateLimits)
	}
	// Unset keys fall back to defaults.
	if got.RespawnDelayMs != 5000 || got.DefaultWeapon != "pistol" {
		t.Fatalf("gaps not filled: %+v", got)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("tick_rate_hz: [oops"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("malformed yaml accepted")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("missing file accepted")
	}
}
