package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Tuning struct {
	ProtocolVersion string `yaml:"protocol_version"`

	TickRateHz          int `yaml:"tick_rate_hz"`
	BroadcastEveryTicks int `yaml:"broadcast_every_ticks"`

	MaxSpeed       float64 `yaml:"max_speed"` // units per second
	RespawnDelayMs int     `yaml:"respawn_delay_ms"`
	KillReward     int     `yaml:"kill_reward"`
	StartingMoney  int     `yaml:"starting_money"`
	MaxHealth      int     `yaml:"max_health"`
	AmmoCap        int     `yaml:"ammo_cap"`
	HitRadius      float64 `yaml:"hit_radius"`
	DefaultWeapon  string  `yaml:"default_weapon"`

	GangMaxMembers    int `yaml:"gang_max_members"`
	GangWarDurationMs int `yaml:"gang_war_duration_ms"`
	GangWarAward      int `yaml:"gang_war_award"`

	SpawnCrowdRadius float64 `yaml:"spawn_crowd_radius"`

	RateLimits RateLimits `yaml:"rate_limits"`
}

type RateLimits struct {
	ChatWindowTicks int `yaml:"chat_window_ticks"`
	ChatMax         int `yaml:"chat_max"`
}

func Load(path string) (Tuning, error) {
	var t Tuning
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return t, fmt.Errorf("tuning.yaml: %w", err)
	}
	t.ApplyDefaults()
	return t, nil
}

func Defaults() Tuning {
	var t Tuning
	t.ApplyDefaults()
	return t
}

func (t *Tuning) ApplyDefaults() {
	if t.ProtocolVersion == "" {
		t.ProtocolVersion = "1.0"
	}
	if t.TickRateHz <= 0 {
		t.TickRateHz = 60
	}
	if t.BroadcastEveryTicks <= 0 {
		t.BroadcastEveryTicks = 10
	}
	if t.MaxSpeed <= 0 {
		t.MaxSpeed = 300
	}
	if t.RespawnDelayMs <= 0 {
		t.RespawnDelayMs = 5000
	}
	if t.KillReward <= 0 {
		t.KillReward = 100
	}
	if t.StartingMoney < 0 {
		t.StartingMoney = 0
	}
	if t.MaxHealth <= 0 {
		t.MaxHealth = 100
	}
	if t.AmmoCap <= 0 {
		t.AmmoCap = 50
	}
	if t.HitRadius <= 0 {
		t.HitRadius = 16
	}
	if t.DefaultWeapon == "" {
		t.DefaultWeapon = "pistol"
	}
	if t.GangMaxMembers <= 0 {
		t.GangMaxMembers = 4
	}
	if t.GangWarDurationMs <= 0 {
		t.GangWarDurationMs = 300000
	}
	if t.GangWarAward <= 0 {
		t.GangWarAward = 500
	}
	if t.SpawnCrowdRadius <= 0 {
		t.SpawnCrowdRadius = 100
	}
	if t.RateLimits.ChatWindowTicks <= 0 {
		t.RateLimits.ChatWindowTicks = 300
	}
	if t.RateLimits.ChatMax <= 0 {
		t.RateLimits.ChatMax = 10
	}
}
