package world

type Config struct {
	ID                  string
	TickRateHz          int
	BroadcastEveryTicks int

	MaxSpeed       float64 // units per second
	RespawnDelayMs int
	KillReward     int
	StartingMoney  int
	MaxHealth      int
	AmmoCap        int
	HitRadius      float64
	DefaultWeapon  string

	GangMaxMembers    int
	GangWarDurationMs int
	GangWarAward      int

	SpawnCrowdRadius float64

	ChatWindowTicks int
	ChatMax         int
}

func (c *Config) applyDefaults() {
	if c.ID == "" {
		c.ID = "world_1"
	}
	if c.TickRateHz <= 0 {
		c.TickRateHz = 60
	}
	if c.BroadcastEveryTicks <= 0 {
		c.BroadcastEveryTicks = 10
	}
	if c.MaxSpeed <= 0 {
		c.MaxSpeed = 300
	}
	if c.RespawnDelayMs <= 0 {
		c.RespawnDelayMs = 5000
	}
	if c.KillReward <= 0 {
		c.KillReward = 100
	}
	if c.MaxHealth <= 0 {
		c.MaxHealth = 100
	}
	if c.AmmoCap <= 0 {
		c.AmmoCap = 50
	}
	if c.HitRadius <= 0 {
		c.HitRadius = 16
	}
	if c.DefaultWeapon == "" {
		c.DefaultWeapon = "pistol"
	}
	if c.GangMaxMembers <= 0 {
		c.GangMaxMembers = 4
	}
	if c.GangWarDurationMs <= 0 {
		c.GangWarDurationMs = 300000
	}
	if c.GangWarAward <= 0 {
		c.GangWarAward = 500
	}
	if c.SpawnCrowdRadius <= 0 {
		c.SpawnCrowdRadius = 100
	}
	if c.ChatWindowTicks <= 0 {
		c.ChatWindowTicks = 300
	}
	if c.ChatMax <= 0 {
		c.ChatMax = 10
	}
}

// ticksFromMs converts a millisecond duration to whole ticks, rounding up so
// a gate never fires early.
func (c Config) ticksFromMs(ms int) uint64 {
	if ms <= 0 {
		return 0
	}
	return uint64((ms*c.TickRateHz + 999) / 1000)
}

// moveBudget is the per-update displacement allowance for one tick.
func (c Config) moveBudget() float64 {
	return c.MaxSpeed / float64(c.TickRateHz)
}
