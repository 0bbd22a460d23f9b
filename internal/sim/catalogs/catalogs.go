package catalogs

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// WeaponCatalog holds the static weapon definitions. It is read-mostly after
// boot; admin overrides go through Override so the digest stays honest.
type WeaponCatalog struct {
	Defs   map[string]WeaponDef
	IDs    []string // sorted
	Digest string
}

type WeaponDef struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Damage      int     `json:"damage"`
	FireRateMs  int     `json:"fire_rate_ms"`
	Range       float64 `json:"range"`
	BulletSpeed float64 `json:"bullet_speed"` // units per second
	LifetimeMs  int     `json:"lifetime_ms"`
	AmmoCap     int     `json:"ammo_cap"`
}

func Load(path string) (*WeaponCatalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var defs []WeaponDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return nil, fmt.Errorf("weapons.json: %w", err)
	}
	return build(defs)
}

// Defaults returns the built-in weapon set, used when no weapons.json is
// present.
func Defaults() *WeaponCatalog {
	c, _ := build([]WeaponDef{
		{ID: "pistol", Name: "Pistol", Damage: 15, FireRateMs: 300, Range: 500, BulletSpeed: 800, LifetimeMs: 1500, AmmoCap: 50},
		{ID: "shotgun", Name: "Shotgun", Damage: 40, FireRateMs: 900, Range: 250, BulletSpeed: 600, LifetimeMs: 700, AmmoCap: 24},
		{ID: "smg", Name: "SMG", Damage: 8, FireRateMs: 100, Range: 400, BulletSpeed: 900, LifetimeMs: 1200, AmmoCap: 120},
		{ID: "rifle", Name: "Rifle", Damage: 25, FireRateMs: 500, Range: 900, BulletSpeed: 1400, LifetimeMs: 2000, AmmoCap: 40},
	})
	return c
}

func build(defs []WeaponDef) (*WeaponCatalog, error) {
	c := &WeaponCatalog{Defs: map[string]WeaponDef{}}
	for _, d := range defs {
		id := strings.TrimSpace(d.ID)
		if id == "" {
			return nil, fmt.Errorf("weapons: empty id")
		}
		if _, dup := c.Defs[id]; dup {
			return nil, fmt.Errorf("weapons: duplicate id %q", id)
		}
		if d.Damage <= 0 || d.FireRateMs <= 0 || d.BulletSpeed <= 0 || d.LifetimeMs <= 0 {
			return nil, fmt.Errorf("weapons: %s: damage/fire_rate/speed/lifetime must be positive", id)
		}
		d.ID = id
		c.Defs[id] = d
	}
	if len(c.Defs) == 0 {
		return nil, fmt.Errorf("weapons: no definitions")
	}
	c.rebuild()
	return c, nil
}

// Get returns the definition for id, falling back to the first weapon in
// sorted order when id is unknown.
func (c *WeaponCatalog) Get(id string) WeaponDef {
	if d, ok := c.Defs[id]; ok {
		return d
	}
	return c.Defs[c.IDs[0]]
}

func (c *WeaponCatalog) Has(id string) bool {
	_, ok := c.Defs[id]
	return ok
}

// Override replaces or inserts a definition (admin settings surface).
func (c *WeaponCatalog) Override(d WeaponDef) error {
	id := strings.TrimSpace(d.ID)
	if id == "" {
		return fmt.Errorf("weapons: empty id")
	}
	if d.Damage <= 0 || d.FireRateMs <= 0 || d.BulletSpeed <= 0 || d.LifetimeMs <= 0 {
		return fmt.Errorf("weapons: %s: damage/fire_rate/speed/lifetime must be positive", id)
	}
	d.ID = id
	c.Defs[id] = d
	c.rebuild()
	return nil
}

func (c *WeaponCatalog) rebuild() {
	ids := make([]string, 0, len(c.Defs))
	for id := range c.Defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	c.IDs = ids

	ordered := make([]WeaponDef, 0, len(ids))
	for _, id := range ids {
		ordered = append(ordered, c.Defs[id])
	}
	b, _ := json.Marshal(ordered)
	sum := sha256.Sum256(b)
	c.Digest = hex.EncodeToString(sum[:])
}
