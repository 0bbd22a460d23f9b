package catalogs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults_SortedIDsAndDigest(t *testing.T) {
	c := Defaults()
	if len(c.IDs) != 4 {
		t.Fatalf("ids = %v", c.IDs)
	}
	for i := 1; i < len(c.IDs); i++ {
		if c.IDs[i-1] >= c.IDs[i] {
			t.Fatalf("ids not sorted: %v", c.IDs)
		}
	}
	if len(c.Digest) != 64 {
		t.Fatalf("digest = %q", c.Digest)
	}
	if Defaults().Digest != c.Digest {
		t.Fatalf("digest not stable across builds")
	}
}

func TestGet_FallsBackToFirstSorted(t *testing.T) {
	c := Defaults()
	if got := c.Get("pistol"); got.ID != "pistol" {
		t.Fatalf("get = %+v", got)
	}
	if got := c.Get("railgun"); got.ID != c.IDs[0] {
		t.Fatalf("fallback = %+v", got)
	}
	if c.Has("railgun") {
		t.Fatalf("has unknown weapon")
	}
}

func TestLoad_FileAndValidation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "weapons.json")
	blob := `[
		{"id":"laser","name":"Laser","damage":5,"fire_rate_ms":50,"range":600,"bullet_speed":2000,"lifetime_ms":400,"ammo_cap":200}
	]`
	if err := os.WriteFile(path, []byte(blob), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !c.Has("laser") || c.Get("laser").Damage != 5 {
		t.Fatalf("loaded catalog: %+v", c.Defs)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`[{"id":"x","damage":0,"fire_rate_ms":100,"bullet_speed":1,"lifetime_ms":1}]`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(bad); err == nil {
		t.Fatalf("zero damage accepted")
	}

	dup := filepath.Join(dir, "dup.json")
	two := `[
		{"id":"a","damage":1,"fire_rate_ms":1,"bullet_speed":1,"lifetime_ms":1},
		{"id":"a","damage":1,"fire_rate_ms":1,"bullet_speed":1,"lifetime_ms":1}
	]`
	if err := os.WriteFile(dup, []byte(two), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(dup); err == nil {
		t.Fatalf("duplicate id accepted")
	}
}

func TestOverride_RebuildsDigest(t *testing.T) {
	c := Defaults()
	before := c.Digest
	if err := c.Override(WeaponDef{ID: "pistol", Name: "Pistol", Damage: 99, FireRateMs: 300, BulletSpeed: 800, LifetimeMs: 1500}); err != nil {
		t.Fatalf("override: %v", err)
	}
	if c.Get("pistol").Damage != 99 {
		t.Fatalf("override not applied")
	}
	if c.Digest == before {
		t.Fatalf("digest unchanged after override")
	}

	if err := c.Override(WeaponDef{ID: "", Damage: 1, FireRateMs: 1, BulletSpeed: 1, LifetimeMs: 1}); err == nil {
		t.Fatalf("empty id accepted")
	}
	if err := c.Override(WeaponDef{ID: "new", Damage: -1, FireRateMs: 1, BulletSpeed: 1, LifetimeMs: 1}); err == nil {
		t.Fatalf("negative damage accepted")
	}

	// Inserting a new id extends the sorted set.
	if err := c.Override(WeaponDef{ID: "zapper", Name: "Zapper", Damage: 1, FireRateMs: 100, BulletSpeed: 500, LifetimeMs: 500}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if c.IDs[len(c.IDs)-1] != "zapper" {
		t.Fatalf("ids after insert: %v", c.IDs)
	}
}
