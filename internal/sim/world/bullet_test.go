package world

import (
	"testing"
)

// plantBullet installs a bullet directly so tests can position it without
// going through the shoot path.
func plantBullet(w *World, owner *Player, pos, dir Vec2, lifetime float64) *Bullet {
	b := &Bullet{
		ID:       w.newBulletID(),
		OwnerID:  owner.ID,
		Pos:      pos,
		Dir:      dir,
		Damage:   15,
		Speed:    800,
		Lifetime: lifetime,
		WeaponID: owner.WeaponID,
	}
	w.bullets[b.ID] = b
	return b
}

func TestBullet_ExpiresAfterLifetime(t *testing.T) {
	w := newTestWorld(t)
	p := joinPlayer(t, w, "owner")
	plantBullet(w, p, Vec2{X: 500, Y: 500}, Vec2{X: 0, Y: 1}, 0.1)

	dt := 1.0 / 60.0
	// 0.1s at 60Hz is gone after 6 steps.
	for i := 0; i < 6; i++ {
		w.advanceBullets(dt)
	}
	if len(w.bullets) != 0 {
		t.Fatalf("expired bullet still present")
	}
}

func TestBullet_PurgedOutsideToleranceBand(t *testing.T) {
	w := newTestWorld(t)
	p := joinPlayer(t, w, "owner")
	// Heading out past 2x the 2048-unit map width.
	b := plantBullet(w, p, Vec2{X: 4090, Y: 500}, Vec2{X: 1, Y: 0}, 100)
	w.advanceBullets(1.0 / 60.0)
	if _, ok := w.bullets[b.ID]; ok {
		t.Fatalf("out-of-band bullet not purged")
	}

	// Just inside the band survives.
	b2 := plantBullet(w, p, Vec2{X: -1000, Y: 500}, Vec2{X: 0, Y: 1}, 100)
	w.advanceBullets(1.0 / 60.0)
	if _, ok := w.bullets[b2.ID]; !ok {
		t.Fatalf("in-band off-map bullet purged")
	}
}

func TestBullet_HitsNearestTargetAndDespawns(t *testing.T) {
	w := newTestWorld(t)
	shooter := joinPlayer(t, w, "shooter")
	target := joinPlayer(t, w, "target")
	shooter.Pos = Vec2{X: 400, Y: 400}
	target.Pos = Vec2{X: 430, Y: 400}
	startHealth := target.Health

	dt := 1.0 / 60.0
	// 800 u/s * dt moves the bullet ~13.3 units per step toward the target.
	plantBullet(w, shooter, shooter.Pos, Vec2{X: 1, Y: 0}, 100)
	for i := 0; i < 5 && len(w.bullets) > 0; i++ {
		w.advanceBullets(dt)
	}
	if len(w.bullets) != 0 {
		t.Fatalf("bullet did not despawn on hit")
	}
	if target.Health != startHealth-15 {
		t.Fatalf("target health = %d, want %d", target.Health, startHealth-15)
	}
	if shooter.Health != shooter.MaxHealth {
		t.Fatalf("shooter damaged by own bullet")
	}
}

func TestBullet_OwnerIsImmune(t *testing.T) {
	w := newTestWorld(t)
	p := joinPlayer(t, w, "loner")
	p.Pos = Vec2{X: 400, Y: 400}
	// Bullet sitting on top of its owner never connects.
	b := plantBullet(w, p, p.Pos, Vec2{X: 1, Y: 0}, 100)
	w.advanceBullets(1.0 / 60.0)
	if _, ok := w.bullets[b.ID]; !ok {
		t.Fatalf("bullet consumed against its owner")
	}
	if p.Health != p.MaxHealth {
		t.Fatalf("owner damaged: %d", p.Health)
	}
}

func TestBullet_IgnoresDeadPlayers(t *testing.T) {
	w := newTestWorld(t)
	shooter := joinPlayer(t, w, "shooter")
	corpse := joinPlayer(t, w, "corpse")
	shooter.Pos = Vec2{X: 400, Y: 400}
	corpse.Pos = Vec2{X: 410, Y: 400}
	corpse.IsAlive = false
	corpse.Health = 0

	b := plantBullet(w, shooter, Vec2{X: 405, Y: 400}, Vec2{X: 1, Y: 0}, 100)
	w.advanceBullets(1.0 / 60.0)
	if _, ok := w.bullets[b.ID]; !ok {
		t.Fatalf("bullet consumed against a dead player")
	}
	if corpse.Deaths != 0 {
		t.Fatalf("dead player killed again")
	}
}

func TestBullet_LifetimeNeverNegativeInFlight(t *testing.T) {
	w := newTestWorld(t)
	p := joinPlayer(t, w, "owner")
	plantBullet(w, p, Vec2{X: 500, Y: 500}, Vec2{X: 0, Y: 1}, 1.5)
	for i := 0; i < 200; i++ {
		w.advanceBullets(1.0 / 60.0)
		for _, b := range w.bullets {
			if b.Lifetime <= 0 {
				t.Fatalf("bullet retained with lifetime %f", b.Lifetime)
			}
		}
	}
}
