package world

import (
	"sort"

	"github.com/incognitogotwifi/UrbanNexus-sub000/internal/protocol"
	"github.com/incognitogotwifi/UrbanNexus-sub000/internal/sim/catalogs"
)

type Bullet struct {
	ID       string
	OwnerID  string
	Pos      Vec2
	Dir      Vec2 // unit vector
	Damage   int
	Speed    float64 // units per second
	Lifetime float64 // seconds remaining
	WeaponID string
}

func (w *World) spawnBullet(owner *Player, dir Vec2, weapon catalogs.WeaponDef) *Bullet {
	b := &Bullet{
		ID:       w.newBulletID(),
		OwnerID:  owner.ID,
		Pos:      owner.Pos,
		Dir:      dir,
		Damage:   weapon.Damage,
		Speed:    weapon.BulletSpeed,
		Lifetime: float64(weapon.LifetimeMs) / 1000.0,
		WeaponID: weapon.ID,
	}
	w.bullets[b.ID] = b
	return b
}

// advanceBullets moves every bullet by dir*speed*dt, expires lifetimes, and
// purges bullets that leave the tolerance band [-mapSize, 2*mapSize] on
// either axis. Surviving bullets are then swept against players.
func (w *World) advanceBullets(dt float64) {
	m := w.maps.Active()
	mw, mh := m.PixelWidth(), m.PixelHeight()

	ids := make([]string, 0, len(w.bullets))
	for id := range w.bullets {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		b := w.bullets[id]
		b.Pos = b.Pos.Add(b.Dir.Scale(b.Speed * dt))
		b.Lifetime -= dt
		if b.Lifetime <= 0 ||
			b.Pos.X < -mw || b.Pos.X > 2*mw ||
			b.Pos.Y < -mh || b.Pos.Y > 2*mh {
			delete(w.bullets, id)
			continue
		}
		if hit := w.firstHit(b); hit != nil {
			delete(w.bullets, id)
			w.damagePlayer(hit.ID, b.Damage, b.OwnerID)
		}
	}
}

// firstHit returns the closest living non-owner player within the hit
// radius, or nil.
func (w *World) firstHit(b *Bullet) *Player {
	var best *Player
	bestDist := w.cfg.HitRadius
	ids := make([]string, 0, len(w.players))
	for id := range w.players {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		p := w.players[id]
		if !p.IsAlive || p.ID == b.OwnerID {
			continue
		}
		if d := Dist(b.Pos, p.Pos); d <= bestDist {
			best = p
			bestDist = d
		}
	}
	return best
}

func (b *Bullet) wireInfo() protocol.BulletInfo {
	return protocol.BulletInfo{
		ID:       b.ID,
		OwnerID:  b.OwnerID,
		Position: protocol.Vec2{X: b.Pos.X, Y: b.Pos.Y},
		Dir:      protocol.Vec2{X: b.Dir.X, Y: b.Dir.Y},
		Damage:   b.Damage,
		Speed:    b.Speed,
		WeaponID: b.WeaponID,
	}
}
