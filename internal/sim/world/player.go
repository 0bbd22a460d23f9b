package world

import (
	"github.com/incognitogotwifi/UrbanNexus-sub000/internal/protocol"
)

const (
	RankLeader = "LEADER"
	RankMember = "MEMBER"
)

type Player struct {
	ID       string
	Name     string
	Username string // durable identity; empty for ephemeral sessions

	Pos       Vec2
	Health    int
	MaxHealth int
	Ammo      int
	Money     int
	Kills     int
	Deaths    int
	WeaponID  string
	IsAlive   bool
	GangID    string
	GangRank  string
	Color     string

	// Fire-rate gate. LastShotTick is meaningful only when hasShot is set,
	// so the first shot after joining is never gated.
	LastShotTick uint64
	hasShot      bool

	rl map[string]*rateWindow
}

type rateWindow struct {
	StartTick uint64
	Count     int
	Window    uint64
	Max       int
}

// allow counts one action against the window, resetting it when expired.
func (p *Player) allow(name string, nowTick uint64, window uint64, max int) bool {
	if p.rl == nil {
		p.rl = map[string]*rateWindow{}
	}
	rw := p.rl[name]
	if rw == nil || nowTick-rw.StartTick >= rw.Window {
		p.rl[name] = &rateWindow{StartTick: nowTick, Count: 1, Window: window, Max: max}
		return true
	}
	if rw.Count >= rw.Max {
		return false
	}
	rw.Count++
	return true
}

var defaultColors = []string{"#e6194b", "#3cb44b", "#ffe119", "#4363d8", "#f58231", "#911eb4", "#46f0f0", "#f032e6"}

func (w *World) createPlayer(req JoinRequest) *Player {
	sp := w.maps.SpawnPoint("")
	p := &Player{
		ID:        w.newPlayerID(),
		Name:      req.Name,
		Username:  req.Username,
		Pos:       Vec2{X: sp.X, Y: sp.Y},
		MaxHealth: w.cfg.MaxHealth,
		Health:    w.cfg.MaxHealth,
		Money:     w.cfg.StartingMoney,
		WeaponID:  w.cfg.DefaultWeapon,
		IsAlive:   true,
		Color:     req.Color,
	}
	p.Ammo = w.ammoCapFor(p.WeaponID)
	if req.Profile != nil {
		p.Money = req.Profile.Money
		p.Kills = req.Profile.Kills
		p.Deaths = req.Profile.Deaths
		if req.Profile.WeaponID != "" && w.weapons.Has(req.Profile.WeaponID) {
			p.WeaponID = req.Profile.WeaponID
			p.Ammo = w.ammoCapFor(p.WeaponID)
		}
	}
	if p.Color == "" {
		p.Color = defaultColors[int(w.nextPlayerNum.Load())%len(defaultColors)]
	}
	w.players[p.ID] = p
	return p
}

// ammoCapFor prefers the weapon's own capacity, falling back to the world
// cap.
func (w *World) ammoCapFor(weaponID string) int {
	if d := w.weapons.Get(weaponID); d.AmmoCap > 0 {
		return d.AmmoCap
	}
	return w.cfg.AmmoCap
}

// updatePlayerPosition applies the anti-cheat movement check. A rejected
// move is dropped silently; the server's last-known position stays
// authoritative.
func (w *World) updatePlayerPosition(p *Player, pos Vec2) bool {
	if p == nil || !p.IsAlive {
		return false
	}
	if Dist(p.Pos, pos) > w.cfg.moveBudget() {
		return false
	}
	m := w.maps.Active()
	if !m.InBounds(pos.X, pos.Y) || m.CheckCollision(pos.X, pos.Y) {
		return false
	}
	p.Pos = pos
	return true
}

// handlePlayerShoot validates fire-rate and ammo, then spawns a bullet with
// stats drawn from the weapon catalog.
func (w *World) handlePlayerShoot(p *Player, dir Vec2, nowTick uint64) *Bullet {
	if p == nil || !p.IsAlive || p.Ammo <= 0 {
		return nil
	}
	weapon := w.weapons.Get(p.WeaponID)
	if p.hasShot && nowTick-p.LastShotTick < w.cfg.ticksFromMs(weapon.FireRateMs) {
		return nil
	}
	unit, ok := dir.Normalize()
	if !ok {
		return nil
	}
	p.Ammo--
	p.LastShotTick = nowTick
	p.hasShot = true
	return w.spawnBullet(p, unit, weapon)
}

// damagePlayer subtracts damage clamped at zero and transitions to
// killPlayer when health runs out. Dead players take no further damage.
func (w *World) damagePlayer(id string, dmg int, shooterID string) {
	p := w.players[id]
	if p == nil || !p.IsAlive || dmg <= 0 {
		return
	}
	p.Health -= dmg
	if p.Health < 0 {
		p.Health = 0
	}
	w.broadcast(protocol.PlayerHitMsg{
		Type:      protocol.TypePlayerHit,
		PlayerID:  p.ID,
		Damage:    dmg,
		ShooterID: shooterID,
		Health:    p.Health,
	})
	if p.Health == 0 {
		w.killPlayer(p, shooterID)
	}
}

func (w *World) killPlayer(p *Player, killerID string) {
	p.IsAlive = false
	p.Deaths++
	if g := w.gangs[p.GangID]; g != nil {
		g.Deaths++
	}
	if killer := w.players[killerID]; killer != nil && killer.ID != p.ID {
		killer.Kills++
		killer.Money += w.cfg.KillReward
		if g := w.gangs[killer.GangID]; g != nil {
			g.Kills++
		}
	}
	w.broadcast(protocol.PlayerDeathMsg{
		Type:     protocol.TypePlayerDeath,
		PlayerID: p.ID,
		KillerID: killerID,
	})
	w.scheduleRespawn(p.ID)
}

func (w *World) scheduleRespawn(playerID string) {
	w.scheduleTask(taskRespawn, playerID, w.tick.Load()+w.cfg.ticksFromMs(w.cfg.RespawnDelayMs))
}

// respawnPlayer restores full health/ammo at the least-crowded open spawn.
func (w *World) respawnPlayer(playerID string) {
	p := w.players[playerID]
	if p == nil || p.IsAlive {
		return
	}
	sp := w.maps.LeastCrowdedSpawn("", w.cfg.SpawnCrowdRadius, func(x, y, r float64) int {
		return len(w.playersInRange(Vec2{X: x, Y: y}, r))
	})
	p.Pos = Vec2{X: sp.X, Y: sp.Y}
	p.Health = p.MaxHealth
	p.Ammo = w.ammoCapFor(p.WeaponID)
	p.IsAlive = true
	w.broadcast(protocol.PlayerRespawnMsg{
		Type:     protocol.TypePlayerRespawn,
		PlayerID: p.ID,
		Position: protocol.Vec2{X: p.Pos.X, Y: p.Pos.Y},
		Health:   p.Health,
	})
}

func (p *Player) wireInfo() protocol.PlayerInfo {
	return protocol.PlayerInfo{
		ID:        p.ID,
		Name:      p.Name,
		Position:  protocol.Vec2{X: p.Pos.X, Y: p.Pos.Y},
		Health:    p.Health,
		MaxHealth: p.MaxHealth,
		Ammo:      p.Ammo,
		Money:     p.Money,
		Kills:     p.Kills,
		Deaths:    p.Deaths,
		WeaponID:  p.WeaponID,
		IsAlive:   p.IsAlive,
		GangID:    p.GangID,
		GangRank:  p.GangRank,
		Color:     p.Color,
	}
}
