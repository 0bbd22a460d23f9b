package world

import (
	"fmt"
	"sort"

	"github.com/incognitogotwifi/UrbanNexus-sub000/internal/persistence/snapshot"
)

// ExportSnapshot captures the current world state. Must run on the world
// goroutine (reached via the admin "snapshot" op).
func (w *World) ExportSnapshot() snapshot.SnapshotV1 {
	snap := snapshot.SnapshotV1{
		Header: snapshot.Header{
			Version: 1,
			WorldID: w.cfg.ID,
			Tick:    w.tick.Load(),
		},
		TickRateHz: w.cfg.TickRateHz,
		MapID:      w.maps.Active().ID,
		Counters: snapshot.CountersV1{
			NextPlayer: w.nextPlayerNum.Load(),
			NextBullet: w.nextBulletNum.Load(),
			NextGang:   w.nextGangNum.Load(),
			NextWar:    w.nextWarNum.Load(),
		},
	}

	pids := make([]string, 0, len(w.players))
	for id := range w.players {
		pids = append(pids, id)
	}
	sort.Strings(pids)
	for _, id := range pids {
		p := w.players[id]
		snap.Players = append(snap.Players, snapshot.PlayerV1{
			ID: p.ID, Name: p.Name, Username: p.Username,
			X: p.Pos.X, Y: p.Pos.Y,
			Health: p.Health, MaxHealth: p.MaxHealth, Ammo: p.Ammo,
			Money: p.Money, Kills: p.Kills, Deaths: p.Deaths,
			WeaponID: p.WeaponID, IsAlive: p.IsAlive,
			GangID: p.GangID, GangRank: p.GangRank, Color: p.Color,
		})
	}

	gids := make([]string, 0, len(w.gangs))
	for id := range w.gangs {
		gids = append(gids, id)
	}
	sort.Strings(gids)
	for _, id := range gids {
		g := w.gangs[id]
		gv := snapshot.GangV1{
			ID: g.ID, Name: g.Name, LeaderID: g.LeaderID,
			MemberIDs: append([]string(nil), g.MemberIDs...),
			Color:     g.Color, Score: g.Score, Kills: g.Kills, Deaths: g.Deaths,
		}
		if g.Territory != nil {
			gv.Territory = &snapshot.RectV1{X: g.Territory.X, Y: g.Territory.Y, W: g.Territory.W, H: g.Territory.H}
		}
		snap.Gangs = append(snap.Gangs, gv)
	}

	banned := make([]string, 0, len(w.banned))
	for name := range w.banned {
		banned = append(banned, name)
	}
	sort.Strings(banned)
	snap.Banned = banned

	return snap
}

// ImportSnapshot restores players and gangs from a snapshot. Must be called
// before Run. Restored players have no session until they reconnect; dead
// players come back alive at their saved position.
func (w *World) ImportSnapshot(snap snapshot.SnapshotV1) error {
	if snap.Header.WorldID != "" && snap.Header.WorldID != w.cfg.ID {
		return fmt.Errorf("snapshot world id mismatch: have %s want %s", snap.Header.WorldID, w.cfg.ID)
	}
	for _, pv := range snap.Players {
		p := &Player{
			ID: pv.ID, Name: pv.Name, Username: pv.Username,
			Pos:    Vec2{X: pv.X, Y: pv.Y},
			Health: pv.Health, MaxHealth: pv.MaxHealth, Ammo: pv.Ammo,
			Money: pv.Money, Kills: pv.Kills, Deaths: pv.Deaths,
			WeaponID: pv.WeaponID, IsAlive: true,
			GangID: pv.GangID, GangRank: pv.GangRank, Color: pv.Color,
		}
		if p.Health <= 0 {
			p.Health = p.MaxHealth
		}
		w.players[p.ID] = p
	}
	for _, gv := range snap.Gangs {
		g := &Gang{
			ID: gv.ID, Name: gv.Name, LeaderID: gv.LeaderID,
			MemberIDs: append([]string(nil), gv.MemberIDs...),
			Color:     gv.Color, Score: gv.Score, Kills: gv.Kills, Deaths: gv.Deaths,
		}
		if gv.Territory != nil {
			g.Territory = &Rect{X: gv.Territory.X, Y: gv.Territory.Y, W: gv.Territory.W, H: gv.Territory.H}
		}
		w.gangs[g.ID] = g
	}
	for _, name := range snap.Banned {
		w.banned[name] = struct{}{}
	}
	w.nextPlayerNum.Store(snap.Counters.NextPlayer)
	w.nextBulletNum.Store(snap.Counters.NextBullet)
	w.nextGangNum.Store(snap.Counters.NextGang)
	w.nextWarNum.Store(snap.Counters.NextWar)
	w.tick.Store(snap.Header.Tick)
	return nil
}
