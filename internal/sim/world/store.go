package world

import (
	"sort"

	"github.com/incognitogotwifi/UrbanNexus-sub000/internal/protocol"
	"github.com/incognitogotwifi/UrbanNexus-sub000/internal/sim/gamemap"
)

// Entity store accessors. Absent ids are no-ops returning nil/false; nothing
// here panics.

func (w *World) GetPlayer(id string) *Player { return w.players[id] }
func (w *World) GetBullet(id string) *Bullet { return w.bullets[id] }
func (w *World) GetGang(id string) *Gang     { return w.gangs[id] }

func (w *World) PlayerCount() int { return len(w.players) }
func (w *World) BulletCount() int { return len(w.bullets) }
func (w *World) GangCount() int   { return len(w.gangs) }

func (w *World) CurrentMap() *gamemap.Map { return w.maps.Active() }

func (w *World) SetCurrentMap(id string) error { return w.maps.SetActive(id) }

func (w *World) Maps() *gamemap.Store { return w.maps }

// removePlayerInternal detaches the player from gang and pending respawn,
// persists the final profile, and announces the leave.
func (w *World) removePlayerInternal(id string) bool {
	p := w.players[id]
	if p == nil {
		return false
	}
	w.cancelTask(taskRespawn, id)
	if p.GangID != "" {
		if _, _, err := w.leaveGang(p); err != nil {
			w.log.Printf("leave gang on disconnect: player=%s: %v", id, err)
		}
	}
	w.pushProfile(p)
	delete(w.players, id)
	delete(w.clients, id)
	w.broadcast(protocol.PlayerLeaveMsg{Type: protocol.TypePlayerLeave, PlayerID: id})
	return true
}

func (w *World) pushProfile(p *Player) {
	if w.profileSink == nil || p.Username == "" {
		return
	}
	upd := ProfileUpdate{
		Username: p.Username,
		Pos:      p.Pos,
		Health:   p.Health,
		Money:    p.Money,
		Kills:    p.Kills,
		Deaths:   p.Deaths,
		WeaponID: p.WeaponID,
	}
	select {
	case w.profileSink <- upd:
	default:
		w.log.Printf("profile sink full; dropping update for %s", p.Username)
	}
}

// playersInRange returns living players within radius of pos, in id order.
func (w *World) playersInRange(pos Vec2, radius float64) []*Player {
	ids := make([]string, 0, len(w.players))
	for id := range w.players {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	var out []*Player
	for _, id := range ids {
		p := w.players[id]
		if p.IsAlive && Dist(p.Pos, pos) <= radius {
			out = append(out, p)
		}
	}
	return out
}
