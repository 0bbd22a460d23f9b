package world

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/incognitogotwifi/UrbanNexus-sub000/internal/protocol"
	"github.com/incognitogotwifi/UrbanNexus-sub000/internal/sim/catalogs"
	"github.com/incognitogotwifi/UrbanNexus-sub000/internal/sim/gamemap"
)

// Admin surface. Requests are answered at the tick boundary on the world
// goroutine; file I/O stays with the caller (the request carries parsed
// maps in, serialized maps out).
type AdminRequest struct {
	Op   string
	Args AdminArgs
	Resp chan AdminResult
}

type AdminArgs struct {
	PlayerID string              `json:"playerId,omitempty"`
	TargetID string              `json:"targetId,omitempty"`
	Username string              `json:"username,omitempty"`
	GangID   string              `json:"gangId,omitempty"`
	GangB    string              `json:"gangB,omitempty"`
	Name     string              `json:"name,omitempty"`
	MapID    string              `json:"mapId,omitempty"`
	X        float64             `json:"x,omitempty"`
	Y        float64             `json:"y,omitempty"`
	Amount   int                 `json:"amount,omitempty"`
	Tile     *gamemap.Tile       `json:"tile,omitempty"`
	Layer    int                 `json:"layer,omitempty"`
	Weapon   *catalogs.WeaponDef `json:"weapon,omitempty"`
	Map      *gamemap.Map        `json:"-"`
	DurMs    int                 `json:"durationMs,omitempty"`
}

type AdminResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func ok(msg string) AdminResult   { return AdminResult{Success: true, Message: msg} }
func fail(msg string) AdminResult { return AdminResult{Success: false, Message: msg} }

func (w *World) handleAdminRequests(reqs []AdminRequest) {
	for _, req := range reqs {
		res := w.applyAdmin(req)
		if req.Resp != nil {
			req.Resp <- res
		}
	}
}

func (w *World) applyAdmin(req AdminRequest) AdminResult {
	switch req.Op {
	case "status":
		return AdminResult{Success: true, Message: "ok", Data: map[string]any{
			"worldId": w.cfg.ID,
			"tick":    w.tick.Load(),
			"players": len(w.players),
			"bullets": len(w.bullets),
			"gangs":   len(w.gangs),
			"mapId":   w.maps.Active().ID,
		}}
	case "settings":
		return AdminResult{Success: true, Message: "ok", Data: w.cfg}
	case "kick":
		if !w.removePlayerInternal(req.Args.PlayerID) {
			return fail(protocol.ErrNotFound)
		}
		return ok("kicked " + req.Args.PlayerID)
	case "ban":
		name := strings.ToLower(strings.TrimSpace(req.Args.Username))
		if name == "" {
			return fail(protocol.ErrBadRequest)
		}
		w.banned[name] = struct{}{}
		// Drop any live session under that name.
		for id, p := range w.players {
			if strings.EqualFold(p.Username, name) || strings.EqualFold(p.Name, name) {
				w.removePlayerInternal(id)
			}
		}
		return ok("banned " + name)
	case "unban":
		delete(w.banned, strings.ToLower(strings.TrimSpace(req.Args.Username)))
		return ok("unbanned")
	case "heal":
		p := w.players[req.Args.PlayerID]
		if p == nil {
			return fail(protocol.ErrNotFound)
		}
		p.Health = p.MaxHealth
		if !p.IsAlive {
			p.IsAlive = true
			w.cancelTask(taskRespawn, p.ID)
		}
		return ok("healed " + p.ID)
	case "teleport":
		p := w.players[req.Args.PlayerID]
		if p == nil {
			return fail(protocol.ErrNotFound)
		}
		m := w.maps.Active()
		if !m.InBounds(req.Args.X, req.Args.Y) || m.CheckCollision(req.Args.X, req.Args.Y) {
			return fail(protocol.ErrInvalidTarget)
		}
		p.Pos = Vec2{X: req.Args.X, Y: req.Args.Y}
		w.broadcast(protocol.PlayerMoveMsg{
			Type:     protocol.TypePlayerMove,
			PlayerID: p.ID,
			Position: protocol.Vec2{X: p.Pos.X, Y: p.Pos.Y},
		})
		return ok("teleported " + p.ID)
	case "gang_create":
		g, err := w.createGang(w.players[req.Args.PlayerID], req.Args.Name, "")
		if err != nil {
			return fail(err.Error())
		}
		return AdminResult{Success: true, Message: "created", Data: g.wireInfo()}
	case "gang_join":
		if err := w.joinGang(w.players[req.Args.PlayerID], req.Args.GangID); err != nil {
			return fail(err.Error())
		}
		return ok("joined")
	case "gang_leave":
		if _, _, err := w.leaveGang(w.players[req.Args.PlayerID]); err != nil {
			return fail(err.Error())
		}
		return ok("left")
	case "gang_score":
		if !w.updateGangScore(req.Args.GangID, req.Args.Amount) {
			return fail(protocol.ErrNotFound)
		}
		return ok("scored")
	case "gang_war":
		war, err := w.startGangWar(req.Args.GangID, req.Args.GangB, req.Args.DurMs)
		if err != nil {
			return fail(err.Error())
		}
		return AdminResult{Success: true, Message: "war started", Data: war.ID}
	case "weapon_override":
		if req.Args.Weapon == nil {
			return fail(protocol.ErrBadRequest)
		}
		if err := w.weapons.Override(*req.Args.Weapon); err != nil {
			return fail(err.Error())
		}
		return ok("weapon updated")
	case "set_map":
		if err := w.maps.SetActive(req.Args.MapID); err != nil {
			return fail(err.Error())
		}
		return ok("active map " + req.Args.MapID)
	case "map_load":
		if req.Args.Map == nil {
			return fail(protocol.ErrBadRequest)
		}
		if err := w.maps.Put(req.Args.Map); err != nil {
			return fail(err.Error())
		}
		return ok("map loaded " + req.Args.Map.ID)
	case "map_save":
		m := w.maps.Get(req.Args.MapID)
		if m == nil {
			return fail(protocol.ErrNotFound)
		}
		b, err := json.Marshal(m)
		if err != nil {
			return fail(err.Error())
		}
		return AdminResult{Success: true, Message: "ok", Data: json.RawMessage(b)}
	case "tile_add":
		m := w.maps.Get(req.Args.MapID)
		if m == nil || req.Args.Tile == nil {
			return fail(protocol.ErrBadRequest)
		}
		m.AddTile(*req.Args.Tile)
		return ok("tile set")
	case "tile_remove":
		m := w.maps.Get(req.Args.MapID)
		if m == nil {
			return fail(protocol.ErrBadRequest)
		}
		if !m.RemoveTile(int(req.Args.X), int(req.Args.Y), req.Args.Layer) {
			return fail(protocol.ErrNotFound)
		}
		return ok("tile removed")
	case "spawn_add":
		m := w.maps.Get(req.Args.MapID)
		if m == nil {
			return fail(protocol.ErrBadRequest)
		}
		m.AddSpawnPoint(gamemap.SpawnPoint{X: req.Args.X, Y: req.Args.Y})
		return ok("spawn added")
	case "spawn_remove":
		m := w.maps.Get(req.Args.MapID)
		if m == nil {
			return fail(protocol.ErrBadRequest)
		}
		if !m.RemoveSpawnPoint(gamemap.SpawnPoint{X: req.Args.X, Y: req.Args.Y}) {
			return fail(protocol.ErrNotFound)
		}
		return ok("spawn removed")
	case "snapshot":
		return AdminResult{Success: true, Message: "ok", Data: w.ExportSnapshot()}
	default:
		return fail(fmt.Sprintf("unknown op %q", req.Op))
	}
}
