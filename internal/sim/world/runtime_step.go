package world

import (
	"github.com/incognitogotwifi/UrbanNexus-sub000/internal/protocol"
)

// stepInternal applies one tick: leaves, joins, inbound events in arrival
// order, due scheduled tasks, bullet advancement and hit resolution, then
// the reduced-cadence full-state broadcast.
func (w *World) stepInternal(joins []JoinRequest, leaves []string, events []EventEnvelope) {
	nowTick := w.tick.Load()

	for _, id := range leaves {
		w.removePlayerInternal(id)
	}
	for _, req := range joins {
		w.handleJoin(req)
	}

	for _, env := range events {
		p := w.players[env.PlayerID]
		if p == nil {
			continue
		}
		w.applyEvent(p, env.Event, nowTick)
	}

	w.runTasks(nowTick)

	dt := 1.0 / float64(w.cfg.TickRateHz)
	w.advanceBullets(dt)

	if nowTick%uint64(w.cfg.BroadcastEveryTicks) == 0 {
		w.broadcast(w.buildGameState(nowTick))
	}

	w.tick.Add(1)
}

func (w *World) handleJoin(req JoinRequest) {
	resp := JoinResponse{}
	if w.isBanned(req.Username) || w.isBanned(req.Name) {
		resp.Rejected = true
		resp.Reason = protocol.ErrBanned
		if req.Resp != nil {
			req.Resp <- resp
		}
		return
	}
	if req.Name == "" {
		req.Name = "player"
	}
	p := w.createPlayer(req)
	w.clients[p.ID] = &clientState{Out: req.Out, Username: req.Username}

	resp.Ack = protocol.JoinAckMsg{
		Type:            protocol.TypeJoinAck,
		ProtocolVersion: protocol.Version,
		PlayerID:        p.ID,
		SessionToken:    newSessionToken(),
		MapID:           w.maps.Active().ID,
		TickRateHz:      w.cfg.TickRateHz,
		WeaponsDigest:   w.weapons.Digest,
	}
	if req.Resp != nil {
		req.Resp <- resp
	}

	info := p.wireInfo()
	w.broadcast(protocol.PlayerJoinMsg{Type: protocol.TypePlayerJoin, Player: &info})
	// The joiner gets an immediate snapshot instead of waiting a cadence.
	w.sendTo(p.ID, w.buildGameState(w.tick.Load()))
}
