package world

import (
	"sort"

	"github.com/incognitogotwifi/UrbanNexus-sub000/internal/protocol"
)

// buildGameState assembles the full snapshot, entities in id order so the
// payload is stable across identical states.
func (w *World) buildGameState(tick uint64) protocol.GameStateMsg {
	msg := protocol.GameStateMsg{
		Type:    protocol.TypeGameState,
		Tick:    tick,
		MapID:   w.maps.Active().ID,
		Players: make([]protocol.PlayerInfo, 0, len(w.players)),
		Bullets: make([]protocol.BulletInfo, 0, len(w.bullets)),
		Gangs:   make([]protocol.GangInfo, 0, len(w.gangs)),
	}

	pids := make([]string, 0, len(w.players))
	for id := range w.players {
		pids = append(pids, id)
	}
	sort.Strings(pids)
	for _, id := range pids {
		msg.Players = append(msg.Players, w.players[id].wireInfo())
	}

	bids := make([]string, 0, len(w.bullets))
	for id := range w.bullets {
		bids = append(bids, id)
	}
	sort.Strings(bids)
	for _, id := range bids {
		msg.Bullets = append(msg.Bullets, w.bullets[id].wireInfo())
	}

	gids := make([]string, 0, len(w.gangs))
	for id := range w.gangs {
		gids = append(gids, id)
	}
	sort.Strings(gids)
	for _, id := range gids {
		msg.Gangs = append(msg.Gangs, w.gangs[id].wireInfo())
	}

	return msg
}
