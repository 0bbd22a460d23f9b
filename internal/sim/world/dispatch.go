package world

import (
	"github.com/incognitogotwifi/UrbanNexus-sub000/internal/protocol"
)

// applyEvent routes one decoded client frame. Validation rejections are
// silent no-ops by contract; only the accepted mutation is re-broadcast.
func (w *World) applyEvent(p *Player, ev any, nowTick uint64) {
	switch msg := ev.(type) {
	case *protocol.PlayerMoveMsg:
		if w.updatePlayerPosition(p, Vec2{X: msg.Position.X, Y: msg.Position.Y}) {
			w.broadcast(protocol.PlayerMoveMsg{
				Type:     protocol.TypePlayerMove,
				PlayerID: p.ID,
				Position: protocol.Vec2{X: p.Pos.X, Y: p.Pos.Y},
			})
		}
	case *protocol.PlayerShootMsg:
		if b := w.handlePlayerShoot(p, Vec2{X: msg.Direction.X, Y: msg.Direction.Y}, nowTick); b != nil {
			info := b.wireInfo()
			w.broadcast(protocol.PlayerShootMsg{
				Type:      protocol.TypePlayerShoot,
				PlayerID:  p.ID,
				Direction: protocol.Vec2{X: b.Dir.X, Y: b.Dir.Y},
				Bullet:    &info,
			})
		}
	case *protocol.ChatMessageMsg:
		w.handleChat(p, msg, nowTick)
	case *protocol.GangCreateMsg:
		g, err := w.createGang(p, msg.Name, msg.Color)
		if err != nil {
			w.log.Printf("gang create rejected: player=%s: %v", p.ID, err)
			return
		}
		info := g.wireInfo()
		w.broadcast(protocol.GangCreateMsg{Type: protocol.TypeGangCreate, PlayerID: p.ID, Gang: &info})
	case *protocol.GangJoinMsg:
		if err := w.joinGang(p, msg.GangID); err != nil {
			w.log.Printf("gang join rejected: player=%s gang=%s: %v", p.ID, msg.GangID, err)
			return
		}
		w.broadcast(protocol.GangJoinMsg{Type: protocol.TypeGangJoin, PlayerID: p.ID, GangID: msg.GangID})
	case *protocol.GangLeaveMsg:
		gangID, disbanded, err := w.leaveGang(p)
		if err != nil {
			w.log.Printf("gang leave rejected: player=%s: %v", p.ID, err)
			return
		}
		w.broadcast(protocol.GangLeaveMsg{Type: protocol.TypeGangLeave, PlayerID: p.ID, GangID: gangID, Disbanded: disbanded})
	case *protocol.GangKickMsg:
		gangID, err := w.kickMember(p, msg.TargetID)
		if err != nil {
			w.log.Printf("gang kick rejected: player=%s target=%s: %v", p.ID, msg.TargetID, err)
			return
		}
		w.broadcast(protocol.GangKickMsg{Type: protocol.TypeGangKick, PlayerID: p.ID, TargetID: msg.TargetID, GangID: gangID})
	case *protocol.GangPromoteMsg:
		if err := w.promoteToLeader(p, msg.TargetID); err != nil {
			w.log.Printf("gang promote rejected: player=%s target=%s: %v", p.ID, msg.TargetID, err)
			return
		}
		w.broadcast(protocol.GangPromoteMsg{Type: protocol.TypeGangPromote, PlayerID: p.ID, TargetID: msg.TargetID, GangID: p.GangID})
	default:
		w.log.Printf("unhandled event %T from %s", ev, p.ID)
	}
}

// handleChat relays to everyone, or to gang members only on the GANG
// channel. Rate-limited per player.
func (w *World) handleChat(p *Player, msg *protocol.ChatMessageMsg, nowTick uint64) {
	if msg.Text == "" {
		return
	}
	if !p.allow("chat", nowTick, uint64(w.cfg.ChatWindowTicks), w.cfg.ChatMax) {
		w.log.Printf("chat rate limited: player=%s", p.ID)
		return
	}
	out := protocol.ChatMessageMsg{
		Type:     protocol.TypeChatMessage,
		PlayerID: p.ID,
		Name:     p.Name,
		Channel:  msg.Channel,
		Text:     msg.Text,
	}
	if msg.Channel == "GANG" {
		g := w.gangs[p.GangID]
		if g == nil {
			return
		}
		for _, id := range g.MemberIDs {
			w.sendTo(id, out)
		}
		return
	}
	out.Channel = "GLOBAL"
	w.broadcast(out)
}
