package world

import (
	"fmt"
	"strings"

	"github.com/incognitogotwifi/UrbanNexus-sub000/internal/protocol"
)

type Gang struct {
	ID        string
	Name      string
	LeaderID  string
	MemberIDs []string // insertion order; leadership falls to the first
	Color     string
	Territory *Rect
	Score     int

	// Aggregate combat stats, also the basis for war scoring deltas.
	Kills  int
	Deaths int
}

type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

type gangWar struct {
	ID      string
	GangA   string
	GangB   string
	KillsA0 int // kill counts snapshotted at war start
	KillsB0 int
	EndTick uint64
}

func (g *Gang) hasMember(id string) bool {
	for _, m := range g.MemberIDs {
		if m == id {
			return true
		}
	}
	return false
}

func (g *Gang) removeMember(id string) {
	for i, m := range g.MemberIDs {
		if m == id {
			g.MemberIDs = append(g.MemberIDs[:i], g.MemberIDs[i+1:]...)
			return
		}
	}
}

func (w *World) gangByName(name string) *Gang {
	needle := strings.ToLower(strings.TrimSpace(name))
	for _, g := range w.gangs {
		if strings.ToLower(g.Name) == needle {
			return g
		}
	}
	return nil
}

func (w *World) createGang(p *Player, name, color string) (*Gang, error) {
	if p == nil {
		return nil, fmt.Errorf("no such player")
	}
	if p.GangID != "" {
		return nil, fmt.Errorf("player %s already in gang %s", p.ID, p.GangID)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("empty gang name")
	}
	if w.gangByName(name) != nil {
		return nil, fmt.Errorf("gang name %q taken", name)
	}
	g := &Gang{
		ID:        w.newGangID(),
		Name:      name,
		LeaderID:  p.ID,
		MemberIDs: []string{p.ID},
		Color:     color,
	}
	if g.Color == "" {
		g.Color = p.Color
	}
	w.gangs[g.ID] = g
	p.GangID = g.ID
	p.GangRank = RankLeader
	return g, nil
}

func (w *World) disbandGang(gangID string) bool {
	g := w.gangs[gangID]
	if g == nil {
		return false
	}
	for _, id := range g.MemberIDs {
		if p := w.players[id]; p != nil {
			p.GangID = ""
			p.GangRank = ""
		}
	}
	delete(w.gangs, gangID)
	for warID, war := range w.wars {
		if war.GangA == gangID || war.GangB == gangID {
			w.cancelTask(taskGangWar, warID)
			delete(w.wars, warID)
		}
	}
	return true
}

func (w *World) joinGang(p *Player, gangID string) error {
	if p == nil {
		return fmt.Errorf("no such player")
	}
	if p.GangID != "" {
		return fmt.Errorf("player %s already in gang %s", p.ID, p.GangID)
	}
	g := w.gangs[gangID]
	if g == nil {
		return fmt.Errorf("no such gang %s", gangID)
	}
	if len(g.MemberIDs) >= w.cfg.GangMaxMembers {
		return fmt.Errorf("gang %s is full", gangID)
	}
	g.MemberIDs = append(g.MemberIDs, p.ID)
	p.GangID = g.ID
	p.GangRank = RankMember
	return nil
}

// leaveGang removes the player; the last member leaving disbands the gang,
// and a departing leader hands leadership to the first remaining member.
func (w *World) leaveGang(p *Player) (gangID string, disbanded bool, err error) {
	if p == nil || p.GangID == "" {
		return "", false, fmt.Errorf("player not in a gang")
	}
	g := w.gangs[p.GangID]
	if g == nil {
		p.GangID = ""
		p.GangRank = ""
		return "", false, fmt.Errorf("gang missing")
	}
	gangID = g.ID
	g.removeMember(p.ID)
	p.GangID = ""
	p.GangRank = ""
	if len(g.MemberIDs) == 0 {
		w.disbandGang(g.ID)
		return gangID, true, nil
	}
	if g.LeaderID == p.ID {
		g.LeaderID = g.MemberIDs[0]
		if leader := w.players[g.LeaderID]; leader != nil {
			leader.GangRank = RankLeader
		}
	}
	return gangID, false, nil
}

func (w *World) kickMember(actor *Player, targetID string) (gangID string, err error) {
	if actor == nil || actor.GangID == "" {
		return "", fmt.Errorf("actor not in a gang")
	}
	g := w.gangs[actor.GangID]
	if g == nil || g.LeaderID != actor.ID {
		return "", fmt.Errorf("actor %s is not the leader", actor.ID)
	}
	if targetID == actor.ID {
		return "", fmt.Errorf("leader cannot kick themselves")
	}
	if !g.hasMember(targetID) {
		return "", fmt.Errorf("target %s not in gang", targetID)
	}
	g.removeMember(targetID)
	if t := w.players[targetID]; t != nil {
		t.GangID = ""
		t.GangRank = ""
	}
	return g.ID, nil
}

func (w *World) promoteToLeader(actor *Player, targetID string) error {
	if actor == nil || actor.GangID == "" {
		return fmt.Errorf("actor not in a gang")
	}
	g := w.gangs[actor.GangID]
	if g == nil || g.LeaderID != actor.ID {
		return fmt.Errorf("actor %s is not the leader", actor.ID)
	}
	if !g.hasMember(targetID) {
		return fmt.Errorf("target %s not in gang", targetID)
	}
	g.LeaderID = targetID
	actor.GangRank = RankMember
	if t := w.players[targetID]; t != nil {
		t.GangRank = RankLeader
	}
	return nil
}

func (w *World) updateGangScore(gangID string, delta int) bool {
	g := w.gangs[gangID]
	if g == nil {
		return false
	}
	g.Score += delta
	return true
}

// startGangWar opens a time-boxed contest. Kill counts are snapshotted at
// the start so the winner is decided by kills accrued during the window,
// not lifetime totals.
func (w *World) startGangWar(gangA, gangB string, durationMs int) (*gangWar, error) {
	if gangA == gangB {
		return nil, fmt.Errorf("a gang cannot war itself")
	}
	ga, gb := w.gangs[gangA], w.gangs[gangB]
	if ga == nil || gb == nil {
		return nil, fmt.Errorf("no such gang")
	}
	for _, war := range w.wars {
		if war.GangA == gangA || war.GangB == gangA || war.GangA == gangB || war.GangB == gangB {
			return nil, fmt.Errorf("gang already at war")
		}
	}
	if durationMs <= 0 {
		durationMs = w.cfg.GangWarDurationMs
	}
	war := &gangWar{
		ID:      fmt.Sprintf("W%04d", w.nextWarNum.Add(1)),
		GangA:   gangA,
		GangB:   gangB,
		KillsA0: ga.Kills,
		KillsB0: gb.Kills,
		EndTick: w.tick.Load() + w.cfg.ticksFromMs(durationMs),
	}
	w.wars[war.ID] = war
	w.scheduleTask(taskGangWar, war.ID, war.EndTick)
	w.broadcast(protocol.GangWarMsg{
		Type:  protocol.TypeGangWar,
		GangA: gangA,
		GangB: gangB,
		Phase: "STARTED",
	})
	return war, nil
}

// resolveGangWar awards score to the gang with more kills during the war
// window. A tie awards nothing.
func (w *World) resolveGangWar(warID string) {
	war := w.wars[warID]
	if war == nil {
		return
	}
	delete(w.wars, warID)
	ga, gb := w.gangs[war.GangA], w.gangs[war.GangB]
	if ga == nil || gb == nil {
		return
	}
	deltaA := ga.Kills - war.KillsA0
	deltaB := gb.Kills - war.KillsB0
	msg := protocol.GangWarMsg{
		Type:  protocol.TypeGangWar,
		GangA: war.GangA,
		GangB: war.GangB,
		Phase: "ENDED",
	}
	switch {
	case deltaA > deltaB:
		ga.Score += w.cfg.GangWarAward
		msg.WinnerID = ga.ID
		msg.Award = w.cfg.GangWarAward
	case deltaB > deltaA:
		gb.Score += w.cfg.GangWarAward
		msg.WinnerID = gb.ID
		msg.Award = w.cfg.GangWarAward
	}
	w.broadcast(msg)
}

func (g *Gang) wireInfo() protocol.GangInfo {
	info := protocol.GangInfo{
		ID:        g.ID,
		Name:      g.Name,
		LeaderID:  g.LeaderID,
		MemberIDs: append([]string(nil), g.MemberIDs...),
		Color:     g.Color,
		Score:     g.Score,
	}
	if g.Territory != nil {
		info.Territory = &protocol.Rect{X: g.Territory.X, Y: g.Territory.Y, W: g.Territory.W, H: g.Territory.H}
	}
	return info
}
