package world

import (
	"log"
	"os"
	"testing"

	"github.com/incognitogotwifi/UrbanNexus-sub000/internal/sim/catalogs"
	"github.com/incognitogotwifi/UrbanNexus-sub000/internal/sim/gamemap"
)

// newTestWorld builds a 64x48 bordered arena at 60Hz with the built-in
// weapon catalog. MaxSpeed 300 gives a 5-unit per-tick move budget.
func newTestWorld(t *testing.T) *World {
	t.Helper()
	maps := gamemap.NewStore(1)
	if err := maps.Put(gamemap.Default("test", 64, 48)); err != nil {
		t.Fatalf("put map: %v", err)
	}
	w, err := New(Config{
		ID:         "test",
		TickRateHz: 60,
		MaxSpeed:   300,
	}, catalogs.Defaults(), maps, log.New(os.Stderr, "[test] ", 0))
	if err != nil {
		t.Fatalf("world: %v", err)
	}
	return w
}

func joinPlayer(t *testing.T, w *World, name string) *Player {
	t.Helper()
	resp := make(chan JoinResponse, 1)
	w.handleJoin(JoinRequest{Name: name, Out: make(chan []byte, 256), Resp: resp})
	r := <-resp
	if r.Rejected {
		t.Fatalf("join %s rejected: %s", name, r.Reason)
	}
	p := w.players[r.Ack.PlayerID]
	if p == nil {
		t.Fatalf("join %s: player not registered", name)
	}
	return p
}

func stepTicks(w *World, n int) {
	for i := 0; i < n; i++ {
		w.StepOnce(nil, nil, nil)
	}
}

func TestJoin_AckCarriesIdentityAndCatalogDigest(t *testing.T) {
	w := newTestWorld(t)
	resp := make(chan JoinResponse, 1)
	w.handleJoin(JoinRequest{Name: "ace", Out: make(chan []byte, 8), Resp: resp})
	r := <-resp
	if r.Rejected {
		t.Fatalf("rejected: %s", r.Reason)
	}
	if r.Ack.PlayerID == "" || r.Ack.SessionToken == "" {
		t.Fatalf("ack missing identity: %+v", r.Ack)
	}
	if r.Ack.MapID != "test" {
		t.Fatalf("ack map = %q", r.Ack.MapID)
	}
	if r.Ack.WeaponsDigest != w.weapons.Digest {
		t.Fatalf("ack digest mismatch")
	}
	p := w.players[r.Ack.PlayerID]
	if !p.IsAlive || p.Health != p.MaxHealth {
		t.Fatalf("new player not at full health: %+v", p)
	}
	if w.maps.Active().CheckCollision(p.Pos.X, p.Pos.Y) {
		t.Fatalf("spawned inside a collision tile at %+v", p.Pos)
	}
}

func TestJoin_BannedNameRejected(t *testing.T) {
	w := newTestWorld(t)
	w.banned["cheater"] = struct{}{}
	resp := make(chan JoinResponse, 1)
	w.handleJoin(JoinRequest{Name: "Cheater", Username: "cheater", Out: make(chan []byte, 8), Resp: resp})
	r := <-resp
	if !r.Rejected {
		t.Fatalf("banned join was accepted")
	}
	if len(w.players) != 0 {
		t.Fatalf("banned player registered")
	}
}

func TestRemovePlayer_UnknownIDIsNoop(t *testing.T) {
	w := newTestWorld(t)
	if w.removePlayerInternal("P999999") {
		t.Fatalf("removing unknown player reported success")
	}
}

func TestSnapshot_RoundTrip(t *testing.T) {
	w := newTestWorld(t)
	a := joinPlayer(t, w, "a")
	b := joinPlayer(t, w, "b")
	g, err := w.createGang(a, "Vipers", "#123456")
	if err != nil {
		t.Fatalf("create gang: %v", err)
	}
	if err := w.joinGang(b, g.ID); err != nil {
		t.Fatalf("join gang: %v", err)
	}
	a.Money = 1234
	stepTicks(w, 5)

	snap := w.ExportSnapshot()

	w2 := newTestWorld(t)
	if err := w2.ImportSnapshot(snap); err != nil {
		t.Fatalf("import: %v", err)
	}
	if w2.CurrentTick() != snap.Header.Tick {
		t.Fatalf("tick = %d, want %d", w2.CurrentTick(), snap.Header.Tick)
	}
	ra := w2.players[a.ID]
	if ra == nil || ra.Money != 1234 || ra.GangID != g.ID || ra.GangRank != RankLeader {
		t.Fatalf("restored player mismatch: %+v", ra)
	}
	rg := w2.gangs[g.ID]
	if rg == nil || rg.LeaderID != a.ID || len(rg.MemberIDs) != 2 {
		t.Fatalf("restored gang mismatch: %+v", rg)
	}
	// Counters continue; a new player must not collide with restored ids.
	c := joinPlayer(t, w2, "c")
	if c.ID == a.ID || c.ID == b.ID {
		t.Fatalf("id collision after import: %s", c.ID)
	}
}
