package world

import (
	"fmt"
	"log"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/incognitogotwifi/UrbanNexus-sub000/internal/protocol"
	"github.com/incognitogotwifi/UrbanNexus-sub000/internal/sim/catalogs"
	"github.com/incognitogotwifi/UrbanNexus-sub000/internal/sim/gamemap"
)

// World is the single-threaded authoritative simulation. All mutable state
// must be accessed only from the world loop goroutine; sessions and the
// admin surface talk to it over channels.
type World struct {
	cfg     Config
	weapons *catalogs.WeaponCatalog
	maps    *gamemap.Store

	tick atomic.Uint64

	players map[string]*Player
	bullets map[string]*Bullet
	gangs   map[string]*Gang
	wars    map[string]*gangWar

	clients map[string]*clientState
	banned  map[string]struct{}

	inbox chan EventEnvelope
	join  chan JoinRequest
	leave chan string
	admin chan AdminRequest
	stop  chan struct{}

	nextPlayerNum atomic.Uint64
	nextBulletNum atomic.Uint64
	nextGangNum   atomic.Uint64
	nextWarNum    atomic.Uint64

	tasks     taskQueue
	taskIndex map[string]*task
	taskSeq   uint64

	// Optional sink for durable profile writes on disconnect. Pushes are
	// non-blocking; a backed-up sink loses the update, never stalls the tick.
	profileSink chan<- ProfileUpdate

	log *log.Logger
}

// JoinRequest is issued by the gateway after a valid PLAYER_JOIN handshake.
type JoinRequest struct {
	Name     string
	Username string
	Color    string
	Profile  *JoinProfile
	Out      chan []byte
	Resp     chan JoinResponse
}

// JoinProfile carries durable stats resolved by the persistence collaborator.
// Nil means ephemeral identity.
type JoinProfile struct {
	Money    int
	Kills    int
	Deaths   int
	WeaponID string
}

type JoinResponse struct {
	Ack      protocol.JoinAckMsg
	Rejected bool
	Reason   string
}

// EventEnvelope pairs a decoded client frame with its session identity.
type EventEnvelope struct {
	PlayerID string
	Event    any
}

// ProfileUpdate is pushed to the profile sink when a player disconnects.
type ProfileUpdate struct {
	Username string
	Pos      Vec2
	Health   int
	Money    int
	Kills    int
	Deaths   int
	WeaponID string
}

type clientState struct {
	Out      chan []byte
	Username string
}

func New(cfg Config, weapons *catalogs.WeaponCatalog, maps *gamemap.Store, logger *log.Logger) (*World, error) {
	cfg.applyDefaults()
	if weapons == nil {
		return nil, fmt.Errorf("world: nil weapon catalog")
	}
	if maps == nil || maps.Active() == nil {
		return nil, fmt.Errorf("world: no active map")
	}
	if !weapons.Has(cfg.DefaultWeapon) {
		return nil, fmt.Errorf("world: default weapon %q not in catalog", cfg.DefaultWeapon)
	}
	if logger == nil {
		logger = log.Default()
	}
	w := &World{
		cfg:       cfg,
		weapons:   weapons,
		maps:      maps,
		players:   map[string]*Player{},
		bullets:   map[string]*Bullet{},
		gangs:     map[string]*Gang{},
		wars:      map[string]*gangWar{},
		clients:   map[string]*clientState{},
		banned:    map[string]struct{}{},
		inbox:     make(chan EventEnvelope, 256),
		join:      make(chan JoinRequest, 16),
		leave:     make(chan string, 16),
		admin:     make(chan AdminRequest, 16),
		stop:      make(chan struct{}),
		taskIndex: map[string]*task{},
		log:       logger,
	}
	return w, nil
}

func (w *World) Inbox() chan<- EventEnvelope { return w.inbox }
func (w *World) Join() chan<- JoinRequest    { return w.join }
func (w *World) Leave() chan<- string        { return w.leave }
func (w *World) Admin() chan<- AdminRequest  { return w.admin }

func (w *World) ID() string          { return w.cfg.ID }
func (w *World) TickRateHz() int     { return w.cfg.TickRateHz }
func (w *World) CurrentTick() uint64 { return w.tick.Load() }

func (w *World) Weapons() *catalogs.WeaponCatalog { return w.weapons }

// SetProfileSink installs the durable-profile writer channel. Must be called
// before Run.
func (w *World) SetProfileSink(ch chan<- ProfileUpdate) { w.profileSink = ch }

func (w *World) newPlayerID() string {
	return fmt.Sprintf("P%06d", w.nextPlayerNum.Add(1))
}

func (w *World) newBulletID() string {
	return fmt.Sprintf("B%08d", w.nextBulletNum.Add(1))
}

func (w *World) newGangID() string {
	return fmt.Sprintf("G%04d", w.nextGangNum.Add(1))
}

func newSessionToken() string {
	return uuid.NewString()
}

func (w *World) isBanned(username string) bool {
	_, ok := w.banned[strings.ToLower(strings.TrimSpace(username))]
	return ok
}
