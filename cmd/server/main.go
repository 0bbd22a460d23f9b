package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/incognitogotwifi/UrbanNexus-sub000/internal/persistence/profiles"
	"github.com/incognitogotwifi/UrbanNexus-sub000/internal/persistence/snapshot"
	"github.com/incognitogotwifi/UrbanNexus-sub000/internal/sim/catalogs"
	"github.com/incognitogotwifi/UrbanNexus-sub000/internal/sim/gamemap"
	"github.com/incognitogotwifi/UrbanNexus-sub000/internal/sim/tuning"
	"github.com/incognitogotwifi/UrbanNexus-sub000/internal/sim/world"
	"github.com/incognitogotwifi/UrbanNexus-sub000/internal/transport/adminapi"
	"github.com/incognitogotwifi/UrbanNexus-sub000/internal/transport/ws"
)

func main() {
	var (
		addr       = flag.String("addr", ":8080", "http listen address")
		worldID    = flag.String("world", "world_1", "world id")
		seed       = flag.Int64("seed", 1337, "spawn selection seed")
		configDir  = flag.String("configs", "./configs", "config directory")
		dataDir    = flag.String("data", "./data", "runtime data directory")
		dbPath     = flag.String("db", "", "profiles sqlite path (default: <data>/profiles.db; empty string '-' disables)")
		adminToken = flag.String("admin_token", "", "bearer token for the admin surface (or set UN_ADMIN_TOKEN; empty disables auth)")

		snapPath   = flag.String("snapshot", "", "path to snapshot to load (optional)")
		loadLatest = flag.Bool("load_latest_snapshot", true, "load latest snapshot from data dir if present (when -snapshot is empty)")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)

	tune, err := tuning.Load(filepath.Join(*configDir, "tuning.yaml"))
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Fatalf("load tuning: %v", err)
		}
		logger.Printf("tuning not found; using defaults")
		tune = tuning.Defaults()
	}

	weapons, err := catalogs.Load(filepath.Join(*configDir, "weapons.json"))
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Fatalf("load weapons: %v", err)
		}
		logger.Printf("weapons.json not found; using built-in catalog")
		weapons = catalogs.Defaults()
	}

	maps := gamemap.NewStore(*seed)
	if err := maps.LoadDir(filepath.Join(*configDir, "maps")); err != nil {
		logger.Printf("load maps: %v; using built-in arena", err)
		_ = maps.Put(gamemap.Default("downtown", 64, 48))
	}

	// Optional profile store: the sim tolerates this collaborator being
	// unavailable.
	var store *profiles.Store
	path := strings.TrimSpace(*dbPath)
	if path == "" {
		path = filepath.Join(*dataDir, "profiles.db")
	}
	if path != "-" {
		store, err = profiles.Open(path)
		if err != nil {
			logger.Printf("profiles unavailable, running ephemeral: %v", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	w, err := world.New(world.Config{
		ID:                  *worldID,
		TickRateHz:          tune.TickRateHz,
		BroadcastEveryTicks: tune.BroadcastEveryTicks,
		MaxSpeed:            tune.MaxSpeed,
		RespawnDelayMs:      tune.RespawnDelayMs,
		KillReward:          tune.KillReward,
		StartingMoney:       tune.StartingMoney,
		MaxHealth:           tune.MaxHealth,
		AmmoCap:             tune.AmmoCap,
		HitRadius:           tune.HitRadius,
		DefaultWeapon:       tune.DefaultWeapon,
		GangMaxMembers:      tune.GangMaxMembers,
		GangWarDurationMs:   tune.GangWarDurationMs,
		GangWarAward:        tune.GangWarAward,
		SpawnCrowdRadius:    tune.SpawnCrowdRadius,
		ChatWindowTicks:     tune.RateLimits.ChatWindowTicks,
		ChatMax:             tune.RateLimits.ChatMax,
	}, weapons, maps, logger)
	if err != nil {
		logger.Fatalf("world: %v", err)
	}

	snapshotToLoad := strings.TrimSpace(*snapPath)
	if snapshotToLoad == "" && *loadLatest {
		snapshotToLoad = latestSnapshot(filepath.Join(*dataDir, "snapshots"))
	}
	if snapshotToLoad != "" {
		snap, err := snapshot.Read(snapshotToLoad)
		if err != nil {
			logger.Fatalf("read snapshot: %v", err)
		}
		if err := w.ImportSnapshot(snap); err != nil {
			logger.Fatalf("import snapshot: %v", err)
		}
		logger.Printf("resumed from snapshot=%s tick=%d", filepath.Base(snapshotToLoad), w.CurrentTick())
	}

	ctx, cancel := signalContext()
	defer cancel()

	// Durable profile writes happen off the world goroutine.
	if store != nil {
		sink := make(chan world.ProfileUpdate, 64)
		w.SetProfileSink(sink)
		go runProfileWriter(ctx, store, sink, logger)
	}

	token := strings.TrimSpace(*adminToken)
	if token == "" {
		token = strings.TrimSpace(os.Getenv("UN_ADMIN_TOKEN"))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/ws", ws.NewServer(w, store, logger).Handler())
	adminapi.NewServer(w, token, *dataDir, logger).Routes(mux)

	srv := &http.Server{Addr: *addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	go func() {
		logger.Printf("listening on %s (world=%s tick=%dHz)", *addr, w.ID(), w.TickRateHz())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("http: %v", err)
		}
	}()

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatalf("world loop: %v", err)
	}
	logger.Printf("shutdown complete")
}

func runProfileWriter(ctx context.Context, store *profiles.Store, sink <-chan world.ProfileUpdate, logger *log.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case upd := <-sink:
			writeCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			err := store.UpdatePlayerProfile(writeCtx, profiles.Profile{
				Username: upd.Username,
				X:        upd.Pos.X,
				Y:        upd.Pos.Y,
				Health:   upd.Health,
				Money:    upd.Money,
				Kills:    upd.Kills,
				Deaths:   upd.Deaths,
				WeaponID: upd.WeaponID,
			})
			cancel()
			if err != nil {
				logger.Printf("profile write for %q: %v", upd.Username, err)
			}
		}
	}
}

func latestSnapshot(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	best := ""
	bestTick := -1
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".snap.zst") {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSuffix(e.Name(), ".snap.zst"))
		if err != nil || n <= bestTick {
			continue
		}
		best = e.Name()
		bestTick = n
	}
	if best == "" {
		return ""
	}
	return filepath.Join(dir, best)
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
	}()
	return ctx, cancel
}
