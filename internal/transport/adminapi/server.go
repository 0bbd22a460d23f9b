package adminapi

import (
	"crypto/subtle"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/incognitogotwifi/UrbanNexus-sub000/internal/persistence/snapshot"
	"github.com/incognitogotwifi/UrbanNexus-sub000/internal/sim/gamemap"
	"github.com/incognitogotwifi/UrbanNexus-sub000/internal/sim/world"
)

const requestTimeout = 5 * time.Second

// Server is the request/response admin surface. It is not part of the hot
// path; every op is a channel round trip answered at a tick boundary.
type Server struct {
	world   *world.World
	token   string // empty disables auth (dev)
	dataDir string
	log     *log.Logger
}

func NewServer(w *world.World, token, dataDir string, logger *log.Logger) *Server {
	return &Server{world: w, token: token, dataDir: dataDir, log: logger}
}

func (s *Server) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/admin/v1/status", s.simple("status"))
	mux.HandleFunc("/admin/v1/settings", s.simple("settings"))
	mux.HandleFunc("/admin/v1/kick", s.simple("kick"))
	mux.HandleFunc("/admin/v1/ban", s.simple("ban"))
	mux.HandleFunc("/admin/v1/unban", s.simple("unban"))
	mux.HandleFunc("/admin/v1/heal", s.simple("heal"))
	mux.HandleFunc("/admin/v1/teleport", s.simple("teleport"))
	mux.HandleFunc("/admin/v1/gang/create", s.simple("gang_create"))
	mux.HandleFunc("/admin/v1/gang/join", s.simple("gang_join"))
	mux.HandleFunc("/admin/v1/gang/leave", s.simple("gang_leave"))
	mux.HandleFunc("/admin/v1/gang/score", s.simple("gang_score"))
	mux.HandleFunc("/admin/v1/gang/war", s.simple("gang_war"))
	mux.HandleFunc("/admin/v1/weapon", s.simple("weapon_override"))
	mux.HandleFunc("/admin/v1/map/set", s.simple("set_map"))
	mux.HandleFunc("/admin/v1/map/tile/add", s.simple("tile_add"))
	mux.HandleFunc("/admin/v1/map/tile/remove", s.simple("tile_remove"))
	mux.HandleFunc("/admin/v1/map/spawn/add", s.simple("spawn_add"))
	mux.HandleFunc("/admin/v1/map/spawn/remove", s.simple("spawn_remove"))
	mux.HandleFunc("/admin/v1/map/save", s.mapSave)
	mux.HandleFunc("/admin/v1/map/load", s.mapLoad)
	mux.HandleFunc("/admin/v1/snapshot", s.snapshot)
}

func (s *Server) authorized(r *http.Request) bool {
	if s.token == "" {
		return true
	}
	got := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	return subtle.ConstantTimeCompare([]byte(got), []byte(s.token)) == 1
}

func (s *Server) roundTrip(req world.AdminRequest) world.AdminResult {
	req.Resp = make(chan world.AdminResult, 1)
	select {
	case s.world.Admin() <- req:
	case <-time.After(requestTimeout):
		return world.AdminResult{Success: false, Message: "world busy"}
	}
	select {
	case res := <-req.Resp:
		return res
	case <-time.After(requestTimeout):
		return world.AdminResult{Success: false, Message: "world busy"}
	}
}

func (s *Server) simple(op string) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		if !s.authorized(r) {
			writeResult(rw, http.StatusUnauthorized, world.AdminResult{Success: false, Message: "unauthorized"})
			return
		}
		var args world.AdminArgs
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&args)
		}
		res := s.roundTrip(world.AdminRequest{Op: op, Args: args})
		status := http.StatusOK
		if !res.Success {
			status = http.StatusBadRequest
		}
		writeResult(rw, status, res)
	}
}

func (s *Server) mapSave(rw http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		writeResult(rw, http.StatusUnauthorized, world.AdminResult{Success: false, Message: "unauthorized"})
		return
	}
	var args world.AdminArgs
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&args)
	}
	res := s.roundTrip(world.AdminRequest{Op: "map_save", Args: args})
	if !res.Success {
		writeResult(rw, http.StatusBadRequest, res)
		return
	}
	raw, _ := res.Data.(json.RawMessage)
	var m gamemap.Map
	if err := json.Unmarshal(raw, &m); err != nil {
		writeResult(rw, http.StatusInternalServerError, world.AdminResult{Success: false, Message: err.Error()})
		return
	}
	path := filepath.Join(s.dataDir, "maps", m.ID+".json")
	st := gamemap.NewStore(0)
	_ = st.Put(&m)
	if err := st.SaveFile(m.ID, path); err != nil {
		writeResult(rw, http.StatusInternalServerError, world.AdminResult{Success: false, Message: err.Error()})
		return
	}
	writeResult(rw, http.StatusOK, world.AdminResult{Success: true, Message: "saved " + path})
}

func (s *Server) mapLoad(rw http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		writeResult(rw, http.StatusUnauthorized, world.AdminResult{Success: false, Message: "unauthorized"})
		return
	}
	var args world.AdminArgs
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&args)
	}
	if args.MapID == "" {
		writeResult(rw, http.StatusBadRequest, world.AdminResult{Success: false, Message: "mapId required"})
		return
	}
	m, err := gamemap.LoadFile(filepath.Join(s.dataDir, "maps", args.MapID+".json"))
	if err != nil {
		writeResult(rw, http.StatusBadRequest, world.AdminResult{Success: false, Message: err.Error()})
		return
	}
	args.Map = m
	res := s.roundTrip(world.AdminRequest{Op: "map_load", Args: args})
	status := http.StatusOK
	if !res.Success {
		status = http.StatusBadRequest
	}
	writeResult(rw, status, res)
}

func (s *Server) snapshot(rw http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		writeResult(rw, http.StatusUnauthorized, world.AdminResult{Success: false, Message: "unauthorized"})
		return
	}
	res := s.roundTrip(world.AdminRequest{Op: "snapshot"})
	if !res.Success {
		writeResult(rw, http.StatusBadRequest, res)
		return
	}
	snap, okSnap := res.Data.(snapshot.SnapshotV1)
	if !okSnap {
		writeResult(rw, http.StatusInternalServerError, world.AdminResult{Success: false, Message: "bad snapshot payload"})
		return
	}
	path := filepath.Join(s.dataDir, "snapshots", fmt.Sprintf("%d.snap.zst", snap.Header.Tick))
	if err := snapshot.Write(path, snap); err != nil {
		writeResult(rw, http.StatusInternalServerError, world.AdminResult{Success: false, Message: err.Error()})
		return
	}
	writeResult(rw, http.StatusOK, world.AdminResult{Success: true, Message: "wrote " + path})
}

func writeResult(rw http.ResponseWriter, status int, res world.AdminResult) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	_ = json.NewEncoder(rw).Encode(res)
}
