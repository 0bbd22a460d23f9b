package snapshot

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
)

type Header struct {
	Version int    `json:"version"`
	WorldID string `json:"world_id"`
	Tick    uint64 `json:"tick"`
}

// SnapshotV1 captures the full world state for restart continuity. Bullets
// are not captured; in-flight projectiles do not survive a restart.
type SnapshotV1 struct {
	Header Header `json:"header"`

	TickRateHz int    `json:"tick_rate_hz"`
	MapID      string `json:"map_id"`

	Players []PlayerV1 `json:"players"`
	Gangs   []GangV1   `json:"gangs"`
	Banned  []string   `json:"banned,omitempty"`

	Counters CountersV1 `json:"counters"`
}

type PlayerV1 struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Username  string  `json:"username,omitempty"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Health    int     `json:"health"`
	MaxHealth int     `json:"max_health"`
	Ammo      int     `json:"ammo"`
	Money     int     `json:"money"`
	Kills     int     `json:"kills"`
	Deaths    int     `json:"deaths"`
	WeaponID  string  `json:"weapon_id"`
	IsAlive   bool    `json:"is_alive"`
	GangID    string  `json:"gang_id,omitempty"`
	GangRank  string  `json:"gang_rank,omitempty"`
	Color     string  `json:"color,omitempty"`
}

type GangV1 struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	LeaderID  string   `json:"leader_id"`
	MemberIDs []string `json:"member_ids"`
	Color     string   `json:"color,omitempty"`
	Score     int      `json:"score"`
	Kills     int      `json:"kills"`
	Deaths    int      `json:"deaths"`

	Territory *RectV1 `json:"territory,omitempty"`
}

type RectV1 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

type CountersV1 struct {
	NextPlayer uint64 `json:"next_player"`
	NextBullet uint64 `json:"next_bullet"`
	NextGang   uint64 `json:"next_gang"`
	NextWar    uint64 `json:"next_war"`
}

func Write(path string, snap SnapshotV1) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	defer enc.Close()

	bw := bufio.NewWriterSize(enc, 64*1024)
	defer bw.Flush()

	hb, _ := json.Marshal(snap.Header)
	if _, err := bw.Write(hb); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	if err := gob.NewEncoder(bw).Encode(&snap); err != nil {
		return fmt.Errorf("gob encode: %w", err)
	}
	return nil
}

func Read(path string) (SnapshotV1, error) {
	var snap SnapshotV1
	f, err := os.Open(path)
	if err != nil {
		return snap, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return snap, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 64*1024)

	// Skip the header line; the gob body repeats it.
	_, _ = br.ReadBytes('\n')

	if err := gob.NewDecoder(br).Decode(&snap); err != nil {
		return snap, fmt.Errorf("gob decode: %w", err)
	}
	return snap, nil
}
