package gamemap

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// Map is a named tile grid with spawn points. Tiles live on render layers;
// a cell may hold one tile per layer and any colliding layer blocks it.
type Map struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Width  int          `json:"width"`  // in tiles
	Height int          `json:"height"` // in tiles
	TileSz float64      `json:"tileSize"`
	Tiles  []Tile       `json:"tiles"`
	Spawns []SpawnPoint `json:"spawnPoints"`
}

type Tile struct {
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Layer    int    `json:"layer"`
	Texture  string `json:"texture"`
	Collides bool   `json:"collides"`
}

type SpawnPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

const DefaultTileSize = 32

// PixelWidth is the map width in world units.
func (m *Map) PixelWidth() float64 { return float64(m.Width) * m.TileSz }

// PixelHeight is the map height in world units.
func (m *Map) PixelHeight() float64 { return float64(m.Height) * m.TileSz }

// InBounds reports whether a world position is inside the map rectangle.
func (m *Map) InBounds(x, y float64) bool {
	return x >= 0 && y >= 0 && x < m.PixelWidth() && y < m.PixelHeight()
}

// CheckCollision converts world coordinates to tile coordinates and reports
// true when out of bounds or a collision tile occupies that cell on any
// layer.
func (m *Map) CheckCollision(x, y float64) bool {
	tx := int(math.Floor(x / m.TileSz))
	ty := int(math.Floor(y / m.TileSz))
	if tx < 0 || ty < 0 || tx >= m.Width || ty >= m.Height {
		return true
	}
	for _, t := range m.Tiles {
		if t.Collides && t.X == tx && t.Y == ty {
			return true
		}
	}
	return false
}

// AddTile replaces-or-inserts by position+layer.
func (m *Map) AddTile(t Tile) {
	for i := range m.Tiles {
		if m.Tiles[i].X == t.X && m.Tiles[i].Y == t.Y && m.Tiles[i].Layer == t.Layer {
			m.Tiles[i] = t
			return
		}
	}
	m.Tiles = append(m.Tiles, t)
}

func (m *Map) RemoveTile(x, y, layer int) bool {
	for i := range m.Tiles {
		if m.Tiles[i].X == x && m.Tiles[i].Y == y && m.Tiles[i].Layer == layer {
			m.Tiles = append(m.Tiles[:i], m.Tiles[i+1:]...)
			return true
		}
	}
	return false
}

func (m *Map) AddSpawnPoint(p SpawnPoint) {
	for i := range m.Spawns {
		if m.Spawns[i] == p {
			return
		}
	}
	m.Spawns = append(m.Spawns, p)
}

func (m *Map) RemoveSpawnPoint(p SpawnPoint) bool {
	for i := range m.Spawns {
		if m.Spawns[i] == p {
			m.Spawns = append(m.Spawns[:i], m.Spawns[i+1:]...)
			return true
		}
	}
	return false
}

// Store owns the named maps and the active-map selection.
type Store struct {
	maps   map[string]*Map
	active string
	rng    *rand.Rand
}

func NewStore(seed int64) *Store {
	return &Store{
		maps: map[string]*Map{},
		rng:  rand.New(rand.NewSource(seed)),
	}
}

func (s *Store) Put(m *Map) error {
	if m == nil || strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("gamemap: empty map id")
	}
	if m.TileSz <= 0 {
		m.TileSz = DefaultTileSize
	}
	s.maps[m.ID] = m
	if s.active == "" {
		s.active = m.ID
	}
	return nil
}

func (s *Store) Get(id string) *Map {
	if id == "" {
		return s.maps[s.active]
	}
	return s.maps[id]
}

func (s *Store) Active() *Map { return s.maps[s.active] }

func (s *Store) SetActive(id string) error {
	if _, ok := s.maps[id]; !ok {
		return fmt.Errorf("gamemap: unknown map %q", id)
	}
	s.active = id
	return nil
}

func (s *Store) IDs() []string {
	ids := make([]string, 0, len(s.maps))
	for id := range s.maps {
		ids = append(ids, id)
	}
	return ids
}

// SpawnPoint filters the active map's spawns to those not colliding, then
// picks uniformly at random. Falls back to the first defined spawn when all
// are blocked, and to the map center when none are defined.
func (s *Store) SpawnPoint(mapID string) SpawnPoint {
	m := s.Get(mapID)
	if m == nil {
		return SpawnPoint{}
	}
	if len(m.Spawns) == 0 {
		return SpawnPoint{X: m.PixelWidth() / 2, Y: m.PixelHeight() / 2}
	}
	open := make([]SpawnPoint, 0, len(m.Spawns))
	for _, p := range m.Spawns {
		if !m.CheckCollision(p.X, p.Y) {
			open = append(open, p)
		}
	}
	if len(open) == 0 {
		return m.Spawns[0]
	}
	return open[s.rng.Intn(len(open))]
}

// LeastCrowdedSpawn prefers the open spawn with the fewest nearby players,
// as counted by the caller within radius. Ties keep the earlier spawn.
func (s *Store) LeastCrowdedSpawn(mapID string, radius float64, countNear func(x, y, r float64) int) SpawnPoint {
	m := s.Get(mapID)
	if m == nil {
		return SpawnPoint{}
	}
	if len(m.Spawns) == 0 {
		return SpawnPoint{X: m.PixelWidth() / 2, Y: m.PixelHeight() / 2}
	}
	best := SpawnPoint{}
	bestCount := -1
	for _, p := range m.Spawns {
		if m.CheckCollision(p.X, p.Y) {
			continue
		}
		n := countNear(p.X, p.Y, radius)
		if bestCount < 0 || n < bestCount {
			best = p
			bestCount = n
		}
	}
	if bestCount < 0 {
		return m.Spawns[0]
	}
	return best
}
