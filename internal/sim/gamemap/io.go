package gamemap

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadFile reads one map from a JSON file.
func LoadFile(path string) (*Map, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Map
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if strings.TrimSpace(m.ID) == "" {
		m.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if m.TileSz <= 0 {
		m.TileSz = DefaultTileSize
	}
	if m.Width <= 0 || m.Height <= 0 {
		return nil, fmt.Errorf("%s: non-positive dimensions", filepath.Base(path))
	}
	seen := map[[3]int]bool{}
	for _, t := range m.Tiles {
		key := [3]int{t.X, t.Y, t.Layer}
		if seen[key] {
			return nil, fmt.Errorf("%s: duplicate tile at (%d,%d) layer %d", filepath.Base(path), t.X, t.Y, t.Layer)
		}
		seen[key] = true
	}
	return &m, nil
}

// LoadDir loads every *.json map in dir into the store.
func (s *Store) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	loaded := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		m, err := LoadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return err
		}
		if err := s.Put(m); err != nil {
			return err
		}
		loaded++
	}
	if loaded == 0 {
		return fmt.Errorf("gamemap: no maps in %s", dir)
	}
	return nil
}

// SaveFile writes a map as JSON (admin map-save surface).
func (s *Store) SaveFile(mapID, path string) error {
	m := s.Get(mapID)
	if m == nil {
		return fmt.Errorf("gamemap: unknown map %q", mapID)
	}
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}
