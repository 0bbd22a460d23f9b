package gamemap

// Default builds a bordered arena used when no map files are configured:
// collision walls around the edge and spawn points near each corner and the
// center.
func Default(id string, width, height int) *Map {
	m := &Map{
		ID:     id,
		Name:   id,
		Width:  width,
		Height: height,
		TileSz: DefaultTileSize,
	}
	for x := 0; x < width; x++ {
		m.Tiles = append(m.Tiles,
			Tile{X: x, Y: 0, Texture: "wall", Collides: true},
			Tile{X: x, Y: height - 1, Texture: "wall", Collides: true},
		)
	}
	for y := 1; y < height-1; y++ {
		m.Tiles = append(m.Tiles,
			Tile{X: 0, Y: y, Texture: "wall", Collides: true},
			Tile{X: width - 1, Y: y, Texture: "wall", Collides: true},
		)
	}
	w, h := m.PixelWidth(), m.PixelHeight()
	inset := 2 * m.TileSz
	m.Spawns = []SpawnPoint{
		{X: inset, Y: inset},
		{X: w - inset, Y: inset},
		{X: inset, Y: h - inset},
		{X: w - inset, Y: h - inset},
		{X: w / 2, Y: h / 2},
	}
	return m
}
