package tilemap

// TileGrid is dense row-major storage for a finite layer: width×height
// optional tile slots, at most one tile per coordinate.
//
// Not safe for concurrent writes. Reads may run concurrently with each
// other but the caller must serialize writers (single-writer discipline).
type TileGrid struct {
	width  int32
	height int32
	tiles  []*Tile
}

// NewTileGrid allocates an all-empty grid.
func NewTileGrid(width, height int32) *TileGrid {
	return &TileGrid{
		width:  width,
		height: height,
		tiles:  make([]*Tile, int(width)*int(height)),
	}
}

// Width returns the grid width in tiles.
func (g *TileGrid) Width() int32 { return g.width }

// Height returns the grid height in tiles.
func (g *TileGrid) Height() int32 { return g.height }

// Occupied returns the number of non-empty slots. Writes to disjoint
// slots never touch shared state, so partitioned bulk loads can run
// without a counter; this scans instead.
func (g *TileGrid) Occupied() int {
	n := 0
	for _, t := range g.tiles {
		if t != nil {
			n++
		}
	}
	return n
}

// Contains reports whether the coordinate is within bounds.
func (g *TileGrid) Contains(c TileCoordinate) bool {
	return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height
}

func (g *TileGrid) index(c TileCoordinate) int {
	return int(c.Y)*int(g.width) + int(c.X)
}

// TileAt returns the tile at the coordinate, nil for an empty slot.
func (g *TileGrid) TileAt(c TileCoordinate) (*Tile, error) {
	if !g.Contains(c) {
		return nil, &InvalidCoordinateError{Coord: c, Width: g.width, Height: g.height}
	}
	return g.tiles[g.index(c)], nil
}

// SetTile places a tile at the coordinate and returns the evicted
// previous occupant, if any.
func (g *TileGrid) SetTile(c TileCoordinate, t *Tile) (*Tile, error) {
	if !g.Contains(c) {
		return nil, &InvalidCoordinateError{Coord: c, Width: g.width, Height: g.height}
	}
	i := g.index(c)
	prev := g.tiles[i]
	g.tiles[i] = t
	return prev, nil
}

// RemoveTile empties the slot and returns the removed tile, if any.
func (g *TileGrid) RemoveTile(c TileCoordinate) (*Tile, error) {
	return g.SetTile(c, nil)
}

// Clear releases every occupied slot, keeping the dimensions.
func (g *TileGrid) Clear() {
	clear(g.tiles)
}

// PackedData serializes the grid into row-major packed references,
// zero for empty slots. The persistence counterpart of SetLayerData.
func (g *TileGrid) PackedData() []uint32 {
	out := make([]uint32, len(g.tiles))
	for i, t := range g.tiles {
		if t != nil {
			out[i] = t.PackedGID()
		}
	}
	return out
}

// ForEachTile visits every occupied slot in row-major order. Returning
// false from fn stops the iteration.
func (g *TileGrid) ForEachTile(fn func(*Tile) bool) {
	for _, t := range g.tiles {
		if t == nil {
			continue
		}
		if !fn(t) {
			return
		}
	}
}
