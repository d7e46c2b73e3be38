package tilemap

import "fmt"

// DefaultChunkSize matches the editor's output chunk size for
// infinite maps.
const DefaultChunkSize = 16

// Chunk is a fixed-size dense sub-grid anchored at an origin offset in
// tile coordinates. Owned exclusively by its parent layer's ChunkSet.
type Chunk struct {
	offset TileCoordinate
	grid   *TileGrid
}

// NewChunk allocates an empty width×height chunk at the given offset.
func NewChunk(offset TileCoordinate, width, height int32) *Chunk {
	return &Chunk{offset: offset, grid: NewTileGrid(width, height)}
}

// Offset returns the chunk's origin in global tile coordinates.
func (c *Chunk) Offset() TileCoordinate { return c.offset }

// Width returns the chunk width in tiles.
func (c *Chunk) Width() int32 { return c.grid.Width() }

// Height returns the chunk height in tiles.
func (c *Chunk) Height() int32 { return c.grid.Height() }

// Occupied returns the number of non-empty slots.
func (c *Chunk) Occupied() int { return c.grid.Occupied() }

// local translates a global coordinate into chunk-local space.
func (c *Chunk) local(global TileCoordinate) TileCoordinate {
	return TileCoordinate{X: global.X - c.offset.X, Y: global.Y - c.offset.Y}
}

// Contains reports whether the global coordinate falls inside the chunk.
func (c *Chunk) Contains(global TileCoordinate) bool {
	return c.grid.Contains(c.local(global))
}

// TileAt returns the tile at the global coordinate, nil for empty.
func (c *Chunk) TileAt(global TileCoordinate) (*Tile, error) {
	return c.grid.TileAt(c.local(global))
}

// SetTile places a tile at the global coordinate, returning any
// evicted occupant.
func (c *Chunk) SetTile(global TileCoordinate, t *Tile) (*Tile, error) {
	return c.grid.SetTile(c.local(global), t)
}

// ForEachTile visits every occupied slot in row-major order.
func (c *Chunk) ForEachTile(fn func(*Tile) bool) {
	c.grid.ForEachTile(fn)
}

// PackedData serializes the chunk into row-major packed references,
// zero for empty slots.
func (c *Chunk) PackedData() []uint32 {
	return c.grid.PackedData()
}

// overlaps reports whether two chunk bounds intersect in global space.
func (c *Chunk) overlaps(other *Chunk) bool {
	return c.offset.X < other.offset.X+other.Width() &&
		other.offset.X < c.offset.X+c.Width() &&
		c.offset.Y < other.offset.Y+other.Height() &&
		other.offset.Y < c.offset.Y+c.Height()
}

// ChunkSet is the tile storage of an infinite layer: an ordered
// collection of non-overlapping chunks. Lookups translate the global
// coordinate into each chunk's local space; the first match wins, which
// is sound because non-overlap is enforced on insert.
//
// Like TileGrid, not safe for concurrent writes.
type ChunkSet struct {
	chunkWidth  int32
	chunkHeight int32
	chunks      []*Chunk
}

// NewChunkSet returns an empty set. The given dimensions are used for
// chunks auto-allocated on placement; explicitly inserted chunks may
// have other sizes.
func NewChunkSet(chunkWidth, chunkHeight int32) *ChunkSet {
	if chunkWidth <= 0 {
		chunkWidth = DefaultChunkSize
	}
	if chunkHeight <= 0 {
		chunkHeight = DefaultChunkSize
	}
	return &ChunkSet{chunkWidth: chunkWidth, chunkHeight: chunkHeight}
}

// Len returns the number of chunks.
func (s *ChunkSet) Len() int { return len(s.chunks) }

// Chunks returns the chunks in insertion order. The slice is owned by
// the set; callers must not modify it.
func (s *ChunkSet) Chunks() []*Chunk { return s.chunks }

// Insert adds a chunk, rejecting any overlap with existing chunks.
func (s *ChunkSet) Insert(ch *Chunk) error {
	for _, existing := range s.chunks {
		if ch.overlaps(existing) {
			return fmt.Errorf("inserting chunk at %v: %w", ch.Offset(), ErrChunkOverlap)
		}
	}
	s.chunks = append(s.chunks, ch)
	return nil
}

// ChunkAt returns the chunk owning the global coordinate, nil if none.
func (s *ChunkSet) ChunkAt(c TileCoordinate) *Chunk {
	for _, ch := range s.chunks {
		if ch.Contains(c) {
			return ch
		}
	}
	return nil
}

// TileAt returns the tile at the global coordinate, nil if no chunk
// covers it or the slot is empty.
func (s *ChunkSet) TileAt(c TileCoordinate) *Tile {
	ch := s.ChunkAt(c)
	if ch == nil {
		return nil
	}
	t, _ := ch.TileAt(c)
	return t
}

// ensure returns the chunk owning the coordinate, allocating a
// grid-aligned one if none covers it. Aligned allocation cannot
// overlap other aligned chunks; collisions with explicitly inserted
// chunks surface as an insert error.
func (s *ChunkSet) ensure(c TileCoordinate) (*Chunk, error) {
	if ch := s.ChunkAt(c); ch != nil {
		return ch, nil
	}
	origin := TileCoordinate{
		X: floorDiv(c.X, s.chunkWidth) * s.chunkWidth,
		Y: floorDiv(c.Y, s.chunkHeight) * s.chunkHeight,
	}
	ch := NewChunk(origin, s.chunkWidth, s.chunkHeight)
	if err := s.Insert(ch); err != nil {
		return nil, err
	}
	return ch, nil
}

// Clear drops all chunks.
func (s *ChunkSet) Clear() {
	s.chunks = nil
}

// floorDiv is integer division rounding toward negative infinity.
func floorDiv(a, b int32) int32 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
