package tilemap

// TilesetData is the resolved tileset information for one raw id,
// returned by the asset subsystem. Opaque to the grid engine except
// for the draw offset, which feeds into tile positioning.
type TilesetData struct {
	Tileset    string // tileset name
	LocalID    uint32 // id within the tileset
	OffsetX    float64
	OffsetY    float64
	Properties map[string]PropertyValue
}

// TilesetResolver maps a raw tile id to tileset data. Supplied by the
// tileset/asset subsystem; treated as an opaque synchronous lookup.
type TilesetResolver interface {
	Resolve(id uint32) (TilesetData, bool)
}

// Renderable is the narrow contract a rendering layer consumes to
// build the actual scene node for a placed tile. Nothing flows back
// into the grid engine through it.
type Renderable interface {
	Coord() TileCoordinate
	Position() ScreenPoint
	FlipFlags() FlipFlags
	ResolvedData() TilesetData
}

// Tile is one placed tile: immutable data once built. Slot lifecycle
// (empty/occupied) lives in the grid, not here.
type Tile struct {
	coord TileCoordinate
	id    uint32 // raw global id, without flip bits
	pos   ScreenPoint
	flags FlipFlags
	data  TilesetData
}

// NewTile builds a tile from resolved data. Position is computed by
// the caller via the transform engine.
func NewTile(coord TileCoordinate, id uint32, pos ScreenPoint, flags FlipFlags, data TilesetData) *Tile {
	return &Tile{coord: coord, id: id, pos: pos, flags: flags, data: data}
}

// Coord returns the tile's grid coordinate.
func (t *Tile) Coord() TileCoordinate { return t.coord }

// GlobalID returns the raw global id the tile was built from.
func (t *Tile) GlobalID() uint32 { return t.id }

// PackedGID re-encodes the tile's id and flip flags into the packed
// wire form. Bit-identical to the value the tile was decoded from.
func (t *Tile) PackedGID() uint32 { return EncodeGID(t.id, t.flags) }

// Position returns the render-space position computed at build time.
func (t *Tile) Position() ScreenPoint { return t.pos }

// FlipFlags returns the decoded flip transforms.
func (t *Tile) FlipFlags() FlipFlags { return t.flags }

// ResolvedData returns the tileset data the id resolved to.
func (t *Tile) ResolvedData() TilesetData { return t.data }
