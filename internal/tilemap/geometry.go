package tilemap

import "fmt"

// TileCoordinate addresses a grid cell by column (X) and row (Y).
type TileCoordinate struct {
	X, Y int32
}

func (c TileCoordinate) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// MapPoint is a position in map space: origin at the top-left corner,
// Y grows downward (the source-data convention).
type MapPoint struct {
	X, Y float64
}

// ScreenPoint is a position in render space, where Y grows upward.
// InvertY is the bridge between the two conventions.
type ScreenPoint struct {
	X, Y float64
}

// InvertY converts a map-space point to render space.
func (p MapPoint) InvertY() ScreenPoint {
	return ScreenPoint{X: p.X, Y: -p.Y}
}

// InvertY converts a render-space point back to map space.
func (p ScreenPoint) InvertY() MapPoint {
	return MapPoint{X: p.X, Y: -p.Y}
}

// Geometry holds the immutable metrics of one map: tile size, map size
// in tiles, orientation, and the derived hex/stagger measurements.
// Values are computed once by NewGeometry and never change afterwards.
type Geometry struct {
	Orientation  Orientation
	StaggerAxis  StaggerAxis
	StaggerIndex StaggerIndex

	TileWidth  int32
	TileHeight int32
	Width      int32 // map width in tiles
	Height     int32 // map height in tiles

	// Derived hex metrics. For orthogonal, isometric and staggered maps
	// the side lengths are zero and the rest degenerate to half-tile sizes.
	SideLengthX float64
	SideLengthY float64
	SideOffsetX float64
	SideOffsetY float64
	ColumnWidth float64
	RowHeight   float64
}

// NewGeometry validates the inputs and computes the derived metrics.
// hexSideLength is only meaningful for hexagonal maps and is applied to
// the stagger axis; pass 0 for the other orientations.
func NewGeometry(o Orientation, tileWidth, tileHeight, width, height int32, axis StaggerAxis, index StaggerIndex, hexSideLength float64) (Geometry, error) {
	if tileWidth <= 0 || tileHeight <= 0 {
		return Geometry{}, fmt.Errorf("invalid tile size %dx%d", tileWidth, tileHeight)
	}
	if width < 0 || height < 0 {
		return Geometry{}, fmt.Errorf("invalid map size %dx%d", width, height)
	}
	if hexSideLength < 0 {
		return Geometry{}, fmt.Errorf("invalid hex side length %v", hexSideLength)
	}

	g := Geometry{
		Orientation:  o,
		StaggerAxis:  axis,
		StaggerIndex: index,
		TileWidth:    tileWidth,
		TileHeight:   tileHeight,
		Width:        width,
		Height:       height,
	}

	if o == Hexagonal {
		if axis == StaggerX {
			g.SideLengthX = hexSideLength
		} else {
			g.SideLengthY = hexSideLength
		}
	}
	g.SideOffsetX = (float64(tileWidth) - g.SideLengthX) / 2
	g.SideOffsetY = (float64(tileHeight) - g.SideLengthY) / 2
	g.ColumnWidth = g.SideOffsetX + g.SideLengthX
	g.RowHeight = g.SideOffsetY + g.SideLengthY

	return g, nil
}

// Contains reports whether the coordinate lies within the finite map bounds.
func (g Geometry) Contains(c TileCoordinate) bool {
	return c.X >= 0 && c.X < g.Width && c.Y >= 0 && c.Y < g.Height
}

// doStagger reports whether the row (or column for StaggerX) at the
// given index receives the stagger offset. Safe for negative indices.
func (g Geometry) doStagger(index int32) bool {
	odd := ((index % 2) + 2) % 2
	if g.StaggerIndex == StaggerEven {
		return odd == 0
	}
	return odd == 1
}
