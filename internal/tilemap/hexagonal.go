package tilemap

import "math"

// Hex inverse mapping: after locating a grid-aligned reference cell,
// the true cell is the one of four candidate hexagon centers nearest
// to the point. These tables translate the chosen candidate into a
// coordinate offset from the reference cell.
var (
	hexOffsetsStaggerX = [4]TileCoordinate{{0, 0}, {1, -1}, {1, 0}, {2, 0}}
	hexOffsetsStaggerY = [4]TileCoordinate{{0, 0}, {-1, 1}, {0, 1}, {0, 2}}
)

// hexTileToScreen positions hexagonal and staggered cells. Staggered
// maps are the degenerate case with zero side length, where the column
// width and row height collapse to half-tile sizes.
func (g Geometry) hexTileToScreen(c TileCoordinate) MapPoint {
	var p MapPoint
	if g.StaggerAxis == StaggerX {
		p.X = float64(c.X) * g.ColumnWidth
		p.Y = float64(c.Y) * (float64(g.TileHeight) + g.SideLengthY)
		if g.doStagger(c.X) {
			p.Y += g.RowHeight
		}
	} else {
		p.X = float64(c.X) * (float64(g.TileWidth) + g.SideLengthX)
		if g.doStagger(c.Y) {
			p.X += g.ColumnWidth
		}
		p.Y = float64(c.Y) * g.RowHeight
	}
	return p
}

// hexScreenToTile is the nearest-center classification. Hex cells are
// not axis-aligned rectangles, so after floor-dividing into a
// reference cell the point is compared against four candidate hexagon
// centers; the first minimum squared distance wins.
func (g Geometry) hexScreenToTile(p MapPoint) TileCoordinate {
	if g.StaggerAxis == StaggerX {
		if g.StaggerIndex == StaggerEven {
			p.X -= float64(g.TileWidth)
		} else {
			p.X -= g.SideOffsetX
		}
	} else {
		if g.StaggerIndex == StaggerEven {
			p.Y -= float64(g.TileHeight)
		} else {
			p.Y -= g.SideOffsetY
		}
	}

	ref := TileCoordinate{
		X: int32(math.Floor(p.X / (g.ColumnWidth * 2))),
		Y: int32(math.Floor(p.Y / (g.RowHeight * 2))),
	}

	// Position relative to the reference cell's bounding box.
	relX := p.X - float64(ref.X)*(g.ColumnWidth*2)
	relY := p.Y - float64(ref.Y)*(g.RowHeight*2)

	// The reference indexes double-width columns (or double-height
	// rows); expand back to tile coordinates on the stagger axis.
	if g.StaggerAxis == StaggerX {
		ref.X *= 2
		if g.StaggerIndex == StaggerEven {
			ref.X++
		}
	} else {
		ref.Y *= 2
		if g.StaggerIndex == StaggerEven {
			ref.Y++
		}
	}

	var centers [4]MapPoint
	if g.StaggerAxis == StaggerX {
		// Flat-top hexagons.
		left := g.SideLengthX / 2
		centerX := left + g.ColumnWidth
		centerY := float64(g.TileHeight) / 2
		centers[0] = MapPoint{left, centerY}
		centers[1] = MapPoint{centerX, centerY - g.RowHeight}
		centers[2] = MapPoint{centerX, centerY + g.RowHeight}
		centers[3] = MapPoint{centerX + g.ColumnWidth, centerY}
	} else {
		// Pointy-top hexagons.
		top := g.SideLengthY / 2
		centerX := float64(g.TileWidth) / 2
		centerY := top + g.RowHeight
		centers[0] = MapPoint{centerX, top}
		centers[1] = MapPoint{centerX - g.ColumnWidth, centerY}
		centers[2] = MapPoint{centerX + g.ColumnWidth, centerY}
		centers[3] = MapPoint{centerX, centerY + g.RowHeight}
	}

	nearest := 0
	minDist := math.MaxFloat64
	for i, center := range centers {
		dx := center.X - relX
		dy := center.Y - relY
		if d := dx*dx + dy*dy; d < minDist {
			minDist = d
			nearest = i
		}
	}

	offsets := &hexOffsetsStaggerY
	if g.StaggerAxis == StaggerX {
		offsets = &hexOffsetsStaggerX
	}
	return TileCoordinate{
		X: ref.X + offsets[nearest].X,
		Y: ref.Y + offsets[nearest].Y,
	}
}
