package tilemap

import "math"

// staggeredScreenToTile resolves the staggered-isometric inverse.
// Cells are rectangular half-offset diamonds, so no center search is
// needed: the point either falls inside the reference cell's diamond
// or into one of four triangular corner regions belonging to diagonal
// neighbors. The corner tests compare the point against the diamond
// edges via a slope of tileHeight/tileWidth and must run in the order
// top-left, top-right, bottom-left, bottom-right, first match winning.
func (g Geometry) staggeredScreenToTile(p MapPoint) TileCoordinate {
	if g.StaggerAxis == StaggerX {
		if g.StaggerIndex == StaggerEven {
			p.X -= float64(g.TileWidth) / 2
		}
	} else {
		if g.StaggerIndex == StaggerEven {
			p.Y -= float64(g.TileHeight) / 2
		}
	}

	tileW := float64(g.TileWidth)
	tileH := float64(g.TileHeight)

	ref := TileCoordinate{
		X: int32(math.Floor(p.X / tileW)),
		Y: int32(math.Floor(p.Y / tileH)),
	}
	relX := p.X - float64(ref.X)*tileW
	relY := p.Y - float64(ref.Y)*tileH

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

	halfH := tileH / 2
	delta := relX * (tileH / tileW)

	switch {
	case halfH-delta > relY:
		return g.topLeft(ref)
	case -halfH+delta > relY:
		return g.topRight(ref)
	case halfH+delta < relY:
		return g.bottomLeft(ref)
	case halfH*3-delta < relY:
		return g.bottomRight(ref)
	}
	return ref
}

// Diagonal neighbor lookups. Which tile coordinate a diagonal step
// lands on depends on whether the current row (or column) is the
// staggered one.

func (g Geometry) topLeft(c TileCoordinate) TileCoordinate {
	if g.StaggerAxis == StaggerY {
		if g.doStagger(c.Y) {
			return TileCoordinate{c.X, c.Y - 1}
		}
		return TileCoordinate{c.X - 1, c.Y - 1}
	}
	if g.doStagger(c.X) {
		return TileCoordinate{c.X - 1, c.Y}
	}
	return TileCoordinate{c.X - 1, c.Y - 1}
}

func (g Geometry) topRight(c TileCoordinate) TileCoordinate {
	if g.StaggerAxis == StaggerY {
		if g.doStagger(c.Y) {
			return TileCoordinate{c.X + 1, c.Y - 1}
		}
		return TileCoordinate{c.X, c.Y - 1}
	}
	if g.doStagger(c.X) {
		return TileCoordinate{c.X + 1, c.Y}
	}
	return TileCoordinate{c.X + 1, c.Y - 1}
}

func (g Geometry) bottomLeft(c TileCoordinate) TileCoordinate {
	if g.StaggerAxis == StaggerY {
		if g.doStagger(c.Y) {
			return TileCoordinate{c.X, c.Y + 1}
		}
		return TileCoordinate{c.X - 1, c.Y + 1}
	}
	if g.doStagger(c.X) {
		return TileCoordinate{c.X - 1, c.Y + 1}
	}
	return TileCoordinate{c.X - 1, c.Y}
}

func (g Geometry) bottomRight(c TileCoordinate) TileCoordinate {
	if g.StaggerAxis == StaggerY {
		if g.doStagger(c.Y) {
			return TileCoordinate{c.X + 1, c.Y + 1}
		}
		return TileCoordinate{c.X, c.Y + 1}
	}
	if g.doStagger(c.X) {
		return TileCoordinate{c.X + 1, c.Y + 1}
	}
	return TileCoordinate{c.X + 1, c.Y}
}
