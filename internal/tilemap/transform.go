package tilemap

import "math"

// TileToScreen converts a tile coordinate to the map-space pixel
// position of the cell's bounding-box origin. Pure function of the
// immutable geometry; safe for concurrent use.
func (g Geometry) TileToScreen(c TileCoordinate) MapPoint {
	switch g.Orientation {
	case Isometric:
		return g.isoTileToScreen(c)
	case Hexagonal, Staggered:
		return g.hexTileToScreen(c)
	default:
		return g.orthoTileToScreen(c)
	}
}

// ScreenToTile converts a map-space point to the coordinate of the
// cell containing it. The inverse of TileToScreen up to floor-rounding
// at cell boundaries.
func (g Geometry) ScreenToTile(p MapPoint) TileCoordinate {
	switch g.Orientation {
	case Isometric:
		return g.isoScreenToTile(p)
	case Hexagonal:
		return g.hexScreenToTile(p)
	case Staggered:
		return g.staggeredScreenToTile(p)
	default:
		return g.orthoScreenToTile(p)
	}
}

// PointForCoordinate returns the render-space position for a tile at
// the given coordinate: map-space cell origin plus the tile-center
// offset, with the Y axis inverted for rendering.
func (g Geometry) PointForCoordinate(c TileCoordinate) ScreenPoint {
	return g.PointForCoordinateOffset(c, 0, 0)
}

// PointForCoordinateOffset is PointForCoordinate with an extra
// map-space pixel offset (per-tileset draw offsets).
func (g Geometry) PointForCoordinateOffset(c TileCoordinate, offsetX, offsetY float64) ScreenPoint {
	p := g.TileToScreen(c)
	p.X += float64(g.TileWidth)/2 + offsetX
	p.Y += float64(g.TileHeight)/2 + offsetY
	return p.InvertY()
}

// CoordinateForPoint returns the coordinate of the cell containing the
// given render-space point. The inverse bridge of PointForCoordinate.
func (g Geometry) CoordinateForPoint(p ScreenPoint) TileCoordinate {
	return g.ScreenToTile(p.InvertY())
}

func (g Geometry) orthoTileToScreen(c TileCoordinate) MapPoint {
	return MapPoint{
		X: float64(c.X) * float64(g.TileWidth),
		Y: float64(c.Y) * float64(g.TileHeight),
	}
}

func (g Geometry) orthoScreenToTile(p MapPoint) TileCoordinate {
	return TileCoordinate{
		X: int32(math.Floor(p.X / float64(g.TileWidth))),
		Y: int32(math.Floor(p.Y / float64(g.TileHeight))),
	}
}

// isoOriginX is the map-space X of column 0, row 0 in the diamond
// projection: the top corner sits mapHeight half-tiles to the right.
func (g Geometry) isoOriginX() float64 {
	return float64(g.Height) * float64(g.TileWidth) / 2
}

func (g Geometry) isoTileToScreen(c TileCoordinate) MapPoint {
	halfW := float64(g.TileWidth) / 2
	halfH := float64(g.TileHeight) / 2
	return MapPoint{
		X: (float64(c.X)-float64(c.Y))*halfW + g.isoOriginX(),
		Y: (float64(c.X) + float64(c.Y)) * halfH,
	}
}

func (g Geometry) isoScreenToTile(p MapPoint) TileCoordinate {
	x := (p.X - g.isoOriginX()) / float64(g.TileWidth)
	y := p.Y / float64(g.TileHeight)
	return TileCoordinate{
		X: int32(math.Floor(y + x)),
		Y: int32(math.Floor(y - x)),
	}
}
