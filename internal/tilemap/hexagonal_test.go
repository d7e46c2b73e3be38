package tilemap

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// hexCellCenter is the visual center of a hex cell: bounding-box
// origin plus half a tile in both axes.
func hexCellCenter(g Geometry, c TileCoordinate) MapPoint {
	p := g.TileToScreen(c)
	p.X += float64(g.TileWidth) / 2
	p.Y += float64(g.TileHeight) / 2
	return p
}

func TestHexagonalForward(t *testing.T) {
	tests := []struct {
		name  string
		axis  StaggerAxis
		index StaggerIndex
		coord TileCoordinate
		want  MapPoint
	}{
		// Pointy-top, tile 64x64, side 32: columnWidth 32, rowHeight 48.
		{"staggerY odd origin", StaggerY, StaggerOdd, TileCoordinate{0, 0}, MapPoint{0, 0}},
		{"staggerY odd staggered row", StaggerY, StaggerOdd, TileCoordinate{0, 1}, MapPoint{32, 48}},
		{"staggerY odd plain row", StaggerY, StaggerOdd, TileCoordinate{1, 2}, MapPoint{64, 96}},
		{"staggerY even origin row staggered", StaggerY, StaggerEven, TileCoordinate{0, 0}, MapPoint{32, 0}},
		// Flat-top, tile 64x64, side 32: columnWidth 48, rowHeight 32.
		{"staggerX odd origin", StaggerX, StaggerOdd, TileCoordinate{0, 0}, MapPoint{0, 0}},
		{"staggerX odd staggered column", StaggerX, StaggerOdd, TileCoordinate{1, 0}, MapPoint{48, 32}},
		{"staggerX even origin column staggered", StaggerX, StaggerEven, TileCoordinate{0, 0}, MapPoint{0, 32}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGeometry(t, Hexagonal, 64, 64, 8, 8, tt.axis, tt.index, 32)
			assert.Equal(t, tt.want, g.TileToScreen(tt.coord))
		})
	}
}

func TestHexagonalInverseAtCenters(t *testing.T) {
	// A point exactly at a cell's center must classify to that cell:
	// distance zero beats every other candidate.
	for _, axis := range []StaggerAxis{StaggerX, StaggerY} {
		for _, index := range []StaggerIndex{StaggerOdd, StaggerEven} {
			name := fmt.Sprintf("axis=%v index=%v", axis, index)
			t.Run(name, func(t *testing.T) {
				g := mustGeometry(t, Hexagonal, 64, 64, 8, 8, axis, index, 32)
				for y := int32(0); y < g.Height; y++ {
					for x := int32(0); x < g.Width; x++ {
						coord := TileCoordinate{X: x, Y: y}
						got := g.ScreenToTile(hexCellCenter(g, coord))
						assert.Equal(t, coord, got, "center of %v", coord)
					}
				}
			})
		}
	}
}

func TestHexagonalInverseNearCenters(t *testing.T) {
	// Small nudges around a center stay inside the hexagon. Nudges that
	// cross a reference-cell boundary exercise every candidate offset,
	// so the sweep covers both axes, both parities and several side
	// lengths.
	nudges := []MapPoint{
		{4, 0}, {-4, 0}, {0, 4}, {0, -4}, {3, 3}, {-3, -3}, {-2, -1}, {2, 1},
	}
	for _, axis := range []StaggerAxis{StaggerX, StaggerY} {
		for _, index := range []StaggerIndex{StaggerOdd, StaggerEven} {
			for _, side := range []float64{8, 16, 24, 32} {
				name := fmt.Sprintf("axis=%v index=%v side=%v", axis, index, side)
				t.Run(name, func(t *testing.T) {
					g := mustGeometry(t, Hexagonal, 64, 64, 6, 6, axis, index, side)
					for y := int32(0); y < g.Height; y++ {
						for x := int32(0); x < g.Width; x++ {
							coord := TileCoordinate{X: x, Y: y}
							center := hexCellCenter(g, coord)
							for _, d := range nudges {
								p := MapPoint{X: center.X + d.X, Y: center.Y + d.Y}
								assert.Equal(t, coord, g.ScreenToTile(p), "coord %v nudge %+v", coord, d)
							}
						}
					}
				})
			}
		}
	}
}

func TestHexagonalInverseStaggeredRowCandidate(t *testing.T) {
	// A point just left and up of a staggered-row cell's center falls
	// into the previous reference column, where that cell is the third
	// candidate. The staggered row's half-column shift already covers
	// the horizontal displacement, so the candidate keeps the reference
	// column rather than advancing one.
	g := mustGeometry(t, Hexagonal, 64, 64, 8, 8, StaggerY, StaggerOdd, 32)

	// Center of (0,1) is (64,80); (62,79) floor-divides to reference
	// column 0 but still belongs to (0,1).
	assert.Equal(t, MapPoint{64, 80}, hexCellCenter(g, TileCoordinate{0, 1}))
	assert.Equal(t, TileCoordinate{0, 1}, g.ScreenToTile(MapPoint{62, 79}))
}

func TestHexagonalInverseRectangularTiles(t *testing.T) {
	// Non-square tiles: pointy-top 60x52 with side 26.
	g := mustGeometry(t, Hexagonal, 60, 52, 8, 8, StaggerY, StaggerOdd, 26)

	for y := int32(0); y < g.Height; y++ {
		for x := int32(0); x < g.Width; x++ {
			coord := TileCoordinate{X: x, Y: y}
			assert.Equal(t, coord, g.ScreenToTile(hexCellCenter(g, coord)))
		}
	}
}

func TestHexagonalCoordinateForPointBridge(t *testing.T) {
	g := mustGeometry(t, Hexagonal, 64, 64, 8, 8, StaggerX, StaggerOdd, 32)

	coord := TileCoordinate{X: 3, Y: 2}
	p := g.PointForCoordinate(coord)
	assert.Equal(t, coord, g.CoordinateForPoint(p))
}

func BenchmarkHexScreenToTile(b *testing.B) {
	g, err := NewGeometry(Hexagonal, 64, 64, 64, 64, StaggerY, StaggerOdd, 32)
	if err != nil {
		b.Fatal(err)
	}
	p := MapPoint{X: 1234.5, Y: 987.25}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = g.hexScreenToTile(p)
	}
}
