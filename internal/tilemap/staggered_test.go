package tilemap

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStaggeredForward(t *testing.T) {
	tests := []struct {
		name  string
		axis  StaggerAxis
		index StaggerIndex
		coord TileCoordinate
		want  MapPoint
	}{
		// tile 64x32: columnWidth 32, rowHeight 16.
		{"staggerY odd origin", StaggerY, StaggerOdd, TileCoordinate{0, 0}, MapPoint{0, 0}},
		{"staggerY odd staggered row", StaggerY, StaggerOdd, TileCoordinate{0, 1}, MapPoint{32, 16}},
		{"staggerY odd second plain row", StaggerY, StaggerOdd, TileCoordinate{1, 2}, MapPoint{64, 32}},
		{"staggerY even origin row staggered", StaggerY, StaggerEven, TileCoordinate{0, 0}, MapPoint{32, 0}},
		{"staggerX odd origin", StaggerX, StaggerOdd, TileCoordinate{0, 0}, MapPoint{0, 0}},
		{"staggerX odd staggered column", StaggerX, StaggerOdd, TileCoordinate{1, 0}, MapPoint{32, 16}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustGeometry(t, Staggered, 64, 32, 8, 8, tt.axis, tt.index, 0)
			assert.Equal(t, tt.want, g.TileToScreen(tt.coord))
		})
	}
}

func TestStaggeredInverseAtCenters(t *testing.T) {
	for _, axis := range []StaggerAxis{StaggerX, StaggerY} {
		for _, index := range []StaggerIndex{StaggerOdd, StaggerEven} {
			name := fmt.Sprintf("axis=%v index=%v", axis, index)
			t.Run(name, func(t *testing.T) {
				g := mustGeometry(t, Staggered, 64, 32, 8, 8, axis, index, 0)
				for y := int32(0); y < g.Height; y++ {
					for x := int32(0); x < g.Width; x++ {
						coord := TileCoordinate{X: x, Y: y}
						p := g.TileToScreen(coord)
						p.X += float64(g.TileWidth) / 2
						p.Y += float64(g.TileHeight) / 2
						assert.Equal(t, coord, g.ScreenToTile(p), "center of %v", coord)
					}
				}
			})
		}
	}
}

func TestStaggeredCornerClassification(t *testing.T) {
	// tile 64x32, staggerY odd. The diamond of cell (1,2) is centered
	// at (96, 48); points just beyond its edges belong to the four
	// diagonal neighbors.
	g := mustGeometry(t, Staggered, 64, 32, 8, 8, StaggerY, StaggerOdd, 0)

	tests := []struct {
		name  string
		point MapPoint
		want  TileCoordinate
	}{
		{"inside center", MapPoint{96, 48}, TileCoordinate{1, 2}},
		{"near top vertex", MapPoint{96, 33}, TileCoordinate{1, 2}},
		{"above top-left edge", MapPoint{80, 38}, TileCoordinate{0, 1}},
		{"above top-right edge", MapPoint{112, 38}, TileCoordinate{1, 1}},
		{"below bottom-left edge", MapPoint{80, 58}, TileCoordinate{0, 3}},
		{"below bottom-right edge", MapPoint{112, 58}, TileCoordinate{1, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.ScreenToTile(tt.point))
		})
	}
}

func TestStaggeredNeighborLookups(t *testing.T) {
	gOddY := mustGeometry(t, Staggered, 64, 32, 8, 8, StaggerY, StaggerOdd, 0)
	gOddX := mustGeometry(t, Staggered, 64, 32, 8, 8, StaggerX, StaggerOdd, 0)

	tests := []struct {
		name string
		geom Geometry
		fn   func(Geometry, TileCoordinate) TileCoordinate
		from TileCoordinate
		want TileCoordinate
	}{
		{"Y plain row topLeft", gOddY, Geometry.topLeft, TileCoordinate{2, 2}, TileCoordinate{1, 1}},
		{"Y staggered row topLeft", gOddY, Geometry.topLeft, TileCoordinate{2, 1}, TileCoordinate{2, 0}},
		{"Y plain row topRight", gOddY, Geometry.topRight, TileCoordinate{2, 2}, TileCoordinate{2, 1}},
		{"Y staggered row topRight", gOddY, Geometry.topRight, TileCoordinate{2, 1}, TileCoordinate{3, 0}},
		{"Y plain row bottomLeft", gOddY, Geometry.bottomLeft, TileCoordinate{2, 2}, TileCoordinate{1, 3}},
		{"Y staggered row bottomRight", gOddY, Geometry.bottomRight, TileCoordinate{2, 1}, TileCoordinate{3, 2}},
		{"X plain column topLeft", gOddX, Geometry.topLeft, TileCoordinate{2, 2}, TileCoordinate{1, 1}},
		{"X staggered column topLeft", gOddX, Geometry.topLeft, TileCoordinate{3, 2}, TileCoordinate{2, 2}},
		{"X staggered column bottomRight", gOddX, Geometry.bottomRight, TileCoordinate{3, 2}, TileCoordinate{4, 3}},
		{"X plain column bottomRight", gOddX, Geometry.bottomRight, TileCoordinate{2, 2}, TileCoordinate{3, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fn(tt.geom, tt.from))
		})
	}
}
