package integration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapforge/tilegrid/internal/store"
	"github.com/mapforge/tilegrid/internal/testutil"
	"github.com/mapforge/tilegrid/internal/tilemap"
)

func newTestResolver(t *testing.T) tilemap.TilesetResolver {
	t.Helper()
	r, err := tilemap.NewRangeResolver([]tilemap.TilesetRange{
		{Name: "terrain", FirstID: 1, TileCount: 64},
		{Name: "props", FirstID: 65, TileCount: 16, OffsetY: -8},
	})
	require.NoError(t, err)
	return r
}

// TestMapRoundTrip saves a map with a finite and an infinite layer and
// loads it back, then rebuilds the layers through the construction
// pipeline to confirm the persisted state is equivalent.
func TestMapRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool := testutil.SetupTestDB(t)
	repo := store.NewMapRepository(pool)

	geom, err := tilemap.NewGeometry(tilemap.Isometric, 64, 32, 4, 4, tilemap.StaggerX, tilemap.StaggerOdd, 0)
	require.NoError(t, err)

	ground := tilemap.NewLayer("ground", geom, newTestResolver(t))
	groundData := make([]uint32, 16)
	groundData[0] = 7
	groundData[5] = 3 | tilemap.FlipHorizontalFlag
	groundData[15] = 66
	_, err = ground.SetLayerData(groundData)
	require.NoError(t, err)

	caves := tilemap.NewInfiniteLayer("caves", geom, newTestResolver(t), 16, 16)
	_, err = caves.BuildTile(tilemap.TileCoordinate{X: -3, Y: 20}, 9)
	require.NoError(t, err)

	groundRec, err := store.SnapshotLayer(ground)
	require.NoError(t, err)
	cavesRec, err := store.SnapshotLayer(caves)
	require.NoError(t, err)

	rec := store.MapRecord{
		Name:        "island",
		Orientation: "isometric",
		TileWidth:   64,
		TileHeight:  32,
		Width:       4,
		Height:      4,
		Layers:      []store.LayerRecord{groundRec, cavesRec},
	}
	require.NoError(t, repo.SaveMap(ctx, rec))

	loaded, err := repo.LoadMap(ctx, "island")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "isometric", loaded.Orientation)
	require.Len(t, loaded.Layers, 2)

	loadedGeom, err := loaded.Geometry()
	require.NoError(t, err)
	assert.Equal(t, geom, loadedGeom)

	restored, report, err := store.RestoreLayer(loaded.Layers[0], loadedGeom, newTestResolver(t))
	require.NoError(t, err)
	assert.Equal(t, 3, report.Built)
	tile, err := restored.TileAt(tilemap.TileCoordinate{X: 1, Y: 1})
	require.NoError(t, err)
	require.NotNil(t, tile)
	assert.Equal(t, groundData[5], tile.PackedGID())
	assert.True(t, tile.FlipFlags().Horizontal)

	restoredCaves, _, err := store.RestoreLayer(loaded.Layers[1], loadedGeom, newTestResolver(t))
	require.NoError(t, err)
	caveTile, err := restoredCaves.TileAt(tilemap.TileCoordinate{X: -3, Y: 20})
	require.NoError(t, err)
	require.NotNil(t, caveTile)
	assert.Equal(t, uint32(9), caveTile.GlobalID())
}

// TestSaveMapReplacesLayers re-saving a map replaces the layer stack
// rather than accumulating rows.
func TestSaveMapReplacesLayers(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool := testutil.SetupTestDB(t)
	repo := store.NewMapRepository(pool)

	rec := store.MapRecord{
		Name:        "village",
		Orientation: "orthogonal",
		TileWidth:   32,
		TileHeight:  32,
		Width:       2,
		Height:      2,
		Layers: []store.LayerRecord{
			{Name: "ground", Data: []uint32{1, 2, 3, 4}},
			{Name: "detail", Data: []uint32{0, 0, 5, 0}},
		},
	}
	require.NoError(t, repo.SaveMap(ctx, rec))

	rec.Layers = []store.LayerRecord{
		{Name: "ground", Data: []uint32{4, 3, 2, 1}},
	}
	require.NoError(t, repo.SaveMap(ctx, rec))

	loaded, err := repo.LoadMap(ctx, "village")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Len(t, loaded.Layers, 1)
	assert.Equal(t, []uint32{4, 3, 2, 1}, loaded.Layers[0].Data)
}

func TestLoadMissingMap(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	pool := testutil.SetupTestDB(t)
	repo := store.NewMapRepository(pool)

	loaded, err := repo.LoadMap(ctx, "nowhere")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestListAndDeleteMaps(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	pool := testutil.SetupTestDB(t)
	repo := store.NewMapRepository(pool)

	for _, name := range []string{"beta", "alpha"} {
		rec := store.MapRecord{
			Name:        name,
			Orientation: "orthogonal",
			TileWidth:   32,
			TileHeight:  32,
			Width:       1,
			Height:      1,
			Layers:      []store.LayerRecord{{Name: "ground", Data: []uint32{1}}},
		}
		require.NoError(t, repo.SaveMap(ctx, rec))
	}

	names, err := repo.ListMaps(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, names)

	require.NoError(t, repo.DeleteMap(ctx, "beta"))
	names, err = repo.ListMaps(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha"}, names)
}
