package tilemap

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Layer owns the tile storage of one map layer and drives tile
// construction: decode packed reference, resolve tileset data,
// position via the transform engine, insert into the grid.
//
// Finite layers use a dense TileGrid sized to the map; infinite layers
// use a ChunkSet. Writes must be serialized by the caller.
type Layer struct {
	name     string
	geom     Geometry
	resolver TilesetResolver

	grid   *TileGrid // finite layers
	chunks *ChunkSet // infinite layers
}

// BuildReport aggregates the outcome of a bulk load: how many tiles
// were built, how many zero entries were skipped, and the de-duplicated
// set of ids the resolver could not map.
type BuildReport struct {
	Built      int
	Skipped    int
	Unresolved *UnresolvedSet
}

// UnresolvedCount returns the number of distinct unresolved ids.
func (r BuildReport) UnresolvedCount() int {
	if r.Unresolved == nil {
		return 0
	}
	return r.Unresolved.Len()
}

func (r *BuildReport) merge(other BuildReport) {
	r.Built += other.Built
	r.Skipped += other.Skipped
	r.Unresolved.Merge(other.Unresolved)
}

// NewLayer creates a finite layer with a dense grid sized from the
// geometry's map dimensions.
func NewLayer(name string, geom Geometry, resolver TilesetResolver) *Layer {
	return &Layer{
		name:     name,
		geom:     geom,
		resolver: resolver,
		grid:     NewTileGrid(geom.Width, geom.Height),
	}
}

// NewInfiniteLayer creates a chunked layer. chunkWidth/chunkHeight of
// 0 select DefaultChunkSize.
func NewInfiniteLayer(name string, geom Geometry, resolver TilesetResolver, chunkWidth, chunkHeight int32) *Layer {
	return &Layer{
		name:     name,
		geom:     geom,
		resolver: resolver,
		chunks:   NewChunkSet(chunkWidth, chunkHeight),
	}
}

// Name returns the layer name.
func (l *Layer) Name() string { return l.name }

// Geometry returns the layer's immutable map geometry.
func (l *Layer) Geometry() Geometry { return l.geom }

// IsInfinite reports whether the layer uses chunked storage.
func (l *Layer) IsInfinite() bool { return l.chunks != nil }

// Chunks returns the chunk set of an infinite layer, nil for finite.
func (l *Layer) Chunks() *ChunkSet { return l.chunks }

// Grid returns the dense grid of a finite layer, nil for infinite.
func (l *Layer) Grid() *TileGrid { return l.grid }

// TileAt returns the tile at the coordinate, nil for an empty slot.
// For finite layers an out-of-bounds coordinate is an error; for
// infinite layers a coordinate outside every chunk is simply empty.
func (l *Layer) TileAt(c TileCoordinate) (*Tile, error) {
	if l.IsInfinite() {
		return l.chunks.TileAt(c), nil
	}
	return l.grid.TileAt(c)
}

// BuildTile decodes a packed tile reference and places the resulting
// tile at the coordinate, evicting any prior occupant. A zero packed
// value clears the slot. Resolution failure returns an
// *UnresolvedIDError and leaves the slot untouched.
func (l *Layer) BuildTile(c TileCoordinate, packed uint32) (*Tile, error) {
	if packed == 0 {
		_, err := l.removeAt(c)
		return nil, err
	}

	id, flags := DecodeGID(packed)
	data, ok := l.resolver.Resolve(id)
	if !ok {
		return nil, &UnresolvedIDError{ID: id}
	}

	pos := l.geom.PointForCoordinateOffset(c, data.OffsetX, data.OffsetY)
	tile := NewTile(c, id, pos, flags, data)

	if l.IsInfinite() {
		ch, err := l.chunks.ensure(c)
		if err != nil {
			return nil, err
		}
		if _, err := ch.SetTile(c, tile); err != nil {
			return nil, err
		}
		return tile, nil
	}

	if _, err := l.grid.SetTile(c, tile); err != nil {
		return nil, err
	}
	return tile, nil
}

func (l *Layer) removeAt(c TileCoordinate) (*Tile, error) {
	if l.IsInfinite() {
		ch := l.chunks.ChunkAt(c)
		if ch == nil {
			return nil, nil
		}
		return ch.SetTile(c, nil)
	}
	return l.grid.RemoveTile(c)
}

// RemoveTile empties the slot at the coordinate and returns the
// removed tile, if any.
func (l *Layer) RemoveTile(c TileCoordinate) (*Tile, error) {
	return l.removeAt(c)
}

// Clear resets the layer to all-empty storage of the same shape.
func (l *Layer) Clear() {
	if l.IsInfinite() {
		l.chunks.Clear()
		return
	}
	l.grid.Clear()
}

// SetLayerData bulk-loads a finite layer from a row-major array of
// packed references. The array length must equal width×height; a
// mismatch rejects the whole load before any mutation. Zero entries
// are skipped, unresolved ids are recorded and skipped, and a single
// summary warning is logged for the load.
func (l *Layer) SetLayerData(data []uint32) (BuildReport, error) {
	if l.IsInfinite() {
		return BuildReport{}, fmt.Errorf("layer %q: bulk data requires a finite layer", l.name)
	}
	expected := int(l.geom.Width) * int(l.geom.Height)
	if len(data) != expected {
		return BuildReport{}, &SizeMismatchError{Expected: expected, Actual: len(data)}
	}

	report := l.loadRows(data, 0, l.geom.Height)
	l.logReport(report)
	return report, nil
}

// SetLayerDataParallel is SetLayerData with the row space partitioned
// across workers. Each worker writes only its own disjoint row range,
// upholding the grid's single-writer discipline per slot. workers <= 0
// selects GOMAXPROCS.
func (l *Layer) SetLayerDataParallel(ctx context.Context, data []uint32, workers int) (BuildReport, error) {
	if l.IsInfinite() {
		return BuildReport{}, fmt.Errorf("layer %q: bulk data requires a finite layer", l.name)
	}
	expected := int(l.geom.Width) * int(l.geom.Height)
	if len(data) != expected {
		return BuildReport{}, &SizeMismatchError{Expected: expected, Actual: len(data)}
	}

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if int32(workers) > l.geom.Height {
		workers = int(l.geom.Height)
	}
	if workers <= 1 {
		report := l.loadRows(data, 0, l.geom.Height)
		l.logReport(report)
		return report, nil
	}

	g, _ := errgroup.WithContext(ctx)
	partial := make([]BuildReport, workers)

	rowsPer := (l.geom.Height + int32(workers) - 1) / int32(workers)
	for w := 0; w < workers; w++ {
		fromRow := int32(w) * rowsPer
		toRow := min(fromRow+rowsPer, l.geom.Height)
		if fromRow >= toRow {
			partial[w] = BuildReport{Unresolved: NewUnresolvedSet()}
			continue
		}
		g.Go(func() error {
			partial[w] = l.loadRows(data, fromRow, toRow)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return BuildReport{}, err
	}

	report := BuildReport{Unresolved: NewUnresolvedSet()}
	for _, p := range partial {
		report.merge(p)
	}
	l.logReport(report)
	return report, nil
}

// loadRows builds tiles for rows [fromRow, toRow). All coordinates are
// in bounds by construction, so per-tile errors can only be unresolved
// ids, which are recorded and skipped.
func (l *Layer) loadRows(data []uint32, fromRow, toRow int32) BuildReport {
	report := BuildReport{Unresolved: NewUnresolvedSet()}
	width := l.geom.Width
	for y := fromRow; y < toRow; y++ {
		for x := int32(0); x < width; x++ {
			packed := data[int(y)*int(width)+int(x)]
			if packed == 0 {
				report.Skipped++
				continue
			}
			if _, err := l.BuildTile(TileCoordinate{X: x, Y: y}, packed); err != nil {
				report.Unresolved.Record(err)
				continue
			}
			report.Built++
		}
	}
	return report
}

// SetChunkData bulk-loads one chunk of an infinite layer. The chunk is
// inserted at the given offset with the given dimensions; data length
// must equal width×height.
func (l *Layer) SetChunkData(offset TileCoordinate, width, height int32, data []uint32) (BuildReport, error) {
	if !l.IsInfinite() {
		return BuildReport{}, fmt.Errorf("layer %q: chunk data requires an infinite layer", l.name)
	}
	expected := int(width) * int(height)
	if len(data) != expected {
		return BuildReport{}, &SizeMismatchError{Expected: expected, Actual: len(data)}
	}

	ch := NewChunk(offset, width, height)
	if err := l.chunks.Insert(ch); err != nil {
		return BuildReport{}, err
	}

	report := BuildReport{Unresolved: NewUnresolvedSet()}
	for y := int32(0); y < height; y++ {
		for x := int32(0); x < width; x++ {
			packed := data[int(y)*int(width)+int(x)]
			if packed == 0 {
				report.Skipped++
				continue
			}
			c := TileCoordinate{X: offset.X + x, Y: offset.Y + y}
			if _, err := l.BuildTile(c, packed); err != nil {
				report.Unresolved.Record(err)
				continue
			}
			report.Built++
		}
	}
	l.logReport(report)
	return report, nil
}

// logReport emits the one-per-load summary warning for unresolved ids.
func (l *Layer) logReport(report BuildReport) {
	if report.UnresolvedCount() == 0 {
		return
	}
	slog.Warn("layer data contains unresolved tile ids",
		"layer", l.name,
		"distinct_ids", report.UnresolvedCount(),
		"built", report.Built,
	)
}

// PackedData serializes a finite layer back into the row-major packed
// array it was loaded from, zero for empty slots.
func (l *Layer) PackedData() ([]uint32, error) {
	if l.IsInfinite() {
		return nil, fmt.Errorf("layer %q: packed data requires a finite layer", l.name)
	}
	return l.grid.PackedData(), nil
}

// ForEachTile visits every placed tile. For infinite layers the order
// is chunk insertion order, row-major within each chunk.
func (l *Layer) ForEachTile(fn func(*Tile) bool) {
	if l.IsInfinite() {
		for _, ch := range l.chunks.Chunks() {
			stopped := false
			ch.ForEachTile(func(t *Tile) bool {
				if !fn(t) {
					stopped = true
					return false
				}
				return true
			})
			if stopped {
				return
			}
		}
		return
	}
	l.grid.ForEachTile(fn)
}
