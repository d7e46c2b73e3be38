package store

import (
	"fmt"

	"github.com/mapforge/tilegrid/internal/tilemap"
)

// MapRecord is the persisted form of one map: raw geometry inputs plus
// the layer stack. Orientation and stagger values are stored as their
// TMX attribute strings.
type MapRecord struct {
	Name          string
	Orientation   string
	TileWidth     int32
	TileHeight    int32
	Width         int32
	Height        int32
	StaggerAxis   string
	StaggerIndex  string
	HexSideLength int32
	Infinite      bool
	Layers        []LayerRecord
}

// LayerRecord is the persisted form of one layer. Finite layers carry
// the full row-major Data array; infinite layers carry Chunks instead.
type LayerRecord struct {
	Name     string
	Infinite bool
	Data     []uint32
	Chunks   []ChunkRecord
}

// ChunkRecord is one persisted chunk of an infinite layer.
type ChunkRecord struct {
	OffsetX int32
	OffsetY int32
	Width   int32
	Height  int32
	Data    []uint32
}

// Geometry reconstructs the map geometry from the stored raw inputs.
// Empty stagger strings fall back to the defaults for orientations
// that do not use them.
func (r MapRecord) Geometry() (tilemap.Geometry, error) {
	orientation, err := tilemap.ParseOrientation(r.Orientation)
	if err != nil {
		return tilemap.Geometry{}, fmt.Errorf("map %q: %w", r.Name, err)
	}

	axis := tilemap.StaggerY
	if r.StaggerAxis != "" {
		if axis, err = tilemap.ParseStaggerAxis(r.StaggerAxis); err != nil {
			return tilemap.Geometry{}, fmt.Errorf("map %q: %w", r.Name, err)
		}
	}
	index := tilemap.StaggerOdd
	if r.StaggerIndex != "" {
		if index, err = tilemap.ParseStaggerIndex(r.StaggerIndex); err != nil {
			return tilemap.Geometry{}, fmt.Errorf("map %q: %w", r.Name, err)
		}
	}

	geom, err := tilemap.NewGeometry(orientation,
		r.TileWidth, r.TileHeight, r.Width, r.Height,
		axis, index, float64(r.HexSideLength))
	if err != nil {
		return tilemap.Geometry{}, fmt.Errorf("map %q: %w", r.Name, err)
	}
	return geom, nil
}

// SnapshotLayer captures a layer's current tile state as a record.
func SnapshotLayer(l *tilemap.Layer) (LayerRecord, error) {
	rec := LayerRecord{Name: l.Name(), Infinite: l.IsInfinite()}
	if !l.IsInfinite() {
		data, err := l.PackedData()
		if err != nil {
			return LayerRecord{}, err
		}
		rec.Data = data
		return rec, nil
	}

	for _, ch := range l.Chunks().Chunks() {
		rec.Chunks = append(rec.Chunks, ChunkRecord{
			OffsetX: ch.Offset().X,
			OffsetY: ch.Offset().Y,
			Width:   ch.Width(),
			Height:  ch.Height(),
			Data:    ch.PackedData(),
		})
	}
	return rec, nil
}

// RestoreLayer rebuilds a layer from its record, running the full tile
// construction pipeline against the given resolver. The aggregated
// build report covers every chunk of an infinite layer.
func RestoreLayer(rec LayerRecord, geom tilemap.Geometry, resolver tilemap.TilesetResolver) (*tilemap.Layer, tilemap.BuildReport, error) {
	if !rec.Infinite {
		layer := tilemap.NewLayer(rec.Name, geom, resolver)
		report, err := layer.SetLayerData(rec.Data)
		if err != nil {
			return nil, tilemap.BuildReport{}, fmt.Errorf("restoring layer %q: %w", rec.Name, err)
		}
		return layer, report, nil
	}

	layer := tilemap.NewInfiniteLayer(rec.Name, geom, resolver, 0, 0)
	total := tilemap.BuildReport{Unresolved: tilemap.NewUnresolvedSet()}
	for _, ch := range rec.Chunks {
		offset := tilemap.TileCoordinate{X: ch.OffsetX, Y: ch.OffsetY}
		report, err := layer.SetChunkData(offset, ch.Width, ch.Height, ch.Data)
		if err != nil {
			return nil, tilemap.BuildReport{}, fmt.Errorf("restoring layer %q chunk at %v: %w", rec.Name, offset, err)
		}
		total.Built += report.Built
		total.Skipped += report.Skipped
		total.Unresolved.Merge(report.Unresolved)
	}
	return layer, total, nil
}
