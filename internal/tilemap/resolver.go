package tilemap

import (
	"fmt"
	"sort"
)

// TilesetRange declares one tileset's slice of the global id space:
// ids in [FirstID, FirstID+TileCount) belong to it.
type TilesetRange struct {
	Name      string
	FirstID   uint32
	TileCount uint32
	OffsetX   float64
	OffsetY   float64
}

// RangeResolver resolves raw ids against an ordered list of tileset
// ranges. A minimal TilesetResolver for tools and tests; real asset
// subsystems supply their own.
type RangeResolver struct {
	ranges []TilesetRange
}

// NewRangeResolver validates and orders the ranges by FirstID.
func NewRangeResolver(ranges []TilesetRange) (*RangeResolver, error) {
	sorted := make([]TilesetRange, len(ranges))
	copy(sorted, ranges)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].FirstID < sorted[j].FirstID })

	for i, r := range sorted {
		if r.FirstID == 0 || r.TileCount == 0 {
			return nil, fmt.Errorf("tileset %q: first id and tile count must be positive", r.Name)
		}
		if i > 0 {
			prev := sorted[i-1]
			if r.FirstID < prev.FirstID+prev.TileCount {
				return nil, fmt.Errorf("tileset %q overlaps %q", r.Name, prev.Name)
			}
		}
	}
	return &RangeResolver{ranges: sorted}, nil
}

// Resolve maps a raw id to the owning tileset.
func (r *RangeResolver) Resolve(id uint32) (TilesetData, bool) {
	// Last range with FirstID <= id owns the id, if it is within count.
	i := sort.Search(len(r.ranges), func(i int) bool { return r.ranges[i].FirstID > id })
	if i == 0 {
		return TilesetData{}, false
	}
	ts := r.ranges[i-1]
	if id >= ts.FirstID+ts.TileCount {
		return TilesetData{}, false
	}
	return TilesetData{
		Tileset: ts.Name,
		LocalID: id - ts.FirstID,
		OffsetX: ts.OffsetX,
		OffsetY: ts.OffsetY,
	}, true
}
