package tilemap

import (
	"errors"
	"fmt"
	"slices"
)

// ErrChunkOverlap rejects a chunk whose bounds intersect an existing chunk.
var ErrChunkOverlap = errors.New("chunk overlaps an existing chunk")

// InvalidCoordinateError reports an access outside the grid bounds.
// This is a caller precondition violation surfaced as a value, never a
// panic: batch operations can continue past it.
type InvalidCoordinateError struct {
	Coord  TileCoordinate
	Width  int32
	Height int32
}

func (e *InvalidCoordinateError) Error() string {
	return fmt.Sprintf("coordinate %v outside %dx%d grid", e.Coord, e.Width, e.Height)
}

// SizeMismatchError reports a bulk-load data array whose length does
// not match the layer dimensions. The load is rejected as a whole.
type SizeMismatchError struct {
	Expected int
	Actual   int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("layer data length %d, want %d", e.Actual, e.Expected)
}

// UnresolvedIDError reports a decoded raw id the tileset resolver
// could not map. Non-fatal: the tile is skipped and the id recorded.
type UnresolvedIDError struct {
	ID uint32
}

func (e *UnresolvedIDError) Error() string {
	return fmt.Sprintf("unresolved tile id %d", e.ID)
}

// ErrorSink collects non-fatal errors from the construction pipeline.
// Passed explicitly rather than reached for as ambient state.
type ErrorSink interface {
	Record(err error)
}

// UnresolvedSet is the default ErrorSink: a de-duplicated set of raw
// ids that failed tileset resolution, reported once per bulk load.
type UnresolvedSet struct {
	ids map[uint32]struct{}
}

// NewUnresolvedSet returns an empty set.
func NewUnresolvedSet() *UnresolvedSet {
	return &UnresolvedSet{ids: make(map[uint32]struct{})}
}

// Record stores the id of an UnresolvedIDError; other errors are ignored.
func (s *UnresolvedSet) Record(err error) {
	var unresolved *UnresolvedIDError
	if errors.As(err, &unresolved) {
		s.ids[unresolved.ID] = struct{}{}
	}
}

// Len returns the number of distinct unresolved ids.
func (s *UnresolvedSet) Len() int {
	return len(s.ids)
}

// IDs returns the distinct unresolved ids in ascending order.
func (s *UnresolvedSet) IDs() []uint32 {
	out := make([]uint32, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Merge absorbs another set's ids.
func (s *UnresolvedSet) Merge(other *UnresolvedSet) {
	for id := range other.ids {
		s.ids[id] = struct{}{}
	}
}
