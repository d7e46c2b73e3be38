package tilemap

import "fmt"

// Orientation selects the projection used to map tile coordinates to pixels.
// It is fixed for the lifetime of a map.
type Orientation int

const (
	Orthogonal Orientation = iota
	Isometric
	Hexagonal
	Staggered
)

func (o Orientation) String() string {
	switch o {
	case Orthogonal:
		return "orthogonal"
	case Isometric:
		return "isometric"
	case Hexagonal:
		return "hexagonal"
	case Staggered:
		return "staggered"
	default:
		return fmt.Sprintf("orientation(%d)", int(o))
	}
}

// ParseOrientation parses the TMX orientation attribute value.
func ParseOrientation(s string) (Orientation, error) {
	switch s {
	case "orthogonal":
		return Orthogonal, nil
	case "isometric":
		return Isometric, nil
	case "hexagonal":
		return Hexagonal, nil
	case "staggered":
		return Staggered, nil
	default:
		return 0, fmt.Errorf("unknown orientation %q", s)
	}
}

// StaggerAxis selects which grid axis carries the half-offset in
// hexagonal and staggered maps.
type StaggerAxis int

const (
	StaggerX StaggerAxis = iota
	StaggerY
)

func (a StaggerAxis) String() string {
	if a == StaggerX {
		return "x"
	}
	return "y"
}

// ParseStaggerAxis parses the TMX staggeraxis attribute value.
func ParseStaggerAxis(s string) (StaggerAxis, error) {
	switch s {
	case "x":
		return StaggerX, nil
	case "y":
		return StaggerY, nil
	default:
		return 0, fmt.Errorf("unknown stagger axis %q", s)
	}
}

// StaggerIndex selects whether even- or odd-indexed rows (columns for
// StaggerX) receive the stagger offset.
type StaggerIndex int

const (
	StaggerOdd StaggerIndex = iota
	StaggerEven
)

func (i StaggerIndex) String() string {
	if i == StaggerEven {
		return "even"
	}
	return "odd"
}

// ParseStaggerIndex parses the TMX staggerindex attribute value.
func ParseStaggerIndex(s string) (StaggerIndex, error) {
	switch s {
	case "odd":
		return StaggerOdd, nil
	case "even":
		return StaggerEven, nil
	default:
		return 0, fmt.Errorf("unknown stagger index %q", s)
	}
}
