package tilemap

import (
	"fmt"
	"strconv"
	"strings"
)

// PropertyKind discriminates the variants of PropertyValue.
type PropertyKind int

const (
	PropertyString PropertyKind = iota
	PropertyBool
	PropertyNumber
	PropertyColor
)

// Color is an RGBA color attached as a custom property.
type Color struct {
	R, G, B, A uint8
}

// PropertyValue is a closed tagged union of the custom property types
// a map source can attach to tilesets and tiles: string, bool, number
// or color. The variant is decided once at load time.
type PropertyValue struct {
	kind PropertyKind
	str  string
	b    bool
	num  float64
	col  Color
}

func StringProperty(s string) PropertyValue {
	return PropertyValue{kind: PropertyString, str: s}
}

func BoolProperty(b bool) PropertyValue {
	return PropertyValue{kind: PropertyBool, b: b}
}

func NumberProperty(n float64) PropertyValue {
	return PropertyValue{kind: PropertyNumber, num: n}
}

func ColorProperty(c Color) PropertyValue {
	return PropertyValue{kind: PropertyColor, col: c}
}

// Kind returns the variant stored in the value.
func (v PropertyValue) Kind() PropertyKind { return v.kind }

// AsString returns the string variant; ok is false for other kinds.
func (v PropertyValue) AsString() (string, bool) {
	return v.str, v.kind == PropertyString
}

// AsBool returns the bool variant; ok is false for other kinds.
func (v PropertyValue) AsBool() (bool, bool) {
	return v.b, v.kind == PropertyBool
}

// AsNumber returns the number variant; ok is false for other kinds.
func (v PropertyValue) AsNumber() (float64, bool) {
	return v.num, v.kind == PropertyNumber
}

// AsColor returns the color variant; ok is false for other kinds.
func (v PropertyValue) AsColor() (Color, bool) {
	return v.col, v.kind == PropertyColor
}

// ParsePropertyValue converts a TMX property (type attribute + raw
// string) into a typed value. Unknown types fall back to string,
// matching editor behavior.
func ParsePropertyValue(typ, raw string) (PropertyValue, error) {
	switch typ {
	case "bool":
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return PropertyValue{}, fmt.Errorf("parsing bool property %q: %w", raw, err)
		}
		return BoolProperty(b), nil
	case "int", "float":
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return PropertyValue{}, fmt.Errorf("parsing %s property %q: %w", typ, raw, err)
		}
		return NumberProperty(n), nil
	case "color":
		c, err := parseColor(raw)
		if err != nil {
			return PropertyValue{}, err
		}
		return ColorProperty(c), nil
	default:
		return StringProperty(raw), nil
	}
}

// parseColor parses "#AARRGGBB" or "#RRGGBB" color strings.
func parseColor(raw string) (Color, error) {
	s := strings.TrimPrefix(raw, "#")
	if len(s) != 6 && len(s) != 8 {
		return Color{}, fmt.Errorf("invalid color %q", raw)
	}
	v, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return Color{}, fmt.Errorf("parsing color %q: %w", raw, err)
	}
	c := Color{A: 0xFF}
	if len(s) == 8 {
		c.A = uint8(v >> 24)
	}
	c.R = uint8(v >> 16)
	c.G = uint8(v >> 8)
	c.B = uint8(v)
	return c, nil
}
