package tilemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePropertyValue(t *testing.T) {
	tests := []struct {
		name string
		typ  string
		raw  string
		want PropertyValue
	}{
		{"string", "string", "hello", StringProperty("hello")},
		{"untyped defaults to string", "", "hello", StringProperty("hello")},
		{"unknown type falls back to string", "file", "a.png", StringProperty("a.png")},
		{"bool true", "bool", "true", BoolProperty(true)},
		{"bool false", "bool", "false", BoolProperty(false)},
		{"int", "int", "42", NumberProperty(42)},
		{"float", "float", "2.5", NumberProperty(2.5)},
		{"rgb color", "color", "#ff8000", ColorProperty(Color{R: 0xFF, G: 0x80, B: 0x00, A: 0xFF})},
		{"argb color", "color", "#80ff8000", ColorProperty(Color{R: 0xFF, G: 0x80, B: 0x00, A: 0x80})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePropertyValue(tt.typ, tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePropertyValueErrors(t *testing.T) {
	tests := []struct {
		name string
		typ  string
		raw  string
	}{
		{"bad bool", "bool", "yes please"},
		{"bad int", "int", "forty-two"},
		{"bad color length", "color", "#ff80"},
		{"bad color digits", "color", "#zzzzzz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePropertyValue(tt.typ, tt.raw)
			assert.Error(t, err)
		})
	}
}

func TestPropertyValueAccessors(t *testing.T) {
	v := NumberProperty(7)

	n, ok := v.AsNumber()
	assert.True(t, ok)
	assert.Equal(t, 7.0, n)

	_, ok = v.AsBool()
	assert.False(t, ok)
	_, ok = v.AsString()
	assert.False(t, ok)
	_, ok = v.AsColor()
	assert.False(t, ok)

	assert.Equal(t, PropertyNumber, v.Kind())
}
