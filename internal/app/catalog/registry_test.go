package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_CreateIsIdempotent(t *testing.T) {
	reg := NewRegistry()

	first, ok := reg.Create(KindColor, "Red", "")
	require.True(t, ok)
	second, ok := reg.Create(KindColor, "red", "#deadbe")
	require.True(t, ok)

	assert.Equal(t, first, second, "case-insensitive match returns the existing value")
	assert.Len(t, reg.List(KindColor), 1)
}

func TestRegistry_CreateTrimsAndRejectsEmpty(t *testing.T) {
	reg := NewRegistry()

	value, ok := reg.Create(KindMaterial, "  Walnut  ", "")
	require.True(t, ok)
	assert.Equal(t, "Walnut", value.Name)

	_, ok = reg.Create(KindMaterial, "   ", "")
	assert.False(t, ok)
	assert.Len(t, reg.List(KindMaterial), 1)
}

func TestRegistry_ColorCodes(t *testing.T) {
	reg := NewRegistry()

	red, _ := reg.Create(KindColor, "Red", "")
	assert.Equal(t, "#ff0000", red.Code, "well-known names get a standard code")

	custom, _ := reg.Create(KindColor, "Sunset", "#fa8072")
	assert.Equal(t, "#fa8072", custom.Code)

	unknown, _ := reg.Create(KindColor, "Glimmerfog", "")
	assert.Equal(t, NeutralColorCode, unknown.Code)

	size, _ := reg.Create(KindSize, "XL", "#123456")
	assert.Empty(t, size.Code, "codes only apply to colors")
}

func TestRegistry_ListIsOrderedAndCopied(t *testing.T) {
	reg := NewRegistry()
	reg.Create(KindFinish, "Matte", "")
	reg.Create(KindFinish, "Gloss", "")

	values := reg.List(KindFinish)
	require.Len(t, values, 2)
	assert.Equal(t, "Matte", values[0].Name)
	assert.Equal(t, "Gloss", values[1].Name)

	values[0].Name = "mutated"
	assert.Equal(t, "Matte", reg.List(KindFinish)[0].Name)
}

func TestValidKind(t *testing.T) {
	for _, k := range Kinds() {
		assert.True(t, ValidKind(k))
	}
	assert.False(t, ValidKind(Kind("flavor")))
}
