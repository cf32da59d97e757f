package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grayVariant() Variant {
	return Variant{
		SKU:       "BASE-GRY",
		Color:     "Gray",
		Price:     100,
		Inventory: 5,
		MainImage: "img1",
	}
}

func blueVariant() Variant {
	return Variant{
		SKU:       "BASE-BLU",
		Color:     "Blue",
		Size:      "L",
		Material:  "Oak",
		Price:     120,
		Inventory: 3,
		MainImage: "img2",
	}
}

func countDefaults(s *VariantSet) int {
	count := 0
	for _, v := range s.Variants() {
		if v.IsDefault {
			count++
		}
	}
	return count
}

func TestVariantSet_AddFirstBecomesDefault(t *testing.T) {
	set := NewVariantSet(nil)

	added, err := set.Add(grayVariant())
	require.NoError(t, err)

	assert.True(t, added.IsDefault)
	assert.NotEmpty(t, added.ID)
	assert.Equal(t, 5, set.Aggregates().TotalInventory)
}

func TestVariantSet_SecondAddKeepsFirstDefault(t *testing.T) {
	set := NewVariantSet(nil)

	first, err := set.Add(grayVariant())
	require.NoError(t, err)
	second, err := set.Add(blueVariant())
	require.NoError(t, err)

	assert.False(t, second.IsDefault)
	assert.Equal(t, first.ID, set.Default().ID)
	assert.Equal(t, 1, countDefaults(set))
}

func TestVariantSet_AddValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Variant)
		field   string
	}{
		{"missing color", func(v *Variant) { v.Color = "" }, "color"},
		{"missing sku", func(v *Variant) { v.SKU = "" }, "sku"},
		{"missing main image", func(v *Variant) { v.MainImage = "" }, "main_image"},
		{"zero price", func(v *Variant) { v.Price = 0 }, "price"},
		{"negative inventory", func(v *Variant) { v.Inventory = -1 }, "inventory"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := NewVariantSet(nil)
			v := grayVariant()
			tt.mutate(&v)

			_, err := set.Add(v)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
			assert.Equal(t, 0, set.Len(), "failed add must not commit")
		})
	}
}

func TestVariantSet_DeleteDefaultPromotesFirstRemaining(t *testing.T) {
	set := NewVariantSet(nil)
	a, _ := set.Add(grayVariant())
	b, _ := set.Add(blueVariant())

	require.NoError(t, set.Delete(a.ID))

	require.Equal(t, 1, set.Len())
	assert.Equal(t, b.ID, set.Default().ID)
	assert.True(t, set.Variants()[0].IsDefault)
}

func TestVariantSet_DeleteLastLeavesNoDefault(t *testing.T) {
	set := NewVariantSet(nil)
	a, _ := set.Add(grayVariant())

	require.NoError(t, set.Delete(a.ID))

	assert.Equal(t, 0, set.Len())
	assert.Nil(t, set.Default())
}

func TestVariantSet_DeleteNotFound(t *testing.T) {
	set := NewVariantSet(nil)
	set.Add(grayVariant())

	err := set.Delete("missing")

	assert.ErrorIs(t, err, ErrVariantNotFound)
	assert.Equal(t, 1, set.Len())
}

func TestVariantSet_Duplicate(t *testing.T) {
	set := NewVariantSet(nil)
	set.Add(grayVariant())
	b, _ := set.Add(blueVariant())

	clone, err := set.Duplicate(b.ID)
	require.NoError(t, err)

	assert.Equal(t, "BASE-BLU-COPY", clone.SKU)
	assert.False(t, clone.IsDefault)
	assert.NotEqual(t, b.ID, clone.ID)
	assert.Equal(t, 3, set.Len())
	assert.Equal(t, 1, countDefaults(set))
}

func TestVariantSet_DuplicateDefaultCloneIsNotDefault(t *testing.T) {
	set := NewVariantSet(nil)
	a, _ := set.Add(grayVariant())

	clone, err := set.Duplicate(a.ID)
	require.NoError(t, err)

	assert.False(t, clone.IsDefault)
	assert.Equal(t, a.ID, set.Default().ID)
}

func TestVariantSet_SetDefault(t *testing.T) {
	set := NewVariantSet(nil)
	set.Add(grayVariant())
	b, _ := set.Add(blueVariant())

	require.NoError(t, set.SetDefault(b.ID))

	assert.Equal(t, b.ID, set.Default().ID)
	assert.Equal(t, 1, countDefaults(set))

	assert.ErrorIs(t, set.SetDefault("missing"), ErrVariantNotFound)
}

func TestVariantSet_UpdatePreservesDefaultFlag(t *testing.T) {
	set := NewVariantSet(nil)
	a, _ := set.Add(grayVariant())
	set.Add(blueVariant())

	data := grayVariant()
	data.Price = 150
	updated, err := set.Update(a.ID, data)
	require.NoError(t, err)

	assert.True(t, updated.IsDefault, "update without explicit flag keeps default")
	assert.Equal(t, float64(150), set.Default().Price)
	assert.Equal(t, a.ID, set.Variants()[0].ID, "update preserves position")
}

func TestVariantSet_UpdateCanMoveDefault(t *testing.T) {
	set := NewVariantSet(nil)
	set.Add(grayVariant())
	b, _ := set.Add(blueVariant())

	data := blueVariant()
	data.IsDefault = true
	_, err := set.Update(b.ID, data)
	require.NoError(t, err)

	assert.Equal(t, b.ID, set.Default().ID)
	assert.Equal(t, 1, countDefaults(set))
}

func TestVariantSet_UpdateNotFoundAndValidation(t *testing.T) {
	set := NewVariantSet(nil)
	a, _ := set.Add(grayVariant())

	_, err := set.Update("missing", blueVariant())
	assert.ErrorIs(t, err, ErrVariantNotFound)

	bad := blueVariant()
	bad.Price = -1
	_, err = set.Update(a.ID, bad)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "BASE-GRY", set.Variants()[0].SKU, "failed update must not commit")
}

func TestVariantSet_ExactlyOneDefaultAfterMutationSequence(t *testing.T) {
	set := NewVariantSet(nil)

	a, _ := set.Add(grayVariant())
	b, _ := set.Add(blueVariant())
	c, _ := set.Duplicate(b.ID)
	require.NoError(t, set.SetDefault(c.ID))
	require.NoError(t, set.Delete(c.ID))
	require.NoError(t, set.Delete(a.ID))

	data := blueVariant()
	data.Inventory = 9
	_, err := set.Update(b.ID, data)
	require.NoError(t, err)

	assert.Equal(t, 1, countDefaults(set))
	assert.Equal(t, b.ID, set.Default().ID)
}

func TestVariantSet_Aggregates(t *testing.T) {
	set := NewVariantSet(nil)
	set.Add(grayVariant())
	set.Add(blueVariant())
	other := blueVariant()
	other.SKU = "BASE-BLU-XL"
	other.Size = "XL"
	other.Inventory = 2
	set.Add(other)

	agg := set.Aggregates()

	assert.Equal(t, 10, agg.TotalInventory)
	assert.ElementsMatch(t, []string{"Gray", "Blue"}, agg.Colors)
	assert.ElementsMatch(t, []string{"L", "XL"}, agg.Sizes)
	assert.ElementsMatch(t, []string{"Oak"}, agg.Materials)
	assert.Empty(t, agg.Finishes, "empty value lists are omitted")
}

func TestVariantSet_ImagesNeverContainMainImage(t *testing.T) {
	set := NewVariantSet(nil)
	v := grayVariant()
	v.Images = []string{"img1", "img3", "img3", "img4"}

	added, err := set.Add(v)
	require.NoError(t, err)

	assert.NotContains(t, added.Images, added.MainImage)
	assert.Equal(t, []string{"img3", "img4"}, added.Images)
}

func TestNewVariantSet_RepairsMissingDefault(t *testing.T) {
	a := grayVariant()
	a.ID = "a"
	b := blueVariant()
	b.ID = "b"

	set := NewVariantSet([]Variant{a, b})

	require.NotNil(t, set.Default())
	assert.Equal(t, "a", set.Default().ID)
	assert.Equal(t, 1, countDefaults(set))
}

func TestNewVariantSet_RepairsMultipleDefaults(t *testing.T) {
	a := grayVariant()
	a.ID = "a"
	a.IsDefault = true
	b := blueVariant()
	b.ID = "b"
	b.IsDefault = true

	set := NewVariantSet([]Variant{a, b})

	assert.Equal(t, 1, countDefaults(set))
}
