package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simpleInput() SimpleInput {
	return SimpleInput{
		SKU:       "CHAIR-01",
		Name:      "Marais Lounge Chair",
		Category:  "furniture",
		Price:     249.99,
		Material:  "Oak",
		Color:     "Natural",
		MainImage: "https://cdn.example.com/chair.jpg",
		Inventory: 12,
	}
}

func TestNewSimpleItem(t *testing.T) {
	item, err := NewSimpleItem(simpleInput())
	require.NoError(t, err)

	assert.False(t, item.HasVariants)
	assert.Equal(t, "marais-lounge-chair", item.Slug)
	assert.Equal(t, 249.99, item.Price)
}

func TestNewSimpleItem_MissingFields(t *testing.T) {
	in := simpleInput()
	in.SKU = ""
	in.Color = ""
	in.Price = 0

	_, err := NewSimpleItem(in)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "sku")
	assert.Contains(t, verr.Fields, "color")
	assert.Contains(t, verr.Fields, "price")
}

func variantItemFixture(t *testing.T) (*Item, *VariantSet) {
	t.Helper()
	set := NewVariantSet(nil)
	_, err := set.Add(grayVariant())
	require.NoError(t, err)
	_, err = set.Add(blueVariant())
	require.NoError(t, err)

	item, err := NewVariantItem(BaseInput{
		SKU:         "BASE",
		Name:        "Atelier Side Table",
		Category:    "furniture",
		Subcategory: "tables",
	}, set)
	require.NoError(t, err)
	return item, set
}

func TestNewVariantItem(t *testing.T) {
	item, set := variantItemFixture(t)

	def := set.Default()
	assert.True(t, item.HasVariants)
	assert.Equal(t, "atelier-side-table", item.Slug)
	assert.Equal(t, def.Price, item.Price)
	assert.Equal(t, def.Color, item.Color)
	assert.Equal(t, def.MainImage, item.MainImage)
	assert.Equal(t, 8, item.Inventory)
	assert.ElementsMatch(t, []string{"Gray", "Blue"}, item.AvailableColors)
	assert.ElementsMatch(t, []string{"L"}, item.AvailableSizes)
	assert.Empty(t, item.AvailableFinishes)
}

func TestNewVariantItem_RequiresVariantsAndSubcategory(t *testing.T) {
	_, err := NewVariantItem(BaseInput{Name: "x", Category: "c", Subcategory: "s"}, NewVariantSet(nil))
	assert.ErrorIs(t, err, ErrNoVariants)

	set := NewVariantSet(nil)
	set.Add(grayVariant())
	_, err = NewVariantItem(BaseInput{Name: "x", Category: "c"}, set)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "subcategory")
}

func TestSyncVariants_AfterEveryMutation(t *testing.T) {
	item, set := variantItemFixture(t)
	variants := set.Variants()

	// Redefault to the second variant: flat fields follow.
	require.NoError(t, set.SetDefault(variants[1].ID))
	require.NoError(t, item.SyncVariants(set))
	assert.Equal(t, variants[1].Price, item.Price)
	assert.Equal(t, variants[1].Color, item.Color)
	assert.Equal(t, variants[1].MainImage, item.MainImage)
	assert.Equal(t, variants[1].Material, item.Material)

	// Delete the default: promotion reflected on the item.
	require.NoError(t, set.Delete(variants[1].ID))
	require.NoError(t, item.SyncVariants(set))
	assert.Equal(t, variants[0].Color, item.Color)
	assert.Equal(t, variants[0].Inventory, item.Inventory)
	assert.ElementsMatch(t, []string{"Gray"}, item.AvailableColors)

	// Identity fields are untouched by sync.
	assert.Equal(t, "BASE", item.SKU)
	assert.Equal(t, "Atelier Side Table", item.Name)
	assert.Equal(t, "atelier-side-table", item.Slug)
}

func TestSyncVariants_InventoryMatchesSum(t *testing.T) {
	item, set := variantItemFixture(t)

	v := blueVariant()
	v.SKU = "BASE-BLU-2"
	v.Inventory = 7
	_, err := set.Add(v)
	require.NoError(t, err)
	require.NoError(t, item.SyncVariants(set))

	assert.Equal(t, 15, item.Inventory)
	assert.Equal(t, set.Aggregates().TotalInventory, item.Inventory)
}

func TestApplyDiscount(t *testing.T) {
	item := &Item{Price: 100}

	require.NoError(t, ApplyDiscount(item, 20))

	assert.Equal(t, float64(100), item.OldPrice)
	assert.Equal(t, float64(80), item.Price)
	assert.True(t, item.Sale)
}

func TestApplyDiscount_PreservesOriginalPrice(t *testing.T) {
	item := &Item{Price: 100}

	require.NoError(t, ApplyDiscount(item, 20))
	require.NoError(t, ApplyDiscount(item, 50))

	assert.Equal(t, float64(100), item.OldPrice)
	assert.Equal(t, float64(50), item.Price)
}

func TestApplyDiscount_Rounds(t *testing.T) {
	item := &Item{Price: 99.99}

	require.NoError(t, ApplyDiscount(item, 33))

	assert.Equal(t, 66.99, item.Price)
}

func TestApplyDiscount_OutOfRange(t *testing.T) {
	for _, pct := range []float64{-1, 100.5} {
		item := &Item{Price: 100}
		err := ApplyDiscount(item, pct)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, float64(100), item.Price)
	}
}

func TestRemoveDiscount(t *testing.T) {
	item := &Item{Price: 80, OldPrice: 100, Sale: true}

	require.NoError(t, RemoveDiscount(item))

	assert.Equal(t, float64(100), item.Price)
	assert.Zero(t, item.OldPrice)
	assert.False(t, item.Sale)

	assert.ErrorIs(t, RemoveDiscount(item), ErrNoDiscount)
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Marais Lounge Chair", "marais-lounge-chair"},
		{"  Café & Co — Table!  ", "caf-co-table"},
		{"---Already--Hyphenated---", "already-hyphenated"},
		{"UPPER case 42", "upper-case-42"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.name), tt.name)
	}
}

func TestItemImagesNeverContainMainImage(t *testing.T) {
	in := simpleInput()
	in.Images = []string{in.MainImage, "b.jpg", "b.jpg", "c.jpg"}

	item, err := NewSimpleItem(in)
	require.NoError(t, err)

	assert.Equal(t, []string{"b.jpg", "c.jpg"}, item.Images)
}
