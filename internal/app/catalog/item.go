package catalog

import (
	"math"
	"regexp"
	"strings"
)

// Item is a catalog entry: either a simple product whose fields are
// authoritative, or a variant product whose flat fields mirror the default
// variant and the set aggregates. Items are only built through the
// constructors below, so HasVariants can never disagree with the variant
// collection it was derived from.
type Item struct {
	SKU         string     `json:"sku"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Brand       string     `json:"brand,omitempty"`
	Model       string     `json:"model,omitempty"`
	Category    string     `json:"category"`
	Subcategory string     `json:"subcategory,omitempty"`
	Description string     `json:"description,omitempty"`
	Details     []string   `json:"details,omitempty"`
	Price       float64    `json:"price"`
	OldPrice    float64    `json:"old_price,omitempty"`
	Material    string     `json:"material,omitempty"`
	Color       string     `json:"color,omitempty"`
	ColorCode   string     `json:"color_code,omitempty"`
	MainImage   string     `json:"main_image"`
	Images      []string   `json:"images,omitempty"`
	Video       string     `json:"video,omitempty"`
	APlusImage  string     `json:"a_plus_image,omitempty"`
	Weight      float64    `json:"weight,omitempty"`
	Dimensions  Dimensions `json:"dimensions,omitempty"`
	Inventory   int        `json:"inventory"`

	HasVariants        bool     `json:"has_variants"`
	AvailableColors    []string `json:"available_colors,omitempty"`
	AvailableSizes     []string `json:"available_sizes,omitempty"`
	AvailableMaterials []string `json:"available_materials,omitempty"`
	AvailableFinishes  []string `json:"available_finishes,omitempty"`

	Rating      float64 `json:"rating,omitempty"`
	ReviewCount int     `json:"review_count,omitempty"`
	NewArrival  bool    `json:"new_arrival"`
	BestSeller  bool    `json:"best_seller"`
	Sale        bool    `json:"sale"`
}

// SimpleInput carries the authoritative fields of a product without variants.
type SimpleInput struct {
	SKU         string
	Name        string
	Brand       string
	Model       string
	Category    string
	Subcategory string
	Description string
	Details     []string
	Price       float64
	OldPrice    float64
	Material    string
	Color       string
	ColorCode   string
	MainImage   string
	Images      []string
	Video       string
	APlusImage  string
	Weight      float64
	Dimensions  Dimensions
	Inventory   int
	NewArrival  bool
	BestSeller  bool
	Sale        bool
}

// BaseInput carries the shared fields of a variant product; price, color,
// images and inventory come from the variant set instead.
type BaseInput struct {
	SKU         string
	Name        string
	Brand       string
	Model       string
	Category    string
	Subcategory string
	Description string
	Details     []string
	APlusImage  string
	NewArrival  bool
	BestSeller  bool
	Sale        bool
}

// NewSimpleItem validates a simple-product submission and builds the item.
func NewSimpleItem(in SimpleInput) (*Item, error) {
	verr := newValidationError()
	verr.require("sku", in.SKU)
	verr.require("name", in.Name)
	verr.require("category", in.Category)
	verr.require("material", in.Material)
	verr.require("color", in.Color)
	verr.require("main_image", in.MainImage)
	verr.positive("price", in.Price)
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	item := &Item{
		SKU:         in.SKU,
		Name:        in.Name,
		Slug:        Slugify(in.Name),
		Brand:       in.Brand,
		Model:       in.Model,
		Category:    in.Category,
		Subcategory: in.Subcategory,
		Description: in.Description,
		Details:     in.Details,
		Price:       in.Price,
		OldPrice:    in.OldPrice,
		Material:    in.Material,
		Color:       in.Color,
		ColorCode:   in.ColorCode,
		MainImage:   in.MainImage,
		Images:      in.Images,
		Video:       in.Video,
		APlusImage:  in.APlusImage,
		Weight:      in.Weight,
		Dimensions:  in.Dimensions,
		Inventory:   in.Inventory,
		NewArrival:  in.NewArrival,
		BestSeller:  in.BestSeller,
		Sale:        in.Sale,
	}
	dedupItemImages(item)
	return item, nil
}

// NewVariantItem builds an item whose flat fields are derived from the
// variant set. The set must be non-empty and a subcategory is required.
func NewVariantItem(in BaseInput, set *VariantSet) (*Item, error) {
	if set == nil || set.Len() == 0 {
		return nil, ErrNoVariants
	}
	verr := newValidationError()
	verr.require("name", in.Name)
	verr.require("category", in.Category)
	verr.require("subcategory", in.Subcategory)
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	item := &Item{
		SKU:         in.SKU,
		Name:        in.Name,
		Slug:        Slugify(in.Name),
		Brand:       in.Brand,
		Model:       in.Model,
		Category:    in.Category,
		Subcategory: in.Subcategory,
		Description: in.Description,
		Details:     in.Details,
		APlusImage:  in.APlusImage,
		NewArrival:  in.NewArrival,
		BestSeller:  in.BestSeller,
		Sale:        in.Sale,
	}
	if err := item.SyncVariants(set); err != nil {
		return nil, err
	}
	return item, nil
}

// SyncVariants re-derives every variant-backed field from the current set.
// It must be called after each set mutation, before the item is persisted or
// returned to a caller; the flat fields are never authoritative while
// HasVariants is true.
func (it *Item) SyncVariants(set *VariantSet) error {
	if set == nil || set.Len() == 0 {
		return ErrNoVariants
	}
	def := set.Default()
	if def == nil {
		// Should be unreachable: the set repairs its default on every
		// mutation. Fall back to the first variant rather than failing.
		variants := set.Variants()
		def = &variants[0]
	}

	agg := set.Aggregates()

	it.HasVariants = true
	it.Price = def.Price
	it.OldPrice = def.OldPrice
	it.Material = def.Material
	it.Color = def.Color
	it.ColorCode = def.ColorCode
	it.MainImage = def.MainImage
	it.Images = append([]string(nil), def.Images...)
	it.Video = def.Video
	it.Weight = def.Weight
	it.Dimensions = def.Dimensions
	it.Inventory = agg.TotalInventory
	it.AvailableColors = agg.Colors
	it.AvailableSizes = agg.Sizes
	it.AvailableMaterials = agg.Materials
	it.AvailableFinishes = agg.Finishes
	dedupItemImages(it)
	return nil
}

// ApplyDiscount discounts the item price by a percentage in [0, 100]. The
// pre-discount price is kept in OldPrice so repeated discounts never erode
// the original price.
func ApplyDiscount(it *Item, percentage float64) error {
	if percentage < 0 || percentage > 100 || math.IsNaN(percentage) {
		return &ValidationError{Fields: map[string]string{
			"percentage": "must be between 0 and 100",
		}}
	}
	if it.OldPrice == 0 {
		it.OldPrice = it.Price
	}
	it.Price = round2(it.OldPrice * (1 - percentage/100))
	it.Sale = percentage > 0
	return nil
}

// RemoveDiscount restores the original price and clears OldPrice. Fails when
// no discount is applied.
func RemoveDiscount(it *Item) error {
	if it.OldPrice == 0 {
		return ErrNoDiscount
	}
	it.Price = it.OldPrice
	it.OldPrice = 0
	it.Sale = false
	return nil
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL slug from a product name: lowercase, runs of
// non-alphanumeric characters collapsed to a single hyphen, edges trimmed.
func Slugify(name string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

func dedupItemImages(it *Item) {
	if len(it.Images) == 0 {
		return
	}
	images := make([]string, 0, len(it.Images))
	seen := make(map[string]bool, len(it.Images))
	for _, img := range it.Images {
		if img == "" || img == it.MainImage || seen[img] {
			continue
		}
		seen[img] = true
		images = append(images, img)
	}
	if len(images) == 0 {
		it.Images = nil
		return
	}
	it.Images = images
}
