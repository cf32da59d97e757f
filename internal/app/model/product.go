package model

import (
	"time"

	"github.com/arteliving/arteliving-backend/internal/app/catalog"
	"gorm.io/gorm"
)

// Product persists a catalog item. When HasVariants is true the flat columns
// (price, color, image, inventory, availability lists) mirror the default
// variant and set aggregates; they are rewritten from the variant rows on
// every variant mutation and never edited directly.
type Product struct {
	ID          uint     `gorm:"primarykey" json:"id"`
	SKU         string   `gorm:"index;not null" json:"sku"`
	Name        string   `gorm:"not null" json:"name"`
	Slug        string   `gorm:"index" json:"slug"`
	Brand       string   `json:"brand,omitempty"`
	Model       string   `json:"model,omitempty"`
	Category    string   `gorm:"index;not null" json:"category"`
	Subcategory string   `gorm:"index" json:"subcategory,omitempty"`
	Description string   `gorm:"type:text" json:"description,omitempty"`
	Details     []string `gorm:"serializer:json" json:"details,omitempty"`

	Price     float64  `gorm:"not null" json:"price"`
	OldPrice  float64  `json:"old_price,omitempty"`
	Material  string   `gorm:"index" json:"material,omitempty"`
	Color     string   `gorm:"index" json:"color,omitempty"`
	ColorCode string   `json:"color_code,omitempty"`
	MainImage string   `json:"main_image"`
	Images    []string `gorm:"serializer:json" json:"images,omitempty"`
	Video     string   `json:"video,omitempty"`
	Weight    float64  `json:"weight,omitempty"`
	Length    float64  `json:"length,omitempty"`
	Width     float64  `json:"width,omitempty"`
	Height    float64  `json:"height,omitempty"`
	Inventory int      `gorm:"default:0" json:"inventory"`

	HasVariants        bool     `gorm:"default:false" json:"has_variants"`
	AvailableColors    []string `gorm:"serializer:json" json:"available_colors,omitempty"`
	AvailableSizes     []string `gorm:"serializer:json" json:"available_sizes,omitempty"`
	AvailableMaterials []string `gorm:"serializer:json" json:"available_materials,omitempty"`
	AvailableFinishes  []string `gorm:"serializer:json" json:"available_finishes,omitempty"`

	APlusImage  string  `json:"a_plus_image,omitempty"`
	Rating      float64 `gorm:"default:0" json:"rating"`
	ReviewCount int     `gorm:"default:0" json:"review_count"`
	NewArrival  bool    `gorm:"default:false" json:"new_arrival"`
	BestSeller  bool    `gorm:"default:false" json:"best_seller"`
	Sale        bool    `gorm:"default:false" json:"sale"`
	SoldCount   int     `gorm:"default:0" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Variants   []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
	OrderItems []OrderItem      `gorm:"foreignKey:ProductID" json:"-"`
	CartItems  []CartItem       `gorm:"foreignKey:ProductID" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

// ApplyItem copies every field a catalog.Item owns onto the row.
func (p *Product) ApplyItem(item *catalog.Item) {
	p.SKU = item.SKU
	p.Name = item.Name
	p.Slug = item.Slug
	p.Brand = item.Brand
	p.Model = item.Model
	p.Category = item.Category
	p.Subcategory = item.Subcategory
	p.Description = item.Description
	p.Details = item.Details
	p.Price = item.Price
	p.OldPrice = item.OldPrice
	p.Material = item.Material
	p.Color = item.Color
	p.ColorCode = item.ColorCode
	p.MainImage = item.MainImage
	p.Images = item.Images
	p.Video = item.Video
	p.Weight = item.Weight
	p.Length = item.Dimensions.Length
	p.Width = item.Dimensions.Width
	p.Height = item.Dimensions.Height
	p.Inventory = item.Inventory
	p.HasVariants = item.HasVariants
	p.AvailableColors = item.AvailableColors
	p.AvailableSizes = item.AvailableSizes
	p.AvailableMaterials = item.AvailableMaterials
	p.AvailableFinishes = item.AvailableFinishes
	p.APlusImage = item.APlusImage
	p.NewArrival = item.NewArrival
	p.BestSeller = item.BestSeller
	p.Sale = item.Sale
}

// Item rebuilds the catalog view of the row.
func (p *Product) Item() *catalog.Item {
	return &catalog.Item{
		SKU:         p.SKU,
		Name:        p.Name,
		Slug:        p.Slug,
		Brand:       p.Brand,
		Model:       p.Model,
		Category:    p.Category,
		Subcategory: p.Subcategory,
		Description: p.Description,
		Details:     p.Details,
		Price:       p.Price,
		OldPrice:    p.OldPrice,
		Material:    p.Material,
		Color:       p.Color,
		ColorCode:   p.ColorCode,
		MainImage:   p.MainImage,
		Images:      p.Images,
		Video:       p.Video,
		APlusImage:  p.APlusImage,
		Weight:      p.Weight,
		Dimensions: catalog.Dimensions{
			Length: p.Length,
			Width:  p.Width,
			Height: p.Height,
		},
		Inventory:          p.Inventory,
		HasVariants:        p.HasVariants,
		AvailableColors:    p.AvailableColors,
		AvailableSizes:     p.AvailableSizes,
		AvailableMaterials: p.AvailableMaterials,
		AvailableFinishes:  p.AvailableFinishes,
		Rating:             p.Rating,
		ReviewCount:        p.ReviewCount,
		NewArrival:         p.NewArrival,
		BestSeller:         p.BestSeller,
		Sale:               p.Sale,
	}
}

// VariantSet rebuilds the catalog variant set from the loaded variant rows,
// preserving their stored order.
func (p *Product) VariantSet() *catalog.VariantSet {
	variants := make([]catalog.Variant, 0, len(p.Variants))
	for i := range p.Variants {
		variants = append(variants, p.Variants[i].Variant())
	}
	return catalog.NewVariantSet(variants)
}
