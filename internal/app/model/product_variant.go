package model

import (
	"time"

	"github.com/arteliving/arteliving-backend/internal/app/catalog"
	"gorm.io/gorm"
)

// ProductVariant persists one purchasable configuration of a product.
// VariantID is the opaque identifier the catalog core assigns; Position
// preserves insertion order across reloads.
type ProductVariant struct {
	ID        uint   `gorm:"primarykey" json:"-"`
	ProductID uint   `gorm:"index;not null" json:"product_id"`
	VariantID string `gorm:"index;not null" json:"id"`
	Position  int    `gorm:"not null" json:"-"`

	SKU       string   `gorm:"not null" json:"sku"`
	Color     string   `gorm:"not null" json:"color"`
	ColorCode string   `json:"color_code,omitempty"`
	Size      string   `json:"size,omitempty"`
	Material  string   `json:"material,omitempty"`
	Finish    string   `json:"finish,omitempty"`
	Price     float64  `gorm:"not null" json:"price"`
	OldPrice  float64  `json:"old_price,omitempty"`
	Inventory int      `gorm:"default:0" json:"inventory"`
	MainImage string   `gorm:"not null" json:"main_image"`
	Images    []string `gorm:"serializer:json" json:"images,omitempty"`
	Video     string   `json:"video,omitempty"`
	Weight    float64  `json:"weight,omitempty"`
	Length    float64  `json:"length,omitempty"`
	Width     float64  `json:"width,omitempty"`
	Height    float64  `json:"height,omitempty"`
	IsDefault bool     `gorm:"default:false" json:"is_default"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (ProductVariant) TableName() string {
	return "product_variants"
}

// Variant converts the row to its catalog representation.
func (v *ProductVariant) Variant() catalog.Variant {
	return catalog.Variant{
		ID:        v.VariantID,
		SKU:       v.SKU,
		Color:     v.Color,
		ColorCode: v.ColorCode,
		Size:      v.Size,
		Material:  v.Material,
		Finish:    v.Finish,
		Price:     v.Price,
		OldPrice:  v.OldPrice,
		Inventory: v.Inventory,
		MainImage: v.MainImage,
		Images:    v.Images,
		Video:     v.Video,
		Weight:    v.Weight,
		Dimensions: catalog.Dimensions{
			Length: v.Length,
			Width:  v.Width,
			Height: v.Height,
		},
		IsDefault: v.IsDefault,
	}
}

// VariantRows converts a catalog variant slice back to rows for productID,
// numbering positions by slice order.
func VariantRows(productID uint, variants []catalog.Variant) []ProductVariant {
	rows := make([]ProductVariant, 0, len(variants))
	for i, v := range variants {
		rows = append(rows, ProductVariant{
			ProductID: productID,
			VariantID: v.ID,
			Position:  i,
			SKU:       v.SKU,
			Color:     v.Color,
			ColorCode: v.ColorCode,
			Size:      v.Size,
			Material:  v.Material,
			Finish:    v.Finish,
			Price:     v.Price,
			OldPrice:  v.OldPrice,
			Inventory: v.Inventory,
			MainImage: v.MainImage,
			Images:    v.Images,
			Video:     v.Video,
			Weight:    v.Weight,
			Length:    v.Dimensions.Length,
			Width:     v.Dimensions.Width,
			Height:    v.Dimensions.Height,
			IsDefault: v.IsDefault,
		})
	}
	return rows
}
