package model

import (
	"time"

	"gorm.io/gorm"
)

type Category struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"uniqueIndex;not null" json:"name"`
	Slug      string         `gorm:"uniqueIndex;not null" json:"slug"`
	ImageURL  string         `json:"image_url,omitempty"`
	Position  int            `gorm:"default:0" json:"position"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Subcategories []Subcategory `gorm:"foreignKey:CategoryID" json:"subcategories,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}

type Subcategory struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	CategoryID uint           `gorm:"index;not null" json:"category_id"`
	Name       string         `gorm:"not null" json:"name"`
	Slug       string         `gorm:"index;not null" json:"slug"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Category Category `gorm:"foreignKey:CategoryID" json:"-"`
}

func (Subcategory) TableName() string {
	return "subcategories"
}
