package model

import (
	"time"

	"gorm.io/gorm"
)

// Banner is a storefront hero/promo banner managed from the back office.
type Banner struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Title     string         `gorm:"not null" json:"title"`
	Subtitle  string         `json:"subtitle,omitempty"`
	ImageURL  string         `gorm:"not null" json:"image_url"`
	LinkURL   string         `json:"link_url,omitempty"`
	Position  int            `gorm:"default:0" json:"position"`
	Active    bool           `gorm:"default:true" json:"active"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Banner) TableName() string {
	return "banners"
}
