package model

import "time"

// RevenueSnapshot is one day of aggregated sales, written by the daily
// scheduler and read by the admin revenue report.
type RevenueSnapshot struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	Date       string    `gorm:"uniqueIndex;not null" json:"date"` // YYYY-MM-DD
	OrderCount int       `gorm:"default:0" json:"order_count"`
	ItemCount  int       `gorm:"default:0" json:"item_count"`
	Total      float64   `gorm:"default:0" json:"total"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (RevenueSnapshot) TableName() string {
	return "revenue_snapshots"
}
