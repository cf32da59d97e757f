package model

import (
	"time"
)

// AttributeValue mirrors the editor-side attribute registry in storage:
// reusable color/material/size/finish values with create-if-absent semantics.
type AttributeValue struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Kind      string    `gorm:"index:idx_attribute_kind_name,unique;not null" json:"kind"`
	Name      string    `gorm:"index:idx_attribute_kind_name,unique;not null" json:"name"`
	Code      string    `json:"code,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AttributeValue) TableName() string {
	return "attribute_values"
}
