package repository

import (
	"errors"
	"strings"

	"github.com/arteliving/arteliving-backend/internal/app/model"
	"github.com/arteliving/arteliving-backend/pkg/logger"
	"gorm.io/gorm"
)

type AttributeRepository interface {
	ListByKind(kind string) ([]model.AttributeValue, error)
	// FirstOrCreate returns the existing value on a case-insensitive name
	// match, otherwise inserts and returns the new one.
	FirstOrCreate(kind, name, code string) (*model.AttributeValue, error)
}

type attributeRepository struct {
	db *gorm.DB
}

func NewAttributeRepository(db *gorm.DB) AttributeRepository {
	return &attributeRepository{db: db}
}

func (r *attributeRepository) ListByKind(kind string) ([]model.AttributeValue, error) {
	var values []model.AttributeValue
	if err := r.db.Where("kind = ?", kind).Order("created_at ASC, id ASC").Find(&values).Error; err != nil {
		logger.Error("Failed to list attribute values", err, map[string]interface{}{
			"kind": kind,
		})
		return nil, err
	}
	return values, nil
}

func (r *attributeRepository) FirstOrCreate(kind, name, code string) (*model.AttributeValue, error) {
	var existing model.AttributeValue
	err := r.db.Where("kind = ? AND LOWER(name) = ?", kind, strings.ToLower(name)).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	value := model.AttributeValue{Kind: kind, Name: name, Code: code}
	if err := r.db.Create(&value).Error; err != nil {
		logger.Error("Failed to create attribute value", err, map[string]interface{}{
			"kind": kind,
			"name": name,
		})
		return nil, err
	}
	return &value, nil
}
