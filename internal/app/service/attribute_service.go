package service

import (
	"errors"
	"strings"

	"github.com/arteliving/arteliving-backend/internal/app/catalog"
	"github.com/arteliving/arteliving-backend/internal/app/model"
	"github.com/arteliving/arteliving-backend/internal/app/repository"
	"github.com/arteliving/arteliving-backend/pkg/logger"
)

var (
	ErrInvalidAttributeKind = errors.New("invalid attribute kind")
)

// AttributeService exposes the attribute registry: ordered value lists per
// kind and idempotent, trim-and-match-insensitive creation.
type AttributeService interface {
	ListValues(kind catalog.Kind) ([]model.AttributeValue, error)
	// CreateValue trims the name; empty input after trimming is a no-op and
	// returns (nil, nil) so the registry never holds blank values.
	CreateValue(kind catalog.Kind, name, code string) (*model.AttributeValue, error)
}

type attributeService struct {
	attributeRepo repository.AttributeRepository
}

func NewAttributeService(attributeRepo repository.AttributeRepository) AttributeService {
	return &attributeService{attributeRepo: attributeRepo}
}

func (s *attributeService) ListValues(kind catalog.Kind) ([]model.AttributeValue, error) {
	if !catalog.ValidKind(kind) {
		return nil, ErrInvalidAttributeKind
	}
	return s.attributeRepo.ListByKind(string(kind))
}

func (s *attributeService) CreateValue(kind catalog.Kind, name, code string) (*model.AttributeValue, error) {
	if !catalog.ValidKind(kind) {
		return nil, ErrInvalidAttributeKind
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	if kind == catalog.KindColor {
		code = catalog.ColorCodeFor(name, code)
	} else {
		code = ""
	}

	value, err := s.attributeRepo.FirstOrCreate(string(kind), name, code)
	if err != nil {
		logger.Error("Failed to create attribute value", err, map[string]interface{}{
			"kind": kind,
			"name": name,
		})
		return nil, err
	}
	return value, nil
}
