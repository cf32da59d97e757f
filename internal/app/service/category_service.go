package service

import (
	"errors"

	"github.com/arteliving/arteliving-backend/internal/app/catalog"
	"github.com/arteliving/arteliving-backend/internal/app/model"
	"github.com/arteliving/arteliving-backend/internal/app/repository"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryInvalid  = errors.New("category name is required")
)

type CategoryService interface {
	ListCategories() ([]model.Category, error)
	GetCategoryBySlug(slug string) (*model.Category, error)
	CreateCategory(name, imageURL string, position int) (*model.Category, error)
	UpdateCategory(id uint, name, imageURL string, position int) (*model.Category, error)
	DeleteCategory(id uint) error
	AddSubcategory(categoryID uint, name string) (*model.Subcategory, error)
	DeleteSubcategory(id uint) error
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) ListCategories() ([]model.Category, error) {
	return s.categoryRepo.FindAll()
}

func (s *categoryService) GetCategoryBySlug(slug string) (*model.Category, error) {
	category, err := s.categoryRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) CreateCategory(name, imageURL string, position int) (*model.Category, error) {
	slug := catalog.Slugify(name)
	if slug == "" {
		return nil, ErrCategoryInvalid
	}

	category := &model.Category{
		Name:     name,
		Slug:     slug,
		ImageURL: imageURL,
		Position: position,
	}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) UpdateCategory(id uint, name, imageURL string, position int) (*model.Category, error) {
	category, err := s.categoryRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	slug := catalog.Slugify(name)
	if slug == "" {
		return nil, ErrCategoryInvalid
	}

	category.Name = name
	category.Slug = slug
	category.ImageURL = imageURL
	category.Position = position
	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) DeleteCategory(id uint) error {
	if _, err := s.categoryRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return s.categoryRepo.Delete(id)
}

func (s *categoryService) AddSubcategory(categoryID uint, name string) (*model.Subcategory, error) {
	if _, err := s.categoryRepo.FindByID(categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	slug := catalog.Slugify(name)
	if slug == "" {
		return nil, ErrCategoryInvalid
	}

	sub := &model.Subcategory{
		CategoryID: categoryID,
		Name:       name,
		Slug:       slug,
	}
	if err := s.categoryRepo.CreateSubcategory(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *categoryService) DeleteSubcategory(id uint) error {
	return s.categoryRepo.DeleteSubcategory(id)
}
