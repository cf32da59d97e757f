package service

import (
	"errors"

	"github.com/arteliving/arteliving-backend/internal/app/catalog"
	"github.com/arteliving/arteliving-backend/internal/app/model"
	"github.com/arteliving/arteliving-backend/internal/app/repository"
	"github.com/arteliving/arteliving-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

type ProductSort string

const (
	ProductSortPrice     ProductSort = "price"
	ProductSortCreatedAt ProductSort = "created_at"
	ProductSortName      ProductSort = "name"
	ProductSortSold      ProductSort = "sold"
)

type ProductListOptions struct {
	Category        string
	Subcategory     string
	Color           string
	Material        string
	MinPrice        *float64
	MaxPrice        *float64
	NewArrival      *bool
	BestSeller      *bool
	Sale            *bool
	Search          string
	Sort            ProductSort
	SortAscending   bool
	Limit           int
	Offset          int
	IncludeVariants bool
}

// ProductService is the complete surface the storefront and back-office need
// for catalog browsing and editing. Every variant mutation re-derives the
// product's flat fields from the mutated set and persists both together.
type ProductService interface {
	ListProducts(opts ProductListOptions) ([]model.Product, int64, error)
	GetProductByID(id uint) (*model.Product, error)
	GetProductBySlug(slug string) (*model.Product, error)
	GetAvailableFilters() (repository.ProductAttributes, error)

	CreateSimpleProduct(in catalog.SimpleInput) (*model.Product, error)
	CreateVariantProduct(in catalog.BaseInput, variants []catalog.Variant) (*model.Product, error)
	UpdateProduct(id uint, in catalog.BaseInput) (*model.Product, error)
	DeleteProduct(id uint) error

	AddVariant(productID uint, data catalog.Variant) (*model.Product, error)
	UpdateVariant(productID uint, variantID string, data catalog.Variant) (*model.Product, error)
	DeleteVariant(productID uint, variantID string) (*model.Product, error)
	DuplicateVariant(productID uint, variantID string) (*model.Product, error)
	SetDefaultVariant(productID uint, variantID string) (*model.Product, error)

	ApplyDiscount(productID uint, percentage float64) (*model.Product, error)
	RemoveDiscount(productID uint) (*model.Product, error)
	SuggestSKU(base, color, size, material string) string
}

type productService struct {
	productRepo   repository.ProductRepository
	attributeRepo repository.AttributeRepository
}

func NewProductService(productRepo repository.ProductRepository, attributeRepo repository.AttributeRepository) ProductService {
	return &productService{
		productRepo:   productRepo,
		attributeRepo: attributeRepo,
	}
}

func (s *productService) ListProducts(opts ProductListOptions) ([]model.Product, int64, error) {
	filter := repository.ProductFilter{
		Category:        opts.Category,
		Subcategory:     opts.Subcategory,
		Color:           opts.Color,
		Material:        opts.Material,
		MinPrice:        opts.MinPrice,
		MaxPrice:        opts.MaxPrice,
		NewArrival:      opts.NewArrival,
		BestSeller:      opts.BestSeller,
		Sale:            opts.Sale,
		Search:          opts.Search,
		SortAscending:   opts.SortAscending,
		Limit:           opts.Limit,
		Offset:          opts.Offset,
		IncludeVariants: opts.IncludeVariants,
	}

	switch opts.Sort {
	case ProductSortPrice:
		filter.SortBy = repository.ProductSortPrice
	case ProductSortName:
		filter.SortBy = repository.ProductSortName
	case ProductSortSold:
		filter.SortBy = repository.ProductSortSold
	case ProductSortCreatedAt:
		fallthrough
	default:
		filter.SortBy = repository.ProductSortCreatedAt
	}

	products, err := s.productRepo.FindWithFilter(filter)
	if err != nil {
		logger.Error("Failed to list products", err)
		return nil, 0, err
	}

	total, err := s.productRepo.CountWithFilter(filter)
	if err != nil {
		logger.Error("Failed to count products", err)
		return nil, 0, err
	}

	return products, total, nil
}

func (s *productService) GetProductByID(id uint) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		logger.Error("Failed to fetch product", err, map[string]interface{}{
			"product_id": id,
		})
		return nil, err
	}
	return product, nil
}

func (s *productService) GetProductBySlug(slug string) (*model.Product, error) {
	product, err := s.productRepo.FindBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) GetAvailableFilters() (repository.ProductAttributes, error) {
	return s.productRepo.ListAttributes()
}

func (s *productService) CreateSimpleProduct(in catalog.SimpleInput) (*model.Product, error) {
	item, err := catalog.NewSimpleItem(in)
	if err != nil {
		return nil, err
	}

	product := &model.Product{}
	product.ApplyItem(item)
	s.registerAttributes(catalog.Variant{
		Color:     item.Color,
		ColorCode: item.ColorCode,
		Material:  item.Material,
	})

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	logger.Info("Simple product created", map[string]interface{}{
		"product_id": product.ID,
		"sku":        product.SKU,
	})
	return product, nil
}

func (s *productService) CreateVariantProduct(in catalog.BaseInput, variants []catalog.Variant) (*model.Product, error) {
	set := catalog.NewVariantSet(nil)
	for _, data := range variants {
		if _, err := set.Add(data); err != nil {
			return nil, err
		}
		s.registerAttributes(data)
	}

	item, err := catalog.NewVariantItem(in, set)
	if err != nil {
		return nil, err
	}

	product := &model.Product{}
	product.ApplyItem(item)
	rows := model.VariantRows(0, set.Variants())
	if err := s.productRepo.SaveWithVariants(product, rows); err != nil {
		return nil, err
	}

	logger.Info("Variant product created", map[string]interface{}{
		"product_id":    product.ID,
		"variant_count": set.Len(),
	})
	return product, nil
}

// UpdateProduct edits the shared base fields. For a variant product the
// derived fields are re-synced from the stored variants so the edit cannot
// leave them stale.
func (s *productService) UpdateProduct(id uint, in catalog.BaseInput) (*model.Product, error) {
	product, err := s.GetProductByID(id)
	if err != nil {
		return nil, err
	}

	item := product.Item()
	item.SKU = in.SKU
	item.Name = in.Name
	item.Slug = catalog.Slugify(in.Name)
	item.Brand = in.Brand
	item.Model = in.Model
	item.Category = in.Category
	item.Subcategory = in.Subcategory
	item.Description = in.Description
	item.Details = in.Details
	item.APlusImage = in.APlusImage
	item.NewArrival = in.NewArrival
	item.BestSeller = in.BestSeller
	item.Sale = in.Sale

	if product.HasVariants {
		if err := item.SyncVariants(product.VariantSet()); err != nil {
			return nil, err
		}
	}

	product.ApplyItem(item)
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) DeleteProduct(id uint) error {
	if _, err := s.GetProductByID(id); err != nil {
		return err
	}
	if err := s.productRepo.Delete(id); err != nil {
		logger.Error("Failed to delete product", err, map[string]interface{}{
			"product_id": id,
		})
		return err
	}
	logger.Info("Product deleted", map[string]interface{}{
		"product_id": id,
	})
	return nil
}

func (s *productService) AddVariant(productID uint, data catalog.Variant) (*model.Product, error) {
	s.registerAttributes(data)
	return s.mutateVariants(productID, func(set *catalog.VariantSet) error {
		_, err := set.Add(data)
		return err
	})
}

func (s *productService) UpdateVariant(productID uint, variantID string, data catalog.Variant) (*model.Product, error) {
	s.registerAttributes(data)
	return s.mutateVariants(productID, func(set *catalog.VariantSet) error {
		_, err := set.Update(variantID, data)
		return err
	})
}

func (s *productService) DeleteVariant(productID uint, variantID string) (*model.Product, error) {
	return s.mutateVariants(productID, func(set *catalog.VariantSet) error {
		return set.Delete(variantID)
	})
}

func (s *productService) DuplicateVariant(productID uint, variantID string) (*model.Product, error) {
	return s.mutateVariants(productID, func(set *catalog.VariantSet) error {
		_, err := set.Duplicate(variantID)
		return err
	})
}

func (s *productService) SetDefaultVariant(productID uint, variantID string) (*model.Product, error) {
	return s.mutateVariants(productID, func(set *catalog.VariantSet) error {
		return set.SetDefault(variantID)
	})
}

// mutateVariants loads the product, applies one catalog mutation to its
// variant set, re-derives the flat fields and persists product plus variant
// rows in one transaction. A failed mutation leaves the product untouched.
func (s *productService) mutateVariants(productID uint, mutate func(set *catalog.VariantSet) error) (*model.Product, error) {
	product, err := s.GetProductByID(productID)
	if err != nil {
		return nil, err
	}

	set := product.VariantSet()
	if err := mutate(set); err != nil {
		return nil, err
	}

	item := product.Item()
	if set.Len() > 0 {
		if err := item.SyncVariants(set); err != nil {
			return nil, err
		}
	} else {
		// Last variant removed: the product falls back to simple mode with
		// its flat fields as last derived, nothing left to sell.
		item.HasVariants = false
		item.Inventory = 0
		item.AvailableColors = nil
		item.AvailableSizes = nil
		item.AvailableMaterials = nil
		item.AvailableFinishes = nil
	}

	product.ApplyItem(item)
	rows := model.VariantRows(product.ID, set.Variants())
	if err := s.productRepo.SaveWithVariants(product, rows); err != nil {
		logger.Error("Failed to persist variant mutation", err, map[string]interface{}{
			"product_id": productID,
		})
		return nil, err
	}

	logger.Info("Variant mutation applied", map[string]interface{}{
		"product_id":    productID,
		"variant_count": set.Len(),
		"inventory":     product.Inventory,
	})
	return product, nil
}

func (s *productService) ApplyDiscount(productID uint, percentage float64) (*model.Product, error) {
	product, err := s.GetProductByID(productID)
	if err != nil {
		return nil, err
	}

	item := product.Item()
	if err := catalog.ApplyDiscount(item, percentage); err != nil {
		return nil, err
	}

	product.ApplyItem(item)
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) RemoveDiscount(productID uint) (*model.Product, error) {
	product, err := s.GetProductByID(productID)
	if err != nil {
		return nil, err
	}

	item := product.Item()
	if err := catalog.RemoveDiscount(item); err != nil {
		return nil, err
	}

	product.ApplyItem(item)
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *productService) SuggestSKU(base, color, size, material string) string {
	return catalog.GenerateSKU(base, color, size, material)
}

// registerAttributes mirrors the attribute registry server-side: every value
// used by a variant is created-if-absent so it shows up in editor pick lists.
func (s *productService) registerAttributes(v catalog.Variant) {
	if s.attributeRepo == nil {
		return
	}
	entries := []struct {
		kind catalog.Kind
		name string
		code string
	}{
		{catalog.KindColor, v.Color, catalog.ColorCodeFor(v.Color, v.ColorCode)},
		{catalog.KindMaterial, v.Material, ""},
		{catalog.KindSize, v.Size, ""},
		{catalog.KindFinish, v.Finish, ""},
	}
	for _, e := range entries {
		if e.name == "" {
			continue
		}
		if _, err := s.attributeRepo.FirstOrCreate(string(e.kind), e.name, e.code); err != nil {
			logger.Warn("Failed to register attribute value", map[string]interface{}{
				"kind":  e.kind,
				"name":  e.name,
				"error": err.Error(),
			})
		}
	}
}
