package repository

import (
	"fmt"

	"github.com/arteliving/arteliving-backend/internal/app/model"
	"github.com/arteliving/arteliving-backend/pkg/logger"
	"gorm.io/gorm"
)

type ProductSort string

const (
	ProductSortPrice     ProductSort = "price"
	ProductSortCreatedAt ProductSort = "created_at"
	ProductSortName      ProductSort = "name"
	ProductSortSold      ProductSort = "sold"
)

type ProductFilter struct {
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
	SortBy          ProductSort
	SortAscending   bool
	Limit           int
	Offset          int
	IncludeVariants bool
}

// ProductAttributes lists the distinct filterable values currently in the
// catalog, for storefront filter menus.
type ProductAttributes struct {
	Categories []string
	Materials  []string
	Colors     []string
}

type ProductRepository interface {
	Create(product *model.Product) error
	FindWithFilter(filter ProductFilter) ([]model.Product, error)
	CountWithFilter(filter ProductFilter) (int64, error)
	FindByID(id uint) (*model.Product, error)
	FindBySlug(slug string) (*model.Product, error)
	Update(product *model.Product) error
	Delete(id uint) error
	ListAttributes() (ProductAttributes, error)
	SaveWithVariants(product *model.Product, variants []model.ProductVariant) error
	TopSoldProductIDs(limit int) ([]uint, error)
	SetBestSellers(ids []uint) error
	AddSoldCount(id uint, quantity int) error
	AdjustInventory(id uint, delta int) error
	AdjustVariantInventory(productID uint, variantID string, delta int) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *model.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		logger.Error("Failed to create product in database", err, map[string]interface{}{
			"name": product.Name,
			"sku":  product.SKU,
		})
		return err
	}
	return nil
}

func (r *productRepository) baseQuery(includeVariants bool) *gorm.DB {
	query := r.db.Model(&model.Product{})
	if includeVariants {
		query = query.Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("product_variants.position ASC")
		})
	}
	return query
}

func applyFilter(query *gorm.DB, filter ProductFilter) *gorm.DB {
	if filter.Category != "" {
		query = query.Where("products.category = ?", filter.Category)
	}
	if filter.Subcategory != "" {
		query = query.Where("products.subcategory = ?", filter.Subcategory)
	}
	if filter.Color != "" {
		query = query.Where("(products.color = ? OR products.available_colors LIKE ?)",
			filter.Color, fmt.Sprintf("%%%q%%", filter.Color))
	}
	if filter.Material != "" {
		query = query.Where("(products.material = ? OR products.available_materials LIKE ?)",
			filter.Material, fmt.Sprintf("%%%q%%", filter.Material))
	}
	if filter.MinPrice != nil {
		query = query.Where("products.price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("products.price <= ?", *filter.MaxPrice)
	}
	if filter.NewArrival != nil {
		query = query.Where("products.new_arrival = ?", *filter.NewArrival)
	}
	if filter.BestSeller != nil {
		query = query.Where("products.best_seller = ?", *filter.BestSeller)
	}
	if filter.Sale != nil {
		query = query.Where("products.sale = ?", *filter.Sale)
	}
	if filter.Search != "" {
		like := fmt.Sprintf("%%%s%%", filter.Search)
		query = query.Where(
			"(products.name LIKE ? OR products.description LIKE ? OR products.sku LIKE ?)",
			like, like, like,
		)
	}
	return query
}

func (r *productRepository) FindWithFilter(filter ProductFilter) ([]model.Product, error) {
	query := applyFilter(r.baseQuery(filter.IncludeVariants), filter)

	direction := "DESC"
	if filter.SortAscending {
		direction = "ASC"
	}
	switch filter.SortBy {
	case ProductSortPrice:
		query = query.Order("products.price " + direction)
	case ProductSortName:
		query = query.Order("products.name " + direction)
	case ProductSortSold:
		query = query.Order("products.sold_count " + direction).
			Order("products.created_at DESC")
	case ProductSortCreatedAt:
		fallthrough
	default:
		query = query.Order("products.created_at " + direction)
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var products []model.Product
	if err := query.Find(&products).Error; err != nil {
		logger.Error("Failed to find products with filter", err, map[string]interface{}{
			"category": filter.Category,
			"search":   filter.Search,
		})
		return nil, err
	}
	return products, nil
}

func (r *productRepository) CountWithFilter(filter ProductFilter) (int64, error) {
	var count int64
	query := applyFilter(r.db.Model(&model.Product{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *productRepository) FindByID(id uint) (*model.Product, error) {
	var product model.Product
	if err := r.baseQuery(true).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) FindBySlug(slug string) (*model.Product, error) {
	var product model.Product
	if err := r.baseQuery(true).Where("products.slug = ?", slug).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) Update(product *model.Product) error {
	if err := r.db.Save(product).Error; err != nil {
		logger.Error("Failed to update product in database", err, map[string]interface{}{
			"product_id": product.ID,
		})
		return err
	}
	return nil
}

func (r *productRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&model.ProductVariant{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Product{}, id).Error
	})
}

func (r *productRepository) ListAttributes() (ProductAttributes, error) {
	result := ProductAttributes{}

	columns := []struct {
		column string
		target *[]string
	}{
		{"category", &result.Categories},
		{"material", &result.Materials},
		{"color", &result.Colors},
	}
	for _, col := range columns {
		if err := r.db.Model(&model.Product{}).
			Where(col.column+" IS NOT NULL AND "+col.column+" <> ''").
			Distinct().
			Order(col.column + " ASC").
			Pluck(col.column, col.target).Error; err != nil {
			logger.Error("Failed to fetch distinct product attributes", err, map[string]interface{}{
				"column": col.column,
			})
			return result, err
		}
	}
	return result, nil
}

// SaveWithVariants writes the product row and replaces its variant rows in a
// single transaction, so the flat columns can never be observed stale
// relative to the variants they were derived from.
func (r *productRepository) SaveWithVariants(product *model.Product, variants []model.ProductVariant) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		product.Variants = nil
		if err := tx.Omit("Variants").Save(product).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("product_id = ?", product.ID).
			Delete(&model.ProductVariant{}).Error; err != nil {
			return err
		}
		for i := range variants {
			variants[i].ID = 0
			variants[i].ProductID = product.ID
		}
		if len(variants) > 0 {
			if err := tx.Create(&variants).Error; err != nil {
				return err
			}
		}
		product.Variants = variants
		return nil
	})
}

func (r *productRepository) TopSoldProductIDs(limit int) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.Product{}).
		Where("sold_count > 0").
		Order("sold_count DESC").
		Limit(limit).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *productRepository) SetBestSellers(ids []uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Product{}).
			Where("best_seller = ?", true).
			Update("best_seller", false).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		return tx.Model(&model.Product{}).
			Where("id IN ?", ids).
			Update("best_seller", true).Error
	})
}

func (r *productRepository) AddSoldCount(id uint, quantity int) error {
	return r.db.Model(&model.Product{}).Where("id = ?", id).
		Update("sold_count", gorm.Expr("sold_count + ?", quantity)).Error
}

func (r *productRepository) AdjustInventory(id uint, delta int) error {
	return r.db.Model(&model.Product{}).Where("id = ?", id).
		Update("inventory", gorm.Expr("inventory + ?", delta)).Error
}

func (r *productRepository) AdjustVariantInventory(productID uint, variantID string, delta int) error {
	return r.db.Model(&model.ProductVariant{}).
		Where("product_id = ? AND variant_id = ?", productID, variantID).
		Update("inventory", gorm.Expr("inventory + ?", delta)).Error
}
