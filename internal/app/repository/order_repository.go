package repository

import (
	"time"

	"github.com/arteliving/arteliving-backend/internal/app/model"
	"github.com/arteliving/arteliving-backend/pkg/logger"
	"gorm.io/gorm"
)

type OrderFilter struct {
	UserID *uint
	Status *model.OrderStatus
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// DailyRevenue is one day of sales computed from order rows.
type DailyRevenue struct {
	Date       string  `json:"date"`
	OrderCount int     `json:"order_count"`
	ItemCount  int     `json:"item_count"`
	Total      float64 `json:"total"`
}

type OrderRepository interface {
	Create(order *model.Order) error
	FindWithFilter(filter OrderFilter) ([]model.Order, error)
	FindByID(id uint) (*model.Order, error)
	UpdateStatus(id uint, status model.OrderStatus) error
	RevenueByDay(from, to time.Time) ([]DailyRevenue, error)
	TopSoldSince(since time.Time, limit int) ([]uint, error)
	UpsertSnapshot(snapshot *model.RevenueSnapshot) error
	SnapshotsBetween(from, to string) ([]model.RevenueSnapshot, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(order *model.Order) error {
	if err := r.db.Create(order).Error; err != nil {
		logger.Error("Failed to create order in database", err, map[string]interface{}{
			"user_id": order.UserID,
		})
		return err
	}
	return nil
}

func (r *orderRepository) FindWithFilter(filter OrderFilter) ([]model.Order, error) {
	query := r.db.Model(&model.Order{}).Preload("Items")

	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at < ?", *filter.To)
	}
	query = query.Order("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var orders []model.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepository) FindByID(id uint) (*model.Order, error) {
	var order model.Order
	if err := r.db.Preload("Items").First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) UpdateStatus(id uint, status model.OrderStatus) error {
	return r.db.Model(&model.Order{}).Where("id = ?", id).
		Update("status", status).Error
}

// RevenueByDay aggregates non-cancelled orders per calendar day. The date
// expression works on both Postgres and the SQLite test database.
func (r *orderRepository) RevenueByDay(from, to time.Time) ([]DailyRevenue, error) {
	var rows []DailyRevenue
	err := r.db.Model(&model.Order{}).
		Select(
			"DATE(orders.created_at) AS date, "+
				"COUNT(DISTINCT orders.id) AS order_count, "+
				"COALESCE(SUM(order_items.quantity), 0) AS item_count, "+
				"COALESCE(SUM(order_items.subtotal), 0) AS total",
		).
		Joins("JOIN order_items ON order_items.order_id = orders.id").
		Where("orders.created_at >= ? AND orders.created_at < ?", from, to).
		Where("orders.status <> ?", model.OrderStatusCancelled).
		Group("DATE(orders.created_at)").
		Order("date ASC").
		Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to aggregate revenue by day", err, nil)
		return nil, err
	}
	return rows, nil
}

func (r *orderRepository) TopSoldSince(since time.Time, limit int) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&model.OrderItem{}).
		Select("order_items.product_id").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.created_at >= ?", since).
		Where("orders.status <> ?", model.OrderStatusCancelled).
		Group("order_items.product_id").
		Order("SUM(order_items.quantity) DESC").
		Limit(limit).
		Pluck("order_items.product_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *orderRepository) UpsertSnapshot(snapshot *model.RevenueSnapshot) error {
	var existing model.RevenueSnapshot
	err := r.db.Where("date = ?", snapshot.Date).First(&existing).Error
	if err == nil {
		snapshot.ID = existing.ID
		snapshot.CreatedAt = existing.CreatedAt
		return r.db.Save(snapshot).Error
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}
	return r.db.Create(snapshot).Error
}

func (r *orderRepository) SnapshotsBetween(from, to string) ([]model.RevenueSnapshot, error) {
	var snapshots []model.RevenueSnapshot
	err := r.db.Where("date >= ? AND date <= ?", from, to).
		Order("date ASC").
		Find(&snapshots).Error
	if err != nil {
		return nil, err
	}
	return snapshots, nil
}
