package repository

import (
	"time"

	"github.com/modplast83/modern-mps/internal/mes/entity"
	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(order *entity.Order) error {
	return r.db.Create(order).Error
}

func (r *OrderRepository) GetByID(id string) (*entity.Order, error) {
	var order entity.Order
	err := r.db.Preload("ProductionOrders").
		Where("id = ? AND deleted_at IS NULL", id).First(&order).Error
	return &order, err
}

func (r *OrderRepository) Update(order *entity.Order) error {
	return r.db.Save(order).Error
}

// UpdateStatus 只更新状态列，其余字段不动
func (r *OrderRepository) UpdateStatus(id, status string) error {
	return r.db.Model(&entity.Order{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()}).Error
}

func (r *OrderRepository) SoftDelete(id string) error {
	now := time.Now()
	return r.db.Model(&entity.Order{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", &now).Error
}

// CountProductionOrders 订单下未删除的生产单数量，删除订单前校验用
func (r *OrderRepository) CountProductionOrders(orderID string) (int64, error) {
	var count int64
	err := r.db.Model(&entity.ProductionOrder{}).
		Where("order_id = ? AND deleted_at IS NULL", orderID).Count(&count).Error
	return count, err
}

type OrderListParams struct {
	Status     string
	CustomerID string
	Keyword    string
	Page       int
	Size       int
}

func (r *OrderRepository) List(params OrderListParams) ([]entity.Order, int64, error) {
	query := r.db.Model(&entity.Order{}).Where("deleted_at IS NULL")
	if params.Status != "" && params.Status != "all" {
		query = query.Where("status = ?", params.Status)
	}
	if params.CustomerID != "" && params.CustomerID != "all" {
		query = query.Where("customer_id = ?", params.CustomerID)
	}
	if params.Keyword != "" {
		kw := "%" + params.Keyword + "%"
		query = query.Where("LOWER(order_no) LIKE LOWER(?) OR LOWER(customer_name) LIKE LOWER(?)", kw, kw)
	}
	var total int64
	query.Count(&total)
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var orders []entity.Order
	err := query.Order("created_at DESC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).Find(&orders).Error
	return orders, total, err
}
