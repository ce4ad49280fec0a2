package repository

import (
	"github.com/modplast83/modern-mps/internal/mes/entity"
	"gorm.io/gorm"
)

type ProductionOrderRepository struct {
	db *gorm.DB
}

func NewProductionOrderRepository(db *gorm.DB) *ProductionOrderRepository {
	return &ProductionOrderRepository{db: db}
}

func (r *ProductionOrderRepository) Create(po *entity.ProductionOrder) error {
	return r.db.Create(po).Error
}

func (r *ProductionOrderRepository) GetByID(id string) (*entity.ProductionOrder, error) {
	var po entity.ProductionOrder
	err := r.db.Where("id = ? AND deleted_at IS NULL", id).First(&po).Error
	return &po, err
}

func (r *ProductionOrderRepository) Update(po *entity.ProductionOrder) error {
	return r.db.Save(po).Error
}

// ListByOrder 订单下全部生产单，完成率聚合的输入
func (r *ProductionOrderRepository) ListByOrder(orderID string) ([]entity.ProductionOrder, error) {
	var pos []entity.ProductionOrder
	err := r.db.Where("order_id = ? AND deleted_at IS NULL", orderID).
		Order("created_at ASC").Find(&pos).Error
	return pos, err
}

type POListParams struct {
	OrderID string
	Status  string
	Keyword string
	Page    int
	Size    int
}

func (r *ProductionOrderRepository) List(params POListParams) ([]entity.ProductionOrder, int64, error) {
	query := r.db.Model(&entity.ProductionOrder{}).Where("deleted_at IS NULL")
	if params.OrderID != "" {
		query = query.Where("order_id = ?", params.OrderID)
	}
	if params.Status != "" && params.Status != "all" {
		query = query.Where("status = ?", params.Status)
	}
	if params.Keyword != "" {
		kw := "%" + params.Keyword + "%"
		query = query.Where("LOWER(po_no) LIKE LOWER(?) OR LOWER(item_name) LIKE LOWER(?)", kw, kw)
	}
	var total int64
	query.Count(&total)
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var pos []entity.ProductionOrder
	err := query.Order("created_at DESC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).Find(&pos).Error
	return pos, total, err
}
