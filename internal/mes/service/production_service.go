package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/modplast83/modern-mps/internal/mes/entity"
	"github.com/modplast83/modern-mps/internal/mes/repository"
)

type ProductionService struct {
	poRepo    *repository.ProductionOrderRepository
	orderRepo *repository.OrderRepository
}

func NewProductionService(poRepo *repository.ProductionOrderRepository, orderRepo *repository.OrderRepository) *ProductionService {
	return &ProductionService{poRepo: poRepo, orderRepo: orderRepo}
}

type CreateProductionOrderRequest struct {
	OrderID           string  `json:"order_id" binding:"required"`
	CustomerProductID string  `json:"customer_product_id"`
	ItemName          string  `json:"item_name"`
	QuantityKg        float64 `json:"quantity_kg" binding:"required,gt=0"`
	OverrunPct        float64 `json:"overrun_pct" binding:"gte=0,lte=100"`
}

func (s *ProductionService) Create(req CreateProductionOrderRequest) (*entity.ProductionOrder, error) {
	if _, err := s.orderRepo.GetByID(req.OrderID); err != nil {
		return nil, fmt.Errorf("订单不存在: %w", err)
	}

	code := fmt.Sprintf("PO-%s%04d", time.Now().Format("20060102"), time.Now().UnixNano()%10000)

	po := &entity.ProductionOrder{
		ID:                uuid.New().String(),
		PONo:              code,
		OrderID:           req.OrderID,
		CustomerProductID: req.CustomerProductID,
		ItemName:          req.ItemName,
		QuantityKg:        req.QuantityKg,
		OverrunPct:        req.OverrunPct,
		Status:            entity.POStatusPending,
	}
	po.ComputeFinalQty()

	if err := s.poRepo.Create(po); err != nil {
		return nil, fmt.Errorf("创建生产单失败: %w", err)
	}
	return po, nil
}

func (s *ProductionService) GetByID(id string) (*entity.ProductionOrder, error) {
	return s.poRepo.GetByID(id)
}

func (s *ProductionService) List(params repository.POListParams) ([]entity.ProductionOrder, int64, error) {
	return s.poRepo.List(params)
}

func (s *ProductionService) ListByOrder(orderID string) ([]entity.ProductionOrder, error) {
	return s.poRepo.ListByOrder(orderID)
}

// UpdateProgressRequest 录入各阶段完成率。接口写入限定 0-100，
// 存量或外部数据中的越界值聚合时原样透出
type UpdateProgressRequest struct {
	FilmPct     *float64 `json:"film_pct" binding:"omitempty,gte=0,lte=100"`
	PrintingPct *float64 `json:"printing_pct" binding:"omitempty,gte=0,lte=100"`
	CuttingPct  *float64 `json:"cutting_pct" binding:"omitempty,gte=0,lte=100"`
	Status      string   `json:"status"`
}

func (s *ProductionService) UpdateProgress(id string, req UpdateProgressRequest) (*entity.ProductionOrder, error) {
	po, err := s.poRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("生产单不存在: %w", err)
	}
	if req.FilmPct != nil {
		po.FilmPct = *req.FilmPct
	}
	if req.PrintingPct != nil {
		po.PrintingPct = *req.PrintingPct
	}
	if req.CuttingPct != nil {
		po.CuttingPct = *req.CuttingPct
	}
	if req.Status != "" {
		po.Status = req.Status
	}
	if err := s.poRepo.Update(po); err != nil {
		return nil, fmt.Errorf("更新生产进度失败: %w", err)
	}
	return po, nil
}

type UpdateProductionOrderRequest struct {
	ItemName   string   `json:"item_name"`
	QuantityKg *float64 `json:"quantity_kg" binding:"omitempty,gt=0"`
	OverrunPct *float64 `json:"overrun_pct" binding:"omitempty,gte=0,lte=100"`
}

func (s *ProductionService) Update(id string, req UpdateProductionOrderRequest) (*entity.ProductionOrder, error) {
	po, err := s.poRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("生产单不存在: %w", err)
	}
	if req.ItemName != "" {
		po.ItemName = req.ItemName
	}
	if req.QuantityKg != nil {
		po.QuantityKg = *req.QuantityKg
	}
	if req.OverrunPct != nil {
		po.OverrunPct = *req.OverrunPct
	}
	po.ComputeFinalQty()
	if err := s.poRepo.Update(po); err != nil {
		return nil, fmt.Errorf("更新生产单失败: %w", err)
	}
	return po, nil
}
