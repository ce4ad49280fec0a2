package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/modplast83/modern-mps/internal/mes/entity"
	"github.com/modplast83/modern-mps/internal/mes/repository"
)

// ErrUnknownStatus 目标状态未识别，属于校验失败而非持久化失败
var ErrUnknownStatus = errors.New("未识别的订单状态")

// ErrOrderHasProduction 订单下还有生产单，禁止删除
var ErrOrderHasProduction = errors.New("订单下存在生产单，不能删除")

type OrderService struct {
	orderRepo *repository.OrderRepository
	poRepo    *repository.ProductionOrderRepository
	logger    *zap.Logger
}

func NewOrderService(orderRepo *repository.OrderRepository, poRepo *repository.ProductionOrderRepository, logger *zap.Logger) *OrderService {
	return &OrderService{orderRepo: orderRepo, poRepo: poRepo, logger: logger}
}

type CreateOrderRequest struct {
	CustomerID   string `json:"customer_id" binding:"required"`
	CustomerName string `json:"customer_name"`
	DeliveryDays int    `json:"delivery_days" binding:"required,gte=1,lte=365"`
	Notes        string `json:"notes"`
}

func (s *OrderService) Create(req CreateOrderRequest, userID string) (*entity.Order, error) {
	code := fmt.Sprintf("ORD-%s%04d", time.Now().Format("20060102"), time.Now().UnixNano()%10000)

	order := &entity.Order{
		ID:           uuid.New().String(),
		OrderNo:      code,
		CustomerID:   req.CustomerID,
		CustomerName: req.CustomerName,
		DeliveryDays: req.DeliveryDays,
		Notes:        req.Notes,
		Status:       entity.OrderStatusPending,
		CreatedBy:    userID,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("创建订单失败: %w", err)
	}
	return order, nil
}

func (s *OrderService) GetByID(id string) (*entity.Order, error) {
	return s.orderRepo.GetByID(id)
}

// OrderDetail 订单详情，附带派生的交期和完成率，均不落库
type OrderDetail struct {
	Order      *entity.Order     `json:"order"`
	Delivery   DeliveryInfo      `json:"delivery"`
	Completion CompletionSummary `json:"completion"`
}

func (s *OrderService) GetDetail(id string) (*OrderDetail, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("订单不存在: %w", err)
	}
	pos, err := s.poRepo.ListByOrder(id)
	if err != nil {
		return nil, fmt.Errorf("读取生产单失败: %w", err)
	}
	return &OrderDetail{
		Order:      order,
		Delivery:   OrderDeliveryInfo(order, time.Now()),
		Completion: AggregateCompletion(pos),
	}, nil
}

func (s *OrderService) List(params repository.OrderListParams) ([]entity.Order, int64, error) {
	return s.orderRepo.List(params)
}

type UpdateOrderRequest struct {
	CustomerName string `json:"customer_name"`
	DeliveryDays int    `json:"delivery_days" binding:"omitempty,gte=1,lte=365"`
	Notes        string `json:"notes"`
}

func (s *OrderService) Update(id string, req UpdateOrderRequest) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("订单不存在: %w", err)
	}
	if req.CustomerName != "" {
		order.CustomerName = req.CustomerName
	}
	if req.DeliveryDays > 0 {
		order.DeliveryDays = req.DeliveryDays
	}
	order.Notes = req.Notes
	if err := s.orderRepo.Update(order); err != nil {
		return nil, fmt.Errorf("更新订单失败: %w", err)
	}
	return order, nil
}

// ApplyStatus 纯函数形式的状态替换：只换状态，其余字段原样保留。
// 目标状态未识别时返回 ErrUnknownStatus
func ApplyStatus(order entity.Order, target string) (entity.Order, error) {
	if !entity.ValidOrderStatus(target) {
		return order, fmt.Errorf("%w: %s", ErrUnknownStatus, target)
	}
	order.Status = target
	return order, nil
}

// TransitionStatus 手动状态流转。任意已识别状态之间都可流转，
// 哪些流转在界面上可见由调用方决定
func (s *OrderService) TransitionStatus(id, target string) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("订单不存在: %w", err)
	}

	updated, err := ApplyStatus(*order, target)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateStatus(id, target); err != nil {
		return nil, fmt.Errorf("状态写入失败: %w", err)
	}

	s.logger.Info("订单状态已变更",
		zap.String("order_id", id),
		zap.String("from", order.Status),
		zap.String("to", target),
	)
	return &updated, nil
}

func (s *OrderService) Delete(id string) error {
	count, err := s.orderRepo.CountProductionOrders(id)
	if err != nil {
		return fmt.Errorf("检查生产单失败: %w", err)
	}
	if count > 0 {
		return ErrOrderHasProduction
	}
	return s.orderRepo.SoftDelete(id)
}
