package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/modplast83/modern-mps/internal/mes/entity"
	"github.com/modplast83/modern-mps/internal/mes/repository"
)

// ErrStageRegression 阶段只能前进，不允许回退或原地不动
var ErrStageRegression = errors.New("卷材阶段不允许回退")

// ErrInvalidWeight 录入的卷重必须是正的十进制数。
// 容错解析只面向存量数据的读取，录入口不放行坏值
var ErrInvalidWeight = errors.New("卷重必须为正数")

type RollService struct {
	rollRepo  *repository.RollRepository
	poRepo    *repository.ProductionOrderRepository
	orderRepo *repository.OrderRepository
}

func NewRollService(rollRepo *repository.RollRepository, poRepo *repository.ProductionOrderRepository, orderRepo *repository.OrderRepository) *RollService {
	return &RollService{rollRepo: rollRepo, poRepo: poRepo, orderRepo: orderRepo}
}

type CreateRollRequest struct {
	ProductionOrderID string `json:"production_order_id" binding:"required"`
	WeightKg          string `json:"weight_kg" binding:"required"`
	MachineName       string `json:"machine_name"`
	OperatorName      string `json:"operator_name"`
}

// Create 新卷从吹膜阶段进入流水线，序号在生产单内递增
func (s *RollService) Create(req CreateRollRequest) (*entity.Roll, error) {
	if weight, err := strconv.ParseFloat(req.WeightKg, 64); err != nil || weight <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidWeight, req.WeightKg)
	}

	po, err := s.poRepo.GetByID(req.ProductionOrderID)
	if err != nil {
		return nil, fmt.Errorf("生产单不存在: %w", err)
	}
	order, err := s.orderRepo.GetByID(po.OrderID)
	if err != nil {
		return nil, fmt.Errorf("订单不存在: %w", err)
	}

	seq, err := s.rollRepo.NextSeq(po.ID)
	if err != nil {
		return nil, fmt.Errorf("分配卷序号失败: %w", err)
	}

	roll := &entity.Roll{
		ID:                uuid.New().String(),
		RollNo:            fmt.Sprintf("%s-R%03d", po.PONo, seq),
		Seq:               seq,
		ProductionOrderID: po.ID,
		PONo:              po.PONo,
		OrderID:           order.ID,
		OrderNo:           order.OrderNo,
		Stage:             string(entity.StageFilm),
		WeightKg:          req.WeightKg,
		CustomerID:        order.CustomerID,
		CustomerName:      order.CustomerName,
		ItemName:          po.ItemName,
		MachineName:       req.MachineName,
		OperatorName:      req.OperatorName,
	}
	if err := s.rollRepo.Create(roll); err != nil {
		return nil, fmt.Errorf("创建卷材失败: %w", err)
	}
	return roll, nil
}

func (s *RollService) GetByID(id string) (*entity.Roll, error) {
	return s.rollRepo.GetByID(id)
}

type AdvanceRollRequest struct {
	Stage            string `json:"stage" binding:"required"`
	CutWeightTotalKg string `json:"cut_weight_total_kg"`
	WasteKg          string `json:"waste_kg"`
}

// Advance 卷材阶段前进。只允许严格向前，切重和废料在进入分切完成后记录
func (s *RollService) Advance(id string, req AdvanceRollRequest) (*entity.Roll, error) {
	roll, err := s.rollRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("卷材不存在: %w", err)
	}

	target := entity.ParseStage(req.Stage)
	if target == entity.StageUnknown {
		return nil, fmt.Errorf("未识别的阶段: %s", req.Stage)
	}
	if !roll.CurrentStage().CanAdvanceTo(target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrStageRegression, roll.Stage, req.Stage)
	}

	now := time.Now()
	if target.Index() > entity.StagePrinting.Index() && roll.PrintedAt == nil {
		roll.PrintedAt = &now
	}
	if target.Index() > entity.StageCutting.Index() && roll.CutAt == nil {
		roll.CutAt = &now
	}
	if target.CuttingComplete() {
		if req.CutWeightTotalKg != "" {
			roll.CutWeightTotalKg = req.CutWeightTotalKg
		}
		if req.WasteKg != "" {
			roll.WasteKg = req.WasteKg
		}
	}
	roll.Stage = string(target)

	if err := s.rollRepo.Update(roll); err != nil {
		return nil, fmt.Errorf("更新卷材失败: %w", err)
	}
	return roll, nil
}

// Filter 按筛选条件返回卷材子集和同一子集上的汇总
func (s *RollService) Filter(f RollFilter) ([]entity.Roll, RollStats, error) {
	rolls, err := s.rollRepo.ListAll()
	if err != nil {
		return nil, RollStats{}, fmt.Errorf("读取卷材失败: %w", err)
	}
	matched := FilterRolls(rolls, f)
	return matched, SummarizeRolls(matched), nil
}

func (s *RollService) ListByProductionOrder(poID string) ([]entity.Roll, error) {
	return s.rollRepo.ListByProductionOrder(poID)
}
