package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/modplast83/modern-mps/internal/mes/repository"
)

const (
	dashboardCacheKey = "mps:dashboard:roll_stats"
	dashboardCacheTTL = 30 * time.Second
)

// DashboardService 看板服务。全量统计走 redis 缓存，
// 带筛选条件的统计每次现算
type DashboardService struct {
	rollRepo  *repository.RollRepository
	orderRepo *repository.OrderRepository
	rdb       *redis.Client
	logger    *zap.Logger
}

func NewDashboardService(rollRepo *repository.RollRepository, orderRepo *repository.OrderRepository, rdb *redis.Client, logger *zap.Logger) *DashboardService {
	return &DashboardService{rollRepo: rollRepo, orderRepo: orderRepo, rdb: rdb, logger: logger}
}

// GetRollStats 看板卡片统计。f 为零值时尝试读缓存
func (s *DashboardService) GetRollStats(ctx context.Context, f RollFilter) (RollStats, error) {
	cacheable := f == (RollFilter{})

	if cacheable && s.rdb != nil {
		if raw, err := s.rdb.Get(ctx, dashboardCacheKey).Bytes(); err == nil {
			var stats RollStats
			if json.Unmarshal(raw, &stats) == nil {
				return stats, nil
			}
		}
	}

	rolls, err := s.rollRepo.ListAll()
	if err != nil {
		return RollStats{}, err
	}
	stats := SummarizeRolls(FilterRolls(rolls, f))

	if cacheable && s.rdb != nil {
		if raw, err := json.Marshal(stats); err == nil {
			if err := s.rdb.Set(ctx, dashboardCacheKey, raw, dashboardCacheTTL).Err(); err != nil {
				s.logger.Warn("看板缓存写入失败", zap.Error(err))
			}
		}
	}
	return stats, nil
}

// RefreshCache 后台定时预热全量统计缓存
func (s *DashboardService) RefreshCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	rolls, err := s.rollRepo.ListAll()
	if err != nil {
		s.logger.Warn("看板缓存预热失败", zap.Error(err))
		return
	}
	stats := SummarizeRolls(rolls)
	if raw, err := json.Marshal(stats); err == nil {
		s.rdb.Set(ctx, dashboardCacheKey, raw, dashboardCacheTTL)
	}
}

// OrderHealth 订单交期健康度汇总
type OrderHealth struct {
	Total        int            `json:"total"`
	OnTrack      int            `json:"on_track"`
	DueToday     int            `json:"due_today"`
	Late         int            `json:"late"`
	Undetermined int            `json:"undetermined"`
	ByStatus     map[string]int `json:"by_status"`
}

// GetOrderHealth 按交期状态统计全部在册订单
func (s *DashboardService) GetOrderHealth(ctx context.Context) (OrderHealth, error) {
	orders, _, err := s.orderRepo.List(repository.OrderListParams{Page: 1, Size: 10000})
	if err != nil {
		return OrderHealth{}, err
	}

	health := OrderHealth{ByStatus: make(map[string]int)}
	now := time.Now()
	for i := range orders {
		health.Total++
		health.ByStatus[orders[i].Status]++
		info := OrderDeliveryInfo(&orders[i], now)
		switch info.State {
		case DeliveryOnTrack:
			health.OnTrack++
		case DeliveryDueToday:
			health.DueToday++
		case DeliveryLate:
			health.Late++
		default:
			health.Undetermined++
		}
	}
	return health, nil
}
