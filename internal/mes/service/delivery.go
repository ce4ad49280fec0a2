package service

import (
	"time"

	"github.com/modplast83/modern-mps/internal/mes/entity"
)

// DeliveryState 交期状态
type DeliveryState string

const (
	DeliveryOnTrack      DeliveryState = "on_track"
	DeliveryDueToday     DeliveryState = "due_today"
	DeliveryLate         DeliveryState = "late"
	DeliveryUndetermined DeliveryState = "undetermined"
)

// DeliveryInfo 交期计算结果。Determined 为 false 时其余字段无意义，
// 调用方必须把未确定当作独立于按期/逾期的第三种状态处理
type DeliveryInfo struct {
	Determined    bool          `json:"determined"`
	DeliveryDate  time.Time     `json:"delivery_date,omitempty"`
	DaysRemaining int           `json:"days_remaining"`
	State         DeliveryState `json:"state"`
}

// startOfDay 归一化到当天零点，保证同一天相减恰好为 0
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// civilUTC 取 t 的年月日在 UTC 重建零点。剩余天数必须按日历天数差，
// 本地时区的夏令时切换会让零点到零点不足 24 小时，直接相减会少算一天
func civilUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ComputeDeliveryInfo 按创建日期加交期天数计算交付日期和剩余天数。
// 创建时间或交期缺失时返回未确定结果，不做猜测
func ComputeDeliveryInfo(createdAt *time.Time, deliveryDays int, today time.Time) DeliveryInfo {
	if createdAt == nil || createdAt.IsZero() || deliveryDays <= 0 {
		return DeliveryInfo{Determined: false, State: DeliveryUndetermined}
	}

	deliveryDate := startOfDay(*createdAt).AddDate(0, 0, deliveryDays)
	days := int(civilUTC(deliveryDate).Sub(civilUTC(today)).Hours() / 24)

	state := DeliveryOnTrack
	switch {
	case days == 0:
		state = DeliveryDueToday
	case days < 0:
		state = DeliveryLate
	}

	return DeliveryInfo{
		Determined:    true,
		DeliveryDate:  deliveryDate,
		DaysRemaining: days,
		State:         state,
	}
}

// OrderDeliveryInfo 订单交期。订单表各行和报表共用此入口，避免各处重复换算
func OrderDeliveryInfo(order *entity.Order, today time.Time) DeliveryInfo {
	if order == nil {
		return DeliveryInfo{Determined: false, State: DeliveryUndetermined}
	}
	created := order.CreatedAt
	var createdPtr *time.Time
	if !created.IsZero() {
		createdPtr = &created
	}
	return ComputeDeliveryInfo(createdPtr, order.DeliveryDays, today)
}
