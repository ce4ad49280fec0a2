package entity

import (
	"time"
)

// OrderStatus 订单状态
const (
	OrderStatusWaiting       = "waiting"
	OrderStatusPending       = "pending"
	OrderStatusForProduction = "for_production"
	OrderStatusInProduction  = "in_production"
	OrderStatusPaused        = "paused"
	OrderStatusOnHold        = "on_hold"
	OrderStatusCompleted     = "completed"
	OrderStatusReceived      = "received"
	OrderStatusDelivered     = "delivered"
	OrderStatusCancelled     = "cancelled"
)

// orderStatuses 全部已识别的订单状态
var orderStatuses = map[string]struct{}{
	OrderStatusWaiting:       {},
	OrderStatusPending:       {},
	OrderStatusForProduction: {},
	OrderStatusInProduction:  {},
	OrderStatusPaused:        {},
	OrderStatusOnHold:        {},
	OrderStatusCompleted:     {},
	OrderStatusReceived:      {},
	OrderStatusDelivered:     {},
	OrderStatusCancelled:     {},
}

// ValidOrderStatus 状态值是否已识别。展示层对未识别值走兜底样式，
// 但状态流转只接受已识别的目标状态
func ValidOrderStatus(s string) bool {
	_, ok := orderStatuses[s]
	return ok
}

// OrderStatusLabelKey 状态的本地化标签键，未识别值返回兜底键
func OrderStatusLabelKey(s string) string {
	if ValidOrderStatus(s) {
		return "order.status." + s
	}
	return "order.status.unknown"
}

// Order 客户订单
type Order struct {
	ID           string     `json:"id" gorm:"primaryKey;type:uuid"`
	OrderNo      string     `json:"order_no" gorm:"size:50;not null;uniqueIndex"`
	CustomerID   string     `json:"customer_id" gorm:"size:64;not null;index"`
	CustomerName string     `json:"customer_name" gorm:"size:128"`
	DeliveryDays int        `json:"delivery_days" gorm:"not null"` // 承诺交期天数, 1-365
	Notes        string     `json:"notes" gorm:"type:text"`
	Status       string     `json:"status" gorm:"size:20;not null;default:pending"`
	CreatedBy    string     `json:"created_by" gorm:"size:64;not null"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at" gorm:"index"`

	ProductionOrders []ProductionOrder `json:"production_orders,omitempty" gorm:"foreignKey:OrderID"`
}

func (Order) TableName() string {
	return "mps_orders"
}
