package entity

import (
	"time"
)

// ProductionOrderStatus 生产单状态
const (
	POStatusPending    = "pending"
	POStatusInProgress = "in_progress"
	POStatusCompleted  = "completed"
	POStatusCancelled  = "cancelled"
)

// ProductionOrder 生产单。一条生产指令对应订单中的一个产品行，
// 各阶段完成率独立记录，订单级进度由聚合服务按数量加权计算，不落库
type ProductionOrder struct {
	ID                string     `json:"id" gorm:"primaryKey;type:uuid"`
	PONo              string     `json:"po_no" gorm:"size:50;not null;uniqueIndex"`
	OrderID           string     `json:"order_id" gorm:"type:uuid;not null;index"`
	CustomerProductID string     `json:"customer_product_id" gorm:"size:64"`
	ItemName          string     `json:"item_name" gorm:"size:128"`
	QuantityKg        float64    `json:"quantity_kg" gorm:"type:decimal(12,3);not null"`
	OverrunPct        float64    `json:"overrun_pct" gorm:"type:decimal(5,2);default:0"` // 备料富余百分比, 0-100
	FinalQtyKg        float64    `json:"final_qty_kg" gorm:"type:decimal(12,3)"`         // quantity * (1 + overrun/100)
	FilmPct           float64    `json:"film_pct" gorm:"type:decimal(5,2);default:0"`
	PrintingPct       float64    `json:"printing_pct" gorm:"type:decimal(5,2);default:0"`
	CuttingPct        float64    `json:"cutting_pct" gorm:"type:decimal(5,2);default:0"`
	Status            string     `json:"status" gorm:"size:20;not null;default:pending"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	DeletedAt         *time.Time `json:"deleted_at" gorm:"index"`

	Rolls []Roll `json:"rolls,omitempty" gorm:"foreignKey:ProductionOrderID"`
}

func (ProductionOrder) TableName() string {
	return "mps_production_orders"
}

// EffectiveQty 聚合权重取最终数量，缺失时回退到下单数量
func (p ProductionOrder) EffectiveQty() float64 {
	if p.FinalQtyKg > 0 {
		return p.FinalQtyKg
	}
	return p.QuantityKg
}

// ComputeFinalQty 按富余比例重算最终数量，保证不小于下单数量
func (p *ProductionOrder) ComputeFinalQty() {
	p.FinalQtyKg = p.QuantityKg * (1 + p.OverrunPct/100)
	if p.FinalQtyKg < p.QuantityKg {
		p.FinalQtyKg = p.QuantityKg
	}
}
