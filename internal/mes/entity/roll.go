package entity

import (
	"strconv"
	"time"
)

// Roll 卷材，车间流转的物理单元。重量字段来自车间终端，
// 以十进制字符串存储，解析失败按 0 计入汇总
type Roll struct {
	ID                string     `json:"id" gorm:"primaryKey;type:uuid"`
	RollNo            string     `json:"roll_no" gorm:"size:50;not null"`
	Seq               int        `json:"seq" gorm:"not null"` // 生产单内序号
	ProductionOrderID string     `json:"production_order_id" gorm:"type:uuid;not null;index"`
	PONo              string     `json:"po_no" gorm:"size:50"`
	OrderID           string     `json:"order_id" gorm:"type:uuid;index"`
	OrderNo           string     `json:"order_no" gorm:"size:50"`
	Stage             string     `json:"stage" gorm:"size:20;not null;default:film"`
	WeightKg          string     `json:"weight_kg" gorm:"size:20"`
	CutWeightTotalKg  string     `json:"cut_weight_total_kg" gorm:"size:20"` // 进入分切后才有值
	WasteKg           string     `json:"waste_kg" gorm:"size:20"`            // 进入分切后才有值
	CustomerID        string     `json:"customer_id" gorm:"size:64;index"`
	CustomerName      string     `json:"customer_name" gorm:"size:128"`
	ItemName          string     `json:"item_name" gorm:"size:128"`
	MachineName       string     `json:"machine_name" gorm:"size:64"`
	OperatorName      string     `json:"operator_name" gorm:"size:64"`
	CreatedAt         time.Time  `json:"created_at"`
	PrintedAt         *time.Time `json:"printed_at"`
	CutAt             *time.Time `json:"cut_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func (Roll) TableName() string {
	return "mps_rolls"
}

// CurrentStage 解析后的阶段值，未识别时为 StageUnknown
func (r Roll) CurrentStage() Stage {
	return ParseStage(r.Stage)
}

// WeightValue 解析卷重。缺失或非数字返回 0
func (r Roll) WeightValue() float64 {
	return parseDecimal(r.WeightKg)
}

// WasteValue 解析废料重量。缺失或非数字返回 0
func (r Roll) WasteValue() float64 {
	return parseDecimal(r.WasteKg)
}

// CutWeightValue 解析切后总重。缺失或非数字返回 0
func (r Roll) CutWeightValue() float64 {
	return parseDecimal(r.CutWeightTotalKg)
}

func parseDecimal(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
