package service

import (
	"strings"
	"time"

	"github.com/modplast83/modern-mps/internal/mes/entity"
)

// FilterAll 下拉框的"全部"哨兵值，与空串等价，不构成约束
const FilterAll = "all"

// RollFilter 卷材筛选条件。每个字段独立可选，零值不构成约束，
// 激活的条件之间按逻辑与组合
type RollFilter struct {
	Search            string     // 模糊搜索：卷号/生产单号/订单号/客户名/品名，任一命中即可
	Stage             string     // 阶段等值
	CustomerID        string     // 客户等值
	ProductionOrderID string     // 生产单等值
	From              *time.Time // 创建时间下界（含）
	To                *time.Time // 创建时间上界（含）
}

func filterActive(v string) bool {
	return v != "" && v != FilterAll
}

// Matches 单条卷材是否满足全部激活条件
func (f RollFilter) Matches(r entity.Roll) bool {
	if filterActive(f.Search) {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(r.RollNo), term) &&
			!strings.Contains(strings.ToLower(r.PONo), term) &&
			!strings.Contains(strings.ToLower(r.OrderNo), term) &&
			!strings.Contains(strings.ToLower(r.CustomerName), term) &&
			!strings.Contains(strings.ToLower(r.ItemName), term) {
			return false
		}
	}
	if filterActive(f.Stage) && r.Stage != f.Stage {
		return false
	}
	if filterActive(f.CustomerID) && r.CustomerID != f.CustomerID {
		return false
	}
	if filterActive(f.ProductionOrderID) && r.ProductionOrderID != f.ProductionOrderID {
		return false
	}
	if f.From != nil && r.CreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && r.CreatedAt.After(*f.To) {
		return false
	}
	return true
}

// FilterRolls 返回满足条件的子集，保持输入的相对顺序，不修改输入
func FilterRolls(rolls []entity.Roll, f RollFilter) []entity.Roll {
	out := make([]entity.Roll, 0, len(rolls))
	for _, r := range rolls {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// RollStats 看板卡片用的汇总统计
type RollStats struct {
	Total         int            `json:"total"`
	ByStage       map[string]int `json:"by_stage"` // 五个阶段全量输出，无匹配为 0
	TotalWeightKg float64        `json:"total_weight_kg"`
}

// SummarizeRolls 对筛选后的卷材集合汇总阶段分布和总重。
// 空集合返回全零统计，重量解析失败按 0 计入
func SummarizeRolls(rolls []entity.Roll) RollStats {
	stats := RollStats{ByStage: make(map[string]int, 5)}
	for _, s := range entity.AllStages() {
		stats.ByStage[string(s)] = 0
	}
	for _, r := range rolls {
		stats.Total++
		stats.TotalWeightKg += r.WeightValue()
		if st := r.CurrentStage(); st != entity.StageUnknown {
			stats.ByStage[string(st)]++
		}
	}
	return stats
}
