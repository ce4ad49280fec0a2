package service

import (
	"github.com/modplast83/modern-mps/internal/mes/entity"
)

// CompletionSummary 订单级各阶段完成率。HasProduction 为 false 表示
// 订单下还没有生产单，调用方应展示"尚未投产"而不是 0%
type CompletionSummary struct {
	FilmPct       float64 `json:"film_pct"`
	PrintingPct   float64 `json:"printing_pct"`
	CuttingPct    float64 `json:"cutting_pct"`
	HasProduction bool    `json:"has_production"`
}

// AggregateCompletion 把订单下 N 个生产单的阶段完成率按数量加权平均成
// 订单级进度。直接取算术平均会让 1kg 的小单和 10000kg 的大单权重相同，
// 与车间实际产出不符。权重取最终数量，缺失回退到下单数量。
// 完成率不在此处截断到 [0,100]，越界值原样透出以便暴露上游数据问题
func AggregateCompletion(productionOrders []entity.ProductionOrder) CompletionSummary {
	if len(productionOrders) == 0 {
		return CompletionSummary{}
	}

	var totalQty, film, printing, cutting float64
	for _, po := range productionOrders {
		qty := po.EffectiveQty()
		totalQty += qty
		film += qty * po.FilmPct
		printing += qty * po.PrintingPct
		cutting += qty * po.CuttingPct
	}

	summary := CompletionSummary{HasProduction: true}
	if totalQty > 0 {
		summary.FilmPct = film / totalQty
		summary.PrintingPct = printing / totalQty
		summary.CuttingPct = cutting / totalQty
	}
	return summary
}
