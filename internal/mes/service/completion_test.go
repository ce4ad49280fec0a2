package service

import (
	"math"
	"testing"

	"github.com/modplast83/modern-mps/internal/mes/entity"
)

func po(qty, overrun, film, printing, cutting float64) entity.ProductionOrder {
	p := entity.ProductionOrder{
		QuantityKg:  qty,
		OverrunPct:  overrun,
		FilmPct:     film,
		PrintingPct: printing,
		CuttingPct:  cutting,
	}
	p.ComputeFinalQty()
	return p
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAggregateCompletionEmpty(t *testing.T) {
	summary := AggregateCompletion(nil)
	if summary.HasProduction {
		t.Fatal("empty input should report no production")
	}
	if summary.FilmPct != 0 || summary.PrintingPct != 0 || summary.CuttingPct != 0 {
		t.Fatalf("expected all-zero percentages, got %+v", summary)
	}
}

func TestAggregateCompletionWeighted(t *testing.T) {
	// 10/20/70 kg，吹膜完成率 100/50/0，加权结果 20
	pos := []entity.ProductionOrder{
		po(10, 0, 100, 0, 0),
		po(20, 0, 50, 0, 0),
		po(70, 0, 0, 0, 0),
	}
	summary := AggregateCompletion(pos)
	if !summary.HasProduction {
		t.Fatal("expected HasProduction")
	}
	if !almostEqual(summary.FilmPct, 20) {
		t.Fatalf("expected film 20, got %f", summary.FilmPct)
	}
}

func TestAggregateCompletionEqualQuantitiesIsMean(t *testing.T) {
	pos := []entity.ProductionOrder{
		po(50, 0, 30, 60, 90),
		po(50, 0, 50, 20, 10),
	}
	summary := AggregateCompletion(pos)
	if !almostEqual(summary.FilmPct, 40) || !almostEqual(summary.PrintingPct, 40) || !almostEqual(summary.CuttingPct, 50) {
		t.Fatalf("equal quantities should give arithmetic mean, got %+v", summary)
	}
}

func TestAggregateCompletionScaleInvariant(t *testing.T) {
	base := []entity.ProductionOrder{
		po(10, 0, 80, 40, 10),
		po(30, 0, 20, 60, 0),
	}
	scaled := []entity.ProductionOrder{
		po(1000, 0, 80, 40, 10),
		po(3000, 0, 20, 60, 0),
	}
	a, b := AggregateCompletion(base), AggregateCompletion(scaled)
	if !almostEqual(a.FilmPct, b.FilmPct) || !almostEqual(a.PrintingPct, b.PrintingPct) || !almostEqual(a.CuttingPct, b.CuttingPct) {
		t.Fatalf("weighting should be scale-invariant: %+v vs %+v", a, b)
	}
}

func TestAggregateCompletionUsesFinalQty(t *testing.T) {
	// 富余 100%：最终数量 20kg 应作为权重，而不是下单的 10kg
	pos := []entity.ProductionOrder{
		po(10, 100, 100, 0, 0), // final 20
		po(20, 0, 0, 0, 0),     // final 20
	}
	summary := AggregateCompletion(pos)
	if !almostEqual(summary.FilmPct, 50) {
		t.Fatalf("expected film 50 with final-qty weighting, got %f", summary.FilmPct)
	}
}

func TestAggregateCompletionZeroQuantities(t *testing.T) {
	pos := []entity.ProductionOrder{
		{FilmPct: 100},
	}
	summary := AggregateCompletion(pos)
	if !summary.HasProduction {
		t.Fatal("expected HasProduction even with zero quantities")
	}
	if summary.FilmPct != 0 {
		t.Fatalf("zero total quantity should yield 0, got %f", summary.FilmPct)
	}
}

func TestAggregateCompletionPassesThroughOutOfRange(t *testing.T) {
	// 越界值不截断，透出上游数据问题
	pos := []entity.ProductionOrder{po(10, 0, 150, 0, 0)}
	summary := AggregateCompletion(pos)
	if !almostEqual(summary.FilmPct, 150) {
		t.Fatalf("out-of-range pct should pass through, got %f", summary.FilmPct)
	}
}
