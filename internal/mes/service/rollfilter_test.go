package service

import (
	"testing"
	"time"

	"github.com/modplast83/modern-mps/internal/mes/entity"
)

func sampleRolls() []entity.Roll {
	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	return []entity.Roll{
		{ID: "r1", RollNo: "PO-1-R001", PONo: "PO-1", OrderNo: "ORD-100", CustomerID: "c1", CustomerName: "شركة الأمل", ItemName: "Bag 30x40", ProductionOrderID: "po1", Stage: "film", WeightKg: "12.5", CreatedAt: base},
		{ID: "r2", RollNo: "PO-1-R002", PONo: "PO-1", OrderNo: "ORD-100", CustomerID: "c1", CustomerName: "شركة الأمل", ItemName: "Bag 30x40", ProductionOrderID: "po1", Stage: "printing", WeightKg: "8.2", CreatedAt: base.AddDate(0, 0, 1)},
		{ID: "r3", RollNo: "PO-2-R001", PONo: "PO-2", OrderNo: "ORD-101", CustomerID: "c2", CustomerName: "Delta Foods", ItemName: "Bag 20x30", ProductionOrderID: "po2", Stage: "cutting", WeightKg: "15", CreatedAt: base.AddDate(0, 0, 2)},
		{ID: "r4", RollNo: "PO-2-R002", PONo: "PO-2", OrderNo: "ORD-101", CustomerID: "c2", CustomerName: "Delta Foods", ItemName: "Bag 20x30", ProductionOrderID: "po2", Stage: "done", WeightKg: "", CreatedAt: base.AddDate(0, 0, 3)},
	}
}

func ids(rolls []entity.Roll) []string {
	out := make([]string, len(rolls))
	for i, r := range rolls {
		out[i] = r.ID
	}
	return out
}

func TestFilterRollsNoConstraints(t *testing.T) {
	rolls := sampleRolls()
	got := FilterRolls(rolls, RollFilter{})
	if len(got) != len(rolls) {
		t.Fatalf("expected all %d rolls, got %d", len(rolls), len(got))
	}
	for i := range got {
		if got[i].ID != rolls[i].ID {
			t.Fatalf("order not preserved at %d: %s", i, got[i].ID)
		}
	}
}

func TestFilterRollsIdempotent(t *testing.T) {
	rolls := sampleRolls()
	f := RollFilter{Stage: "printing"}
	once := FilterRolls(rolls, f)
	twice := FilterRolls(once, f)
	if len(once) != len(twice) {
		t.Fatalf("filter not idempotent: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].ID != twice[i].ID {
			t.Fatalf("filter not idempotent at %d", i)
		}
	}
}

func TestFilterRollsSearchAcrossFields(t *testing.T) {
	rolls := sampleRolls()

	// 订单号命中
	got := FilterRolls(rolls, RollFilter{Search: "ord-101"})
	if len(got) != 2 || got[0].ID != "r3" {
		t.Fatalf("search by order no failed: %v", ids(got))
	}

	// 客户名命中（任一字段包含即可）
	got = FilterRolls(rolls, RollFilter{Search: "delta"})
	if len(got) != 2 {
		t.Fatalf("search by customer name failed: %v", ids(got))
	}

	// 品名命中
	got = FilterRolls(rolls, RollFilter{Search: "30x40"})
	if len(got) != 2 || got[0].ID != "r1" {
		t.Fatalf("search by item name failed: %v", ids(got))
	}

	got = FilterRolls(rolls, RollFilter{Search: "nothing-matches"})
	if len(got) != 0 {
		t.Fatalf("expected no matches, got %v", ids(got))
	}
}

func TestFilterRollsCombinedAnd(t *testing.T) {
	rolls := sampleRolls()
	// 搜索命中 4 条里的 2 条，叠加阶段条件后只剩 1 条
	got := FilterRolls(rolls, RollFilter{Search: "po-2", Stage: "done"})
	if len(got) != 1 || got[0].ID != "r4" {
		t.Fatalf("combined filter failed: %v", ids(got))
	}
}

func TestFilterRollsAllSentinel(t *testing.T) {
	rolls := sampleRolls()
	got := FilterRolls(rolls, RollFilter{Stage: FilterAll, CustomerID: FilterAll})
	if len(got) != len(rolls) {
		t.Fatalf("sentinel value should not constrain, got %d", len(got))
	}
}

func TestFilterRollsDateRange(t *testing.T) {
	rolls := sampleRolls()
	from := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 3, 23, 59, 59, 0, time.UTC)

	got := FilterRolls(rolls, RollFilter{From: &from, To: &to})
	if len(got) != 2 || got[0].ID != "r2" || got[1].ID != "r3" {
		t.Fatalf("date range filter failed: %v", ids(got))
	}

	// 单边开区间
	got = FilterRolls(rolls, RollFilter{From: &from})
	if len(got) != 3 {
		t.Fatalf("open upper bound failed: %v", ids(got))
	}
}

func TestSummarizeRolls(t *testing.T) {
	stats := SummarizeRolls(sampleRolls())
	if stats.Total != 4 {
		t.Fatalf("expected total 4, got %d", stats.Total)
	}
	// 12.5 + 8.2 + 15 + 缺失(0)
	if !almostEqual(stats.TotalWeightKg, 35.7) {
		t.Fatalf("expected weight 35.7, got %f", stats.TotalWeightKg)
	}
	if stats.ByStage["film"] != 1 || stats.ByStage["printing"] != 1 || stats.ByStage["cutting"] != 1 || stats.ByStage["done"] != 1 {
		t.Fatalf("unexpected stage buckets: %v", stats.ByStage)
	}
	// 无匹配的阶段也要有桶
	if _, ok := stats.ByStage["archived"]; !ok {
		t.Fatal("archived bucket missing")
	}
}

func TestSummarizeRollsMalformedWeight(t *testing.T) {
	rolls := []entity.Roll{
		{ID: "a", Stage: "film", WeightKg: "12.5"},
		{ID: "b", Stage: "film", WeightKg: ""},
		{ID: "c", Stage: "film", WeightKg: "abc"},
	}
	stats := SummarizeRolls(rolls)
	if !almostEqual(stats.TotalWeightKg, 12.5) {
		t.Fatalf("malformed weights should contribute 0, got %f", stats.TotalWeightKg)
	}
	if stats.Total != 3 {
		t.Fatalf("expected 3 rolls counted, got %d", stats.Total)
	}
}

func TestSummarizeRollsEmpty(t *testing.T) {
	stats := SummarizeRolls(nil)
	if stats.Total != 0 || stats.TotalWeightKg != 0 {
		t.Fatalf("empty collection should be all-zero, got %+v", stats)
	}
	if len(stats.ByStage) != 5 {
		t.Fatalf("expected 5 stage buckets, got %d", len(stats.ByStage))
	}
}
