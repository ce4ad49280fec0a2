package service

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/modplast83/modern-mps/internal/mes/entity"
	"github.com/modplast83/modern-mps/internal/mes/repository"
	"github.com/modplast83/modern-mps/internal/mes/testutil"
)

func setupOrderService(t *testing.T) (*OrderService, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	return NewOrderService(repos.Order, repos.ProductionOrder, zap.NewNop()), db
}

func TestApplyStatusPure(t *testing.T) {
	order := entity.Order{
		ID:           "o1",
		OrderNo:      "ORD-1",
		CustomerID:   "c1",
		CustomerName: "客户A",
		DeliveryDays: 30,
		Notes:        "加急",
		Status:       entity.OrderStatusPending,
	}

	updated, err := ApplyStatus(order, entity.OrderStatusCompleted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != entity.OrderStatusCompleted {
		t.Fatalf("expected completed, got %s", updated.Status)
	}
	// 除状态外其余字段原样保留
	if updated.ID != order.ID || updated.OrderNo != order.OrderNo ||
		updated.CustomerID != order.CustomerID || updated.CustomerName != order.CustomerName ||
		updated.DeliveryDays != order.DeliveryDays || updated.Notes != order.Notes {
		t.Fatalf("other fields changed: %+v", updated)
	}
}

func TestApplyStatusUnknown(t *testing.T) {
	order := entity.Order{Status: entity.OrderStatusPending}
	if _, err := ApplyStatus(order, "shipped"); !errors.Is(err, ErrUnknownStatus) {
		t.Fatalf("expected ErrUnknownStatus, got %v", err)
	}
}

func TestTransitionStatus(t *testing.T) {
	svc, db := setupOrderService(t)
	order := testutil.SeedOrder(t, db, "o1", "ORD-1", "c1", "客户A", 30)

	updated, err := svc.TransitionStatus(order.ID, entity.OrderStatusForProduction)
	if err != nil {
		t.Fatalf("transition failed: %v", err)
	}
	if updated.Status != entity.OrderStatusForProduction {
		t.Fatalf("expected for_production, got %s", updated.Status)
	}
	if updated.OrderNo != order.OrderNo || updated.DeliveryDays != order.DeliveryDays {
		t.Fatal("transition should not touch other fields")
	}

	// 回读确认已持久化
	stored, err := svc.GetByID(order.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.Status != entity.OrderStatusForProduction {
		t.Fatalf("status not persisted, got %s", stored.Status)
	}
}

func TestTransitionStatusUnknownTarget(t *testing.T) {
	svc, db := setupOrderService(t)
	order := testutil.SeedOrder(t, db, "o1", "ORD-1", "c1", "客户A", 30)

	if _, err := svc.TransitionStatus(order.ID, "exploded"); !errors.Is(err, ErrUnknownStatus) {
		t.Fatalf("expected ErrUnknownStatus, got %v", err)
	}
}

func TestDeleteGuardedByProduction(t *testing.T) {
	svc, db := setupOrderService(t)
	order := testutil.SeedOrder(t, db, "o1", "ORD-1", "c1", "客户A", 30)
	testutil.SeedProductionOrder(t, db, "po1", "PO-1", order.ID, 100, 10)

	if err := svc.Delete(order.ID); !errors.Is(err, ErrOrderHasProduction) {
		t.Fatalf("expected ErrOrderHasProduction, got %v", err)
	}
}

func TestGetDetailDerivedFields(t *testing.T) {
	svc, db := setupOrderService(t)
	order := testutil.SeedOrder(t, db, "o1", "ORD-1", "c1", "客户A", 30)
	p1 := testutil.SeedProductionOrder(t, db, "po1", "PO-1", order.ID, 10, 0)
	p2 := testutil.SeedProductionOrder(t, db, "po2", "PO-2", order.ID, 90, 0)
	db.Model(p1).Update("film_pct", 100)
	db.Model(p2).Update("film_pct", 0)

	detail, err := svc.GetDetail(order.ID)
	if err != nil {
		t.Fatalf("get detail failed: %v", err)
	}
	if !detail.Delivery.Determined {
		t.Fatal("delivery should be determined")
	}
	if !detail.Completion.HasProduction {
		t.Fatal("expected HasProduction")
	}
	if !almostEqual(detail.Completion.FilmPct, 10) {
		t.Fatalf("expected weighted film 10, got %f", detail.Completion.FilmPct)
	}
}

func TestGetDetailNoProduction(t *testing.T) {
	svc, db := setupOrderService(t)
	order := testutil.SeedOrder(t, db, "o1", "ORD-1", "c1", "客户A", 30)

	detail, err := svc.GetDetail(order.ID)
	if err != nil {
		t.Fatalf("get detail failed: %v", err)
	}
	if detail.Completion.HasProduction {
		t.Fatal("expected no-production indicator")
	}
}
