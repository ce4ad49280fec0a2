package service

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComputeDeliveryInfo(t *testing.T) {
	created := time.Date(2025, 1, 1, 14, 30, 0, 0, time.UTC) // 时分秒应被归零

	info := ComputeDeliveryInfo(&created, 10, date(2025, 1, 5))
	if !info.Determined {
		t.Fatal("expected determined result")
	}
	if !info.DeliveryDate.Equal(date(2025, 1, 11)) {
		t.Fatalf("expected delivery 2025-01-11, got %v", info.DeliveryDate)
	}
	if info.DaysRemaining != 6 || info.State != DeliveryOnTrack {
		t.Fatalf("expected 6 days on_track, got %d %s", info.DaysRemaining, info.State)
	}
}

func TestComputeDeliveryInfoDueToday(t *testing.T) {
	created := date(2025, 1, 1)
	// 当天下午查询，归一化后剩余天数应恰好为 0
	today := time.Date(2025, 1, 11, 18, 0, 0, 0, time.UTC)
	info := ComputeDeliveryInfo(&created, 10, today)
	if info.DaysRemaining != 0 {
		t.Fatalf("expected 0 days, got %d", info.DaysRemaining)
	}
	if info.State != DeliveryDueToday {
		t.Fatalf("expected due_today, got %s", info.State)
	}
}

func TestComputeDeliveryInfoLate(t *testing.T) {
	created := date(2025, 1, 1)
	info := ComputeDeliveryInfo(&created, 10, date(2025, 1, 15))
	if info.DaysRemaining != -4 {
		t.Fatalf("expected -4 days, got %d", info.DaysRemaining)
	}
	if info.State != DeliveryLate {
		t.Fatalf("expected late, got %s", info.State)
	}
}

func TestComputeDeliveryInfoAcrossDSTChange(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	// 2025-03-30 柏林进入夏令时，跨过该日的零点间隔只有 23 小时，
	// 剩余天数仍须按日历天数算
	created := time.Date(2025, 3, 25, 9, 0, 0, 0, berlin)
	today := time.Date(2025, 3, 26, 14, 0, 0, 0, berlin)

	info := ComputeDeliveryInfo(&created, 10, today)
	if !info.Determined {
		t.Fatal("expected determined result")
	}
	if info.DaysRemaining != 9 {
		t.Fatalf("expected 9 calendar days remaining, got %d", info.DaysRemaining)
	}
	if info.State != DeliveryOnTrack {
		t.Fatalf("expected on_track, got %s", info.State)
	}

	// 反向：秋季回拨的 25 小时间隔也不能多算一天
	createdFall := time.Date(2025, 10, 20, 9, 0, 0, 0, berlin)
	todayFall := time.Date(2025, 10, 21, 14, 0, 0, 0, berlin)
	info = ComputeDeliveryInfo(&createdFall, 10, todayFall)
	if info.DaysRemaining != 9 {
		t.Fatalf("expected 9 calendar days across fall-back, got %d", info.DaysRemaining)
	}
}

func TestComputeDeliveryInfoUndetermined(t *testing.T) {
	created := date(2025, 1, 1)

	info := ComputeDeliveryInfo(nil, 10, date(2025, 1, 5))
	if info.Determined || info.State != DeliveryUndetermined {
		t.Fatalf("missing creation date should be undetermined, got %+v", info)
	}

	info = ComputeDeliveryInfo(&created, 0, date(2025, 1, 5))
	if info.Determined || info.State != DeliveryUndetermined {
		t.Fatalf("missing delivery window should be undetermined, got %+v", info)
	}

	var zero time.Time
	info = ComputeDeliveryInfo(&zero, 10, date(2025, 1, 5))
	if info.Determined {
		t.Fatal("zero creation date should be undetermined")
	}
}
