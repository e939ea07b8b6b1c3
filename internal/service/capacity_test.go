package service

import (
	"context"
	"errors"
	"testing"

	"github.com/deppfellow/capacity-api/internal/model"
)

type fakeExecutor struct {
	calls   int
	got     model.DateRange
	execute func(ctx context.Context, r model.DateRange) ([]model.CapacityRecord, error)
}

func (f *fakeExecutor) Execute(ctx context.Context, r model.DateRange) ([]model.CapacityRecord, error) {
	f.calls++
	f.got = r
	return f.execute(ctx, r)
}

func mustRange(t *testing.T, from, to string) model.DateRange {
	t.Helper()

	f, err := model.ParseDate(from)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", from, err)
	}
	tt, err := model.ParseDate(to)
	if err != nil {
		t.Fatalf("ParseDate(%q): %v", to, err)
	}
	return model.NewDateRange(f, tt)
}

func TestGetCapacity_InvertedRangeSkipsExecutor(t *testing.T) {
	exec := &fakeExecutor{execute: func(context.Context, model.DateRange) ([]model.CapacityRecord, error) {
		t.Fatal("executor must not be called")
		return nil, nil
	}}
	svc := NewCapacityService(nil, exec)

	_, err := svc.GetCapacity(context.Background(), mustRange(t, "2024-03-01", "2024-01-01"))
	if !errors.Is(err, model.ErrInvalidDateRange) {
		t.Fatalf("err = %v, want ErrInvalidDateRange", err)
	}
	if exec.calls != 0 {
		t.Fatalf("executor calls = %d, want 0", exec.calls)
	}
}

func TestGetCapacity_DelegatesAndPreservesOrder(t *testing.T) {
	rows := []model.CapacityRecord{
		{WeekStartDate: model.NewDate(2024, 1, 8), WeekNo: 2, OfferedCapacityTEU: model.NewTEU(200)},
		{WeekStartDate: model.NewDate(2024, 1, 1), WeekNo: 1, OfferedCapacityTEU: model.NewTEU(100)},
	}
	exec := &fakeExecutor{execute: func(context.Context, model.DateRange) ([]model.CapacityRecord, error) {
		return rows, nil
	}}
	svc := NewCapacityService(nil, exec)

	r := mustRange(t, "2024-01-01", "2024-01-14")
	got, err := svc.GetCapacity(context.Background(), r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exec.calls != 1 {
		t.Fatalf("executor calls = %d, want 1", exec.calls)
	}
	if !exec.got.From.Equal(r.From) || !exec.got.To.Equal(r.To) {
		t.Fatalf("executor got %v, want %v", exec.got, r)
	}
	if len(got) != 2 || got[0].WeekNo != 2 || got[1].WeekNo != 1 {
		t.Fatalf("rows reordered or dropped: %+v", got)
	}
}

func TestGetCapacity_SameDayRangeIsValid(t *testing.T) {
	exec := &fakeExecutor{execute: func(context.Context, model.DateRange) ([]model.CapacityRecord, error) {
		return []model.CapacityRecord{}, nil
	}}
	svc := NewCapacityService(nil, exec)

	if _, err := svc.GetCapacity(context.Background(), mustRange(t, "2024-01-01", "2024-01-01")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exec.calls != 1 {
		t.Fatalf("executor calls = %d, want 1", exec.calls)
	}
}

func TestGetCapacity_PropagatesExecutorError(t *testing.T) {
	boom := errors.New("connection refused")
	exec := &fakeExecutor{execute: func(context.Context, model.DateRange) ([]model.CapacityRecord, error) {
		return nil, boom
	}}
	svc := NewCapacityService(nil, exec)

	got, err := svc.GetCapacity(context.Background(), mustRange(t, "2024-01-01", "2024-01-29"))
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if got != nil {
		t.Fatalf("rows = %+v, want nil", got)
	}
}
