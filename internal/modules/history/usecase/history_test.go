package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	historyout "voltref/internal/modules/history/adapter/out"
	historydto "voltref/internal/modules/history/dto"
	historyin "voltref/internal/modules/history/port/in"
	"voltref/internal/modules/history/service"
	"voltref/internal/modules/history/usecase"
	"voltref/internal/modules/scale/domain"
	scaleservice "voltref/internal/modules/scale/service"
	scaleusecase "voltref/internal/modules/scale/usecase"
	apperrors "voltref/internal/platform/errors"
)

type fakeClock struct {
	values []time.Time
	idx    int
}

func (f *fakeClock) Now() time.Time {
	if f.idx >= len(f.values) {
		return f.values[len(f.values)-1]
	}
	v := f.values[f.idx]
	f.idx++
	return v
}

type seqID struct{ n int }

func (s *seqID) New() string {
	s.n++
	return fmt.Sprintf("rec-%d", s.n)
}

type builtinSource struct{}

func (builtinSource) List(context.Context) ([]domain.Electrode, error) {
	return domain.Builtin(), nil
}

func newHistory(t *testing.T, clk *fakeClock) (context.Context, historyin.Usecase) {
	t.Helper()
	ctx := context.Background()
	scaleSvc, err := scaleservice.NewScaleService(ctx, nil, builtinSource{})
	if err != nil {
		t.Fatalf("new scale service: %v", err)
	}
	svc := service.NewHistoryService(clk, &seqID{}, historyout.NewMemoryRecordStore())
	return ctx, usecase.NewInteractor(svc, scaleusecase.NewInteractor(scaleSvc))
}

func TestLogAppendsExactlyOneRecordPerConversion(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{
		time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 8, 25, 9, 1, 0, 0, time.UTC),
	}}
	ctx, uc := newHistory(t, clk)

	out, err := uc.Log(ctx, historydto.LogInput{Value: 0.350, From: "Ag/AgCl (Sat'd KCl)", To: domain.SHEName})
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if math.Abs(out.Result-0.547) > 1e-9 {
		t.Fatalf("expected 0.547, got %.9f", out.Result)
	}
	if !out.At.Equal(clk.values[0]) {
		t.Fatalf("record timestamp mismatch: %v", out.At)
	}

	records, err := uc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record after one conversion, got %d", len(records))
	}

	if _, err := uc.Log(ctx, historydto.LogInput{Value: 0.547, From: domain.SHEName, To: "Ag/AgCl (Sat'd KCl)"}); err != nil {
		t.Fatalf("second log: %v", err)
	}
	records, err = uc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[1].At.Before(records[0].At) {
		t.Fatalf("records must be ordered most-recent-last")
	}
	if math.Abs(records[1].Result-0.350) > 1e-9 {
		t.Fatalf("round trip result mismatch: %.9f", records[1].Result)
	}
}

func TestFailedConversionLeavesHistoryUntouched(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)}}
	ctx, uc := newHistory(t, clk)

	if _, err := uc.Log(ctx, historydto.LogInput{Value: 0.1, From: "Unobtainium", To: domain.SHEName}); !errors.Is(err, apperrors.ErrUnknownElectrode) {
		t.Fatalf("expected ErrUnknownElectrode, got %v", err)
	}
	records, err := uc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("failed conversion must not append, got %d records", len(records))
	}
}

func TestClearEmptiesTheWholeLog(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{values: []time.Time{time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)}}
	ctx, uc := newHistory(t, clk)

	for i := 0; i < 3; i++ {
		if _, err := uc.Log(ctx, historydto.LogInput{Value: 0.350, From: "Ag/AgCl (Sat'd KCl)", To: domain.SHEName}); err != nil {
			t.Fatalf("log %d: %v", i, err)
		}
	}
	if err := uc.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	records, err := uc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("clear must empty the log, got %d records", len(records))
	}

	// Clearing an already-empty log is a no-op, not an error.
	if err := uc.Clear(ctx); err != nil {
		t.Fatalf("clear empty log: %v", err)
	}
}
