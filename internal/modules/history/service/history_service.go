package service

import (
	"context"

	"voltref/internal/modules/history/domain"
	historyout "voltref/internal/modules/history/port/out"
	"voltref/internal/platform/clock"
	"voltref/internal/platform/id"
)

type HistoryService struct {
	clock clock.Clock
	idGen id.Generator
	store historyout.RecordStore
}

func NewHistoryService(clock clock.Clock, idGen id.Generator, store historyout.RecordStore) *HistoryService {
	return &HistoryService{clock: clock, idGen: idGen, store: store}
}

// Log appends one record for an already-performed conversion.
func (s *HistoryService) Log(ctx context.Context, input float64, from, to string, result float64) (domain.Record, error) {
	record := domain.Record{
		ID:     s.idGen.New(),
		Input:  input,
		From:   from,
		To:     to,
		Result: result,
		At:     s.clock.Now(),
	}
	if err := s.store.Append(ctx, record); err != nil {
		return domain.Record{}, err
	}
	return record, nil
}

func (s *HistoryService) List(ctx context.Context) ([]domain.Record, error) {
	return s.store.List(ctx)
}

// Clear drops the whole log. Partial deletion does not exist.
func (s *HistoryService) Clear(ctx context.Context) error {
	return s.store.Clear(ctx)
}
