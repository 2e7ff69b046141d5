package out

import (
	"context"
	"sync"

	"voltref/internal/modules/history/domain"
	historyout "voltref/internal/modules/history/port/out"
)

// MemoryRecordStore holds the session log. The mutex is there because
// bubbletea runs commands on their own goroutines, not because the log is
// shared between sessions.
type MemoryRecordStore struct {
	mu      sync.Mutex
	records []domain.Record
}

func NewMemoryRecordStore() historyout.RecordStore {
	return &MemoryRecordStore{}
}

func (s *MemoryRecordStore) Append(_ context.Context, record domain.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

func (s *MemoryRecordStore) List(_ context.Context) ([]domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Record, len(s.records))
	copy(out, s.records)
	return out, nil
}

func (s *MemoryRecordStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	return nil
}
