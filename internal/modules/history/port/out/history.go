package out

import (
	"context"

	"voltref/internal/modules/history/domain"
)

type RecordStore interface {
	Append(ctx context.Context, record domain.Record) error
	List(ctx context.Context) ([]domain.Record, error)
	Clear(ctx context.Context) error
}
