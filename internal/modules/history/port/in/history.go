package in

import (
	"context"

	"voltref/internal/modules/history/dto"
)

type Usecase interface {
	Log(ctx context.Context, input dto.LogInput) (dto.LogOutput, error)
	List(ctx context.Context) ([]dto.RecordOutput, error)
	Clear(ctx context.Context) error
}
