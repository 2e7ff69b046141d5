package in

import (
	"context"

	"voltref/internal/modules/scale/dto"
)

type Usecase interface {
	Convert(ctx context.Context, input dto.ConvertInput) (dto.ConvertOutput, error)
	ListElectrodes(ctx context.Context) ([]dto.ElectrodeOutput, error)
	GetElectrode(ctx context.Context, key string) (dto.ElectrodeOutput, error)
	ListPacks(ctx context.Context) ([]dto.PackOutput, error)
	Reindex(ctx context.Context) error
}
