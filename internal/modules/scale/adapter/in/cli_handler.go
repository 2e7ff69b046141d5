package in

import (
	"context"

	"voltref/internal/modules/scale/dto"
	scalein "voltref/internal/modules/scale/port/in"
)

type CLIHandler struct {
	usecase scalein.Usecase
}

func NewCLIHandler(usecase scalein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Convert(ctx context.Context, value float64, from, to string) (dto.ConvertOutput, error) {
	return h.usecase.Convert(ctx, dto.ConvertInput{Value: value, From: from, To: to})
}

func (h CLIHandler) ListElectrodes(ctx context.Context) ([]dto.ElectrodeOutput, error) {
	return h.usecase.ListElectrodes(ctx)
}

func (h CLIHandler) GetElectrode(ctx context.Context, key string) (dto.ElectrodeOutput, error) {
	return h.usecase.GetElectrode(ctx, key)
}

func (h CLIHandler) ListPacks(ctx context.Context) ([]dto.PackOutput, error) {
	return h.usecase.ListPacks(ctx)
}

func (h CLIHandler) Reindex(ctx context.Context) error {
	return h.usecase.Reindex(ctx)
}
