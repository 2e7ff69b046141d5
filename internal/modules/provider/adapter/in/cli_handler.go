package in

import (
	"context"

	"voltref/internal/modules/provider/dto"
	providerin "voltref/internal/modules/provider/port/in"
)

type CLIHandler struct {
	usecase providerin.Usecase
}

func NewCLIHandler(usecase providerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.ProviderInfo, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return h.usecase.Doctor(ctx)
}

func (h CLIHandler) Electrodes(ctx context.Context, providerName string) ([]dto.Electrode, error) {
	return h.usecase.Electrodes(ctx, providerName)
}
