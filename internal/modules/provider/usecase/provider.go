package usecase

import (
	"context"

	"voltref/internal/modules/provider/dto"
	providerin "voltref/internal/modules/provider/port/in"
	"voltref/internal/modules/provider/service"
)

type Interactor struct {
	svc *service.ProviderService
}

func NewInteractor(svc *service.ProviderService) providerin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.ProviderInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return i.svc.Doctor(ctx)
}

func (i *Interactor) Electrodes(ctx context.Context, providerName string) ([]dto.Electrode, error) {
	return i.svc.Electrodes(ctx, providerName)
}

func (i *Interactor) Collect(ctx context.Context) ([]dto.Electrode, error) {
	return i.svc.Collect(ctx)
}
