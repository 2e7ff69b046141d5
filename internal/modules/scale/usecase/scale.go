package usecase

import (
	"context"
	"fmt"
	"math"

	"voltref/internal/modules/scale/dto"
	scalein "voltref/internal/modules/scale/port/in"
	"voltref/internal/modules/scale/service"
	apperrors "voltref/internal/platform/errors"
)

type Interactor struct {
	svc *service.ScaleService
}

func NewInteractor(svc *service.ScaleService) scalein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Convert(ctx context.Context, input dto.ConvertInput) (dto.ConvertOutput, error) {
	if math.IsNaN(input.Value) || math.IsInf(input.Value, 0) {
		return dto.ConvertOutput{}, fmt.Errorf("%w: potential must be finite", apperrors.ErrInvalidInput)
	}
	if input.From == "" || input.To == "" {
		return dto.ConvertOutput{}, fmt.Errorf("%w: both electrode names are required", apperrors.ErrInvalidInput)
	}
	src, err := i.svc.Lookup(ctx, input.From)
	if err != nil {
		return dto.ConvertOutput{}, err
	}
	result, err := i.svc.Convert(ctx, input.Value, input.From, input.To)
	if err != nil {
		return dto.ConvertOutput{}, err
	}
	return dto.ConvertOutput{
		Value:  input.Value,
		VsSHE:  input.Value + src.OffsetVolts,
		Result: result,
		From:   input.From,
		To:     input.To,
	}, nil
}

func (i *Interactor) ListElectrodes(ctx context.Context) ([]dto.ElectrodeOutput, error) {
	entries := i.svc.List(ctx)
	out := make([]dto.ElectrodeOutput, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.ElectrodeOutput{ID: e.ID, Name: e.Name, OffsetVolts: e.OffsetVolts, Pack: e.Pack})
	}
	return out, nil
}

func (i *Interactor) GetElectrode(ctx context.Context, key string) (dto.ElectrodeOutput, error) {
	if key == "" {
		return dto.ElectrodeOutput{}, fmt.Errorf("%w: electrode key is required", apperrors.ErrInvalidInput)
	}
	e, err := i.svc.Get(ctx, key)
	if err != nil {
		return dto.ElectrodeOutput{}, err
	}
	return dto.ElectrodeOutput{ID: e.ID, Name: e.Name, OffsetVolts: e.OffsetVolts, Pack: e.Pack}, nil
}

func (i *Interactor) ListPacks(ctx context.Context) ([]dto.PackOutput, error) {
	packs := i.svc.Packs(ctx)
	out := make([]dto.PackOutput, 0, len(packs))
	for _, p := range packs {
		out = append(out, dto.PackOutput{Name: p.Name, Count: p.Count})
	}
	return out, nil
}

func (i *Interactor) Reindex(ctx context.Context) error {
	return i.svc.Reindex(ctx)
}
