package usecase

import (
	"context"

	historydto "voltref/internal/modules/history/dto"
	historyin "voltref/internal/modules/history/port/in"
	"voltref/internal/modules/history/service"
	scaledto "voltref/internal/modules/scale/dto"
	scalein "voltref/internal/modules/scale/port/in"
)

type Interactor struct {
	svc   *service.HistoryService
	scale scalein.Usecase
}

func NewInteractor(svc *service.HistoryService, scale scalein.Usecase) historyin.Usecase {
	return &Interactor{svc: svc, scale: scale}
}

// Log converts and, only on success, appends one record. A failed
// conversion leaves the log untouched.
func (i *Interactor) Log(ctx context.Context, input historydto.LogInput) (historydto.LogOutput, error) {
	converted, err := i.scale.Convert(ctx, scaledto.ConvertInput{Value: input.Value, From: input.From, To: input.To})
	if err != nil {
		return historydto.LogOutput{}, err
	}
	record, err := i.svc.Log(ctx, converted.Value, converted.From, converted.To, converted.Result)
	if err != nil {
		return historydto.LogOutput{}, err
	}
	return historydto.LogOutput{
		RecordID: record.ID,
		Input:    record.Input,
		From:     record.From,
		To:       record.To,
		Result:   record.Result,
		At:       record.At,
	}, nil
}

func (i *Interactor) List(ctx context.Context) ([]historydto.RecordOutput, error) {
	records, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]historydto.RecordOutput, 0, len(records))
	for _, r := range records {
		out = append(out, historydto.RecordOutput{
			RecordID: r.ID,
			Input:    r.Input,
			From:     r.From,
			To:       r.To,
			Result:   r.Result,
			At:       r.At,
		})
	}
	return out, nil
}

func (i *Interactor) Clear(ctx context.Context) error {
	return i.svc.Clear(ctx)
}
