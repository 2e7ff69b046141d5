package in

import (
	"context"

	"voltref/internal/modules/scale/dto"
	scalein "voltref/internal/modules/scale/port/in"
)

// TUIHandler narrows the usecase surface to what the terminal UI consumes.
type TUIHandler struct {
	usecase scalein.Usecase
}

func NewTUIHandler(usecase scalein.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Convert(ctx context.Context, value float64, from, to string) (dto.ConvertOutput, error) {
	return h.usecase.Convert(ctx, dto.ConvertInput{Value: value, From: from, To: to})
}

func (h TUIHandler) ListElectrodes(ctx context.Context) ([]dto.ElectrodeOutput, error) {
	return h.usecase.ListElectrodes(ctx)
}

func (h TUIHandler) Reindex(ctx context.Context) error {
	return h.usecase.Reindex(ctx)
}
