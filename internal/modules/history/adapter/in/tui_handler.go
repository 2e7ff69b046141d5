package in

import (
	"context"

	"voltref/internal/modules/history/dto"
	historyin "voltref/internal/modules/history/port/in"
)

// TUIHandler is the session log surface the terminal UI talks to. There is
// no CLI twin: one-shot invocations end their session before a log could be
// read back.
type TUIHandler struct {
	usecase historyin.Usecase
}

func NewTUIHandler(usecase historyin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Log(ctx context.Context, value float64, from, to string) (dto.LogOutput, error) {
	return h.usecase.Log(ctx, dto.LogInput{Value: value, From: from, To: to})
}

func (h TUIHandler) List(ctx context.Context) ([]dto.RecordOutput, error) {
	return h.usecase.List(ctx)
}

func (h TUIHandler) Clear(ctx context.Context) error {
	return h.usecase.Clear(ctx)
}
