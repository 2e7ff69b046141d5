package out

import (
	"context"

	"voltref/internal/modules/scale/domain"
	scaleout "voltref/internal/modules/scale/port/out"
)

// BuiltinSource serves the compiled-in electrode set. It must be registered
// first so its names win over packs and plugins.
type BuiltinSource struct{}

func NewBuiltinSource() scaleout.ElectrodeSource {
	return BuiltinSource{}
}

func (BuiltinSource) List(_ context.Context) ([]domain.Electrode, error) {
	return domain.Builtin(), nil
}
