package out

import (
	"context"

	"voltref/internal/modules/scale/domain"
)

// ElectrodeSource contributes entries to the table assembled at startup.
// Sources are consulted in registration order; an earlier source wins on
// name conflicts.
type ElectrodeSource interface {
	List(ctx context.Context) ([]domain.Electrode, error)
}

// ElectrodeProjector maintains the derived, rebuildable electrode index.
type ElectrodeProjector interface {
	Reset(ctx context.Context) error
	Upsert(ctx context.Context, electrode domain.Electrode) error
}
