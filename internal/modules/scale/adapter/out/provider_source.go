package out

import (
	"context"

	providerin "voltref/internal/modules/provider/port/in"
	"voltref/internal/modules/scale/domain"
	scaleout "voltref/internal/modules/scale/port/out"
	"voltref/internal/platform/slug"
)

// ProviderSource bridges the provider module into the table assembly.
// Collect already skips unhealthy plugins, so a broken provider costs its
// electrodes but never the startup.
type ProviderSource struct {
	providers providerin.Usecase
}

func NewProviderSource(providers providerin.Usecase) scaleout.ElectrodeSource {
	return &ProviderSource{providers: providers}
}

func (s *ProviderSource) List(ctx context.Context) ([]domain.Electrode, error) {
	if s.providers == nil {
		return nil, nil
	}
	collected, err := s.providers.Collect(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Electrode, 0, len(collected))
	for _, e := range collected {
		out = append(out, domain.Electrode{
			ID:          slug.Make(e.Name),
			Name:        e.Name,
			OffsetVolts: e.OffsetVolts,
			Pack:        "plugin:" + e.Plugin,
		})
	}
	return out, nil
}
