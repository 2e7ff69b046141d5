package service

import (
	"context"
	"fmt"

	"voltref/internal/modules/scale/domain"
	scaleout "voltref/internal/modules/scale/port/out"
	"voltref/internal/platform/slug"
)

// ScaleService owns the assembled reference table. Assembly happens once in
// the constructor; every later call reads the same immutable table.
type ScaleService struct {
	projector scaleout.ElectrodeProjector
	table     domain.Table
}

// NewScaleService merges sources in order (earlier wins on name or slug-ID
// conflicts) and validates the result. The first source is expected to be the
// built-in set, so SHE is always present regardless of what packs or plugins
// supply. Deduping on the slug too means a pack entry whose name differs from
// a built-in's only in punctuation is skipped rather than aborting assembly.
func NewScaleService(ctx context.Context, projector scaleout.ElectrodeProjector, sources ...scaleout.ElectrodeSource) (*ScaleService, error) {
	merged := make([]domain.Electrode, 0, 16)
	seenName := map[string]struct{}{}
	seenID := map[string]struct{}{}
	for _, source := range sources {
		entries, err := source.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list electrode source: %w", err)
		}
		for _, e := range entries {
			if e.ID == "" {
				e.ID = slug.Make(e.Name)
			}
			if _, ok := seenName[e.Name]; ok {
				continue
			}
			if _, ok := seenID[e.ID]; ok {
				continue
			}
			seenName[e.Name] = struct{}{}
			seenID[e.ID] = struct{}{}
			merged = append(merged, e)
		}
	}
	table, err := domain.NewTable(merged)
	if err != nil {
		return nil, err
	}
	return &ScaleService{projector: projector, table: table}, nil
}

func (s *ScaleService) Convert(_ context.Context, potential float64, from, to string) (float64, error) {
	return s.table.Convert(potential, from, to)
}

func (s *ScaleService) Lookup(_ context.Context, name string) (domain.Electrode, error) {
	return s.table.Lookup(name)
}

func (s *ScaleService) Get(_ context.Context, key string) (domain.Electrode, error) {
	return s.table.Get(key)
}

func (s *ScaleService) List(_ context.Context) []domain.Electrode {
	return s.table.List()
}

// Packs returns distinct pack names in first-appearance order with their
// entry counts.
func (s *ScaleService) Packs(_ context.Context) []domain.PackSummary {
	order := []string{}
	counts := map[string]int{}
	for _, e := range s.table.List() {
		if _, ok := counts[e.Pack]; !ok {
			order = append(order, e.Pack)
		}
		counts[e.Pack]++
	}
	out := make([]domain.PackSummary, 0, len(order))
	for _, name := range order {
		out = append(out, domain.PackSummary{Name: name, Count: counts[name]})
	}
	return out
}

// Reindex rebuilds the derived electrode index from the assembled table.
func (s *ScaleService) Reindex(ctx context.Context) error {
	if s.projector == nil {
		return nil
	}
	if err := s.projector.Reset(ctx); err != nil {
		return err
	}
	for _, e := range s.table.List() {
		if err := s.projector.Upsert(ctx, e); err != nil {
			return err
		}
	}
	return nil
}
