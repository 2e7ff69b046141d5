package in

import (
	"context"

	"voltref/internal/modules/provider/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.ProviderInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
	Electrodes(ctx context.Context, providerName string) ([]dto.Electrode, error)
	// Collect gathers electrodes from every enabled, healthy provider.
	// Unhealthy providers are skipped, never fatal.
	Collect(ctx context.Context) ([]dto.Electrode, error)
}
