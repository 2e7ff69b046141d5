package out

import (
	"context"

	"voltref/internal/modules/provider/domain"
)

type ManifestStore interface {
	Load(ctx context.Context) ([]domain.Manifest, error)
}

type Host interface {
	CheckLifecycle(ctx context.Context, manifest domain.Manifest) error
	GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error)
	ListElectrodes(ctx context.Context, manifest domain.Manifest) ([]domain.Entry, error)
}
