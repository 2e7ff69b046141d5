package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"voltref/internal/modules/provider/domain"
	"voltref/internal/modules/provider/dto"
	providerout "voltref/internal/modules/provider/port/out"
)

type ProviderService struct {
	store providerout.ManifestStore
	host  providerout.Host
}

func NewProviderService(store providerout.ManifestStore, host providerout.Host) *ProviderService {
	return &ProviderService{store: store, host: host}
}

func (s *ProviderService) List(ctx context.Context) ([]dto.ProviderInfo, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProviderInfo, 0, len(manifests))
	for _, m := range manifests {
		out = append(out, dto.ProviderInfo{Name: m.Name, Version: m.Version, Enabled: m.Enabled, Binary: m.Binary})
	}
	return out, nil
}

func (s *ProviderService) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DoctorResult, 0, len(manifests))
	for _, m := range manifests {
		result := dto.DoctorResult{Name: m.Name}
		if err := m.Validate(); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		binaryOK := fileExists(m.Binary)
		result.BinaryReachable = binaryOK
		checksumOK := false
		if binaryOK {
			checksumOK = checksumMatches(m.Binary, m.SHA256) == nil
		}
		result.ChecksumValid = checksumOK
		if binaryOK && checksumOK && m.Enabled && s.host != nil {
			if err := s.host.CheckLifecycle(ctx, m); err != nil {
				result.Error = err.Error()
			} else {
				result.LifecycleOK = true
			}
		}
		if !binaryOK {
			result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
		}
		if binaryOK && !checksumOK {
			result.Error = "checksum mismatch"
		}
		results = append(results, result)
	}
	return results, nil
}

// Electrodes queries one provider by name. Unlike Collect, failures here
// surface to the caller because the user asked for this provider.
func (s *ProviderService) Electrodes(ctx context.Context, providerName string) ([]dto.Electrode, error) {
	manifest, err := s.getRunnableManifest(ctx, providerName)
	if err != nil {
		return nil, err
	}
	entries, err := s.host.ListElectrodes(ctx, manifest)
	if err != nil {
		return nil, err
	}
	out := make([]dto.Electrode, 0, len(entries))
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("provider %s: %w", providerName, err)
		}
		out = append(out, dto.Electrode{Plugin: providerName, Name: e.Name, OffsetVolts: e.OffsetVolts})
	}
	return out, nil
}

// Collect gathers electrodes from every enabled provider, skipping any
// that fails validation, checksum, or the call itself. A broken provider
// costs its electrodes, not the startup.
func (s *ProviderService) Collect(ctx context.Context) ([]dto.Electrode, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	var out []dto.Electrode
	for _, m := range manifests {
		if !m.Enabled {
			continue
		}
		if m.Validate() != nil || checksumMatches(m.Binary, m.SHA256) != nil {
			continue
		}
		entries, err := s.host.ListElectrodes(ctx, m)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.Validate() != nil {
				continue
			}
			out = append(out, dto.Electrode{Plugin: m.Name, Name: e.Name, OffsetVolts: e.OffsetVolts})
		}
	}
	return out, nil
}

func (s *ProviderService) loadValidated(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	seenNames := map[string]struct{}{}
	for _, manifest := range manifests {
		if err := manifest.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seenNames[manifest.Name]; ok {
			return nil, fmt.Errorf("duplicate provider name: %s", manifest.Name)
		}
		seenNames[manifest.Name] = struct{}{}
	}
	return manifests, nil
}

func (s *ProviderService) getRunnableManifest(ctx context.Context, providerName string) (domain.Manifest, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return domain.Manifest{}, err
	}
	manifest := domain.Manifest{}
	found := false
	for _, item := range manifests {
		if item.Name == providerName {
			manifest = item
			found = true
			break
		}
	}
	if !found {
		return domain.Manifest{}, fmt.Errorf("provider %q not found", providerName)
	}
	if !manifest.Enabled {
		return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrProviderDisabled, providerName)
	}
	if err := checksumMatches(manifest.Binary, manifest.SHA256); err != nil {
		return domain.Manifest{}, err
	}
	if s.host != nil {
		if err := s.host.CheckLifecycle(ctx, manifest); err != nil {
			if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
				return domain.Manifest{}, fmt.Errorf("%w: %s", domain.ErrProviderTimeout, providerName)
			}
			return domain.Manifest{}, err
		}
	}
	return manifest, nil
}

func checksumMatches(path string, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read provider binary: %w", err)
	}
	hash := sha256.Sum256(payload)
	actual := hex.EncodeToString(hash[:])
	if actual != expected {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
