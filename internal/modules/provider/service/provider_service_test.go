package service_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"voltref/internal/modules/provider/domain"
	"voltref/internal/modules/provider/service"
)

type fakeManifestStore struct {
	manifests []domain.Manifest
	err       error
}

func (s *fakeManifestStore) Load(context.Context) ([]domain.Manifest, error) {
	return s.manifests, s.err
}

type fakeHost struct {
	entries      map[string][]domain.Entry
	lifecycleErr error
	listErr      error
	lifeCalls    int
}

func (h *fakeHost) CheckLifecycle(_ context.Context, m domain.Manifest) error {
	h.lifeCalls++
	return h.lifecycleErr
}

func (h *fakeHost) GetMetadata(_ context.Context, m domain.Manifest) (domain.Metadata, error) {
	return domain.Metadata{Name: m.Name, Version: m.Version}, nil
}

func (h *fakeHost) ListElectrodes(_ context.Context, m domain.Manifest) ([]domain.Entry, error) {
	if h.listErr != nil {
		return nil, h.listErr
	}
	return h.entries[m.Name], nil
}

func writeBinary(t *testing.T, contents string) (string, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "provider-bin")
	if err := os.WriteFile(path, []byte(contents), 0o755); err != nil {
		t.Fatalf("write provider binary: %v", err)
	}
	sum := sha256.Sum256([]byte(contents))
	return path, hex.EncodeToString(sum[:])
}

func TestDoctorDetectsChecksumMismatch(t *testing.T) {
	t.Parallel()
	path, _ := writeBinary(t, "not-the-expected-payload")
	store := &fakeManifestStore{manifests: []domain.Manifest{{
		Name:    "labpack",
		Version: "1.0.0",
		Binary:  path,
		SHA256:  strings.Repeat("0", 64),
		Enabled: true,
	}}}

	svc := service.NewProviderService(store, &fakeHost{})
	results, err := svc.Doctor(context.Background())
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected one result, got %d", len(results))
	}
	if !results[0].BinaryReachable {
		t.Fatalf("binary exists, should be reachable")
	}
	if results[0].ChecksumValid {
		t.Fatalf("expected checksum mismatch")
	}
	if results[0].LifecycleOK {
		t.Fatalf("lifecycle must not run past a bad checksum")
	}
}

func TestDoctorReportsHealthyProvider(t *testing.T) {
	t.Parallel()
	path, sum := writeBinary(t, "payload")
	store := &fakeManifestStore{manifests: []domain.Manifest{{
		Name:    "labpack",
		Version: "1.0.0",
		Binary:  path,
		SHA256:  sum,
		Enabled: true,
	}}}
	host := &fakeHost{}

	svc := service.NewProviderService(store, host)
	results, err := svc.Doctor(context.Background())
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	r := results[0]
	if !r.BinaryReachable || !r.ChecksumValid || !r.LifecycleOK {
		t.Fatalf("expected fully healthy result, got %+v", r)
	}
	if host.lifeCalls != 1 {
		t.Fatalf("expected one lifecycle check, got %d", host.lifeCalls)
	}
}

func TestListRejectsDuplicateProviderNames(t *testing.T) {
	t.Parallel()
	sha := strings.Repeat("a", 64)
	store := &fakeManifestStore{manifests: []domain.Manifest{
		{Name: "labpack", Version: "1", Binary: "/tmp/a", SHA256: sha},
		{Name: "labpack", Version: "2", Binary: "/tmp/b", SHA256: sha},
	}}

	svc := service.NewProviderService(store, &fakeHost{})
	if _, err := svc.List(context.Background()); err == nil {
		t.Fatalf("expected duplicate name error")
	}
}

func TestElectrodesRefusesDisabledProvider(t *testing.T) {
	t.Parallel()
	path, sum := writeBinary(t, "payload")
	store := &fakeManifestStore{manifests: []domain.Manifest{{
		Name:    "labpack",
		Version: "1.0.0",
		Binary:  path,
		SHA256:  sum,
		Enabled: false,
	}}}

	svc := service.NewProviderService(store, &fakeHost{})
	_, err := svc.Electrodes(context.Background(), "labpack")
	if !errors.Is(err, domain.ErrProviderDisabled) {
		t.Fatalf("expected ErrProviderDisabled, got %v", err)
	}
}

func TestCollectSkipsBrokenProvidersAndKeepsGoodOnes(t *testing.T) {
	t.Parallel()
	goodPath, goodSum := writeBinary(t, "good payload")
	badPath, _ := writeBinary(t, "tampered payload")
	store := &fakeManifestStore{manifests: []domain.Manifest{
		{Name: "good", Version: "1", Binary: goodPath, SHA256: goodSum, Enabled: true},
		{Name: "tampered", Version: "1", Binary: badPath, SHA256: strings.Repeat("0", 64), Enabled: true},
		{Name: "disabled", Version: "1", Binary: goodPath, SHA256: goodSum, Enabled: false},
	}}
	host := &fakeHost{entries: map[string][]domain.Entry{
		"good":     {{Name: "Ag/AgCl (1M KCl)", OffsetVolts: 0.235}, {Name: "  ", OffsetVolts: 0.1}},
		"tampered": {{Name: "Should Never Appear", OffsetVolts: 9.9}},
		"disabled": {{Name: "Should Never Appear Either", OffsetVolts: 9.9}},
	}}

	svc := service.NewProviderService(store, host)
	electrodes, err := svc.Collect(context.Background())
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if len(electrodes) != 1 {
		t.Fatalf("expected one surviving electrode, got %d", len(electrodes))
	}
	if electrodes[0].Plugin != "good" || electrodes[0].Name != "Ag/AgCl (1M KCl)" {
		t.Fatalf("unexpected electrode: %+v", electrodes[0])
	}
}

func TestCollectToleratesProviderCallFailure(t *testing.T) {
	t.Parallel()
	path, sum := writeBinary(t, "payload")
	store := &fakeManifestStore{manifests: []domain.Manifest{{
		Name:    "flaky",
		Version: "1",
		Binary:  path,
		SHA256:  sum,
		Enabled: true,
	}}}
	host := &fakeHost{listErr: errors.New("plugin crashed")}

	svc := service.NewProviderService(store, host)
	electrodes, err := svc.Collect(context.Background())
	if err != nil {
		t.Fatalf("a broken provider must not fail collect: %v", err)
	}
	if len(electrodes) != 0 {
		t.Fatalf("expected no electrodes, got %d", len(electrodes))
	}
}
