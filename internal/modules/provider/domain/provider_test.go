package domain_test

import (
	"strings"
	"testing"

	"voltref/internal/modules/provider/domain"
)

func TestManifestValidate(t *testing.T) {
	t.Parallel()
	sha := strings.Repeat("a", 64)
	cases := []struct {
		name      string
		manifest  domain.Manifest
		shouldErr bool
	}{
		{name: "valid", manifest: domain.Manifest{Name: "p", Version: "1", Binary: "/tmp/p", SHA256: sha, Enabled: true}, shouldErr: false},
		{name: "missing name", manifest: domain.Manifest{Version: "1", Binary: "/tmp/p", SHA256: sha, Enabled: true}, shouldErr: true},
		{name: "missing version", manifest: domain.Manifest{Name: "p", Binary: "/tmp/p", SHA256: sha, Enabled: true}, shouldErr: true},
		{name: "missing binary", manifest: domain.Manifest{Name: "p", Version: "1", SHA256: sha, Enabled: true}, shouldErr: true},
		{name: "missing sha", manifest: domain.Manifest{Name: "p", Version: "1", Binary: "/tmp/p", Enabled: true}, shouldErr: true},
		{name: "short sha", manifest: domain.Manifest{Name: "p", Version: "1", Binary: "/tmp/p", SHA256: "abc123", Enabled: true}, shouldErr: true},
		{name: "uppercase sha", manifest: domain.Manifest{Name: "p", Version: "1", Binary: "/tmp/p", SHA256: strings.Repeat("A", 64), Enabled: true}, shouldErr: true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := tc.manifest.Validate()
			if tc.shouldErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tc.shouldErr && err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
		})
	}
}

func TestEntryValidate(t *testing.T) {
	t.Parallel()
	if err := (domain.Entry{Name: "Ag/AgCl (1M KCl)", OffsetVolts: 0.235}).Validate(); err != nil {
		t.Fatalf("entry validate: %v", err)
	}
	if err := (domain.Entry{Name: "   "}).Validate(); err == nil {
		t.Fatalf("expected blank name to be rejected")
	}
	if err := (domain.Entry{Name: "Zero Offset", OffsetVolts: 0}).Validate(); err != nil {
		t.Fatalf("zero offset is a legal value: %v", err)
	}
}
