package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrProviderDisabled = errors.New("provider is disabled")
	ErrChecksumMismatch = errors.New("provider checksum mismatch")
	ErrProviderTimeout  = errors.New("provider timeout")
)

var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

// Manifest describes one electrode-provider plugin binary.
type Manifest struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Binary  string `json:"binary"`
	SHA256  string `json:"sha256"`
	Enabled bool   `json:"enabled"`
}

func (m Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("provider name is required")
	}
	if m.Version == "" {
		return fmt.Errorf("provider version is required")
	}
	if m.Binary == "" {
		return fmt.Errorf("provider binary path is required")
	}
	if !sha256Pattern.MatchString(m.SHA256) {
		return fmt.Errorf("provider sha256 must be lowercase 64-char hex")
	}
	return nil
}

// Metadata is what a running provider reports about itself.
type Metadata struct {
	Name    string
	Version string
}

// Entry is one electrode served by a provider, offset in volts vs. SHE
// at 25°C.
type Entry struct {
	Name        string
	OffsetVolts float64
}

func (e Entry) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("entry name is required")
	}
	return nil
}
