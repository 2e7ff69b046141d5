package domain

import (
	"fmt"
	"strings"

	apperrors "voltref/internal/platform/errors"
	"voltref/internal/platform/slug"
)

const (
	// SHEName is the zero point every offset is defined against. The table
	// refuses to assemble without it.
	SHEName = "SHE (Standard Hydrogen)"

	BuiltinPack = "builtin"
)

// Electrode is one reference half-cell with its constant potential offset
// against SHE at 25°C.
type Electrode struct {
	ID          string
	Name        string
	OffsetVolts float64
	Pack        string
}

func (e Electrode) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("electrode name is required")
	}
	if strings.TrimSpace(e.Pack) == "" {
		return fmt.Errorf("electrode pack is required")
	}
	return nil
}

// Builtin returns the seed set, offsets in volts vs. SHE at 25°C.
// Order is display order only; it carries no semantic weight.
func Builtin() []Electrode {
	names := []struct {
		name   string
		offset float64
	}{
		{"NHE (Normal Hydrogen)", 0.000},
		{SHEName, 0.000},
		{"Calomel (Sat'd KCl)", 0.241},
		{"Calomel (3.5M KCl)", 0.250},
		{"Calomel (1M KCl)", 0.280},
		{"Calomel (0.1M KCl)", 0.334},
		{"Ag/AgCl (Sat'd KCl)", 0.197},
		{"Ag/AgCl (3.5M KCl)", 0.205},
		{"Ag/AgCl (3M KCl)", 0.210},
		{"Ag/AgCl (0.1M KCl)", 0.288},
		{"Mercury/Mercurous Sulfate (0.5M H₂SO₄)", 0.682},
		{"Mercury/Mercurous Sulfate (1M H₂SO₄)", 0.674},
		{"Mercury/Mercurous Sulfate (Sat'd K₂SO₄)", 0.640},
		{"Hg/HgO (1M NaOH)", 0.098},
		{"Hg/HgO (20% KOH)", 0.095},
		{"Silver/Silver Sulfate (Sat'd K₂SO₄)", 0.654},
	}
	out := make([]Electrode, 0, len(names))
	for _, n := range names {
		out = append(out, Electrode{
			ID:          slug.Make(n.name),
			Name:        n.name,
			OffsetVolts: n.offset,
			Pack:        BuiltinPack,
		})
	}
	return out
}

// Table is the immutable name→electrode mapping, assembled once at process
// start and never mutated afterwards.
type Table struct {
	entries []Electrode
	byName  map[string]int
	byID    map[string]int
}

// NewTable validates entries and indexes them by name and slug ID.
// Exactly one entry per name; SHE must be present with offset 0.000.
func NewTable(entries []Electrode) (Table, error) {
	t := Table{
		entries: make([]Electrode, 0, len(entries)),
		byName:  make(map[string]int, len(entries)),
		byID:    make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return Table{}, err
		}
		if e.ID == "" {
			e.ID = slug.Make(e.Name)
		}
		if _, ok := t.byName[e.Name]; ok {
			return Table{}, fmt.Errorf("duplicate electrode name: %s", e.Name)
		}
		if _, ok := t.byID[e.ID]; ok {
			return Table{}, fmt.Errorf("duplicate electrode id: %s", e.ID)
		}
		t.byName[e.Name] = len(t.entries)
		t.byID[e.ID] = len(t.entries)
		t.entries = append(t.entries, e)
	}
	she, ok := t.byName[SHEName]
	if !ok {
		return Table{}, fmt.Errorf("table is missing %s", SHEName)
	}
	if t.entries[she].OffsetVolts != 0 {
		return Table{}, fmt.Errorf("%s offset must be 0.000, got %.3f", SHEName, t.entries[she].OffsetVolts)
	}
	return t, nil
}

// Lookup resolves a display name.
func (t Table) Lookup(name string) (Electrode, error) {
	idx, ok := t.byName[name]
	if !ok {
		return Electrode{}, fmt.Errorf("%w: %q", apperrors.ErrUnknownElectrode, name)
	}
	return t.entries[idx], nil
}

// Get resolves a slug ID first, then falls back to the display name.
func (t Table) Get(key string) (Electrode, error) {
	if idx, ok := t.byID[key]; ok {
		return t.entries[idx], nil
	}
	return t.Lookup(key)
}

// List returns the entries in display order.
func (t Table) List() []Electrode {
	out := make([]Electrode, len(t.entries))
	copy(out, t.entries)
	return out
}

func (t Table) Len() int { return len(t.entries) }

// Convert shifts a potential from one scale to another by pivoting through
// SHE: vsSHE = potential + offset(from); result = vsSHE − offset(to).
func (t Table) Convert(potential float64, from, to string) (float64, error) {
	src, err := t.Lookup(from)
	if err != nil {
		return 0, err
	}
	dst, err := t.Lookup(to)
	if err != nil {
		return 0, err
	}
	return potential + src.OffsetVolts - dst.OffsetVolts, nil
}
