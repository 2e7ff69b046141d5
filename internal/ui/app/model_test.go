package app

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	histdto "voltref/internal/modules/history/dto"
	scaledto "voltref/internal/modules/scale/dto"
	convertview "voltref/internal/ui/views/convert"
	referenceview "voltref/internal/ui/views/reference"
)

type fakeScalePort struct {
	electrodes []scaledto.ElectrodeOutput
	reindexes  int
}

func (f *fakeScalePort) ListElectrodes(context.Context) ([]scaledto.ElectrodeOutput, error) {
	return f.electrodes, nil
}

func (f *fakeScalePort) Reindex(context.Context) error {
	f.reindexes++
	return nil
}

type fakeHistoryPort struct {
	records []histdto.RecordOutput
}

func (f *fakeHistoryPort) Log(_ context.Context, value float64, from, to string) (histdto.LogOutput, error) {
	out := histdto.LogOutput{Input: value, From: from, To: to, Result: value, At: time.Now()}
	f.records = append(f.records, histdto.RecordOutput(out))
	return out, nil
}

func (f *fakeHistoryPort) List(context.Context) ([]histdto.RecordOutput, error) {
	return f.records, nil
}

func (f *fakeHistoryPort) Clear(context.Context) error {
	f.records = nil
	return nil
}

func seedElectrodes() []scaledto.ElectrodeOutput {
	return []scaledto.ElectrodeOutput{
		{ID: "she-standard-hydrogen", Name: "SHE (Standard Hydrogen)", OffsetVolts: 0, Pack: "builtin"},
		{ID: "ag-agcl-sat-d-kcl", Name: "Ag/AgCl (Sat'd KCl)", OffsetVolts: 0.197, Pack: "builtin"},
	}
}

func newTestModel(scale *fakeScalePort, history *fakeHistoryPort) Model {
	m := NewModel(scale, history, convertview.Defaults{
		Value: 0.350,
		From:  "Ag/AgCl (Sat'd KCl)",
		To:    "SHE (Standard Hydrogen)",
	})
	return apply(m, tea.WindowSizeMsg{Width: 100, Height: 40})
}

func apply(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

// run executes a command and feeds every resulting message back through
// Update, the way the Bubble Tea runtime would.
func run(m Model, cmd tea.Cmd) Model {
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			m = run(m, c)
		}
		return m
	default:
		next, nextCmd := m.Update(msg)
		return run(next.(Model), nextCmd)
	}
}

func TestConversionResultReachesHistoryTab(t *testing.T) {
	t.Parallel()
	scale := &fakeScalePort{electrodes: seedElectrodes()}
	history := &fakeHistoryPort{}
	m := newTestModel(scale, history)

	// A conversion completes while the Convert tab is active: the store has
	// the record and ConvertedMsg bubbles up through the root model.
	at := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)
	out := histdto.LogOutput{
		Input: 0.350, From: "Ag/AgCl (Sat'd KCl)", To: "SHE (Standard Hydrogen)",
		Result: 0.547, At: at,
	}
	history.records = append(history.records, histdto.RecordOutput(out))

	next, cmd := m.Update(convertview.ConvertedMsg{Out: out})
	m = run(next.(Model), cmd)

	if !strings.Contains(m.View(), "+0.547 V vs. SHE (Standard Hydrogen)") {
		t.Fatalf("status bar must show the conversion result")
	}

	m = apply(m, tea.KeyMsg{Type: tea.KeyTab})
	m = apply(m, tea.KeyMsg{Type: tea.KeyTab})
	view := m.View()
	if strings.Contains(view, "No conversions yet") {
		t.Fatalf("history tab still shows the empty state after a conversion")
	}
	if !strings.Contains(view, "+0.547 V") {
		t.Fatalf("history tab must render the logged conversion, got:\n%s", view)
	}
}

func TestReferenceTableLoadsWhileConvertTabIsActive(t *testing.T) {
	t.Parallel()
	scale := &fakeScalePort{electrodes: seedElectrodes()}
	m := newTestModel(scale, &fakeHistoryPort{})

	// The Init-time load result lands while the default Convert tab has
	// focus; it must still reach the reference view.
	next, cmd := m.Update(referenceview.ElectrodesLoadedMsg{Electrodes: scale.electrodes})
	m = run(next.(Model), cmd)

	m = apply(m, tea.KeyMsg{Type: tea.KeyTab})
	view := m.View()
	if strings.Contains(view, "Loading electrode table") {
		t.Fatalf("reference tab is stuck on the loading spinner")
	}
	if !strings.Contains(view, "SHE (Standard Hydrogen)") {
		t.Fatalf("reference tab must list the loaded electrodes, got:\n%s", view)
	}
}

func TestHelpToggleOnConvertTab(t *testing.T) {
	t.Parallel()
	m := newTestModel(&fakeScalePort{electrodes: seedElectrodes()}, &fakeHistoryPort{})

	// While the value input is focused, ? belongs to the text field.
	m = apply(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	if m.showHelp {
		t.Fatalf("? must not open help while the value input is focused")
	}

	// Move focus to the from-picker; now ? toggles the overlay.
	m = apply(m, tea.KeyMsg{Type: tea.KeyDown})
	m = apply(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	if !m.showHelp {
		t.Fatalf("? must open help from the Convert tab when the value input is not focused")
	}
	m = apply(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	if m.showHelp {
		t.Fatalf("? must close the help overlay again")
	}
}
