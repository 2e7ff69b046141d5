package convert

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	histdto "voltref/internal/modules/history/dto"
	scaledto "voltref/internal/modules/scale/dto"
	"voltref/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type ConvertPort interface {
	ListElectrodes(ctx context.Context) ([]scaledto.ElectrodeOutput, error)
	Log(ctx context.Context, value float64, from, to string) (histdto.LogOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type ElectrodesLoadedMsg struct {
	Electrodes []scaledto.ElectrodeOutput
	Err        error
}

// ConvertedMsg bubbles to the app model so it can update the status bar and
// nudge the History tab to reload.
type ConvertedMsg struct {
	Out histdto.LogOutput
	Err error
}

// ─── model ───────────────────────────────────────────────────────────────────

type field int

const (
	fieldValue field = iota
	fieldFrom
	fieldTo
	fieldCount
)

// Defaults seed the form on startup, typically from config.yaml.
type Defaults struct {
	Value float64
	From  string
	To    string
}

type Model struct {
	port       ConvertPort
	defaults   Defaults
	valueInput textinput.Model
	electrodes []scaledto.ElectrodeOutput
	fromIdx    int
	toIdx      int
	focused    field
	last       histdto.LogOutput
	hasResult  bool
	errText    string
	width      int
	height     int
}

func New(port ConvertPort, defaults Defaults) Model {
	ti := textinput.New()
	ti.Placeholder = "potential in volts"
	ti.CharLimit = 32
	ti.SetValue(strconv.FormatFloat(defaults.Value, 'f', 3, 64))
	ti.Focus()

	return Model{
		port:       port,
		defaults:   defaults,
		valueInput: ti,
		focused:    fieldValue,
	}
}

func (m Model) Init() tea.Cmd {
	return m.loadElectrodesCmd()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ElectrodesLoadedMsg:
		if msg.Err != nil {
			m.errText = msg.Err.Error()
			return m, nil
		}
		m.electrodes = msg.Electrodes
		m.fromIdx = indexOf(m.electrodes, m.defaults.From)
		m.toIdx = indexOf(m.electrodes, m.defaults.To)
		return m, nil

	case ConvertedMsg:
		if msg.Err != nil {
			m.errText = msg.Err.Error()
			m.hasResult = false
		} else {
			m.errText = ""
			m.last = msg.Out
			m.hasResult = true
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "shift+tab":
			m.setFocus((m.focused + fieldCount - 1) % fieldCount)
			return m, nil
		case "down":
			m.setFocus((m.focused + 1) % fieldCount)
			return m, nil
		case "enter":
			return m, m.Run()
		case "left", "h":
			if m.focused != fieldValue {
				m.cycle(-1)
				return m, nil
			}
		case "right", "l":
			if m.focused != fieldValue {
				m.cycle(1)
				return m, nil
			}
		case "s":
			if m.focused != fieldValue {
				m.Swap()
				return m, nil
			}
		}
		if m.focused == fieldValue {
			var cmd tea.Cmd
			m.valueInput, cmd = m.valueInput.Update(msg)
			return m, cmd
		}
		return m, nil
	}
	return m, nil
}

// Run parses the value field and fires the conversion. Exposed so the
// palette's convert:run goes through the same path as the enter key.
func (m *Model) Run() tea.Cmd {
	raw := strings.TrimSpace(m.valueInput.Value())
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		parseErr := fmt.Errorf("not a number: %q", raw)
		return func() tea.Msg { return ConvertedMsg{Err: parseErr} }
	}
	from, to := m.selectedNames()
	return func() tea.Msg {
		out, err := m.port.Log(context.Background(), value, from, to)
		return ConvertedMsg{Out: out, Err: err}
	}
}

// Swap exchanges the source and target electrodes.
func (m *Model) Swap() {
	m.fromIdx, m.toIdx = m.toIdx, m.fromIdx
}

// SetValue overwrites the value field, used by the palette.
func (m *Model) SetValue(v string) {
	m.valueInput.SetValue(v)
}

// ValueFocused reports whether the value text input owns keystrokes. The app
// model checks this before treating q and ? as global bindings.
func (m Model) ValueFocused() bool {
	return m.focused == fieldValue
}

func (m Model) View() string {
	if m.errText != "" && len(m.electrodes) == 0 {
		return theme.Muted.Render("electrode table unavailable: " + m.errText)
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Convert Potential") + "\n\n")

	sb.WriteString(m.fieldLabel(fieldValue, "value (V)") + " " + m.valueInput.View() + "\n")
	sb.WriteString(m.fieldLabel(fieldFrom, "from     ") + " " + m.pickerView(m.fromIdx, m.focused == fieldFrom) + "\n")
	sb.WriteString(m.fieldLabel(fieldTo, "to       ") + " " + m.pickerView(m.toIdx, m.focused == fieldTo) + "\n")

	sb.WriteString("\n")
	switch {
	case m.errText != "":
		sb.WriteString(theme.Hot.Render("✗ "+m.errText) + "\n")
	case m.hasResult:
		sb.WriteString(fmt.Sprintf("%s %s\n",
			theme.Muted.Render("result:"),
			theme.Volts.Render(fmt.Sprintf("%+.3f V vs. %s", m.last.Result, m.last.To))))
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("        (%+.3f V vs. %s)", m.last.Input, m.last.From)) + "\n")
	default:
		sb.WriteString(theme.Muted.Render("enter: convert  s: swap  ↑/↓: field  ←/→: electrode") + "\n")
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) setFocus(f field) {
	m.focused = f
	if f == fieldValue {
		m.valueInput.Focus()
	} else {
		m.valueInput.Blur()
	}
}

func (m *Model) cycle(delta int) {
	if len(m.electrodes) == 0 {
		return
	}
	n := len(m.electrodes)
	if m.focused == fieldFrom {
		m.fromIdx = (m.fromIdx + delta + n) % n
	} else {
		m.toIdx = (m.toIdx + delta + n) % n
	}
}

func (m Model) selectedNames() (string, string) {
	if len(m.electrodes) == 0 {
		return m.defaults.From, m.defaults.To
	}
	return m.electrodes[m.fromIdx].Name, m.electrodes[m.toIdx].Name
}

func (m Model) fieldLabel(f field, label string) string {
	if m.focused == f {
		return theme.Hot.Render("▸ " + label)
	}
	return theme.Muted.Render("  " + label)
}

func (m Model) pickerView(idx int, active bool) string {
	if len(m.electrodes) == 0 {
		return theme.Muted.Render("loading…")
	}
	e := m.electrodes[idx]
	label := fmt.Sprintf("%s  %+.3f V", e.Name, e.OffsetVolts)
	if active {
		return "◂ " + label + " ▸"
	}
	return "  " + label
}

func indexOf(electrodes []scaledto.ElectrodeOutput, name string) int {
	for i, e := range electrodes {
		if e.Name == name {
			return i
		}
	}
	return 0
}

func (m Model) loadElectrodesCmd() tea.Cmd {
	return func() tea.Msg {
		electrodes, err := m.port.ListElectrodes(context.Background())
		return ElectrodesLoadedMsg{Electrodes: electrodes, Err: err}
	}
}
