package history

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	histdto "voltref/internal/modules/history/dto"
	"voltref/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type HistoryPort interface {
	List(ctx context.Context) ([]histdto.RecordOutput, error)
	Clear(ctx context.Context) error
}

// ─── messages ────────────────────────────────────────────────────────────────

type RecordsLoadedMsg struct {
	Records []histdto.RecordOutput
	Err     error
}

// ClearedMsg bubbles to the app model so the status bar reflects the wipe.
type ClearedMsg struct{ Err error }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     HistoryPort
	view     viewport.Model
	records  []histdto.RecordOutput
	errText  string
	width    int
	height   int
}

func New(port HistoryPort) Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)
	return Model{port: port, view: vp}
}

func (m Model) Init() tea.Cmd {
	return m.Reload()
}

// Reload refetches the session log. The app model fires this after each
// conversion so the tab is never stale.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		records, err := m.port.List(context.Background())
		return RecordsLoadedMsg{Records: records, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.view.Width = m.width - 4
		m.view.Height = m.height - 2
		m.view.SetContent(m.renderRecords())
		return m, nil

	case RecordsLoadedMsg:
		if msg.Err != nil {
			m.errText = msg.Err.Error()
		} else {
			m.errText = ""
			m.records = msg.Records
		}
		m.view.SetContent(m.renderRecords())
		return m, nil

	case ClearedMsg:
		if msg.Err == nil {
			m.records = nil
			m.view.SetContent(m.renderRecords())
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "c" {
			return m, m.clearCmd()
		}
	}

	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.view.View()
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) renderRecords() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Conversion History") + "\n\n")
	if m.errText != "" {
		sb.WriteString(theme.Hot.Render("✗ "+m.errText) + "\n")
		return sb.String()
	}
	if len(m.records) == 0 {
		sb.WriteString(theme.Muted.Render("No conversions yet. Run one from the Convert tab.") + "\n")
		return sb.String()
	}
	for _, r := range m.records {
		sb.WriteString(fmt.Sprintf("%s  %+.3f V  %s %s %s  %s\n",
			theme.Muted.Render(r.At.Format("15:04:05")),
			r.Input,
			r.From,
			theme.Muted.Render("→"),
			r.To,
			theme.Volts.Render(fmt.Sprintf("%+.3f V", r.Result))))
	}
	sb.WriteString("\n" + theme.Muted.Render("c: clear history"))
	return sb.String()
}

func (m Model) clearCmd() tea.Cmd {
	return func() tea.Msg {
		err := m.port.Clear(context.Background())
		return ClearedMsg{Err: err}
	}
}
