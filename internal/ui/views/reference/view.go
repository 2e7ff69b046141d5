package reference

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	scaledto "voltref/internal/modules/scale/dto"
	"voltref/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type ReferencePort interface {
	ListElectrodes(ctx context.Context) ([]scaledto.ElectrodeOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type ElectrodesLoadedMsg struct {
	Electrodes []scaledto.ElectrodeOutput
	Err        error
}

// ─── list item ───────────────────────────────────────────────────────────────

type electrodeItem struct {
	electrode scaledto.ElectrodeOutput
}

func (i electrodeItem) Title() string { return i.electrode.Name }
func (i electrodeItem) Description() string {
	return fmt.Sprintf("%+.3f V  ·  %s", i.electrode.OffsetVolts, i.electrode.Pack)
}
func (i electrodeItem) FilterValue() string { return i.electrode.Name }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    ReferencePort
	list    list.Model
	detail  viewport.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port ReferencePort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Reference Electrodes"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:    port,
		list:    l,
		detail:  vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadElectrodesCmd(), m.spinner.Tick)
}

// Reload refetches the table, used after a reindex or at startup.
func (m Model) Reload() tea.Cmd {
	return m.loadElectrodesCmd()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case ElectrodesLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.list.Title = "Reference Electrodes: " + msg.Err.Error()
			return m, nil
		}
		items := make([]list.Item, len(msg.Electrodes))
		for i, e := range msg.Electrodes {
			items[i] = electrodeItem{electrode: e}
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.detail.SetContent(m.renderDetail())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			m.detail.SetContent(m.renderDetail())
		}

		var vCmd tea.Cmd
		m.detail, vCmd = m.detail.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading electrode table…")
	}

	listW := m.width * 5 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.detail.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// Filtering reports whether the list's search filter is currently active.
// The app model checks this to avoid consuming global keys during a search.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// SelectedElectrode returns the current selection, if any.
func (m Model) SelectedElectrode() (scaledto.ElectrodeOutput, bool) {
	if item, ok := m.list.SelectedItem().(electrodeItem); ok {
		return item.electrode, true
	}
	return scaledto.ElectrodeOutput{}, false
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 5 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.detail.Width = detailW - 4
	m.detail.Height = m.height - 4
}

func (m Model) renderDetail() string {
	e, ok := m.SelectedElectrode()
	if !ok {
		return theme.Muted.Render("Select an electrode to see details")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(e.Name) + "\n\n")
	sb.WriteString(theme.Muted.Render("id:     ") + e.ID + "\n")
	sb.WriteString(theme.Muted.Render("offset: ") + theme.Volts.Render(fmt.Sprintf("%+.3f V vs. SHE", e.OffsetVolts)) + "\n")
	sb.WriteString(theme.Muted.Render("pack:   ") + e.Pack + "\n")
	sb.WriteString("\n" + theme.Muted.Render("A potential measured against this electrode is") + "\n")
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("E(SHE) = E + %.3f V", e.OffsetVolts)) + "\n")
	return sb.String()
}

func (m Model) loadElectrodesCmd() tea.Cmd {
	return func() tea.Msg {
		electrodes, err := m.port.ListElectrodes(context.Background())
		return ElectrodesLoadedMsg{Electrodes: electrodes, Err: err}
	}
}
