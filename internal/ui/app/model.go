package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	histdto "voltref/internal/modules/history/dto"
	scaledto "voltref/internal/modules/scale/dto"
	"voltref/internal/ui/components"
	"voltref/internal/ui/theme"
	convertview "voltref/internal/ui/views/convert"
	historyview "voltref/internal/ui/views/history"
	referenceview "voltref/internal/ui/views/reference"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type scalePort interface {
	ListElectrodes(ctx context.Context) ([]scaledto.ElectrodeOutput, error)
	Reindex(ctx context.Context) error
}

type historyPort interface {
	Log(ctx context.Context, value float64, from, to string) (histdto.LogOutput, error)
	List(ctx context.Context) ([]histdto.RecordOutput, error)
	Clear(ctx context.Context) error
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabConvert tabID = iota
	tabReference
	tabHistory
	tabCount
)

var tabLabels = [tabCount]string{
	"Convert", "Reference", "History",
}

// ─── async messages ───────────────────────────────────────────────────────────

type reindexDoneMsg struct{ err error }

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
	Enter   key.Binding
	Swap    key.Binding
	Clear   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "convert")),
		Swap:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "swap electrodes")),
		Clear:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear history")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Enter, k.Swap},
		{k.Clear},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the global help
// overlay, and the command palette. All business logic is delegated to port
// interfaces; all rendering is delegated to sub-views.
type Model struct {
	scale   scalePort
	history historyPort

	// sub-views (one per tab)
	convView convertview.Model
	refView  referenceview.Model
	histView historyview.Model

	// global UI state
	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(scale scalePort, history historyPort, defaults convertview.Defaults) Model {
	return Model{
		scale:     scale,
		history:   history,
		convView:  convertview.New(convertPortBridge{scale: scale, history: history}, defaults),
		refView:   referenceview.New(referencePortBridge{scale: scale}),
		histView:  historyview.New(historyPortBridge{history: history}),
		activeTab: tabConvert,
		keys:      defaultKeys(),
		help:      help.New(),
		palette:   components.NewPalette(),
		status:    "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.convView.Init(),
		m.refView.Init(),
		m.histView.Init(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()

	// ConvertedMsg is produced by the convert view but bubbles up through
	// the top level so the status bar and the History tab stay current.
	case convertview.ConvertedMsg:
		if msg.Err != nil {
			m.status = "convert: " + msg.Err.Error()
		} else {
			m.status = fmt.Sprintf("%+.3f V vs. %s  →  %+.3f V vs. %s",
				msg.Out.Input, msg.Out.From, msg.Out.Result, msg.Out.To)
			cmds = append(cmds, m.histView.Reload())
		}
		var cmd tea.Cmd
		m.convView, cmd = m.convView.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)

	case historyview.ClearedMsg:
		if msg.Err != nil {
			m.status = "history clear failed: " + msg.Err.Error()
		} else {
			m.status = "history cleared"
		}
		var cmd tea.Cmd
		m.histView, cmd = m.histView.Update(msg)
		return m, cmd

	case reindexDoneMsg:
		if msg.err != nil {
			m.status = "reindex failed: " + msg.err.Error()
		} else {
			m.status = "electrode index rebuilt"
			cmds = append(cmds, m.refView.Reload())
		}
		return m, tea.Batch(cmds...)

	// Async load results are routed by message type, not by active tab:
	// they usually arrive while a different tab has focus.
	case historyview.RecordsLoadedMsg:
		var cmd tea.Cmd
		m.histView, cmd = m.histView.Update(msg)
		return m, cmd

	case referenceview.ElectrodesLoadedMsg:
		var cmd tea.Cmd
		m.refView, cmd = m.refView.Update(msg)
		return m, cmd

	case convertview.ElectrodesLoadedMsg:
		var cmd tea.Cmd
		m.convView, cmd = m.convView.Update(msg)
		return m, cmd

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.refView, cmd = m.refView.Update(msg)
		return m, cmd

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to sub-view when its search filter is active.
		if m.subViewFiltering() {
			break
		}

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			// The convert value field owns plain characters while focused.
			if !m.valueInputFocused() {
				return m, tea.Quit
			}
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			if m.activeTab != tabConvert {
				m.activeTab = (m.activeTab + tabCount - 1) % tabCount
				return m, nil
			}
		case "?":
			if !m.valueInputFocused() {
				m.showHelp = !m.showHelp
				return m, nil
			}
		case ":":
			cmds = append(cmds, m.palette.Open())
			return m, tea.Batch(cmds...)
		}
	}

	// Propagate the message to the active tab's sub-view.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabConvert:
		m.convView, tabCmd = m.convView.Update(msg)
	case tabReference:
		m.refView, tabCmd = m.refView.Update(msg)
	case tabHistory:
		m.histView, tabCmd = m.histView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabConvert:
		return m.convView.View()
	case tabReference:
		return m.refView.View()
	case tabHistory:
		return m.histView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "voltref  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render("?:help  tab:switch  :::palette  ctrl+c:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)

	switch parts[0] {
	case "convert:run":
		m.activeTab = tabConvert
		if len(parts) >= 2 {
			m.convView.SetValue(parts[1])
		}
		return m, m.convView.Run()

	case "convert:swap":
		m.activeTab = tabConvert
		m.convView.Swap()
		m.status = "electrodes swapped"
		return m, nil

	case "history:clear":
		m.activeTab = tabHistory
		return m, m.clearHistoryCmd()

	case "table:reindex":
		return m, m.reindexCmd()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// valueInputFocused reports whether the convert tab's value field currently
// owns keystrokes, in which case q and ? must type instead of acting globally.
func (m Model) valueInputFocused() bool {
	return m.activeTab == tabConvert && m.convView.ValueFocused()
}

// subViewFiltering reports whether the active tab's list filter is open,
// in which case global key bindings must yield to allow free typing.
func (m Model) subViewFiltering() bool {
	if m.activeTab == tabReference {
		return m.refView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.convView, _ = m.convView.Update(sz)
	m.refView, _ = m.refView.Update(sz)
	m.histView, _ = m.histView.Update(sz)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) clearHistoryCmd() tea.Cmd {
	return func() tea.Msg {
		err := m.history.Clear(context.Background())
		return historyview.ClearedMsg{Err: err}
	}
}

func (m Model) reindexCmd() tea.Cmd {
	return func() tea.Msg {
		return reindexDoneMsg{err: m.scale.Reindex(context.Background())}
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────
// Each bridge narrows a broad port interface to the minimal interface needed by
// a specific sub-view, keeping view packages free of knowledge about the wider
// port surface.

type convertPortBridge struct {
	scale   scalePort
	history historyPort
}

func (b convertPortBridge) ListElectrodes(ctx context.Context) ([]scaledto.ElectrodeOutput, error) {
	return b.scale.ListElectrodes(ctx)
}
func (b convertPortBridge) Log(ctx context.Context, value float64, from, to string) (histdto.LogOutput, error) {
	return b.history.Log(ctx, value, from, to)
}

type referencePortBridge struct{ scale scalePort }

func (b referencePortBridge) ListElectrodes(ctx context.Context) ([]scaledto.ElectrodeOutput, error) {
	return b.scale.ListElectrodes(ctx)
}

type historyPortBridge struct{ history historyPort }

func (b historyPortBridge) List(ctx context.Context) ([]histdto.RecordOutput, error) {
	return b.history.List(ctx)
}
func (b historyPortBridge) Clear(ctx context.Context) error {
	return b.history.Clear(ctx)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
