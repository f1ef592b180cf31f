// Package tailui is a terminal viewer for the capture archive: a live
// tail of intercepted errors and dumps, filterable by category with the
// same all-or-exactly-one semantics as the on-page panels.
package tailui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/okiba/debugbar/internal/archive"
	"github.com/okiba/debugbar/internal/capture"
)

// EntryProvider supplies archived entries; satisfied by *archive.Store.
type EntryProvider interface {
	Recent(limit int) ([]archive.Entry, error)
	RecentByCategory(cat capture.Category, limit int) ([]archive.Entry, error)
	CountByCategory() (map[capture.Category]int, error)
}

// categoryIcons map categories to their display markers, matching the
// flags used in the browser panels.
var categoryIcons = map[capture.Category]string{
	capture.Errors:   "[!]",
	capture.Warnings: "[*]",
	capture.Notices:  "[i]",
	capture.Dumps:    "[#]",
}

var categoryStyles = map[capture.Category]lipgloss.Style{
	capture.Errors:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	capture.Warnings: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	capture.Notices:  lipgloss.NewStyle().Foreground(lipgloss.Color("117")),
	capture.Dumps:    lipgloss.NewStyle().Foreground(lipgloss.Color("114")),
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type KeyMap struct {
	Quit     key.Binding
	Errors   key.Binding
	Warnings key.Binding
	Notices  key.Binding
	Dumps    key.Binding
	All      key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Errors:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "errors only")),
		Warnings: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "warnings only")),
		Notices:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "notices only")),
		Dumps:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dumps only")),
		All:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all")),
	}
}

type tickMsg time.Time

type Model struct {
	provider EntryProvider
	keys     KeyMap
	filter   CategoryFilter

	entries []archive.Entry
	counts  map[capture.Category]int
	loadErr error

	width       int
	height      int
	limit       int
	refreshRate time.Duration
	quitting    bool
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithLimit caps how many entries are fetched per refresh.
func WithLimit(n int) ModelOption {
	return func(m *Model) {
		if n > 0 {
			m.limit = n
		}
	}
}

// WithRefreshRate overrides the polling interval.
func WithRefreshRate(d time.Duration) ModelOption {
	return func(m *Model) {
		if d > 0 {
			m.refreshRate = d
		}
	}
}

// NewModel creates the tail view over the given provider.
func NewModel(provider EntryProvider, opts ...ModelOption) Model {
	m := Model{
		provider:    provider,
		keys:        DefaultKeyMap(),
		filter:      NewCategoryFilter(),
		limit:       200,
		refreshRate: time.Second,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.reloadCmd(), m.tickCmd())
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type entriesMsg struct {
	entries []archive.Entry
	counts  map[capture.Category]int
	err     error
}

func (m Model) reloadCmd() tea.Cmd {
	provider := m.provider
	filter := m.filter
	limit := m.limit
	return func() tea.Msg {
		var (
			entries []archive.Entry
			err     error
		)
		if sole, ok := filter.Sole(); ok {
			entries, err = provider.RecentByCategory(sole, limit)
		} else {
			entries, err = provider.Recent(limit)
		}
		if err != nil {
			return entriesMsg{err: err}
		}
		counts, err := provider.CountByCategory()
		return entriesMsg{entries: entries, counts: counts, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.reloadCmd(), m.tickCmd())

	case entriesMsg:
		m.entries = msg.entries
		m.counts = msg.counts
		m.loadErr = msg.err
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Errors):
		m.filter.ToggleOne(capture.Errors)
	case key.Matches(msg, m.keys.Warnings):
		m.filter.ToggleOne(capture.Warnings)
	case key.Matches(msg, m.keys.Notices):
		m.filter.ToggleOne(capture.Notices)
	case key.Matches(msg, m.keys.Dumps):
		m.filter.ToggleOne(capture.Dumps)
	case key.Matches(msg, m.keys.All):
		m.filter.ShowAll()
	default:
		return m, nil
	}
	return m, m.reloadCmd()
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var lines []string
	lines = append(lines, m.headerLine())

	if m.loadErr != nil {
		lines = append(lines, errStyle.Render(fmt.Sprintf("archive error: %v", m.loadErr)))
		return strings.Join(lines, "\n")
	}

	if len(m.entries) == 0 {
		lines = append(lines, dimStyle.Render("No captures yet"))
		return strings.Join(lines, "\n")
	}

	visible := m.visibleLines()
	shown := m.entries
	if len(shown) > visible {
		shown = shown[:visible]
	}
	for _, e := range shown {
		lines = append(lines, renderEntryLine(e, m.width))
	}

	lines = append(lines, dimStyle.Render("e/w/n/d filter one  a all  q quit"))
	return strings.Join(lines, "\n")
}

func (m Model) headerLine() string {
	title := titleStyle.Render("debugbar tail")
	if sole, ok := m.filter.Sole(); ok {
		title += dimStyle.Render(" [" + string(sole) + "]")
	}
	if m.counts != nil {
		parts := make([]string, 0, 4)
		for _, cat := range capture.Categories() {
			parts = append(parts, fmt.Sprintf("%s%d", categoryIcons[cat], m.counts[cat]))
		}
		title += dimStyle.Render("  " + strings.Join(parts, " "))
	}
	return title
}

// visibleLines returns how many entry lines fit under the header and
// above the help line.
func (m Model) visibleLines() int {
	if m.height == 0 {
		return len(m.entries)
	}
	v := m.height - 2
	if v < 1 {
		v = 1
	}
	return v
}

// renderEntryLine formats one archived capture for display.
func renderEntryLine(e archive.Entry, maxW int) string {
	icon := categoryIcons[e.Category]
	if icon == "" {
		icon = "[?]"
	}
	style, ok := categoryStyles[e.Category]
	if !ok {
		style = dimStyle
	}

	msg := firstLine(e.Event.Message)
	line := fmt.Sprintf("%s %s %s", e.Event.Timestamp, icon, msg)
	if e.Event.File != "" {
		line += fmt.Sprintf(" (%s:%d)", e.Event.File, e.Event.Line)
	}

	if maxW > 3 && len(line) > maxW {
		line = line[:maxW-3] + "..."
	}
	return style.Render(line)
}

// firstLine truncates multi-line messages (dumps mostly) to their first
// line for the stream view.
func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx] + " ..."
	}
	return s
}
