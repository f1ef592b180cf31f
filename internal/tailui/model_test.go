package tailui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/okiba/debugbar/internal/archive"
	"github.com/okiba/debugbar/internal/capture"
)

// fakeProvider serves canned entries without a database.
type fakeProvider struct {
	entries []archive.Entry
}

func (p *fakeProvider) Recent(limit int) ([]archive.Entry, error) {
	if len(p.entries) > limit {
		return p.entries[:limit], nil
	}
	return p.entries, nil
}

func (p *fakeProvider) RecentByCategory(cat capture.Category, limit int) ([]archive.Entry, error) {
	var out []archive.Entry
	for _, e := range p.entries {
		if e.Category == cat {
			out = append(out, e)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (p *fakeProvider) CountByCategory() (map[capture.Category]int, error) {
	counts := make(map[capture.Category]int, 4)
	for _, e := range p.entries {
		counts[e.Category]++
	}
	return counts, nil
}

func testEntries() []archive.Entry {
	return []archive.Entry{
		{Category: capture.Errors, Event: capture.Event{Timestamp: "2026-08-25 10:00:02", Message: "it broke", File: "/srv/a.go", Line: 1}},
		{Category: capture.Notices, Event: capture.Event{Timestamp: "2026-08-25 10:00:01", Message: "fyi"}},
		{Category: capture.Dumps, Event: capture.Event{Timestamp: "2026-08-25 10:00:00", Message: "(int) 42\nsecond line"}},
	}
}

func loadEntries(t *testing.T, m Model) Model {
	t.Helper()
	msg := m.reloadCmd()()
	em, ok := msg.(entriesMsg)
	if !ok {
		t.Fatalf("expected entriesMsg, got %T", msg)
	}
	if em.err != nil {
		t.Fatalf("unexpected load error: %v", em.err)
	}
	next, _ := m.Update(em)
	return next.(Model)
}

func TestModel_ViewShowsEntries(t *testing.T) {
	m := NewModel(&fakeProvider{entries: testEntries()})
	m = loadEntries(t, m)

	view := m.View()
	if !strings.Contains(view, "it broke") || !strings.Contains(view, "fyi") {
		t.Fatalf("expected entries rendered, got:\n%s", view)
	}
	if !strings.Contains(view, "[!]") || !strings.Contains(view, "[#]") {
		t.Errorf("expected category icons, got:\n%s", view)
	}
	// Multi-line dump collapsed to its first line.
	if strings.Contains(view, "second line") {
		t.Errorf("expected dump truncated to first line, got:\n%s", view)
	}
	if !strings.Contains(view, "(/srv/a.go:1)") {
		t.Errorf("expected origin site on error line, got:\n%s", view)
	}
	// Archive totals in the header, in fixed category order.
	if !strings.Contains(view, "[!]1 [*]0 [i]1 [#]1") {
		t.Errorf("expected archive counts in header, got:\n%s", view)
	}
}

func TestModel_FilterKeys(t *testing.T) {
	m := NewModel(&fakeProvider{entries: testEntries()})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}})
	m = next.(Model)
	if cmd == nil {
		t.Fatal("expected a reload command after filter change")
	}

	sole, ok := m.filter.Sole()
	if !ok || sole != capture.Errors {
		t.Fatalf("expected errors filter, got %q ok=%t", sole, ok)
	}

	m = loadEntries(t, m)
	view := m.View()
	if strings.Contains(view, "fyi") {
		t.Errorf("expected notices filtered out, got:\n%s", view)
	}
	if !strings.Contains(view, "it broke") {
		t.Errorf("expected errors still shown, got:\n%s", view)
	}
	if !strings.Contains(view, "[errors]") {
		t.Errorf("expected filter shown in header, got:\n%s", view)
	}

	// 'a' restores all.
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	m = loadEntries(t, next.(Model))
	if !strings.Contains(m.View(), "fyi") {
		t.Error("expected all categories restored")
	}
}

func TestModel_Quit(t *testing.T) {
	m := NewModel(&fakeProvider{})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = next.(Model)
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if m.View() != "" {
		t.Error("expected empty view while quitting")
	}
}

func TestModel_EmptyArchive(t *testing.T) {
	m := NewModel(&fakeProvider{})
	m = loadEntries(t, m)
	if !strings.Contains(m.View(), "No captures yet") {
		t.Fatalf("expected placeholder, got:\n%s", m.View())
	}
}
