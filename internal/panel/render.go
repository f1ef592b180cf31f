// Package panel renders the on-page debug overlay: the always-visible
// indicator summarizing captured events, and the per-category panels the
// indicator toggles. All markup carries the stable identifiers the toggle
// script and external styling depend on: #debug-container, #debug-errors,
// and a category-named class on each panel.
package panel

import (
	"bytes"
	"html/template"

	"github.com/okiba/debugbar/internal/capture"
)

var (
	indicatorTemplate = template.Must(template.New("indicator").Parse(indicatorTmpl))
	panelsTemplate    = template.Must(template.New("panels").Parse(panelsTmpl))
)

// categoryFlags are the visual severity markers shown before each event.
var categoryFlags = map[capture.Category]string{
	capture.Errors:   "[!]",
	capture.Warnings: "[*]",
	capture.Notices:  "[i]",
	capture.Dumps:    "[#]",
}

type indicatorEntry struct {
	Category capture.Category
	Label    string
	Count    int
}

type indicatorView struct {
	Class   string
	Total   int
	Entries []indicatorEntry
}

type panelView struct {
	Category capture.Category
	Label    string
	Flag     string
	Count    int
	Events   []capture.Event
}

type panelsView struct {
	Panels []panelView
}

// HeadHTML returns the style block emitted in the page head.
func HeadHTML() template.HTML {
	return template.HTML(styleHTML)
}

// ScriptHTML returns the toggle script emitted alongside the panels.
func ScriptHTML() template.HTML {
	return template.HTML(scriptHTML)
}

// IndicatorClass returns the indicator's priority styling class: error
// beats warning beats notice beats dumps.
func IndicatorClass(counts capture.Counts) string {
	switch {
	case counts.Errors > 0:
		return "error"
	case counts.Warnings > 0:
		return "warning"
	case counts.Notices > 0:
		return "notice"
	default:
		return "dumps"
	}
}

// RenderIndicator renders the clickable counter plus one sub-entry per
// non-empty category. With nothing captured it renders nothing at all.
func RenderIndicator(counts capture.Counts) template.HTML {
	if counts.Total() == 0 {
		return ""
	}

	view := indicatorView{
		Class: IndicatorClass(counts),
		Total: counts.Total(),
	}
	for _, cat := range capture.Categories() {
		if n := counts.Of(cat); n > 0 {
			view.Entries = append(view.Entries, indicatorEntry{
				Category: cat,
				Label:    cat.Label(),
				Count:    n,
			})
		}
	}
	return execute(indicatorTemplate, view)
}

// RenderPanels renders the hidden overlay container holding one panel per
// non-empty category, in fixed category order. Empty categories render no
// container; an entirely empty store renders nothing.
func RenderPanels(store *capture.Store) template.HTML {
	if store == nil || store.Counts().Total() == 0 {
		return ""
	}

	var view panelsView
	for _, cat := range capture.Categories() {
		evts := store.Events(cat)
		if len(evts) == 0 {
			continue
		}
		view.Panels = append(view.Panels, panelView{
			Category: cat,
			Label:    cat.Label(),
			Flag:     categoryFlags[cat],
			Count:    len(evts),
			Events:   evts,
		})
	}
	return execute(panelsTemplate, view)
}

// Footer renders the full end-of-page block: panels, indicator, script.
// This is what a host emits from its page-footer hook.
func Footer(store *capture.Store) template.HTML {
	if store == nil {
		return ""
	}
	counts := store.Counts()
	if counts.Total() == 0 {
		return ""
	}
	return RenderPanels(store) + RenderIndicator(counts) + ScriptHTML()
}

// execute runs the template, degrading to empty markup on failure; the
// overlay must never break the host page.
func execute(t *template.Template, data any) template.HTML {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return ""
	}
	return template.HTML(buf.String())
}
