package tailui

import "github.com/okiba/debugbar/internal/capture"

// CategoryFilter is the tail view's category selection. It follows the
// same protocol as the browser panel toggles: either every category is
// shown, or exactly one is.
type CategoryFilter struct {
	visible map[capture.Category]bool
}

// NewCategoryFilter returns a filter showing all categories.
func NewCategoryFilter() CategoryFilter {
	f := CategoryFilter{visible: make(map[capture.Category]bool, 4)}
	f.ShowAll()
	return f
}

// ShowAll makes every category visible.
func (f *CategoryFilter) ShowAll() {
	for _, cat := range capture.Categories() {
		f.visible[cat] = true
	}
}

// ToggleOne selects cat as the only visible category, unless it already
// is — then the filter reverts to showing all.
func (f *CategoryFilter) ToggleOne(cat capture.Category) {
	if sole, ok := f.Sole(); ok && sole == cat {
		f.ShowAll()
		return
	}
	for _, c := range capture.Categories() {
		f.visible[c] = c == cat
	}
}

// Matches reports whether entries of the given category are shown.
func (f *CategoryFilter) Matches(cat capture.Category) bool {
	return f.visible[cat]
}

// Sole returns the single visible category, if exactly one is visible.
func (f *CategoryFilter) Sole() (capture.Category, bool) {
	var sole capture.Category
	n := 0
	for _, cat := range capture.Categories() {
		if f.visible[cat] {
			sole = cat
			n++
		}
	}
	if n == 1 {
		return sole, true
	}
	return "", false
}
