package panel

import "github.com/okiba/debugbar/internal/capture"

// Visibility is the panel visibility state machine. It is the server-side
// twin of the emitted toggle script: two actions, toggling between "all
// panels visible" and "exactly one panel visible", plus showing or hiding
// the overall container. One click is handled at a time; every transition
// is synchronous.
type Visibility struct {
	// Container is whether the overall overlay container is shown.
	Container bool

	panels map[capture.Category]bool
}

// NewVisibility returns the initial state: container hidden, every
// category panel marked visible (so the first ToggleAll shows everything).
func NewVisibility() *Visibility {
	v := &Visibility{panels: make(map[capture.Category]bool, 4)}
	for _, cat := range capture.Categories() {
		v.panels[cat] = true
	}
	return v
}

// Visible reports whether the named category panel is currently shown.
func (v *Visibility) Visible(cat capture.Category) bool {
	return v.panels[cat]
}

// ToggleAll shows the container with every panel visible if it is hidden,
// and hides the container entirely if it is shown.
func (v *Visibility) ToggleAll() {
	if !v.Container {
		v.Container = true
		v.showAll()
		return
	}
	v.Container = false
}

// ToggleOne switches between "all panels visible" and "only cat visible".
// If cat is already the sole visible panel, every panel becomes visible
// again; in any other configuration, only cat stays visible. The container
// is shown either way.
func (v *Visibility) ToggleOne(cat capture.Category) {
	v.Container = true
	if v.soleVisible(cat) {
		v.showAll()
		return
	}
	for _, c := range capture.Categories() {
		v.panels[c] = c == cat
	}
}

// soleVisible reports whether cat is the only visible panel.
func (v *Visibility) soleVisible(cat capture.Category) bool {
	for _, c := range capture.Categories() {
		if v.panels[c] != (c == cat) {
			return false
		}
	}
	return true
}

func (v *Visibility) showAll() {
	for _, c := range capture.Categories() {
		v.panels[c] = true
	}
}
