// Package registry groups panel widgets by tag for bulk visibility and
// enablement changes. It is append-only: widgets are hidden, never removed.
package registry

import "github.com/soocke/compare-viewer/ui/widget"

// TagAll implicitly contains every registered widget.
const TagAll = "all"

// Registry maps tags to widgets in registration order. It holds references
// only; the caller owns the widgets.
type Registry struct {
	surface widget.Surface
	byTag   map[string][]widget.Widget
}

// New returns a registry that installs widgets into s. s may be nil.
func New(s widget.Surface) *Registry {
	return &Registry{surface: s, byTag: make(map[string][]widget.Widget)}
}

// Register appends w to TagAll and to each tag, then installs it.
// Registering the same widget twice lists it twice.
func (r *Registry) Register(w widget.Widget, tags ...string) {
	if r == nil || w == nil {
		return
	}
	r.byTag[TagAll] = append(r.byTag[TagAll], w)
	for _, t := range tags {
		if t == TagAll {
			continue
		}
		r.byTag[t] = append(r.byTag[t], w)
	}
	widget.Attach(w, r.surface)
}

// Tagged returns a copy of the widgets under tag; empty for unknown tags.
func (r *Registry) Tagged(tag string) []widget.Widget {
	if r == nil {
		return nil
	}
	src := r.byTag[tag]
	out := make([]widget.Widget, len(src))
	copy(out, src)
	return out
}

// Lookup returns the first widget registered under name.
func (r *Registry) Lookup(name string) (widget.Widget, bool) {
	if r == nil {
		return nil, false
	}
	for _, w := range r.byTag[TagAll] {
		if w.Name() == name {
			return w, true
		}
	}
	return nil, false
}

func (r *Registry) SetHidden(tag string, hidden bool) {
	for _, w := range r.Tagged(tag) {
		w.SetHidden(hidden)
	}
}

func (r *Registry) SetDisabled(tag string, disabled bool) {
	for _, w := range r.Tagged(tag) {
		w.SetDisabled(disabled)
	}
}
