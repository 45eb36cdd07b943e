package widget

import (
	"fmt"
	"slices"
)

// Dropdown holds one string out of a mutable option list.
type Dropdown struct {
	common
	value   string
	options []string
	cb      func(string)
}

// NewDropdown returns a dropdown. A default outside options is replaced by
// the last option. An empty option list becomes the single option def.
func NewDropdown(name, hint, def string, options []string, cb func(string)) *Dropdown {
	w := &Dropdown{common: common{name: name, hint: hint}, cb: cb}
	w.self = w
	w.init(def, options)
	return w
}

func (w *Dropdown) init(def string, options []string) {
	if len(options) == 0 {
		options = []string{def}
	}
	w.options = slices.Clone(options)
	w.value = def
	if !slices.Contains(w.options, def) {
		w.value = w.options[len(w.options)-1]
	}
}

func (w *Dropdown) Kind() Kind        { return KindDropdown }
func (w *Dropdown) Value() any        { return w.value }
func (w *Dropdown) String() string    { return w.value }
func (w *Dropdown) Options() []string { return slices.Clone(w.options) }

// SetValue commits v and runs the callback. v must be one of the options.
func (w *Dropdown) SetValue(v string) error {
	if err := w.Force(v); err != nil {
		return err
	}
	if w.cb != nil {
		w.cb(v)
	}
	return nil
}

// Force commits v without running the callback.
func (w *Dropdown) Force(v string) error {
	if !slices.Contains(w.options, v) {
		return fmt.Errorf("%w: %q for %s", ErrInvalidOption, v, w.name)
	}
	w.value = v
	w.notify()
	return nil
}

// SetOptions replaces the option list. A value still present is kept;
// otherwise the value snaps to the last option and the callback runs.
func (w *Dropdown) SetOptions(options []string) error {
	if len(options) == 0 {
		return fmt.Errorf("%w: empty option list for %s", ErrInvalidOption, w.name)
	}
	w.options = slices.Clone(options)
	if slices.Contains(w.options, w.value) {
		w.notify()
		return nil
	}
	w.value = w.options[len(w.options)-1]
	w.notify()
	if w.cb != nil {
		w.cb(w.value)
	}
	return nil
}

// ButtonGroup is a fixed choice rendered as a row of buttons.
type ButtonGroup struct {
	Dropdown
}

// NewButtonGroup returns a button group with the given options.
func NewButtonGroup(name, hint, def string, options []string, cb func(string)) *ButtonGroup {
	w := &ButtonGroup{Dropdown{common: common{name: name, hint: hint}, cb: cb}}
	w.self = w
	w.init(def, options)
	return w
}

func (w *ButtonGroup) Kind() Kind { return KindButtonGroup }
