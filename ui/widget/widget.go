// Package widget defines the closed set of control-panel elements.
//
// Every element shares a name, hint, hidden flag and disabled flag, and
// carries one typed value. Value changes commit first, then notify the
// attached Surface, then run the element's callback synchronously. There is
// no queue: by the time SetValue returns, every cascading change has run.
package widget

import "errors"

// Kind discriminates the element variants.
type Kind string

const (
	KindCheckbox    Kind = "checkbox"
	KindSlider      Kind = "slider"
	KindNumber      Kind = "number"
	KindDropdown    Kind = "dropdown"
	KindButtonGroup Kind = "button_group"
	KindRGB         Kind = "rgb"
	KindVec3        Kind = "vec3"
	KindButton      Kind = "button"
)

var (
	// ErrInvalidOption is returned when a choice value is not one of the
	// element's options, or when an empty option list is supplied.
	ErrInvalidOption = errors.New("widget: value not in options")
	// ErrDisabled is returned when a user-originated change targets a disabled element.
	ErrDisabled = errors.New("widget: element is disabled")
	// ErrBadValue is returned when a remote value cannot be decoded for the element kind.
	ErrBadValue = errors.New("widget: malformed value")
)

// Surface is the environment an element is installed into: a local window,
// a remote client connection, or a test recorder. Update is called after
// every committed change to value, visibility, enablement or options.
type Surface interface {
	Install(w Widget)
	Update(w Widget)
}

// Surfaces fans every call out to several surfaces in order, e.g. a local
// window and the remote clients.
type Surfaces []Surface

func (ss Surfaces) Install(w Widget) {
	for _, s := range ss {
		if s != nil {
			s.Install(w)
		}
	}
}

func (ss Surfaces) Update(w Widget) {
	for _, s := range ss {
		if s != nil {
			s.Update(w)
		}
	}
}

// Widget is implemented only by the element types in this package.
type Widget interface {
	Name() string
	Kind() Kind
	Hint() string
	// Value returns the committed value; nil for buttons.
	Value() any
	Hidden() bool
	Disabled() bool
	SetHidden(bool)
	SetDisabled(bool)
	// Options returns the valid choices for choice elements, nil otherwise.
	Options() []string

	base() *common
}

// Attach binds w to s and performs the install side effect. A nil surface
// leaves the element detached; it still works, it just notifies no one.
func Attach(w Widget, s Surface) {
	if w == nil || s == nil {
		return
	}
	w.base().surface = s
	s.Install(w)
}

type common struct {
	name     string
	hint     string
	hidden   bool
	disabled bool
	surface  Surface
	self     Widget
}

func (c *common) Name() string   { return c.name }
func (c *common) Hint() string   { return c.hint }
func (c *common) Hidden() bool   { return c.hidden }
func (c *common) Disabled() bool { return c.disabled }
func (c *common) base() *common  { return c }

func (c *common) Options() []string { return nil }

func (c *common) SetHidden(b bool) {
	if c.hidden == b {
		return
	}
	c.hidden = b
	c.notify()
}

func (c *common) SetDisabled(b bool) {
	if c.disabled == b {
		return
	}
	c.disabled = b
	c.notify()
}

func (c *common) notify() {
	if c.surface != nil && c.self != nil {
		c.surface.Update(c.self)
	}
}
