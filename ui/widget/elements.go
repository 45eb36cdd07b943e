package widget

// Checkbox holds a boolean.
type Checkbox struct {
	common
	value bool
	cb    func(bool)
}

// NewCheckbox returns a checkbox with value def. cb may be nil.
func NewCheckbox(name, hint string, def bool, cb func(bool)) *Checkbox {
	w := &Checkbox{common: common{name: name, hint: hint}, value: def, cb: cb}
	w.self = w
	return w
}

func (w *Checkbox) Kind() Kind    { return KindCheckbox }
func (w *Checkbox) Value() any    { return w.value }
func (w *Checkbox) Checked() bool { return w.value }

// SetValue commits v and runs the callback.
func (w *Checkbox) SetValue(v bool) {
	w.Force(v)
	if w.cb != nil {
		w.cb(v)
	}
}

// Force commits v without running the callback.
func (w *Checkbox) Force(v bool) {
	w.value = v
	w.notify()
}

// Slider holds a float clamped to [Min, Max].
type Slider struct {
	common
	value float64
	min   float64
	max   float64
	step  float64
	cb    func(float64)
}

// NewSlider returns a slider. The default is clamped into range.
func NewSlider(name, hint string, def, min, max, step float64, cb func(float64)) *Slider {
	if max < min {
		min, max = max, min
	}
	w := &Slider{common: common{name: name, hint: hint}, min: min, max: max, step: step, cb: cb}
	w.self = w
	w.value = w.clamp(def)
	return w
}

func (w *Slider) Kind() Kind                       { return KindSlider }
func (w *Slider) Value() any                       { return w.value }
func (w *Slider) Float() float64                   { return w.value }
func (w *Slider) Bounds() (min, max, step float64) { return w.min, w.max, w.step }

func (w *Slider) clamp(v float64) float64 {
	if v < w.min {
		return w.min
	}
	if v > w.max {
		return w.max
	}
	return v
}

// SetValue clamps and commits v, then runs the callback.
func (w *Slider) SetValue(v float64) {
	w.Force(v)
	if w.cb != nil {
		w.cb(w.value)
	}
}

// Force clamps and commits v without running the callback.
func (w *Slider) Force(v float64) {
	w.value = w.clamp(v)
	w.notify()
}

// Number holds an unbounded float.
type Number struct {
	common
	value float64
	cb    func(float64)
}

// NewNumber returns a number field.
func NewNumber(name, hint string, def float64, cb func(float64)) *Number {
	w := &Number{common: common{name: name, hint: hint}, value: def, cb: cb}
	w.self = w
	return w
}

func (w *Number) Kind() Kind     { return KindNumber }
func (w *Number) Value() any     { return w.value }
func (w *Number) Float() float64 { return w.value }

// SetValue commits v and runs the callback.
func (w *Number) SetValue(v float64) {
	w.Force(v)
	if w.cb != nil {
		w.cb(v)
	}
}

// Force commits v without running the callback.
func (w *Number) Force(v float64) {
	w.value = v
	w.notify()
}

// Button carries no value; Click runs its callback.
type Button struct {
	common
	cb func()
}

// NewButton returns a button.
func NewButton(name, hint string, cb func()) *Button {
	w := &Button{common: common{name: name, hint: hint}, cb: cb}
	w.self = w
	return w
}

func (w *Button) Kind() Kind { return KindButton }
func (w *Button) Value() any { return nil }

// Click runs the callback. Disabled buttons ignore clicks.
func (w *Button) Click() {
	if w.disabled || w.cb == nil {
		return
	}
	w.cb()
}
