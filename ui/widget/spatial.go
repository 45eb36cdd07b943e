package widget

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r3"
)

// RGB holds an opaque color.
type RGB struct {
	common
	value color.RGBA
	cb    func(color.RGBA)
}

// NewRGB returns a color picker.
func NewRGB(name, hint string, def color.RGBA, cb func(color.RGBA)) *RGB {
	def.A = 255
	w := &RGB{common: common{name: name, hint: hint}, value: def, cb: cb}
	w.self = w
	return w
}

func (w *RGB) Kind() Kind        { return KindRGB }
func (w *RGB) Value() any        { return w.value }
func (w *RGB) Color() color.RGBA { return w.value }

// SetValue commits v and runs the callback.
func (w *RGB) SetValue(v color.RGBA) {
	w.Force(v)
	if w.cb != nil {
		w.cb(w.value)
	}
}

// Force commits v without running the callback.
func (w *RGB) Force(v color.RGBA) {
	v.A = 255
	w.value = v
	w.notify()
}

// Vec3 holds a 3-vector such as a position, an euler triple or a scale.
type Vec3 struct {
	common
	value r3.Vec
	step  float64
	cb    func(r3.Vec)
}

// NewVec3 returns a vector field. step is a display hint only.
func NewVec3(name, hint string, def r3.Vec, step float64, cb func(r3.Vec)) *Vec3 {
	w := &Vec3{common: common{name: name, hint: hint}, value: def, step: step, cb: cb}
	w.self = w
	return w
}

func (w *Vec3) Kind() Kind    { return KindVec3 }
func (w *Vec3) Value() any    { return w.value }
func (w *Vec3) Vec() r3.Vec   { return w.value }
func (w *Vec3) Step() float64 { return w.step }

// SetValue commits v and runs the callback.
func (w *Vec3) SetValue(v r3.Vec) {
	w.Force(v)
	if w.cb != nil {
		w.cb(v)
	}
}

// Force commits v without running the callback.
func (w *Vec3) Force(v r3.Vec) {
	w.value = v
	w.notify()
}
