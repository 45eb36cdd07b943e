package widget

import (
	"encoding/json"
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/spatial/r3"
)

// State is the wire form of an element, as sent to remote clients.
type State struct {
	Name     string   `json:"name"`
	Kind     Kind     `json:"kind"`
	Hint     string   `json:"hint,omitempty"`
	Value    any      `json:"value,omitempty"`
	Hidden   bool     `json:"hidden"`
	Disabled bool     `json:"disabled"`
	Options  []string `json:"options,omitempty"`
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	Step     *float64 `json:"step,omitempty"`
}

// Snapshot captures the current state of w. Colors and vectors are encoded
// as three-element arrays.
func Snapshot(w Widget) State {
	st := State{
		Name:     w.Name(),
		Kind:     w.Kind(),
		Hint:     w.Hint(),
		Hidden:   w.Hidden(),
		Disabled: w.Disabled(),
		Options:  w.Options(),
	}
	switch v := w.(type) {
	case *RGB:
		c := v.Color()
		st.Value = [3]uint8{c.R, c.G, c.B}
	case *Vec3:
		p := v.Vec()
		st.Value = [3]float64{p.X, p.Y, p.Z}
		step := v.Step()
		st.Step = &step
	case *Slider:
		lo, hi, step := v.Bounds()
		st.Value = v.Float()
		st.Min, st.Max, st.Step = &lo, &hi, &step
	default:
		st.Value = w.Value()
	}
	return st
}

// Assign decodes raw and applies it to w as a user change: the value is
// committed and the callback runs. Buttons are clicked and ignore raw.
func Assign(w Widget, raw json.RawMessage) error {
	if w.Disabled() {
		return fmt.Errorf("%w: %s", ErrDisabled, w.Name())
	}
	switch v := w.(type) {
	case *Checkbox:
		var b bool
		if err := decode(raw, &b, w); err != nil {
			return err
		}
		v.SetValue(b)
	case *Slider:
		var f float64
		if err := decode(raw, &f, w); err != nil {
			return err
		}
		v.SetValue(f)
	case *Number:
		var f float64
		if err := decode(raw, &f, w); err != nil {
			return err
		}
		v.SetValue(f)
	case *Dropdown:
		return assignChoice(v, raw, w)
	case *ButtonGroup:
		return assignChoice(&v.Dropdown, raw, w)
	case *RGB:
		var c [3]uint8
		if err := decode(raw, &c, w); err != nil {
			return err
		}
		v.SetValue(color.RGBA{R: c[0], G: c[1], B: c[2], A: 255})
	case *Vec3:
		var p [3]float64
		if err := decode(raw, &p, w); err != nil {
			return err
		}
		v.SetValue(r3.Vec{X: p[0], Y: p[1], Z: p[2]})
	case *Button:
		v.Click()
	default:
		return fmt.Errorf("%w: unknown element %s", ErrBadValue, w.Name())
	}
	return nil
}

func assignChoice(d *Dropdown, raw json.RawMessage, w Widget) error {
	var s string
	if err := decode(raw, &s, w); err != nil {
		return err
	}
	return d.SetValue(s)
}

func decode(raw json.RawMessage, dst any, w Widget) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrBadValue, w.Name(), err)
	}
	return nil
}
