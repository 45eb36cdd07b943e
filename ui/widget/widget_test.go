package widget

import (
	"encoding/json"
	"errors"
	"image/color"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

type recorder struct {
	installed []string
	updates   []string
}

func (r *recorder) Install(w Widget) { r.installed = append(r.installed, w.Name()) }
func (r *recorder) Update(w Widget)  { r.updates = append(r.updates, w.Name()) }

func TestCheckbox_SetValueNotifiesThenCallsBack(t *testing.T) {
	rec := &recorder{}
	var seen []string
	var cb *Checkbox
	cb = NewCheckbox("Crop", "", false, func(v bool) {
		if !cb.Checked() {
			t.Fatal("callback ran before the value was committed")
		}
		seen = append(seen, "cb")
	})
	Attach(cb, rec)
	cb.SetValue(true)
	if len(rec.installed) != 1 || len(rec.updates) != 1 || len(seen) != 1 {
		t.Fatalf("installed=%v updates=%v callbacks=%v", rec.installed, rec.updates, seen)
	}
}

func TestCheckbox_ForceSkipsCallback(t *testing.T) {
	called := false
	cb := NewCheckbox("Visualize", "", true, func(bool) { called = true })
	cb.Force(false)
	if called {
		t.Fatal("Force must not run the callback")
	}
	if cb.Checked() {
		t.Fatal("Force must commit the value")
	}
}

func TestSlider_Clamps(t *testing.T) {
	s := NewSlider("Threshold", "", 5, 0, 1, 0.05, nil)
	if s.Float() != 1 {
		t.Fatalf("default should clamp to 1, got %v", s.Float())
	}
	s.SetValue(-3)
	if s.Float() != 0 {
		t.Fatalf("expected clamp to 0, got %v", s.Float())
	}
}

func TestDropdown_SetOptionsKeepsValidValue(t *testing.T) {
	calls := 0
	d := NewDropdown("Output", "", "depth", []string{"rgb", "depth"}, func(string) { calls++ })
	if err := d.SetOptions([]string{"depth", "rgb", "accumulation"}); err != nil {
		t.Fatal(err)
	}
	if d.String() != "depth" || calls != 0 {
		t.Fatalf("value=%s calls=%d", d.String(), calls)
	}
}

func TestDropdown_SetOptionsSnapsToLast(t *testing.T) {
	var got string
	d := NewDropdown("Output", "", "depth", []string{"rgb", "depth"}, func(v string) { got = v })
	if err := d.SetOptions([]string{"rgb", "normals"}); err != nil {
		t.Fatal(err)
	}
	if d.String() != "normals" || got != "normals" {
		t.Fatalf("expected snap to normals, value=%s callback=%s", d.String(), got)
	}
}

func TestDropdown_Invalid(t *testing.T) {
	d := NewDropdown("Colormap", "", "not set", []string{"not set"}, nil)
	if err := d.SetValue("viridis"); !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption, got %v", err)
	}
	if err := d.SetOptions(nil); !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption for empty list, got %v", err)
	}
	if d.String() != "not set" {
		t.Fatalf("value changed after rejected update: %s", d.String())
	}
}

func TestDropdown_DefaultOutsideOptions(t *testing.T) {
	d := NewDropdown("Split", "", "missing", []string{"a", "b"}, nil)
	if d.String() != "b" {
		t.Fatalf("expected last option, got %s", d.String())
	}
}

func TestDropdown_EmptyOptionsHoldDefault(t *testing.T) {
	d := NewDropdown("Output", "", "rgb", nil, nil)
	if got := d.Options(); len(got) != 1 || got[0] != "rgb" {
		t.Fatalf("got options %v expected [rgb]", got)
	}
	if d.String() != "rgb" {
		t.Fatalf("got %s expected rgb", d.String())
	}
	if err := d.SetValue("rgb"); err != nil {
		t.Fatalf("value should be one of the options: %v", err)
	}
	g := NewButtonGroup("Speed", "", "Mid", []string{}, nil)
	if got := g.Options(); len(got) != 1 || got[0] != "Mid" {
		t.Fatalf("got options %v expected [Mid]", got)
	}
}

func TestButtonGroup_NotifiesAsItself(t *testing.T) {
	var kinds []Kind
	g := NewButtonGroup("Speed", "", "Mid", []string{"Fast", "Mid", "Slow"}, nil)
	Attach(g, surfaceFunc(func(w Widget) { kinds = append(kinds, w.Kind()) }))
	if err := g.SetValue("Fast"); err != nil {
		t.Fatal(err)
	}
	if len(kinds) != 1 || kinds[0] != KindButtonGroup {
		t.Fatalf("expected one button_group update, got %v", kinds)
	}
}

type surfaceFunc func(Widget)

func (f surfaceFunc) Install(Widget)  {}
func (f surfaceFunc) Update(w Widget) { f(w) }

func TestHiddenDisabledNotifyOnlyOnChange(t *testing.T) {
	rec := &recorder{}
	n := NewNumber("Data", "", 0, nil)
	Attach(n, rec)
	n.SetHidden(false)
	n.SetDisabled(true)
	n.SetDisabled(true)
	if len(rec.updates) != 1 {
		t.Fatalf("expected a single update, got %v", rec.updates)
	}
}

func TestButton_DisabledIgnoresClick(t *testing.T) {
	clicks := 0
	b := NewButton("Reset", "", func() { clicks++ })
	b.Click()
	b.SetDisabled(true)
	b.Click()
	if clicks != 1 {
		t.Fatalf("expected 1 click, got %d", clicks)
	}
}

func TestAssign(t *testing.T) {
	var gotColor color.RGBA
	rgb := NewRGB("Tint", "", color.RGBA{}, func(c color.RGBA) { gotColor = c })
	if err := Assign(rgb, json.RawMessage(`[255,128,0]`)); err != nil {
		t.Fatal(err)
	}
	if gotColor != (color.RGBA{R: 255, G: 128, A: 255}) {
		t.Fatalf("unexpected color %v", gotColor)
	}

	v := NewVec3("Center", "", r3.Vec{}, 0.05, nil)
	if err := Assign(v, json.RawMessage(`[1,2,3]`)); err != nil {
		t.Fatal(err)
	}
	if v.Vec() != (r3.Vec{X: 1, Y: 2, Z: 3}) {
		t.Fatalf("unexpected vec %v", v.Vec())
	}

	d := NewDropdown("Output", "", "rgb", []string{"rgb"}, nil)
	if err := Assign(d, json.RawMessage(`"depth"`)); !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption, got %v", err)
	}
	if err := Assign(v, json.RawMessage(`"oops"`)); !errors.Is(err, ErrBadValue) {
		t.Fatalf("expected ErrBadValue, got %v", err)
	}

	cb := NewCheckbox("Flag", "", false, nil)
	cb.SetDisabled(true)
	if err := Assign(cb, json.RawMessage(`true`)); !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
}

func TestSnapshot(t *testing.T) {
	s := NewSlider("Max res", "", 512, 64, 2048, 100, nil)
	st := Snapshot(s)
	if st.Kind != KindSlider || st.Value != 512.0 || *st.Min != 64 || *st.Max != 2048 {
		t.Fatalf("unexpected slider state %+v", st)
	}
	raw, err := json.Marshal(Snapshot(NewCheckbox("Crop", "", false, nil)))
	if err != nil {
		t.Fatal(err)
	}
	var back map[string]any
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatal(err)
	}
	if v, ok := back["value"]; !ok || v != false {
		t.Fatalf("false checkbox value lost in %s", raw)
	}
}

func TestTextRoundTrip(t *testing.T) {
	rgb := NewRGB("Background color", "", color.RGBA{R: 38, G: 42, B: 55}, nil)
	if got := FormatText(rgb); got != "#262a37" {
		t.Fatalf("got %s, expected #262a37", got)
	}
	raw, err := ParseText(rgb, "#ff8000")
	if err != nil {
		t.Fatal(err)
	}
	if err := Assign(rgb, raw); err != nil {
		t.Fatal(err)
	}
	if rgb.Color() != (color.RGBA{R: 255, G: 128, A: 255}) {
		t.Fatalf("unexpected color %v", rgb.Color())
	}

	v := NewVec3("Crop center", "", r3.Vec{}, 0.01, nil)
	raw, err = ParseText(v, "1, 2.5 -3")
	if err != nil {
		t.Fatal(err)
	}
	if err := Assign(v, raw); err != nil {
		t.Fatal(err)
	}
	if v.Vec() != (r3.Vec{X: 1, Y: 2.5, Z: -3}) {
		t.Fatalf("unexpected vec %v", v.Vec())
	}
	if got := FormatText(v); got != "1 2.5 -3" {
		t.Fatalf("got %q", got)
	}

	cb := NewCheckbox("Enable split", "", false, nil)
	raw, err = ParseText(cb, "yes")
	if err != nil || string(raw) != "true" {
		t.Fatalf("raw=%s err=%v", raw, err)
	}
}

func TestParseText_Rejects(t *testing.T) {
	cases := []struct {
		w Widget
		s string
	}{
		{NewCheckbox("a", "", false, nil), "maybe"},
		{NewSlider("b", "", 0, 0, 1, 0.1, nil), "x"},
		{NewRGB("c", "", color.RGBA{}, nil), "red"},
		{NewVec3("d", "", r3.Vec{}, 1, nil), "1 2"},
	}
	for _, c := range cases {
		if _, err := ParseText(c.w, c.s); !errors.Is(err, ErrBadValue) {
			t.Fatalf("%s: expected ErrBadValue for %q, got %v", c.w.Name(), c.s, err)
		}
	}
}

func TestSurfaces_FanOut(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	cb := NewCheckbox("Enable split", "", false, nil)
	Attach(cb, Surfaces{a, nil, b})
	cb.SetValue(true)
	for i, r := range []*recorder{a, b} {
		if len(r.installed) != 1 || len(r.updates) != 1 {
			t.Fatalf("surface %d: installed=%v updates=%v", i, r.installed, r.updates)
		}
	}
}
