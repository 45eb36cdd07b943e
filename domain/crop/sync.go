package crop

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Sync holds a Box and its Handle. Every write re-derives the other side
// before returning, so Center·ratio == Handle.Position after each call.
type Sync struct {
	ratio  float64
	box    Box
	handle Handle
}

// NewSync returns a Sync for box. A non-positive ratio is treated as 1.
func NewSync(ratio float64, box Box) *Sync {
	if ratio <= 0 {
		ratio = 1
	}
	s := &Sync{ratio: ratio, box: box}
	s.handle.Position = r3.Scale(ratio, box.Center)
	s.handle.Orientation = box.Orientation()
	return s
}

func (s *Sync) Ratio() float64 { return s.ratio }
func (s *Sync) Box() Box       { return s.box }
func (s *Sync) Handle() Handle { return s.handle }

func (s *Sync) SetCenter(c r3.Vec) {
	s.box.Center = c
	s.handle.Position = r3.Scale(s.ratio, c)
}

func (s *Sync) SetRotation(rpy r3.Vec) {
	s.box.RPY = rpy
	s.handle.Orientation = s.box.Orientation()
}

// SetScale changes the box size; the handle carries no scale.
func (s *Sync) SetScale(scale r3.Vec) {
	s.box.Scale = scale
}

func (s *Sync) SetVisible(v bool) {
	s.handle.Visible = v
}

// HandleMoved applies a drag of the handle and returns the re-derived box.
// Rotation goes through an Euler decomposition, so orientations near
// gimbal lock may drift over repeated round trips.
func (s *Sync) HandleMoved(pos r3.Vec, q quat.Number) Box {
	q = normalize(q)
	s.handle.Position = pos
	s.handle.Orientation = q
	s.box.Center = r3.Scale(1/s.ratio, pos)
	s.box.RPY = ToRPY(q)
	return s.box
}
