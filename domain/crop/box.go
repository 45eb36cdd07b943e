// Package crop keeps the oriented crop box and its 3D transform handle in
// step. The box is edited either through its center, rotation and scale
// fields or by dragging the handle, which lives in scene units scaled by a
// fixed ratio.
package crop

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Box is an oriented box: Center in world units, RPY as roll/pitch/yaw in
// radians and Scale as the full edge lengths.
type Box struct {
	Center r3.Vec
	RPY    r3.Vec
	Scale  r3.Vec
}

// DefaultBox is the unit box at the origin.
func DefaultBox() Box {
	return Box{Scale: r3.Vec{X: 1, Y: 1, Z: 1}}
}

func (b Box) Orientation() quat.Number {
	return FromRPY(b.RPY.X, b.RPY.Y, b.RPY.Z)
}

// Handle is the draggable transform control in scene units.
type Handle struct {
	Position    r3.Vec
	Orientation quat.Number
	Visible     bool
}
