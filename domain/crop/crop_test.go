package crop

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

const tol = 1e-9

func near(a, b r3.Vec) bool {
	return r3.Norm(r3.Sub(a, b)) < tol
}

func TestRPYRoundTrip(t *testing.T) {
	cases := []r3.Vec{
		{},
		{X: 0.3, Y: -0.2, Z: 1.1},
		{X: -2.5, Y: 1.2, Z: -3},
		{X: math.Pi / 4, Y: math.Pi / 6, Z: math.Pi / 3},
	}
	for _, rpy := range cases {
		got := ToRPY(FromRPY(rpy.X, rpy.Y, rpy.Z))
		if !near(got, rpy) {
			t.Fatalf("round trip of %v gave %v", rpy, got)
		}
	}
}

func TestFromRPY_Convention(t *testing.T) {
	// yaw only rotates x onto y
	q := FromRPY(0, 0, math.Pi/2)
	got := r3.Rotation(q).Rotate(r3.Vec{X: 1})
	if !near(got, r3.Vec{Y: 1}) {
		t.Fatalf("expected +y, got %v", got)
	}
	// roll is applied before yaw
	q = FromRPY(math.Pi/2, 0, math.Pi/2)
	got = r3.Rotation(q).Rotate(r3.Vec{Y: 1})
	// Rx(90) maps y to z, Rz(90) leaves z alone
	if !near(got, r3.Vec{Z: 1}) {
		t.Fatalf("expected +z, got %v", got)
	}
}

func TestSync_FieldToHandle(t *testing.T) {
	s := NewSync(10, DefaultBox())
	s.SetCenter(r3.Vec{X: 1, Y: -2, Z: 0.5})
	s.SetRotation(r3.Vec{X: 0.1, Y: 0.2, Z: 0.3})
	h := s.Handle()
	if !near(h.Position, r3.Vec{X: 10, Y: -20, Z: 5}) {
		t.Fatalf("handle position %v", h.Position)
	}
	if !near(ToRPY(h.Orientation), s.Box().RPY) {
		t.Fatalf("handle orientation %v disagrees with %v", ToRPY(h.Orientation), s.Box().RPY)
	}
}

func TestSync_HandleToField(t *testing.T) {
	s := NewSync(10, DefaultBox())
	s.SetScale(r3.Vec{X: 2, Y: 2, Z: 2})
	q := FromRPY(-0.4, 0.7, 2.0)
	box := s.HandleMoved(r3.Vec{X: 5, Y: 0, Z: -5}, quat.Scale(3, q))
	if !near(box.Center, r3.Vec{X: 0.5, Z: -0.5}) {
		t.Fatalf("center %v", box.Center)
	}
	if !near(box.RPY, r3.Vec{X: -0.4, Y: 0.7, Z: 2.0}) {
		t.Fatalf("rpy %v", box.RPY)
	}
	if box.Scale != (r3.Vec{X: 2, Y: 2, Z: 2}) {
		t.Fatalf("scale changed to %v", box.Scale)
	}
	if math.Abs(quat.Abs(s.Handle().Orientation)-1) > tol {
		t.Fatal("handle orientation should be normalized")
	}
}

func TestSync_NonPositiveRatio(t *testing.T) {
	s := NewSync(0, DefaultBox())
	if s.Ratio() != 1 {
		t.Fatalf("expected ratio 1, got %v", s.Ratio())
	}
}
