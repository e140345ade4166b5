// Package frame implements homogeneous-transform algebra for rigid-body poses.
//
// A Frame is a 3×3 orthonormal rotation plus a translation, expressing one
// coordinate system relative to a parent. Frames are pure values: every
// operation returns a new Frame and nothing is mutated in place, so target
// poses can be chained explicitly, e.g.
//
//	t5 := frame.Invert(base).Compose(pose).Compose(frame.Invert(effector))
package frame

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"
)

// Vector3 is a position in millimetres.
type Vector3 = r3.Vector

// Frame is a rigid-body pose relative to a parent coordinate system.
type Frame struct {
	rot *mat.Dense // 3×3 orthonormal rotation
	t   r3.Vector  // translation, mm
}

// Identity returns the identity pose.
func Identity() Frame {
	return Frame{rot: identityRot(), t: r3.Vector{}}
}

// Trans returns a pure-translation Frame.
func Trans(x, y, z float64) Frame {
	return Frame{rot: identityRot(), t: r3.Vector{X: x, Y: y, Z: z}}
}

// RotX returns a pure rotation about the parent x axis. The angle is given in
// degrees; all internal work is in radians.
func RotX(degrees float64) Frame {
	s, c := math.Sincos(degrees * math.Pi / 180)
	return Frame{rot: mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	}), t: r3.Vector{}}
}

// RotY returns a pure rotation about the parent y axis, in degrees.
func RotY(degrees float64) Frame {
	s, c := math.Sincos(degrees * math.Pi / 180)
	return Frame{rot: mat.NewDense(3, 3, []float64{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	}), t: r3.Vector{}}
}

// RotZ returns a pure rotation about the parent z axis, in degrees.
func RotZ(degrees float64) Frame {
	s, c := math.Sincos(degrees * math.Pi / 180)
	return Frame{rot: mat.NewDense(3, 3, []float64{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}), t: r3.Vector{}}
}

// Compose returns a·b, i.e. b interpreted relative to a, expressed relative to
// a's parent. Rotation is Ra·Rb, translation Ra·tb + ta. Composition is
// associative but not commutative; order is significant.
func Compose(a, b Frame) Frame {
	rot := mat.NewDense(3, 3, nil)
	rot.Mul(a.rotation(), b.rotation())
	return Frame{rot: rot, t: a.Apply(b.t)}
}

// Compose returns f·other.
func (f Frame) Compose(other Frame) Frame {
	return Compose(f, other)
}

// Invert returns the inverse pose: rotation Rᵀ, translation −Rᵀ·t.
func Invert(f Frame) Frame {
	rt := mat.NewDense(3, 3, nil)
	rt.CloneFrom(f.rotation().T())
	inv := Frame{rot: rt}
	inv.t = inv.Apply(f.t).Mul(-1)
	return inv
}

// Invert returns the inverse of f.
func (f Frame) Invert() Frame {
	return Invert(f)
}

// Apply rotates v by the Frame's rotation and adds the translation, mapping a
// point expressed in the Frame into its parent.
func (f Frame) Apply(v r3.Vector) r3.Vector {
	r := f.rotation()
	return r3.Vector{
		X: r.At(0, 0)*v.X + r.At(0, 1)*v.Y + r.At(0, 2)*v.Z + f.t.X,
		Y: r.At(1, 0)*v.X + r.At(1, 1)*v.Y + r.At(1, 2)*v.Z + f.t.Y,
		Z: r.At(2, 0)*v.X + r.At(2, 1)*v.Y + r.At(2, 2)*v.Z + f.t.Z,
	}
}

// Translation returns the Frame's position.
func (f Frame) Translation() r3.Vector {
	return f.t
}

// RotationAt returns element (i, j) of the rotation submatrix.
func (f Frame) RotationAt(i, j int) float64 {
	return f.rotation().At(i, j)
}

// ApproachAxis returns the third column of the rotation: the direction of the
// Frame's z axis expressed in the parent.
func (f Frame) ApproachAxis() r3.Vector {
	r := f.rotation()
	return r3.Vector{X: r.At(0, 2), Y: r.At(1, 2), Z: r.At(2, 2)}
}

// ApproxEqual reports whether two Frames agree element-wise within tol.
func (f Frame) ApproxEqual(other Frame, tol float64) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if math.Abs(f.RotationAt(i, j)-other.RotationAt(i, j)) > tol {
				return false
			}
		}
	}
	d := f.t.Sub(other.t)
	return math.Abs(d.X) <= tol && math.Abs(d.Y) <= tol && math.Abs(d.Z) <= tol
}

// String renders the pose as a 3×4 matrix, for diagnostics.
func (f Frame) String() string {
	r := f.rotation()
	return fmt.Sprintf("[%6.3f %6.3f %6.3f | %8.2f]\n[%6.3f %6.3f %6.3f | %8.2f]\n[%6.3f %6.3f %6.3f | %8.2f]",
		r.At(0, 0), r.At(0, 1), r.At(0, 2), f.t.X,
		r.At(1, 0), r.At(1, 1), r.At(1, 2), f.t.Y,
		r.At(2, 0), r.At(2, 1), r.At(2, 2), f.t.Z)
}

// rotation tolerates the zero value by treating a nil rotation as identity.
func (f Frame) rotation() *mat.Dense {
	if f.rot == nil {
		return identityRot()
	}
	return f.rot
}

func identityRot() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})
}
