// Package ik solves the inverse kinematics of a 5-DOF arm with a decoupled
// wrist (base yaw, shoulder pitch, elbow pitch, wrist pitch, wrist roll).
//
// Joint angles are home-relative: an all-zero JointAngles is the calibrated
// home pose, with the upper arm vertical, forearm and gripper horizontal,
// pointing along the base +y axis. All angles are radians; degrees appear only
// in diagnostics.
package ik

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"

	"github.com/lynxkit/al5d/pkg/frame"
)

// Default AL5D geometry, millimetres.
const (
	DefaultBaseHeight = 67.31  // base origin to shoulder axis
	DefaultHumerus    = 146.05 // shoulder axis to elbow axis
	DefaultUlna       = 187.33 // elbow axis to wrist reference point
)

// JointAngles is one arm posture: five home-relative joint angles in radians
// plus the gripper aperture in millimetres.
type JointAngles struct {
	Base       float64
	Shoulder   float64
	Elbow      float64
	WristPitch float64
	WristRoll  float64
	Gripper    float64 // aperture, mm
}

// Angles returns the five joint angles in fixed order.
func (j JointAngles) Angles() [5]float64 {
	return [5]float64{j.Base, j.Shoulder, j.Elbow, j.WristPitch, j.WristRoll}
}

// UnreachableError reports a target pose outside the arm's workspace.
type UnreachableError struct {
	Target r3.Vector // requested wrist point, mm
	Reach  float64   // maximum radial reach from the shoulder, mm
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("target (%.1f, %.1f, %.1f) is outside the reachable workspace (max reach %.1f mm from shoulder)",
		e.Target.X, e.Target.Y, e.Target.Z, e.Reach)
}

// Solver computes joint angles for wrist-reference poses expressed relative to
// the robot base. Callers are expected to have folded the base offset and the
// end-effector offset into the target via frame composition beforehand.
type Solver struct {
	BaseHeight float64 // shoulder axis height above the base origin, mm
	Humerus    float64 // shoulder to elbow link length, mm
	Ulna       float64 // elbow to wrist link length, mm
}

// NewSolver returns a solver with the stock AL5D link geometry.
func NewSolver() *Solver {
	return &Solver{
		BaseHeight: DefaultBaseHeight,
		Humerus:    DefaultHumerus,
		Ulna:       DefaultUlna,
	}
}

// Solve returns the joint angles that place the wrist reference at the given
// pose, or an *UnreachableError when no solution exists.
//
// Closed-form, decoupled wrist. The elbow has two mirror solutions; the
// elbow-up branch (elbow above the shoulder-to-wrist line) is always chosen.
// Wrist roll is the residual rotation about the approach axis after yaw and
// pitch are accounted for; any wrist-type direction reversal is applied later
// by the setpoint mapper, not here.
func (s *Solver) Solve(target frame.Frame) (JointAngles, error) {
	p := target.Translation()

	// Base yaw from the horizontal projection. atan2(x, y): yaw 0 points
	// along +y, positive toward +x.
	yaw := math.Atan2(p.X, p.Y)

	// Planar 2-link problem in the vertical plane through the wrist point.
	r := math.Hypot(p.X, p.Y)
	h := p.Z - s.BaseHeight
	d2 := r*r + h*h

	cosElbow := (d2 - s.Humerus*s.Humerus - s.Ulna*s.Ulna) / (2 * s.Humerus * s.Ulna)
	if cosElbow < -1 || cosElbow > 1 {
		return JointAngles{}, &UnreachableError{Target: p, Reach: s.Humerus + s.Ulna}
	}

	// Elbow-up: the forearm bends downward relative to the upper arm.
	elbow := -math.Acos(cosElbow)
	shoulder := math.Atan2(h, r) - math.Atan2(s.Ulna*math.Sin(elbow), s.Humerus+s.Ulna*math.Cos(elbow))

	// Pitch of the desired approach axis above the horizontal, measured in
	// the arm plane.
	a := target.ApproachAxis()
	radial := a.X*math.Sin(yaw) + a.Y*math.Cos(yaw)
	pitch := math.Atan2(a.Z, radial)

	wristPitch := normalize(pitch - shoulder - elbow)

	// Roll is whatever rotation about the approach axis remains once yaw and
	// pitch are removed from the target orientation.
	res := homeOrientationInv().
		Compose(frame.RotX(-deg(pitch))).
		Compose(frame.RotZ(deg(yaw))).
		Compose(target)
	roll := math.Atan2(res.RotationAt(1, 0), res.RotationAt(0, 0))

	return JointAngles{
		Base:       normalize(yaw),
		Shoulder:   normalize(shoulder - math.Pi/2),
		Elbow:      normalize(elbow + math.Pi/2),
		WristPitch: wristPitch,
		WristRoll:  normalize(roll),
	}, nil
}

// Forward runs the forward kinematics for the same geometry: the pose of the
// wrist reference for a given set of joint angles. The gripper aperture does
// not affect the result.
func (s *Solver) Forward(j JointAngles) frame.Frame {
	yaw := j.Base
	shoulder := j.Shoulder + math.Pi/2
	elbow := j.Elbow - math.Pi/2
	pitch := shoulder + elbow + j.WristPitch

	r := s.Humerus*math.Cos(shoulder) + s.Ulna*math.Cos(shoulder+elbow)
	p := r3.Vector{
		X: r * math.Sin(yaw),
		Y: r * math.Cos(yaw),
		Z: s.BaseHeight + s.Humerus*math.Sin(shoulder) + s.Ulna*math.Sin(shoulder+elbow),
	}

	return frame.Trans(p.X, p.Y, p.Z).
		Compose(frame.RotZ(-deg(yaw))).
		Compose(frame.RotX(deg(pitch))).
		Compose(homeOrientation()).
		Compose(frame.RotZ(deg(j.WristRoll)))
}

// Reach returns the maximum radial distance from the shoulder axis.
func (s *Solver) Reach() float64 {
	return s.Humerus + s.Ulna
}

// homeOrientation is the gripper orientation at the all-zero home posture:
// approach axis along base +y, finger travel along base x.
func homeOrientation() frame.Frame {
	return frame.RotZ(90).Compose(frame.RotY(90))
}

func homeOrientationInv() frame.Frame {
	return frame.RotY(-90).Compose(frame.RotZ(-90))
}

// normalize wraps an angle to (-pi, pi].
func normalize(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

func deg(rad float64) float64 {
	return rad * 180 / math.Pi
}
