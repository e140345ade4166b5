package robot

import (
	"fmt"
	"math"

	"github.com/lynxkit/al5d/pkg/ik"
)

// Setpoint is one servo command: a physical channel, a target pulse width in
// microseconds and a move speed.
type Setpoint struct {
	Channel    int
	PulseWidth int // microseconds
	Speed      int // microseconds per second
}

// JointState is the joint-angle vector published by the simulated transport:
// five home-relative joint angles in radians and the gripper aperture in
// metres.
type JointState struct {
	Positions [5]float64 `json:"positions"`
	Gripper   float64    `json:"gripper"`
}

// ServoCommand is everything one motion command needs: the per-channel
// setpoints for the serial transport and the joint-state vector for the
// simulated one. Built fresh for every command, never reused.
type ServoCommand struct {
	Setpoints []Setpoint
	State     JointState
}

// JointRangeError reports a joint angle whose mapped pulse width falls
// outside the servo's mechanical range.
type JointRangeError struct {
	Joint JointName
	Pulse int
}

func (e *JointRangeError) Error() string {
	return fmt.Sprintf("joint %s maps to pulse width %d us, outside [%d, %d] us",
		e.Joint, e.Pulse, minPulse, maxPulse)
}

// Servo pulse widths beyond these bounds drive the horn against its stops.
const (
	minPulse = 500
	maxPulse = 2500
)

// GripperCalibration is the gripper's linear aperture-to-pulse relation,
// bounded by the fully-open and fully-closed pulse widths.
type GripperCalibration struct {
	Channel     int
	OpenPulse   int     // pulse width at MaxAperture, microseconds
	ClosedPulse int     // pulse width at aperture 0, microseconds
	MaxAperture float64 // mm
}

// Pulse maps an aperture in millimetres to a pulse width. Requests outside
// [0, MaxAperture] return a *GripperRangeError: closing against an
// obstruction must be rejected, not clamped.
func (g GripperCalibration) Pulse(aperture float64) (int, error) {
	if aperture < 0 || aperture > g.MaxAperture {
		return 0, &GripperRangeError{Aperture: aperture, Max: g.MaxAperture}
	}
	frac := aperture / g.MaxAperture
	return g.ClosedPulse + int(math.Round(frac*float64(g.OpenPulse-g.ClosedPulse))), nil
}

// JointSetpoints maps the five joint angles to servo setpoints:
//
//	pulse[i] = home[i] + direction[i] * degrees(angle[i]) * degreePulse[i]
//
// A commanded angle of zero maps to exactly the home pulse width. The
// direction multipliers already carry the wrist-type roll reversal.
func (c *Config) JointSetpoints(j ik.JointAngles) ([]Setpoint, error) {
	angles := j.Angles()
	joints := AllJoints()
	setpoints := make([]Setpoint, 0, len(angles))
	for i, angle := range angles {
		degrees := angle * 180 / math.Pi
		pulse := c.Home[i] + int(math.Round(c.Directions[i]*degrees*c.DegreePulse[i]))
		if pulse < minPulse || pulse > maxPulse {
			return nil, &JointRangeError{Joint: joints[i], Pulse: pulse}
		}
		setpoints = append(setpoints, Setpoint{
			Channel:    c.Channels[i],
			PulseWidth: pulse,
			Speed:      c.Speed,
		})
	}
	return setpoints, nil
}

// jointState packs a posture into the wire form used by the simulator.
func jointState(j ik.JointAngles) JointState {
	return JointState{
		Positions: j.Angles(),
		Gripper:   j.Gripper / 1000, // mm to metres
	}
}
