package robot

import (
	"fmt"
	"time"

	"github.com/edaniels/golog"

	"github.com/lynxkit/al5d/pkg/frame"
	"github.com/lynxkit/al5d/pkg/ik"
)

// Arm executes point-to-point motions: inverse kinematics, setpoint mapping,
// one transport command per requested pose. Strictly sequential and open
// loop; every returned error is sequence-ending and the caller is expected to
// abort rather than attempt a corrective move.
type Arm struct {
	cfg       *Config
	transport Transport
	solver    *ik.Solver
	logger    golog.Logger

	// current is the last commanded posture. It seeds the gripper aperture
	// for moves and keeps the published simulator state complete.
	current ik.JointAngles
}

// NewArm assembles an executor from a loaded configuration and an opened
// transport.
func NewArm(cfg *Config, transport Transport, logger golog.Logger) *Arm {
	if logger == nil {
		logger = golog.NewDevelopmentLogger("al5d")
	}
	return &Arm{
		cfg:       cfg,
		transport: transport,
		solver:    ik.NewSolver(),
		logger:    logger,
		current: ik.JointAngles{
			Base:       cfg.DefaultJoints[0],
			Shoulder:   cfg.DefaultJoints[1],
			Elbow:      cfg.DefaultJoints[2],
			WristPitch: cfg.DefaultJoints[3],
			WristRoll:  cfg.DefaultJoints[4],
			Gripper:    cfg.DefaultGripper,
		},
	}
}

// Solver exposes the arm's kinematic model, e.g. for reach checks.
func (a *Arm) Solver() *ik.Solver {
	return a.solver
}

// Current returns the last commanded posture.
func (a *Arm) Current() ik.JointAngles {
	return a.current
}

// Move drives the wrist reference to the target pose. If the pose is
// unreachable or a setpoint falls outside the servo range, nothing is
// transmitted and the error reports the rejected request.
func (a *Arm) Move(target frame.Frame) error {
	joints, err := a.solver.Solve(target)
	if err != nil {
		return fmt.Errorf("move: %w", err)
	}
	joints.Gripper = a.current.Gripper

	setpoints, err := a.cfg.JointSetpoints(joints)
	if err != nil {
		return fmt.Errorf("move: %w", err)
	}

	cmd := &ServoCommand{Setpoints: setpoints, State: jointState(joints)}
	if err := a.transport.Transmit(cmd); err != nil {
		return fmt.Errorf("move: %w", err)
	}

	a.current = joints
	a.logger.Debugf("move: base %.3f shoulder %.3f elbow %.3f pitch %.3f roll %.3f rad",
		joints.Base, joints.Shoulder, joints.Elbow, joints.WristPitch, joints.WristRoll)
	return nil
}

// GoHome commands every channel, gripper included, to its calibrated home
// pulse width. Home is the all-zero posture with the gripper fully open.
func (a *Arm) GoHome() error {
	setpoints := make([]Setpoint, 0, NumChannels)
	for i := 0; i < NumChannels; i++ {
		setpoints = append(setpoints, Setpoint{
			Channel:    a.cfg.Channels[i],
			PulseWidth: a.cfg.Home[i],
			Speed:      a.cfg.Speed,
		})
	}

	home := ik.JointAngles{Gripper: GripperOpenAperture}
	cmd := &ServoCommand{Setpoints: setpoints, State: jointState(home)}
	if err := a.transport.Transmit(cmd); err != nil {
		return fmt.Errorf("go home: %w", err)
	}

	a.current = home
	a.logger.Debugf("go home")
	return nil
}

// Grasp sets the gripper aperture in millimetres. Apertures outside the
// calibrated range are rejected before anything is transmitted.
func (a *Arm) Grasp(aperture float64) error {
	pulse, err := a.cfg.GripperCal.Pulse(aperture)
	if err != nil {
		return fmt.Errorf("grasp: %w", err)
	}

	joints := a.current
	joints.Gripper = aperture
	cmd := &ServoCommand{
		Setpoints: []Setpoint{{
			Channel:    a.cfg.GripperCal.Channel,
			PulseWidth: pulse,
			Speed:      a.cfg.Speed,
		}},
		State: jointState(joints),
	}
	if err := a.transport.Transmit(cmd); err != nil {
		return fmt.Errorf("grasp: %w", err)
	}

	a.current = joints
	a.logger.Debugf("grasp: %.1f mm -> %d us", aperture, pulse)
	return nil
}

// Wait blocks the caller for the given duration. The servos report nothing
// back, so a fixed settling time after each command is the contract: Wait
// never wakes early and offers no cancellation.
func (a *Arm) Wait(d time.Duration) {
	time.Sleep(d)
}

// Close closes the underlying transport.
func (a *Arm) Close() error {
	return a.transport.Close()
}
