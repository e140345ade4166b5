// Package robot maps joint angles to servo setpoints and issues motion
// commands to an AL5D arm through a serial or simulated transport.
package robot

// JointName identifies a joint in the arm.
type JointName string

// Joint names in servo-channel order. The gripper rides on the sixth channel.
const (
	BaseRotate JointName = "base_rotate"
	Shoulder   JointName = "shoulder"
	Elbow      JointName = "elbow"
	WristPitch JointName = "wrist_pitch"
	WristRoll  JointName = "wrist_roll"
	Gripper    JointName = "gripper"
)

// NumChannels is the number of servo channels: five joints plus the gripper.
const NumChannels = 6

// AllJoints returns all joint names in channel order. The CHANNEL, HOME and
// DEGREE configuration arrays are indexed by this same ordering.
func AllJoints() []JointName {
	return []JointName{
		BaseRotate,
		Shoulder,
		Elbow,
		WristPitch,
		WristRoll,
		Gripper,
	}
}
