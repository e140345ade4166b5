// Package al5d provides task-level control of a Lynxmotion AL5D robot arm.
//
// Target poses are built by composing homogeneous transforms (Frames); an
// inverse-kinematics solver maps each pose to joint angles, a calibration
// table maps angles to servo pulse widths, and a motion executor issues one
// command per pose to the SSC-32U servo controller over a serial link, or to
// a simulator over a message topic.
//
// # Usage
//
// Write a per-robot calibration file, then run the demonstration sequence:
//
//	al5d demo --input demo_input.txt
//
// Against a simulator, publishing joint angles over NATS:
//
//	al5d demo --sim --nats nats://127.0.0.1:4222
//	al5d monitor
//
// # Packages
//
// The module is organized into the following packages:
//
//   - cmd/al5d: CLI with demo, monitor and init commands
//   - pkg/frame: homogeneous-transform (Frame) algebra
//   - pkg/ik: closed-form inverse kinematics for the 5-DOF arm
//   - pkg/robot: calibration, setpoint mapping, transports, motion executor
package al5d
