package robot

import "fmt"

// ConfigError reports a missing, malformed or incomplete calibration file.
// Fatal at startup; the arm is never driven with a partial configuration.
type ConfigError struct {
	Path string // configuration file, if known
	Key  string // offending key, if known
	Err  error
}

func (e *ConfigError) Error() string {
	switch {
	case e.Key != "":
		return fmt.Sprintf("configuration %s: key %s: %v", e.Path, e.Key, e.Err)
	case e.Path != "":
		return fmt.Sprintf("configuration %s: %v", e.Path, e.Err)
	default:
		return fmt.Sprintf("configuration: %v", e.Err)
	}
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// GripperRangeError reports a requested aperture outside the calibrated
// range. Over-driving the gripper against an obstruction stalls the servo, so
// out-of-range requests are rejected rather than clamped.
type GripperRangeError struct {
	Aperture float64 // requested, mm
	Max      float64 // calibrated maximum, mm
}

func (e *GripperRangeError) Error() string {
	return fmt.Sprintf("gripper aperture %.1f mm outside calibrated range [0, %.1f] mm", e.Aperture, e.Max)
}

// TransmissionError reports a transport write failure. The motion sequence
// must be aborted: the controller state is unknown after a partial write.
type TransmissionError struct {
	Op  string // "serial write", "publish", ...
	Err error
}

func (e *TransmissionError) Error() string {
	return fmt.Sprintf("transmission failed during %s: %v", e.Op, e.Err)
}

func (e *TransmissionError) Unwrap() error {
	return e.Err
}
