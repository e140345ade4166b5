package robot

// Transport delivers one ServoCommand to whatever is on the other end: the
// SSC-32U servo controller over a serial link, or a simulator via a message
// topic. The variant is chosen once when the arm is constructed; call sites
// never branch on it.
//
// Transports are fire-and-forget. The hardware offers no position feedback
// and the simulator sends no acknowledgment, so Transmit returns as soon as
// the command has been handed off.
type Transport interface {
	Transmit(cmd *ServoCommand) error
	Close() error
}
