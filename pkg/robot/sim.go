package robot

import (
	"encoding/json"

	"github.com/edaniels/golog"
)

// DefaultSimSubject is the topic the simulated transport publishes joint
// states on.
const DefaultSimSubject = "lynxmotion.al5d.joints.command"

// Publisher publishes a payload on a named subject. *nats.Conn satisfies
// this directly; ChanPublisher provides a broker-less in-process variant.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// SimTransport publishes each command's joint-state vector as JSON on a
// fixed subject instead of driving hardware. Publishing is fire-and-forget;
// no acknowledgment is expected or awaited.
type SimTransport struct {
	pub     Publisher
	subject string
	logger  golog.Logger
}

// NewSimTransport returns a simulated transport publishing on subject, or on
// DefaultSimSubject when subject is empty.
func NewSimTransport(pub Publisher, subject string, logger golog.Logger) *SimTransport {
	if subject == "" {
		subject = DefaultSimSubject
	}
	return &SimTransport{pub: pub, subject: subject, logger: logger}
}

// Transmit publishes the joint-state vector: five joint angles in radians and
// the gripper aperture in metres.
func (t *SimTransport) Transmit(cmd *ServoCommand) error {
	payload, err := json.Marshal(cmd.State)
	if err != nil {
		return &TransmissionError{Op: "encode joint state", Err: err}
	}
	t.logger.Debugf("publish %s %s", t.subject, payload)
	if err := t.pub.Publish(t.subject, payload); err != nil {
		return &TransmissionError{Op: "publish", Err: err}
	}
	return nil
}

// Close is a no-op; the Publisher's connection belongs to the caller.
func (t *SimTransport) Close() error {
	return nil
}

// Message is one published payload, for in-process consumers.
type Message struct {
	Subject string
	Data    []byte
}

// ChanPublisher delivers published messages on a Go channel. When the channel
// is full the oldest message is dropped in favour of the new one, so a slow
// consumer can never stall a motion sequence.
type ChanPublisher struct {
	C chan Message
}

// NewChanPublisher returns a ChanPublisher with the given buffer size.
func NewChanPublisher(buffer int) *ChanPublisher {
	return &ChanPublisher{C: make(chan Message, buffer)}
}

// Publish sends the message without blocking.
func (p *ChanPublisher) Publish(subject string, data []byte) error {
	msg := Message{Subject: subject, Data: data}
	select {
	case p.C <- msg:
	default:
		select {
		case <-p.C:
		default:
		}
		p.C <- msg
	}
	return nil
}
