package robot

import (
	"fmt"
	"strings"

	"github.com/edaniels/golog"
	"go.bug.st/serial"
)

// SerialTransport drives the SSC-32U servo controller over its ASCII serial
// protocol. There is exactly one writer and the controller never talks back,
// so no read path and no locking are needed.
type SerialTransport struct {
	port   serial.Port
	name   string
	logger golog.Logger
}

// OpenSerial opens the configured serial port (8N1).
func OpenSerial(cfg *Config, logger golog.Logger) (*SerialTransport, error) {
	mode := &serial.Mode{
		BaudRate: cfg.Baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(cfg.Port, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", cfg.Port, err)
	}
	logger.Infof("opened %s at %d baud", cfg.Port, cfg.Baud)
	return &SerialTransport{port: port, name: cfg.Port, logger: logger}, nil
}

// Transmit writes the command as a single line in one Write call, so the
// controller always sees a complete command group.
func (t *SerialTransport) Transmit(cmd *ServoCommand) error {
	line := commandLine(cmd.Setpoints)
	t.logger.Debugf("serial > %q", line)
	n, err := t.port.Write([]byte(line))
	if err != nil {
		return &TransmissionError{Op: "serial write", Err: err}
	}
	if n < len(line) {
		return &TransmissionError{Op: "serial write",
			Err: fmt.Errorf("short write: %d of %d bytes", n, len(line))}
	}
	return nil
}

// Close closes the serial port.
func (t *SerialTransport) Close() error {
	return t.port.Close()
}

// commandLine renders setpoints in SSC-32U command form: one
// "#<channel> P<pulse> S<speed>" tuple per channel, carriage-return
// terminated. All tuples on one line move together.
func commandLine(setpoints []Setpoint) string {
	var b strings.Builder
	for _, sp := range setpoints {
		fmt.Fprintf(&b, "#%d P%d S%d ", sp.Channel, sp.PulseWidth, sp.Speed)
	}
	return strings.TrimRight(b.String(), " ") + "\r"
}
