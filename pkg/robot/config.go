package robot

import (
	"bufio"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// WristType selects the mechanical wrist variant. The heavy-duty wrist
// reverses the roll coupling, which shows up as a negated direction
// multiplier for the wrist-roll channel.
type WristType string

const (
	WristLightweight WristType = "lightweight"
	WristHeavyDuty   WristType = "heavyduty"
)

// GripperOpenAperture is the fully-open gripper aperture in millimetres.
const GripperOpenAperture = 30.0

// assemblyDirections are the fixed per-joint signs imposed by how the servos
// are mounted: elbow and wrist-pitch servos are installed mirrored.
var assemblyDirections = [NumChannels]float64{1, 1, -1, -1, 1, 1}

// Config is the per-robot calibration, loaded once from a key-value file and
// read-only afterwards. The three six-entry arrays are positionally aligned
// to AllJoints() ordering.
type Config struct {
	Port  string // serial port name, e.g. COM6 or /dev/ttyUSB0
	Baud  int
	Speed int // default servo move speed, microseconds per second

	Channels    [NumChannels]int     // servo-controller pin per joint
	Home        [NumChannels]int     // pulse width at the home pose, microseconds
	DegreePulse [NumChannels]float64 // pulse width per degree (per mm for the gripper)

	Wrist          WristType
	DefaultJoints  [5]float64 // initial joint angles, radians
	DefaultGripper float64    // initial gripper aperture, mm

	// Derived at load time.
	Directions [NumChannels]float64 // per-joint direction multipliers, ±1
	GripperCal GripperCalibration
}

// configKeys are the required keys and the number of values each carries.
var configKeys = map[string]int{
	"COM":     1,
	"BAUD":    1,
	"SPEED":   1,
	"CHANNEL": NumChannels,
	"HOME":    NumChannels,
	"DEGREE":  NumChannels,
	"WRIST":   1,
	"DEFAULT": 6,
}

// LoadConfig reads a robot calibration file. The format is one key per line
// with space-separated values:
//
//	COM     /dev/ttyUSB0
//	BAUD    9600
//	SPEED   500
//	CHANNEL 0 1 2 3 4 5
//	HOME    1500 1500 1500 1500 1500 1500
//	DEGREE  10.0 10.6 10.6 9.5 10.0 66.7
//	WRIST   lightweight
//	DEFAULT 0 0 0 0 0 30
//
// Blank lines and lines starting with '#' are ignored. Any missing,
// duplicate or malformed key is a *ConfigError.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	defer f.Close()

	cfg := &Config{}
	seen := map[string]bool{}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		key, values := fields[0], fields[1:]

		want, ok := configKeys[key]
		if !ok {
			return nil, &ConfigError{Path: path, Key: key, Err: errors.New("unknown key")}
		}
		if seen[key] {
			return nil, &ConfigError{Path: path, Key: key, Err: errors.New("duplicate key")}
		}
		if len(values) != want {
			return nil, &ConfigError{Path: path, Key: key,
				Err: fmt.Errorf("expected %d values, got %d", want, len(values))}
		}
		seen[key] = true

		if err := cfg.setKey(key, values); err != nil {
			return nil, &ConfigError{Path: path, Key: key, Err: err}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}

	for key := range configKeys {
		if !seen[key] {
			return nil, &ConfigError{Path: path, Key: key, Err: errors.New("missing key")}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.derive()
	return cfg, nil
}

func (c *Config) setKey(key string, values []string) error {
	switch key {
	case "COM":
		c.Port = values[0]
	case "BAUD":
		return parseInt(values[0], &c.Baud)
	case "SPEED":
		return parseInt(values[0], &c.Speed)
	case "CHANNEL":
		for i, v := range values {
			if err := parseInt(v, &c.Channels[i]); err != nil {
				return err
			}
		}
	case "HOME":
		for i, v := range values {
			if err := parseInt(v, &c.Home[i]); err != nil {
				return err
			}
		}
	case "DEGREE":
		for i, v := range values {
			if err := parseFloat(v, &c.DegreePulse[i]); err != nil {
				return err
			}
		}
	case "WRIST":
		c.Wrist = WristType(values[0])
	case "DEFAULT":
		for i := 0; i < 5; i++ {
			if err := parseFloat(values[i], &c.DefaultJoints[i]); err != nil {
				return err
			}
		}
		return parseFloat(values[5], &c.DefaultGripper)
	}
	return nil
}

// Validate checks the loaded values for physical plausibility.
func (c *Config) Validate() error {
	if c.Port == "" {
		return &ConfigError{Key: "COM", Err: errors.New("empty port name")}
	}
	if c.Baud <= 0 {
		return &ConfigError{Key: "BAUD", Err: fmt.Errorf("invalid baud rate %d", c.Baud)}
	}
	if c.Speed <= 0 {
		return &ConfigError{Key: "SPEED", Err: fmt.Errorf("invalid speed %d", c.Speed)}
	}
	if c.Wrist != WristLightweight && c.Wrist != WristHeavyDuty {
		return &ConfigError{Key: "WRIST", Err: fmt.Errorf("unknown wrist type %q", c.Wrist)}
	}
	used := map[int]bool{}
	for i, ch := range c.Channels {
		if ch < 0 || ch > 31 {
			return &ConfigError{Key: "CHANNEL", Err: fmt.Errorf("channel %d out of range [0, 31]", ch)}
		}
		if used[ch] {
			return &ConfigError{Key: "CHANNEL", Err: fmt.Errorf("channel %d assigned twice", ch)}
		}
		used[ch] = true
		if c.Home[i] < 500 || c.Home[i] > 2500 {
			return &ConfigError{Key: "HOME", Err: fmt.Errorf("home pulse %d outside [500, 2500] us", c.Home[i])}
		}
		if c.DegreePulse[i] <= 0 {
			return &ConfigError{Key: "DEGREE", Err: fmt.Errorf("non-positive calibration %g", c.DegreePulse[i])}
		}
	}
	return nil
}

// derive computes the per-joint direction multipliers and the gripper
// calibration from the loaded values.
func (c *Config) derive() {
	c.Directions = assemblyDirections
	if c.Wrist == WristHeavyDuty {
		gi := jointIndex(WristRoll)
		c.Directions[gi] = -c.Directions[gi]
	}

	gi := jointIndex(Gripper)
	open := c.Home[gi] // home pose has the gripper fully open
	closed := open + int(math.Round(c.Directions[gi]*c.DegreePulse[gi]*GripperOpenAperture))
	c.GripperCal = GripperCalibration{
		Channel:     c.Channels[gi],
		OpenPulse:   open,
		ClosedPulse: closed,
		MaxAperture: GripperOpenAperture,
	}
}

// jointIndex returns a joint's position in the configuration arrays.
func jointIndex(name JointName) int {
	for i, j := range AllJoints() {
		if j == name {
			return i
		}
	}
	return -1
}

func parseInt(s string, out *int) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("invalid integer %q", s)
	}
	*out = v
	return nil
}

func parseFloat(s string, out *float64) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q", s)
	}
	*out = v
	return nil
}
