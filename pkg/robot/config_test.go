package robot

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const goodConfig = `# robot 3, recalibrated
COM     /dev/ttyUSB0
BAUD    9600
SPEED   500
CHANNEL 0 1 2 3 4 5
HOME    1450 1520 1500 1510 1480 500
DEGREE  10.0 10.6 10.6 9.5 10.0 66.67
WRIST   lightweight
DEFAULT 0 0 0 0 0 30
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "robot.cfg")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// testConfig returns a valid in-memory configuration with derived fields
// populated, shared by the setpoint and executor tests.
func testConfig() *Config {
	cfg := &Config{
		Port:        "/dev/ttyUSB0",
		Baud:        9600,
		Speed:       500,
		Channels:    [NumChannels]int{0, 1, 2, 3, 4, 5},
		Home:        [NumChannels]int{1450, 1520, 1500, 1510, 1480, 500},
		DegreePulse: [NumChannels]float64{10.0, 10.6, 10.6, 9.5, 10.0, 66.67},
		Wrist:       WristLightweight,
	}
	cfg.derive()
	return cfg
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, goodConfig))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Port != "/dev/ttyUSB0" {
		t.Errorf("Port = %q, want /dev/ttyUSB0", cfg.Port)
	}
	if cfg.Baud != 9600 {
		t.Errorf("Baud = %d, want 9600", cfg.Baud)
	}
	if cfg.Speed != 500 {
		t.Errorf("Speed = %d, want 500", cfg.Speed)
	}
	if cfg.Channels != [NumChannels]int{0, 1, 2, 3, 4, 5} {
		t.Errorf("Channels = %v", cfg.Channels)
	}
	if cfg.Home[1] != 1520 {
		t.Errorf("Home[1] = %d, want 1520", cfg.Home[1])
	}
	if cfg.DegreePulse[3] != 9.5 {
		t.Errorf("DegreePulse[3] = %g, want 9.5", cfg.DegreePulse[3])
	}
	if cfg.Wrist != WristLightweight {
		t.Errorf("Wrist = %q", cfg.Wrist)
	}
	if cfg.DefaultGripper != 30 {
		t.Errorf("DefaultGripper = %g, want 30", cfg.DefaultGripper)
	}
}

func TestLoadConfig_Directions(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, goodConfig))
	if err != nil {
		t.Fatal(err)
	}
	want := [NumChannels]float64{1, 1, -1, -1, 1, 1}
	if cfg.Directions != want {
		t.Errorf("Directions = %v, want %v", cfg.Directions, want)
	}
}

func TestLoadConfig_HeavyDutyReversesRoll(t *testing.T) {
	heavy := writeConfig(t, strings.Replace(goodConfig, "lightweight", "heavyduty", 1))
	cfg, err := LoadConfig(heavy)
	if err != nil {
		t.Fatal(err)
	}
	if got := cfg.Directions[jointIndex(WristRoll)]; got != -1 {
		t.Errorf("wrist-roll direction = %g, want -1", got)
	}
	// Other joints are untouched.
	if got := cfg.Directions[jointIndex(BaseRotate)]; got != 1 {
		t.Errorf("base direction = %g, want 1", got)
	}
}

func TestLoadConfig_GripperCalibration(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, goodConfig))
	if err != nil {
		t.Fatal(err)
	}
	gc := cfg.GripperCal
	if gc.Channel != 5 {
		t.Errorf("gripper channel = %d, want 5", gc.Channel)
	}
	if gc.OpenPulse != 500 {
		t.Errorf("open pulse = %d, want 500 (home)", gc.OpenPulse)
	}
	// closed = open + 66.67 us/mm * 30 mm
	if gc.ClosedPulse != 2500 {
		t.Errorf("closed pulse = %d, want 2500", gc.ClosedPulse)
	}
	if gc.MaxAperture != GripperOpenAperture {
		t.Errorf("max aperture = %g", gc.MaxAperture)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing file is handled separately", ""},
		{"unknown key", goodConfig + "EXTRA 1\n"},
		{"duplicate key", goodConfig + "BAUD 9600\n"},
		{"wrong arity", "COM x\nBAUD 9600\nSPEED 500\nCHANNEL 0 1 2\nHOME 1500 1500 1500 1500 1500 1500\nDEGREE 10 10 10 10 10 10\nWRIST lightweight\nDEFAULT 0 0 0 0 0 30\n"},
		{"bad number", "COM x\nBAUD nine\nSPEED 500\nCHANNEL 0 1 2 3 4 5\nHOME 1500 1500 1500 1500 1500 1500\nDEGREE 10 10 10 10 10 10\nWRIST lightweight\nDEFAULT 0 0 0 0 0 30\n"},
		{"bad wrist type", "COM x\nBAUD 9600\nSPEED 500\nCHANNEL 0 1 2 3 4 5\nHOME 1500 1500 1500 1500 1500 1500\nDEGREE 10 10 10 10 10 10\nWRIST mediumduty\nDEFAULT 0 0 0 0 0 30\n"},
		{"duplicate channel", "COM x\nBAUD 9600\nSPEED 500\nCHANNEL 0 1 2 3 4 4\nHOME 1500 1500 1500 1500 1500 1500\nDEGREE 10 10 10 10 10 10\nWRIST lightweight\nDEFAULT 0 0 0 0 0 30\n"},
		{"home out of range", "COM x\nBAUD 9600\nSPEED 500\nCHANNEL 0 1 2 3 4 5\nHOME 1500 1500 9999 1500 1500 1500\nDEGREE 10 10 10 10 10 10\nWRIST lightweight\nDEFAULT 0 0 0 0 0 30\n"},
		{"missing key", "COM x\nBAUD 9600\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			if tt.content == "" {
				_, err = LoadConfig(filepath.Join(t.TempDir(), "nope.cfg"))
			} else {
				_, err = LoadConfig(writeConfig(t, tt.content))
			}
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var ce *ConfigError
			if !errors.As(err, &ce) {
				t.Errorf("error %v is not a *ConfigError", err)
			}
		})
	}
}
