package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"go.bug.st/serial"
)

type InitCommand struct {
	Output string `long:"output" default:"robot.cfg" description:"Calibration file to write"`
}

// configTemplate is a starting point with nominal servo values. HOME and
// DEGREE must be refined per robot with a calibration exercise.
const configTemplate = `# AL5D calibration file
# Adjust HOME and DEGREE after calibrating this specific robot.
COM     %s
BAUD    9600
SPEED   500
CHANNEL 0 1 2 3 4 5
HOME    1500 1500 1500 1500 1500 500
DEGREE  10.0 10.0 10.0 10.0 10.0 66.67
WRIST   lightweight
DEFAULT 0 0 0 0 0 30
`

func (c *InitCommand) Execute(args []string) error {
	fmt.Println(headerStyle.Render("AL5D Init"))
	fmt.Println()

	if _, err := os.Stat(c.Output); err == nil {
		return fmt.Errorf("%s already exists; refusing to overwrite a calibration file", c.Output)
	}

	ports, err := serial.GetPortsList()
	if err != nil {
		return fmt.Errorf("list serial ports: %w", err)
	}
	if len(ports) == 0 {
		fmt.Println("No serial ports found.")
		fmt.Println("Make sure the servo controller is connected and powered on.")
		os.Exit(1)
	}

	var port string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Servo controller port").
			Options(huh.NewOptions(ports...)...).
			Value(&port),
	))
	if err := form.Run(); err != nil {
		return err
	}

	content := fmt.Sprintf(configTemplate, port)
	if err := os.WriteFile(c.Output, []byte(content), 0644); err != nil {
		return fmt.Errorf("write %s: %w", c.Output, err)
	}

	fmt.Println()
	fmt.Println(successStyle.Render("Wrote " + c.Output))
	fmt.Println("Calibrate HOME and DEGREE for this robot before driving it.")
	fmt.Println()
	fmt.Println("Run the demonstration with: " + headerStyle.Render("al5d demo"))
	return nil
}
