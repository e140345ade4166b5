package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/edaniels/golog"
	"github.com/nats-io/nats.go"

	"github.com/lynxkit/al5d/pkg/frame"
	"github.com/lynxkit/al5d/pkg/robot"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type DemoCommand struct {
	Input   string `long:"input" default:"demo_input.txt" description:"Input file whose first token is the calibration filename"`
	Sim     bool   `long:"sim" description:"Publish joint angles to a simulator instead of driving hardware"`
	NatsURL string `long:"nats" default:"nats://127.0.0.1:4222" description:"NATS server for the simulated transport"`
}

// effectorLength is the gripper tip offset from the wrist reference along
// the approach axis, in millimetres.
const effectorLength = 100.0

// settle is how long the servos are given to finish each point-to-point
// move. Open loop: there is no feedback to wait on.
const settle = 3 * time.Second

func (c *DemoCommand) Execute(args []string) error {
	fmt.Println(headerStyle.Render("AL5D Demonstration"))
	fmt.Println(dimStyle.Render("━━━━━━━━━━━━━━━━━━"))
	fmt.Println()

	logger := golog.NewDevelopmentLogger("al5d")

	cfgPath, err := readInputFile(c.Input)
	if err != nil {
		return err
	}
	cfg, err := robot.LoadConfig(cfgPath)
	if err != nil {
		return err
	}
	fmt.Printf("Loaded calibration from %s\n", cfgPath)

	var transport robot.Transport
	if c.Sim {
		nc, err := nats.Connect(c.NatsURL)
		if err != nil {
			return fmt.Errorf("connect to %s: %w", c.NatsURL, err)
		}
		defer nc.Close()
		transport = robot.NewSimTransport(nc, "", logger)
		fmt.Printf("Simulated transport, publishing on %s\n", robot.DefaultSimSubject)
	} else {
		transport, err = robot.OpenSerial(cfg, logger)
		if err != nil {
			return err
		}
		fmt.Printf("Serial transport on %s\n", cfg.Port)
	}

	arm := robot.NewArm(cfg, transport, logger)
	defer arm.Close()

	if err := runSequence(arm); err != nil {
		// Every failure is sequence-ending: a corrective move from an
		// unknown posture risks damaging the arm.
		fmt.Fprintln(os.Stderr, "demonstration aborted:", err)
		return err
	}

	fmt.Println()
	fmt.Println(successStyle.Render("Demonstration complete."))
	return nil
}

// readInputFile returns the first whitespace-separated token of the input
// file: the name of the robot calibration file to use.
func readInputFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read input file: %w", err)
	}
	fields := strings.Fields(string(data))
	if len(fields) == 0 {
		return "", fmt.Errorf("input file %s names no calibration file", path)
	}
	return fields[0], nil
}

// runSequence executes the fixed pick-and-place demonstration: example poses
// built by frame composition, an approach-grasp-retreat of an object on the
// work surface, and a transfer to the tray.
func runSequence(arm *robot.Arm) error {
	// Grasp-frame parameters, millimetres on the work surface.
	const (
		objectX, objectY = 0.0, 187.0
		objectTheta      = -90.0 // object orientation about vertical, degrees
		trayX, trayY     = 150.0, 100.0
		trayZ            = 100.0
		approachDistance = 100.0
	)

	effector := frame.Trans(0, 0, effectorLength) // gripper tip in the wrist frame
	base := frame.Trans(0, 0, 0)                  // robot base frame

	// Wrist target for a tip pose: inv(Z) * pose * inv(E).
	wristTarget := func(pose frame.Frame) frame.Frame {
		return frame.Invert(base).Compose(pose).Compose(frame.Invert(effector))
	}

	step("home position")
	if err := arm.GoHome(); err != nil {
		return err
	}
	arm.Wait(2 * time.Second)

	step("align gripper with base frame")
	pose := frame.Trans(0, 187, 216+effectorLength)
	if err := arm.Move(wristTarget(pose)); err != nil {
		return err
	}
	arm.Wait(settle)

	step("rotate wrist 90 degrees")
	pose = frame.Trans(0, 187, 216+effectorLength).Compose(frame.RotZ(90))
	if err := arm.Move(wristTarget(pose)); err != nil {
		return err
	}
	arm.Wait(settle)

	step("home pose by composition")
	pose = frame.Trans(0, 187+effectorLength, 216).Compose(frame.RotZ(90)).Compose(frame.RotY(90))
	if err := arm.Move(wristTarget(pose)); err != nil {
		return err
	}
	arm.Wait(settle)

	// Same pose, different rotation chain.
	step("home pose, alternate composition")
	pose = frame.Trans(0, 187+effectorLength, 216).Compose(frame.RotY(90)).Compose(frame.RotX(-90))
	if err := arm.Move(wristTarget(pose)); err != nil {
		return err
	}
	arm.Wait(settle)

	// Grasp the object from above.
	objectGrasp := frame.Trans(objectX, objectY, 0).
		Compose(frame.RotY(180)).
		Compose(frame.RotZ(objectTheta))
	approach := frame.Trans(0, 0, -approachDistance) // relative to the grasp frame

	step("approach pose above the object")
	if err := arm.Move(wristTarget(objectGrasp.Compose(approach))); err != nil {
		return err
	}
	arm.Wait(settle)

	step("open gripper")
	if err := arm.Grasp(robot.GripperOpenAperture); err != nil {
		return err
	}
	arm.Wait(time.Second)

	step("grasp pose")
	if err := arm.Move(wristTarget(objectGrasp)); err != nil {
		return err
	}
	arm.Wait(settle)

	// 15 mm is the width of the demo block. Closing fully against the block
	// would stall the gripper servo.
	step("close gripper on the object")
	if err := arm.Grasp(15); err != nil {
		return err
	}
	arm.Wait(time.Second)

	step("retreat to the approach pose")
	if err := arm.Move(wristTarget(objectGrasp.Compose(approach))); err != nil {
		return err
	}
	arm.Wait(settle)

	step("transfer to the tray")
	trayPose := frame.Trans(trayX, trayY, trayZ).
		Compose(frame.RotY(180)).
		Compose(frame.RotZ(-90))
	if err := arm.Move(wristTarget(trayPose)); err != nil {
		return err
	}
	arm.Wait(settle)

	step("release the object")
	if err := arm.Grasp(robot.GripperOpenAperture); err != nil {
		return err
	}
	arm.Wait(time.Second)

	// Leave the arm near the controller's power-on posture.
	step("return home")
	if err := arm.GoHome(); err != nil {
		return err
	}
	arm.Wait(2 * time.Second)

	return nil
}

func step(name string) {
	fmt.Println(dimStyle.Render("→ ") + name)
}
