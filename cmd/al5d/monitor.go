package main

import (
	"encoding/json"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nats-io/nats.go"

	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/streamlinechart"

	"github.com/lynxkit/al5d/pkg/robot"
)

type MonitorCommand struct {
	NatsURL string `long:"nats" default:"nats://127.0.0.1:4222" description:"NATS server the simulator publishes on"`
	Subject string `long:"subject" description:"Topic to subscribe to (defaults to the simulator topic)"`
}

const (
	headerHeight = 2 // title + blank line
	legendHeight = 2 // legend row + blank
	footerHeight = 3 // latest-state line + border
	borderSize   = 2 // chart border
)

// Series names and colors: the five joints plus the gripper.
var seriesNames = []string{"base", "shoulder", "elbow", "wrist_pitch", "wrist_roll", "gripper"}

var seriesColors = map[string]string{
	"base":        "196", // red
	"shoulder":    "208", // orange
	"elbow":       "226", // yellow
	"wrist_pitch": "46",  // green
	"wrist_roll":  "51",  // cyan
	"gripper":     "201", // magenta
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	chartStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type monitorModel struct {
	subject  string
	states   <-chan robot.JointState
	chart    *streamlinechart.Model
	width    int
	height   int
	last     *robot.JointState
	count    int
	quitting bool
}

type stateMsg robot.JointState

func waitForState(states <-chan robot.JointState) tea.Cmd {
	return func() tea.Msg {
		return stateMsg(<-states)
	}
}

func (m *monitorModel) chartSize() (width, height int) {
	if m.width == 0 || m.height == 0 {
		return 80, 20
	}
	width = m.width - borderSize - 2
	if width < 40 {
		width = 40
	}
	height = m.height - headerHeight - legendHeight - footerHeight - borderSize
	if height < 10 {
		height = 10
	}
	return width, height
}

func (m *monitorModel) resizeChart() {
	w, h := m.chartSize()
	m.chart.Resize(w, h)
}

func initialMonitorModel(subject string, states <-chan robot.JointState) monitorModel {
	chart := streamlinechart.New(80, 20,
		streamlinechart.WithYRange(-3.5, 3.5),
	)
	for _, name := range seriesNames {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(seriesColors[name]))
		chart.SetDataSetStyles(name, runes.ThinLineStyle, style)
	}
	return monitorModel{
		subject: subject,
		states:  states,
		chart:   &chart,
	}
}

func (m monitorModel) Init() tea.Cmd {
	return waitForState(m.states)
}

func (m monitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeChart()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case stateMsg:
		state := robot.JointState(msg)
		for i, name := range seriesNames[:5] {
			m.chart.PushDataSet(name, state.Positions[i])
		}
		// Metres are invisible next to radians; chart the aperture scaled up.
		m.chart.PushDataSet("gripper", state.Gripper*10)
		m.chart.DrawAll()
		m.last = &state
		m.count++
		return m, waitForState(m.states)
	}

	return m, nil
}

func (m monitorModel) View() string {
	if m.quitting {
		return "Monitor stopped.\n"
	}

	var sb strings.Builder

	sb.WriteString(titleStyle.Render("AL5D Monitor"))
	sb.WriteString(statusStyle.Render(fmt.Sprintf("  %s  (%d commands)", m.subject, m.count)))
	sb.WriteString("\n\n")

	sb.WriteString(chartStyle.Render(m.chart.View()))
	sb.WriteString("\n")

	sb.WriteString(renderLegend())
	sb.WriteString("\n")

	if m.last == nil {
		sb.WriteString(statusStyle.Render("Waiting for joint states... press 'q' to quit"))
	} else {
		sb.WriteString(statusStyle.Render(fmt.Sprintf(
			"joints (rad): %+.3f %+.3f %+.3f %+.3f %+.3f   gripper: %.0f mm",
			m.last.Positions[0], m.last.Positions[1], m.last.Positions[2],
			m.last.Positions[3], m.last.Positions[4], m.last.Gripper*1000)))
	}
	sb.WriteString("\n")

	return sb.String()
}

func renderLegend() string {
	var items []string
	for _, name := range seriesNames {
		colorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(seriesColors[name])).Bold(true)
		items = append(items, colorStyle.Render("━━")+" "+name)
	}
	return strings.Join(items, "  ")
}

func (c *MonitorCommand) Execute(args []string) error {
	subject := c.Subject
	if subject == "" {
		subject = robot.DefaultSimSubject
	}

	nc, err := nats.Connect(c.NatsURL)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", c.NatsURL, err)
	}
	defer nc.Close()

	states := make(chan robot.JointState, 16)
	sub, err := nc.Subscribe(subject, func(msg *nats.Msg) {
		var state robot.JointState
		if err := json.Unmarshal(msg.Data, &state); err != nil {
			return
		}
		select {
		case states <- state:
		default:
		}
	})
	if err != nil {
		return fmt.Errorf("subscribe to %s: %w", subject, err)
	}
	defer sub.Unsubscribe()

	p := tea.NewProgram(initialMonitorModel(subject, states), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run monitor: %w", err)
	}
	return nil
}
