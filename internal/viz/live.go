// Package viz provides a terminal live view of an attitude propagation
// using the Bubble Tea framework.
//
// # Key Bindings
//
//	Space - Pause/Resume propagation
//	R     - Reset to the initial attitude
//	Q     - Quit
package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/attsim/attsim/internal/kinematics"
	"github.com/attsim/attsim/internal/rotation"
)

const (
	historyCapacity = 400
	graphWidth      = 60
	graphHeight     = 8
)

type TickMsg time.Time

// Model holds the propagation state and UI history for the live view.
type Model struct {
	stepper  kinematics.Stepper
	rates    kinematics.RateSource
	frame    kinematics.Frame
	q        rotation.Quat
	initialQ rotation.Quat
	t, dt    float64

	scenario string
	running  bool
	fps      int

	yawHistory   []float64
	pitchHistory []float64
	rollHistory  []float64
}

// NewModel initializes the live view for a scenario.
func NewModel(stepper kinematics.Stepper, rates kinematics.RateSource, q0 rotation.Quat, dt float64, frame kinematics.Frame, scenario string, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	return Model{
		stepper:      stepper,
		rates:        rates,
		frame:        frame,
		q:            q0.Normalized(),
		initialQ:     q0.Normalized(),
		dt:           dt,
		scenario:     scenario,
		running:      true,
		fps:          fps,
		yawHistory:   make([]float64, 0, historyCapacity),
		pitchHistory: make([]float64, 0, historyCapacity),
		rollHistory:  make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) reset() {
	m.q = m.initialQ
	m.t = 0
	m.yawHistory = m.yawHistory[:0]
	m.pitchHistory = m.pitchHistory[:0]
	m.rollHistory = m.rollHistory[:0]
}

// step advances the propagation by one frame's worth of simulated time.
func (m *Model) step() {
	substeps := int(1/(float64(m.fps)*m.dt)) + 1
	for i := 0; i < substeps; i++ {
		w := m.rates.Rate(m.t)
		m.q = m.stepper.Step(m.q, w, m.frame, m.dt).Normalized()
		if adv, ok := m.rates.(kinematics.Advancer); ok {
			adv.Advance(m.dt)
		}
		m.t += m.dt
	}

	roll, pitch, yaw := m.q.Euler().Degrees()
	m.yawHistory = pushHistory(m.yawHistory, yaw)
	m.pitchHistory = pushHistory(m.pitchHistory, pitch)
	m.rollHistory = pushHistory(m.rollHistory, roll)
}

func pushHistory(h []float64, v float64) []float64 {
	if len(h) >= historyCapacity {
		h = h[1:]
	}
	return append(h, v)
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("attsim live — %s", m.scenario)))
	b.WriteString("\n")

	e := m.q.Euler()
	roll, pitch, yaw := e.Degrees()
	w := m.rates.Rate(m.t)
	aa := m.q.AxisAngle()

	stats := []string{
		statsRow("time", fmt.Sprintf("%8.2f s", m.t)),
		statsRow("quat", fmt.Sprintf("(%+.4f, %+.4f, %+.4f, %+.4f)", m.q.W, m.q.X, m.q.Y, m.q.Z)),
		statsRow("yaw", fmt.Sprintf("%+8.2f deg", yaw)),
		statsRow("pitch", fmt.Sprintf("%+8.2f deg", pitch)),
		statsRow("roll", fmt.Sprintf("%+8.2f deg", roll)),
		statsRow("axis", fmt.Sprintf("(%+.3f, %+.3f, %+.3f)", aa.Axis().X, aa.Axis().Y, aa.Axis().Z)),
		statsRow("angle", fmt.Sprintf("%+8.2f deg", aa.Angle()*180/math.Pi)),
		statsRow("rate", fmt.Sprintf("(%+.3f, %+.3f, %+.3f) rad/s", w.X, w.Y, w.Z)),
	}
	if !m.running {
		stats = append(stats, pausedStyle.Render("PAUSED"))
	}
	b.WriteString(statsStyle.Render(lipgloss.JoinVertical(lipgloss.Left, stats...)))
	b.WriteString("\n")

	if len(m.yawHistory) > 1 {
		graph := asciigraph.Plot(m.yawHistory,
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("yaw (deg)"),
		)
		b.WriteString(graphStyle.Render(graph))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("space pause · r reset · q quit"))
	b.WriteString("\n")

	return b.String()
}

func statsRow(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}
