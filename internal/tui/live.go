// Package tui drives a live Bubble Tea view of a glacier run: a
// thickness heatmap redrawn as the solver publishes steps, with a
// metrics sidebar and progress bar.
package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/glacsim/internal/glacier"
	"github.com/san-kum/glacsim/internal/viz"
)

const maxHeatmapCols = 72

type frameMsg struct {
	thickness []float64
	t         float64
	volume    float64
	area      float64
}

type doneMsg struct {
	res *glacier.Result
	err error
}

// streamObserver forwards throttled field snapshots into the TUI.
type streamObserver struct {
	frames    chan frameMsg
	frameRate int
	lastFrame time.Time
	dx2       float64
}

func (o *streamObserver) OnStep(f glacier.Fields, t float64) {
	if time.Since(o.lastFrame) < time.Second/time.Duration(o.frameRate) {
		return
	}
	o.lastFrame = time.Now()

	h := make([]float64, len(f.Thickness))
	copy(h, f.Thickness)
	msg := frameMsg{
		thickness: h,
		t:         t,
		volume:    floats.Sum(f.Thickness) * o.dx2,
		area:      floats.Sum(f.Mask) * o.dx2,
	}
	select {
	case o.frames <- msg:
	default: // drop frames the UI has not consumed
	}
}

type model struct {
	nx     int
	tStart float64
	tStop  float64

	frames chan frameMsg
	done   chan doneMsg

	latest   *frameMsg
	result   *glacier.Result
	err      error
	finished bool
	quitting bool
}

func (m model) Init() tea.Cmd { return m.wait() }

func (m model) wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case f := <-m.frames:
			return f
		case d := <-m.done:
			return d
		}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}
	case frameMsg:
		m.latest = &msg
		return m, m.wait()
	case doneMsg:
		m.result = msg.res
		m.err = msg.err
		m.finished = true
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	if m.latest == nil {
		return viz.Subtle.Render("waiting for first step...") + "\n"
	}

	heat, err := viz.Heatmap(m.latest.thickness, m.nx, maxHeatmapCols)
	if err != nil {
		heat = err.Error()
	}

	progress := 0.0
	if m.tStop > m.tStart {
		progress = (m.latest.t - m.tStart) / (m.tStop - m.tStart)
	}

	side := lipgloss.JoinVertical(lipgloss.Left,
		viz.HeaderStyle.Render("glacsim"),
		fmt.Sprintf("%s %s", viz.MetricLabel.Render("t"), viz.MetricValue.Render(fmt.Sprintf("%.1f a", m.latest.t))),
		fmt.Sprintf("%s %s", viz.MetricLabel.Render("volume"), viz.MetricValue.Render(fmt.Sprintf("%.3f km^3", m.latest.volume/1e9))),
		fmt.Sprintf("%s %s", viz.MetricLabel.Render("area"), viz.MetricValue.Render(fmt.Sprintf("%.2f km^2", m.latest.area/1e6))),
		"",
		viz.ProgressBar(progress, 24),
		"",
		viz.Subtle.Render("q to quit"),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		viz.PanelStyle.Render(heat), " ", side) + "\n"
}

// Run executes the solver under a live terminal view and returns its
// result. frameRate caps heatmap redraws per second.
func Run(sv *glacier.Solver, nx int, tStart, tStop float64, dx float64, frameRate int) (*glacier.Result, error) {
	if frameRate <= 0 {
		frameRate = 30
	}
	obs := &streamObserver{
		frames:    make(chan frameMsg, 1),
		frameRate: frameRate,
		dx2:       dx * dx,
	}
	sv.AddObserver(obs)

	m := model{
		nx:     nx,
		tStart: tStart,
		tStop:  tStop,
		frames: obs.frames,
		done:   make(chan doneMsg, 1),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		res, err := sv.Run(ctx)
		m.done <- doneMsg{res: res, err: err}
	}()

	p := tea.NewProgram(m)
	final, err := p.Run()
	if err != nil {
		return nil, err
	}

	fm := final.(model)
	if fm.finished {
		return fm.result, fm.err
	}
	// user quit early: cancel the run and collect what completed
	cancel()
	d := <-m.done
	return d.res, nil
}
