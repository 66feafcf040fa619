package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/galton/internal/galton"
	"github.com/san-kum/galton/internal/stats"
)

const (
	plotWidth    = 80
	plotHeight   = 15
	barWidth     = 40
	tickRate     = time.Second / 30
	minBatch     = 1
	defaultBatch = 500
)

type TickMsg time.Time

// LiveModel drops a fixed batch of balls on every tick and redraws the
// histogram until the simulator is done or the user quits.
type LiveModel struct {
	sim      *galton.Simulator
	batch    int
	started  time.Time
	elapsed  time.Duration
	paused   bool
	quitting bool
}

// NewLiveModel drives sim; batch <= 0 picks a default batch size.
func NewLiveModel(sim *galton.Simulator, batch int) LiveModel {
	if batch < minBatch {
		batch = defaultBatch
	}
	return LiveModel{sim: sim, batch: batch, started: time.Now()}
}

func tick() tea.Cmd {
	return tea.Tick(tickRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m LiveModel) Init() tea.Cmd { return tick() }

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			m.elapsed = time.Since(m.started)
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		}
	case TickMsg:
		if !m.paused {
			m.sim.Drop(m.batch)
		}
		if m.sim.Done() {
			m.elapsed = time.Since(m.started)
			return m, tea.Quit
		}
		return m, tick()
	}
	return m, nil
}

func (m LiveModel) View() string {
	cfg := m.sim.Config()
	counts := m.sim.Counts()

	status := StatusRunning.Render("RUNNING")
	switch {
	case m.sim.Done():
		status = StatusDone.Render("DONE")
	case m.quitting:
		status = StatusPaused.Render("STOPPED")
	case m.paused:
		status = StatusPaused.Render("PAUSED")
	}

	var s strings.Builder
	s.WriteString(Title.Render("GALTON BOARD") + "  " + status + "\n\n")
	s.WriteString(fmt.Sprintf("%s %d/%d balls\n", progressBar(m.sim.Completed(), cfg.Balls, barWidth), m.sim.Completed(), cfg.Balls))

	if m.sim.Completed() > 0 {
		chart := PlotHistogram(counts, plotWidth, plotHeight, "balls per bin")
		s.WriteString(graphStyle.Render(chart) + "\n")

		sum := stats.Summarize(counts)
		s.WriteString(metric("Mean", fmt.Sprintf("%.2f", sum.Mean)))
		s.WriteString(metric("StdDev", fmt.Sprintf("%.2f", sum.StdDev)))
	}

	s.WriteString(KeyHint.Render("\nSP:Pause Q:Quit") + "\n")
	return s.String()
}

// Finished reports whether every ball was dropped.
func (m LiveModel) Finished() bool { return m.sim.Done() }

func (m LiveModel) Elapsed() time.Duration { return m.elapsed }

func (m LiveModel) Counts() []int { return m.sim.Counts() }
