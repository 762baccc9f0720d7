package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/randify/internal/config"
	"github.com/san-kum/randify/internal/randvar"
	"github.com/san-kum/randify/internal/scenario"
)

const liveStartTrials = 250

// liveModel re-runs a scenario at doubling trial counts so the estimated
// densities can be watched converging toward their final shape.
type liveModel struct {
	scn *scenario.Scenario
	cfg *config.Config

	trials  int
	outputs []*randvar.RandomVariable
	done    bool
	err     error

	width  int
	height int
}

type resultMsg struct {
	trials  int
	outputs []*randvar.RandomVariable
	err     error
}

func newLiveModel(scn *scenario.Scenario, cfg *config.Config) *liveModel {
	return &liveModel{scn: scn, cfg: cfg, trials: liveStartTrials, width: 80, height: 10}
}

func (m *liveModel) runBatch(trials int) tea.Cmd {
	return func() tea.Msg {
		cfg := *m.cfg
		cfg.Trials = trials
		outs, err := m.scn.Run(&cfg)
		return resultMsg{trials: trials, outputs: outs, err: err}
	}
}

func (m *liveModel) Init() tea.Cmd {
	return m.runBatch(m.trials)
}

func (m *liveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width - 12
		if m.width < 20 {
			m.width = 20
		}
	case resultMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.trials = msg.trials
		m.outputs = msg.outputs
		if m.trials >= m.cfg.Trials {
			m.done = true
			return m, nil
		}
		next := m.trials * 2
		if next > m.cfg.Trials {
			next = m.cfg.Trials
		}
		return m, m.runBatch(next)
	}
	return m, nil
}

func (m *liveModel) View() string {
	var b strings.Builder
	b.WriteString(white.Render(fmt.Sprintf("randify live  %s", m.scn.Name)))
	b.WriteString("\n")
	if m.done {
		b.WriteString(green.Render(fmt.Sprintf("converged at %d trials", m.trials)))
	} else {
		b.WriteString(yellow.Render(fmt.Sprintf("running  %d / %d trials", m.trials, m.cfg.Trials)))
	}
	b.WriteString("\n\n")

	for i, rv := range m.outputs {
		plot, err := RenderVariable(m.scn.Outputs[i], rv, m.width, m.height)
		if err != nil {
			b.WriteString(dim.Render(fmt.Sprintf("%s: %v", m.scn.Outputs[i], err)))
			b.WriteString("\n")
			continue
		}
		b.WriteString(plot)
	}

	b.WriteString(dim.Render("q to quit"))
	b.WriteString("\n")
	return b.String()
}

// RunLive opens the interactive convergence viewer for a scenario.
func RunLive(scn *scenario.Scenario, cfg *config.Config) error {
	m := newLiveModel(scn, cfg)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return m.err
}
