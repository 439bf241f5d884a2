package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"careertrack/internal/api"
	"careertrack/internal/engine"
	"careertrack/internal/ui"
)

const (
	fieldSkills = iota
	fieldProjects
	fieldProblems
	fieldCount
)

var fieldLabels = [fieldCount]string{"Learn skills (comma-separated)", "Build projects", "Solve problems"}

// simulatorModel is the what-if board: a base profile, three delta inputs,
// and the projected outcome.
//
// gen is the request generation. It is captured when an async load or
// simulation starts and carried in the resulting message; a message tagged
// with an older generation is a stale response (the target changed while it
// was in flight) and is discarded instead of overwriting fresher state.
type simulatorModel struct {
	deps     deps
	targetID string
	gen      int

	width  int
	height int

	profile *api.Profile
	initial *api.Prediction
	run     *engine.SimulationRun

	inputs [fieldCount]string
	focus  int

	loading bool
	simming bool
	status  string
	err     error
}

type baseLoadedMsg struct {
	gen     int
	profile *api.Profile
	initial *api.Prediction
	err     error
}

type simulatedMsg struct {
	gen int
	run *engine.SimulationRun
	err error
}

func newSimulatorModel(d deps, targetID string) simulatorModel {
	return simulatorModel{
		deps:     d,
		targetID: targetID,
		loading:  true,
		status:   "Loading profile…",
	}
}

func (m simulatorModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m simulatorModel) loadCmd() tea.Cmd {
	gen := m.gen
	return func() tea.Msg {
		ov, err := m.deps.svc.Overview(m.deps.ctx, m.targetID, m.deps.ident)
		msg := baseLoadedMsg{gen: gen, err: err}
		if ov != nil {
			msg.profile = ov.Profile
			msg.initial = ov.Prediction
		}
		return msg
	}
}

func (m simulatorModel) simulateCmd(d engine.Delta) tea.Cmd {
	gen := m.gen
	targetID := m.targetID
	if targetID == "" && m.profile != nil {
		targetID = m.profile.StudentID
	}
	return func() tea.Msg {
		run, err := m.deps.svc.RunSimulation(m.deps.ctx, targetID, m.deps.ident, d)
		return simulatedMsg{gen: gen, run: run, err: err}
	}
}

// retarget switches the board to another profile. The generation bump makes
// any response still in flight for the old target stale on arrival.
func (m simulatorModel) retarget(targetID string) (simulatorModel, tea.Cmd) {
	m.targetID = targetID
	m.gen++
	m.loading = true
	m.profile = nil
	m.initial = nil
	m.run = nil
	m.status = "Loading profile…"
	return m, m.loadCmd()
}

func (m simulatorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case baseLoadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		m.profile = msg.profile
		m.initial = msg.initial
		switch {
		case msg.err != nil:
			m.status = "Load failed: " + msg.err.Error()
		case msg.profile == nil:
			m.status = "No profile found. Create one with 'ctrack profile edit'."
		default:
			m.status = "Adjust the deltas and press enter to simulate."
		}
		return m, nil

	case simulatedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.simming = false
		if msg.err != nil {
			m.status = "Simulation failed: " + msg.err.Error()
			return m, nil
		}
		m.run = msg.run
		m.status = "Done. Edit the deltas and press enter to run again."
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m simulatorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// No plain-letter shortcuts here: every printable key may belong to
	// the focused text field.
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.deps.ident != nil && m.deps.ident.Role == api.RoleAdmin {
			return m, func() tea.Msg { return openRosterMsg{} }
		}
		return m, tea.Quit
	case "tab", "down":
		m.focus = (m.focus + 1) % fieldCount
		return m, nil
	case "shift+tab", "up":
		m.focus = (m.focus + fieldCount - 1) % fieldCount
		return m, nil
	case "ctrl+r":
		var cmd tea.Cmd
		m, cmd = m.retarget(m.targetID)
		return m, cmd
	case "backspace":
		if cur := m.inputs[m.focus]; cur != "" {
			runes := []rune(cur)
			m.inputs[m.focus] = string(runes[:len(runes)-1])
		}
		return m, nil
	case "enter":
		if m.loading || m.simming || m.profile == nil {
			return m, nil
		}
		delta, err := engine.ParseDelta(m.inputs[fieldSkills], m.inputs[fieldProjects], m.inputs[fieldProblems])
		if err != nil {
			// Rejected before any request exists.
			m.status = err.Error()
			return m, nil
		}
		m.simming = true
		m.status = "Simulating…"
		return m, m.simulateCmd(delta)
	}

	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		m.inputs[m.focus] += msg.String()
	}
	return m, nil
}

func (m simulatorModel) View() string {
	var b strings.Builder
	b.WriteString(ui.Heading(ui.IconTarget, "Career Impact Simulator") + "\n\n")

	if m.loading {
		b.WriteString(ui.Muted.Render("Loading…") + "\n")
		return b.String()
	}

	if m.profile != nil {
		b.WriteString(ui.LabelValue("Profile", m.profile.Name) + "  " + ui.Dim.Render(m.profile.StudentID) + "\n")
		if m.initial != nil {
			b.WriteString(ui.LabelValue("Current probability", fmt.Sprintf("%.0f%%", m.initial.PlacementProbability*100)))
			b.WriteString("  " + ui.LabelValue("Risk", ui.RiskText(m.initial.RiskLevel)) + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(ui.H2.Render("What if I…") + "\n")
	for i := 0; i < fieldCount; i++ {
		marker := "  "
		label := ui.Muted.Render(fieldLabels[i])
		if i == m.focus {
			marker = ui.Gold.Render("> ")
			label = ui.Key.Render(fieldLabels[i])
		}
		value := m.inputs[i]
		if value == "" {
			value = ui.Dim.Render("0")
		}
		b.WriteString(fmt.Sprintf("%s%s: %s\n", marker, label, value))
	}
	b.WriteString("\n")

	if m.run != nil {
		var r strings.Builder
		r.WriteString(ui.PanelTitle.Render("Projected Outcome") + "\n")
		r.WriteString(ui.LabelValue("New probability", fmt.Sprintf("%.0f%%", m.run.Simulated.SimulatedProbability*100)) + "\n")
		r.WriteString(ui.LabelValue("Improvement", ui.SignedPercent(m.run.Outcome.DeltaPercent)) + "\n")
		if len(m.run.Outcome.Improvements) > 0 {
			r.WriteString(ui.Muted.Render("Why this helps:") + "\n")
			for _, imp := range m.run.Outcome.Improvements {
				r.WriteString("  " + ui.IconCheck + " " + imp + "\n")
			}
		}
		b.WriteString(ui.Panel.Render(strings.TrimRight(r.String(), "\n")) + "\n\n")
	}

	b.WriteString(ui.Dim.Render(m.status) + "\n")
	b.WriteString(ui.Dim.Render("tab: next field · enter: simulate · ctrl+r: reload · esc: back/quit") + "\n")
	return b.String()
}
