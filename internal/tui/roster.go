package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"careertrack/internal/api"
	"careertrack/internal/ui"
)

// rosterModel is the admin landing view: the profile collection with
// per-row navigation and confirm-gated deletes.
type rosterModel struct {
	deps deps

	width  int
	height int

	profiles []api.Profile
	selected int

	loading    bool
	deleting   bool
	confirming bool
	status     string
	err        error
}

type rosterLoadedMsg struct {
	profiles []api.Profile
	err      error
}

type removedMsg struct {
	profiles []api.Profile
	err      error
}

func newRosterModel(d deps) rosterModel {
	return rosterModel{
		deps:    d,
		loading: true,
		status:  "Loading roster…",
	}
}

func (m rosterModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m rosterModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		profiles, err := m.deps.svc.Roster(m.deps.ctx)
		return rosterLoadedMsg{profiles: profiles, err: err}
	}
}

func (m rosterModel) removeCmd(studentID string) tea.Cmd {
	return func() tea.Msg {
		// Delete then re-list, so the view stays consistent with
		// concurrent admin edits.
		profiles, err := m.deps.svc.RemoveProfile(m.deps.ctx, studentID)
		return removedMsg{profiles: profiles, err: err}
	}
}

func (m rosterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case rosterLoadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.status = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.profiles = msg.profiles
		if m.selected >= len(m.profiles) {
			m.selected = 0
		}
		if len(m.profiles) == 0 {
			m.status = "No students yet. Create one with 'ctrack roster create'."
		} else {
			m.status = fmt.Sprintf("%d students.", len(m.profiles))
		}
		return m, nil

	case removedMsg:
		m.deleting = false
		if msg.err != nil {
			m.status = "Delete failed: " + msg.err.Error()
			return m, nil
		}
		m.profiles = msg.profiles
		if m.selected >= len(m.profiles) {
			m.selected = len(m.profiles) - 1
			if m.selected < 0 {
				m.selected = 0
			}
		}
		m.status = "Deleted."
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m rosterModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirming {
		switch msg.String() {
		case "y":
			m.confirming = false
			if m.selected < len(m.profiles) {
				m.deleting = true
				m.status = "Deleting…"
				return m, m.removeCmd(m.profiles[m.selected].StudentID)
			}
			return m, nil
		default:
			m.confirming = false
			m.status = "Cancelled."
			return m, nil
		}
	}

	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	case "r":
		m.loading = true
		m.status = "Refreshing…"
		return m, m.loadCmd()
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil
	case "down", "j":
		if m.selected < len(m.profiles)-1 {
			m.selected++
		}
		return m, nil
	case "enter":
		if m.selected < len(m.profiles) {
			id := m.profiles[m.selected].StudentID
			return m, func() tea.Msg { return openSimulatorMsg{targetID: id} }
		}
		return m, nil
	case "d":
		if m.deleting || m.selected >= len(m.profiles) {
			return m, nil
		}
		m.confirming = true
		m.status = fmt.Sprintf("Delete %s? (y/n)", m.profiles[m.selected].Name)
		return m, nil
	}
	return m, nil
}

func (m rosterModel) View() string {
	var b strings.Builder
	b.WriteString(ui.Heading(ui.IconRoster, "Student Roster") + "\n\n")

	if m.loading {
		b.WriteString(ui.Muted.Render("Loading…") + "\n")
		return b.String()
	}

	for i, p := range m.profiles {
		line := fmt.Sprintf("%s  %s  %s", p.Name, ui.Dim.Render(p.StudentID),
			ui.Muted.Render(fmt.Sprintf("cgpa %.1f · %d skills", p.AcademicDetails.CGPA, len(p.Skills))))
		if i == m.selected {
			line = ui.SelectedRow.Render("> " + p.Name + " ")
			line += "  " + ui.Dim.Render(p.StudentID)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	if len(m.profiles) == 0 {
		b.WriteString(ui.Muted.Render("  (empty)") + "\n")
	}

	b.WriteString("\n" + ui.Dim.Render(m.status) + "\n")
	b.WriteString(ui.Dim.Render("enter: simulate · d: delete · r: refresh · q: quit") + "\n")
	return b.String()
}
