// Package tui holds the interactive views. Remote work runs as tea.Cmds
// that resolve into typed messages; views suspended on a load render a
// loading line instead of stale or empty state.
package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"careertrack/internal/api"
	"careertrack/internal/engine"
)

type deps struct {
	ctx   context.Context
	svc   *engine.Service
	ident *api.Identity
}

// Navigation messages bubble up to the home model, which swaps the child.
type openSimulatorMsg struct{ targetID string }
type openRosterMsg struct{}

// landings maps a session role to its landing view. One table instead of
// two route trees: admins land on the roster, students on their simulator.
var landings = map[string]func(deps) tea.Model{
	api.RoleAdmin:   func(d deps) tea.Model { return newRosterModel(d) },
	api.RoleStudent: func(d deps) tea.Model { return newSimulatorModel(d, "") },
}

func landingFor(role string) func(deps) tea.Model {
	if build, ok := landings[role]; ok {
		return build
	}
	return landings[api.RoleStudent]
}

type homeModel struct {
	deps  deps
	child tea.Model
}

func (m homeModel) Init() tea.Cmd {
	return m.child.Init()
}

func (m homeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case openSimulatorMsg:
		child := newSimulatorModel(m.deps, msg.targetID)
		m.child = child
		return m, child.Init()
	case openRosterMsg:
		child := newRosterModel(m.deps)
		m.child = child
		return m, child.Init()
	}
	child, cmd := m.child.Update(msg)
	m.child = child
	return m, cmd
}

func (m homeModel) View() string {
	return m.child.View()
}

// RunHome opens the role-based landing view.
func RunHome(ctx context.Context, svc *engine.Service, ident *api.Identity, out io.Writer) error {
	d := deps{ctx: ctx, svc: svc, ident: ident}
	role := ""
	if ident != nil {
		role = ident.Role
	}
	m := homeModel{deps: d, child: landingFor(role)(d)}
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}

// RunSimulator opens the what-if simulator directly for a target profile.
func RunSimulator(ctx context.Context, svc *engine.Service, ident *api.Identity, targetID string, out io.Writer) error {
	d := deps{ctx: ctx, svc: svc, ident: ident}
	m := homeModel{deps: d, child: newSimulatorModel(d, targetID)}
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}
