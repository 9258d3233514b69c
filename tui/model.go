package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"notebox/player"
)

// Model shows live playback status and forwards quit requests to the
// runner's stop flag. The run loop keeps playing whether or not anyone is
// watching; the model only consumes status snapshots.
type Model struct {
	Runner *player.Runner
	Tempo  int

	status   player.Status
	quitting bool
}

// StatusMsg carries a playback snapshot from the runner.
type StatusMsg player.Status

// DoneMsg is sent when the run loop has returned.
type DoneMsg struct{ Err error }

func NewModel(runner *player.Runner, tempo int) Model {
	return Model{
		Runner: runner,
		Tempo:  tempo,
	}
}

// ListenForStatus waits for the next playback snapshot.
func ListenForStatus(runner *player.Runner) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg(<-runner.StatusChan)
	}
}

func (m Model) Init() tea.Cmd {
	return ListenForStatus(m.Runner)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			m.Runner.Stop()
			return m, tea.Quit
		}

	case StatusMsg:
		m.status = player.Status(msg)
		return m, ListenForStatus(m.Runner)

	case DoneMsg:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	header := headerStyle.Render(fmt.Sprintf(
		"notebox  PLAY  %3dbpm  tick:%06d", m.Tempo, m.status.Tick))

	sounding := fmt.Sprintf("sounding: %d", m.status.Sounding)

	help := dimStyle.Render("q:quit")

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(sounding)
	out.WriteString("\n\n")
	out.WriteString(help)
	return out.String()
}
