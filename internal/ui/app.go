package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/simonbystrom/teampulse/internal/app"
	"github.com/simonbystrom/teampulse/internal/config"
	"github.com/simonbystrom/teampulse/internal/idle"
	"github.com/simonbystrom/teampulse/internal/member"
	"github.com/simonbystrom/teampulse/internal/role"
)

type view int

const (
	viewDashboard view = iota
	viewAssign
)

// IdleMsg reports that the inactivity monitor marked a member offline.
type IdleMsg struct {
	Member member.Member
	OK     bool
}

// ReloadedMsg reports that state was replaced by an external write.
type ReloadedMsg struct{}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type AppModel struct {
	app        *app.App
	monitor    *idle.Monitor
	styles     Styles
	activeView view

	dashboard     dashboardModel
	memberView    memberViewModel
	assign        assignModel
	notifications notifications

	width  int
	height int
}

// NewApp builds the root model. monitor may be nil when inactivity
// tracking is disabled.
func NewApp(cfg config.Config, a *app.App, monitor *idle.Monitor) AppModel {
	s := NewStyles(cfg.Colors)
	return AppModel{
		app:        a,
		monitor:    monitor,
		styles:     s,
		activeView: viewDashboard,
		dashboard:  newDashboard(s, a),
		memberView: newMemberView(s, a, monitor),
	}
}

func (m AppModel) Init() tea.Cmd {
	return tickCmd()
}

func (m AppModel) notify(text string, style lipgloss.Style) AppModel {
	m.notifications = m.notifications.add(text, style)
	return m
}

func (m AppModel) touch() {
	if m.monitor != nil {
		m.monitor.Touch()
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.dashboard.width = msg.Width
		m.dashboard.height = msg.Height
		m.assign.width = msg.Width
		return m, nil

	case tickMsg:
		// Keeps the inactivity countdown current.
		return m, tickCmd()

	case tea.MouseMsg:
		m.touch()
		return m, nil

	case IdleMsg:
		if msg.OK {
			m = m.notify(fmt.Sprintf("%s marked Offline after inactivity", msg.Member.Name), m.styles.Offline)
		}
		return m, nil

	case ReloadedMsg:
		m.dashboard.clampCursor()
		m.memberView.clampCursor()
		return m.notify("Team state updated by another session", m.styles.Notification), nil

	case startAssignMsg:
		m.activeView = viewAssign
		m.assign = newAssign(m.styles, m.app, msg, m.width)
		return m, m.assign.Init()

	case assignDoneMsg:
		m.activeView = viewDashboard
		text := fmt.Sprintf("Assigned %q to %s", msg.title, msg.memberName)
		if !msg.due.IsZero() {
			text += " (due " + msg.due.String() + ")"
		}
		return m.notify(text, m.styles.Done), nil

	case assignCancelMsg:
		m.activeView = viewDashboard
		return m, nil

	case tea.KeyMsg:
		m.touch()
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	if m.activeView == viewAssign {
		var cmd tea.Cmd
		m.assign, cmd = m.assign.Update(msg)
		return m, cmd
	}
	return m.updateDashboard(msg)
}

func (m AppModel) updateDashboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.Quit):
			return m, tea.Quit
		case key.Matches(keyMsg, keys.ToggleRole):
			r := m.app.Role.Toggle()
			m.memberView.clampCursor()
			return m.notify("Switched to "+r.Label(), m.styles.Role), nil
		}
	}

	var cmd tea.Cmd
	if m.app.Role.State().CurrentRole == role.Lead {
		m.dashboard, cmd = m.dashboard.Update(msg)
	} else {
		m.memberView, cmd = m.memberView.Update(msg)
	}
	return m, cmd
}

func (m AppModel) content() string {
	var body, help string
	if m.app.Role.State().CurrentRole == role.Lead {
		body, help = m.dashboard.ViewContent(), m.dashboard.Help()
	} else {
		body, help = m.memberView.ViewContent(), m.memberView.Help()
	}
	return body + m.notifications.render(m.styles) + "\n" + m.styles.Help.Render(help)
}

func (m AppModel) View() string {
	if m.activeView == viewAssign {
		return m.viewSideBySide(m.assign.ViewContent())
	}
	return m.styles.Border.Width(m.maxWidth()).Render(m.content())
}

func (m AppModel) maxWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 80
	}
	return w
}

func (m AppModel) viewSideBySide(rightPanel string) string {
	maxWidth := m.maxWidth()

	// 60% for the dashboard, the rest for the form, minus 1 for the separator.
	dashWidth := maxWidth * 60 / 100
	panelWidth := maxWidth - dashWidth - 1

	dashContent := lipgloss.NewStyle().Width(dashWidth).Render(m.content())
	panelContent := lipgloss.NewStyle().Width(panelWidth).Render(rightPanel)

	sepHeight := max(lipgloss.Height(dashContent), lipgloss.Height(panelContent))
	sepLines := make([]string, sepHeight)
	for i := range sepLines {
		sepLines[i] = "│"
	}
	sep := m.styles.Separator.Render(strings.Join(sepLines, "\n"))

	joined := lipgloss.JoinHorizontal(lipgloss.Top, dashContent, sep, panelContent)
	return m.styles.Border.Width(maxWidth).Render(joined)
}
