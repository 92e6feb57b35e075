package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/simonbystrom/teampulse/internal/app"
	"github.com/simonbystrom/teampulse/internal/idle"
	"github.com/simonbystrom/teampulse/internal/member"
)

const progressBarWidth = 20

// memberViewModel is the signed-in member's own status and task list.
type memberViewModel struct {
	app     *app.App
	monitor *idle.Monitor
	styles  Styles
	cursor  int
	now     func() time.Time
}

func newMemberView(s Styles, a *app.App, monitor *idle.Monitor) memberViewModel {
	return memberViewModel{
		app:     a,
		monitor: monitor,
		styles:  s,
		now:     time.Now,
	}
}

func (m *memberViewModel) clampCursor() {
	cur, ok := m.app.CurrentMember()
	n := 0
	if ok {
		n = len(cur.Tasks)
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m memberViewModel) Update(msg tea.Msg) (memberViewModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	cur, ok := m.app.CurrentMember()
	if !ok {
		return m, nil
	}

	setStatus := func(st member.Status) (memberViewModel, tea.Cmd) {
		m.app.Members.SetMemberStatus(cur.ID, st)
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Working):
		return setStatus(member.StatusWorking)
	case key.Matches(keyMsg, keys.Meeting):
		return setStatus(member.StatusMeeting)
	case key.Matches(keyMsg, keys.Break):
		return setStatus(member.StatusBreak)
	case key.Matches(keyMsg, keys.Offline):
		return setStatus(member.StatusOffline)
	case key.Matches(keyMsg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if m.cursor < len(cur.Tasks)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, keys.Increase):
		if m.cursor < len(cur.Tasks) {
			m.app.Members.AdjustTaskProgress(cur.ID, cur.Tasks[m.cursor].ID, +1)
		}
	case key.Matches(keyMsg, keys.Decrease):
		if m.cursor < len(cur.Tasks) {
			m.app.Members.AdjustTaskProgress(cur.ID, cur.Tasks[m.cursor].ID, -1)
		}
	}
	return m, nil
}

func (m memberViewModel) statusBar(current member.Status) string {
	parts := make([]string, 0, len(member.Statuses))
	for i, st := range member.Statuses {
		label := fmt.Sprintf(" %d %s ", i+1, st)
		if st == current {
			parts = append(parts, m.styles.Selected.Inherit(m.styles.Status(st)).Render("["+strings.TrimSpace(label)+"]"))
		} else {
			parts = append(parts, m.styles.FormDim.Render(label))
		}
	}
	return "  " + strings.Join(parts, " ")
}

func (m memberViewModel) idleLine() string {
	if m.monitor == nil {
		return ""
	}
	switch m.monitor.State() {
	case idle.StateArmed:
		left := m.monitor.Deadline().Sub(m.now())
		if left < 0 {
			left = 0
		}
		return m.styles.FormDim.Render("  Auto-offline in " + formatDuration(left))
	case idle.StateExpired:
		return m.styles.Offline.Render("  Marked offline after inactivity")
	}
	return ""
}

func (m memberViewModel) ViewContent() string {
	var b strings.Builder

	user := m.app.Role.State().CurrentUser
	cur, ok := m.app.CurrentMember()
	if !ok {
		b.WriteString(m.styles.Role.Render("Member View"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("  No team member matches %q.", user)))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.styles.Role.Render("Member View"))
	b.WriteString(m.styles.Title.Render(cur.Name))
	b.WriteString("\n\n")

	b.WriteString(m.styles.Header.Render("  Status"))
	b.WriteString("\n")
	b.WriteString(m.statusBar(cur.Status))
	b.WriteString("\n")
	if line := m.idleLine(); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(m.styles.Header.Render(fmt.Sprintf("  My Tasks (%d active)", member.ActiveTaskCount(cur))))
	b.WriteString("\n")
	if len(cur.Tasks) == 0 {
		b.WriteString(m.styles.FormDim.Render("  No tasks assigned."))
		b.WriteString("\n")
		return b.String()
	}

	for i, t := range cur.Tasks {
		due := t.DueDate.String()
		if due == "" {
			due = "-"
		}
		bar := progressBar(t.Progress, progressBarWidth)
		mark := " "
		if t.Completed {
			bar = m.styles.Done.Render(bar)
			mark = m.styles.Done.Render("✓")
		}
		row := fmt.Sprintf("  %-28s %-10s %s %3d%% %s", truncate(t.Title, 28), due, bar, t.Progress, mark)
		if i == m.cursor {
			row = m.styles.Selected.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}

func (m memberViewModel) Help() string {
	return helpLine(keys.Working, keys.Meeting, keys.Break, keys.Offline, keys.Up, keys.Down,
		keys.Increase, keys.Decrease, keys.ToggleRole, keys.Quit)
}

func progressBar(progress, width int) string {
	filled := progress * width / member.ProgressMax
	filled = max(0, min(width, filled))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
