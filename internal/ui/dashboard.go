package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/simonbystrom/teampulse/internal/app"
	"github.com/simonbystrom/teampulse/internal/member"
)

const maxNotifications = 10

type notification struct {
	text  string
	time  time.Time
	style lipgloss.Style
}

// notifications is a ring of the most recent events, oldest first.
type notifications []notification

func (n notifications) add(text string, style lipgloss.Style) notifications {
	n = append(n, notification{text: text, time: time.Now(), style: style})
	if len(n) > maxNotifications {
		n = n[len(n)-maxNotifications:]
	}
	return n
}

func (n notifications) render(s Styles) string {
	if len(n) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(s.Header.Render("  ── Notifications ──"))
	b.WriteString("\n")
	for i := len(n) - 1; i >= 0; i-- {
		line := fmt.Sprintf("  %s %s", n[i].time.Format("15:04"), n[i].text)
		b.WriteString(n[i].style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

type startAssignMsg struct {
	memberID   int
	memberName string
}

// dashboardModel is the lead view: availability summary and the roster.
type dashboardModel struct {
	app    *app.App
	styles Styles
	cursor int
	filter int // index into member.Filters
	sortBy member.SortKey
	width  int
	height int
}

func newDashboard(s Styles, a *app.App) dashboardModel {
	return dashboardModel{
		app:    a,
		styles: s,
		sortBy: member.SortByName,
	}
}

func (m dashboardModel) currentFilter() member.StatusFilter {
	return member.Filters[m.filter]
}

func (m dashboardModel) visibleMembers() []member.Member {
	filtered := member.FilterByStatus(m.app.Members.Members(), m.currentFilter())
	return member.SortMembers(filtered, m.sortBy)
}

// clampCursor keeps the cursor on a visible row after the roster changes.
func (m *dashboardModel) clampCursor() {
	n := len(m.visibleMembers())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m dashboardModel) Update(msg tea.Msg) (dashboardModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if m.cursor < len(m.visibleMembers())-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, keys.Filter):
		m.filter = (m.filter + 1) % len(member.Filters)
		m.clampCursor()
	case key.Matches(keyMsg, keys.Sort):
		if m.sortBy == member.SortByName {
			m.sortBy = member.SortByTasks
		} else {
			m.sortBy = member.SortByName
		}
	case key.Matches(keyMsg, keys.Assign):
		members := m.visibleMembers()
		if len(members) == 0 || m.cursor >= len(members) {
			return m, nil
		}
		target := members[m.cursor]
		return m, func() tea.Msg {
			return startAssignMsg{memberID: target.ID, memberName: target.Name}
		}
	}
	return m, nil
}

func (m dashboardModel) availability(all []member.Member) string {
	counts := member.StatusCounts(all)
	cards := make([]string, 0, len(member.Statuses)+1)
	cards = append(cards, m.styles.Card.Render(
		m.styles.Header.Render(fmt.Sprintf("%d", len(all)))+"\nTotal"))
	for _, st := range member.Statuses {
		style := m.styles.Status(st)
		cards = append(cards, m.styles.Card.Render(
			style.Render(fmt.Sprintf("%d", counts[st]))+"\n"+string(st)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m dashboardModel) ViewContent() string {
	var b strings.Builder

	b.WriteString(m.styles.Logo.Render(renderLogo(m.width - 8)))
	b.WriteString("\n\n")

	user := m.app.Role.State().CurrentUser
	b.WriteString(m.styles.Role.Render("Lead View"))
	b.WriteString(m.styles.Title.Render("signed in as " + user))
	b.WriteString("\n\n")

	b.WriteString(m.availability(m.app.Members.Members()))
	b.WriteString("\n\n")

	b.WriteString(m.styles.FormDim.Render(fmt.Sprintf("  Filter: %s │ Sort: %s", m.currentFilter(), m.sortBy)))
	b.WriteString("\n")

	members := m.visibleMembers()
	if len(members) == 0 {
		b.WriteString(m.styles.FormDim.Render("  No members match this filter. Press f to change it."))
		b.WriteString("\n")
		return b.String()
	}

	header := fmt.Sprintf("  %-4s %-22s %-10s %-8s %-6s", "ID", "Name", "Status", "Active", "Tasks")
	b.WriteString(m.styles.Header.Render(header))
	b.WriteString("\n")

	for i, mem := range members {
		status := m.styles.Status(mem.Status).Render(string(mem.Status))
		// %-10s counts ANSI bytes, so pad on visual width instead.
		if w := lipgloss.Width(status); w < 10 {
			status += strings.Repeat(" ", 10-w)
		}
		row := fmt.Sprintf("  %-4d %-22s %s %-8d %-6d",
			mem.ID,
			truncate(mem.Name, 22),
			status,
			member.ActiveTaskCount(mem),
			len(mem.Tasks),
		)
		if i == m.cursor {
			row = m.styles.Selected.Render(row)
		}
		b.WriteString(row)
		b.WriteString("\n")
	}
	return b.String()
}

func (m dashboardModel) Help() string {
	return helpLine(keys.Up, keys.Down, keys.Assign, keys.Filter, keys.Sort, keys.ToggleRole, keys.Quit)
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm %02ds", m, s)
}

func truncate(s string, max int) string {
	if lipgloss.Width(s) <= max {
		return s
	}
	r := []rune(s)
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
