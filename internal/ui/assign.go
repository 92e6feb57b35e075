package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/simonbystrom/teampulse/internal/app"
	"github.com/simonbystrom/teampulse/internal/member"
)

type assignField int

const (
	fieldTitle assignField = iota
	fieldDue
)

type assignDoneMsg struct {
	memberName string
	title      string
	due        member.Date
}

type assignCancelMsg struct{}

// assignModel is the lead's form for giving a member a new task.
type assignModel struct {
	app        *app.App
	styles     Styles
	memberID   int
	memberName string
	field      assignField
	title      textinput.Model
	due        textinput.Model
	err        string
	width      int
}

func newAssign(s Styles, a *app.App, msg startAssignMsg, width int) assignModel {
	ti := textinput.New()
	ti.Placeholder = "task title"
	ti.CharLimit = 120
	ti.Focus()

	di := textinput.New()
	di.Placeholder = "YYYY-MM-DD (optional)"
	di.CharLimit = 10

	return assignModel{
		app:        a,
		styles:     s,
		memberID:   msg.memberID,
		memberName: msg.memberName,
		field:      fieldTitle,
		title:      ti,
		due:        di,
		width:      width,
	}
}

func (m assignModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *assignModel) focus(f assignField) tea.Cmd {
	m.field = f
	if f == fieldTitle {
		m.due.Blur()
		return m.title.Focus()
	}
	m.title.Blur()
	return m.due.Focus()
}

func (m assignModel) Update(msg tea.Msg) (assignModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		if m.field == fieldTitle {
			m.title, cmd = m.title.Update(msg)
		} else {
			m.due, cmd = m.due.Update(msg)
		}
		return m, cmd
	}
	m.err = ""

	switch keyMsg.String() {
	case "esc":
		return m, func() tea.Msg { return assignCancelMsg{} }
	case "tab", "shift+tab", "up", "down":
		if m.field == fieldTitle {
			return m, m.focus(fieldDue)
		}
		return m, m.focus(fieldTitle)
	case "enter":
		if m.field == fieldTitle {
			if strings.TrimSpace(m.title.Value()) == "" {
				m.err = "task title is required"
				return m, nil
			}
			return m, m.focus(fieldDue)
		}
		return m.submit()
	}

	var cmd tea.Cmd
	if m.field == fieldTitle {
		m.title, cmd = m.title.Update(keyMsg)
	} else {
		m.due, cmd = m.due.Update(keyMsg)
	}
	return m, cmd
}

func (m assignModel) submit() (assignModel, tea.Cmd) {
	title := strings.TrimSpace(m.title.Value())
	if title == "" {
		m.err = "task title is required"
		return m, m.focus(fieldTitle)
	}
	due, err := member.ParseDate(strings.TrimSpace(m.due.Value()))
	if err != nil {
		m.err = "due date must be YYYY-MM-DD"
		return m, nil
	}
	if _, ok := m.app.Members.AssignTask(m.memberID, title, due); !ok {
		m.err = fmt.Sprintf("%s is no longer on the team", m.memberName)
		return m, nil
	}
	done := assignDoneMsg{memberName: m.memberName, title: title, due: due}
	return m, func() tea.Msg { return done }
}

func (m assignModel) ViewContent() string {
	var b strings.Builder

	b.WriteString(m.styles.FormTitle.Render("Assign Task"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.FormDim.Render("To: " + m.memberName))
	b.WriteString("\n\n")

	label := func(f assignField, text string) string {
		if m.field == f {
			return m.styles.FormActive.Render("> " + text)
		}
		return m.styles.FormDim.Render("  " + text)
	}

	b.WriteString(label(fieldTitle, "Title"))
	b.WriteString("\n")
	b.WriteString("  " + m.title.View())
	b.WriteString("\n\n")
	b.WriteString(label(fieldDue, "Due date"))
	b.WriteString("\n")
	b.WriteString("  " + m.due.View())
	b.WriteString("\n\n")
	b.WriteString(m.styles.Help.Render("  enter: next/assign │ tab: switch field │ esc: cancel"))

	if m.err != "" {
		b.WriteString("\n\n")
		b.WriteString(m.styles.Error.Render("  Error: " + m.err))
	}
	return b.String()
}

func (m assignModel) View() string {
	return m.styles.Border.Render(m.ViewContent())
}
