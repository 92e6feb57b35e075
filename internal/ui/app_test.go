package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/simonbystrom/teampulse/internal/app"
	"github.com/simonbystrom/teampulse/internal/config"
	"github.com/simonbystrom/teampulse/internal/idle"
	"github.com/simonbystrom/teampulse/internal/member"
	"github.com/simonbystrom/teampulse/internal/role"
)

type nopTimer struct{}

func (nopTimer) Stop() bool { return true }

// countingScheduler records how often the monitor was (re)armed.
type countingScheduler struct {
	n int
}

func (s *countingScheduler) schedule(time.Duration, func()) idle.Timer {
	s.n++
	return nopTimer{}
}

func newTestApp(t *testing.T) (AppModel, *app.App, *countingScheduler) {
	t.Helper()
	a := newTestState(t)
	sched := &countingScheduler{}
	monitor := idle.New(time.Minute, func() {}, idle.WithScheduler(sched.schedule))
	return NewApp(config.Default(), a, monitor), a, sched
}

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(AppModel), cmd
}

func TestAppModel_KeyQ_Quits(t *testing.T) {
	m, _, _ := newTestApp(t)

	_, cmd := update(t, m, runeKey('q'))
	if cmd == nil {
		t.Fatal("expected a command from 'q' key")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("expected tea.QuitMsg, got %T", cmd())
	}
}

func TestAppModel_WindowSizeMsg(t *testing.T) {
	m, _, _ := newTestApp(t)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.width != 120 || m.dashboard.width != 120 {
		t.Errorf("width = %d/%d, want 120", m.width, m.dashboard.width)
	}
	if m.height != 40 {
		t.Errorf("height = %d, want 40", m.height)
	}
}

func TestAppModel_ToggleRole(t *testing.T) {
	m, a, _ := newTestApp(t)

	m, _ = update(t, m, runeKey('r'))
	if got := a.Role.State().CurrentRole; got != role.Member {
		t.Fatalf("role = %q, want member", got)
	}
	if !strings.Contains(m.View(), "Member View") {
		t.Error("member view not shown after toggle")
	}
	if len(m.notifications) != 1 {
		t.Errorf("notifications = %d, want 1", len(m.notifications))
	}

	update(t, m, runeKey('r'))
	if got := a.Role.State().CurrentRole; got != role.Lead {
		t.Errorf("role = %q, want lead", got)
	}
}

func TestAppModel_InputTouchesMonitor(t *testing.T) {
	m, _, sched := newTestApp(t)

	m, _ = update(t, m, runeKey('j'))
	m, _ = update(t, m, tea.MouseMsg{X: 3, Y: 4})
	if sched.n != 2 {
		t.Errorf("monitor armed %d times, want 2", sched.n)
	}

	update(t, m, tickMsg(time.Now()))
	if sched.n != 2 {
		t.Error("tick should not count as activity")
	}
}

func TestAppModel_PointerMotionTouchesMonitor(t *testing.T) {
	m, _, sched := newTestApp(t)

	hover := tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone}
	m, _ = update(t, m, hover)
	m, _ = update(t, m, tea.MouseMsg{X: 11, Y: 5, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})
	if sched.n != 2 {
		t.Errorf("monitor armed %d times after two hover moves, want 2", sched.n)
	}
	if m.activeView != viewDashboard {
		t.Errorf("activeView = %d, want viewDashboard", m.activeView)
	}
}

func TestAppModel_AssignFlow(t *testing.T) {
	m, a, _ := newTestApp(t)

	_, cmd := update(t, m, runeKey('a'))
	m, _ = update(t, m, cmd())
	if m.activeView != viewAssign {
		t.Fatalf("activeView = %d, want viewAssign", m.activeView)
	}
	if m.assign.memberID != 1 {
		t.Fatalf("assign target = %d, want 1", m.assign.memberID)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Write report")})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2025-01-01")})
	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected submit command, form error %q", m.assign.err)
	}
	m, _ = update(t, m, cmd())

	if m.activeView != viewDashboard {
		t.Errorf("activeView = %d, want viewDashboard", m.activeView)
	}
	got, _ := a.Members.Member(1)
	if len(got.Tasks) != 1 {
		t.Fatalf("tasks = %d, want 1", len(got.Tasks))
	}
	if got.Tasks[0].Title != "Write report" || got.Tasks[0].DueDate.String() != "2025-01-01" {
		t.Errorf("task = %+v", got.Tasks[0])
	}
	if len(m.notifications) == 0 || !strings.Contains(m.notifications[0].text, "Write report") {
		t.Errorf("notifications = %+v", m.notifications)
	}
}

func TestAppModel_AssignRequiresTitle(t *testing.T) {
	m, a, _ := newTestApp(t)
	m, _ = update(t, m, startAssignMsg{memberID: 1, memberName: "Natalie Gibson"})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.assign.err != "task title is required" {
		t.Errorf("err = %q", m.assign.err)
	}
	if m.assign.field != fieldTitle {
		t.Error("focus left the title field")
	}
	if got, _ := a.Members.Member(1); len(got.Tasks) != 0 {
		t.Error("task created without a title")
	}
}

func TestAppModel_AssignRejectsBadDate(t *testing.T) {
	m, a, _ := newTestApp(t)
	m, _ = update(t, m, startAssignMsg{memberID: 1, memberName: "Natalie Gibson"})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Plan")})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("tomorrow")})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.assign.err == "" {
		t.Error("expected a date error")
	}
	if got, _ := a.Members.Member(1); len(got.Tasks) != 0 {
		t.Error("task created with an invalid date")
	}
}

func TestAppModel_AssignCancel(t *testing.T) {
	m, _, _ := newTestApp(t)
	m, _ = update(t, m, startAssignMsg{memberID: 1, memberName: "Natalie Gibson"})

	// 'q' is text inside the form.
	m, _ = update(t, m, runeKey('q'))
	if m.activeView != viewAssign || m.assign.title.Value() != "q" {
		t.Fatalf("'q' not typed into the form: view %d, title %q", m.activeView, m.assign.title.Value())
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = update(t, m, cmd())
	if m.activeView != viewDashboard {
		t.Errorf("activeView = %d, want viewDashboard", m.activeView)
	}
}

func TestAppModel_MemberViewStatusAndProgress(t *testing.T) {
	m, a, _ := newTestApp(t)
	a.Role.SwitchRole(role.Member)
	a.Role.SetCurrentUser("Peter Piper")
	taskID, _ := a.Members.AssignTask(2, "Prepare demo", member.Date{})

	m, _ = update(t, m, runeKey('3'))
	if got, _ := a.Members.Member(2); got.Status != member.StatusBreak {
		t.Errorf("status = %q, want Break", got.Status)
	}
	m, _ = update(t, m, runeKey('w'))
	if got, _ := a.Members.Member(2); got.Status != member.StatusWorking {
		t.Errorf("status = %q, want Working", got.Status)
	}

	for i := 0; i < 3; i++ {
		m, _ = update(t, m, runeKey('+'))
	}
	m, _ = update(t, m, runeKey('-'))
	got, _ := a.Members.Member(2)
	if got.Tasks[0].ID != taskID || got.Tasks[0].Progress != 20 {
		t.Errorf("task = %+v, want progress 20", got.Tasks[0])
	}

	if out := m.View(); !strings.Contains(out, "Prepare demo") || !strings.Contains(out, "Peter Piper") {
		t.Error("member view missing the current member's task")
	}
}

func TestAppModel_MemberViewUnknownUser(t *testing.T) {
	m, a, _ := newTestApp(t)
	a.Role.SwitchRole(role.Member)
	a.Role.SetCurrentUser("Nobody")
	a.Members.Replace(nil)

	m, _ = update(t, m, runeKey('1'))
	if !strings.Contains(m.View(), "No team member matches") {
		t.Error("expected a no-member notice")
	}
}

func TestAppModel_IdleMsg(t *testing.T) {
	m, _, _ := newTestApp(t)

	m, _ = update(t, m, IdleMsg{Member: member.Member{ID: 1, Name: "Natalie Gibson"}, OK: true})
	if len(m.notifications) != 1 || !strings.Contains(m.notifications[0].text, "Natalie Gibson") {
		t.Errorf("notifications = %+v", m.notifications)
	}

	m, _ = update(t, m, IdleMsg{})
	if len(m.notifications) != 1 {
		t.Error("a miss should not notify")
	}
}

func TestAppModel_ReloadedMsg(t *testing.T) {
	m, a, _ := newTestApp(t)
	m.dashboard.cursor = 2
	a.Members.Replace([]member.Member{{ID: 9, Name: "Solo", Status: member.StatusWorking}})

	m, _ = update(t, m, ReloadedMsg{})
	if m.dashboard.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.dashboard.cursor)
	}
	if len(m.notifications) != 1 {
		t.Errorf("notifications = %d, want 1", len(m.notifications))
	}
}
