package member

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type Status string

const (
	StatusWorking Status = "Working"
	StatusMeeting Status = "Meeting"
	StatusBreak   Status = "Break"
	StatusOffline Status = "Offline"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusWorking, StatusMeeting, StatusBreak, StatusOffline}

func (s Status) Valid() bool {
	switch s {
	case StatusWorking, StatusMeeting, StatusBreak, StatusOffline:
		return true
	}
	return false
}

// ParseStatus accepts a status name in any letter case.
func ParseStatus(s string) (Status, error) {
	for _, st := range Statuses {
		if strings.EqualFold(string(st), s) {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown status %q (want Working, Meeting, Break or Offline)", s)
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	st := Status(raw)
	if !st.Valid() {
		return fmt.Errorf("invalid status %q", raw)
	}
	*s = st
	return nil
}

const (
	ProgressStep = 10
	ProgressMin  = 0
	ProgressMax  = 100
)

const dateLayout = "2006-01-02"

// Date is a calendar day. The zero value means no due date.
type Date struct {
	t time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses YYYY-MM-DD. An empty string yields the zero Date.
func ParseDate(s string) (Date, error) {
	if s == "" {
		return Date{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return Date{t: t}, nil
}

func (d Date) IsZero() bool { return d.t.IsZero() }

func (d Date) Time() time.Time { return d.t }

func (d Date) String() string {
	if d.t.IsZero() {
		return ""
	}
	return d.t.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseDate(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

type Task struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	DueDate   Date   `json:"dueDate"`
	Progress  int    `json:"progress"`
	Completed bool   `json:"completed"`
}

// setProgress clamps p into range and keeps Completed in step with it.
func (t *Task) setProgress(p int) {
	t.Progress = max(ProgressMin, min(ProgressMax, p))
	t.Completed = t.Progress == ProgressMax
}

type Member struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Status Status `json:"status"`
	Tasks  []Task `json:"tasks"`
}

// Clone returns a deep copy so callers never alias store-owned task slices.
func (m Member) Clone() Member {
	c := m
	c.Tasks = make([]Task, len(m.Tasks))
	copy(c.Tasks, m.Tasks)
	return c
}

// Normalize re-derives invariants on a member read from outside the store:
// progress is clamped and Completed recomputed for every task.
func (m *Member) Normalize() {
	if m.Tasks == nil {
		m.Tasks = []Task{}
	}
	for i := range m.Tasks {
		m.Tasks[i].setProgress(m.Tasks[i].Progress)
	}
}
