package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/simonbystrom/teampulse/internal/config"
	"github.com/simonbystrom/teampulse/internal/member"
)

// Styles holds every lipgloss style used by the dashboard.
type Styles struct {
	Logo         lipgloss.Style
	Title        lipgloss.Style
	Header       lipgloss.Style
	Selected     lipgloss.Style
	Working      lipgloss.Style
	Meeting      lipgloss.Style
	Break        lipgloss.Style
	Offline      lipgloss.Style
	Done         lipgloss.Style
	Notification lipgloss.Style
	Help         lipgloss.Style
	Border       lipgloss.Style
	Separator    lipgloss.Style
	FormTitle    lipgloss.Style
	FormActive   lipgloss.Style
	FormDim      lipgloss.Style
	Error        lipgloss.Style
	Role         lipgloss.Style
	Card         lipgloss.Style
}

func NewStyles(c config.Colors) Styles {
	return Styles{
		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Title)),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(c.Title)).
			Padding(0, 1),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(c.Header)),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(c.SelectedBG)).
			Foreground(lipgloss.Color(c.SelectedFG)),
		Working: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Working)).
			Bold(true),
		Meeting: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Meeting)),
		Break: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Break)),
		Offline: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Offline)),
		Done: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Done)),
		Notification: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Notification)).
			Italic(true),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Help)),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(c.Border)).
			Padding(1, 2),
		Separator: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Border)),
		FormTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(c.FormTitle)).
			MarginBottom(1),
		FormActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.FormActive)),
		FormDim: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.FormDim)),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Error)).
			Bold(true),
		Role: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(c.Role)),
		Card: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(c.Border)).
			Padding(0, 1).
			Width(14),
	}
}

// Status returns the style a member status is rendered in.
func (s Styles) Status(st member.Status) lipgloss.Style {
	switch st {
	case member.StatusWorking:
		return s.Working
	case member.StatusMeeting:
		return s.Meeting
	case member.StatusBreak:
		return s.Break
	default:
		return s.Offline
	}
}
