// Package tui provides the terminal user interface for supportchat.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/supportchat/internal/render"
)

// Styles holds every lipgloss style the chat view uses
type Styles struct {
	palette render.Palette

	// Header bar
	Header   lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style

	// Messages area panel
	MessagesArea lipgloss.Style

	// User messages
	UserBubble lipgloss.Style
	UserMeta   lipgloss.Style

	// Agent messages
	AgentBubble lipgloss.Style
	AgentMeta   lipgloss.Style
	Avatar      lipgloss.Style

	// Welcome panel
	Welcome         lipgloss.Style
	WelcomeGreeting lipgloss.Style
	Question        lipgloss.Style
	QuestionActive  lipgloss.Style
	QuestionOff     lipgloss.Style
	EmptyState      lipgloss.Style

	// Typing indicator
	Typing lipgloss.Style

	// Input area panel
	InputPanel lipgloss.Style
	InputLabel lipgloss.Style
	Waiting    lipgloss.Style

	// Status bar
	StatusBar  lipgloss.Style
	StatusKey  lipgloss.Style
	StatusDesc lipgloss.Style
	StatusOff  lipgloss.Style

	Notice lipgloss.Style
	Error  lipgloss.Style
}

// NewStyles builds the chat styles from a palette
func NewStyles(p render.Palette) Styles {
	s := Styles{palette: p}

	s.Header = lipgloss.NewStyle().
		Background(p.Primary).
		Foreground(p.OnPrimary).
		Padding(0, 2)

	s.Title = lipgloss.NewStyle().
		Background(p.Primary).
		Foreground(p.OnPrimary).
		Bold(true)

	s.Subtitle = lipgloss.NewStyle().
		Background(p.Primary).
		Foreground(p.OnPrimary).
		Faint(true)

	s.MessagesArea = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)

	s.UserBubble = lipgloss.NewStyle().
		Background(p.Primary).
		Foreground(p.OnPrimary).
		Padding(0, 1)

	s.UserMeta = lipgloss.NewStyle().
		Foreground(p.TextMute)

	s.AgentBubble = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Foreground(p.OnSurface).
		Padding(0, 1)

	s.AgentMeta = lipgloss.NewStyle().
		Foreground(p.TextMute)

	s.Avatar = lipgloss.NewStyle().
		Background(p.Accent).
		Foreground(p.OnPrimary).
		Bold(true).
		Padding(0, 1)

	s.Welcome = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Primary).
		Padding(1, 2)

	s.WelcomeGreeting = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true).
		MarginBottom(1)

	s.Question = lipgloss.NewStyle().
		Foreground(p.TextDim).
		PaddingLeft(2)

	s.QuestionActive = lipgloss.NewStyle().
		Foreground(p.Accent).
		Bold(true)

	s.QuestionOff = lipgloss.NewStyle().
		Foreground(p.TextMute).
		PaddingLeft(2)

	s.EmptyState = lipgloss.NewStyle().
		Foreground(p.TextMute).
		Italic(true)

	s.Typing = lipgloss.NewStyle().
		Foreground(p.TextDim).
		Italic(true)

	s.InputPanel = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		Padding(0, 1)

	s.InputLabel = lipgloss.NewStyle().
		Foreground(p.Primary).
		Bold(true)

	s.Waiting = lipgloss.NewStyle().
		Foreground(p.TextMute).
		Italic(true)

	s.StatusBar = lipgloss.NewStyle().
		Foreground(p.TextMute)

	s.StatusKey = lipgloss.NewStyle().
		Foreground(p.TextDim).
		Bold(true)

	s.StatusDesc = lipgloss.NewStyle().
		Foreground(p.TextMute)

	s.StatusOff = lipgloss.NewStyle().
		Foreground(p.TextMute).
		Faint(true)

	s.Notice = lipgloss.NewStyle().
		Foreground(p.TextDim).
		Italic(true)

	s.Error = lipgloss.NewStyle().
		Foreground(p.Error).
		Bold(true)

	return s
}

// Palette returns the palette the styles were built from
func (s Styles) Palette() render.Palette {
	return s.palette
}

// DefaultStyles returns styles for the default palette
func DefaultStyles() Styles {
	return NewStyles(render.SupportPalette)
}
