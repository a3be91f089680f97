package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/diogo/supportchat/internal/api"
	"github.com/diogo/supportchat/internal/chat"
	"github.com/diogo/supportchat/internal/models"
	"github.com/diogo/supportchat/internal/render"
)

// Message types for the TUI
type (
	// replyMsg carries the outcome of one agent call back to Update
	replyMsg struct {
		pending *chat.Pending
		resp    *models.AgentResponse
		err     error
	}
	copiedMsg struct {
		err error
	}
)

// replyKey identifies a rendered agent reply. Messages never change, so an
// entry only goes stale when the width does.
type replyKey struct {
	id    string
	width int
}

type keyMap struct {
	Send     key.Binding
	Newline  key.Binding
	Prev     key.Binding
	Next     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Copy     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Send:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Send")),
		Newline:  key.NewBinding(key.WithKeys("alt+enter"), key.WithHelp("Alt+Enter", "Newline")),
		Prev:     key.NewBinding(key.WithKeys("up"), key.WithHelp("↑↓", "Pick question")),
		Next:     key.NewBinding(key.WithKeys("down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("PgUp/PgDn", "Scroll")),
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		Copy:     key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("Ctrl+Y", "Copy reply")),
		Quit:     key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("Esc", "Quit")),
	}
}

// Model represents the TUI state
type Model struct {
	conv    *chat.Conversation
	caller  api.AgentCaller
	agentID string

	styles Styles
	mdOpts render.Options
	keys   keyMap
	logger zerolog.Logger
	copyFn func(string) error

	// renderReply turns agent markdown into terminal text; replies caches it
	renderReply func(content string, opts render.Options) string
	replies     map[replyKey]string

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// State
	ready       bool
	quickCursor int
	notice      string

	// Dimensions
	width  int
	height int
}

// Option configures the chat model
type Option func(*Model)

// WithStyles sets the color styles
func WithStyles(s Styles) Option {
	return func(m *Model) {
		m.styles = s
	}
}

// WithMarkdownOptions sets how agent replies are rendered
func WithMarkdownOptions(opts render.Options) Option {
	return func(m *Model) {
		m.mdOpts = opts
	}
}

// WithLogger sets the logger
func WithLogger(logger zerolog.Logger) Option {
	return func(m *Model) {
		m.logger = logger
	}
}

// WithClipboard replaces the function used by the copy shortcut
func WithClipboard(fn func(string) error) Option {
	return func(m *Model) {
		m.copyFn = fn
	}
}

// WithConversation uses an existing conversation instead of a fresh one
func WithConversation(conv *chat.Conversation) Option {
	return func(m *Model) {
		m.conv = conv
	}
}

// NewChatModel creates a new chat TUI model
func NewChatModel(caller api.AgentCaller, agentID string, opts ...Option) Model {
	m := Model{
		caller:  caller,
		agentID: agentID,
		styles:  DefaultStyles(),
		mdOpts:  render.DefaultOptions(),
		keys:    defaultKeyMap(),
		logger:  zerolog.Nop(),
		copyFn:  clipboard.WriteAll,

		renderReply: render.Reply,
		replies:     make(map[replyKey]string),
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.conv == nil {
		m.conv = chat.New(chat.WithLogger(m.logger))
	}

	ta := textarea.New()
	ta.Placeholder = "Type your message..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.KeyMap.InsertNewline = m.keys.Newline
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(m.styles.palette.TextMute)
	ta.BlurredStyle = ta.FocusedStyle
	m.textarea = ta

	s := spinner.New()
	s.Spinner = spinner.Ellipsis
	s.Style = m.styles.Typing
	m.spinner = s

	return m
}

// Conversation returns the conversation the model drives
func (m Model) Conversation() *chat.Conversation {
	return m.conv
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 1
		inputHeight := 4 // textarea plus label and border
		statusHeight := 2
		borders := 2

		vpHeight := m.height - headerHeight - inputHeight - statusHeight - borders
		if vpHeight < 5 {
			vpHeight = 5
		}
		contentWidth := m.contentWidth()

		if !m.ready {
			m.viewport = viewport.New(contentWidth, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
		}
		m.textarea.SetWidth(contentWidth - 2)
		m.refresh()
		m.viewport.GotoBottom()
		return m, nil

	case tea.KeyMsg:
		m.notice = ""

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.shutdown()
			return m, tea.Quit

		case key.Matches(msg, m.keys.Copy):
			return m, m.copyLastReply()

		case key.Matches(msg, m.keys.PageUp, m.keys.PageDown):
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd

		case key.Matches(msg, m.keys.Prev, m.keys.Next) && m.picking():
			m.moveQuickCursor(key.Matches(msg, m.keys.Next))
			m.refresh()
			return m, nil

		case key.Matches(msg, m.keys.Send):
			return m.submit()
		}

		// Keys never reach the textarea while a reply is outstanding
		if !m.conv.Awaiting() {
			m.textarea, cmd = m.textarea.Update(msg)
			m.conv.SetDraft(m.textarea.Value())
			m.refresh()
			cmds = append(cmds, cmd)
		}

	case replyMsg:
		if _, ok := m.conv.Resolve(msg.pending, msg.resp, msg.err); ok {
			m.textarea.Focus()
			m.refresh()
			m.viewport.GotoBottom()
		}

	case copiedMsg:
		if msg.err != nil {
			m.logger.Warn().Err(msg.err).Msg("clipboard copy failed")
			m.notice = "Could not copy to clipboard"
		} else {
			m.notice = "Reply copied to clipboard"
		}

	case spinner.TickMsg:
		if m.conv.Awaiting() {
			m.spinner, cmd = m.spinner.Update(msg)
			m.refresh()
			cmds = append(cmds, cmd)
		}

	case tea.MouseMsg:
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// submit sends the selected quick question when the input is empty on the
// welcome panel, or the typed draft otherwise.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.conv.Awaiting() {
		return m, nil
	}

	text := m.textarea.Value()
	switch strings.TrimSpace(text) {
	case "/quit", "/exit":
		m.shutdown()
		return m, tea.Quit
	case "":
		if m.picking() {
			text = models.QuickQuestions[m.quickCursor]
		}
	}

	m.conv.SetDraft(text)
	pending, ok := m.conv.SubmitDraft()
	if !ok {
		return m, nil
	}

	m.textarea.Reset()
	m.textarea.Blur()
	m.refresh()
	m.viewport.GotoBottom()

	return m, tea.Batch(m.sendMessage(pending), m.spinner.Tick)
}

// sendMessage creates a command that calls the agent for pending
func (m Model) sendMessage(p *chat.Pending) tea.Cmd {
	caller, agentID := m.caller, m.agentID
	return func() tea.Msg {
		resp, err := caller.Call(p.Context(), p.Text, agentID)
		return replyMsg{pending: p, resp: resp, err: err}
	}
}

func (m Model) copyLastReply() tea.Cmd {
	reply, ok := m.conv.LastAgentReply()
	if !ok {
		return nil
	}
	copyFn := m.copyFn
	return func() tea.Msg {
		return copiedMsg{err: copyFn(reply)}
	}
}

// picking reports whether ↑/↓ and Enter operate on the quick questions
func (m Model) picking() bool {
	return m.conv.ShowWelcome() && !m.conv.Awaiting() && strings.TrimSpace(m.textarea.Value()) == ""
}

func (m *Model) moveQuickCursor(forward bool) {
	n := len(models.QuickQuestions)
	if forward {
		m.quickCursor = (m.quickCursor + 1) % n
	} else {
		m.quickCursor = (m.quickCursor - 1 + n) % n
	}
}

// shutdown aborts an in-flight call so its goroutine does not outlive the UI
func (m Model) shutdown() {
	if p := m.conv.Pending(); p != nil {
		p.Cancel()
	}
}

func (m Model) contentWidth() int {
	w := m.width - 4
	if w < 20 {
		w = 20
	}
	return w
}

// refresh rebuilds the viewport content from the conversation
func (m *Model) refresh() {
	if !m.ready {
		return
	}

	switch {
	case m.conv.ShowWelcome():
		m.viewport.SetContent(m.renderWelcome())
		return
	case m.conv.ShowEmptyState():
		m.viewport.SetContent(m.renderEmptyState())
		return
	}

	var content strings.Builder
	for i, msg := range m.conv.Messages() {
		if i > 0 {
			content.WriteString("\n\n")
		}
		if msg.IsUser() {
			content.WriteString(m.renderUserMessage(msg))
		} else {
			content.WriteString(m.renderAgentMessage(msg))
		}
	}

	if m.conv.Awaiting() {
		content.WriteString("\n\n")
		content.WriteString(m.renderTyping())
	}

	m.viewport.SetContent(content.String())
}

func (m Model) bubbleWidth() int {
	w := m.viewport.Width - 10
	if w < 16 {
		w = 16
	}
	return w
}

func (m Model) renderUserMessage(msg models.Message) string {
	width := m.viewport.Width - 2
	bubble := m.styles.UserBubble.MaxWidth(m.bubbleWidth()).Render(msg.Content)
	meta := m.styles.UserMeta.Render("You · " + msg.Clock())

	block := lipgloss.JoinVertical(lipgloss.Right, bubble, meta)
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, block)
}

func (m Model) renderAgentMessage(msg models.Message) string {
	avatar := m.styles.Avatar.Render("S")
	meta := m.styles.AgentMeta.Render(" Support · " + msg.Clock())

	body := m.replyBody(msg)
	bubble := m.styles.AgentBubble.Width(m.bubbleWidth()).Render(body)

	return lipgloss.JoinHorizontal(lipgloss.Top, avatar, meta) + "\n" + bubble
}

// replyBody renders an agent message once per width
func (m Model) replyBody(msg models.Message) string {
	k := replyKey{id: msg.ID, width: m.bubbleWidth() - 4}
	if body, ok := m.replies[k]; ok {
		return body
	}
	body := m.renderReply(msg.Content, m.mdOpts.WithWidth(k.width))
	m.replies[k] = body
	return body
}

func (m Model) renderTyping() string {
	avatar := m.styles.Avatar.Render("S")
	return avatar + m.styles.Typing.Render(" Support is typing") + m.spinner.View()
}

// renderWelcome renders the greeting and quick questions
func (m Model) renderWelcome() string {
	var b strings.Builder
	b.WriteString(m.styles.WelcomeGreeting.Render(models.WelcomeGreeting))
	b.WriteString("\n")

	disabled := m.conv.Awaiting()
	for i, q := range models.QuickQuestions {
		switch {
		case disabled:
			b.WriteString(m.styles.QuestionOff.Render(q))
		case i == m.quickCursor && m.picking():
			b.WriteString(m.styles.QuestionActive.Render("▸ " + q))
		default:
			b.WriteString(m.styles.Question.Render(q))
		}
		b.WriteString("\n")
	}

	panel := m.styles.Welcome.Width(m.viewport.Width - 4).Render(strings.TrimRight(b.String(), "\n"))
	return m.centerVertically(panel)
}

func (m Model) renderEmptyState() string {
	hint := lipgloss.PlaceHorizontal(m.viewport.Width-2, lipgloss.Center, m.styles.EmptyState.Render(models.EmptyStateHint))
	return m.centerVertically(hint)
}

func (m Model) centerVertically(content string) string {
	top := (m.viewport.Height - lipgloss.Height(content)) / 2
	if top < 0 {
		top = 0
	}
	return strings.Repeat("\n", top) + content
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return m.styles.Typing.Render("  Initializing...")
	}

	contentWidth := m.contentWidth()
	var sections []string

	// Header
	header := lipgloss.JoinHorizontal(
		lipgloss.Center,
		m.styles.Title.Render(models.ChatTitle),
		m.styles.Subtitle.Render("  "+models.ChatSubtitle),
	)
	sections = append(sections, m.styles.Header.Width(contentWidth+2).Render(header))

	// Messages
	sections = append(sections, m.styles.MessagesArea.Width(contentWidth).Render(m.viewport.View()))

	// Input
	var input string
	if m.conv.Awaiting() {
		input = lipgloss.JoinVertical(
			lipgloss.Left,
			m.styles.InputLabel.Render("Message"),
			m.styles.Waiting.Render("Waiting for a reply..."),
		)
	} else {
		input = lipgloss.JoinVertical(
			lipgloss.Left,
			m.styles.InputLabel.Render("Message"),
			m.textarea.View(),
		)
	}
	sections = append(sections, m.styles.InputPanel.Width(contentWidth).Render(input))

	sections = append(sections, m.renderStatusBar(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderStatusBar renders the shortcuts line and any transient notice
func (m Model) renderStatusBar(width int) string {
	type shortcut struct {
		binding key.Binding
		enabled bool
	}

	_, hasReply := m.conv.LastAgentReply()
	canSend := m.conv.CanSubmit(m.textarea.Value()) || m.picking()

	shortcuts := []shortcut{{m.keys.Send, canSend}}
	if m.conv.ShowWelcome() {
		shortcuts = append(shortcuts, shortcut{m.keys.Prev, m.picking()})
	}
	shortcuts = append(shortcuts,
		shortcut{m.keys.PageUp, true},
		shortcut{m.keys.Copy, hasReply},
		shortcut{m.keys.Quit, true},
	)

	var items []string
	for _, s := range shortcuts {
		help := s.binding.Help()
		if !s.enabled {
			items = append(items, m.styles.StatusOff.Render(help.Key+" "+help.Desc))
			continue
		}
		items = append(items, m.styles.StatusKey.Render(help.Key)+m.styles.StatusDesc.Render(" "+help.Desc))
	}

	bar := m.styles.StatusBar.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
	if m.notice == "" {
		return bar + "\n"
	}
	return bar + "\n" + m.styles.Notice.Width(width).Align(lipgloss.Center).Render(m.notice)
}

// Run starts the chat TUI and blocks until the user quits
func Run(caller api.AgentCaller, agentID string, opts ...Option) error {
	m := NewChatModel(caller, agentID, opts...)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.shutdown()
	}
	if err != nil {
		return fmt.Errorf("chat UI failed: %w", err)
	}
	return nil
}
