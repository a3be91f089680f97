package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/diogo/supportchat/internal/api"
	"github.com/diogo/supportchat/internal/models"
	"github.com/diogo/supportchat/internal/render"
)

func newTestModel(caller api.AgentCaller, opts ...Option) Model {
	opts = append([]Option{WithMarkdownOptions(render.DefaultOptions().WithStyle("notty"))}, opts...)
	m := NewChatModel(caller, "agent-test", opts...)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model)
}

func press(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var updated tea.Model
		updated, cmd = m.Update(msg)
		m = updated.(Model)
	}
	return m, cmd
}

func typeText(text string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)}
}

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	up    = tea.KeyMsg{Type: tea.KeyUp}
)

// deliver runs the agent call for the outstanding request and feeds the
// reply back into the model
func deliver(t *testing.T, m Model) Model {
	t.Helper()
	p := m.conv.Pending()
	if p == nil {
		t.Fatal("no outstanding request")
	}
	m, _ = press(t, m, m.sendMessage(p)())
	return m
}

func TestNewChatModel(t *testing.T) {
	m := NewChatModel(api.NewMockAgentCaller(nil, nil), "agent-test")

	if m.ready {
		t.Error("model should not be ready before the first resize")
	}
	if m.Conversation() == nil {
		t.Fatal("expected a conversation")
	}
	if !m.Conversation().Greeting() {
		t.Error("new conversation should show the greeting")
	}
	if !strings.Contains(m.View(), "Initializing") {
		t.Error("view before resize should show Initializing")
	}
}

func TestView_Welcome(t *testing.T) {
	m := newTestModel(api.NewMockAgentCaller(nil, nil))
	view := m.View()

	for _, want := range []string{models.ChatTitle, models.ChatSubtitle, models.WelcomeGreeting} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
	for _, q := range models.QuickQuestions {
		if !strings.Contains(view, q) {
			t.Errorf("view should list quick question %q", q)
		}
	}
}

func TestQuickQuestion_Submit(t *testing.T) {
	caller := api.NewMockAgentCaller(api.SuccessResponse("We are open 9 to 5."), nil)
	m := newTestModel(caller)

	m, cmd := press(t, m, down, enter)
	if cmd == nil {
		t.Fatal("expected a command to call the agent")
	}

	msgs := m.conv.Messages()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	if msgs[0].Content != models.QuickQuestions[1] {
		t.Errorf("submitted %q, want %q", msgs[0].Content, models.QuickQuestions[1])
	}
	if !m.conv.Awaiting() {
		t.Error("expected awaiting after submit")
	}
	if m.conv.Greeting() {
		t.Error("greeting should be gone after first submit")
	}

	m = deliver(t, m)

	if caller.LastText() != models.QuickQuestions[1] {
		t.Errorf("agent got %q", caller.LastText())
	}
	if caller.LastAgentID() != "agent-test" {
		t.Errorf("agent id = %q", caller.LastAgentID())
	}
	if m.conv.Awaiting() {
		t.Error("awaiting should clear after reply")
	}
	if !strings.Contains(m.View(), "9 to 5") {
		t.Error("view should show the agent reply")
	}
	if strings.Contains(m.View(), models.WelcomeGreeting) {
		t.Error("welcome panel should be hidden once a message exists")
	}
}

func TestQuickQuestion_CursorWraps(t *testing.T) {
	m := newTestModel(api.NewMockAgentCaller(nil, nil))

	m, _ = press(t, m, up)
	if m.quickCursor != len(models.QuickQuestions)-1 {
		t.Errorf("cursor = %d, want last", m.quickCursor)
	}
	m, _ = press(t, m, down)
	if m.quickCursor != 0 {
		t.Errorf("cursor = %d, want 0", m.quickCursor)
	}
}

func TestQuickQuestion_HighlightOnlyWhilePicking(t *testing.T) {
	m := newTestModel(api.NewMockAgentCaller(nil, nil))
	if !strings.Contains(m.viewport.View(), "▸") {
		t.Fatal("selected quick question should be highlighted on an empty input")
	}

	m, _ = press(t, m, typeText("h"))
	if strings.Contains(m.viewport.View(), "▸") {
		t.Error("highlight should disappear once the user types")
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	if !strings.Contains(m.viewport.View(), "▸") {
		t.Error("highlight should return when the input is empty again")
	}
}

func TestAgentReplyRenderedOnce(t *testing.T) {
	caller := api.NewMockAgentCaller(api.SuccessResponse("**Open** 9 to 5."), nil)
	m := newTestModel(caller)

	renders := map[string]int{}
	m.renderReply = func(content string, opts render.Options) string {
		renders[content]++
		return render.Reply(content, opts)
	}

	m, _ = press(t, m, typeText("hours?"), enter)
	m = deliver(t, m)
	m, _ = press(t, m, typeText("and weekends?"), enter)
	if !m.conv.Awaiting() {
		t.Fatal("expected a second outstanding request")
	}

	for i := 0; i < 5; i++ {
		m, _ = press(t, m, spinner.TickMsg{})
	}

	if got := renders["**Open** 9 to 5."]; got != 1 {
		t.Errorf("reply rendered %d times, want 1", got)
	}

	m, _ = press(t, m, tea.WindowSizeMsg{Width: 70, Height: 40})
	if got := renders["**Open** 9 to 5."]; got != 2 {
		t.Errorf("reply rendered %d times after resize, want 2", got)
	}
}

func TestTypedMessage_RoundTrip(t *testing.T) {
	caller := api.NewMockAgentCaller(api.SuccessResponse("Click Forgot Password."), nil)
	m := newTestModel(caller)

	m, _ = press(t, m, typeText("reset password please"))
	if m.conv.Draft() != "reset password please" {
		t.Errorf("draft = %q", m.conv.Draft())
	}

	m, _ = press(t, m, enter)
	if m.textarea.Value() != "" {
		t.Error("input should be cleared after submit")
	}
	if !strings.Contains(m.View(), "Support is typing") {
		t.Error("view should show the typing indicator while awaiting")
	}

	m = deliver(t, m)

	msgs := m.conv.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[1].Role != models.RoleAgent || msgs[1].Content != "Click Forgot Password." {
		t.Errorf("unexpected agent message: %+v", msgs[1])
	}
	if strings.Contains(m.View(), "Support is typing") {
		t.Error("typing indicator should disappear after the reply")
	}
}

func TestInputDisabledWhileAwaiting(t *testing.T) {
	caller := api.NewMockAgentCaller(api.SuccessResponse("ok"), nil)
	m := newTestModel(caller)

	m, _ = press(t, m, typeText("first"), enter)
	m, cmd := press(t, m, typeText("second"), enter)

	if cmd != nil {
		t.Error("enter while awaiting should not start another call")
	}
	if m.conv.Len() != 1 {
		t.Errorf("expected 1 message, got %d", m.conv.Len())
	}
	if m.textarea.Value() != "" {
		t.Errorf("keys should not reach the input while awaiting, got %q", m.textarea.Value())
	}
	if !strings.Contains(m.View(), "Waiting for a reply") {
		t.Error("view should show the waiting state")
	}
}

func TestBlankEnterIgnored(t *testing.T) {
	caller := api.NewMockAgentCaller(api.SuccessResponse("ok"), nil)
	m := newTestModel(caller)

	m, _ = press(t, m, typeText("hello"), enter)
	m = deliver(t, m)

	m, cmd := press(t, m, typeText("   "), enter)
	if cmd != nil {
		t.Error("blank submit should not start a call")
	}
	if m.conv.Len() != 2 {
		t.Errorf("expected 2 messages, got %d", m.conv.Len())
	}
}

func TestReplyBranches(t *testing.T) {
	tests := []struct {
		name string
		resp *models.AgentResponse
		err  error
		want string
	}{
		{"empty result", api.SuccessResponse(""), nil, models.FallbackEmpty},
		{"soft failure", api.FailureResponse("error", "Rate limited"), nil, "Rate limited"},
		{"fault", nil, errors.New("connection reset"), models.FallbackError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(api.NewMockAgentCaller(tt.resp, tt.err))
			m, _ = press(t, m, typeText("hi"), enter)
			m = deliver(t, m)

			last, ok := m.conv.Last()
			if !ok || last.Content != tt.want {
				t.Errorf("agent reply = %q, want %q", last.Content, tt.want)
			}
			if m.conv.Awaiting() {
				t.Error("awaiting should clear")
			}
		})
	}
}

func TestStaleReplyIgnored(t *testing.T) {
	caller := api.NewMockAgentCaller(api.SuccessResponse("ok"), nil)
	m := newTestModel(caller)

	m, _ = press(t, m, typeText("one"), enter)
	stale := m.conv.Pending()
	m = deliver(t, m)

	m, _ = press(t, m, replyMsg{pending: stale, resp: api.SuccessResponse("duplicate")})
	if m.conv.Len() != 2 {
		t.Errorf("stale reply should be ignored, got %d messages", m.conv.Len())
	}
}

func TestCopyLastReply(t *testing.T) {
	var copied string
	clip := func(s string) error {
		copied = s
		return nil
	}
	m := newTestModel(api.NewMockAgentCaller(api.SuccessResponse("Our hours are 9-5."), nil), WithClipboard(clip))

	_, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	if cmd != nil {
		t.Error("nothing to copy before the first reply")
	}

	m, _ = press(t, m, typeText("hours?"), enter)
	m = deliver(t, m)

	m, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	if cmd == nil {
		t.Fatal("expected a copy command")
	}
	m, _ = press(t, m, cmd())

	if copied != "Our hours are 9-5." {
		t.Errorf("copied %q", copied)
	}
	if !strings.Contains(m.View(), "Reply copied") {
		t.Error("view should confirm the copy")
	}
}

func TestCopyFailureNotice(t *testing.T) {
	clip := func(string) error { return errors.New("no clipboard") }
	m := newTestModel(api.NewMockAgentCaller(api.SuccessResponse("x"), nil), WithClipboard(clip))

	m, _ = press(t, m, typeText("q"), enter)
	m = deliver(t, m)
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	m, _ = press(t, m, cmd())

	if !strings.Contains(m.View(), "Could not copy") {
		t.Error("view should report the copy failure")
	}
}

func TestQuitCancelsPending(t *testing.T) {
	m := newTestModel(api.NewMockAgentCaller(api.SuccessResponse("x"), nil))

	m, _ = press(t, m, typeText("hello"), enter)
	p := m.conv.Pending()

	_, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if !errors.Is(p.Context().Err(), context.Canceled) {
		t.Error("quitting should cancel the in-flight call")
	}
}

func TestSlashQuit(t *testing.T) {
	caller := api.NewMockAgentCaller(nil, nil)
	m := newTestModel(caller)

	m, cmd := press(t, m, typeText("/quit"), enter)
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if m.conv.Len() != 0 {
		t.Error("/quit should not be sent as a message")
	}
}

func TestNewStyles_UsesPalette(t *testing.T) {
	s := NewStyles(render.NordPalette)
	if s.Palette().Name != "nord" {
		t.Errorf("palette = %q", s.Palette().Name)
	}
	if DefaultStyles().Palette().Name != render.SupportPalette.Name {
		t.Error("default styles should use the support palette")
	}
}
