// Package chat holds the client-side conversation state.
//
// A Conversation is owned by a single goroutine (the TUI update loop or a
// one-shot command). It is not safe for concurrent use; the awaiting flag is
// what keeps a second request from starting while one is outstanding.
package chat

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	apierrors "github.com/diogo/supportchat/internal/errors"
	"github.com/diogo/supportchat/internal/models"
)

// Conversation is the ordered message list plus the flags that drive the UI
type Conversation struct {
	messages []models.Message
	awaiting bool
	greeting bool
	draft    string
	pending  *Pending

	now    func() time.Time
	newID  func() string
	logger zerolog.Logger
}

// Option configures a Conversation
type Option func(*Conversation)

// WithClock replaces time.Now for message timestamps
func WithClock(now func() time.Time) Option {
	return func(c *Conversation) {
		c.now = now
	}
}

// WithIDGenerator replaces the UUID generator for message ids
func WithIDGenerator(gen func() string) Option {
	return func(c *Conversation) {
		c.newID = gen
	}
}

// WithLogger sets the logger used to record faulted calls
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Conversation) {
		c.logger = logger
	}
}

// New creates an empty conversation showing the greeting
func New(opts ...Option) *Conversation {
	c := &Conversation{
		greeting: true,
		now:      time.Now,
		newID:    uuid.NewString,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Messages returns a copy of the messages in display order
func (c *Conversation) Messages() []models.Message {
	out := make([]models.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages
func (c *Conversation) Len() int {
	return len(c.messages)
}

// Last returns the most recent message, if any
func (c *Conversation) Last() (models.Message, bool) {
	if len(c.messages) == 0 {
		return models.Message{}, false
	}
	return c.messages[len(c.messages)-1], true
}

// LastAgentReply returns the content of the most recent agent message
func (c *Conversation) LastAgentReply() (string, bool) {
	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Role == models.RoleAgent {
			return c.messages[i].Content, true
		}
	}
	return "", false
}

// Awaiting reports whether a reply is outstanding
func (c *Conversation) Awaiting() bool {
	return c.awaiting
}

// Greeting reports whether the welcome panel is still active
func (c *Conversation) Greeting() bool {
	return c.greeting
}

// ShowWelcome reports whether the welcome panel should be drawn
func (c *Conversation) ShowWelcome() bool {
	return c.greeting && len(c.messages) == 0
}

// ShowEmptyState reports whether the "start a conversation" hint should be drawn
func (c *Conversation) ShowEmptyState() bool {
	return !c.greeting && len(c.messages) == 0
}

// Pending returns the outstanding request, or nil
func (c *Conversation) Pending() *Pending {
	return c.pending
}

// Draft returns the pending input buffer
func (c *Conversation) Draft() string {
	return c.draft
}

// SetDraft replaces the pending input buffer
func (c *Conversation) SetDraft(text string) {
	c.draft = text
}

// CanSubmit reports whether Submit(text) would be accepted
func (c *Conversation) CanSubmit(text string) bool {
	return !c.awaiting && strings.TrimSpace(text) != ""
}

// Submit appends a user message and starts a request for it. Blank text, or
// any text while a reply is outstanding, is ignored.
func (c *Conversation) Submit(text string) (*Pending, bool) {
	if !c.CanSubmit(text) {
		return nil, false
	}

	content := strings.TrimSpace(text)
	msg := c.append(models.RoleUser, content)

	c.awaiting = true
	c.greeting = false
	c.draft = ""
	c.pending = newPending(msg.ID, content)

	return c.pending, true
}

// SubmitDraft submits the current draft
func (c *Conversation) SubmitDraft() (*Pending, bool) {
	return c.Submit(c.draft)
}

// Resolve appends the agent's reply for p and clears the awaiting flag.
// A pending that is not the outstanding request is ignored.
func (c *Conversation) Resolve(p *Pending, resp *models.AgentResponse, err error) (models.Message, bool) {
	if p == nil || p != c.pending {
		return models.Message{}, false
	}

	if err != nil {
		c.logger.Error().
			Err(err).
			Str("kind", apierrors.Kind(err)).
			Str("request_id", p.ID).
			Int("status", apierrors.GetHTTPStatus(err)).
			Str("endpoint", apierrors.GetEndpoint(err)).
			Str("body", apierrors.GetResponseBody(err)).
			Msg("agent call failed")
	} else if !resp.IsAgentSuccess() {
		status := ""
		if resp != nil && resp.Body != nil {
			status = resp.Body.Status
		}
		c.logger.Warn().
			Str("request_id", p.ID).
			Str("status", status).
			Bool("has_body", resp != nil && resp.Body != nil).
			Msg("agent reported failure")
	}

	msg := c.append(models.RoleAgent, ReplyText(resp, err))

	p.Cancel()
	c.pending = nil
	c.awaiting = false

	return msg, true
}

func (c *Conversation) append(role models.Role, content string) models.Message {
	msg := models.Message{
		ID:        c.newID(),
		Role:      role,
		Content:   content,
		Timestamp: c.now(),
	}
	c.messages = append(c.messages, msg)
	return msg
}

// ReplyText picks the text shown for an agent reply
func ReplyText(resp *models.AgentResponse, err error) string {
	if err != nil {
		return models.FallbackError
	}
	if resp.IsAgentSuccess() {
		if text := resp.ResultText(); text != "" {
			return text
		}
		return models.FallbackEmpty
	}
	if text := resp.MessageText(); text != "" {
		return text
	}
	return models.FallbackError
}
