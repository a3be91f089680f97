package chat

import (
	"context"
	"errors"

	"github.com/diogo/supportchat/internal/api"
	apierrors "github.com/diogo/supportchat/internal/errors"
	"github.com/diogo/supportchat/internal/models"
)

// ErrAwaiting is returned by Send while another reply is outstanding
var ErrAwaiting = errors.New("a reply is still outstanding")

// Send submits text, calls the agent and resolves the reply in one step.
// The returned message is the appended agent reply. A non-nil error with a
// non-empty message means the call faulted and the reply is the apology; a
// rejected submit returns an empty message and ErrEmptyMessage or ErrAwaiting.
// The caller's ctx and the pending's own context both bound the call.
func (c *Conversation) Send(ctx context.Context, caller api.AgentCaller, agentID, text string) (models.Message, error) {
	p, ok := c.Submit(text)
	if !ok {
		if c.awaiting {
			return models.Message{}, ErrAwaiting
		}
		return models.Message{}, apierrors.ErrEmptyMessage
	}

	callCtx, stop := context.WithCancel(ctx)
	defer stop()
	unwatch := context.AfterFunc(p.Context(), stop)
	defer unwatch()

	resp, err := caller.Call(callCtx, p.Text, agentID)
	msg, _ := c.Resolve(p, resp, err)
	return msg, err
}
