package chat

import "context"

// Pending is the request started by an accepted Submit. Its context is what
// the agent call should run under; cancelling it aborts the call, which then
// resolves like any other fault.
type Pending struct {
	ID   string
	Text string

	ctx    context.Context
	cancel context.CancelFunc
}

func newPending(id, text string) *Pending {
	ctx, cancel := context.WithCancel(context.Background())
	return &Pending{ID: id, Text: text, ctx: ctx, cancel: cancel}
}

// Context returns the context for the in-flight call
func (p *Pending) Context() context.Context {
	return p.ctx
}

// Cancel aborts the in-flight call. Safe to call more than once.
func (p *Pending) Cancel() {
	p.cancel()
}
