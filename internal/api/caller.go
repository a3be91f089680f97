package api

import (
	"context"

	"github.com/diogo/supportchat/internal/models"
)

// AgentCaller is the collaborator the conversation delegates to.
// A returned error is a fault; a returned response may still report a
// logical failure through its status.
type AgentCaller interface {
	Call(ctx context.Context, text, agentID string) (*models.AgentResponse, error)
}

// Ensure AgentClient implements AgentCaller
var _ AgentCaller = (*AgentClient)(nil)
