package api

import (
	"context"
	"sync"

	"github.com/diogo/supportchat/internal/models"
)

// MockAgentCaller is a mock implementation of AgentCaller for testing
type MockAgentCaller struct {
	// Mock return values
	Response *models.AgentResponse
	Err      error

	// Gate, when non-nil, holds every call open until it is closed or
	// receives a value.
	Gate chan struct{}

	mu       sync.Mutex
	calls    int
	lastText string
	lastID   string
}

// Ensure MockAgentCaller implements AgentCaller
var _ AgentCaller = (*MockAgentCaller)(nil)

// NewMockAgentCaller returns a mock that answers every call with resp and err
func NewMockAgentCaller(resp *models.AgentResponse, err error) *MockAgentCaller {
	return &MockAgentCaller{Response: resp, Err: err}
}

// Call records the request and returns the canned values
func (m *MockAgentCaller) Call(ctx context.Context, text, agentID string) (*models.AgentResponse, error) {
	m.mu.Lock()
	m.calls++
	m.lastText = text
	m.lastID = agentID
	gate := m.Gate
	m.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return m.Response, m.Err
}

// Calls returns how many times Call was invoked
func (m *MockAgentCaller) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastText returns the text of the most recent call
func (m *MockAgentCaller) LastText() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastText
}

// LastAgentID returns the agent id of the most recent call
func (m *MockAgentCaller) LastAgentID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastID
}

// SuccessResponse builds a successful agent response carrying result
func SuccessResponse(result string) *models.AgentResponse {
	return &models.AgentResponse{
		Success: true,
		Body: &models.AgentResponseBody{
			Status: models.AgentStatusSuccess,
			Result: models.StringPtr(result),
		},
	}
}

// FailureResponse builds a soft-failure response carrying message
func FailureResponse(status, message string) *models.AgentResponse {
	return &models.AgentResponse{
		Success: false,
		Body: &models.AgentResponseBody{
			Status:  status,
			Message: models.StringPtr(message),
		},
	}
}
