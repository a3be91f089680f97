package models

// AgentResponseBody is the agent-level payload inside the response envelope.
// Result and Message are optional: nil means the field was absent, which is
// not the same as an empty string.
type AgentResponseBody struct {
	Status  string
	Result  *string
	Message *string
}

// AgentResponse is the envelope returned by the agent endpoint.
// Body is nil when the envelope carried no usable "response" object.
type AgentResponse struct {
	Success bool
	Body    *AgentResponseBody
}

// IsAgentSuccess reports whether both the transport envelope and the agent
// status indicate success.
func (r *AgentResponse) IsAgentSuccess() bool {
	return r != nil && r.Success && r.Body != nil && r.Body.Status == AgentStatusSuccess
}

// ResultText returns the result text, or "" when absent
func (r *AgentResponse) ResultText() string {
	if r == nil || r.Body == nil || r.Body.Result == nil {
		return ""
	}
	return *r.Body.Result
}

// MessageText returns the agent-supplied message, or "" when absent
func (r *AgentResponse) MessageText() string {
	if r == nil || r.Body == nil || r.Body.Message == nil {
		return ""
	}
	return *r.Body.Message
}

// StringPtr returns a pointer to s. Handy for building optional fields.
func StringPtr(s string) *string {
	return &s
}
