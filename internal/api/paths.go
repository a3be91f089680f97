// Package api provides the agent endpoint client.
package api

// GJSON paths for extracting values from agent responses.
const (
	PathSuccess  = "success"
	PathResponse = "response"

	// Relative to the response object
	PathStatus  = "status"
	PathResult  = "result"
	PathMessage = "message"
)

// Request body field names
const (
	FieldMessage = "message"
	FieldAgentID = "agent_id"
)
