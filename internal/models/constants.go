// Package models contains data types and constants for the support chat.
package models

// Fixed reply texts used when the agent gives nothing usable back.
const (
	// FallbackEmpty is shown when the agent succeeded but returned no text.
	FallbackEmpty = "I received your message but could not generate a response."

	// FallbackError is shown when the call faulted or the agent reported a
	// failure without a message of its own.
	FallbackError = "I apologize, but I encountered an error. Please try again."
)

// AgentStatusSuccess is the status value the agent reports on success.
const AgentStatusSuccess = "success"

// Welcome panel copy
const (
	ChatTitle       = "Support Chat"
	ChatSubtitle    = "We're here to help"
	WelcomeGreeting = "Hi! How can I help you today?"
	EmptyStateHint  = "Start a conversation"
)

// QuickQuestions are the pre-written shortcuts offered on the welcome panel.
var QuickQuestions = []string{
	"How do I reset my password?",
	"What are your business hours?",
	"How can I contact support?",
}

// DefaultHeaders returns the default headers for agent requests
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type":    "application/json",
		"Accept":          "application/json",
		"Accept-Language": "en-US,en;q=0.9",
		"User-Agent":      "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/133.0.0.0 Safari/537.36",
	}
}
