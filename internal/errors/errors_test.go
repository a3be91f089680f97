package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestAPIError(t *testing.T) {
	err := NewAPIError(429, "http://agent", "agent call failed")

	expected := "API error [429] at http://agent: agent call failed"
	if err.Error() != expected {
		t.Errorf("Error() = %s, want %s", err.Error(), expected)
	}

	noStatus := NewAPIError(0, "http://agent", "boom")
	if noStatus.Error() != "API error at http://agent: boom" {
		t.Errorf("unexpected message: %s", noStatus.Error())
	}
}

func TestAPIErrorWithBody_Truncates(t *testing.T) {
	body := strings.Repeat("x", maxBodyLen+100)
	err := NewAPIErrorWithBody(500, "http://agent", "failed", body)
	if len(err.Body) != maxBodyLen {
		t.Errorf("Body length = %d, want %d", len(err.Body), maxBodyLen)
	}
}

func TestNetworkError(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewNetworkError("agent call", "http://agent", cause)

	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("Error() should mention cause, got %s", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("NetworkError should unwrap to its cause")
	}
	if !IsNetworkError(fmt.Errorf("wrapped: %w", err)) {
		t.Error("IsNetworkError should see through wrapping")
	}
}

func TestTimeoutError(t *testing.T) {
	err := NewTimeoutError("after 30s")

	if err.Error() != "request timed out: after 30s" {
		t.Errorf("Error() = %s", err.Error())
	}
	if NewTimeoutError("").Error() != "request timed out" {
		t.Error("empty message should use default text")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("TimeoutError should match context.DeadlineExceeded")
	}
	if !IsTimeoutError(context.DeadlineExceeded) {
		t.Error("IsTimeoutError should accept context.DeadlineExceeded")
	}
}

func TestParseError(t *testing.T) {
	err := NewParseError("body is not JSON", "<html>")

	if err.Error() != "parse error: body is not JSON" {
		t.Errorf("Error() = %s", err.Error())
	}
	if !errors.Is(err, ErrInvalidResponse) {
		t.Error("ParseError should match ErrInvalidResponse")
	}
	if GetResponseBody(err) != "<html>" {
		t.Errorf("GetResponseBody() = %q", GetResponseBody(err))
	}
}

func TestGetters(t *testing.T) {
	apiErr := fmt.Errorf("call: %w", NewAPIErrorWithBody(503, "http://agent", "down", "maintenance"))

	if GetHTTPStatus(apiErr) != 503 {
		t.Errorf("GetHTTPStatus() = %d, want 503", GetHTTPStatus(apiErr))
	}
	if GetEndpoint(apiErr) != "http://agent" {
		t.Errorf("GetEndpoint() = %q", GetEndpoint(apiErr))
	}
	if GetResponseBody(apiErr) != "maintenance" {
		t.Errorf("GetResponseBody() = %q", GetResponseBody(apiErr))
	}

	plain := errors.New("plain")
	if GetHTTPStatus(plain) != 0 || GetEndpoint(plain) != "" || GetResponseBody(plain) != "" {
		t.Error("plain errors should yield zero values")
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{NewTimeoutError(""), "timeout"},
		{NewNetworkError("call", "", errors.New("x")), "network"},
		{NewAPIError(500, "e", "m"), "http"},
		{NewParseError("bad", ""), "parse"},
		{context.Canceled, "canceled"},
		{errors.New("other"), "other"},
	}

	for _, tt := range tests {
		if got := Kind(tt.err); got != tt.want {
			t.Errorf("Kind(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
