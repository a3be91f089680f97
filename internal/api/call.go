package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"

	apierrors "github.com/diogo/supportchat/internal/errors"
	"github.com/diogo/supportchat/internal/models"
)

// maxResponseBytes caps how much of a reply body is read
const maxResponseBytes = 4 << 20

// Call sends text to the agent identified by agentID and returns its reply.
// Any transport problem, non-2xx status or non-JSON body is returned as an
// error. A JSON body of the wrong shape is not an error: it yields a response
// with the missing parts absent.
func (c *AgentClient) Call(ctx context.Context, text, agentID string) (*models.AgentResponse, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apierrors.ErrEmptyMessage
	}

	if c.IsClosed() {
		return nil, apierrors.ErrClientClosed
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	payload, err := buildPayload(text, agentID)
	if err != nil {
		return nil, fmt.Errorf("failed to build payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range models.DefaultHeaders() {
		req.Header.Set(key, value)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}

	start := time.Now()
	c.logger.Debug().
		Str("endpoint", c.endpoint).
		Str("agent_id", agentID).
		Int("message_len", len(text)).
		Msg("calling agent")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.classifyTransportError(ctx, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, c.classifyTransportError(ctx, err)
	}

	c.logger.Debug().
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Dur("elapsed", time.Since(start)).
		Msg("agent replied")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// The agent reports its own failures (rate limits, bad input) with an
		// error status and a normal envelope
		if envelope, ok := errorEnvelope(body); ok {
			c.logger.Warn().
				Int("status", resp.StatusCode).
				Str("endpoint", c.endpoint).
				Msg("agent replied with error status")
			return envelope, nil
		}
		return nil, apierrors.NewAPIErrorWithBody(resp.StatusCode, c.endpoint, "agent call failed", string(body))
	}

	return parseResponse(body)
}

// classifyTransportError maps context expiry to TimeoutError and everything
// else to NetworkError
func (c *AgentClient) classifyTransportError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return apierrors.NewTimeoutError(fmt.Sprintf("agent call exceeded %s", c.timeout))
	}
	return apierrors.NewNetworkError("agent call", c.endpoint, err)
}

// buildPayload creates the JSON request body
func buildPayload(text, agentID string) ([]byte, error) {
	return json.Marshal(map[string]string{
		FieldMessage: text,
		FieldAgentID: agentID,
	})
}

// errorEnvelope returns the parsed envelope of a non-2xx reply when the body
// is a JSON object carrying a response object
func errorEnvelope(body []byte) (*models.AgentResponse, bool) {
	envelope, err := parseResponse(body)
	if err != nil || envelope.Body == nil {
		return nil, false
	}
	return envelope, true
}

// parseResponse parses the agent envelope into the tagged result
func parseResponse(body []byte) (*models.AgentResponse, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, apierrors.NewParseError("empty response body", "")
	}
	if !gjson.ValidBytes(trimmed) {
		return nil, apierrors.NewParseError("response is not valid JSON", string(trimmed))
	}

	parsed := gjson.ParseBytes(trimmed)
	out := &models.AgentResponse{}
	if !parsed.IsObject() {
		return out, nil
	}

	out.Success = parsed.Get(PathSuccess).Type == gjson.True

	inner := parsed.Get(PathResponse)
	if !inner.IsObject() {
		return out, nil
	}

	reply := &models.AgentResponseBody{}
	if status := inner.Get(PathStatus); status.Type == gjson.String {
		reply.Status = status.String()
	}
	reply.Result = optionalText(inner.Get(PathResult))
	reply.Message = optionalText(inner.Get(PathMessage))
	out.Body = reply

	return out, nil
}

// optionalText returns nil for absent or null values. Strings are taken as-is,
// anything else keeps its raw JSON form.
func optionalText(v gjson.Result) *string {
	switch {
	case !v.Exists(), v.Type == gjson.Null:
		return nil
	case v.Type == gjson.String:
		return models.StringPtr(v.String())
	default:
		return models.StringPtr(v.Raw)
	}
}
