package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"planforge/internal/domain"
)

// Client forwards work-item events to a repository-dispatch endpoint.
type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
}

var _ domain.Dispatcher = (*Client)(nil)

// NewClient creates a dispatch client for endpoint authenticated with
// token.
func NewClient(endpoint, token string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		endpoint:   endpoint,
		token:      token,
	}
}

// dispatchRequest is the repository-dispatch request body. The full
// event rides along as the client payload.
type dispatchRequest struct {
	EventType     string                `json:"event_type"`
	ClientPayload *domain.WorkItemEvent `json:"client_payload"`
}

// Dispatch posts the event downstream and returns the response status
// code.
func (c *Client) Dispatch(ctx context.Context, event *domain.WorkItemEvent) (int, error) {
	if c.endpoint == "" {
		return 0, domain.ErrMissingDispatch
	}

	body, err := json.Marshal(dispatchRequest{EventType: event.Action, ClientPayload: event})
	if err != nil {
		return 0, fmt.Errorf("encode dispatch request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build dispatch request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("dispatch event: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}
