// Package restapi is the client for the republic backend's events API.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"golang.org/x/oauth2"

	"github.com/vitorsousa/repcal/internal"
)

// APIError is a non-2xx answer from the backend.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("api: backend returned status %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client

	Verbose bool
}

// NewClient creates a backend client. The bearer token is attached to
// every request through an oauth2 static token source.
func NewClient(baseURL, token string) *Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: oauth2.NewClient(context.Background(), src),
	}
}

func (c *Client) Events(ctx context.Context, q internal.ServerQuery) ([]internal.Event, error) {
	path := "/events"
	if q != internal.QueryAll {
		path += "/" + string(q)
	}
	c.logf("listing events (%s)", q)

	var payload []eventPayload
	if err := c.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return nil, err
	}
	events := make([]internal.Event, len(payload))
	for i, p := range payload {
		events[i] = *p.Convert()
	}
	return events, nil
}

func (c *Client) EventByID(ctx context.Context, id int64) (*internal.Event, error) {
	var payload eventPayload
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/events/%d", id), nil, &payload)
	if err != nil {
		return nil, err
	}
	return payload.Convert(), nil
}

func (c *Client) CreateEvent(ctx context.Context, form *internal.EventForm) (*internal.Event, error) {
	c.logf("creating event %q", form.Title)

	var payload eventPayload
	err := c.do(ctx, http.MethodPost, "/events", newFormPayload(form), &payload)
	if err != nil {
		return nil, err
	}
	return payload.Convert(), nil
}

func (c *Client) UpdateEvent(ctx context.Context, id int64, form *internal.EventForm) (*internal.Event, error) {
	c.logf("updating event %d", id)

	var payload eventPayload
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/events/%d", id), newFormPayload(form), &payload)
	if err != nil {
		return nil, err
	}
	return payload.Convert(), nil
}

func (c *Client) DeleteEvent(ctx context.Context, id int64) error {
	c.logf("deleting event %d", id)
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/events/%d", id), nil, nil)
}

func (c *Client) InviteUsers(ctx context.Context, id int64, userIDs []string) error {
	c.logf("inviting %d user(s) to event %d", len(userIDs), id)
	path := fmt.Sprintf("/events/%d/invitations", id)
	return c.do(ctx, http.MethodPost, path, invitePayload{UserIDs: userIDs}, nil)
}

func (c *Client) Respond(ctx context.Context, id int64, userID string, status internal.InvitationStatus) (*internal.Event, error) {
	c.logf("event %d: user %s responds %s", id, userID, status)

	var payload eventPayload
	path := fmt.Sprintf("/events/%d/invitations/%s", id, userID)
	err := c.do(ctx, http.MethodPut, path, respondPayload{Status: status.String()}, &payload)
	if err != nil {
		return nil, err
	}
	return payload.Convert(), nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("api: encoding request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("api: building request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(resp.Body),
		}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decoding response: %w", err)
	}
	return nil
}

// errorMessage pulls the backend's message field out of an error body,
// falling back to the raw text.
func errorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		return body.Message
	}
	return strings.TrimSpace(string(raw))
}

func (c *Client) logf(format string, a ...any) {
	if c.Verbose {
		internal.Logf(os.Stdout, "api:", "", format, a...)
	}
}
