package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dnbonthebike/ridemap/internal/model"
)

const defaultTimeout = 15 * time.Second

// Config holds client settings.
type Config struct {
	// BaseURL is the backend root, e.g. "http://localhost:8081".
	BaseURL string
	// Timeout applies when HTTPClient is nil.
	Timeout time.Duration
	// HTTPClient overrides the underlying client when set.
	HTTPClient *http.Client
}

// Client calls the public surface of the events backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the backend at cfg.BaseURL.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
	}
}

// Admin returns an admin-surface view of this client authenticated with the
// given shared secret. The secret is sent on every request; it is not
// verified up front.
func (c *Client) Admin(key string) *Admin {
	return &Admin{c: c, key: key}
}

type eventsEnvelope struct {
	Events []model.Event `json:"events"`
}

type organizersEnvelope struct {
	Organizers []model.Organizer `json:"organizers"`
}

// Events fetches all approved events.
func (c *Client) Events(ctx context.Context) ([]model.Event, error) {
	var out eventsEnvelope
	if err := c.do(ctx, http.MethodGet, "/events", "", nil, &out); err != nil {
		return nil, fmt.Errorf("fetch events: %w", err)
	}
	return out.Events, nil
}

// Organizers fetches all organizers.
func (c *Client) Organizers(ctx context.Context) ([]model.Organizer, error) {
	var out organizersEnvelope
	if err := c.do(ctx, http.MethodGet, "/organizers", "", nil, &out); err != nil {
		return nil, fmt.Errorf("fetch organizers: %w", err)
	}
	return out.Organizers, nil
}

// EventsByOrganizer fetches approved events for one organizer.
func (c *Client) EventsByOrganizer(ctx context.Context, organizerID int64) ([]model.Event, error) {
	var out eventsEnvelope
	path := fmt.Sprintf("/events/organizer/%d", organizerID)
	if err := c.do(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, fmt.Errorf("fetch organizer events: %w", err)
	}
	return out.Events, nil
}

// CreateEvent submits a new event. The payload is validated client-side
// first; the backend assigns the id and the pending status.
func (c *Client) CreateEvent(ctx context.Context, req *model.CreateEventRequest) (*model.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var created model.Event
	if err := c.do(ctx, http.MethodPost, "/events", "", req, &created); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return &created, nil
}

// SuggestVideo submits a video suggestion for an event.
func (c *Client) SuggestVideo(ctx context.Context, eventID int64, videoURL string) error {
	req := model.SuggestVideoRequest{EventID: eventID, VideoURL: videoURL}
	if err := req.Validate(); err != nil {
		return err
	}
	if err := c.do(ctx, http.MethodPost, "/suggestions/video", "", &req, nil); err != nil {
		return fmt.Errorf("submit video suggestion: %w", err)
	}
	return nil
}

// do performs one request against the backend. adminKey, when non-empty, is
// sent as the X-Admin-Key header. A 401 always maps to ErrInvalidAdminKey:
// only admin endpoints return it, and a missing key is as invalid as a wrong
// one.
func (c *Client) do(ctx context.Context, method, path, adminKey string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("X-Request-ID", uuid.New().String())
	if adminKey != "" {
		req.Header.Set("X-Admin-Key", adminKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrInvalidAdminKey
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Method: method, Path: path, Status: resp.StatusCode}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
