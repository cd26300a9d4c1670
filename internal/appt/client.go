package appt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const dayFormat = "2006-01-02"

// Client talks JSON over HTTP to the CRM appointment endpoints.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient builds a REST client for the given base URL. The token is
// sent as a bearer credential when non-empty.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// List fetches appointments whose start falls within the closed day
// interval [start, end].
func (c *Client) List(ctx context.Context, start, end time.Time, assignee string) ([]Appointment, error) {
	q := url.Values{}
	q.Set("start", start.Format(dayFormat))
	q.Set("end", end.Format(dayFormat))
	if assignee != "" {
		q.Set("assignee", assignee)
	}
	var out []Appointment
	if err := c.do(ctx, http.MethodGet, "/api/appointments?"+q.Encode(), nil, &out); err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return out, nil
}

// Create posts a new appointment and returns the stored record.
func (c *Client) Create(ctx context.Context, draft Appointment) (Appointment, error) {
	var out Appointment
	if err := c.do(ctx, http.MethodPost, "/api/appointments", draft, &out); err != nil {
		return Appointment{}, fmt.Errorf("create appointment: %w", err)
	}
	return out, nil
}

// Detail fetches a single appointment by id.
func (c *Client) Detail(ctx context.Context, id string) (*Appointment, error) {
	var out Appointment
	err := c.do(ctx, http.MethodGet, "/api/appointments/"+url.PathEscape(id), nil, &out)
	if err != nil {
		return nil, fmt.Errorf("appointment detail: %w", err)
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return fmt.Errorf("backend returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
