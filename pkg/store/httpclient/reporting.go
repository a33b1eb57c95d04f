package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/dairy-tools/milk-atlas/pkg/models/domain"
)

const defaultTimeout = 30 * time.Second

// ReportingClient talks to the remote reporting service: query-string
// parameterized GET endpoints returning JSON. Transport and server errors
// both surface as FetchError so callers can clear stale results uniformly.
type ReportingClient struct {
	base  *url.URL
	token string
	http  *http.Client
}

type Option func(*ReportingClient)

func WithHTTPClient(c *http.Client) Option {
	return func(rc *ReportingClient) {
		rc.http = c
	}
}

func NewReportingClient(host, token string, opts ...Option) (*ReportingClient, error) {
	base, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid reporting service host %q: %w", host, err)
	}

	rc := &ReportingClient{
		base:  base,
		token: token,
		http:  &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(rc)
	}
	return rc, nil
}

func (c *ReportingClient) Get(ctx context.Context, endpoint string, params url.Values) (json.RawMessage, error) {
	u := *c.base
	u.Path += endpoint
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build report request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &domain.FetchError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.FetchError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.FetchError{
			Message: serverMessage(body, resp.StatusCode),
			Err:     fmt.Errorf("reporting service returned %d", resp.StatusCode),
		}
	}

	return body, nil
}

// serverMessage pulls the human-readable message out of an error body, if
// the service supplied one.
func serverMessage(body []byte, status int) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return fmt.Sprintf("server error (%d)", status)
}
