package relay

//go:generate mockgen -destination=./clients_mock_test.go -package=relay -source=clients.go

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrUpstream marks failures talking to the generative API.
var ErrUpstream = errors.New("upstream request failed")

// UpstreamClient is the contract for the client that talks to the generative API.
type UpstreamClient interface {
	// GenerateContent posts body and returns the raw JSON response.
	GenerateContent(ctx context.Context, body *UpstreamRequest) ([]byte, error)
}

// httpUpstreamClient is the implementation of UpstreamClient for the Gemini REST API.
type httpUpstreamClient struct {
	httpClient *http.Client
	// endpoint already carries the key query parameter.
	endpoint string
}

// NewHTTPUpstreamClient is the constructor. endpoint is the full generateContent endpoint,
// key included. One client is shared by all requests.
func NewHTTPUpstreamClient(endpoint string, timeout time.Duration) UpstreamClient {
	return &httpUpstreamClient{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
	}
}

func (c *httpUpstreamClient) GenerateContent(ctx context.Context, body *UpstreamRequest) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	// Messages are forwarded untouched, so no HTML escaping of their text.
	enc.SetEscapeHTML(false)
	if err := enc.Encode(body); err != nil {
		return nil, fmt.Errorf("could not marshal upstream request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("could not create upstream http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error would print the key; keep only the underlying cause.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: could not read response: %w", ErrUpstream, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: non-2xx status %d: %s", ErrUpstream, resp.StatusCode, raw)
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("%w: response is not valid JSON", ErrUpstream)
	}
	return raw, nil
}
