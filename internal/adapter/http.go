package adapter

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/feral-file/ff-token-prober/internal/logger"
)

// HTTPResponse is a fully read HTTP response
type HTTPResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// OK reports whether the response has a 2xx status code
func (r *HTTPResponse) OK() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

// HTTPClient defines an interface for HTTP client operations to enable mocking
//
//go:generate mockgen -source=http.go -destination=../mocks/http.go -package=mocks -mock_names=HTTPClient=MockHTTPClient
type HTTPClient interface {
	// Fetch performs a single GET request and reads the body.
	// Non-2xx responses are returned without error; the caller decides.
	// Deadlines come from ctx.
	Fetch(ctx context.Context, url string) (*HTTPResponse, error)
}

// RealHTTPClient implements HTTPClient using the standard http package
type RealHTTPClient struct {
	client      *http.Client
	maxBodySize int64
}

// NewHTTPClient creates a new real HTTP client without a client-level timeout,
// so direct fetches and gateway attempts each run under their caller's deadline.
// Bodies larger than maxBodySize are rejected; 0 means unlimited.
func NewHTTPClient(maxBodySize int64) HTTPClient {
	return &RealHTTPClient{
		client:      &http.Client{},
		maxBodySize: maxBodySize,
	}
}

// Fetch performs a GET request and returns the status code and body
func (c *RealHTTPClient) Fetch(ctx context.Context, url string) (*HTTPResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json, */*")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Warn("failed to close response body", zap.Error(err), zap.String("url", url))
		}
	}()

	var reader io.Reader = resp.Body
	if c.maxBodySize > 0 {
		reader = io.LimitReader(resp.Body, c.maxBodySize+1)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if c.maxBodySize > 0 && int64(len(body)) > c.maxBodySize {
		return nil, fmt.Errorf("response body exceeds %d bytes", c.maxBodySize)
	}

	return &HTTPResponse{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}
