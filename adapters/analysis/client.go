package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"ksfit/domain/fit"
	"ksfit/internal/config"
	"ksfit/internal/errors"
)

// Client submits samples to the remote goodness-of-fit service
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a client for the configured analyze endpoint.
// A zero timeout leaves the call bounded only by the caller's context.
func NewClient(cfg config.AnalysisConfig) *Client {
	return NewClientWithHTTP(cfg.Endpoint(), &http.Client{Timeout: cfg.Timeout})
}

// NewClientWithHTTP creates a client posting to endpoint through httpClient
func NewClientWithHTTP(endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: httpClient,
	}
}

// Endpoint returns the URL requests are posted to
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Submit performs exactly one POST of the request. It is never retried.
// Non-2xx statuses and network failures map to TRANSPORT_ERROR; bodies that
// do not have the expected shape map to MALFORMED_RESPONSE.
func (c *Client) Submit(ctx context.Context, request fit.Request) (*fit.Result, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode analysis request")
	}

	req, err := c.buildRequest(ctx, payload)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build analysis request")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("[AnalysisClient] POST %s failed after %s: %v", c.endpoint, time.Since(start).Round(time.Millisecond), err)
		return nil, errors.Transport("could not reach the analysis service", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Transport("failed to read the analysis response", err)
	}

	log.Printf("[AnalysisClient] POST %s -> %d in %s (%d values, %s)",
		c.endpoint, resp.StatusCode, time.Since(start).Round(time.Millisecond), request.Data.Len(), request.Distribution)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if msg := serviceMessage(body); msg != "" {
			log.Printf("[AnalysisClient] service said: %s", msg)
		}
		return nil, errors.Transport(fmt.Sprintf("server responded with status %d", resp.StatusCode), nil)
	}

	return decodeResult(body)
}

func (c *Client) buildRequest(ctx context.Context, payload []byte) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return req, nil
}
