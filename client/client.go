// Package client is the HTTP transport used by the contract tests to call the service under test.
//
// It knows nothing about the scenario being run: it sends one request, decodes whatever comes
// back, and distinguishes only between "got an HTTP response" and "could not get one".
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/logbook/api-contract-tests/framework"
)

// Client performs one HTTP request at a time against the service under test. It does not retry,
// does not override the transport's timeouts, and follows redirects only as net/http does by
// default.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     framework.Logger
}

// Response is the status code and decoded body of a request that completed at the HTTP level,
// whatever the status.
type Response struct {
	Status int
	Body   Body
}

// TransportError means a request could not be completed at all: the URL was bad, the host could
// not be resolved or reached, or the response could not be read.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s -> %s", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// New creates a Client for the service at baseURL. Request paths passed to Call are appended to
// baseURL. If httpClient is nil, http.DefaultClient is used.
func New(baseURL string, httpClient *http.Client, logger framework.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = framework.NullLogger()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// BaseURL returns the URL that request paths are relative to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Call sends a request and returns the response status and body. If token is non-empty it is
// sent as a bearer credential. If body is non-nil it is encoded as JSON.
//
// A non-nil error is always a *TransportError; an unexpected status is not an error at this level.
func (c *Client) Call(ctx context.Context, method, path, token string, body interface{}) (Response, error) {
	fail := func(err error) (Response, error) {
		c.logger.Printf("Request failed: %s %s: %s", method, path, err)
		return Response{}, &TransportError{Method: method, Path: path, Err: err}
	}

	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fail(fmt.Errorf("encoding request body: %w", err))
		}
		payload = data
	}

	url := c.baseURL + path
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fail(err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Printf("Request: %s", curlCommand(method, url, token != "", loggablePayload(payload)))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fail(err)
	}
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(fmt.Errorf("reading response body: %w", err))
	}

	decoded := DecodeBody(data)
	c.logger.Printf("Response: %d %s", resp.StatusCode, loggable(decoded))
	return Response{Status: resp.StatusCode, Body: decoded}, nil
}
