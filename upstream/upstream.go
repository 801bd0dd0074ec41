// Package upstream provides the base HTTP JSON client shared by the platform
// integrations. Every call carries a bounded timeout, and only two failure
// kinds escape: APIError for a rejection the upstream responded with, and
// NetworkError when no usable response arrived at all.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "cpbridge/1.0"

	// maxErrorExcerpt bounds how much of an error body is surfaced upward.
	maxErrorExcerpt = 512
)

// APIError is an upstream rejection: a non-2xx HTTP status, or an
// application-level error embedded in a 200 payload (platform clients raise
// those via NewAPIError).
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (%d): %s", e.Code, e.Message)
}

// NewAPIError builds an APIError for payload-level failures.
func NewAPIError(code int, format string, args ...any) *APIError {
	return &APIError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// NetworkError is a failure that yielded no usable response: connection
// refused, DNS, timeout, or a success status carrying an undecodable body.
type NetworkError struct {
	Message string
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %s", e.Message)
}

// AsAPIError returns the APIError wrapped in err, if any.
func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	ok := errors.As(err, &ae)
	return ae, ok
}

// AsNetworkError returns the NetworkError wrapped in err, if any.
func AsNetworkError(err error) (*NetworkError, bool) {
	var ne *NetworkError
	ok := errors.As(err, &ne)
	return ne, ok
}

// Client issues one-shot GET/POST requests and decodes JSON responses. It
// never retries; retry policy belongs to the caller.
type Client struct {
	hc *http.Client
}

// NewClient creates a Client with the default 30-second timeout.
func NewClient() *Client {
	return &Client{hc: &http.Client{Timeout: defaultTimeout}}
}

// WithHTTPClient replaces the underlying http.Client (tests, custom transports).
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.hc = hc
	return c
}

// GetJSON issues a GET with query parameters and decodes the response into out.
func (c *Client) GetJSON(ctx context.Context, rawurl string, params url.Values, headers http.Header, out any) error {
	target := rawurl
	if len(params) > 0 {
		sep := "?"
		if strings.Contains(rawurl, "?") {
			sep = "&"
		}
		target = rawurl + sep + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return &NetworkError{Message: err.Error()}
	}
	return c.do(req, headers, out)
}

// PostJSON issues a POST with a JSON body and decodes the response into out.
func (c *Client) PostJSON(ctx context.Context, rawurl string, body any, headers http.Header, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &NetworkError{Message: err.Error()}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawurl, bytes.NewReader(payload))
	if err != nil {
		return &NetworkError{Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, headers, out)
}

func (c *Client) do(req *http.Request, headers http.Header, out any) error {
	req.Header.Set("User-Agent", userAgent)
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return &NetworkError{Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return &NetworkError{Message: err.Error()}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Code: resp.StatusCode, Message: excerpt(data)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		// A 2xx with garbage in it is not an upstream rejection.
		return &NetworkError{Message: "malformed JSON in response body"}
	}
	return nil
}

func excerpt(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorExcerpt {
		s = s[:maxErrorExcerpt]
	}
	if s == "" {
		s = "empty response body"
	}
	return s
}
