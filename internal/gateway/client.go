package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// defaultTimeout bounds every request when the config supplies none. A hung
// backend must never leave an optimistic mutation unresolved forever.
const defaultTimeout = 10 * time.Second

// Client issues REST calls against the smart-home backend.
// All methods are safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a gateway client for the given base URL (scheme and host,
// e.g. "http://localhost:8080"). A timeout of 0 applies the default.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// do performs one request. body (when non-nil) is JSON-encoded; out (when
// non-nil) receives the decoded JSON response. Any failure returns *Error.
func (c *Client) do(ctx context.Context, op, entityID, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Op: op, EntityID: entityID, Err: fmt.Errorf("encoding request: %w", err)}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Op: op, EntityID: entityID, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Op: op, EntityID: entityID, Err: err}
	}
	defer resp.Body.Close() //nolint:errcheck // Best-effort close on read path

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// The error body is not part of the contract; discard it so the
		// connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return &Error{Op: op, EntityID: entityID, Status: resp.StatusCode, Err: ErrGateway}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &Error{Op: op, EntityID: entityID, Err: fmt.Errorf("decoding response: %w", err)}
		}
	} else {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	}
	return nil
}
