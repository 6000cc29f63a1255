// Package remote is the client library of the JSON remote protocol. Crawlers
// and scripts use it to log in, look up samples, and import measurement and
// deposition data.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const basePath = "/api/v1/jb"

// Client talks to a juliabase server. Login stores the bearer token for
// subsequent calls. A Client is safe for concurrent use after Login.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// NewClient creates a Client for the server at baseURL, e.g.
// "http://juliabase.example.com:8000".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Login authenticates and stores the bearer token for subsequent calls.
func (c *Client) Login(ctx context.Context, loginName, password string) error {
	request := map[string]string{
		"login_name": loginName,
		"password":   password,
	}
	var response struct {
		Token  string `json:"token"`
		Expiry int64  `json:"expiry"`
	}
	if err := c.do(ctx, http.MethodPost, "/login", request, &response); err != nil {
		return err
	}
	c.token = response.Token
	return nil
}

// do performs one JSON round trip. A non-2xx response is decoded into a
// ProtocolError.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+basePath+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		protocolErr := &ProtocolError{}
		if err := json.NewDecoder(resp.Body).Decode(protocolErr); err != nil {
			return fmt.Errorf("server returned status %d", resp.StatusCode)
		}
		return protocolErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
