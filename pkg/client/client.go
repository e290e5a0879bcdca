// Package client calls the legal assistant relay over HTTP.
package client

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

const (
	DefaultBaseURL = "http://localhost:5000"
	askPath        = "/api/legal-assistant"
	// error bodies are small JSON objects; anything longer is not ours
	maxErrorBody = 4 << 10
)

// StatusError is returned for non-2xx relay responses.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("legal assistant http %d", e.StatusCode)
	}
	return fmt.Sprintf("legal assistant http %d: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL string
	httpDo  *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpDo:  &http.Client{Timeout: timeout},
	}
}

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Answer string `json:"answer"`
	Error  string `json:"error"`
}

// Ask posts one question and returns the raw answer text, which may be empty.
func (c *Client) Ask(ctx context.Context, question string) (string, error) {
	data, err := json.Marshal(askRequest{Question: question})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+askPath, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpDo.Do(req)
	if err != nil {
		return "", fmt.Errorf("call legal assistant: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var out askResponse
		_ = json.NewDecoder(io.LimitReader(resp.Body, maxErrorBody)).Decode(&out)
		return "", &StatusError{StatusCode: resp.StatusCode, Message: out.Error}
	}
	var out askResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return out.Answer, nil
}
