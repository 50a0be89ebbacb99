// Package notify delivers run results to outbound channels: a JSON webhook
// and an SMTP email. Delivery failures never fail the run.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	webhookMaxRetries     = 3
	webhookDefaultTimeout = 10 * time.Second
)

// Message carries the values the pipeline hands to every channel. Channels
// own their wire formats; the pipeline does not know about them.
type Message struct {
	Title   string `json:"title"`
	Summary string `json:"summary,omitempty"`
	Path    string `json:"path"`
	Date    string `json:"date"`
}

// WebhookClient posts run results to a configured URL.
type WebhookClient struct {
	url        string
	httpClient *http.Client
}

// NewWebhook creates a webhook client. A zero timeout falls back to a
// 10-second default.
func NewWebhook(url string, timeout time.Duration) *WebhookClient {
	if timeout <= 0 {
		timeout = webhookDefaultTimeout
	}
	return &WebhookClient{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type webhookStatusError struct {
	Code int
	Body string
}

func (e *webhookStatusError) Error() string {
	return fmt.Sprintf("webhook status %d: %s", e.Code, e.Body)
}

// Send posts the message as JSON, retrying on 5xx and transport errors with
// quadratic backoff.
func (c *WebhookClient) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("notify: marshal webhook payload: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= webhookMaxRetries; attempt++ {
		err := c.sendOnce(ctx, body)
		if err == nil {
			return nil
		}

		lastErr = err
		if !shouldRetry(err) || attempt == webhookMaxRetries {
			return err
		}

		backoff := time.Duration(attempt*attempt) * 100 * time.Millisecond
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return lastErr
}

func (c *WebhookClient) sendOnce(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notify: create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("notify: post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &webhookStatusError{Code: resp.StatusCode, Body: string(data)}
	}
	return nil
}

func shouldRetry(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var statusErr *webhookStatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code >= 500
	}
	return true
}
