// Package contact submits visitor contact details to the intake webhook.
package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"settlement-quiz/internal/common/config"
	"settlement-quiz/internal/common/errors"
	"settlement-quiz/internal/common/logger"
	"settlement-quiz/internal/common/metrics"
)

// Form is the contact webhook request payload.
type Form struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	SessionID string `json:"sessionId"`
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate checks the form ahead of the webhook call.
func (f Form) Validate() error {
	if strings.TrimSpace(f.Name) == "" || strings.TrimSpace(f.Email) == "" || strings.TrimSpace(f.Phone) == "" {
		return errors.NewContactInvalidError("Name, email, and phone number are required")
	}
	if !emailPattern.MatchString(strings.TrimSpace(f.Email)) {
		return errors.NewContactInvalidError("Please enter a valid email address")
	}
	return nil
}

// Trimmed returns a copy with whitespace stripped from every field.
func (f Form) Trimmed() Form {
	return Form{
		Name:      strings.TrimSpace(f.Name),
		Email:     strings.TrimSpace(f.Email),
		Phone:     strings.TrimSpace(f.Phone),
		SessionID: f.SessionID,
	}
}

type Client struct {
	url        string
	timeout    time.Duration
	httpClient *http.Client
	logger     logger.Logger
}

func NewClient(cfg config.WebhookConfig, log logger.Logger) *Client {
	timeout := cfg.GetTimeout()
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		url:        cfg.URL,
		timeout:    timeout,
		httpClient: &http.Client{},
		logger:     log,
	}
}

// Submit posts the form to the contact webhook. Any 2xx status is success.
// With no webhook configured the form is logged and accepted, mirroring the
// estimate client's fallback-only mode.
func (c *Client) Submit(ctx context.Context, form Form) error {
	if err := form.Validate(); err != nil {
		return err
	}
	form = form.Trimmed()

	if c.url == "" {
		c.logger.Info("No contact webhook configured, accepting form locally", map[string]interface{}{
			"sessionId": form.SessionID,
		})
		metrics.ContactSubmissions.WithLabelValues("accepted_local").Inc()
		return nil
	}

	payload, err := json.Marshal(form)
	if err != nil {
		return errors.NewContactSendFailedError(fmt.Errorf("failed to marshal form: %w", err))
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.url, bytes.NewBuffer(payload))
	if err != nil {
		return errors.NewContactSendFailedError(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.WebhookRequestDuration.WithLabelValues("contact").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ContactSubmissions.WithLabelValues("failed").Inc()
		return errors.NewContactSendFailedError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		metrics.ContactSubmissions.WithLabelValues("failed").Inc()
		return errors.NewContactSendFailedError(
			fmt.Errorf("contact webhook responded with %d: %s", resp.StatusCode, truncate(string(body), 200)))
	}

	metrics.ContactSubmissions.WithLabelValues("accepted").Inc()
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
