// Package estimate sends completed answer sets to the estimation webhook and
// falls back to the local heuristic scorer when the webhook is unconfigured or
// times out.
package estimate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"settlement-quiz/internal/common/config"
	"settlement-quiz/internal/common/errors"
	"settlement-quiz/internal/common/logger"
	"settlement-quiz/internal/common/metrics"
	"settlement-quiz/internal/common/observability"
	"settlement-quiz/internal/quiz/answers"
	"settlement-quiz/internal/quiz/score"
)

// Meta is the request metadata block of the webhook contract.
type Meta struct {
	UserAgent string `json:"userAgent"`
	Referrer  string `json:"referrer"`
	Path      string `json:"path"`
	Version   string `json:"version"`
}

// Submission is the estimation webhook request payload.
type Submission struct {
	SessionID   string      `json:"sessionId"`
	SubmittedAt string      `json:"submittedAt"`
	Answers     answers.Set `json:"answers"`
	Meta        Meta        `json:"meta"`
}

// NewSubmission stamps a payload with the current time and the v1 contract
// version.
func NewSubmission(sessionID string, set answers.Set, meta Meta) Submission {
	if meta.Version == "" {
		meta.Version = "v1"
	}
	return Submission{
		SessionID:   sessionID,
		SubmittedAt: time.Now().UTC().Format(time.RFC3339),
		Answers:     set,
		Meta:        meta,
	}
}

type Client struct {
	url            string
	timeout        time.Duration
	responseFormat string
	httpClient     *http.Client
	logger         logger.Logger
	obs            *observability.Observability
}

func NewClient(cfg config.WebhookConfig, log logger.Logger, obs *observability.Observability) *Client {
	timeout := cfg.GetTimeout()
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	format := cfg.ResponseFormat
	if format == "" {
		format = "auto"
	}
	return &Client{
		url:            cfg.URL,
		timeout:        timeout,
		responseFormat: format,
		httpClient:     &http.Client{},
		logger:         log,
		obs:            obs,
	}
}

// Submit resolves a completed answer set to an Estimate. An absent webhook URL
// or a timeout silently selects the local scorer; any other failure is
// returned as a retryable error and produces no estimate.
func (c *Client) Submit(ctx context.Context, sub Submission) (*score.Estimate, error) {
	if c.url == "" {
		c.logger.Info("No estimation webhook configured, using local scorer", map[string]interface{}{
			"sessionId": sub.SessionID,
		})
		return c.fallback(ctx, sub, "no_config"), nil
	}

	start := time.Now()
	est, err := c.callWebhook(ctx, sub)
	metrics.WebhookRequestDuration.WithLabelValues("estimate").Observe(time.Since(start).Seconds())

	if err != nil {
		if errors.IsTimeout(err) {
			c.logger.Warn("Estimation webhook timed out, using local scorer", map[string]interface{}{
				"sessionId": sub.SessionID,
				"timeout":   c.timeout.String(),
			})
			return c.fallback(ctx, sub, "timeout"), nil
		}
		return nil, err
	}

	est.Source = score.SourceRemote
	if c.obs != nil {
		c.obs.RecordEstimate(ctx, string(score.SourceRemote))
		c.obs.RecordEstimateDuration(ctx, time.Since(start), string(score.SourceRemote))
	}
	return est, nil
}

func (c *Client) fallback(ctx context.Context, sub Submission, reason string) *score.Estimate {
	metrics.EstimateFallbacks.WithLabelValues(reason).Inc()
	est := score.Score(sub.Answers)
	if c.obs != nil {
		c.obs.RecordEstimate(ctx, string(score.SourceFallback))
	}
	return est
}

func (c *Client) callWebhook(ctx context.Context, sub Submission) (*score.Estimate, error) {
	payload, err := json.Marshal(sub)
	if err != nil {
		return nil, errors.NewEstimateTransportFailedError(fmt.Errorf("failed to marshal submission: %w", err))
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, errors.NewEstimateTransportFailedError(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if reqCtx.Err() == context.DeadlineExceeded {
			return nil, errors.NewEstimateTimeoutError(c.timeout)
		}
		return nil, errors.NewEstimateTransportFailedError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if reqCtx.Err() == context.DeadlineExceeded {
			return nil, errors.NewEstimateTimeoutError(c.timeout)
		}
		return nil, errors.NewEstimateTransportFailedError(fmt.Errorf("failed to read response body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.NewEstimateTransportFailedError(
			fmt.Errorf("webhook responded with %d: %s", resp.StatusCode, truncate(string(body), 200)))
	}

	return c.decodeResponse(body)
}

// decodeResponse unwraps the optional [{message:{content}}] proxy envelope,
// validates the payload against the estimate contract, and decodes it.
func (c *Client) decodeResponse(body []byte) (*score.Estimate, error) {
	payload := bytes.TrimSpace(body)

	if c.responseFormat == "auto" && len(payload) > 0 && payload[0] == '[' {
		unwrapped, err := unwrapProxyEnvelope(payload)
		if err != nil {
			return nil, errors.NewEstimateResponseInvalidError(err.Error())
		}
		payload = unwrapped
	}

	if err := validateEstimatePayload(payload); err != nil {
		return nil, err
	}

	var est score.Estimate
	if err := json.Unmarshal(payload, &est); err != nil {
		return nil, errors.NewEstimateResponseInvalidError(err.Error())
	}
	if est.SettlementRange.Currency == "" {
		est.SettlementRange.Currency = "USD"
	}
	return &est, nil
}

// unwrapProxyEnvelope extracts the estimate object from the completion-proxy
// shape [{message:{content: <JSON string or object>}}].
func unwrapProxyEnvelope(payload []byte) ([]byte, error) {
	var envelope []struct {
		Message struct {
			Content json.RawMessage `json:"content"`
		} `json:"message"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, fmt.Errorf("unexpected array response: %w", err)
	}
	if len(envelope) == 0 || len(envelope[0].Message.Content) == 0 {
		return nil, fmt.Errorf("proxy envelope carries no content")
	}

	content := bytes.TrimSpace(envelope[0].Message.Content)
	if len(content) > 0 && content[0] == '"' {
		var inner string
		if err := json.Unmarshal(content, &inner); err != nil {
			return nil, fmt.Errorf("proxy content is not a JSON string: %w", err)
		}
		return []byte(inner), nil
	}
	return content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
