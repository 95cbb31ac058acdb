package estimate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"settlement-quiz/internal/common/config"
	"settlement-quiz/internal/common/errors"
	"settlement-quiz/internal/common/logger"
	"settlement-quiz/internal/quiz/answers"
	"settlement-quiz/internal/quiz/catalog"
	"settlement-quiz/internal/quiz/score"
)

const validEstimateBody = `{
	"caseTier": "B",
	"settlementRange": {"low": 20000, "high": 90000, "currency": "USD"},
	"confidence": {"label": "Medium", "score": 0.5},
	"clientSummary": "A summary.",
	"reasons": ["timing"],
	"nextSteps": ["talk to a lawyer"]
}`

func testSubmission() Submission {
	return NewSubmission("session-1", answers.Set{
		catalog.QuestionAnnualCompensation: answers.String("$150k+"),
		catalog.QuestionTimingOfChange:     answers.String("Within 30 days"),
	}, Meta{UserAgent: "test-agent", Path: "/quiz"})
}

func newTestClient(url string, timeoutMs int) *Client {
	return NewClient(config.WebhookConfig{
		URL:            url,
		Timeout:        timeoutMs,
		ResponseFormat: "auto",
	}, logger.NewNoOpLogger(), nil)
}

func TestSubmitDecodesPlainResponse(t *testing.T) {
	var received Submission
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(validEstimateBody))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, 2000)
	est, err := client.Submit(context.Background(), testSubmission())
	require.NoError(t, err)

	assert.Equal(t, "session-1", received.SessionID)
	assert.Equal(t, "v1", received.Meta.Version)

	assert.Equal(t, "B", est.CaseTier)
	assert.Equal(t, 20000, est.SettlementRange.Low)
	assert.Equal(t, 90000, est.SettlementRange.High)
	assert.Equal(t, score.SourceRemote, est.Source)
}

func TestSubmitUnwrapsProxyEnvelope(t *testing.T) {
	t.Run("content as JSON string", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			envelope := []map[string]interface{}{
				{"message": map[string]interface{}{"content": validEstimateBody}},
			}
			json.NewEncoder(w).Encode(envelope)
		}))
		defer srv.Close()

		est, err := newTestClient(srv.URL, 2000).Submit(context.Background(), testSubmission())
		require.NoError(t, err)
		assert.Equal(t, "B", est.CaseTier)
		assert.Equal(t, score.SourceRemote, est.Source)
	})

	t.Run("content as object", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"message":{"content":` + validEstimateBody + `}}]`))
		}))
		defer srv.Close()

		est, err := newTestClient(srv.URL, 2000).Submit(context.Background(), testSubmission())
		require.NoError(t, err)
		assert.Equal(t, "B", est.CaseTier)
	})

	t.Run("empty envelope is invalid", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL, 2000).Submit(context.Background(), testSubmission())
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeEstimateResponseInvalid, errors.CodeOf(err))
	})
}

func TestSubmitPlainFormatSkipsUnwrap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"message":{"content":"{}"}}]`))
	}))
	defer srv.Close()

	client := NewClient(config.WebhookConfig{
		URL:            srv.URL,
		Timeout:        2000,
		ResponseFormat: "plain",
	}, logger.NewNoOpLogger(), nil)

	// In plain mode the array body fails contract validation instead of being
	// unwrapped.
	_, err := client.Submit(context.Background(), testSubmission())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeEstimateResponseInvalid, errors.CodeOf(err))
}

func TestSubmitNoURLUsesLocalScorer(t *testing.T) {
	client := newTestClient("", 2000)

	est, err := client.Submit(context.Background(), testSubmission())
	require.NoError(t, err)
	require.NotNil(t, est)
	assert.Equal(t, score.SourceFallback, est.Source)
	// 40000 * 1.3 with no employer size multiplier.
	assert.Equal(t, 52000, est.SettlementRange.Low)
}

func TestSubmitTimeoutFallsBackSilently(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	client := newTestClient(srv.URL, 50)

	start := time.Now()
	est, err := client.Submit(context.Background(), testSubmission())
	require.NoError(t, err)
	require.NotNil(t, est)
	assert.Equal(t, score.SourceFallback, est.Source)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestSubmitServerErrorIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 2000).Submit(context.Background(), testSubmission())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeEstimateTransportFailed, errors.CodeOf(err))
	assert.True(t, errors.IsRetryable(err))
}

func TestSubmitContractViolationIsInvalidResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing caseTier", `{"settlementRange":{"low":1,"high":2},"confidence":{"label":"Low","score":0.3},"clientSummary":"s"}`},
		{"negative range", `{"caseTier":"C","settlementRange":{"low":-5,"high":2},"confidence":{"label":"Low","score":0.3},"clientSummary":"s"}`},
		{"score out of bounds", `{"caseTier":"C","settlementRange":{"low":1,"high":2},"confidence":{"label":"Low","score":1.5},"clientSummary":"s"}`},
		{"not json", `<html>oops</html>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL, 2000).Submit(context.Background(), testSubmission())
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeEstimateResponseInvalid, errors.CodeOf(err))
			assert.True(t, errors.IsRetryable(err))
		})
	}
}

func TestSubmitDefaultsCurrency(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"caseTier": "A",
			"settlementRange": {"low": 10000, "high": 20000},
			"confidence": {"label": "High", "score": 0.8},
			"clientSummary": "s"
		}`))
	}))
	defer srv.Close()

	est, err := newTestClient(srv.URL, 2000).Submit(context.Background(), testSubmission())
	require.NoError(t, err)
	assert.Equal(t, "USD", est.SettlementRange.Currency)
}
