package syncer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"omfin/ledger-sync/internal/logging"
)

// CompletionSignal is the outbound event emitted after a successful
// non-empty sync. The downstream insight-regeneration workflow consumes it
// with its own retry and concurrency policy; this pipeline only guarantees
// at-most-once emission per run and never waits on the consumer.
type CompletionSignal struct {
	UserIDs          []string `json:"userIds"`
	TransactionCount int      `json:"transactionCount"`
}

// SignalEmitter delivers completion signals to the downstream consumer.
type SignalEmitter interface {
	Emit(ctx context.Context, signal CompletionSignal) error
}

// HTTPEmitter posts the signal as JSON to a webhook URL with a bounded
// timeout.
type HTTPEmitter struct {
	url    string
	client *http.Client
	log    logging.Logger
}

// NewHTTPEmitter creates an HTTPEmitter for the given webhook URL.
func NewHTTPEmitter(url string, timeout time.Duration, logger logging.Logger) *HTTPEmitter {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &HTTPEmitter{
		url:    url,
		client: &http.Client{Timeout: timeout},
		log:    logger,
	}
}

// Emit posts the signal. Failures are the caller's to log; the sync run
// itself never fails on a lost signal.
func (e *HTTPEmitter) Emit(ctx context.Context, signal CompletionSignal) error {
	body, err := json.Marshal(signal)
	if err != nil {
		return fmt.Errorf("encoding completion signal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building signal request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting completion signal: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			e.log.WithError(err).Warn("Failed to close signal response body")
		}
	}()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("completion signal rejected with status %s", resp.Status)
	}

	e.log.WithFields(
		logging.F("users", len(signal.UserIDs)),
		logging.F("transactions", signal.TransactionCount),
	).Debug("Completion signal emitted")
	return nil
}

// NopEmitter discards signals. Used when no downstream consumer is
// configured.
type NopEmitter struct{}

// Emit does nothing.
func (NopEmitter) Emit(context.Context, CompletionSignal) error { return nil }
