// Package report appends sync run reports to a local append-only run log
// for operational visibility.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"omfin/ledger-sync/internal/logging"
	"omfin/ledger-sync/internal/syncer"
)

// RunLog appends one JSON line per sync run to a log file.
type RunLog struct {
	path string
	mu   sync.Mutex
	log  logging.Logger
}

// NewRunLog creates a RunLog writing to the given file.
func NewRunLog(path string, logger logging.Logger) *RunLog {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &RunLog{path: path, log: logger}
}

// Append records one run report. The log is advisory: a write failure is
// surfaced but must not fail the sync that produced the report.
func (l *RunLog) Append(report syncer.RunReport) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(l.path), 0o750); err != nil {
		return fmt.Errorf("creating run log directory: %w", err)
	}

	line, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encoding run report: %w", err)
	}

	file, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("opening run log: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			l.log.WithError(err).Warn("Failed to close run log")
		}
	}()

	if _, err := file.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("appending run report: %w", err)
	}
	return nil
}
