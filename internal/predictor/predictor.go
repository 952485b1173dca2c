// Package predictor invokes the external price-prediction subsystem: a
// separate process that, given a trading-pair symbol, refreshes market data
// and emits exactly one JSON value on the final line of its stdout.
package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"coinvault/internal/logger"
)

// ErrUnparsableOutput is returned when the prediction process exits
// successfully but its final output line is not valid JSON.
var ErrUnparsableOutput = errors.New("predictor: could not parse process output")

// ModelError is a structured failure reported by the prediction process
// itself (an {"error": ...} payload), as opposed to a process-level failure.
type ModelError struct {
	Reason string
}

// Error implements the error interface.
func (e *ModelError) Error() string {
	return fmt.Sprintf("predictor: model error: %s", e.Reason)
}

// MarketSheet carries the technical indicators behind a prediction.
type MarketSheet struct {
	Signal          string  `json:"signal"`
	ConfidenceScore float64 `json:"confidence_score"`
	VolatilityIndex float64 `json:"volatility_index"`
	RSI             float64 `json:"rsi"`
	MACD            float64 `json:"macd"`
	EMA50           float64 `json:"ema_50"`
	EMA200          float64 `json:"ema_200"`
}

// Prediction is the structured result of one prediction run.
type Prediction struct {
	Symbol            string      `json:"symbol"`
	CurrentPrice      float64     `json:"current_price"`
	PredictedPrice30D float64     `json:"predicted_price_30d"`
	TrendDirection    string      `json:"trend_direction"`
	PredictedTrend    []float64   `json:"predicted_trend"`
	MarketSheet       MarketSheet `json:"market_sheet"`
}

// Runner executes the prediction scripts. The interpreter and script
// directory come from configuration; each run is bounded by a timeout.
type Runner struct {
	bin     string
	dir     string
	timeout time.Duration
}

// NewRunner creates a Runner.
func NewRunner(bin, dir string, timeout time.Duration) *Runner {
	return &Runner{bin: bin, dir: dir, timeout: timeout}
}

// Predict refreshes market data for the pair and runs the model, returning
// the parsed prediction. Pair is e.g. "BTCUSDT".
func (r *Runner) Predict(ctx context.Context, pair string) (*Prediction, error) {
	if _, err := r.runScript(ctx, "data_collector.py", pair); err != nil {
		return nil, fmt.Errorf("predictor: collecting market data for %s: %w", pair, err)
	}

	stdout, err := r.runScript(ctx, "ai_model.py", pair)
	if err != nil {
		return nil, fmt.Errorf("predictor: running model for %s: %w", pair, err)
	}

	return parseFinalLine(stdout)
}

// runScript executes one script and returns its stdout. Stderr is logged
// but not part of the contract.
func (r *Runner) runScript(ctx context.Context, script string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.bin, append([]string{script}, args...)...)
	cmd.Dir = r.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if stderr.Len() > 0 {
			logger.Get().Warnw("prediction script failed", "script", script, "stderr", stderr.String())
		}
		return "", fmt.Errorf("running %s: %w", script, err)
	}
	return stdout.String(), nil
}

// parseFinalLine extracts the single JSON value from the last non-empty
// stdout line. Everything above it (library banners, progress output) is
// ignored by contract.
func parseFinalLine(stdout string) (*Prediction, error) {
	trimmed := strings.TrimSpace(stdout)
	if trimmed == "" {
		return nil, ErrUnparsableOutput
	}
	lines := strings.Split(trimmed, "\n")
	last := strings.TrimSpace(lines[len(lines)-1])

	var probe struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(last), &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparsableOutput, err)
	}
	if probe.Error != "" {
		return nil, &ModelError{Reason: probe.Error}
	}

	var prediction Prediction
	if err := json.Unmarshal([]byte(last), &prediction); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnparsableOutput, err)
	}
	return &prediction, nil
}
