package predictor

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// writeScript drops an executable shell script into dir so tests can stand
// in for the python subsystem without python installed.
func writeScript(t *testing.T, dir, name, body string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		t.Fatalf("writing script %s: %v", name, err)
	}
}

func newTestRunner(t *testing.T, collectorBody, modelBody string) *Runner {
	t.Helper()
	dir := t.TempDir()
	writeScript(t, dir, "data_collector.py", collectorBody)
	writeScript(t, dir, "ai_model.py", modelBody)
	return NewRunner("/bin/sh", dir, 10*time.Second)
}

func TestPredict(t *testing.T) {
	collector := "echo Fetching daily candles...\n"
	model := `echo "Loading model banner noise"
echo '{"symbol":"BTCUSDT","current_price":50000,"predicted_price_30d":52500.5,"trend_direction":"UP","predicted_trend":[50100,52500.5],"market_sheet":{"signal":"BUY","confidence_score":93.4,"rsi":38.2,"macd":-12.5,"ema_50":49000,"ema_200":45000,"volatility_index":2.1}}'
`
	r := newTestRunner(t, collector, model)

	p, err := r.Predict(context.Background(), "BTCUSDT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Symbol != "BTCUSDT" || p.CurrentPrice != 50000 {
		t.Errorf("prediction mismatch: %+v", p)
	}
	if p.PredictedPrice30D != 52500.5 || p.TrendDirection != "UP" {
		t.Errorf("prediction mismatch: %+v", p)
	}
	if len(p.PredictedTrend) != 2 {
		t.Errorf("expected 2 trend points, got %d", len(p.PredictedTrend))
	}
	if p.MarketSheet.Signal != "BUY" || p.MarketSheet.RSI != 38.2 {
		t.Errorf("market sheet mismatch: %+v", p.MarketSheet)
	}
}

func TestPredict_ModelError(t *testing.T) {
	r := newTestRunner(t, "exit 0\n", `echo '{"error":"Not enough data to train LSTM (need > 200 days)"}'`+"\n")

	_, err := r.Predict(context.Background(), "NEWUSDT")
	var modelErr *ModelError
	if !errors.As(err, &modelErr) {
		t.Fatalf("expected ModelError, got %v", err)
	}
	if modelErr.Reason != "Not enough data to train LSTM (need > 200 days)" {
		t.Errorf("unexpected reason: %q", modelErr.Reason)
	}
}

func TestPredict_UnparsableOutput(t *testing.T) {
	r := newTestRunner(t, "exit 0\n", "echo 'epoch 5/5 loss=0.002'\n")

	_, err := r.Predict(context.Background(), "BTCUSDT")
	if !errors.Is(err, ErrUnparsableOutput) {
		t.Fatalf("expected ErrUnparsableOutput, got %v", err)
	}
}

func TestPredict_CollectorFailure(t *testing.T) {
	r := newTestRunner(t, "echo 'rate limited' >&2; exit 1\n", "echo '{}'\n")

	_, err := r.Predict(context.Background(), "BTCUSDT")
	if err == nil {
		t.Fatal("expected error when the collector fails")
	}
}

func TestPredict_Timeout(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "data_collector.py", "sleep 5\n")
	writeScript(t, dir, "ai_model.py", "echo '{}'\n")
	r := NewRunner("/bin/sh", dir, 100*time.Millisecond)

	_, err := r.Predict(context.Background(), "BTCUSDT")
	if err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestParseFinalLine(t *testing.T) {
	t.Run("empty_output", func(t *testing.T) {
		if _, err := parseFinalLine("  \n \n"); !errors.Is(err, ErrUnparsableOutput) {
			t.Errorf("expected ErrUnparsableOutput, got %v", err)
		}
	})

	t.Run("only_last_line_counts", func(t *testing.T) {
		out := "{\"error\":\"stale error from earlier run\"}\n{\"symbol\":\"ETHUSDT\",\"current_price\":3000}\n"
		p, err := parseFinalLine(out)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.Symbol != "ETHUSDT" {
			t.Errorf("expected ETHUSDT from final line, got %q", p.Symbol)
		}
	})
}
