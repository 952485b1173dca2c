package handlers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"coinvault/internal/predictor"
)

func setupPredictionRouter(handler *PredictionHandler) *gin.Engine {
	r := gin.New()
	r.GET("/predict/:symbol", injectUserID("user-1"), handler.Predict)
	return r
}

func TestPredictionHandler_Predict(t *testing.T) {
	t.Run("uppercases symbol and appends quote currency", func(t *testing.T) {
		var gotPair string
		handler := NewPredictionHandler(&mockPredictor{
			predictFn: func(_ context.Context, pair string) (*predictor.Prediction, error) {
				gotPair = pair
				return &predictor.Prediction{
					Symbol:            pair,
					CurrentPrice:      50000,
					PredictedPrice30D: 52000,
					TrendDirection:    "bullish",
				}, nil
			},
		})
		r := setupPredictionRouter(handler)

		rec := doRequest(r, "GET", "/predict/btc", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if gotPair != "BTCUSDT" {
			t.Errorf("expected pair BTCUSDT, got %s", gotPair)
		}
		result := parseJSON(t, rec)
		if result["trend_direction"] != "bullish" {
			t.Errorf("unexpected prediction body: %v", result)
		}
	})

	t.Run("maps model error to 500 with reason", func(t *testing.T) {
		handler := NewPredictionHandler(&mockPredictor{
			predictFn: func(context.Context, string) (*predictor.Prediction, error) {
				return nil, &predictor.ModelError{Reason: "insufficient history"}
			},
		})
		r := setupPredictionRouter(handler)

		rec := doRequest(r, "GET", "/predict/BTC", "")

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		assertErrorCode(t, result, "PREDICTION_FAILED")
		errObj := result["error"].(map[string]interface{})
		if errObj["message"] != "insufficient history" {
			t.Errorf("expected model reason in message, got %v", errObj["message"])
		}
	})

	t.Run("maps process failure to 500", func(t *testing.T) {
		handler := NewPredictionHandler(&mockPredictor{
			predictFn: func(context.Context, string) (*predictor.Prediction, error) {
				return nil, errors.New("python3 not found")
			},
		})
		r := setupPredictionRouter(handler)

		rec := doRequest(r, "GET", "/predict/ETH", "")

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "PREDICTION_FAILED")
	})
}
