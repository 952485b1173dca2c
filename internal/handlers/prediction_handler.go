package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "coinvault/internal/errors"
	"coinvault/internal/predictor"
)

// Predictor produces a market prediction for a trading pair.
type Predictor interface {
	Predict(ctx context.Context, pair string) (*predictor.Prediction, error)
}

// PredictionHandler handles price prediction requests
type PredictionHandler struct {
	predictor Predictor
}

// NewPredictionHandler creates a new PredictionHandler
func NewPredictionHandler(p Predictor) *PredictionHandler {
	return &PredictionHandler{predictor: p}
}

// Predict runs the prediction pipeline for a symbol
// @Summary     Predict price movement
// @Description Run the prediction model for a symbol against USDT
// @Tags        prediction
// @Produce     json
// @Security    BearerAuth
// @Param       symbol path string true "Asset symbol, e.g. BTC"
// @Success     200 {object} predictor.Prediction "Prediction"
// @Failure     400 {object} ErrorResponse "Invalid symbol"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Prediction failed"
// @Router      /predict/{symbol} [get]
func (h *PredictionHandler) Predict(c *gin.Context) {
	if _, err := getUserID(c); err != nil {
		respondWithError(c, err)
		return
	}

	symbol := strings.ToUpper(strings.TrimSpace(c.Param("symbol")))
	if symbol == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "symbol is required"))
		return
	}

	prediction, err := h.predictor.Predict(c.Request.Context(), symbol+"USDT")
	if err != nil {
		var modelErr *predictor.ModelError
		if errors.As(err, &modelErr) {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrPredictionFailed, modelErr.Reason))
			return
		}
		respondWithError(c, apperrors.Wrap(apperrors.ErrPredictionFailed, err))
		return
	}

	c.JSON(http.StatusOK, prediction)
}
