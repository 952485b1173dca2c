package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "coinvault/internal/errors"
	"coinvault/internal/models"
	"coinvault/internal/services"
)

// StrategyHandler handles strategy preference requests
type StrategyHandler struct {
	strategyService services.StrategyServicer
}

// NewStrategyHandler creates a new StrategyHandler
func NewStrategyHandler(strategyService services.StrategyServicer) *StrategyHandler {
	return &StrategyHandler{strategyService: strategyService}
}

// UpdateStrategyRequest carries the fields to change; omitted fields keep
// their stored values.
type UpdateStrategyRequest struct {
	RiskTolerance *models.RiskTolerance `json:"risk_tolerance" binding:"omitempty,risk_tolerance"`
	Allocation    models.Allocation     `json:"target_allocation" binding:"omitempty,dive,keys,asset_symbol,endkeys,gte=0"`
	IsActive      *bool                 `json:"is_active"`
}

// Get returns the user's strategy, creating the default on first access
// @Summary     Get strategy
// @Description Get the user's investment strategy preferences
// @Tags        strategy
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.Strategy "Strategy"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /strategy [get]
func (h *StrategyHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	strategy, err := h.strategyService.GetStrategy(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, strategy)
}

// Update changes the user's strategy preferences
// @Summary     Update strategy
// @Description Update risk tolerance, target allocation or active flag
// @Tags        strategy
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body UpdateStrategyRequest true "Fields to update"
// @Success     200 {object} models.Strategy "Updated strategy"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /strategy [put]
func (h *StrategyHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateStrategyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	strategy, err := h.strategyService.UpdateStrategy(userID, req.RiskTolerance, req.Allocation, req.IsActive)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, strategy)
}
