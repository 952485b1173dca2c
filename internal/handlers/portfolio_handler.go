package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coinvault/internal/services"
)

// PortfolioHandler handles portfolio snapshot and sync requests
type PortfolioHandler struct {
	portfolioService services.PortfolioServicer
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService services.PortfolioServicer) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService}
}

// Sync reconciles balances from every connected exchange
// @Summary     Sync portfolio
// @Description Fetch balances from every connected exchange, price them and overwrite the snapshot
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Sync result"
// @Failure     400 {object} ErrorResponse "No exchange connected"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /portfolio/sync [post]
func (h *PortfolioHandler) Sync(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	result, err := h.portfolioService.Sync(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Portfolio synced",
		"total_value_usd": result.TotalValueUSD,
		"assets":          result.Assets,
		"synced_at":       result.SyncedAt,
	})
}

// Get returns the stored snapshot without touching any exchange
// @Summary     Get portfolio
// @Description Return the stored portfolio snapshot
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.Portfolio "Snapshot"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Portfolio not found"
// @Router      /portfolio [get]
func (h *PortfolioHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	portfolio, err := h.portfolioService.GetSnapshot(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, portfolio)
}
