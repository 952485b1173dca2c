package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "coinvault/internal/errors"
	"coinvault/internal/services"
)

// ExchangeHandler handles exchange connection requests
type ExchangeHandler struct {
	credentialService services.CredentialServicer
}

// NewExchangeHandler creates a new ExchangeHandler
func NewExchangeHandler(credentialService services.CredentialServicer) *ExchangeHandler {
	return &ExchangeHandler{credentialService: credentialService}
}

// AddExchangeKeysRequest represents an exchange connection payload. The
// apiSecret may be a plain HMAC secret or a PEM-encoded private key.
type AddExchangeKeysRequest struct {
	Exchange  string `json:"exchange" binding:"required,max=50"`
	APIKey    string `json:"apiKey" binding:"required"`
	APISecret string `json:"apiSecret" binding:"required"`
}

// AddKeys stores encrypted API credentials for an exchange
// @Summary     Connect an exchange
// @Description Store encrypted API credentials for an exchange account
// @Tags        exchange
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body AddExchangeKeysRequest true "Exchange credentials"
// @Success     200 {object} map[string]interface{} "Credential stored"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /exchange-keys [post]
func (h *ExchangeHandler) AddKeys(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AddExchangeKeysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	cred, err := h.credentialService.AddCredential(userID, req.Exchange, req.APIKey, req.APISecret)
	if err != nil {
		respondWithError(c, err)
		return
	}

	// The response never echoes key material, encrypted or not.
	c.JSON(http.StatusOK, gin.H{
		"message":  "Exchange connected",
		"id":       cred.ID,
		"exchange": cred.Exchange,
	})
}

// ListKeys returns the user's connected exchanges
// @Summary     List connected exchanges
// @Description List the user's exchange connections without key material
// @Tags        exchange
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string]interface{} "Connections"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /exchange-keys [get]
func (h *ExchangeHandler) ListKeys(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	creds, err := h.credentialService.ListCredentials(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	connections := make([]gin.H, 0, len(creds))
	for _, cred := range creds {
		connections = append(connections, gin.H{
			"id":           cred.ID,
			"exchange":     cred.Exchange,
			"connected_at": cred.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"connections": connections})
}
