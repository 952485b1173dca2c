package services

import (
	"context"
	"time"

	"coinvault/internal/models"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, fullName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// CredentialServicer defines the contract for storing exchange API keys.
// Secrets are PEM-normalized and encrypted before they reach the database.
type CredentialServicer interface {
	AddCredential(userID, exchangeID, apiKey, apiSecret string) (*models.ExchangeCredential, error)
	ListCredentials(userID string) ([]models.ExchangeCredential, error)
}

// SyncResult is the aggregate a completed sync hands back to the caller.
type SyncResult struct {
	TotalValueUSD float64          `json:"total_value_usd"`
	Assets        models.AssetList `json:"assets"`
	SyncedAt      time.Time        `json:"synced_at"`
}

// PortfolioServicer defines the contract for portfolio reconciliation.
type PortfolioServicer interface {
	// Sync reconciles the user's holdings across every stored exchange
	// credential and overwrites the portfolio snapshot. The only fatal
	// error is ErrNoExchangeConnected; per-exchange and per-asset failures
	// degrade the snapshot instead.
	Sync(ctx context.Context, userID string) (*SyncResult, error)
	GetSnapshot(userID string) (*models.Portfolio, error)
}

// StrategyServicer defines the contract for strategy preferences.
type StrategyServicer interface {
	GetStrategy(userID string) (*models.Strategy, error)
	UpdateStrategy(userID string, riskTolerance *models.RiskTolerance, allocation models.Allocation, isActive *bool) (*models.Strategy, error)
}
