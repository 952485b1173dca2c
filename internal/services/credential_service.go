package services

import (
	"strings"

	"gorm.io/gorm"

	apperrors "coinvault/internal/errors"
	"coinvault/internal/logger"
	"coinvault/internal/models"
	"coinvault/internal/vault"
)

// credentialService stores exchange API credentials at rest.
type credentialService struct {
	db    *gorm.DB
	codec *vault.Codec
}

// NewCredentialService creates a new CredentialServicer.
func NewCredentialService(db *gorm.DB, codec *vault.Codec) CredentialServicer {
	return &credentialService{db: db, codec: codec}
}

// AddCredential normalizes, encrypts and persists a connection to an
// exchange. Duplicate connections for the same exchange are legal: the
// sync pass queries every stored credential.
func (s *credentialService) AddCredential(userID, exchangeID, apiKey, apiSecret string) (*models.ExchangeCredential, error) {
	if exchangeID == "" || apiKey == "" || apiSecret == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "exchange, apiKey and apiSecret are required")
	}

	// Coinbase secrets arrive as PEM-encoded EC keys, often with escaped
	// newlines from JSON transport. Normalization is a no-op for plain
	// HMAC secrets.
	sanitized := vault.NormalizePrivateKey(apiSecret)

	logger.Get().Infow("storing exchange credential",
		"user_id", userID,
		"exchange", strings.ToLower(exchangeID),
		"pem_detected", vault.IsPEM(sanitized),
	)

	encKey, err := s.codec.Encrypt(apiKey)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	encSecret, err := s.codec.Encrypt(sanitized)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	cred := &models.ExchangeCredential{
		UserID:             userID,
		Exchange:           strings.ToLower(exchangeID),
		EncryptedAPIKey:    encKey,
		EncryptedAPISecret: encSecret,
	}
	if err := s.db.Create(cred).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return cred, nil
}

// ListCredentials returns every stored credential for a user, in the
// order they were connected.
func (s *credentialService) ListCredentials(userID string) ([]models.ExchangeCredential, error) {
	var creds []models.ExchangeCredential
	if err := s.db.Where("user_id = ?", userID).Order("created_at ASC, id ASC").Find(&creds).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return creds, nil
}
