package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"coinvault/internal/models"
	"coinvault/internal/vault"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// TestEncryptionKey is the codec secret shared by fixtures and the tests
// that decrypt what they created.
const TestEncryptionKey = "testutil-encryption-key"

// NewTestCodec returns a codec keyed with TestEncryptionKey.
func NewTestCodec(t *testing.T) *vault.Codec {
	t.Helper()

	codec, err := vault.NewCodec(TestEncryptionKey)
	if err != nil {
		t.Fatalf("failed to create test codec: %v", err)
	}
	return codec
}

// CreateTestUser creates a user with a hashed password, a unique email
// and an empty portfolio snapshot.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	portfolio := &models.Portfolio{UserID: user.ID, Assets: models.AssetList{}}
	if err := db.Create(portfolio).Error; err != nil {
		t.Fatalf("failed to create test portfolio: %v", err)
	}
	return user
}

// CreateTestCredential stores an encrypted credential for the given
// exchange, encrypted with TestEncryptionKey.
func CreateTestCredential(t *testing.T, db *gorm.DB, userID, exchangeID string) *models.ExchangeCredential {
	t.Helper()

	codec := NewTestCodec(t)
	n := nextID()
	encKey, err := codec.Encrypt(fmt.Sprintf("api-key-%d", n))
	if err != nil {
		t.Fatalf("failed to encrypt fixture api key: %v", err)
	}
	encSecret, err := codec.Encrypt(fmt.Sprintf("api-secret-%d", n))
	if err != nil {
		t.Fatalf("failed to encrypt fixture api secret: %v", err)
	}

	cred := &models.ExchangeCredential{
		UserID:             userID,
		Exchange:           exchangeID,
		EncryptedAPIKey:    encKey,
		EncryptedAPISecret: encSecret,
	}
	if err := db.Create(cred).Error; err != nil {
		t.Fatalf("failed to create test credential: %v", err)
	}
	return cred
}

// CreateTestStrategy creates a strategy with the given tolerance.
func CreateTestStrategy(t *testing.T, db *gorm.DB, userID string, tolerance models.RiskTolerance) *models.Strategy {
	t.Helper()

	strategy := &models.Strategy{
		UserID:           userID,
		RiskTolerance:    tolerance,
		TargetAllocation: models.Allocation{},
		IsActive:         true,
	}
	if err := db.Create(strategy).Error; err != nil {
		t.Fatalf("failed to create test strategy: %v", err)
	}
	return strategy
}
