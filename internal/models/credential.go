package models

// ExchangeCredential stores one user's API key pair for one exchange.
// Both key fields hold ciphertext produced by the vault codec; plaintext
// never touches the database, and neither field is ever serialized.
//
// There is deliberately no uniqueness constraint on (user_id, exchange):
// duplicate connections to the same exchange are legal and every row is
// queried during a sync.
type ExchangeCredential struct {
	Base
	UserID             string `gorm:"type:uuid;not null;index" json:"user_id"`
	Exchange           string `gorm:"not null" json:"exchange"`
	EncryptedAPIKey    string `gorm:"column:api_key;type:text;not null" json:"-"`
	EncryptedAPISecret string `gorm:"column:api_secret;type:text;not null" json:"-"`
}

// TableName overrides the default pluralization.
func (ExchangeCredential) TableName() string { return "exchange_credentials" }
