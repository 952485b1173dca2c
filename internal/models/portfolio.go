package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// AssetHolding is one valued position from one exchange. Price and value
// are zero when the asset's price could not be resolved; the amount is
// still recorded so the holding is not silently lost.
type AssetHolding struct {
	Symbol   string  `json:"symbol"`
	Amount   float64 `json:"amount"`
	PriceUSD float64 `json:"price_usd"`
	ValueUSD float64 `json:"value_usd"`
	Exchange string  `json:"exchange"`
}

// AssetList is stored as a JSON column. Order is significant: exchanges in
// credential-load order, symbols in the order the exchange returned them.
type AssetList []AssetHolding

// Value implements driver.Valuer.
func (a AssetList) Value() (driver.Value, error) {
	if a == nil {
		a = AssetList{}
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner.
func (a *AssetList) Scan(value interface{}) error {
	if value == nil {
		*a = AssetList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return fmt.Errorf("cannot scan %T into AssetList", value)
	}
}

// Portfolio is a user's single valued snapshot, created empty at
// registration and wholesale-replaced by every successful sync.
type Portfolio struct {
	Base
	UserID        string    `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	TotalValueUSD float64   `gorm:"not null;default:0" json:"total_value_usd"`
	Assets        AssetList `gorm:"type:json" json:"assets"`
	LastSyncedAt  time.Time `json:"last_synced_at"`
}
