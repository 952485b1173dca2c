package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// RiskTolerance represents how aggressive a strategy's allocation may be.
type RiskTolerance string

const (
	RiskToleranceLow    RiskTolerance = "LOW"
	RiskToleranceMedium RiskTolerance = "MEDIUM"
	RiskToleranceHigh   RiskTolerance = "HIGH"
)

// Valid reports whether t is one of the known tolerance levels.
func (t RiskTolerance) Valid() bool {
	switch t {
	case RiskToleranceLow, RiskToleranceMedium, RiskToleranceHigh:
		return true
	}
	return false
}

// Allocation maps asset symbols to target portfolio fractions.
type Allocation map[string]float64

// Value implements driver.Valuer.
func (a Allocation) Value() (driver.Value, error) {
	if a == nil {
		a = Allocation{}
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner.
func (a *Allocation) Scan(value interface{}) error {
	if value == nil {
		*a = Allocation{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	default:
		return fmt.Errorf("cannot scan %T into Allocation", value)
	}
}

// Strategy holds a user's rebalancing preferences. It is configuration
// only; nothing in this service executes trades against it.
type Strategy struct {
	Base
	UserID           string        `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	RiskTolerance    RiskTolerance `gorm:"default:'MEDIUM'" json:"risk_tolerance"`
	TargetAllocation Allocation    `gorm:"type:json" json:"target_allocation"`
	IsActive         bool          `gorm:"default:true" json:"is_active"`
}
