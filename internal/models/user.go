package models

import "time"

// User represents the user model in the database
type User struct {
	Base
	Email       string               `gorm:"uniqueIndex;not null" json:"email"`
	Password    string               `gorm:"not null" json:"-"`
	FullName    string               `json:"full_name"`
	IsActive    bool                 `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time           `json:"last_login_at,omitempty"`
	Credentials []ExchangeCredential `gorm:"foreignKey:UserID" json:"-"`
	Portfolio   *Portfolio           `gorm:"foreignKey:UserID" json:"portfolio,omitempty"`
	Strategy    *Strategy            `gorm:"foreignKey:UserID" json:"strategy,omitempty"`
}
