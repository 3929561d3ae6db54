package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet holds a bitcoin balance owned by exactly one user. ID only fixes
// creation order; Address is the public identifier.
type Wallet struct {
	ID        uint            `gorm:"primarykey" json:"-"`
	Address   string          `gorm:"uniqueIndex;type:varchar(36);not null" json:"address"`
	UserID    string          `gorm:"index;type:varchar(36);not null" json:"user_id"`
	Balance   decimal.Decimal `gorm:"type:decimal(24,8);not null;default:0" json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
