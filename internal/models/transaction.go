package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is an immutable record of a committed transfer. ID gives the
// ledger order.
type Transaction struct {
	ID          uint            `gorm:"primarykey" json:"-"`
	FromAddress string          `gorm:"index;type:varchar(36);not null" json:"from_address"`
	ToAddress   string          `gorm:"index;type:varchar(36);not null" json:"to_address"`
	Amount      decimal.Decimal `gorm:"type:decimal(24,8);not null" json:"transaction_amount"`
	Fee         decimal.Decimal `gorm:"type:decimal(24,8);not null;default:0" json:"transaction_fee"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Involves reports whether address is either endpoint of the transfer.
func (t *Transaction) Involves(address string) bool {
	return t.FromAddress == address || t.ToAddress == address
}
