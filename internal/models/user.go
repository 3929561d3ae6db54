package models

import "time"

// User is a registered ledger participant. The API key is only held in
// plaintext on the value returned by registration; storage keeps its digest.
type User struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Email      string    `gorm:"uniqueIndex;not null" json:"email"`
	APIKeyHash string    `gorm:"uniqueIndex;not null" json:"-"`
	APIKey     string    `gorm:"-" json:"api_key,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
