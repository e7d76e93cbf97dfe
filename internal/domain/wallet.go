package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet holds a user's balance. At most one wallet per user.
// Balance changes only through transaction settlement, never directly.
type Wallet struct {
	WalletID  string          `json:"walletId"` // Primary identifier (uuid)
	UserID    string          `json:"userId"`   // Owning user
	Balance   decimal.Decimal `json:"balance"`  // Running total of settled transactions
	Currency  string          `json:"currency"` // ISO currency code
	IsActive  bool            `json:"isActive"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
