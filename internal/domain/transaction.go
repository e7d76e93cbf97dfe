package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types.
const (
	TxCredit = "Credit"
	TxDebit  = "Debit"
)

// Transaction statuses. Pending may move to Completed or Failed;
// both are terminal.
const (
	TxPending   = "Pending"
	TxCompleted = "Completed"
	TxFailed    = "Failed"
)

// Transaction is an append-only ledger entry against a wallet.
type Transaction struct {
	TransactionID   string          `json:"transactionId"` // Primary identifier (uuid)
	WalletID        string          `json:"walletId"`      // Wallet the entry belongs to
	Type            string          `json:"type"`          // Credit or Debit
	Amount          decimal.Decimal `json:"amount"`        // Non-negative amount
	Source          string          `json:"source"`        // Origin of the movement (bonus, task, payout...)
	Description     string          `json:"description,omitempty"`
	Status          string          `json:"status"`          // Pending, Completed or Failed
	TransactionTime time.Time       `json:"transactionTime"` // Effective time of the movement
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}
