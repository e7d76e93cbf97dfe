package domain

import "time"

// Billing is a payout method (bank account or UPI id). Exactly one billing
// method per user is the default once the user has at least one.
type Billing struct {
	BillingID         string    `json:"billingId"` // Primary identifier (uuid)
	UserID            string    `json:"userId"`    // Owning user
	BankAccountNumber string    `json:"bankAccountNumber,omitempty"`
	IFSCCode          string    `json:"ifscCode,omitempty"`
	BankName          string    `json:"bankName,omitempty"`
	UPIID             string    `json:"upiId,omitempty"`
	IsDefault         bool      `json:"isDefault"`
	IsVerified        bool      `json:"isVerified"` // Flipped by the verify operation
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}
