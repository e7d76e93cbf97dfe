package store

import (
	"time"

	"bountyboard/internal/domain"

	"github.com/google/uuid"
)

// BillingStore keeps the per-user payout methods with the single-default
// invariant, plus the verification flag.
type BillingStore struct {
	set *DefaultSet[domain.Billing]
}

// CreateBillingParams carries a new payout method. All detail fields are
// optional; a method may be a bank account, a UPI id, or both.
type CreateBillingParams struct {
	UserID            string
	BankAccountNumber string
	IFSCCode          string
	BankName          string
	UPIID             string
}

func NewBillingStore() *BillingStore {
	return &BillingStore{
		set: NewDefaultSet(
			func(b *domain.Billing) string { return b.BillingID },
			func(b *domain.Billing) string { return b.UserID },
			func(b *domain.Billing, def bool, now time.Time) {
				b.IsDefault = def
				b.UpdatedAt = now
			},
		),
	}
}

// Create appends a billing method; the user's first one becomes the default.
// New methods start unverified.
func (s *BillingStore) Create(p CreateBillingParams) domain.Billing {
	now := time.Now()
	return s.set.Create(&domain.Billing{
		BillingID:         uuid.NewString(),
		UserID:            p.UserID,
		BankAccountNumber: p.BankAccountNumber,
		IFSCCode:          p.IFSCCode,
		BankName:          p.BankName,
		UPIID:             p.UPIID,
		CreatedAt:         now,
		UpdatedAt:         now,
	})
}

// SetDefault makes billingID the user's unique default payout method.
func (s *BillingStore) SetDefault(userID, billingID string) error {
	return s.set.SetDefault(userID, billingID)
}

// Verify marks the user's billing method as verified. Another user's
// billing id fails with ErrNotFound.
func (s *BillingStore) Verify(userID, billingID string) (domain.Billing, error) {
	err := s.set.update(userID, billingID, func(b *domain.Billing) {
		b.IsVerified = true
		b.UpdatedAt = time.Now()
	})
	if err != nil {
		return domain.Billing{}, err
	}
	return s.set.Get(billingID)
}

// ListByUser returns the user's billing methods in insertion order.
func (s *BillingStore) ListByUser(userID string) []domain.Billing {
	return s.set.List(userID)
}
