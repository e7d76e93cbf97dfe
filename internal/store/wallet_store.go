package store

import (
	"fmt"
	"sync"
	"time"

	"bountyboard/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is assigned to every new wallet.
const DefaultCurrency = "INR"

// WalletStore owns wallets and their transaction ledger. A single mutex
// guards both so settlement can update a balance and a transaction status
// in one critical section.
type WalletStore struct {
	mu      sync.RWMutex
	wallets map[string]*domain.Wallet
	byUser  map[string]string
	// ledger keeps each wallet's entries in insertion order; txOrder keeps
	// the global insertion order for the operator listing.
	ledger  map[string][]*domain.Transaction
	txOrder []string
	txByID  map[string]*domain.Transaction
}

// RecordTransactionParams carries a new ledger entry.
type RecordTransactionParams struct {
	WalletID    string
	Type        string // domain.TxCredit or domain.TxDebit
	Amount      decimal.Decimal
	Source      string
	Description string
}

func NewWalletStore() *WalletStore {
	return &WalletStore{
		wallets: make(map[string]*domain.Wallet),
		byUser:  make(map[string]string),
		ledger:  make(map[string][]*domain.Transaction),
		txByID:  make(map[string]*domain.Transaction),
	}
}

// CreateWallet creates the single wallet for a user with a zero balance.
// Fails with ErrDuplicate when the user already has one. The existence
// check and the insert share the write lock, so two concurrent calls for
// the same user cannot both succeed.
func (s *WalletStore) CreateWallet(userID string) (domain.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byUser[userID]; exists {
		return domain.Wallet{}, fmt.Errorf("wallet for user %s: %w", userID, ErrDuplicate)
	}
	now := time.Now()
	w := &domain.Wallet{
		WalletID:  uuid.NewString(),
		UserID:    userID,
		Balance:   decimal.Zero,
		Currency:  DefaultCurrency,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.wallets[w.WalletID] = w
	s.byUser[userID] = w.WalletID
	return *w, nil
}

// GetWallet returns the user's wallet. It never creates one; lazy creation
// is the profile handler's policy.
func (s *WalletStore) GetWallet(userID string) (domain.Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byUser[userID]
	if !ok {
		return domain.Wallet{}, fmt.Errorf("wallet for user %s: %w", userID, ErrNotFound)
	}
	return *s.wallets[id], nil
}

// GetWalletByID resolves a wallet by its own id.
func (s *WalletStore) GetWalletByID(walletID string) (domain.Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.wallets[walletID]
	if !ok {
		return domain.Wallet{}, fmt.Errorf("wallet %s: %w", walletID, ErrNotFound)
	}
	return *w, nil
}

// RecordTransaction appends a Pending ledger entry. The wallet balance is
// untouched until the entry settles through CompleteTransaction. Nothing is
// appended when validation or the wallet lookup fails.
func (s *WalletStore) RecordTransaction(p RecordTransactionParams) (domain.Transaction, error) {
	if p.Type != domain.TxCredit && p.Type != domain.TxDebit {
		return domain.Transaction{}, fmt.Errorf("transaction type %q: %w", p.Type, ErrValidation)
	}
	if p.Amount.IsNegative() {
		return domain.Transaction{}, fmt.Errorf("negative amount: %w", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.wallets[p.WalletID]; !ok {
		return domain.Transaction{}, fmt.Errorf("wallet %s: %w", p.WalletID, ErrNotFound)
	}
	now := time.Now()
	t := &domain.Transaction{
		TransactionID:   uuid.NewString(),
		WalletID:        p.WalletID,
		Type:            p.Type,
		Amount:          p.Amount,
		Source:          p.Source,
		Description:     p.Description,
		Status:          domain.TxPending,
		TransactionTime: now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	s.ledger[p.WalletID] = append(s.ledger[p.WalletID], t)
	s.txOrder = append(s.txOrder, t.TransactionID)
	s.txByID[t.TransactionID] = t
	return *t, nil
}

// ListTransactions returns the wallet's ledger in insertion order.
func (s *WalletStore) ListTransactions(walletID string) []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.ledger[walletID]
	out := make([]domain.Transaction, 0, len(entries))
	for _, t := range entries {
		out = append(out, *t)
	}
	return out
}

// ListAllTransactions returns every ledger entry across wallets in
// insertion order. Used by the operator endpoints.
func (s *WalletStore) ListAllTransactions() []domain.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Transaction, 0, len(s.txOrder))
	for _, id := range s.txOrder {
		out = append(out, *s.txByID[id])
	}
	return out
}

// CompleteTransaction settles a Pending entry and applies its amount to the
// wallet balance in the same critical section: Credit adds, Debit subtracts.
// Completed and Failed are terminal; settling twice fails with ErrValidation
// and the balance is applied exactly once.
func (s *WalletStore) CompleteTransaction(txID string) (domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.txByID[txID]
	if !ok {
		return domain.Transaction{}, fmt.Errorf("transaction %s: %w", txID, ErrNotFound)
	}
	if t.Status != domain.TxPending {
		return domain.Transaction{}, fmt.Errorf("transaction %s is %s: %w", txID, t.Status, ErrValidation)
	}
	w := s.wallets[t.WalletID]
	if t.Type == domain.TxCredit {
		w.Balance = w.Balance.Add(t.Amount)
	} else {
		w.Balance = w.Balance.Sub(t.Amount)
	}
	now := time.Now()
	w.UpdatedAt = now
	t.Status = domain.TxCompleted
	t.UpdatedAt = now
	return *t, nil
}

// FailTransaction marks a Pending entry as Failed. The balance is untouched.
func (s *WalletStore) FailTransaction(txID string) (domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.txByID[txID]
	if !ok {
		return domain.Transaction{}, fmt.Errorf("transaction %s: %w", txID, ErrNotFound)
	}
	if t.Status != domain.TxPending {
		return domain.Transaction{}, fmt.Errorf("transaction %s is %s: %w", txID, t.Status, ErrValidation)
	}
	t.Status = domain.TxFailed
	t.UpdatedAt = time.Now()
	return *t, nil
}
