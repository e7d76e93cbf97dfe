package store

import (
	"errors"
	"testing"

	"bountyboard/internal/domain"

	"github.com/shopspring/decimal"
)

func TestCreateWalletOncePerUser(t *testing.T) {
	s := NewWalletStore()

	w, err := s.CreateWallet("u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !w.Balance.IsZero() {
		t.Fatalf("new wallet balance = %s, want 0", w.Balance)
	}
	if w.Currency != DefaultCurrency {
		t.Fatalf("new wallet currency = %q, want %q", w.Currency, DefaultCurrency)
	}
	if !w.IsActive {
		t.Fatalf("new wallet should be active")
	}

	if _, err := s.CreateWallet("u1"); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("second CreateWallet error = %v, want ErrDuplicate", err)
	}
	if _, err := s.CreateWallet("u2"); err != nil {
		t.Fatalf("CreateWallet for another user: %v", err)
	}
}

func TestGetWalletDoesNotCreate(t *testing.T) {
	s := NewWalletStore()
	if _, err := s.GetWallet("u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetWallet error = %v, want ErrNotFound", err)
	}
	created, _ := s.CreateWallet("u1")
	got, err := s.GetWallet("u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.WalletID != created.WalletID {
		t.Fatalf("GetWallet returned %s, want %s", got.WalletID, created.WalletID)
	}
}

func TestRecordTransactionUnknownWalletAppendsNothing(t *testing.T) {
	s := NewWalletStore()
	_, err := s.RecordTransaction(RecordTransactionParams{
		WalletID: "missing",
		Type:     domain.TxCredit,
		Amount:   decimal.NewFromInt(10),
		Source:   "bonus",
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
	if got := len(s.ListTransactions("missing")); got != 0 {
		t.Fatalf("ledger length = %d, want 0", got)
	}
	if got := len(s.ListAllTransactions()); got != 0 {
		t.Fatalf("global ledger length = %d, want 0", got)
	}
}

func TestRecordTransactionValidation(t *testing.T) {
	s := NewWalletStore()
	w, _ := s.CreateWallet("u1")

	_, err := s.RecordTransaction(RecordTransactionParams{
		WalletID: w.WalletID,
		Type:     "Transfer",
		Amount:   decimal.NewFromInt(10),
		Source:   "bonus",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("unknown type error = %v, want ErrValidation", err)
	}

	_, err = s.RecordTransaction(RecordTransactionParams{
		WalletID: w.WalletID,
		Type:     domain.TxDebit,
		Amount:   decimal.NewFromInt(-5),
		Source:   "bonus",
	})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("negative amount error = %v, want ErrValidation", err)
	}
	if got := len(s.ListTransactions(w.WalletID)); got != 0 {
		t.Fatalf("ledger length = %d, want 0 after rejected entries", got)
	}
}

func TestRecordTransactionStaysPending(t *testing.T) {
	s := NewWalletStore()
	w, _ := s.CreateWallet("u1")

	tx, err := s.RecordTransaction(RecordTransactionParams{
		WalletID: w.WalletID,
		Type:     domain.TxCredit,
		Amount:   decimal.NewFromInt(100),
		Source:   "bonus",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tx.Status != domain.TxPending {
		t.Fatalf("status = %q, want Pending", tx.Status)
	}

	list := s.ListTransactions(w.WalletID)
	if len(list) != 1 {
		t.Fatalf("ledger length = %d, want 1", len(list))
	}
	// Recording never moves the balance; only settlement does.
	got, _ := s.GetWallet("u1")
	if !got.Balance.IsZero() {
		t.Fatalf("balance = %s, want 0 before settlement", got.Balance)
	}
}

func TestListTransactionsInsertionOrder(t *testing.T) {
	s := NewWalletStore()
	w, _ := s.CreateWallet("u1")
	for _, src := range []string{"first", "second", "third"} {
		if _, err := s.RecordTransaction(RecordTransactionParams{
			WalletID: w.WalletID,
			Type:     domain.TxCredit,
			Amount:   decimal.NewFromInt(1),
			Source:   src,
		}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	list := s.ListTransactions(w.WalletID)
	if len(list) != 3 {
		t.Fatalf("ledger length = %d, want 3", len(list))
	}
	for i, want := range []string{"first", "second", "third"} {
		if list[i].Source != want {
			t.Fatalf("entry %d source = %q, want %q", i, list[i].Source, want)
		}
	}
}

func TestCompleteTransactionAppliesBalanceOnce(t *testing.T) {
	s := NewWalletStore()
	w, _ := s.CreateWallet("u1")

	credit, _ := s.RecordTransaction(RecordTransactionParams{
		WalletID: w.WalletID,
		Type:     domain.TxCredit,
		Amount:   decimal.NewFromInt(100),
		Source:   "bonus",
	})
	settled, err := s.CompleteTransaction(credit.TransactionID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settled.Status != domain.TxCompleted {
		t.Fatalf("status = %q, want Completed", settled.Status)
	}
	got, _ := s.GetWallet("u1")
	if !got.Balance.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("balance = %s, want 100", got.Balance)
	}

	// Completed is terminal and the balance is applied exactly once.
	if _, err := s.CompleteTransaction(credit.TransactionID); !errors.Is(err, ErrValidation) {
		t.Fatalf("second settle error = %v, want ErrValidation", err)
	}
	got, _ = s.GetWallet("u1")
	if !got.Balance.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("balance = %s after double settle, want 100", got.Balance)
	}

	debit, _ := s.RecordTransaction(RecordTransactionParams{
		WalletID: w.WalletID,
		Type:     domain.TxDebit,
		Amount:   decimal.NewFromInt(30),
		Source:   "payout",
	})
	if _, err := s.CompleteTransaction(debit.TransactionID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ = s.GetWallet("u1")
	if !got.Balance.Equal(decimal.NewFromInt(70)) {
		t.Fatalf("balance = %s, want 70", got.Balance)
	}
}

func TestFailTransactionLeavesBalance(t *testing.T) {
	s := NewWalletStore()
	w, _ := s.CreateWallet("u1")

	tx, _ := s.RecordTransaction(RecordTransactionParams{
		WalletID: w.WalletID,
		Type:     domain.TxCredit,
		Amount:   decimal.NewFromInt(50),
		Source:   "bonus",
	})
	failed, err := s.FailTransaction(tx.TransactionID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if failed.Status != domain.TxFailed {
		t.Fatalf("status = %q, want Failed", failed.Status)
	}
	got, _ := s.GetWallet("u1")
	if !got.Balance.IsZero() {
		t.Fatalf("balance = %s, want 0 after failed settlement", got.Balance)
	}
	// Failed is terminal too.
	if _, err := s.CompleteTransaction(tx.TransactionID); !errors.Is(err, ErrValidation) {
		t.Fatalf("settle after fail error = %v, want ErrValidation", err)
	}
}

func TestSettleUnknownTransaction(t *testing.T) {
	s := NewWalletStore()
	if _, err := s.CompleteTransaction("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("complete error = %v, want ErrNotFound", err)
	}
	if _, err := s.FailTransaction("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("fail error = %v, want ErrNotFound", err)
	}
}
