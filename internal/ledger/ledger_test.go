package ledger

import (
	"testing"

	"github.com/openwager/betchain/pkg/types"
)

func TestMemoryCreditDebit(t *testing.T) {
	m := NewMemory()

	if got := m.Balance("alice").Amount; got != 0 {
		t.Errorf("fresh account balance = %d, want 0", got)
	}

	m.Deposit("alice", types.NewAsset(100))
	if err := m.Debit("alice", types.NewAsset(60)); err != nil {
		t.Fatalf("debit: %v", err)
	}
	if err := m.Credit("alice", types.NewAsset(10)); err != nil {
		t.Fatalf("credit: %v", err)
	}
	if got := m.Balance("alice").Amount; got != 50 {
		t.Errorf("balance = %d, want 50", got)
	}
}

func TestMemoryDebitInsufficientBalance(t *testing.T) {
	m := NewMemory()
	m.Deposit("alice", types.NewAsset(10))

	err := m.Debit("alice", types.NewAsset(11))
	if !types.IsCode(err, types.CodePrecondition) {
		t.Errorf("overdraft must fail with precondition, got %v", err)
	}
	if got := m.Balance("alice").Amount; got != 10 {
		t.Errorf("failed debit must not move funds, balance = %d", got)
	}

	if err := m.Debit("nobody", types.NewAsset(1)); err == nil {
		t.Error("debit from an unknown account must fail")
	}
}

func TestMemoryAccounts(t *testing.T) {
	m := NewMemory()
	m.Deposit("carol", types.NewAsset(1))
	m.Deposit("alice", types.NewAsset(1))
	m.Deposit("bob", types.NewAsset(1))

	got := m.Accounts()
	want := []string{"alice", "bob", "carol"}
	if len(got) != len(want) {
		t.Fatalf("got %d accounts, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("accounts[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
