// Package ledger is the engine's boundary to account balance
// bookkeeping: the core calls Credit and Debit for stakes and refunds
// but does not own balance storage.
package ledger

import (
	"sort"

	"github.com/openwager/betchain/pkg/types"
)

// AccountLedger credits and debits account balances. Implementations
// are synchronous; a debit exceeding the balance fails and the caller
// aborts the whole operation.
type AccountLedger interface {
	Credit(account string, amount types.Asset) error
	Debit(account string, amount types.Asset) error
}

// Memory is an in-memory ledger used by the daemon and tests.
type Memory struct {
	balances map[string]types.Asset
}

// NewMemory creates an empty in-memory ledger.
func NewMemory() *Memory {
	return &Memory{balances: make(map[string]types.Asset)}
}

// Deposit seeds an account balance without the debit checks.
func (m *Memory) Deposit(account string, amount types.Asset) {
	cur, ok := m.balances[account]
	if !ok {
		m.balances[account] = amount
		return
	}

	sum, err := cur.Add(amount)
	if err != nil {
		return
	}
	m.balances[account] = sum
}

// Credit adds the amount to the account balance.
func (m *Memory) Credit(account string, amount types.Asset) error {
	cur, ok := m.balances[account]
	if !ok {
		m.balances[account] = amount
		return nil
	}

	sum, err := cur.Add(amount)
	if err != nil {
		return err
	}
	m.balances[account] = sum

	return nil
}

// Debit removes the amount from the account balance, failing when the
// balance is insufficient.
func (m *Memory) Debit(account string, amount types.Asset) error {
	cur, ok := m.balances[account]
	if !ok {
		cur = types.NewAsset(0)
	}

	rest, err := cur.Sub(amount)
	if err != nil {
		return err
	}
	if rest.Amount < 0 {
		return types.NewOpError(types.CodePrecondition, account,
			"insufficient balance: have %s, need %s", cur, amount)
	}
	m.balances[account] = rest

	return nil
}

// Balance returns the account balance.
func (m *Memory) Balance(account string) types.Asset {
	if b, ok := m.balances[account]; ok {
		return b
	}

	return types.NewAsset(0)
}

// Accounts returns every known account name sorted.
func (m *Memory) Accounts() []string {
	out := make([]string, 0, len(m.balances))
	for a := range m.balances {
		out = append(out, a)
	}
	sort.Strings(out)

	return out
}
