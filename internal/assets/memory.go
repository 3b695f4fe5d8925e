package assets

import (
	"context"
	"fmt"
	"math/big"
	"sync"
)

// Token is an in-memory fungible-asset ledger with ERC20-style balance and
// allowance bookkeeping. It backs the daemon's local mode and the test
// suites; a production deployment would resolve real on-chain ledgers
// behind the same Asset interface.
type Token struct {
	symbol    string
	custodian string

	mu         sync.Mutex
	balances   map[string]*big.Int
	allowances map[string]map[string]*big.Int // owner -> spender -> amount
}

// NewToken creates an empty in-memory asset ledger. custodian is the
// account MoveTo pays out of; for pool usage it is the pool's custody
// account.
func NewToken(symbol, custodian string) *Token {
	return &Token{
		symbol:     symbol,
		custodian:  custodian,
		balances:   make(map[string]*big.Int),
		allowances: make(map[string]map[string]*big.Int),
	}
}

// Symbol returns the asset identifier this ledger was created with.
func (t *Token) Symbol() string { return t.symbol }

// Mint credits freshly created units to an account. Test and faucet helper;
// the pool ledger itself never calls it.
func (t *Token) Mint(account string, amount *big.Int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.credit(account, amount)
}

// Approve grants spender the right to pull up to amount from owner via
// MoveFrom. The grant is overwritten, not accumulated.
func (t *Token) Approve(owner, spender string, amount *big.Int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	grants, ok := t.allowances[owner]
	if !ok {
		grants = make(map[string]*big.Int)
		t.allowances[owner] = grants
	}
	grants[spender] = new(big.Int).Set(amount)
}

// MoveFrom moves amount from owner to the destination account. When the
// owner is not the destination, the move spends the owner's allowance for
// that destination.
func (t *Token) MoveFrom(ctx context.Context, owner, to string, amount *big.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if owner == to {
		return t.move(owner, to, amount)
	}

	grant := t.allowance(owner, to)
	if grant.Cmp(amount) < 0 {
		return fmt.Errorf("%s: %s -> %s: %w", t.symbol, owner, to, ErrInsufficientAllowance)
	}
	if err := t.move(owner, to, amount); err != nil {
		return err
	}
	grant.Sub(grant, amount)
	return nil
}

// MoveTo pays amount out of the custody account.
func (t *Token) MoveTo(ctx context.Context, to string, amount *big.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.move(t.custodian, to, amount)
}

// BalanceOf returns a copy of the account's balance.
func (t *Token) BalanceOf(ctx context.Context, owner string) (*big.Int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if bal, ok := t.balances[owner]; ok {
		return new(big.Int).Set(bal), nil
	}
	return new(big.Int), nil
}

// AllowanceOf returns a copy of the owner's remaining grant for spender.
func (t *Token) AllowanceOf(ctx context.Context, owner, spender string) (*big.Int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return new(big.Int).Set(t.allowance(owner, spender)), nil
}

// move transfers owner -> to. Caller holds t.mu.
func (t *Token) move(owner, to string, amount *big.Int) error {
	bal, ok := t.balances[owner]
	if !ok || bal.Cmp(amount) < 0 {
		return fmt.Errorf("%s: account %s: %w", t.symbol, owner, ErrInsufficientFunds)
	}
	bal.Sub(bal, amount)
	t.credit(to, amount)
	return nil
}

// credit adds to an account balance. Caller holds t.mu.
func (t *Token) credit(account string, amount *big.Int) {
	bal, ok := t.balances[account]
	if !ok {
		bal = new(big.Int)
		t.balances[account] = bal
	}
	bal.Add(bal, amount)
}

// allowance returns the live grant object (zero value if absent).
// Caller holds t.mu.
func (t *Token) allowance(owner, spender string) *big.Int {
	grants, ok := t.allowances[owner]
	if !ok {
		return new(big.Int)
	}
	grant, ok := grants[spender]
	if !ok {
		return new(big.Int)
	}
	return grant
}

// Registry is a Resolver over in-memory tokens.
type Registry struct {
	mu     sync.RWMutex
	tokens map[string]*Token
}

// NewRegistry creates an empty asset registry.
func NewRegistry() *Registry {
	return &Registry{tokens: make(map[string]*Token)}
}

// Register adds a token under its symbol, replacing any previous entry.
func (r *Registry) Register(t *Token) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[t.Symbol()] = t
}

// Token returns the concrete in-memory token, or nil if unregistered.
// Used by the dev faucet; ledger code goes through Asset.
func (r *Registry) Token(id string) *Token {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tokens[id]
}

// Asset implements Resolver.
func (r *Registry) Asset(id string) (Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tokens[id]
	if !ok {
		return nil, fmt.Errorf("%q: %w", id, ErrUnknownAsset)
	}
	return t, nil
}
