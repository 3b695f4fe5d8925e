package amm

import "math/big"

// PairKey identifies a pool by its ordered asset pair.
//
// Ordering is significant: (X, Y) and (Y, X) address two independent Pool
// records with independent reserves and share supplies. Depositing into one
// never populates the other, and PriceOf across the two orderings is not a
// reciprocal relationship. This mirrors the upstream contract's observable
// behavior and is kept deliberately.
type PairKey struct {
	AssetX string `json:"assetX"`
	AssetY string `json:"assetY"`
}

// String renders the key as "X/Y" for logs, cache keys and event payloads.
func (k PairKey) String() string {
	return k.AssetX + "/" + k.AssetY
}

// Pool is the per-pair accounting record: recorded custody of both assets
// plus total and per-provider liquidity shares. Amounts are big.Int so
// reserve arithmetic never overflows a machine word.
//
// A Pool springs into existence on first successful provide and is never
// deleted; withdrawing all shares returns it to the all-zero state.
type Pool struct {
	ReserveX    *big.Int
	ReserveY    *big.Int
	TotalShares *big.Int

	// shareBalance maps provider account to share units. The sum of all
	// entries equals TotalShares after every successful operation.
	shareBalance map[string]*big.Int
}

func newPool() *Pool {
	return &Pool{
		ReserveX:     new(big.Int),
		ReserveY:     new(big.Int),
		TotalShares:  new(big.Int),
		shareBalance: make(map[string]*big.Int),
	}
}

func (p *Pool) creditShares(account string, shares *big.Int) {
	bal, ok := p.shareBalance[account]
	if !ok {
		bal = new(big.Int)
		p.shareBalance[account] = bal
	}
	bal.Add(bal, shares)
}

func (p *Pool) debitShares(account string, shares *big.Int) {
	if bal, ok := p.shareBalance[account]; ok {
		bal.Sub(bal, shares)
	}
}

// sharesOf returns a copy of the account's share balance.
func (p *Pool) sharesOf(account string) *big.Int {
	if bal, ok := p.shareBalance[account]; ok {
		return new(big.Int).Set(bal)
	}
	return new(big.Int)
}

// PoolView is an immutable snapshot of a pool's public accounting fields.
// A view of a pool that has never been funded has all fields at zero.
type PoolView struct {
	TotalShares *big.Int
	ReserveX    *big.Int
	ReserveY    *big.Int
}

func (p *Pool) view() PoolView {
	return PoolView{
		TotalShares: new(big.Int).Set(p.TotalShares),
		ReserveX:    new(big.Int).Set(p.ReserveX),
		ReserveY:    new(big.Int).Set(p.ReserveY),
	}
}

func emptyView() PoolView {
	return PoolView{
		TotalShares: new(big.Int),
		ReserveX:    new(big.Int),
		ReserveY:    new(big.Int),
	}
}
