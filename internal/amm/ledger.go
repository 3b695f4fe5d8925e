// Package amm implements the constant-product liquidity-pool ledger: pool
// identity, reserve and share bookkeeping, pricing, and the invariants that
// keep deposits, withdrawals and swaps consistent.
package amm

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/aman-zulfiqar/amm-pool-ledger/internal/assets"
)

// DefaultCustodyAccount is the account the ledger holds pooled value under
// on each asset ledger when no custody account is configured.
const DefaultCustodyAccount = "pool:custody"

// LedgerDeps contains dependencies required to create a Ledger.
type LedgerDeps struct {
	Assets  assets.Resolver  // required: resolves asset identifiers to ledgers
	Custody string           // custody account name; DefaultCustodyAccount if empty
	Sink    EventSink        // optional: receives pool notifications
	Logger  *logrus.Logger   // optional: structured operation logging
	Now     func() time.Time // optional: deadline clock, defaults to time.Now
}

// Ledger owns every Pool record and applies the constant-product state
// transitions. Mutating calls (Provide, Withdraw, Swap) are single-flight:
// while one is executing, any nested mutating call — typically a reentrant
// callback from an asset collaborator — fails immediately with ErrReentrant
// and no state change. Read-only calls (Quote, PriceOf, PoolOf,
// SharesOf) are unguarded and may observe the pre-mutation snapshot of an
// in-flight operation.
type Ledger struct {
	assets  assets.Resolver
	custody string
	sink    EventSink
	log     *logrus.Logger
	now     func() time.Time

	// gate is the single-flight latch over mutating calls. TryLock at entry,
	// release on every exit path.
	gate sync.Mutex

	// mu guards the pools map and record contents for concurrent readers.
	mu    sync.RWMutex
	pools map[PairKey]*Pool
}

// NewLedger creates an empty pool ledger.
func NewLedger(deps LedgerDeps) (*Ledger, error) {
	if deps.Assets == nil {
		return nil, fmt.Errorf("asset resolver is nil")
	}
	custody := deps.Custody
	if custody == "" {
		custody = DefaultCustodyAccount
	}
	log := deps.Logger
	if log == nil {
		log = logrus.New()
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Ledger{
		assets:  deps.Assets,
		custody: custody,
		sink:    deps.Sink,
		log:     log,
		now:     now,
		pools:   make(map[PairKey]*Pool),
	}, nil
}

// ProvideParams are the inputs to Provide.
type ProvideParams struct {
	Caller         string    // account the deposit is pulled from
	AssetX         string    // first asset of the ordered pair
	AssetY         string    // second asset of the ordered pair
	AmountXDesired *big.Int  // transferred in full; always fully credited
	AmountYDesired *big.Int  // transferred in full; credited up to the pool ratio
	AmountXMin     *big.Int  // slippage floor for the credited X amount (nil = 0)
	AmountYMin     *big.Int  // slippage floor for the credited Y amount (nil = 0)
	Recipient      string    // account the minted shares are credited to
	Deadline       time.Time // operation-time cutoff
}

// ProvideResult reports the credited contributions and minted shares.
type ProvideResult struct {
	UsedX        *big.Int
	UsedY        *big.Int
	SharesMinted *big.Int
}

// Provide deposits a paired balance and mints a proportional liquidity
// claim for the recipient.
//
// Both desired amounts are pulled into custody before any bookkeeping. On
// the first deposit into an ordered pair the deposit is taken at face value
// and minted shares equal the X contribution, fixing the share unit at one
// share per unit of asset X. On subsequent deposits the X amount is taken
// as given and the Y contribution is derived from the current reserve
// ratio; shares are minted pro rata against reserveX.
//
// When the derived Y contribution is below AmountYDesired, the difference
// stays in custody uncredited: it buys no shares and joins no reserve. This
// absorb-the-excess behavior is inherited from the source contract and kept
// for compatibility; callers wanting tight deposits should pre-compute the
// ratio with PoolOf.
func (l *Ledger) Provide(ctx context.Context, p ProvideParams) (*ProvideResult, error) {
	if !l.gate.TryLock() {
		return nil, ErrReentrant
	}
	defer l.gate.Unlock()

	if l.now().After(p.Deadline) {
		return nil, ErrExpired
	}
	if p.AssetX == p.AssetY {
		return nil, ErrIdenticalAssets
	}
	if !positive(p.AmountXDesired) || !positive(p.AmountYDesired) {
		return nil, ErrInvalidAmount
	}

	assetX, err := l.assets.Asset(p.AssetX)
	if err != nil {
		return nil, err
	}
	assetY, err := l.assets.Asset(p.AssetY)
	if err != nil {
		return nil, err
	}

	// Pull both desired amounts into custody. A failed second leg returns
	// the first so an aborted call leaves custody unchanged.
	if err := assetX.MoveFrom(ctx, p.Caller, l.custody, p.AmountXDesired); err != nil {
		return nil, fmt.Errorf("move %s in: %w", p.AssetX, err)
	}
	if err := assetY.MoveFrom(ctx, p.Caller, l.custody, p.AmountYDesired); err != nil {
		l.refund(ctx, assetX, p.AssetX, p.Caller, p.AmountXDesired)
		return nil, fmt.Errorf("move %s in: %w", p.AssetY, err)
	}

	key := PairKey{AssetX: p.AssetX, AssetY: p.AssetY}
	snap := l.PoolOf(p.AssetX, p.AssetY)

	usedX := new(big.Int).Set(p.AmountXDesired)
	var usedY, minted *big.Int
	if snap.ReserveX.Sign() == 0 {
		// First deposit defines the share unit: one share per unit of X.
		usedY = new(big.Int).Set(p.AmountYDesired)
		minted = new(big.Int).Set(usedX)
	} else {
		usedY = mulDiv(usedX, snap.ReserveY, snap.ReserveX)
		minted = mulDiv(usedX, snap.TotalShares, snap.ReserveX)
	}

	if below(usedX, p.AmountXMin) || below(usedY, p.AmountYMin) {
		l.refund(ctx, assetX, p.AssetX, p.Caller, p.AmountXDesired)
		l.refund(ctx, assetY, p.AssetY, p.Caller, p.AmountYDesired)
		return nil, ErrSlippage
	}

	l.mu.Lock()
	pool := l.getOrCreate(key)
	pool.ReserveX.Add(pool.ReserveX, usedX)
	pool.ReserveY.Add(pool.ReserveY, usedY)
	pool.TotalShares.Add(pool.TotalShares, minted)
	pool.creditShares(p.Recipient, minted)
	l.mu.Unlock()

	l.emit(ctx, &PoolEvent{
		Kind:      EventLiquidityAdded,
		Timestamp: l.now(),
		Pair:      key.String(),
		AssetX:    p.AssetX,
		AssetY:    p.AssetY,
		Account:   p.Recipient,
		AmountX:   usedX.String(),
		AmountY:   usedY.String(),
		Shares:    minted.String(),
	})

	l.log.WithFields(logrus.Fields{
		"pair":      key.String(),
		"recipient": p.Recipient,
		"usedX":     usedX.String(),
		"usedY":     usedY.String(),
		"minted":    minted.String(),
	}).Info("liquidity added")

	return &ProvideResult{UsedX: usedX, UsedY: usedY, SharesMinted: minted}, nil
}

// WithdrawParams are the inputs to Withdraw.
type WithdrawParams struct {
	Caller     string // account whose shares are burned
	AssetX     string
	AssetY     string
	Shares     *big.Int  // share units to redeem
	AmountXMin *big.Int  // slippage floor for the returned X amount (nil = 0)
	AmountYMin *big.Int  // slippage floor for the returned Y amount (nil = 0)
	Recipient  string    // account the reserves are paid out to
	Deadline   time.Time // operation-time cutoff
}

// WithdrawResult reports the amounts paid out.
type WithdrawResult struct {
	ReturnedX *big.Int
	ReturnedY *big.Int
}

// Withdraw burns the caller's shares and pays out a proportional cut of
// both reserves, computed from one consistent snapshot. Withdrawing every
// outstanding share leaves the pool record at all-zero; the record itself
// persists and a later Provide reuses it.
func (l *Ledger) Withdraw(ctx context.Context, p WithdrawParams) (*WithdrawResult, error) {
	if !l.gate.TryLock() {
		return nil, ErrReentrant
	}
	defer l.gate.Unlock()

	if l.now().After(p.Deadline) {
		return nil, ErrExpired
	}
	if p.Shares == nil || p.Shares.Sign() <= 0 {
		return nil, ErrZeroLiquidity
	}

	assetX, err := l.assets.Asset(p.AssetX)
	if err != nil {
		return nil, err
	}
	assetY, err := l.assets.Asset(p.AssetY)
	if err != nil {
		return nil, err
	}

	key := PairKey{AssetX: p.AssetX, AssetY: p.AssetY}
	snap := l.PoolOf(p.AssetX, p.AssetY)
	if l.SharesOf(p.AssetX, p.AssetY, p.Caller).Cmp(p.Shares) < 0 {
		return nil, ErrInsufficientShares
	}

	returnedX := mulDiv(p.Shares, snap.ReserveX, snap.TotalShares)
	returnedY := mulDiv(p.Shares, snap.ReserveY, snap.TotalShares)
	if below(returnedX, p.AmountXMin) || below(returnedY, p.AmountYMin) {
		return nil, ErrSlippage
	}

	l.mu.Lock()
	pool := l.getOrCreate(key)
	pool.ReserveX.Sub(pool.ReserveX, returnedX)
	pool.ReserveY.Sub(pool.ReserveY, returnedY)
	pool.TotalShares.Sub(pool.TotalShares, p.Shares)
	pool.debitShares(p.Caller, p.Shares)
	l.mu.Unlock()

	restore := func() {
		l.mu.Lock()
		pool.ReserveX.Add(pool.ReserveX, returnedX)
		pool.ReserveY.Add(pool.ReserveY, returnedY)
		pool.TotalShares.Add(pool.TotalShares, p.Shares)
		pool.creditShares(p.Caller, p.Shares)
		l.mu.Unlock()
	}

	if err := assetX.MoveTo(ctx, p.Recipient, returnedX); err != nil {
		restore()
		return nil, fmt.Errorf("move %s out: %w", p.AssetX, err)
	}
	if err := assetY.MoveTo(ctx, p.Recipient, returnedY); err != nil {
		restore()
		// The first leg is already paid; pull it back so custody matches the
		// restored books. A collaborator that blocks the reclaim leaves a
		// custody surplus, never a deficit.
		if rerr := assetX.MoveFrom(ctx, p.Recipient, l.custody, returnedX); rerr != nil {
			l.log.WithError(rerr).WithField("asset", p.AssetX).Error("failed to reclaim payout after aborted withdrawal")
		}
		return nil, fmt.Errorf("move %s out: %w", p.AssetY, err)
	}

	l.emit(ctx, &PoolEvent{
		Kind:      EventLiquidityRemoved,
		Timestamp: l.now(),
		Pair:      key.String(),
		AssetX:    p.AssetX,
		AssetY:    p.AssetY,
		Account:   p.Caller,
		AmountX:   returnedX.String(),
		AmountY:   returnedY.String(),
		Shares:    p.Shares.String(),
	})

	l.log.WithFields(logrus.Fields{
		"pair":      key.String(),
		"caller":    p.Caller,
		"returnedX": returnedX.String(),
		"returnedY": returnedY.String(),
		"burned":    p.Shares.String(),
	}).Info("liquidity removed")

	return &WithdrawResult{ReturnedX: returnedX, ReturnedY: returnedY}, nil
}

// SwapParams are the inputs to Swap.
type SwapParams struct {
	Caller       string
	AmountIn     *big.Int
	AmountOutMin *big.Int // slippage floor for the output (nil = 0)
	Path         []string // exactly [tokenIn, tokenOut]
	Recipient    string
	Deadline     time.Time
}

// SwapResult reports the executed input and output amounts.
type SwapResult struct {
	AmountIn  *big.Int
	AmountOut *big.Int
}

// Swap exchanges an exact input of path[0] for path[1] against the ordered
// pool (path[0], path[1]). The quote is computed from the reserve snapshot
// taken before the inbound transfer is acknowledged; reserves are credited
// only after the quote. That ordering is part of the pricing contract and
// must not be rearranged.
func (l *Ledger) Swap(ctx context.Context, p SwapParams) (*SwapResult, error) {
	if !l.gate.TryLock() {
		return nil, ErrReentrant
	}
	defer l.gate.Unlock()

	if l.now().After(p.Deadline) {
		return nil, ErrExpired
	}
	if len(p.Path) != 2 {
		return nil, ErrInvalidPath
	}
	if !positive(p.AmountIn) {
		return nil, ErrZeroInput
	}

	tokenIn, tokenOut := p.Path[0], p.Path[1]
	assetIn, err := l.assets.Asset(tokenIn)
	if err != nil {
		return nil, err
	}
	assetOut, err := l.assets.Asset(tokenOut)
	if err != nil {
		return nil, err
	}

	key := PairKey{AssetX: tokenIn, AssetY: tokenOut}
	snap := l.PoolOf(tokenIn, tokenOut)

	if err := assetIn.MoveFrom(ctx, p.Caller, l.custody, p.AmountIn); err != nil {
		return nil, fmt.Errorf("move %s in: %w", tokenIn, err)
	}

	amountOut, err := Quote(p.AmountIn, snap.ReserveX, snap.ReserveY)
	if err != nil {
		l.refund(ctx, assetIn, tokenIn, p.Caller, p.AmountIn)
		return nil, err
	}
	if below(amountOut, p.AmountOutMin) {
		l.refund(ctx, assetIn, tokenIn, p.Caller, p.AmountIn)
		return nil, ErrSlippage
	}

	l.mu.Lock()
	pool := l.getOrCreate(key)
	pool.ReserveX.Add(pool.ReserveX, p.AmountIn)
	pool.ReserveY.Sub(pool.ReserveY, amountOut)
	l.mu.Unlock()

	if err := assetOut.MoveTo(ctx, p.Recipient, amountOut); err != nil {
		l.mu.Lock()
		pool.ReserveX.Sub(pool.ReserveX, p.AmountIn)
		pool.ReserveY.Add(pool.ReserveY, amountOut)
		l.mu.Unlock()
		l.refund(ctx, assetIn, tokenIn, p.Caller, p.AmountIn)
		return nil, fmt.Errorf("move %s out: %w", tokenOut, err)
	}

	l.emit(ctx, &PoolEvent{
		Kind:      EventSwapped,
		Timestamp: l.now(),
		Pair:      key.String(),
		AssetX:    tokenIn,
		AssetY:    tokenOut,
		Account:   p.Caller,
		AmountX:   p.AmountIn.String(),
		AmountY:   amountOut.String(),
	})

	l.log.WithFields(logrus.Fields{
		"pair":      key.String(),
		"caller":    p.Caller,
		"amountIn":  p.AmountIn.String(),
		"amountOut": amountOut.String(),
	}).Info("swapped")

	return &SwapResult{AmountIn: new(big.Int).Set(p.AmountIn), AmountOut: amountOut}, nil
}

// PriceOf returns the fixed-point price of assetX denominated in assetY for
// the ordered pool (assetX, assetY): reserveX * PriceScale / reserveY.
// Because pair keys are ordered, PriceOf(Y, X) reads a different pool and
// is not the reciprocal. Fails with ErrZeroReserves when either reserve of
// this ordered pool is zero.
func (l *Ledger) PriceOf(assetX, assetY string) (*big.Int, error) {
	snap := l.PoolOf(assetX, assetY)
	if snap.ReserveX.Sign() == 0 || snap.ReserveY.Sign() == 0 {
		return nil, ErrZeroReserves
	}
	price := new(big.Int).Mul(snap.ReserveX, PriceScale)
	return price.Div(price, snap.ReserveY), nil
}

// PoolOf returns a snapshot of the ordered pool's accounting fields. A pair
// that has never been funded reports all-zero.
func (l *Ledger) PoolOf(assetX, assetY string) PoolView {
	l.mu.RLock()
	defer l.mu.RUnlock()

	pool, ok := l.pools[PairKey{AssetX: assetX, AssetY: assetY}]
	if !ok {
		return emptyView()
	}
	return pool.view()
}

// SharesOf returns the account's share balance in the ordered pool.
func (l *Ledger) SharesOf(assetX, assetY, account string) *big.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	pool, ok := l.pools[PairKey{AssetX: assetX, AssetY: assetY}]
	if !ok {
		return new(big.Int)
	}
	return pool.sharesOf(account)
}

// getOrCreate materializes the pool record for a key. Caller holds l.mu.
func (l *Ledger) getOrCreate(key PairKey) *Pool {
	pool, ok := l.pools[key]
	if !ok {
		pool = newPool()
		l.pools[key] = pool
	}
	return pool
}

// refund returns an already-pulled deposit on an abort path. A refund
// failure cannot un-abort the operation; it is logged and leaves the value
// in custody.
func (l *Ledger) refund(ctx context.Context, a assets.Asset, id, to string, amount *big.Int) {
	if err := a.MoveTo(ctx, to, amount); err != nil {
		l.log.WithError(err).WithFields(logrus.Fields{
			"asset":   id,
			"account": to,
			"amount":  amount.String(),
		}).Error("failed to refund aborted deposit")
	}
}

func (l *Ledger) emit(ctx context.Context, ev *PoolEvent) {
	if l.sink == nil {
		return
	}
	if err := l.sink.Publish(ctx, ev); err != nil {
		l.log.WithError(err).WithField("kind", ev.Kind).Warn("event sink publish failed")
	}
}

func positive(v *big.Int) bool {
	return v != nil && v.Sign() > 0
}

// below reports v < min, treating a nil minimum as zero.
func below(v, min *big.Int) bool {
	if min == nil {
		return false
	}
	return v.Cmp(min) < 0
}
