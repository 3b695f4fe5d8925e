package amm

import (
	"context"
	"io"
	"math/big"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aman-zulfiqar/amm-pool-ledger/internal/assets"
)

const (
	testCustody = "pool:custody"
	alice       = "alice"
	bob         = "bob"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// newTestRegistry registers TKA/TKB/TKC with funded, pre-approved accounts.
func newTestRegistry(t *testing.T) *assets.Registry {
	t.Helper()
	reg := assets.NewRegistry()
	funds := big.NewInt(1_000_000)
	for _, sym := range []string{"TKA", "TKB", "TKC"} {
		tok := assets.NewToken(sym, testCustody)
		for _, account := range []string{alice, bob} {
			tok.Mint(account, funds)
			tok.Approve(account, testCustody, funds)
		}
		reg.Register(tok)
	}
	return reg
}

func newTestLedger(t *testing.T) (*Ledger, *assets.Registry) {
	t.Helper()
	reg := newTestRegistry(t)
	l, err := NewLedger(LedgerDeps{Assets: reg, Custody: testCustody, Logger: testLogger()})
	require.NoError(t, err)
	return l, reg
}

func future() time.Time { return time.Now().Add(time.Hour) }

func balanceOf(t *testing.T, reg *assets.Registry, asset, account string) *big.Int {
	t.Helper()
	tok := reg.Token(asset)
	require.NotNil(t, tok)
	bal, err := tok.BalanceOf(context.Background(), account)
	require.NoError(t, err)
	return bal
}

// checkInvariants verifies the accounting invariants over every pool: share
// balances sum to the total supply, reserves are non-negative, and an empty
// supply means empty reserves.
func checkInvariants(t *testing.T, l *Ledger) {
	t.Helper()
	l.mu.RLock()
	defer l.mu.RUnlock()
	for key, pool := range l.pools {
		sum := new(big.Int)
		for _, bal := range pool.shareBalance {
			sum.Add(sum, bal)
		}
		assert.Zerof(t, sum.Cmp(pool.TotalShares), "share sum != total shares for %s", key)
		assert.GreaterOrEqualf(t, pool.ReserveX.Sign(), 0, "negative reserveX for %s", key)
		assert.GreaterOrEqualf(t, pool.ReserveY.Sign(), 0, "negative reserveY for %s", key)
		if pool.TotalShares.Sign() == 0 {
			assert.Zerof(t, pool.ReserveX.Sign(), "empty pool %s holds reserveX", key)
			assert.Zerof(t, pool.ReserveY.Sign(), "empty pool %s holds reserveY", key)
		}
	}
}

func provide(t *testing.T, l *Ledger, amountX, amountY int64) *ProvideResult {
	t.Helper()
	res, err := l.Provide(context.Background(), ProvideParams{
		Caller:         alice,
		AssetX:         "TKA",
		AssetY:         "TKB",
		AmountXDesired: big.NewInt(amountX),
		AmountYDesired: big.NewInt(amountY),
		Recipient:      alice,
		Deadline:       future(),
	})
	require.NoError(t, err)
	return res
}

func TestProvideFirstDeposit(t *testing.T) {
	l, reg := newTestLedger(t)

	res := provide(t, l, 1000, 4000)
	assert.Equal(t, "1000", res.UsedX.String())
	assert.Equal(t, "4000", res.UsedY.String())
	// The first deposit defines the share unit: minted equals the X amount.
	assert.Equal(t, "1000", res.SharesMinted.String())

	view := l.PoolOf("TKA", "TKB")
	assert.Equal(t, "1000", view.ReserveX.String())
	assert.Equal(t, "4000", view.ReserveY.String())
	assert.Equal(t, "1000", view.TotalShares.String())
	assert.Equal(t, "1000", l.SharesOf("TKA", "TKB", alice).String())

	// Deposits landed in custody.
	assert.Equal(t, "1000", balanceOf(t, reg, "TKA", testCustody).String())
	assert.Equal(t, "4000", balanceOf(t, reg, "TKB", testCustody).String())

	checkInvariants(t, l)
}

func TestProvideProportional(t *testing.T) {
	l, _ := newTestLedger(t)
	provide(t, l, 1000, 4000)

	// usedY and minted derive from the pre-call reserves, not the desired Y.
	res, err := l.Provide(context.Background(), ProvideParams{
		Caller:         alice,
		AssetX:         "TKA",
		AssetY:         "TKB",
		AmountXDesired: big.NewInt(500),
		AmountYDesired: big.NewInt(9000),
		Recipient:      alice,
		Deadline:       future(),
	})
	require.NoError(t, err)
	assert.Equal(t, "500", res.UsedX.String())
	assert.Equal(t, "2000", res.UsedY.String()) // floor(500*4000/1000)
	assert.Equal(t, "500", res.SharesMinted.String())

	view := l.PoolOf("TKA", "TKB")
	assert.Equal(t, "1500", view.ReserveX.String())
	assert.Equal(t, "6000", view.ReserveY.String())
	assert.Equal(t, "1500", view.TotalShares.String())

	checkInvariants(t, l)
}

func TestProvideAbsorbsExcess(t *testing.T) {
	l, reg := newTestLedger(t)
	provide(t, l, 1000, 4000)

	before := balanceOf(t, reg, "TKB", alice)
	res, err := l.Provide(context.Background(), ProvideParams{
		Caller:         alice,
		AssetX:         "TKA",
		AssetY:         "TKB",
		AmountXDesired: big.NewInt(500),
		AmountYDesired: big.NewInt(5000), // ratio only needs 2000
		Recipient:      alice,
		Deadline:       future(),
	})
	require.NoError(t, err)
	assert.Equal(t, "2000", res.UsedY.String())

	// The full desired amount left the caller; only usedY joined the
	// reserves. The difference sits in custody uncredited.
	after := balanceOf(t, reg, "TKB", alice)
	assert.Equal(t, "5000", new(big.Int).Sub(before, after).String())
	assert.Equal(t, "6000", l.PoolOf("TKA", "TKB").ReserveY.String())
	assert.Equal(t, "9000", balanceOf(t, reg, "TKB", testCustody).String())
}

func TestProvideValidation(t *testing.T) {
	l, _ := newTestLedger(t)
	ctx := context.Background()

	_, err := l.Provide(ctx, ProvideParams{
		Caller: alice, AssetX: "TKA", AssetY: "TKA",
		AmountXDesired: big.NewInt(10), AmountYDesired: big.NewInt(10),
		Recipient: alice, Deadline: future(),
	})
	assert.ErrorIs(t, err, ErrIdenticalAssets)

	_, err = l.Provide(ctx, ProvideParams{
		Caller: alice, AssetX: "TKA", AssetY: "TKB",
		AmountXDesired: big.NewInt(0), AmountYDesired: big.NewInt(10),
		Recipient: alice, Deadline: future(),
	})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = l.Provide(ctx, ProvideParams{
		Caller: alice, AssetX: "TKA", AssetY: "TKB",
		AmountXDesired: big.NewInt(10), AmountYDesired: nil,
		Recipient: alice, Deadline: future(),
	})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = l.Provide(ctx, ProvideParams{
		Caller: alice, AssetX: "TKA", AssetY: "ZZZ",
		AmountXDesired: big.NewInt(10), AmountYDesired: big.NewInt(10),
		Recipient: alice, Deadline: future(),
	})
	assert.ErrorIs(t, err, assets.ErrUnknownAsset)
}

func TestProvideExpired(t *testing.T) {
	reg := newTestRegistry(t)
	frozen := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	l, err := NewLedger(LedgerDeps{
		Assets:  reg,
		Custody: testCustody,
		Logger:  testLogger(),
		Now:     func() time.Time { return frozen },
	})
	require.NoError(t, err)

	_, err = l.Provide(context.Background(), ProvideParams{
		Caller: alice, AssetX: "TKA", AssetY: "TKB",
		AmountXDesired: big.NewInt(10), AmountYDesired: big.NewInt(10),
		Recipient: alice, Deadline: frozen.Add(-time.Second),
	})
	assert.ErrorIs(t, err, ErrExpired)

	// A deadline exactly at the clock is still valid.
	_, err = l.Provide(context.Background(), ProvideParams{
		Caller: alice, AssetX: "TKA", AssetY: "TKB",
		AmountXDesired: big.NewInt(10), AmountYDesired: big.NewInt(10),
		Recipient: alice, Deadline: frozen,
	})
	assert.NoError(t, err)
}

func TestProvideSlippageRefunds(t *testing.T) {
	l, reg := newTestLedger(t)
	provide(t, l, 1000, 4000)

	beforeA := balanceOf(t, reg, "TKA", alice)
	beforeB := balanceOf(t, reg, "TKB", alice)

	// Ratio yields usedY=2000, below the caller's floor of 3000.
	_, err := l.Provide(context.Background(), ProvideParams{
		Caller: alice, AssetX: "TKA", AssetY: "TKB",
		AmountXDesired: big.NewInt(500), AmountYDesired: big.NewInt(5000),
		AmountYMin: big.NewInt(3000),
		Recipient:  alice, Deadline: future(),
	})
	assert.ErrorIs(t, err, ErrSlippage)

	// The aborted deposit came back in full and the pool is untouched.
	assert.Equal(t, beforeA.String(), balanceOf(t, reg, "TKA", alice).String())
	assert.Equal(t, beforeB.String(), balanceOf(t, reg, "TKB", alice).String())
	assert.Equal(t, "1000", l.PoolOf("TKA", "TKB").ReserveX.String())
	checkInvariants(t, l)
}

func TestWithdrawProportional(t *testing.T) {
	l, reg := newTestLedger(t)
	provide(t, l, 500, 500) // reserves 500/500, shares 500

	res, err := l.Withdraw(context.Background(), WithdrawParams{
		Caller: alice, AssetX: "TKA", AssetY: "TKB",
		Shares:    big.NewInt(100),
		Recipient: bob, Deadline: future(),
	})
	require.NoError(t, err)
	assert.Equal(t, "100", res.ReturnedX.String())
	assert.Equal(t, "100", res.ReturnedY.String())

	view := l.PoolOf("TKA", "TKB")
	assert.Equal(t, "400", view.ReserveX.String())
	assert.Equal(t, "400", view.ReserveY.String())
	assert.Equal(t, "400", view.TotalShares.String())
	assert.Equal(t, "400", l.SharesOf("TKA", "TKB", alice).String())

	// Payout reached the designated recipient.
	assert.Equal(t, "1000100", balanceOf(t, reg, "TKA", bob).String())
	checkInvariants(t, l)
}

func TestWithdrawAllRoundTrip(t *testing.T) {
	l, reg := newTestLedger(t)

	beforeA := balanceOf(t, reg, "TKA", alice)
	beforeB := balanceOf(t, reg, "TKB", alice)

	res := provide(t, l, 1234, 5678)
	out, err := l.Withdraw(context.Background(), WithdrawParams{
		Caller: alice, AssetX: "TKA", AssetY: "TKB",
		Shares:    res.SharesMinted,
		Recipient: alice, Deadline: future(),
	})
	require.NoError(t, err)

	// Returned amounts never exceed the deposit, and with no intermediate
	// activity they match it exactly.
	assert.Equal(t, "1234", out.ReturnedX.String())
	assert.Equal(t, "5678", out.ReturnedY.String())
	assert.Equal(t, beforeA.String(), balanceOf(t, reg, "TKA", alice).String())
	assert.Equal(t, beforeB.String(), balanceOf(t, reg, "TKB", alice).String())

	// The record survives at all-zero and accepts a fresh first deposit.
	view := l.PoolOf("TKA", "TKB")
	assert.Zero(t, view.TotalShares.Sign())
	assert.Zero(t, view.ReserveX.Sign())
	assert.Zero(t, view.ReserveY.Sign())
	checkInvariants(t, l)

	res = provide(t, l, 10, 70)
	assert.Equal(t, "10", res.SharesMinted.String())
	checkInvariants(t, l)
}

func TestWithdrawValidation(t *testing.T) {
	l, _ := newTestLedger(t)
	provide(t, l, 500, 500)
	ctx := context.Background()

	_, err := l.Withdraw(ctx, WithdrawParams{
		Caller: alice, AssetX: "TKA", AssetY: "TKB",
		Shares:    big.NewInt(0),
		Recipient: alice, Deadline: future(),
	})
	assert.ErrorIs(t, err, ErrZeroLiquidity)

	_, err = l.Withdraw(ctx, WithdrawParams{
		Caller: alice, AssetX: "TKA", AssetY: "TKB",
		Shares:    big.NewInt(501),
		Recipient: alice, Deadline: future(),
	})
	assert.ErrorIs(t, err, ErrInsufficientShares)

	// bob holds no shares at all
	_, err = l.Withdraw(ctx, WithdrawParams{
		Caller: bob, AssetX: "TKA", AssetY: "TKB",
		Shares:    big.NewInt(1),
		Recipient: bob, Deadline: future(),
	})
	assert.ErrorIs(t, err, ErrInsufficientShares)

	_, err = l.Withdraw(ctx, WithdrawParams{
		Caller: alice, AssetX: "TKA", AssetY: "TKB",
		Shares:     big.NewInt(100),
		AmountXMin: big.NewInt(101),
		Recipient:  alice, Deadline: future(),
	})
	assert.ErrorIs(t, err, ErrSlippage)

	checkInvariants(t, l)
}

func TestSwapExactInput(t *testing.T) {
	l, reg := newTestLedger(t)
	provide(t, l, 5000, 5000)

	res, err := l.Swap(context.Background(), SwapParams{
		Caller:    bob,
		AmountIn:  big.NewInt(1000),
		Path:      []string{"TKA", "TKB"},
		Recipient: bob,
		Deadline:  future(),
	})
	require.NoError(t, err)
	assert.Equal(t, "1000", res.AmountIn.String())
	assert.Equal(t, "833", res.AmountOut.String())

	view := l.PoolOf("TKA", "TKB")
	assert.Equal(t, "6000", view.ReserveX.String())
	assert.Equal(t, "4167", view.ReserveY.String())
	// Share supply is untouched by swaps.
	assert.Equal(t, "5000", view.TotalShares.String())

	assert.Equal(t, "1000833", balanceOf(t, reg, "TKB", bob).String())
	checkInvariants(t, l)
}

func TestSwapReversePathIsDistinctPool(t *testing.T) {
	l, _ := newTestLedger(t)
	provide(t, l, 5000, 5000) // funds (TKA, TKB) only

	// The reverse ordered pair is a separate, unfunded pool.
	_, err := l.Swap(context.Background(), SwapParams{
		Caller:    bob,
		AmountIn:  big.NewInt(1000),
		Path:      []string{"TKB", "TKA"},
		Recipient: bob,
		Deadline:  future(),
	})
	assert.ErrorIs(t, err, ErrBadReserves)
}

func TestSwapValidation(t *testing.T) {
	l, reg := newTestLedger(t)
	provide(t, l, 5000, 5000)
	ctx := context.Background()

	_, err := l.Swap(ctx, SwapParams{
		Caller: bob, AmountIn: big.NewInt(10),
		Path:      []string{"TKA"},
		Recipient: bob, Deadline: future(),
	})
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = l.Swap(ctx, SwapParams{
		Caller: bob, AmountIn: big.NewInt(10),
		Path:      []string{"TKA", "TKB", "TKC"},
		Recipient: bob, Deadline: future(),
	})
	assert.ErrorIs(t, err, ErrInvalidPath)

	_, err = l.Swap(ctx, SwapParams{
		Caller: bob, AmountIn: big.NewInt(0),
		Path:      []string{"TKA", "TKB"},
		Recipient: bob, Deadline: future(),
	})
	assert.ErrorIs(t, err, ErrZeroInput)

	before := balanceOf(t, reg, "TKA", bob)
	_, err = l.Swap(ctx, SwapParams{
		Caller: bob, AmountIn: big.NewInt(1000),
		AmountOutMin: big.NewInt(834), // quote yields 833
		Path:         []string{"TKA", "TKB"},
		Recipient:    bob, Deadline: future(),
	})
	assert.ErrorIs(t, err, ErrSlippage)

	// The pulled input came back and reserves are untouched.
	assert.Equal(t, before.String(), balanceOf(t, reg, "TKA", bob).String())
	assert.Equal(t, "5000", l.PoolOf("TKA", "TKB").ReserveX.String())
	checkInvariants(t, l)
}

func TestPriceOf(t *testing.T) {
	l, _ := newTestLedger(t)
	provide(t, l, 2000, 1000)

	price, err := l.PriceOf("TKA", "TKB")
	require.NoError(t, err)
	assert.Equal(t, "2000000000000000000", price.String()) // 2.0 at 1e18 scale

	// The reverse ordering reads a different, unfunded record.
	_, err = l.PriceOf("TKB", "TKA")
	assert.ErrorIs(t, err, ErrZeroReserves)

	_, err = l.PriceOf("TKA", "TKC")
	assert.ErrorIs(t, err, ErrZeroReserves)
}

func TestOrderedPairsAreIndependent(t *testing.T) {
	l, _ := newTestLedger(t)
	provide(t, l, 1000, 4000)

	view := l.PoolOf("TKB", "TKA")
	assert.Zero(t, view.TotalShares.Sign())
	assert.Zero(t, view.ReserveX.Sign())

	// Funding the reverse pair creates a second, unrelated pool.
	_, err := l.Provide(context.Background(), ProvideParams{
		Caller: alice, AssetX: "TKB", AssetY: "TKA",
		AmountXDesired: big.NewInt(300), AmountYDesired: big.NewInt(60),
		Recipient: alice, Deadline: future(),
	})
	require.NoError(t, err)

	assert.Equal(t, "1000", l.PoolOf("TKA", "TKB").ReserveX.String())
	assert.Equal(t, "300", l.PoolOf("TKB", "TKA").ReserveX.String())
	checkInvariants(t, l)
}

// collectSink records published events for assertions.
type collectSink struct {
	events []*PoolEvent
}

func (s *collectSink) Publish(ctx context.Context, ev *PoolEvent) error {
	s.events = append(s.events, ev)
	return nil
}

func TestEventsEmitted(t *testing.T) {
	reg := newTestRegistry(t)
	sink := &collectSink{}
	l, err := NewLedger(LedgerDeps{Assets: reg, Custody: testCustody, Logger: testLogger(), Sink: sink})
	require.NoError(t, err)
	ctx := context.Background()

	_, err = l.Provide(ctx, ProvideParams{
		Caller: alice, AssetX: "TKA", AssetY: "TKB",
		AmountXDesired: big.NewInt(5000), AmountYDesired: big.NewInt(5000),
		Recipient: alice, Deadline: future(),
	})
	require.NoError(t, err)

	_, err = l.Swap(ctx, SwapParams{
		Caller: bob, AmountIn: big.NewInt(1000),
		Path:      []string{"TKA", "TKB"},
		Recipient: bob, Deadline: future(),
	})
	require.NoError(t, err)

	_, err = l.Withdraw(ctx, WithdrawParams{
		Caller: alice, AssetX: "TKA", AssetY: "TKB",
		Shares:    big.NewInt(500),
		Recipient: alice, Deadline: future(),
	})
	require.NoError(t, err)

	require.Len(t, sink.events, 3)

	added := sink.events[0]
	assert.Equal(t, EventLiquidityAdded, added.Kind)
	assert.Equal(t, "TKA/TKB", added.Pair)
	assert.Equal(t, alice, added.Account)
	assert.Equal(t, "5000", added.AmountX)
	assert.Equal(t, "5000", added.AmountY)
	assert.Equal(t, "5000", added.Shares)

	swapped := sink.events[1]
	assert.Equal(t, EventSwapped, swapped.Kind)
	assert.Equal(t, bob, swapped.Account)
	assert.Equal(t, "1000", swapped.AmountX)
	assert.Equal(t, "833", swapped.AmountY)
	assert.Empty(t, swapped.Shares)

	removed := sink.events[2]
	assert.Equal(t, EventLiquidityRemoved, removed.Kind)
	assert.Equal(t, alice, removed.Account)
	assert.Equal(t, "500", removed.Shares)
}

// reentrantAsset wraps an asset and calls back into the ledger on the first
// inbound move, imitating a malicious collaborator.
type reentrantAsset struct {
	assets.Asset
	callback  func(ctx context.Context) error
	fired     bool
	nestedErr error
}

func (a *reentrantAsset) MoveFrom(ctx context.Context, owner, to string, amount *big.Int) error {
	if !a.fired {
		a.fired = true
		a.nestedErr = a.callback(ctx)
	}
	return a.Asset.MoveFrom(ctx, owner, to, amount)
}

// hookResolver serves the wrapped asset for one identifier and delegates the
// rest.
type hookResolver struct {
	base   assets.Resolver
	id     string
	hooked assets.Asset
}

func (r *hookResolver) Asset(id string) (assets.Asset, error) {
	if id == r.id {
		return r.hooked, nil
	}
	return r.base.Asset(id)
}

func TestReentrantCallRejected(t *testing.T) {
	reg := newTestRegistry(t)
	base, err := reg.Asset("TKA")
	require.NoError(t, err)

	hooked := &reentrantAsset{Asset: base}
	resolver := &hookResolver{base: reg, id: "TKA", hooked: hooked}
	l, err := NewLedger(LedgerDeps{Assets: resolver, Custody: testCustody, Logger: testLogger()})
	require.NoError(t, err)

	// The collaborator attempts a nested swap mid-provide.
	hooked.callback = func(ctx context.Context) error {
		_, err := l.Swap(ctx, SwapParams{
			Caller: bob, AmountIn: big.NewInt(10),
			Path:      []string{"TKA", "TKB"},
			Recipient: bob, Deadline: future(),
		})
		return err
	}

	res, err := l.Provide(context.Background(), ProvideParams{
		Caller: alice, AssetX: "TKA", AssetY: "TKB",
		AmountXDesired: big.NewInt(1000), AmountYDesired: big.NewInt(4000),
		Recipient: alice, Deadline: future(),
	})
	require.NoError(t, err)
	assert.ErrorIs(t, hooked.nestedErr, ErrReentrant)

	// The outer call's final state is as if the nested attempt never happened.
	assert.Equal(t, "1000", res.SharesMinted.String())
	view := l.PoolOf("TKA", "TKB")
	assert.Equal(t, "1000", view.ReserveX.String())
	assert.Equal(t, "4000", view.ReserveY.String())
	checkInvariants(t, l)

	// A nested provide during withdraw is rejected the same way.
	hooked.fired = false
	hooked.callback = func(ctx context.Context) error {
		_, err := l.Provide(ctx, ProvideParams{
			Caller: bob, AssetX: "TKA", AssetY: "TKB",
			AmountXDesired: big.NewInt(10), AmountYDesired: big.NewInt(40),
			Recipient: bob, Deadline: future(),
		})
		return err
	}

	_, err = l.Provide(context.Background(), ProvideParams{
		Caller: bob, AssetX: "TKA", AssetY: "TKB",
		AmountXDesired: big.NewInt(100), AmountYDesired: big.NewInt(9999),
		Recipient: bob, Deadline: future(),
	})
	require.NoError(t, err)
	assert.ErrorIs(t, hooked.nestedErr, ErrReentrant)
	checkInvariants(t, l)
}

func TestReadsAllowedDuringMutatingCall(t *testing.T) {
	reg := newTestRegistry(t)
	base, err := reg.Asset("TKA")
	require.NoError(t, err)

	hooked := &reentrantAsset{Asset: base}
	resolver := &hookResolver{base: reg, id: "TKA", hooked: hooked}
	l, err := NewLedger(LedgerDeps{Assets: resolver, Custody: testCustody, Logger: testLogger()})
	require.NoError(t, err)

	// Read-only calls are not latched and observe the pre-mutation snapshot.
	hooked.callback = func(ctx context.Context) error {
		view := l.PoolOf("TKA", "TKB")
		assert.Zero(t, view.TotalShares.Sign())
		_, err := l.PriceOf("TKA", "TKB")
		assert.ErrorIs(t, err, ErrZeroReserves)
		return nil
	}

	_, err = l.Provide(context.Background(), ProvideParams{
		Caller: alice, AssetX: "TKA", AssetY: "TKB",
		AmountXDesired: big.NewInt(1000), AmountYDesired: big.NewInt(1000),
		Recipient: alice, Deadline: future(),
	})
	require.NoError(t, err)
}

func TestNewLedgerRequiresResolver(t *testing.T) {
	_, err := NewLedger(LedgerDeps{})
	assert.Error(t, err)
}

func TestMintedSharesRecipient(t *testing.T) {
	l, _ := newTestLedger(t)

	// Caller and share recipient can differ.
	_, err := l.Provide(context.Background(), ProvideParams{
		Caller: alice, AssetX: "TKA", AssetY: "TKB",
		AmountXDesired: big.NewInt(700), AmountYDesired: big.NewInt(700),
		Recipient: bob, Deadline: future(),
	})
	require.NoError(t, err)

	assert.Equal(t, "700", l.SharesOf("TKA", "TKB", bob).String())
	assert.Zero(t, l.SharesOf("TKA", "TKB", alice).Sign())

	// And only the share owner can redeem them.
	_, err = l.Withdraw(context.Background(), WithdrawParams{
		Caller: alice, AssetX: "TKA", AssetY: "TKB",
		Shares:    big.NewInt(1),
		Recipient: alice, Deadline: future(),
	})
	assert.ErrorIs(t, err, ErrInsufficientShares)
}
