package amm

import "errors"

// Failure conditions for ledger calls. Every rejected operation fails with
// exactly one of these and leaves the pool records untouched; retry policy
// (e.g. resubmitting with looser minimums) belongs to the caller.
var (
	// ErrExpired is returned when the operation deadline has already passed.
	ErrExpired = errors.New("deadline expired")

	// ErrIdenticalAssets is returned when a deposit names the same asset twice.
	ErrIdenticalAssets = errors.New("identical assets")

	// ErrInvalidAmount is returned when a required deposit amount is zero or negative.
	ErrInvalidAmount = errors.New("deposit amount must be positive")

	// ErrInvalidPath is returned when a swap path does not contain exactly two assets.
	ErrInvalidPath = errors.New("swap path must contain exactly two assets")

	// ErrZeroInput is returned when a swap or quote input amount is zero or negative.
	ErrZeroInput = errors.New("input amount must be positive")

	// ErrZeroLiquidity is returned when a withdrawal requests zero shares.
	ErrZeroLiquidity = errors.New("shares must be positive")

	// ErrInsufficientShares is returned when the caller's share balance is
	// smaller than the requested withdrawal.
	ErrInsufficientShares = errors.New("insufficient share balance")

	// ErrBadReserves is returned when a quote is attempted against a zero reserve.
	ErrBadReserves = errors.New("quote requires positive reserves")

	// ErrZeroReserves is returned when a price query hits a pool with a zero reserve.
	ErrZeroReserves = errors.New("price requires positive reserves")

	// ErrSlippage is returned when a computed amount violates a caller-supplied
	// minimum bound.
	ErrSlippage = errors.New("amount below minimum bound")

	// ErrReentrant is returned when a mutating call is attempted while another
	// mutating call is still in flight.
	ErrReentrant = errors.New("reentrant call rejected")
)
