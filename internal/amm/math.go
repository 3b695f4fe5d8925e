package amm

import "math/big"

// PriceScale is the fixed-point scale applied by PriceOf: prices are
// reported as reserveX * PriceScale / reserveY, i.e. 1e18 means parity.
// Treat the returned value as read-only.
var PriceScale = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

// Quote computes the exact-input output amount for a constant-product pool:
//
//	floor(amountIn * reserveOut / (reserveIn + amountIn))
//
// No fee is deducted. The function is pure and deterministic; it reads no
// ledger state and callers may use it to estimate swap output against any
// reserve snapshot.
//
// Returns ErrZeroInput when amountIn is not strictly positive and
// ErrBadReserves when either reserve is not strictly positive, regardless
// of amountIn. For any positive input the result is strictly less than
// reserveOut, so a quote can never drain a pool.
func Quote(amountIn, reserveIn, reserveOut *big.Int) (*big.Int, error) {
	if amountIn == nil || amountIn.Sign() <= 0 {
		return nil, ErrZeroInput
	}
	if reserveIn == nil || reserveIn.Sign() <= 0 || reserveOut == nil || reserveOut.Sign() <= 0 {
		return nil, ErrBadReserves
	}

	numerator := new(big.Int).Mul(amountIn, reserveOut)
	denominator := new(big.Int).Add(reserveIn, amountIn)
	return numerator.Div(numerator, denominator), nil
}

// mulDiv returns floor(a * b / c). The caller guarantees c > 0.
func mulDiv(a, b, c *big.Int) *big.Int {
	out := new(big.Int).Mul(a, b)
	return out.Div(out, c)
}
