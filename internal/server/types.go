package server

// ErrorResponse represents a standardized error response format
type ErrorResponse struct {
	Error   string `json:"error"`             // Human-readable error message
	Code    int    `json:"code"`              // HTTP status code
	Details any    `json:"details,omitempty"` // Additional error details (dev mode only)
}

// HealthResponse represents the health check response
type HealthResponse struct {
	OK bool `json:"ok"` // Service health status
}

// ProvideRequest adds paired liquidity to an ordered pool. Amounts are
// decimal strings; Deadline is unix seconds.
type ProvideRequest struct {
	Caller         string `json:"caller"`
	AssetX         string `json:"assetX"`
	AssetY         string `json:"assetY"`
	AmountXDesired string `json:"amountXDesired"`
	AmountYDesired string `json:"amountYDesired"`
	AmountXMin     string `json:"amountXMin,omitempty"`
	AmountYMin     string `json:"amountYMin,omitempty"`
	Recipient      string `json:"recipient"`
	Deadline       int64  `json:"deadline"`
}

// ProvideResponse reports credited contributions and minted shares.
type ProvideResponse struct {
	UsedX        string `json:"usedX"`
	UsedY        string `json:"usedY"`
	SharesMinted string `json:"sharesMinted"`
}

// WithdrawRequest redeems shares from an ordered pool.
type WithdrawRequest struct {
	Caller     string `json:"caller"`
	AssetX     string `json:"assetX"`
	AssetY     string `json:"assetY"`
	Shares     string `json:"shares"`
	AmountXMin string `json:"amountXMin,omitempty"`
	AmountYMin string `json:"amountYMin,omitempty"`
	Recipient  string `json:"recipient"`
	Deadline   int64  `json:"deadline"`
}

// WithdrawResponse reports the amounts paid out.
type WithdrawResponse struct {
	ReturnedX string `json:"returnedX"`
	ReturnedY string `json:"returnedY"`
}

// SwapRequest exchanges an exact input along a two-asset path.
type SwapRequest struct {
	Caller       string   `json:"caller"`
	AmountIn     string   `json:"amountIn"`
	AmountOutMin string   `json:"amountOutMin,omitempty"`
	Path         []string `json:"path"`
	Recipient    string   `json:"recipient"`
	Deadline     int64    `json:"deadline"`
}

// SwapResponse reports the executed amounts.
type SwapResponse struct {
	AmountIn  string `json:"amountIn"`
	AmountOut string `json:"amountOut"`
}

// QuoteResponse is the pure constant-product estimate.
type QuoteResponse struct {
	AmountOut string `json:"amountOut"`
}

// PriceResponse is the fixed-point pool price (1e18 scale).
type PriceResponse struct {
	AssetX string `json:"assetX"`
	AssetY string `json:"assetY"`
	Price  string `json:"price"`
}

// PoolResponse is a snapshot of one ordered pool's accounting fields.
type PoolResponse struct {
	AssetX      string `json:"assetX"`
	AssetY      string `json:"assetY"`
	TotalShares string `json:"totalShares"`
	ReserveX    string `json:"reserveX"`
	ReserveY    string `json:"reserveY"`
}

// PairPriceResponse is the cached last execution price for a pair.
type PairPriceResponse struct {
	Pair  string  `json:"pair"`
	Price float64 `json:"price"`
}

// MintRequest credits units on an in-memory asset ledger (dev mode only).
type MintRequest struct {
	Account string `json:"account"`
	Amount  string `json:"amount"`
}

// ApproveRequest grants the custody account a pull allowance (dev mode only).
type ApproveRequest struct {
	Owner  string `json:"owner"`
	Amount string `json:"amount"`
}

// BalanceResponse reports an account's holdings of one asset.
type BalanceResponse struct {
	Asset     string `json:"asset"`
	Account   string `json:"account"`
	Balance   string `json:"balance"`
	Allowance string `json:"allowance"` // remaining grant toward the custody account
}
