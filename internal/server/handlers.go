package server

import (
	"errors"
	"math/big"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/aman-zulfiqar/amm-pool-ledger/internal/amm"
	"github.com/aman-zulfiqar/amm-pool-ledger/internal/assets"
	"github.com/aman-zulfiqar/amm-pool-ledger/internal/storage"
)

// Handlers contains all dependencies for API endpoint handlers
type Handlers struct {
	Ledger   *amm.Ledger         // pool ledger core
	Registry *assets.Registry    // in-memory asset ledgers (dev faucet)
	Cache    storage.EventCache  // optional: recent events and price feed
	Custody  string              // custody account (allowance target)
	DevMode  bool                // enable detailed error responses and faucet
	Logger   *logrus.Logger      // structured logger
}

// err returns a standardized JSON error response
// In dev mode, includes additional error details for debugging
func (h *Handlers) err(c echo.Context, code int, msg string, details any) error {
	resp := ErrorResponse{Error: msg, Code: code}
	if h.DevMode && details != nil {
		resp.Details = details
	}
	return c.JSON(code, resp)
}

// ledgerErr maps a ledger failure to its HTTP status with the sentinel
// condition as the message.
func (h *Handlers) ledgerErr(c echo.Context, err error) error {
	code := http.StatusBadRequest
	switch {
	case errors.Is(err, amm.ErrReentrant):
		code = http.StatusConflict
	case errors.Is(err, assets.ErrUnknownAsset):
		code = http.StatusNotFound
	case errors.Is(err, amm.ErrInsufficientShares),
		errors.Is(err, assets.ErrInsufficientFunds),
		errors.Is(err, assets.ErrInsufficientAllowance):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, amm.ErrExpired),
		errors.Is(err, amm.ErrIdenticalAssets),
		errors.Is(err, amm.ErrInvalidAmount),
		errors.Is(err, amm.ErrInvalidPath),
		errors.Is(err, amm.ErrZeroInput),
		errors.Is(err, amm.ErrZeroLiquidity),
		errors.Is(err, amm.ErrBadReserves),
		errors.Is(err, amm.ErrZeroReserves),
		errors.Is(err, amm.ErrSlippage):
		code = http.StatusBadRequest
	default:
		code = http.StatusInternalServerError
	}
	return h.err(c, code, err.Error(), nil)
}

// parseAmount parses a required non-negative decimal string.
func parseAmount(s string) (*big.Int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return nil, false
	}
	return v, true
}

// parseOptAmount parses an optional minimum; empty means no bound.
func parseOptAmount(s string) (*big.Int, bool) {
	if strings.TrimSpace(s) == "" {
		return nil, true
	}
	return parseAmount(s)
}

// Health returns a simple health check endpoint
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{OK: true})
}

// Provide adds paired liquidity to an ordered pool
func (h *Handlers) Provide(c echo.Context) error {
	var req ProvideRequest
	if err := c.Bind(&req); err != nil {
		return h.err(c, http.StatusBadRequest, "invalid json", nil)
	}

	amountX, okX := parseAmount(req.AmountXDesired)
	amountY, okY := parseAmount(req.AmountYDesired)
	minX, okMinX := parseOptAmount(req.AmountXMin)
	minY, okMinY := parseOptAmount(req.AmountYMin)
	if !okX || !okY || !okMinX || !okMinY {
		return h.err(c, http.StatusBadRequest, "invalid amount", map[string]any{"amounts": "must be non-negative decimal strings"})
	}

	res, err := h.Ledger.Provide(c.Request().Context(), amm.ProvideParams{
		Caller:         req.Caller,
		AssetX:         req.AssetX,
		AssetY:         req.AssetY,
		AmountXDesired: amountX,
		AmountYDesired: amountY,
		AmountXMin:     minX,
		AmountYMin:     minY,
		Recipient:      req.Recipient,
		Deadline:       time.Unix(req.Deadline, 0),
	})
	if err != nil {
		return h.ledgerErr(c, err)
	}

	return c.JSON(http.StatusOK, ProvideResponse{
		UsedX:        res.UsedX.String(),
		UsedY:        res.UsedY.String(),
		SharesMinted: res.SharesMinted.String(),
	})
}

// Withdraw redeems liquidity shares from an ordered pool
func (h *Handlers) Withdraw(c echo.Context) error {
	var req WithdrawRequest
	if err := c.Bind(&req); err != nil {
		return h.err(c, http.StatusBadRequest, "invalid json", nil)
	}

	shares, okS := parseAmount(req.Shares)
	minX, okMinX := parseOptAmount(req.AmountXMin)
	minY, okMinY := parseOptAmount(req.AmountYMin)
	if !okS || !okMinX || !okMinY {
		return h.err(c, http.StatusBadRequest, "invalid amount", map[string]any{"amounts": "must be non-negative decimal strings"})
	}

	res, err := h.Ledger.Withdraw(c.Request().Context(), amm.WithdrawParams{
		Caller:     req.Caller,
		AssetX:     req.AssetX,
		AssetY:     req.AssetY,
		Shares:     shares,
		AmountXMin: minX,
		AmountYMin: minY,
		Recipient:  req.Recipient,
		Deadline:   time.Unix(req.Deadline, 0),
	})
	if err != nil {
		return h.ledgerErr(c, err)
	}

	return c.JSON(http.StatusOK, WithdrawResponse{
		ReturnedX: res.ReturnedX.String(),
		ReturnedY: res.ReturnedY.String(),
	})
}

// Swap exchanges an exact input along a two-asset path
func (h *Handlers) Swap(c echo.Context) error {
	var req SwapRequest
	if err := c.Bind(&req); err != nil {
		return h.err(c, http.StatusBadRequest, "invalid json", nil)
	}

	amountIn, okIn := parseAmount(req.AmountIn)
	outMin, okMin := parseOptAmount(req.AmountOutMin)
	if !okIn || !okMin {
		return h.err(c, http.StatusBadRequest, "invalid amount", map[string]any{"amounts": "must be non-negative decimal strings"})
	}

	res, err := h.Ledger.Swap(c.Request().Context(), amm.SwapParams{
		Caller:       req.Caller,
		AmountIn:     amountIn,
		AmountOutMin: outMin,
		Path:         req.Path,
		Recipient:    req.Recipient,
		Deadline:     time.Unix(req.Deadline, 0),
	})
	if err != nil {
		return h.ledgerErr(c, err)
	}

	return c.JSON(http.StatusOK, SwapResponse{
		AmountIn:  res.AmountIn.String(),
		AmountOut: res.AmountOut.String(),
	})
}

// Quote returns the pure constant-product estimate for explicit reserves
// Query parameters: amountIn, reserveIn, reserveOut (decimal strings)
func (h *Handlers) Quote(c echo.Context) error {
	amountIn, okA := parseAmount(c.QueryParam("amountIn"))
	reserveIn, okI := parseAmount(c.QueryParam("reserveIn"))
	reserveOut, okO := parseAmount(c.QueryParam("reserveOut"))
	if !okA || !okI || !okO {
		return h.err(c, http.StatusBadRequest, "invalid amount", map[string]any{"params": "amountIn, reserveIn, reserveOut required"})
	}

	out, err := amm.Quote(amountIn, reserveIn, reserveOut)
	if err != nil {
		return h.ledgerErr(c, err)
	}
	return c.JSON(http.StatusOK, QuoteResponse{AmountOut: out.String()})
}

// Price returns the fixed-point pool price for the ordered pair
func (h *Handlers) Price(c echo.Context) error {
	assetX := strings.TrimSpace(c.QueryParam("assetX"))
	assetY := strings.TrimSpace(c.QueryParam("assetY"))
	if assetX == "" || assetY == "" {
		return h.err(c, http.StatusBadRequest, "invalid pair", map[string]any{"params": "assetX and assetY required"})
	}

	price, err := h.Ledger.PriceOf(assetX, assetY)
	if err != nil {
		return h.ledgerErr(c, err)
	}
	return c.JSON(http.StatusOK, PriceResponse{AssetX: assetX, AssetY: assetY, Price: price.String()})
}

// Pool returns the ordered pool's accounting snapshot
func (h *Handlers) Pool(c echo.Context) error {
	assetX := strings.TrimSpace(c.QueryParam("assetX"))
	assetY := strings.TrimSpace(c.QueryParam("assetY"))
	if assetX == "" || assetY == "" {
		return h.err(c, http.StatusBadRequest, "invalid pair", map[string]any{"params": "assetX and assetY required"})
	}

	view := h.Ledger.PoolOf(assetX, assetY)
	return c.JSON(http.StatusOK, PoolResponse{
		AssetX:      assetX,
		AssetY:      assetY,
		TotalShares: view.TotalShares.String(),
		ReserveX:    view.ReserveX.String(),
		ReserveY:    view.ReserveY.String(),
	})
}

// RecentEvents returns the most recent pool events with optional limit parameter
// Accepts limit query parameter (default: 100, range: 1-200)
func (h *Handlers) RecentEvents(c echo.Context) error {
	if h.Cache == nil {
		return h.err(c, http.StatusBadRequest, "event cache is not configured", nil)
	}

	limitStr := c.QueryParam("limit")
	limit := 100
	if limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil {
			return h.err(c, http.StatusBadRequest, "invalid limit", map[string]any{"limit": "must be an integer"})
		}
		limit = n
	}
	if limit < 1 || limit > 200 {
		return h.err(c, http.StatusBadRequest, "invalid limit", map[string]any{"limit": "min 1 max 200"})
	}

	items, err := h.Cache.GetRecentEvents(c.Request().Context(), int64(limit))
	if err != nil {
		return h.err(c, http.StatusInternalServerError, "failed to get events", nil)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": items})
}

// PairPrice returns the cached last execution price for a pair
// Query parameter: pair (e.g. "TKA/TKB")
func (h *Handlers) PairPrice(c echo.Context) error {
	if h.Cache == nil {
		return h.err(c, http.StatusBadRequest, "event cache is not configured", nil)
	}

	pair := strings.TrimSpace(c.QueryParam("pair"))
	if pair == "" {
		return h.err(c, http.StatusBadRequest, "invalid pair", map[string]any{"pair": "required"})
	}

	price, err := h.Cache.GetPrice(c.Request().Context(), pair)
	if err != nil {
		return h.err(c, http.StatusInternalServerError, "failed to get price", nil)
	}
	return c.JSON(http.StatusOK, PairPriceResponse{Pair: pair, Price: price})
}

// Mint credits units on an in-memory asset ledger (dev mode only)
func (h *Handlers) Mint(c echo.Context) error {
	token := h.Registry.Token(c.Param("asset"))
	if token == nil {
		return h.err(c, http.StatusNotFound, "unknown asset", nil)
	}

	var req MintRequest
	if err := c.Bind(&req); err != nil {
		return h.err(c, http.StatusBadRequest, "invalid json", nil)
	}
	amount, ok := parseAmount(req.Amount)
	if !ok || req.Account == "" {
		return h.err(c, http.StatusBadRequest, "invalid mint request", nil)
	}

	token.Mint(req.Account, amount)
	return h.balanceResponse(c, token, c.Param("asset"), req.Account)
}

// Approve grants the custody account a pull allowance (dev mode only)
func (h *Handlers) Approve(c echo.Context) error {
	token := h.Registry.Token(c.Param("asset"))
	if token == nil {
		return h.err(c, http.StatusNotFound, "unknown asset", nil)
	}

	var req ApproveRequest
	if err := c.Bind(&req); err != nil {
		return h.err(c, http.StatusBadRequest, "invalid json", nil)
	}
	amount, ok := parseAmount(req.Amount)
	if !ok || req.Owner == "" {
		return h.err(c, http.StatusBadRequest, "invalid approve request", nil)
	}

	token.Approve(req.Owner, h.Custody, amount)
	return h.balanceResponse(c, token, c.Param("asset"), req.Owner)
}

// Balance reports an account's balance and custody allowance for one asset
func (h *Handlers) Balance(c echo.Context) error {
	token := h.Registry.Token(c.Param("asset"))
	if token == nil {
		return h.err(c, http.StatusNotFound, "unknown asset", nil)
	}
	account := strings.TrimSpace(c.QueryParam("account"))
	if account == "" {
		return h.err(c, http.StatusBadRequest, "invalid account", map[string]any{"account": "required"})
	}
	return h.balanceResponse(c, token, c.Param("asset"), account)
}

func (h *Handlers) balanceResponse(c echo.Context, token *assets.Token, asset, account string) error {
	ctx := c.Request().Context()
	balance, err := token.BalanceOf(ctx, account)
	if err != nil {
		return h.err(c, http.StatusInternalServerError, "failed to read balance", nil)
	}
	allowance, err := token.AllowanceOf(ctx, account, h.Custody)
	if err != nil {
		return h.err(c, http.StatusInternalServerError, "failed to read allowance", nil)
	}
	return c.JSON(http.StatusOK, BalanceResponse{
		Asset:     asset,
		Account:   account,
		Balance:   balance.String(),
		Allowance: allowance.String(),
	})
}
