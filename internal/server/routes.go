package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// RegisterRoutes configures all API routes, middleware, and error handlers
func RegisterRoutes(e *echo.Echo, h *Handlers, cfg ServerConfig) {
	// Set custom error handler for consistent JSON responses
	e.HTTPErrorHandler = NotFoundJSON()

	// Apply global middleware
	e.Use(SetJSONContentType) // Ensure all responses are JSON
	e.Use(SetNoCacheHeaders)  // Prevent caching of API responses

	// Optional API key authentication
	if cfg.APIKey != "" {
		e.Use(middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
			KeyLookup: "header:X-API-Key",
			Validator: func(key string, c echo.Context) (bool, error) {
				return key == cfg.APIKey, nil
			},
		}))
	}

	// API v1 routes
	v1 := e.Group("/v1")
	v1.GET("/health", h.Health)              // Health check endpoint
	v1.GET("/quote", h.Quote)                // Pure constant-product estimate
	v1.GET("/pools/price", h.Price)          // Fixed-point pool price
	v1.GET("/pools/inspect", h.Pool)         // Pool accounting snapshot
	v1.GET("/events/recent", h.RecentEvents) // Recent pool events (cache-backed)
	v1.GET("/prices", h.PairPrice)           // Last execution price (cache-backed)

	// Mutating pool operations with rate limiting
	pools := v1.Group("/pools")
	pools.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(20), // 20 operations per second per client
		Burst:     40,             // Allow burst of 40 operations
		ExpiresIn: 2 * time.Minute,
	})))
	pools.POST("/provide", h.Provide)   // Add liquidity
	pools.POST("/withdraw", h.Withdraw) // Remove liquidity
	pools.POST("/swap", h.Swap)         // Exact-input exchange

	// Dev-mode asset faucet and inspection
	if cfg.DevMode {
		devAssets := v1.Group("/assets")
		devAssets.POST("/:asset/mint", h.Mint)       // Credit units
		devAssets.POST("/:asset/approve", h.Approve) // Grant custody allowance
		devAssets.GET("/:asset/balance", h.Balance)  // Balance and allowance
	}

	// Catch-all route for 404 responses
	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found", Code: http.StatusNotFound})
	})
}
