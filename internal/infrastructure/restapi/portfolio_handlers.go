package restapi

import (
	"math"
	"net/http"
	"time"

	"mixin_wallet/internal/app/port"
	"mixin_wallet/internal/domain/entity"

	"github.com/gin-gonic/gin"
)

// BalanceResponse is one valued balance. Non-finite numbers are rendered as null.
type BalanceResponse struct {
	AssetID    string               `json:"asset_id"`
	Balance    *float64             `json:"balance"`
	USDBalance *float64             `json:"usdBalance"`
	Details    *entity.AssetDetails `json:"details,omitempty"`
}

// PortfolioResponse is the JSON form of a snapshot.
type PortfolioResponse struct {
	Balances        []BalanceResponse `json:"balances"`
	TotalUSDBalance *float64          `json:"totalUSDBalance"`
	TotalBTCBalance *float64          `json:"totalBTCBalance"`
	RefreshedAt     time.Time         `json:"refreshedAt"`
}

func newPortfolioResponse(s *entity.PortfolioSnapshot) PortfolioResponse {
	resp := PortfolioResponse{
		Balances:        make([]BalanceResponse, 0, len(s.Balances)),
		TotalUSDBalance: finite(s.TotalUSDBalance),
		TotalBTCBalance: finite(s.TotalBTCBalance),
		RefreshedAt:     s.RefreshedAt,
	}
	for _, b := range s.Balances {
		resp.Balances = append(resp.Balances, BalanceResponse{
			AssetID:    b.AssetID,
			Balance:    finite(b.Balance),
			USDBalance: finite(b.USDBalance),
			Details:    b.Details,
		})
	}
	return resp
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// PortfolioHandler serves the portfolio and asset endpoints.
type PortfolioHandler struct {
	portfolio port.PortfolioService
	session   port.SessionService
	prices    port.PriceCacheService
	logger    port.Logger
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(
	portfolio port.PortfolioService,
	session port.SessionService,
	prices port.PriceCacheService,
	l port.Logger,
) *PortfolioHandler {
	return &PortfolioHandler{portfolio: portfolio, session: session, prices: prices, logger: l}
}

// GetPortfolioHandler returns the last published snapshot.
func (h *PortfolioHandler) GetPortfolioHandler(c *gin.Context) {
	snapshot := h.portfolio.Snapshot()
	if snapshot == nil {
		c.AbortWithStatusJSON(http.StatusNotFound, ErrorResponse{Error: "no portfolio snapshot has been published yet"})
		return
	}
	c.JSON(http.StatusOK, newPortfolioResponse(snapshot))
}

// RefreshPortfolioHandler refreshes balances for the connected user and returns the
// new snapshot.
func (h *PortfolioHandler) RefreshPortfolioHandler(c *gin.Context) {
	userID, token, ok := h.session.Credentials()
	if !ok {
		abortWithError(c, entity.ErrNotConnected)
		return
	}
	snapshot, err := h.portfolio.RefreshBalances(c.Request.Context(), userID, token)
	if err != nil {
		h.logger.Error("Portfolio refresh failed", "user_id", userID, "error", err)
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPortfolioResponse(snapshot))
}

// GetPriceCacheHandler returns the whole price cache keyed by asset id.
func (h *PortfolioHandler) GetPriceCacheHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.prices.Cache())
}

// GetAssetHandler resolves one asset, falling back to the provider on a cache miss.
func (h *PortfolioHandler) GetAssetHandler(c *gin.Context) {
	assetID := c.Param("assetID")
	details, err := h.prices.Lookup(c.Request.Context(), assetID, h.prices.Cache())
	if err != nil {
		h.logger.Warn("Asset lookup failed", "asset_id", assetID, "error", err)
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}
