package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/atharvakonge/tradedesk/internal/market"
)

const msgFetchFailed = "Failed to fetch stock data. Please try again."

// GetMovers handles GET /api/fno: the cached board, or a fresh one when
// nothing is cached.
func (a *API) GetMovers(c *gin.Context) {
	a.writeSnapshot(c, a.feed.Latest)
}

// RefreshMovers handles POST /api/fno/refresh and always rolls a new board.
func (a *API) RefreshMovers(c *gin.Context) {
	a.writeSnapshot(c, a.feed.Refresh)
}

func (a *API) writeSnapshot(c *gin.Context, fetch func(context.Context) (market.Snapshot, error)) {
	snap, err := fetch(c.Request.Context())
	switch {
	case errors.Is(err, market.ErrFetchFailed):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": msgFetchFailed, "retry": "/api/fno/refresh"})
	case err != nil:
		a.logger.Warn("Market fetch aborted", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": msgFetchFailed})
	default:
		c.JSON(http.StatusOK, snap)
	}
}
