package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/atharvakonge/tradedesk/internal/stats"
)

// PortfolioUpdate is one push of the live portfolio value.
type PortfolioUpdate struct {
	Username       string    `json:"username"`
	PortfolioValue float64   `json:"portfolio_value"`
	BaseValue      float64   `json:"base_value"`
	Timestamp      time.Time `json:"timestamp"`
}

// WebSocket upgrader
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins (for development and demo)
	},
}

// PortfolioSocket handles /ws/portfolio/:username. Every tick it recomputes
// the portfolio value from the current trade history and pushes it with a
// small random perturbation.
func (a *API) PortfolioSocket(c *gin.Context) {
	username := c.Param("username")
	if _, err := a.profiles.Get(c.Request.Context(), username); err != nil {
		a.profileError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		a.logger.Warn("WebSocket upgrade error", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx := watchClose(c.Request.Context(), conn)
	a.logger.Info("Client connected to portfolio feed", zap.String("user", username))

	push := func(jitter bool) error {
		view, err := a.profiles.Get(ctx, username)
		if err != nil {
			return err
		}
		base := stats.PortfolioValue(view.Profile.TradeHistory)
		value := base
		if jitter {
			value = a.feed.Jitter(base)
		}
		return conn.WriteJSON(PortfolioUpdate{
			Username:       username,
			PortfolioValue: value,
			BaseValue:      base,
			Timestamp:      time.Now(),
		})
	}

	if err := push(false); err != nil {
		a.logger.Warn("Portfolio feed write error", zap.Error(err))
		return
	}

	ticker := time.NewTicker(a.opts.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("Portfolio feed closed", zap.String("user", username))
			return
		case <-ticker.C:
			if err := push(true); err != nil {
				a.logger.Warn("Portfolio feed write error", zap.Error(err))
				return
			}
		}
	}
}

// MarketSocket handles /ws/fno, pushing a freshly rolled board every
// interval. Simulated failures are pushed as {"error": ...} frames so the
// client can show them and keep listening.
func (a *API) MarketSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		a.logger.Warn("WebSocket upgrade error", zap.Error(err))
		return
	}
	defer conn.Close()

	ctx := watchClose(c.Request.Context(), conn)
	a.logger.Info("Client connected to F&O feed")

	ticker := time.NewTicker(a.opts.FeedInterval)
	defer ticker.Stop()

	for {
		snap, err := a.feed.Refresh(ctx)
		if ctx.Err() != nil {
			return
		}
		var frame interface{} = snap
		if err != nil {
			frame = gin.H{"error": msgFetchFailed}
		}
		if err := conn.WriteJSON(frame); err != nil {
			a.logger.Warn("F&O feed write error", zap.Error(err))
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// watchClose returns a context cancelled once the peer goes away. The read
// loop also services control frames (ping/close).
func watchClose(parent context.Context, conn *websocket.Conn) context.Context {
	ctx, cancel := context.WithCancel(parent)
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
	return ctx
}
