package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/atharvakonge/tradedesk/internal/chat"
	"github.com/atharvakonge/tradedesk/internal/market"
	"github.com/atharvakonge/tradedesk/internal/profile"
	"github.com/atharvakonge/tradedesk/internal/tutorials"
)

// Options carries the HTTP-facing settings.
type Options struct {
	CORSOrigin   string
	TickInterval time.Duration // portfolio value push interval
	FeedInterval time.Duration // F&O snapshot push interval
}

// API holds dependencies for every endpoint.
type API struct {
	logger    *zap.Logger
	profiles  *profile.Service
	feed      *market.Feed
	catalog   []tutorials.Tutorial
	bookmarks *tutorials.Bookmarks
	sessions  *chat.Sessions
	opts      Options
}

// NewAPI creates the API.
func NewAPI(
	logger *zap.Logger,
	profiles *profile.Service,
	feed *market.Feed,
	catalog []tutorials.Tutorial,
	bookmarks *tutorials.Bookmarks,
	sessions *chat.Sessions,
	opts Options,
) *API {
	if opts.TickInterval <= 0 {
		opts.TickInterval = 10 * time.Second
	}
	if opts.FeedInterval <= 0 {
		opts.FeedInterval = 5 * time.Second
	}
	return &API{
		logger:    logger,
		profiles:  profiles,
		feed:      feed,
		catalog:   catalog,
		bookmarks: bookmarks,
		sessions:  sessions,
		opts:      opts,
	}
}

// Router wires every route plus logging, recovery and CORS middleware.
func (a *API) Router() *gin.Engine {
	router := gin.New()
	// Match on the escaped path so usernames may contain "/".
	router.UseRawPath = true
	router.Use(a.requestLogger(), gin.Recovery(), cors(a.opts.CORSOrigin))

	api := router.Group("/api")
	{
		// Profile endpoints
		api.POST("/profiles", a.CreateProfile)
		api.GET("/profiles/:username", a.GetProfile)
		api.PUT("/profiles/:username", a.SaveProfile)
		api.DELETE("/profiles/:username", a.DeleteProfile)
		api.POST("/profiles/:username/funds", a.AddFunds)
		api.POST("/profiles/:username/trades", a.RecordTrade)
		api.GET("/profiles/:username/stats", a.GetStats)
		api.GET("/profiles/:username/export", a.ExportHistory)

		// F&O board
		api.GET("/fno", a.GetMovers)
		api.POST("/fno/refresh", a.RefreshMovers)

		// Tutorials
		api.GET("/tutorials", a.ListTutorials)
		api.GET("/tutorials/bookmarks/:user", a.ListBookmarks)
		api.POST("/tutorials/bookmarks/:user/:id", a.ToggleBookmark)

		// Assistant
		api.POST("/chat", a.SendChat)
		api.GET("/chat/:session", a.GetChat)
	}

	// WebSocket endpoints
	router.GET("/ws/portfolio/:username", a.PortfolioSocket)
	router.GET("/ws/fno", a.MarketSocket)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	return router
}

func (a *API) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		a.logger.Info("http_request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.String("ip", c.ClientIP()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func cors(origin string) gin.HandlerFunc {
	if origin == "" {
		origin = "*"
	}
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Vary", "Origin")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
