package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/atharvakonge/tradedesk/internal/chat"
	"github.com/atharvakonge/tradedesk/internal/config"
	"github.com/atharvakonge/tradedesk/internal/db"
	"github.com/atharvakonge/tradedesk/internal/handlers"
	"github.com/atharvakonge/tradedesk/internal/logger"
	"github.com/atharvakonge/tradedesk/internal/market"
	"github.com/atharvakonge/tradedesk/internal/profile"
	"github.com/atharvakonge/tradedesk/internal/tutorials"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults or environment variables")
	}

	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.NewLogger(cfg.Logger.Level, cfg.Logger.Format)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	// Initialize database
	store, err := db.Open(cfg.Database)
	if err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer store.Close()
	zlog.Info("Database connected", zap.String("driver", cfg.Database.Driver))

	// Initialize profile processor
	processor := profile.NewProcessor(zlog, store, cfg.Portfolio.Workers)
	processor.Start()
	defer processor.Stop()
	profiles := profile.NewService(zlog, store, processor)

	feed, err := market.NewFeed(zlog, market.DefaultInstruments, market.Options{
		Latency:     cfg.Market.Latency,
		FailureRate: cfg.Market.FailureRate,
		CacheTTL:    cfg.Market.CacheTTL,
	}, nil)
	if err != nil {
		zlog.Fatal("Failed to create market feed", zap.Error(err))
	}
	defer feed.Close()

	bookmarks := tutorials.NewBookmarks(tutorials.Catalog)
	sessions := chat.NewSessions(zlog, chat.NewResponder(chat.DefaultRules, chat.Fallback), cfg.Chat.ReplyDelay)

	// Set Gin mode based on config
	gin.SetMode(cfg.Server.Mode)

	api := handlers.NewAPI(zlog, profiles, feed, tutorials.Catalog, bookmarks, sessions, handlers.Options{
		CORSOrigin:   cfg.Server.CORSOrigin,
		TickInterval: cfg.Portfolio.TickInterval,
		FeedInterval: cfg.Market.FeedInterval,
	})

	srv := &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.Server.Port),
		Handler: api.Router(),
	}

	go func() {
		zlog.Info("Server starting", zap.String("addr", "http://localhost"+srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("Server forced to shutdown", zap.Error(err))
	}
	zlog.Info("Server exiting")
}
