package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Muneerali199/website-builder/api/rest/health"
	"github.com/Muneerali199/website-builder/internal/auth"
	"github.com/Muneerali199/website-builder/internal/config"
	"github.com/Muneerali199/website-builder/internal/logger"
	"github.com/Muneerali199/website-builder/internal/tracing"
)

// @title Website Builder API
// @version 1.0
// @description Prompt submission and usage tracking for the website builder
// @description
// @description Features:
// @description - Free tier prompt quota with upgrade redirect
// @description - OAuth authentication (Google, GitHub, Apple)
// @description - Anonymous sessions with local usage records
// @description - Live usage feed over WebSockets

// @contact.name API Support
// @contact.url https://github.com/Muneerali199/website-builder

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authenticated requests. Format: Bearer {token}

func main() {
	logger.Info("starting website builder server")

	// load configuration from environment
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	shutdownTracing, err := tracing.Init(context.Background(), tracing.Config{
		ServiceName: health.ServiceName,
		Endpoint:    cfg.OTELEndpoint,
		SampleRate:  cfg.OTELSampleRate,
	})
	if err != nil {
		logger.Fatal("failed to initialize tracing", "error", err)
	}

	// initialize OAuth providers
	providers, err := auth.InitializeProviders(cfg.SessionSecret, cfg.BaseURL)
	if err != nil {
		logger.Fatal("failed to initialize OAuth providers", "error", err)
	}

	logger.Info("oauth providers enabled", "providers", providers)

	// create server with all dependencies
	srv, err := NewServer(cfg, providers)
	if err != nil {
		logger.Fatal("failed to create server", "error", err)
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      srv.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// start server in goroutine
	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed to start", "error", err)
		}
	}()

	// start websocket hub
	go srv.hub.Run()

	// wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	// notify websocket clients and close connections first
	srv.hub.Shutdown()

	// graceful shutdown with 10 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	srv.stopSessions()
	closeRedis(srv.redis)

	// close database connection
	srv.db.Close()

	if err := shutdownTracing(ctx); err != nil {
		logger.Error("failed to flush traces", "error", err)
	}

	logger.Info("server stopped")
}
