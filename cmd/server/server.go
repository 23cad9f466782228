package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/Muneerali199/website-builder/boltnewer/anonsessions"
	"github.com/Muneerali199/website-builder/boltnewer/users"
	"github.com/Muneerali199/website-builder/internal/config"
	"github.com/Muneerali199/website-builder/internal/logger"
	"github.com/Muneerali199/website-builder/internal/notifications"
	"github.com/Muneerali199/website-builder/internal/ratelimit"
	"github.com/Muneerali199/website-builder/internal/usage"
	ws "github.com/Muneerali199/website-builder/internal/websocket"
)

const (
	// prefix for rate limit counters kept in redis
	promptLimitPrefix = "limiter:prompts"

	schemaTimeout = 30 * time.Second
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config, providers []string) (*Server, error) {
	ctx := context.Background()

	db, err := openDatabase(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	userRepo := users.NewRepository(db)
	notificationService := notifications.New(db)

	schemaCtx, cancel := context.WithTimeout(ctx, schemaTimeout)
	defer cancel()

	if err := userRepo.EnsureSchema(schemaCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare users schema: %w", err)
	}

	if err := notificationService.EnsureSchema(schemaCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare notifications schema: %w", err)
	}

	redisClient, err := openRedis(ctx, cfg.RedisURL)
	if err != nil {
		db.Close()
		return nil, err
	}

	// anonymous usage lives in redis when available so it survives restarts,
	// otherwise in process memory
	var (
		sessions     usage.SessionIssuer
		locals       usage.LocalSource
		stopSessions = func() {}
	)

	if redisClient != nil {
		redisLocal := usage.NewRedisLocal(redisClient)
		sessions = redisLocal
		locals = redisLocal.Source()
		logger.Info("anonymous usage stored in redis")
	} else {
		mgr := anonsessions.NewManager()
		sessions = mgr
		locals = mgr.LocalSource()
		stopSessions = mgr.Stop
		logger.Info("anonymous usage stored in memory")
	}

	promptLimit, err := ratelimit.Middleware(cfg.PromptRateLimit, promptLimitPrefix, redisClient)
	if err != nil {
		stopSessions()
		closeRedis(redisClient)
		db.Close()
		return nil, fmt.Errorf("failed to configure prompt rate limit: %w", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	server := &Server{
		db:            db,
		redis:         redisClient,
		config:        cfg,
		userRepo:      userRepo,
		notifications: notificationService,
		sessions:      sessions,
		stopSessions:  stopSessions,
		resolver:      usage.NewResolver(userRepo.ProfileSource(), locals),
		hub:           ws.NewHub(),
		promptLimit:   promptLimit,
		providers:     providers,
		router:        router,
	}

	RegisterRoutes(router, server)

	return server, nil
}

func openDatabase(ctx context.Context, url string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// keep the pool small, hosted poolers allow few connections
	poolConfig.MaxConns = 5
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	// pgbouncer in transaction mode does not support prepared statements
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// returns nil when no url is configured
func openRedis(ctx context.Context, url string) (*redis.Client, error) {
	if url == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close() //nolint:errcheck,gosec // best-effort cleanup on init failure
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

func closeRedis(client *redis.Client) {
	if client == nil {
		return
	}

	client.Close() //nolint:errcheck,gosec // best-effort cleanup on shutdown
}
