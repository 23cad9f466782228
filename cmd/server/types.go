package main

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/Muneerali199/website-builder/boltnewer/users"
	"github.com/Muneerali199/website-builder/internal/config"
	"github.com/Muneerali199/website-builder/internal/notifications"
	"github.com/Muneerali199/website-builder/internal/usage"
	ws "github.com/Muneerali199/website-builder/internal/websocket"
)

// holds all dependencies and state for the API server
type Server struct {
	db            *pgxpool.Pool
	redis         *redis.Client // nil when REDIS_URL is unset
	config        *config.Config
	userRepo      *users.Repository
	notifications *notifications.Service
	sessions      usage.SessionIssuer
	stopSessions  func()
	resolver      *usage.Resolver
	hub           *ws.Hub
	promptLimit   gin.HandlerFunc
	providers     []string
	router        *gin.Engine
}
