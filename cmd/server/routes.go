package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/swag"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Muneerali199/website-builder/api/rest/auth"
	"github.com/Muneerali199/website-builder/api/rest/health"
	"github.com/Muneerali199/website-builder/api/rest/home"
	"github.com/Muneerali199/website-builder/api/rest/notifications"
	"github.com/Muneerali199/website-builder/api/rest/prompts"
	restusage "github.com/Muneerali199/website-builder/api/rest/usage"
	"github.com/Muneerali199/website-builder/api/websocket"
	_ "github.com/Muneerali199/website-builder/docs" // registers the swagger spec
	internalauth "github.com/Muneerali199/website-builder/internal/auth"
	"github.com/Muneerali199/website-builder/internal/logger"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(otelgin.Middleware(health.ServiceName))
	router.Use(RequestLogger())
	router.Use(CORSMiddleware(server.config.AllowedOrigins))

	router.GET("/health", health.Handler(healthChecks(server)))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)
		v1.GET("/docs/doc.json", docsHandler)

		auth.RegisterRoutes(v1, server.userRepo, server.providers)
		restusage.RegisterRoutes(v1, server.resolver, server.sessions)
		prompts.RegisterRoutes(v1, prompts.Deps{
			Resolver: server.resolver,
			Sessions: server.sessions,
			Feed:     server.hub,
			Notifier: server.notifications,
		}, server.promptLimit)
		home.RegisterRoutes(v1)
		notifications.RegisterRoutes(v1, server.notifications)
		websocket.RegisterRoutes(v1, server.hub, server.resolver, server.sessions)
	}
}

// allows the configured frontends to call the API and read the session header
func CORSMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", internalauth.SessionHeader},
		ExposeHeaders:    []string{internalauth.SessionHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = origins
	}

	return cors.New(cfg)
}

// logs one line per request
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"ip", c.ClientIP(),
		)
	}
}

func healthChecks(server *Server) map[string]health.Check {
	checks := map[string]health.Check{
		"postgres": func(ctx context.Context) error {
			return server.db.Ping(ctx)
		},
	}

	if server.redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return server.redis.Ping(ctx).Err()
		}
	}

	return checks
}

func docsHandler(c *gin.Context) {
	doc, err := swag.ReadDoc()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "docs unavailable"})
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
}
