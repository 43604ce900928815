// Package httpserver provides the HTTP/HTTPS server for Redisgate.
package httpserver

import (
	"net/http"

	"github.com/redisgate/redisgate/internal/redis"
	"github.com/redisgate/redisgate/internal/server/httpserver/handler"
	"github.com/redisgate/redisgate/internal/telemetry/logger"
	"github.com/redisgate/redisgate/internal/telemetry/metric"
)

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	// Client is the pooled backing-store adapter.
	Client *redis.Client

	// Logger for request logging.
	Logger logger.Logger

	// Metrics registry; nil disables metric collection and /metrics.
	Metrics *metric.Registry

	// WebSocket is mounted under /redis_ws/ when set.
	WebSocket http.Handler

	// RateLimitRPS and RateLimitBurst enable per-IP throttling when
	// RateLimitRPS is positive.
	RateLimitRPS   float64
	RateLimitBurst int

	// CORSAllowedOrigins is the allowed CORS origin list (empty = CORS off).
	CORSAllowedOrigins []string
}

// NewRouter creates and configures the HTTP router with all routes and
// middleware.
func NewRouter(cfg *RouterConfig) http.Handler {
	h := handler.New(cfg.Client, cfg.Logger)

	mux := http.NewServeMux()
	h.Register(mux)
	mux.HandleFunc("GET /health", h.Health)

	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics.Handler())
	}
	if cfg.WebSocket != nil {
		mux.Handle("/redis_ws/", cfg.WebSocket)
	}

	// Outermost first: Recover wraps everything, Logging observes the
	// final status.
	middlewares := []Middleware{
		Recover(cfg.Logger),
		RequestID(),
	}
	if len(cfg.CORSAllowedOrigins) > 0 {
		middlewares = append(middlewares, CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Metrics != nil {
		middlewares = append(middlewares, Metrics(cfg.Metrics))
	}
	if cfg.RateLimitRPS > 0 {
		middlewares = append(middlewares, RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	}
	middlewares = append(middlewares, Logging(cfg.Logger))

	return Chain(mux, middlewares...)
}
