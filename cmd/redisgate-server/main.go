// Package main provides the entry point for redisgate-server.
//
// redisgate-server is the gateway process for Redisgate, exposing a
// Redis backing store over a REST and WebSocket API.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/redisgate/redisgate/internal/infra/buildinfo"
	"github.com/redisgate/redisgate/internal/infra/confloader"
	"github.com/redisgate/redisgate/internal/infra/shutdown"
	"github.com/redisgate/redisgate/internal/redis"
	"github.com/redisgate/redisgate/internal/server/config"
	"github.com/redisgate/redisgate/internal/server/httpserver"
	"github.com/redisgate/redisgate/internal/server/wsserver"
	"github.com/redisgate/redisgate/internal/telemetry/logger"
	"github.com/redisgate/redisgate/internal/telemetry/metric"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse command line flags
	var (
		configFile  = flag.String("config", "", "Path to configuration file")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	// Show version and exit
	if *showVersion {
		fmt.Printf("redisgate-server %s\n", buildinfo.String())
		return nil
	}

	// Load configuration
	cfg, err := loadConfig(*configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Initialize logger
	log, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	log.Info("starting redisgate-server",
		"version", buildinfo.Version,
		"commit", buildinfo.Commit,
		"config", *configFile)
	log.Debug("configuration loaded",
		"addr", cfg.Server.Addr,
		"redis_url", config.Sanitize(cfg).Redis.URL)

	// Metrics registry (nil disables collection and /metrics)
	var metrics *metric.Registry
	if cfg.Metrics.Enabled {
		metrics = metric.NewRegistry()
	}

	// Connect the backing-store pool
	client, err := initClient(cfg, log, metrics)
	if err != nil {
		return fmt.Errorf("init redis client: %w", err)
	}

	if metrics != nil {
		collector := metric.NewPoolCollector(func() metric.PoolStats {
			active, idle := client.Pool().Stats()
			return metric.PoolStats{Active: active, Idle: idle}
		})
		if err := metrics.Register(collector); err != nil {
			return fmt.Errorf("register pool collector: %w", err)
		}
	}

	// Create the WebSocket and HTTP surfaces over the shared client
	wsServer := wsserver.New(client, log, metrics)

	routerCfg := &httpserver.RouterConfig{
		Client:             client,
		Logger:             log,
		Metrics:            metrics,
		WebSocket:          wsServer.Handler(),
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
	}
	if cfg.RateLimit.Enabled {
		routerCfg.RateLimitRPS = cfg.RateLimit.RPS
		routerCfg.RateLimitBurst = cfg.RateLimit.Burst
	}

	httpServer := httpserver.New(cfg.Server.Addr, httpserver.NewRouter(routerCfg),
		cfg.Server.ReadTimeout, cfg.Server.WriteTimeout)

	// Setup graceful shutdown
	shutdownHandler := shutdown.NewHandler(cfg.Server.ShutdownTimeout)

	// Hooks run in reverse order of registration: listener first, then
	// open sockets, then the pool.
	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("closing connection pool")
		return client.Close(ctx)
	})

	// Watch the config file so log-level changes apply without a restart
	if *configFile != "" {
		watcher, err := startConfigWatcher(*configFile, log)
		if err != nil {
			return fmt.Errorf("config watcher: %w", err)
		}
		shutdownHandler.OnShutdown(func(ctx context.Context) error {
			return watcher.Stop()
		})
	}

	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("closing WebSocket connections")
		return wsServer.Close()
	})

	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down HTTP server")
		return httpServer.Shutdown(ctx)
	})

	// Start HTTP server in goroutine
	go func() {
		log.Info("HTTP server listening", "addr", cfg.Server.Addr)

		var err error
		if cfg.Server.TLSCertFile != "" && cfg.Server.TLSKeyFile != "" {
			err = httpServer.ListenAndServeTLS(cfg.Server.TLSCertFile, cfg.Server.TLSKeyFile)
		} else {
			err = httpServer.ListenAndServe()
		}

		if err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
			shutdownHandler.Trigger()
		}
	}()

	// Wait for shutdown signal
	log.Info("server started, press Ctrl+C to stop")
	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("server stopped gracefully")
	return nil
}

// loadConfig loads configuration from file and environment.
func loadConfig(configFile string) (*config.ServerConfig, error) {
	// Start with defaults
	cfg := config.Default()

	// Create loader with optional config file
	opts := []confloader.Option{}
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}

	loader := confloader.NewLoader(opts...)

	// Load and unmarshal
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	// Validate configuration
	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// initLogger initializes the structured logger and installs it as the
// process default.
func initLogger(cfg *config.ServerConfig) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	if err != nil {
		return nil, err
	}

	logger.SetDefault(log)
	return log, nil
}

// initClient creates the pooled backing-store client.
func initClient(cfg *config.ServerConfig, log logger.Logger, metrics *metric.Registry) (*redis.Client, error) {
	opts := []redis.PoolOption{redis.WithLogger(log)}
	if metrics != nil {
		opts = append(opts, redis.WithMetrics(metrics))
	}

	return redis.NewClient(redis.PoolConfig{
		URL:          cfg.Redis.URL,
		MaxActive:    cfg.Redis.MaxActive,
		MaxIdle:      cfg.Redis.MaxIdle,
		MinIdle:      cfg.Redis.MinIdle,
		WaitTimeout:  cfg.Redis.WaitTimeout,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	}, opts...)
}

// startConfigWatcher reloads the config file on change and re-applies the
// log level. Anything else requires a restart.
func startConfigWatcher(configFile string, log logger.Logger) (*confloader.Watcher, error) {
	watcher, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
	if err != nil {
		return nil, err
	}

	watcher.OnChange(func(path string) {
		if filepath.Base(path) != filepath.Base(configFile) {
			return
		}
		fresh, err := loadConfig(configFile)
		if err != nil {
			log.Error("config reload failed", "error", err)
			return
		}
		logger.SetLevel(fresh.Log.Level)
		log.Info("log level reloaded", "level", fresh.Log.Level)
	})

	if err := watcher.Watch(configFile); err != nil {
		watcher.Stop()
		return nil, err
	}
	watcher.StartAsync()
	return watcher, nil
}
