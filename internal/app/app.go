package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/Etherlyvan/movie-mate/internal/auth"
	"github.com/Etherlyvan/movie-mate/internal/catalog"
	"github.com/Etherlyvan/movie-mate/internal/config"
	"github.com/Etherlyvan/movie-mate/internal/feed"
	"github.com/Etherlyvan/movie-mate/internal/httpserver"
	"github.com/Etherlyvan/movie-mate/internal/httpserver/deps"
	"github.com/Etherlyvan/movie-mate/internal/ledger"
	"github.com/Etherlyvan/movie-mate/internal/logger"
	"github.com/Etherlyvan/movie-mate/internal/notify"
	"github.com/Etherlyvan/movie-mate/internal/redis"
	"github.com/Etherlyvan/movie-mate/internal/scheduler"
	"github.com/Etherlyvan/movie-mate/internal/seed"
	"github.com/Etherlyvan/movie-mate/internal/store"
	"github.com/Etherlyvan/movie-mate/internal/store/memory"
	redisstore "github.com/Etherlyvan/movie-mate/internal/store/redis"
	"github.com/Etherlyvan/movie-mate/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	reminder    *scheduler.BookmarkReminder
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Pick the user store. Redis is the production path; the in-memory
	// store exists for local development without infrastructure.
	var userStore store.UserStore
	var redisClient *goredis.Client
	if cfg.RedisAddr != "" {
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.Connect(redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		redisClient = client
		userStore = redisstore.NewStore(client)
		loggerClient.Info("Redis store initialized")
	} else {
		loggerClient.Warn("MOVIEMATE_REDIS_ADDR not set, using in-memory store (data is lost on restart)")
		userStore = memory.NewStore()
	}

	// Seed demo users if a seed file is configured
	if cfg.SeedFile != "" {
		seedFile, err := seed.Load(cfg.SeedFile)
		if err != nil {
			loggerClient.Errorf("Failed to load seed file: %v", err)
			os.Exit(1)
		}
		if _, err := seed.New(userStore, loggerClient).Apply(context.Background(), seedFile); err != nil {
			loggerClient.Errorf("Failed to apply seed file: %v", err)
			os.Exit(1)
		}
	}

	// Core services
	interactions := ledger.New(userStore, loggerClient)
	aggregator := feed.NewAggregator(userStore)
	authService := auth.NewService(userStore, loggerClient, cfg.JWTSecret, cfg.JWTExpiry)
	tmdb := catalog.NewClient(cfg.TMDBBaseURL, cfg.TMDBImageBaseURL, cfg.TMDBAPIKey, loggerClient)

	var transport notify.Transport
	if cfg.VAPIDPublicKey != "" {
		transport = notify.NewWebPushTransport(cfg.VAPIDSubject, cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey, cfg.PushTTL)
		loggerClient.Info("web push transport initialized")
	} else {
		transport = notify.NopTransport{}
		loggerClient.Warn("VAPID keys not configured, push notifications are logged and dropped")
	}
	dispatcher := notify.NewDispatcher(userStore, transport, loggerClient, cfg.PushConcurrency)

	reminder := scheduler.NewBookmarkReminder(
		userStore,
		dispatcher,
		loggerClient,
		cfg.ReminderInterval,
		cfg.ReminderStaleAfter,
	)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      runtime.Version(),
		Store:          userStore,
		Ledger:         interactions,
		Feed:           aggregator,
		Dispatcher:     dispatcher,
		Auth:           authService,
		Catalog:        tmdb,
		RedisClient:    redisClient,
		VAPIDPublicKey: cfg.VAPIDPublicKey,
		FeedLimit:      cfg.FeedLimit,
		AllowedOrigins: cfg.AllowedOrigins,
		TrustProxy:     cfg.TrustProxy,
		AuthRateLimit:  cfg.AuthRateLimit,
		AuthRateWindow: cfg.AuthRateWindow,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		reminder:    reminder,
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting MovieMate v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("MovieMate %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, runtime.Version())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start bookmark reminder loop
	if err := a.reminder.Start(ctx); err != nil {
		return fmt.Errorf("failed to start bookmark reminder: %w", err)
	}
	a.logger.Info("bookmark reminder started",
		logger.Duration("interval", a.cfg.ReminderInterval),
		logger.Duration("stale_after", a.cfg.ReminderStaleAfter))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.reminder.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ MovieMate stopped cleanly")
	return nil
}
