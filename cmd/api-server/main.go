package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/hackgods/clinic-records/internal/api"
	"github.com/hackgods/clinic-records/internal/clinic"
	"github.com/hackgods/clinic-records/internal/config"
	"github.com/hackgods/clinic-records/internal/db"
	"github.com/hackgods/clinic-records/internal/events"
	"github.com/hackgods/clinic-records/internal/logging"
	"github.com/hackgods/clinic-records/internal/metrics"
	redisclient "github.com/hackgods/clinic-records/internal/redis"
)

const version = "0.1.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load error: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("api-server starting up",
		zap.String("env", cfg.Env),
		zap.String("http_port", cfg.HTTPPort))

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	sinks := []events.Sink{events.NewLogSink(log), m.EventSink()}
	deps := map[string]api.Pinger{}

	// Postgres and Redis only receive the audit feed, so either can be left
	// unconfigured.
	if cfg.PostgresDSN != "" {
		pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
		pgPool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
		if err != nil {
			cancelPg()
			log.Fatal("postgres connection error", zap.Error(err))
		}
		sink := events.NewPgSink(pgPool)
		err = sink.EnsureSchema(pgCtx)
		cancelPg()
		if err != nil {
			pgPool.Close()
			log.Fatal("postgres schema error", zap.Error(err))
		}
		defer pgPool.Close()

		sinks = append(sinks, sink)
		deps["postgres"] = pgPool
		log.Info("connected to Postgres")
	}

	if cfg.RedisAddr != "" {
		rdb, err := redisclient.NewRedisClient(rootCtx, cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
		if err != nil {
			log.Fatal("redis connection error", zap.Error(err))
		}
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Warn("error closing redis", zap.Error(err))
			}
		}()

		sinks = append(sinks, events.NewRedisSink(rdb, cfg.EventStream, cfg.EventStreamMax))
		deps["redis"] = redisclient.Pinger{Client: rdb}
		log.Info("connected to Redis", zap.String("stream", cfg.EventStream))
	}

	dispatcher := events.NewDispatcher(cfg.EventBuffer, log, sinks...)
	dispatchDone := make(chan struct{})
	go func() {
		defer close(dispatchDone)
		dispatcher.Run(rootCtx)
	}()

	c := clinic.New(clinic.WithLogger(log), clinic.WithNotifier(dispatcher))

	router := api.NewRouter(api.RouterConfig{
		Clinic:       c,
		Metrics:      m,
		Logger:       log,
		Dependencies: deps,
		Env:          cfg.Env,
		Version:      version,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-rootCtx.Done():
		log.Info("shutdown signal received")
	case err := <-serverErr:
		log.Error("http server error", zap.Error(err))
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown error", zap.Error(err))
	}

	select {
	case <-dispatchDone:
	case <-shutdownCtx.Done():
		log.Warn("event dispatcher did not drain before shutdown timeout")
	}

	if n := dispatcher.Dropped(); n > 0 {
		log.Warn("events dropped while buffer was full", zap.Int64("count", n))
	}
	log.Info("api-server stopped")
}
