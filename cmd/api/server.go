package main

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"code.cloudfoundry.org/lager"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/5w1tchy/passcheck-api/internal/analysis"
	mw "github.com/5w1tchy/passcheck-api/internal/api/middlewares"
	"github.com/5w1tchy/passcheck-api/internal/api/router"
	"github.com/5w1tchy/passcheck-api/internal/reference"
	"github.com/5w1tchy/passcheck-api/internal/repository/wordsource"
	"github.com/5w1tchy/passcheck-api/internal/validate"
)

func main() {
	_ = godotenv.Load()

	logger := lager.NewLogger("passcheck-api")
	logger.RegisterSink(lager.NewWriterSink(os.Stdout, logLevel()))

	if err := validate.Env(); err != nil {
		logger.Fatal("invalid-config", err)
	}
	for _, w := range validate.HardeningWarnings(os.Getenv("APP_ENV")) {
		logger.Info("hardening-warning", lager.Data{"warning": w})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ref, err := wordsource.Load(ctx, reference.LoadParamsFromEnv(), logger)
	if err != nil {
		logger.Fatal("reference-load-failed", err)
	}

	rdb, err := redisFromEnv()
	if err != nil {
		logger.Fatal("invalid-redis-config", err)
	}
	if rdb != nil {
		// Fail fast if Redis isn't reachable
		if err := validate.PingRedis(ctx, rdb, 3*time.Second); err != nil {
			logger.Fatal("redis-connection-failed", err)
		}
		defer rdb.Close()
		logger.Info("redis-connected")
	} else {
		logger.Info("rate-limiting-disabled")
	}

	deps := router.Deps{
		Analyzer:          analysis.New(ref, analysis.LoadOptionsFromEnv()),
		Reference:         ref,
		MaxPasswordLength: validate.MaxPasswordLength(),
		Logger:            logger,
	}
	handler := router.Handler(deps, router.Options{
		Origins:     mw.OriginsFromEnv(),
		MaxBodySize: mw.MaxBodySizeFromEnv(),
		Redis:       rdb,
		RateLimit:   mw.LoadRateLimitFromEnv(),
	})

	server := &http.Server{
		Addr:              ":" + envOr("PORT", "3000"),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
	}

	serverLogger := logger.Session("server", lager.Data{"addr": server.Addr})
	go func() {
		cert, key := os.Getenv("TLS_CERT_FILE"), os.Getenv("TLS_KEY_FILE")
		serverLogger.Info("listening", lager.Data{"tls": cert != ""})

		var err error
		if cert != "" && key != "" {
			err = server.ListenAndServeTLS(cert, key)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverLogger.Fatal("serve-failed", err)
		}
	}()

	<-ctx.Done()
	serverLogger.Info("shutting-down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		serverLogger.Error("shutdown-failed", err)
	}
}

// redisFromEnv returns nil when neither REDIS_URL nor REDIS_ADDR is set.
func redisFromEnv() (*redis.Client, error) {
	if url := os.Getenv("REDIS_URL"); url != "" {
		opt, err := redis.ParseURL(url) // e.g. rediss://default:<token>@host:port
		if err != nil {
			return nil, err
		}
		opt.DialTimeout = 5 * time.Second
		opt.ReadTimeout = 500 * time.Millisecond
		opt.WriteTimeout = 500 * time.Millisecond
		return redis.NewClient(opt), nil
	}

	addr := os.Getenv("REDIS_ADDR") // host:port (no scheme)
	if addr == "" {
		return nil, nil
	}
	opt := &redis.Options{
		Addr:         addr,
		Username:     os.Getenv("REDIS_USER"),
		Password:     os.Getenv("REDIS_PASSWORD"),
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	}
	if os.Getenv("REDIS_TLS") == "1" {
		opt.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return redis.NewClient(opt), nil
}

func logLevel() lager.LogLevel {
	if os.Getenv("LOG_LEVEL") == "debug" {
		return lager.DEBUG
	}
	return lager.INFO
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
