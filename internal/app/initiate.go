package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/rs/cors"

	"github.com/shandysiswandi/fraudboard/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/fraudboard/internal/pkg/pkglog"
	"github.com/shandysiswandi/fraudboard/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/fraudboard/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/fraudboard/internal/pkg/pkguid"
)

// defaults apply when neither the config file nor FRAUDBOARD_* variables set a key.
var defaults = map[string]any{
	"tz":                        "Asia/Kolkata",
	"log.level":                 "info",
	"server.address.http":       ":8080",
	"server.show_error_details": false,
	"server.shutdown_timeout":   "10s",
	"cors.allowed_origins":      "*",
	"goroutine.max":             32,
	"uid.node":                  -1,

	"backend.base_url": "http://localhost:8000",
	"backend.timeout":  "30s",

	"refresh.live_metrics": "30s",
	"refresh.health":       "30s",
	"refresh.alerts":       "45s",
	"refresh.monitoring":   "60s",

	"limits.live_transactions": 100,
	"limits.live_logs":         20,
	"limits.live_activity":     10,
	"limits.alerts":            50,
	"limits.results":           500,
	"limits.heatmap":           1000,
	"limits.monitoring_logs":   100,
	"limits.processing":        20,
	"limits.prevention":        200,
	"limits.investigation":     100,
	"limits.logs":              10,

	"alert.history_limit":     20,
	"alert.notification_time": "5s",

	"event.buffer":       256,
	"event.workers":      2,
	"event.max_retries":  3,
	"event.base_backoff": "200ms",
	"event.dedup_size":   1024,

	"nats.enabled": false,
	"nats.url":     "nats://localhost:4222",
	"nats.subject": "fraudboard.risk.level",

	"store.driver":         "memory",
	"store.redis.addr":     "localhost:6379",
	"store.redis.password": "",
	"store.redis.db":       0,
	"store.redis.prefix":   "fraudboard",

	"fallback.seed": 0,
}

func (a *App) initConfig() {
	path := a.configPath
	if path == "" {
		path = "/config/config.yaml"
		if os.Getenv("LOCAL") == "true" {
			path = "./config/config.yaml"
		}
	}

	cfg, err := pkgconfig.NewViper(path, defaults)
	if err != nil {
		slog.Error("failed to init config", "path", path, "error", err)
		os.Exit(1)
	}

	//nolint:errcheck,gosec // ignore error
	os.Setenv("TZ", cfg.GetString("tz"))

	pkglog.InitLogging(pkglog.ParseLevel(cfg.GetString("log.level")))

	a.config = cfg
	a.addCloser("Config", func(context.Context) error {
		return cfg.Close()
	})
}

func (a *App) initLibraries() {
	a.goroutine = pkgroutine.NewManager(int(a.config.GetInt("goroutine.max")))
	a.uuid = pkguid.NewUUID()
}

func (a *App) initHTTPServer() {
	a.router = pkgrouter.NewRouter(a.uuid, pkgrouter.Options{
		ShowErrorDetails: a.config.GetBool("server.show_error_details"),
	})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: a.config.GetArray("cors.allowed_origins"),
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{pkgrouter.HeaderCorrelationID},
		AllowCredentials: true,
	})

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("server.address.http"),
		Handler:           corsHandler.Handler(a.router),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (a *App) addCloser(name string, fn func(context.Context) error) {
	a.closers = append(a.closers, namedCloser{name: name, fn: fn})
}
