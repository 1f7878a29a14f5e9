package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/shandysiswandi/fraudboard/internal/dashboard/alert"
	"github.com/shandysiswandi/fraudboard/internal/dashboard/event"
	"github.com/shandysiswandi/fraudboard/internal/dashboard/fallback"
	"github.com/shandysiswandi/fraudboard/internal/dashboard/inbound"
	"github.com/shandysiswandi/fraudboard/internal/dashboard/outbound"
	"github.com/shandysiswandi/fraudboard/internal/dashboard/refresh"
	"github.com/shandysiswandi/fraudboard/internal/dashboard/store"
	"github.com/shandysiswandi/fraudboard/internal/dashboard/usecase"
	"github.com/shandysiswandi/fraudboard/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/fraudboard/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/fraudboard/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/fraudboard/internal/pkg/pkguid"
)

type Dependency struct {
	Config    pkgconfig.Config
	Goroutine *pkgroutine.Manager
	Router    *pkgrouter.Router
	Context   context.Context
}

// schedule is how each view is kept fresh: a fixed interval, the shared
// refresh trigger, or both.
type schedule struct {
	view      string
	interval  time.Duration
	onTrigger bool
}

func New(dep Dependency) (func(context.Context) error, error) {
	cfg := dep.Config

	client, err := outbound.NewClient(outbound.Config{
		BaseURL:    cfg.GetString("backend.base_url"),
		HTTPClient: &http.Client{Timeout: cfg.GetDuration("backend.timeout")},
	})
	if err != nil {
		return nil, err
	}

	entryID, err := pkguid.NewSnowflake(cfg.GetInt("uid.node"))
	if err != nil {
		return nil, err
	}

	bus := event.NewBus(int(cfg.GetInt("event.buffer")))
	handler, natsConn, err := newNotifier(cfg)
	if err != nil {
		return nil, err
	}
	consumer := event.NewConsumer(bus, handler, event.ConsumerConfig{
		Workers:     int(cfg.GetInt("event.workers")),
		MaxRetries:  int(cfg.GetInt("event.max_retries")),
		BaseBackoff: cfg.GetDuration("event.base_backoff"),
		DedupSize:   int(cfg.GetInt("event.dedup_size")),
	})
	consumer.Start()

	engine := alert.New(alert.Dependency{
		Publisher:        bus,
		HistoryLimit:     int(cfg.GetInt("alert.history_limit")),
		NotificationTime: cfg.GetDuration("alert.notification_time"),
	})

	st, closeStore, err := newStore(dep.Context, cfg)
	if err != nil {
		return nil, err
	}

	var src fallback.Source
	if seed := cfg.GetInt("fallback.seed"); seed != 0 {
		src = fallback.NewSource(uint64(seed))
	}

	uc := usecase.New(usecase.Dependency{
		Backend:   client,
		Store:     st,
		Alerts:    engine,
		Generator: fallback.New(src),
		UploadID:  pkguid.NewPrefixedUUID("upload"),
		EntryID:   entryID,
		Limits: usecase.Limits{
			LiveTransactions: int(cfg.GetInt("limits.live_transactions")),
			LiveLogs:         int(cfg.GetInt("limits.live_logs")),
			LiveActivity:     int(cfg.GetInt("limits.live_activity")),
			Alerts:           int(cfg.GetInt("limits.alerts")),
			Results:          int(cfg.GetInt("limits.results")),
			Heatmap:          int(cfg.GetInt("limits.heatmap")),
			MonitoringLogs:   int(cfg.GetInt("limits.monitoring_logs")),
			Processing:       int(cfg.GetInt("limits.processing")),
			Prevention:       int(cfg.GetInt("limits.prevention")),
			Investigation:    int(cfg.GetInt("limits.investigation")),
			Logs:             int(cfg.GetInt("limits.logs")),
		},
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	pollers, err := startPollers(dep, uc, []schedule{
		{view: usecase.ViewLiveMetrics, interval: cfg.GetDuration("refresh.live_metrics"), onTrigger: true},
		{view: usecase.ViewHealth, interval: cfg.GetDuration("refresh.health")},
		{view: usecase.ViewAlerts, interval: cfg.GetDuration("refresh.alerts"), onTrigger: true},
		{view: usecase.ViewMonitoring, interval: cfg.GetDuration("refresh.monitoring")},
		{view: usecase.ViewCharts, onTrigger: true},
		{view: usecase.ViewHeatmap, onTrigger: true},
		{view: usecase.ViewResults, onTrigger: true},
		{view: usecase.ViewLogs, onTrigger: true},
		{view: usecase.ViewPrevention, onTrigger: true},
		{view: usecase.ViewInvestigation, onTrigger: true},
	})
	if err != nil {
		return nil, err
	}

	return func(ctx context.Context) error {
		for _, p := range pollers {
			p.Stop()
		}

		err := consumer.Stop(ctx)
		if dropped := bus.Dropped(); dropped > 0 || bus.Pending() > 0 {
			slog.WarnContext(ctx, "risk events not delivered", "dropped", dropped, "pending", bus.Pending())
		}
		if natsConn != nil {
			if drainErr := natsConn.Drain(); drainErr != nil {
				err = errors.Join(err, drainErr)
			}
		}
		return errors.Join(err, closeStore())
	}, nil
}

func newNotifier(cfg pkgconfig.Config) (event.Handler, *nats.Conn, error) {
	if !cfg.GetBool("nats.enabled") {
		return event.LogNotifier{}, nil, nil
	}

	conn, err := event.DialNATS(cfg.GetString("nats.url"), "fraudboard")
	if err != nil {
		return nil, nil, err
	}

	slog.Info("risk level events published to nats", "url", cfg.GetString("nats.url"), "subject", cfg.GetString("nats.subject"))
	return event.NewNATSNotifier(conn, cfg.GetString("nats.subject")), conn, nil
}

func newStore(ctx context.Context, cfg pkgconfig.Config) (usecase.Store, func() error, error) {
	switch driver := cfg.GetString("store.driver"); driver {
	case "", "memory":
		return store.NewInMemoryStore(), func() error { return nil }, nil
	case "redis":
		rs, err := store.NewRedisStore(ctx, store.RedisConfig{
			Addr:     cfg.GetString("store.redis.addr"),
			Password: cfg.GetString("store.redis.password"),
			DB:       int(cfg.GetInt("store.redis.db")),
			Prefix:   cfg.GetString("store.redis.prefix"),
		})
		if err != nil {
			return nil, nil, err
		}
		slog.Info("dashboard state kept in redis", "addr", cfg.GetString("store.redis.addr"))
		return rs, rs.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", driver)
	}
}

func startPollers(dep Dependency, uc *usecase.Usecase, schedules []schedule) ([]*refresh.Poller, error) {
	pollers := make([]*refresh.Poller, 0, len(schedules))
	for _, s := range schedules {
		view, err := uc.Registry().Get(s.view)
		if err != nil {
			return nil, err
		}

		var trigger *refresh.Trigger
		if s.onTrigger {
			trigger = uc.Trigger()
		}

		p := refresh.NewPoller(view, s.interval, trigger)
		pollers = append(pollers, p)
		dep.Goroutine.Go(dep.Context, "poller:"+s.view, p.Run)
	}
	return pollers, nil
}
