package usecase

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/shandysiswandi/fraudboard/internal/dashboard/entity"
	"github.com/shandysiswandi/fraudboard/internal/dashboard/outbound"
	"github.com/shandysiswandi/fraudboard/internal/dashboard/refresh"
)

// View names, as used in the /views/:name routes.
const (
	ViewLiveMetrics   = "live-metrics"
	ViewAlerts        = "alerts"
	ViewCharts        = "charts"
	ViewHeatmap       = "heatmap"
	ViewMonitoring    = "monitoring"
	ViewResults       = "results"
	ViewLogs          = "logs"
	ViewPrevention    = "prevention"
	ViewInvestigation = "investigation"
	ViewHealth        = "health"
)

var errEmptyBatch = errors.New("backend returned no data")

type Views struct {
	LiveMetrics   *refresh.View[entity.LiveMetrics]
	Alerts        *refresh.View[[]entity.Transaction]
	Charts        *refresh.View[entity.Charts]
	Heatmap       *refresh.View[[]entity.CityAggregate]
	Monitoring    *refresh.View[entity.Monitoring]
	Results       *refresh.View[[]entity.Transaction]
	Logs          *refresh.View[[]entity.ProcessingLog]
	Prevention    *refresh.View[entity.Prevention]
	Investigation *refresh.View[[]entity.Case]
	Health        *refresh.View[entity.Health]
}

func (u *Usecase) buildViews() {
	now := u.clock.Now

	u.views = Views{
		LiveMetrics: refresh.NewView(refresh.Options[entity.LiveMetrics]{
			Name: ViewLiveMetrics, Policy: refresh.PolicyRetry, Fetch: u.fetchLiveMetrics, Now: now,
		}),
		Alerts: refresh.NewView(refresh.Options[[]entity.Transaction]{
			Name: ViewAlerts, Policy: refresh.PolicyRetry, Fetch: u.fetchAlerts, Now: now,
			Commit: func(ctx context.Context, txs []entity.Transaction) { u.alerts.Evaluate(ctx, txs) },
		}),
		Charts: refresh.NewView(refresh.Options[entity.Charts]{
			Name: ViewCharts, Policy: refresh.PolicyFallback, Fetch: u.fetchCharts, Fallback: u.generator.Stats, Now: now,
		}),
		Heatmap: refresh.NewView(refresh.Options[[]entity.CityAggregate]{
			Name: ViewHeatmap, Policy: refresh.PolicyFallback, Fetch: u.fetchHeatmap, Fallback: u.generator.Heatmap, Now: now,
		}),
		Monitoring: refresh.NewView(refresh.Options[entity.Monitoring]{
			Name: ViewMonitoring, Policy: refresh.PolicyFallback, Fetch: u.fetchMonitoring, Now: now,
			Fallback: func() entity.Monitoring { return u.generator.Monitoring(u.clock.Now(), 10) },
		}),
		Results: refresh.NewView(refresh.Options[[]entity.Transaction]{
			Name: ViewResults, Policy: refresh.PolicyRetry, Fetch: u.fetchResults, Now: now,
		}),
		Logs: refresh.NewView(refresh.Options[[]entity.ProcessingLog]{
			Name: ViewLogs, Policy: refresh.PolicyRetry, Fetch: u.fetchLogs, Now: now,
		}),
		Prevention: refresh.NewView(refresh.Options[entity.Prevention]{
			Name: ViewPrevention, Policy: refresh.PolicyFallback, Fetch: u.fetchPrevention, Fallback: staticPrevention, Now: now,
		}),
		Investigation: refresh.NewView(refresh.Options[[]entity.Case]{
			Name: ViewInvestigation, Policy: refresh.PolicyFallback, Fetch: u.fetchCases, Fallback: u.generator.Cases, Now: now,
		}),
		Health: refresh.NewView(refresh.Options[entity.Health]{
			Name: ViewHealth, Policy: refresh.PolicyRetry, Fetch: u.backend.Health, Now: now,
		}),
	}

	u.registry.Add(u.views.LiveMetrics)
	u.registry.Add(u.views.Charts)
	u.registry.Add(u.views.Heatmap)
	u.registry.Add(u.views.Monitoring)
	u.registry.Add(u.views.Results)
	u.registry.Add(u.views.Logs)
	u.registry.Add(u.views.Prevention)
	u.registry.Add(&investigationView{View: u.views.Investigation, store: u.store})
	u.registry.Add(&alertsView{View: u.views.Alerts, engine: u.alerts})
	u.registry.Add(u.views.Health)
}

// investigationView also discards the selected case on reset.
type investigationView struct {
	*refresh.View[[]entity.Case]
	store Store
}

func (v *investigationView) Reset() {
	v.View.Reset()
	if v.store != nil {
		_ = v.store.ClearCase(context.Background())
	}
}

// alertsView also drops the alert history on reset.
type alertsView struct {
	*refresh.View[[]entity.Transaction]
	engine AlertEngine
}

func (v *alertsView) Reset() {
	v.View.Reset()
	if v.engine != nil {
		v.engine.Reset()
	}
}

func (u *Usecase) fetchLiveMetrics(ctx context.Context) (entity.LiveMetrics, error) {
	var (
		stats entity.FraudStats
		batch outbound.TransactionsResponse
		logs  []entity.ProcessingLog
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = u.backend.FraudStats(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		batch, err = u.backend.FraudulentTransactions(gctx, u.limits.LiveTransactions)
		return err
	})
	g.Go(func() error {
		var err error
		logs, err = u.backend.ProcessingLogs(gctx, u.limits.LiveLogs)
		return err
	})
	if err := g.Wait(); err != nil {
		return entity.LiveMetrics{}, err
	}

	m := liveMetrics(stats, batch, logs, u.limits.LiveActivity)
	m.HourlyStats = u.generator.HourlyStats()
	m.HourlySource = entity.SourceFallback
	return m, nil
}

// fetchAlerts only fetches. The engine sees the batch when the view commits it,
// so a superseded refresh never reaches the alert history.
func (u *Usecase) fetchAlerts(ctx context.Context) ([]entity.Transaction, error) {
	batch, err := u.backend.FraudulentTransactions(ctx, u.limits.Alerts)
	if err != nil {
		return nil, err
	}
	return batch.Transactions, nil
}

func (u *Usecase) fetchCharts(ctx context.Context) (entity.Charts, error) {
	stats, err := u.backend.FraudStats(ctx)
	if err != nil {
		return entity.Charts{}, err
	}

	charts := chartsFromStats(stats)
	if len(charts.FraudByType) == 0 {
		return entity.Charts{}, errEmptyBatch
	}
	return charts, nil
}

// fetchHeatmap prefers the backend's geo aggregation, then groups raw fraud
// transactions onto the fixed cities.
func (u *Usecase) fetchHeatmap(ctx context.Context) ([]entity.CityAggregate, error) {
	geo, geoErr := u.backend.GeoData(ctx)
	if geoErr == nil && len(geo.Districts) > 0 {
		return heatmapFromDistricts(geo.Districts), nil
	}

	batch, err := u.backend.FraudulentTransactions(ctx, u.limits.Heatmap)
	if err != nil {
		return nil, err
	}
	if len(batch.Transactions) == 0 {
		return nil, errEmptyBatch
	}
	return heatmapFromTransactions(batch.Transactions), nil
}

func (u *Usecase) fetchMonitoring(ctx context.Context) (entity.Monitoring, error) {
	g, gctx := errgroup.WithContext(ctx)

	var logs []entity.ProcessingLog
	g.Go(func() error {
		_, err := u.backend.FraudStats(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		logs, err = u.backend.ProcessingLogs(gctx, u.limits.MonitoringLogs)
		return err
	})
	if err := g.Wait(); err != nil {
		return entity.Monitoring{}, err
	}

	m := u.generator.ModelPanels(u.clock.Now())
	m.Processing = processingMetrics(logs, u.limits.Processing)
	return m, nil
}

func (u *Usecase) fetchResults(ctx context.Context) ([]entity.Transaction, error) {
	batch, err := u.backend.FraudulentTransactions(ctx, u.limits.Results)
	if err != nil {
		return nil, err
	}
	return batch.Transactions, nil
}

func (u *Usecase) fetchLogs(ctx context.Context) ([]entity.ProcessingLog, error) {
	return u.backend.ProcessingLogs(ctx, u.limits.Logs)
}

func (u *Usecase) fetchPrevention(ctx context.Context) (entity.Prevention, error) {
	batch, err := u.backend.FraudulentTransactions(ctx, u.limits.Prevention)
	if err != nil {
		return entity.Prevention{}, err
	}
	return recommend(batch.Transactions), nil
}

func (u *Usecase) fetchCases(ctx context.Context) ([]entity.Case, error) {
	batch, err := u.backend.FraudulentTransactions(ctx, u.limits.Investigation)
	if err != nil {
		return nil, err
	}
	if len(batch.Transactions) == 0 {
		return nil, errEmptyBatch
	}
	return casesFromTransactions(batch.Transactions, u.clock.Now()), nil
}
