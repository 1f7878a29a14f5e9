package usecase

import (
	"context"
	"fmt"

	"github.com/shandysiswandi/fraudboard/internal/dashboard/entity"
	"github.com/shandysiswandi/fraudboard/internal/dashboard/query"
	"github.com/shandysiswandi/fraudboard/internal/dashboard/refresh"
	"github.com/shandysiswandi/fraudboard/internal/pkg/pkgerror"
)

func read[T any](v *refresh.View[T]) ViewResult[T] {
	return ViewResult[T]{Data: v.State().Data, Status: v.Status()}
}

func (u *Usecase) LiveMetrics(ctx context.Context) ViewResult[entity.LiveMetrics] {
	return read(u.views.LiveMetrics)
}

// Alerts reads the engine directly so an expired notification is never served.
func (u *Usecase) Alerts(ctx context.Context) AlertsResult {
	return AlertsResult{Snapshot: u.alerts.Snapshot(), Status: u.views.Alerts.Status()}
}

func (u *Usecase) Charts(ctx context.Context) ViewResult[entity.Charts] {
	return read(u.views.Charts)
}

func (u *Usecase) Heatmap(ctx context.Context) ViewResult[[]entity.CityAggregate] {
	res := read(u.views.Heatmap)
	if res.Data == nil {
		res.Data = []entity.CityAggregate{}
	}
	return res
}

func (u *Usecase) Monitoring(ctx context.Context) ViewResult[entity.Monitoring] {
	return read(u.views.Monitoring)
}

func (u *Usecase) Prevention(ctx context.Context) ViewResult[entity.Prevention] {
	return read(u.views.Prevention)
}

func (u *Usecase) Logs(ctx context.Context) ViewResult[[]entity.LogRow] {
	state := u.views.Logs.State()

	rows := make([]entity.LogRow, 0, len(state.Data))
	for _, l := range state.Data {
		rows = append(rows, entity.LogRow{ProcessingLog: l, FraudPercentage: l.FraudPercentage()})
	}
	return ViewResult[[]entity.LogRow]{Data: rows, Status: u.views.Logs.Status()}
}

// Results filters then sorts the last committed batch.
func (u *Usecase) Results(ctx context.Context, q ResultsQuery) (ResultsTable, error) {
	by, ok := query.TransactionSort[q.Sort]
	if q.Sort != "" && !ok {
		return ResultsTable{}, pkgerror.NewInvalidInput(fmt.Errorf("unsupported sort field %q", q.Sort))
	}
	if q.Order == "" {
		q.Order = query.Asc
	}

	all := u.views.Results.State().Data
	filtered := q.Filter.Apply(all)
	rows := query.Sort(filtered, by, q.Order)
	if rows == nil {
		rows = []entity.Transaction{}
	}

	return ResultsTable{
		Transactions: rows,
		Summary:      query.Summarize(filtered),
		Total:        len(all),
		Status:       u.views.Results.Status(),
	}, nil
}

// Health derives connectivity: checking until the first check completes,
// disconnected while the last check failed.
func (u *Usecase) Health(ctx context.Context) ViewResult[entity.HealthView] {
	state := u.views.Health.State()
	status := u.views.Health.Status()

	hv := entity.HealthView{
		Connectivity: entity.ConnectivityChecking,
		Status:       state.Data.Status,
		Timestamp:    state.Data.Timestamp,
		CheckedAt:    state.UpdatedAt,
	}
	switch {
	case state.Err != nil:
		hv.Connectivity = entity.ConnectivityDisconnected
	case state.Source == entity.SourceLive:
		hv.Connectivity = entity.ConnectivityConnected
	}

	return ViewResult[entity.HealthView]{Data: hv, Status: status}
}

func (u *Usecase) ViewStatuses(ctx context.Context) []refresh.Status {
	return u.registry.Statuses()
}

// RefreshView runs one synchronous refresh of the named view.
func (u *Usecase) RefreshView(ctx context.Context, name string) (refresh.Status, error) {
	v, err := u.registry.Get(name)
	if err != nil {
		return refresh.Status{}, mapStoreErr(err, "view")
	}

	// the outcome is recorded on the view and reported through its status
	_ = v.Refresh(ctx)
	return v.Status(), nil
}

// ResetView drops the committed state of the named view.
func (u *Usecase) ResetView(ctx context.Context, name string) (refresh.Status, error) {
	v, err := u.registry.Get(name)
	if err != nil {
		return refresh.Status{}, mapStoreErr(err, "view")
	}

	v.Reset()
	return v.Status(), nil
}
