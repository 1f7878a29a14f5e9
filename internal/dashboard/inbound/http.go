package inbound

import (
	"context"
	"io"

	"github.com/shandysiswandi/fraudboard/internal/dashboard/entity"
	"github.com/shandysiswandi/fraudboard/internal/dashboard/refresh"
	"github.com/shandysiswandi/fraudboard/internal/dashboard/usecase"
	"github.com/shandysiswandi/fraudboard/internal/pkg/pkgrouter"
)

type uc interface {
	Upload(ctx context.Context, filename string, r io.Reader) (usecase.UploadResult, error)
	GetUpload(ctx context.Context, uploadID string) (entity.UploadMeta, error)
	ListUploads(ctx context.Context) ([]entity.UploadMeta, error)
	ClearData(ctx context.Context) (usecase.ClearResult, error)
	RefreshAll(ctx context.Context) usecase.RefreshResult

	LiveMetrics(ctx context.Context) usecase.ViewResult[entity.LiveMetrics]
	Alerts(ctx context.Context) usecase.AlertsResult
	Charts(ctx context.Context) usecase.ViewResult[entity.Charts]
	Heatmap(ctx context.Context) usecase.ViewResult[[]entity.CityAggregate]
	Monitoring(ctx context.Context) usecase.ViewResult[entity.Monitoring]
	Prevention(ctx context.Context) usecase.ViewResult[entity.Prevention]
	Logs(ctx context.Context) usecase.ViewResult[[]entity.LogRow]
	Health(ctx context.Context) usecase.ViewResult[entity.HealthView]
	Results(ctx context.Context, q usecase.ResultsQuery) (usecase.ResultsTable, error)

	Cases(ctx context.Context, q usecase.CasesQuery) (usecase.CasesResult, error)
	SelectCase(ctx context.Context, id string) (entity.CaseDetail, error)
	ActiveCase(ctx context.Context) (entity.CaseDetail, error)
	AddCaseNote(ctx context.Context, note, investigator string) (entity.CaseDetail, error)
	UpdateCaseStatus(ctx context.Context, status entity.CaseStatus, investigator string) (entity.CaseDetail, error)
	CaseReport(ctx context.Context) (entity.CaseReport, error)

	ViewStatuses(ctx context.Context) []refresh.Status
	RefreshView(ctx context.Context, name string) (refresh.Status, error)
	ResetView(ctx context.Context, name string) (refresh.Status, error)
}

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/status", end.Status)
	r.GET("/styles", end.Styles)

	r.POST("/upload", end.Upload, pkgrouter.LimitBody(maxUploadBody))
	r.GET("/uploads", end.Uploads)
	r.GET("/uploads/:id", end.UploadByID)
	r.DELETE("/data", end.ClearData)

	r.GET("/views/live-metrics", end.LiveMetrics)
	r.GET("/views/alerts", end.Alerts)
	r.GET("/views/charts", end.Charts)
	r.GET("/views/heatmap", end.Heatmap)
	r.GET("/views/monitoring", end.Monitoring)
	r.GET("/views/results", end.Results) // ?type=&min_amount=&max_amount=&sort=&order=
	r.GET("/views/logs", end.Logs)
	r.GET("/views/prevention", end.Prevention)
	r.GET("/views/health", end.Health)

	r.GET("/views/investigation/cases", end.Cases) // ?search=&status=&risk=&sort=&order=
	r.POST("/views/investigation/cases/:id/select", end.SelectCase)
	r.GET("/views/investigation/case", end.ActiveCase)
	r.POST("/views/investigation/case/notes", end.AddCaseNote)
	r.PATCH("/views/investigation/case/status", end.UpdateCaseStatus)
	r.GET("/views/investigation/case/report", end.CaseReport)

	r.POST("/refresh", end.RefreshAll)
	r.POST("/refresh/:name", end.RefreshView)
	r.POST("/reset/:name", end.ResetView)
}
