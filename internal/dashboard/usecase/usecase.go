package usecase

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/shandysiswandi/fraudboard/internal/dashboard/alert"
	"github.com/shandysiswandi/fraudboard/internal/dashboard/entity"
	"github.com/shandysiswandi/fraudboard/internal/dashboard/fallback"
	"github.com/shandysiswandi/fraudboard/internal/dashboard/outbound"
	"github.com/shandysiswandi/fraudboard/internal/dashboard/refresh"
	"github.com/shandysiswandi/fraudboard/internal/pkg/pkgerror"
	"github.com/shandysiswandi/fraudboard/internal/pkg/pkguid"
)

type Backend interface {
	Health(ctx context.Context) (entity.Health, error)
	Upload(ctx context.Context, filename string, r io.Reader) (entity.UploadSummary, error)
	FraudulentTransactions(ctx context.Context, limit int) (outbound.TransactionsResponse, error)
	FraudStats(ctx context.Context) (entity.FraudStats, error)
	ProcessingLogs(ctx context.Context, limit int) ([]entity.ProcessingLog, error)
	GeoData(ctx context.Context) (entity.GeoData, error)
	ClearData(ctx context.Context) (outbound.ClearResponse, error)
}

type Store interface {
	CreateUpload(ctx context.Context, meta entity.UploadMeta) error
	UpdateMeta(ctx context.Context, uploadID string, fn func(meta *entity.UploadMeta)) error
	GetUpload(ctx context.Context, uploadID string) (entity.UploadMeta, error)
	ListUploads(ctx context.Context) ([]entity.UploadMeta, error)

	SelectCase(ctx context.Context, detail entity.CaseDetail) error
	ActiveCase(ctx context.Context) (entity.CaseDetail, error)
	UpdateCase(ctx context.Context, fn func(detail *entity.CaseDetail) error) (entity.CaseDetail, error)
	ClearCase(ctx context.Context) error
}

type AlertEngine interface {
	Evaluate(ctx context.Context, txs []entity.Transaction) alert.Snapshot
	Snapshot() alert.Snapshot
	Reset()
}

type Clock interface {
	Now() time.Time
}

// Limits are the batch sizes requested from the backend per view, and the
// caps applied to derived lists.
type Limits struct {
	LiveTransactions int
	LiveLogs         int
	LiveActivity     int
	Alerts           int
	Results          int
	Heatmap          int
	MonitoringLogs   int
	Processing       int
	Prevention       int
	Investigation    int
	Logs             int
}

func (l Limits) withDefaults() Limits {
	def := func(v *int, d int) {
		if *v <= 0 {
			*v = d
		}
	}
	def(&l.LiveTransactions, 100)
	def(&l.LiveLogs, 20)
	def(&l.LiveActivity, 10)
	def(&l.Alerts, 50)
	def(&l.Results, 500)
	def(&l.Heatmap, 1000)
	def(&l.MonitoringLogs, 100)
	def(&l.Processing, 20)
	def(&l.Prevention, 200)
	def(&l.Investigation, 100)
	def(&l.Logs, 10)
	return l
}

type Dependency struct {
	Backend   Backend
	Store     Store
	Alerts    AlertEngine
	Generator *fallback.Generator
	Trigger   *refresh.Trigger
	Clock     Clock
	UploadID  pkguid.StringID
	EntryID   pkguid.NumberID
	Limits    Limits
}

type Usecase struct {
	backend   Backend
	store     Store
	alerts    AlertEngine
	generator *fallback.Generator
	trigger   *refresh.Trigger
	clock     Clock
	uploadID  pkguid.StringID
	entryID   pkguid.NumberID
	limits    Limits

	views    Views
	registry *refresh.Registry
}

func New(dep Dependency) *Usecase {
	clock := dep.Clock
	if clock == nil {
		clock = realClock{}
	}

	gen := dep.Generator
	if gen == nil {
		gen = fallback.New(nil)
	}

	trigger := dep.Trigger
	if trigger == nil {
		trigger = refresh.NewTrigger()
	}

	u := &Usecase{
		backend:   dep.Backend,
		store:     dep.Store,
		alerts:    dep.Alerts,
		generator: gen,
		trigger:   trigger,
		clock:     clock,
		uploadID:  dep.UploadID,
		entryID:   dep.EntryID,
		limits:    dep.Limits.withDefaults(),
		registry:  refresh.NewRegistry(),
	}
	if u.uploadID == nil {
		u.uploadID = pkguid.NewPrefixedUUID("upload")
	}
	if u.entryID == nil {
		u.entryID = &counterID{}
	}
	u.buildViews()

	return u
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// Trigger is the refresh counter shared by the trigger-driven pollers.
func (u *Usecase) Trigger() *refresh.Trigger {
	return u.trigger
}

// Registry exposes the views by name for manual refresh and reset.
func (u *Usecase) Registry() *refresh.Registry {
	return u.registry
}

func (u *Usecase) Views() Views {
	return u.views
}

func mapStoreErr(err error, what string) error {
	if errors.Is(err, pkgerror.ErrNotFound) {
		return pkgerror.NewBusiness(what+" not found", pkgerror.CodeNotFound)
	}
	return normalizeErr(err)
}

func normalizeErr(err error) error {
	var perr *pkgerror.Error
	if errors.As(err, &perr) {
		return perr
	}
	return pkgerror.NewServer(err)
}
