package usecase

import (
	"github.com/shandysiswandi/fraudboard/internal/dashboard/alert"
	"github.com/shandysiswandi/fraudboard/internal/dashboard/entity"
	"github.com/shandysiswandi/fraudboard/internal/dashboard/query"
	"github.com/shandysiswandi/fraudboard/internal/dashboard/refresh"
)

// ViewResult pairs a view's committed data with its refresh status.
type ViewResult[T any] struct {
	Data   T
	Status refresh.Status
}

type AlertsResult struct {
	Snapshot alert.Snapshot
	Status   refresh.Status
}

type ResultsQuery struct {
	Filter query.TransactionFilter
	Sort   string
	Order  query.Order
}

// ResultsTable is the filtered and sorted results table. Summary is computed
// over the filtered rows.
type ResultsTable struct {
	Transactions []entity.Transaction
	Summary      query.Summary
	Total        int
	Status       refresh.Status
}

type CasesResult struct {
	Cases        []entity.Case
	Total        int
	StatusCounts map[entity.CaseStatus]int
	Status       refresh.Status
}

type UploadResult struct {
	UploadID  string
	Filename  string
	Summary   entity.UploadSummary
	FraudRate string
	Rows      int64
	Columns   []string
}

type ClearResult struct {
	Message    string
	Generation uint64
}

type RefreshResult struct {
	Generation uint64
}
