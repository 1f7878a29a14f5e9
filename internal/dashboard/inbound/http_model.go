package inbound

import (
	"encoding/json"
	"net/http"

	"github.com/shandysiswandi/fraudboard/internal/dashboard/alert"
	"github.com/shandysiswandi/fraudboard/internal/dashboard/entity"
	"github.com/shandysiswandi/fraudboard/internal/dashboard/query"
	"github.com/shandysiswandi/fraudboard/internal/dashboard/refresh"
)

// ViewResponse serializes as the view data; the refresh status travels in meta.
type ViewResponse[T any] struct {
	data   T
	status refresh.Status
}

func newViewResponse[T any](data T, status refresh.Status) ViewResponse[T] {
	return ViewResponse[T]{data: data, status: status}
}

func (v ViewResponse[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.data)
}

func (v ViewResponse[T]) Meta() map[string]any {
	return statusMeta(v.status)
}

func statusMeta(s refresh.Status) map[string]any {
	meta := map[string]any{
		"view":    s.Name,
		"policy":  s.Policy,
		"source":  s.Source,
		"loading": s.Loading,
	}
	if s.UpdatedAt != nil {
		meta["updated_at"] = s.UpdatedAt
	}
	if s.Error != "" {
		meta["error"] = s.Error
		meta["retryable"] = s.Retryable
	}
	return meta
}

type AlertsResponse struct {
	alert.Snapshot
	status refresh.Status
}

func (r AlertsResponse) Meta() map[string]any {
	return statusMeta(r.status)
}

type ResultsResponse struct {
	Transactions []entity.Transaction `json:"transactions"`
	Summary      query.Summary        `json:"summary"`
	status       refresh.Status
	total        int
}

func (r ResultsResponse) Meta() map[string]any {
	meta := statusMeta(r.status)
	meta["total"] = r.total
	meta["filtered"] = len(r.Transactions)
	return meta
}

type CasesResponse struct {
	Cases        []entity.Case             `json:"cases"`
	StatusCounts map[entity.CaseStatus]int `json:"statusCounts"`
	status       refresh.Status
	total        int
}

func (r CasesResponse) Meta() map[string]any {
	meta := statusMeta(r.status)
	meta["total"] = r.total
	meta["filtered"] = len(r.Cases)
	return meta
}

type UploadResponse struct {
	UploadID               string   `json:"upload_id"`
	Filename               string   `json:"filename"`
	TotalTransactions      int64    `json:"total_transactions"`
	FraudulentTransactions int64    `json:"fraudulent_transactions"`
	FraudRate              string   `json:"fraud_rate"`
	Timestamp              string   `json:"timestamp,omitempty"`
	Rows                   int64    `json:"rows,omitempty"`
	Columns                []string `json:"columns,omitempty"`
}

func (UploadResponse) StatusCode() int {
	return http.StatusCreated
}

func (UploadResponse) Message() string {
	return "file processed"
}

type UploadsResponse struct {
	Uploads []entity.UploadMeta `json:"uploads"`
}

func (r UploadsResponse) Meta() map[string]any {
	return map[string]any{"total": len(r.Uploads)}
}

// ClearResponse carries the backend's own confirmation as the envelope message.
type ClearResponse struct {
	Generation uint64 `json:"refresh_generation"`
	msg        string
}

func (r ClearResponse) Message() string {
	if r.msg == "" {
		return "data cleared"
	}
	return r.msg
}

type RefreshResponse struct {
	Generation uint64 `json:"refresh_generation"`
}

func (RefreshResponse) StatusCode() int {
	return http.StatusAccepted
}

func (RefreshResponse) Message() string {
	return "refresh requested"
}

type StatusResponse struct {
	Connectivity entity.Connectivity `json:"connectivity"`
	Views        []refresh.Status    `json:"views"`
}

type NoteRequest struct {
	Note         string `json:"note"`
	Investigator string `json:"investigator"`
}

type StatusRequest struct {
	Status       entity.CaseStatus `json:"status"`
	Investigator string            `json:"investigator"`
}
