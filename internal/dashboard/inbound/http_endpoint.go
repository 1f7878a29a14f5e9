package inbound

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/shandysiswandi/fraudboard/internal/dashboard/entity"
	"github.com/shandysiswandi/fraudboard/internal/dashboard/query"
	"github.com/shandysiswandi/fraudboard/internal/dashboard/usecase"
	"github.com/shandysiswandi/fraudboard/internal/pkg/pkgerror"
	"github.com/shandysiswandi/fraudboard/internal/pkg/pkgrouter"
)

const (
	maxJSONBody   = 1 << 20
	maxUploadBody = 64 << 20
)

type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) Status(ctx context.Context, r *http.Request) (any, error) {
	return StatusResponse{
		Connectivity: h.uc.Health(ctx).Data.Connectivity,
		Views:        h.uc.ViewStatuses(ctx),
	}, nil
}

func (h *HTTPEndpoint) Styles(ctx context.Context, r *http.Request) (any, error) {
	return entity.AllStyles(), nil
}

func (h *HTTPEndpoint) Upload(ctx context.Context, r *http.Request) (any, error) {
	part, filename, cleanup, err := extractMultipartFile(r)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	result, err := h.uc.Upload(ctx, filename, part)
	if maxErr := (*http.MaxBytesError)(nil); errors.As(err, &maxErr) {
		return nil, pkgerror.NewInvalidInput(fmt.Errorf("file exceeds %d bytes", maxErr.Limit))
	}
	if err != nil {
		return nil, err
	}

	return UploadResponse{
		UploadID:               result.UploadID,
		Filename:               result.Filename,
		TotalTransactions:      result.Summary.TotalTransactions,
		FraudulentTransactions: result.Summary.FraudulentTransactions,
		FraudRate:              result.FraudRate,
		Timestamp:              result.Summary.Timestamp,
		Rows:                   result.Rows,
		Columns:                result.Columns,
	}, nil
}

func (h *HTTPEndpoint) Uploads(ctx context.Context, r *http.Request) (any, error) {
	items, err := h.uc.ListUploads(ctx)
	if err != nil {
		return nil, err
	}
	return UploadsResponse{Uploads: items}, nil
}

func (h *HTTPEndpoint) UploadByID(ctx context.Context, r *http.Request) (any, error) {
	return h.uc.GetUpload(ctx, pkgrouter.GetParam(ctx, "id"))
}

func (h *HTTPEndpoint) ClearData(ctx context.Context, r *http.Request) (any, error) {
	result, err := h.uc.ClearData(ctx)
	if err != nil {
		return nil, err
	}
	return ClearResponse{Generation: result.Generation, msg: result.Message}, nil
}

func (h *HTTPEndpoint) RefreshAll(ctx context.Context, r *http.Request) (any, error) {
	return RefreshResponse{Generation: h.uc.RefreshAll(ctx).Generation}, nil
}

func (h *HTTPEndpoint) RefreshView(ctx context.Context, r *http.Request) (any, error) {
	return h.uc.RefreshView(ctx, pkgrouter.GetParam(ctx, "name"))
}

func (h *HTTPEndpoint) ResetView(ctx context.Context, r *http.Request) (any, error) {
	return h.uc.ResetView(ctx, pkgrouter.GetParam(ctx, "name"))
}

func (h *HTTPEndpoint) LiveMetrics(ctx context.Context, r *http.Request) (any, error) {
	res := h.uc.LiveMetrics(ctx)
	return newViewResponse(res.Data, res.Status), nil
}

func (h *HTTPEndpoint) Alerts(ctx context.Context, r *http.Request) (any, error) {
	res := h.uc.Alerts(ctx)
	return AlertsResponse{Snapshot: res.Snapshot, status: res.Status}, nil
}

func (h *HTTPEndpoint) Charts(ctx context.Context, r *http.Request) (any, error) {
	res := h.uc.Charts(ctx)
	return newViewResponse(res.Data, res.Status), nil
}

func (h *HTTPEndpoint) Heatmap(ctx context.Context, r *http.Request) (any, error) {
	res := h.uc.Heatmap(ctx)
	return newViewResponse(res.Data, res.Status), nil
}

func (h *HTTPEndpoint) Monitoring(ctx context.Context, r *http.Request) (any, error) {
	res := h.uc.Monitoring(ctx)
	return newViewResponse(res.Data, res.Status), nil
}

func (h *HTTPEndpoint) Logs(ctx context.Context, r *http.Request) (any, error) {
	res := h.uc.Logs(ctx)
	return newViewResponse(res.Data, res.Status), nil
}

func (h *HTTPEndpoint) Prevention(ctx context.Context, r *http.Request) (any, error) {
	res := h.uc.Prevention(ctx)
	return newViewResponse(res.Data, res.Status), nil
}

func (h *HTTPEndpoint) Health(ctx context.Context, r *http.Request) (any, error) {
	res := h.uc.Health(ctx)
	return newViewResponse(res.Data, res.Status), nil
}

func (h *HTTPEndpoint) Results(ctx context.Context, r *http.Request) (any, error) {
	q, err := parseResultsQuery(r.URL.Query())
	if err != nil {
		return nil, err
	}

	res, err := h.uc.Results(ctx, q)
	if err != nil {
		return nil, err
	}

	return ResultsResponse{
		Transactions: res.Transactions,
		Summary:      res.Summary,
		status:       res.Status,
		total:        res.Total,
	}, nil
}

func (h *HTTPEndpoint) Cases(ctx context.Context, r *http.Request) (any, error) {
	q, err := parseCasesQuery(r.URL.Query())
	if err != nil {
		return nil, err
	}

	res, err := h.uc.Cases(ctx, q)
	if err != nil {
		return nil, err
	}

	return CasesResponse{
		Cases:        res.Cases,
		StatusCounts: res.StatusCounts,
		status:       res.Status,
		total:        res.Total,
	}, nil
}

func (h *HTTPEndpoint) SelectCase(ctx context.Context, r *http.Request) (any, error) {
	return h.uc.SelectCase(ctx, pkgrouter.GetParam(ctx, "id"))
}

func (h *HTTPEndpoint) ActiveCase(ctx context.Context, r *http.Request) (any, error) {
	return h.uc.ActiveCase(ctx)
}

func (h *HTTPEndpoint) AddCaseNote(ctx context.Context, r *http.Request) (any, error) {
	var req NoteRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}
	return h.uc.AddCaseNote(ctx, req.Note, req.Investigator)
}

func (h *HTTPEndpoint) UpdateCaseStatus(ctx context.Context, r *http.Request) (any, error) {
	var req StatusRequest
	if err := decodeJSON(r, &req); err != nil {
		return nil, err
	}
	status := entity.CaseStatus(strings.ToUpper(strings.TrimSpace(string(req.Status))))
	return h.uc.UpdateCaseStatus(ctx, status, req.Investigator)
}

func (h *HTTPEndpoint) CaseReport(ctx context.Context, r *http.Request) (any, error) {
	return h.uc.CaseReport(ctx)
}

func parseResultsQuery(values url.Values) (usecase.ResultsQuery, error) {
	q := usecase.ResultsQuery{Sort: strings.TrimSpace(values.Get("sort"))}

	if raw := values.Get("type"); strings.TrimSpace(raw) != "" {
		typ, ok := entity.ParseTxType(raw)
		if !ok {
			return q, pkgerror.NewInvalidInput(errors.New("invalid type filter"))
		}
		q.Filter.Type = typ
	}

	var err error
	if q.Filter.MinAmount, err = parseAmount(values.Get("min_amount"), "min_amount"); err != nil {
		return q, err
	}
	if q.Filter.MaxAmount, err = parseAmount(values.Get("max_amount"), "max_amount"); err != nil {
		return q, err
	}

	order, ok := query.ParseOrder(values.Get("order"), query.Asc)
	if !ok {
		return q, pkgerror.NewInvalidInput(errors.New("invalid order"))
	}
	q.Order = order

	return q, nil
}

func parseAmount(raw, field string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, pkgerror.NewInvalidInput(fmt.Errorf("invalid %s", field))
	}
	return &value, nil
}

func parseCasesQuery(values url.Values) (usecase.CasesQuery, error) {
	q := usecase.CasesQuery{
		Filter: query.CaseFilter{Search: values.Get("search")},
		Sort:   strings.TrimSpace(values.Get("sort")),
	}

	if raw := strings.ToUpper(strings.TrimSpace(values.Get("status"))); raw != "" && raw != "ALL" {
		status := entity.CaseStatus(raw)
		if !status.Valid() {
			return q, pkgerror.NewInvalidInput(errors.New("invalid status filter"))
		}
		q.Filter.Status = status
	}

	if raw := strings.ToUpper(strings.TrimSpace(values.Get("risk"))); raw != "" && raw != "ALL" {
		band := entity.RiskBand(raw)
		if !slices.Contains(entity.AllRiskBands, band) {
			return q, pkgerror.NewInvalidInput(errors.New("invalid risk filter"))
		}
		q.Filter.Risk = band
	}

	order, ok := query.ParseOrder(values.Get("order"), query.Desc)
	if !ok {
		return q, pkgerror.NewInvalidInput(errors.New("invalid order"))
	}
	q.Order = order

	return q, nil
}

func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return pkgerror.NewInvalidFormat()
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return pkgerror.NewInvalidFormat()
	}
	return nil
}

// extractMultipartFile returns the "file" part and its filename. The caller
// must run cleanup once the part has been consumed.
func extractMultipartFile(r *http.Request) (io.Reader, string, func(), error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || !strings.EqualFold(mediaType, "multipart/form-data") {
		return nil, "", func() {}, pkgerror.NewInvalidInput(errors.New("multipart/form-data with a file field is required"))
	}

	reader, err := r.MultipartReader()
	if err != nil {
		return nil, "", func() {}, pkgerror.NewInvalidFormat()
	}

	for {
		part, err := reader.NextPart()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, "", func() {}, pkgerror.NewInvalidInput(errors.New("file part is required"))
			}
			return nil, "", func() {}, pkgerror.NewInvalidFormat()
		}

		if part.FormName() == "file" {
			return part, part.FileName(), func() { _ = part.Close() }, nil
		}
		_ = part.Close()
	}
}
