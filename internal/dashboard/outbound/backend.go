package outbound

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/shandysiswandi/fraudboard/internal/dashboard/entity"
	"github.com/shandysiswandi/fraudboard/internal/pkg/pkgerror"
)

type TransactionsResponse struct {
	Count        int                  `json:"count"`
	Transactions []entity.Transaction `json:"transactions"`
	Timestamp    string               `json:"timestamp"`
}

type ClearResponse struct {
	Message string `json:"message"`
}

func (c *Client) Health(ctx context.Context) (entity.Health, error) {
	var out entity.Health
	if err := c.do(ctx, http.MethodGet, "/health", "", nil, &out); err != nil {
		return entity.Health{}, err
	}
	if out.Status == "" {
		return entity.Health{}, pkgerror.NewMalformed(errors.New("health: missing status"))
	}
	return out, nil
}

// Upload streams the file as multipart field "file" to the prediction endpoint.
func (c *Client) Upload(ctx context.Context, filename string, r io.Reader) (entity.UploadSummary, error) {
	body, contentType := multipartBody("file", filename, r)

	var out struct {
		entity.UploadSummary
		Total *int64 `json:"total_transactions"`
	}
	if err := c.do(ctx, http.MethodPost, "/predict-csv", contentType, body, &out); err != nil {
		return entity.UploadSummary{}, err
	}
	if out.Total == nil {
		return entity.UploadSummary{}, pkgerror.NewMalformed(errors.New("upload: missing total_transactions"))
	}

	out.UploadSummary.TotalTransactions = *out.Total
	return out.UploadSummary, nil
}

func (c *Client) FraudulentTransactions(ctx context.Context, limit int) (TransactionsResponse, error) {
	var out TransactionsResponse
	if err := c.do(ctx, http.MethodGet, "/fraudulent-transactions"+limitQuery(limit), "", nil, &out); err != nil {
		return TransactionsResponse{}, err
	}
	if out.Transactions == nil {
		return TransactionsResponse{}, pkgerror.NewMalformed(errors.New("fraudulent-transactions: missing transactions"))
	}
	if out.Count == 0 {
		out.Count = len(out.Transactions)
	}
	return out, nil
}

func (c *Client) FraudStats(ctx context.Context) (entity.FraudStats, error) {
	var out entity.FraudStats
	if err := c.do(ctx, http.MethodGet, "/fraud-stats", "", nil, &out); err != nil {
		return entity.FraudStats{}, err
	}
	return out, nil
}

// ProcessingLogs accepts both a bare array and a {"logs": [...]} envelope.
func (c *Client) ProcessingLogs(ctx context.Context, limit int) ([]entity.ProcessingLog, error) {
	var out logsPayload
	if err := c.do(ctx, http.MethodGet, "/processing-logs"+limitQuery(limit), "", nil, &out); err != nil {
		return nil, err
	}
	return out.logs, nil
}

// GeoData accepts both {"districts": [...]} and a bare array of districts.
func (c *Client) GeoData(ctx context.Context) (entity.GeoData, error) {
	var out geoPayload
	if err := c.do(ctx, http.MethodGet, "/fraud-geo-data", "", nil, &out); err != nil {
		return entity.GeoData{}, err
	}
	return entity.GeoData{Districts: out.districts}, nil
}

func (c *Client) ClearData(ctx context.Context) (ClearResponse, error) {
	var out ClearResponse
	if err := c.do(ctx, http.MethodDelete, "/clear-data", "", nil, &out); err != nil {
		return ClearResponse{}, err
	}
	return out, nil
}

type logsPayload struct {
	logs []entity.ProcessingLog
}

func (p *logsPayload) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		return json.Unmarshal(data, &p.logs)
	}

	var env struct {
		Logs *[]entity.ProcessingLog `json:"logs"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	if env.Logs == nil {
		return errors.New("processing-logs: missing logs")
	}
	p.logs = *env.Logs
	return nil
}

type geoPayload struct {
	districts []entity.GeoDistrict
}

func (p *geoPayload) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		return json.Unmarshal(data, &p.districts)
	}

	var env struct {
		Districts []entity.GeoDistrict `json:"districts"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	p.districts = env.Districts
	return nil
}
