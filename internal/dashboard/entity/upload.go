package entity

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type UploadStatus string

const (
	UploadStatusProcessing UploadStatus = "PROCESSING"
	UploadStatusDone       UploadStatus = "DONE"
	UploadStatusFailed     UploadStatus = "FAILED"
)

// UploadSummary is the backend's answer to a file submission.
type UploadSummary struct {
	TotalTransactions      int64             `json:"total_transactions"`
	FraudulentTransactions int64             `json:"fraudulent_transactions"`
	FraudulentData         []json.RawMessage `json:"fraudulent_data"`
	Timestamp              string            `json:"timestamp"`
}

// FraudRate formats fraudulent/total with two decimals, e.g. "7.00%". Zero totals give "0%".
func (s UploadSummary) FraudRate() string {
	if s.TotalTransactions <= 0 {
		return "0%"
	}
	return decimal.NewFromInt(s.FraudulentTransactions).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(s.TotalTransactions)).
		StringFixed(2) + "%"
}

// UploadMeta tracks one file submission made through this service.
type UploadMeta struct {
	ID        string       `json:"id"`
	Filename  string       `json:"filename"`
	Status    UploadStatus `json:"status"`
	Err       string       `json:"error,omitempty"`
	StartedAt int64        `json:"startedAt"`
	EndedAt   int64        `json:"endedAt,omitempty"`

	// Local pre-check of CSV files; zero for spreadsheets.
	Rows    int64    `json:"rows"`
	Columns []string `json:"columns,omitempty"`

	Summary *UploadSummary `json:"summary,omitempty"`
}
