package entity

import "github.com/shopspring/decimal"

type ProcessingLog struct {
	ID                int64    `json:"id,omitempty"`
	Filename          string   `json:"filename"`
	TotalTransactions int64    `json:"total_transactions"`
	FraudulentCount   int64    `json:"fraudulent_count"`
	ProcessingTime    *float64 `json:"processing_time,omitempty"`
	ProcessedAt       string   `json:"processed_at"`
}

// FraudPercentage is fraudulent/total as a percentage with one decimal, "0" for an empty file.
func (l ProcessingLog) FraudPercentage() string {
	if l.TotalTransactions <= 0 {
		return "0"
	}
	return decimal.NewFromInt(l.FraudulentCount).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(l.TotalTransactions)).
		StringFixed(1)
}

type LogRow struct {
	ProcessingLog
	FraudPercentage string `json:"fraud_percentage"`
}
