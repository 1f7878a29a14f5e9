package entity

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Transaction is one flagged row as stored by the scoring backend.
type Transaction struct {
	ID                   int64    `json:"id"`
	Step                 int64    `json:"step"`
	Type                 TxType   `json:"type"`
	Amount               float64  `json:"amount"`
	OldBalanceOrg        float64  `json:"oldbalanceOrg"`
	NewBalanceOrig       float64  `json:"newbalanceOrig"`
	OldBalanceDest       float64  `json:"oldbalanceDest"`
	NewBalanceDest       float64  `json:"newbalanceDest"`
	IsFlaggedFraud       Flag     `json:"isFlaggedFraud"`
	PredictionConfidence *float64 `json:"prediction_confidence,omitempty"`
	DetectedAt           string   `json:"detected_at,omitempty"`
}

// DetectedTime parses DetectedAt. ok is false when the value is missing or unparseable.
func (t Transaction) DetectedTime() (time.Time, bool) {
	return ParseTimestamp(t.DetectedAt)
}

// Confidence returns the prediction confidence and whether one was reported.
func (t Transaction) Confidence() (float64, bool) {
	if t.PredictionConfidence == nil {
		return 0, false
	}
	return *t.PredictionConfidence, true
}

// Flag decodes 0/1, true/false and their string forms.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(bytes.TrimSpace(data)), `"`)
	switch strings.ToLower(raw) {
	case "", "null", "0", "false":
		*f = false
		return nil
	case "1", "true":
		*f = true
		return nil
	}

	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid flag value %q", raw)
	}
	*f = n != 0
	return nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp accepts RFC3339 and the naive ISO forms the backend writes.
// Naive values are read in the local zone.
func ParseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range timestampLayouts {
		var (
			t   time.Time
			err error
		)
		if layout == time.RFC3339Nano {
			t, err = time.Parse(layout, value)
		} else {
			t, err = time.ParseInLocation(layout, value, time.Local)
		}
		if err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}
