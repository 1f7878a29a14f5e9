package alert

import (
	"fmt"
	"strings"
	"time"

	"github.com/shandysiswandi/fraudboard/internal/dashboard/entity"
)

// Finding is what a Rule reports before it becomes an identified Alert.
type Finding struct {
	Type        entity.AlertType
	Severity    entity.Severity
	Title       string
	Message     string
	Count       int
	TotalAmount *float64
}

// Rule inspects one fraud batch. It returns nil when its threshold is not crossed.
type Rule interface {
	Name() string
	Evaluate(txs []entity.Transaction, now time.Time) *Finding
}

// DefaultRules are the four dashboard thresholds.
func DefaultRules() []Rule {
	return []Rule{
		NewHighValueRule(1_000_000),
		NewHighFrequencyRule(time.Hour, 20),
		NewTypeSpikeRule(entity.TxTypeTransfer, 15, entity.AlertTypeTransferSpike, entity.SeverityWarning,
			"Transfer Fraud Spike", "High concentration of fraudulent transfers detected"),
		NewTypeSpikeRule(entity.TxTypeCashOut, 10, entity.AlertTypeCashoutPattern, entity.SeverityHigh,
			"Cash-Out Pattern Detected", "Suspicious cash-out pattern identified"),
	}
}

type HighValueRule struct {
	threshold float64
}

func NewHighValueRule(threshold float64) *HighValueRule {
	return &HighValueRule{threshold: threshold}
}

func (r *HighValueRule) Name() string { return "high_value" }

func (r *HighValueRule) Evaluate(txs []entity.Transaction, _ time.Time) *Finding {
	var matched []entity.Transaction
	for _, tx := range txs {
		if tx.Amount > r.threshold {
			matched = append(matched, tx)
		}
	}
	if len(matched) == 0 {
		return nil
	}

	total := sumAmounts(matched)
	return &Finding{
		Type:        entity.AlertTypeHighValue,
		Severity:    entity.SeverityCritical,
		Title:       "High-Value Fraud Detection",
		Message:     fmt.Sprintf("%d transactions over ₹10L detected", len(matched)),
		Count:       len(matched),
		TotalAmount: &total,
	}
}

// HighFrequencyRule counts transactions detected within window before now.
// A transaction with no timestamp counts as detected now; one whose timestamp
// cannot be parsed is not counted.
type HighFrequencyRule struct {
	window time.Duration
	limit  int
}

func NewHighFrequencyRule(window time.Duration, limit int) *HighFrequencyRule {
	return &HighFrequencyRule{window: window, limit: limit}
}

func (r *HighFrequencyRule) Name() string { return "high_frequency" }

func (r *HighFrequencyRule) Evaluate(txs []entity.Transaction, now time.Time) *Finding {
	since := now.Add(-r.window)

	recent := 0
	for _, tx := range txs {
		if strings.TrimSpace(tx.DetectedAt) == "" {
			recent++
			continue
		}
		if ts, ok := tx.DetectedTime(); ok && ts.After(since) {
			recent++
		}
	}
	if recent <= r.limit {
		return nil
	}

	return &Finding{
		Type:     entity.AlertTypeHighFrequency,
		Severity: entity.SeverityWarning,
		Title:    "Unusual Transaction Frequency",
		Message:  fmt.Sprintf("%d fraudulent transactions in the last hour", recent),
		Count:    recent,
	}
}

// TypeSpikeRule fires when more than limit transactions share one type.
type TypeSpikeRule struct {
	typ       entity.TxType
	limit     int
	alertType entity.AlertType
	severity  entity.Severity
	title     string
	message   string
}

func NewTypeSpikeRule(typ entity.TxType, limit int, alertType entity.AlertType, severity entity.Severity, title, message string) *TypeSpikeRule {
	return &TypeSpikeRule{
		typ:       typ,
		limit:     limit,
		alertType: alertType,
		severity:  severity,
		title:     title,
		message:   message,
	}
}

func (r *TypeSpikeRule) Name() string { return string(r.alertType) }

func (r *TypeSpikeRule) Evaluate(txs []entity.Transaction, _ time.Time) *Finding {
	count := 0
	for _, tx := range txs {
		if tx.Type == r.typ {
			count++
		}
	}
	if count <= r.limit {
		return nil
	}

	return &Finding{
		Type:     r.alertType,
		Severity: r.severity,
		Title:    r.title,
		Message:  r.message,
		Count:    count,
	}
}
