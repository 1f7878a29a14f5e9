package query

import (
	"time"

	"github.com/shandysiswandi/fraudboard/internal/dashboard/entity"
)

// TransactionFilter is the results table filter.
type TransactionFilter struct {
	Type      entity.TxType
	MinAmount *float64
	MaxAmount *float64
}

func (f TransactionFilter) Predicates() []Predicate[entity.Transaction] {
	var preds []Predicate[entity.Transaction]
	if f.Type != "" {
		preds = append(preds, func(tx entity.Transaction) bool { return tx.Type == f.Type })
	}
	if f.MinAmount != nil || f.MaxAmount != nil {
		preds = append(preds, func(tx entity.Transaction) bool { return Between(tx.Amount, f.MinAmount, f.MaxAmount) })
	}
	return preds
}

func (f TransactionFilter) Apply(txs []entity.Transaction) []entity.Transaction {
	return Filter(txs, f.Predicates()...)
}

func detectedAt(tx entity.Transaction) time.Time {
	t, _ := tx.DetectedTime()
	return t
}

func confidence(tx entity.Transaction) float64 {
	c, ok := tx.Confidence()
	if !ok {
		return -1
	}
	return c
}

// TransactionSort maps the sortable results table columns.
var TransactionSort = map[string]Compare[entity.Transaction]{
	"id":                    ByNumber(func(tx entity.Transaction) int64 { return tx.ID }),
	"step":                  ByNumber(func(tx entity.Transaction) int64 { return tx.Step }),
	"type":                  ByText(func(tx entity.Transaction) string { return string(tx.Type) }),
	"amount":                ByNumber(func(tx entity.Transaction) float64 { return tx.Amount }),
	"oldbalanceOrg":         ByNumber(func(tx entity.Transaction) float64 { return tx.OldBalanceOrg }),
	"newbalanceOrig":        ByNumber(func(tx entity.Transaction) float64 { return tx.NewBalanceOrig }),
	"oldbalanceDest":        ByNumber(func(tx entity.Transaction) float64 { return tx.OldBalanceDest }),
	"newbalanceDest":        ByNumber(func(tx entity.Transaction) float64 { return tx.NewBalanceDest }),
	"prediction_confidence": ByNumber(confidence),
	"detected_at":           ByTime(detectedAt),
}
