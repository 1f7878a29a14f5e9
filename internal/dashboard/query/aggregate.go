package query

import (
	"github.com/shopspring/decimal"

	"github.com/shandysiswandi/fraudboard/internal/dashboard/entity"
)

// Amount bucket edges shared by the results table and the chart transform.
const (
	lowAmountEdge    = 1000
	mediumAmountEdge = 10000
)

// Summary aggregates a transaction set. Money is summed exactly and rounded
// to paise only at the end.
type Summary struct {
	Count         int                   `json:"count"`
	TotalAmount   float64               `json:"totalAmount"`
	AverageAmount float64               `json:"averageAmount"`
	Buckets       entity.AmountBuckets  `json:"amountBuckets"`
	ByType        map[entity.TxType]int `json:"byType"`
}

func Summarize(txs []entity.Transaction) Summary {
	total := decimal.Zero
	s := Summary{Count: len(txs), ByType: make(map[entity.TxType]int)}

	for _, tx := range txs {
		total = total.Add(decimal.NewFromFloat(tx.Amount))
		s.ByType[tx.Type]++

		switch {
		case tx.Amount < lowAmountEdge:
			s.Buckets.Low++
		case tx.Amount < mediumAmountEdge:
			s.Buckets.Medium++
		default:
			s.Buckets.High++
		}
	}

	s.TotalAmount = total.Round(2).InexactFloat64()
	if s.Count > 0 {
		s.AverageAmount = total.Div(decimal.NewFromInt(int64(s.Count))).Round(2).InexactFloat64()
	}
	return s
}

// SumAmounts adds the amounts of txs exactly.
func SumAmounts(txs []entity.Transaction) float64 {
	total := decimal.Zero
	for _, tx := range txs {
		total = total.Add(decimal.NewFromFloat(tx.Amount))
	}
	return total.Round(2).InexactFloat64()
}

// Mean is the exact average of values rounded to two decimals; 0 for none.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total.Div(decimal.NewFromInt(int64(len(values)))).Round(2).InexactFloat64()
}
