package query

import (
	"strings"
	"time"

	"github.com/shandysiswandi/fraudboard/internal/dashboard/entity"
)

// CaseFilter is the investigation queue filter.
type CaseFilter struct {
	Search string
	Status entity.CaseStatus
	Risk   entity.RiskBand
}

func (f CaseFilter) Predicates() []Predicate[entity.Case] {
	var preds []Predicate[entity.Case]
	if search := strings.TrimSpace(f.Search); search != "" {
		preds = append(preds, func(c entity.Case) bool {
			return ContainsFold(search, c.CustomerName, c.ID, c.Location)
		})
	}
	if f.Status != "" {
		preds = append(preds, func(c entity.Case) bool { return c.Status == f.Status })
	}
	if f.Risk != "" {
		preds = append(preds, func(c entity.Case) bool { return entity.RiskBandOf(c.RiskScore) == f.Risk })
	}
	return preds
}

func (f CaseFilter) Apply(cases []entity.Case) []entity.Case {
	return Filter(cases, f.Predicates()...)
}

var CaseSort = map[string]Compare[entity.Case]{
	"id":           ByText(func(c entity.Case) string { return c.ID }),
	"customerName": ByText(func(c entity.Case) string { return c.CustomerName }),
	"location":     ByText(func(c entity.Case) string { return c.Location }),
	"type":         ByText(func(c entity.Case) string { return string(c.Type) }),
	"status":       ByText(func(c entity.Case) string { return string(c.Status) }),
	"amount":       ByNumber(func(c entity.Case) float64 { return c.Amount }),
	"riskScore":    ByNumber(func(c entity.Case) float64 { return c.RiskScore }),
	"timestamp":    ByTime(func(c entity.Case) time.Time { return c.Timestamp }),
}

// StatusCounts counts every status, including those with no cases.
func StatusCounts(cases []entity.Case) map[entity.CaseStatus]int {
	out := make(map[entity.CaseStatus]int, len(entity.AllCaseStatuses))
	for _, s := range entity.AllCaseStatuses {
		out[s] = 0
	}
	for _, c := range cases {
		out[c.Status]++
	}
	return out
}
