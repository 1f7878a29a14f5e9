package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shandysiswandi/fraudboard/internal/dashboard/entity"
	"github.com/shandysiswandi/fraudboard/internal/dashboard/fallback"
	"github.com/shandysiswandi/fraudboard/internal/dashboard/query"
	"github.com/shandysiswandi/fraudboard/internal/pkg/pkgerror"
)

const (
	defaultInvestigator = "Current User"
	unknownAttribute    = "Unknown"

	freezeRiskScore    = 90
	similarAmountDelta = 100000
	maxRelatedCases    = 3
	maxSimilarCases    = 5
)

var merchantByType = map[entity.TxType]string{
	entity.TxTypeTransfer: "Person to Person",
	entity.TxTypeCashOut:  "ATM Withdrawal",
	entity.TxTypePayment:  "Merchant Payment",
	entity.TxTypeCashIn:   "Cash Deposit",
	entity.TxTypeDebit:    "Bank Debit",
}

// counterID is the timeline ID source when no generator is injected.
type counterID struct {
	n atomic.Int64
}

func (c *counterID) Generate() int64 {
	return c.n.Add(1)
}

// casesFromTransactions turns a fraud batch into investigation rows. The
// backend stores no customer or device data, so those attributes are
// derived from the transaction itself or marked unknown.
func casesFromTransactions(txs []entity.Transaction, now time.Time) []entity.Case {
	cities := fallback.Cities()

	out := make([]entity.Case, 0, len(txs))
	for _, tx := range txs {
		city := cities[cityIndex(tx, len(cities))]

		ts, ok := tx.DetectedTime()
		if !ok {
			ts = now
		}
		risk, _ := tx.Confidence()

		merchant, ok := merchantByType[tx.Type]
		if !ok {
			merchant = unknownAttribute
		}

		out = append(out, entity.Case{
			ID:                   fmt.Sprintf("TXN%03d", tx.ID),
			CustomerName:         fmt.Sprintf("Customer %d", tx.ID),
			Location:             city.Name + ", MP",
			Coordinates:          entity.GeoPoint{Lat: city.Lat, Lng: city.Lng},
			Amount:               tx.Amount,
			Type:                 tx.Type,
			RiskScore:            risk,
			Status:               caseStatusOf(tx),
			Timestamp:            ts,
			OriginAccount:        unknownAttribute,
			DestAccount:          unknownAttribute,
			SuspiciousPattern:    suspiciousPattern(tx),
			IPAddress:            unknownAttribute,
			DeviceFingerprint:    unknownAttribute,
			MerchantCategory:     merchant,
			CustomerRiskProfile:  riskProfile(risk),
			TransactionChannel:   "Batch Upload",
			AuthenticationMethod: unknownAttribute,
			GeoLocation:          city.District + " District, MP",
		})
	}
	return out
}

func caseStatusOf(tx entity.Transaction) entity.CaseStatus {
	if tx.IsFlaggedFraud {
		return entity.CaseStatusFlagged
	}
	return entity.CaseStatusUnderReview
}

func suspiciousPattern(tx entity.Transaction) string {
	var parts []string
	if tx.Amount > 1_000_000 {
		parts = append(parts, "Large amount")
	}
	if tx.OldBalanceOrg > 0 && tx.NewBalanceOrig == 0 {
		parts = append(parts, "Origin account emptied")
	}
	if tx.Amount > 0 && tx.OldBalanceDest == 0 && tx.NewBalanceDest == 0 {
		parts = append(parts, "Beneficiary balance unchanged")
	}
	if len(parts) == 0 {
		return "Flagged by model"
	}
	return strings.Join(parts, ", ")
}

func riskProfile(score float64) string {
	switch {
	case score >= 90:
		return "High"
	case score >= 60:
		return "Medium"
	default:
		return "Low"
	}
}

// CasesQuery filters and sorts the investigation queue.
type CasesQuery struct {
	Filter query.CaseFilter
	Sort   string
	Order  query.Order
}

func (u *Usecase) Cases(ctx context.Context, q CasesQuery) (CasesResult, error) {
	by, ok := query.CaseSort[q.Sort]
	if q.Sort != "" && !ok {
		return CasesResult{}, pkgerror.NewInvalidInput(fmt.Errorf("unsupported sort field %q", q.Sort))
	}
	if q.Sort == "" {
		by = query.CaseSort["riskScore"]
	}
	if q.Order == "" {
		q.Order = query.Desc
	}

	state := u.views.Investigation.State()
	filtered := query.Sort(q.Filter.Apply(state.Data), by, q.Order)
	if filtered == nil {
		filtered = []entity.Case{}
	}

	return CasesResult{
		Cases:        filtered,
		Total:        len(state.Data),
		StatusCounts: query.StatusCounts(state.Data),
		Status:       u.views.Investigation.Status(),
	}, nil
}

// SelectCase materializes the investigation of one case and makes it the
// active case, discarding any previous selection.
func (u *Usecase) SelectCase(ctx context.Context, id string) (entity.CaseDetail, error) {
	if strings.TrimSpace(id) == "" {
		return entity.CaseDetail{}, pkgerror.NewInvalidInput(errors.New("case id is required"))
	}

	cases := u.views.Investigation.State().Data
	idx := -1
	for i := range cases {
		if cases[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return entity.CaseDetail{}, pkgerror.NewBusiness("case not found", pkgerror.CodeNotFound)
	}

	detail := u.investigate(cases[idx], cases)
	if err := u.store.SelectCase(ctx, detail); err != nil {
		return entity.CaseDetail{}, normalizeErr(err)
	}
	return detail, nil
}

func (u *Usecase) ActiveCase(ctx context.Context) (entity.CaseDetail, error) {
	detail, err := u.store.ActiveCase(ctx)
	if err != nil {
		return entity.CaseDetail{}, mapStoreErr(err, "active case")
	}
	return detail, nil
}

// AddCaseNote appends a note to the active case timeline. Blank notes are rejected.
func (u *Usecase) AddCaseNote(ctx context.Context, note, investigator string) (entity.CaseDetail, error) {
	note = strings.TrimSpace(note)
	if note == "" {
		return entity.CaseDetail{}, pkgerror.NewInvalidInput(errors.New("note must not be blank"))
	}

	detail, err := u.store.UpdateCase(ctx, func(d *entity.CaseDetail) error {
		d.Timeline = append(d.Timeline, entity.TimelineEntry{
			ID:           u.entryID.Generate(),
			Time:         u.clock.Now(),
			Event:        "Investigation Note",
			Details:      note,
			Kind:         entity.TimelineKindNote,
			Investigator: investigatorOr(investigator, d.Investigator),
		})
		return nil
	})
	if err != nil {
		return entity.CaseDetail{}, mapStoreErr(err, "active case")
	}
	return detail, nil
}

func (u *Usecase) UpdateCaseStatus(ctx context.Context, status entity.CaseStatus, investigator string) (entity.CaseDetail, error) {
	if !status.Valid() {
		return entity.CaseDetail{}, pkgerror.NewInvalidInput(fmt.Errorf("invalid case status %q", status))
	}

	detail, err := u.store.UpdateCase(ctx, func(d *entity.CaseDetail) error {
		d.Status = status
		d.Timeline = append(d.Timeline, entity.TimelineEntry{
			ID:           u.entryID.Generate(),
			Time:         u.clock.Now(),
			Event:        "Status Update",
			Details:      "Case status changed to: " + string(status),
			Kind:         entity.TimelineKindStatus,
			Investigator: investigatorOr(investigator, d.Investigator),
		})
		return nil
	})
	if err != nil {
		return entity.CaseDetail{}, mapStoreErr(err, "active case")
	}
	return detail, nil
}

func (u *Usecase) CaseReport(ctx context.Context) (entity.CaseReport, error) {
	d, err := u.store.ActiveCase(ctx)
	if err != nil {
		return entity.CaseReport{}, mapStoreErr(err, "active case")
	}

	return entity.CaseReport{
		CaseID:             d.Case.ID,
		CustomerName:       d.Case.CustomerName,
		Amount:             d.Case.Amount,
		RiskScore:          d.Case.RiskScore,
		Status:             d.Status,
		Investigator:       d.Investigator,
		Timeline:           d.Timeline,
		RiskFactors:        d.RiskFactors,
		RecommendedActions: d.RecommendedActions,
		ExportedAt:         u.clock.Now(),
	}, nil
}

func investigatorOr(name, def string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	if def != "" {
		return def
	}
	return defaultInvestigator
}

func (u *Usecase) investigate(c entity.Case, all []entity.Case) entity.CaseDetail {
	now := u.clock.Now()
	entry := func(at time.Time, event, details string, kind entity.TimelineKind) entity.TimelineEntry {
		return entity.TimelineEntry{ID: u.entryID.Generate(), Time: at, Event: event, Details: details, Kind: kind}
	}

	firstAction := "Enhanced monitoring required"
	if c.RiskScore > freezeRiskScore {
		firstAction = "Immediate account freeze recommended"
	}

	return entity.CaseDetail{
		Case:         c,
		Status:       c.Status,
		Investigator: defaultInvestigator,
		Timeline: []entity.TimelineEntry{
			entry(c.Timestamp, "Transaction Initiated", fmt.Sprintf("%s transaction for ₹%s", c.Type, formatAmount(c.Amount)), entity.TimelineKindTransaction),
			entry(c.Timestamp.Add(time.Second), "Fraud Detection", "ML model flagged transaction as suspicious", entity.TimelineKindSystem),
			entry(c.Timestamp.Add(30*time.Second), "Risk Assessment", "Risk score calculated: "+formatScore(c.RiskScore)+"%", entity.TimelineKindSystem),
			entry(c.Timestamp.Add(2*time.Minute), "Investigation Started", "Case assigned to fraud investigation team", entity.TimelineKindInvestigation),
			entry(now, "Currently Under Review", "Awaiting investigator action", entity.TimelineKindPending),
		},
		RiskFactors: []string{
			"High amount: ₹" + formatAmount(c.Amount),
			"Risk Score: " + formatScore(c.RiskScore) + "/100",
			"Pattern: " + c.SuspiciousPattern,
			"Time: " + c.Timestamp.Format("2006-01-02 15:04:05"),
			"Location: " + c.Location,
			"Device: " + c.DeviceFingerprint,
			"Authentication: " + c.AuthenticationMethod,
			"Channel: " + c.TransactionChannel,
			"Customer Risk Profile: " + c.CustomerRiskProfile,
		},
		RecommendedActions: []string{
			firstAction,
			"Contact customer for verification",
			"Review transaction history for patterns",
			"Check device and IP reputation",
			"Verify merchant legitimacy",
			"Cross-reference with fraud databases",
			"Coordinate with local branch if needed",
			"Document all investigation steps",
		},
		RelatedCases:   relatedCases(c, all),
		SimilarCases:   similarCases(c, all),
		RiskAssessment: assessRisk(c),
	}
}

func known(v string) bool {
	return v != "" && v != unknownAttribute
}

func sameKnown(a, b string) bool {
	return known(a) && a == b
}

func relatedCases(c entity.Case, all []entity.Case) []entity.Case {
	out := []entity.Case{}
	for _, o := range all {
		if len(out) == maxRelatedCases {
			break
		}
		if o.ID == c.ID {
			continue
		}
		if sameKnown(o.OriginAccount, c.OriginAccount) || sameKnown(o.CustomerName, c.CustomerName) {
			out = append(out, o)
		}
	}
	return out
}

func similarCases(c entity.Case, all []entity.Case) []entity.Case {
	out := []entity.Case{}
	for _, o := range all {
		if len(out) == maxSimilarCases {
			break
		}
		if o.ID == c.ID {
			continue
		}
		if sameKnown(o.CustomerName, c.CustomerName) ||
			sameKnown(o.DeviceFingerprint, c.DeviceFingerprint) ||
			sameKnown(o.IPAddress, c.IPAddress) ||
			math.Abs(o.Amount-c.Amount) < similarAmountDelta {
			out = append(out, o)
		}
	}
	return out
}

func assessRisk(c entity.Case) entity.RiskAssessment {
	r := entity.RiskAssessment{
		DeviceRisk:   "High",
		LocationRisk: "Medium",
		BehaviorRisk: "High",
		AmountRisk:   "Medium",
	}
	if strings.Contains(c.DeviceFingerprint, "ATM") {
		r.DeviceRisk = "Medium"
	}
	if strings.Contains(c.GeoLocation, "Railway") || strings.Contains(c.GeoLocation, "Mall") {
		r.LocationRisk = "High"
	}
	if c.RecurringPattern {
		r.BehaviorRisk = "Low"
	}
	switch {
	case c.Amount > 1_000_000:
		r.AmountRisk = "Critical"
	case c.Amount > 500_000:
		r.AmountRisk = "High"
	}
	return r
}

// formatAmount groups the integer part by thousands and keeps up to two decimals.
func formatAmount(v float64) string {
	s := decimal.NewFromFloat(v).Round(2).String()

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return sign + b.String()
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
