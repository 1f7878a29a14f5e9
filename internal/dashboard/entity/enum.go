package entity

import "strings"

type TxType string

const (
	TxTypeTransfer TxType = "TRANSFER"
	TxTypeCashOut  TxType = "CASH_OUT"
	TxTypeCashIn   TxType = "CASH_IN"
	TxTypePayment  TxType = "PAYMENT"
	TxTypeDebit    TxType = "DEBIT"
)

// AllTxTypes lists every known transaction type in display order.
var AllTxTypes = []TxType{TxTypeTransfer, TxTypeCashOut, TxTypeCashIn, TxTypePayment, TxTypeDebit}

func (t TxType) Valid() bool {
	for _, v := range AllTxTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ParseTxType is case-insensitive and accepts "cash-out" style spellings.
func ParseTxType(value string) (TxType, bool) {
	t := TxType(strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(value)), "-", "_"))
	return t, t.Valid()
}

type AlertType string

const (
	AlertTypeHighValue      AlertType = "HIGH_VALUE"
	AlertTypeHighFrequency  AlertType = "HIGH_FREQUENCY"
	AlertTypeTransferSpike  AlertType = "TRANSFER_SPIKE"
	AlertTypeCashoutPattern AlertType = "CASHOUT_PATTERN"
)

var AllAlertTypes = []AlertType{AlertTypeHighValue, AlertTypeHighFrequency, AlertTypeTransferSpike, AlertTypeCashoutPattern}

// Severity is ordered: CRITICAL > HIGH > WARNING.
type Severity string

const (
	SeverityWarning  Severity = "WARNING"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

var AllSeverities = []Severity{SeverityCritical, SeverityHigh, SeverityWarning}

// Rank returns 0 for unknown severities.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityHigh:
		return 2
	case SeverityWarning:
		return 1
	default:
		return 0
	}
}

// RiskLevel is the overall level derived from the highest alert severity of a cycle.
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "LOW"
	RiskLevelMedium   RiskLevel = "MEDIUM"
	RiskLevelHigh     RiskLevel = "HIGH"
	RiskLevelCritical RiskLevel = "CRITICAL"
)

var AllRiskLevels = []RiskLevel{RiskLevelLow, RiskLevelMedium, RiskLevelHigh, RiskLevelCritical}

// RiskLevelOf maps a severity onto the overall level. WARNING is shown as MEDIUM.
func RiskLevelOf(s Severity) RiskLevel {
	switch s {
	case SeverityCritical:
		return RiskLevelCritical
	case SeverityHigh:
		return RiskLevelHigh
	case SeverityWarning:
		return RiskLevelMedium
	default:
		return RiskLevelLow
	}
}

type CaseStatus string

const (
	CaseStatusFlagged       CaseStatus = "FLAGGED"
	CaseStatusUnderReview   CaseStatus = "UNDER_REVIEW"
	CaseStatusInvestigating CaseStatus = "INVESTIGATING"
	CaseStatusBlocked       CaseStatus = "BLOCKED"
	CaseStatusResolved      CaseStatus = "RESOLVED"
	CaseStatusFalsePositive CaseStatus = "FALSE_POSITIVE"
)

var AllCaseStatuses = []CaseStatus{
	CaseStatusFlagged,
	CaseStatusUnderReview,
	CaseStatusInvestigating,
	CaseStatusBlocked,
	CaseStatusResolved,
	CaseStatusFalsePositive,
}

func (s CaseStatus) Valid() bool {
	for _, v := range AllCaseStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type TimelineKind string

const (
	TimelineKindTransaction   TimelineKind = "transaction"
	TimelineKindSystem        TimelineKind = "system"
	TimelineKindInvestigation TimelineKind = "investigation"
	TimelineKindNote          TimelineKind = "note"
	TimelineKindStatus        TimelineKind = "status"
	TimelineKindPending       TimelineKind = "pending"
)

var AllTimelineKinds = []TimelineKind{
	TimelineKindTransaction,
	TimelineKindSystem,
	TimelineKindInvestigation,
	TimelineKindNote,
	TimelineKindStatus,
	TimelineKindPending,
}

// RiskBand buckets a 0-100 risk score for the investigation filter.
type RiskBand string

const (
	RiskBandCritical RiskBand = "CRITICAL"
	RiskBandHigh     RiskBand = "HIGH"
	RiskBandMedium   RiskBand = "MEDIUM"
	RiskBandLow      RiskBand = "LOW"
)

var AllRiskBands = []RiskBand{RiskBandCritical, RiskBandHigh, RiskBandMedium, RiskBandLow}

func RiskBandOf(score float64) RiskBand {
	switch {
	case score >= 90:
		return RiskBandCritical
	case score >= 75:
		return RiskBandHigh
	case score >= 60:
		return RiskBandMedium
	default:
		return RiskBandLow
	}
}

type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

var AllPriorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Source tells whether a view currently shows backend data or a generated stand-in.
type Source string

const (
	SourceNone     Source = ""
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

type Connectivity string

const (
	ConnectivityChecking     Connectivity = "checking"
	ConnectivityConnected    Connectivity = "connected"
	ConnectivityDisconnected Connectivity = "disconnected"
)

var AllConnectivities = []Connectivity{ConnectivityChecking, ConnectivityConnected, ConnectivityDisconnected}
