package entity

import "time"

type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Case is one row of the investigation queue.
type Case struct {
	ID                   string     `json:"id"`
	CustomerName         string     `json:"customerName"`
	Location             string     `json:"location"`
	Coordinates          GeoPoint   `json:"coordinates"`
	Amount               float64    `json:"amount"`
	Type                 TxType     `json:"type"`
	RiskScore            float64    `json:"riskScore"`
	Status               CaseStatus `json:"status"`
	Timestamp            time.Time  `json:"timestamp"`
	OriginAccount        string     `json:"originAccount"`
	DestAccount          string     `json:"destAccount"`
	SuspiciousPattern    string     `json:"suspiciousPattern"`
	IPAddress            string     `json:"ipAddress"`
	DeviceFingerprint    string     `json:"deviceFingerprint"`
	MerchantCategory     string     `json:"merchantCategory"`
	CustomerRiskProfile  string     `json:"customerRiskProfile"`
	TransactionChannel   string     `json:"transactionChannel"`
	AuthenticationMethod string     `json:"authenticationMethod"`
	GeoLocation          string     `json:"geoLocation"`
	RecurringPattern     bool       `json:"recurringPattern"`
}

type TimelineEntry struct {
	ID           int64        `json:"id,string"`
	Time         time.Time    `json:"time"`
	Event        string       `json:"event"`
	Details      string       `json:"details"`
	Kind         TimelineKind `json:"type"`
	Investigator string       `json:"investigator,omitempty"`
}

type RiskAssessment struct {
	DeviceRisk   string `json:"deviceRisk"`
	LocationRisk string `json:"locationRisk"`
	BehaviorRisk string `json:"behaviorRisk"`
	AmountRisk   string `json:"amountRisk"`
}

// CaseDetail is the materialized investigation of the selected case. Only the
// status and timeline change after selection.
type CaseDetail struct {
	Case               Case            `json:"case"`
	Status             CaseStatus      `json:"status"`
	Investigator       string          `json:"investigator"`
	Timeline           []TimelineEntry `json:"timeline"`
	RiskFactors        []string        `json:"riskFactors"`
	RecommendedActions []string        `json:"recommendedActions"`
	RelatedCases       []Case          `json:"relatedCases"`
	SimilarCases       []Case          `json:"similarCases"`
	RiskAssessment     RiskAssessment  `json:"riskAssessment"`
}

// CaseReport is the exported form of a CaseDetail.
type CaseReport struct {
	CaseID             string          `json:"caseId"`
	CustomerName       string          `json:"customerName"`
	Amount             float64         `json:"amount"`
	RiskScore          float64         `json:"riskScore"`
	Status             CaseStatus      `json:"status"`
	Investigator       string          `json:"investigator"`
	Timeline           []TimelineEntry `json:"timeline"`
	RiskFactors        []string        `json:"riskFactors"`
	RecommendedActions []string        `json:"recommendedActions"`
	ExportedAt         time.Time       `json:"exportedAt"`
}
