package entity

// Descriptor is a presentation hint. Color is a palette token and Icon a
// symbolic icon name; the browser maps both onto its own assets.
type Descriptor struct {
	Color string `json:"color"`
	Icon  string `json:"icon"`
}

var (
	SeverityStyles = map[Severity]Descriptor{
		SeverityCritical: {Color: "red", Icon: "alert-octagon"},
		SeverityHigh:     {Color: "orange", Icon: "alert-triangle"},
		SeverityWarning:  {Color: "yellow", Icon: "alert-circle"},
	}

	RiskLevelStyles = map[RiskLevel]Descriptor{
		RiskLevelCritical: {Color: "red", Icon: "shield-off"},
		RiskLevelHigh:     {Color: "orange", Icon: "shield-alert"},
		RiskLevelMedium:   {Color: "yellow", Icon: "shield"},
		RiskLevelLow:      {Color: "green", Icon: "shield-check"},
	}

	AlertTypeStyles = map[AlertType]Descriptor{
		AlertTypeHighValue:      {Color: "red", Icon: "currency"},
		AlertTypeHighFrequency:  {Color: "yellow", Icon: "lightning"},
		AlertTypeTransferSpike:  {Color: "yellow", Icon: "switch-horizontal"},
		AlertTypeCashoutPattern: {Color: "orange", Icon: "cash"},
	}

	CaseStatusStyles = map[CaseStatus]Descriptor{
		CaseStatusFlagged:       {Color: "red", Icon: "flag"},
		CaseStatusUnderReview:   {Color: "yellow", Icon: "eye"},
		CaseStatusInvestigating: {Color: "blue", Icon: "search"},
		CaseStatusBlocked:       {Color: "red-dark", Icon: "ban"},
		CaseStatusResolved:      {Color: "green", Icon: "check-circle"},
		CaseStatusFalsePositive: {Color: "gray", Icon: "x-circle"},
	}

	TimelineKindStyles = map[TimelineKind]Descriptor{
		TimelineKindTransaction:   {Color: "blue", Icon: "credit-card"},
		TimelineKindSystem:        {Color: "purple", Icon: "cpu"},
		TimelineKindInvestigation: {Color: "orange", Icon: "search"},
		TimelineKindNote:          {Color: "gray", Icon: "pencil"},
		TimelineKindStatus:        {Color: "green", Icon: "refresh"},
		TimelineKindPending:       {Color: "yellow", Icon: "clock"},
	}

	RiskBandStyles = map[RiskBand]Descriptor{
		RiskBandCritical: {Color: "red", Icon: "fire"},
		RiskBandHigh:     {Color: "orange", Icon: "trending-up"},
		RiskBandMedium:   {Color: "yellow", Icon: "minus"},
		RiskBandLow:      {Color: "green", Icon: "trending-down"},
	}

	PriorityStyles = map[Priority]Descriptor{
		PriorityHigh:   {Color: "red", Icon: "chevron-double-up"},
		PriorityMedium: {Color: "yellow", Icon: "chevron-up"},
		PriorityLow:    {Color: "green", Icon: "chevron-down"},
	}

	TxTypeStyles = map[TxType]Descriptor{
		TxTypeTransfer: {Color: "#EF4444", Icon: "switch-horizontal"},
		TxTypeCashOut:  {Color: "#F59E0B", Icon: "cash"},
		TxTypeCashIn:   {Color: "#10B981", Icon: "download"},
		TxTypePayment:  {Color: "#3B82F6", Icon: "shopping-cart"},
		TxTypeDebit:    {Color: "#8B5CF6", Icon: "credit-card"},
	}

	ConnectivityStyles = map[Connectivity]Descriptor{
		ConnectivityChecking:     {Color: "yellow", Icon: "refresh"},
		ConnectivityConnected:    {Color: "green", Icon: "check-circle"},
		ConnectivityDisconnected: {Color: "red", Icon: "x-circle"},
	}
)

// HeatMarker grades a heatmap marker by average risk score and grows it with
// the case count, capped at 100.
func HeatMarker(avgRisk float64, count int) (string, int) {
	color, size := "#10B981", 35
	switch {
	case avgRisk >= 85:
		color, size = "#DC2626", 70
	case avgRisk >= 75:
		color, size = "#EA580C", 60
	case avgRisk >= 65:
		color, size = "#D97706", 50
	}
	return color, min(size+count*3, 100)
}

// Styles is the full lookup served to the browser in one document.
type Styles struct {
	Severity     map[Severity]Descriptor     `json:"severity"`
	RiskLevel    map[RiskLevel]Descriptor    `json:"riskLevel"`
	AlertType    map[AlertType]Descriptor    `json:"alertType"`
	CaseStatus   map[CaseStatus]Descriptor   `json:"caseStatus"`
	Timeline     map[TimelineKind]Descriptor `json:"timeline"`
	RiskBand     map[RiskBand]Descriptor     `json:"riskBand"`
	Priority     map[Priority]Descriptor     `json:"priority"`
	TxType       map[TxType]Descriptor       `json:"txType"`
	Connectivity map[Connectivity]Descriptor `json:"connectivity"`
}

func AllStyles() Styles {
	return Styles{
		Severity:     SeverityStyles,
		RiskLevel:    RiskLevelStyles,
		AlertType:    AlertTypeStyles,
		CaseStatus:   CaseStatusStyles,
		Timeline:     TimelineKindStyles,
		RiskBand:     RiskBandStyles,
		Priority:     PriorityStyles,
		TxType:       TxTypeStyles,
		Connectivity: ConnectivityStyles,
	}
}
