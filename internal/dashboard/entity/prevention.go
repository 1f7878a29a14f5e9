package entity

type Recommendation struct {
	ID               string         `json:"id"`
	Title            string         `json:"title"`
	Category         string         `json:"category"`
	Priority         Priority       `json:"priority"`
	Impact           string         `json:"impact"`
	Effort           string         `json:"effort"`
	Description      string         `json:"description"`
	Details          []string       `json:"details"`
	EstimatedSavings float64        `json:"estimatedSavings"`
	Implementation   Implementation `json:"implementation"`
}

type Implementation struct {
	Timeframe string `json:"timeframe"`
	Resources string `json:"resources"`
	Cost      string `json:"cost"`
}

type PreventionMetrics struct {
	TotalPrevented      int     `json:"totalPrevented"`
	AmountSaved         float64 `json:"amountSaved"`
	RiskReduction       float64 `json:"riskReduction"`
	ImplementationScore float64 `json:"implementationScore"`
}

type Prevention struct {
	Recommendations []Recommendation  `json:"recommendations"`
	Metrics         PreventionMetrics `json:"metrics"`
}
