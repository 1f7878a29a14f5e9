package entity

// FraudStats accepts both statistics shapes served by the backend: the
// per-type map with amount buckets, and the pre-aggregated chart arrays.
type FraudStats struct {
	TotalProcessed     int64            `json:"totalProcessed,omitempty"`
	TotalFraudulent    int64            `json:"totalFraudulent,omitempty"`
	AverageAmount      float64          `json:"averageAmount,omitempty"`
	TransactionsByType map[string]int64 `json:"transactionsByType,omitempty"`
	FraudByAmount      *AmountBuckets   `json:"fraudByAmount,omitempty"`

	FraudByType  []TypeStat  `json:"fraudByType,omitempty"`
	AmountRanges []RangeStat `json:"amountRanges,omitempty"`
	TotalFraud   int64       `json:"totalFraud,omitempty"`
	TotalAmount  float64     `json:"totalAmount,omitempty"`
}

type AmountBuckets struct {
	Low    int64 `json:"low"`
	Medium int64 `json:"medium"`
	High   int64 `json:"high"`
}

type TypeStat struct {
	Type   TxType  `json:"type"`
	Count  int64   `json:"count"`
	Amount float64 `json:"amount"`
}

type RangeStat struct {
	Range   string  `json:"range"`
	Count   int64   `json:"count"`
	AvgRisk float64 `json:"avgRisk"`
}

// Charts is the fraud chart view.
type Charts struct {
	FraudByType  []TypeStat  `json:"fraudByType"`
	AmountRanges []RangeStat `json:"amountRanges"`
	TotalFraud   int64       `json:"totalFraud"`
	TotalAmount  float64     `json:"totalAmount"`
	AvgPerCase   float64     `json:"avgPerCase"`
}

// LiveMetrics is the headline dashboard view.
type LiveMetrics struct {
	TotalTransactions     int64        `json:"totalTransactions"`
	FraudDetected         int64        `json:"fraudDetected"`
	TotalAmount           float64      `json:"totalAmount"`
	FraudAmount           float64      `json:"fraudAmount"`
	DetectionRate         float64      `json:"detectionRate"`
	AverageProcessingTime float64      `json:"averageProcessingTime"`
	RecentActivity        []Activity   `json:"recentActivity"`
	HourlyStats           []HourlyStat `json:"hourlyStats"`
	HourlySource          Source       `json:"hourlySource"`
}

type Activity struct {
	ID        int64    `json:"id"`
	Type      TxType   `json:"type"`
	Amount    float64  `json:"amount"`
	Timestamp string   `json:"timestamp,omitempty"`
	RiskScore *float64 `json:"riskScore,omitempty"`
}

type HourlyStat struct {
	Hour          string  `json:"hour"`
	FraudCount    int     `json:"fraudCount"`
	DetectionRate float64 `json:"detectionRate"`
}
