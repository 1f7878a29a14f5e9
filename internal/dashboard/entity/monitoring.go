package entity

import "time"

// Monitoring is the model monitoring view. The model panels are illustrative;
// Processing reflects the backend's processing logs when they are reachable.
type Monitoring struct {
	Accuracy               float64             `json:"accuracy"`
	Precision              float64             `json:"precision"`
	Recall                 float64             `json:"recall"`
	F1Score                float64             `json:"f1Score"`
	FalsePositiveRate      float64             `json:"falsePositiveRate"`
	PerformanceHistory     []PerformancePoint  `json:"performanceHistory"`
	FeatureImportance      []FeatureImportance `json:"featureImportance"`
	PredictionDistribution []PredictionBucket  `json:"predictionDistribution"`
	Processing             []ProcessingMetric  `json:"processingMetrics"`
}

type PerformancePoint struct {
	Timestamp  time.Time `json:"timestamp"`
	Hour       int       `json:"hour"`
	Accuracy   float64   `json:"accuracy"`
	Precision  float64   `json:"precision"`
	Recall     float64   `json:"recall"`
	Throughput float64   `json:"throughput"`
	Latency    float64   `json:"latency"`
}

type FeatureImportance struct {
	Feature    string  `json:"feature"`
	Importance float64 `json:"importance"`
}

type PredictionBucket struct {
	Range      string `json:"range"`
	Count      int    `json:"count"`
	Confidence string `json:"confidence"`
}

type ProcessingMetric struct {
	Filename         string   `json:"filename"`
	Timestamp        string   `json:"timestamp"`
	ProcessingTime   *float64 `json:"processingTime,omitempty"`
	RecordsProcessed int64    `json:"recordsProcessed"`
	FraudDetected    int64    `json:"fraudDetected"`
}
