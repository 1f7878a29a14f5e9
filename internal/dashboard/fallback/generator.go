package fallback

import (
	"fmt"
	"math"
	"time"

	"github.com/shandysiswandi/fraudboard/internal/dashboard/entity"
)

type weightedType struct {
	typ    entity.TxType
	weight float64
}

var (
	urbanMix = []weightedType{
		{entity.TxTypeTransfer, 0.3},
		{entity.TxTypeCashOut, 0.25},
		{entity.TxTypePayment, 0.25},
		{entity.TxTypeCashIn, 0.1},
		{entity.TxTypeDebit, 0.1},
	}
	ruralMix = []weightedType{
		{entity.TxTypeTransfer, 0.5},
		{entity.TxTypeCashOut, 0.35},
		{entity.TxTypePayment, 0.15},
	}
)

// Stats returns the illustrative chart dataset. It draws nothing from the source.
func (g *Generator) Stats() entity.Charts {
	byType := []entity.TypeStat{
		{Type: entity.TxTypeTransfer, Count: 234, Amount: 12450000},
		{Type: entity.TxTypeCashOut, Count: 189, Amount: 8760000},
		{Type: entity.TxTypePayment, Count: 145, Amount: 5430000},
		{Type: entity.TxTypeCashIn, Count: 67, Amount: 2340000},
		{Type: entity.TxTypeDebit, Count: 45, Amount: 1890000},
	}
	ranges := []entity.RangeStat{
		{Range: "0-1K", Count: 45, AvgRisk: 25},
		{Range: "1K-10K", Count: 123, AvgRisk: 45},
		{Range: "10K-50K", Count: 234, AvgRisk: 65},
		{Range: "50K-100K", Count: 189, AvgRisk: 78},
		{Range: "100K+", Count: 89, AvgRisk: 89},
	}

	var count int64
	var amount float64
	for _, s := range byType {
		count += s.Count
		amount += s.Amount
	}

	return entity.Charts{
		FraudByType:  byType,
		AmountRanges: ranges,
		TotalFraud:   count,
		TotalAmount:  amount,
		AvgPerCase:   amount / float64(count),
	}
}

// Heatmap weights each city by population, economic activity and urbanization.
func (g *Generator) Heatmap() []entity.CityAggregate {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]entity.CityAggregate, 0, len(cities))
	for _, c := range cities {
		count := int(math.Floor(c.Population*15 + c.EconomicActivity*25 + c.Urbanization*20 + g.float()*10))
		count = max(count, 3)

		base := 50000 + c.EconomicActivity*200000
		avgAmount := base + g.float()*base*0.3
		risk := math.Min(50+c.Urbanization*25+c.EconomicActivity*20+g.float()*15, 95)

		mix := ruralMix
		if c.Urbanization > 0.7 {
			mix = urbanMix
		}
		byType := make(map[entity.TxType]int, len(mix))
		for range count {
			byType[g.pick(mix)]++
		}

		color, size := entity.HeatMarker(risk, count)
		out = append(out, entity.CityAggregate{
			City:         c.Name,
			Coordinates:  entity.GeoPoint{Lat: c.Lat, Lng: c.Lng},
			Count:        count,
			TotalAmount:  float64(count) * avgAmount,
			AvgAmount:    avgAmount,
			AvgRiskScore: risk,
			ByType:       byType,
			Color:        color,
			MarkerSize:   size,
		})
	}

	return out
}

func (g *Generator) pick(mix []weightedType) entity.TxType {
	r := g.float()
	cumulative := 0.0
	for _, w := range mix {
		cumulative += w.weight
		if r <= cumulative {
			return w.typ
		}
	}
	return entity.TxTypeTransfer
}

// ModelPanels fills the illustrative model section of the monitoring view.
func (g *Generator) ModelPanels(now time.Time) entity.Monitoring {
	g.mu.Lock()
	defer g.mu.Unlock()

	history := make([]entity.PerformancePoint, 0, 24)
	for i := range 24 {
		ts := now.Add(-time.Duration(23-i) * time.Hour)
		history = append(history, entity.PerformancePoint{
			Timestamp:  ts,
			Hour:       ts.Hour(),
			Accuracy:   round2(96 + g.float()*3),
			Precision:  round2(95 + g.float()*4),
			Recall:     round2(93 + g.float()*5),
			Throughput: round2(150 + g.float()*100),
			Latency:    round2(100 + g.float()*50),
		})
	}

	return entity.Monitoring{
		Accuracy:           98.7,
		Precision:          97.3,
		Recall:             94.8,
		F1Score:            96.0,
		FalsePositiveRate:  0.13,
		PerformanceHistory: history,
		FeatureImportance: []entity.FeatureImportance{
			{Feature: "Transaction Amount", Importance: 24.5},
			{Feature: "Account Balance", Importance: 19.2},
			{Feature: "Transaction Type", Importance: 16.8},
			{Feature: "Time of Day", Importance: 12.3},
			{Feature: "Merchant Category", Importance: 10.1},
			{Feature: "Location", Importance: 8.7},
			{Feature: "Transaction Frequency", Importance: 5.9},
			{Feature: "Historical Patterns", Importance: 2.5},
		},
		PredictionDistribution: []entity.PredictionBucket{
			{Range: "0-20%", Count: 12, Confidence: "Very Low"},
			{Range: "20-40%", Count: 34, Confidence: "Low"},
			{Range: "40-60%", Count: 87, Confidence: "Medium"},
			{Range: "60-80%", Count: 156, Confidence: "High"},
			{Range: "80-100%", Count: 298, Confidence: "Very High"},
		},
		Processing: []entity.ProcessingMetric{},
	}
}

// Monitoring is ModelPanels plus a synthetic processing history of n batches.
func (g *Generator) Monitoring(now time.Time, n int) entity.Monitoring {
	m := g.ModelPanels(now)

	g.mu.Lock()
	defer g.mu.Unlock()

	m.Processing = make([]entity.ProcessingMetric, 0, n)
	for i := range n {
		pt := round2(150 + g.float()*50)
		m.Processing = append(m.Processing, entity.ProcessingMetric{
			Filename:         fmt.Sprintf("sample_batch_%02d.csv", i+1),
			Timestamp:        now.Add(-time.Duration(i) * time.Hour).Format(time.RFC3339),
			ProcessingTime:   &pt,
			RecordsProcessed: int64(math.Floor(g.float()*1000)) + 100,
			FraudDetected:    int64(math.Floor(g.float() * 50)),
		})
	}

	return m
}

// HourlyStats is the 24-hour detection pattern shown on the live dashboard.
func (g *Generator) HourlyStats() []entity.HourlyStat {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]entity.HourlyStat, 0, 24)
	for hour := range 24 {
		out = append(out, entity.HourlyStat{
			Hour:          fmt.Sprintf("%d:00", hour),
			FraudCount:    int(math.Floor(g.float()*20)) + 5,
			DetectionRate: round2(math.Min(85+g.float()*10, 95)),
		})
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
