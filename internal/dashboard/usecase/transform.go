package usecase

import (
	"math"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/shandysiswandi/fraudboard/internal/dashboard/entity"
	"github.com/shandysiswandi/fraudboard/internal/dashboard/fallback"
	"github.com/shandysiswandi/fraudboard/internal/dashboard/outbound"
	"github.com/shandysiswandi/fraudboard/internal/dashboard/query"
)

const (
	// volume multipliers used when the backend does not report totals
	processedPerFraud = 10
	volumePerFraud    = 15

	defaultLogProcessingMs = 150
	noLogsProcessingMs     = 145

	// amount assumed per fraud case when only counts are known
	amountPerCase = 50000
)

func liveMetrics(stats entity.FraudStats, batch outbound.TransactionsResponse, logs []entity.ProcessingLog, activity int) entity.LiveMetrics {
	fraudCount := int64(batch.Count)
	totalProcessed := stats.TotalProcessed
	if totalProcessed == 0 {
		totalProcessed = fraudCount * processedPerFraud
	}

	fraudAmount := query.SumAmounts(batch.Transactions)
	m := entity.LiveMetrics{
		TotalTransactions: totalProcessed,
		FraudDetected:     fraudCount,
		FraudAmount:       fraudAmount,
		TotalAmount:       decimal.NewFromFloat(fraudAmount).Mul(decimal.NewFromInt(volumePerFraud)).Round(2).InexactFloat64(),
		RecentActivity:    []entity.Activity{},
	}

	if fraudCount > 0 && totalProcessed > 0 {
		m.DetectionRate = decimal.NewFromInt(fraudCount).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(totalProcessed)).
			Round(2).InexactFloat64()
	}

	m.AverageProcessingTime = noLogsProcessingMs
	if len(logs) > 0 {
		times := make([]float64, len(logs))
		for i, l := range logs {
			times[i] = defaultLogProcessingMs
			if l.ProcessingTime != nil {
				times[i] = *l.ProcessingTime
			}
		}
		m.AverageProcessingTime = query.Mean(times)
	}

	for _, tx := range batch.Transactions[:min(activity, len(batch.Transactions))] {
		a := entity.Activity{ID: tx.ID, Type: tx.Type, Amount: tx.Amount, Timestamp: tx.DetectedAt}
		if c, ok := tx.Confidence(); ok {
			a.RiskScore = &c
		}
		m.RecentActivity = append(m.RecentActivity, a)
	}

	return m
}

// chartsFromStats accepts both statistics shapes. The pre-aggregated one is
// used as-is when present.
func chartsFromStats(stats entity.FraudStats) entity.Charts {
	if len(stats.FraudByType) > 0 {
		c := entity.Charts{
			FraudByType:  stats.FraudByType,
			AmountRanges: stats.AmountRanges,
			TotalFraud:   stats.TotalFraud,
			TotalAmount:  stats.TotalAmount,
		}
		if c.AmountRanges == nil {
			c.AmountRanges = []entity.RangeStat{}
		}
		c.AvgPerCase = avgPerCase(c.TotalAmount, c.TotalFraud)
		return c
	}

	byType := make([]entity.TypeStat, 0, len(stats.TransactionsByType))
	for name, count := range stats.TransactionsByType {
		byType = append(byType, entity.TypeStat{
			Type:   entity.TxType(name),
			Count:  count,
			Amount: float64(count * amountPerCase),
		})
	}
	slices.SortFunc(byType, func(a, b entity.TypeStat) int {
		ra, rb := typeRank(a.Type), typeRank(b.Type)
		if ra != rb {
			return ra - rb
		}
		if a.Type < b.Type {
			return -1
		}
		if a.Type > b.Type {
			return 1
		}
		return 0
	})

	var buckets entity.AmountBuckets
	if stats.FraudByAmount != nil {
		buckets = *stats.FraudByAmount
	}

	total := decimal.NewFromFloat(stats.AverageAmount).Mul(decimal.NewFromInt(stats.TotalFraudulent)).Round(2).InexactFloat64()
	return entity.Charts{
		FraudByType: byType,
		AmountRanges: []entity.RangeStat{
			{Range: "0-1K", Count: buckets.Low, AvgRisk: 25},
			{Range: "1K-10K", Count: buckets.Medium, AvgRisk: 45},
			{Range: "10K+", Count: buckets.High, AvgRisk: 65},
		},
		TotalFraud:  stats.TotalFraudulent,
		TotalAmount: total,
		AvgPerCase:  avgPerCase(total, stats.TotalFraudulent),
	}
}

func typeRank(t entity.TxType) int {
	if i := slices.Index(entity.AllTxTypes, t); i >= 0 {
		return i
	}
	return len(entity.AllTxTypes)
}

func avgPerCase(total float64, count int64) float64 {
	if count <= 0 {
		return 0
	}
	return decimal.NewFromFloat(total).Div(decimal.NewFromInt(count)).Round(2).InexactFloat64()
}

func heatmapFromDistricts(districts []entity.GeoDistrict) []entity.CityAggregate {
	out := make([]entity.CityAggregate, 0, len(districts))
	for _, d := range districts {
		risk := math.Min(60+float64(d.Count)*2, 95)
		color, size := entity.HeatMarker(risk, d.Count)
		out = append(out, entity.CityAggregate{
			City:         d.Name,
			Coordinates:  entity.GeoPoint{Lat: d.Lat, Lng: d.Lng},
			Count:        d.Count,
			TotalAmount:  float64(d.Count * amountPerCase),
			AvgAmount:    amountPerCase,
			AvgRiskScore: risk,
			Color:        color,
			MarkerSize:   size,
		})
	}
	return out
}

// cityIndex assigns a transaction without location data to one of the fixed cities.
func cityIndex(tx entity.Transaction, n int) int {
	v := math.Floor(math.Abs(float64(tx.ID) + tx.Amount + float64(tx.Step)))
	return int(math.Mod(v, float64(n)))
}

// heatmapFromTransactions groups the batch onto the fixed cities. Average
// risk only considers transactions that carry a prediction confidence.
func heatmapFromTransactions(txs []entity.Transaction) []entity.CityAggregate {
	cities := fallback.Cities()

	type group struct {
		txs   []entity.Transaction
		risks []float64
	}
	groups := make([]*group, len(cities))

	for _, tx := range txs {
		i := cityIndex(tx, len(cities))
		if groups[i] == nil {
			groups[i] = &group{}
		}
		groups[i].txs = append(groups[i].txs, tx)
		if c, ok := tx.Confidence(); ok {
			groups[i].risks = append(groups[i].risks, c)
		}
	}

	out := make([]entity.CityAggregate, 0, len(cities))
	for i, g := range groups {
		if g == nil {
			continue
		}

		sum := query.Summarize(g.txs)
		risk := query.Mean(g.risks)
		color, size := entity.HeatMarker(risk, sum.Count)
		out = append(out, entity.CityAggregate{
			City:         cities[i].Name,
			Coordinates:  entity.GeoPoint{Lat: cities[i].Lat, Lng: cities[i].Lng},
			Count:        sum.Count,
			TotalAmount:  sum.TotalAmount,
			AvgAmount:    sum.AverageAmount,
			AvgRiskScore: risk,
			ByType:       sum.ByType,
			Color:        color,
			MarkerSize:   size,
		})
	}
	return out
}

func processingMetrics(logs []entity.ProcessingLog, limit int) []entity.ProcessingMetric {
	logs = logs[:min(limit, len(logs))]

	out := make([]entity.ProcessingMetric, 0, len(logs))
	for _, l := range logs {
		out = append(out, entity.ProcessingMetric{
			Filename:         l.Filename,
			Timestamp:        l.ProcessedAt,
			ProcessingTime:   l.ProcessingTime,
			RecordsProcessed: l.TotalTransactions,
			FraudDetected:    l.FraudulentCount,
		})
	}
	return out
}
