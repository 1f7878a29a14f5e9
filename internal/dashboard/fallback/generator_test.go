package fallback

import (
	"math"
	"testing"
	"time"

	"github.com/shandysiswandi/fraudboard/internal/dashboard/entity"
)

type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

func TestStatsIsFixed(t *testing.T) {
	stats := New(constSource(0)).Stats()
	if stats.TotalFraud != 680 || stats.TotalAmount != 30870000 {
		t.Fatalf("unexpected totals: %d %v", stats.TotalFraud, stats.TotalAmount)
	}
	for _, s := range stats.FraudByType {
		if !s.Type.Valid() {
			t.Fatalf("unknown type %q in fallback stats", s.Type)
		}
	}
}

func TestHeatmapExactWithStubSource(t *testing.T) {
	agg := New(constSource(0)).Heatmap()
	if len(agg) != 20 {
		t.Fatalf("expected 20 cities, got %d", len(agg))
	}

	byCity := map[string]entity.CityAggregate{}
	for _, a := range agg {
		byCity[a.City] = a
	}

	indore := byCity["Indore"]
	if indore.Count != 89 {
		t.Fatalf("unexpected Indore count: %d", indore.Count)
	}
	if math.Abs(indore.AvgAmount-240000) > 1e-6 {
		t.Fatalf("unexpected Indore avg amount: %v", indore.AvgAmount)
	}
	if math.Abs(indore.AvgRiskScore-91.5) > 1e-6 {
		t.Fatalf("unexpected Indore risk: %v", indore.AvgRiskScore)
	}
	// r=0 always picks the first entry of the mix
	if indore.ByType[entity.TxTypeTransfer] != 89 {
		t.Fatalf("unexpected Indore type mix: %v", indore.ByType)
	}

	if byCity["Chhatarpur"].Count != 11 {
		t.Fatalf("unexpected Chhatarpur count: %d", byCity["Chhatarpur"].Count)
	}
}

func TestHeatmapRiskCapAndMinimumCount(t *testing.T) {
	for _, a := range New(constSource(0.999)).Heatmap() {
		if a.AvgRiskScore > 95 {
			t.Fatalf("risk above cap for %s: %v", a.City, a.AvgRiskScore)
		}
		if a.Count < 3 {
			t.Fatalf("count below minimum for %s: %d", a.City, a.Count)
		}
		total := 0
		for typ, n := range a.ByType {
			if !typ.Valid() {
				t.Fatalf("unknown type %q", typ)
			}
			total += n
		}
		if total != a.Count {
			t.Fatalf("type mix does not add up for %s: %d != %d", a.City, total, a.Count)
		}
	}
}

func TestSeededSourcesAreReproducible(t *testing.T) {
	a := New(NewSource(42)).Heatmap()
	b := New(NewSource(42)).Heatmap()
	for i := range a {
		if a[i].Count != b[i].Count || a[i].AvgAmount != b[i].AvgAmount {
			t.Fatalf("seeded generators diverged at %d", i)
		}
	}
}

func TestModelPanels(t *testing.T) {
	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	m := New(constSource(0.5)).ModelPanels(now)

	if m.Accuracy != 98.7 || m.FalsePositiveRate != 0.13 {
		t.Fatalf("unexpected headline metrics: %+v", m)
	}
	if len(m.PerformanceHistory) != 24 {
		t.Fatalf("expected 24 history points, got %d", len(m.PerformanceHistory))
	}
	last := m.PerformanceHistory[23]
	if !last.Timestamp.Equal(now) || last.Hour != 12 {
		t.Fatalf("unexpected last point: %+v", last)
	}
	if last.Accuracy != 97.5 || last.Throughput != 200 || last.Latency != 125 {
		t.Fatalf("unexpected point values: %+v", last)
	}
	if len(m.FeatureImportance) != 8 || len(m.PredictionDistribution) != 5 {
		t.Fatalf("unexpected panel sizes")
	}
}

func TestMonitoringProcessingHistory(t *testing.T) {
	m := New(constSource(0)).Monitoring(time.Now(), 10)
	if len(m.Processing) != 10 {
		t.Fatalf("expected 10 processing metrics, got %d", len(m.Processing))
	}
	if m.Processing[0].RecordsProcessed != 100 || *m.Processing[0].ProcessingTime != 150 {
		t.Fatalf("unexpected metric: %+v", m.Processing[0])
	}
}

func TestHourlyStats(t *testing.T) {
	stats := New(constSource(0.999)).HourlyStats()
	if len(stats) != 24 || stats[0].Hour != "0:00" || stats[23].Hour != "23:00" {
		t.Fatalf("unexpected hours")
	}
	for _, s := range stats {
		if s.FraudCount < 5 || s.FraudCount > 24 {
			t.Fatalf("fraud count out of range: %d", s.FraudCount)
		}
		if s.DetectionRate > 95 {
			t.Fatalf("detection rate above cap: %v", s.DetectionRate)
		}
	}
}

func TestCases(t *testing.T) {
	cases := New(nil).Cases()
	if len(cases) != 5 {
		t.Fatalf("expected 5 cases, got %d", len(cases))
	}
	for _, c := range cases {
		if !c.Type.Valid() || !c.Status.Valid() {
			t.Fatalf("case %s has out-of-domain values", c.ID)
		}
	}
}
