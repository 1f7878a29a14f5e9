package usecase

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shandysiswandi/fraudboard/internal/dashboard/alert"
	"github.com/shandysiswandi/fraudboard/internal/dashboard/entity"
	"github.com/shandysiswandi/fraudboard/internal/dashboard/fallback"
	"github.com/shandysiswandi/fraudboard/internal/dashboard/outbound"
	"github.com/shandysiswandi/fraudboard/internal/dashboard/query"
	"github.com/shandysiswandi/fraudboard/internal/dashboard/store"
	"github.com/shandysiswandi/fraudboard/internal/pkg/pkgerror"
)

type testBackend struct {
	mu sync.Mutex

	health    entity.Health
	healthErr error

	summary   entity.UploadSummary
	uploadErr error
	uploaded  []byte

	batch    []entity.Transaction
	batchErr error
	batchFn  func(call int) []entity.Transaction
	limits   []int

	stats    entity.FraudStats
	statsErr error

	logs    []entity.ProcessingLog
	logsErr error

	geo    entity.GeoData
	geoErr error

	clearErr error
}

func (b *testBackend) Health(ctx context.Context) (entity.Health, error) {
	return b.health, b.healthErr
}

func (b *testBackend) Upload(ctx context.Context, filename string, r io.Reader) (entity.UploadSummary, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return entity.UploadSummary{}, err
	}
	b.mu.Lock()
	b.uploaded = data
	b.mu.Unlock()
	return b.summary, b.uploadErr
}

func (b *testBackend) FraudulentTransactions(ctx context.Context, limit int) (outbound.TransactionsResponse, error) {
	b.mu.Lock()
	b.limits = append(b.limits, limit)
	call := len(b.limits)
	b.mu.Unlock()
	if b.batchErr != nil {
		return outbound.TransactionsResponse{}, b.batchErr
	}
	if b.batchFn != nil {
		txs := b.batchFn(call)
		return outbound.TransactionsResponse{Count: len(txs), Transactions: txs}, nil
	}
	return outbound.TransactionsResponse{Count: len(b.batch), Transactions: b.batch}, nil
}

func (b *testBackend) FraudStats(ctx context.Context) (entity.FraudStats, error) {
	return b.stats, b.statsErr
}

func (b *testBackend) ProcessingLogs(ctx context.Context, limit int) ([]entity.ProcessingLog, error) {
	return b.logs, b.logsErr
}

func (b *testBackend) GeoData(ctx context.Context) (entity.GeoData, error) {
	return b.geo, b.geoErr
}

func (b *testBackend) ClearData(ctx context.Context) (outbound.ClearResponse, error) {
	if b.clearErr != nil {
		return outbound.ClearResponse{}, b.clearErr
	}
	return outbound.ClearResponse{Message: "All data cleared successfully"}, nil
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type seqUploadID struct {
	n int
}

func (s *seqUploadID) Generate() string {
	s.n++
	return "upload-" + strconv.Itoa(s.n)
}

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestUsecase(b *testBackend) *Usecase {
	clock := fixedClock{now: testNow}
	return New(Dependency{
		Backend:   b,
		Store:     store.NewInMemoryStore(),
		Alerts:    alert.New(alert.Dependency{}),
		Generator: fallback.New(fallback.NewSource(7)),
		Clock:     clock,
		UploadID:  &seqUploadID{},
	})
}

func ptr(v float64) *float64 { return &v }

var errDown = pkgerror.NewUnavailable(errors.New("connection refused"))

func TestLiveMetrics(t *testing.T) {
	b := &testBackend{
		batch: []entity.Transaction{
			{ID: 1, Type: entity.TxTypeTransfer, Amount: 1000.5, PredictionConfidence: ptr(91)},
			{ID: 2, Type: entity.TxTypeCashOut, Amount: 2000.25},
			{ID: 3, Type: entity.TxTypeTransfer, Amount: 3000},
			{ID: 4, Type: entity.TxTypePayment, Amount: 4000},
		},
		logs: []entity.ProcessingLog{{Filename: "a.csv"}, {Filename: "b.csv", ProcessingTime: ptr(200)}},
	}
	u := newTestUsecase(b)

	if err := u.Views().LiveMetrics.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	m := u.LiveMetrics(context.Background()).Data

	if m.FraudDetected != 4 || m.TotalTransactions != 40 {
		t.Fatalf("unexpected counts: %+v", m)
	}
	if m.FraudAmount != 10000.75 || m.TotalAmount != 150011.25 {
		t.Fatalf("unexpected amounts: fraud=%v total=%v", m.FraudAmount, m.TotalAmount)
	}
	if m.DetectionRate != 10 {
		t.Fatalf("unexpected detection rate: %v", m.DetectionRate)
	}
	if m.AverageProcessingTime != 175 {
		t.Fatalf("missing processing time must count as 150, got %v", m.AverageProcessingTime)
	}
	if len(m.RecentActivity) != 4 || m.RecentActivity[0].RiskScore == nil || m.RecentActivity[1].RiskScore != nil {
		t.Fatalf("unexpected activity: %+v", m.RecentActivity)
	}
	if len(m.HourlyStats) != 24 || m.HourlySource != entity.SourceFallback {
		t.Fatalf("hourly stats must be generated and marked as fallback")
	}
}

func TestLiveMetricsNoLogsAndReportedTotal(t *testing.T) {
	b := &testBackend{
		batch: []entity.Transaction{{ID: 1, Amount: 10}},
		stats: entity.FraudStats{TotalProcessed: 3},
	}
	u := newTestUsecase(b)
	_ = u.Views().LiveMetrics.Refresh(context.Background())

	m := u.LiveMetrics(context.Background()).Data
	if m.AverageProcessingTime != 145 {
		t.Fatalf("expected 145 without logs, got %v", m.AverageProcessingTime)
	}
	if m.TotalTransactions != 3 || m.DetectionRate != 33.33 {
		t.Fatalf("unexpected totals: %+v", m)
	}
}

func TestLiveMetricsFailureKeepsDataAndSurfacesRetry(t *testing.T) {
	b := &testBackend{batch: []entity.Transaction{{ID: 1, Amount: 10}}}
	u := newTestUsecase(b)
	_ = u.Views().LiveMetrics.Refresh(context.Background())

	b.logsErr = errDown
	if err := u.Views().LiveMetrics.Refresh(context.Background()); err == nil {
		t.Fatalf("expected error when one source fails")
	}

	res := u.LiveMetrics(context.Background())
	if res.Data.FraudDetected != 1 {
		t.Fatalf("previous data must be kept: %+v", res.Data)
	}
	if !res.Status.Retryable || res.Status.Error == "" {
		t.Fatalf("expected retryable error: %+v", res.Status)
	}
}

func TestChartsFromTypeMap(t *testing.T) {
	b := &testBackend{stats: entity.FraudStats{
		TotalFraudulent:    4,
		AverageAmount:      2500.5,
		TransactionsByType: map[string]int64{"PAYMENT": 1, "TRANSFER": 3},
		FraudByAmount:      &entity.AmountBuckets{Low: 1, Medium: 2, High: 1},
	}}
	u := newTestUsecase(b)
	_ = u.Views().Charts.Refresh(context.Background())

	res := u.Charts(context.Background())
	if res.Status.Source != entity.SourceLive {
		t.Fatalf("expected live source, got %q", res.Status.Source)
	}
	c := res.Data
	if len(c.FraudByType) != 2 || c.FraudByType[0].Type != entity.TxTypeTransfer || c.FraudByType[0].Amount != 150000 {
		t.Fatalf("unexpected fraud by type: %+v", c.FraudByType)
	}
	if len(c.AmountRanges) != 3 || c.AmountRanges[2].Range != "10K+" || c.AmountRanges[1].Count != 2 {
		t.Fatalf("unexpected ranges: %+v", c.AmountRanges)
	}
	if c.TotalFraud != 4 || c.TotalAmount != 10002 || c.AvgPerCase != 2500.5 {
		t.Fatalf("unexpected totals: %+v", c)
	}
}

func TestChartsFallBackWhenEmptyOrFailing(t *testing.T) {
	for name, b := range map[string]*testBackend{
		"empty":  {stats: entity.FraudStats{}},
		"failed": {statsErr: errDown},
	} {
		u := newTestUsecase(b)
		if err := u.Views().Charts.Refresh(context.Background()); err != nil {
			t.Fatalf("%s: fallback refresh must not fail: %v", name, err)
		}
		res := u.Charts(context.Background())
		if res.Status.Source != entity.SourceFallback || res.Status.Error != "" {
			t.Fatalf("%s: unexpected status: %+v", name, res.Status)
		}
		if res.Data.TotalFraud != 680 {
			t.Fatalf("%s: expected illustrative stats, got %d", name, res.Data.TotalFraud)
		}
	}
}

func TestHeatmapPrefersDistricts(t *testing.T) {
	b := &testBackend{geo: entity.GeoData{Districts: []entity.GeoDistrict{
		{Name: "Bhopal", Lat: 23.2599, Lng: 77.4126, Count: 5},
		{Name: "Indore", Lat: 22.7196, Lng: 75.8577, Count: 30},
	}}}
	u := newTestUsecase(b)
	_ = u.Views().Heatmap.Refresh(context.Background())

	cities := u.Heatmap(context.Background()).Data
	if len(cities) != 2 {
		t.Fatalf("unexpected cities: %+v", cities)
	}
	if cities[0].TotalAmount != 250000 || cities[0].AvgRiskScore != 70 {
		t.Fatalf("unexpected Bhopal aggregate: %+v", cities[0])
	}
	if cities[1].AvgRiskScore != 95 || cities[1].Color != "#DC2626" || cities[1].MarkerSize != 100 {
		t.Fatalf("risk must cap at 95: %+v", cities[1])
	}
	if len(b.limits) != 0 {
		t.Fatalf("transactions must not be fetched when districts exist")
	}
}

func TestHeatmapGroupsTransactions(t *testing.T) {
	b := &testBackend{
		geoErr: errDown,
		batch: []entity.Transaction{
			{ID: 1, Amount: 100, Step: 1, Type: entity.TxTypeTransfer, PredictionConfidence: ptr(80)},
			{ID: 21, Amount: 80, Step: 1, Type: entity.TxTypeCashOut},
			{ID: 3, Amount: 0.5, Type: entity.TxTypePayment, PredictionConfidence: ptr(70)},
		},
	}
	u := newTestUsecase(b)
	_ = u.Views().Heatmap.Refresh(context.Background())

	res := u.Heatmap(context.Background())
	if res.Status.Source != entity.SourceLive {
		t.Fatalf("expected live source: %+v", res.Status)
	}
	cities := res.Data
	if len(cities) != 2 {
		t.Fatalf("expected two cities, got %+v", cities)
	}
	if cities[0].City != "Jabalpur" || cities[0].Count != 2 || cities[0].TotalAmount != 180 {
		t.Fatalf("unexpected Jabalpur aggregate: %+v", cities[0])
	}
	if cities[0].AvgRiskScore != 80 {
		t.Fatalf("missing confidence must be excluded from the average, got %v", cities[0].AvgRiskScore)
	}
	if cities[1].City != "Gwalior" || cities[1].ByType[entity.TxTypePayment] != 1 {
		t.Fatalf("unexpected Gwalior aggregate: %+v", cities[1])
	}
	if b.limits[0] != 1000 {
		t.Fatalf("expected limit 1000, got %d", b.limits[0])
	}
}

func TestHeatmapFallsBack(t *testing.T) {
	u := newTestUsecase(&testBackend{geoErr: errDown, batchErr: errDown})
	_ = u.Views().Heatmap.Refresh(context.Background())

	res := u.Heatmap(context.Background())
	if res.Status.Source != entity.SourceFallback || len(res.Data) != len(fallback.Cities()) {
		t.Fatalf("expected generated heatmap: %d cities, %+v", len(res.Data), res.Status)
	}
}

func TestMonitoringUsesLogs(t *testing.T) {
	logs := make([]entity.ProcessingLog, 25)
	for i := range logs {
		logs[i] = entity.ProcessingLog{Filename: "f.csv", TotalTransactions: 100, FraudulentCount: 7}
	}
	u := newTestUsecase(&testBackend{logs: logs})
	_ = u.Views().Monitoring.Refresh(context.Background())

	m := u.Monitoring(context.Background()).Data
	if len(m.Processing) != 20 || m.Processing[0].RecordsProcessed != 100 || m.Processing[0].ProcessingTime != nil {
		t.Fatalf("unexpected processing metrics: %d %+v", len(m.Processing), m.Processing[0])
	}
	if len(m.PerformanceHistory) != 24 || m.Accuracy != 98.7 {
		t.Fatalf("model panels missing: %+v", m)
	}

	u = newTestUsecase(&testBackend{statsErr: errDown})
	_ = u.Views().Monitoring.Refresh(context.Background())
	res := u.Monitoring(context.Background())
	if res.Status.Source != entity.SourceFallback || len(res.Data.Processing) != 10 {
		t.Fatalf("expected generated monitoring: %+v", res.Status)
	}
}

func TestResultsFilterSortAndSummary(t *testing.T) {
	b := &testBackend{batch: []entity.Transaction{
		{ID: 1, Type: entity.TxTypeTransfer, Amount: 500},
		{ID: 2, Type: entity.TxTypeTransfer, Amount: 5000},
		{ID: 3, Type: entity.TxTypeCashOut, Amount: 50000},
		{ID: 4, Type: entity.TxTypeTransfer, Amount: 20000},
	}}
	u := newTestUsecase(b)
	_ = u.Views().Results.Refresh(context.Background())

	lo := 1000.0
	res, err := u.Results(context.Background(), ResultsQuery{
		Filter: query.TransactionFilter{Type: entity.TxTypeTransfer, MinAmount: &lo},
		Sort:   "amount",
		Order:  query.Desc,
	})
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	if len(res.Transactions) != 2 || res.Transactions[0].ID != 4 || res.Transactions[1].ID != 2 {
		t.Fatalf("unexpected rows: %+v", res.Transactions)
	}
	if res.Total != 4 || res.Summary.Count != 2 || res.Summary.TotalAmount != 25000 {
		t.Fatalf("summary must use the filtered rows: %+v", res)
	}

	if _, err := u.Results(context.Background(), ResultsQuery{Sort: "nope"}); err == nil {
		t.Fatalf("expected invalid sort error")
	}
}

func TestLogsFraudPercentage(t *testing.T) {
	u := newTestUsecase(&testBackend{logs: []entity.ProcessingLog{
		{Filename: "a.csv", TotalTransactions: 100, FraudulentCount: 7},
		{Filename: "b.csv"},
	}})
	_ = u.Views().Logs.Refresh(context.Background())

	rows := u.Logs(context.Background()).Data
	if rows[0].FraudPercentage != "7.0" || rows[1].FraudPercentage != "0" {
		t.Fatalf("unexpected percentages: %+v", rows)
	}
}

func TestHealthConnectivity(t *testing.T) {
	b := &testBackend{health: entity.Health{Status: "healthy", Timestamp: "2024-03-01T12:00:00"}}
	u := newTestUsecase(b)

	if got := u.Health(context.Background()).Data.Connectivity; got != entity.ConnectivityChecking {
		t.Fatalf("expected checking before the first check, got %q", got)
	}

	_ = u.Views().Health.Refresh(context.Background())
	if got := u.Health(context.Background()).Data.Connectivity; got != entity.ConnectivityConnected {
		t.Fatalf("expected connected, got %q", got)
	}

	b.healthErr = errDown
	_ = u.Views().Health.Refresh(context.Background())
	res := u.Health(context.Background())
	if res.Data.Connectivity != entity.ConnectivityDisconnected || !res.Status.Retryable {
		t.Fatalf("expected disconnected with retry: %+v", res)
	}
}

func TestAlertsView(t *testing.T) {
	batch := make([]entity.Transaction, 0, 18)
	for i := range 18 {
		batch = append(batch, entity.Transaction{ID: int64(i), Type: entity.TxTypeTransfer, Amount: 100})
	}
	b := &testBackend{batch: batch}
	u := newTestUsecase(b)

	_ = u.Views().Alerts.Refresh(context.Background())
	res := u.Alerts(context.Background())
	if len(res.Snapshot.Alerts) != 1 || res.Snapshot.Alerts[0].Type != entity.AlertTypeTransferSpike {
		t.Fatalf("unexpected alerts: %+v", res.Snapshot.Alerts)
	}
	if res.Snapshot.RiskLevel != entity.RiskLevelMedium {
		t.Fatalf("unexpected level: %s", res.Snapshot.RiskLevel)
	}
	if b.limits[0] != 50 {
		t.Fatalf("expected limit 50, got %d", b.limits[0])
	}

	if _, err := u.ResetView(context.Background(), ViewAlerts); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if got := u.Alerts(context.Background()).Snapshot; len(got.Alerts) != 0 || got.RiskLevel != entity.RiskLevelLow {
		t.Fatalf("reset must drop history: %+v", got)
	}
}

func TestAlertsViewIgnoresSupersededBatch(t *testing.T) {
	cashOuts := make([]entity.Transaction, 0, 11)
	for i := range 11 {
		cashOuts = append(cashOuts, entity.Transaction{ID: int64(i), Type: entity.TxTypeCashOut, Amount: 100})
	}
	started := make(chan struct{})
	release := make(chan struct{})
	b := &testBackend{batchFn: func(call int) []entity.Transaction {
		if call == 1 {
			close(started)
			<-release
			return cashOuts
		}
		return []entity.Transaction{{ID: 99, Type: entity.TxTypePayment, Amount: 2_000_000}}
	}}
	u := newTestUsecase(b)

	done := make(chan struct{})
	go func() {
		_ = u.Views().Alerts.Refresh(context.Background())
		close(done)
	}()
	<-started

	if err := u.Views().Alerts.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	close(release)
	<-done

	snap := u.Alerts(context.Background()).Snapshot
	if len(snap.Alerts) != 1 || snap.Alerts[0].Type != entity.AlertTypeHighValue {
		t.Fatalf("superseded batch reached the alert history: %+v", snap.Alerts)
	}
	if snap.RiskLevel != entity.RiskLevelCritical {
		t.Fatalf("unexpected level: %s", snap.RiskLevel)
	}
}

func TestPreventionRecommendations(t *testing.T) {
	batch := []entity.Transaction{{ID: 1, Type: entity.TxTypePayment, Amount: 600000}}
	for i := range 16 {
		batch = append(batch, entity.Transaction{ID: int64(i + 2), Type: entity.TxTypeTransfer, Amount: 1000})
	}
	u := newTestUsecase(&testBackend{batch: batch})
	_ = u.Views().Prevention.Refresh(context.Background())

	p := u.Prevention(context.Background()).Data
	if len(p.Recommendations) != 6 {
		t.Fatalf("expected 6 recommendations, got %d", len(p.Recommendations))
	}
	if p.Recommendations[0].ID != "high-value-controls" || p.Recommendations[0].EstimatedSavings != 480000 {
		t.Fatalf("unexpected high value recommendation: %+v", p.Recommendations[0])
	}
	if p.Recommendations[1].ID != "velocity-controls" || p.Recommendations[1].EstimatedSavings != 400000 {
		t.Fatalf("unexpected velocity recommendation: %+v", p.Recommendations[1])
	}
	want := 480000.0 + 400000 + 1500000 + 5000000 + 800000 + 2000000
	if p.Metrics.TotalPrevented != 270 || p.Metrics.AmountSaved != want || p.Metrics.ImplementationScore != 78 {
		t.Fatalf("unexpected metrics: %+v", p.Metrics)
	}

	u = newTestUsecase(&testBackend{batchErr: errDown})
	_ = u.Views().Prevention.Refresh(context.Background())
	res := u.Prevention(context.Background())
	if res.Status.Source != entity.SourceFallback || len(res.Data.Recommendations) != 4 {
		t.Fatalf("expected static recommendations: %+v", res)
	}
}

func TestUploadCSV(t *testing.T) {
	b := &testBackend{summary: entity.UploadSummary{TotalTransactions: 100, FraudulentTransactions: 7}}
	u := newTestUsecase(b)
	before := u.Trigger().Value()

	csv := "step,type,amount\n1,TRANSFER,100\n2,CASH_OUT,200\n"
	res, err := u.Upload(context.Background(), "batch.CSV", strings.NewReader(csv))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if res.FraudRate != "7.00%" {
		t.Fatalf("unexpected fraud rate: %q", res.FraudRate)
	}
	if res.Rows != 2 || len(res.Columns) != 3 || res.Columns[1] != "type" {
		t.Fatalf("unexpected inspection: rows=%d columns=%v", res.Rows, res.Columns)
	}
	if string(b.uploaded) != csv {
		t.Fatalf("backend must receive the full file, got %q", b.uploaded)
	}
	if u.Trigger().Value() != before+1 {
		t.Fatalf("upload must bump the trigger")
	}

	meta, err := u.GetUpload(context.Background(), res.UploadID)
	if err != nil {
		t.Fatalf("get upload: %v", err)
	}
	if meta.Status != entity.UploadStatusDone || meta.Summary == nil {
		t.Fatalf("unexpected meta: %+v", meta)
	}
}

func TestUploadZeroTotal(t *testing.T) {
	u := newTestUsecase(&testBackend{})
	res, err := u.Upload(context.Background(), "empty.xlsx", strings.NewReader("binary"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if res.FraudRate != "0%" || res.Rows != 0 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestUploadRejectsExtension(t *testing.T) {
	u := newTestUsecase(&testBackend{})
	_, err := u.Upload(context.Background(), "notes.txt", strings.NewReader("x"))

	var perr *pkgerror.Error
	if !errors.As(err, &perr) || perr.Code() != pkgerror.CodeInvalidInput {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestUploadBackendFailure(t *testing.T) {
	b := &testBackend{uploadErr: pkgerror.NewUpstream(http.StatusInternalServerError, "Error processing file", nil)}
	u := newTestUsecase(b)
	before := u.Trigger().Value()

	_, err := u.Upload(context.Background(), "batch.csv", strings.NewReader("a,b\n1,2\n"))
	var perr *pkgerror.Error
	if !errors.As(err, &perr) || perr.Code() != pkgerror.CodeUpstream {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if u.Trigger().Value() != before {
		t.Fatalf("failed upload must not bump the trigger")
	}

	items, _ := u.ListUploads(context.Background())
	if len(items) != 1 || items[0].Status != entity.UploadStatusFailed || items[0].Err != "Error processing file" {
		t.Fatalf("unexpected upload list: %+v", items)
	}
}

func TestClearDataBumpsTrigger(t *testing.T) {
	u := newTestUsecase(&testBackend{})
	res, err := u.ClearData(context.Background())
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if res.Generation != 1 || res.Message == "" {
		t.Fatalf("unexpected clear result: %+v", res)
	}

	u = newTestUsecase(&testBackend{clearErr: errDown})
	if _, err := u.ClearData(context.Background()); err == nil {
		t.Fatalf("expected clear error")
	}
}

func TestRefreshAndResetUnknownView(t *testing.T) {
	u := newTestUsecase(&testBackend{})

	_, err := u.RefreshView(context.Background(), "nope")
	var perr *pkgerror.Error
	if !errors.As(err, &perr) || perr.Code() != pkgerror.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := u.ResetView(context.Background(), "nope"); err == nil {
		t.Fatalf("expected not found on reset")
	}

	if got := len(u.ViewStatuses(context.Background())); got != 10 {
		t.Fatalf("expected 10 views, got %d", got)
	}
}

func TestInvestigationFallbackAndSelect(t *testing.T) {
	u := newTestUsecase(&testBackend{batchErr: errDown})
	ctx := context.Background()
	_ = u.Views().Investigation.Refresh(ctx)

	res, err := u.Cases(ctx, CasesQuery{})
	if err != nil {
		t.Fatalf("cases: %v", err)
	}
	if res.Status.Source != entity.SourceFallback || res.Total != 5 || res.Cases[0].ID != "TXN004" {
		t.Fatalf("expected illustrative cases sorted by risk: %+v", res)
	}

	if _, err := u.Cases(ctx, CasesQuery{Sort: "color"}); err == nil {
		t.Fatalf("expected invalid sort error")
	}

	if _, err := u.ActiveCase(ctx); err == nil {
		t.Fatalf("expected no active case before selection")
	}

	detail, err := u.SelectCase(ctx, "TXN004")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if detail.RecommendedActions[0] != "Immediate account freeze recommended" || len(detail.RecommendedActions) != 8 {
		t.Fatalf("unexpected actions: %v", detail.RecommendedActions)
	}
	if len(detail.Timeline) != 5 || len(detail.RiskFactors) != 9 {
		t.Fatalf("unexpected detail: timeline=%d factors=%d", len(detail.Timeline), len(detail.RiskFactors))
	}
	base := detail.Case.Timestamp
	if !detail.Timeline[1].Time.Equal(base.Add(time.Second)) ||
		!detail.Timeline[2].Time.Equal(base.Add(30*time.Second)) ||
		!detail.Timeline[3].Time.Equal(base.Add(2*time.Minute)) ||
		!detail.Timeline[4].Time.Equal(testNow) {
		t.Fatalf("unexpected timeline offsets: %+v", detail.Timeline)
	}
	if len(detail.SimilarCases) > 5 || len(detail.RelatedCases) > 3 {
		t.Fatalf("related lists must be capped")
	}

	if _, err := u.SelectCase(ctx, "TXN999"); err == nil {
		t.Fatalf("expected not found")
	}
}

func TestInvestigationNotesStatusAndReport(t *testing.T) {
	u := newTestUsecase(&testBackend{batchErr: errDown})
	ctx := context.Background()
	_ = u.Views().Investigation.Refresh(ctx)

	if _, err := u.AddCaseNote(ctx, "checked", ""); err == nil {
		t.Fatalf("expected error without active case")
	}
	if _, err := u.SelectCase(ctx, "TXN002"); err != nil {
		t.Fatalf("select: %v", err)
	}

	if _, err := u.AddCaseNote(ctx, "   ", ""); err == nil {
		t.Fatalf("blank notes must be rejected")
	}
	detail, err := u.AddCaseNote(ctx, "  called customer  ", "")
	if err != nil {
		t.Fatalf("note: %v", err)
	}
	last := detail.Timeline[len(detail.Timeline)-1]
	if last.Details != "called customer" || last.Kind != entity.TimelineKindNote || last.Investigator != "Current User" {
		t.Fatalf("unexpected note entry: %+v", last)
	}

	if _, err := u.UpdateCaseStatus(ctx, entity.CaseStatus("CLOSED"), ""); err == nil {
		t.Fatalf("expected invalid status error")
	}
	detail, err = u.UpdateCaseStatus(ctx, entity.CaseStatusBlocked, "Asha")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	last = detail.Timeline[len(detail.Timeline)-1]
	if detail.Status != entity.CaseStatusBlocked || last.Kind != entity.TimelineKindStatus || last.Investigator != "Asha" {
		t.Fatalf("unexpected status update: %+v", last)
	}
	if len(detail.Timeline) != 7 {
		t.Fatalf("expected 7 timeline entries, got %d", len(detail.Timeline))
	}

	report, err := u.CaseReport(ctx)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if report.CaseID != "TXN002" || report.Status != entity.CaseStatusBlocked || !report.ExportedAt.Equal(testNow) {
		t.Fatalf("unexpected report: %+v", report)
	}

	if _, err := u.ResetView(ctx, ViewInvestigation); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, err := u.ActiveCase(ctx); err == nil {
		t.Fatalf("reset must clear the active case")
	}
}

func TestCasesFromTransactions(t *testing.T) {
	txs := []entity.Transaction{
		{ID: 4, Type: entity.TxTypeTransfer, Amount: 2_000_000, OldBalanceOrg: 2_000_000, IsFlaggedFraud: true, PredictionConfidence: ptr(92)},
		{ID: 5, Type: entity.TxTypeCashOut, Amount: 100, OldBalanceDest: 10, PredictionConfidence: ptr(40)},
	}
	cases := casesFromTransactions(txs, testNow)

	c := cases[0]
	if c.ID != "TXN004" || c.CustomerName != "Customer 4" || c.Status != entity.CaseStatusFlagged {
		t.Fatalf("unexpected case: %+v", c)
	}
	if c.SuspiciousPattern != "Large amount, Origin account emptied, Beneficiary balance unchanged" {
		t.Fatalf("unexpected pattern: %q", c.SuspiciousPattern)
	}
	if c.CustomerRiskProfile != "High" || c.MerchantCategory != "Person to Person" || !c.Timestamp.Equal(testNow) {
		t.Fatalf("unexpected derived attributes: %+v", c)
	}
	if !strings.HasSuffix(c.GeoLocation, " District, MP") || c.IPAddress != "Unknown" {
		t.Fatalf("unexpected location attributes: %+v", c)
	}

	if cases[1].Status != entity.CaseStatusUnderReview || cases[1].SuspiciousPattern != "Flagged by model" || cases[1].CustomerRiskProfile != "Low" {
		t.Fatalf("unexpected second case: %+v", cases[1])
	}

	// unknown attributes never match each other
	if got := relatedCases(cases[0], cases); len(got) != 0 {
		t.Fatalf("unexpected related cases: %+v", got)
	}
}

func TestFormatAmount(t *testing.T) {
	cases := map[float64]string{
		0:         "0",
		999:       "999",
		1000:      "1,000",
		1250000.5: "1,250,000.5",
		-45000.25: "-45,000.25",
	}
	for in, want := range cases {
		if got := formatAmount(in); got != want {
			t.Fatalf("formatAmount(%v) = %q, want %q", in, got, want)
		}
	}
}
