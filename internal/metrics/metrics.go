// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsCollector はメトリクス収集のインターフェース。
// サービス層とHTTPミドルウェアから利用する。
type MetricsCollector interface {
	RecordMutation(entity string, operation string)
	RecordDeadlineSync(operation string)
	RecordStorageSaveFailure(slotKey string)
	RecordSnapshotCreated()
	RecordExportGenerated(format string)
	RecordHTTPStatus(statusCode int)
	RecordRequestLatency(duration time.Duration)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	mutations       *prometheus.CounterVec
	deadlineSyncs   *prometheus.CounterVec
	storageSaveFail *prometheus.CounterVec
	snapshots       prometheus.Counter
	exports         *prometheus.CounterVec
	httpStatus      *prometheus.CounterVec
	requestLatency  prometheus.Histogram
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taskboard_mutations_total",
			Help: "エンティティ種別・操作別の変更操作の合計数",
		}, []string{"entity", "operation"}),
		deadlineSyncs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taskboard_deadline_syncs_total",
			Help: "締切イベント同期の操作別合計数",
		}, []string{"operation"}),
		storageSaveFail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taskboard_storage_save_failures_total",
			Help: "永続スロットへの保存失敗のスロット別合計数",
		}, []string{"slot"}),
		snapshots: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "taskboard_snapshots_created_total",
			Help: "作成されたスナップショットの合計数",
		}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taskboard_exports_generated_total",
			Help: "生成されたエクスポートの形式別合計数",
		}, []string{"format"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taskboard_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		requestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "taskboard_request_latency_seconds",
			Help:    "HTTPリクエスト処理のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		c.mutations,
		c.deadlineSyncs,
		c.storageSaveFail,
		c.snapshots,
		c.exports,
		c.httpStatus,
		c.requestLatency,
	)

	return c
}

// RecordMutation はエンティティの変更操作（add, update, remove）を記録する。
func (c *Collector) RecordMutation(entity string, operation string) {
	c.mutations.WithLabelValues(entity, operation).Inc()
}

// RecordDeadlineSync は締切イベント同期（create, move, remove）を記録する。
func (c *Collector) RecordDeadlineSync(operation string) {
	c.deadlineSyncs.WithLabelValues(operation).Inc()
}

// RecordStorageSaveFailure は永続スロットへの保存失敗を記録する。
func (c *Collector) RecordStorageSaveFailure(slotKey string) {
	c.storageSaveFail.WithLabelValues(slotKey).Inc()
}

// RecordSnapshotCreated はスナップショット作成を記録する。
func (c *Collector) RecordSnapshotCreated() {
	c.snapshots.Inc()
}

// RecordExportGenerated はエクスポート生成（csv, excel, report）を記録する。
func (c *Collector) RecordExportGenerated(format string) {
	c.exports.WithLabelValues(format).Inc()
}

// RecordHTTPStatus はHTTPステータスコードを記録する。
func (c *Collector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

// RecordRequestLatency はリクエスト処理のレイテンシを記録する。
func (c *Collector) RecordRequestLatency(duration time.Duration) {
	c.requestLatency.Observe(duration.Seconds())
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetupMetricsRoute は/metricsエンドポイントを提供するHTTPハンドラーを返す。
// Prometheusスクレイプに対応する。
func SetupMetricsRoute(gatherer prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(gatherer))
	return mux
}
