package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/taskboard/internal/metrics"
	"github.com/hitoshi/taskboard/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Logger            *slog.Logger
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	Metrics           metrics.MetricsCollector

	// サービス
	ItemService     ActionItemServiceInterface
	EventService    CalendarEventServiceInterface
	SnapshotService SnapshotServiceInterface
	AuthService     AuthServiceInterface

	// ビュー設定
	EventsPageSize int // 0以下の場合はデフォルト値

	// 運用系
	DB             Pinger
	MetricsHandler http.Handler // nilの場合は/metricsを公開しない
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	CORS → SecurityHeaders → Recovery → Logging → RateLimit
//
// ヘルスチェックとメトリクスはレート制限の外に配置する。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger, deps.Metrics))

	itemHandler := NewItemHandler(deps.ItemService)
	eventHandler := NewEventHandler(deps.EventService, deps.EventsPageSize)
	calendarHandler := NewCalendarHandler(deps.EventService)
	snapshotHandler := NewSnapshotHandler(deps.SnapshotService)
	exportHandler := NewExportHandler(deps.ItemService, deps.Metrics)
	authHandler := NewAuthHandler(deps.AuthService)
	healthHandler := NewHealthHandler(deps.DB)

	// --- 運用系ルート（レート制限の外） ---

	r.Get("/healthz", healthHandler.Health)
	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	// --- APIルート ---

	r.Group(func(r chi.Router) {
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.Middleware())
		}

		// 認可
		r.Post("/api/authorize", authHandler.Authorize)

		// アクションアイテム管理
		r.Route("/api/items", func(r chi.Router) {
			r.Get("/", itemHandler.ListItems)
			r.Post("/", itemHandler.CreateItem)
			r.Get("/upcoming", itemHandler.ListUpcoming)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", itemHandler.GetItem)
				r.Patch("/", itemHandler.UpdateItem)
				r.Delete("/", itemHandler.DeleteItem)
				r.Put("/status", itemHandler.UpdateItemStatus)
			})
		})

		// カレンダーイベント管理
		r.Route("/api/events", func(r chi.Router) {
			r.Get("/", eventHandler.ListEvents)
			r.Post("/", eventHandler.CreateEvent)
			r.Get("/sections", eventHandler.ListSections)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", eventHandler.GetEvent)
				r.Patch("/", eventHandler.UpdateEvent)
				r.Delete("/", eventHandler.DeleteEvent)
			})
		})

		// 月次カレンダーグリッド
		r.Get("/api/calendar/{year}/{month}", calendarHandler.GetMonth)

		// スナップショットアーカイブ
		r.Route("/api/snapshots", func(r chi.Router) {
			r.Get("/", snapshotHandler.ListSnapshots)
			r.Post("/", snapshotHandler.CreateSnapshot)
			r.Get("/{id}", snapshotHandler.GetSnapshot)
		})

		// エクスポート
		r.Route("/api/export", func(r chi.Router) {
			r.Get("/csv", exportHandler.ExportCSV)
			r.Get("/excel", exportHandler.ExportExcel)
			r.Get("/report", exportHandler.ExportReport)
		})
	})

	return r
}
