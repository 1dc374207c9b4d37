package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/robertocantu/ironclub-backend/api/controllers"
	"github.com/robertocantu/ironclub-backend/api/middleware"
	"github.com/robertocantu/ironclub-backend/internal/inventory"
	"github.com/robertocantu/ironclub-backend/internal/members"
	"github.com/robertocantu/ironclub-backend/pkg/config"
	"github.com/robertocantu/ironclub-backend/pkg/logger"
	"github.com/robertocantu/ironclub-backend/pkg/metrics"
	pkgredis "github.com/robertocantu/ironclub-backend/pkg/redis"
)

// Dependencies bundles everything the HTTP surface needs.
type Dependencies struct {
	Config           *config.Config
	Logger           *logger.Logger
	DBPinger         controllers.Pinger
	RedisClient      *pkgredis.Client
	InventoryService inventory.Service
	InventoryReport  *inventory.Reporter
	MembersService   members.Service
	HTTPMetrics      *metrics.HTTPMetrics
}

func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(),
	)

	var redisPinger controllers.Pinger
	var idempotencyStore pkgredis.IdempotencyStore
	if deps.RedisClient != nil {
		redisPinger = deps.RedisClient
		idempotencyStore = deps.RedisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DBPinger, redisPinger))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Idempotency(idempotencyStore, logg))

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", controllers.InventoryList(deps.InventoryService, logg))
			r.Post("/reserve", controllers.InventoryReserve(deps.InventoryService, logg))
			r.Post("/release", controllers.InventoryRelease(deps.InventoryService, logg))
			r.Post("/purchase", controllers.InventoryPurchase(deps.InventoryService, logg))
			r.Get("/alerts/low-stock", controllers.InventoryLowStock(deps.InventoryService, logg))
			r.Get("/overview", controllers.InventoryOverview(deps.InventoryReport, logg))
			r.Get("/history/{productId}", controllers.InventoryHistory(deps.InventoryService, logg))
			r.Get("/{productId}", controllers.InventoryGet(deps.InventoryService, logg))
			r.Put("/{productId}", controllers.InventoryUpdate(deps.InventoryService, logg))
		})

		r.Route("/members", func(r chi.Router) {
			r.Get("/", controllers.MemberList(deps.MembersService, logg))
			r.Post("/", controllers.MemberCreate(deps.MembersService, logg))
			r.Get("/stats", controllers.MemberStats(deps.MembersService, logg))
			r.Get("/{memberId}", controllers.MemberGet(deps.MembersService, logg))
			r.Put("/{memberId}", controllers.MemberUpdate(deps.MembersService, logg))
			r.Delete("/{memberId}", controllers.MemberDelete(deps.MembersService, logg))
		})
	})

	return r
}
