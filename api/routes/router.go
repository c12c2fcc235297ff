package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/localmart/localmart-backend/api/controllers"
	"github.com/localmart/localmart-backend/api/middleware"
	"github.com/localmart/localmart-backend/internal/delivery"
	"github.com/localmart/localmart-backend/internal/geocoding"
	"github.com/localmart/localmart-backend/internal/items"
	"github.com/localmart/localmart-backend/internal/search"
	"github.com/localmart/localmart-backend/internal/stores"
	"github.com/localmart/localmart-backend/pkg/config"
	"github.com/localmart/localmart-backend/pkg/db"
	"github.com/localmart/localmart-backend/pkg/logger"
	"github.com/localmart/localmart-backend/pkg/metrics"
	"github.com/localmart/localmart-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	searchService search.Service,
	geocoder geocoding.Geocoder,
	storeService stores.Service,
	itemService items.Service,
	deliveryService delivery.Service,
) http.Handler {
	r := chi.NewRouter()

	var reg prometheus.Registerer
	if registry != nil {
		reg = registry
	}
	requestMetrics := metrics.NewRequestMetrics(reg)

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(requestMetrics),
		middleware.CORS(),
	)

	// Redis is optional; without it the search surface runs unthrottled.
	searchPolicy := middleware.NewRateLimitPolicy(
		"search",
		cfg.Search.RateLimitWindow,
		cfg.Search.RateLimitPerIP,
	)
	searchLimit := func(next http.Handler) http.Handler { return next }
	if redisClient != nil {
		searchLimit = middleware.RateLimit(searchPolicy, redisClient, logg)
	}

	ready := controllers.HealthReady(cfg, logg, dbP, nil)
	if redisClient != nil {
		ready = controllers.HealthReady(cfg, logg, dbP, redisClient)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", ready)
	})

	if registry != nil {
		r.Get("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}).ServeHTTP)
	}

	r.With(searchLimit).Post("/search", controllers.Search(searchService, geocoder, logg))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/stores", func(r chi.Router) {
			r.Get("/", controllers.StoreList(storeService, logg))
			r.Get("/{storeID}/inventory", controllers.StoreInventory(storeService, logg))
		})

		r.Post("/items", controllers.ItemCreate(itemService, logg))
		r.Post("/delivery/quote", controllers.DeliveryQuote(deliveryService, logg))
	})

	return r
}
