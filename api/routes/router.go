package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/justocafe/storefront-api/api/controllers"
	"github.com/justocafe/storefront-api/api/middleware"
	cartsvc "github.com/justocafe/storefront-api/internal/cart"
	"github.com/justocafe/storefront-api/internal/catalog"
	checkoutsvc "github.com/justocafe/storefront-api/internal/checkout"
	"github.com/justocafe/storefront-api/internal/recipes"
	"github.com/justocafe/storefront-api/pkg/config"
	"github.com/justocafe/storefront-api/pkg/db"
	"github.com/justocafe/storefront-api/pkg/logger"
	pkgredis "github.com/justocafe/storefront-api/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP pkgredis.Pinger,
	idempotencyStore pkgredis.IdempotencyStore,
	catalogService catalog.Service,
	cartService cartsvc.Service,
	checkoutService checkoutsvc.Service,
	recipesService recipes.Service,
	metricsRegistry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if metricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.CartSession(logg))
		r.Use(middleware.Idempotency(idempotencyStore, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(catalogService, logg))
			r.Get("/{productId}", controllers.ProductDetail(catalogService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(cartService, logg))
			r.Post("/items", controllers.CartAddItem(cartService, logg))
			r.Put("/items/{lineKey}", controllers.CartSetQuantity(cartService, logg))
			r.Delete("/items/{lineKey}", controllers.CartRemoveItem(cartService, logg))
		})

		r.Post("/checkout", controllers.Checkout(cartService, checkoutService, logg))

		r.Route("/recipes", func(r chi.Router) {
			r.Post("/", controllers.RecipeSubmit(recipesService, logg))
			r.Get("/", controllers.RecipeListPending(recipesService, logg))
		})
	})

	return r
}
