package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/adebayof/gromart-backend/api/controllers"
	"github.com/adebayof/gromart-backend/api/middleware"
	internalauth "github.com/adebayof/gromart-backend/internal/auth"
	"github.com/adebayof/gromart-backend/internal/cart"
	checkoutsvc "github.com/adebayof/gromart-backend/internal/checkout"
	"github.com/adebayof/gromart-backend/internal/orders"
	"github.com/adebayof/gromart-backend/internal/products"
	"github.com/adebayof/gromart-backend/pkg/auth/session"
	"github.com/adebayof/gromart-backend/pkg/config"
	"github.com/adebayof/gromart-backend/pkg/enums"
	"github.com/adebayof/gromart-backend/pkg/logger"
	"github.com/adebayof/gromart-backend/pkg/metrics"
	"github.com/adebayof/gromart-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

// Deps bundles everything the router mounts.
type Deps struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              controllers.Pinger
	Redis           *redis.Client
	SessionManager  sessionManager
	HTTPMetrics     *metrics.HTTPMetrics
	MetricsHandler  http.Handler
	AuthService     internalauth.Service
	ProductsService products.Service
	CartService     cart.Service
	CheckoutService checkoutsvc.Service
	OrdersService   orders.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg, deps.HTTPMetrics),
		middleware.CORS(cfg.App),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive())
		r.Get("/ready", controllers.HealthReady(logg, map[string]controllers.Pinger{
			"postgres": deps.DB,
			"redis":    deps.Redis,
		}))
	})

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	} else {
		r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(deps.AuthService, logg))
		r.Post("/register", controllers.AuthRegister(deps.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(deps.SessionManager, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.SessionManager, cfg.JWT, logg))
	})

	// Public storefront reads.
	r.Get("/api/v1/products", controllers.ListProducts(deps.ProductsService, logg))
	r.Get("/api/v1/delivery/areas", controllers.ListDeliveryAreas())

	// Authenticated customer surface.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))
		r.Use(middleware.Idempotency(deps.Redis, cfg.Checkout.IdempotencyTTL, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(deps.CartService, logg))
			r.Post("/items", controllers.AddCartItem(deps.CartService, logg))
			r.Delete("/", controllers.ClearCart(deps.CartService, logg))
			r.Put("/items/{productId}", controllers.UpdateCartItem(deps.CartService, logg))
			r.Delete("/items/{productId}", controllers.RemoveCartItem(deps.CartService, logg))
		})

		r.Post("/checkout", controllers.SubmitCheckout(deps.CheckoutService, logg))
		r.Get("/checkout/manual-order", controllers.ManualOrder(deps.CheckoutService, logg))

		r.Get("/orders", controllers.ListMyOrders(deps.OrdersService, logg))
	})

	// Admin surface.
	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))
		r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))

		r.Post("/products", controllers.AdminCreateProduct(deps.ProductsService, logg))
		r.Put("/products/{productId}", controllers.AdminUpdateProduct(deps.ProductsService, logg))

		r.Get("/orders", controllers.AdminListOrders(deps.OrdersService, logg))
		r.Post("/orders/{orderId}/status", controllers.AdminUpdateOrderStatus(deps.OrdersService, logg))
	})

	return r
}
