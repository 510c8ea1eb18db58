package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/07chouthri/flowerschool-storefront/internal/client"
	"github.com/07chouthri/flowerschool-storefront/internal/service"
	"github.com/07chouthri/flowerschool-storefront/pkg/health"
	"github.com/07chouthri/flowerschool-storefront/pkg/middleware"
)

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	checkoutService *service.CheckoutService,
	catalogClient *client.CatalogClient,
	addressClient *client.AddressClient,
	healthHandler *health.Handler,
	logger *slog.Logger,
	corsCfg middleware.CORSConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.CORS(corsCfg))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics())
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	checkoutHandler := NewCheckoutHandler(checkoutService, logger)
	catalogHandler := NewCatalogHandler(catalogClient, logger)
	addressHandler := NewAddressHandler(addressClient, logger)

	// Product browsing
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", catalogHandler.ListProducts)
		r.Get("/{productId}", catalogHandler.GetProduct)
	})

	// Address book (authenticated)
	r.Route("/api/v1/addresses", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(UserIDRequired)

		r.Get("/", addressHandler.List)
		r.Post("/", addressHandler.Create)
		r.Put("/{addressId}", addressHandler.Update)
		r.Delete("/{addressId}", addressHandler.Delete)
		r.Put("/{addressId}/default", addressHandler.SetDefault)
	})

	// Checkout flow
	r.Route("/api/v1/checkout", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		// Session creation mints an ID, so it alone skips the
		// session header requirement.
		r.Post("/session", checkoutHandler.CreateSession)

		r.Group(func(r chi.Router) {
			r.Use(SessionIDRequired)

			r.Get("/session", checkoutHandler.GetSession)

			r.Post("/cart/items", checkoutHandler.AddItem)
			r.Put("/cart/items/{productId}", checkoutHandler.UpdateQuantity)
			r.Delete("/cart/items/{productId}", checkoutHandler.RemoveItem)
			r.Delete("/cart", checkoutHandler.ClearCart)

			r.Put("/shipping-address", checkoutHandler.SetShippingAddress)
			r.Get("/delivery-options", checkoutHandler.ListDeliveryOptions)
			r.Put("/delivery-option", checkoutHandler.SelectDeliveryOption)
			r.Put("/payment", checkoutHandler.SetPaymentMethod)

			r.Post("/coupon", checkoutHandler.ApplyCoupon)
			r.Delete("/coupon", checkoutHandler.RemoveCoupon)
			r.Delete("/coupon/error", checkoutHandler.ClearCouponError)

			r.Post("/advance", checkoutHandler.Advance)
			r.Post("/retreat", checkoutHandler.Retreat)
			r.Post("/step", checkoutHandler.JumpToStep)

			r.Post("/order", checkoutHandler.PlaceOrder)
		})
	})

	return r
}
