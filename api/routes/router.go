package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/velopay/payments-backend/api/controllers"
	"github.com/velopay/payments-backend/api/middleware"
	"github.com/velopay/payments-backend/internal/payments"
	"github.com/velopay/payments-backend/pkg/config"
	"github.com/velopay/payments-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	paymentsService payments.Service,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/payments", func(r chi.Router) {
		r.Post("/intent", controllers.CreatePaymentIntent(paymentsService, logg))
		r.Post("/webhook", controllers.PaymentWebhook(paymentsService, logg))
		r.Get("/{paymentId}", controllers.GetPayment(paymentsService, logg))
	})

	return r
}
