package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/maritalgrace/tickets-backend/api/controllers"
	"github.com/maritalgrace/tickets-backend/api/middleware"
	checkoutsvc "github.com/maritalgrace/tickets-backend/internal/checkout"
	"github.com/maritalgrace/tickets-backend/internal/fulfillment"
	"github.com/maritalgrace/tickets-backend/pkg/config"
	"github.com/maritalgrace/tickets-backend/pkg/logger"
	pkgredis "github.com/maritalgrace/tickets-backend/pkg/redis"
)

// Params collects everything the router wires together. Redis and the metrics
// gatherer are optional; the routes that need them degrade gracefully.
type Params struct {
	Config             *config.Config
	Logger             *logger.Logger
	DBPinger           controllers.Pinger
	RedisClient        *pkgredis.Client
	CheckoutService    checkoutsvc.Service
	FulfillmentService fulfillment.Service
	Gatherer           prometheus.Gatherer
}

func NewRouter(p Params) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(p.Logger),
		middleware.RequestID(p.Logger),
		middleware.Logging(p.Logger),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.Liveness())
		r.Get("/ready", controllers.Readiness(p.Logger, map[string]controllers.Pinger{
			"postgres": p.DBPinger,
			"redis":    redisPinger(p.RedisClient),
		}))
	})

	if p.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.Gatherer, promhttp.HandlerOpts{}))
	}

	var idempotencyStore pkgredis.IdempotencyStore
	if p.RedisClient != nil {
		idempotencyStore = p.RedisClient
	}

	publicDir := p.Config.Static.PublicDir
	landing := controllers.Landing(publicDir)
	r.Get("/", landing)
	r.Get("/marital-grace", landing)
	fileServer := http.StripPrefix("/public/", http.FileServer(http.Dir(publicDir)))
	r.Handle("/public/*", fileServer)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Idempotency(idempotencyStore, p.Logger))
		r.Post("/create-checkout", controllers.CreateCheckout(p.CheckoutService, p.Config.App.PublicBaseURL, p.Logger))
		r.Post("/send-ticket", controllers.SendTicket(p.FulfillmentService, p.Logger))
	})

	r.Get("/payment-success", controllers.PaymentSuccess(p.FulfillmentService, p.Config.Event, p.Logger))
	r.Get("/admin-dashboard", controllers.AdminDashboard(p.FulfillmentService, p.Logger))

	return r
}

// redisPinger avoids handing Readiness a non-nil interface wrapping a nil client.
func redisPinger(client *pkgredis.Client) controllers.Pinger {
	if client == nil {
		return nil
	}
	return client
}
