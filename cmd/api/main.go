package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/maritalgrace/tickets-backend/api/routes"
	checkoutsvc "github.com/maritalgrace/tickets-backend/internal/checkout"
	"github.com/maritalgrace/tickets-backend/internal/fulfillment"
	"github.com/maritalgrace/tickets-backend/pkg/brevo"
	"github.com/maritalgrace/tickets-backend/pkg/config"
	"github.com/maritalgrace/tickets-backend/pkg/db"
	"github.com/maritalgrace/tickets-backend/pkg/logger"
	"github.com/maritalgrace/tickets-backend/pkg/metrics"
	"github.com/maritalgrace/tickets-backend/pkg/redis"
	"github.com/maritalgrace/tickets-backend/pkg/sheets"
	"github.com/maritalgrace/tickets-backend/pkg/ticketpdf"
	"github.com/maritalgrace/tickets-backend/pkg/yoco"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured, idempotency replay disabled")
	}

	yocoClient, err := yoco.NewClient(cfg.Yoco.SecretKey, yoco.WithBaseURL(cfg.Yoco.BaseURL))
	if err != nil {
		logg.Error(context.Background(), "failed to create yoco client", err)
		os.Exit(1)
	}

	brevoClient, err := brevo.NewClient(
		cfg.Brevo.APIKey,
		cfg.Brevo.SenderName,
		cfg.Brevo.SenderEmail,
		brevo.WithBaseURL(cfg.Brevo.BaseURL),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create brevo client", err)
		os.Exit(1)
	}

	var sink fulfillment.RecordSink
	if cfg.Sheets.Enabled() {
		sheetsClient, err := sheets.NewClient(context.Background(), cfg.Sheets)
		if err != nil {
			logg.Error(context.Background(), "failed to create sheets client", err)
			os.Exit(1)
		}
		sink = sheetsClient
	} else {
		logg.Warn(context.Background(), "spreadsheet not configured, guest-list sink disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	workflowMetrics := metrics.NewFulfillmentMetrics(registry)

	checkoutService, err := checkoutsvc.NewService(yocoClient, cfg.Event, logg, workflowMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	fulfillmentService, err := fulfillment.NewService(fulfillment.ServiceParams{
		Renderer: ticketpdf.NewRenderer(cfg.Event),
		Mailer:   brevoClient,
		Sink:     sink,
		Repo:     fulfillment.NewRepository(dbClient.DB()),
		Event:    cfg.Event,
		Logger:   logg,
		Metrics:  workflowMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create fulfillment service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Params{
			Config:             cfg,
			Logger:             logg,
			DBPinger:           dbClient,
			RedisClient:        redisClient,
			CheckoutService:    checkoutService,
			FulfillmentService: fulfillmentService,
			Gatherer:           registry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
