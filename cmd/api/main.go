package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"campusdocs/internal/config"
	"campusdocs/internal/database"
	"campusdocs/internal/database/migration"
	handlers "campusdocs/internal/http/handler"
	"campusdocs/internal/http/middleware"
	"campusdocs/internal/i18n"
	"campusdocs/internal/otel"
	"campusdocs/internal/pdf"
	"campusdocs/internal/permission"
	"campusdocs/internal/quota"
	"campusdocs/internal/repository/postgres"
	"campusdocs/internal/service"
	"campusdocs/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	loc := time.Local
	if cfg.Timezone != "" {
		l, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			log.Fatalf("invalid timezone %q: %v", cfg.Timezone, err)
		}
		loc = l
	}

	ctx := context.Background()

	shutdownTracing, err := otel.Init(ctx, loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(context.Background())

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	// Repositories
	contentRepo := postgres.NewContentPostgres(db)
	accessLogRepo := postgres.NewAccessLogPostgres(db)
	membershipRepo := postgres.NewMembershipPostgres(db)

	// Domain components
	localizer := i18n.NewLocalizer()
	validator := pdf.NewValidator(localizer)
	stamper := pdf.NewStamper(cfg.Watermark)
	extractor := pdf.NewExtractor(stamper)
	engine := quota.NewEngine(accessLogRepo, cfg.Quota, localizer, loc)
	oracle := permission.NewMembershipOracle(membershipRepo)

	// Metrics
	reg := prometheus.NewRegistry()
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to register http metrics: %v", err)
	}
	swallowedErrors := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "background_errors_total",
		Help: "Failures swallowed off the response-critical path (access log writes, cache write-backs).",
	})
	if err := reg.Register(swallowedErrors); err != nil {
		log.Fatalf("failed to register error counter: %v", err)
	}

	reportErr := func(err error) {
		swallowedErrors.Inc()
		entry := map[string]any{
			"ts":    time.Now().In(loc).Format(time.RFC3339Nano),
			"level": "error",
			"msg":   "background_error",
			"error": err.Error(),
		}
		if b, mErr := json.Marshal(entry); mErr == nil {
			log.SetFlags(0)
			log.Println(string(b))
		}
	}

	// Services
	contentSvc := service.NewContentService(objStore, contentRepo, validator)
	gate := service.NewAccessGate(
		objStore,
		contentRepo,
		oracle,
		engine,
		validator,
		stamper,
		extractor,
		cfg.Pagination.PageChunkSize,
		reportErr,
	)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    64 * 1024 * 1024,
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.LoggerWithWriter(os.Stdout, loc))
	app.Use(otelfiber.Middleware())
	app.Use(promMiddleware.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(app, db, contentSvc, gate, engine, localizer, []byte(cfg.Auth.JWTSecret))

	addr := ":" + cfg.Port

	go func() {
		if err := app.Listen(addr); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("server shutdown: %v", err)
	}
}
