package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/coachtrack/internal/audit"
	"github.com/BruksfildServices01/coachtrack/internal/auth"
	"github.com/BruksfildServices01/coachtrack/internal/billing"
	"github.com/BruksfildServices01/coachtrack/internal/catalog"
	"github.com/BruksfildServices01/coachtrack/internal/config"
	dbpkg "github.com/BruksfildServices01/coachtrack/internal/db"
	"github.com/BruksfildServices01/coachtrack/internal/events"
	infraRepo "github.com/BruksfildServices01/coachtrack/internal/infra/repository"
	"github.com/BruksfildServices01/coachtrack/internal/logger"
	"github.com/BruksfildServices01/coachtrack/internal/metrics"
	"github.com/BruksfildServices01/coachtrack/internal/middleware"
	"github.com/BruksfildServices01/coachtrack/internal/routes"
	"github.com/BruksfildServices01/coachtrack/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	args := os.Args[1:]
	if len(args) > 0 && args[0] == "migrate" {
		if err := migrateCmd(cfg, log, args[1:]); err != nil {
			log.Fatal("migrate failed", zap.Error(err))
		}
		return
	}

	if err := serve(cfg, log); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}

// --------------------------------------------------
// api migrate up | down N | version
// --------------------------------------------------

func migrateCmd(cfg *config.Config, log *zap.Logger, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: api migrate up|down N|version")
	}

	switch args[0] {
	case "up":
		if err := dbpkg.RunMigrations(cfg.DBUrl); err != nil {
			return err
		}
		log.Info("migrations applied")

	case "down":
		steps := 1
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n <= 0 {
				return fmt.Errorf("invalid step count %q", args[1])
			}
			steps = n
		}
		if err := dbpkg.RollbackMigrations(cfg.DBUrl, steps); err != nil {
			return err
		}
		log.Info("migrations rolled back", zap.Int("steps", steps))

	case "version":
		version, dirty, err := dbpkg.MigrationVersion(cfg.DBUrl)
		if err != nil {
			return err
		}
		log.Info("schema version", zap.Uint("version", version), zap.Bool("dirty", dirty))

	default:
		return fmt.Errorf("unknown migrate command %q", args[0])
	}
	return nil
}

// --------------------------------------------------
// api [serve]
// --------------------------------------------------

func serve(cfg *config.Config, log *zap.Logger) error {
	ctx := context.Background()

	if cfg.MigrateOnStart {
		if err := dbpkg.RunMigrations(cfg.DBUrl); err != nil {
			return err
		}
		log.Info("migrations applied")
	}

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return err
	}

	// ======================================================
	// METRICS + AUDIT
	// ======================================================
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.NewCollector(registry)

	sinks := []audit.Sink{audit.New(db), collector}

	if cfg.AMQPURL != "" {
		publisher, err := events.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Warn("event publishing disabled", zap.Error(err))
		} else {
			defer func() { _ = publisher.Close() }()
			sinks = append(sinks, publisher)
			log.Info("publishing events", zap.String("exchange", cfg.AMQPExchange))
		}
	}

	dispatcher := audit.NewDispatcher(log, sinks...)
	defer dispatcher.Close()

	// ======================================================
	// CATALOG
	// ======================================================
	httpClient := &http.Client{Timeout: cfg.ProviderTimeout}

	var cache catalog.Cache = catalog.NopCache{}
	if cfg.RedisURL != "" {
		redisCache, err := catalog.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			log.Warn("catalog cache disabled", zap.Error(err))
		} else {
			defer func() { _ = redisCache.Close() }()
			cache = redisCache
		}
	}

	catalogSvc := catalog.NewService(
		catalog.NewEdamamClient(cfg.EdamamAppID, cfg.EdamamAppKey, cfg.EdamamParserURL, cfg.EdamamNutrientsURL, httpClient),
		catalog.NewOpenFoodFactsClient(cfg.OpenFoodFactsURL, httpClient),
		catalog.NewExercisesClient(cfg.ExercisesAPIURL, httpClient),
		catalog.Options{
			Cache:    cache,
			CacheTTL: cfg.CatalogCacheTTL,
			Logger:   log,
			Errors:   collector,
		},
	)

	// ======================================================
	// AVATARS
	// ======================================================
	var avatars *storage.AvatarStore
	if cfg.StorageEnabled() {
		s3Client := storage.NewS3Client(storage.S3Config{
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		})
		avatars = storage.NewAvatarStore(s3Client, cfg.S3Bucket, cfg.AvatarPublicBaseURL, cfg.AvatarMaxBytes)
	}

	// ======================================================
	// BILLING
	// ======================================================
	var (
		prefs    billing.PreferenceCreator
		payments billing.PaymentFetcher
	)
	if cfg.BillingEnabled() {
		prefs, payments, err = billing.NewMercadoPagoClients(cfg.MercadoPagoAccessToken)
		if err != nil {
			return err
		}
	}
	subscriptions := billing.NewSubscriptions(
		prefs,
		payments,
		infraRepo.NewUserGormRepository(db),
		dispatcher,
		log,
		billing.Options{
			Price:           cfg.SubscriptionPrice,
			Currency:        cfg.SubscriptionCurrency,
			NotificationURL: cfg.SubscriptionNotificationURL,
		},
	)

	// ======================================================
	// HTTP
	// ======================================================
	limiter := middleware.NewRateLimiter(
		middleware.PerMinute(cfg.RateLimitPerMinute, cfg.InviteRateLimitPerMinute),
		log,
	)
	defer limiter.Stop()

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		DB:            db,
		Timezone:      cfg.Timezone,
		Logger:        log,
		Issuer:        auth.NewIssuer(cfg.JWTSecret, cfg.JWTTTL),
		Audit:         dispatcher,
		Limiter:       limiter,
		Metrics:       collector,
		Gatherer:      registry,
		Catalog:       catalogSvc,
		Avatars:       avatars,
		Subscriptions: subscriptions,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
