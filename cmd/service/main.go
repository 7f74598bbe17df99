package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	application "dispatcher/internal/app"
	"dispatcher/internal/gateway/notification"
	"dispatcher/internal/handlers/rest/customer_post"
	"dispatcher/internal/handlers/rest/dispatch_queue_get"
	"dispatcher/internal/handlers/rest/driver_get"
	"dispatcher/internal/handlers/rest/driver_post"
	"dispatcher/internal/handlers/rest/drivers_get"
	"dispatcher/internal/handlers/rest/healthcheck_head"
	"dispatcher/internal/handlers/rest/order_cancel_post"
	"dispatcher/internal/handlers/rest/order_complete_post"
	"dispatcher/internal/handlers/rest/order_get"
	"dispatcher/internal/handlers/rest/order_pickup_post"
	"dispatcher/internal/handlers/rest/order_post"
	"dispatcher/internal/handlers/rest/order_rating_post"
	"dispatcher/internal/handlers/rest/orders_get"
	"dispatcher/internal/handlers/rest/ping_get"
	"dispatcher/internal/pkg/clock"
	"dispatcher/internal/pkg/config"
	"dispatcher/internal/pkg/dotenv"
	"dispatcher/internal/pkg/grpchealth"
	"dispatcher/internal/pkg/kafka"
	metrics_system "dispatcher/internal/pkg/metrics"
	"dispatcher/internal/pkg/middlewares/graceful_shutdown"
	"dispatcher/internal/pkg/middlewares/metrics"
	"dispatcher/internal/pkg/middlewares/rate_limiter"
	"dispatcher/internal/pkg/middlewares/timeout"
	"dispatcher/internal/pkg/postgres"
	"dispatcher/pkg/logger"
	"dispatcher/pkg/logger/zap_adapter"
	"dispatcher/pkg/token_bucket"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// publishMaxElapsedTime сколько продюсер ретраит одно уведомление перед тем, как отбросить его.
const publishMaxElapsedTime = 10 * time.Second

func main() {
	if err := dotenv.Load(); err != nil {
		stdlog.Fatalf("failed to load .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("load config: %v", err)
	}

	zapLogger, err := zap_adapter.NewZapAdapter(cfg.Log.Level)
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With()

	mainLog.Info("starting dispatcher application")

	err = run(context.Background(), cfg, appLogger)
	if err != nil {
		mainLog.Error("application failed", logger.NewField("error", err))
		return
	}
}

//nolint:contextcheck // shutdown наследуется от context.Background(), исходный ctx к этому моменту отменен
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	// ongoingCtx используется для BaseContext и фоновых компонентов, не отменяется при SIGTERM.
	// Он отменяется только после server.Shutdown() для завершения in-flight запросов.
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	// уведомления
	var (
		notifier      application.Notifier = notification.NewLogNotifier(log)
		kafkaNotifier *notification.KafkaNotifier
		notifierErr   chan error
	)
	if cfg.Kafka.Enabled {
		producer, err := kafka.NewSyncProducer(ctx, log, &cfg.Kafka)
		if err != nil {
			return fmt.Errorf("kafka producer: %w", err)
		}

		kafkaNotifier = notification.NewKafkaNotifier(
			log,
			producer,
			cfg.Kafka.Topic,
			notification.NewPublishRetrier(publishMaxElapsedTime),
			cfg.Kafka.Producer.BufferSize,
		)
		notifier = kafkaNotifier

		notifierErr = make(chan error, 1)
		go func() {
			defer close(notifierErr)
			if err := kafkaNotifier.Run(ongoingCtx); err != nil {
				notifierErr <- err
			}
		}()
	}
	// уведомления

	businessApp, err := application.InitializeApplication(log, notifier, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	// снимки состояния
	var (
		dependencies []healthcheck_head.Pinger
		persistence  *application.Persistence
	)
	if cfg.Persistence.Enabled {
		pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer pool.Close()

		if err := postgres.Migrate(ctx, log, pool); err != nil {
			return fmt.Errorf("database migrations: %w", err)
		}

		persistence, err = application.InitializePersistence(log, pool, pgxv5.DefaultCtxGetter, businessApp, cfg)
		if err != nil {
			return fmt.Errorf("persistence: %w", err)
		}

		if err := persistence.Snapshotter.Restore(ctx); err != nil {
			return fmt.Errorf("restore snapshot: %w", err)
		}

		if err := persistence.SnapshotJob.Start(); err != nil {
			return fmt.Errorf("snapshot job: %w", err)
		}

		dependencies = append(dependencies, pool)
	}
	// снимки состояния

	workers, err := application.InitializeBackgroundWorkers(ongoingCtx, log, businessApp, cfg)
	if err != nil {
		return fmt.Errorf("background workers: %w", err)
	}

	metrics_system.StartSystemMetricsCollector(ongoingCtx, metrics_system.DefaultCollectInterval)

	// основной http сервер
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(ongoingCtx, log, &isShuttingDown, businessApp, cfg.Server, dependencies),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		runLog.Info("server starting",
			logger.NewField("port", cfg.Server.Port),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()
	// основной http сервер

	// grpc health сервер
	var (
		healthServer    *grpchealth.Server
		healthServerErr chan error
	)
	if cfg.Server.GRPCHealthPort != "" {
		lis, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.Server.GRPCHealthPort))
		if err != nil {
			return fmt.Errorf("grpc health listen: %w", err)
		}

		healthServer = grpchealth.New(log)
		healthServerErr = make(chan error, 1)
		go func() {
			defer close(healthServerErr)
			if err := healthServer.Serve(lis); err != nil {
				healthServerErr <- err
			}
		}()
	}
	// grpc health сервер

	// pprof http сервер
	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(&isShuttingDown),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		pprofServerErr = make(chan error, 1)
		go func() {
			defer close(pprofServerErr)
			runLog.Info("pprof server starting",
				logger.NewField("port", cfg.Server.PprofPort),
			)
			if err := pprofServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				pprofServerErr <- err
			}
		}()
	}
	// pprof http сервер

	// nil-каналы выключенных компонентов в select никогда не срабатывают
	select {
	case <-ctx.Done():
		runLog.Info("shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-pprofServerErr:
		return fmt.Errorf("pprof server: %w", err)
	case err := <-healthServerErr:
		return fmt.Errorf("grpc health server: %w", err)
	case err := <-notifierErr:
		return fmt.Errorf("notifier: %w", err)
	}

	stop()
	isShuttingDown.Store(true)
	if healthServer != nil {
		healthServer.Shutdown()
	}

	time.Sleep(readinessDrainDelay)
	runLog.Info("draining requests")

	// shutdownCtx должен быть независим от ctx, который уже отменен на этом этапе.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()

	var shutdownErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		shutdownErr = pprofServer.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			runLog.Error("pprof server shutdown error", logger.NewField("error", shutdownErr))
		} else {
			runLog.Info("pprof server stopped")
		}
	}

	stopOngoingGracefully()
	if err != nil || shutdownErr != nil {
		runLog.Info("graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	workers.Wait()

	if persistence != nil {
		if err := persistence.SnapshotJob.Stop(shutdownCtx); err != nil {
			runLog.Error("final snapshot failed", logger.NewField("error", err))
		}
	}

	if kafkaNotifier != nil {
		if err := kafkaNotifier.Close(shutdownCtx); err != nil {
			runLog.Error("failed to close notifier", logger.NewField("error", err))
		}
	}

	runLog.Info("server stopped")
	return nil
}

func initRouter(
	ongoingCtx context.Context,
	log logger.Logger,
	isShuttingDown *atomic.Bool,
	app *application.Application,
	cfg config.HTTPServer,
	dependencies []healthcheck_head.Pinger,
) http.Handler {
	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(isShuttingDown, ongoingCtx))

	router.Use(timeout.Middleware(cfg.RequestTimeout))
	router.Use(metrics.Middleware(log))
	router.Use(rate_limiter.Middleware(log, cfg.RateLimiterQPS, token_bucket.NewTokenBucket(cfg.RateLimiterBurst, float64(cfg.RateLimiterQPS))))
	router.Handle("/metrics", promhttp.Handler())

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, dependencies...)).Methods("HEAD")
	router.Handle("/ping", ping_get.New(log, clock.New())).Methods("GET")

	router.Handle("/customers", customer_post.New(log, app.ServiceCustomer)).Methods("POST")

	router.Handle("/drivers", driver_post.New(log, app.ServiceDriver)).Methods("POST")
	router.Handle("/drivers", drivers_get.New(log, app.ServiceDriver)).Methods("GET")
	router.Handle("/drivers/{id}", driver_get.New(log, app.ServiceDriver)).Methods("GET")

	router.Handle("/orders", order_post.New(log, app.ServiceOrder)).Methods("POST")
	router.Handle("/orders", orders_get.New(log, app.ServiceOrder)).Methods("GET")
	router.Handle("/orders/{id}", order_get.New(log, app.ServiceOrder)).Methods("GET")
	router.Handle("/orders/{id}/pickup", order_pickup_post.New(log, app.ServiceOrder)).Methods("POST")
	router.Handle("/orders/{id}/complete", order_complete_post.New(log, app.ServiceOrder)).Methods("POST")
	router.Handle("/orders/{id}/cancel", order_cancel_post.New(log, app.ServiceOrder)).Methods("POST")
	router.Handle("/orders/{id}/rating", order_rating_post.New(log, app.ServiceOrder)).Methods("POST")

	router.Handle("/dispatch/queue", dispatch_queue_get.New(log, app.ServiceDispatch)).Methods("GET")

	return router
}

func initPprofRouter(isShuttingDown *atomic.Bool) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown)).Methods("HEAD")
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}
