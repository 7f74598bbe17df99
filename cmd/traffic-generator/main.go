package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	stdlog "log"
	"math/rand/v2"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"dispatcher/internal/pkg/grpchealth"
	"dispatcher/pkg/logger"
	"dispatcher/pkg/logger/zap_adapter"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	var (
		target      = flag.String("target", "http://localhost:8080", "Dispatcher base URL")
		metricsAddr = flag.String("metrics-addr", ":2112", "Address for /metrics")
		interval    = flag.Duration("interval", time.Second, "Pause between orders")
		customers   = flag.Int("customers", 5, "Number of customers to onboard")
		drivers     = flag.Int("drivers", 3, "Number of drivers to onboard")
		cancelRate  = flag.Float64("cancel-rate", 0.1, "Share of assigned orders to cancel")
		healthAddr  = flag.String("grpc-health", "", "gRPC health address to wait for before sending traffic")
	)
	flag.Parse()

	zapLogger, err := zap_adapter.NewZapAdapter("info")
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		_ = zapLogger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	s := &scenario{
		log:        zapLogger.With(logger.NewField("component", "traffic-generator")),
		client:     &apiClient{baseURL: *target, http: &http.Client{Timeout: 5 * time.Second}},
		rand:       rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		customers:  ids("load-customer", *customers),
		drivers:    ids("load-driver", *drivers),
		cancelRate: *cancelRate,
	}

	metricsServer := &http.Server{
		Addr:              *metricsAddr,
		Handler:           promhttp.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Error("metrics server failed", logger.NewField("error", err))
		}
	}()

	if *healthAddr != "" {
		err := grpchealth.Probe(ctx, zapLogger, *healthAddr, grpchealth.ProbeConfig{
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
			MaxElapsedTime:  time.Minute,
		})
		if err != nil {
			zapLogger.Error("target is not serving", logger.NewField("error", err))
			return
		}
	}

	if err := s.setup(ctx); err != nil {
		zapLogger.Error("setup failed", logger.NewField("error", err))
		return
	}

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = metricsServer.Shutdown(shutdownCtx)
			return
		case <-ticker.C:
			_ = s.iteration(ctx)
		}
	}
}

func ids(prefix string, n int) []string {
	result := make([]string, 0, n)
	for i := range n {
		result = append(result, fmt.Sprintf("%s-%d", prefix, i+1))
	}
	return result
}
