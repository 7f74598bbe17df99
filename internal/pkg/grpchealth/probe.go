package grpchealth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatcher/pkg/logger"
	"dispatcher/pkg/retrier"
	"dispatcher/pkg/retrier/backoff_adapter"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
)

var ErrNotServing = errors.New("service is not serving")

// ProbeConfig параметры ретраев проверки. При нулевом MaxElapsedTime
// попытки ограничены только ctx.
type ProbeConfig struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsedTime  time.Duration
}

// Probe опрашивает grpc.health.v1 по target, пока сервис не ответит SERVING
// или не истечет MaxElapsedTime.
func Probe(ctx context.Context, log logger.Logger, target string, cfg ProbeConfig, opts ...grpc.DialOption) error {
	opts = append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithKeepaliveParams(keepalive.ClientParameters{
			Time:    KeepaliveTime,
			Timeout: KeepaliveTimeout,
		}),
	}, opts...)

	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return fmt.Errorf("create gRPC client: %w", err)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			log.Warn("failed to close gRPC connection", logger.NewField("error", err))
		}
	}()

	client := healthpb.NewHealthClient(conn)
	probeLog := log.With(
		logger.NewField("component", "grpc-probe"),
		logger.NewField("target", target),
	)

	attempts := backoff_adapter.New(
		retrier.Exponential(cfg.InitialInterval, cfg.MaxInterval, cfg.MaxElapsedTime).
			WithOnRetry(func(err error, wait time.Duration) {
				probeLog.Debug("service is not serving yet",
					logger.NewField("retry_in", wait),
					logger.NewField("error", err),
				)
			}),
	)

	var attempt uint64
	err = attempts.ExecuteWithContext(ctx, func(ctx context.Context) error {
		attempt++
		resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
		if err != nil {
			return err
		}
		if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
			return fmt.Errorf("%w: %s", ErrNotServing, resp.GetStatus())
		}
		return nil
	})
	if err != nil {
		probeLog.Warn("health probe failed",
			logger.NewField("attempts", attempt),
			logger.NewField("error", err),
		)
		return fmt.Errorf("health probe: %w", err)
	}

	probeLog.Info("service is serving", logger.NewField("attempts", attempt))
	return nil
}
