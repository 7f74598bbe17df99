package grpchealth

import (
	"errors"
	"fmt"
	"net"
	"time"

	"dispatcher/pkg/logger"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/keepalive"
)

const (
	KeepaliveTime    = 5 * time.Minute
	KeepaliveTimeout = 3 * time.Second

	// ServiceName имя сервиса в ответах health. Пустое имя означает весь процесс.
	ServiceName = "dispatcher"
)

// Server отдает стандартный grpc.health.v1 для оркестратора.
// Статус SERVING выставляется в Serve, NOT_SERVING в Shutdown.
type Server struct {
	log    logger.Logger
	server *grpc.Server
	health *health.Server
}

func New(log logger.Logger) *Server {
	server := grpc.NewServer(
		grpc.KeepaliveParams(keepalive.ServerParameters{
			Time:    KeepaliveTime,
			Timeout: KeepaliveTimeout,
		}),
	)

	healthServer := health.NewServer()
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	healthServer.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	healthpb.RegisterHealthServer(server, healthServer)

	return &Server{
		log: log.With(
			logger.NewField("component", "grpc-health"),
		),
		server: server,
		health: healthServer,
	}
}

// Serve блокируется до Shutdown. После штатной остановки возвращает nil.
func (s *Server) Serve(lis net.Listener) error {
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	s.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	s.log.Info("grpc health server starting",
		logger.NewField("addr", lis.Addr().String()),
	)

	if err := s.server.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("grpc health serve: %w", err)
	}
	return nil
}

// Shutdown переводит все сервисы в NOT_SERVING и дожидается активных вызовов.
func (s *Server) Shutdown() {
	s.health.Shutdown()
	s.server.GracefulStop()
	s.log.Info("grpc health server stopped")
}
