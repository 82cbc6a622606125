// Package healthcheck exposes the standard gRPC health service so
// orchestrators can probe the analysis service without speaking HTTP.
package healthcheck

import (
	"net"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the service reported alongside the overall ("") status.
const ServiceName = "voicecoach.Analysis"

// Server wraps a grpc.Server carrying only the health service.
type Server struct {
	grpcServer *grpc.Server
	health     *health.Server
	logger     *logrus.Logger
}

// NewServer creates a health server that reports NOT_SERVING until
// SetServing is called.
func NewServer(logger *logrus.Logger) *Server {
	hs := health.NewServer()
	hs.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	hs.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	gs := grpc.NewServer()
	healthpb.RegisterHealthServer(gs, hs)

	return &Server{grpcServer: gs, health: hs, logger: logger}
}

// SetServing flips both statuses between SERVING and NOT_SERVING.
func (s *Server) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
	s.logger.WithField("status", status.String()).Info("gRPC health status changed")
}

// Listen binds addr and serves until Shutdown. It blocks.
func (s *Server) Listen(addr string) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", addr)
	}
	return s.Serve(lis)
}

// Serve accepts connections on lis until Shutdown. It blocks.
func (s *Server) Serve(lis net.Listener) error {
	s.logger.WithField("addr", lis.Addr().String()).Info("gRPC health server listening")
	if err := s.grpcServer.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return errors.Wrap(err, "serve grpc health")
	}
	return nil
}

// Shutdown reports NOT_SERVING to watchers, then stops the server
// after in-flight checks finish.
func (s *Server) Shutdown() {
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
}
