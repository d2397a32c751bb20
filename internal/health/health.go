package health

import (
	"net"

	"github.com/fekuna/omnipos-inventory-dashboard/internal/logger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

const ServiceName = "inventory.dashboard"

// Server is the gRPC side of the dashboard. It only carries the standard
// health service, whose status follows the last inventory sync.
type Server struct {
	grpc   *grpc.Server
	health *grpchealth.Server
	logger logger.ZapLogger
}

func NewServer(log logger.ZapLogger, opts ...grpc.ServerOption) *Server {
	s := &Server{
		grpc:   grpc.NewServer(opts...),
		health: grpchealth.NewServer(),
		logger: log,
	}
	healthpb.RegisterHealthServer(s.grpc, s.health)
	reflection.Register(s.grpc)

	s.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	return s
}

// ObserveSync records a sync outcome; it matches usecase.SyncObserver.
func (s *Server) ObserveSync(err error) {
	status := healthpb.HealthCheckResponse_SERVING
	if err != nil {
		status = healthpb.HealthCheckResponse_NOT_SERVING
		s.logger.Warn("inventory sync failed, reporting not serving", zap.Error(err))
	}
	s.health.SetServingStatus(ServiceName, status)
}

func (s *Server) Serve(lis net.Listener) error {
	return s.grpc.Serve(lis)
}

func (s *Server) GracefulStop() {
	s.health.Shutdown()
	s.grpc.GracefulStop()
}
