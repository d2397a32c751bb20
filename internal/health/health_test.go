package health

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/fekuna/omnipos-inventory-dashboard/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func status(t *testing.T, s *Server) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := s.health.Check(context.Background(), &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestObserveSyncFlipsStatus(t *testing.T) {
	s := NewServer(logger.NewNop())
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, s))

	s.ObserveSync(nil)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(t, s))

	s.ObserveSync(errors.New("remote down"))
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, s))
}

func TestServeOverTheWire(t *testing.T) {
	s := NewServer(logger.NewNop())
	s.ObserveSync(nil)

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.GracefulStop)

	conn, err := grpc.NewClient(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	resp, err := healthpb.NewHealthClient(conn).Check(context.Background(), &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}
