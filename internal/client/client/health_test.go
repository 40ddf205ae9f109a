package client

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

func startHealthServer(t *testing.T) (*health.Server, func(service string) *HealthProbe) {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)

	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	dial := func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}

	newProbe := func(service string) *HealthProbe {
		p, err := NewHealthProbe("passthrough:///bufnet", service, grpc.WithContextDialer(dial))
		require.NoError(t, err)
		t.Cleanup(func() { _ = p.Close() })
		return p
	}
	return hs, newProbe
}

func TestHealthProbe_Serving(t *testing.T) {
	_, newProbe := startHealthServer(t)

	require.NoError(t, newProbe("").Ping(context.Background()))
}

func TestHealthProbe_NotServing(t *testing.T) {
	hs, newProbe := startHealthServer(t)
	hs.SetServingStatus("auth", healthpb.HealthCheckResponse_NOT_SERVING)

	err := newProbe("auth").Ping(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)

	hs.SetServingStatus("auth", healthpb.HealthCheckResponse_SERVING)
	require.NoError(t, newProbe("auth").Ping(context.Background()))
}

func TestHealthProbe_UnknownService(t *testing.T) {
	_, newProbe := startHealthServer(t)

	err := newProbe("nope").Ping(context.Background())
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestMapError(t *testing.T) {
	require.NoError(t, mapError(nil))
	require.Equal(t, ErrUnauthorized, mapError(status.Error(codes.Unauthenticated, "x")))
	require.Equal(t, ErrUnauthorized, mapError(status.Error(codes.PermissionDenied, "x")))
	require.Equal(t, ErrUnavailable, mapError(status.Error(codes.Unavailable, "x")))
	require.Equal(t, ErrUnavailable, mapError(status.Error(codes.DeadlineExceeded, "x")))
	require.ErrorContains(t, mapError(errors.New("plain")), "rpc error:")
}
