package httpapi

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/hrmslite/hrms/internal/obs"
)

// ServiceName is the gRPC health service name reported alongside "".
const ServiceName = "hrms.api"

const defaultProbeInterval = 10 * time.Second

// GRPCServer serves grpc.health.v1.Health, SERVING only while the
// database answers.
type GRPCServer struct {
	health    *health.Server
	readiness Readiness
	interval  time.Duration
}

// NewGRPCServer creates the health service wrapper. A zero interval uses 10s.
func NewGRPCServer(r Readiness, interval time.Duration) *GRPCServer {
	if r == nil {
		r = ReadyProbe{}
	}
	if interval <= 0 {
		interval = defaultProbeInterval
	}
	s := &GRPCServer{
		health:    health.NewServer(),
		readiness: r,
		interval:  interval,
	}
	s.set(healthpb.HealthCheckResponse_NOT_SERVING)
	return s
}

// Register attaches the health service to srv.
func (s *GRPCServer) Register(srv *grpc.Server) {
	healthpb.RegisterHealthServer(srv, s.health)
}

// Probe checks readiness once and publishes the result.
func (s *GRPCServer) Probe(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.readiness.Check(ctx); err != nil {
		obs.Warn("grpc_health_not_serving", map[string]any{"error": err.Error()})
		s.set(healthpb.HealthCheckResponse_NOT_SERVING)
		return false
	}
	s.set(healthpb.HealthCheckResponse_SERVING)
	return true
}

// Run probes until ctx is done, then marks the service as shut down.
func (s *GRPCServer) Run(ctx context.Context) {
	s.Probe(ctx)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.health.Shutdown()
			return
		case <-ticker.C:
			s.Probe(ctx)
		}
	}
}

func (s *GRPCServer) set(status healthpb.HealthCheckResponse_ServingStatus) {
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}
