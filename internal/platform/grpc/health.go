package grpc

import (
	"context"
	"fmt"
	"time"

	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/health"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

// Health polling bounds.
const (
	healthPollInitial = 100 * time.Millisecond
	healthPollMax     = 800 * time.Millisecond
	healthCallTimeout = time.Second
)

// RegisterHealth registers a health server on srv and marks the overall
// status and every named service as SERVING.
func RegisterHealth(srv *gogrpc.Server, services ...string) *health.Server {
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(srv, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	for _, name := range services {
		healthServer.SetServingStatus(name, grpc_health_v1.HealthCheckResponse_SERVING)
	}
	return healthServer
}

// awaitServing polls service until it reports SERVING or ctx ends. Unknown
// services are polled like NOT_SERVING ones since a starting server registers
// them late.
func awaitServing(ctx context.Context, client grpc_health_v1.HealthClient, service string, logf func(string, ...any)) error {
	if logf == nil {
		logf = func(string, ...any) {}
	}
	delay := healthPollInitial
	for attempt := 1; ; attempt++ {
		status, err := checkHealth(ctx, client, service)
		if err == nil && status == grpc_health_v1.HealthCheckResponse_SERVING {
			logf("grpc health service=%q serving attempts=%d", service, attempt)
			return nil
		}
		if err != nil {
			logf("grpc health service=%q attempt=%d err=%v", service, attempt, err)
		} else {
			logf("grpc health service=%q attempt=%d status=%s", service, attempt, status)
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			if err != nil {
				return fmt.Errorf("await health of %q: %w (last error: %v)", service, ctx.Err(), err)
			}
			return fmt.Errorf("await health of %q: %w (last status: %s)", service, ctx.Err(), status)
		case <-timer.C:
		}
		delay = min(delay*2, healthPollMax)
	}
}

func checkHealth(ctx context.Context, client grpc_health_v1.HealthClient, service string) (grpc_health_v1.HealthCheckResponse_ServingStatus, error) {
	callCtx, cancel := context.WithTimeout(ctx, healthCallTimeout)
	defer cancel()
	resp, err := client.Check(callCtx, &grpc_health_v1.HealthCheckRequest{Service: service})
	if err != nil {
		return grpc_health_v1.HealthCheckResponse_UNKNOWN, err
	}
	return resp.GetStatus(), nil
}
