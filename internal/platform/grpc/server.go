// Package grpc holds gRPC server and client helpers shared by the storefront
// binaries.
package grpc

import (
	"context"
	"errors"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	gogrpc "google.golang.org/grpc"

	apperrors "github.com/louisbranch/storefront/internal/platform/errors"
	"github.com/louisbranch/storefront/internal/platform/errors/i18n"
)

// NewServer returns a gRPC server instrumented with the OTel stats handler and
// the structured error interceptor. Extra options are appended.
func NewServer(opts ...gogrpc.ServerOption) *gogrpc.Server {
	base := []gogrpc.ServerOption{
		gogrpc.StatsHandler(otelgrpc.NewServerHandler()),
		gogrpc.ChainUnaryInterceptor(UnaryErrorInterceptor),
	}
	return gogrpc.NewServer(append(base, opts...)...)
}

// UnaryErrorInterceptor converts *apperrors.Error results into gRPC statuses
// carrying ErrorInfo and a localized message.
func UnaryErrorInterceptor(ctx context.Context, req any, _ *gogrpc.UnaryServerInfo, handler gogrpc.UnaryHandler) (any, error) {
	resp, err := handler(ctx, req)
	if err == nil {
		return resp, nil
	}
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		return resp, err
	}
	catalog := i18n.GetCatalog(i18n.BaseLocale)
	return resp, appErr.ToGRPCStatus(catalog.Locale(), catalog.Format(string(appErr.Code), appErr.Metadata))
}
