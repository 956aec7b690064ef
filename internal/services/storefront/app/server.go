package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"

	apperrors "github.com/louisbranch/storefront/internal/platform/errors"
	platformgrpc "github.com/louisbranch/storefront/internal/platform/grpc"
	"github.com/louisbranch/storefront/internal/platform/timeouts"
	"github.com/louisbranch/storefront/internal/services/storefront/api/httpapi"
	"github.com/louisbranch/storefront/internal/services/storefront/snapshot"
)

// HealthServiceName is the gRPC health entry reported alongside the overall
// status.
const HealthServiceName = "storefront.v1.Storefront"

// Config configures a storefront server.
type Config struct {
	HTTPAddr       string
	GRPCAddr       string
	Snapshot       SinkConfig
	RebuildOnStart bool
}

// Server hosts the storefront HTTP API and the gRPC health endpoint.
type Server struct {
	runtime      *Runtime
	sink         snapshot.Sink
	closeSink    func() error
	writer       *snapshot.Writer
	httpListener net.Listener
	httpServer   *http.Server
	listener     net.Listener
	grpcServer   *grpc.Server
	health       *health.Server
}

// New opens the snapshot sink, restores the read model, and binds listeners.
func New(ctx context.Context, cfg Config) (*Server, error) {
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return nil, errors.New("http address is required")
	}
	runtime, err := NewRuntime()
	if err != nil {
		return nil, err
	}
	sink, closeSink, err := OpenSink(ctx, cfg.Snapshot)
	if err != nil {
		return nil, err
	}
	s := &Server{runtime: runtime, sink: sink, closeSink: closeSink}
	if err := s.restore(ctx, cfg.RebuildOnStart); err != nil {
		s.closeStore()
		return nil, err
	}

	handler := &httpapi.Handler{
		Commands: runtime.Commands,
		Store:    runtime.Store,
		Events:   runtime.Journal,
	}
	if sink != nil {
		s.writer = &snapshot.Writer{Store: runtime.Store, Sink: sink, Log: runtime.Journal}
		handler.Snapshots = s.writer
	}

	s.httpListener, err = net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		s.closeStore()
		return nil, fmt.Errorf("listen on http addr %s: %w", cfg.HTTPAddr, err)
	}
	s.httpServer = &http.Server{
		Handler:           handler.Routes(),
		ReadHeaderTimeout: timeouts.ReadHeader,
	}

	if addr := strings.TrimSpace(cfg.GRPCAddr); addr != "" {
		s.listener, err = net.Listen("tcp", addr)
		if err != nil {
			_ = s.httpListener.Close()
			s.closeStore()
			return nil, fmt.Errorf("listen on grpc addr %s: %w", addr, err)
		}
		s.grpcServer = platformgrpc.NewServer()
		s.health = platformgrpc.RegisterHealth(s.grpcServer, HealthServiceName)
	}
	return s, nil
}

// restore loads the read model from the sink, or from the log when a rebuild
// is requested.
func (s *Server) restore(ctx context.Context, rebuild bool) error {
	if rebuild {
		_, err := s.runtime.Rebuild(ctx)
		return err
	}
	if s.sink == nil {
		log.Printf("snapshot bootstrap skipped reason=no_sink")
		return nil
	}
	_, _, err := snapshot.Bootstrap(ctx, s.sink, s.runtime.Store)
	return err
}

// Runtime exposes the wired core.
func (s *Server) Runtime() *Runtime {
	return s.runtime
}

// HTTPAddr returns the HTTP listener address.
func (s *Server) HTTPAddr() string {
	if s == nil || s.httpListener == nil {
		return ""
	}
	return s.httpListener.Addr().String()
}

// GRPCAddr returns the gRPC listener address, or "" when gRPC is disabled.
func (s *Server) GRPCAddr() string {
	if s == nil || s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Run creates and serves a storefront server until the context ends.
func Run(ctx context.Context, cfg Config) error {
	srv, err := New(ctx, cfg)
	if err != nil {
		return err
	}
	return srv.Serve(ctx)
}

// Serve blocks until the context ends or a listener fails. On the way out it
// stops both servers, writes a final snapshot, and closes the sink.
func (s *Server) Serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	defer s.closeStore()

	serveErr := make(chan error, 1)
	if s.grpcServer != nil {
		log.Printf("storefront gRPC server listening at %v", s.listener.Addr())
		go func() {
			serveErr <- s.grpcServer.Serve(s.listener)
		}()
	}

	log.Printf("storefront HTTP server listening at %v", s.httpListener.Addr())
	httpErr := make(chan error, 1)
	go func() {
		httpErr <- s.httpServer.Serve(s.httpListener)
	}()

	handleErr := func(err error) error {
		if err == nil || errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return fmt.Errorf("serve gRPC: %w", err)
	}
	shutdownGRPC := func() error {
		if s.grpcServer == nil {
			return nil
		}
		s.health.Shutdown()
		s.grpcServer.GracefulStop()
		return handleErr(<-serveErr)
	}
	shutdownHTTP := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("storefront HTTP shutdown: %v", err)
		}
	}

	var result error
	select {
	case <-ctx.Done():
		shutdownHTTP()
		result = shutdownGRPC()
	case err := <-serveErr:
		shutdownHTTP()
		result = handleErr(err)
	case err := <-httpErr:
		grpcErr := shutdownGRPC()
		if !errors.Is(err, http.ErrServerClosed) {
			result = errors.Join(grpcErr, fmt.Errorf("serve HTTP: %w", err))
		} else {
			result = grpcErr
		}
	}
	return errors.Join(result, s.persistFinal())
}

// persistFinal writes the read model once more after the listeners stop.
func (s *Server) persistFinal() error {
	if s.writer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeouts.SnapshotPersist)
	defer cancel()
	if _, err := s.writer.Persist(ctx); err != nil {
		log.Printf("final snapshot failed code=%s", apperrors.CodeOf(err))
		return fmt.Errorf("persist final snapshot: %w", err)
	}
	return nil
}

func (s *Server) closeStore() {
	if s == nil || s.closeSink == nil {
		return
	}
	if err := s.closeSink(); err != nil {
		log.Printf("close snapshot sink: %v", err)
	}
	s.closeSink = nil
}
