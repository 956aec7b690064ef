// Package storefront parses storefront command flags and starts the server.
package storefront

import (
	"context"
	"flag"
	"log"

	entrypoint "github.com/louisbranch/storefront/internal/platform/cmd"
	platformgrpc "github.com/louisbranch/storefront/internal/platform/grpc"
	"github.com/louisbranch/storefront/internal/platform/timeouts"
	server "github.com/louisbranch/storefront/internal/services/storefront/app"
)

// Config holds storefront command configuration.
type Config struct {
	HTTPAddr        string `env:"STOREFRONT_HTTP_ADDR" envDefault:":8090"`
	GRPCAddr        string `env:"STOREFRONT_GRPC_ADDR" envDefault:":8091"`
	SnapshotBackend string `env:"STOREFRONT_SNAPSHOT_BACKEND" envDefault:"file"`
	SnapshotPath    string `env:"STOREFRONT_SNAPSHOT_PATH" envDefault:"data/snapshot.json"`
	SQLitePath      string `env:"STOREFRONT_SQLITE_PATH" envDefault:"data/storefront.db"`
	RedisAddr       string `env:"STOREFRONT_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisKey        string `env:"STOREFRONT_REDIS_KEY" envDefault:"storefront:snapshot"`
	RebuildOnStart  bool   `env:"STOREFRONT_REBUILD_ON_START" envDefault:"false"`
	// Probe checks the gRPC health of a running server and exits.
	Probe bool
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP API listen address")
	fs.StringVar(&cfg.GRPCAddr, "grpc-addr", cfg.GRPCAddr, "gRPC health listen address (empty disables)")
	fs.StringVar(&cfg.SnapshotBackend, "snapshot-backend", cfg.SnapshotBackend, "snapshot sink: file, sqlite, redis, none")
	fs.StringVar(&cfg.SnapshotPath, "snapshot-path", cfg.SnapshotPath, "file sink path")
	fs.StringVar(&cfg.SQLitePath, "sqlite-path", cfg.SQLitePath, "sqlite sink path")
	fs.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "redis sink address")
	fs.StringVar(&cfg.RedisKey, "redis-key", cfg.RedisKey, "redis sink key")
	fs.BoolVar(&cfg.RebuildOnStart, "rebuild", cfg.RebuildOnStart, "rebuild the read model from the event log instead of loading a snapshot")
	fs.BoolVar(&cfg.Probe, "probe", false, "check the gRPC health of a running server and exit")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ServerConfig converts the command configuration into server settings.
func (c Config) ServerConfig() server.Config {
	return server.Config{
		HTTPAddr:       c.HTTPAddr,
		GRPCAddr:       c.GRPCAddr,
		RebuildOnStart: c.RebuildOnStart,
		Snapshot: server.SinkConfig{
			Backend:    c.SnapshotBackend,
			FilePath:   c.SnapshotPath,
			SQLitePath: c.SQLitePath,
			RedisAddr:  c.RedisAddr,
			RedisKey:   c.RedisKey,
		},
	}
}

// Run starts the storefront service, or probes a running one.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Probe {
		return platformgrpc.Probe(ctx, probeAddr(cfg.GRPCAddr), server.HealthServiceName, timeouts.Probe, log.Printf)
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceStorefront, func(ctx context.Context) error {
		return server.Run(ctx, cfg.ServerConfig())
	})
}

// probeAddr turns a listen address such as ":8091" into a dialable target.
func probeAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
