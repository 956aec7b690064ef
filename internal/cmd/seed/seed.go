// Package seed parses seed command flags and runs demo scenarios against an
// in-process storefront core.
package seed

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"reflect"
	"strings"

	entrypoint "github.com/louisbranch/storefront/internal/platform/cmd"
	server "github.com/louisbranch/storefront/internal/services/storefront/app"
	"github.com/louisbranch/storefront/internal/services/storefront/seed"
	"github.com/louisbranch/storefront/internal/services/storefront/snapshot"
)

// Config holds seed command configuration.
type Config struct {
	SnapshotBackend string `env:"STOREFRONT_SNAPSHOT_BACKEND" envDefault:"file"`
	SnapshotPath    string `env:"STOREFRONT_SNAPSHOT_PATH" envDefault:"data/snapshot.json"`
	SQLitePath      string `env:"STOREFRONT_SQLITE_PATH" envDefault:"data/storefront.db"`
	RedisAddr       string `env:"STOREFRONT_REDIS_ADDR" envDefault:"localhost:6379"`
	RedisKey        string `env:"STOREFRONT_REDIS_KEY" envDefault:"storefront:snapshot"`
	Scenario        string
	List            bool
	Verify          bool
	Verbose         bool
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Scenario, "scenario", "", "run specific scenario (default: all)")
	fs.BoolVar(&cfg.List, "list", false, "list available scenarios")
	fs.BoolVar(&cfg.Verify, "verify", true, "replay the log after seeding and compare read models")
	fs.BoolVar(&cfg.Verbose, "v", false, "verbose output")
	fs.StringVar(&cfg.SnapshotBackend, "snapshot-backend", cfg.SnapshotBackend, "snapshot sink: file, sqlite, redis, none")
	fs.StringVar(&cfg.SnapshotPath, "snapshot-path", cfg.SnapshotPath, "file sink path")
	fs.StringVar(&cfg.SQLitePath, "sqlite-path", cfg.SQLitePath, "sqlite sink path")
	fs.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "redis sink address")
	fs.StringVar(&cfg.RedisKey, "redis-key", cfg.RedisKey, "redis sink key")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes the seed command.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if cfg.List {
		fmt.Fprintln(out, "Available scenarios:")
		for _, sc := range seed.Scenarios() {
			fmt.Fprintf(out, "  %-16s %s\n", sc.Name, sc.Description)
		}
		return nil
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceSeed, func(ctx context.Context) error {
		return run(ctx, cfg, out)
	})
}

func run(ctx context.Context, cfg Config, out io.Writer) error {
	scenarios, err := selectScenarios(cfg.Scenario)
	if err != nil {
		return err
	}
	rt, err := server.NewRuntime()
	if err != nil {
		return err
	}
	for _, sc := range scenarios {
		report, err := seed.Run(ctx, rt.Commands, sc)
		if err != nil {
			return err
		}
		if cfg.Verbose {
			fmt.Fprintf(out, "%s: %d applied, %d rejected, %d events\n", report.Scenario, report.Applied, report.Rejected, report.Events)
		}
	}

	if cfg.Verify {
		if err := verifyReplay(ctx, rt); err != nil {
			return err
		}
	}

	sink, closeSink, err := server.OpenSink(ctx, server.SinkConfig{
		Backend:    cfg.SnapshotBackend,
		FilePath:   cfg.SnapshotPath,
		SQLitePath: cfg.SQLitePath,
		RedisAddr:  cfg.RedisAddr,
		RedisKey:   cfg.RedisKey,
	})
	if err != nil {
		return err
	}
	defer closeSink()
	if sink == nil {
		fmt.Fprintf(out, "seeded %d events (snapshot skipped)\n", rt.Journal.LastSeq())
		return nil
	}
	writer := snapshot.Writer{Store: rt.Store, Sink: sink, Log: rt.Journal}
	artifact, err := writer.Persist(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "seeded %d events, snapshot last_seq=%d\n", rt.Journal.LastSeq(), artifact.LastSeq)
	return nil
}

func selectScenarios(name string) ([]seed.Scenario, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return seed.Scenarios(), nil
	}
	sc, err := seed.Lookup(name)
	if err != nil {
		return nil, err
	}
	return []seed.Scenario{sc}, nil
}

// verifyReplay rebuilds the read model from the log and checks it matches the
// live one.
func verifyReplay(ctx context.Context, rt *server.Runtime) error {
	live := rt.Store.Export()
	if _, err := rt.Rebuild(ctx); err != nil {
		return err
	}
	if !reflect.DeepEqual(live, rt.Store.Export()) {
		return errors.New("replayed read model differs from live read model")
	}
	return nil
}
