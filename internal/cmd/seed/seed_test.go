package seed

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"path/filepath"
	"strings"
	"testing"

	"github.com/louisbranch/storefront/internal/services/storefront/seed"
	"github.com/louisbranch/storefront/internal/services/storefront/snapshot"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if !cfg.Verify {
		t.Fatal("expected verify to default to true")
	}
	if cfg.SnapshotBackend != "file" || cfg.SnapshotPath != "data/snapshot.json" {
		t.Fatalf("config = %+v", cfg)
	}
}

func TestParseConfigFlags(t *testing.T) {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-list", "-scenario", "catalog", "-verify=false", "-snapshot-backend", "none"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if !cfg.List || cfg.Scenario != "catalog" || cfg.Verify || cfg.SnapshotBackend != "none" {
		t.Fatalf("config = %+v", cfg)
	}
}

func TestRunList(t *testing.T) {
	var out bytes.Buffer
	if err := Run(context.Background(), Config{List: true}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, sc := range seed.Scenarios() {
		if !strings.Contains(out.String(), sc.Name) {
			t.Fatalf("output %q missing scenario %q", out.String(), sc.Name)
		}
	}
}

func TestRunSeedsAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	var out bytes.Buffer
	cfg := Config{SnapshotBackend: "file", SnapshotPath: path, Verify: true, Verbose: true}
	if err := Run(context.Background(), cfg, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	artifact, err := snapshot.FileSink{Path: path}.Read(context.Background())
	if err != nil {
		t.Fatalf("read snapshot: %v", err)
	}
	if artifact.LastSeq == 0 || len(artifact.Inventory) != 5 {
		t.Fatalf("artifact last_seq=%d inventory=%d", artifact.LastSeq, len(artifact.Inventory))
	}
	if !strings.Contains(out.String(), "purchase:") {
		t.Fatalf("verbose output missing scenario report: %q", out.String())
	}
}

func TestRunSingleScenarioWithoutSink(t *testing.T) {
	var out bytes.Buffer
	cfg := Config{Scenario: "purchase", SnapshotBackend: "none"}
	if err := Run(context.Background(), cfg, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "seeded 6 events (snapshot skipped)") {
		t.Fatalf("output = %q", out.String())
	}
}

func TestRunUnknownScenario(t *testing.T) {
	err := Run(context.Background(), Config{Scenario: "nope", SnapshotBackend: "none"}, nil)
	if !errors.Is(err, seed.ErrUnknownScenario) {
		t.Fatalf("err = %v, want %v", err, seed.ErrUnknownScenario)
	}
}
