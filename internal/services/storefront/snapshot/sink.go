package snapshot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound indicates that no artifact has been persisted yet.
var ErrNotFound = errors.New("snapshot not found")

// Sink stores and loads the latest artifact.
type Sink interface {
	Write(ctx context.Context, a Artifact) error
	Read(ctx context.Context) (Artifact, error)
}

// FileSink keeps the artifact in a single JSON file.
type FileSink struct {
	Path string
}

// Write replaces the file atomically through a temp file in the same directory.
func (s FileSink) Write(ctx context.Context, a Artifact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := strings.TrimSpace(s.Path)
	if path == "" {
		return errors.New("snapshot path is required")
	}
	data, err := Encode(a)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	file, err := os.CreateTemp(dir, ".snapshot-*.json")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	tmp := file.Name()
	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close temp snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename snapshot: %w", err)
	}
	return nil
}

// Read loads and validates the artifact file.
func (s FileSink) Read(ctx context.Context) (Artifact, error) {
	if err := ctx.Err(); err != nil {
		return Artifact{}, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Artifact{}, ErrNotFound
		}
		return Artifact{}, fmt.Errorf("read snapshot: %w", err)
	}
	return Decode(data)
}
