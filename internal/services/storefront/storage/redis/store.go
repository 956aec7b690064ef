package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/louisbranch/storefront/internal/services/storefront/snapshot"
)

// DefaultKey is used when no key is configured.
const DefaultKey = "storefront:snapshot"

// Store is a snapshot.Sink backed by a Redis string key. The last sequence is
// mirrored under "<key>:last_seq" for cheap inspection.
type Store struct {
	client goredis.UniversalClient
	key    string
}

var _ snapshot.Sink = (*Store)(nil)

// NewStore wraps an existing client.
func NewStore(client goredis.UniversalClient, key string) *Store {
	key = strings.TrimSpace(key)
	if key == "" {
		key = DefaultKey
	}
	return &Store{client: client, key: key}
}

// Dial connects to addr and verifies the connection with PING.
func Dial(ctx context.Context, addr, key string) (*Store, error) {
	client := goredis.NewClient(&goredis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return NewStore(client, key), nil
}

// Key returns the key holding the artifact.
func (s *Store) Key() string {
	return s.key
}

// Close closes the underlying client.
func (s *Store) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

// Write stores the artifact and its sequence in one MULTI/EXEC.
func (s *Store) Write(ctx context.Context, a snapshot.Artifact) error {
	payload, err := snapshot.Encode(a)
	if err != nil {
		return err
	}
	_, err = s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Set(ctx, s.key, payload, 0)
		pipe.Set(ctx, s.key+":last_seq", a.LastSeq, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("set snapshot %s: %w", s.key, err)
	}
	return nil
}

// Read loads the artifact stored under the key.
func (s *Store) Read(ctx context.Context) (snapshot.Artifact, error) {
	payload, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return snapshot.Artifact{}, snapshot.ErrNotFound
	}
	if err != nil {
		return snapshot.Artifact{}, fmt.Errorf("get snapshot %s: %w", s.key, err)
	}
	return snapshot.Decode(payload)
}

// LastSeq returns the sequence of the stored artifact, or 0 when none exists.
func (s *Store) LastSeq(ctx context.Context) (uint64, error) {
	seq, err := s.client.Get(ctx, s.key+":last_seq").Uint64()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get snapshot seq %s: %w", s.key, err)
	}
	return seq, nil
}
