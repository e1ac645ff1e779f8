package redis

import (
	"context"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"
)

// DefaultKey is the halt key used when none is configured.
const DefaultKey = "halt"

// HaltFlag implements ports.HaltSource using a Redis key. The run is
// considered halted while the key exists, so any process with access to
// the server can stop a long learning run.
type HaltFlag struct {
	client *backend.Client
	prefix string
	key    string
	ttl    time.Duration
}

type Option func(*HaltFlag)

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(f *HaltFlag) {
		f.prefix = prefix
	}
}

// WithKey sets the key name (appended to the prefix).
func WithKey(key string) Option {
	return func(f *HaltFlag) {
		if key != "" {
			f.key = key
		}
	}
}

// WithTTL makes raised flags expire on their own.
func WithTTL(ttl time.Duration) Option {
	return func(f *HaltFlag) {
		f.ttl = ttl
	}
}

// New creates a new Redis halt flag with options.
func New(address, password string, db int, opts ...Option) *HaltFlag {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis halt flag from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *HaltFlag {
	f := &HaltFlag{
		client: client,
		prefix: "locus:",
		key:    DefaultKey,
		ttl:    0, // No expiration by default
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Key returns the full Redis key of the flag.
func (f *HaltFlag) Key() string {
	return f.prefix + f.key
}

// Halted reports whether the key exists.
func (f *HaltFlag) Halted(ctx context.Context) (bool, error) {
	n, err := f.client.Exists(ctx, f.Key()).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check halt flag: %w", err)
	}
	return n > 0, nil
}

// Halt raises the flag.
func (f *HaltFlag) Halt(ctx context.Context, reason string) error {
	if reason == "" {
		reason = "halted"
	}
	if err := f.client.Set(ctx, f.Key(), reason, f.ttl).Err(); err != nil {
		return fmt.Errorf("failed to raise halt flag: %w", err)
	}
	return nil
}

// Reason returns the value stored with the flag, or "" when it is lowered.
func (f *HaltFlag) Reason(ctx context.Context) (string, error) {
	val, err := f.client.Get(ctx, f.Key()).Result()
	if err == backend.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read halt flag: %w", err)
	}
	return val, nil
}

// Reset lowers the flag.
func (f *HaltFlag) Reset(ctx context.Context) error {
	if err := f.client.Del(ctx, f.Key()).Err(); err != nil {
		return fmt.Errorf("failed to lower halt flag: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (f *HaltFlag) Close() error {
	return f.client.Close()
}
