// Package store wraps the key/value substrate that holds every engine record.
// Reads are bounded by a timeout and resolve to a caller-supplied default;
// writes are attempted once.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/tahcohcat/capsule-achievements/internal/logger"
)

// KV is the raw substrate: asynchronous get/set of opaque values.
type KV interface {
	// Get returns the value at key and whether it exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

var ErrTimeout = errors.New("store read timed out")

const (
	DefaultReadTimeout = 2 * time.Second
	DefaultRetries     = 1
)

type Adapter struct {
	kv      KV
	timeout time.Duration
	retries int
	logger  *logger.Log
}

type Option func(*Adapter)

// WithReadTimeout sets the timeout of the first read attempt. Each further
// attempt doubles it.
func WithReadTimeout(d time.Duration) Option {
	return func(a *Adapter) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// WithRetries sets how many read attempts are made before falling back to
// the default value.
func WithRetries(n int) Option {
	return func(a *Adapter) {
		if n > 0 {
			a.retries = n
		}
	}
}

func New(kv KV, opts ...Option) *Adapter {
	a := &Adapter{
		kv:      kv,
		timeout: DefaultReadTimeout,
		retries: DefaultRetries,
		logger:  logger.New(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type getResult struct {
	data  []byte
	found bool
	err   error
}

// read performs one bounded Get. The substrate call runs in its own goroutine
// so a backend that ignores ctx cannot hold the caller past the deadline.
func (a *Adapter) read(ctx context.Context, key string, timeout time.Duration) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan getResult, 1)
	go func() {
		data, found, err := a.kv.Get(ctx, key)
		done <- getResult{data: data, found: found, err: err}
	}()

	select {
	case res := <-done:
		return res.data, res.found, res.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, false, ErrTimeout
		}
		return nil, false, ctx.Err()
	}
}

// Load decodes the value at key into dst. found is false when the key is
// absent or the stored value cannot be decoded; err is set only when every
// read attempt failed.
func (a *Adapter) Load(ctx context.Context, key string, dst any) (found bool, err error) {
	var data []byte
	timeout := a.timeout
	for attempt := 0; attempt < a.retries; attempt++ {
		data, found, err = a.read(ctx, key, timeout)
		if err == nil {
			break
		}
		if ctx.Err() != nil {
			break
		}
		timeout *= 2
	}
	if err != nil {
		a.logger.WithError(err).Warn(fmt.Sprintf("store read %q failed, using default", key))
		return false, err
	}
	if !found {
		return false, nil
	}
	if uerr := json.Unmarshal(data, dst); uerr != nil {
		a.logger.WithError(uerr).Warn(fmt.Sprintf("store value %q is malformed, using default", key))
		return false, nil
	}
	return true, nil
}

// Save encodes value and writes it once. Failures are logged and returned;
// the caller decides whether to care.
func (a *Adapter) Save(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", key, err)
	}
	if err := a.kv.Set(ctx, key, data); err != nil {
		a.logger.WithError(err).Warn(fmt.Sprintf("store write %q failed", key))
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

// Get returns the value stored at key, or def when it is absent, malformed
// or unreadable. ok is false only when the read itself failed.
func Get[T any](ctx context.Context, a *Adapter, key string, def T) (T, bool) {
	var v T
	found, err := a.Load(ctx, key, &v)
	if err != nil {
		return def, false
	}
	if !found {
		return def, true
	}
	return v, true
}
