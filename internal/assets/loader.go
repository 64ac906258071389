// Package assets runs slow asset preparation (file lookup, image decode) off the render
// goroutine and hands the results back to it. GPU uploads must happen on the goroutine that
// owns the graphics context, so completions wait in a queue until Poll runs them there.
package assets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"scene-walker/internal/logger"
)

// FetchFunc prepares an asset off the render goroutine.
type FetchFunc func(ctx context.Context) (any, error)

// ApplyFunc consumes a fetched value on the render goroutine.
type ApplyFunc func(v any) error

type completion struct {
	name  string
	value any
	err   error
	apply ApplyFunc
	took  time.Duration
}

// Loader tracks in-flight jobs. Failed jobs are logged and abandoned; there are no retries.
type Loader struct {
	ctx context.Context
	log *logger.Logger

	mu      sync.Mutex
	done    []completion
	pending int
	wg      sync.WaitGroup
}

// NewLoader returns a loader whose jobs stop when ctx is done. Completions that arrive after
// that are dropped.
func NewLoader(ctx context.Context, log *logger.Logger) *Loader {
	if log == nil {
		log = logger.Nop()
	}
	return &Loader{ctx: ctx, log: log}
}

// Load starts fetch on its own goroutine; apply runs later inside Poll.
func (l *Loader) Load(name string, fetch FetchFunc, apply ApplyFunc) {
	l.mu.Lock()
	l.pending++
	l.mu.Unlock()
	l.wg.Add(1)

	go func() {
		defer l.wg.Done()
		start := time.Now()
		v, err := fetch(l.ctx)
		c := completion{name: name, value: v, err: err, apply: apply, took: time.Since(start)}

		l.mu.Lock()
		defer l.mu.Unlock()
		if l.ctx.Err() != nil {
			l.pending--
			return
		}
		l.done = append(l.done, c)
	}()
}

// Poll applies every finished job and reports how many were applied successfully. Call it
// once per frame from the render goroutine.
func (l *Loader) Poll() int {
	l.mu.Lock()
	batch := l.done
	l.done = nil
	l.pending -= len(batch)
	l.mu.Unlock()

	applied := 0
	for _, c := range batch {
		if l.ctx.Err() != nil {
			return applied
		}
		if c.err != nil {
			l.log.Error("asset load failed", zap.String("asset", c.name), zap.Error(c.err))
			continue
		}
		if c.apply != nil {
			if err := c.apply(c.value); err != nil {
				l.log.Error("asset apply failed", zap.String("asset", c.name), zap.Error(err))
				continue
			}
		}
		l.log.Info("asset loaded", zap.String("asset", c.name), zap.Duration("took", c.took))
		applied++
	}
	return applied
}

// Pending reports jobs started but not yet polled.
func (l *Loader) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pending
}

// Wait blocks until every fetch goroutine has returned.
func (l *Loader) Wait() {
	l.wg.Wait()
}

// ErrNotFound is returned by Resolve when no candidate exists.
var ErrNotFound = errors.New("assets: not found")

// Resolve returns the first existing file among path and path relative to each root. The
// binary is often run from the repo root or from its cmd directory, so callers pass both.
func Resolve(path string, roots ...string) (string, error) {
	candidates := []string{path}
	if !filepath.IsAbs(path) {
		for _, r := range roots {
			candidates = append(candidates, filepath.Join(r, path))
		}
	}
	for _, c := range candidates {
		cleaned := filepath.Clean(c)
		if info, err := os.Stat(cleaned); err == nil && !info.IsDir() {
			return cleaned, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, path)
}
