// Package goroutine runs background work with a concurrency cap and panic
// recovery.
package goroutine

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"

	"go.uber.org/atomic"

	"github.com/shandysiswandi/phishguard/internal/pkg/stacktrace"
)

// DefaultMaxGoroutine is multiplied by NumCPU when NewManager gets a
// non-positive limit.
const DefaultMaxGoroutine int = 100

// Manager runs functions in goroutines and collects their errors until Wait.
type Manager struct {
	wg     sync.WaitGroup
	sema   chan struct{}
	closed atomic.Bool
	// gate orders Go against Wait so no task is added after Wait starts.
	gate sync.RWMutex

	mu   sync.Mutex
	errs []error
}

// NewManager creates a Manager that runs at most maxGoroutine tasks at once.
func NewManager(maxGoroutine int) *Manager {
	if maxGoroutine < 1 {
		maxGoroutine = runtime.NumCPU() * DefaultMaxGoroutine
	}

	return &Manager{sema: make(chan struct{}, maxGoroutine)}
}

// Go schedules f. It returns false when the manager is closed or full; the
// task is dropped in both cases.
func (g *Manager) Go(ctx context.Context, f func(ctx context.Context) error) bool {
	if g == nil {
		return false
	}

	g.gate.RLock()
	defer g.gate.RUnlock()

	if g.closed.Load() {
		slog.WarnContext(ctx, "goroutine manager is closed, skipping new goroutine")
		return false
	}

	select {
	case g.sema <- struct{}{}:
	default:
		slog.WarnContext(ctx, "maximum goroutine limit reached, failed to start new goroutine")
		return false
	}

	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		defer func() { <-g.sema }()
		defer recoverTask(ctx)

		if ctx.Err() != nil {
			slog.WarnContext(ctx, "goroutine canceled", "because", ctx.Err())
			return
		}
		if err := f(ctx); err != nil {
			g.mu.Lock()
			g.errs = append(g.errs, err)
			g.mu.Unlock()
		}
	}()

	return true
}

// Wait closes the manager, blocks until every task finishes, and returns the
// joined task errors.
func (g *Manager) Wait() error {
	if g == nil {
		return nil
	}

	g.gate.Lock()
	g.closed.Store(true)
	g.gate.Unlock()

	g.wg.Wait()

	g.mu.Lock()
	defer g.mu.Unlock()
	return errors.Join(g.errs...)
}

func recoverTask(ctx context.Context) {
	rvr := recover()
	if rvr == nil {
		return
	}

	stack := debug.Stack()
	if paths := stacktrace.InternalPaths(stack); len(paths) > 0 {
		slog.ErrorContext(ctx, "panic occurred in goroutine", "panic", rvr, "stack", paths)
		return
	}
	slog.ErrorContext(ctx, "panic occurred in goroutine", "panic", rvr, "stack", string(stack))
}
