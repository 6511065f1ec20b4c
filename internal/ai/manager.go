package ai

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/fragbots/internal/model"
)

// FrameHook runs before or after bots think in a frame.
type FrameHook func(ctx context.Context, now int64)

// TickManager drives all registered bots frame by frame.
type TickManager struct {
	mu          sync.RWMutex
	controllers []Controller // sorted by ID
	broadcast   *GoalBroadcast
	tracer      trace.Tracer

	interval time.Duration
	shards   int
	before   FrameHook
	after    FrameHook

	stopOnce        sync.Once
	stopCh          chan struct{}
	controllerCount atomic.Int32 // cached count of controllers (O(1) access)
	frames          atomic.Int64
}

// TickManagerOption configures a TickManager.
type TickManagerOption func(*TickManager)

// WithShards thinks bots on n goroutines per frame.
func WithShards(n int) TickManagerOption {
	return func(m *TickManager) {
		if n > 0 {
			m.shards = n
		}
	}
}

// WithInterval sets the frame interval of Start.
func WithInterval(d time.Duration) TickManagerOption {
	return func(m *TickManager) {
		if d > 0 {
			m.interval = d
		}
	}
}

// WithFrameHooks sets hooks run before bots think (world step, body sync)
// and after (applying moves).
func WithFrameHooks(before, after FrameHook) TickManagerOption {
	return func(m *TickManager) {
		m.before = before
		m.after = after
	}
}

// NewTickManager creates a tick manager delivering goal cancellations from broadcast.
func NewTickManager(broadcast *GoalBroadcast, opts ...TickManagerOption) *TickManager {
	m := &TickManager{
		broadcast: broadcast,
		tracer:    otel.Tracer("github.com/udisondev/fragbots/internal/ai"),
		interval:  50 * time.Millisecond,
		shards:    1,
		stopCh:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Register registers a controller and starts it.
func (m *TickManager) Register(controller Controller) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := controller.ID()
	i, found := slices.BinarySearchFunc(m.controllers, id, func(c Controller, id model.EntityID) int {
		return cmp.Compare(c.ID(), id)
	})
	if found {
		return fmt.Errorf("controller already registered for entity %d", id)
	}
	m.controllers = slices.Insert(m.controllers, i, controller)
	m.controllerCount.Add(1)
	controller.Start()

	slog.Debug("AI controller registered", "entity", id)
	return nil
}

// Unregister stops and removes a controller.
func (m *TickManager) Unregister(id model.EntityID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i, found := slices.BinarySearchFunc(m.controllers, id, func(c Controller, id model.EntityID) int {
		return cmp.Compare(c.ID(), id)
	})
	if !found {
		return
	}
	controller := m.controllers[i]
	m.controllers = slices.Delete(m.controllers, i, i+1)
	m.controllerCount.Add(-1)
	controller.Stop()

	slog.Debug("AI controller unregistered", "entity", id)
}

// Start runs frames until the context is canceled or Stop is called.
// Level time starts at zero and advances with wall clock.
func (m *TickManager) Start(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	slog.Info("AI tick manager started", "interval", m.interval, "shards", m.shards)
	started := time.Now()

	for {
		select {
		case <-ctx.Done():
			slog.Info("AI tick manager stopping")
			return ctx.Err()

		case <-m.stopCh:
			slog.Info("AI tick manager stopped")
			return nil

		case <-ticker.C:
			if err := m.Frame(ctx, time.Since(started).Milliseconds()); err != nil {
				return err
			}
		}
	}
}

// Stop stops the tick loop.
func (m *TickManager) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

// Frame runs one frame at level time now: hooks, broadcast delivery, then every bot's Think.
// Cancellations queued during the frame are delivered at the start of the next one.
func (m *TickManager) Frame(ctx context.Context, now int64) error {
	ctx, span := m.tracer.Start(ctx, "ai.frame")
	defer span.End()

	if m.before != nil {
		m.before(ctx, now)
	}

	m.mu.RLock()
	controllers := slices.Clone(m.controllers)
	m.mu.RUnlock()

	var delivered int
	if m.broadcast != nil {
		delivered = m.broadcast.Deliver(controllers)
	}

	if err := m.thinkAll(ctx, controllers, now); err != nil {
		span.RecordError(err)
		return fmt.Errorf("frame at %d: %w", now, err)
	}

	if m.after != nil {
		m.after(ctx, now)
	}

	m.frames.Add(1)
	span.SetAttributes(
		attribute.Int64("level_time", now),
		attribute.Int("controllers", len(controllers)),
		attribute.Int("goals_cleared", delivered),
	)
	if IsDebugEnabled() && len(controllers) > 0 {
		slog.Debug("AI frame completed", "levelTime", now, "controllers", len(controllers), "goalsCleared", delivered)
	}
	return nil
}

func (m *TickManager) thinkAll(ctx context.Context, controllers []Controller, now int64) error {
	if m.shards <= 1 || len(controllers) < 2 {
		for _, c := range controllers {
			c.Think(now)
		}
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	chunk := (len(controllers) + m.shards - 1) / m.shards
	for part := range slices.Chunk(controllers, chunk) {
		g.Go(func() error {
			for _, c := range part {
				if err := ctx.Err(); err != nil {
					return err
				}
				c.Think(now)
			}
			return nil
		})
	}
	return g.Wait()
}

// Count returns number of registered controllers (O(1) cached count)
func (m *TickManager) Count() int {
	return int(m.controllerCount.Load())
}

// Frames returns how many frames ran.
func (m *TickManager) Frames() int64 {
	return m.frames.Load()
}

// GetController returns the controller for entity id.
func (m *TickManager) GetController(id model.EntityID) (Controller, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i, found := slices.BinarySearchFunc(m.controllers, id, func(c Controller, id model.EntityID) int {
		return cmp.Compare(c.ID(), id)
	})
	if !found {
		return nil, fmt.Errorf("controller not found for entity %d", id)
	}
	return m.controllers[i], nil
}

// Controllers returns a snapshot of registered controllers ordered by id.
func (m *TickManager) Controllers() []Controller {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.controllers)
}
