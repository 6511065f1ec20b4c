package db

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/udisondev/fragbots/internal/model"
)

const finalFlushTimeout = 5 * time.Second

// GoalEventStore persists batches of goal events.
type GoalEventStore interface {
	InsertBatch(ctx context.Context, events []model.GoalEvent) error
}

// EventWriter buffers goal events from bots and writes them in batches.
// RecordGoalEvent never blocks: events are dropped when the queue is full.
type EventWriter struct {
	store      GoalEventStore
	matchID    uuid.UUID
	queue      chan model.GoalEvent
	batchSize  int
	flushEvery time.Duration

	written atomic.Int64
	dropped atomic.Int64
}

// NewEventWriter creates a writer stamping events with matchID.
func NewEventWriter(store GoalEventStore, matchID uuid.UUID, batchSize, queueSize int, flushEvery time.Duration) *EventWriter {
	if batchSize <= 0 {
		batchSize = 256
	}
	if queueSize < batchSize {
		queueSize = batchSize
	}
	if flushEvery <= 0 {
		flushEvery = 2 * time.Second
	}
	return &EventWriter{
		store:      store,
		matchID:    matchID,
		queue:      make(chan model.GoalEvent, queueSize),
		batchSize:  batchSize,
		flushEvery: flushEvery,
	}
}

// MatchID returns the match id stamped on events.
func (w *EventWriter) MatchID() uuid.UUID { return w.matchID }

// RecordGoalEvent enqueues ev. Safe for concurrent use.
func (w *EventWriter) RecordGoalEvent(ev model.GoalEvent) {
	ev.MatchID = w.matchID
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now()
	}
	select {
	case w.queue <- ev:
	default:
		w.dropped.Add(1)
	}
}

// Written returns number of persisted events.
func (w *EventWriter) Written() int64 { return w.written.Load() }

// Dropped returns number of events lost to a full queue or a failed write.
func (w *EventWriter) Dropped() int64 { return w.dropped.Load() }

// Run writes batches until ctx is cancelled, then flushes what is left.
func (w *EventWriter) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.flushEvery)
	defer ticker.Stop()

	slog.Info("goal event writer started", "match", w.matchID, "batch", w.batchSize)

	batch := make([]model.GoalEvent, 0, w.batchSize)
	for {
		select {
		case <-ctx.Done():
			batch = w.drain(batch)
			flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), finalFlushTimeout)
			w.flush(flushCtx, batch)
			cancel()
			slog.Info("goal event writer stopped", "written", w.Written(), "dropped", w.Dropped())
			return nil

		case ev := <-w.queue:
			batch = append(batch, ev)
			if len(batch) >= w.batchSize {
				w.flush(ctx, batch)
				batch = batch[:0]
			}

		case <-ticker.C:
			w.flush(ctx, batch)
			batch = batch[:0]
		}
	}
}

func (w *EventWriter) drain(batch []model.GoalEvent) []model.GoalEvent {
	for {
		select {
		case ev := <-w.queue:
			batch = append(batch, ev)
		default:
			return batch
		}
	}
}

func (w *EventWriter) flush(ctx context.Context, batch []model.GoalEvent) {
	if len(batch) == 0 {
		return
	}
	if err := w.store.InsertBatch(ctx, batch); err != nil {
		w.dropped.Add(int64(len(batch)))
		slog.Error("writing goal events", "count", len(batch), "error", err)
		return
	}
	w.written.Add(int64(len(batch)))
}
