package db

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/fragbots/internal/model"
)

type memoryStore struct {
	mu      sync.Mutex
	batches [][]model.GoalEvent
	err     error
}

func (s *memoryStore) InsertBatch(_ context.Context, events []model.GoalEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.batches = append(s.batches, slices.Clone(events))
	return nil
}

func (s *memoryStore) all() []model.GoalEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.GoalEvent
	for _, b := range s.batches {
		out = append(out, b...)
	}
	return out
}

func TestEventWriter_BatchesAndFinalFlush(t *testing.T) {
	store := &memoryStore{}
	match := uuid.New()
	w := NewEventWriter(store, match, 2, 16, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	for i := range 5 {
		w.RecordGoalEvent(model.GoalEvent{Bot: "Visor", Kind: model.GoalEventPicked, LevelTime: int64(i)})
	}
	require.Eventually(t, func() bool { return w.Written() == 4 }, time.Second, time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	events := store.all()
	require.Len(t, events, 5)
	for i, ev := range events {
		assert.Equal(t, match, ev.MatchID)
		assert.Equal(t, int64(i), ev.LevelTime)
		assert.False(t, ev.CreatedAt.IsZero())
	}
	assert.Equal(t, int64(5), w.Written())
	assert.Zero(t, w.Dropped())
}

func TestEventWriter_PeriodicFlush(t *testing.T) {
	store := &memoryStore{}
	w := NewEventWriter(store, uuid.New(), 100, 100, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	w.RecordGoalEvent(model.GoalEvent{Bot: "Sarge"})
	require.Eventually(t, func() bool { return w.Written() == 1 }, time.Second, time.Millisecond)
}

func TestEventWriter_DropsWhenFull(t *testing.T) {
	w := NewEventWriter(&memoryStore{}, uuid.New(), 1, 1, time.Hour)

	for range 3 {
		w.RecordGoalEvent(model.GoalEvent{Bot: "Visor"})
	}
	assert.Equal(t, int64(2), w.Dropped())
}

func TestEventWriter_StoreErrorCountsAsDropped(t *testing.T) {
	store := &memoryStore{err: errors.New("connection reset")}
	w := NewEventWriter(store, uuid.New(), 2, 8, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	w.RecordGoalEvent(model.GoalEvent{Bot: "Visor"})
	w.RecordGoalEvent(model.GoalEvent{Bot: "Visor"})
	require.Eventually(t, func() bool { return w.Dropped() == 2 }, time.Second, time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	assert.Zero(t, w.Written())
}

func TestEventWriter_KeepsCreatedAt(t *testing.T) {
	store := &memoryStore{}
	w := NewEventWriter(store, uuid.New(), 1, 4, time.Hour)
	at := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	w.RecordGoalEvent(model.GoalEvent{Bot: "Visor", CreatedAt: at})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	require.Eventually(t, func() bool { return w.Written() == 1 }, time.Second, time.Millisecond)
	cancel()
	<-done

	assert.Equal(t, at, store.all()[0].CreatedAt)
}
