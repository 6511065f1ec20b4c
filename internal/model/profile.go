package model

import (
	"time"

	"github.com/google/uuid"
)

// BotProfile is a persisted bot definition.
type BotProfile struct {
	Name     string
	Skill    float64 // 0..1
	MoveMask MoveMask
	Enabled  bool
}

// GoalEventKind describes what happened to a bot goal.
type GoalEventKind uint8

const (
	GoalEventPicked GoalEventKind = iota
	GoalEventKept
	GoalEventSwitched
	GoalEventReached
	GoalEventCanceled
	GoalEventAbandoned
)

// String returns human-readable goal event kind
func (k GoalEventKind) String() string {
	switch k {
	case GoalEventPicked:
		return "picked"
	case GoalEventKept:
		return "kept"
	case GoalEventSwitched:
		return "switched"
	case GoalEventReached:
		return "reached"
	case GoalEventCanceled:
		return "canceled"
	case GoalEventAbandoned:
		return "abandoned"
	default:
		return "unknown"
	}
}

// GoalEvent is a telemetry record of a goal decision.
type GoalEvent struct {
	MatchID   uuid.UUID
	Bot       string
	Entity    EntityID
	Kind      GoalEventKind
	Score     float64
	LevelTime int64
	CreatedAt time.Time
}
