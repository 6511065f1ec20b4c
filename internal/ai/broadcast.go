package ai

import (
	"log/slog"
	"sync"

	"github.com/udisondev/fragbots/internal/model"
)

type goalCancellation struct {
	goal     model.EntityID
	claimant model.EntityID
}

// GoalBroadcast tells every other bot that a goal was grabbed or abandoned.
// Cancellations are buffered and delivered once per frame, before any bot thinks,
// so bots thinking in parallel never see each other's claims change mid-frame.
type GoalBroadcast struct {
	mu      sync.Mutex
	pending []goalCancellation
}

// NewGoalBroadcast creates an empty broadcast mailbox.
func NewGoalBroadcast() *GoalBroadcast {
	return &GoalBroadcast{}
}

// CancelGoal queues clearing of goal from every bot except claimant.
// claimant may be model.NoEntity when a non-bot consumed the goal.
func (g *GoalBroadcast) CancelGoal(goal, claimant model.EntityID) {
	if goal == model.NoEntity {
		return
	}
	g.mu.Lock()
	g.pending = append(g.pending, goalCancellation{goal: goal, claimant: claimant})
	g.mu.Unlock()
}

// Pending returns the number of queued cancellations.
func (g *GoalBroadcast) Pending() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.pending)
}

// Deliver applies all queued cancellations to controllers and empties the queue.
// Returns the number of controllers whose goals were cleared.
func (g *GoalBroadcast) Deliver(controllers []Controller) int {
	g.mu.Lock()
	pending := g.pending
	g.pending = nil
	g.mu.Unlock()

	cleared := 0
	for _, c := range pending {
		for _, ctrl := range controllers {
			if ctrl.ID() == c.claimant {
				continue
			}
			if ctrl.ClaimsGoal(c.goal) {
				ctrl.ClearGoals(c.goal)
				cleared++
			}
		}
		if IsDebugEnabled() {
			slog.Debug("goal canceled", "goal", c.goal, "claimant", c.claimant)
		}
	}
	return cleared
}
