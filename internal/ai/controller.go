package ai

import "github.com/udisondev/fragbots/internal/model"

// Controller represents a per-agent decision maker driven by TickManager.
type Controller interface {
	// ID returns the agent's entity id.
	ID() model.EntityID

	// Start starts the controller
	Start()

	// Stop stops the controller
	Stop()

	// Think runs one decision frame at level time now (milliseconds).
	Think(now int64)

	// ClaimsGoal reports whether goal is the long or short range goal.
	ClaimsGoal(goal model.EntityID) bool

	// ClearGoals drops both goal claims after another agent grabbed canceled.
	ClearGoals(canceled model.EntityID)
}
