package ai

import (
	"log/slog"

	"github.com/udisondev/fragbots/internal/model"
)

const (
	minGoalDistance   = 0.01
	behindScoreFactor = 0.5
)

// pickShortRangeGoal looks for a nearby item worth a detour.
// The long range goal within reach and in front of the bot wins immediately.
func (b *Bot) pickShortRangeGoal(now int64) {
	if now < b.nextShortGoalAt {
		return
	}
	b.nextShortGoalAt = now + b.cfg.ShortGoalDelay.Milliseconds()

	var (
		best      model.EntityID
		bestScore float64
	)
	b.pool.ForEach(func(ent *model.NavEntity) bool {
		if ent.IsDisabled() || ent.IsClient() || ent.ID == b.id {
			return true
		}
		// not spawned yet
		if ent.SpawnTime == 0 || ent.SpawnTime > now {
			return true
		}
		w := b.items.Weight(ent.ID)
		if w <= 0 {
			return true
		}

		radius := b.cfg.ShortGoalRadius
		if ent.ID == b.longGoal.Goal {
			radius = b.cfg.ShortGoalLongRadius
		}
		dist := b.self.Origin.Distance(ent.Origin)
		if dist > radius {
			return true
		}
		dist = max(dist, minGoalDistance)

		if !b.perception.CanReach(b.self.Origin, ent.Origin) {
			return true
		}
		inFront := b.perception.IsInFront(b.self.Origin, b.self.LookDir, ent.Origin)
		if inFront && ent.ID == b.longGoal.Goal {
			best = ent.ID
			return false
		}

		score := w / dist
		if !inFront {
			score *= behindScoreFactor
		}
		if score > bestScore {
			best, bestScore = ent.ID, score
		}
		return true
	})

	if best == model.NoEntity {
		if b.shortGoal.IsSet() {
			b.shortGoal = GoalClaim{}
		}
		b.nextShortGoalAt = now + b.cfg.ShortGoalIdleDelay.Milliseconds()
		return
	}

	if best != b.shortGoal.Goal && IsDebugEnabled() {
		slog.Debug("short range goal", "bot", b.name, "goal", best, "score", bestScore)
	}
	b.shortGoal = GoalClaim{Goal: best, ExpiresAt: now + b.cfg.ShortGoalTimeout.Milliseconds()}
}
