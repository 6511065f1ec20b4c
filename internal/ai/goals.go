package ai

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/udisondev/fragbots/internal/model"
)

// GoalClaim is a bot's intent to reach a nav entity until ExpiresAt.
type GoalClaim struct {
	Goal      model.EntityID
	ExpiresAt int64
}

// IsSet reports whether the claim names a goal.
func (c GoalClaim) IsSet() bool {
	return c.Goal != model.NoEntity
}

type goalCandidate struct {
	ent    *model.NavEntity
	weight float64
}

// ItemsSelector scores nav entities by weight against travel and wait time.
type ItemsSelector struct {
	bot *Bot

	weights       map[model.EntityID]float64
	lastSuggested model.EntityID
	lastScore     float64
	candidates    []goalCandidate
}

func newItemsSelector(bot *Bot) *ItemsSelector {
	return &ItemsSelector{
		bot:     bot,
		weights: make(map[model.EntityID]float64),
	}
}

// Weight returns the last computed weight of ent.
func (s *ItemsSelector) Weight(id model.EntityID) float64 {
	return s.weights[id]
}

// LastScore returns the score of the last suggested goal.
func (s *ItemsSelector) LastScore() float64 {
	return s.lastScore
}

// Forget drops the memory of the last suggested goal. Called when a goal is
// reached or canceled.
func (s *ItemsSelector) Forget() {
	s.lastSuggested = model.NoEntity
	s.lastScore = 0
}

// UpdateWeights recomputes per-entity weights from the bot's inventory and status.
func (s *ItemsSelector) UpdateWeights() {
	b := s.bot
	clear(s.weights)
	b.pool.ForEach(func(ent *model.NavEntity) bool {
		if ent.IsClient() || ent.ID == b.id {
			return true
		}
		var w float64
		if ent.Item != nil {
			if !ent.Item.Pickable || !b.gametype.CanPickUp(ent.Item) {
				return true
			}
			w = ItemWeight(ent.Item, &b.self.Inventory, b.self.Status)
		} else {
			gw, ok := b.gametype.GoalWeight(b.id, ent)
			if !ok {
				return true
			}
			w = gw
		}
		if w > 0 {
			s.weights[ent.ID] = w
		}
		return true
	})
}

// SuggestGoal returns the best long range goal. current is the goal held now
// (model.NoEntity if none); it keeps its place unless a new goal is clearly better.
// Returns false when no candidate qualifies.
func (s *ItemsSelector) SuggestGoal(current model.EntityID) (model.EntityID, bool) {
	b := s.bot
	now := b.clock.now
	freshness := b.cfg.SpawnFreshness.Milliseconds()

	s.candidates = s.candidates[:0]
	b.pool.ForEach(func(ent *model.NavEntity) bool {
		if ent.IsDisabled() || ent.IsClient() || ent.ID == b.id {
			return true
		}
		if b.isAreaDisabled(ent.AreaNum, now) {
			return true
		}
		// unknown or stale spawn times are not trusted
		if ent.SpawnTime == 0 || now-ent.SpawnTime > freshness {
			return true
		}
		w := s.weights[ent.ID]
		if w <= 0 {
			return true
		}
		if b.self.Origin.Distance(ent.Origin) > b.cfg.MaxDistanceFactor*w {
			return true
		}
		s.candidates = append(s.candidates, goalCandidate{ent: ent, weight: w})
		return true
	})

	slices.SortStableFunc(s.candidates, func(a, c goalCandidate) int {
		return cmp.Compare(c.weight, a.weight)
	})
	if len(s.candidates) > b.cfg.MaxGoalCandidates {
		s.candidates = s.candidates[:b.cfg.MaxGoalCandidates]
	}

	var (
		best      model.EntityID
		bestScore float64
		currScore float64
		lastScore float64
	)
	for _, c := range s.candidates {
		score, ok := s.scoreCandidate(c, now)
		if !ok {
			continue
		}
		if score > bestScore {
			best, bestScore = c.ent.ID, score
		}
		if c.ent.ID == current {
			currScore = score
		}
		if c.ent.ID == s.lastSuggested {
			lastScore = score
		}
	}
	if best == model.NoEntity {
		return model.NoEntity, false
	}

	result, resultScore := best, bestScore
	switch {
	case current != model.NoEntity && best != current && currScore >= b.cfg.StickinessCurrent*bestScore:
		result, resultScore = current, currScore
	case current == model.NoEntity && s.lastSuggested != model.NoEntity && best != s.lastSuggested &&
		lastScore >= b.cfg.StickinessFresh*bestScore:
		result, resultScore = s.lastSuggested, lastScore
	}

	if IsDebugEnabled() {
		slog.Debug("goal suggested",
			"bot", b.name,
			"goal", result,
			"score", resultScore,
			"best", best,
			"bestScore", bestScore,
			"candidates", len(s.candidates))
	}

	s.lastSuggested = result
	s.lastScore = resultScore
	return result, true
}

func (s *ItemsSelector) scoreCandidate(c goalCandidate, now int64) (float64, bool) {
	b := s.bot
	ent := c.ent

	moveDuration := int64(1)
	if ent.AreaNum != b.self.AreaNum {
		tt, ok := b.oracle.TravelTime(b.self.AreaNum, ent.AreaNum, b.moveMask)
		if !ok {
			return 0, false
		}
		moveDuration = max(tt, 1)
	}
	reachTime := now + moveDuration

	if ent.IsDropped() && ent.Timeout <= reachTime {
		return 0, false
	}

	waitDuration := int64(1)
	if ent.SpawnTime > reachTime {
		waitDuration = ent.SpawnTime - reachTime
	}
	if waitDuration > 1 && waitDuration > ent.MaxWaitDuration {
		return 0, false
	}

	cost := 0.0001 + b.cfg.MoveTimeWeight*float64(moveDuration) + b.cfg.WaitTimeWeight*float64(waitDuration)
	return 1000 * c.weight / (cost * ent.Influence()), true
}
