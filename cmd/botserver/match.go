package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/udisondev/fragbots/internal/ai"
	"github.com/udisondev/fragbots/internal/model"
	"github.com/udisondev/fragbots/internal/world"
)

// match ties the arena simulation to the bots driven by the tick manager.
type match struct {
	arena     *world.Arena
	broadcast *ai.GoalBroadcast
	manager   *ai.TickManager

	bots  map[model.EntityID]*ai.Bot
	order []*ai.Bot
}

func newMatch(arena *world.Arena, profiles []model.BotProfile, cfg ai.Config, events ai.EventSink, opts ...ai.TickManagerOption) (*match, error) {
	m := &match{
		arena:     arena,
		broadcast: ai.NewGoalBroadcast(),
		bots:      make(map[model.EntityID]*ai.Bot, len(profiles)),
	}

	opts = append(opts, ai.WithFrameHooks(m.beforeFrame, m.afterFrame))
	m.manager = ai.NewTickManager(m.broadcast, opts...)

	deps := arena.Deps(m.broadcast, events)
	for _, p := range profiles {
		if !p.Enabled {
			continue
		}
		id, err := arena.AddPlayer(p.Name)
		if err != nil {
			return nil, fmt.Errorf("spawning %q: %w", p.Name, err)
		}
		bot, err := ai.NewBot(p, id, deps, cfg)
		if err != nil {
			return nil, fmt.Errorf("creating bot %q: %w", p.Name, err)
		}
		if self, ok := arena.SelfState(id); ok {
			bot.SetSelf(self)
		}
		if err := m.manager.Register(bot); err != nil {
			return nil, err
		}
		m.bots[id] = bot
		m.order = append(m.order, bot)
	}

	arena.SetPickupHandler(m.onPickup)
	slog.Info("match ready", "arena", arena.Name(), "bots", len(m.order))
	return m, nil
}

// beforeFrame advances the world and hands every bot its body state.
func (m *match) beforeFrame(_ context.Context, now int64) {
	m.arena.Step(now)
	for _, b := range m.order {
		if self, ok := m.arena.SelfState(b.ID()); ok {
			b.SetSelf(self)
		}
	}
}

// afterFrame applies bot decisions to their bodies.
func (m *match) afterFrame(_ context.Context, _ int64) {
	for _, b := range m.order {
		target, ok := b.MoveTarget()
		m.arena.SetMoveTarget(b.ID(), target, ok)

		if aim, ok := b.AimTarget(); ok {
			m.arena.SetLookDir(b.ID(), aim.FireTarget.Sub(aim.FireOrigin))
		}
	}
}

// onPickup completes the picker's goal, or cancels the item for everybody else.
func (m *match) onPickup(p world.Pickup) {
	if b, ok := m.bots[p.Player]; ok && b.ClaimsGoal(p.Item) {
		b.GoalReached(p.Item)
		return
	}
	m.broadcast.CancelGoal(p.Item, p.Player)
}

func (m *match) snapshots() []ai.DebugSnapshot {
	out := make([]ai.DebugSnapshot, 0, len(m.order))
	for _, b := range m.order {
		if s, ok := b.Debug(); ok {
			out = append(out, s)
		}
	}
	return out
}
