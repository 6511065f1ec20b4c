package ai

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/fragbots/internal/model"
)

type fakePool struct {
	ents []*model.NavEntity
}

func (p *fakePool) add(ent model.NavEntity) *model.NavEntity {
	e := ent
	p.ents = append(p.ents, &e)
	return &e
}

func (p *fakePool) ForEach(fn func(ent *model.NavEntity) bool) {
	for _, e := range p.ents {
		if !fn(e) {
			return
		}
	}
}

func (p *fakePool) Get(id model.EntityID) (model.NavEntity, bool) {
	for _, e := range p.ents {
		if e.ID == id {
			return *e, true
		}
	}
	return model.NavEntity{}, false
}

func (p *fakePool) entity(id model.EntityID) *model.NavEntity {
	for _, e := range p.ents {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// fakeOracle charges 100ms per area number of difference; unreachable areas have no route.
type fakeOracle struct {
	unreachable map[int]bool
	calls       int
}

func (o *fakeOracle) TravelTime(from, to int, _ model.MoveMask) (int64, bool) {
	o.calls++
	if o.unreachable[to] {
		return 0, false
	}
	d := to - from
	if d < 0 {
		d = -d
	}
	return int64(d) * 100, true
}

type fakePerception struct {
	inFront   func(point model.Vec3) bool
	blocked   map[model.Vec3]bool
	sightings []EnemySighting
}

func (p *fakePerception) IsVisible(_, _ model.Vec3) bool { return true }

func (p *fakePerception) IsInFront(_, _ model.Vec3, point model.Vec3) bool {
	if p.inFront == nil {
		return true
	}
	return p.inFront(point)
}

func (p *fakePerception) CanReach(_, to model.Vec3) bool { return !p.blocked[to] }

func (p *fakePerception) Enemies(model.EntityID) []EnemySighting { return p.sightings }

type countingTracer struct {
	calls int
	trace func(start, end model.Vec3) TraceResult
}

func (t *countingTracer) Trace(start, end model.Vec3) TraceResult {
	t.calls++
	if t.trace == nil {
		return TraceResult{Fraction: 1, EndPos: end}
	}
	return t.trace(start, end)
}

type recordingSink struct {
	events []model.GoalEvent
}

func (s *recordingSink) RecordGoalEvent(ev model.GoalEvent) {
	s.events = append(s.events, ev)
}

type testWorld struct {
	pool       *fakePool
	oracle     *fakeOracle
	perception *fakePerception
	broadcast  *GoalBroadcast
}

func newTestWorld() *testWorld {
	return &testWorld{
		pool:       &fakePool{},
		oracle:     &fakeOracle{unreachable: map[int]bool{}},
		perception: &fakePerception{blocked: map[model.Vec3]bool{}},
		broadcast:  NewGoalBroadcast(),
	}
}

func (w *testWorld) deps() Deps {
	return Deps{
		Pool:       w.pool,
		Oracle:     w.oracle,
		Perception: w.perception,
		Broadcast:  w.broadcast,
	}
}

func (w *testWorld) newBot(t *testing.T, id model.EntityID, name string) *Bot {
	t.Helper()
	b, err := NewBot(model.BotProfile{Name: name, Skill: 0.5, Enabled: true}, id, w.deps(), DefaultConfig())
	require.NoError(t, err)
	b.SetSelf(defaultSelf())
	b.Start()
	return b
}

// itemEntity places a spawned pickup with generous wait tolerance.
func itemEntity(id model.EntityID, tag model.ItemTag, area int, origin model.Vec3) model.NavEntity {
	return model.NavEntity{
		ID:              id,
		Name:            tag.String(),
		AreaNum:         area,
		Origin:          origin,
		Item:            model.ItemByTag(tag),
		SpawnTime:       1,
		MaxWaitDuration: 5000,
	}
}

func defaultSelf() SelfState {
	var inv model.Inventory
	inv.Set(model.WeapGunblade, 1)
	return SelfState{
		AreaNum:   1,
		LookDir:   model.Vec3{X: 1},
		Inventory: inv,
		Status:    model.Status{Health: 100, MaxHealth: 100},
	}
}
