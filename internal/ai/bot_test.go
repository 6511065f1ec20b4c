package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/fragbots/internal/model"
)

func TestNewBot_Validation(t *testing.T) {
	w := newTestWorld()
	tests := []struct {
		name    string
		profile model.BotProfile
		id      model.EntityID
		deps    Deps
	}{
		{"no entity", model.BotProfile{Name: "a"}, model.NoEntity, w.deps()},
		{"no pool", model.BotProfile{Name: "a"}, 1, Deps{Oracle: w.oracle, Perception: w.perception}},
		{"skill out of range", model.BotProfile{Name: "a", Skill: 1.5}, 1, w.deps()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBot(tt.profile, tt.id, tt.deps, DefaultConfig())
			assert.Error(t, err)
		})
	}
}

func TestSeedFromName_Deterministic(t *testing.T) {
	a1, a2 := seedFromName("Visitor")
	b1, b2 := seedFromName("Visitor")
	c1, _ := seedFromName("Major")

	assert.Equal(t, a1, b1)
	assert.Equal(t, a2, b2)
	assert.NotEqual(t, a1, c1)
}

func TestBot_ThinkNotRunning(t *testing.T) {
	w := newTestWorld()
	w.pool.add(itemEntity(10, model.ArmorRA, 1, model.Vec3{X: 100}))
	b := w.newBot(t, 1, "idle")
	b.Stop()

	b.Think(1000)
	assert.False(t, b.LongGoal().IsSet())
	_, ok := b.Debug()
	assert.False(t, ok)
}

func TestBot_PicksGoalAndMoveTarget(t *testing.T) {
	w := newTestWorld()
	sink := &recordingSink{}
	w.pool.add(itemEntity(10, model.ArmorRA, 2, model.Vec3{X: 900}))
	shard := itemEntity(11, model.ArmorShard, 1, model.Vec3{X: 120})
	shard.CostInfluence = 10
	w.pool.add(shard)

	deps := w.deps()
	deps.Events = sink
	b, err := NewBot(model.BotProfile{Name: "walker", Skill: 0.5}, 1, deps, DefaultConfig())
	require.NoError(t, err)
	b.SetSelf(defaultSelf())
	b.Start()

	b.Think(1000)

	assert.Equal(t, model.EntityID(10), b.LongGoal().Goal)
	assert.Equal(t, model.EntityID(11), b.ShortGoal().Goal)
	target, ok := b.MoveTarget()
	require.True(t, ok)
	assert.Equal(t, model.Vec3{X: 120}, target, "short range goal first")

	require.NotEmpty(t, sink.events)
	assert.Equal(t, model.GoalEventPicked, sink.events[0].Kind)
	assert.Equal(t, model.EntityID(10), sink.events[0].Entity)
	assert.Equal(t, "walker", sink.events[0].Bot)

	snap, ok := b.Debug()
	require.True(t, ok)
	assert.Equal(t, model.EntityID(10), snap.LongGoal)
	assert.Equal(t, int64(1000), snap.LevelTime)
}

func TestBot_LongGoalReevaluationPeriod(t *testing.T) {
	w := newTestWorld()
	w.pool.add(itemEntity(10, model.ArmorRA, 3, model.Vec3{X: 900}))
	b := w.newBot(t, 1, "walker")

	b.Think(1000)
	require.Equal(t, model.EntityID(10), b.LongGoal().Goal)
	next := b.nextLongGoalAt
	assert.GreaterOrEqual(t, next, int64(3000))
	assert.LessOrEqual(t, next, int64(4000))

	// a much better goal appears but is not considered before the period ends
	w.pool.add(itemEntity(11, model.HealthMega, 1, model.Vec3{X: 100}))
	b.Think(1500)
	assert.Equal(t, model.EntityID(10), b.LongGoal().Goal)

	b.Think(next)
	assert.Equal(t, model.EntityID(11), b.LongGoal().Goal)
}

func TestBot_ConsumedGoalIsDroppedByOthers(t *testing.T) {
	const mega, armor = model.EntityID(10), model.EntityID(11)

	w := newTestWorld()
	w.pool.add(itemEntity(mega, model.HealthMega, 1, model.Vec3{X: 100}))
	w.pool.add(itemEntity(armor, model.ArmorRA, 1, model.Vec3{X: 300}))
	a := w.newBot(t, 1, "alpha")
	b := w.newBot(t, 2, "bravo")

	mgr := NewTickManager(w.broadcast)
	require.NoError(t, mgr.Register(a))
	require.NoError(t, mgr.Register(b))

	ctx := context.Background()
	require.NoError(t, mgr.Frame(ctx, 1000))
	require.Equal(t, mega, a.LongGoal().Goal)
	require.Equal(t, mega, b.LongGoal().Goal)

	// alpha grabs the mega; it respawns long after bravo would be willing to wait
	w.pool.entity(mega).SpawnTime = 31000
	a.GoalReached(mega)
	assert.Equal(t, 1, w.broadcast.Pending())

	require.NoError(t, mgr.Frame(ctx, 1050))
	assert.Equal(t, armor, b.LongGoal().Goal)
	assert.Equal(t, armor, a.LongGoal().Goal)
	assert.Zero(t, w.broadcast.Pending())
}

func TestBot_ExpiredClaimIsNotBroadcast(t *testing.T) {
	w := newTestWorld()
	sink := &recordingSink{}
	w.pool.add(itemEntity(10, model.ArmorRA, 3, model.Vec3{X: 900}))
	deps := w.deps()
	deps.Events = sink
	b, err := NewBot(model.BotProfile{Name: "walker", Skill: 0.5}, 1, deps, DefaultConfig())
	require.NoError(t, err)
	b.SetSelf(defaultSelf())
	b.Start()

	b.Think(1000)
	require.Equal(t, model.EntityID(10), b.LongGoal().Goal)

	b.clock.now = 21000
	b.validateGoals(21000)
	assert.False(t, b.LongGoal().IsSet())
	assert.Zero(t, w.broadcast.Pending())
	assert.Equal(t, model.GoalEventAbandoned, sink.events[len(sink.events)-1].Kind)
}

func TestBot_DisabledGoalIsAbandonedAndBroadcast(t *testing.T) {
	w := newTestWorld()
	w.pool.add(itemEntity(10, model.ArmorRA, 3, model.Vec3{X: 900}))
	b := w.newBot(t, 1, "walker")

	b.Think(1000)
	require.Equal(t, model.EntityID(10), b.LongGoal().Goal)

	w.pool.entity(10).Flags |= model.NavEntDisabled
	b.Think(1100)
	assert.False(t, b.LongGoal().IsSet())
	assert.Equal(t, 1, w.broadcast.Pending())
}

func TestBot_DisableAreaDropsGoal(t *testing.T) {
	w := newTestWorld()
	w.pool.add(itemEntity(10, model.ArmorRA, 3, model.Vec3{X: 900}))
	b := w.newBot(t, 1, "walker")

	b.Think(1000)
	require.Equal(t, model.EntityID(10), b.LongGoal().Goal)

	b.DisableArea(3)
	assert.False(t, b.LongGoal().IsSet())

	b.Think(1100)
	assert.False(t, b.LongGoal().IsSet(), "area still disabled")

	b.Think(6100)
	assert.Equal(t, model.EntityID(10), b.LongGoal().Goal)
}

func TestBot_CombatFrame(t *testing.T) {
	w := newTestWorld()
	w.perception.sightings = []EnemySighting{standingEnemy(model.Vec3{X: 600})}
	b := w.newBot(t, 1, "fighter")
	b.SetSelf(armed(model.WeapRocketLauncher, model.WeapMachinegun))

	b.Think(1000)

	enemy, err := b.SelectedEnemies().Primary()
	require.NoError(t, err)
	assert.Equal(t, model.EntityID(2), enemy.ID)

	choice, err := b.SelectedWeapons().Current()
	require.NoError(t, err)
	assert.Equal(t, model.WeapRocketLauncher, choice.Builtin)

	aim, ok := b.AimTarget()
	require.True(t, ok)
	assert.Equal(t, model.Vec3{Z: defaultViewHeight}, aim.FireOrigin)

	snap, ok := b.Debug()
	require.True(t, ok)
	assert.Equal(t, model.EntityID(2), snap.Enemy)
	assert.Equal(t, model.WeapRocketLauncher, snap.BuiltinWeapon)
	assert.True(t, snap.HasAim)

	// enemy disappears and is forgotten
	w.perception.sightings = nil
	b.Think(5000)
	assert.False(t, b.SelectedEnemies().AreValid())
	assert.False(t, b.SelectedWeapons().AreValid())
	_, ok = b.AimTarget()
	assert.False(t, ok)
}
