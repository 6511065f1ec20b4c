package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/fragbots/internal/model"
)

func TestShortRangeGoal_Radius(t *testing.T) {
	tests := []struct {
		name     string
		x        float64
		longGoal bool
		want     model.EntityID
	}{
		{"within radius", 150, false, 10},
		{"outside radius", 300, false, model.NoEntity},
		{"long goal within extended radius", 300, true, 10},
		{"long goal outside extended radius", 450, true, model.NoEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld()
			w.pool.add(itemEntity(10, model.ArmorRA, 1, model.Vec3{X: tt.x}))
			b := w.newBot(t, 1, "alpha")
			prepareSelector(b, 1000)
			if tt.longGoal {
				b.longGoal = GoalClaim{Goal: 10, ExpiresAt: 20000}
			}

			b.pickShortRangeGoal(1000)
			assert.Equal(t, tt.want, b.ShortGoal().Goal)
		})
	}
}

func TestShortRangeGoal_LongGoalInFrontWins(t *testing.T) {
	w := newTestWorld()
	w.pool.add(itemEntity(10, model.HealthMega, 1, model.Vec3{X: 20}))
	w.pool.add(itemEntity(11, model.ArmorShard, 1, model.Vec3{X: 350}))
	b := w.newBot(t, 1, "alpha")
	prepareSelector(b, 1000)
	b.longGoal = GoalClaim{Goal: 11, ExpiresAt: 20000}

	b.pickShortRangeGoal(1000)
	assert.Equal(t, model.EntityID(11), b.ShortGoal().Goal)
}

func TestShortRangeGoal_BehindHalvesScore(t *testing.T) {
	w := newTestWorld()
	w.perception.inFront = func(p model.Vec3) bool { return p.X > 0 }
	w.pool.add(itemEntity(10, model.ArmorRA, 1, model.Vec3{X: 100}))
	w.pool.add(itemEntity(11, model.HealthMega, 1, model.Vec3{X: -100}))
	b := w.newBot(t, 1, "alpha")
	prepareSelector(b, 1000)

	b.pickShortRangeGoal(1000)
	assert.Equal(t, model.EntityID(10), b.ShortGoal().Goal)
}

func TestShortRangeGoal_SkipsUnavailable(t *testing.T) {
	w := newTestWorld()
	notSpawned := itemEntity(10, model.HealthMega, 1, model.Vec3{X: 50})
	notSpawned.SpawnTime = 5000
	w.pool.add(notSpawned)
	w.pool.add(itemEntity(11, model.PowerupQuad, 1, model.Vec3{X: 60}))
	w.perception.blocked[model.Vec3{X: 60}] = true
	w.pool.add(itemEntity(12, model.ArmorShard, 1, model.Vec3{X: 190}))
	b := w.newBot(t, 1, "alpha")
	prepareSelector(b, 1000)

	b.pickShortRangeGoal(1000)
	assert.Equal(t, model.EntityID(12), b.ShortGoal().Goal)
}

func TestShortRangeGoal_Scheduling(t *testing.T) {
	w := newTestWorld()
	b := w.newBot(t, 1, "alpha")
	prepareSelector(b, 1000)

	b.pickShortRangeGoal(1000)
	assert.Equal(t, model.NoEntity, b.ShortGoal().Goal)
	assert.Equal(t, int64(1700), b.nextShortGoalAt, "idle back-off")

	w.pool.add(itemEntity(10, model.ArmorRA, 1, model.Vec3{X: 100}))
	prepareSelector(b, 1500)
	b.pickShortRangeGoal(1500)
	assert.Equal(t, model.NoEntity, b.ShortGoal().Goal, "scan throttled")

	b.pickShortRangeGoal(1700)
	assert.Equal(t, model.EntityID(10), b.ShortGoal().Goal)
	assert.Equal(t, int64(1950), b.nextShortGoalAt)
}
