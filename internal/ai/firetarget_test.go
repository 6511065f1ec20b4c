package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/fragbots/internal/model"
)

type flatAreas struct {
	area  int
	floor float64
}

func (a flatAreas) AreaAt(model.Vec3) int { return a.area }

func (a flatAreas) AreaFloor(int) (float64, bool) { return a.floor, a.area != 0 }

var fireOrigin = model.Vec3{Z: 22}

func newAimBot(t *testing.T, tracer Tracer, areas AreaGeometry) *Bot {
	t.Helper()
	w := newTestWorld()
	deps := w.deps()
	deps.Tracer = tracer
	deps.Areas = areas
	b, err := NewBot(model.BotProfile{Name: "aimer", Skill: 0.5}, 1, deps, DefaultConfig())
	require.NoError(t, err)
	return b
}

func selectEnemy(b *Bot, now int64, sighting EnemySighting) {
	b.clock.now = now
	e := &Enemy{ID: sighting.ID, LastSeen: sighting, LastSeenAt: now, alive: true}
	b.enemies.set(e, nil, b.nextInstanceID(), now+300)
}

func selectWeapon(b *Bot, now int64, weapon model.ItemTag) model.FireDef {
	b.clock.now = now
	b.weapons.set(weapon, nil, true, b.nextInstanceID(), now+1500)
	fd, _ := model.BuiltinFireDef(weapon)
	return fd
}

func standingEnemy(origin model.Vec3) EnemySighting {
	return EnemySighting{
		ID:       2,
		Origin:   origin,
		Mins:     model.Vec3{X: -16, Y: -16, Z: -24},
		Maxs:     model.Vec3{X: 16, Y: 16, Z: 40},
		Status:   model.Status{Health: 100, MaxHealth: 100},
		OnGround: true,
		Visible:  true,
	}
}

func TestFireTargetCache_IdempotentWithinTTL(t *testing.T) {
	b := newAimBot(t, nil, nil)
	selectEnemy(b, 1000, standingEnemy(model.Vec3{X: 500}))
	fd := selectWeapon(b, 1000, model.WeapPlasmagun)
	cache := b.FireTargetCache()

	first, err := cache.AimParams(1000, fireOrigin, b.enemies, b.weapons, fd)
	require.NoError(t, err)
	b.clock.now = 1030
	second, err := cache.AimParams(1030, fireOrigin, b.enemies, b.weapons, fd)
	require.NoError(t, err)

	assert.Equal(t, first.FireTarget, second.FireTarget)
	assert.Equal(t, first.SuggestedBaseAccuracy, second.SuggestedBaseAccuracy)
	assert.Equal(t, 1, cache.Recomputes())
}

func TestFireTargetCache_Invalidation(t *testing.T) {
	tests := []struct {
		name   string
		change func(b *Bot) (int64, model.FireDef)
	}{
		{"ttl expired", func(b *Bot) (int64, model.FireDef) {
			fd, _ := model.BuiltinFireDef(model.WeapPlasmagun)
			b.clock.now = 1064
			return 1064, fd
		}},
		{"new weapons selection", func(b *Bot) (int64, model.FireDef) {
			return 1010, selectWeapon(b, 1010, model.WeapPlasmagun)
		}},
		{"new enemies selection", func(b *Bot) (int64, model.FireDef) {
			selectEnemy(b, 1010, standingEnemy(model.Vec3{X: 600}))
			fd, _ := model.BuiltinFireDef(model.WeapPlasmagun)
			return 1010, fd
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newAimBot(t, nil, nil)
			selectEnemy(b, 1000, standingEnemy(model.Vec3{X: 500}))
			fd := selectWeapon(b, 1000, model.WeapPlasmagun)
			cache := b.FireTargetCache()
			_, err := cache.AimParams(1000, fireOrigin, b.enemies, b.weapons, fd)
			require.NoError(t, err)

			now, fd := tt.change(b)
			_, err = cache.AimParams(now, fireOrigin, b.enemies, b.weapons, fd)
			require.NoError(t, err)
			assert.Equal(t, 2, cache.Recomputes())
		})
	}
}

func TestFireTargetCache_StaleSelection(t *testing.T) {
	b := newAimBot(t, nil, nil)
	selectEnemy(b, 1000, standingEnemy(model.Vec3{X: 500}))
	fd := selectWeapon(b, 1000, model.WeapRiotgun)

	b.clock.now = 1400
	_, err := b.FireTargetCache().AimParams(1400, fireOrigin, b.enemies, b.weapons, fd)
	assert.ErrorIs(t, err, ErrStaleSelection)
	assert.Zero(t, b.FireTargetCache().Recomputes())
}

func TestFireTargetCache_StrictContractsPanic(t *testing.T) {
	EnableStrictContracts(true)
	t.Cleanup(func() { EnableStrictContracts(false) })

	b := newAimBot(t, nil, nil)
	b.clock.now = 1000
	assert.Panics(t, func() {
		_, _ = b.SelectedEnemies().Primary()
	})
}

func TestFireTargetCache_AimTypes(t *testing.T) {
	moving := standingEnemy(model.Vec3{X: 500})
	moving.Velocity = model.Vec3{Y: 300}
	center := moving.Center()

	t.Run("instant hit leads slightly", func(t *testing.T) {
		b := newAimBot(t, nil, nil)
		selectEnemy(b, 1000, moving)
		fd := selectWeapon(b, 1000, model.WeapElectrobolt)

		aim, err := b.FireTargetCache().AimParams(1000, fireOrigin, b.enemies, b.weapons, fd)
		require.NoError(t, err)
		assert.InDelta(t, center.Y+15, aim.FireTarget.Y, 1e-9)
		assert.Equal(t, accuracyInstant, aim.SuggestedBaseAccuracy)
	})

	t.Run("projectile aims at intercept", func(t *testing.T) {
		b := newAimBot(t, nil, nil)
		selectEnemy(b, 1000, moving)
		fd := selectWeapon(b, 1000, model.WeapPlasmagun)

		aim, err := b.FireTargetCache().AimParams(1000, fireOrigin, b.enemies, b.weapons, fd)
		require.NoError(t, err)
		flight := fireOrigin.Distance(aim.FireTarget) / fd.ProjectileSpeed
		assert.InDelta(t, center.Y+300*flight, aim.FireTarget.Y, 0.5)
		assert.Equal(t, accuracyPredict, aim.SuggestedBaseAccuracy)
	})

	t.Run("grenade compensates drop", func(t *testing.T) {
		b := newAimBot(t, nil, nil)
		selectEnemy(b, 1000, standingEnemy(model.Vec3{X: 500}))
		fd := selectWeapon(b, 1000, model.WeapGrenadeLauncher)

		aim, err := b.FireTargetCache().AimParams(1000, fireOrigin, b.enemies, b.weapons, fd)
		require.NoError(t, err)
		assert.Greater(t, aim.FireTarget.Z, standingEnemy(model.Vec3{X: 500}).Center().Z)
	})
}

func TestFireTargetCache_EnvironmentProbeIsBounded(t *testing.T) {
	tracer := &countingTracer{trace: func(start, end model.Vec3) TraceResult {
		if start == fireOrigin {
			return TraceResult{Fraction: 1, EndPos: end}
		}
		mid := start.Add(end.Sub(start).Scale(0.5))
		return TraceResult{Fraction: 0.5, EndPos: mid, Hit: true}
	}}
	b := newAimBot(t, tracer, nil)
	enemy := standingEnemy(model.Vec3{X: 500})
	selectEnemy(b, 1000, enemy)
	fd := selectWeapon(b, 1000, model.WeapRocketLauncher)

	aim, err := b.FireTargetCache().AimParams(1000, fireOrigin, b.enemies, b.weapons, fd)
	require.NoError(t, err)
	assert.LessOrEqual(t, tracer.calls, 7)
	assert.Equal(t, accuracyExplosiveEnv, aim.SuggestedBaseAccuracy)
	assert.Less(t, aim.FireTarget.Z, enemy.Center().Z, "splash below the enemy")
}

func TestFireTargetCache_AreaFloorShortcut(t *testing.T) {
	tracer := &countingTracer{}
	b := newAimBot(t, tracer, flatAreas{area: 3, floor: 0})
	enemy := standingEnemy(model.Vec3{X: 500})
	selectEnemy(b, 1000, enemy)
	fd := selectWeapon(b, 1000, model.WeapRocketLauncher)

	aim, err := b.FireTargetCache().AimParams(1000, fireOrigin, b.enemies, b.weapons, fd)
	require.NoError(t, err)
	assert.Equal(t, 1, tracer.calls)
	assert.InDelta(t, floorSplashSlack, aim.FireTarget.Z, 1e-9)
	assert.Equal(t, accuracyExplosiveEnv, aim.SuggestedBaseAccuracy)
}

func TestAimParams_EffectiveAccuracy(t *testing.T) {
	aim := AimParams{SuggestedBaseAccuracy: 4}
	assert.InDelta(t, 4.0, aim.EffectiveAccuracy(0), 1e-9)
	assert.InDelta(t, 2.5, aim.EffectiveAccuracy(0.5), 1e-9)
	assert.InDelta(t, 1.0, aim.EffectiveAccuracy(1), 1e-9)
}
