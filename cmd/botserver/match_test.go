package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/fragbots/internal/ai"
	"github.com/udisondev/fragbots/internal/config"
	"github.com/udisondev/fragbots/internal/model"
	"github.com/udisondev/fragbots/internal/world"
)

const roomLayout = `
name: room
grid: {origin: [0, 0, 0], cell_size: 16, size: [64, 64, 16]}
areas:
  - {num: 1, mins: [0, 0, 0], maxs: [1024, 1024, 256], grounded: true}
items:
  - {item: Rocket Launcher, origin: [300, 300, 0], respawn: 5s, max_wait: 2s}
  - {item: Rockets, origin: [700, 300, 0], respawn: 10s, max_wait: 1s}
  - {item: Red Armor, origin: [500, 800, 0], respawn: 25s, max_wait: 3s}
spawns:
  - [100, 100, 0]
  - [900, 900, 0]
`

func newTestMatch(t *testing.T, profiles []model.BotProfile) *match {
	t.Helper()
	layout, err := world.ParseLayout([]byte(roomLayout))
	require.NoError(t, err)
	arena, err := world.NewArena(layout)
	require.NoError(t, err)

	m, err := newMatch(arena, profiles, ai.DefaultConfig(), nil)
	require.NoError(t, err)
	return m
}

func TestMatch_RunsFrames(t *testing.T) {
	m := newTestMatch(t, []model.BotProfile{
		{Name: "Visor", Skill: 0.6, Enabled: true},
		{Name: "Sarge", Skill: 0.4, Enabled: true},
		{Name: "Off", Skill: 0.5},
	})
	require.Equal(t, 2, m.manager.Count())

	ctx := context.Background()
	for now := int64(50); now <= 8000; now += 50 {
		require.NoError(t, m.manager.Frame(ctx, now))
	}

	snaps := m.snapshots()
	require.Len(t, snaps, 2)
	assert.Equal(t, "Visor", snaps[0].Name)

	moved := false
	for _, b := range m.order {
		p, ok := m.arena.Player(b.ID())
		require.True(t, ok)
		if p.Origin != (model.Vec3{X: 100, Y: 100}) && p.Origin != (model.Vec3{X: 900, Y: 900}) {
			moved = true
		}
	}
	assert.True(t, moved, "bots should leave their spawn points")
}

func TestMatch_PickupByNonClaimantCancelsGoal(t *testing.T) {
	m := newTestMatch(t, []model.BotProfile{{Name: "Visor", Skill: 0.5, Enabled: true}})

	m.onPickup(world.Pickup{Player: 999, Item: 0x1001, Tag: model.WeapRocketLauncher})
	assert.Equal(t, 1, m.broadcast.Pending())
}

func TestMatch_InvalidProfile(t *testing.T) {
	layout, err := world.ParseLayout([]byte(roomLayout))
	require.NoError(t, err)
	arena, err := world.NewArena(layout)
	require.NoError(t, err)

	_, err = newMatch(arena, []model.BotProfile{{Name: "Bad", Skill: 3, Enabled: true}}, ai.DefaultConfig(), nil)
	assert.Error(t, err)
}

func TestConfigProfiles(t *testing.T) {
	profiles, err := configProfiles(config.DefaultBotServer().Bots)
	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.True(t, profiles[0].Enabled)

	_, err = configProfiles([]config.BotEntry{{Name: "X", Moves: []string{"fly"}}})
	assert.Error(t, err)
}

type fakeProfileStore struct {
	stored   []model.BotProfile
	upserted []model.BotProfile
	err      error
}

func (s *fakeProfileStore) LoadEnabled(context.Context) ([]model.BotProfile, error) {
	return s.stored, s.err
}

func (s *fakeProfileStore) Upsert(_ context.Context, p model.BotProfile) error {
	s.upserted = append(s.upserted, p)
	return nil
}

func TestLoadProfiles(t *testing.T) {
	ctx := context.Background()
	fallback := []model.BotProfile{{Name: "Visor", Skill: 0.5, Enabled: true}}

	t.Run("seeds empty store", func(t *testing.T) {
		store := &fakeProfileStore{}
		got, err := loadProfiles(ctx, store, fallback)
		require.NoError(t, err)
		assert.Equal(t, fallback, got)
		assert.Equal(t, fallback, store.upserted)
	})

	t.Run("prefers stored", func(t *testing.T) {
		stored := []model.BotProfile{{Name: "Doom", Skill: 0.9, Enabled: true}}
		store := &fakeProfileStore{stored: stored}
		got, err := loadProfiles(ctx, store, fallback)
		require.NoError(t, err)
		assert.Equal(t, stored, got)
		assert.Empty(t, store.upserted)
	})

	t.Run("load error", func(t *testing.T) {
		_, err := loadProfiles(ctx, &fakeProfileStore{err: errors.New("down")}, fallback)
		assert.Error(t, err)
	})
}
