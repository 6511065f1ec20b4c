package ai_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/udisondev/fragbots/internal/ai"
	"github.com/udisondev/fragbots/internal/ai/mocks"
	"github.com/udisondev/fragbots/internal/model"
)

func TestBot_UsesCollaborators(t *testing.T) {
	ctrl := gomock.NewController(t)

	goal := model.NavEntity{
		ID:              10,
		AreaNum:         4,
		Origin:          model.Vec3{X: 800},
		Item:            model.ItemByTag(model.ArmorYA),
		SpawnTime:       1,
		MaxWaitDuration: 1000,
	}

	pool := mocks.NewMockNavEntityPool(ctrl)
	pool.EXPECT().ForEach(gomock.Any()).DoAndReturn(func(fn func(*model.NavEntity) bool) {
		ent := goal
		fn(&ent)
	}).AnyTimes()
	pool.EXPECT().Get(model.EntityID(10)).Return(goal, true).AnyTimes()

	oracle := mocks.NewMockTravelCostOracle(ctrl)
	oracle.EXPECT().TravelTime(1, 4, model.MoveWalk|model.MoveJump).Return(int64(700), true)

	perception := mocks.NewMockPerception(ctrl)
	perception.EXPECT().Enemies(model.EntityID(1)).Return(nil)

	events := mocks.NewMockEventSink(ctrl)
	events.EXPECT().RecordGoalEvent(gomock.Any()).Do(func(ev model.GoalEvent) {
		assert.Equal(t, model.GoalEventPicked, ev.Kind)
		assert.Equal(t, model.EntityID(10), ev.Entity)
		assert.Equal(t, int64(1000), ev.LevelTime)
	})

	bot, err := ai.NewBot(model.BotProfile{Name: "mocked", Skill: 0.3}, 1, ai.Deps{
		Pool:       pool,
		Oracle:     oracle,
		Perception: perception,
		Events:     events,
	}, ai.DefaultConfig())
	require.NoError(t, err)
	bot.SetSelf(ai.SelfState{AreaNum: 1, Status: model.Status{Health: 100, MaxHealth: 100}})
	bot.Start()

	bot.Think(1000)

	assert.Equal(t, model.EntityID(10), bot.LongGoal().Goal)
	assert.False(t, bot.ShortGoal().IsSet())
}

func TestBot_GametypeScriptWeapons(t *testing.T) {
	ctrl := gomock.NewController(t)

	pool := mocks.NewMockNavEntityPool(ctrl)
	pool.EXPECT().ForEach(gomock.Any()).AnyTimes()

	perception := mocks.NewMockPerception(ctrl)
	perception.EXPECT().Enemies(model.EntityID(1)).Return([]ai.EnemySighting{{
		ID:      2,
		Origin:  model.Vec3{X: 400},
		Status:  model.Status{Health: 100, MaxHealth: 100},
		Visible: true,
	}}).AnyTimes()

	gametype := mocks.NewMockGametype(ctrl)
	gametype.EXPECT().ScriptWeapons(model.EntityID(1)).Return([]ai.ScriptWeapon{{
		Ready: true,
		Def: model.ScriptWeaponDef{
			WeaponNum: 40, Name: "bomb", Tier: 9, MaxRange: 1000, BestRange: 400,
			ProjectileSpeed: 900, AimType: model.AimTypePredict,
		},
	}}).MinTimes(1)

	bot, err := ai.NewBot(model.BotProfile{Name: "scripted", Skill: 0.8}, 1, ai.Deps{
		Pool:       pool,
		Oracle:     mocks.NewMockTravelCostOracle(ctrl),
		Perception: perception,
		Gametype:   gametype,
	}, ai.DefaultConfig())
	require.NoError(t, err)

	var inv model.Inventory
	inv.Set(model.WeapGunblade, 1)
	bot.SetSelf(ai.SelfState{AreaNum: 1, Inventory: inv, Status: model.Status{Health: 100, MaxHealth: 100}})
	bot.Start()
	bot.Think(1000)

	choice, err := bot.SelectedWeapons().Current()
	require.NoError(t, err)
	assert.True(t, choice.HasScript)
	assert.False(t, choice.PreferBuiltin)
	fd, ok := choice.Preferred()
	require.True(t, ok)
	assert.Equal(t, 40, fd.WeaponNum)
	assert.Equal(t, model.FireDefScripted, fd.Kind)
}
