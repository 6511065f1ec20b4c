package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/fragbots/internal/ai"
	"github.com/udisondev/fragbots/internal/model"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "botserver.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadBotServer_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := LoadBotServer(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultBotServer(), cfg)
}

func TestLoadBotServer_Overrides(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
layout: layouts/open.yaml
database:
  enabled: true
  host: db
  port: 6432
tick:
  interval: 25ms
  shards: 4
ai:
  long_goal_period: 3s
  short_goal_radius: 150
  wait_time_weight: 2
debug:
  enabled: true
  jwt_secret: s3cret
bots:
  - {name: Doom, skill: 0.9, moves: [walk, jump, rocketjump]}
`)

	cfg, err := LoadBotServer(path)
	require.NoError(t, err)

	lvl, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, lvl)
	assert.Equal(t, "layouts/open.yaml", cfg.Layout)
	assert.True(t, cfg.Database.Enabled)
	assert.Equal(t, "postgres://fragbots:fragbots@db:6432/fragbots?sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, 25*time.Millisecond, cfg.Tick.Interval)
	assert.Equal(t, 4, cfg.Tick.Shards)
	assert.Equal(t, "127.0.0.1:8088", cfg.Debug.Addr, "unset keys keep defaults")

	require.Len(t, cfg.Bots, 1)
	p, err := cfg.Bots[0].Profile()
	require.NoError(t, err)
	assert.Equal(t, model.BotProfile{
		Name:     "Doom",
		Skill:    0.9,
		MoveMask: model.MoveWalk | model.MoveJump | model.MoveRocketJump,
		Enabled:  true,
	}, p)

	aiCfg := cfg.AI.Config()
	def := ai.DefaultConfig()
	assert.Equal(t, 3*time.Second, aiCfg.LongGoalPeriod)
	assert.Equal(t, 150.0, aiCfg.ShortGoalRadius)
	assert.Equal(t, 300.0, aiCfg.ShortGoalLongRadius)
	assert.Equal(t, 2.0, aiCfg.WaitTimeWeight)
	assert.Equal(t, def.LongGoalTimeout, aiCfg.LongGoalTimeout)
	assert.Equal(t, def.AimCacheTTL, aiCfg.AimCacheTTL)
}

func TestLoadBotServer_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "tick: [1"},
		{"bad level", "log_level: loud"},
		{"zero interval", "tick: {interval: 0s}"},
		{"debug without secret", "debug: {enabled: true}"},
		{"skill out of range", "bots: [{name: X, skill: 1.5}]"},
		{"unknown movement", "bots: [{name: X, skill: 0.5, moves: [fly]}]"},
		{"nameless bot", "bots: [{skill: 0.5}]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadBotServer(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestPath(t *testing.T) {
	t.Setenv(EnvPath, "")
	assert.Equal(t, DefaultPath, Path(""))
	assert.Equal(t, "x.yaml", Path("x.yaml"))

	t.Setenv(EnvPath, "/etc/fragbots.yaml")
	assert.Equal(t, "/etc/fragbots.yaml", Path("x.yaml"))
}

func TestAIConfig_ZeroKeepsDefaults(t *testing.T) {
	assert.Equal(t, ai.DefaultConfig(), AIConfig{}.Config())
}
