package ai

import (
	"sync/atomic"

	"github.com/udisondev/fragbots/internal/model"
)

// debugLoggingEnabled controls whether debug logging is enabled for AI subsystem.
// Package-level flag to avoid checking the log level on every hot-path call.
var debugLoggingEnabled atomic.Bool

// strictContracts makes stale selection access panic instead of returning ErrStaleSelection.
var strictContracts atomic.Bool

// EnableDebugLogging enables or disables debug logging for AI subsystem.
// Must be called during initialization (e.g., from main.go after parsing config).
func EnableDebugLogging(enabled bool) {
	debugLoggingEnabled.Store(enabled)
}

// IsDebugEnabled returns true if debug logging is enabled.
// Use this to guard expensive debug log calls:
//
//	if ai.IsDebugEnabled() {
//	    slog.Debug("expensive operation", "data", computeExpensiveData())
//	}
func IsDebugEnabled() bool {
	return debugLoggingEnabled.Load()
}

// EnableStrictContracts turns stale selection access into a panic.
// Meant for tests and debug builds of the server.
func EnableStrictContracts(enabled bool) {
	strictContracts.Store(enabled)
}

// StrictContracts reports whether strict contract checking is on.
func StrictContracts() bool {
	return strictContracts.Load()
}

// DebugSnapshot is a read-only view of a bot's current decisions for visualization.
type DebugSnapshot struct {
	BotID         model.EntityID `json:"bot_id"`
	Name          string         `json:"name"`
	LevelTime     int64          `json:"level_time"`
	Origin        model.Vec3     `json:"origin"`
	LongGoal      model.EntityID `json:"long_goal"`
	ShortGoal     model.EntityID `json:"short_goal"`
	GoalScore     float64        `json:"goal_score"`
	Enemy         model.EntityID `json:"enemy"`
	BuiltinWeapon model.ItemTag  `json:"builtin_weapon"`
	ScriptWeapon  int            `json:"script_weapon"`
	PreferBuiltin bool           `json:"prefer_builtin"`
	HasAim        bool           `json:"has_aim"`
	AimPoint      model.Vec3     `json:"aim_point"`
	Accuracy      float64        `json:"accuracy"`
}
