package ai

import "github.com/udisondev/fragbots/internal/model"

//go:generate go tool mockgen -destination=mocks/mock_collaborators.go -package=mocks github.com/udisondev/fragbots/internal/ai TravelCostOracle,NavEntityPool,Perception,Tracer,AreaGeometry,Gametype,EventSink

// TravelCostOracle estimates travel time between navigation areas.
// Returns false when there is no route for the movement mask.
type TravelCostOracle interface {
	TravelTime(fromArea, toArea int, mask model.MoveMask) (int64, bool)
}

// NavEntityPool enumerates goal candidates. Owned by the world tracker and not
// mutated while bots think.
type NavEntityPool interface {
	// ForEach calls fn for every entity in stable order until fn returns false.
	// The entity must be treated as read-only.
	ForEach(fn func(ent *model.NavEntity) bool)
	Get(id model.EntityID) (model.NavEntity, bool)
}

// Perception answers visibility and reachability questions and reports known enemies.
type Perception interface {
	IsVisible(from, to model.Vec3) bool
	IsInFront(origin, lookDir, point model.Vec3) bool
	// CanReach is a cheap line-of-reach test (no pathfinding).
	CanReach(from, to model.Vec3) bool
	Enemies(self model.EntityID) []EnemySighting
}

// TraceResult describes a line trace against world geometry.
type TraceResult struct {
	Fraction float64
	EndPos   model.Vec3
	Hit      bool
}

// Tracer casts rays against solid world geometry.
type Tracer interface {
	Trace(start, end model.Vec3) TraceResult
}

// AreaGeometry exposes navigation area geometry for aim shortcuts.
type AreaGeometry interface {
	AreaAt(p model.Vec3) int
	AreaFloor(area int) (float64, bool)
}

// ScriptWeapon is a gametype-defined weapon as seen by a particular bot.
type ScriptWeapon struct {
	Def   model.ScriptWeaponDef
	Ready bool
}

// Gametype is the game mode hook.
type Gametype interface {
	// CanPickUp may veto pickup eligibility of an item in the current mode.
	CanPickUp(item *model.Item) bool
	// GoalWeight returns an intrinsic weight for non-item goal entities (flags, movable targets).
	GoalWeight(bot model.EntityID, ent *model.NavEntity) (float64, bool)
	// ScriptWeapons lists auxiliary weapons available to bot.
	ScriptWeapons(bot model.EntityID) []ScriptWeapon
}

// EventSink receives goal telemetry. Must not block.
type EventSink interface {
	RecordGoalEvent(ev model.GoalEvent)
}

// Deps bundles collaborators injected into a bot.
// Gametype, Tracer, Areas and Events may be nil.
type Deps struct {
	Pool       NavEntityPool
	Oracle     TravelCostOracle
	Perception Perception
	Tracer     Tracer
	Areas      AreaGeometry
	Gametype   Gametype
	Broadcast  *GoalBroadcast
	Events     EventSink
}

// defaultGametype allows everything and knows no script weapons.
type defaultGametype struct{}

func (defaultGametype) CanPickUp(*model.Item) bool { return true }

func (defaultGametype) GoalWeight(model.EntityID, *model.NavEntity) (float64, bool) {
	return 0, false
}

func (defaultGametype) ScriptWeapons(model.EntityID) []ScriptWeapon { return nil }
