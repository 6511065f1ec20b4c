package world

import (
	"github.com/udisondev/fragbots/internal/ai"
	"github.com/udisondev/fragbots/internal/model"
	"github.com/udisondev/fragbots/internal/nav"
)

const eyeHeight = 22.0

// arenaPerception answers bot perception queries from arena state.
type arenaPerception struct {
	arena *Arena
}

func (p *arenaPerception) IsVisible(from, to model.Vec3) bool {
	return p.arena.grid.CanSee(from, to)
}

func (p *arenaPerception) IsInFront(origin, lookDir, point model.Vec3) bool {
	dir := point.Sub(origin)
	if dir.LengthSquared() == 0 {
		return true
	}
	return dir.Normalized().Dot(lookDir.Normalized()) > inFrontMinDot
}

func (p *arenaPerception) CanReach(from, to model.Vec3) bool {
	return p.arena.grid.CanWalk(from, to)
}

// Enemies reports every other living player. Visible is eye to eye line of sight.
func (p *arenaPerception) Enemies(self model.EntityID) []ai.EnemySighting {
	a := p.arena
	a.mu.RLock()
	defer a.mu.RUnlock()

	me, ok := a.players[self]
	if !ok {
		return nil
	}
	eye := me.Origin.Add(model.Vec3{Z: eyeHeight})

	sightings := make([]ai.EnemySighting, 0, len(a.order))
	for _, id := range a.order {
		if id == self {
			continue
		}
		other := a.players[id]
		if !other.Alive {
			continue
		}
		sightings = append(sightings, ai.EnemySighting{
			ID:       other.ID,
			Origin:   other.Origin,
			Velocity: other.Velocity,
			Mins:     PlayerMins,
			Maxs:     PlayerMaxs,
			AreaNum:  other.AreaNum,
			Status:   other.Status,
			OnGround: true,
			Visible:  a.canSee(me, other, eye),
		})
	}
	return sightings
}

// canSee uses the sight table of the last step and traces pairs it does not know yet.
func (a *Arena) canSee(me, other *Player, eye model.Vec3) bool {
	if visible, ok := a.sight.lookup(me.ID, other.ID); ok {
		return visible
	}
	return a.grid.CanSee(eye, other.Origin.Add(model.Vec3{Z: eyeHeight}))
}

// gridTracer adapts the solid grid to the aim tracer.
type gridTracer struct {
	grid *nav.Grid
}

func (t gridTracer) Trace(start, end model.Vec3) ai.TraceResult {
	tr := t.grid.Trace(start, end)
	return ai.TraceResult{Fraction: tr.Fraction, EndPos: tr.EndPos, Hit: tr.Hit}
}

// Deathmatch is the free-for-all game mode: every pickable item is a goal and
// layout script weapons are handed to everyone.
type Deathmatch struct {
	scripts []model.ScriptWeaponDef
}

// NewDeathmatch creates the game mode with the given script weapons.
func NewDeathmatch(scripts []model.ScriptWeaponDef) *Deathmatch {
	return &Deathmatch{scripts: scripts}
}

// CanPickUp allows every pickable non-flag item.
func (d *Deathmatch) CanPickUp(item *model.Item) bool {
	return item != nil && item.Pickable && item.Type != model.ItemTypeFlag
}

// GoalWeight reports no intrinsic weight: there are no objectives besides items.
func (d *Deathmatch) GoalWeight(model.EntityID, *model.NavEntity) (float64, bool) {
	return 0, false
}

// ScriptWeapons returns layout script weapons, always ready.
func (d *Deathmatch) ScriptWeapons(model.EntityID) []ai.ScriptWeapon {
	if len(d.scripts) == 0 {
		return nil
	}
	out := make([]ai.ScriptWeapon, len(d.scripts))
	for i, def := range d.scripts {
		out[i] = ai.ScriptWeapon{Def: def, Ready: true}
	}
	return out
}
