package ai

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/udisondev/fragbots/internal/model"
)

// MaxActiveEnemies is the number of enemies tracked besides the primary one.
const MaxActiveEnemies = 4

// ErrStaleSelection is returned when a selection is read after it lapsed.
var ErrStaleSelection = errors.New("selection is no longer valid")

// EnemySighting is what perception reports about an opponent.
type EnemySighting struct {
	ID       model.EntityID
	Origin   model.Vec3
	Velocity model.Vec3
	Mins     model.Vec3
	Maxs     model.Vec3
	AreaNum  int
	Status   model.Status
	OnGround bool
	Visible  bool
}

// Center returns the center of the sighted bounding box.
func (s EnemySighting) Center() model.Vec3 {
	return s.Origin.Add(s.Mins.Add(s.Maxs).Scale(0.5))
}

// Enemy is an opponent remembered by a bot.
type Enemy struct {
	ID         model.EntityID
	LastSeen   EnemySighting
	LastSeenAt int64
	alive      bool
}

// IsValid reports whether the enemy is still worth tracking at now.
func (e *Enemy) IsValid(now, forgetAfter int64) bool {
	return e.alive && now-e.LastSeenAt <= forgetAfter
}

// EnemyView is a copy of the primary enemy taken through a valid selection.
type EnemyView struct {
	ID         model.EntityID
	Origin     model.Vec3
	Velocity   model.Vec3
	Center     model.Vec3
	Mins       model.Vec3
	Maxs       model.Vec3
	Status     model.Status
	OnGround   bool
	Visible    bool
	LastSeenAt int64
}

type enemyMemory struct {
	enemies     map[model.EntityID]*Enemy
	forgetAfter int64
}

func newEnemyMemory(forgetAfter int64) *enemyMemory {
	return &enemyMemory{
		enemies:     make(map[model.EntityID]*Enemy),
		forgetAfter: forgetAfter,
	}
}

func (m *enemyMemory) update(now int64, sightings []EnemySighting) {
	for _, s := range sightings {
		e, ok := m.enemies[s.ID]
		if !ok {
			e = &Enemy{ID: s.ID}
			m.enemies[s.ID] = e
		}
		e.alive = s.Status.Health > 0
		if s.Visible || !ok {
			e.LastSeen = s
			e.LastSeenAt = now
		}
	}
	for id, e := range m.enemies {
		if !e.IsValid(now, m.forgetAfter) {
			delete(m.enemies, id)
		}
	}
}

// ranked returns valid enemies ordered by threat: visible first, then closer.
func (m *enemyMemory) ranked(origin model.Vec3) []*Enemy {
	out := make([]*Enemy, 0, len(m.enemies))
	for _, e := range m.enemies {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b *Enemy) int {
		if a.LastSeen.Visible != b.LastSeen.Visible {
			if a.LastSeen.Visible {
				return -1
			}
			return 1
		}
		da := origin.DistanceSquared(a.LastSeen.Origin)
		db := origin.DistanceSquared(b.LastSeen.Origin)
		if c := cmp.Compare(da, db); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// SelectedEnemies is the bot's current target choice: a primary enemy plus
// up to MaxActiveEnemies others. Every selection carries an instance id.
type SelectedEnemies struct {
	clock       *frameClock
	forgetAfter int64

	primary    *Enemy
	active     []*Enemy
	instanceID uint32
	timeoutAt  int64
}

func newSelectedEnemies(clock *frameClock, forgetAfter int64) *SelectedEnemies {
	return &SelectedEnemies{clock: clock, forgetAfter: forgetAfter}
}

// AreValid reports whether the selection can be read.
func (s *SelectedEnemies) AreValid() bool {
	if s.primary == nil {
		return false
	}
	now := s.clock.now
	return now < s.timeoutAt && s.primary.IsValid(now, s.forgetAfter)
}

// InstanceID identifies the current selection.
func (s *SelectedEnemies) InstanceID() uint32 {
	return s.instanceID
}

// Invalidate drops the selection.
func (s *SelectedEnemies) Invalidate() {
	s.primary = nil
	s.active = nil
	s.timeoutAt = 0
}

// Primary returns a copy of the primary enemy.
func (s *SelectedEnemies) Primary() (EnemyView, error) {
	if !s.AreValid() {
		return EnemyView{}, staleSelection("enemies", s.instanceID)
	}
	e := s.primary
	return EnemyView{
		ID:         e.ID,
		Origin:     e.LastSeen.Origin,
		Velocity:   e.LastSeen.Velocity,
		Center:     e.LastSeen.Center(),
		Mins:       e.LastSeen.Mins,
		Maxs:       e.LastSeen.Maxs,
		Status:     e.LastSeen.Status,
		OnGround:   e.LastSeen.OnGround,
		Visible:    e.LastSeen.Visible,
		LastSeenAt: e.LastSeenAt,
	}, nil
}

// HaveQuad reports whether the primary or any active enemy carries quad damage.
func (s *SelectedEnemies) HaveQuad() (bool, error) {
	if !s.AreValid() {
		return false, staleSelection("enemies", s.instanceID)
	}
	if s.primary.LastSeen.Status.HasQuad {
		return true, nil
	}
	for _, e := range s.active {
		if e.LastSeen.Status.HasQuad {
			return true, nil
		}
	}
	return false, nil
}

// ActiveIDs returns ids of the tracked non-primary enemies.
func (s *SelectedEnemies) ActiveIDs() ([]model.EntityID, error) {
	if !s.AreValid() {
		return nil, staleSelection("enemies", s.instanceID)
	}
	ids := make([]model.EntityID, 0, len(s.active))
	for _, e := range s.active {
		ids = append(ids, e.ID)
	}
	return ids, nil
}

func (s *SelectedEnemies) set(primary *Enemy, active []*Enemy, instanceID uint32, timeoutAt int64) {
	s.primary = primary
	s.active = active
	s.instanceID = instanceID
	s.timeoutAt = timeoutAt
}

func staleSelection(what string, instanceID uint32) error {
	err := fmt.Errorf("selected %s #%d: %w", what, instanceID, ErrStaleSelection)
	if StrictContracts() {
		panic(err)
	}
	return err
}
