package ai

import (
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/udisondev/fragbots/internal/model"
)

const defaultViewHeight = 22.0

// SelfState is the bot's own body as reported by the world before a frame.
type SelfState struct {
	Origin     model.Vec3
	Velocity   model.Vec3
	LookDir    model.Vec3
	AreaNum    int
	Inventory  model.Inventory
	Status     model.Status
	ViewHeight float64
}

// Bot is the per-agent decision core: goals, enemies, weapons and aim.
// Think is not safe for concurrent use on the same bot; different bots may
// think in parallel once GoalBroadcast delivery is done for the frame.
type Bot struct {
	id       model.EntityID
	name     string
	skill    float64
	moveMask model.MoveMask
	cfg      Config

	pool       NavEntityPool
	oracle     TravelCostOracle
	perception Perception
	gametype   Gametype
	broadcast  *GoalBroadcast
	events     EventSink

	rng     *rand.Rand
	clock   frameClock
	self    SelfState
	running atomic.Bool

	longGoal      GoalClaim
	shortGoal     GoalClaim
	disabledAreas map[int]int64

	items          *ItemsSelector
	enemyMemory    *enemyMemory
	enemies        *SelectedEnemies
	weapons        *SelectedWeapons
	weaponSelector *WeaponSelector
	fireCache      *FireTargetCache

	aim    AimParams
	hasAim bool

	nextLongGoalAt  int64
	nextShortGoalAt int64
	statusUpdateAt  int64
	instanceSeq     uint32

	debug atomic.Pointer[DebugSnapshot]
}

// NewBot creates a bot for profile controlling entity id.
func NewBot(profile model.BotProfile, id model.EntityID, deps Deps, cfg Config) (*Bot, error) {
	if id == model.NoEntity {
		return nil, errors.New("bot entity id must be set")
	}
	if deps.Pool == nil || deps.Oracle == nil || deps.Perception == nil {
		return nil, fmt.Errorf("bot %q: pool, oracle and perception are required", profile.Name)
	}
	if profile.Skill < 0 || profile.Skill > 1 {
		return nil, fmt.Errorf("bot %q: skill %.2f out of [0, 1]", profile.Name, profile.Skill)
	}

	cfg = cfg.withDefaults()
	gametype := deps.Gametype
	if gametype == nil {
		gametype = defaultGametype{}
	}
	broadcast := deps.Broadcast
	if broadcast == nil {
		broadcast = NewGoalBroadcast()
	}
	mask := profile.MoveMask
	if mask == 0 {
		mask = model.MoveWalk | model.MoveJump
	}

	s1, s2 := seedFromName(profile.Name)
	b := &Bot{
		id:            id,
		name:          profile.Name,
		skill:         profile.Skill,
		moveMask:      mask,
		cfg:           cfg,
		pool:          deps.Pool,
		oracle:        deps.Oracle,
		perception:    deps.Perception,
		gametype:      gametype,
		broadcast:     broadcast,
		events:        deps.Events,
		rng:           rand.New(rand.NewPCG(s1, s2)),
		disabledAreas: make(map[int]int64),
	}
	b.items = newItemsSelector(b)
	b.enemyMemory = newEnemyMemory(cfg.EnemyForgetTime.Milliseconds())
	b.enemies = newSelectedEnemies(&b.clock, cfg.EnemyForgetTime.Milliseconds())
	b.weapons = newSelectedWeapons(&b.clock)
	b.weaponSelector = newWeaponSelector(id, profile.Skill, gametype, b.weapons, b.rng, b.nextInstanceID, cfg)
	b.fireCache = newFireTargetCache(deps.Tracer, deps.Areas, cfg.AimCacheTTL.Milliseconds())
	return b, nil
}

// seedFromName derives a stable per-bot random seed so replays of a match
// make the same jittered decisions.
func seedFromName(name string) (uint64, uint64) {
	sum := blake2b.Sum256([]byte(name))
	return binary.LittleEndian.Uint64(sum[0:8]), binary.LittleEndian.Uint64(sum[8:16])
}

// ID returns the bot's entity id.
func (b *Bot) ID() model.EntityID { return b.id }

// Name returns the bot's profile name.
func (b *Bot) Name() string { return b.name }

// Skill returns the bot's skill in [0, 1].
func (b *Bot) Skill() float64 { return b.skill }

// Start enables thinking.
func (b *Bot) Start() {
	b.running.Store(true)
}

// Stop disables thinking and drops goals.
func (b *Bot) Stop() {
	b.running.Store(false)
	b.longGoal = GoalClaim{}
	b.shortGoal = GoalClaim{}
	b.items.Forget()
}

// IsRunning reports whether the bot thinks.
func (b *Bot) IsRunning() bool {
	return b.running.Load()
}

// SetSelf updates the bot's body state. Must be called between frames.
func (b *Bot) SetSelf(s SelfState) {
	if s.ViewHeight == 0 {
		s.ViewHeight = defaultViewHeight
	}
	b.self = s
}

// Self returns the last body state set.
func (b *Bot) Self() SelfState {
	return b.self
}

// Think runs one decision frame.
func (b *Bot) Think(now int64) {
	if !b.running.Load() {
		return
	}
	b.clock.now = now

	b.updateEnemies(now)
	b.expireDisabledAreas(now)
	b.validateGoals(now)
	if now >= b.statusUpdateAt {
		b.items.UpdateWeights()
		b.statusUpdateAt = now + b.cfg.StatusUpdatePeriod.Milliseconds()
	}
	b.pickLongRangeGoal(now)
	b.pickShortRangeGoal(now)

	b.weaponSelector.Frame(b.worldState(now))
	b.updateAim(now)
	b.publishDebug(now)
}

// ClaimsGoal reports whether goal is the long or short range goal.
func (b *Bot) ClaimsGoal(goal model.EntityID) bool {
	return goal != model.NoEntity && (b.longGoal.Goal == goal || b.shortGoal.Goal == goal)
}

// ClearGoals drops both claims and makes the bot pick a new long range goal on the next frame.
func (b *Bot) ClearGoals(canceled model.EntityID) {
	b.recordEvent(model.GoalEventCanceled, canceled, 0)
	b.longGoal = GoalClaim{}
	b.shortGoal = GoalClaim{}
	b.items.Forget()
	b.nextLongGoalAt = 0
	b.nextShortGoalAt = 0
}

// GoalReached is called by the world when the bot picked up ent.
func (b *Bot) GoalReached(ent model.EntityID) {
	if !b.ClaimsGoal(ent) {
		return
	}
	b.recordEvent(model.GoalEventReached, ent, 0)
	b.longGoal = GoalClaim{}
	b.shortGoal = GoalClaim{}
	b.items.Forget()
	b.nextLongGoalAt = 0
	b.broadcast.CancelGoal(ent, b.id)
}

// DisableArea excludes area from goal selection for a while, e.g. after the bot got stuck there.
func (b *Bot) DisableArea(area int) {
	b.disabledAreas[area] = b.clock.now + b.cfg.DisabledAreaTimeout.Milliseconds()
	if b.longGoal.IsSet() {
		if ent, ok := b.pool.Get(b.longGoal.Goal); ok && ent.AreaNum == area {
			b.abandonLongGoal()
		}
	}
}

func (b *Bot) isAreaDisabled(area int, now int64) bool {
	until, ok := b.disabledAreas[area]
	return ok && now < until
}

func (b *Bot) expireDisabledAreas(now int64) {
	for area, until := range b.disabledAreas {
		if now >= until {
			delete(b.disabledAreas, area)
		}
	}
}

// LongGoal returns the long range goal claim.
func (b *Bot) LongGoal() GoalClaim { return b.longGoal }

// ShortGoal returns the short range goal claim.
func (b *Bot) ShortGoal() GoalClaim { return b.shortGoal }

// Items returns the goal selector.
func (b *Bot) Items() *ItemsSelector { return b.items }

// SelectedEnemies returns the current enemy selection.
func (b *Bot) SelectedEnemies() *SelectedEnemies { return b.enemies }

// SelectedWeapons returns the current weapon selection.
func (b *Bot) SelectedWeapons() *SelectedWeapons { return b.weapons }

// FireTargetCache returns the aim cache.
func (b *Bot) FireTargetCache() *FireTargetCache { return b.fireCache }

// MoveTarget returns where the bot wants to go: the short range goal if any,
// otherwise the long range goal.
func (b *Bot) MoveTarget() (model.Vec3, bool) {
	for _, c := range []GoalClaim{b.shortGoal, b.longGoal} {
		if !c.IsSet() {
			continue
		}
		if ent, ok := b.pool.Get(c.Goal); ok {
			return ent.Origin, true
		}
	}
	return model.Vec3{}, false
}

// AimTarget returns the aim computed on the last frame.
func (b *Bot) AimTarget() (AimParams, bool) {
	return b.aim, b.hasAim
}

// Debug returns the last published decision snapshot. Safe for concurrent use.
func (b *Bot) Debug() (DebugSnapshot, bool) {
	s := b.debug.Load()
	if s == nil {
		return DebugSnapshot{}, false
	}
	return *s, true
}

func (b *Bot) nextInstanceID() uint32 {
	b.instanceSeq++
	return b.instanceSeq
}

// validateGoals drops claims that timed out or whose entity is gone.
func (b *Bot) validateGoals(now int64) {
	if b.longGoal.IsSet() {
		if now >= b.longGoal.ExpiresAt {
			b.recordEvent(model.GoalEventAbandoned, b.longGoal.Goal, 0)
			b.longGoal = GoalClaim{}
			b.items.Forget()
			b.nextLongGoalAt = now
		} else if !b.goalAvailable(b.longGoal.Goal) {
			b.abandonLongGoal()
		}
	}
	if b.shortGoal.IsSet() && (now >= b.shortGoal.ExpiresAt || !b.goalAvailable(b.shortGoal.Goal)) {
		b.shortGoal = GoalClaim{}
	}
}

func (b *Bot) goalAvailable(id model.EntityID) bool {
	ent, ok := b.pool.Get(id)
	return ok && !ent.IsDisabled() && ent.SpawnTime != 0
}

// abandonLongGoal drops an unusable long range goal and tells the other bots.
func (b *Bot) abandonLongGoal() {
	goal := b.longGoal.Goal
	b.recordEvent(model.GoalEventAbandoned, goal, 0)
	b.longGoal = GoalClaim{}
	if b.shortGoal.Goal == goal {
		b.shortGoal = GoalClaim{}
	}
	b.items.Forget()
	b.nextLongGoalAt = b.clock.now
	b.broadcast.CancelGoal(goal, b.id)
}

func (b *Bot) pickLongRangeGoal(now int64) {
	if now < b.nextLongGoalAt {
		return
	}
	b.nextLongGoalAt = now + b.cfg.LongGoalPeriod.Milliseconds() + b.rng.Int64N(b.cfg.LongGoalJitter.Milliseconds()+1)

	goal, ok := b.items.SuggestGoal(b.longGoal.Goal)
	if !ok || goal == b.longGoal.Goal {
		return
	}

	kind := model.GoalEventPicked
	if b.longGoal.IsSet() {
		kind = model.GoalEventSwitched
	}
	b.longGoal = GoalClaim{Goal: goal, ExpiresAt: now + b.cfg.LongGoalTimeout.Milliseconds()}
	b.recordEvent(kind, goal, b.items.LastScore())

	if IsDebugEnabled() {
		slog.Debug("long range goal", "bot", b.name, "goal", goal, "event", kind)
	}
}

func (b *Bot) updateEnemies(now int64) {
	b.enemyMemory.update(now, b.perception.Enemies(b.id))
	if b.enemies.AreValid() {
		return
	}

	ranked := b.enemyMemory.ranked(b.self.Origin)
	if len(ranked) == 0 {
		if b.enemies.primary != nil {
			b.enemies.Invalidate()
			b.fireCache.Invalidate()
		}
		return
	}
	active := make([]*Enemy, 0, MaxActiveEnemies)
	for _, e := range ranked[1:] {
		if len(active) == MaxActiveEnemies {
			break
		}
		active = append(active, e)
	}
	b.enemies.set(ranked[0], active, b.nextInstanceID(), now+b.cfg.EnemySelectionTimeout.Milliseconds())
}

func (b *Bot) worldState(now int64) WorldState {
	ws := WorldState{Now: now, Self: b.self}
	if !b.enemies.AreValid() {
		return ws
	}
	if enemy, err := b.enemies.Primary(); err == nil {
		ws.HasEnemy = true
		ws.Enemy = enemy
		ws.EnemiesHaveQuad, _ = b.enemies.HaveQuad()
	}
	return ws
}

func (b *Bot) updateAim(now int64) {
	b.hasAim = false
	if !b.enemies.AreValid() || !b.weapons.AreValid() {
		return
	}
	choice, err := b.weapons.Current()
	if err != nil {
		return
	}
	fd, ok := choice.Preferred()
	if !ok {
		return
	}
	fireOrigin := b.self.Origin.Add(model.Vec3{Z: b.self.ViewHeight})
	aim, err := b.fireCache.AimParams(now, fireOrigin, b.enemies, b.weapons, fd)
	if err != nil {
		slog.Warn("aim failed", "bot", b.name, "error", err)
		return
	}
	b.aim = aim
	b.hasAim = true
}

func (b *Bot) publishDebug(now int64) {
	s := &DebugSnapshot{
		BotID:     b.id,
		Name:      b.name,
		LevelTime: now,
		Origin:    b.self.Origin,
		LongGoal:  b.longGoal.Goal,
		ShortGoal: b.shortGoal.Goal,
		GoalScore: b.items.LastScore(),
		HasAim:    b.hasAim,
	}
	if b.enemies.AreValid() {
		s.Enemy = b.enemies.primary.ID
	}
	if choice, err := b.currentWeapons(); err == nil {
		s.BuiltinWeapon = choice.Builtin
		s.PreferBuiltin = choice.PreferBuiltin
		if choice.HasScript {
			s.ScriptWeapon = choice.ScriptFire.WeaponNum
		}
	}
	if b.hasAim {
		s.AimPoint = b.aim.FireTarget
		s.Accuracy = b.aim.EffectiveAccuracy(b.skill)
	}
	b.debug.Store(s)
}

func (b *Bot) currentWeapons() (WeaponChoice, error) {
	if !b.weapons.AreValid() {
		return WeaponChoice{}, ErrStaleSelection
	}
	return b.weapons.Current()
}

func (b *Bot) recordEvent(kind model.GoalEventKind, goal model.EntityID, score float64) {
	if b.events == nil || goal == model.NoEntity {
		return
	}
	b.events.RecordGoalEvent(model.GoalEvent{
		Bot:       b.name,
		Entity:    goal,
		Kind:      kind,
		Score:     score,
		LevelTime: b.clock.now,
		CreatedAt: time.Now(),
	})
}
