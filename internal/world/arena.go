package world

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/udisondev/fragbots/internal/ai"
	"github.com/udisondev/fragbots/internal/model"
	"github.com/udisondev/fragbots/internal/nav"
)

const (
	// RunSpeed is the player ground speed in units per second.
	RunSpeed = 320.0
	// PickupRadius is how close a player must get to take an item.
	PickupRadius = 32.0

	spawnHealth    = 100
	quadDuration   = 30 * time.Second
	shellDuration  = 30 * time.Second
	inFrontMinDot  = 0.5
	arrivalEpsilon = 1.0
	kneeHeight     = 16.0
)

// Player bounding box relative to origin.
var (
	PlayerMins = model.Vec3{X: -16, Y: -16, Z: -24}
	PlayerMaxs = model.Vec3{X: 16, Y: 16, Z: 40}
)

// Player is a combatant in the arena.
type Player struct {
	ID        model.EntityID
	Name      string
	Origin    model.Vec3
	Velocity  model.Vec3
	LookDir   model.Vec3
	AreaNum   int
	Inventory model.Inventory
	Status    model.Status
	Alive     bool

	moveTarget    model.Vec3
	hasMoveTarget bool
	quadUntil     int64
	shellUntil    int64
}

// Pickup reports an item taken by a player.
type Pickup struct {
	Player model.EntityID
	Item   model.EntityID
	Tag    model.ItemTag
}

// PickupHandler is called after a world step for every item taken.
type PickupHandler func(p Pickup)

type placedItem struct {
	id      model.EntityID
	respawn int64
}

// Arena simulates a small deathmatch level: player movement, item pickups and respawns.
// It owns the nav entity pool bots read from. Step must not run while bots think.
type Arena struct {
	mu sync.RWMutex

	name    string
	graph   *nav.Graph
	grid    *nav.Grid
	pool    *NavEntityPool
	ids     *EntityIDGenerator
	items   []placedItem
	spawns  []model.Vec3
	scripts []model.ScriptWeaponDef

	players   map[model.EntityID]*Player
	order     []model.EntityID
	nextSpawn int
	lastStep  int64

	sight        sightTable
	sightWorkers int

	onPickup PickupHandler
}

// NewArena builds an arena from layout. All items start available.
func NewArena(layout Layout) (*Arena, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	graph, err := layout.BuildGraph()
	if err != nil {
		return nil, fmt.Errorf("building graph of %q: %w", layout.Name, err)
	}
	grid, err := layout.BuildGrid()
	if err != nil {
		return nil, err
	}

	a := &Arena{
		name:    layout.Name,
		graph:   graph,
		grid:    grid,
		pool:    NewNavEntityPool(),
		ids:     NewEntityIDGenerator(),
		scripts: layout.ScriptWeaponDefs(),
		players: make(map[model.EntityID]*Player),

		sightWorkers: defaultSightWorkers(),
	}
	for _, s := range layout.Spawns {
		a.spawns = append(a.spawns, vec(s))
	}

	for _, spec := range layout.Items {
		item := model.ItemByName(spec.Item)
		origin := vec(spec.Origin)
		area := graph.AreaAt(origin)
		if area == 0 {
			return nil, fmt.Errorf("item %q at %v is outside of any area", spec.Item, origin)
		}
		id := a.ids.NextItemID()
		ent := model.NavEntity{
			ID:              id,
			Name:            item.Name,
			AreaNum:         area,
			Origin:          origin,
			Item:            item,
			SpawnTime:       1,
			MaxWaitDuration: spec.MaxWait.Milliseconds(),
			CostInfluence:   spec.CostInfluence,
		}
		if err := a.pool.Add(ent); err != nil {
			return nil, fmt.Errorf("placing %q: %w", spec.Item, err)
		}
		a.items = append(a.items, placedItem{id: id, respawn: spec.Respawn.Milliseconds()})
	}

	slog.Info("arena loaded",
		"name", layout.Name,
		"areas", graph.AreaCount(),
		"items", len(a.items),
		"spawns", len(a.spawns))
	return a, nil
}

// Name returns the layout name.
func (a *Arena) Name() string { return a.name }

// Graph returns the navigation graph.
func (a *Arena) Graph() *nav.Graph { return a.graph }

// Grid returns the solid grid.
func (a *Arena) Grid() *nav.Grid { return a.grid }

// Pool returns the nav entity pool.
func (a *Arena) Pool() *NavEntityPool { return a.pool }

// SetPickupHandler installs the pickup callback.
func (a *Arena) SetPickupHandler(h PickupHandler) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.onPickup = h
}

// SetSightWorkers sets how many goroutines trace line of sight on large steps.
func (a *Arena) SetSightWorkers(n int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sightWorkers = max(n, 1)
}

// Deps returns bot collaborators backed by this arena.
func (a *Arena) Deps(broadcast *ai.GoalBroadcast, events ai.EventSink) ai.Deps {
	return ai.Deps{
		Pool:       a.pool,
		Oracle:     a.graph,
		Perception: &arenaPerception{arena: a},
		Tracer:     gridTracer{grid: a.grid},
		Areas:      a.graph,
		Gametype:   NewDeathmatch(a.scripts),
		Broadcast:  broadcast,
		Events:     events,
	}
}

// AddPlayer spawns a new player and registers it as a client nav entity.
func (a *Arena) AddPlayer(name string) (model.EntityID, error) {
	if len(a.spawns) == 0 {
		return model.NoEntity, fmt.Errorf("arena %q has no spawn points", a.name)
	}

	a.mu.Lock()
	id := a.ids.NextClientID()
	if !IsClientID(id) {
		a.mu.Unlock()
		return model.NoEntity, fmt.Errorf("client id space exhausted")
	}
	origin := a.spawns[a.nextSpawn%len(a.spawns)]
	a.nextSpawn++

	p := &Player{
		ID:      id,
		Name:    name,
		Origin:  origin,
		LookDir: model.Vec3{X: 1},
		AreaNum: a.graph.AreaAt(origin),
		Status:  model.Status{Health: spawnHealth, MaxHealth: spawnHealth},
		Alive:   true,
	}
	p.Inventory.Set(model.WeapGunblade, 1)
	a.players[id] = p
	a.order = append(a.order, id)
	a.mu.Unlock()

	err := a.pool.Add(model.NavEntity{
		ID:      id,
		Name:    name,
		AreaNum: p.AreaNum,
		Origin:  origin,
		Flags:   model.NavEntClient,
	})
	if err != nil {
		return model.NoEntity, fmt.Errorf("registering player %q: %w", name, err)
	}

	slog.Debug("player spawned", "player", name, "id", id, "origin", origin)
	return id, nil
}

// RemovePlayer removes a player from the arena.
func (a *Arena) RemovePlayer(id model.EntityID) {
	a.mu.Lock()
	delete(a.players, id)
	a.order = slices.DeleteFunc(a.order, func(x model.EntityID) bool { return x == id })
	a.mu.Unlock()
	a.pool.Remove(id)
}

// Player returns a copy of the player state.
func (a *Arena) Player(id model.EntityID) (Player, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	p, ok := a.players[id]
	if !ok {
		return Player{}, false
	}
	return *p, true
}

// SetMoveTarget makes the player run towards target on the next steps.
// ok=false stops the player.
func (a *Arena) SetMoveTarget(id model.EntityID, target model.Vec3, ok bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if p, found := a.players[id]; found {
		p.moveTarget = target
		p.hasMoveTarget = ok
	}
}

// SetLookDir points the player's view.
func (a *Arena) SetLookDir(id model.EntityID, dir model.Vec3) {
	if dir.LengthSquared() == 0 {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if p, ok := a.players[id]; ok {
		p.LookDir = dir.Normalized()
	}
}

// SetStatus overrides the player's health and armor. Used by scenario setups.
func (a *Arena) SetStatus(id model.EntityID, st model.Status) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if p, ok := a.players[id]; ok {
		p.Status = st
	}
}

// SelfState returns the bot-facing view of a player.
func (a *Arena) SelfState(id model.EntityID) (ai.SelfState, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	p, ok := a.players[id]
	if !ok {
		return ai.SelfState{}, false
	}
	return ai.SelfState{
		Origin:    p.Origin,
		Velocity:  p.Velocity,
		LookDir:   p.LookDir,
		AreaNum:   p.AreaNum,
		Inventory: p.Inventory,
		Status:    p.Status,
	}, true
}

// Step advances the arena to level time now: moves players, expires powerups
// and hands out items. Pickup handlers run after the arena lock is released.
func (a *Arena) Step(now int64) {
	a.mu.Lock()
	dt := float64(max(now-a.lastStep, 0)) / 1000
	if a.lastStep == 0 {
		dt = 0
	}
	a.lastStep = now
	a.refreshSpawnTimes(now)

	var pickups []Pickup
	players := make([]*Player, 0, len(a.order))
	for _, id := range a.order {
		p := a.players[id]
		players = append(players, p)
		if !p.Alive {
			continue
		}
		a.movePlayer(p, dt)
		a.expirePowerups(p, now)
		pickups = a.collectItems(p, now, pickups)
		a.pool.Update(id, func(e *model.NavEntity) {
			e.Origin = p.Origin
			e.AreaNum = p.AreaNum
		})
	}
	a.sight = buildSightTable(a.grid, players, a.sightWorkers)
	handler := a.onPickup
	a.mu.Unlock()

	if handler == nil {
		return
	}
	for _, pk := range pickups {
		handler(pk)
	}
}

func (a *Arena) movePlayer(p *Player, dt float64) {
	if !p.hasMoveTarget || dt == 0 {
		p.Velocity = model.Vec3{}
		return
	}
	delta := p.moveTarget.Sub(p.Origin)
	delta.Z = 0
	dist := delta.Length()
	if dist < arrivalEpsilon {
		p.Velocity = model.Vec3{}
		return
	}

	dir := delta.Scale(1 / dist)
	travel := min(RunSpeed*dt, dist)
	next := p.Origin.Add(dir.Scale(travel))
	velocity := dir.Scale(RunSpeed)

	knee := model.Vec3{Z: kneeHeight}
	if tr := a.grid.Trace(p.Origin.Add(knee), next.Add(knee)); tr.Hit {
		// slide up to the obstacle and stop
		next = tr.EndPos.Sub(knee)
		velocity = model.Vec3{}
	}

	p.Origin = next
	p.Velocity = velocity
	p.LookDir = dir
	if area := a.graph.AreaAt(next); area != 0 {
		p.AreaNum = area
	}
}

func (a *Arena) expirePowerups(p *Player, now int64) {
	if p.Status.HasQuad && now >= p.quadUntil {
		p.Status.HasQuad = false
		p.Inventory.Set(model.PowerupQuad, 0)
	}
	if p.Status.HasShell && now >= p.shellUntil {
		p.Status.HasShell = false
		p.Inventory.Set(model.PowerupShell, 0)
	}
}

// refreshSpawnTimes stamps every item standing in the arena with the current
// level time. Items waiting to respawn keep their future spawn time.
func (a *Arena) refreshSpawnTimes(now int64) {
	for _, placed := range a.items {
		a.pool.Update(placed.id, func(e *model.NavEntity) {
			if e.SpawnTime != 0 && e.SpawnTime <= now {
				e.SpawnTime = now
			}
		})
	}
}

func (a *Arena) collectItems(p *Player, now int64, pickups []Pickup) []Pickup {
	for _, placed := range a.items {
		ent, ok := a.pool.Get(placed.id)
		if !ok || ent.SpawnTime == 0 || ent.SpawnTime > now {
			continue
		}
		if ent.Origin.Distance2D(p.Origin) > PickupRadius {
			continue
		}
		if !applyItem(p, ent.Item, now) {
			continue
		}
		respawnAt := now + placed.respawn
		a.pool.Update(placed.id, func(e *model.NavEntity) { e.SpawnTime = respawnAt })
		pickups = append(pickups, Pickup{Player: p.ID, Item: placed.id, Tag: ent.Item.Tag})

		slog.Debug("item picked up",
			"player", p.Name,
			"item", ent.Name,
			"respawnAt", respawnAt)
	}
	return pickups
}

// applyItem gives item to p. Returns false when the player gains nothing.
func applyItem(p *Player, item *model.Item, now int64) bool {
	inv := &p.Inventory
	st := &p.Status

	switch item.Type {
	case model.ItemTypeWeapon:
		hadWeapon := inv.Has(item.Tag)
		ammo := item.AmmoTag
		before := inv.Count(ammo)
		inv.Set(item.Tag, 1)
		inv.Add(ammo, ammoPickupAmount(ammo))
		return !hadWeapon || inv.Count(ammo) > before

	case model.ItemTypeAmmo:
		before := inv.Count(item.Tag)
		inv.Add(item.Tag, ammoPickupAmount(item.Tag))
		return inv.Count(item.Tag) > before

	case model.ItemTypeHealth:
		amount, limit := healthPickup(item.Tag, st.MaxHealth)
		if st.Health >= limit {
			return false
		}
		st.Health = min(st.Health+amount, limit)
		return true

	case model.ItemTypeArmor:
		amount, limit := armorPickup(item.Tag)
		if st.Armor >= limit {
			return false
		}
		st.Armor = min(st.Armor+amount, limit)
		return true

	case model.ItemTypePowerup:
		inv.Set(item.Tag, 1)
		switch item.Tag {
		case model.PowerupQuad:
			st.HasQuad = true
			p.quadUntil = now + quadDuration.Milliseconds()
		case model.PowerupShell:
			st.HasShell = true
			p.shellUntil = now + shellDuration.Milliseconds()
		}
		return true
	}
	return false
}

func ammoPickupAmount(ammo model.ItemTag) int {
	it := model.ItemByTag(ammo)
	if it == nil {
		return 0
	}
	return max(it.InventoryMax/2, 1)
}

func healthPickup(tag model.ItemTag, maxHealth float64) (amount, limit float64) {
	switch tag {
	case model.HealthSmall:
		return 5, 2 * maxHealth
	case model.HealthMedium:
		return 25, maxHealth
	case model.HealthLarge:
		return 50, maxHealth
	case model.HealthMega, model.HealthUltra:
		return 100, 2 * maxHealth
	}
	return 0, 0
}

func armorPickup(tag model.ItemTag) (amount, limit float64) {
	switch tag {
	case model.ArmorShard:
		return 5, 150
	case model.ArmorGA:
		return 50, 100
	case model.ArmorYA:
		return 75, 125
	case model.ArmorRA:
		return 100, 150
	}
	return 0, 0
}
