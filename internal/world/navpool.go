package world

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/udisondev/fragbots/internal/model"
)

// NavEntityPool tracks nav entities of the arena. The arena is its single writer;
// writes happen between AI frames, so readers in a frame see a stable pool.
type NavEntityPool struct {
	mu    sync.RWMutex
	ents  map[model.EntityID]*model.NavEntity
	order []model.EntityID // insertion order, iteration order of ForEach

	version atomic.Uint64 // incremented on every change
}

// NewNavEntityPool creates an empty pool.
func NewNavEntityPool() *NavEntityPool {
	return &NavEntityPool{
		ents: make(map[model.EntityID]*model.NavEntity),
	}
}

// Add registers a nav entity. The id must be set and unused.
func (p *NavEntityPool) Add(ent model.NavEntity) error {
	if ent.ID == model.NoEntity {
		return fmt.Errorf("nav entity %q has no id", ent.Name)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.ents[ent.ID]; ok {
		return fmt.Errorf("nav entity %d already registered", ent.ID)
	}
	e := ent
	p.ents[ent.ID] = &e
	p.order = append(p.order, ent.ID)
	p.version.Add(1)
	return nil
}

// Remove unregisters a nav entity.
func (p *NavEntityPool) Remove(id model.EntityID) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.ents[id]; !ok {
		return
	}
	delete(p.ents, id)
	p.order = slices.DeleteFunc(p.order, func(x model.EntityID) bool { return x == id })
	p.version.Add(1)
}

// Update mutates an entity in place. Returns false if id is unknown.
func (p *NavEntityPool) Update(id model.EntityID, fn func(ent *model.NavEntity)) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	ent, ok := p.ents[id]
	if !ok {
		return false
	}
	fn(ent)
	p.version.Add(1)
	return true
}

// Get returns a copy of the entity.
func (p *NavEntityPool) Get(id model.EntityID) (model.NavEntity, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	ent, ok := p.ents[id]
	if !ok {
		return model.NavEntity{}, false
	}
	return *ent, true
}

// ForEach calls fn for every entity in insertion order until fn returns false.
func (p *NavEntityPool) ForEach(fn func(ent *model.NavEntity) bool) {
	p.mu.RLock()
	snapshot := make([]*model.NavEntity, 0, len(p.order))
	for _, id := range p.order {
		snapshot = append(snapshot, p.ents[id])
	}
	p.mu.RUnlock()

	for _, ent := range snapshot {
		if !fn(ent) {
			return
		}
	}
}

// Len returns number of tracked entities.
func (p *NavEntityPool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.ents)
}

// Version returns current pool version (incremented on every change).
func (p *NavEntityPool) Version() uint64 {
	return p.version.Load()
}
