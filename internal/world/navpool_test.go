package world

import (
	"testing"

	"github.com/udisondev/fragbots/internal/model"
)

func TestNavEntityPool_AddGet(t *testing.T) {
	p := NewNavEntityPool()

	if err := p.Add(model.NavEntity{ID: 7, Name: "Red Armor"}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := p.Add(model.NavEntity{ID: 7, Name: "dup"}); err == nil {
		t.Error("Add() duplicate id should fail")
	}
	if err := p.Add(model.NavEntity{Name: "no id"}); err == nil {
		t.Error("Add() without id should fail")
	}

	ent, ok := p.Get(7)
	if !ok || ent.Name != "Red Armor" {
		t.Errorf("Get(7) = %+v, %v", ent, ok)
	}
	if _, ok := p.Get(8); ok {
		t.Error("Get(8) should miss")
	}
	if p.Len() != 1 {
		t.Errorf("Len() = %d, want 1", p.Len())
	}
}

func TestNavEntityPool_GetReturnsCopy(t *testing.T) {
	p := NewNavEntityPool()
	_ = p.Add(model.NavEntity{ID: 1, SpawnTime: 10})

	ent, _ := p.Get(1)
	ent.SpawnTime = 99

	got, _ := p.Get(1)
	if got.SpawnTime != 10 {
		t.Errorf("SpawnTime = %d, want 10", got.SpawnTime)
	}
}

func TestNavEntityPool_ForEachOrder(t *testing.T) {
	p := NewNavEntityPool()
	for _, id := range []model.EntityID{5, 2, 9, 1} {
		_ = p.Add(model.NavEntity{ID: id})
	}
	p.Remove(9)

	var seen []model.EntityID
	p.ForEach(func(ent *model.NavEntity) bool {
		seen = append(seen, ent.ID)
		return true
	})

	want := []model.EntityID{5, 2, 1}
	if len(seen) != len(want) {
		t.Fatalf("ForEach visited %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("ForEach visited %v, want %v", seen, want)
		}
	}
}

func TestNavEntityPool_ForEachStops(t *testing.T) {
	p := NewNavEntityPool()
	for id := model.EntityID(1); id <= 5; id++ {
		_ = p.Add(model.NavEntity{ID: id})
	}

	calls := 0
	p.ForEach(func(*model.NavEntity) bool {
		calls++
		return calls < 2
	})
	if calls != 2 {
		t.Errorf("ForEach calls = %d, want 2", calls)
	}
}

func TestNavEntityPool_Version(t *testing.T) {
	p := NewNavEntityPool()
	v0 := p.Version()

	_ = p.Add(model.NavEntity{ID: 1})
	if !p.Update(1, func(e *model.NavEntity) { e.SpawnTime = 5 }) {
		t.Fatal("Update(1) = false")
	}
	if p.Update(2, func(*model.NavEntity) {}) {
		t.Error("Update(2) of unknown id = true")
	}
	p.Remove(1)
	p.Remove(1)

	if got := p.Version() - v0; got != 3 {
		t.Errorf("version advanced by %d, want 3", got)
	}
}

func TestEntityIDGenerator_Ranges(t *testing.T) {
	gen := NewEntityIDGenerator()

	client := gen.NextClientID()
	item := gen.NextItemID()
	dropped := gen.NextDroppedID()

	if client != 1 {
		t.Errorf("first client id = %d, want 1", client)
	}
	if !IsClientID(client) {
		t.Errorf("IsClientID(%d) = false", client)
	}
	if IsClientID(item) || IsClientID(dropped) {
		t.Errorf("item %d or dropped %d id in client range", item, dropped)
	}
	if item != 0x1000 || dropped != 0x100000 {
		t.Errorf("item = %#x, dropped = %#x", item, dropped)
	}
}
