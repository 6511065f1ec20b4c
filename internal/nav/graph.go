package nav

import (
	"container/heap"
	"fmt"

	"github.com/udisondev/fragbots/internal/model"
)

// MaxSearchIterations limits Dijkstra expansion per travel time query.
const MaxSearchIterations = 4096

// AreaFlags describe navigation area properties.
type AreaFlags uint8

const (
	AreaGrounded AreaFlags = 1 << iota
	AreaLiquid
	AreaJumpPad
)

// Area is an axis-aligned region of traversable space.
type Area struct {
	Num   int
	Mins  model.Vec3
	Maxs  model.Vec3
	Flags AreaFlags
}

// Center returns the area box center.
func (a Area) Center() model.Vec3 {
	return a.Mins.Add(a.Maxs).Scale(0.5)
}

// Contains reports whether p lies inside the area box.
func (a Area) Contains(p model.Vec3) bool {
	return p.X >= a.Mins.X && p.X <= a.Maxs.X &&
		p.Y >= a.Mins.Y && p.Y <= a.Maxs.Y &&
		p.Z >= a.Mins.Z && p.Z <= a.Maxs.Z
}

// Reach is a directed link between two areas.
type Reach struct {
	From       int
	To         int
	TravelTime int64 // ms
	Requires   model.MoveMask
}

// Graph is an area graph answering travel time queries.
// Read-only after construction; safe for concurrent queries.
type Graph struct {
	areas []Area    // indexed by area num, slot 0 unused
	links [][]Reach // outgoing reachabilities per area
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		areas: make([]Area, 1),
		links: make([][]Reach, 1),
	}
}

// AddArea registers an area. Area numbers must be positive.
func (g *Graph) AddArea(a Area) error {
	if a.Num <= 0 {
		return fmt.Errorf("invalid area num %d", a.Num)
	}
	for len(g.areas) <= a.Num {
		g.areas = append(g.areas, Area{})
		g.links = append(g.links, nil)
	}
	g.areas[a.Num] = a
	return nil
}

// AddReach registers a directed link.
func (g *Graph) AddReach(r Reach) error {
	if !g.hasArea(r.From) || !g.hasArea(r.To) {
		return fmt.Errorf("reach %d->%d references unknown area", r.From, r.To)
	}
	if r.TravelTime <= 0 {
		r.TravelTime = 1
	}
	g.links[r.From] = append(g.links[r.From], r)
	return nil
}

// AreaCount returns number of registered area slots.
func (g *Graph) AreaCount() int {
	return len(g.areas) - 1
}

// Area returns area by number.
func (g *Graph) Area(num int) (Area, bool) {
	if !g.hasArea(num) {
		return Area{}, false
	}
	return g.areas[num], true
}

// AreaAt returns the number of the first area containing p, or 0.
func (g *Graph) AreaAt(p model.Vec3) int {
	for num := 1; num < len(g.areas); num++ {
		if g.areas[num].Num != 0 && g.areas[num].Contains(p) {
			return num
		}
	}
	return 0
}

// AreaFloor returns the floor height of a grounded area.
func (g *Graph) AreaFloor(num int) (float64, bool) {
	a, ok := g.Area(num)
	if !ok || a.Flags&AreaGrounded == 0 {
		return 0, false
	}
	return a.Mins.Z, true
}

func (g *Graph) hasArea(num int) bool {
	return num > 0 && num < len(g.areas) && g.areas[num].Num == num
}

// TravelTime returns the fastest travel time in ms between two areas using only
// reachabilities allowed by mask. Returns false when there is no route.
func (g *Graph) TravelTime(from, to int, mask model.MoveMask) (int64, bool) {
	if !g.hasArea(from) || !g.hasArea(to) {
		return 0, false
	}
	if from == to {
		return 1, true
	}

	dist := make(map[int]int64, 64)
	open := &areaHeap{}
	heap.Init(open)
	heap.Push(open, &areaNode{area: from})
	dist[from] = 0

	for range MaxSearchIterations {
		if open.Len() == 0 {
			return 0, false
		}

		current := heap.Pop(open).(*areaNode)
		if current.area == to {
			return max(current.cost, 1), true
		}
		if d, ok := dist[current.area]; ok && current.cost > d {
			continue // stale entry
		}

		for _, r := range g.links[current.area] {
			if r.Requires&^mask != 0 {
				continue
			}
			cost := current.cost + r.TravelTime
			if d, ok := dist[r.To]; ok && d <= cost {
				continue
			}
			dist[r.To] = cost
			heap.Push(open, &areaNode{area: r.To, cost: cost})
		}
	}

	return 0, false // search budget exceeded
}

type areaNode struct {
	area  int
	cost  int64
	index int
}

// areaHeap implements container/heap for the open list (min-heap by cost).
type areaHeap []*areaNode

func (h areaHeap) Len() int           { return len(h) }
func (h areaHeap) Less(i, j int) bool { return h[i].cost < h[j].cost }
func (h areaHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *areaHeap) Push(x any)        { n := x.(*areaNode); n.index = len(*h); *h = append(*h, n) }
func (h *areaHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil // GC
	node.index = -1
	*h = old[:n-1]
	return node
}
