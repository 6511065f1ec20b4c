package world

import (
	"log/slog"
	"runtime"
	"sync"

	"github.com/udisondev/fragbots/internal/model"
	"github.com/udisondev/fragbots/internal/nav"
)

// parallelSightPlayers is the player count from which sight tables are built
// on several workers. Below it goroutine overhead dominates.
const parallelSightPlayers = 24

type sightKey struct {
	lo, hi model.EntityID
}

func newSightKey(a, b model.EntityID) sightKey {
	if a > b {
		a, b = b, a
	}
	return sightKey{lo: a, hi: b}
}

type sightPair struct {
	key  sightKey
	from model.Vec3
	to   model.Vec3
}

// sightTable caches eye to eye line of sight between living players.
// Rebuilt on every arena step; read by perception while bots think.
type sightTable struct {
	visible map[sightKey]bool
}

// lookup returns the cached visibility of a pair, ok=false if the pair is unknown.
func (s sightTable) lookup(a, b model.EntityID) (visible, ok bool) {
	visible, ok = s.visible[newSightKey(a, b)]
	return visible, ok
}

// buildSightTable traces every pair of living players.
func buildSightTable(grid *nav.Grid, players []*Player, workers int) sightTable {
	pairs := make([]sightPair, 0, len(players)*(len(players)-1)/2+1)
	eye := model.Vec3{Z: eyeHeight}
	for i, p := range players {
		if !p.Alive {
			continue
		}
		for _, q := range players[i+1:] {
			if !q.Alive {
				continue
			}
			pairs = append(pairs, sightPair{
				key:  newSightKey(p.ID, q.ID),
				from: p.Origin.Add(eye),
				to:   q.Origin.Add(eye),
			})
		}
	}

	results := make([]bool, len(pairs))
	if len(players) < parallelSightPlayers || workers <= 1 {
		traceSightRange(grid, pairs, results)
	} else {
		traceSightParallel(grid, pairs, results, workers)
	}

	table := sightTable{visible: make(map[sightKey]bool, len(pairs))}
	for i, pair := range pairs {
		table.visible[pair.key] = results[i]
	}
	return table
}

func traceSightRange(grid *nav.Grid, pairs []sightPair, results []bool) {
	for i, pair := range pairs {
		results[i] = grid.CanSee(pair.from, pair.to)
	}
}

// traceSightParallel splits pairs into one chunk per worker; the last worker takes the remainder.
func traceSightParallel(grid *nav.Grid, pairs []sightPair, results []bool, workers int) {
	workers = min(workers, len(pairs))
	if workers == 0 {
		return
	}
	chunkSize := len(pairs) / workers

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := range workers {
		start := i * chunkSize
		end := start + chunkSize
		if i == workers-1 {
			end = len(pairs)
		}
		go func(start, end int) {
			defer wg.Done()
			traceSightRange(grid, pairs[start:end], results[start:end])
		}(start, end)
	}
	wg.Wait()

	slog.Debug("sight table rebuilt (parallel)", "pairs", len(pairs), "workers", workers)
}

func defaultSightWorkers() int {
	return runtime.NumCPU()
}
