package nav

import (
	"fmt"
	"math"

	"github.com/udisondev/fragbots/internal/model"
)

// DefaultCellSize is the edge of a solid grid cell in world units.
const DefaultCellSize = 16.0

// maxStepHeight is the highest ledge a line-of-reach may climb without a jump.
const maxStepHeight = 18.0

// TraceResult describes a line trace through the solid grid.
type TraceResult struct {
	Fraction float64 // 1 when nothing was hit
	EndPos   model.Vec3
	Hit      bool
}

// Grid is a coarse voxel map of solid world geometry used for traces.
// Cells outside the grid are empty.
type Grid struct {
	origin   model.Vec3
	cellSize float64
	sizeX    int
	sizeY    int
	sizeZ    int
	solid    []bool
}

// NewGrid creates an empty grid covering [origin, origin + size*cellSize).
func NewGrid(origin model.Vec3, cellSize float64, sizeX, sizeY, sizeZ int) (*Grid, error) {
	if cellSize <= 0 {
		return nil, fmt.Errorf("invalid cell size %v", cellSize)
	}
	if sizeX <= 0 || sizeY <= 0 || sizeZ <= 0 {
		return nil, fmt.Errorf("invalid grid size %dx%dx%d", sizeX, sizeY, sizeZ)
	}
	return &Grid{
		origin:   origin,
		cellSize: cellSize,
		sizeX:    sizeX,
		sizeY:    sizeY,
		sizeZ:    sizeZ,
		solid:    make([]bool, sizeX*sizeY*sizeZ),
	}, nil
}

// FillBox marks all cells overlapping the box [mins, maxs] as solid.
func (g *Grid) FillBox(mins, maxs model.Vec3) {
	x0, y0, z0 := g.cellOf(mins)
	x1, y1, z1 := g.cellOf(maxs)
	for x := max(x0, 0); x <= min(x1, g.sizeX-1); x++ {
		for y := max(y0, 0); y <= min(y1, g.sizeY-1); y++ {
			for z := max(z0, 0); z <= min(z1, g.sizeZ-1); z++ {
				g.solid[g.index(x, y, z)] = true
			}
		}
	}
}

// IsSolid reports whether the cell containing p is solid.
func (g *Grid) IsSolid(p model.Vec3) bool {
	return g.solidCell(g.cellOf(p))
}

// Trace walks cells from start to end and stops at the first solid one.
func (g *Grid) Trace(start, end model.Vec3) TraceResult {
	sx, sy, sz := g.cellOf(start)
	ex, ey, ez := g.cellOf(end)

	steps := max(absInt(ex-sx), absInt(ey-sy), absInt(ez-sz))
	if steps == 0 {
		if g.solidCell(sx, sy, sz) {
			return TraceResult{Fraction: 0, EndPos: start, Hit: true}
		}
		return TraceResult{Fraction: 1, EndPos: end}
	}

	it := newLineIterator3D(sx, sy, sz, ex, ey, ez)
	it.next() // skip start cell

	step := 0
	for it.next() {
		step++
		if g.solidCell(it.currentX, it.currentY, it.currentZ) {
			// stop at the boundary of the previous free cell
			frac := float64(step-1) / float64(steps)
			return TraceResult{
				Fraction: frac,
				EndPos:   start.Add(end.Sub(start).Scale(frac)),
				Hit:      true,
			}
		}
	}

	return TraceResult{Fraction: 1, EndPos: end}
}

// CanSee reports whether nothing solid lies between a and b.
func (g *Grid) CanSee(a, b model.Vec3) bool {
	return !g.Trace(a, b).Hit
}

// CanWalk is a cheap line-of-reach test: a knee-height trace is clear and the
// height difference can be stepped over.
func (g *Grid) CanWalk(from, to model.Vec3) bool {
	if to.Z-from.Z > maxStepHeight {
		return false
	}
	knee := model.Vec3{Z: maxStepHeight}
	return !g.Trace(from.Add(knee), to.Add(knee)).Hit
}

func (g *Grid) cellOf(p model.Vec3) (int, int, int) {
	rel := p.Sub(g.origin)
	return int(math.Floor(rel.X / g.cellSize)),
		int(math.Floor(rel.Y / g.cellSize)),
		int(math.Floor(rel.Z / g.cellSize))
}

func (g *Grid) solidCell(x, y, z int) bool {
	if x < 0 || y < 0 || z < 0 || x >= g.sizeX || y >= g.sizeY || z >= g.sizeZ {
		return false
	}
	return g.solid[g.index(x, y, z)]
}

func (g *Grid) index(x, y, z int) int {
	return (z*g.sizeY+y)*g.sizeX + x
}
