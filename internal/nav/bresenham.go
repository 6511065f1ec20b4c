package nav

// lineIterator3D steps through grid cells along a 3D line (Bresenham).
type lineIterator3D struct {
	currentX, currentY, currentZ int
	targetX, targetY, targetZ    int
	deltaX, deltaY, deltaZ       int
	stepX, stepY, stepZ          int
	err1, err2                   int
	dominant                     int // 0=X, 1=Y, 2=Z
	started                      bool
}

func newLineIterator3D(sx, sy, sz, ex, ey, ez int) *lineIterator3D {
	it := &lineIterator3D{
		currentX: sx, currentY: sy, currentZ: sz,
		targetX: ex, targetY: ey, targetZ: ez,
		deltaX: absInt(ex - sx),
		deltaY: absInt(ey - sy),
		deltaZ: absInt(ez - sz),
		stepX:  sign(ex - sx),
		stepY:  sign(ey - sy),
		stepZ:  sign(ez - sz),
	}

	switch {
	case it.deltaX >= it.deltaY && it.deltaX >= it.deltaZ:
		it.dominant = 0
		it.err1, it.err2 = it.deltaX/2, it.deltaX/2
	case it.deltaY >= it.deltaX && it.deltaY >= it.deltaZ:
		it.dominant = 1
		it.err1, it.err2 = it.deltaY/2, it.deltaY/2
	default:
		it.dominant = 2
		it.err1, it.err2 = it.deltaZ/2, it.deltaZ/2
	}

	return it
}

// next advances to the next cell; the first call yields the start cell.
// Returns false when the target was already reached.
func (it *lineIterator3D) next() bool {
	if !it.started {
		it.started = true
		return true
	}
	if it.currentX == it.targetX && it.currentY == it.targetY && it.currentZ == it.targetZ {
		return false
	}

	switch it.dominant {
	case 0:
		it.currentX += it.stepX
		it.err1, it.currentY = advance(it.err1, it.deltaY, it.deltaX, it.currentY, it.stepY)
		it.err2, it.currentZ = advance(it.err2, it.deltaZ, it.deltaX, it.currentZ, it.stepZ)
	case 1:
		it.currentY += it.stepY
		it.err1, it.currentX = advance(it.err1, it.deltaX, it.deltaY, it.currentX, it.stepX)
		it.err2, it.currentZ = advance(it.err2, it.deltaZ, it.deltaY, it.currentZ, it.stepZ)
	case 2:
		it.currentZ += it.stepZ
		it.err1, it.currentX = advance(it.err1, it.deltaX, it.deltaZ, it.currentX, it.stepX)
		it.err2, it.currentY = advance(it.err2, it.deltaY, it.deltaZ, it.currentY, it.stepY)
	}

	return true
}

func advance(errTerm, delta, dominantDelta, coord, step int) (int, int) {
	errTerm += delta
	if errTerm >= dominantDelta {
		coord += step
		errTerm -= dominantDelta
	}
	return errTerm, coord
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
