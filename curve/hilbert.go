package curve

// The Hilbert traversal is built from 8 orientation states. Each state is
// an ordered tuple of 4 unit moves describing how a single quadrant is
// walked, named after those moves (e.g. URDR = up, right, down, right).
// The transition table maps a state to the 4 sub-states used when recursing
// into its quadrants, in traversal order. The tables guarantee that
// consecutive cells are always 4-connected and that the grid is covered
// without repetition.
type orientation uint8

const (
	orientURDR orientation = iota
	orientRULU
	orientURDD
	orientLDRR
	orientRULL
	orientDLUU
	orientLDRD
	orientDLUL
)

type move struct {
	dr, dc int
}

var (
	moveUp    = move{-1, 0}
	moveRight = move{0, 1}
	moveDown  = move{1, 0}
	moveLeft  = move{0, -1}
)

var orientMoves = [8][4]move{
	orientURDR: {moveUp, moveRight, moveDown, moveRight},
	orientRULU: {moveRight, moveUp, moveLeft, moveUp},
	orientURDD: {moveUp, moveRight, moveDown, moveDown},
	orientLDRR: {moveLeft, moveDown, moveRight, moveRight},
	orientRULL: {moveRight, moveUp, moveLeft, moveLeft},
	orientDLUU: {moveDown, moveLeft, moveUp, moveUp},
	orientLDRD: {moveLeft, moveDown, moveRight, moveDown},
	orientDLUL: {moveDown, moveLeft, moveUp, moveLeft},
}

var orientTransitions = [8][4]orientation{
	orientURDR: {orientRULU, orientURDR, orientURDD, orientLDRR},
	orientRULU: {orientURDR, orientRULU, orientRULL, orientDLUU},
	orientURDD: {orientRULU, orientURDR, orientURDD, orientLDRD},
	orientLDRR: {orientDLUL, orientLDRD, orientLDRR, orientURDR},
	orientRULL: {orientURDR, orientRULU, orientRULL, orientDLUL},
	orientDLUU: {orientLDRD, orientDLUL, orientDLUU, orientRULU},
	orientLDRD: {orientDLUL, orientLDRD, orientLDRR, orientURDD},
	orientDLUL: {orientLDRD, orientDLUL, orientDLUU, orientRULL},
}

// hilbertFrame tracks one recursion level: the orientation of the quadrant
// being traversed and which of its 4 children the walk is currently in.
type hilbertFrame struct {
	orient orientation
	child  uint8
}

// hilbertGenerator walks the curve iteratively with an odometer over a
// frame stack instead of recursion, so each Next call is O(order) worst
// case and O(1) amortized.
type hilbertGenerator struct {
	frames   []hilbertFrame // frames[0] is the root level, the last entry is the leaf
	row, col int
	linear   int
	total    int
}

func newHilbert(order int) *hilbertGenerator {
	side := 1 << order
	g := &hilbertGenerator{
		// The root orientation starts the walk at the bottom-left corner.
		row:   side - 1,
		total: side * side,
	}
	if order > 0 {
		g.frames = make([]hilbertFrame, order)
		g.frames[0] = hilbertFrame{orient: orientURDR}
		for i := 1; i < order; i++ {
			g.frames[i] = hilbertFrame{orient: orientTransitions[g.frames[i-1].orient][0]}
		}
	}

	return g
}

func (g *hilbertGenerator) Next() (Step, bool) {
	if g.linear >= g.total {
		return Step{}, false
	}

	step := Step{Row: g.row, Col: g.col, Linear: g.linear}
	g.linear++
	g.advance()

	return step, true
}

// advance applies the current leaf move and carries the odometer. The 4th
// move of a leaf quadrant is the one that steps into the next quadrant, so
// position updates and quadrant bookkeeping stay in lockstep.
func (g *hilbertGenerator) advance() {
	if len(g.frames) == 0 {
		// Order 0 is a single cell with nothing to walk.
		return
	}

	leaf := &g.frames[len(g.frames)-1]
	m := orientMoves[leaf.orient][leaf.child]
	g.row += m.dr
	g.col += m.dc
	leaf.child++

	i := len(g.frames) - 1
	for i > 0 && g.frames[i].child == 4 {
		i--
		g.frames[i].child++
	}
	if g.frames[i].child == 4 {
		// The whole curve has been consumed; the final move walked off the
		// grid and is never emitted.
		return
	}
	// Re-derive the sub-orientations below the level that just moved to
	// its next child quadrant.
	for j := i + 1; j < len(g.frames); j++ {
		parent := g.frames[j-1]
		g.frames[j] = hilbertFrame{orient: orientTransitions[parent.orient][parent.child]}
	}
}
