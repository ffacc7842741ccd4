package curve

// linearGenerator scans row-major, left to right, top to bottom.
type linearGenerator struct {
	side   int
	row    int
	col    int
	linear int
}

func newLinear(order int) *linearGenerator {
	return &linearGenerator{side: 1 << order}
}

func (g *linearGenerator) Next() (Step, bool) {
	if g.row >= g.side {
		return Step{}, false
	}

	step := Step{Row: g.row, Col: g.col, Linear: g.linear}
	g.linear++
	g.col++
	if g.col == g.side {
		g.col = 0
		g.row++
	}

	return step, true
}
