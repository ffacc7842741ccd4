package curve

// snakeGenerator scans row-major but reverses direction on odd rows, so
// consecutive steps stay 4-connected at row boundaries.
type snakeGenerator struct {
	side   int
	row    int
	col    int // logical column, 0..side-1 in walk order
	linear int
}

func newSnake(order int) *snakeGenerator {
	return &snakeGenerator{side: 1 << order}
}

func (g *snakeGenerator) Next() (Step, bool) {
	if g.row >= g.side {
		return Step{}, false
	}

	col := g.col
	if g.row%2 == 1 {
		col = g.side - 1 - g.col
	}

	step := Step{Row: g.row, Col: col, Linear: g.linear}
	g.linear++
	g.col++
	if g.col == g.side {
		g.col = 0
		g.row++
	}

	return step, true
}
