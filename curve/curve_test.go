package curve

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/number0/btrfs-heatmap/errs"
	"github.com/number0/btrfs-heatmap/format"
)

func collect(t *testing.T, gen Generator) []Step {
	t.Helper()

	var steps []Step
	for {
		step, ok := gen.Next()
		if !ok {
			break
		}
		steps = append(steps, step)
	}
	// Exhaustion is terminal.
	_, ok := gen.Next()
	require.False(t, ok)

	return steps
}

// requireFullCoverage checks the shared generator contract: 4^order steps,
// every coordinate pair unique and in range, linear indices 0..4^order-1 in
// order.
func requireFullCoverage(t *testing.T, steps []Step, order int) {
	t.Helper()

	side := 1 << order
	require.Len(t, steps, side*side)

	seen := make(map[[2]int]bool, len(steps))
	for i, step := range steps {
		require.Equal(t, i, step.Linear)
		require.GreaterOrEqual(t, step.Row, 0)
		require.Less(t, step.Row, side)
		require.GreaterOrEqual(t, step.Col, 0)
		require.Less(t, step.Col, side)

		pos := [2]int{step.Row, step.Col}
		require.False(t, seen[pos], "cell (%d,%d) visited twice", step.Row, step.Col)
		seen[pos] = true
	}
}

func TestNew_UnknownKind(t *testing.T) {
	_, err := New(format.CurveType(0xff), 3)
	require.ErrorIs(t, err, errs.ErrUnknownCurveType)
}

func TestNew_NegativeOrder(t *testing.T) {
	_, err := New(format.CurveHilbert, -1)
	require.ErrorIs(t, err, errs.ErrInvalidOrder)
}

func TestHilbert_CoverageAndAdjacency(t *testing.T) {
	for order := 0; order <= 6; order++ {
		gen, err := New(format.CurveHilbert, order)
		require.NoError(t, err)

		steps := collect(t, gen)
		requireFullCoverage(t, steps, order)

		// Consecutive cells must be 4-connected.
		for i := 1; i < len(steps); i++ {
			dr := steps[i].Row - steps[i-1].Row
			dc := steps[i].Col - steps[i-1].Col
			if dr < 0 {
				dr = -dr
			}
			if dc < 0 {
				dc = -dc
			}
			require.Equal(t, 1, dr+dc,
				"order %d: steps %d and %d are not adjacent", order, i-1, i)
		}
	}
}

func TestHilbert_OrderOneSequence(t *testing.T) {
	gen, err := New(format.CurveHilbert, 1)
	require.NoError(t, err)

	want := []Step{
		{Row: 1, Col: 0, Linear: 0},
		{Row: 0, Col: 0, Linear: 1},
		{Row: 0, Col: 1, Linear: 2},
		{Row: 1, Col: 1, Linear: 3},
	}
	require.Equal(t, want, collect(t, gen))
}

func TestHilbert_OrderZero(t *testing.T) {
	gen, err := New(format.CurveHilbert, 0)
	require.NoError(t, err)

	steps := collect(t, gen)
	require.Equal(t, []Step{{Row: 0, Col: 0, Linear: 0}}, steps)
}

func TestHilbert_StartsBottomLeft(t *testing.T) {
	for order := 1; order <= 4; order++ {
		gen, err := New(format.CurveHilbert, order)
		require.NoError(t, err)

		first, ok := gen.Next()
		require.True(t, ok)
		require.Equal(t, Step{Row: 1<<order - 1, Col: 0, Linear: 0}, first)
	}
}

func TestLinear_RowMajor(t *testing.T) {
	for order := 0; order <= 4; order++ {
		gen, err := New(format.CurveLinear, order)
		require.NoError(t, err)

		steps := collect(t, gen)
		requireFullCoverage(t, steps, order)

		side := 1 << order
		for _, step := range steps {
			require.Equal(t, step.Linear/side, step.Row)
			require.Equal(t, step.Linear%side, step.Col)
		}
	}
}

func TestSnake_OddRowsReversed(t *testing.T) {
	for order := 0; order <= 4; order++ {
		gen, err := New(format.CurveSnake, order)
		require.NoError(t, err)

		steps := collect(t, gen)
		requireFullCoverage(t, steps, order)

		side := 1 << order
		for _, step := range steps {
			require.Equal(t, step.Linear/side, step.Row)
			if step.Row%2 == 0 {
				require.Equal(t, step.Linear%side, step.Col)
			} else {
				require.Equal(t, side-1-step.Linear%side, step.Col)
			}
		}
	}
}

func TestSnake_Adjacency(t *testing.T) {
	gen, err := New(format.CurveSnake, 3)
	require.NoError(t, err)

	steps := collect(t, gen)
	for i := 1; i < len(steps); i++ {
		dr := steps[i].Row - steps[i-1].Row
		dc := steps[i].Col - steps[i-1].Col
		if dr < 0 {
			dr = -dr
		}
		if dc < 0 {
			dc = -dc
		}
		require.Equal(t, 1, dr+dc)
	}
}
