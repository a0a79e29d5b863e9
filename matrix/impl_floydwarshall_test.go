package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fwstep/matrix"
)

// fillInfOffDiagZeroDiag initializes a distance-matrix fixture:
// diagonal = 0, off-diagonal = +Inf.
func fillInfOffDiagZeroDiag(t *testing.T, d *matrix.Dense) {
	t.Helper()

	n := d.Rows()
	data := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i != j {
				data[i*n+j] = math.Inf(1)
			}
		}
	}
	require.NoError(t, d.Fill(data))
}

func TestFloydWarshall_Errors(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, matrix.FloydWarshall(nil), matrix.ErrNilMatrix)
	ns, _ := matrix.NewDense(3, 4)
	require.ErrorIs(t, matrix.FloydWarshall(ns), matrix.ErrNonSquare)
}

// Classic CLRS example (5×5, directed, negative edges but no negative cycles).
func TestFloydWarshall_CLRS_5x5(t *testing.T) {
	t.Parallel()

	const n = 5
	A, _ := matrix.NewPreparedDense(n, n, matrix.WithAllowInfDistances())
	fillInfOffDiagZeroDiag(t, A)
	for _, e := range []struct {
		u, v int
		w    float64
	}{
		{0, 1, 3}, {0, 2, 8}, {0, 4, -4}, {1, 3, 1}, {1, 4, 7},
		{2, 1, 4}, {3, 0, 2}, {3, 2, -5}, {4, 3, 6},
	} {
		require.NoError(t, A.Set(e.u, e.v, e.w))
	}
	require.NoError(t, matrix.FloydWarshall(A))

	exp := [][]float64{
		{0, 1, -3, 2, -4},
		{3, 0, -4, 1, -1},
		{7, 4, 0, 5, 3},
		{2, -1, -5, 0, -2},
		{8, 5, 1, 6, 0},
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			got, _ := A.At(i, j)
			require.Equalf(t, exp[i][j], got, "dist[%d,%d]", i, j)
		}
	}
}

// Path graph 0-1-2 plus isolated vertex 3.
func TestAPSP_DistancesAndNextHops(t *testing.T) {
	t.Parallel()

	adj, err := matrix.NewDenseFromRows([][]float64{
		{0, 1, 0, 0},
		{1, 0, 1, 0},
		{0, 1, 0, 0},
		{0, 0, 0, 0},
	})
	require.NoError(t, err)

	dist, next, err := matrix.APSP(adj)
	require.NoError(t, err)

	d02, _ := dist.At(0, 2)
	require.Equal(t, 2.0, d02)
	require.Equal(t, 1, next[matrix.Index(0, 2, 4)])
	require.Equal(t, 0, next[matrix.Index(0, 0, 4)])

	d03, _ := dist.At(0, 3)
	require.True(t, math.IsInf(d03, 1))
	require.Equal(t, matrix.NoHop, next[matrix.Index(0, 3, 4)])
}

func TestAPSP_RejectsBadAdjacency(t *testing.T) {
	t.Parallel()

	_, _, err := matrix.APSP(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
	neg, _ := matrix.NewDenseFromRows([][]float64{{0, -2}, {1, 0}})
	_, _, err = matrix.APSP(neg)
	require.ErrorIs(t, err, matrix.ErrInvalidWeight)
}
