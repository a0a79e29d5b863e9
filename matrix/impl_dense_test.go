package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fwstep/matrix"
)

func TestNewDense_InvalidDimensions(t *testing.T) {
	t.Parallel()

	for _, shape := range [][2]int{{0, 1}, {1, 0}, {-1, 2}} {
		_, err := matrix.NewDense(shape[0], shape[1])
		require.ErrorIs(t, err, matrix.ErrInvalidDimensions, "shape %v", shape)
	}
}

func TestDense_AtSetBounds(t *testing.T) {
	t.Parallel()

	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	require.NoError(t, m.Set(1, 2, 7))

	v, err := m.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, 7.0, v)

	_, err = m.At(2, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, -1, 1), matrix.ErrOutOfRange)
}

func TestDense_NumericPolicy(t *testing.T) {
	t.Parallel()

	strict, _ := matrix.NewDense(1, 1)
	require.ErrorIs(t, strict.Set(0, 0, math.Inf(1)), matrix.ErrNaNInf)
	require.ErrorIs(t, strict.Set(0, 0, math.NaN()), matrix.ErrNaNInf)

	dist, _ := matrix.NewPreparedDense(1, 1, matrix.WithAllowInfDistances())
	require.NoError(t, dist.Set(0, 0, math.Inf(1)))
	require.ErrorIs(t, dist.Set(0, 0, math.Inf(-1)), matrix.ErrNaNInf)

	loose, _ := matrix.NewPreparedDense(1, 1, matrix.WithNoValidateNaNInf())
	require.NoError(t, loose.Set(0, 0, math.NaN()))
}

func TestDense_FillIsAtomic(t *testing.T) {
	t.Parallel()

	m, _ := matrix.NewDense(2, 2)
	require.NoError(t, m.Fill([]float64{1, 2, 3, 4}))
	require.ErrorIs(t, m.Fill([]float64{1, 2, 3}), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, m.Fill([]float64{9, 9, 9, math.NaN()}), matrix.ErrNaNInf)
	require.Equal(t, []float64{1, 2, 3, 4}, m.Flat(), "failed Fill must not write")
}

func TestDense_CloneAndFlatAreIndependent(t *testing.T) {
	t.Parallel()

	m, err := matrix.NewDenseFromRows([][]float64{{0, 1}, {1, 0}})
	require.NoError(t, err)

	c := m.CloneDense()
	flat := m.Flat()
	require.NoError(t, c.Set(0, 1, 5))
	flat[0] = 42

	v, _ := m.At(0, 1)
	require.Equal(t, 1.0, v)
	v, _ = m.At(0, 0)
	require.Equal(t, 0.0, v)
}

func TestNewDenseFromRows_Ragged(t *testing.T) {
	t.Parallel()

	_, err := matrix.NewDenseFromRows([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.NewDenseFromRows(nil)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

func TestDense_String(t *testing.T) {
	t.Parallel()

	m, _ := matrix.NewDenseFromRows([][]float64{{1, 2}, {3, 4}})
	require.Equal(t, "[1, 2]\n[3, 4]\n", m.String())
}
