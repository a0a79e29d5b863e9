package fwstate_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fwstep/fwstate"
)

func TestNew_Initial(t *testing.T) {
	t.Parallel()

	s := fwstate.New(4)
	require.Equal(t, uint32(0), s.Step())
	require.Equal(t, fwstate.FirstLine, s.Line())
	require.False(t, s.Done())
	require.Equal(t, 4, s.N())
	require.False(t, s.HasDist())
	require.False(t, s.HasNext())
	require.Nil(t, s.Dist())
	require.Nil(t, s.Next())
	for r := fwstate.RegU; r <= fwstate.RegJ; r++ {
		_, ok := s.Reg(r)
		require.False(t, ok, "register %s", r)
	}
}

func TestSetters_CopyOnWrite(t *testing.T) {
	t.Parallel()

	base := fwstate.New(2).
		WithDist([]float64{0, 1, 1, 0}).
		WithNext([]int{0, 1, 0, 1})

	changed := base.WithDistAt(0, 1, 7).WithNextAt(1, 0, fwstate.NoVertex)
	require.Equal(t, 1.0, base.DistAt(0, 1))
	require.Equal(t, 0, base.NextAt(1, 0))
	require.Equal(t, 7.0, changed.DistAt(0, 1))
	require.Equal(t, fwstate.NoVertex, changed.NextAt(1, 0))

	reg := base.WithRegister(fwstate.RegK, 1)
	k, ok := reg.K()
	require.True(t, ok)
	require.Equal(t, 1, k)
	_, ok = base.K()
	require.False(t, ok)
	_, ok = reg.WithoutRegister(fwstate.RegK).K()
	require.False(t, ok)

	moved := base.WithLine(9).WithStep(3).WithDone(true)
	require.Equal(t, fwstate.FirstLine, base.Line())
	require.Equal(t, fwstate.Line(9), moved.Line())
	require.Equal(t, uint32(3), moved.Step())
	require.True(t, moved.Done())
}

func TestGetters_ReturnCopies(t *testing.T) {
	t.Parallel()

	src := []float64{0, 2, 2, 0}
	s := fwstate.New(2).WithDist(src)
	src[1] = 99
	require.Equal(t, 2.0, s.DistAt(0, 1))

	out := s.Dist()
	out[1] = 42
	require.Equal(t, 2.0, s.DistAt(0, 1))
}

func TestCloneAndEqual(t *testing.T) {
	t.Parallel()

	inf := math.Inf(1)
	s := fwstate.New(2).
		WithDist([]float64{0, inf, inf, 0}).
		WithNext([]int{0, -1, -1, 1}).
		WithRegister(fwstate.RegI, 1)

	c := s.Clone()
	require.True(t, s.Equal(c))
	require.True(t, c.Equal(s))

	require.False(t, s.Equal(s.WithDistAt(0, 1, 1)))
	require.False(t, s.Equal(s.WithNext(nil)))
	require.False(t, s.Equal(s.WithStep(1)))
	require.False(t, s.Equal(s.WithoutRegister(fwstate.RegI)))

	// Empty but present tables differ from absent ones.
	empty := fwstate.New(0).WithDist([]float64{})
	require.True(t, empty.HasDist())
	require.False(t, empty.Equal(fwstate.New(0)))
}

func TestPresentationHelpers(t *testing.T) {
	t.Parallel()

	s := fwstate.New(2)
	_, ok := s.DistMatrix()
	require.False(t, ok)
	_, ok = s.NextRows()
	require.False(t, ok)

	s = s.WithDist([]float64{0, math.Inf(1), 3, 0}).WithNext([]int{0, -1, 0, 1})
	m, ok := s.DistMatrix()
	require.True(t, ok)
	v, err := m.At(1, 0)
	require.NoError(t, err)
	require.Equal(t, 3.0, v)
	v, err = m.At(0, 1)
	require.NoError(t, err)
	require.True(t, math.IsInf(v, 1))

	rows, ok := s.NextRows()
	require.True(t, ok)
	require.Equal(t, [][]int{{0, -1}, {0, 1}}, rows)
}

func TestIsEvaluated(t *testing.T) {
	t.Parallel()

	s := fwstate.New(3).
		WithRegister(fwstate.RegK, 0).
		WithRegister(fwstate.RegI, 1).
		WithRegister(fwstate.RegJ, 2)

	require.True(t, s.IsEvaluated(1, 2)) // (i,j)
	require.True(t, s.IsEvaluated(1, 0)) // (i,k)
	require.True(t, s.IsEvaluated(0, 2)) // (k,j)
	require.False(t, s.IsEvaluated(2, 1))

	init := fwstate.New(3).WithRegister(fwstate.RegU, 2).WithRegister(fwstate.RegV, 0)
	require.True(t, init.IsEvaluated(2, 0))
	require.False(t, init.IsEvaluated(0, 2))
}

func TestString(t *testing.T) {
	t.Parallel()

	s := fwstate.New(3).WithRegister(fwstate.RegU, 1).WithDist(make([]float64, 9))
	require.Equal(t, "step=0 line=1 done=false V=3 u=1 dist", s.String())
	require.Equal(t, "Reg(9)", fwstate.Reg(9).String())
}
