package history_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fwstep/history"
)

func TestRing_AppendAndEvict(t *testing.T) {
	t.Parallel()

	r := history.NewRing[string](3)
	require.Equal(t, 3, r.Cap())
	_, _, ok := r.Range()
	require.False(t, ok)

	for step, v := range []string{"a", "b", "c", "d", "e"} {
		r.Push(uint32(10+step), v)
	}
	require.Equal(t, 3, r.Len())
	first, last, ok := r.Range()
	require.True(t, ok)
	require.Equal(t, uint32(12), first)
	require.Equal(t, uint32(14), last)

	_, ok = r.Get(11)
	require.False(t, ok)
	v, ok := r.Get(13)
	require.True(t, ok)
	require.Equal(t, "d", v)

	step, latest, ok := r.Latest()
	require.True(t, ok)
	require.Equal(t, uint32(14), step)
	require.Equal(t, "e", latest)
}

func TestRing_OverwriteAndRestart(t *testing.T) {
	t.Parallel()

	r := history.NewRing[int](4)
	r.Push(0, 0)
	r.Push(1, 1)
	r.Push(2, 2)

	r.Push(1, 100)
	v, _ := r.Get(1)
	require.Equal(t, 100, v)
	require.Equal(t, 3, r.Len())

	// Discontiguous push restarts the window.
	r.Push(9, 9)
	require.Equal(t, 1, r.Len())
	first, last, _ := r.Range()
	require.Equal(t, uint32(9), first)
	require.Equal(t, uint32(9), last)
	_, ok := r.Get(2)
	require.False(t, ok)

	r.Clear()
	require.Equal(t, 0, r.Len())
	_, _, ok = r.Latest()
	require.False(t, ok)
}

func TestRing_MinimumCapacity(t *testing.T) {
	t.Parallel()

	r := history.NewRing[int](0)
	require.Equal(t, 1, r.Cap())
	r.Push(5, 5)
	r.Push(6, 6)
	require.Equal(t, 1, r.Len())
	v, ok := r.Get(6)
	require.True(t, ok)
	require.Equal(t, 6, v)
}

func TestRing_WrapsManyTimes(t *testing.T) {
	t.Parallel()

	r := history.NewRing[uint32](7)
	for s := uint32(0); s < 1000; s++ {
		r.Push(s, s*2)
	}
	for s := uint32(993); s < 1000; s++ {
		v, ok := r.Get(s)
		require.True(t, ok)
		require.Equal(t, s*2, v)
	}
}

func TestCheckpoints_FloorAndFirstWriteWins(t *testing.T) {
	t.Parallel()

	c := history.NewCheckpoints()
	_, _, ok := c.Floor(100)
	require.False(t, ok)

	require.True(t, c.Put(0, []byte{0}))
	require.True(t, c.Put(50, []byte{50}))
	require.True(t, c.Put(20, []byte{20}))
	require.False(t, c.Put(20, []byte{99}))
	require.Equal(t, 3, c.Len())

	step, buf, ok := c.Floor(49)
	require.True(t, ok)
	require.Equal(t, uint32(20), step)
	require.Equal(t, []byte{20}, buf)

	step, _, ok = c.Floor(50)
	require.True(t, ok)
	require.Equal(t, uint32(50), step)

	got, ok := c.Get(20)
	require.True(t, ok)
	require.Equal(t, []byte{20}, got)
	_, ok = c.Get(21)
	require.False(t, ok)

	top, ok := c.Max()
	require.True(t, ok)
	require.Equal(t, uint32(50), top)
}

func TestCheckpoints_CompleteAndClear(t *testing.T) {
	t.Parallel()

	c := history.NewCheckpoints()
	_, ok := c.Final()
	require.False(t, ok)

	c.Put(7, nil)
	c.Complete(7)
	final, ok := c.Final()
	require.True(t, ok)
	require.Equal(t, uint32(7), final)

	c.Clear()
	require.Equal(t, 0, c.Len())
	_, ok = c.Final()
	require.False(t, ok)
	_, ok = c.Max()
	require.False(t, ok)
}

func TestCheckpoints_ConcurrentWriters(t *testing.T) {
	t.Parallel()

	c := history.NewCheckpoints()
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for s := uint32(0); s < 200; s++ {
				c.Put(s, []byte{byte(w)})
				c.Floor(s)
			}
		}(w)
	}
	wg.Wait()
	require.Equal(t, 200, c.Len())
}
