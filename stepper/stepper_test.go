package stepper_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/fwstep/config"
	"github.com/katalvlaran/fwstep/fwstate"
	"github.com/katalvlaran/fwstep/logger"
	"github.com/katalvlaran/fwstep/matrix"
	"github.com/katalvlaran/fwstep/stepper"
	"github.com/katalvlaran/fwstep/tilemap"
)

const (
	smallMap = "..\n.."
	roomMap  = "...\n.#.\n..."
)

func build(t testing.TB, text string) *matrix.Dense {
	t.Helper()
	adj, err := tilemap.Build(text)
	require.NoError(t, err)
	return adj
}

func newStepper(t testing.TB, adj *matrix.Dense, opts ...stepper.Option) *stepper.Stepper {
	t.Helper()
	opts = append([]stepper.Option{stepper.WithLogger(logger.Discard()), stepper.WithWorker(false)}, opts...)
	st := stepper.New(opts...)
	require.NoError(t, st.Initialize(adj))
	t.Cleanup(func() { _ = st.Close() })
	return st
}

// forwardTrace steps st from its current state to done and returns every
// state, index = step.
func forwardTrace(t testing.TB, st *stepper.Stepper) []fwstate.State {
	t.Helper()
	trace := []fwstate.State{st.Current()}
	for {
		s, err := st.StepForward()
		if err != nil {
			require.ErrorIs(t, err, stepper.ErrAlreadyDone)
			return trace
		}
		require.Equal(t, uint32(len(trace)), s.Step())
		trace = append(trace, s)
	}
}

type StepperSuite struct {
	suite.Suite
	adj   *matrix.Dense
	trace []fwstate.State
}

func (s *StepperSuite) SetupTest() {
	s.adj = build(s.T(), smallMap)
	s.trace = forwardTrace(s.T(), newStepper(s.T(), s.adj))
}

func (s *StepperSuite) TestForwardTraceFinishes() {
	final := s.trace[len(s.trace)-1]
	s.True(final.Done())
	dist, _, err := matrix.APSP(s.adj)
	s.Require().NoError(err)
	s.Equal(dist.Flat(), final.Dist())
}

// Replaying N forward steps equals seek(N) on a cold stepper, for every N.
func (s *StepperSuite) TestDeterminism() {
	for n := range s.trace {
		cold := newStepper(s.T(), s.adj, stepper.WithMaxCheckpoints(4))
		got, err := cold.Seek(n)
		s.Require().NoError(err)
		s.Require().True(s.trace[n].Equal(got), "step %d: want %v got %v", n, s.trace[n], got)
	}
}

// Walking back from the end reproduces every forward state, whatever the
// ring capacity.
func (s *StepperSuite) TestReversibility() {
	for _, maxCP := range []int{1, 3, 50, 100000} {
		st := newStepper(s.T(), s.adj, stepper.WithMaxCheckpoints(maxCP))
		forwardTrace(s.T(), st)
		for n := len(s.trace) - 2; n >= 0; n-- {
			got, err := st.StepBackward()
			s.Require().NoError(err)
			s.Require().True(s.trace[n].Equal(got), "maxCheckpoints=%d step %d", maxCP, n)
		}
		_, err := st.StepBackward()
		s.ErrorIs(err, stepper.ErrNoHistory)
	}
}

func (s *StepperSuite) TestBackwardThenForwardReplaysRing() {
	st := newStepper(s.T(), s.adj)
	for n := 0; n < 40; n++ {
		_, err := st.StepForward()
		s.Require().NoError(err)
	}
	for n := 0; n < 10; n++ {
		_, err := st.StepBackward()
		s.Require().NoError(err)
	}
	for n := 31; n <= 40; n++ {
		got, err := st.StepForward()
		s.Require().NoError(err)
		s.True(s.trace[n].Equal(got))
	}
}

func (s *StepperSuite) TestSeekIdempotentAndStable() {
	st := newStepper(s.T(), s.adj, stepper.WithMaxCheckpoints(5))
	last := len(s.trace) - 1
	pairs := [][2]int{{10, 200}, {last, 3}, {77, 76}, {0, last}}
	for _, p := range pairs {
		a, err := st.Seek(p[0])
		s.Require().NoError(err)
		again, _ := st.Seek(p[0])
		s.True(a.Equal(again))

		_, _ = st.Seek(p[1])
		back, _ := st.Seek(p[0])
		s.True(a.Equal(back), "seek %d after %d", p[0], p[1])
		s.True(s.trace[p[0]].Equal(back))
	}
}

func (s *StepperSuite) TestSeekClamps() {
	st := newStepper(s.T(), s.adj)
	got, err := st.Seek(-10)
	s.Require().NoError(err)
	s.Equal(uint32(0), got.Step())

	got, err = st.Seek(1 << 30)
	s.Require().NoError(err)
	s.True(got.Done())
	s.Equal(s.trace[len(s.trace)-1].Step(), got.Step())

	total, exact := st.Total()
	s.True(exact)
	s.Equal(len(s.trace)-1, total)

	got, _ = st.Seek(1 << 30)
	s.Equal(uint32(total), got.Step())
}

func (s *StepperSuite) TestResetKeepsCheckpoints() {
	st := newStepper(s.T(), s.adj, stepper.WithMaxCheckpoints(10))
	forwardTrace(s.T(), st)
	before := st.CheckpointCount()

	got, err := st.Reset()
	s.Require().NoError(err)
	s.True(s.trace[0].Equal(got))
	s.Equal(before, st.CheckpointCount())
	_, err = st.StepBackward()
	s.ErrorIs(err, stepper.ErrNoHistory)
}

func (s *StepperSuite) TestAlreadyDoneIsNoOp() {
	st := newStepper(s.T(), s.adj)
	forwardTrace(s.T(), st)
	before := st.Current()
	got, err := st.StepForward()
	s.ErrorIs(err, stepper.ErrAlreadyDone)
	s.True(before.Equal(got))
	s.True(before.Equal(st.Current()))
}

func (s *StepperSuite) TestProgress() {
	st := newStepper(s.T(), s.adj)
	s.Equal(0.0, st.Progress())
	s.Equal(0, st.StepIndexFor(0))
	s.Equal(0, st.StepIndexFor(-3))

	half, err := st.SeekPercent(50)
	s.Require().NoError(err)
	s.InDelta(50, st.Progress(), 1)
	s.False(half.Done())

	end, err := st.SeekPercent(100)
	s.Require().NoError(err)
	// The estimate may undershoot; a second seek uses the exact total.
	if !end.Done() {
		end, _ = st.Seek(1 << 30)
	}
	s.True(end.Done())
	s.Equal(100.0, st.Progress())
	s.Equal(100.0, st.Buffered())
}

func TestStepperSuite(t *testing.T) {
	suite.Run(t, new(StepperSuite))
}

func TestStepper_RoomScenario(t *testing.T) {
	t.Parallel()

	st := newStepper(t, build(t, roomMap))
	final, err := st.Seek(1 << 30)
	require.NoError(t, err)
	require.True(t, final.Done())
	require.Equal(t, 4.0, final.DistAt(0, 8))

	p, err := st.ReconstructPath(0, 8)
	require.NoError(t, err)
	require.Len(t, p, 5)

	// The wall in the centre is unreachable from everywhere else.
	p, err = st.ReconstructPath(0, 4)
	require.NoError(t, err)
	require.Empty(t, p)
}

func TestStepper_PathsMatchDistances(t *testing.T) {
	t.Parallel()

	adj := build(t, "....\n.##.\n....")
	st := newStepper(t, adj)
	final, _ := st.Seek(1 << 30)
	n := final.N()
	for u := 0; u < n; u++ {
		for v := 0; v < n; v++ {
			p, err := st.ReconstructPath(u, v)
			require.NoError(t, err)
			d := final.DistAt(u, v)
			if len(p) == 0 {
				require.True(t, d > float64(n))
				continue
			}
			require.Equal(t, d, float64(len(p)-1))
			for h := 1; h < len(p); h++ {
				w, _ := adj.At(p[h-1], p[h])
				require.Equal(t, 1.0, w)
			}
		}
	}
}

func TestStepper_Errors(t *testing.T) {
	t.Parallel()

	st := stepper.New(stepper.WithLogger(logger.Discard()))
	_, err := st.StepForward()
	require.ErrorIs(t, err, stepper.ErrNotInitialized)
	_, err = st.StepBackward()
	require.ErrorIs(t, err, stepper.ErrNotInitialized)
	_, err = st.Seek(3)
	require.ErrorIs(t, err, stepper.ErrNotInitialized)
	_, err = st.Reset()
	require.ErrorIs(t, err, stepper.ErrNotInitialized)
	_, err = st.ReconstructPath(0, 0)
	require.ErrorIs(t, err, stepper.ErrNotInitialized)
	require.Equal(t, 0.0, st.Progress())
	require.Equal(t, 0.0, st.Buffered())

	require.ErrorIs(t, st.Initialize(nil), matrix.ErrNilMatrix)
	rect, _ := matrix.NewDense(2, 3)
	require.ErrorIs(t, st.Initialize(rect), matrix.ErrNonSquare)

	require.NoError(t, st.Initialize(build(t, smallMap)))
	_, err = st.ReconstructPath(0, 1)
	require.ErrorIs(t, err, stepper.ErrNotDone)
	_, err = st.StepBackward()
	require.ErrorIs(t, err, stepper.ErrNoHistory)
	require.NoError(t, st.Close())
}

func TestStepper_WorkerPrecomputes(t *testing.T) {
	t.Parallel()

	adj := build(t, roomMap)
	st := newStepper(t, adj, stepper.WithWorker(true), stepper.WithMaxCheckpoints(20))

	require.Eventually(t, func() bool { return st.Buffered() == 100 }, 10*time.Second, 5*time.Millisecond)
	total, exact := st.Total()
	require.True(t, exact)
	require.GreaterOrEqual(t, st.CheckpointCount(), 20)

	// Seeking with worker checkpoints agrees with a cold synchronous stepper.
	cold := newStepper(t, adj)
	for _, n := range []int{0, 1, total / 3, total / 2, total - 1, total} {
		want, err := cold.Seek(n)
		require.NoError(t, err)
		got, err := st.Seek(n)
		require.NoError(t, err)
		require.True(t, want.Equal(got), "step %d", n)
	}
	require.NoError(t, st.Close())
}

func TestStepper_ReinitializeSupersedesWorker(t *testing.T) {
	t.Parallel()

	st := newStepper(t, build(t, roomMap), stepper.WithWorker(true))
	first := st.Generation()

	small := build(t, smallMap)
	require.NoError(t, st.Initialize(small))
	require.NotEqual(t, first, st.Generation())
	require.Equal(t, 4, st.Current().N())

	require.Eventually(t, func() bool { return st.Buffered() == 100 }, 10*time.Second, 5*time.Millisecond)
	final, err := st.Seek(1 << 30)
	require.NoError(t, err)
	require.Equal(t, 4, final.N())
	require.True(t, final.Done())
}

func TestStepper_NonIntegralWeightsFallBackToReplay(t *testing.T) {
	t.Parallel()

	adj, err := matrix.NewDenseFromRows([][]float64{
		{0, 0.5, 0},
		{0.5, 0, 0.25},
		{0, 0.25, 0},
	})
	require.NoError(t, err)

	st := newStepper(t, adj, stepper.WithWorker(true), stepper.WithMaxCheckpoints(2))
	trace := forwardTrace(t, st)
	require.Equal(t, 0.75, trace[len(trace)-1].DistAt(0, 2))

	for _, n := range []int{5, len(trace) / 2, 1} {
		got, err := st.Seek(n)
		require.NoError(t, err)
		require.True(t, trace[n].Equal(got))
	}
	require.NoError(t, st.Close())
}

func TestStepper_ObserverAndConfig(t *testing.T) {
	t.Parallel()

	var (
		mu   sync.Mutex
		seen []uint32
	)
	cfg := config.Default()
	cfg.MaxCheckpoints = 7
	cfg.Worker = false
	st := newStepper(t, build(t, smallMap),
		stepper.FromConfig(cfg),
		stepper.WithObserver(func(s fwstate.State) {
			mu.Lock()
			seen = append(seen, s.Step())
			mu.Unlock()
		}),
	)

	_, _ = st.StepForward()
	_, _ = st.StepForward()
	_, _ = st.StepBackward()
	_, _ = st.Seek(5)
	_, _ = st.Reset()

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []uint32{0, 1, 2, 1, 5, 0}, seen)
	require.Equal(t, stepper.Interval(4, 7), st.Interval())
}

func TestInterval(t *testing.T) {
	t.Parallel()

	require.Equal(t, uint32(1), stepper.Interval(2, 1000))
	require.Equal(t, uint32(18), stepper.Interval(1, 1))
	require.Equal(t, uint32(18), stepper.Interval(1, 0))
	// 2·729 + 7·81 + 27 + 6 = 2058 over 100 checkpoints.
	require.Equal(t, uint32(21), stepper.Interval(9, 100))
}

func TestStepper_ConcurrentReaders(t *testing.T) {
	t.Parallel()

	st := newStepper(t, build(t, roomMap), stepper.WithWorker(true))
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 200; n++ {
				_ = st.Current()
				_ = st.Progress()
				_ = st.Buffered()
			}
		}()
	}
	for n := 0; n < 200; n++ {
		_, err := st.StepForward()
		require.NoError(t, err)
	}
	wg.Wait()
	require.Equal(t, uint32(200), st.Current().Step())
}

func BenchmarkSeekMiddle(b *testing.B) {
	adj := build(b, ".....\n.....\n.....")
	st := stepper.New(stepper.WithLogger(logger.Discard()), stepper.WithWorker(false))
	if err := st.Initialize(adj); err != nil {
		b.Fatal(err)
	}
	total, _ := st.Total()
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		_, _ = st.Seek((n * 7919) % total)
	}
}
