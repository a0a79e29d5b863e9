// SPDX-License-Identifier: MIT

package program

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/fwstep/fwstate"
	"github.com/katalvlaran/fwstep/matrix"
)

// seq as a transition result means "continue with the following line".
const seq Line = 0

// transition applies one line to s and returns the successor state and the
// next line (seq for current+1). adj has already been shape-checked.
type transition func(s fwstate.State, adj *matrix.Dense) (fwstate.State, Line)

// table is indexed by Line; nil entries are non-executable.
var table = [LineHalt]transition{
	LineEnter: func(s fwstate.State, _ *matrix.Dense) (fwstate.State, Line) {
		return s, seq
	},
	LineInitDist: func(s fwstate.State, adj *matrix.Dense) (fwstate.State, Line) {
		return s.WithDist(adj.Flat()), seq
	},
	LineInitNext: func(s fwstate.State, _ *matrix.Dense) (fwstate.State, Line) {
		next := make([]int, s.N()*s.N())
		for idx := range next {
			next[idx] = fwstate.NoVertex
		}
		return s.WithNext(next), seq
	},
	LineLoopU: func(s fwstate.State, _ *matrix.Dense) (fwstate.State, Line) {
		return advance(s, fwstate.RegU, LineLoopK)
	},
	LineLoopV: func(s fwstate.State, _ *matrix.Dense) (fwstate.State, Line) {
		return advance(s, fwstate.RegV, LineLoopU)
	},
	LineIfSelf: func(s fwstate.State, _ *matrix.Dense) (fwstate.State, Line) {
		if mustReg(s, fwstate.RegU) == mustReg(s, fwstate.RegV) {
			return s, seq
		}
		return s, LineIfEdge
	},
	LineSelfDist: func(s fwstate.State, _ *matrix.Dense) (fwstate.State, Line) {
		mustDist(s)
		v := mustReg(s, fwstate.RegV)
		return s.WithDistAt(v, v, 0), seq
	},
	LineSelfNext: func(s fwstate.State, _ *matrix.Dense) (fwstate.State, Line) {
		mustNext(s)
		v := mustReg(s, fwstate.RegV)
		return s.WithNextAt(v, v, v), LineLoopV
	},
	LineIfEdge: func(s fwstate.State, adj *matrix.Dense) (fwstate.State, Line) {
		w, _ := adj.At(mustReg(s, fwstate.RegU), mustReg(s, fwstate.RegV))
		if w != 0 {
			return s, seq
		}
		return s, LineNoEdgeDist
	},
	LineEdgeNext: func(s fwstate.State, _ *matrix.Dense) (fwstate.State, Line) {
		mustNext(s)
		u, v := mustReg(s, fwstate.RegU), mustReg(s, fwstate.RegV)
		return s.WithNextAt(u, v, v), LineLoopV
	},
	LineNoEdgeDist: func(s fwstate.State, _ *matrix.Dense) (fwstate.State, Line) {
		mustDist(s)
		u, v := mustReg(s, fwstate.RegU), mustReg(s, fwstate.RegV)
		return s.WithDistAt(u, v, math.Inf(1)), seq
	},
	LineNoEdgeNext: func(s fwstate.State, _ *matrix.Dense) (fwstate.State, Line) {
		mustNext(s)
		u, v := mustReg(s, fwstate.RegU), mustReg(s, fwstate.RegV)
		return s.WithNextAt(u, v, fwstate.NoVertex), LineLoopV
	},
	LineLoopK: func(s fwstate.State, _ *matrix.Dense) (fwstate.State, Line) {
		return advance(s, fwstate.RegK, LineDone)
	},
	LineLoopI: func(s fwstate.State, _ *matrix.Dense) (fwstate.State, Line) {
		return advance(s, fwstate.RegI, LineLoopK)
	},
	LineLoopJ: func(s fwstate.State, _ *matrix.Dense) (fwstate.State, Line) {
		return advance(s, fwstate.RegJ, LineLoopI)
	},
	LineIfShorter: func(s fwstate.State, _ *matrix.Dense) (fwstate.State, Line) {
		mustDist(s)
		i, j, k := mustReg(s, fwstate.RegI), mustReg(s, fwstate.RegJ), mustReg(s, fwstate.RegK)
		if s.DistAt(i, j) > s.DistAt(i, k)+s.DistAt(k, j) {
			return s, seq
		}
		return s, LineLoopJ
	},
	LineRelaxDist: func(s fwstate.State, _ *matrix.Dense) (fwstate.State, Line) {
		mustDist(s)
		i, j, k := mustReg(s, fwstate.RegI), mustReg(s, fwstate.RegJ), mustReg(s, fwstate.RegK)
		return s.WithDistAt(i, j, s.DistAt(i, k)+s.DistAt(k, j)), seq
	},
	LineRelaxNext: func(s fwstate.State, _ *matrix.Dense) (fwstate.State, Line) {
		mustNext(s)
		i, j, k := mustReg(s, fwstate.RegI), mustReg(s, fwstate.RegJ), mustReg(s, fwstate.RegK)
		return s.WithNextAt(i, j, s.NextAt(i, k)), LineLoopJ
	},
	LineDone: func(s fwstate.State, _ *matrix.Dense) (fwstate.State, Line) {
		return s.WithDone(true), LineHalt
	},
}

// advance implements a counted loop header: unset → 0 → … → V-1 → unset.
// On exit the register is cleared and control jumps to exit.
func advance(s fwstate.State, r fwstate.Reg, exit Line) (fwstate.State, Line) {
	x := 0
	if cur, ok := s.Reg(r); ok {
		x = cur + 1
	}
	if x >= s.N() {
		return s.WithoutRegister(r), exit
	}
	return s.WithRegister(r, x), seq
}

func mustReg(s fwstate.State, r fwstate.Reg) int {
	v, ok := s.Reg(r)
	if !ok || v >= s.N() {
		panic(invariantf("register %s=%d read at line %d with V=%d", r, v, s.Line(), s.N()))
	}
	return v
}

func mustDist(s fwstate.State) {
	if !s.HasDist() {
		panic(invariantf("dist read at line %d before initialisation", s.Line()))
	}
}

func mustNext(s fwstate.State) {
	if !s.HasNext() {
		panic(invariantf("next read at line %d before initialisation", s.Line()))
	}
}

func checkShape(s fwstate.State, adj *matrix.Dense) error {
	if adj == nil {
		return fmt.Errorf("%w: nil adjacency", ErrShapeMismatch)
	}
	if r, c := adj.Shape(); r != s.N() || c != s.N() {
		return fmt.Errorf("%w: adjacency %dx%d, state V=%d", ErrShapeMismatch, r, c, s.N())
	}
	return nil
}

// Initial validates adj and returns the step-0 state for it.
//
// Errors: matrix.ErrNilMatrix, matrix.ErrNonSquare, matrix.ErrInvalidWeight.
func Initial(adj *matrix.Dense) (fwstate.State, error) {
	if err := matrix.ValidateAdjacency(adj); err != nil {
		return fwstate.State{}, fmt.Errorf("Initial: %w", err)
	}
	return fwstate.New(adj.Rows()), nil
}

// Step executes the line at s.Line() and returns the successor state with
// the step counter incremented. s itself is never modified.
//
// Errors: ErrAlreadyDone (s returned unchanged), ErrShapeMismatch.
// Complexity: O(1) for control lines, O(V²) for lines that write a table.
func Step(s fwstate.State, adj *matrix.Dense) (fwstate.State, error) {
	if s.Done() {
		return s, ErrAlreadyDone
	}
	if err := checkShape(s, adj); err != nil {
		return s, err
	}
	cur := s.Line()
	if !IsExecutable(cur) {
		panic(invariantf("no transition for line %d", cur))
	}
	out, next := table[cur](s, adj)
	if next == seq {
		next = cur + 1
	}
	return out.WithLine(next).WithStep(s.Step() + 1), nil
}

// Run steps s until done, calling visit (if non-nil) with every produced
// state. Returning false from visit stops early. ctx is checked between steps.
//
// Returns the last produced state (s when nothing ran). A state that is
// already done is returned with a nil error.
func Run(ctx context.Context, s fwstate.State, adj *matrix.Dense, visit func(fwstate.State) bool) (fwstate.State, error) {
	if err := checkShape(s, adj); err != nil {
		return s, err
	}
	for !s.Done() {
		if err := ctx.Err(); err != nil {
			return s, err
		}
		next, err := Step(s, adj)
		if err != nil {
			return s, err
		}
		s = next
		if visit != nil && !visit(s) {
			break
		}
	}
	return s, nil
}

// EstimateSteps returns 2V³ + 7V² + 3V + 6, the exact step count of a graph
// with no edges and no relaxations. Every edge saves one step and every
// relaxation costs two.
func EstimateSteps(n int) int {
	if n < 0 {
		n = 0
	}
	return 2*n*n*n + 7*n*n + 3*n + 6
}

// CountSteps returns the exact step count for a run over a graph with the
// given directed off-diagonal edge count and relaxation count.
func CountSteps(n, edges, relaxations int) int {
	return EstimateSteps(n) - edges + 2*relaxations
}
