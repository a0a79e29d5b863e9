// SPDX-License-Identifier: MIT

package fwstate

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/fwstep/matrix"
)

// Line is a program counter value: an address into the numbered pseudocode.
type Line uint8

// Reg names one of the five loop registers.
type Reg uint8

// Loop registers in pseudocode order.
const (
	RegU Reg = iota
	RegV
	RegK
	RegI
	RegJ
	numRegs
)

var regNames = [numRegs]string{"u", "v", "k", "i", "j"}

// String implements fmt.Stringer.
func (r Reg) String() string {
	if r < numRegs {
		return regNames[r]
	}
	return fmt.Sprintf("Reg(%d)", uint8(r))
}

const (
	// Unset is the stored value of a register whose loop is not active.
	Unset int16 = -1

	// NoVertex marks an absent next hop ("no path").
	NoVertex = matrix.NoHop

	// FirstLine is the program counter of a freshly created state.
	FirstLine Line = 1
)

// State is one immutable snapshot of the interpreter.
// The zero value is not meaningful; use New.
type State struct {
	step uint32
	line Line
	done bool
	n    int
	dist []float64 // nil until initialised; never written after publication
	next []int     // nil until initialised; never written after publication
	regs [numRegs]int16
}

// New returns the step-0 state for a graph of n vertices: line FirstLine,
// registers unset, dist/next absent.
func New(n int) State {
	s := State{line: FirstLine, n: n}
	for r := range s.regs {
		s.regs[r] = Unset
	}
	return s
}

// Step is the number of forward steps taken since initialisation.
func (s State) Step() uint32 { return s.step }

// Line is the current program counter.
func (s State) Line() Line { return s.line }

// Done reports whether the algorithm has completed.
func (s State) Done() bool { return s.done }

// N is the vertex count (V in the pseudocode).
func (s State) N() int { return s.n }

// Reg returns a register value and whether its loop is active.
func (s State) Reg(r Reg) (int, bool) {
	v := s.regs[r]
	return int(v), v != Unset
}

// U returns register u.
func (s State) U() (int, bool) { return s.Reg(RegU) }

// V returns register v.
func (s State) V() (int, bool) { return s.Reg(RegV) }

// K returns register k.
func (s State) K() (int, bool) { return s.Reg(RegK) }

// I returns register i.
func (s State) I() (int, bool) { return s.Reg(RegI) }

// J returns register j.
func (s State) J() (int, bool) { return s.Reg(RegJ) }

// HasDist reports whether the distance table has been initialised.
func (s State) HasDist() bool { return s.dist != nil }

// HasNext reports whether the next-hop table has been initialised.
func (s State) HasNext() bool { return s.next != nil }

// Dist returns a copy of the row-major distance table, or nil.
func (s State) Dist() []float64 {
	if s.dist == nil {
		return nil
	}
	return cloneFloats(s.dist)
}

// Next returns a copy of the row-major next-hop table, or nil.
func (s State) Next() []int {
	if s.next == nil {
		return nil
	}
	return cloneInts(s.next)
}

// DistAt returns dist[row][col]. It panics if the table is absent or the
// indices are out of range; callers check HasDist first.
func (s State) DistAt(row, col int) float64 { return s.dist[matrix.Index(row, col, s.n)] }

// NextAt returns next[row][col] (NoVertex for no path). Same contract as DistAt.
func (s State) NextAt(row, col int) int { return s.next[matrix.Index(row, col, s.n)] }

// ---------- copy-on-write setters ----------

// WithStep returns s with the step counter replaced.
func (s State) WithStep(step uint32) State {
	s.step = step
	return s
}

// WithLine returns s with the program counter replaced.
func (s State) WithLine(l Line) State {
	s.line = l
	return s
}

// WithDone returns s with the done flag replaced.
func (s State) WithDone(done bool) State {
	s.done = done
	return s
}

// WithRegister returns s with register r set to v.
func (s State) WithRegister(r Reg, v int) State {
	s.regs[r] = int16(v)
	return s
}

// WithoutRegister returns s with register r unset.
func (s State) WithoutRegister(r Reg) State {
	s.regs[r] = Unset
	return s
}

// WithDist returns s owning a copy of dist (nil clears the table).
func (s State) WithDist(dist []float64) State {
	if dist == nil {
		s.dist = nil
		return s
	}
	s.dist = cloneFloats(dist)
	return s
}

// WithNext returns s owning a copy of next (nil clears the table).
func (s State) WithNext(next []int) State {
	if next == nil {
		s.next = nil
		return s
	}
	s.next = cloneInts(next)
	return s
}

// WithDistAt returns s with dist[row][col] = v; the table is copied first.
func (s State) WithDistAt(row, col int, v float64) State {
	d := cloneFloats(s.dist)
	d[matrix.Index(row, col, s.n)] = v
	s.dist = d
	return s
}

// WithNextAt returns s with next[row][col] = v; the table is copied first.
func (s State) WithNextAt(row, col, v int) State {
	nx := cloneInts(s.next)
	nx[matrix.Index(row, col, s.n)] = v
	s.next = nx
	return s
}

// Clone returns a deep copy that shares no storage with s.
func (s State) Clone() State {
	return s.WithDist(s.dist).WithNext(s.next)
}

// Equal reports structural equality. +Inf compares equal to +Inf.
func (s State) Equal(o State) bool {
	if s.step != o.step || s.line != o.line || s.done != o.done || s.n != o.n || s.regs != o.regs {
		return false
	}
	if (s.dist == nil) != (o.dist == nil) || (s.next == nil) != (o.next == nil) {
		return false
	}
	if len(s.dist) != len(o.dist) || len(s.next) != len(o.next) {
		return false
	}
	for k := range s.dist {
		if s.dist[k] != o.dist[k] {
			return false
		}
	}
	for k := range s.next {
		if s.next[k] != o.next[k] {
			return false
		}
	}
	return true
}

// ---------- presentation helpers ----------

// DistMatrix returns the distance table as an n×n Dense (+Inf allowed), or
// false when it is not initialised yet.
func (s State) DistMatrix() (*matrix.Dense, bool) {
	if s.dist == nil || s.n == 0 {
		return nil, false
	}
	m, err := matrix.NewPreparedDense(s.n, s.n, matrix.WithAllowInfDistances())
	if err != nil {
		return nil, false
	}
	if err = m.Fill(s.dist); err != nil {
		return nil, false
	}
	return m, true
}

// NextRows returns the next-hop table as [row][col], or false when absent.
func (s State) NextRows() ([][]int, bool) {
	if s.next == nil || s.n == 0 {
		return nil, false
	}
	rows, err := matrix.Reshape2D(s.next, s.n)
	if err != nil {
		return nil, false
	}
	return rows, true
}

// IsEvaluated reports whether cell (row,col) takes part in the current line:
// (u,v) during initialisation, or (i,j), (i,k), (k,j) during relaxation.
func (s State) IsEvaluated(row, col int) bool {
	pair := func(a, b Reg) bool {
		x, okx := s.Reg(a)
		y, oky := s.Reg(b)
		return okx && oky && x == row && y == col
	}
	return pair(RegU, RegV) || pair(RegI, RegJ) || pair(RegI, RegK) || pair(RegK, RegJ)
}

// String is a one-line debug rendering (tables omitted).
func (s State) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "step=%d line=%d done=%t V=%d", s.step, s.line, s.done, s.n)
	for r := Reg(0); r < numRegs; r++ {
		if v, ok := s.Reg(r); ok {
			fmt.Fprintf(&b, " %s=%d", r, v)
		}
	}
	if s.dist != nil {
		b.WriteString(" dist")
	}
	if s.next != nil {
		b.WriteString(" next")
	}
	return b.String()
}

func cloneFloats(src []float64) []float64 {
	dst := make([]float64, len(src))
	copy(dst, src)
	return dst
}

func cloneInts(src []int) []int {
	dst := make([]int, len(src))
	copy(dst, src)
	return dst
}

// isInf is the only infinity test used by the codec.
func isInf(v float64) bool { return math.IsInf(v, 1) }
