// SPDX-License-Identifier: MIT

package fwstate

import (
	"encoding"
	"encoding/binary"
	"fmt"
	"math"
)

// Field offsets of the packed layout (see package doc).
const (
	offStep  = 0
	offLine  = 4
	offFlags = 5
	offV     = 6
	offRegs  = 8
	offDist  = 18

	int16Bytes = 2

	flagDone    = 1 << 0
	flagHasDist = 1 << 1
	flagHasNext = 1 << 2
)

const (
	// DistInfSentinel is the packed value of a +Inf distance. Finite distances
	// must stay strictly below it.
	DistInfSentinel = math.MaxInt16

	// NullNextSentinel is the packed value of a NoVertex next hop.
	NullNextSentinel = -1

	// MaxVertices bounds V so every vertex index fits an int16 next-hop cell.
	MaxVertices = math.MaxInt16
)

var order = binary.BigEndian

var (
	_ encoding.BinaryMarshaler   = State{}
	_ encoding.BinaryUnmarshaler = (*State)(nil)
)

// EncodedSize returns the packed size of any state with n vertices.
// The buffer always reserves both tables so its size depends on n only.
func EncodedSize(n int) int {
	return offDist + 2*n*n*int16Bytes
}

func nextOffset(n int) int { return offDist + n*n*int16Bytes }

// Encode is MarshalBinary without the interface.
func Encode(s State) ([]byte, error) { return s.MarshalBinary() }

// Decode is UnmarshalBinary into a fresh State.
func Decode(buf []byte) (State, error) {
	var s State
	err := s.UnmarshalBinary(buf)
	return s, err
}

// MarshalBinary packs s into its fixed layout.
//
// Errors: ErrUnencodable when V exceeds MaxVertices or a finite distance is
// non-integral, outside the int16 range, or collides with DistInfSentinel.
func (s State) MarshalBinary() ([]byte, error) {
	if s.n < 0 || s.n > MaxVertices {
		return nil, fmt.Errorf("%w: V=%d exceeds %d", ErrUnencodable, s.n, MaxVertices)
	}
	cells := s.n * s.n
	if (s.dist != nil && len(s.dist) != cells) || (s.next != nil && len(s.next) != cells) {
		return nil, fmt.Errorf("%w: table length does not match V=%d", ErrUnencodable, s.n)
	}
	buf := make([]byte, EncodedSize(s.n))

	order.PutUint32(buf[offStep:], s.step)
	buf[offLine] = byte(s.line)
	var flags byte
	if s.done {
		flags |= flagDone
	}
	if s.dist != nil {
		flags |= flagHasDist
	}
	if s.next != nil {
		flags |= flagHasNext
	}
	buf[offFlags] = flags
	order.PutUint16(buf[offV:], uint16(s.n))
	for r, v := range s.regs {
		order.PutUint16(buf[offRegs+r*int16Bytes:], uint16(v))
	}

	for k, d := range s.dist {
		packed, err := packDist(d)
		if err != nil {
			return nil, fmt.Errorf("dist[%d]: %w", k, err)
		}
		order.PutUint16(buf[offDist+k*int16Bytes:], uint16(packed))
	}
	base := nextOffset(s.n)
	for k, nx := range s.next {
		packed := int16(NullNextSentinel)
		if nx != NoVertex {
			packed = int16(nx)
		}
		order.PutUint16(buf[base+k*int16Bytes:], uint16(packed))
	}

	return buf, nil
}

func packDist(d float64) (int16, error) {
	if isInf(d) {
		return DistInfSentinel, nil
	}
	if math.IsNaN(d) || d != math.Trunc(d) || d >= DistInfSentinel || d < math.MinInt16 {
		return 0, fmt.Errorf("%w: distance %v", ErrUnencodable, d)
	}
	return int16(d), nil
}

// UnmarshalBinary restores a state packed by MarshalBinary.
//
// Errors: ErrCorrupt for a buffer of the wrong size, a register or next hop
// outside [0,V), or unknown flag bits.
func (s *State) UnmarshalBinary(buf []byte) error {
	if len(buf) < offDist {
		return fmt.Errorf("%w: %d bytes, header needs %d", ErrCorrupt, len(buf), offDist)
	}
	n := int(order.Uint16(buf[offV:]))
	if len(buf) != EncodedSize(n) {
		return fmt.Errorf("%w: %d bytes, V=%d needs %d", ErrCorrupt, len(buf), n, EncodedSize(n))
	}
	flags := buf[offFlags]
	if flags&^(flagDone|flagHasDist|flagHasNext) != 0 {
		return fmt.Errorf("%w: flags %#x", ErrCorrupt, flags)
	}

	out := State{
		step: order.Uint32(buf[offStep:]),
		line: Line(buf[offLine]),
		done: flags&flagDone != 0,
		n:    n,
	}
	for r := range out.regs {
		v := int16(order.Uint16(buf[offRegs+r*int16Bytes:]))
		if v != Unset && (v < 0 || int(v) >= n) {
			return fmt.Errorf("%w: register %s=%d with V=%d", ErrCorrupt, Reg(r), v, n)
		}
		out.regs[r] = v
	}

	if flags&flagHasDist != 0 {
		out.dist = make([]float64, n*n)
		for k := range out.dist {
			v := int16(order.Uint16(buf[offDist+k*int16Bytes:]))
			if v == DistInfSentinel {
				out.dist[k] = math.Inf(1)
			} else {
				out.dist[k] = float64(v)
			}
		}
	}
	if flags&flagHasNext != 0 {
		base := nextOffset(n)
		out.next = make([]int, n*n)
		for k := range out.next {
			v := int16(order.Uint16(buf[base+k*int16Bytes:]))
			switch {
			case v == NullNextSentinel:
				out.next[k] = NoVertex
			case v < 0 || int(v) >= n:
				return fmt.Errorf("%w: next[%d]=%d with V=%d", ErrCorrupt, k, v, n)
			default:
				out.next[k] = int(v)
			}
		}
	}

	*s = out
	return nil
}

// PeekStep reads the embedded step counter without decoding the tables.
func PeekStep(buf []byte) (uint32, error) {
	if len(buf) < offDist {
		return 0, fmt.Errorf("%w: %d bytes, header needs %d", ErrCorrupt, len(buf), offDist)
	}
	return order.Uint32(buf[offStep:]), nil
}
