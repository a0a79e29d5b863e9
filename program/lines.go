// SPDX-License-Identifier: MIT

package program

import "github.com/katalvlaran/fwstep/fwstate"

// Line is a program counter value.
type Line = fwstate.Line

// Executable lines of the listing, plus the terminal LineHalt.
const (
	LineEnter      Line = 1
	LineInitDist   Line = 2
	LineInitNext   Line = 3
	LineLoopU      Line = 4
	LineLoopV      Line = 5
	LineIfSelf     Line = 6
	LineSelfDist   Line = 7
	LineSelfNext   Line = 8
	LineIfEdge     Line = 9
	LineEdgeNext   Line = 10
	LineNoEdgeDist Line = 12
	LineNoEdgeNext Line = 13
	LineLoopK      Line = 15
	LineLoopI      Line = 16
	LineLoopJ      Line = 17
	LineIfShorter  Line = 18
	LineRelaxDist  Line = 19
	LineRelaxNext  Line = 20
	LineDone       Line = 22

	// LineHalt is where the program counter rests after LineDone. It has no transition.
	LineHalt Line = 23
)

// SourceLine is one row of the pseudocode listing.
type SourceLine struct {
	Line       Line
	Text       string
	Indent     int
	Executable bool
}

var listing = [...]struct {
	indent int
	text   string
}{
	{0, "procedure FloydWarshall(adj)"},
	{1, "dist ← copy(adj)"},
	{1, "next ← V×V array of null"},
	{1, "for u ← 0 to V−1"},
	{2, "for v ← 0 to V−1"},
	{3, "if u = v then"},
	{4, "dist[v][v] ← 0"},
	{4, "next[v][v] ← v"},
	{3, "else if adj[u][v] ≠ 0 then"},
	{4, "next[u][v] ← v"},
	{3, "else"},
	{4, "dist[u][v] ← ∞"},
	{4, "next[u][v] ← null"},
	{3, "end if"},
	{1, "for k ← 0 to V−1"},
	{2, "for i ← 0 to V−1"},
	{3, "for j ← 0 to V−1"},
	{4, "if dist[i][j] > dist[i][k] + dist[k][j] then"},
	{5, "dist[i][j] ← dist[i][k] + dist[k][j]"},
	{5, "next[i][j] ← next[i][k]"},
	{4, "end if"},
	{1, "return dist, next"},
}

// Source returns the numbered pseudocode listing, first line first.
// The slice is freshly allocated on every call.
func Source() []SourceLine {
	out := make([]SourceLine, len(listing))
	for idx, row := range listing {
		l := Line(idx + 1)
		out[idx] = SourceLine{Line: l, Text: row.text, Indent: row.indent, Executable: IsExecutable(l)}
	}
	return out
}

// Text returns the listing text of l, or "" when l is outside the listing.
func Text(l Line) string {
	if l < LineEnter || int(l) > len(listing) {
		return ""
	}
	return listing[l-1].text
}

// IsExecutable reports whether l has a transition. Structural lines such as
// "end if" and the terminal LineHalt do not.
func IsExecutable(l Line) bool {
	return int(l) < len(table) && table[l] != nil
}
