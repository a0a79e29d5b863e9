// SPDX-License-Identifier: MIT

package player

// Status is the control state of a Player.
type Status uint8

const (
	// Start: step 0, nothing executed yet.
	Start Status = iota
	// Running: the play loop is stepping.
	Running
	// Paused: stopped somewhere between the first and the last step.
	Paused
	// Seeking: a scrub is in progress; resolved by SeekEnd.
	Seeking
	// End: the program has finished.
	End
)

var statusNames = [...]string{"start", "running", "paused", "seeking", "end"}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// allowed[from] is the set of statuses reachable from from.
var allowed = map[Status]map[Status]bool{
	Start:   {Running: true, Paused: true, Seeking: true},
	Running: {Start: true, Paused: true, End: true, Seeking: true},
	Paused:  {Start: true, Running: true, End: true, Seeking: true},
	End:     {Start: true, Paused: true, Seeking: true},
	Seeking: {Start: true, Paused: true, End: true, Seeking: true},
}

// CanTransition reports whether from → to is allowed.
func CanTransition(from, to Status) bool {
	return allowed[from][to]
}
