// internal/tile/state.go
//
// Evaluation state of a single tile.
// Defines:
//   - State: value of the tile's `state` attribute (current/correct/present/absent).
//   - ParseState: normalization used by both tiles and rows.

package tile

import "strings"

// State is the evaluation state rendered by a tile.
// Possible values:
//   - "":        no state.
//   - "current": the next position to be typed in the active row.
//   - "correct": letter is in the right position.
//   - "present": letter is in the word but elsewhere.
//   - "absent":  letter is not in the word.
type State string

const (
	StateNone    State = ""
	StateCurrent State = "current"
	StateCorrect State = "correct"
	StatePresent State = "present"
	StateAbsent  State = "absent"
)

// ParseState trims and lowercases s. Unknown values normalize to StateNone.
func ParseState(s string) State {
	switch st := State(strings.ToLower(strings.TrimSpace(s))); st {
	case StateCurrent, StateCorrect, StatePresent, StateAbsent:
		return st
	default:
		return StateNone
	}
}

// IsEvaluation reports whether s is the outcome of scoring a letter.
// StateCurrent is a typing cursor, not an evaluation.
func (s State) IsEvaluation() bool {
	return s == StateCorrect || s == StatePresent || s == StateAbsent
}

func (s State) String() string { return string(s) }
