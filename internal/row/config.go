// internal/row/config.go
//
// Typed form of the row's textual attribute bindings.
// Each parser reproduces the attribute path's normalization:
//   - length:       JS parseInt prefix semantics; absent/NaN/<=0 → DefaultLength.
//   - current:      presence only.
//   - evaluations:  whitespace-separated tokens, case-insensitive; a single
//                   invalid token empties the whole sequence.
//   - tile-element: lowercased; absent/empty → tile.DefaultName.

package row

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/robalobadob/wordle-elements/internal/element"
	"github.com/robalobadob/wordle-elements/internal/tile"
)

const (
	DefaultLength      = 5
	DefaultTileElement = tile.DefaultName
)

// Observed attribute names.
const (
	AttrLength      = "length"
	AttrCurrent     = "current"
	AttrEvaluations = "evaluations"
	AttrTileElement = "tile-element"
)

// Config is the normalized value of every observed attribute.
type Config struct {
	Length      int
	Current     bool
	Evaluations []tile.State
	TileElement string
}

// ParseLength normalizes the `length` attribute.
func ParseLength(a element.Attr) int {
	n, _ := parseLength(a)
	return n
}

// parseLength also reports whether a held a usable value.
func parseLength(a element.Attr) (int, bool) {
	if !a.Present {
		return DefaultLength, false
	}
	n, ok := parseIntPrefix(a.Value)
	if !ok || n <= 0 {
		return DefaultLength, false
	}
	return n, true
}

// parseIntPrefix mimics parseInt(s, 10): leading whitespace, an optional
// sign, then the longest run of decimal digits. Trailing garbage is ignored.
func parseIntPrefix(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil || n > math.MaxInt32 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return int(n), true
}

// ParseEvaluations normalizes the `evaluations` attribute.
func ParseEvaluations(a element.Attr) []tile.State {
	fields := strings.Fields(strings.ToLower(a.Value))
	if len(fields) == 0 {
		return nil
	}
	return toEvaluations(fields)
}

// toEvaluations converts tokens to states, or nil if any is not an evaluation.
func toEvaluations(tokens []string) []tile.State {
	out := make([]tile.State, len(tokens))
	for i, tok := range tokens {
		st := tile.State(strings.ToLower(tok))
		if !st.IsEvaluation() {
			return nil
		}
		out[i] = st
	}
	return out
}

// FormatEvaluations is the attribute form of states.
func FormatEvaluations(states []tile.State) string {
	parts := make([]string, len(states))
	for i, s := range states {
		parts[i] = string(s)
	}
	return strings.Join(parts, " ")
}

// ParseTileElement normalizes the `tile-element` attribute without validating it.
func ParseTileElement(a element.Attr) string {
	if a.Value == "" {
		return DefaultTileElement
	}
	return strings.ToLower(a.Value)
}
