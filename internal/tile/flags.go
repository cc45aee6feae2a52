package tile

import "strings"

// Flag is one custom state exposed for styling.
type Flag uint8

const (
	FlagPlaceholder Flag = 1 << iota
	FlagCurrent
	FlagUnevaluated
	FlagEvaluated
	FlagCorrect
	FlagPresent
	FlagAbsent
)

var flagNames = []struct {
	flag Flag
	name string
}{
	{FlagPlaceholder, "--placeholder"},
	{FlagCurrent, "--current"},
	{FlagUnevaluated, "--unevaluated"},
	{FlagEvaluated, "--evaluated"},
	{FlagCorrect, "--correct"},
	{FlagPresent, "--present"},
	{FlagAbsent, "--absent"},
}

// Flags is the set of custom states of a tile.
type Flags Flag

// Has reports whether f is set.
func (fs Flags) Has(f Flag) bool { return Flag(fs)&f != 0 }

// Names returns the custom state names in declaration order.
func (fs Flags) Names() []string {
	var out []string
	for _, fn := range flagNames {
		if fs.Has(fn.flag) {
			out = append(out, fn.name)
		}
	}
	return out
}

func (fs Flags) String() string { return strings.Join(fs.Names(), " ") }

// ComputeFlags derives the display state from whether a letter is shown and
// the tile's normalized state.
func ComputeFlags(hasLetter bool, s State) Flags {
	if !hasLetter {
		if s == StateCurrent {
			return Flags(FlagCurrent)
		}
		return Flags(FlagPlaceholder)
	}
	switch s {
	case StateCurrent:
		return Flags(FlagCurrent | FlagUnevaluated)
	case StateCorrect:
		return Flags(FlagEvaluated | FlagCorrect)
	case StatePresent:
		return Flags(FlagEvaluated | FlagPresent)
	case StateAbsent:
		return Flags(FlagEvaluated | FlagAbsent)
	default:
		return Flags(FlagUnevaluated)
	}
}
