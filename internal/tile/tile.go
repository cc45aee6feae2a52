// internal/tile/tile.go
//
// Tile renders a single letter cell with an evaluation state.
// Responsibilities:
//   - Expose `letter` (first code point of the trimmed content) and `state`
//     (normalized `state` attribute) as properties.
//   - Recompute the display Flags after every content or state change.
//
// A Tile has no children; its only inputs are its text content and the
// `state` attribute.

package tile

import (
	"strings"
	"unicode/utf8"

	"github.com/robalobadob/wordle-elements/internal/element"
)

// DefaultName is the tag name the built-in tile is registered under.
const DefaultName = "wordle-tile"

// Element is what a row needs from a tile. Custom tile types registered in a
// Factory must implement it.
type Element interface {
	element.Element

	Letter() string
	SetLetter(letter string)
	State() State
	SetState(s State)
	Flags() Flags
}

// Tile is the built-in tile element.
type Tile struct {
	element.Base

	flags Flags
}

var _ Element = (*Tile)(nil)

// New constructs a tile registered as DefaultName.
func New() *Tile { return NewNamed(DefaultName) }

// NewNamed constructs a built-in tile carrying a different tag name, for
// registries that alias the default behavior.
func NewNamed(name string) *Tile {
	t := &Tile{Base: element.NewBase(name, "state")}
	t.Observe(func(string, element.Attr, element.Attr) { t.updateState() }, t.updateState)
	t.updateState()
	return t
}

// Letter returns the first code point of the trimmed content, or "".
// Invalid UTF-8 reads as U+FFFD.
func (t *Tile) Letter() string {
	s := strings.TrimSpace(t.TextContent())
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return string(r)
	}
	return s[:size]
}

// SetLetter replaces the content with letter. An empty letter clears it.
func (t *Tile) SetLetter(letter string) { t.SetTextContent(letter) }

// State returns the normalized `state` attribute.
func (t *Tile) State() State {
	v, _ := t.Attribute("state")
	return ParseState(v)
}

// SetState writes the `state` attribute, or removes it for StateNone.
func (t *Tile) SetState(s State) {
	if s == StateNone {
		t.RemoveAttribute("state")
		return
	}
	t.SetAttribute("state", string(s))
}

// Flags returns the custom states computed by the last change.
func (t *Tile) Flags() Flags { return t.flags }

func (t *Tile) updateState() {
	t.flags = ComputeFlags(t.Letter() != "", t.State())
}
