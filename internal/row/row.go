// internal/row/row.go
//
// Row renders an ordered sequence of tiles sized to `length`.
// Responsibilities:
//   - Track the observed attributes (length, current, evaluations,
//     tile-element) and the guess letters taken from the text content.
//   - Coalesce triggers into at most one queued update on the Scheduler.
//   - Reconcile the child tile count and pick one of three render modes:
//     current row, evaluated row, or empty row.
//
// Notes:
//   - Malformed attribute values fall back to defaults and are never
//     reported. SetLength(0) is the one setter that fails.
//   - Tiles are only recreated wholesale when the tile element name changes.

package row

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/robalobadob/wordle-elements/internal/element"
	"github.com/robalobadob/wordle-elements/internal/loop"
	"github.com/robalobadob/wordle-elements/internal/tile"
)

// TagName is the tag a row renders as.
const TagName = "wordle-row"

// ErrIndexSize is returned when SetLength is given a value that floors to zero.
var ErrIndexSize = errors.New("index size error")

// Row is the row element.
type Row struct {
	element.Base

	sched   loop.Scheduler
	factory tile.Factory
	log     zerolog.Logger

	tiles   []tile.Element
	pending bool
	setup   bool

	length          int
	letters         []string
	evaluations     []tile.State
	tileElementName string
}

// Option configures a Row.
type Option func(*Row)

// WithFactory sets the factory used to build and validate tile elements.
func WithFactory(f tile.Factory) Option {
	return func(r *Row) { r.factory = f }
}

// WithLogger sets the logger used for input fallbacks.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Row) { r.log = l }
}

// New constructs a detached row that queues its updates on s.
func New(s loop.Scheduler, opts ...Option) *Row {
	r := &Row{
		Base:            element.NewBase(TagName, AttrLength, AttrCurrent, AttrEvaluations, AttrTileElement),
		sched:           s,
		factory:         tile.Default,
		log:             zerolog.Nop(),
		length:          DefaultLength,
		tileElementName: DefaultTileElement,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.Observe(r.attributeChanged, r.updateGuess)
	return r
}

// Attach connects the row. The first call schedules the initial render so
// that at least the default number of tiles exists.
func (r *Row) Attach() {
	r.Base.Attach()
	for _, t := range r.tiles {
		t.Attach()
	}
	if !r.setup {
		r.setup = true
		r.requestUpdate()
	}
}

// Detach disconnects the row and its tiles.
func (r *Row) Detach() {
	for _, t := range r.tiles {
		t.Detach()
	}
	r.Base.Detach()
}

func (r *Row) attributeChanged(name string, prev, next element.Attr) {
	switch name {
	case AttrLength:
		length, ok := parseLength(next)
		if !ok && next.Present {
			r.log.Debug().Str("value", next.Value).Msg("invalid row length, using default")
		}
		if length != r.length {
			r.length = length
			r.requestUpdate()
		}
	case AttrCurrent:
		if !prev.Present || !next.Present {
			r.requestUpdate()
		}
	case AttrEvaluations:
		evaluations := ParseEvaluations(next)
		if !slices.Equal(r.evaluations, evaluations) {
			r.evaluations = evaluations
			if len(evaluations) >= r.length {
				r.requestUpdate()
			}
		}
	case AttrTileElement:
		name := ParseTileElement(next)
		if _, err := r.factory.Create(name); err != nil {
			r.log.Debug().Err(err).Str("tileElement", name).Msg("invalid tile element, using default")
			name = DefaultTileElement
		}
		if name != r.tileElementName {
			r.tileElementName = name
			r.removeTiles()
			r.requestUpdate()
		}
	}
}

// Length returns the effective tile count.
func (r *Row) Length() int { return r.length }

// SetLength writes the `length` attribute from a number. Non-finite values
// and values below one use DefaultLength, except that a value flooring to
// exactly zero is rejected with ErrIndexSize.
func (r *Row) SetLength(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = DefaultLength
	}
	v = math.Floor(v)
	if v == 0 {
		return fmt.Errorf("set length on %s: the value provided (0) is not positive: %w", TagName, ErrIndexSize)
	}
	if v < 1 || v > math.MaxInt32 {
		v = DefaultLength
	}
	r.SetAttribute(AttrLength, strconv.Itoa(int(v)))
	return nil
}

// Current reports whether the row is being typed.
func (r *Row) Current() bool { return r.HasAttribute(AttrCurrent) }

func (r *Row) SetCurrent(current bool) { r.ToggleAttribute(AttrCurrent, current) }

// Guess returns at most Length letters of the tracked content.
func (r *Row) Guess() string {
	n := min(len(r.letters), r.length)
	return strings.Join(r.letters[:n], "")
}

// SetGuess replaces the row's content.
func (r *Row) SetGuess(guess string) { r.SetTextContent(guess) }

// Evaluations returns the first Length tokens of the `evaluations`
// attribute, or nil if any of them is not an evaluation.
func (r *Row) Evaluations() []tile.State {
	v, _ := r.Attribute(AttrEvaluations)
	fields := strings.Fields(v)
	if len(fields) > r.length {
		fields = fields[:r.length]
	}
	if len(fields) == 0 {
		return nil
	}
	return toEvaluations(fields)
}

// SetEvaluations writes the space-joined `evaluations` attribute.
func (r *Row) SetEvaluations(states []tile.State) {
	r.SetAttribute(AttrEvaluations, FormatEvaluations(states))
}

// TileElementName returns the validated tile tag name.
func (r *Row) TileElementName() string { return r.tileElementName }

func (r *Row) SetTileElementName(name string) { r.SetAttribute(AttrTileElement, name) }

// Config returns the normalized attribute bindings.
func (r *Row) Config() Config {
	return Config{
		Length:      r.length,
		Current:     r.Current(),
		Evaluations: r.Evaluations(),
		TileElement: r.tileElementName,
	}
}

// Tiles returns the current child tiles in order.
func (r *Row) Tiles() []tile.Element {
	return append([]tile.Element(nil), r.tiles...)
}

// Pending reports whether an update is queued.
func (r *Row) Pending() bool { return r.pending }

func (r *Row) updateGuess() {
	letters := codePoints(strings.TrimSpace(r.TextContent()))
	if !slices.Equal(r.letters, letters) {
		r.letters = letters
		r.requestUpdate()
	}
}

func codePoints(s string) []string {
	if s == "" {
		return nil
	}
	out := make([]string, 0, len(s))
	for _, c := range s {
		out = append(out, string(c))
	}
	return out
}

func (r *Row) requestUpdate() {
	if r.pending {
		return
	}
	r.pending = true
	r.sched.Queue(func() {
		defer func() { r.pending = false }()
		r.Update()
	})
}

// Update synchronously reconciles the tiles with the current state.
func (r *Row) Update() {
	for len(r.tiles) < r.length {
		r.tiles = append(r.tiles, r.newTile())
	}
	for len(r.tiles) > r.length {
		last := r.tiles[len(r.tiles)-1]
		last.Detach()
		r.tiles = r.tiles[:len(r.tiles)-1]
	}

	letters := r.letters
	if r.Current() {
		for i, t := range r.tiles {
			t.SetLetter(letterAt(letters, i))
			if i == len(letters) {
				t.SetState(tile.StateCurrent)
			} else {
				t.SetState(tile.StateNone)
			}
		}
		return
	}

	evaluations := r.Evaluations()
	if len(letters) == len(r.tiles) && len(evaluations) == len(letters) {
		for i, t := range r.tiles {
			t.SetLetter(letters[i])
			t.SetState(evaluations[i])
		}
		return
	}

	for _, t := range r.tiles {
		t.SetLetter("")
		t.SetState(tile.StateNone)
	}
}

func letterAt(letters []string, i int) string {
	if i < len(letters) {
		return letters[i]
	}
	return ""
}

func (r *Row) newTile() tile.Element {
	t, err := r.factory.Create(r.tileElementName)
	if err != nil {
		r.log.Warn().Err(err).Str("tileElement", r.tileElementName).Msg("create tile, using default")
		t = tile.New()
	}
	t.AddPart("tile")
	if r.Connected() {
		t.Attach()
	}
	return t
}

func (r *Row) removeTiles() {
	for _, t := range r.tiles {
		t.Detach()
	}
	r.tiles = nil
}
