// internal/board/board.go
//
// Boards are the illustrations embedded in blog posts: a title plus an
// ordered list of row specs. A RowSpec carries the row's textual attributes
// verbatim so it renders exactly as the equivalent markup would.
//
// Responsibilities:
//   - Validate boards before they are stored (title, row count, row length).
//   - Build attached rows on a loop and drain it.
//   - Load boards from YAML files.

package board

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/robalobadob/wordle-elements/internal/element"
	"github.com/robalobadob/wordle-elements/internal/loop"
	"github.com/robalobadob/wordle-elements/internal/row"
	"github.com/robalobadob/wordle-elements/internal/tile"
)

const (
	MaxRows     = 16
	MaxLength   = 32
	MaxTitleLen = 120
)

var (
	ErrNotFound = errors.New("board not found")
	ErrInvalid  = errors.New("invalid board")
)

// RowSpec is one row's attributes and content.
type RowSpec struct {
	Length      string `json:"length,omitempty" yaml:"length,omitempty"`
	Current     bool   `json:"current,omitempty" yaml:"current,omitempty"`
	Evaluations string `json:"evaluations,omitempty" yaml:"evaluations,omitempty"`
	TileElement string `json:"tileElement,omitempty" yaml:"tileElement,omitempty"`
	Guess       string `json:"guess,omitempty" yaml:"guess,omitempty"`
}

// Board is a stored illustration.
type Board struct {
	ID        string    `json:"id" yaml:"id,omitempty"`
	AuthorID  string    `json:"authorId,omitempty" yaml:"-"`
	Title     string    `json:"title" yaml:"title"`
	Rows      []RowSpec `json:"rows" yaml:"rows"`
	CreatedAt time.Time `json:"createdAt" yaml:"-"`
}

// Validate enforces the storage limits.
func (b *Board) Validate() error {
	b.Title = strings.TrimSpace(b.Title)
	if b.Title == "" || len(b.Title) > MaxTitleLen {
		return fmt.Errorf("%w: title must be 1–%d chars", ErrInvalid, MaxTitleLen)
	}
	if len(b.Rows) == 0 || len(b.Rows) > MaxRows {
		return fmt.Errorf("%w: need 1–%d rows", ErrInvalid, MaxRows)
	}
	for i, rs := range b.Rows {
		if err := rs.Validate(); err != nil {
			return fmt.Errorf("row %d: %w", i, err)
		}
	}
	return nil
}

// Validate rejects rows that would render more than MaxLength tiles.
func (rs RowSpec) Validate() error {
	a := element.Attr{}
	if rs.Length != "" {
		a = element.Of(rs.Length)
	}
	if n := row.ParseLength(a); n > MaxLength {
		return fmt.Errorf("%w: length %d exceeds %d", ErrInvalid, n, MaxLength)
	}
	return nil
}

// Apply writes rs onto r the way markup attributes would arrive.
func (rs RowSpec) Apply(r *row.Row) {
	if rs.Length != "" {
		r.SetAttribute(row.AttrLength, rs.Length)
	}
	if rs.Current {
		r.SetCurrent(true)
	}
	if rs.Evaluations != "" {
		r.SetAttribute(row.AttrEvaluations, rs.Evaluations)
	}
	if rs.TileElement != "" {
		r.SetAttribute(row.AttrTileElement, rs.TileElement)
	}
	if rs.Guess != "" {
		r.SetGuess(rs.Guess)
	}
}

// Build creates one attached, fully rendered row per spec.
func (b *Board) Build(f tile.Factory) []*row.Row {
	l := loop.New()
	rows := make([]*row.Row, 0, len(b.Rows))
	for _, rs := range b.Rows {
		r := row.New(l, row.WithFactory(f))
		rs.Apply(r)
		r.Attach()
		rows = append(rows, r)
	}
	l.Drain()
	return rows
}

// LoadYAML decodes a board definition.
func LoadYAML(r io.Reader) (*Board, error) {
	var b Board
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&b); err != nil {
		return nil, fmt.Errorf("decode board: %w", err)
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}
