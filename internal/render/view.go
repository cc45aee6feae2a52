package render

import (
	"github.com/robalobadob/wordle-elements/internal/row"
	"github.com/robalobadob/wordle-elements/internal/tile"
)

// TileView is the JSON form of a rendered tile.
type TileView struct {
	Tag    string     `json:"tag"`
	Letter string     `json:"letter"`
	State  tile.State `json:"state,omitempty"`
	States []string   `json:"states"`
}

// RowView is the JSON form of a rendered row.
type RowView struct {
	Length      int          `json:"length"`
	Current     bool         `json:"current"`
	Guess       string       `json:"guess"`
	Evaluations []tile.State `json:"evaluations"`
	TileElement string       `json:"tileElement"`
	Tiles       []TileView   `json:"tiles"`
}

// View snapshots r.
func View(r *row.Row) RowView {
	cfg := r.Config()
	v := RowView{
		Length:      cfg.Length,
		Current:     cfg.Current,
		Guess:       r.Guess(),
		Evaluations: cfg.Evaluations,
		TileElement: cfg.TileElement,
		Tiles:       []TileView{},
	}
	if v.Evaluations == nil {
		v.Evaluations = []tile.State{}
	}
	for _, t := range r.Tiles() {
		states := t.Flags().Names()
		if states == nil {
			states = []string{}
		}
		v.Tiles = append(v.Tiles, TileView{
			Tag:    t.TagName(),
			Letter: t.Letter(),
			State:  t.State(),
			States: states,
		})
	}
	return v
}
