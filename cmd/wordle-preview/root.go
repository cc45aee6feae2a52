package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-elements/internal/board"
	"github.com/robalobadob/wordle-elements/internal/render"
	"github.com/robalobadob/wordle-elements/internal/row"
	"github.com/robalobadob/wordle-elements/internal/tile"
)

const (
	formatTerminal = "terminal"
	formatHTML     = "html"
	formatJSON     = "json"
)

func newRootCmd() *cobra.Command {
	var (
		verbose bool
		aliases []string
	)
	tiles := tile.NewRegistry()
	root := &cobra.Command{
		Use:          "wordle-preview",
		Short:        "Render wordle-row and wordle-tile elements",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
			return tiles.Alias(aliases...)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log attribute fallbacks")
	root.PersistentFlags().StringSliceVar(&aliases, "tile-alias", nil, "extra tile element names rendered by the built-in tile")
	root.AddCommand(newRowCmd(tiles), newBoardCmd(tiles))
	return root
}

func newRowCmd(tiles tile.Factory) *cobra.Command {
	var (
		spec   board.RowSpec
		format string
	)
	cmd := &cobra.Command{
		Use:   "row [guess]",
		Short: "Render a single row from element attributes",
		Example: `  wordle-preview row crane --evaluations "correct present absent absent correct"
  wordle-preview row ca --current --format html
  wordle-preview row ca --current --tile-alias blog-tile --tile-element blog-tile`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				spec.Guess = args[0]
			}
			b := &board.Board{Rows: []board.RowSpec{spec}}
			if err := spec.Validate(); err != nil {
				return err
			}
			rows := b.Build(tiles)
			return write(cmd.OutOrStdout(), format, "", rows)
		},
	}
	f := cmd.Flags()
	f.StringVar(&spec.Length, "length", "", "length attribute (default 5)")
	f.BoolVar(&spec.Current, "current", false, "mark the row as being typed")
	f.StringVar(&spec.Evaluations, "evaluations", "", "space-separated correct/present/absent tokens")
	f.StringVar(&spec.TileElement, "tile-element", "", "tile element name")
	f.StringVarP(&format, "format", "f", formatTerminal, "output format: terminal, html, json")
	return cmd
}

func newBoardCmd(tiles tile.Factory) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "board <file.yaml>",
		Short: "Render a board definition file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			b, err := board.LoadYAML(f)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			log.Debug().Str("file", args[0]).Int("rows", len(b.Rows)).Msg("loaded board")
			return write(cmd.OutOrStdout(), format, b.Title, b.Build(tiles))
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", formatTerminal, "output format: terminal, html, json")
	return cmd
}

func write(w io.Writer, format, title string, rows []*row.Row) error {
	switch format {
	case formatTerminal:
		_, err := fmt.Fprintln(w, render.TerminalBoard(title, rows, render.DefaultTheme()))
		return err
	case formatHTML:
		var buf bytes.Buffer
		var err error
		if len(rows) == 1 && title == "" {
			err = render.HTML(&buf, rows[0])
		} else {
			err = render.BoardHTML(&buf, title, rows)
		}
		if err != nil {
			return err
		}
		buf.WriteByte('\n')
		_, err = w.Write(buf.Bytes())
		return err
	case formatJSON:
		views := make([]render.RowView, 0, len(rows))
		for _, r := range rows {
			views = append(views, render.View(r))
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if len(views) == 1 && title == "" {
			return enc.Encode(views[0])
		}
		return enc.Encode(map[string]any{"title": title, "rows": views})
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
