package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-elements/internal/render"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRowCommand_JSON(t *testing.T) {
	out, err := run(t, "row", "cat", "--current", "--format", "json")
	require.NoError(t, err)

	var v render.RowView
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, "cat", v.Guess)
	assert.Equal(t, "current", string(v.Tiles[3].State))
}

func TestRowCommand_HTML(t *testing.T) {
	out, err := run(t, "row", "crane", "--evaluations", "correct present absent absent correct", "-f", "html")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `<wordle-row evaluations=`), out)
}

func TestRowCommand_Terminal(t *testing.T) {
	out, err := run(t, "row", "ab", "--length", "2", "--current")
	require.NoError(t, err)
	assert.Contains(t, out, "A")
	assert.Contains(t, out, "B")
}

func TestRowCommand_TileAlias(t *testing.T) {
	out, err := run(t, "row", "ab", "--current", "--tile-element", "blog-tile", "-f", "json")
	require.NoError(t, err)
	var v render.RowView
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, "wordle-tile", v.TileElement)

	out, err = run(t, "row", "ab", "--current", "--tile-alias", "blog-tile", "--tile-element", "blog-tile", "-f", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, "blog-tile", v.TileElement)
	assert.Equal(t, "blog-tile", v.Tiles[0].Tag)
	assert.Equal(t, "a", v.Tiles[0].Letter)

	_, err = run(t, "row", "--tile-alias", "notile")
	assert.Error(t, err)
}

func TestRowCommand_Errors(t *testing.T) {
	_, err := run(t, "row", "--length", "99")
	assert.Error(t, err)

	_, err = run(t, "row", "--format", "pdf")
	assert.Error(t, err)
}

func TestBoardCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`title: Day 1
rows:
  - guess: crane
    evaluations: correct correct correct correct correct
  - current: true
`), 0o600))

	out, err := run(t, "board", path, "--format", "json")
	require.NoError(t, err)
	var got struct {
		Title string           `json:"title"`
		Rows  []render.RowView `json:"rows"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Day 1", got.Title)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, "current", string(got.Rows[1].Tiles[0].State))

	out, err = run(t, "board", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Day 1")

	_, err = run(t, "board", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
