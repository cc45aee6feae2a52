package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-elements/internal/board"
	"github.com/robalobadob/wordle-elements/internal/config"
	"github.com/robalobadob/wordle-elements/internal/db"
	"github.com/robalobadob/wordle-elements/internal/render"
	"github.com/robalobadob/wordle-elements/internal/store"
	"github.com/robalobadob/wordle-elements/internal/tile"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return newTestServerWithTiles(t, nil)
}

func newTestServerWithTiles(t *testing.T, tiles tile.Factory) *Server {
	t.Helper()
	conn, err := db.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, db.Migrate(context.Background(), conn, db.Migrations()))

	cfg := config.Config{
		JWTSecret:    "test-secret",
		JWTExpiry:    time.Hour,
		CookieName:   "wordle_token",
		ClientOrigin: "http://localhost:5173",
	}
	return New(cfg, store.NewSQLStore(conn), conn, tiles)
}

func do(t *testing.T, s *Server, method, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealthAndNotFound(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = do(t, s, http.MethodGet, "/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not_found","path":"/nope"}`, rec.Body.String())

	rec = do(t, s, http.MethodOptions, "/boards", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRenderRow(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/render/row?guess=crane&evaluations=correct+present+absent+absent+correct", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `data-states="--evaluated --correct"`)

	rec = do(t, s, http.MethodGet, "/render/row?guess=cat&current&format=json", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var v render.RowView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.True(t, v.Current)
	require.Len(t, v.Tiles, 5)
	assert.Equal(t, "t", v.Tiles[2].Letter)
	assert.Equal(t, "current", string(v.Tiles[3].State))

	rec = do(t, s, http.MethodGet, "/render/row?length=abc&format=json", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, 5, v.Length)

	rec = do(t, s, http.MethodGet, "/render/row?guess=pi&current&format=text", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "P")

	rec = do(t, s, http.MethodGet, "/render/row?length=500", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodGet, "/render/row?format=pdf", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRenderRow_TileAlias(t *testing.T) {
	reg := tile.NewRegistry()
	require.NoError(t, reg.Alias("blog-tile"))
	s := newTestServerWithTiles(t, reg)

	rec := do(t, s, http.MethodGet, "/render/row?guess=ab&current&tile-element=blog-tile&format=json", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var v render.RowView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, "blog-tile", v.TileElement)
	assert.Equal(t, "blog-tile", v.Tiles[0].Tag)

	rec = do(t, s, http.MethodGet, "/render/row?tile-element=other-tile&format=json", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, tile.DefaultName, v.TileElement)
}

func signup(t *testing.T, s *Server, username string) *http.Cookie {
	t.Helper()
	rec := do(t, s, http.MethodPost, "/auth/signup", `{"username":"`+username+`","password":"correcthorse"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	for _, c := range rec.Result().Cookies() {
		if c.Name == "wordle_token" {
			return c
		}
	}
	t.Fatal("no auth cookie")
	return nil
}

func TestAuth(t *testing.T) {
	s := newTestServer(t)
	cookie := signup(t, s, "ann")

	rec := do(t, s, http.MethodPost, "/auth/signup", `{"username":"ANN","password":"correcthorse"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, s, http.MethodPost, "/auth/signup", `{"username":"x","password":"correcthorse"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/auth/login", `{"username":"ann","password":"wrong-password"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, http.MethodPost, "/auth/login", `{"username":" Ann ","password":"correcthorse"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodGet, "/auth/me", "", cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	var me authUser
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, "ann", me.Username)

	rec = do(t, s, http.MethodGet, "/auth/me", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, http.MethodGet, "/auth/me", "", &http.Cookie{Name: "wordle_token", Value: "garbage"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, s, http.MethodPost, "/auth/logout", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSignup_ConcurrentSameNameConflicts(t *testing.T) {
	s := newTestServer(t)
	const n = 4
	codes := make([]int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = do(t, s, http.MethodPost, "/auth/signup", `{"username":"race","password":"correcthorse"}`).Code
		}(i)
	}
	wg.Wait()

	created := 0
	for _, c := range codes {
		if c == http.StatusCreated {
			created++
			continue
		}
		assert.Equal(t, http.StatusConflict, c)
	}
	assert.Equal(t, 1, created)
}

func TestBoards(t *testing.T) {
	s := newTestServer(t)
	body := `{"title":"Day 1","rows":[
		{"guess":"crane","evaluations":"absent present absent absent correct"},
		{"guess":"pi","current":true}]}`

	rec := do(t, s, http.MethodPost, "/boards", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	ann := signup(t, s, "ann")
	bob := signup(t, s, "bob")

	rec = do(t, s, http.MethodPost, "/boards", `{"title":"","rows":[]}`, ann)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/boards", body, ann)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created board.Board
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.ID)

	rec = do(t, s, http.MethodGet, "/boards/"+created.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Title    string           `json:"title"`
		Rendered []render.RowView `json:"rendered"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Day 1", got.Title)
	require.Len(t, got.Rendered, 2)
	assert.Equal(t, "correct", string(got.Rendered[0].Tiles[4].State))
	assert.Equal(t, "current", string(got.Rendered[1].Tiles[2].State))

	rec = do(t, s, http.MethodGet, "/boards/"+created.ID+"/html", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), `<section class="wordle-board"><h2>Day 1</h2>`))

	rec = do(t, s, http.MethodGet, "/boards", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []board.Board
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	rec = do(t, s, http.MethodGet, "/boards/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodDelete, "/boards/"+created.ID, "", bob)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodDelete, "/boards/"+created.ID, "", ann)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, s, http.MethodGet, "/boards/"+created.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
