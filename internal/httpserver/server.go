// internal/httpserver/server.go
//
// HTTP server wiring for the wordle-elements service.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs,
//     access logging).
//   - Public endpoints: "/", "/health", GET /render/row.
//   - Boards: GET /boards, GET /boards/{id}, GET /boards/{id}/html (public);
//     POST /boards, DELETE /boards/{id} (require auth).
//   - Author auth: /auth/signup, /auth/login, /auth/logout, /auth/me.
//
// Notes:
//   - Every request renders on its own loop; no element is shared between
//     goroutines.
//   - CORS is origin-aware and credentials-enabled (so cookies work).

package httpserver

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-elements/internal/board"
	"github.com/robalobadob/wordle-elements/internal/config"
	"github.com/robalobadob/wordle-elements/internal/render"
	"github.com/robalobadob/wordle-elements/internal/store"
	"github.com/robalobadob/wordle-elements/internal/tile"
)

// Server bundles router, board store, DB handle and tile factory.
type Server struct {
	r     *chi.Mux
	cfg   config.Config
	store store.Store
	db    *sql.DB
	tiles tile.Factory
	now   func() time.Time
}

// New constructs a Server, installs middleware, and registers routes.
// db holds the authors table; st holds boards.
func New(cfg config.Config, st store.Store, db *sql.DB, tiles tile.Factory) *Server {
	if tiles == nil {
		tiles = tile.Default
	}
	s := &Server{r: chi.NewRouter(), cfg: cfg, store: st, db: db, tiles: tiles, now: time.Now}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                       // zerolog access line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"wordle-elements","endpoints":["/health","/render/row","/boards","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Get("/render/row", s.handleRenderRow)

	s.r.Route("/boards", func(r chi.Router) {
		r.Get("/", s.handleListBoards)
		r.Get("/{id}", s.handleGetBoard)
		r.Get("/{id}/html", s.handleBoardHTML)
		r.With(s.requireAuth()).Post("/", s.handleCreateBoard)
		r.With(s.requireAuth()).Delete("/{id}", s.handleDeleteBoard)
	})

	s.mountAuthRoutes()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one zerolog line per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Info().
			Str("requestId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// ------------------------------- RENDER ------------------------------------

// handleRenderRow renders one row from query parameters named after the
// element attributes. `current` is a presence flag, as in markup.
func (s *Server) handleRenderRow(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	spec := board.RowSpec{
		Length:      q.Get("length"),
		Current:     q.Has("current"),
		Evaluations: q.Get("evaluations"),
		TileElement: q.Get("tile-element"),
		Guess:       q.Get("guess"),
	}
	if err := spec.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	b := board.Board{Rows: []board.RowSpec{spec}}
	rw := b.Build(s.tiles)[0]

	switch q.Get("format") {
	case "", "html":
		var buf bytes.Buffer
		if err := render.HTML(&buf, rw); err != nil {
			log.Error().Err(err).Msg("render row")
			writeError(w, http.StatusInternalServerError, "render_failed")
			return
		}
		writeHTML(w, buf.Bytes())
	case "json":
		writeJSON(w, http.StatusOK, render.View(rw))
	case "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(render.Terminal(rw, render.DefaultTheme()) + "\n"))
	default:
		writeError(w, http.StatusBadRequest, "unknown_format")
	}
}

// ------------------------------- BOARDS ------------------------------------

type boardRes struct {
	*board.Board
	Rendered []render.RowView `json:"rendered"`
}

func (s *Server) handleListBoards(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	boards, err := s.store.List(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("list boards")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	writeJSON(w, http.StatusOK, boards)
}

func (s *Server) loadBoard(w http.ResponseWriter, r *http.Request) (*board.Board, bool) {
	b, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, board.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return nil, false
	}
	if err != nil {
		log.Error().Err(err).Msg("get board")
		writeError(w, http.StatusInternalServerError, "db_error")
		return nil, false
	}
	return b, true
}

func (s *Server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	b, ok := s.loadBoard(w, r)
	if !ok {
		return
	}
	res := boardRes{Board: b}
	for _, rw := range b.Build(s.tiles) {
		res.Rendered = append(res.Rendered, render.View(rw))
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleBoardHTML(w http.ResponseWriter, r *http.Request) {
	b, ok := s.loadBoard(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := render.BoardHTML(&buf, b.Title, b.Build(s.tiles)); err != nil {
		log.Error().Err(err).Str("board", b.ID).Msg("render board")
		writeError(w, http.StatusInternalServerError, "render_failed")
		return
	}
	writeHTML(w, buf.Bytes())
}

type createBoardReq struct {
	Title string          `json:"title"`
	Rows  []board.RowSpec `json:"rows"`
}

func (s *Server) handleCreateBoard(w http.ResponseWriter, r *http.Request) {
	me := userFrom(r)
	var req createBoardReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	b := &board.Board{
		ID:        uuid.NewString(),
		AuthorID:  me.ID,
		Title:     req.Title,
		Rows:      req.Rows,
		CreatedAt: s.now().UTC(),
	}
	if err := b.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.store.Save(r.Context(), b); err != nil {
		log.Error().Err(err).Str("author", me.ID).Msg("save board")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	log.Info().Str("board", b.ID).Str("author", me.ID).Int("rows", len(b.Rows)).Msg("board created")
	writeJSON(w, http.StatusCreated, b)
}

func (s *Server) handleDeleteBoard(w http.ResponseWriter, r *http.Request) {
	me := userFrom(r)
	err := s.store.Delete(r.Context(), chi.URLParam(r, "id"), me.ID)
	if errors.Is(err, board.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("delete board")
		writeError(w, http.StatusInternalServerError, "db_error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ------------------------------- small util --------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

func writeHTML(w http.ResponseWriter, b []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}
