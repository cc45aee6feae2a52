package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/robalobadob/wordle-elements/internal/board"
)

// sqlStore keeps boards in the boards table; rows are stored as JSON.
type sqlStore struct{ db *sql.DB }

// NewSQLStore returns a Store backed by db. The schema comes from db.Migrate.
func NewSQLStore(db *sql.DB) Store { return &sqlStore{db: db} }

func (s *sqlStore) Save(ctx context.Context, b *board.Board) error {
	rows, err := json.Marshal(b.Rows)
	if err != nil {
		return fmt.Errorf("encode rows: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO boards (id, author_id, title, rows_json, created_at)
        VALUES (?, ?, ?, ?, ?)
        ON CONFLICT(id) DO UPDATE SET title=excluded.title, rows_json=excluded.rows_json`,
		b.ID, b.AuthorID, b.Title, string(rows), b.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("save board %s: %w", b.ID, err)
	}
	return nil
}

func (s *sqlStore) Get(ctx context.Context, id string) (*board.Board, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, author_id, title, rows_json, created_at FROM boards WHERE id=?`, id)
	b, err := scanBoard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, board.ErrNotFound
	}
	return b, err
}

func (s *sqlStore) List(ctx context.Context, limit int) ([]board.Board, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, author_id, title, rows_json, created_at
        FROM boards
        ORDER BY created_at DESC, id ASC
        LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	defer rows.Close()

	out := make([]board.Board, 0, limit)
	for rows.Next() {
		b, err := scanBoard(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (s *sqlStore) Delete(ctx context.Context, id, authorID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM boards WHERE id=? AND author_id=?`, id, authorID)
	if err != nil {
		return fmt.Errorf("delete board %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return board.ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBoard(sc scanner) (*board.Board, error) {
	var (
		b             board.Board
		rows, created string
	)
	if err := sc.Scan(&b.ID, &b.AuthorID, &b.Title, &rows, &created); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(rows), &b.Rows); err != nil {
		return nil, fmt.Errorf("decode rows of board %s: %w", b.ID, err)
	}
	b.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	return &b, nil
}
