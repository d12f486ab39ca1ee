// Package sqlitestore keeps the todo collection in a SQLite database.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store"
)

type Store struct {
	db *sql.DB
}

var _ store.Store = (*Store)(nil)

// Open creates or opens the database at path and ensures the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	stmts := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		`CREATE TABLE IF NOT EXISTS todos (
			id TEXT PRIMARY KEY,
			content TEXT NOT NULL,
			completed INTEGER NOT NULL DEFAULT 0,
			position INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE INDEX IF NOT EXISTS idx_todos_position ON todos(position);`,
	}
	for _, s := range stmts {
		if _, err := db.ExecContext(ctx, s); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("init schema: %w", err)
		}
	}
	return &Store{db: db}, nil
}

func (s *Store) List(ctx context.Context) ([]model.Todo, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, content, completed, position FROM todos ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query todos: %w", err)
	}
	defer rows.Close()

	todos := []model.Todo{}
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

func (s *Store) Get(ctx context.Context, id model.ID) (model.Todo, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, content, completed, position FROM todos WHERE id = ?`, string(id))
	t, err := scanTodo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Todo{}, store.ErrNotFound
	}
	return t, err
}

func (s *Store) Insert(ctx context.Context, t model.Todo) (model.Todo, error) {
	if t.ID == "" {
		t.ID = store.NewID()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO todos (id, content, completed, position) VALUES (?, ?, ?, ?)`,
		string(t.ID), t.Content, t.Completed, t.Position)
	if err != nil {
		return model.Todo{}, fmt.Errorf("insert %s: %w", t.ID, err)
	}
	return t, nil
}

func (s *Store) Put(ctx context.Context, t model.Todo) (model.Todo, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE todos SET content = ?, completed = ?, position = ? WHERE id = ?`,
		t.Content, t.Completed, t.Position, string(t.ID))
	if err != nil {
		return model.Todo{}, fmt.Errorf("update %s: %w", t.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return model.Todo{}, store.ErrNotFound
	}
	return t, nil
}

func (s *Store) Delete(ctx context.Context, id model.ID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, string(id))
	if err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) Close() error { return s.db.Close() }

type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(sc scanner) (model.Todo, error) {
	var (
		t         model.Todo
		id        string
		completed int64
	)
	if err := sc.Scan(&id, &t.Content, &completed, &t.Position); err != nil {
		return model.Todo{}, err
	}
	t.ID = model.ID(id)
	t.Completed = completed != 0
	return t, nil
}
