package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store"
)

// JSON-backed collection in json-server's db.json layout:
// {"todos": [...]}. The file is read on every call so hand edits made while
// the server runs are picked up.

const DefaultFileName = "db.json"

type document struct {
	Todos []model.Todo `json:"todos"`
}

// Store is a single-file collection.
type Store struct {
	path string
	mu   sync.Mutex
}

var _ store.Store = (*Store)(nil)

// Open uses the file at path, creating parent directories. A missing file
// is an empty collection.
func Open(path string) (*Store, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getwd: %w", err)
		}
		path = filepath.Join(wd, DefaultFileName)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir: %w", err)
	}
	return &Store{path: path}, nil
}

// Path is the backing file.
func (s *Store) Path() string { return s.path }

func (s *Store) load() ([]model.Todo, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.Todo{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	if len(b) == 0 {
		return []model.Todo{}, nil
	}
	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if doc.Todos == nil {
		doc.Todos = []model.Todo{}
	}
	return doc.Todos, nil
}

func (s *Store) save(todos []model.Todo) error {
	b, err := json.MarshalIndent(document{Todos: todos}, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) Get(ctx context.Context, id model.ID) (model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	todos, err := s.load()
	if err != nil {
		return model.Todo{}, err
	}
	i := model.Index(todos, id)
	if i < 0 {
		return model.Todo{}, store.ErrNotFound
	}
	return todos[i], nil
}

func (s *Store) Insert(ctx context.Context, t model.Todo) (model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	todos, err := s.load()
	if err != nil {
		return model.Todo{}, err
	}
	if t.ID == "" {
		t.ID = store.NewID()
	} else if model.Index(todos, t.ID) >= 0 {
		return model.Todo{}, fmt.Errorf("insert %s: duplicate id", t.ID)
	}
	todos = append(todos, t)
	if err := s.save(todos); err != nil {
		return model.Todo{}, err
	}
	return t, nil
}

func (s *Store) Put(ctx context.Context, t model.Todo) (model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	todos, err := s.load()
	if err != nil {
		return model.Todo{}, err
	}
	i := model.Index(todos, t.ID)
	if i < 0 {
		return model.Todo{}, store.ErrNotFound
	}
	todos[i] = t
	if err := s.save(todos); err != nil {
		return model.Todo{}, err
	}
	return t, nil
}

func (s *Store) Delete(ctx context.Context, id model.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	todos, err := s.load()
	if err != nil {
		return err
	}
	i := model.Index(todos, id)
	if i < 0 {
		return store.ErrNotFound
	}
	todos = append(todos[:i], todos[i+1:]...)
	return s.save(todos)
}

func (s *Store) Close() error { return nil }
