package sqlitestore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "todos.sqlite"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore_CRUD(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)

	first, err := s.Insert(ctx, model.Todo{Content: "first", Position: 0})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if _, err := s.Insert(ctx, model.Todo{ID: "fixed", Content: "second", Completed: true, Position: 1}); err != nil {
		t.Fatalf("Insert with id: %v", err)
	}

	todos, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(todos) != 2 || todos[0].ID != first.ID || todos[1].ID != "fixed" || !todos[1].Completed {
		t.Fatalf("List = %+v", todos)
	}

	first.Content = "renamed"
	first.Position = 5
	if _, err := s.Put(ctx, first); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := s.Get(ctx, first.ID)
	if err != nil || got.Content != "renamed" || got.Position != 5 {
		t.Fatalf("Get = %+v, %v", got, err)
	}

	if err := s.Delete(ctx, "fixed"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, "fixed"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second Delete err = %v, want ErrNotFound", err)
	}
	if _, err := s.Put(ctx, model.Todo{ID: "nope"}); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Put unknown err = %v, want ErrNotFound", err)
	}
	if _, err := s.Get(ctx, "nope"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get unknown err = %v, want ErrNotFound", err)
	}
}
