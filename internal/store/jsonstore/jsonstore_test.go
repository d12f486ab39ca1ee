package jsonstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store"
)

func TestStore_CRUD(t *testing.T) {
	ctx := context.Background()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "db.json"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	todos, err := s.List(ctx)
	if err != nil || len(todos) != 0 {
		t.Fatalf("List on missing file = %v, %v", todos, err)
	}

	a, err := s.Insert(ctx, model.Todo{Content: "Buy milk"})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if a.ID == "" {
		t.Fatal("Insert did not assign an id")
	}

	a.Completed = true
	if _, err := s.Put(ctx, a); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := s.Get(ctx, a.ID)
	if err != nil || !got.Completed {
		t.Fatalf("Get = %+v, %v", got, err)
	}

	if err := s.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, a.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("Get after delete err = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, a.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("second Delete err = %v, want ErrNotFound", err)
	}
}

func TestStore_ReadsJSONServerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	doc := `{"todos":[{"id":1,"content":"numeric id","completed":false,"position":0}]}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	got, err := s.Get(context.Background(), "1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Content != "numeric id" {
		t.Errorf("content = %q", got.Content)
	}
}

func TestStore_InsertDuplicateID(t *testing.T) {
	s, _ := Open(filepath.Join(t.TempDir(), "db.json"))
	ctx := context.Background()
	if _, err := s.Insert(ctx, model.Todo{ID: "x"}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Insert(ctx, model.Todo{ID: "x"}); err == nil {
		t.Fatal("expected duplicate id error")
	}
}
