// Package store defines the persistence contract behind `todo serve`, the
// local stand-in for the remote todo collection.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/idilsaglam/tada/internal/model"
)

var ErrNotFound = errors.New("not found")

// Store keeps the todo collection. Implementations are safe for concurrent use.
type Store interface {
	List(ctx context.Context) ([]model.Todo, error)
	Get(ctx context.Context, id model.ID) (model.Todo, error)
	// Insert stores t, assigning an id when t.ID is empty.
	Insert(ctx context.Context, t model.Todo) (model.Todo, error)
	// Put replaces the record with t.ID.
	Put(ctx context.Context, t model.Todo) (model.Todo, error)
	Delete(ctx context.Context, id model.ID) error
	Close() error
}

// NewID returns a fresh opaque identifier.
func NewID() model.ID {
	return model.ID(uuid.NewString())
}
