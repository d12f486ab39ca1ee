// Package reorder computes drag-and-drop insertion points for the todo list
// and writes the resulting positions back one item at a time.
package reorder

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/idilsaglam/tada/internal/model"
)

// Row is the on-screen box of one rendered list element.
type Row struct {
	ID     model.ID
	Top    float64
	Height float64
}

// Assignment is the position a todo receives after a drop.
type Assignment struct {
	ID       model.ID
	Position int
}

// Target returns the index of the row the dragged element should be placed
// in front of: the nearest row whose vertical midpoint lies below y. ok is
// false when y is below every midpoint and the element goes last.
func Target(rows []Row, y float64) (index int, ok bool) {
	index = -1
	closest := math.Inf(-1)
	for i, r := range rows {
		offset := y - r.Top - r.Height/2
		if offset < 0 && offset > closest {
			closest = offset
			index = i
		}
	}
	return index, index >= 0
}

// Assign gives every id its index in order as position.
func Assign(order []model.ID) []Assignment {
	out := make([]Assignment, len(order))
	for i, id := range order {
		out[i] = Assignment{ID: id, Position: i}
	}
	return out
}

// Move returns a copy of order with the element at from placed at index to
// of the final order. Out-of-range targets are clamped.
func Move(order []model.ID, from, to int) ([]model.ID, error) {
	if from < 0 || from >= len(order) {
		return nil, fmt.Errorf("move: index %d out of range (have %d)", from, len(order))
	}
	rest := make([]model.ID, 0, len(order))
	rest = append(rest, order[:from]...)
	rest = append(rest, order[from+1:]...)
	to = max(0, min(to, len(rest)))

	out := make([]model.ID, 0, len(order))
	out = append(out, rest[:to]...)
	out = append(out, order[from])
	out = append(out, rest[to:]...)
	return out, nil
}

// PositionWriter persists a single position change.
type PositionWriter interface {
	SetPosition(ctx context.Context, id model.ID, position int) (model.Todo, error)
}

// PersistError reports a reorder write that stopped partway. Items before
// Written were stored; the rest keep their old positions remotely.
type PersistError struct {
	Written int
	Total   int
	ID      model.ID
	Err     error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("reorder: saved %d of %d positions, %s failed: %v", e.Written, e.Total, e.ID, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

// Persist writes every assignment in order, waiting for each request before
// the next. It stops at the first failure and does not roll back.
func Persist(ctx context.Context, w PositionWriter, assignments []Assignment) error {
	if w == nil {
		return errors.New("reorder: nil position writer")
	}
	for i, a := range assignments {
		if err := ctx.Err(); err != nil {
			return &PersistError{Written: i, Total: len(assignments), ID: a.ID, Err: err}
		}
		if _, err := w.SetPosition(ctx, a.ID, a.Position); err != nil {
			return &PersistError{Written: i, Total: len(assignments), ID: a.ID, Err: err}
		}
	}
	return nil
}
