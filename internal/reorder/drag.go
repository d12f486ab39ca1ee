package reorder

import (
	"fmt"
	"slices"

	"github.com/idilsaglam/tada/internal/model"
)

// Drag tracks one drag gesture from pick-up to drop. The live order is
// reflowed on every Over call; nothing is persisted until End.
type Drag struct {
	original []model.ID
	order    []model.ID
	dragged  model.ID
}

// Start begins dragging id within order.
func Start(order []model.ID, id model.ID) (*Drag, error) {
	if !slices.Contains(order, id) {
		return nil, fmt.Errorf("drag: %q is not in the list", id)
	}
	return &Drag{
		original: slices.Clone(order),
		order:    slices.Clone(order),
		dragged:  id,
	}, nil
}

// Dragged is the id being moved.
func (d *Drag) Dragged() model.ID { return d.dragged }

// Order is the current visual order, including the dragged element.
func (d *Drag) Order() []model.ID { return slices.Clone(d.order) }

// Index is the dragged element's current index.
func (d *Drag) Index() int { return slices.Index(d.order, d.dragged) }

// Over re-evaluates the insertion point for pointer y. rows describe every
// rendered element in the current order; the dragged one is skipped.
// It reports whether the order changed.
func (d *Drag) Over(y float64, rows []Row) bool {
	others := make([]Row, 0, len(rows))
	for _, r := range rows {
		if r.ID != d.dragged {
			others = append(others, r)
		}
	}

	next := make([]model.ID, 0, len(d.order))
	for _, id := range d.order {
		if id != d.dragged {
			next = append(next, id)
		}
	}
	if i, ok := Target(others, y); ok {
		at := slices.Index(next, others[i].ID)
		if at < 0 {
			return false
		}
		next = slices.Insert(next, at, d.dragged)
	} else {
		next = append(next, d.dragged)
	}

	if slices.Equal(next, d.order) {
		return false
	}
	d.order = next
	return true
}

// Step moves the dragged element by delta places, clamped to the list.
func (d *Drag) Step(delta int) bool {
	from := d.Index()
	next, err := Move(d.order, from, from+delta)
	if err != nil || slices.Equal(next, d.order) {
		return false
	}
	d.order = next
	return true
}

// Cancel abandons the gesture and returns the order it started from.
func (d *Drag) Cancel() []model.ID {
	d.order = slices.Clone(d.original)
	return slices.Clone(d.original)
}

// End finishes the gesture and returns position = index for every element
// of the final order.
func (d *Drag) End() []Assignment {
	return Assign(d.order)
}
