package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// ID is the opaque identifier the remote collection assigns to a todo.
// json-server style backends emit either numbers or strings; both decode
// into the same textual form.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || bytes.Equal(b, []byte("null")):
		*id = ""
		return nil
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("id: %w", err)
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Todo is one list entry. Position defines display order and is dense and
// zero-based after every completed reorder.
type Todo struct {
	ID        ID     `json:"id"`
	Content   string `json:"content"`
	Completed bool   `json:"completed"`
	Position  int    `json:"position"`
}

// SortByPosition orders todos ascending by position, ID breaking ties.
func SortByPosition(todos []Todo) {
	sort.SliceStable(todos, func(i, j int) bool {
		if todos[i].Position != todos[j].Position {
			return todos[i].Position < todos[j].Position
		}
		return todos[i].ID < todos[j].ID
	})
}

// IDs returns the identifiers in slice order.
func IDs(todos []Todo) []ID {
	out := make([]ID, 0, len(todos))
	for _, t := range todos {
		out = append(out, t.ID)
	}
	return out
}

// Index returns the slice index of id, or -1.
func Index(todos []Todo, id ID) int {
	for i := range todos {
		if todos[i].ID == id {
			return i
		}
	}
	return -1
}

// Stats counts completed and pending todos for headers.
func Stats(todos []Todo) (done, pending int) {
	for _, t := range todos {
		if t.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}
