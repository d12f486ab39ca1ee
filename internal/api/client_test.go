package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/idilsaglam/tada/internal/loader"
	"github.com/idilsaglam/tada/internal/model"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   map[string]any
}

// fakeCollection is a tiny json-server lookalike that records every request.
type fakeCollection struct {
	mu       sync.Mutex
	todos    []model.Todo
	requests []recordedRequest
	failNext int
}

func (f *fakeCollection) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec := recordedRequest{Method: r.Method, Path: r.URL.Path}
	if b, _ := io.ReadAll(r.Body); len(b) > 0 {
		_ = json.Unmarshal(b, &rec.Body)
	}
	f.requests = append(f.requests, rec)

	if f.failNext > 0 {
		f.failNext--
		http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
		return
	}

	id := model.ID(strings.TrimPrefix(r.URL.Path, "/todos/"))
	if r.URL.Path == "/todos" {
		id = ""
	}
	idx := model.Index(f.todos, id)

	switch {
	case r.Method == http.MethodGet && id == "":
		writeJSON(w, http.StatusOK, f.todos)
	case r.Method == http.MethodPost && id == "":
		t := model.Todo{
			ID:        model.ID(string(rune('a' + len(f.todos)))),
			Content:   rec.Body["content"].(string),
			Completed: rec.Body["completed"].(bool),
			Position:  int(rec.Body["position"].(float64)),
		}
		f.todos = append(f.todos, t)
		writeJSON(w, http.StatusCreated, t)
	case idx < 0:
		http.Error(w, "{}", http.StatusNotFound)
	case r.Method == http.MethodGet:
		writeJSON(w, http.StatusOK, f.todos[idx])
	case r.Method == http.MethodPatch:
		if v, ok := rec.Body["completed"].(bool); ok {
			f.todos[idx].Completed = v
		}
		if v, ok := rec.Body["position"].(float64); ok {
			f.todos[idx].Position = int(v)
		}
		writeJSON(w, http.StatusOK, f.todos[idx])
	case r.Method == http.MethodPut:
		f.todos[idx].Content = rec.Body["content"].(string)
		writeJSON(w, http.StatusOK, f.todos[idx])
	case r.Method == http.MethodDelete:
		f.todos = append(f.todos[:idx], f.todos[idx+1:]...)
		writeJSON(w, http.StatusOK, map[string]any{})
	default:
		http.Error(w, "", http.StatusMethodNotAllowed)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func newTestClient(t *testing.T, f *fakeCollection, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	c, err := NewClient(srv.URL+"/todos", opts...)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestCreate_AppendsAtCount(t *testing.T) {
	f := &fakeCollection{todos: []model.Todo{
		{ID: "x", Content: "one", Position: 0},
		{ID: "y", Content: "two", Position: 1},
	}}
	c := newTestClient(t, f)

	got, err := c.Create(context.Background(), "Buy milk")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.Content != "Buy milk" || got.Completed || got.Position != 2 {
		t.Errorf("created = %+v, want content Buy milk, completed=false, position=2", got)
	}

	last := f.requests[len(f.requests)-1]
	if last.Method != http.MethodPost || last.Path != "/todos" {
		t.Fatalf("last request = %s %s, want POST /todos", last.Method, last.Path)
	}
	if last.Body["completed"] != false || last.Body["position"] != float64(2) {
		t.Errorf("POST body = %v", last.Body)
	}
}

func TestCreate_RejectsEmpty(t *testing.T) {
	f := &fakeCollection{}
	c := newTestClient(t, f)
	if _, err := c.Create(context.Background(), "   "); !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("err = %v, want ErrEmptyContent", err)
	}
	if len(f.requests) != 0 {
		t.Errorf("expected no requests, got %d", len(f.requests))
	}
}

func TestToggle_FlipsStoredValue(t *testing.T) {
	f := &fakeCollection{todos: []model.Todo{{ID: "a", Content: "x", Completed: true}}}
	c := newTestClient(t, f)

	got, err := c.Toggle(context.Background(), "a")
	if err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if got.Completed {
		t.Error("expected completed=false after toggle")
	}
	if n := len(f.requests); n != 2 || f.requests[0].Method != http.MethodGet || f.requests[1].Method != http.MethodPatch {
		t.Fatalf("requests = %+v, want GET then PATCH", f.requests)
	}
	if f.requests[1].Body["completed"] != false {
		t.Errorf("PATCH body = %v", f.requests[1].Body)
	}
}

func TestReplace_SendsFullRecord(t *testing.T) {
	f := &fakeCollection{todos: []model.Todo{{ID: "a", Content: "old", Completed: true, Position: 3}}}
	c := newTestClient(t, f)

	got, err := c.Replace(context.Background(), model.Todo{ID: "a", Content: "new", Completed: true, Position: 3})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if got.Content != "new" {
		t.Errorf("content = %q, want new", got.Content)
	}
	body := f.requests[0].Body
	if f.requests[0].Method != http.MethodPut || body["content"] != "new" || body["completed"] != true || body["position"] != float64(3) {
		t.Errorf("PUT request = %+v", f.requests[0])
	}
}

func TestDelete_NotFound(t *testing.T) {
	c := newTestClient(t, &fakeCollection{})
	err := c.Delete(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
	var se *StatusError
	if !errors.As(err, &se) || se.Code != http.StatusNotFound {
		t.Errorf("expected *StatusError with 404, got %v", err)
	}
}

func TestIndicatorClearedOnFailure(t *testing.T) {
	ind := loader.New()
	var transitions []bool
	ind.Watch(func(v bool) { transitions = append(transitions, v) })

	f := &fakeCollection{failNext: 1}
	c := newTestClient(t, f, WithIndicator(ind))

	if _, err := c.List(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if ind.Visible() {
		t.Error("indicator still visible after failed request")
	}
	if len(transitions) != 2 || !transitions[0] || transitions[1] {
		t.Errorf("transitions = %v, want [true false]", transitions)
	}
}

func TestSetPosition_PatchesPositionOnly(t *testing.T) {
	f := &fakeCollection{todos: []model.Todo{{ID: "a", Position: 4}}}
	c := newTestClient(t, f)
	if _, err := c.SetPosition(context.Background(), "a", 0); err != nil {
		t.Fatalf("SetPosition: %v", err)
	}
	req := f.requests[0]
	if req.Method != http.MethodPatch || req.Path != "/todos/a" || len(req.Body) != 1 || req.Body["position"] != float64(0) {
		t.Errorf("request = %+v", req)
	}
}

func TestNewClient_Validation(t *testing.T) {
	for _, in := range []string{"", "localhost:3000/todos", "ftp://x/todos", "http:///todos"} {
		if _, err := NewClient(in); err == nil {
			t.Errorf("NewClient(%q) succeeded, want error", in)
		}
	}
}
