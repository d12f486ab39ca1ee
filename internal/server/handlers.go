package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store"
)

const maxBodyBytes = 1 << 20

type patchBody struct {
	Content   *string `json:"content"`
	Completed *bool   `json:"completed"`
	Position  *int    `json:"position"`
}

// list handles GET /todos
func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	todos, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if r.URL.Query().Get("_sort") == "position" {
		model.SortByPosition(todos)
	}
	writeJSON(w, http.StatusOK, todos)
}

// get handles GET /todos/{id}
func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	t, err := s.store.Get(r.Context(), urlID(r))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// create handles POST /todos
func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	body, ok := readValidated(w, r, createSchema)
	if !ok {
		return
	}
	var t model.Todo
	if err := json.Unmarshal(body, &t); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	t, err := s.store.Insert(r.Context(), t)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.Publish(Event{Type: EventChanged, Op: "create", ID: t.ID})
	writeJSON(w, http.StatusCreated, t)
}

// patch handles PATCH /todos/{id}
func (s *Server) patch(w http.ResponseWriter, r *http.Request) {
	body, ok := readValidated(w, r, patchSchema)
	if !ok {
		return
	}
	var p patchBody
	if err := json.Unmarshal(body, &p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.store.Get(r.Context(), urlID(r))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	if p.Content != nil {
		t.Content = *p.Content
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.Position != nil {
		t.Position = *p.Position
	}
	if t, err = s.store.Put(r.Context(), t); err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.Publish(Event{Type: EventChanged, Op: "update", ID: t.ID})
	writeJSON(w, http.StatusOK, t)
}

// replace handles PUT /todos/{id}
func (s *Server) replace(w http.ResponseWriter, r *http.Request) {
	body, ok := readValidated(w, r, replaceSchema)
	if !ok {
		return
	}
	var t model.Todo
	if err := json.Unmarshal(body, &t); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	t.ID = urlID(r)
	t, err := s.store.Put(r.Context(), t)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.Publish(Event{Type: EventChanged, Op: "replace", ID: t.ID})
	writeJSON(w, http.StatusOK, t)
}

// remove handles DELETE /todos/{id}
func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	id := urlID(r)
	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeStoreError(w, err)
		return
	}
	s.Publish(Event{Type: EventChanged, Op: "delete", ID: id})
	writeJSON(w, http.StatusOK, map[string]any{})
}

// health handles GET /health
func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "clients": s.hub.Clients()})
}

func urlID(r *http.Request) model.ID {
	return model.ID(chi.URLParam(r, "id"))
}

func readValidated(w http.ResponseWriter, r *http.Request, schema *jsonschema.Schema) ([]byte, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body: "+err.Error())
		return nil, false
	}
	if err := validateBody(schema, body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return body, true
}

func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "todo not found")
		return
	}
	s.logger.Error("store", "err", err)
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
