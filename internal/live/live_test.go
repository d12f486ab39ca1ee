package live

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
)

func TestFeedURL(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"http://localhost:3000/todos", "ws://localhost:3000/_events"},
		{"https://example.com/api/todos/", "wss://example.com/api/_events"},
		{"http://localhost:3000/todos?x=1", "ws://localhost:3000/_events"},
	}
	for _, tt := range tests {
		got, err := FeedURL(tt.in)
		if err != nil {
			t.Fatalf("FeedURL(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("FeedURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if _, err := FeedURL("ftp://x/todos"); err == nil {
		t.Error("expected error for ftp scheme")
	}
}

func TestSubscribe_DeliversChangedEventsOnly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.CloseNow()
		ctx := r.Context()
		for _, msg := range []string{
			`{"type":"hello"}`,
			`not json`,
			`{"type":"changed","op":"delete","id":"a"}`,
		} {
			if err := conn.Write(ctx, websocket.MessageText, []byte(msg)); err != nil {
				return
			}
		}
		conn.Close(websocket.StatusNormalClosure, "")
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	ch, err := Subscribe(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}

	select {
	case c, ok := <-ch:
		if !ok {
			t.Fatal("channel closed before the change arrived")
		}
		if c.Op != "delete" || c.ID != "a" {
			t.Errorf("change = %+v", c)
		}
	case <-ctx.Done():
		t.Fatal("timed out")
	}

	select {
	case _, ok := <-ch:
		if ok {
			t.Error("expected channel to close after server hangup")
		}
	case <-ctx.Done():
		t.Fatal("channel not closed")
	}
}
