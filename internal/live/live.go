// Package live subscribes to the change feed published by `todo serve` so
// an open list can re-render when another client edits the collection.
package live

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/coder/websocket"

	"github.com/idilsaglam/tada/internal/model"
)

// Change is one collection event.
type Change struct {
	Type string   `json:"type"`
	Op   string   `json:"op,omitempty"`
	ID   model.ID `json:"id,omitempty"`
}

// FeedURL derives the websocket feed address from a collection URL:
// http://host:3000/todos -> ws://host:3000/_events.
func FeedURL(collectionURL string) (string, error) {
	u, err := url.Parse(collectionURL)
	if err != nil {
		return "", fmt.Errorf("feed url: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("feed url: unsupported scheme %q", u.Scheme)
	}
	p := strings.TrimRight(u.Path, "/")
	if i := strings.LastIndex(p, "/"); i >= 0 {
		p = p[:i]
	}
	u.Path = p + "/_events"
	u.RawQuery = ""
	return u.String(), nil
}

// Subscribe connects to feedURL and delivers every "changed" event on the
// returned channel. The channel closes when ctx ends or the connection
// drops.
func Subscribe(ctx context.Context, feedURL string, logger *log.Logger) (<-chan Change, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	conn, _, err := websocket.Dial(ctx, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", feedURL, err)
	}

	out := make(chan Change, 16)
	go func() {
		defer close(out)
		defer conn.CloseNow()
		for {
			_, data, err := conn.Read(ctx)
			if err != nil {
				if ctx.Err() == nil {
					logger.Warn("change feed closed", "err", err)
				}
				return
			}
			var c Change
			if err := json.Unmarshal(data, &c); err != nil {
				logger.Debug("ignoring malformed event", "err", err)
				continue
			}
			if c.Type != "changed" {
				continue
			}
			select {
			case out <- c:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}
