package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type subscriber struct {
	session string
	ch      chan ViewEvent
}

// BroadcastHook fans out view events to in-process subscribers. A subscriber
// bound to a session only receives that session's events. Slow subscribers
// drop events rather than block the publisher.
type BroadcastHook struct {
	mu   sync.RWMutex
	subs map[int]subscriber
	next int
}

// NewBroadcastHook creates a broadcast hook.
func NewBroadcastHook() *BroadcastHook {
	return &BroadcastHook{subs: make(map[int]subscriber)}
}

// ViewUpdated satisfies EventHook and broadcasts the event.
func (h *BroadcastHook) ViewUpdated(_ context.Context, event ViewEvent) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, sub := range h.subs {
		if sub.session != "" && sub.session != event.SessionID {
			continue
		}
		select {
		case sub.ch <- event:
		default:
		}
	}
	return nil
}

// Subscribe returns a channel of events for session (all sessions when empty)
// and a cancel func that closes the channel.
func (h *BroadcastHook) Subscribe(session string) (<-chan ViewEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.next
	h.next++
	ch := make(chan ViewEvent, subscriberBuffer)
	h.subs[id] = subscriber{session: session, ch: ch}
	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub.ch)
		}
	}
	return ch, cancel
}

// Subscribers reports the number of live subscriptions.
func (h *BroadcastHook) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

const (
	subscriberBuffer = 16
	streamKeepAlive  = 30 * time.Second
	pingWriteTimeout = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// stream forwards the events of session to send until ctx ends, the
// subscription closes, or a write fails. ping runs on every keep-alive tick.
func (h *BroadcastHook) stream(ctx context.Context, session string, send func(ViewEvent) error, ping func() error) {
	events, cancel := h.Subscribe(session)
	defer cancel()
	ticker := time.NewTicker(streamKeepAlive)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := ping(); err != nil {
				return
			}
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := send(event); err != nil {
				return
			}
		}
	}
}

// ServeWebSocket upgrades the request and streams view events as JSON. The
// "session" query parameter scopes the stream.
func (h *BroadcastHook) ServeWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	h.stream(r.Context(), r.URL.Query().Get("session"),
		func(event ViewEvent) error { return conn.WriteJSON(event) },
		func() error {
			return conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(pingWriteTimeout))
		},
	)
}

// ServeSSE streams view events as Server-Sent Events named after the change
// reason, with a comment line as keep-alive.
func (h *BroadcastHook) ServeSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	flusher.Flush()

	seq := 0
	h.stream(r.Context(), r.URL.Query().Get("session"),
		func(event ViewEvent) error {
			data, err := json.Marshal(event)
			if err != nil {
				return err
			}
			seq++
			if _, err := fmt.Fprintf(w, "event: %s\nid: %d\ndata: %s\n\n", event.Reason, seq, data); err != nil {
				return err
			}
			flusher.Flush()
			return nil
		},
		func() error {
			if _, err := io.WriteString(w, ": keep-alive\n\n"); err != nil {
				return err
			}
			flusher.Flush()
			return nil
		},
	)
}

// multiHook fans an event out to several hooks and returns the first error.
type multiHook []EventHook

func (m multiHook) ViewUpdated(ctx context.Context, event ViewEvent) error {
	var first error
	for _, hook := range m {
		if err := hook.ViewUpdated(ctx, event); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// CombineHooks joins hooks, skipping nil entries.
func CombineHooks(hooks ...EventHook) EventHook {
	out := make(multiHook, 0, len(hooks))
	for _, hook := range hooks {
		if hook != nil {
			out = append(out, hook)
		}
	}
	switch len(out) {
	case 0:
		return noopEventHook{}
	case 1:
		return out[0]
	default:
		return out
	}
}
