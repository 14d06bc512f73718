package dashboard

import (
	"bufio"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcastHookSubscribe(t *testing.T) {
	hook := NewBroadcastHook()
	ch, cancel := hook.Subscribe("")
	defer cancel()
	event := ViewEvent{SessionID: "s-1", Reason: ReasonTheme}
	if err := hook.ViewUpdated(context.Background(), event); err != nil {
		t.Fatalf("ViewUpdated returned error: %v", err)
	}
	select {
	case e := <-ch:
		if e.Reason != event.Reason {
			t.Fatalf("expected reason %s, got %s", event.Reason, e.Reason)
		}
	default:
		t.Fatalf("expected event to be delivered")
	}
}

func TestBroadcastHookSessionScope(t *testing.T) {
	hook := NewBroadcastHook()
	mine, cancelMine := hook.Subscribe("a")
	defer cancelMine()

	require.NoError(t, hook.ViewUpdated(context.Background(), ViewEvent{SessionID: "b"}))
	require.NoError(t, hook.ViewUpdated(context.Background(), ViewEvent{SessionID: "a", Reason: ReasonClock}))

	e := <-mine
	assert.Equal(t, "a", e.SessionID)
	select {
	case extra := <-mine:
		t.Fatalf("unexpected event %+v", extra)
	default:
	}
}

func TestBroadcastHookDropsWhenFull(t *testing.T) {
	hook := NewBroadcastHook()
	ch, cancel := hook.Subscribe("")
	for i := 0; i < 40; i++ {
		require.NoError(t, hook.ViewUpdated(context.Background(), ViewEvent{}))
	}
	assert.Len(t, ch, cap(ch))

	assert.Equal(t, 1, hook.Subscribers())
	cancel()
	cancel()
	assert.Zero(t, hook.Subscribers())
}

type failingHook struct{ err error }

func (h failingHook) ViewUpdated(context.Context, ViewEvent) error { return h.err }

func TestCombineHooks(t *testing.T) {
	assert.IsType(t, noopEventHook{}, CombineHooks(nil, nil))

	rec := &recordingHook{}
	assert.Same(t, rec, CombineHooks(nil, rec))

	boom := errors.New("boom")
	combined := CombineHooks(failingHook{err: boom}, rec)
	err := combined.ViewUpdated(context.Background(), ViewEvent{Reason: ReasonTab})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{ReasonTab}, rec.reasons())
}

func TestBroadcastHookServeWebSocket(t *testing.T) {
	hook := NewBroadcastHook()
	server := httptest.NewServer(http.HandlerFunc(hook.ServeWebSocket))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "?session=s-1"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hook.Subscribers() == 1 }, time.Second, 5*time.Millisecond)
	require.NoError(t, hook.ViewUpdated(context.Background(), ViewEvent{SessionID: "s-1", Reason: ReasonRefreshStart}))

	var got ViewEvent
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, ReasonRefreshStart, got.Reason)
}

func TestBroadcastHookServeSSE(t *testing.T) {
	hook := NewBroadcastHook()
	server := httptest.NewServer(http.HandlerFunc(hook.ServeSSE))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL+"?session=s-1", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	require.Eventually(t, func() bool { return hook.Subscribers() == 1 }, time.Second, 5*time.Millisecond)
	require.NoError(t, hook.ViewUpdated(context.Background(), ViewEvent{SessionID: "s-1", Reason: ReasonClock}))

	line, err := bufio.NewReader(resp.Body).ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "event: clock\n", line)
}
