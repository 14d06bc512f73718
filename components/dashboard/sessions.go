package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

const defaultIdleTimeout = 30 * time.Minute

// SessionOptions configures a SessionManager. Shell is the template used for
// every new session; its SessionID, Viewer, Telemetry and Hook are replaced.
type SessionOptions struct {
	Shell       ShellOptions
	IdleTimeout time.Duration
	Now         func() time.Time
	Telemetry   Telemetry
	Hook        EventHook
}

// SessionSource resolves a live session for transports.
type SessionSource interface {
	Session(ctx context.Context, id string) (Controls, error)
}

type sessionEntry struct {
	shell    *Shell
	lastSeen time.Time
}

// SessionManager keeps one Shell per viewer session.
type SessionManager struct {
	opts      SessionOptions
	telemetry Telemetry

	mu       sync.Mutex
	sessions map[string]*sessionEntry
	closed   bool
}

var (
	_ SessionSource = (*SessionManager)(nil)
	_ PageSource    = (*SessionManager)(nil)
)

// NewSessionManager builds an empty manager.
func NewSessionManager(opts SessionOptions) *SessionManager {
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = defaultIdleTimeout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Hook == nil {
		opts.Hook = noopEventHook{}
	}
	return &SessionManager{
		opts:      opts,
		telemetry: normalizeTelemetry(opts.Telemetry),
		sessions:  map[string]*sessionEntry{},
	}
}

// Open returns the shell for viewer.SessionID, creating it when missing. An
// empty session id gets a fresh uuid.
func (m *SessionManager) Open(ctx context.Context, viewer ViewerContext) (*Shell, error) {
	if viewer.SessionID == "" {
		viewer.SessionID = uuid.NewString()
	}
	now := m.opts.Now()

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil, ErrSessionClosed
	}
	if entry, ok := m.sessions[viewer.SessionID]; ok {
		entry.lastSeen = now
		m.mu.Unlock()
		return entry.shell, nil
	}
	m.mu.Unlock()

	opts := m.opts.Shell
	opts.SessionID = viewer.SessionID
	opts.Viewer = viewer
	opts.Telemetry = m.telemetry
	opts.Hook = m.opts.Hook
	shell, err := NewShell(opts)
	if err != nil {
		return nil, fmt.Errorf("dashboard: open session %s: %w", viewer.SessionID, err)
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		shell.Close()
		return nil, ErrSessionClosed
	}
	if entry, ok := m.sessions[viewer.SessionID]; ok {
		// lost a race with a concurrent Open for the same id
		entry.lastSeen = now
		m.mu.Unlock()
		shell.Close()
		return entry.shell, nil
	}
	m.sessions[viewer.SessionID] = &sessionEntry{shell: shell, lastSeen: now}
	m.mu.Unlock()

	m.telemetry.Record(ctx, EventSessionOpen, map[string]any{
		"session": viewer.SessionID,
		"user":    viewer.UserID,
		"locale":  viewer.Locale,
	})
	return shell, nil
}

// Get returns a tracked shell and marks it as seen.
func (m *SessionManager) Get(id string) (*Shell, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSession, id)
	}
	entry.lastSeen = m.opts.Now()
	return entry.shell, nil
}

// Session implements SessionSource.
func (m *SessionManager) Session(_ context.Context, id string) (Controls, error) {
	shell, err := m.Get(id)
	if err != nil {
		return nil, err
	}
	return shell, nil
}

// Attach implements PageSource. A tracked session id is resumed; any other
// id is replaced by a server-issued one so clients cannot mint sessions.
func (m *SessionManager) Attach(ctx context.Context, viewer ViewerContext) (Controls, error) {
	if viewer.SessionID != "" {
		if shell, err := m.Get(viewer.SessionID); err == nil {
			return shell, nil
		}
		viewer.SessionID = ""
	}
	shell, err := m.Open(ctx, viewer)
	if err != nil {
		return nil, err
	}
	return shell, nil
}

// CloseSession tears down one session.
func (m *SessionManager) CloseSession(ctx context.Context, id string) error {
	m.mu.Lock()
	entry, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSession, id)
	}
	entry.shell.Close()
	m.telemetry.Record(ctx, EventSessionClose, map[string]any{"session": id, "reason": "closed"})
	return nil
}

// Len reports the number of live sessions.
func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Reap closes sessions idle for longer than the idle timeout and returns how
// many were closed.
func (m *SessionManager) Reap(now time.Time) int {
	m.mu.Lock()
	var idle []string
	var shells []*Shell
	for id, entry := range m.sessions {
		if now.Sub(entry.lastSeen) > m.opts.IdleTimeout {
			idle = append(idle, id)
			shells = append(shells, entry.shell)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for i, shell := range shells {
		shell.Close()
		m.telemetry.Record(context.Background(), EventSessionClose, map[string]any{"session": idle[i], "reason": "idle"})
	}
	return len(shells)
}

// Run reaps idle sessions, and purges expired chart markup when the chart
// renderer supports it, every interval until ctx is done.
func (m *SessionManager) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.Reap(m.opts.Now())
			if charts, ok := m.opts.Shell.Charts.(interface{ Purge() int }); ok {
				charts.Purge()
			}
		}
	}
}

// Close tears down every session; later Opens fail with ErrSessionClosed.
func (m *SessionManager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	sessions := m.sessions
	m.sessions = map[string]*sessionEntry{}
	m.mu.Unlock()

	for id, entry := range sessions {
		entry.shell.Close()
		m.telemetry.Record(context.Background(), EventSessionClose, map[string]any{"session": id, "reason": "shutdown"})
	}
}
