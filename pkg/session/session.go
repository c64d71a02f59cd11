// Package session registers running exhibits so other commands can find them.
//
// A [Session] says that an exhibit with a given name is running: which
// process run owns it, where its control API listens and which catalog it
// shows. It deliberately carries no navigation or autoplay state; every run
// starts from the first artwork. A running exhibit refreshes its session
// with a heartbeat, so a session whose process died expires on its own.
//
// Two [Store] implementations are provided:
//   - [FileStore]: JSON files in a state directory, for a single host
//   - [RedisStore]: Redis keys with server-side expiry, for several hosts
//
// # Usage
//
//	store, err := session.NewFileStore("")  // ~/.local/state/exhibit/sessions
//	if err != nil {
//	    return err
//	}
//	sess, err := store.Get(ctx, "lobby")
//	if err != nil {
//	    return err
//	}
//	if sess != nil && sess.Listen != "" {
//	    fmt.Println("control API at", sess.Listen)
//	}
package session

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultTTL is how long a registration lives without a heartbeat.
	DefaultTTL = 2 * time.Minute

	// HeartbeatInterval is how often a running exhibit refreshes its session.
	HeartbeatInterval = 30 * time.Second

	// DefaultName is the exhibit name used when none is given.
	DefaultName = "default"
)

// Session registers one running exhibit.
type Session struct {
	// Name identifies the exhibit and is the storage key.
	Name string `json:"name"`

	// RunID identifies the process run that owns the registration.
	RunID string `json:"run_id"`

	// Listen is the control API address, empty when the API is off.
	Listen string `json:"listen,omitempty"`

	Catalog  string `json:"catalog,omitempty"`
	Host     string `json:"host,omitempty"`
	PID      int    `json:"pid,omitempty"`
	Headless bool   `json:"headless,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// New creates a session for name that expires after ttl. A blank runID gets
// a fresh UUID.
func New(name, runID string, ttl time.Duration) *Session {
	if runID == "" {
		runID = uuid.NewString()
	}
	now := time.Now()
	return &Session{
		Name:      name,
		RunID:     runID,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Touch bumps UpdatedAt and pushes the expiry ttl into the future.
func (s *Session) Touch(ttl time.Duration) {
	now := time.Now()
	s.UpdatedAt = now
	s.ExpiresAt = now.Add(ttl)
}

// Store is the interface for session storage backends. Implementations are
// safe for concurrent use.
type Store interface {
	// Get retrieves a session by exhibit name.
	// Returns nil, nil if the session doesn't exist or has expired.
	Get(ctx context.Context, name string) (*Session, error)

	// List returns every live session ordered by name.
	List(ctx context.Context) ([]*Session, error)

	// Set stores a session under its Name.
	Set(ctx context.Context, sess *Session) error

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, name string) error

	// Cleanup removes expired sessions where the backend does not expire
	// them itself.
	Cleanup(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

func sortByName(sessions []*Session) {
	slices.SortFunc(sessions, func(a, b *Session) int { return strings.Compare(a.Name, b.Name) })
}
