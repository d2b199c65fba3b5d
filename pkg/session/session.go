// Package session stores the state of diagram browsing sessions.
//
// A browsing session remembers the request a client started with, the
// position of its enumeration (as a [diagram.Cursor]) and the next page
// number, so that a later call can continue where the previous one stopped.
// Nothing live is kept: every backend stores plain serialized state.
//
// Backends:
//   - [MemoryStore]: in-process map, for tests and single-instance servers
//   - [FileStore]: JSON files in a directory, for the CLI
//   - [RedisStore]: Redis keys with native expiry, for shared deployments
//   - [MongoStore]: a MongoDB collection with a TTL index
//
// # Usage
//
//	store := session.NewMemoryStore()
//
//	sess, err := session.New("", req, session.DefaultTTL)
//	if err != nil {
//	    return err
//	}
//	store.Set(ctx, sess)
//
//	sess, err = store.Get(ctx, id)
//	if errors.Is(err, session.ErrExpired) {
//	    // the client waited too long
//	}
//	if sess == nil {
//	    // unknown session
//	}
package session

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/autofeyn/pkg/diagram"
	"github.com/matzehuels/autofeyn/pkg/io"
)

// ErrExpired is returned when a session has exceeded its TTL. A missing
// session is reported as a nil session and a nil error.
var ErrExpired = errors.New("expired")

// Session is the persisted state of one browsing session.
type Session struct {
	ID        string         `json:"id"`
	Request   io.Request     `json:"request"`
	Cursor    diagram.Cursor `json:"cursor"`
	Page      int            `json:"page"`   // index of the next page to serve
	Served    int            `json:"served"` // diagrams handed out so far
	ExpiresAt time.Time      `json:"expires_at"`
	CreatedAt time.Time      `json:"created_at"`
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Touch pushes the expiry ttl into the future.
func (s *Session) Touch(ttl time.Duration) {
	s.ExpiresAt = time.Now().Add(ttl)
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns nil, nil if the session doesn't exist.
	// Returns nil, ErrExpired if the session exists but has expired.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, session *Session) error

	// Delete removes a session. Deleting an unknown session is not an error.
	Delete(ctx context.Context, sessionID string) error

	// Cleanup removes expired sessions (may be a no-op where the backend
	// expires keys itself).
	Cleanup(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 30 * time.Minute

// GenerateID returns a new random session ID.
func GenerateID() string {
	return uuid.NewString()
}

// New creates a session for req. An empty id is replaced by a generated one.
func New(id string, req io.Request, ttl time.Duration) (*Session, error) {
	if id == "" {
		id = GenerateID()
	}
	now := time.Now()
	return &Session{
		ID:        id,
		Request:   req,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}, nil
}

// clone copies a session together with the slices it holds.
func clone(s Session) *Session {
	r := &s.Request
	r.IncomingElectrons = slices.Clone(r.IncomingElectrons)
	r.IncomingPositrons = slices.Clone(r.IncomingPositrons)
	r.IncomingPhotons = slices.Clone(r.IncomingPhotons)
	r.OutgoingElectrons = slices.Clone(r.OutgoingElectrons)
	r.OutgoingPositrons = slices.Clone(r.OutgoingPositrons)
	r.OutgoingPhotons = slices.Clone(r.OutgoingPhotons)
	r.Interactions = slices.Clone(r.Interactions)
	s.Cursor.Frames = slices.Clone(s.Cursor.Frames)
	return &s
}
