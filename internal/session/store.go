// Package session holds the authenticated identity and gates access to the
// rest of the client. The identity is persisted in a local sqlite key-value
// table so it survives process restarts, mirroring the durable store the
// original product kept sessions in.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	_ "modernc.org/sqlite"

	"careertrack/internal/api"
)

// State is the session lifecycle. There is no transition back to
// StateUnresolved: once Restore has run, the store is either authenticated
// or anonymous for the rest of the process.
type State int

const (
	StateUnresolved State = iota
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unresolved"
	}
}

const identityKey = "identity"

type Store struct {
	db *sql.DB

	mu    sync.RWMutex
	state State
	ident *api.Identity
}

// Open opens (and creates if missing) the session database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS session (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate session: %w", err)
	}
	return &Store{db: db, state: StateUnresolved}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Restore loads the persisted identity. A missing row means anonymous. A
// corrupt row (unparseable JSON, empty token) is cleared and treated as
// anonymous rather than surfaced: a broken session file must never lock the
// user out of logging back in.
func (s *Store) Restore(ctx context.Context) error {
	row := s.db.QueryRowContext(ctx, `SELECT value FROM session WHERE key = ?`, identityKey)

	var raw string
	if err := row.Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			s.setState(StateAnonymous, nil)
			return nil
		}
		return fmt.Errorf("session restore: %w", err)
	}

	var ident api.Identity
	if err := json.Unmarshal([]byte(raw), &ident); err != nil || ident.Token == "" {
		_, _ = s.db.ExecContext(ctx, `DELETE FROM session WHERE key = ?`, identityKey)
		s.setState(StateAnonymous, nil)
		return nil
	}

	s.setState(StateAuthenticated, &ident)
	return nil
}

// Login stores the identity in memory and durably, unblocking protected
// operations.
func (s *Store) Login(ctx context.Context, ident *api.Identity) error {
	raw, err := json.Marshal(ident)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO session (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, identityKey, string(raw))
	if err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	s.setState(StateAuthenticated, ident)
	return nil
}

// Logout clears the identity in memory and durably. Requests already in
// flight complete with the credential they captured; every request issued
// afterwards goes out unauthenticated.
func (s *Store) Logout(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE key = ?`, identityKey); err != nil {
		return fmt.Errorf("session clear: %w", err)
	}
	s.setState(StateAnonymous, nil)
	return nil
}

// Current returns the identity (nil when not authenticated) and the state.
func (s *Store) Current() (*api.Identity, State) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ident, s.state
}

// Token implements api.TokenSource. Empty unless authenticated.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateAuthenticated || s.ident == nil {
		return ""
	}
	return s.ident.Token
}

// TokenExpiry reads the exp claim from the stored token without verifying
// the signature. Verification is the server's job; this is only for showing
// the user when their session will lapse.
func (s *Store) TokenExpiry() (time.Time, bool) {
	s.mu.RLock()
	tok := ""
	if s.ident != nil {
		tok = s.ident.Token
	}
	s.mu.RUnlock()
	if tok == "" {
		return time.Time{}, false
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(tok, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func (s *Store) setState(state State, ident *api.Identity) {
	s.mu.Lock()
	s.state = state
	s.ident = ident
	s.mu.Unlock()
}
