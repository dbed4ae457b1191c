// Package session gates access to the admin views. The session itself is
// a pair of persisted flags, authenticated and remember, checked against
// durable storage on every admission so a revoked session takes effect at
// the next navigation.
package session

import (
	"context"
	"crypto/subtle"
	"errors"

	"github.com/Dyno1404/Justredact/internal/auth"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Session is the persisted admin session state. Remember is only
// meaningful while Authenticated is set; stores normalize it away on load
// otherwise.
type Session struct {
	Authenticated bool
	Remember      bool
}

// Store is the persistence port for session flags. Implementations must
// survive process restarts except where documented (the in-memory store
// exists for tests).
type Store interface {
	Load(ctx context.Context) (Session, error)
	Save(ctx context.Context, s Session) error
	Clear(ctx context.Context) error
}

// Credentials configures the login predicate. Email defaults to the
// built-in admin address. When PasswordHash is set it must be an Argon2id
// PHC string and takes precedence over the built-in password.
type Credentials struct {
	Email        string
	PasswordHash string
}

const (
	// DefaultEmail is the built-in admin login.
	DefaultEmail = "admin@justredact.com"

	defaultPassword = "admin123"
)

// Gate validates logins and answers admission checks.
type Gate struct {
	store Store
	creds Credentials
}

func NewGate(store Store, creds Credentials) *Gate {
	if creds.Email == "" {
		creds.Email = DefaultEmail
	}
	return &Gate{store: store, creds: creds}
}

// Login checks the credential pair. On success it persists
// authenticated=true and the caller's remember preference. On failure it
// returns ErrInvalidCredentials and leaves persisted state untouched.
func (g *Gate) Login(ctx context.Context, email, password string, remember bool) error {
	if !g.match(email, password) {
		return ErrInvalidCredentials
	}
	return g.store.Save(ctx, Session{Authenticated: true, Remember: remember})
}

func (g *Gate) match(email, password string) bool {
	if subtle.ConstantTimeCompare([]byte(email), []byte(g.creds.Email)) != 1 {
		return false
	}
	if g.creds.PasswordHash != "" {
		ok, err := auth.VerifyPassword(password, g.creds.PasswordHash)
		return err == nil && ok
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(defaultPassword)) == 1
}

// Logout clears authentication. The remember preference is kept: it is a
// login-screen convenience, not an authorization grant, and loads as
// false anyway while the session is unauthenticated.
func (g *Gate) Logout(ctx context.Context) error {
	s, err := g.store.Load(ctx)
	if err != nil {
		s = Session{}
	}
	s.Authenticated = false
	return g.store.Save(ctx, s)
}

// Admitted reports whether admin views may be entered. It always re-reads
// the store rather than trusting any cached value.
func (g *Gate) Admitted(ctx context.Context) bool {
	s, err := g.store.Load(ctx)
	return err == nil && s.Authenticated
}

// AutoAdmit reports whether the login screen may be skipped entirely,
// which requires both an authenticated session and the remember flag.
func (g *Gate) AutoAdmit(ctx context.Context) bool {
	s, err := g.store.Load(ctx)
	return err == nil && s.Authenticated && s.Remember
}

// normalize enforces that remember never reads as true for an
// unauthenticated session.
func normalize(s Session) Session {
	if !s.Authenticated {
		s.Remember = false
	}
	return s
}
