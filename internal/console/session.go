package console

import (
	"context"
	"errors"
	"sync"

	"villorya.app/internal/auth"
)

// State is the session lifecycle state.
type State int

const (
	// StateUnknown exists only between construction and Restore; no
	// privileged surface may render while the session is unknown.
	StateUnknown State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// LoginReason classifies a failed login.
type LoginReason int

const (
	ReasonNone LoginReason = iota
	ReasonInvalidCredentials
	ReasonNetworkError
	ReasonServerError
)

func (r LoginReason) String() string {
	switch r {
	case ReasonInvalidCredentials:
		return "invalid credentials"
	case ReasonNetworkError:
		return "network error"
	case ReasonServerError:
		return "server error"
	default:
		return ""
	}
}

// LoginResult is the tagged outcome of a login attempt. Callers that only
// care about the original boolean contract check Ok.
type LoginResult struct {
	Ok     bool
	Reason LoginReason
}

// Backend exchanges credentials for a session record. The API client
// implements it; tests substitute stubs.
type Backend interface {
	Login(ctx context.Context, email, password string) (Credentials, error)
}

// Session is the single source of truth for "is the operator logged in, and
// as whom". It is constructed explicitly and passed down from the
// composition root; there is no package-level instance.
//
// Token, user and state always change together under one lock, so the
// session is never observable with IsAuthenticated true but no token.
type Session struct {
	store   CredentialStore
	backend Backend

	mu    sync.RWMutex
	state State
	creds Credentials
}

// NewSession builds a session in StateUnknown. Call Restore before gating
// anything on it.
func NewSession(store CredentialStore, backend Backend) *Session {
	return &Session{store: store, backend: backend, state: StateUnknown}
}

// Connect wires a session and an API client together: the client draws its
// bearer token from the session, the session logs in through the client.
func Connect(baseURL string, store CredentialStore) (*Session, *Client) {
	sess := &Session{store: store, state: StateUnknown}
	client := NewClient(baseURL, sess)
	sess.backend = client
	return sess, client
}

// Restore resolves the boot-time state from the credential store. A missing,
// malformed or partial record resolves to anonymous.
func (s *Session) Restore() State {
	creds, ok := s.store.Read()

	s.mu.Lock()
	defer s.mu.Unlock()
	if ok && creds.Complete() {
		s.creds = creds
		s.state = StateAuthenticated
	} else {
		s.creds = Credentials{}
		s.state = StateAnonymous
	}
	return s.state
}

// Login performs one round trip to the authentication endpoint. On success
// the record is written through to the credential store before the in-memory
// state flips to authenticated. On failure nothing is written and the
// outcome is classified in the result.
//
// Concurrent logins race; the last one to resolve wins. Each write is atomic
// under the session lock, so no interleaving breaks the token/state pairing.
func (s *Session) Login(ctx context.Context, email, password string) LoginResult {
	creds, err := s.backend.Login(ctx, email, password)
	if err != nil {
		s.mu.Lock()
		if s.state == StateUnknown {
			s.state = StateAnonymous
		}
		s.mu.Unlock()
		return LoginResult{Ok: false, Reason: classifyLoginError(err)}
	}
	if !creds.Complete() {
		// Backend said success but the record cannot rehydrate a session.
		return LoginResult{Ok: false, Reason: ReasonServerError}
	}

	if err := s.store.Write(creds); err != nil {
		return LoginResult{Ok: false, Reason: ReasonServerError}
	}

	s.mu.Lock()
	s.creds = creds
	s.state = StateAuthenticated
	s.mu.Unlock()
	return LoginResult{Ok: true}
}

// Logout clears the durable record and the in-memory state. Purely local:
// no server call, and safe to repeat.
func (s *Session) Logout() {
	_ = s.store.Clear()

	s.mu.Lock()
	s.creds = Credentials{}
	s.state = StateAnonymous
	s.mu.Unlock()
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsAuthenticated reports whether a complete session is present.
func (s *Session) IsAuthenticated() bool {
	return s.State() == StateAuthenticated
}

// Token returns the current bearer token, or "" when anonymous.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateAuthenticated {
		return ""
	}
	return s.creds.Token
}

// User returns the signed-in profile.
func (s *Session) User() (auth.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateAuthenticated {
		return auth.Identity{}, false
	}
	return s.creds.User, true
}

func classifyLoginError(err error) LoginReason {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return ReasonInvalidCredentials
	case errors.Is(err, ErrServerError):
		return ReasonServerError
	default:
		return ReasonNetworkError
	}
}
