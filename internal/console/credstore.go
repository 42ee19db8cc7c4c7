// Package console is the client side of the admin product: the credential
// store, the session provider, the route guard, and an API client that
// stamps the bearer token on every privileged call. The operator CLI is its
// first consumer; any future Go front end composes the same pieces.
package console

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"villorya.app/internal/auth"
)

// Credentials is the durable session record: the bearer token and the user
// profile it belongs to. Both fields are written and cleared together.
type Credentials struct {
	Token string        `json:"token"`
	User  auth.Identity `json:"user"`
}

// Complete reports whether the record can rehydrate a session. A record with
// only one half present is treated as absent, never as partially logged in.
func (c Credentials) Complete() bool {
	return strings.TrimSpace(c.Token) != "" && c.User.ID != "" && c.User.Email != ""
}

// CredentialStore persists Credentials across process restarts.
type CredentialStore interface {
	// Read returns the stored record. Malformed or partial data reads as
	// absent: the session must fail open to logged-out, not crash boot.
	Read() (Credentials, bool)
	Write(Credentials) error
	// Clear removes the record. Clearing an empty store is a no-op.
	Clear() error
}

// FileStore keeps the record as a mode-0600 JSON file, the way CLI tools
// keep their tokens.
type FileStore struct {
	path string
}

// NewFileStore stores credentials at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultCredentialsPath returns the conventional location under the user
// config directory.
func DefaultCredentialsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "villorya", "credentials.json"), nil
}

func (s *FileStore) Read() (Credentials, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Credentials{}, false
	}
	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return Credentials{}, false
	}
	if !creds.Complete() {
		return Credentials{}, false
	}
	return creds, true
}

func (s *FileStore) Write(creds Credentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	// Write-both-or-nothing: land the record in a temp file, then rename.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// MemStore is an in-memory CredentialStore used by tests and by callers that
// do not want credentials on disk.
type MemStore struct {
	creds Credentials
	set   bool
}

func NewMemStore() *MemStore { return &MemStore{} }

func (s *MemStore) Read() (Credentials, bool) {
	if !s.set || !s.creds.Complete() {
		return Credentials{}, false
	}
	return s.creds, true
}

func (s *MemStore) Write(creds Credentials) error {
	s.creds = creds
	s.set = true
	return nil
}

func (s *MemStore) Clear() error {
	s.creds = Credentials{}
	s.set = false
	return nil
}

// Seed puts a raw record into the store without completeness checks, so
// tests can simulate corruption.
func (s *MemStore) Seed(creds Credentials) {
	s.creds = creds
	s.set = true
}
