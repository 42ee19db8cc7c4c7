package console

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"villorya.app/internal/store"
)

var (
	// ErrInvalidCredentials means the backend rejected the email/password pair.
	ErrInvalidCredentials = errors.New("console: invalid credentials")
	// ErrServerError means the backend answered but not with a usable session.
	ErrServerError = errors.New("console: server error")
	// ErrUnauthorized means a privileged call was rejected. The session is
	// not invalidated automatically; the caller decides what to do.
	ErrUnauthorized = errors.New("console: unauthorized")
)

// TokenSource supplies the bearer token current at the moment a request is
// issued. *Session satisfies it.
type TokenSource interface {
	Token() string
}

// BearerTransport stamps Authorization: Bearer <token> on every outgoing
// request. When no token is present the request still goes out bare; the
// backend is the sole enforcer of authorization.
type BearerTransport struct {
	Source TokenSource
	Base   http.RoundTripper
}

func (t *BearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	if token := t.Source.Token(); token != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return base.RoundTrip(req)
}

// Client is a typed client for the admin API. Privileged calls carry the
// session's bearer token via BearerTransport.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the API at baseURL using tokens from src.
func NewClient(baseURL string, src TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   15 * time.Second,
			Transport: &BearerTransport{Source: src},
		},
	}
}

type loginWire struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	User    struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
	Message string `json:"message"`
}

// Login exchanges credentials for a session record. It implements Backend.
func (c *Client) Login(ctx context.Context, email, password string) (Credentials, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return Credentials{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/auth/login", bytes.NewReader(body))
	if err != nil {
		return Credentials{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Credentials{}, fmt.Errorf("login request: %w", err)
	}
	defer resp.Body.Close()

	var wire loginWire
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return Credentials{}, fmt.Errorf("%w: malformed login response", ErrServerError)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusBadRequest:
		return Credentials{}, ErrInvalidCredentials
	case resp.StatusCode != http.StatusOK || !wire.Success:
		return Credentials{}, fmt.Errorf("%w: status %d", ErrServerError, resp.StatusCode)
	}

	creds := Credentials{Token: wire.Token}
	creds.User.ID = wire.User.ID
	creds.User.Email = wire.User.Email
	if !creds.Complete() {
		return Credentials{}, fmt.Errorf("%w: incomplete session record", ErrServerError)
	}
	return creds, nil
}

// ListProducts fetches the catalog.
func (c *Client) ListProducts(ctx context.Context) ([]store.Product, error) {
	var out []store.Product
	if err := c.get(ctx, "/api/v1/product", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListTickets fetches the kanban board.
func (c *Client) ListTickets(ctx context.Context) ([]store.Ticket, error) {
	var out []store.Ticket
	if err := c.get(ctx, "/api/v1/kanban", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListContactTickets fetches the contact triage board.
func (c *Client) ListContactTickets(ctx context.Context) ([]store.ContactTicket, error) {
	var out []store.ContactTicket
	if err := c.get(ctx, "/api/v1/contact", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListSuppliers fetches suppliers of the given kind ("package" or "raw").
func (c *Client) ListSuppliers(ctx context.Context, kind string) ([]store.Supplier, error) {
	path := "/api/v1/package-suppliers"
	if kind == store.SupplierKindRaw {
		path = "/api/v1/raw-suppliers"
	}
	var out []store.Supplier
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}

	var wire struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Message string          `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return fmt.Errorf("%w: malformed response for %s", ErrServerError, path)
	}
	if resp.StatusCode != http.StatusOK || !wire.Success {
		if wire.Message != "" {
			return fmt.Errorf("%w: %s", ErrServerError, wire.Message)
		}
		return fmt.Errorf("%w: status %d", ErrServerError, resp.StatusCode)
	}
	if dst != nil && len(wire.Data) > 0 {
		if err := json.Unmarshal(wire.Data, dst); err != nil {
			return fmt.Errorf("%w: decode %s: %v", ErrServerError, path, err)
		}
	}
	return nil
}
