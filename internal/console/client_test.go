package console

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestBearerTransportAttachesTokenWhenPresent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticToken("abc123"))
	if err := client.get(context.Background(), "/", nil); err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "Bearer abc123" {
		t.Fatalf("Authorization = %q, want %q", got, "Bearer abc123")
	}
}

func TestBearerTransportOmitsHeaderWhenTokenless(t *testing.T) {
	var sawHeader bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawHeader = r.Header["Authorization"]
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	// The request still goes out; the server decides what a tokenless call
	// may see.
	client := NewClient(srv.URL, staticToken(""))
	if err := client.get(context.Background(), "/", nil); err != nil {
		t.Fatalf("get: %v", err)
	}
	if sawHeader {
		t.Fatal("Authorization header must be omitted without a token")
	}
}

func TestClientLoginSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/auth/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"success":true,"token":"abc123","user":{"id":"1","email":"admin@example.com"},"expires_at":"2026-08-30T12:00:00Z"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticToken(""))
	creds, err := client.Login(context.Background(), "admin@example.com", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if creds.Token != "abc123" || creds.User.Email != "admin@example.com" {
		t.Fatalf("unexpected credentials: %+v", creds)
	}
}

func TestClientLoginRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"message":"invalid credentials"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticToken(""))
	_, err := client.Login(context.Background(), "admin@example.com", "wrong")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestClientLoginMalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>gateway error</html>`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticToken(""))
	_, err := client.Login(context.Background(), "admin@example.com", "pw")
	if !errors.Is(err, ErrServerError) {
		t.Fatalf("expected ErrServerError, got %v", err)
	}
}

func TestClientLoginIncompleteRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"token":"abc123"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticToken(""))
	_, err := client.Login(context.Background(), "admin@example.com", "pw")
	if !errors.Is(err, ErrServerError) {
		t.Fatalf("expected ErrServerError for incomplete record, got %v", err)
	}
}

func TestClientGetUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"message":"missing bearer token"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticToken(""))
	_, err := client.ListProducts(context.Background())
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClientListProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/product" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"success":true,"data":[{"id":"p1","title":"Wild Honey"},{"id":"p2","title":"Herbal Tea"}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, staticToken("abc123"))
	products, err := client.ListProducts(context.Background())
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if len(products) != 2 || products[0].Title != "Wild Honey" {
		t.Fatalf("unexpected products: %+v", products)
	}
}
