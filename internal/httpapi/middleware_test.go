package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"villorya.app/internal/auth"
	"villorya.app/internal/newsletter"
)

func TestRequestIDAssignedAndEchoed(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if seen == "" {
		t.Fatal("no request id in context")
	}
	if got := rec.Header().Get("X-Request-Id"); got != seen {
		t.Fatalf("header %q != context %q", got, seen)
	}

	// A caller-provided id is kept.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-Id", "caller-id-7")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if seen != "caller-id-7" || rec.Header().Get("X-Request-Id") != "caller-id-7" {
		t.Fatalf("caller id not preserved: context=%q header=%q", seen, rec.Header().Get("X-Request-Id"))
	}
}

func TestSecurityHeaders(t *testing.T) {
	h := SecurityHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatal("missing nosniff header")
	}
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Fatal("missing frame options header")
	}
}

func TestLoginRateLimit(t *testing.T) {
	fake := newFakeStore()
	tokens, err := auth.NewTokenService(testSecret)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	api := New(ReadyProbe{}, "test", fake, tokens, newsletter.NewNoopSender(), nil)
	api.loginBurst = 2
	api.loginPerMin = 1

	srv := httptest.NewServer(api.Handler())
	t.Cleanup(srv.Close)
	client := &apiClient{t: t, base: srv.URL}

	body := map[string]string{"email": "a@b.c", "password": "x"}
	for i := 0; i < 2; i++ {
		if resp := client.post("/api/v1/auth/login", body); resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("attempt %d: status %d, want 401", i+1, resp.StatusCode)
		}
	}
	resp := client.post("/api/v1/auth/login", body)
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("status %d, want 429", resp.StatusCode)
	}
	if resp.Header.Get("Retry-After") == "" {
		t.Fatal("missing Retry-After header")
	}

	// Other endpoints are not throttled.
	for i := 0; i < 5; i++ {
		if resp := client.get("/healthz"); resp.StatusCode != http.StatusOK {
			t.Fatalf("healthz throttled: %d", resp.StatusCode)
		}
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:4321"
	if got := clientIP(req); got != "10.0.0.1" {
		t.Fatalf("clientIP = %q", got)
	}

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if got := clientIP(req); got != "203.0.113.9" {
		t.Fatalf("clientIP with XFF = %q", got)
	}
}

func TestMaxBodyBytesRejectsOversizedLogin(t *testing.T) {
	srv, _ := newTestAPI(t, nil)
	client := &apiClient{t: t, base: srv.URL}

	big := make([]byte, 2<<20)
	for i := range big {
		big[i] = 'a'
	}
	resp := client.post("/api/v1/auth/login", map[string]string{"email": "a@b.c", "password": string(big)})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("oversized body: status %d, want 400", resp.StatusCode)
	}
}
