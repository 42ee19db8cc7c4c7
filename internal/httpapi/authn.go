package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"villorya.app/internal/auth"
)

const (
	authHeader = "Authorization"
	bearer     = "Bearer "
)

// publicRoutes lists method+path pairs that are reachable without a session.
// Visitor-facing writes (contact form, newsletter signup) are public; every
// other /api path is console-only.
var publicRoutes = map[string][]string{
	http.MethodGet: {
		"/", "/healthz", "/readyz", "/metrics", "/api/v1/info",
		"/api/v1/category",
	},
	http.MethodPost: {
		"/api/v1/auth/login",
		"/api/v1/contact",
		"/api/v1/newsletter/subscribe",
	},
}

// withAuth is the server-side route guard: privileged paths require a valid
// bearer token, everything else passes through.
func (a *API) withAuth(next http.Handler) http.Handler {
	if a == nil || a.tokens == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next.ServeHTTP(w, r)
			return
		}

		if isPublicRoute(r.Method, r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		token, err := extractBearerToken(r.Header.Get(authHeader))
		if err != nil {
			w.Header().Set("WWW-Authenticate", `Bearer realm="villorya"`)
			writeError(w, r, http.StatusUnauthorized, err.Error())
			return
		}

		claims, err := a.tokens.ParseAndValidate(token)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidToken) {
				w.Header().Set("WWW-Authenticate", `Bearer realm="villorya", error="invalid_token"`)
				writeError(w, r, http.StatusUnauthorized, "invalid token")
				return
			}
			writeError(w, r, http.StatusInternalServerError, "authentication error")
			return
		}

		ctx := auth.ContextWithIdentity(r.Context(), auth.Identity{ID: claims.Subject, Email: claims.Email})
		ctx = auth.ContextWithToken(ctx, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractBearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", errors.New("missing bearer token")
	}
	if !strings.HasPrefix(strings.ToLower(header), strings.ToLower(bearer)) {
		return "", errors.New("invalid authorization scheme")
	}
	token := strings.TrimSpace(header[len(bearer):])
	if token == "" {
		return "", errors.New("missing bearer token")
	}
	return token, nil
}

func isPublicRoute(method, path string) bool {
	for _, p := range publicRoutes[method] {
		if path == p {
			return true
		}
	}
	return false
}
