// Package httpapi is the HTTP layer of the Villorya admin API: the login
// endpoint, the privileged CRUD surface behind the bearer guard, and the
// operational endpoints.
package httpapi

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/rs/cors"

	"villorya.app/internal/auth"
	"villorya.app/internal/newsletter"
	"villorya.app/internal/obs"
	"villorya.app/internal/store"
)

// ReadyProbe reports backend readiness (DB ping when configured).
type ReadyProbe struct {
	DB *sql.DB
}

func (rp ReadyProbe) Check(ctx context.Context) error {
	if rp.DB == nil {
		return nil
	}
	return rp.DB.PingContext(ctx)
}

// API is the HTTP layer.
type API struct {
	mux        *http.ServeMux
	readyProbe ReadyProbe
	version    string

	store  store.Store
	tokens *auth.TokenService
	sender newsletter.Sender

	allowedOrigins []string

	// login rate limit knobs, overridable in tests
	loginBurst  int
	loginPerMin int
}

// New wires routes over the given dependencies.
func New(rp ReadyProbe, version string, st store.Store, tokens *auth.TokenService, sender newsletter.Sender, allowedOrigins []string) *API {
	a := &API{
		mux:            http.NewServeMux(),
		readyProbe:     rp,
		version:        version,
		store:          st,
		tokens:         tokens,
		sender:         sender,
		allowedOrigins: allowedOrigins,
		loginBurst:     5,
		loginPerMin:    10,
	}

	// health/ready/info
	a.mux.HandleFunc("/healthz", a.Healthz)
	a.mux.HandleFunc("/readyz", a.Ready)
	a.mux.HandleFunc("/api/v1/info", a.Info)

	// Prometheus metrics
	a.mux.Handle("/metrics", obs.Handler())

	// auth
	a.mux.HandleFunc("/api/v1/auth/login", a.handleLogin)

	// privileged admin surface
	a.mux.HandleFunc("/api/v1/product", a.handleProductsCollection)
	a.mux.HandleFunc("/api/v1/product/", a.handleProductResource)
	a.mux.HandleFunc("/api/v1/category", a.handleCategoriesCollection)
	a.mux.HandleFunc("/api/v1/category/", a.handleCategoryResource)
	a.mux.HandleFunc("/api/v1/rd", a.handleResearchCollection)
	a.mux.HandleFunc("/api/v1/rd/", a.handleResearchResource)
	a.mux.HandleFunc("/api/v1/package-suppliers", a.supplierCollectionHandler(store.SupplierKindPackage))
	a.mux.HandleFunc("/api/v1/package-suppliers/", a.supplierResourceHandler(store.SupplierKindPackage))
	a.mux.HandleFunc("/api/v1/raw-suppliers", a.supplierCollectionHandler(store.SupplierKindRaw))
	a.mux.HandleFunc("/api/v1/raw-suppliers/", a.supplierResourceHandler(store.SupplierKindRaw))
	a.mux.HandleFunc("/api/v1/kanban", a.handleTicketsCollection)
	a.mux.HandleFunc("/api/v1/kanban/", a.handleTicketResource)
	a.mux.HandleFunc("/api/v1/newsletter", a.handleSubscribers)
	a.mux.HandleFunc("/api/v1/newsletter/subscribe", a.handleSubscribe)
	a.mux.HandleFunc("/api/v1/newsletter/send", a.handleCampaignSend)
	a.mux.HandleFunc("/api/v1/cms/", a.handlePageResource)
	a.mux.HandleFunc("/api/v1/contact", a.handleContactsCollection)
	a.mux.HandleFunc("/api/v1/contact/", a.handleContactResource)

	a.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	return a
}

// Handler returns the fully wrapped http.Handler for the server.
func (a *API) Handler() http.Handler {
	var h http.Handler = a.mux
	h = a.withAuth(h)
	h = a.withLoginRateLimit(h)
	h = LoggingJSON(h)
	h = obs.Instrument(h)
	h = MaxBodyBytes(h, 1<<20)
	h = a.corsMiddleware().Handler(h)
	h = SecurityHeaders(h)
	h = RequestID(h)
	return h
}

func (a *API) corsMiddleware() *cors.Cors {
	opts := cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         600,
	}
	if len(a.allowedOrigins) > 0 {
		opts.AllowedOrigins = a.allowedOrigins
	} else {
		// dev default: the console served from localhost
		opts.AllowOriginFunc = func(origin string) bool {
			return isLocalOrigin(origin)
		}
	}
	return cors.New(opts)
}

// --- operational handlers ---

func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "villorya-api",
		"version": a.version,
	})
}

func (a *API) Ready(w http.ResponseWriter, r *http.Request) {
	if err := a.readyProbe.Check(r.Context()); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "not ready: "+err.Error())
		return
	}
	writeData(w, http.StatusOK, map[string]any{"status": "ready"})
}

func (a *API) Info(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, map[string]any{
		"name":    "villorya-api",
		"time":    time.Now().UTC().Format(time.RFC3339),
		"version": a.version,
	})
}
