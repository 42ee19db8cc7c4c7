package httpapi

import (
	"net/http"
	"strings"

	"villorya.app/internal/store"
)

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// handleContactsCollection accepts visitor messages (public POST) and lists
// the triage board for the console (privileged GET).
func (a *API) handleContactsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		tickets, err := a.store.Contacts(r.Context()).List(r.Context())
		if err != nil {
			handleStoreError(w, r, err)
			return
		}
		writeData(w, http.StatusOK, tickets)
	case http.MethodPost:
		var req contactRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Message) == "" {
			writeError(w, r, http.StatusBadRequest, "name, email and message are required")
			return
		}
		ticket := store.ContactTicket{
			Name:    strings.TrimSpace(req.Name),
			Email:   strings.TrimSpace(req.Email),
			Message: req.Message,
		}
		if err := a.store.Contacts(r.Context()).Create(r.Context(), &ticket); err != nil {
			handleStoreError(w, r, err)
			return
		}
		writeData(w, http.StatusCreated, ticket)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

type completeRequest struct {
	AdminComment string `json:"adminComment"`
}

func (a *API) handleContactResource(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/contact/")
	rest = strings.Trim(rest, "/")
	if rest == "" {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	contacts := a.store.Contacts(r.Context())

	// triage actions
	if id, ok := strings.CutSuffix(rest, "/move-to-pending"); ok {
		if r.Method != http.MethodPut {
			methodNotAllowed(w, r, http.MethodPut)
			return
		}
		if err := contacts.MarkPending(r.Context(), id); err != nil {
			handleStoreError(w, r, err)
			return
		}
		ticket, err := contacts.Find(r.Context(), id)
		if err != nil {
			handleStoreError(w, r, err)
			return
		}
		writeData(w, http.StatusOK, ticket)
		return
	}
	if id, ok := strings.CutSuffix(rest, "/complete"); ok {
		if r.Method != http.MethodPut {
			methodNotAllowed(w, r, http.MethodPut)
			return
		}
		var req completeRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		if err := contacts.Complete(r.Context(), id, req.AdminComment); err != nil {
			handleStoreError(w, r, err)
			return
		}
		ticket, err := contacts.Find(r.Context(), id)
		if err != nil {
			handleStoreError(w, r, err)
			return
		}
		writeData(w, http.StatusOK, ticket)
		return
	}

	if strings.Contains(rest, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		ticket, err := contacts.Find(r.Context(), rest)
		if err != nil {
			handleStoreError(w, r, err)
			return
		}
		writeData(w, http.StatusOK, ticket)
	case http.MethodDelete:
		if err := contacts.Delete(r.Context(), rest); err != nil {
			handleStoreError(w, r, err)
			return
		}
		writeData(w, http.StatusOK, map[string]string{"id": rest})
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodDelete)
	}
}
