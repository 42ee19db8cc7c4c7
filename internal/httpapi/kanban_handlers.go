package httpapi

import (
	"net/http"
	"slices"
	"strings"

	"villorya.app/internal/store"
)

type ticketPayload struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	Priority     string `json:"priority"`
	ExternalLink string `json:"externalLink"`
	AssignedTo   string `json:"assignedTo"`
	StartDate    string `json:"startDate"`
	DueDate      string `json:"dueDate"`
	Status       string `json:"status"`
}

func (p ticketPayload) apply(dst *store.Ticket) {
	dst.Title = strings.TrimSpace(p.Title)
	dst.Description = p.Description
	dst.Category = p.Category
	dst.Priority = p.Priority
	dst.ExternalLink = p.ExternalLink
	dst.AssignedTo = p.AssignedTo
	dst.StartDate = p.StartDate
	dst.DueDate = p.DueDate
	dst.Status = p.Status
}

func (p ticketPayload) validate() string {
	if strings.TrimSpace(p.Title) == "" {
		return "title is required"
	}
	switch p.Priority {
	case "", "low", "medium", "high":
	default:
		return "priority must be low, medium or high"
	}
	if p.Status != "" && !slices.Contains(store.TicketStatuses, p.Status) {
		return "status must be one of: " + strings.Join(store.TicketStatuses, ", ")
	}
	return ""
}

func (a *API) handleTicketsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		tickets, err := a.store.Tickets(r.Context()).List(r.Context())
		if err != nil {
			handleStoreError(w, r, err)
			return
		}
		writeData(w, http.StatusOK, tickets)
	case http.MethodPost:
		var payload ticketPayload
		if err := decodeJSON(w, r, &payload); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		if msg := payload.validate(); msg != "" {
			writeError(w, r, http.StatusBadRequest, msg)
			return
		}
		var ticket store.Ticket
		payload.apply(&ticket)
		if err := a.store.Tickets(r.Context()).Create(r.Context(), &ticket); err != nil {
			handleStoreError(w, r, err)
			return
		}
		writeData(w, http.StatusCreated, ticket)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleTicketResource(w http.ResponseWriter, r *http.Request) {
	id := resourceID(r.URL.Path, "/api/v1/kanban/")
	if id == "" {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	tickets := a.store.Tickets(r.Context())
	switch r.Method {
	case http.MethodGet:
		ticket, err := tickets.Find(r.Context(), id)
		if err != nil {
			handleStoreError(w, r, err)
			return
		}
		writeData(w, http.StatusOK, ticket)
	case http.MethodPut:
		// Full update; dragging a card between columns arrives here as well,
		// as a payload differing only in status.
		var payload ticketPayload
		if err := decodeJSON(w, r, &payload); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		if msg := payload.validate(); msg != "" {
			writeError(w, r, http.StatusBadRequest, msg)
			return
		}
		ticket, err := tickets.Find(r.Context(), id)
		if err != nil {
			handleStoreError(w, r, err)
			return
		}
		payload.apply(ticket)
		if err := tickets.Update(r.Context(), ticket); err != nil {
			handleStoreError(w, r, err)
			return
		}
		writeData(w, http.StatusOK, ticket)
	case http.MethodDelete:
		if err := tickets.Delete(r.Context(), id); err != nil {
			handleStoreError(w, r, err)
			return
		}
		writeData(w, http.StatusOK, map[string]string{"id": id})
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}
