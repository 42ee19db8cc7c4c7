package httpapi

import (
	"net/http"
	"strings"

	"villorya.app/internal/obs"
	"villorya.app/internal/store"
)

// handleSubscribers lists every subscriber for the console dashboard.
func (a *API) handleSubscribers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	subscribers, err := a.store.Newsletter(r.Context()).List(r.Context())
	if err != nil {
		handleStoreError(w, r, err)
		return
	}
	writeData(w, http.StatusOK, subscribers)
}

type subscribeRequest struct {
	Email string `json:"email"`
}

// handleSubscribe is the public signup endpoint used by the storefront.
func (a *API) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	var req subscribeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		writeError(w, r, http.StatusBadRequest, "a valid email is required")
		return
	}
	sub := store.Subscriber{Email: email}
	if err := a.store.Newsletter(r.Context()).Create(r.Context(), &sub); err != nil {
		handleStoreError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, sub)
}

type campaignRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type campaignResponse struct {
	Recipients int `json:"recipients"`
}

// handleCampaignSend delivers a campaign to every active subscriber.
func (a *API) handleCampaignSend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	var req campaignRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Body) == "" {
		writeError(w, r, http.StatusBadRequest, "subject and body are required")
		return
	}

	active, err := a.store.Newsletter(r.Context()).ListActive(r.Context())
	if err != nil {
		handleStoreError(w, r, err)
		return
	}
	recipients := make([]string, 0, len(active))
	for _, sub := range active {
		recipients = append(recipients, sub.Email)
	}

	sent, err := a.sender.Send(r.Context(), req.Subject, req.Body, recipients)
	if err != nil {
		obs.LogEvent("error", "newsletter_send_failed", map[string]any{
			"sent": sent, "total": len(recipients), "error": err.Error(),
		})
		writeError(w, r, http.StatusBadGateway, "newsletter delivery failed")
		return
	}
	obs.LogEvent("info", "newsletter_sent", map[string]any{"recipients": sent})
	writeData(w, http.StatusOK, campaignResponse{Recipients: sent})
}
