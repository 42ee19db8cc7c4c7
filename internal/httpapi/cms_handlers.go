package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"villorya.app/internal/store"
)

type pagePayload struct {
	Title string          `json:"title"`
	Body  json.RawMessage `json:"body"`
}

type pageResponse struct {
	Slug      string          `json:"slug"`
	Title     string          `json:"title"`
	Body      json.RawMessage `json:"body"`
	UpdatedAt string          `json:"updatedAt"`
}

// handlePageResource serves CMS content documents addressed by slug.
// The body is an opaque section tree owned by the editor.
func (a *API) handlePageResource(w http.ResponseWriter, r *http.Request) {
	slug := resourceID(r.URL.Path, "/api/v1/cms/")
	if slug == "" {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	pages := a.store.Pages(r.Context())
	switch r.Method {
	case http.MethodGet:
		page, err := pages.Get(r.Context(), slug)
		if err != nil {
			handleStoreError(w, r, err)
			return
		}
		writeData(w, http.StatusOK, toPageResponse(page))
	case http.MethodPut:
		var payload pagePayload
		if err := decodeJSON(w, r, &payload); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		page := store.Page{Slug: slug, Title: payload.Title, Body: payload.Body}
		if err := pages.Upsert(r.Context(), &page); err != nil {
			handleStoreError(w, r, err)
			return
		}
		writeData(w, http.StatusOK, toPageResponse(&page))
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut)
	}
}

func toPageResponse(p *store.Page) pageResponse {
	body := json.RawMessage(p.Body)
	if len(body) == 0 {
		body = json.RawMessage("{}")
	}
	return pageResponse{
		Slug:      p.Slug,
		Title:     p.Title,
		Body:      body,
		UpdatedAt: p.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
