package httpapi

import (
	"net/http"
	"strings"

	"villorya.app/internal/store"
)

type categoryPayload struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

func (p categoryPayload) apply(dst *store.Category) {
	dst.Name = strings.TrimSpace(p.Name)
	dst.Image = strings.TrimSpace(p.Image)
}

// handleCategoriesCollection serves the category list the storefront reads
// and the privileged create used from the console.
func (a *API) handleCategoriesCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		categories, err := a.store.Categories(r.Context()).List(r.Context())
		if err != nil {
			handleStoreError(w, r, err)
			return
		}
		writeData(w, http.StatusOK, categories)
	case http.MethodPost:
		var payload categoryPayload
		if err := decodeJSON(w, r, &payload); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		if strings.TrimSpace(payload.Name) == "" || strings.TrimSpace(payload.Image) == "" {
			writeError(w, r, http.StatusBadRequest, "name and image are required")
			return
		}
		var category store.Category
		payload.apply(&category)
		if err := a.store.Categories(r.Context()).Create(r.Context(), &category); err != nil {
			handleStoreError(w, r, err)
			return
		}
		writeData(w, http.StatusCreated, category)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleCategoryResource(w http.ResponseWriter, r *http.Request) {
	id := resourceID(r.URL.Path, "/api/v1/category/")
	if id == "" {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	categories := a.store.Categories(r.Context())
	switch r.Method {
	case http.MethodGet:
		category, err := categories.Find(r.Context(), id)
		if err != nil {
			handleStoreError(w, r, err)
			return
		}
		writeData(w, http.StatusOK, category)
	case http.MethodPut:
		var payload categoryPayload
		if err := decodeJSON(w, r, &payload); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		if strings.TrimSpace(payload.Name) == "" {
			writeError(w, r, http.StatusBadRequest, "name is required")
			return
		}
		category, err := categories.Find(r.Context(), id)
		if err != nil {
			handleStoreError(w, r, err)
			return
		}
		payload.apply(category)
		if err := categories.Update(r.Context(), category); err != nil {
			handleStoreError(w, r, err)
			return
		}
		writeData(w, http.StatusOK, category)
	case http.MethodDelete:
		if err := categories.Delete(r.Context(), id); err != nil {
			handleStoreError(w, r, err)
			return
		}
		writeData(w, http.StatusOK, map[string]string{"id": id})
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}
