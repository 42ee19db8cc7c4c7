package httpapi

import (
	"net/http"
	"strings"

	"villorya.app/internal/store"
)

// researchPayload carries entry metadata plus the optional document the
// editor attached. On create the document is required and becomes version 1;
// on update it is appended as the next version when present.
type researchPayload struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	FileName    string   `json:"fileName"`
	FileURL     string   `json:"fileUrl"`
}

func (p researchPayload) applyMeta(dst *store.ResearchEntry) {
	dst.Title = strings.TrimSpace(p.Title)
	dst.Description = strings.TrimSpace(p.Description)
	dst.Tags = cleanTags(p.Tags)
}

func (p researchPayload) hasFile() bool {
	return strings.TrimSpace(p.FileURL) != ""
}

func (p researchPayload) version() store.ResearchVersion {
	return store.ResearchVersion{
		FileName: strings.TrimSpace(p.FileName),
		FileURL:  strings.TrimSpace(p.FileURL),
	}
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func (a *API) handleResearchCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		entries, err := a.store.Research(r.Context()).List(r.Context())
		if err != nil {
			handleStoreError(w, r, err)
			return
		}
		writeData(w, http.StatusOK, entries)
	case http.MethodPost:
		var payload researchPayload
		if err := decodeJSON(w, r, &payload); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		if strings.TrimSpace(payload.Title) == "" || strings.TrimSpace(payload.Description) == "" {
			writeError(w, r, http.StatusBadRequest, "title and description are required")
			return
		}
		if !payload.hasFile() {
			writeError(w, r, http.StatusBadRequest, "a document is required for a new entry")
			return
		}
		var entry store.ResearchEntry
		payload.applyMeta(&entry)
		v := payload.version()
		v.VersionNumber = 1
		entry.Versions = []store.ResearchVersion{v}
		if err := a.store.Research(r.Context()).Create(r.Context(), &entry); err != nil {
			handleStoreError(w, r, err)
			return
		}
		writeData(w, http.StatusCreated, entry)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleResearchResource(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/rd/")
	rest = strings.Trim(rest, "/")
	if rest == "" {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	research := a.store.Research(r.Context())

	// revision uploads
	if id, ok := strings.CutSuffix(rest, "/version"); ok {
		if r.Method != http.MethodPost {
			methodNotAllowed(w, r, http.MethodPost)
			return
		}
		var payload researchPayload
		if err := decodeJSON(w, r, &payload); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		if !payload.hasFile() {
			writeError(w, r, http.StatusBadRequest, "a document is required for a new version")
			return
		}
		entry, err := research.AddVersion(r.Context(), id, payload.version())
		if err != nil {
			handleStoreError(w, r, err)
			return
		}
		writeData(w, http.StatusOK, entry)
		return
	}

	if strings.Contains(rest, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		entry, err := research.Find(r.Context(), rest)
		if err != nil {
			handleStoreError(w, r, err)
			return
		}
		writeData(w, http.StatusOK, entry)
	case http.MethodPut:
		var payload researchPayload
		if err := decodeJSON(w, r, &payload); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		if strings.TrimSpace(payload.Title) == "" || strings.TrimSpace(payload.Description) == "" {
			writeError(w, r, http.StatusBadRequest, "title and description are required")
			return
		}
		entry, err := research.Find(r.Context(), rest)
		if err != nil {
			handleStoreError(w, r, err)
			return
		}
		payload.applyMeta(entry)
		if err := research.Update(r.Context(), entry); err != nil {
			handleStoreError(w, r, err)
			return
		}
		// An attached document on edit becomes the next version.
		if payload.hasFile() {
			if entry, err = research.AddVersion(r.Context(), rest, payload.version()); err != nil {
				handleStoreError(w, r, err)
				return
			}
		}
		writeData(w, http.StatusOK, entry)
	case http.MethodDelete:
		if err := research.Delete(r.Context(), rest); err != nil {
			handleStoreError(w, r, err)
			return
		}
		writeData(w, http.StatusOK, map[string]string{"id": rest})
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}
