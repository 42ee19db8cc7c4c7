package httpapi

import (
	"net/http"
	"strings"

	"villorya.app/internal/store"
)

type productPayload struct {
	Title         string              `json:"title"`
	Variety       string              `json:"variety"`
	ItemForm      string              `json:"itemForm"`
	DietType      string              `json:"dietType"`
	NetQuantities []store.NetQuantity `json:"netQuantities"`
	Images        []string            `json:"images"`
	UseBy         string              `json:"useBy"`
}

func (p productPayload) apply(dst *store.Product) {
	dst.Title = strings.TrimSpace(p.Title)
	dst.Variety = p.Variety
	dst.ItemForm = p.ItemForm
	dst.DietType = p.DietType
	dst.NetQuantities = p.NetQuantities
	dst.Images = p.Images
	dst.UseBy = p.UseBy
}

func (a *API) handleProductsCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		products, err := a.store.Products(r.Context()).List(r.Context())
		if err != nil {
			handleStoreError(w, r, err)
			return
		}
		writeData(w, http.StatusOK, products)
	case http.MethodPost:
		var payload productPayload
		if err := decodeJSON(w, r, &payload); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		if strings.TrimSpace(payload.Title) == "" {
			writeError(w, r, http.StatusBadRequest, "title is required")
			return
		}
		var product store.Product
		payload.apply(&product)
		if err := a.store.Products(r.Context()).Create(r.Context(), &product); err != nil {
			handleStoreError(w, r, err)
			return
		}
		writeData(w, http.StatusCreated, product)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleProductResource(w http.ResponseWriter, r *http.Request) {
	id := resourceID(r.URL.Path, "/api/v1/product/")
	if id == "" {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	products := a.store.Products(r.Context())
	switch r.Method {
	case http.MethodGet:
		product, err := products.Find(r.Context(), id)
		if err != nil {
			handleStoreError(w, r, err)
			return
		}
		writeData(w, http.StatusOK, product)
	case http.MethodPut:
		var payload productPayload
		if err := decodeJSON(w, r, &payload); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		product, err := products.Find(r.Context(), id)
		if err != nil {
			handleStoreError(w, r, err)
			return
		}
		payload.apply(product)
		if err := products.Update(r.Context(), product); err != nil {
			handleStoreError(w, r, err)
			return
		}
		writeData(w, http.StatusOK, product)
	case http.MethodDelete:
		if err := products.Delete(r.Context(), id); err != nil {
			handleStoreError(w, r, err)
			return
		}
		writeData(w, http.StatusOK, map[string]string{"id": id})
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}
