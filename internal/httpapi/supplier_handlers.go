package httpapi

import (
	"net/http"
	"strings"

	"villorya.app/internal/store"
)

// Package and raw suppliers share one record shape; the two route families
// differ only in the kind they are pinned to.

type supplierPayload struct {
	Name               string  `json:"name"`
	Email              string  `json:"email"`
	Phone              string  `json:"phone"`
	ProductDescription string  `json:"productDescription"`
	Note               string  `json:"note"`
	Status             string  `json:"status"`
	MinOrderValue      float64 `json:"minOrderValue"`
	UnitPrice          float64 `json:"unitPrice"`
}

func (p supplierPayload) apply(dst *store.Supplier) {
	dst.Name = strings.TrimSpace(p.Name)
	dst.Email = p.Email
	dst.Phone = p.Phone
	dst.ProductDescription = p.ProductDescription
	dst.Note = p.Note
	dst.Status = p.Status
	dst.MinOrderValue = p.MinOrderValue
	dst.UnitPrice = p.UnitPrice
}

func validSupplierStatus(status string) bool {
	switch status {
	case "", "active", "inactive", "pending":
		return true
	}
	return false
}

func (a *API) supplierCollectionHandler(kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			suppliers, err := a.store.Suppliers(r.Context()).ListByKind(r.Context(), kind)
			if err != nil {
				handleStoreError(w, r, err)
				return
			}
			writeData(w, http.StatusOK, suppliers)
		case http.MethodPost:
			var payload supplierPayload
			if err := decodeJSON(w, r, &payload); err != nil {
				writeError(w, r, http.StatusBadRequest, err.Error())
				return
			}
			if strings.TrimSpace(payload.Name) == "" {
				writeError(w, r, http.StatusBadRequest, "name is required")
				return
			}
			if !validSupplierStatus(payload.Status) {
				writeError(w, r, http.StatusBadRequest, "status must be active, inactive or pending")
				return
			}
			supplier := store.Supplier{Kind: kind}
			payload.apply(&supplier)
			if err := a.store.Suppliers(r.Context()).Create(r.Context(), &supplier); err != nil {
				handleStoreError(w, r, err)
				return
			}
			writeData(w, http.StatusCreated, supplier)
		default:
			methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
		}
	}
}

func (a *API) supplierResourceHandler(kind string) http.HandlerFunc {
	prefix := "/api/v1/package-suppliers/"
	if kind == store.SupplierKindRaw {
		prefix = "/api/v1/raw-suppliers/"
	}
	return func(w http.ResponseWriter, r *http.Request) {
		id := resourceID(r.URL.Path, prefix)
		if id == "" {
			writeError(w, r, http.StatusNotFound, "resource not found")
			return
		}

		suppliers := a.store.Suppliers(r.Context())
		supplier, err := suppliers.Find(r.Context(), id)
		if err != nil {
			handleStoreError(w, r, err)
			return
		}
		if supplier.Kind != kind {
			writeError(w, r, http.StatusNotFound, "resource not found")
			return
		}

		switch r.Method {
		case http.MethodGet:
			writeData(w, http.StatusOK, supplier)
		case http.MethodPut:
			var payload supplierPayload
			if err := decodeJSON(w, r, &payload); err != nil {
				writeError(w, r, http.StatusBadRequest, err.Error())
				return
			}
			if !validSupplierStatus(payload.Status) {
				writeError(w, r, http.StatusBadRequest, "status must be active, inactive or pending")
				return
			}
			payload.apply(supplier)
			if err := suppliers.Update(r.Context(), supplier); err != nil {
				handleStoreError(w, r, err)
				return
			}
			writeData(w, http.StatusOK, supplier)
		case http.MethodDelete:
			if err := suppliers.Delete(r.Context(), id); err != nil {
				handleStoreError(w, r, err)
				return
			}
			writeData(w, http.StatusOK, map[string]string{"id": id})
		default:
			methodNotAllowed(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
		}
	}
}
