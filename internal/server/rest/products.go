package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/bazaarbuddy/internal/common"
	"github.com/dmitrijs2005/bazaarbuddy/internal/server/models"
	"github.com/go-chi/chi/v5"
)

const (
	msgProductCreated = "Product created successfully"
	msgProductSold    = "Product marked as sold"
	msgProductDeleted = "Product deleted successfully"
	msgNotOwnerUpdate = "Not authorized to update this product"
	msgNotOwnerDelete = "Not authorized to delete this product"
)

func (a *API) listProducts(w http.ResponseWriter, r *http.Request) {
	list, err := a.products.List(r.Context())
	if err != nil {
		a.productError(w, r, err, "")
		return
	}

	out := make([]*productDTO, 0, len(list))
	for _, p := range list {
		out = append(out, toProductDTO(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (a *API) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := a.products.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.productError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, toProductDTO(p))
}

func (a *API) createProduct(w http.ResponseWriter, r *http.Request, caller models.Identity) {
	var req createProductRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeMessage(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	p, err := a.products.Create(r.Context(), caller, req.input())
	if err != nil {
		a.productError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, productResult{Success: true, Message: msgProductCreated, Product: toProductDTO(p)})
}

func (a *API) markSold(w http.ResponseWriter, r *http.Request, caller models.Identity) {
	p, err := a.products.MarkSold(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		a.productError(w, r, err, msgNotOwnerUpdate)
		return
	}
	writeJSON(w, http.StatusOK, productResult{Success: true, Message: msgProductSold, Product: toProductDTO(p)})
}

func (a *API) deleteProduct(w http.ResponseWriter, r *http.Request, caller models.Identity) {
	if err := a.products.Delete(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		a.productError(w, r, err, msgNotOwnerDelete)
		return
	}
	writeJSON(w, http.StatusOK, productResult{Success: true, Message: msgProductDeleted})
}

// productError maps service errors to responses. Anything unrecognized is
// logged and reported as a bare 500.
func (a *API) productError(w http.ResponseWriter, r *http.Request, err error, notOwnerMsg string) {
	var verr *common.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, messageBody{Message: verr.Message, Errors: verr.Reasons})
	case errors.Is(err, common.ErrorNotFound):
		writeMessage(w, http.StatusNotFound, msgProductNotFound)
	case errors.Is(err, common.ErrNotOwner):
		writeMessage(w, http.StatusForbidden, notOwnerMsg)
	default:
		a.logger.Error(r.Context(), "product request failed", "error", err, "path", r.URL.Path)
		writeMessage(w, http.StatusInternalServerError, msgServerError)
	}
}
