package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/bazaarbuddy/internal/common"
	"github.com/dmitrijs2005/bazaarbuddy/internal/server/models"
)

func (a *API) newImageUpload(w http.ResponseWriter, r *http.Request, caller models.Identity) {
	up, err := a.images.NewUpload(r.Context(), caller)
	if err != nil {
		if errors.Is(err, common.ErrStorageDisabled) {
			writeMessage(w, http.StatusServiceUnavailable, msgStorageDisabled)
			return
		}
		a.logger.Error(r.Context(), "presign failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, msgServerError)
		return
	}
	writeJSON(w, http.StatusOK, uploadResult{Key: up.Key, UploadURL: up.UploadURL, ImageURL: up.ImageURL})
}
