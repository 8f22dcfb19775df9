package handlers

import (
	"errors"
	"net/http"

	"edutrade/internal/services"
	"edutrade/internal/storage"
	helpers "edutrade/internal/utils/helpers"

	"github.com/go-playground/validator/v10"
)

// validate checks request payloads before anything is persisted.
var validate = validator.New()

// writeServiceError maps service sentinel errors onto HTTP statuses.
// Anything unknown becomes a 500 with the generic fallback message.
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		helpers.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrFileMissing):
		helpers.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrNotOwner):
		helpers.Error(w, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		helpers.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, storage.ErrUploadRejected):
		helpers.Error(w, http.StatusBadRequest, err.Error())
	default:
		helpers.Error(w, http.StatusInternalServerError, fallback)
	}
}

// formValue returns the first value for key, or nil when the field was
// not part of the multipart form at all.
func formValuePtr(r *http.Request, key string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	if vs, ok := r.MultipartForm.Value[key]; ok && len(vs) > 0 {
		v := vs[0]
		return &v
	}
	return nil
}
