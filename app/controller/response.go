package controller

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"crescer-uniformes/repository"
	"crescer-uniformes/service"
	"crescer-uniformes/utils"
)

// maxBodyBytes caps request bodies, order lists included
const maxBodyBytes = 5 << 20

// writeJSON encodes payload with the given status code
func writeJSON(w http.ResponseWriter, op string, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.Errorf("❌ %s: Error encoding response: %v", op, err)
	}
}

// pathID returns the {name} route variable when it is a valid uuid
func pathID(w http.ResponseWriter, r *http.Request, op, name string) (string, bool) {
	id := mux.Vars(r)[name]
	if _, err := uuid.Parse(id); err != nil {
		logrus.Warnf("❌ %s: Invalid %s %q", op, name, id)
		http.Error(w, "Invalid "+name+": must be a UUID", http.StatusBadRequest)
		return "", false
	}
	return id, true
}

// writeError maps service and repository errors to HTTP status codes
func writeError(w http.ResponseWriter, op string, err error) {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.As(err, &validationErrors):
		logrus.Warnf("❌ %s: Validation failed: %v", op, err)
		writeJSON(w, op, http.StatusBadRequest, map[string]interface{}{
			"error":  "validation failed",
			"fields": utils.ProcessValidationErrors(err),
		})
	case errors.Is(err, service.ErrInvalidRequest),
		errors.Is(err, service.ErrConfirmationRequired),
		errors.Is(err, repository.ErrInvalidPayment),
		errors.Is(err, repository.ErrInvalidDelivery),
		errors.Is(err, repository.ErrInvalidPrice),
		errors.Is(err, repository.ErrOrderItemNotFound):
		logrus.Warnf("❌ %s: %v", op, err)
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, repository.ErrStagingOrderNotFound),
		errors.Is(err, repository.ErrOrderNotFound):
		logrus.Warnf("❌ %s: %v", op, err)
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, repository.ErrStagingOrderNotPending):
		logrus.Warnf("❌ %s: %v", op, err)
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, service.ErrDriveUnavailable),
		errors.Is(err, service.ErrChromeUnavailable):
		logrus.Errorf("❌ %s: %v", op, err)
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
	default:
		logrus.Errorf("❌ %s: %v", op, err)
		http.Error(w, "Internal server error: "+err.Error(), http.StatusInternalServerError)
	}
}
