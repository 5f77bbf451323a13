package handlers

import (
	"errors"
	"net/http"

	"github.com/username/networth/src/logger"
	"github.com/username/networth/src/model"
	"github.com/username/networth/src/store"
	"github.com/username/networth/src/utils"
)

// sendError maps a failure from the store or the payload checks onto a status
// code. Only validation messages reach the client verbatim.
func sendError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrDuplicateEmail):
		utils.SendJSONError(w, "a user with this email already exists", http.StatusConflict)
	case errors.Is(err, store.ErrUserNotFound):
		utils.SendJSONError(w, "user not found", http.StatusNotFound)
	case errors.Is(err, model.ErrInvalidCurrency):
		utils.SendJSONError(w, "unsupported currency", http.StatusBadRequest)
	case errors.Is(err, errInvalidPayload):
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
	default:
		logger.L.Error("Unhandled error while serving request", "method", r.Method, "path", r.URL.Path, "error", err)
		utils.SendJSONError(w, "internal server error", http.StatusInternalServerError)
	}
}
