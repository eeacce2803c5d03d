package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/foodgram/backend/pkg/errors"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// writeError renders an AppError as the standard JSON error envelope.
func writeError(w http.ResponseWriter, r *http.Request, appErr *errors.AppError) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(appErr.StatusCode())

	response := errors.ToErrorResponse(appErr, chimiddleware.GetReqID(r.Context()))
	_ = json.NewEncoder(w).Encode(response)
}
