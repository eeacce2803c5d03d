// Package handlers implements the HTTP API endpoints.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/foodgram/backend/internal/infrastructure/http/middleware"
	"github.com/foodgram/backend/pkg/errors"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

var validate = validator.New(validator.WithRequiredStructEnabled())

// writeJSON renders a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// writeAppError renders an error as the standard JSON error envelope.
// Unknown errors are masked as internal errors so that causes never leak
// to clients.
func writeAppError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	appErr, ok := err.(*errors.AppError)
	if !ok {
		appErr = errors.Wrap(err, "request failed")
	}

	if appErr.StatusCode() >= http.StatusInternalServerError {
		logger.Error("Request failed",
			zap.String("path", r.URL.Path),
			zap.String("code", string(appErr.Code)),
			zap.Error(appErr),
		)
	}

	requestID := chimiddleware.GetReqID(r.Context())
	writeJSON(w, appErr.StatusCode(), errors.ToErrorResponse(appErr, requestID))
}

// decodeJSON parses and validates a request body into dst.
func decodeJSON(r *http.Request, dst interface{}) *errors.AppError {
	r.Body = http.MaxBytesReader(nil, r.Body, maxBodyBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return errors.NewBadRequestError("Request body must be valid JSON").WithCause(err)
	}

	if err := validate.Struct(dst); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return errors.NewFieldValidationError(fe.Field(),
				"failed on the '"+fe.Tag()+"' rule")
		}
		return errors.NewValidationError(err.Error())
	}
	return nil
}

// requireUser extracts the authenticated user id, which the Authenticate
// middleware guarantees for protected routes.
func requireUser(r *http.Request) (uuid.UUID, *errors.AppError) {
	id, ok := middleware.UserID(r.Context())
	if !ok {
		return uuid.Nil, errors.NewUnauthorizedError("")
	}
	return id, nil
}

// parseUUIDParam parses a UUID path parameter.
func parseUUIDParam(raw, name string) (uuid.UUID, *errors.AppError) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.NewFieldValidationError(name, "must be a valid UUID")
	}
	return id, nil
}
