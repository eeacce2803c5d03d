// Package errors provides structured error handling for the application
// with stable error codes and HTTP status mapping.
package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents an error code
type ErrorCode string

// Common error codes following RESTful API conventions
const (
	// Client errors (4xx)
	CodeBadRequest       ErrorCode = "BAD_REQUEST"
	CodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	CodeForbidden        ErrorCode = "FORBIDDEN"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeRateLimited      ErrorCode = "RATE_LIMITED"

	// Server errors (5xx)
	CodeInternal      ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError ErrorCode = "DATABASE_ERROR"

	// Business logic errors
	CodeRecipeNotFound        ErrorCode = "RECIPE_NOT_FOUND"
	CodeMeasurementNotFound   ErrorCode = "MEASUREMENT_NOT_FOUND"
	CodeTagNotFound           ErrorCode = "TAG_NOT_FOUND"
	CodeUserNotFound          ErrorCode = "USER_NOT_FOUND"
	CodeInvalidAmount         ErrorCode = "INVALID_AMOUNT"
	CodeAlreadyInCart         ErrorCode = "ALREADY_IN_CART"
	CodeNotInCart             ErrorCode = "NOT_IN_CART"
	CodeAlreadyFavorite       ErrorCode = "ALREADY_FAVORITE"
	CodeNotFavorite           ErrorCode = "NOT_FAVORITE"
	CodeAlreadySubscribed     ErrorCode = "ALREADY_SUBSCRIBED"
	CodeNotSubscribed         ErrorCode = "NOT_SUBSCRIBED"
	CodeSelfSubscription      ErrorCode = "SELF_SUBSCRIPTION"
	CodeInvalidCredentials    ErrorCode = "INVALID_CREDENTIALS"
	CodeEmailAlreadyExists    ErrorCode = "EMAIL_ALREADY_EXISTS"
	CodeUsernameAlreadyExists ErrorCode = "USERNAME_ALREADY_EXISTS"
	CodeNotRecipeAuthor       ErrorCode = "NOT_RECIPE_AUTHOR"
	CodeDuplicateRecipe       ErrorCode = "DUPLICATE_RECIPE"
)

// AppError represents an application error with structured information
type AppError struct {
	Code     ErrorCode              `json:"code"`
	Message  string                 `json:"message"`
	Details  string                 `json:"details,omitempty"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	Cause    error                  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// StatusCode returns the appropriate HTTP status code
func (e *AppError) StatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidationFailed, CodeInvalidAmount,
		CodeAlreadyInCart, CodeNotInCart,
		CodeAlreadyFavorite, CodeNotFavorite,
		CodeAlreadySubscribed, CodeNotSubscribed, CodeSelfSubscription:
		return http.StatusBadRequest
	case CodeUnauthorized, CodeInvalidCredentials:
		return http.StatusUnauthorized
	case CodeForbidden, CodeNotRecipeAuthor:
		return http.StatusForbidden
	case CodeNotFound, CodeRecipeNotFound, CodeMeasurementNotFound,
		CodeTagNotFound, CodeUserNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeEmailAlreadyExists, CodeUsernameAlreadyExists,
		CodeDuplicateRecipe:
		return http.StatusConflict
	case CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// WithMetadata adds metadata to the error
func (e *AppError) WithMetadata(key string, value interface{}) *AppError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// WithCause adds a cause error
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message, details string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// Predefined error constructors for common scenarios

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *AppError {
	return NewAppError(CodeBadRequest, message, "")
}

// NewValidationError creates a validation error
func NewValidationError(details string) *AppError {
	return NewAppError(CodeValidationFailed, "Validation failed", details)
}

// NewFieldValidationError creates a validation error scoped to one field
func NewFieldValidationError(field, details string) *AppError {
	return NewAppError(CodeValidationFailed, "Validation failed", details).
		WithMetadata("field", field)
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError(message string) *AppError {
	if message == "" {
		message = "Authentication required"
	}
	return NewAppError(CodeUnauthorized, message, "")
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError(message string) *AppError {
	if message == "" {
		message = "Access forbidden"
	}
	return NewAppError(CodeForbidden, message, "")
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *AppError {
	if message == "" {
		message = "An unexpected error occurred"
	}
	return NewAppError(CodeInternal, message, "")
}

// NewDatabaseError creates a database error
func NewDatabaseError(operation string, cause error) *AppError {
	return NewAppError(
		CodeDatabaseError,
		"Database operation failed",
		fmt.Sprintf("Failed to %s", operation),
	).WithCause(cause)
}

// Business domain specific errors

// NewRecipeNotFoundError creates a recipe not found error
func NewRecipeNotFoundError(recipeID string) *AppError {
	return NewAppError(
		CodeRecipeNotFound,
		"Recipe not found",
		fmt.Sprintf("Recipe with ID %s does not exist", recipeID),
	).WithMetadata("recipe_id", recipeID)
}

// NewMeasurementNotFoundError creates a measurement not found error
func NewMeasurementNotFoundError(measurementID string) *AppError {
	return NewAppError(
		CodeMeasurementNotFound,
		"Measurement not found",
		fmt.Sprintf("Measurement with ID %s does not exist", measurementID),
	).WithMetadata("measurement_id", measurementID)
}

// NewTagNotFoundError creates a tag not found error
func NewTagNotFoundError(slug string) *AppError {
	return NewAppError(
		CodeTagNotFound,
		"Tag not found",
		fmt.Sprintf("Tag with slug %q does not exist", slug),
	).WithMetadata("slug", slug)
}

// NewUserNotFoundError creates a user not found error
func NewUserNotFoundError(userID string) *AppError {
	return NewAppError(
		CodeUserNotFound,
		"User not found",
		fmt.Sprintf("User with ID %s does not exist", userID),
	).WithMetadata("user_id", userID)
}

// NewInvalidAmountError creates a field-scoped ingredient amount error
func NewInvalidAmountError(details string) *AppError {
	return NewAppError(CodeInvalidAmount, "Invalid ingredient amount", details).
		WithMetadata("field", "amount")
}

// NewEmailAlreadyExistsError creates an email already exists error
func NewEmailAlreadyExistsError(email string) *AppError {
	return NewAppError(
		CodeEmailAlreadyExists,
		"Email already exists",
		"An account with this email address already exists",
	).WithMetadata("email", email)
}

// NewUsernameAlreadyExistsError creates a username already exists error
func NewUsernameAlreadyExistsError(username string) *AppError {
	return NewAppError(
		CodeUsernameAlreadyExists,
		"Username already exists",
		"This username is already taken",
	).WithMetadata("username", username)
}

// NewInvalidCredentialsError creates an invalid credentials error
func NewInvalidCredentialsError() *AppError {
	return NewAppError(
		CodeInvalidCredentials,
		"Invalid credentials",
		"The provided username or password is incorrect",
	)
}

// NewNotRecipeAuthorError creates a permission error for recipe mutation
func NewNotRecipeAuthorError(action string) *AppError {
	return NewAppError(
		CodeNotRecipeAuthor,
		"Insufficient permissions",
		fmt.Sprintf("Only the recipe author can %s", action),
	).WithMetadata("action", action)
}

// Utility functions

// Wrap wraps an error as an internal error if it's not already an AppError
func Wrap(err error, message string) *AppError {
	if err == nil {
		return nil
	}

	if appErr, ok := err.(*AppError); ok {
		return appErr
	}

	return NewInternalError(message).WithCause(err)
}

// Is checks if an error is of a specific error code
func Is(err error, code ErrorCode) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == code
	}
	return false
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return CodeInternal
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails represents the error details in API responses
type ErrorDetails struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
	Timestamp string                 `json:"timestamp"`
}

// ToErrorResponse converts an AppError to an API error response
func ToErrorResponse(err *AppError, requestID string) ErrorResponse {
	return ErrorResponse{
		Error: ErrorDetails{
			Code:      err.Code,
			Message:   err.Message,
			Details:   err.Details,
			Metadata:  err.Metadata,
			RequestID: requestID,
			Timestamp: fmt.Sprintf("%d", time.Now().Unix()),
		},
	}
}
