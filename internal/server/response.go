package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/essence/internal/identity"
	"github.com/abhisek/essence/internal/session"
	"github.com/abhisek/essence/internal/store"
)

// APIError is the body of every error response.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ErrorEnvelope wraps APIError as {"error": {...}}.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// RespondError aborts the request with the error envelope.
func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondOK writes payload with 200.
func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// respondErr maps a service error to a status and code. Unknown errors are
// logged by RequestLogger and reported without detail.
func respondErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, identity.ErrEmailInUse):
		RespondError(c, http.StatusConflict, "email_in_use", err)
	case errors.Is(err, identity.ErrWeakPassword),
		errors.Is(err, identity.ErrInvalidEmail):
		RespondError(c, http.StatusBadRequest, "invalid_input", err)
	case errors.Is(err, identity.ErrInvalidCredentials):
		RespondError(c, http.StatusUnauthorized, "invalid_credentials", err)
	case errors.Is(err, identity.ErrInvalidToken):
		RespondError(c, http.StatusUnauthorized, "unauthorized", err)
	case errors.Is(err, session.ErrNotFound), errors.Is(err, store.ErrNotFound):
		RespondError(c, http.StatusNotFound, "not_found", err)
	case errors.Is(err, session.ErrInvalidTransition),
		errors.Is(err, session.ErrNoLesson):
		RespondError(c, http.StatusConflict, "invalid_transition", err)
	default:
		_ = c.Error(err)
		RespondError(c, http.StatusInternalServerError, "internal", errors.New("internal error"))
	}
}

func badRequest(c *gin.Context, err error) {
	RespondError(c, http.StatusBadRequest, "invalid_input", err)
}
