package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ironbark/buildmat/internal/service"
	"github.com/ironbark/buildmat/internal/store"
	"github.com/ironbark/buildmat/pkg/httpx"
	"github.com/ironbark/buildmat/pkg/slogx"
)

// decodeJSON reads a JSON request body into dst. On failure it writes a
// 400 response and returns false; the handler should just return.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Request body must be valid JSON")
		return false
	}
	return true
}

// writeServiceError maps service and store sentinel errors onto HTTP
// responses. Anything unmapped is logged and reported as a 500 without
// leaking internals.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrDuplicateAccount):
		httpx.WriteError(w, http.StatusConflict, "duplicate_account", "An account with this email already exists")
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "invalid_credentials", "Email or password is incorrect")
	case errors.Is(err, service.ErrNoChallenge):
		httpx.WriteError(w, http.StatusUnauthorized, "no_challenge", "No pending verification code for this email; log in first")
	case errors.Is(err, service.ErrChallengeExpired):
		httpx.WriteError(w, http.StatusUnauthorized, "challenge_expired", "The verification code has expired; log in again")
	case errors.Is(err, service.ErrChallengeMismatch):
		httpx.WriteError(w, http.StatusUnauthorized, "challenge_mismatch", "The verification code is incorrect")
	case errors.Is(err, service.ErrAccountNotFound):
		httpx.WriteError(w, http.StatusNotFound, "account_not_found", "No account exists for this email")
	case errors.Is(err, service.ErrInvalidResetToken):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_reset_token", "The reset token is invalid or already used")
	case errors.Is(err, service.ErrResetTokenExpired):
		httpx.WriteError(w, http.StatusBadRequest, "reset_token_expired", "The reset token has expired; request a new one")
	case errors.Is(err, service.ErrNotificationFailed):
		httpx.WriteError(w, http.StatusBadGateway, "notification_failed", "Could not deliver the email; try again later")
	case errors.Is(err, service.ErrValidation):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, service.ErrInvalidReference):
		httpx.WriteError(w, http.StatusBadRequest, "invalid_reference", err.Error())
	case errors.Is(err, service.ErrInsufficientStock):
		httpx.WriteError(w, http.StatusConflict, "insufficient_stock", err.Error())
	case errors.Is(err, store.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "The requested resource does not exist")
	case errors.Is(err, store.ErrAlreadyExists):
		httpx.WriteError(w, http.StatusConflict, "already_exists", "A resource with these identifiers already exists")
	default:
		slogx.FromContext(r.Context()).Error("unhandled service error", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "server_error", "An internal error occurred")
	}
}
