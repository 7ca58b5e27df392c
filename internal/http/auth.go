package http

import (
	"net/http"
	"strings"

	"github.com/ironbark/buildmat/internal/domain"
	"github.com/ironbark/buildmat/internal/service"
	"github.com/ironbark/buildmat/pkg/httpx"
)

// AuthHandler exposes the credential lifecycle endpoints.
type AuthHandler struct {
	AuthService *service.AuthService
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// HandleRegister godoc
//
//	@Summary		Register a new account
//	@Description	Creates an account with the "user" role. Emails must be unique.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		registerRequest	true	"Registration details"
//	@Success		201		{object}	domain.User
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		409		{object}	httpx.ErrorResponse
//	@Router			/v1/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "email and password are required")
		return
	}

	u, err := h.AuthService.Register(r.Context(), req.Email, req.Password, req.FullName, domain.RoleUser)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, u)
}

type roleRequest struct {
	Role string `json:"role"`
}

// HandleSetRole godoc
//
//	@Summary		Change an account's role
//	@Description	Admin only. Sessions issued before the change keep their old role until expiry.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		string		true	"User ID"
//	@Param			body	body		roleRequest	true	"New role"
//	@Success		200		{object}	domain.User
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Failure		403		{object}	httpx.ErrorResponse
//	@Failure		404		{object}	httpx.ErrorResponse
//	@Router			/v1/users/{id}/role [put].
func (h *AuthHandler) HandleSetRole(w http.ResponseWriter, r *http.Request) {
	var req roleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	u, err := h.AuthService.SetRole(r.Context(), r.PathValue("id"), req.Role)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, u)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type statusResponse struct {
	Status string `json:"status"`
}

// HandleLogin godoc
//
//	@Summary		Begin login
//	@Description	Checks the password and emails a one-time verification code.
//	@Description	The login completes at /v1/auth/verify-2fa.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		loginRequest	true	"Credentials"
//	@Success		200		{object}	statusResponse
//	@Failure		401		{object}	httpx.ErrorResponse
//	@Failure		502		{object}	httpx.ErrorResponse
//	@Router			/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.AuthService.BeginLogin(r.Context(), req.Email, req.Password); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, statusResponse{Status: "challenge_sent"})
}

type verifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// HandleVerify godoc
//
//	@Summary		Complete login
//	@Description	Redeems the emailed verification code for a session token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		verifyRequest	true	"Email and code"
//	@Success		200		{object}	domain.Session
//	@Failure		401		{object}	httpx.ErrorResponse
//	@Failure		404		{object}	httpx.ErrorResponse
//	@Router			/v1/auth/verify-2fa [post].
func (h *AuthHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, err := h.AuthService.CompleteLogin(r.Context(), req.Email, req.Code)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, session)
}

type requestResetRequest struct {
	Email string `json:"email"`
}

// HandleRequestReset godoc
//
//	@Summary		Request a password reset
//	@Description	Emails a single-use reset link. Older links stop working.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		requestResetRequest	true	"Account email"
//	@Success		200		{object}	statusResponse
//	@Failure		404		{object}	httpx.ErrorResponse
//	@Failure		502		{object}	httpx.ErrorResponse
//	@Router			/v1/auth/request-reset [post].
func (h *AuthHandler) HandleRequestReset(w http.ResponseWriter, r *http.Request) {
	var req requestResetRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.AuthService.RequestPasswordReset(r.Context(), req.Email); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, statusResponse{Status: "reset_sent"})
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// HandleResetPassword godoc
//
//	@Summary		Reset the password
//	@Description	Redeems a reset token and installs the new password.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		resetPasswordRequest	true	"Token and new password"
//	@Success		200		{object}	statusResponse
//	@Failure		400		{object}	httpx.ErrorResponse
//	@Router			/v1/auth/reset-password [post].
func (h *AuthHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.NewPassword == "" {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "new_password is required")
		return
	}

	if err := h.AuthService.ResetPassword(r.Context(), req.Token, req.NewPassword); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, statusResponse{Status: "password_reset"})
}
