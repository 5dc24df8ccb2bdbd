package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/stadiumstories/cricket-gateway/internal/api/respond"
	"github.com/stadiumstories/cricket-gateway/internal/auth"
	"github.com/stadiumstories/cricket-gateway/internal/user"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// storeAvailable answers 503 and returns false when no account store is
// configured (the gateway keeps serving content routes without one).
func (h *Handler) storeAvailable(w http.ResponseWriter) bool {
	if h.users == nil {
		respond.WriteError(w, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "Account store unavailable")
		return false
	}
	return true
}

// Register creates an account and returns the user with a signed token.
// @Summary Register account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body registerRequest true "Account details"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 409 {object} respond.ErrorResponse
// @Router /api/auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if !h.storeAvailable(w) {
		return
	}

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION_ERROR", "All fields are required")
		return
	}

	u, err := h.users.Create(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			respond.WriteError(w, http.StatusConflict, "DUPLICATE_EMAIL", "Email already registered")
			return
		}
		h.logger.Error("account creation failed", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "STORE_ERROR", "Failed to create account")
		return
	}

	token, err := h.tokens.Generate(u.ID.Hex())
	if err != nil {
		h.logger.Error("token generation failed", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to issue token")
		return
	}

	respond.WriteJSONObject(w, http.StatusCreated, map[string]interface{}{
		"user":  u,
		"token": token,
	})
}

// Login verifies credentials and returns the user with a signed token.
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param body body loginRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 401 {object} respond.ErrorResponse
// @Router /api/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.storeAvailable(w) {
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Email and password are required")
		return
	}

	u, err := h.users.FindByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			respond.WriteError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials")
			return
		}
		h.logger.Error("account lookup failed", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "STORE_ERROR", "Failed to log in")
		return
	}
	if !u.CheckPassword(req.Password) {
		respond.WriteError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials")
		return
	}

	token, err := h.tokens.Generate(u.ID.Hex())
	if err != nil {
		h.logger.Error("token generation failed", "error", err)
		respond.WriteError(w, http.StatusInternalServerError, "TOKEN_ERROR", "Failed to issue token")
		return
	}

	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"user":  u,
		"token": token,
	})
}

// Me returns the authenticated account. The auth middleware tolerates a
// token whose subject no longer has a record, so absence is handled here.
// @Summary Current account
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} respond.ErrorResponse
// @Failure 404 {object} respond.ErrorResponse
// @Router /api/auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())
	if u == nil {
		respond.WriteError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{"user": u})
}
