package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/casiec/internal/common"
	"github.com/dmitrijs2005/casiec/internal/logging"
	"github.com/dmitrijs2005/casiec/internal/server/services"
)

// AuthService is the sign-in flow the auth endpoints drive.
type AuthService interface {
	Authenticator
	Login(ctx context.Context, email, password string) (string, error)
	Verify2FA(ctx context.Context, email, code string) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Logout(ctx context.Context, userID string) error
}

type AuthHandler struct {
	svc    AuthService
	logger logging.Logger
}

func NewAuthHandler(svc AuthService, logger logging.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

type verifyRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusOf(err)
	if status == http.StatusInternalServerError {
		h.logger.Error(r.Context(), "auth request failed", "path", r.URL.Path, "error", err)
	}
	writeError(w, status, msg)
}

// Login checks the password and starts the second factor.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	req, err := decode[loginRequest](r.Body)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required.")
		return
	}

	email, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{
		Message: "A verification code was sent to " + email + ".",
		Email:   email,
	})
}

// Verify2FA exchanges the emailed code for a token pair.
func (h *AuthHandler) Verify2FA(w http.ResponseWriter, r *http.Request) {
	req, err := decode[verifyRequest](r.Body)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if req.Email == "" || req.Code == "" {
		writeError(w, http.StatusBadRequest, "Email and code are required.")
		return
	}

	pair, err := h.svc.Verify2FA(r.Context(), req.Email, req.Code)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pair)
}

// Refresh rotates a refresh token.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	req, err := decode[refreshRequest](r.Body)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if req.RefreshToken == "" {
		writeError(w, http.StatusUnauthorized, "Session expired. Please sign in again.")
		return
	}

	pair, err := h.svc.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pair)
}

// Logout revokes the caller's refresh tokens. It sits behind BearerAuth.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	if claims == nil {
		h.fail(w, r, common.ErrInvalidToken)
		return
	}
	if err := h.svc.Logout(r.Context(), claims.UserID); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
