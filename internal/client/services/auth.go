package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/casiec/internal/client/client"
	"github.com/dmitrijs2005/casiec/internal/client/models"
	"github.com/dmitrijs2005/casiec/internal/logging"
)

// ErrInvalidVerification is returned when the backend accepted a 2FA code
// but sent no access token back.
var ErrInvalidVerification = errors.New("invalid verification response")

// Session is the token holder the auth service fills and empties.
type Session interface {
	Store(ctx context.Context, pair models.TokenPair) error
	Clear(ctx context.Context) error
	Authenticated() bool
}

// LoginResult tells the caller whether a one-time code must follow.
type LoginResult struct {
	RequiresOTP bool
	Email       string
	Message     string
}

// AuthService signs staff in and out of the CMS.
//
//   - Login checks the password. Usually the backend answers with a 2FA
//     challenge; if it hands out tokens directly they are stored at once.
//   - Verify2FA exchanges the emailed code for a token pair.
//   - Logout tells the backend (best effort) and always clears the session.
type AuthService interface {
	Login(ctx context.Context, email, password string) (LoginResult, error)
	Verify2FA(ctx context.Context, email, code string) error
	Logout(ctx context.Context) error
	IsAuthenticated() bool
}

type authService struct {
	api     API
	session Session
	logger  logging.Logger
}

func NewAuthService(api API, session Session, logger logging.Logger) AuthService {
	return &authService{api: api, session: session, logger: logger}
}

type loginResponse struct {
	Message      string `json:"message"`
	Email        string `json:"email"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (a *authService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	body, err := client.JSONBody(map[string]string{"email": email, "password": password})
	if err != nil {
		return LoginResult{}, err
	}

	var resp loginResponse
	if err := a.api.Do(ctx, http.MethodPost, "/auth/login", body, &resp); err != nil {
		return LoginResult{}, fmt.Errorf("login: %w", err)
	}

	if resp.AccessToken != "" {
		pair := models.TokenPair{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}
		if err := a.session.Store(ctx, pair); err != nil {
			return LoginResult{}, err
		}
		return LoginResult{Email: email, Message: resp.Message}, nil
	}
	return LoginResult{RequiresOTP: true, Email: orDefault(resp.Email, email), Message: resp.Message}, nil
}

func (a *authService) Verify2FA(ctx context.Context, email, code string) error {
	body, err := client.JSONBody(map[string]string{
		"email": strings.ToLower(email),
		"code":  strings.TrimSpace(code),
	})
	if err != nil {
		return err
	}

	var pair models.TokenPair
	if err := a.api.Do(ctx, http.MethodPost, "/auth/verify-2fa", body, &pair); err != nil {
		return fmt.Errorf("verify 2fa: %w", err)
	}
	if pair.AccessToken == "" {
		return ErrInvalidVerification
	}
	return a.session.Store(ctx, pair)
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.api.Do(ctx, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		a.logger.Warn(ctx, "logout endpoint failed", "error", err)
	}
	return a.session.Clear(ctx)
}

func (a *authService) IsAuthenticated() bool {
	return a.session.Authenticated()
}
