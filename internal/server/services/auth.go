// Package services contains the backend's business logic. AuthService
// handles the two-step staff sign-in and the access/refresh token pair that
// follows it. ContentService validates and stores the site's collections.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/casiec/internal/common"
	"github.com/dmitrijs2005/casiec/internal/cryptox"
	"github.com/dmitrijs2005/casiec/internal/logging"
	"github.com/dmitrijs2005/casiec/internal/server/auth"
	"github.com/dmitrijs2005/casiec/internal/server/config"
	"github.com/dmitrijs2005/casiec/internal/server/models"
	"github.com/dmitrijs2005/casiec/internal/server/repositories/repomanager"
)

const (
	otpDigits      = 6
	maxOTPAttempts = 5
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// CodeSender delivers a one-time sign-in code to a staff member.
type CodeSender interface {
	SendCode(ctx context.Context, email, code string) error
}

// LogCodeSender writes codes to the log. It stands in for a mail gateway in
// development.
type LogCodeSender struct {
	Logger logging.Logger
}

func (s LogCodeSender) SendCode(ctx context.Context, email, code string) error {
	s.Logger.Info(ctx, "sign-in code issued", "email", email, "code", code)
	return nil
}

type AuthService struct {
	repomanager                  repomanager.RepositoryManager
	sender                       CodeSender
	logger                       logging.Logger
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	otpValidityDuration          time.Duration
	now                          func() time.Time
}

func NewAuthService(m repomanager.RepositoryManager, sender CodeSender, cfg *config.Config, logger logging.Logger) *AuthService {
	return &AuthService{
		repomanager:                  m,
		sender:                       sender,
		logger:                       logger,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		otpValidityDuration:          cfg.OTPValidityDuration,
		now:                          time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SeedAdmin creates the staff account email unless it already exists.
func (s *AuthService) SeedAdmin(ctx context.Context, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil
	}

	users := s.repomanager.Repositories().Users
	if _, err := users.GetUserByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, common.ErrorNotFound) {
		return fmt.Errorf("look up admin: %w", err)
	}

	hash, err := cryptox.HashPassword([]byte(password))
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	if _, err := users.Create(ctx, &models.User{Email: email, PasswordHash: []byte(hash)}); err != nil && !errors.Is(err, common.ErrorAlreadyExists) {
		return fmt.Errorf("create admin: %w", err)
	}
	s.logger.Info(ctx, "admin account created", "email", email)
	return nil
}

// Login checks the password and, on success, issues a one-time code to the
// account's email. It returns the normalised email the code was sent to.
// Unknown accounts and wrong passwords both yield common.ErrorUnauthorized.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	email = normalizeEmail(email)
	repos := s.repomanager.Repositories()

	user, err := repos.Users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}
	if !cryptox.CheckPassword(string(user.PasswordHash), []byte(password)) {
		return "", common.ErrorUnauthorized
	}

	code, err := common.MakeRandDigits(otpDigits)
	if err != nil {
		return "", common.ErrorInternal
	}
	challenge := &models.Challenge{
		Email:    email,
		CodeHash: cryptox.HashToken(code),
		Expires:  s.now().Add(s.otpValidityDuration),
	}
	if err := repos.Challenges.Upsert(ctx, challenge); err != nil {
		return "", common.ErrorInternal
	}
	if err := s.sender.SendCode(ctx, email, code); err != nil {
		s.logger.Error(ctx, "sending sign-in code failed", "email", email, "error", err)
		return "", common.ErrorInternal
	}
	return email, nil
}

// Verify2FA redeems the code issued by Login. A wrong, expired or exhausted
// code yields common.ErrInvalidCode.
func (s *AuthService) Verify2FA(ctx context.Context, email, code string) (*TokenPair, error) {
	email = normalizeEmail(email)
	challenges := s.repomanager.Repositories().Challenges

	c, err := challenges.Find(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCode
		}
		return nil, common.ErrorInternal
	}
	if !c.Expires.After(s.now()) {
		_ = challenges.Delete(ctx, email)
		return nil, common.ErrInvalidCode
	}

	// Every attempt is counted before the code is compared.
	attempts, err := challenges.IncrementAttempts(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCode
		}
		return nil, common.ErrorInternal
	}
	if attempts > maxOTPAttempts {
		_ = challenges.Delete(ctx, email)
		return nil, common.ErrInvalidCode
	}
	if !cryptox.VerifyToken(strings.TrimSpace(code), c.CodeHash) {
		return nil, common.ErrInvalidCode
	}

	var pair *TokenPair
	err = s.repomanager.WithTx(ctx, func(ctx context.Context, repos repomanager.Repositories) error {
		if err := repos.Challenges.Delete(ctx, email); err != nil {
			return err
		}
		user, err := repos.Users.GetUserByEmail(ctx, email)
		if err != nil {
			return err
		}
		pair, err = s.generateTokenPair(ctx, user, repos)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("complete sign-in: %w", err)
	}
	return pair, nil
}

// RefreshToken validates a refresh token, rotates it transactionally, and
// returns a fresh TokenPair. Expired tokens yield ErrRefreshTokenExpired,
// unknown or already redeemed ones ErrInvalidToken.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	hash := cryptox.HashToken(refreshToken)
	repo := s.repomanager.Repositories().RefreshTokens

	token, err := repo.Find(ctx, hash)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}
	if token.Expires.Before(s.now()) {
		_ = repo.Delete(ctx, hash)
		return nil, common.ErrRefreshTokenExpired
	}

	var pair *TokenPair
	err = s.repomanager.WithTx(ctx, func(ctx context.Context, repos repomanager.Repositories) error {
		if err := repos.RefreshTokens.Delete(ctx, hash); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrInvalidToken
			}
			return fmt.Errorf("error deleting refresh token: %w", err)
		}
		user, err := repos.Users.GetUserByID(ctx, token.UserID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrInvalidToken
			}
			return err
		}
		pair, err = s.generateTokenPair(ctx, user, repos)
		return err
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

// Logout revokes every refresh token of userID. Access tokens already issued
// stay valid until they expire.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if err := s.repomanager.Repositories().RefreshTokens.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("revoke refresh tokens: %w", err)
	}
	return nil
}

// Authenticate validates an access token.
func (s *AuthService) Authenticate(accessToken string) (*auth.Claims, error) {
	return auth.ParseToken(accessToken, s.jwtSecret)
}

func (s *AuthService) generateTokenPair(ctx context.Context, user *models.User, repos repomanager.Repositories) (*TokenPair, error) {
	access, err := auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	refresh, err := cryptox.GenerateOpaqueToken()
	if err != nil {
		return nil, common.ErrorInternal
	}
	if err := repos.RefreshTokens.Create(ctx, user.ID, cryptox.HashToken(refresh), s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
