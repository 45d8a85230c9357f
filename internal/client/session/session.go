// Package session holds the console's authentication state: the access token
// attached to every request and the refresh token used to renew it. Both are
// kept in memory and mirrored to durable storage under fixed keys, so a
// restarted console resumes the previous session.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/casiec/internal/client/models"
	"github.com/dmitrijs2005/casiec/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/casiec/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Manager is safe for concurrent use.
type Manager struct {
	repo metadata.Repository

	mu      sync.RWMutex
	access  string
	refresh string
}

func NewManager(repo metadata.Repository) *Manager {
	return &Manager{repo: repo}
}

// Load restores the tokens from storage. Missing keys leave the session empty.
func (m *Manager) Load(ctx context.Context) error {
	access, err := m.read(ctx, common.AccessTokenKey)
	if err != nil {
		return err
	}
	refresh, err := m.read(ctx, common.RefreshTokenKey)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.access, m.refresh = access, refresh
	m.mu.Unlock()
	return nil
}

func (m *Manager) read(ctx context.Context, key string) (string, error) {
	v, err := m.repo.Get(ctx, key)
	if errors.Is(err, common.ErrorNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load %s: %w", key, err)
	}
	return v, nil
}

func (m *Manager) AccessToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.access
}

func (m *Manager) RefreshToken() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refresh
}

// Authenticated reports whether an access token is held. The token is not
// validated; a stale one is renewed on the first 401.
func (m *Manager) Authenticated() bool {
	return m.AccessToken() != ""
}

// Store saves a token pair. An empty refresh token keeps the current one,
// matching refresh responses that do not rotate it.
func (m *Manager) Store(ctx context.Context, pair models.TokenPair) error {
	if pair.AccessToken == "" {
		return fmt.Errorf("store session: %w", common.ErrInvalidToken)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	values := map[string]string{common.AccessTokenKey: pair.AccessToken}
	refresh := m.refresh
	if pair.RefreshToken != "" {
		refresh = pair.RefreshToken
		values[common.RefreshTokenKey] = refresh
	}
	if err := m.repo.SetMany(ctx, values); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	m.access, m.refresh = pair.AccessToken, refresh
	return nil
}

// Clear removes both tokens. The in-memory copy is dropped even when storage
// fails.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	m.access, m.refresh = "", ""
	m.mu.Unlock()

	if err := m.repo.Delete(ctx, common.AccessTokenKey, common.RefreshTokenKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// Expiry reads the exp claim of the access token without verifying its
// signature. It is for display only.
func (m *Manager) Expiry() (time.Time, bool) {
	tok := m.AccessToken()
	if tok == "" {
		return time.Time{}, false
	}
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, &claims); err != nil || claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
