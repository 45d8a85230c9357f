package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/casiec/internal/server/repositories/challenges"
	"github.com/dmitrijs2005/casiec/internal/server/repositories/records"
	"github.com/dmitrijs2005/casiec/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/casiec/internal/server/repositories/users"
)

// InMemoryRepositoryManager keeps everything in process memory. WithTx
// serialises callers but cannot roll back: writes made before fn fails stay.
type InMemoryRepositoryManager struct {
	txMu  sync.Mutex
	repos Repositories
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{repos: Repositories{
		Users:         users.NewMemoryRepository(),
		RefreshTokens: refreshtokens.NewMemoryRepository(),
		Challenges:    challenges.NewMemoryRepository(),
		Records:       records.NewMemoryRepository(),
	}}
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *InMemoryRepositoryManager) Repositories() Repositories { return m.repos }

func (m *InMemoryRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(ctx, m.repos)
}

func (m *InMemoryRepositoryManager) Close() error { return nil }
