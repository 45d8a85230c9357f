package challenges

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/casiec/internal/common"
	"github.com/dmitrijs2005/casiec/internal/server/models"
)

type MemoryRepository struct {
	mu      sync.Mutex
	pending map[string]models.Challenge
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{pending: make(map[string]models.Challenge)}
}

func (r *MemoryRepository) Upsert(_ context.Context, c *models.Challenge) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *c
	stored.Attempts = 0
	r.pending[c.Email] = stored
	return nil
}

func (r *MemoryRepository) Find(_ context.Context, email string) (*models.Challenge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.pending[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &c, nil
}

func (r *MemoryRepository) IncrementAttempts(_ context.Context, email string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.pending[email]
	if !ok {
		return 0, common.ErrorNotFound
	}
	c.Attempts++
	r.pending[email] = c
	return c.Attempts, nil
}

func (r *MemoryRepository) Delete(_ context.Context, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.pending, email)
	return nil
}
