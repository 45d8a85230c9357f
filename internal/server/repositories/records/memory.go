package records

import (
	"context"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/casiec/internal/common"
	"github.com/dmitrijs2005/casiec/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps records in process memory. Returned records are
// copies; mutating them does not touch the store.
type MemoryRepository struct {
	mu   sync.RWMutex
	data map[models.Collection]map[string]models.Record
	now  func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		data: make(map[models.Collection]map[string]models.Record),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func clone(r models.Record) models.Record {
	r.Data = maps.Clone(r.Data)
	if r.Data == nil {
		r.Data = map[string]any{}
	}
	return r
}

func (r *MemoryRepository) sorted(collection models.Collection, keep func(models.Record) bool) []models.Record {
	out := []models.Record{}
	for _, rec := range r.data[collection] {
		if keep(rec) {
			out = append(out, clone(rec))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *MemoryRepository) List(_ context.Context, collection models.Collection) ([]models.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(collection, func(models.Record) bool { return true }), nil
}

func (r *MemoryRepository) FindByField(_ context.Context, collection models.Collection, field, value string) ([]models.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sorted(collection, func(rec models.Record) bool {
		s, ok := rec.Data[field].(string)
		return ok && s == value
	}), nil
}

func (r *MemoryRepository) Get(_ context.Context, collection models.Collection, id string) (*models.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.data[collection][id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := clone(rec)
	return &c, nil
}

func (r *MemoryRepository) Create(_ context.Context, record *models.Record) (*models.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	rec := clone(*record)
	rec.ID = uuid.NewString()
	rec.CreatedAt, rec.UpdatedAt = now, now

	if r.data[rec.Collection] == nil {
		r.data[rec.Collection] = make(map[string]models.Record)
	}
	r.data[rec.Collection][rec.ID] = rec

	c := clone(rec)
	return &c, nil
}

func (r *MemoryRepository) Update(_ context.Context, collection models.Collection, id string, patch map[string]any) (*models.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.data[collection][id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	rec = clone(rec)
	maps.Copy(rec.Data, patch)
	rec.UpdatedAt = r.now()
	r.data[collection][id] = rec

	c := clone(rec)
	return &c, nil
}

func (r *MemoryRepository) Delete(_ context.Context, collection models.Collection, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data[collection][id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.data[collection], id)
	return nil
}
