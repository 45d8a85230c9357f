// Package records stores the documents of every content collection in one
// table, with the document body kept as JSON.
package records

import (
	"context"

	"github.com/dmitrijs2005/casiec/internal/server/models"
)

type Repository interface {
	// List returns the collection newest first.
	List(ctx context.Context, collection models.Collection) ([]models.Record, error)
	Get(ctx context.Context, collection models.Collection, id string) (*models.Record, error)
	// FindByField returns the records whose string field equals value.
	FindByField(ctx context.Context, collection models.Collection, field, value string) ([]models.Record, error)
	Create(ctx context.Context, record *models.Record) (*models.Record, error)
	// Update merges patch into the stored data; keys absent from patch keep
	// their value.
	Update(ctx context.Context, collection models.Collection, id string, patch map[string]any) (*models.Record, error)
	Delete(ctx context.Context, collection models.Collection, id string) error
}
