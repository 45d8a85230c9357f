package records

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/casiec/internal/common"
	"github.com/dmitrijs2005/casiec/internal/dbx"
	"github.com/dmitrijs2005/casiec/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner, collection models.Collection) (*models.Record, error) {
	var (
		rec  = &models.Record{Collection: collection}
		data []byte
	)
	if err := s.Scan(&rec.ID, &data, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &rec.Data); err != nil {
		return nil, fmt.Errorf("decode record %s: %w", rec.ID, err)
	}
	if rec.Data == nil {
		rec.Data = map[string]any{}
	}
	return rec, nil
}

func (r *PostgresRepository) query(ctx context.Context, collection models.Collection, query string, args ...any) ([]models.Record, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	out := []models.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows, collection)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return out, nil
}

func (r *PostgresRepository) List(ctx context.Context, collection models.Collection) ([]models.Record, error) {
	query := `
		SELECT id, data, created_at, updated_at
		FROM records
		WHERE collection = $1
		ORDER BY created_at DESC
	`
	return r.query(ctx, collection, query, string(collection))
}

func (r *PostgresRepository) FindByField(ctx context.Context, collection models.Collection, field, value string) ([]models.Record, error) {
	query := `
		SELECT id, data, created_at, updated_at
		FROM records
		WHERE collection = $1 AND data->>$2 = $3
		ORDER BY created_at DESC
	`
	return r.query(ctx, collection, query, string(collection), field, value)
}

func (r *PostgresRepository) Get(ctx context.Context, collection models.Collection, id string) (*models.Record, error) {
	query := `
		SELECT id, data, created_at, updated_at
		FROM records
		WHERE collection = $1 AND id = $2
	`
	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, string(collection), id), collection)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

func (r *PostgresRepository) Create(ctx context.Context, record *models.Record) (*models.Record, error) {
	data, err := json.Marshal(record.Data)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}

	query := `
		INSERT INTO records (collection, data)
		VALUES ($1, $2)
		RETURNING id, data, created_at, updated_at
	`
	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, string(record.Collection), string(data)), record.Collection)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

func (r *PostgresRepository) Update(ctx context.Context, collection models.Collection, id string, patch map[string]any) (*models.Record, error) {
	data, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}

	query := `
		UPDATE records SET data = data || $3::jsonb, updated_at = now()
		WHERE collection = $1 AND id = $2
		RETURNING id, data, created_at, updated_at
	`
	rec, err := scanRecord(r.db.QueryRowContext(ctx, query, string(collection), id, string(data)), collection)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return rec, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, collection models.Collection, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM records WHERE collection = $1 AND id = $2`, string(collection), id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
