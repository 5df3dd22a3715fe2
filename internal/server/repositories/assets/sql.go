// Package assets persists metadata of uploaded images. Rows are never
// updated.
package assets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/dmitrijs2005/wardrobe/internal/common"
	"github.com/dmitrijs2005/wardrobe/internal/dbx"
	"github.com/dmitrijs2005/wardrobe/internal/server/models"
)

var columns = []string{"id", "base_url", "salt", "extension", "width", "height", "created_at"}

type SQLRepository struct {
	db dbx.DBTX
	sb sq.StatementBuilderType
}

func NewSQLRepository(db dbx.DBTX, sb sq.StatementBuilderType) *SQLRepository {
	return &SQLRepository{db: db, sb: sb}
}

func (r *SQLRepository) Create(ctx context.Context, asset *models.Asset) (*models.Asset, error) {
	if asset.CreatedAt.IsZero() {
		asset.CreatedAt = time.Now()
	}

	query, args, err := r.sb.Insert("assets").
		Columns("base_url", "salt", "extension", "width", "height", "created_at").
		Values(asset.BaseURL, asset.Salt, asset.Extension, asset.Width, asset.Height, asset.CreatedAt.UTC()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&asset.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return asset, nil
}

func (r *SQLRepository) Get(ctx context.Context, id int64) (*models.Asset, error) {
	query, args, err := r.sb.Select(columns...).From("assets").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql: %w", err)
	}

	a := &models.Asset{}
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&a.ID, &a.BaseURL, &a.Salt, &a.Extension, &a.Width, &a.Height, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

func (r *SQLRepository) List(ctx context.Context) ([]*models.Asset, error) {
	query, args, err := r.sb.Select(columns...).From("assets").OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Asset{}
	for rows.Next() {
		a := &models.Asset{}
		if err := rows.Scan(&a.ID, &a.BaseURL, &a.Salt, &a.Extension, &a.Width, &a.Height, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
