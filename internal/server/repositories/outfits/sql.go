// Package outfits persists outfit posts.
package outfits

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

var columns = []string{"id", "title", "text", "public", "clean", "image_url", "user_id", "created_at"}

type SQLRepository struct {
	db dbx.DBTX
	sb sq.StatementBuilderType
}

func NewSQLRepository(db dbx.DBTX, sb sq.StatementBuilderType) *SQLRepository {
	return &SQLRepository{db: db, sb: sb}
}

func (r *SQLRepository) Create(ctx context.Context, outfit *models.Outfit) (*models.Outfit, error) {
	if outfit.CreatedAt.IsZero() {
		outfit.CreatedAt = time.Now()
	}

	query, args, err := r.sb.Insert("outfits").
		Columns("title", "text", "public", "clean", "image_url", "user_id", "created_at").
		Values(outfit.Title, outfit.Text, outfit.Public, outfit.Clean, outfit.ImageURL,
			nullableID(outfit.UserID), outfit.CreatedAt.UTC()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&outfit.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return outfit, nil
}

func (r *SQLRepository) Get(ctx context.Context, id int64) (*models.Outfit, error) {
	query, args, err := r.sb.Select(columns...).From("outfits").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql: %w", err)
	}

	outfit, err := scanOutfit(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return outfit, nil
}

func (r *SQLRepository) List(ctx context.Context) ([]*models.Outfit, error) {
	return r.list(ctx, r.sb.Select(columns...).From("outfits").OrderBy("id"))
}

// ListByUsers groups the outfits owned by the given users by user id.
func (r *SQLRepository) ListByUsers(ctx context.Context, userIDs []int64) (map[int64][]*models.Outfit, error) {
	result := make(map[int64][]*models.Outfit, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	list, err := r.list(ctx, r.sb.Select(columns...).From("outfits").
		Where(sq.Eq{"user_id": userIDs}).OrderBy("id"))
	if err != nil {
		return nil, err
	}

	for _, o := range list {
		result[*o.UserID] = append(result[*o.UserID], o)
	}
	return result, nil
}

func (r *SQLRepository) list(ctx context.Context, b sq.SelectBuilder) ([]*models.Outfit, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Outfit{}
	for rows.Next() {
		o, err := scanOutfit(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// Update writes every mutable column of outfit.
func (r *SQLRepository) Update(ctx context.Context, outfit *models.Outfit) error {
	query, args, err := r.sb.Update("outfits").
		Set("title", outfit.Title).
		Set("text", outfit.Text).
		Set("public", outfit.Public).
		Set("clean", outfit.Clean).
		Set("image_url", outfit.ImageURL).
		Set("user_id", nullableID(outfit.UserID)).
		Where(sq.Eq{"id": outfit.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build sql: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return expectAffected(res)
}

func (r *SQLRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.sb.Delete("outfits").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build sql: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return expectAffected(res)
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOutfit(row scanner) (*models.Outfit, error) {
	o := &models.Outfit{}
	var userID sql.NullInt64
	err := row.Scan(&o.ID, &o.Title, &o.Text, &o.Public, &o.Clean, &o.ImageURL, &userID, &o.CreatedAt)
	if err != nil {
		return nil, err
	}
	if userID.Valid {
		id := userID.Int64
		o.UserID = &id
	}
	return o, nil
}
