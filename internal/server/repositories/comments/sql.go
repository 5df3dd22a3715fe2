// Package comments persists comments left on outfits.
package comments

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

var columns = []string{"id", "text", "user_id", "outfit_id", "created_at"}

type SQLRepository struct {
	db dbx.DBTX
	sb sq.StatementBuilderType
}

func NewSQLRepository(db dbx.DBTX, sb sq.StatementBuilderType) *SQLRepository {
	return &SQLRepository{db: db, sb: sb}
}

func (r *SQLRepository) Create(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}

	var userID sql.NullInt64
	if comment.UserID != nil {
		userID = sql.NullInt64{Int64: *comment.UserID, Valid: true}
	}

	query, args, err := r.sb.Insert("comments").
		Columns("text", "user_id", "outfit_id", "created_at").
		Values(comment.Text, userID, comment.OutfitID, comment.CreatedAt.UTC()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&comment.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return comment, nil
}

func (r *SQLRepository) Get(ctx context.Context, id int64) (*models.Comment, error) {
	query, args, err := r.sb.Select(columns...).From("comments").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql: %w", err)
	}

	c, err := scanComment(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return c, nil
}

func (r *SQLRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.sb.Delete("comments").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build sql: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *SQLRepository) DeleteByOutfit(ctx context.Context, outfitID int64) error {
	query, args, err := r.sb.Delete("comments").Where(sq.Eq{"outfit_id": outfitID}).ToSql()
	if err != nil {
		return fmt.Errorf("build sql: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// ListByOutfits returns comments keyed by outfit id, oldest first.
func (r *SQLRepository) ListByOutfits(ctx context.Context, outfitIDs []int64) (map[int64][]*models.Comment, error) {
	result := make(map[int64][]*models.Comment, len(outfitIDs))
	if len(outfitIDs) == 0 {
		return result, nil
	}

	query, args, err := r.sb.Select(columns...).
		From("comments").
		Where(sq.Eq{"outfit_id": outfitIDs}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result[c.OutfitID] = append(result[c.OutfitID], c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanComment(row scanner) (*models.Comment, error) {
	c := &models.Comment{}
	var userID sql.NullInt64
	if err := row.Scan(&c.ID, &c.Text, &userID, &c.OutfitID, &c.CreatedAt); err != nil {
		return nil, err
	}
	if userID.Valid {
		id := userID.Int64
		c.UserID = &id
	}
	return c, nil
}
