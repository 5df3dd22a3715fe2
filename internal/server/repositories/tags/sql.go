// Package tags persists tags and their links to outfits.
package tags

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/dmitrijs2005/wardrobe/internal/common"
	"github.com/dmitrijs2005/wardrobe/internal/dbx"
	"github.com/dmitrijs2005/wardrobe/internal/server/models"
)

type SQLRepository struct {
	db dbx.DBTX
	sb sq.StatementBuilderType
}

func NewSQLRepository(db dbx.DBTX, sb sq.StatementBuilderType) *SQLRepository {
	return &SQLRepository{db: db, sb: sb}
}

// GetOrCreate returns the tag called name, inserting it first if needed.
// Concurrent callers converge on the same row through the UNIQUE(name)
// constraint.
func (r *SQLRepository) GetOrCreate(ctx context.Context, name string) (*models.Tag, error) {
	query, args, err := r.sb.Insert("tags").
		Columns("name").
		Values(name).
		Suffix("ON CONFLICT (name) DO NOTHING").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return r.GetByName(ctx, name)
}

func (r *SQLRepository) GetByName(ctx context.Context, name string) (*models.Tag, error) {
	query, args, err := r.sb.Select("id", "name").From("tags").Where(sq.Eq{"name": name}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql: %w", err)
	}

	tag := &models.Tag{}
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&tag.ID, &tag.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return tag, nil
}

// Attach links the tag to the outfit. Linking twice is a no-op.
func (r *SQLRepository) Attach(ctx context.Context, outfitID, tagID int64) error {
	query, args, err := r.sb.Insert("outfit_tags").
		Columns("outfit_id", "tag_id").
		Values(outfitID, tagID).
		Suffix("ON CONFLICT (outfit_id, tag_id) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build sql: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Detach removes the link if present.
func (r *SQLRepository) Detach(ctx context.Context, outfitID, tagID int64) error {
	return r.detach(ctx, sq.Eq{"outfit_id": outfitID, "tag_id": tagID})
}

func (r *SQLRepository) DetachAll(ctx context.Context, outfitID int64) error {
	return r.detach(ctx, sq.Eq{"outfit_id": outfitID})
}

func (r *SQLRepository) detach(ctx context.Context, where sq.Eq) error {
	query, args, err := r.sb.Delete("outfit_tags").Where(where).ToSql()
	if err != nil {
		return fmt.Errorf("build sql: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// ListByOutfits returns the tags of each outfit keyed by outfit id.
func (r *SQLRepository) ListByOutfits(ctx context.Context, outfitIDs []int64) (map[int64][]*models.Tag, error) {
	result := make(map[int64][]*models.Tag, len(outfitIDs))
	if len(outfitIDs) == 0 {
		return result, nil
	}

	query, args, err := r.sb.Select("ot.outfit_id", "t.id", "t.name").
		From("outfit_tags ot").
		Join("tags t ON t.id = ot.tag_id").
		Where(sq.Eq{"ot.outfit_id": outfitIDs}).
		OrderBy("ot.outfit_id", "t.id").
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
		var outfitID int64
		tag := &models.Tag{}
		if err := rows.Scan(&outfitID, &tag.ID, &tag.Name); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result[outfitID] = append(result[outfitID], tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
