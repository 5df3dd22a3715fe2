// Package users persists user accounts and their session tokens.
package users

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

var columns = []string{
	"id", "username", "email", "password_digest",
	"session_token", "session_expiration", "update_token", "created_at",
}

type SQLRepository struct {
	db dbx.DBTX
	sb sq.StatementBuilderType
}

func NewSQLRepository(db dbx.DBTX, sb sq.StatementBuilderType) *SQLRepository {
	return &SQLRepository{db: db, sb: sb}
}

func (r *SQLRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	query, args, err := r.sb.Insert("users").
		Columns("username", "email", "password_digest", "session_token", "session_expiration", "update_token", "created_at").
		Values(user.Username, user.Email, user.PasswordDigest, user.SessionToken,
			user.SessionExpiration.UTC(), user.UpdateToken, user.CreatedAt.UTC()).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql: %w", err)
	}

	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&user.ID); err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, sq.Eq{"id": id})
}

func (r *SQLRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, sq.Eq{"email": email})
}

func (r *SQLRepository) GetBySessionToken(ctx context.Context, token string) (*models.User, error) {
	return r.getOne(ctx, sq.Eq{"session_token": token})
}

func (r *SQLRepository) GetByUpdateToken(ctx context.Context, token string) (*models.User, error) {
	return r.getOne(ctx, sq.Eq{"update_token": token})
}

func (r *SQLRepository) getOne(ctx context.Context, where sq.Eq) (*models.User, error) {
	query, args, err := r.sb.Select(columns...).From("users").Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql: %w", err)
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *SQLRepository) List(ctx context.Context) ([]*models.User, error) {
	query, args, err := r.sb.Select(columns...).From("users").OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sql: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// RotateTokens replaces all three session values, but only while the row
// still carries oldUpdateToken. A concurrent rotation that won the race
// leaves nothing to update and ErrNotFound is returned.
func (r *SQLRepository) RotateTokens(ctx context.Context, id int64, oldUpdateToken, sessionToken string, expiration time.Time, updateToken string) error {
	query, args, err := r.sb.Update("users").
		Set("session_token", sessionToken).
		Set("session_expiration", expiration.UTC()).
		Set("update_token", updateToken).
		Where(sq.Eq{"id": id, "update_token": oldUpdateToken}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build sql: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}

	return expectAffected(res)
}

func (r *SQLRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.sb.Delete("users").Where(sq.Eq{"id": id}).ToSql()
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

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(row scanner) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordDigest,
		&u.SessionToken, &u.SessionExpiration, &u.UpdateToken, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}
