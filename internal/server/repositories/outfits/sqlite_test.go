package outfits

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/wardrobe/internal/common"
	"github.com/dmitrijs2005/wardrobe/internal/dbx"
	"github.com/dmitrijs2005/wardrobe/internal/server/models"
	"github.com/dmitrijs2005/wardrobe/internal/server/repositories/repotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func insertUser(t *testing.T, db *sql.DB, email string) int64 {
	t.Helper()
	var id int64
	err := db.QueryRow(`INSERT INTO users (username, email, password_digest, session_token, session_expiration, update_token, created_at)
		VALUES (?, ?, 'd', ?, '2026-01-01 00:00:00', ?, '2026-01-01 00:00:00') RETURNING id`,
		email, email, "s-"+email, "u-"+email).Scan(&id)
	require.NoError(t, err)
	return id
}

func TestSQLite_CreateGetUpdate(t *testing.T) {
	ctx := context.Background()
	db := repotest.NewSQLite(t)
	repo := NewSQLRepository(db, dbx.SQLite.Builder())

	created, err := repo.Create(ctx, &models.Outfit{Title: "unnamed"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "unnamed", got.Title)
	assert.Equal(t, "", got.Text)
	assert.False(t, got.Public)
	assert.False(t, got.Clean)
	assert.Nil(t, got.UserID)

	uid := insertUser(t, db, "bob@example.com")
	got.Title = "Summer"
	got.Public = true
	got.UserID = &uid
	require.NoError(t, repo.Update(ctx, got))

	again, err := repo.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Summer", again.Title)
	assert.True(t, again.Public)
	require.NotNil(t, again.UserID)
	assert.Equal(t, uid, *again.UserID)
}

func TestSQLite_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLRepository(repotest.NewSQLite(t), dbx.SQLite.Builder())

	_, err := repo.Get(ctx, 999)
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, &models.Outfit{ID: 999, Title: "x"}), common.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, 999), common.ErrNotFound)
}

func TestSQLite_ListByUsers(t *testing.T) {
	ctx := context.Background()
	db := repotest.NewSQLite(t)
	repo := NewSQLRepository(db, dbx.SQLite.Builder())

	a := insertUser(t, db, "a@example.com")
	b := insertUser(t, db, "b@example.com")

	for _, o := range []*models.Outfit{
		{Title: "a1", UserID: &a},
		{Title: "a2", UserID: &a},
		{Title: "b1", UserID: &b},
		{Title: "orphan"},
	} {
		_, err := repo.Create(ctx, o)
		require.NoError(t, err)
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	grouped, err := repo.ListByUsers(ctx, []int64{a, b})
	require.NoError(t, err)
	require.Len(t, grouped[a], 2)
	assert.Equal(t, "a1", grouped[a][0].Title)
	require.Len(t, grouped[b], 1)

	empty, err := repo.ListByUsers(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSQLite_DeletingUserCascades(t *testing.T) {
	ctx := context.Background()
	db := repotest.NewSQLite(t)
	repo := NewSQLRepository(db, dbx.SQLite.Builder())

	uid := insertUser(t, db, "bob@example.com")
	o, err := repo.Create(ctx, &models.Outfit{Title: "mine", UserID: &uid})
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", uid)
	require.NoError(t, err)

	_, err = repo.Get(ctx, o.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestList_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM outfits ORDER BY id`).WillReturnError(errors.New("db down"))

	_, err = NewSQLRepository(db, dbx.Postgres.Builder()).List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}
