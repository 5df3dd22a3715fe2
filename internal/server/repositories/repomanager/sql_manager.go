// Package repomanager provides a RepositoryManager for SQL databases,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/dmitrijs2005/wardrobe/internal/dbx"
	"github.com/dmitrijs2005/wardrobe/internal/server/migrations"
	"github.com/dmitrijs2005/wardrobe/internal/server/repositories/assets"
	"github.com/dmitrijs2005/wardrobe/internal/server/repositories/comments"
	"github.com/dmitrijs2005/wardrobe/internal/server/repositories/outfits"
	"github.com/dmitrijs2005/wardrobe/internal/server/repositories/tags"
	"github.com/dmitrijs2005/wardrobe/internal/server/repositories/users"
)

// SQLRepositoryManager vends repositories that speak the configured dialect
// and exposes a schema migration hook.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
	sb      sq.StatementBuilderType
}

// NewSQLRepositoryManager constructs a RepositoryManager for the dialect.
func NewSQLRepositoryManager(d dbx.Dialect) *SQLRepositoryManager {
	return &SQLRepositoryManager{dialect: d, sb: d.Builder()}
}

func (m *SQLRepositoryManager) Dialect() dbx.Dialect {
	return m.dialect
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db, m.sb)
}

// Outfits returns an outfits.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Outfits(db dbx.DBTX) outfits.Repository {
	return outfits.NewSQLRepository(db, m.sb)
}

// Tags returns a tags.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Tags(db dbx.DBTX) tags.Repository {
	return tags.NewSQLRepository(db, m.sb)
}

// Comments returns a comments.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Comments(db dbx.DBTX) comments.Repository {
	return comments.NewSQLRepository(db, m.sb)
}

// Assets returns an assets.Repository bound to the provided DBTX.
func (m *SQLRepositoryManager) Assets(db dbx.DBTX) assets.Repository {
	return assets.NewSQLRepository(db, m.sb)
}

// migrateUp is a seam for testing migrations.Up.
var migrateUp = migrations.Up

// RunMigrations applies the embedded migrations of the manager's dialect.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrateUp(ctx, db, m.dialect)
}
