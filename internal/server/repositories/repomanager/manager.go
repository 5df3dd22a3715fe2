package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/wardrobe/internal/dbx"
	"github.com/dmitrijs2005/wardrobe/internal/server/repositories/assets"
	"github.com/dmitrijs2005/wardrobe/internal/server/repositories/comments"
	"github.com/dmitrijs2005/wardrobe/internal/server/repositories/outfits"
	"github.com/dmitrijs2005/wardrobe/internal/server/repositories/tags"
	"github.com/dmitrijs2005/wardrobe/internal/server/repositories/users"
)

type RepositoryManager interface {
	Dialect() dbx.Dialect
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Outfits(db dbx.DBTX) outfits.Repository
	Tags(db dbx.DBTX) tags.Repository
	Comments(db dbx.DBTX) comments.Repository
	Assets(db dbx.DBTX) assets.Repository
}
