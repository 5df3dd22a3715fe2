package services

import (
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/wardrobe/internal/dbx"
	"github.com/dmitrijs2005/wardrobe/internal/server/config"
	"github.com/dmitrijs2005/wardrobe/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/wardrobe/internal/server/repositories/repotest"
	"golang.org/x/crypto/bcrypt"
)

func newTestDB(t *testing.T) (*sql.DB, repomanager.RepositoryManager) {
	t.Helper()
	return repotest.NewSQLite(t), repomanager.NewSQLRepositoryManager(dbx.SQLite)
}

func testConfig() *config.Config {
	return &config.Config{
		SessionValidityDuration: 24 * time.Hour,
		BcryptCost:              bcrypt.MinCost,
		UploadTimeout:           time.Second,
	}
}

func ptr[T any](v T) *T {
	return &v
}
