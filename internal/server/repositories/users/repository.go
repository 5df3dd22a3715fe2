package users

import (
	"context"
	"time"

	"github.com/dmitrijs2005/wardrobe/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetBySessionToken(ctx context.Context, token string) (*models.User, error)
	GetByUpdateToken(ctx context.Context, token string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
	RotateTokens(ctx context.Context, id int64, oldUpdateToken, sessionToken string, expiration time.Time, updateToken string) error
	Delete(ctx context.Context, id int64) error
}
