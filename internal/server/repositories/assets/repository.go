package assets

import (
	"context"

	"github.com/dmitrijs2005/wardrobe/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, asset *models.Asset) (*models.Asset, error)
	Get(ctx context.Context, id int64) (*models.Asset, error)
	List(ctx context.Context) ([]*models.Asset, error)
}
