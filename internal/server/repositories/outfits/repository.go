package outfits

import (
	"context"

	"github.com/dmitrijs2005/wardrobe/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, outfit *models.Outfit) (*models.Outfit, error)
	Get(ctx context.Context, id int64) (*models.Outfit, error)
	List(ctx context.Context) ([]*models.Outfit, error)
	ListByUsers(ctx context.Context, userIDs []int64) (map[int64][]*models.Outfit, error)
	Update(ctx context.Context, outfit *models.Outfit) error
	Delete(ctx context.Context, id int64) error
}
