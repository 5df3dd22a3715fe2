package comments

import (
	"context"

	"github.com/dmitrijs2005/wardrobe/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, comment *models.Comment) (*models.Comment, error)
	Get(ctx context.Context, id int64) (*models.Comment, error)
	Delete(ctx context.Context, id int64) error
	DeleteByOutfit(ctx context.Context, outfitID int64) error
	ListByOutfits(ctx context.Context, outfitIDs []int64) (map[int64][]*models.Comment, error)
}
