package tags

import (
	"context"

	"github.com/dmitrijs2005/wardrobe/internal/server/models"
)

type Repository interface {
	GetOrCreate(ctx context.Context, name string) (*models.Tag, error)
	GetByName(ctx context.Context, name string) (*models.Tag, error)
	Attach(ctx context.Context, outfitID, tagID int64) error
	Detach(ctx context.Context, outfitID, tagID int64) error
	DetachAll(ctx context.Context, outfitID int64) error
	ListByOutfits(ctx context.Context, outfitIDs []int64) (map[int64][]*models.Tag, error)
}
