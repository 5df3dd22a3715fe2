package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/wardrobe/internal/common"
	"github.com/dmitrijs2005/wardrobe/internal/dbx"
	"github.com/dmitrijs2005/wardrobe/internal/server/models"
	"github.com/dmitrijs2005/wardrobe/internal/server/repositories/repomanager"
)

// OutfitInput carries outfit fields from a request. A nil field means
// "use the default" on create and "keep the current value" on update.
type OutfitInput struct {
	Title    *string
	Text     *string
	Public   *bool
	Clean    *bool
	ImageURL *string
	UserID   *int64
}

// OutfitService maintains outfits together with their tags and comments.
// Every mutation runs in a single transaction.
type OutfitService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewOutfitService(db *sql.DB, m repomanager.RepositoryManager) *OutfitService {
	return &OutfitService{db: db, repomanager: m, now: time.Now}
}

func (s *OutfitService) CreateOutfit(ctx context.Context, in OutfitInput) (*models.Outfit, error) {
	outfit := &models.Outfit{Title: models.DefaultOutfitTitle, CreatedAt: s.now()}
	applyOutfitInput(outfit, in)

	return dbx.InTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (*models.Outfit, error) {
		if err := s.checkUser(ctx, tx, outfit.UserID); err != nil {
			return nil, err
		}

		created, err := s.repomanager.Outfits(tx).Create(ctx, outfit)
		if err != nil {
			return nil, fmt.Errorf("error creating outfit: %w", err)
		}
		created.Comments = []*models.Comment{}
		created.Tags = []*models.Tag{}
		return created, nil
	})
}

func (s *OutfitService) GetOutfit(ctx context.Context, id int64) (*models.Outfit, error) {
	return loadOutfit(ctx, s.repomanager, s.db, id)
}

// ListOutfits returns every outfit. There is no pagination.
func (s *OutfitService) ListOutfits(ctx context.Context) ([]*models.Outfit, error) {
	return dbx.InTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) ([]*models.Outfit, error) {
		list, err := s.repomanager.Outfits(tx).List(ctx)
		if err != nil {
			return nil, err
		}
		if err := hydrateOutfits(ctx, s.repomanager, tx, list); err != nil {
			return nil, err
		}
		return list, nil
	})
}

// UpdateOutfit replaces the fields present in in and keeps the others.
func (s *OutfitService) UpdateOutfit(ctx context.Context, id int64, in OutfitInput) (*models.Outfit, error) {
	return dbx.InTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (*models.Outfit, error) {
		outfit, err := s.repomanager.Outfits(tx).Get(ctx, id)
		if err != nil {
			return nil, err
		}

		applyOutfitInput(outfit, in)
		if in.UserID != nil {
			if err := s.checkUser(ctx, tx, in.UserID); err != nil {
				return nil, err
			}
		}

		if err := s.repomanager.Outfits(tx).Update(ctx, outfit); err != nil {
			return nil, err
		}
		if err := hydrateOutfits(ctx, s.repomanager, tx, []*models.Outfit{outfit}); err != nil {
			return nil, err
		}
		return outfit, nil
	})
}

// DeleteOutfit removes the outfit, its comments and its tag links. Tags
// themselves survive. The outfit is returned as it was before deletion.
func (s *OutfitService) DeleteOutfit(ctx context.Context, id int64) (*models.Outfit, error) {
	return dbx.InTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (*models.Outfit, error) {
		outfit, err := loadOutfit(ctx, s.repomanager, tx, id)
		if err != nil {
			return nil, err
		}
		if err := deleteOutfitTx(ctx, s.repomanager, tx, id); err != nil {
			return nil, err
		}
		return outfit, nil
	})
}

// AssignTag links the tag called name to the outfit, creating the tag if
// needed. Assigning a tag twice leaves a single link.
func (s *OutfitService) AssignTag(ctx context.Context, outfitID int64, name string) (*models.Outfit, error) {
	return dbx.InTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (*models.Outfit, error) {
		if _, err := s.repomanager.Outfits(tx).Get(ctx, outfitID); err != nil {
			return nil, err
		}
		if name == "" {
			return nil, common.ErrInvalidInput
		}

		tagsRepo := s.repomanager.Tags(tx)
		tag, err := tagsRepo.GetOrCreate(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("error creating tag: %w", err)
		}
		if err := tagsRepo.Attach(ctx, outfitID, tag.ID); err != nil {
			return nil, fmt.Errorf("error attaching tag: %w", err)
		}

		return loadOutfit(ctx, s.repomanager, tx, outfitID)
	})
}

// RemoveTag unlinks the tag called name from the outfit. Unknown tags and
// tags that are not linked are ignored.
func (s *OutfitService) RemoveTag(ctx context.Context, outfitID int64, name string) (*models.Outfit, error) {
	return dbx.InTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (*models.Outfit, error) {
		if _, err := s.repomanager.Outfits(tx).Get(ctx, outfitID); err != nil {
			return nil, err
		}
		if name == "" {
			return nil, common.ErrInvalidInput
		}

		tagsRepo := s.repomanager.Tags(tx)
		tag, err := tagsRepo.GetByName(ctx, name)
		switch {
		case errors.Is(err, common.ErrNotFound):
		case err != nil:
			return nil, err
		default:
			if err := tagsRepo.Detach(ctx, outfitID, tag.ID); err != nil {
				return nil, fmt.Errorf("error detaching tag: %w", err)
			}
		}

		return loadOutfit(ctx, s.repomanager, tx, outfitID)
	})
}

// AddComment stores a comment on the outfit. The returned comment carries a
// summary of the outfit.
func (s *OutfitService) AddComment(ctx context.Context, outfitID int64, text string, userID *int64) (*models.Comment, error) {
	return dbx.InTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (*models.Comment, error) {
		outfit, err := s.repomanager.Outfits(tx).Get(ctx, outfitID)
		if err != nil {
			return nil, err
		}
		if text == "" {
			return nil, common.ErrInvalidInput
		}
		if err := s.checkUser(ctx, tx, userID); err != nil {
			return nil, err
		}

		comment, err := s.repomanager.Comments(tx).Create(ctx, &models.Comment{
			Text:      text,
			UserID:    userID,
			OutfitID:  outfitID,
			CreatedAt: s.now(),
		})
		if err != nil {
			return nil, fmt.Errorf("error creating comment: %w", err)
		}
		comment.Outfit = outfit
		return comment, nil
	})
}

// DeleteComment removes a comment and returns it with its outfit summary.
func (s *OutfitService) DeleteComment(ctx context.Context, id int64) (*models.Comment, error) {
	return dbx.InTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (*models.Comment, error) {
		repo := s.repomanager.Comments(tx)
		comment, err := repo.Get(ctx, id)
		if err != nil {
			return nil, err
		}

		outfit, err := s.repomanager.Outfits(tx).Get(ctx, comment.OutfitID)
		if err != nil {
			return nil, err
		}
		comment.Outfit = outfit

		if err := repo.Delete(ctx, id); err != nil {
			return nil, err
		}
		return comment, nil
	})
}

// checkUser rejects references to users that do not exist. A nil id is
// accepted.
func (s *OutfitService) checkUser(ctx context.Context, tx dbx.DBTX, userID *int64) error {
	if userID == nil {
		return nil
	}
	_, err := s.repomanager.Users(tx).GetByID(ctx, *userID)
	if errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("%w: user %d does not exist", common.ErrInvalidInput, *userID)
	}
	return err
}

func applyOutfitInput(o *models.Outfit, in OutfitInput) {
	if in.Title != nil {
		o.Title = *in.Title
	}
	if in.Text != nil {
		o.Text = *in.Text
	}
	if in.Public != nil {
		o.Public = *in.Public
	}
	if in.Clean != nil {
		o.Clean = *in.Clean
	}
	if in.ImageURL != nil {
		o.ImageURL = *in.ImageURL
	}
	if in.UserID != nil {
		id := *in.UserID
		o.UserID = &id
	}
}

func loadOutfit(ctx context.Context, m repomanager.RepositoryManager, db dbx.DBTX, id int64) (*models.Outfit, error) {
	outfit, err := m.Outfits(db).Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := hydrateOutfits(ctx, m, db, []*models.Outfit{outfit}); err != nil {
		return nil, err
	}
	return outfit, nil
}

// hydrateOutfits fills Comments and Tags of every outfit with two queries.
func hydrateOutfits(ctx context.Context, m repomanager.RepositoryManager, db dbx.DBTX, list []*models.Outfit) error {
	if len(list) == 0 {
		return nil
	}

	ids := make([]int64, len(list))
	for i, o := range list {
		ids[i] = o.ID
	}

	tags, err := m.Tags(db).ListByOutfits(ctx, ids)
	if err != nil {
		return err
	}
	comments, err := m.Comments(db).ListByOutfits(ctx, ids)
	if err != nil {
		return err
	}

	for _, o := range list {
		o.Tags = tags[o.ID]
		if o.Tags == nil {
			o.Tags = []*models.Tag{}
		}
		o.Comments = comments[o.ID]
		if o.Comments == nil {
			o.Comments = []*models.Comment{}
		}
	}
	return nil
}

// deleteOutfitTx removes dependents before the outfit row.
func deleteOutfitTx(ctx context.Context, m repomanager.RepositoryManager, tx dbx.DBTX, id int64) error {
	if err := m.Comments(tx).DeleteByOutfit(ctx, id); err != nil {
		return err
	}
	if err := m.Tags(tx).DetachAll(ctx, id); err != nil {
		return err
	}
	return m.Outfits(tx).Delete(ctx, id)
}
