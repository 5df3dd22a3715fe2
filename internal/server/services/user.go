// Package services contains server-side business logic. This file implements
// UserService, which owns password digests and the two-token session model:
// a session token that expires and an update token that mints new pairs.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/wardrobe/internal/common"
	"github.com/dmitrijs2005/wardrobe/internal/dbx"
	"github.com/dmitrijs2005/wardrobe/internal/server/config"
	"github.com/dmitrijs2005/wardrobe/internal/server/models"
	"github.com/dmitrijs2005/wardrobe/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/wardrobe/internal/shared"
	"golang.org/x/crypto/bcrypt"
)

// tokenBytes is the entropy of session and update tokens (256 bits).
const tokenBytes = 32

// Credentials is the token triple handed to clients.
type Credentials struct {
	SessionToken      string
	SessionExpiration time.Time
	UpdateToken       string
}

// UserService provides authentication-related operations:
// - Register: create users and issue their first tokens
// - Login: verify a password and return the current tokens
// - RenewSession: rotate both tokens using the update token
// - VerifySession: resolve a live session token to its user
type UserService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	sessionValidity time.Duration
	bcryptCost      int
	now             func() time.Time

	dummyOnce   sync.Once
	dummyDigest []byte
}

// UserOption customizes a UserService.
type UserOption func(*UserService)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) UserOption {
	return func(s *UserService) { s.now = now }
}

// WithBcryptCost overrides the configured bcrypt cost.
func WithBcryptCost(cost int) UserOption {
	return func(s *UserService) { s.bcryptCost = cost }
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, opts ...UserOption) *UserService {
	s := &UserService{
		db:              db,
		repomanager:     m,
		sessionValidity: cfg.SessionValidityDuration,
		bcryptCost:      cfg.BcryptCost,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a user and returns its first credentials. The username
// defaults to the email.
func (s *UserService) Register(ctx context.Context, email, password, username string) (*Credentials, error) {
	if email == "" || password == "" {
		return nil, common.ErrInvalidInput
	}
	if username == "" {
		username = email
	}

	repo := s.repomanager.Users(s.db)

	_, err := repo.GetByEmail(ctx, email)
	if err == nil {
		return nil, common.ErrDuplicateEmail
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, common.ErrInvalidInput
		}
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	creds, err := s.newCredentials()
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:          username,
		Email:             email,
		PasswordDigest:    string(digest),
		SessionToken:      creds.SessionToken,
		SessionExpiration: creds.SessionExpiration,
		UpdateToken:       creds.UpdateToken,
		CreatedAt:         s.now(),
	}

	if _, err := repo.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration of the same email
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return creds, nil
}

// Login checks the password and returns the user's current credentials.
// Tokens are not rotated. Unknown emails cost one bcrypt comparison as
// well, so timing does not reveal which emails are registered.
func (s *UserService) Login(ctx context.Context, email, password string) (*Credentials, error) {
	if email == "" || password == "" {
		return nil, common.ErrInvalidCredentials
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(s.getDummyDigest(), []byte(password))
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordDigest), []byte(password)); err != nil {
		return nil, common.ErrInvalidCredentials
	}

	return credentialsOf(user), nil
}

// RenewSession swaps updateToken for a fresh token pair and expiration.
// Each update token can be redeemed once.
func (s *UserService) RenewSession(ctx context.Context, updateToken string) (*Credentials, error) {
	if updateToken == "" {
		return nil, common.ErrInvalidToken
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByUpdateToken(ctx, updateToken)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, fmt.Errorf("error searching update token: %w", err)
	}

	creds, err := s.newCredentials()
	if err != nil {
		return nil, err
	}

	err = repo.RotateTokens(ctx, user.ID, updateToken, creds.SessionToken, creds.SessionExpiration, creds.UpdateToken)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, fmt.Errorf("error rotating tokens: %w", err)
	}

	return creds, nil
}

// VerifySession returns the owner of a session token that has not expired.
// A token is valid strictly before its expiration instant.
func (s *UserService) VerifySession(ctx context.Context, sessionToken string) (*models.User, error) {
	if sessionToken == "" {
		return nil, common.ErrInvalidToken
	}

	user, err := s.repomanager.Users(s.db).GetBySessionToken(ctx, sessionToken)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, fmt.Errorf("error searching session token: %w", err)
	}

	if !user.SessionValidAt(s.now()) {
		return nil, common.ErrInvalidToken
	}

	return user, nil
}

// ListUsers returns every user with their outfits, comments and tags.
func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return dbx.InTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) ([]*models.User, error) {
		users, err := s.repomanager.Users(tx).List(ctx)
		if err != nil {
			return nil, err
		}

		ids := make([]int64, len(users))
		for i, u := range users {
			ids[i] = u.ID
		}

		byUser, err := s.repomanager.Outfits(tx).ListByUsers(ctx, ids)
		if err != nil {
			return nil, err
		}

		var all []*models.Outfit
		for _, u := range users {
			u.Outfits = byUser[u.ID]
			if u.Outfits == nil {
				u.Outfits = []*models.Outfit{}
			}
			all = append(all, u.Outfits...)
		}

		if err := hydrateOutfits(ctx, s.repomanager, tx, all); err != nil {
			return nil, err
		}
		return users, nil
	})
}

// DeleteUser removes the user and the outfits they own, together with those
// outfits' comments and tag links. Comments the user left on other outfits
// stay, without an author. The user is returned as it was before deletion.
func (s *UserService) DeleteUser(ctx context.Context, id int64) (*models.User, error) {
	return dbx.InTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) (*models.User, error) {
		user, err := s.repomanager.Users(tx).GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		byUser, err := s.repomanager.Outfits(tx).ListByUsers(ctx, []int64{id})
		if err != nil {
			return nil, err
		}
		user.Outfits = byUser[id]
		if user.Outfits == nil {
			user.Outfits = []*models.Outfit{}
		}
		if err := hydrateOutfits(ctx, s.repomanager, tx, user.Outfits); err != nil {
			return nil, err
		}

		for _, o := range user.Outfits {
			if err := deleteOutfitTx(ctx, s.repomanager, tx, o.ID); err != nil {
				return nil, err
			}
		}

		if err := s.repomanager.Users(tx).Delete(ctx, id); err != nil {
			return nil, err
		}
		return user, nil
	})
}

// --- helpers below ---

func (s *UserService) newCredentials() (*Credentials, error) {
	session, err := shared.MakeRandHexString(tokenBytes)
	if err != nil {
		return nil, fmt.Errorf("error generating session token: %w", err)
	}
	update, err := shared.MakeRandHexString(tokenBytes)
	if err != nil {
		return nil, fmt.Errorf("error generating update token: %w", err)
	}
	return &Credentials{
		SessionToken:      session,
		SessionExpiration: s.now().Add(s.sessionValidity).Truncate(time.Microsecond),
		UpdateToken:       update,
	}, nil
}

func (s *UserService) getDummyDigest() []byte {
	s.dummyOnce.Do(func() {
		// GenerateFromPassword only fails for passwords over 72 bytes or an
		// out-of-range cost; the latter falls back to the default cost.
		d, err := bcrypt.GenerateFromPassword([]byte("wardrobe-dummy-password"), s.bcryptCost)
		if err != nil {
			d, _ = bcrypt.GenerateFromPassword([]byte("wardrobe-dummy-password"), bcrypt.DefaultCost)
		}
		s.dummyDigest = d
	})
	return s.dummyDigest
}

func credentialsOf(u *models.User) *Credentials {
	return &Credentials{
		SessionToken:      u.SessionToken,
		SessionExpiration: u.SessionExpiration,
		UpdateToken:       u.UpdateToken,
	}
}
