// Package rest exposes the wardrobe services over HTTP JSON using gin.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/wardrobe/internal/logging"
	"github.com/dmitrijs2005/wardrobe/internal/server/metrics"
	"github.com/dmitrijs2005/wardrobe/internal/server/models"
	"github.com/dmitrijs2005/wardrobe/internal/server/services"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

// UserService is the subset of services.UserService used by the handlers.
type UserService interface {
	Register(ctx context.Context, email, password, username string) (*services.Credentials, error)
	Login(ctx context.Context, email, password string) (*services.Credentials, error)
	RenewSession(ctx context.Context, updateToken string) (*services.Credentials, error)
	VerifySession(ctx context.Context, sessionToken string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	DeleteUser(ctx context.Context, id int64) (*models.User, error)
}

// OutfitService is the subset of services.OutfitService used by the handlers.
type OutfitService interface {
	CreateOutfit(ctx context.Context, in services.OutfitInput) (*models.Outfit, error)
	GetOutfit(ctx context.Context, id int64) (*models.Outfit, error)
	ListOutfits(ctx context.Context) ([]*models.Outfit, error)
	UpdateOutfit(ctx context.Context, id int64, in services.OutfitInput) (*models.Outfit, error)
	DeleteOutfit(ctx context.Context, id int64) (*models.Outfit, error)
	AssignTag(ctx context.Context, outfitID int64, name string) (*models.Outfit, error)
	RemoveTag(ctx context.Context, outfitID int64, name string) (*models.Outfit, error)
	AddComment(ctx context.Context, outfitID int64, text string, userID *int64) (*models.Comment, error)
	DeleteComment(ctx context.Context, id int64) (*models.Comment, error)
}

// AssetService stores uploaded images.
type AssetService interface {
	StoreImage(ctx context.Context, payload string) (*models.Asset, error)
}

type Server struct {
	address string
	engine  *gin.Engine
	users   UserService
	outfits OutfitService
	assets  AssetService
	metrics *metrics.Metrics
	logger  logging.Logger
}

func NewServer(a string, l logging.Logger, m *metrics.Metrics, us UserService, os OutfitService, as AssetService) *Server {
	s := &Server{
		address: a,
		logger:  l.With("module", "http_server"),
		metrics: m,
		users:   us,
		outfits: os,
		assets:  as,
	}
	s.engine = s.routes()
	return s
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves HTTP until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
