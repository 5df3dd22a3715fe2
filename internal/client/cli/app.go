package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/wardrobe/internal/client/client"
	"github.com/dmitrijs2005/wardrobe/internal/client/config"
)

type App struct {
	config *config.Config
	api    client.Client
	email  string
	online bool
}

func NewApp(c *config.Config) (*App, error) {
	if c.ServerURL == "" {
		return nil, fmt.Errorf("server URL is not configured")
	}
	return &App{config: c, api: client.NewHTTPClient(c.ServerURL, c.RequestTimeout)}, nil
}

func (a *App) isLoggedIn() bool {
	return a.api.LoggedIn()
}

func (a *App) getStatus() string {
	s := "offline"
	if a.online {
		s = "online"
	}
	if a.email != "" {
		s = a.email + " " + s
	}
	return fmt.Sprintf("(%s)", s)
}

// Run checks the server once and then reads commands from in.
func (a *App) Run(ctx context.Context, in io.Reader) {
	printlnFn("Welcome to the wardrobe CLI (type 'help' for commands)")

	if err := a.api.Ping(ctx); err != nil {
		printlnFn("Server is not reachable:", err)
	} else {
		a.online = true
	}

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(in))
}
