package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/wardrobe/internal/client/client"
	"github.com/dmitrijs2005/wardrobe/internal/shared"
)

func (a *App) Register(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return usageError("register <email> [username]")
	}
	var username string
	if len(args) > 1 {
		username = args[1]
	}

	pw, err := promptPassword()
	if err != nil {
		return err
	}
	defer shared.WipeByteArray(pw)

	if err := a.api.Register(ctx, args[0], string(pw), username); err != nil {
		return err
	}
	a.email = args[0]
	printlnFn("Registered and logged in as", args[0])
	return nil
}

// Login prompts for the password unless it is passed as the second argument.
func (a *App) Login(ctx context.Context, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return usageError("login <email> [password]")
	}

	var pw []byte
	if len(args) == 2 {
		pw = []byte(args[1])
	} else {
		var err error
		if pw, err = promptPassword(); err != nil {
			return err
		}
	}
	defer shared.WipeByteArray(pw)

	if err := a.api.Login(ctx, args[0], string(pw)); err != nil {
		return err
	}
	a.email = args[0]
	printlnFn("Logged in as", args[0])
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.api.Logout()
	a.email = ""
	printlnFn("Logged out")
	return nil
}

func (a *App) Renew(ctx context.Context) error {
	if err := a.api.Renew(ctx); err != nil {
		return err
	}
	printlnFn("Session renewed")
	return nil
}

func (a *App) Secret(ctx context.Context) error {
	msg, err := a.api.Secret(ctx)
	if err != nil {
		return err
	}
	printlnFn(msg)
	return nil
}

func (a *App) List(ctx context.Context) error {
	outfits, err := a.api.ListOutfits(ctx)
	if err != nil {
		return err
	}
	if len(outfits) == 0 {
		printlnFn("No outfits")
		return nil
	}
	for _, o := range outfits {
		printlnFn(formatOutfit(o))
	}
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("show <id>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	o, err := a.api.GetOutfit(ctx, id)
	if err != nil {
		return err
	}
	printlnFn(formatOutfit(o))
	for _, c := range o.Comments {
		printlnFn(fmt.Sprintf("  #%d %s", c.ID, c.Text))
	}
	return nil
}

func (a *App) Create(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("create <title>")
	}
	title := strings.Join(args, " ")

	o, err := a.api.CreateOutfit(ctx, client.NewOutfit{Title: &title})
	if err != nil {
		return err
	}
	printlnFn("Created", formatOutfit(o))
	return nil
}

func (a *App) Tag(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageError("tag <id> <name>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	o, err := a.api.AssignTag(ctx, id, args[1])
	if err != nil {
		return err
	}
	printlnFn(formatOutfit(o))
	return nil
}

func (a *App) Comment(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return usageError("comment <id> <text>")
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	c, err := a.api.AddComment(ctx, id, strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Comment #%d added", c.ID))
	return nil
}

func (a *App) Upload(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("upload <file>")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	asset, err := a.api.UploadImage(ctx, data)
	if err != nil {
		return err
	}
	printlnFn(fmt.Sprintf("Uploaded %dx%d image: %s", asset.Width, asset.Height, asset.URL))
	return nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func formatOutfit(o *client.Outfit) string {
	tags := make([]string, 0, len(o.Tags))
	for _, t := range o.Tags {
		tags = append(tags, t.Name)
	}
	return fmt.Sprintf("#%d %s [%s] comments=%d", o.ID, o.Title, strings.Join(tags, ","), len(o.Comments))
}
