package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// usageError is returned by commands called with missing arguments.
type usageError string

func (u usageError) Error() string {
	return "Usage: " + string(u)
}

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
	Renew(ctx context.Context) error
	Secret(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Create(ctx context.Context, args []string) error
	Tag(ctx context.Context, args []string) error
	Comment(ctx context.Context, args []string) error
	Upload(ctx context.Context, args []string) error
}

// runREPL starts a simple read-eval-print loop for the wardrobe CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. The loop exits on scanner EOF or
// when the user types "exit" or "quit".
//
// Commands:
//
//	help                              show available commands
//	register <email> [name]          prompts for the password
//	login <email> [password]         prompts when the password is omitted
//	logout
//	renew                             rotate session and update tokens
//	secret                            call the session-protected endpoint
//	list | l                          list outfits
//	show <id>                         show one outfit
//	create <title...>                 create an outfit
//	tag <id> <name>                   tag an outfit
//	comment <id> <text...>            comment on an outfit
//	upload <file>                     upload an image
//	exit | quit
//
// Errors returned by command handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("wardrobe %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, show, create, tag, comment, upload, secret, renew, logout, exit")
			} else {
				printlnFn("Available commands: register, login, (l)ist, show, create, tag, comment, upload, exit")
			}

		case "register":
			err = a.Register(ctx, args)

		case "login":
			err = a.Login(ctx, args)

		case "logout":
			err = a.Logout(ctx)

		case "renew":
			err = a.Renew(ctx)

		case "secret":
			err = a.Secret(ctx)

		case "l", "list":
			err = a.List(ctx)

		case "show":
			err = a.Show(ctx, args)

		case "create":
			err = a.Create(ctx, args)

		case "tag":
			err = a.Tag(ctx, args)

		case "comment":
			err = a.Comment(ctx, args)

		case "upload":
			err = a.Upload(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			var usage usageError
			if errors.As(err, &usage) {
				printlnFn(usage.Error())
			} else {
				printlnFn("Error:", err)
			}
		}
	}
}
