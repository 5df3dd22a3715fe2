package cli

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

var errEmptyPassword = errors.New("password must not be empty")

// promptPassword reads a password from the terminal without echo.
// The caller should wipe the returned buffer once it is no longer needed.
func promptPassword() ([]byte, error) {
	fmt.Print("Enter password: ")
	pw, err := readPassword(int(os.Stdin.Fd()))
	printlnFn()
	if err != nil {
		return nil, fmt.Errorf("read password: %w", err)
	}
	if len(pw) == 0 {
		return nil, errEmptyPassword
	}
	return pw, nil
}
