package cli

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
// In tests you can replace it with a stub to avoid touching the terminal.
var readPassword = term.ReadPassword

// promptPassword reads a password from the user's terminal without echo.
// The prompt itself was already printed by the server; only a newline is
// written afterwards to keep the UI tidy.
func promptPassword(w io.Writer) ([]byte, error) {
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}
