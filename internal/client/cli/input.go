package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/vaultshare/internal/common"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// promptSecret prints prompt and reads one line from the terminal without
// echo. Secrets typed here stay out of shell history and process listings.
func (a *App) promptSecret(prompt string) (string, error) {
	if _, err := fmt.Fprint(a.prompt, prompt); err != nil {
		return "", err
	}
	b, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(a.prompt)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(b)

	return strings.TrimSpace(string(b)), nil
}
