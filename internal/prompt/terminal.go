package prompt

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// readSecretFromTerminal reads a line with echo suppressed. When stdin is
// not a terminal (piped input), both the prompt and the read are redirected
// to /dev/tty so credential capture still works while stdin feeds the rest
// of the process.
func readSecretFromTerminal(title string) (string, error) {
	in := os.Stdin
	out := os.Stderr

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
		if err != nil {
			return "", fmt.Errorf("stdin is not a terminal and /dev/tty is unavailable: %w", err)
		}
		defer tty.Close()
		in = tty
		out = tty
	}

	fmt.Fprintf(out, "%s: ", title)
	secret, err := term.ReadPassword(int(in.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(secret)), nil
}
