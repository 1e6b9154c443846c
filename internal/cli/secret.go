package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"
)

var (
	ErrSecretEmpty = errors.New("secret cannot be empty")
)

// isTerminal returns true if stdin is a terminal (not piped/redirected).
func isTerminal() bool {
	return term.IsTerminal(int(syscall.Stdin))
}

// readSecretSecure reads a line from stdin without echo.
// Falls back to buffered read if stdin is not a terminal.
func readSecretSecure(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)

	if !isTerminal() {
		reader := bufio.NewReader(os.Stdin)
		s, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("reading secret: %w", err)
		}
		s = strings.TrimSuffix(s, "\n")
		s = strings.TrimSuffix(s, "\r")
		return s, nil
	}

	s, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading secret: %w", err)
	}
	return string(s), nil
}

// ReadSecretInteractive prompts for the secret to split, hidden while typing.
// Unlike a password, a split secret has no separate "confirm" step: there is
// nothing to remember, so a typo just splits the wrong bytes and combine will
// still round-trip them exactly.
func ReadSecretInteractive() (string, error) {
	secret, err := readSecretSecure("Secret: ")
	if err != nil {
		return "", err
	}
	if secret == "" {
		return "", ErrSecretEmpty
	}
	return secret, nil
}

// ReadSecretFromStdin reads the secret from stdin (for piped input with --secret-stdin).
func ReadSecretFromStdin() (string, error) {
	reader := bufio.NewReader(os.Stdin)
	s, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && s != "") {
		return "", fmt.Errorf("reading secret from stdin: %w", err)
	}
	s = strings.TrimSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\r")
	return s, nil
}
