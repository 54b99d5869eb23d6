package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompt asks for one line of input and returns it trimmed.
func Prompt(out io.Writer, in io.Reader, label string) (string, error) {
	fmt.Fprintf(out, "%s: ", label)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// PromptPassword asks for a password without echoing it. It falls back
// to plain reading when stdin is not a terminal (tests, pipes).
func PromptPassword(out io.Writer, label string) (string, error) {
	fmt.Fprintf(out, "%s: ", label)

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return Prompt(io.Discard, os.Stdin, "")
	}

	password, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimSpace(string(password)), nil
}
