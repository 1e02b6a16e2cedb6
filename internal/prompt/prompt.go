// Package prompt provides line-oriented interactive input. Flows depend
// on the Prompter interface so tests can script their input.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter reads interactive answers from the operator.
type Prompter interface {
	// ReadLine prints the label and returns one trimmed line of input.
	ReadLine(label string) (string, error)
	// Confirm prints the label and returns true for "y"/"yes"
	// (case-insensitive).
	Confirm(label string) (bool, error)
}

// TTY is a Prompter over an input reader and output writer.
type TTY struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a TTY prompter.
func New(in io.Reader, out io.Writer) *TTY {
	return &TTY{in: bufio.NewReader(in), out: out}
}

// ReadLine implements Prompter.
func (t *TTY) ReadLine(label string) (string, error) {
	fmt.Fprint(t.out, label)
	line, err := t.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Confirm implements Prompter.
func (t *TTY) Confirm(label string) (bool, error) {
	answer, err := t.ReadLine(label + " [y/N]: ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// ReadSecret reads a value without echoing when stdin is a terminal,
// falling back to a plain line read otherwise (pipes, tests).
func ReadSecret(label string, out io.Writer) (string, error) {
	fmt.Fprint(out, label)
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		data, err := term.ReadPassword(fd)
		fmt.Fprintln(out)
		if err != nil {
			return "", fmt.Errorf("read secret: %w", err)
		}
		return strings.TrimSpace(string(data)), nil
	}
	return New(os.Stdin, out).ReadLine("")
}
