// Package console adapts the process terminal to the line-oriented input the
// game engine consumes.
package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// clearSequence homes the cursor, clears the screen and drops scrollback.
const clearSequence = "\033[H\033[2J\033[3J"

// Terminal reads prompted lines. When attached to a real TTY, masked reads
// disable echo; otherwise they behave like ReadLine.
type Terminal struct {
	in    *bufio.Reader
	out   io.Writer
	fd    int
	isTTY bool
}

// New wraps stdin-like f and writes prompts to out.
func New(f *os.File, out io.Writer) *Terminal {
	fd := int(f.Fd())
	return &Terminal{in: bufio.NewReader(f), out: out, fd: fd, isTTY: term.IsTerminal(fd)}
}

// NewFromReader builds a Terminal over a plain reader (pipes, tests).
func NewFromReader(r io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(r), out: out, fd: -1}
}

// ReadLine prints prompt and returns the next line without its terminator.
// It returns io.EOF once input is exhausted.
func (t *Terminal) ReadLine(prompt string) (string, error) {
	fmt.Fprint(t.out, prompt)
	line, err := t.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadMaskedLine is ReadLine without echo.
func (t *Terminal) ReadMaskedLine(prompt string) (string, error) {
	if !t.isTTY {
		return t.ReadLine(prompt)
	}
	fmt.Fprint(t.out, prompt)
	b, err := term.ReadPassword(t.fd)
	fmt.Fprintln(t.out)
	if err != nil {
		return "", fmt.Errorf("masked read: %w", err)
	}
	return string(b), nil
}

// PassTo waits for the current player to hand the device over, then clears
// the screen so nothing from the previous round stays visible.
func (t *Terminal) PassTo(name string) error {
	if _, err := t.ReadLine("Press Enter to pass to your friend..."); err != nil {
		return err
	}
	t.Clear()
	return nil
}

// Clear wipes the visible screen.
func (t *Terminal) Clear() {
	fmt.Fprint(t.out, clearSequence)
}
