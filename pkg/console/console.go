// Package console serializes all user-facing terminal I/O behind one lock,
// so concurrently running jobs never interleave fragments of two messages
// and never prompt the user at the same time. Every presentation operation
// is a method here; callers use them exactly as they would the unwrapped
// equivalents, and the lock is invisible except for the serialization
// guarantee.
package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
)

// Console wraps a terminal's output and input streams. The zero value is
// not usable; construct with New. One instance is expected per process,
// injected into everything that talks to the user.
type Console struct {
	mu  sync.Mutex
	out io.Writer
	in  *bufio.Reader
}

// New creates a console over the given streams.
func New(out io.Writer, in io.Reader) *Console {
	return &Console{
		out: out,
		in:  bufio.NewReader(in),
	}
}

// defaultConsole covers code without an injected instance, like the
// top-level error boundary.
var defaultConsole = New(os.Stdout, os.Stdin)

// Default returns the process-wide console over stdout/stdin.
func Default() *Console {
	return defaultConsole
}

// Print writes its operands like fmt.Println.
func (c *Console) Print(a ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, a...)
}

// Printf writes a formatted message. No newline is appended.
func (c *Console) Printf(format string, a ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, a...)
}

// Page writes a long text block. Output goes through the same lock as
// everything else so pages from two jobs cannot shuffle together.
func (c *Console) Page(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	io.WriteString(c.out, text)
	if !strings.HasSuffix(text, "\n") {
		io.WriteString(c.out, "\n")
	}
}

// Prompt shows a message and reads one line of input.
func (c *Console) Prompt(msg string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintf(c.out, "%s: ", msg)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Confirm asks a yes/no question. An empty answer picks the default.
func (c *Console) Confirm(msg string, def bool) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Fprintf(c.out, "%s [%s]: ", msg, hint)

	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Pause waits for the user to press enter.
func (c *Console) Pause(msg string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if msg == "" {
		msg = "Press enter to continue..."
	}
	fmt.Fprint(c.out, msg)
	_, err := c.in.ReadString('\n')
	return err
}

// Getchar reads a single raw byte of input.
func (c *Console) Getchar() (byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.in.ReadByte()
}

// Clear clears the terminal screen.
func (c *Console) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	io.WriteString(c.out, "\033[2J\033[H")
}

// Edit opens text in the user's $EDITOR and returns the edited content.
// The lock is held for the whole editing session; no other job output can
// scribble over the editor's terminal.
func (c *Console) Edit(text string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	tmp, err := os.CreateTemp("", "pairsync-edit-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	cmd := exec.Command(editor, tmp.Name())
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", err
	}

	edited, err := os.ReadFile(tmp.Name())
	if err != nil {
		return "", err
	}
	return string(edited), nil
}
