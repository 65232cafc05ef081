package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/SumanHE17/tripdesk/internal/tui"
)

// prompter reads answers to interactive questions. Passwords are read without
// echo when the input is a terminal.
type prompter struct {
	raw    io.Reader
	reader *bufio.Reader
	out    io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{raw: in, reader: bufio.NewReader(in), out: out}
}

// Line prints label and returns the trimmed line typed in reply.
func (p *prompter) Line(label string) (string, error) {
	fmt.Fprint(p.out, label)

	line, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading input: %w", err)
	}
	if err != nil && line == "" {
		return "", errors.New("no input received")
	}
	return strings.TrimSpace(line), nil
}

// Password prints label and reads a line without echoing it.
func (p *prompter) Password(label string) (string, error) {
	f, ok := p.raw.(*os.File)
	if !ok || !tui.IsTerminal(f) {
		return p.Line(label)
	}

	fmt.Fprint(p.out, label)
	b, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(b), nil
}
