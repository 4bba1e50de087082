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

var errNoInput = errors.New("no credential provided")

// Prompter reads a secret without echoing it.
type Prompter interface {
	ReadSecret(prompt string) (string, error)
}

type termPrompter struct {
	in     *os.File
	out    io.Writer
	reader *bufio.Reader
}

// NewTermPrompter reads from a terminal without echo. When in is not a
// terminal one line per secret is read, for scripted use.
func NewTermPrompter(in *os.File, out io.Writer) Prompter {
	return &termPrompter{in: in, out: out, reader: bufio.NewReader(in)}
}

func (p *termPrompter) ReadSecret(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)

	if term.IsTerminal(int(p.in.Fd())) {
		b, err := term.ReadPassword(int(p.in.Fd()))
		fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("failed to read credential: %w", err)
		}
		return string(b), nil
	}

	line, err := p.reader.ReadString('\n')
	fmt.Fprintln(p.out)
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		if errors.Is(err, io.EOF) {
			return "", errNoInput
		}
		return "", fmt.Errorf("failed to read credential: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
