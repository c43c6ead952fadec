package entry

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// Prompter asks for one line of input. It returns io.EOF when input ends.
type Prompter interface {
	Prompt(label string) (string, error)
}

// LinePrompter reads lines from a plain reader and echoes labels to a
// writer. Used for piped input.
type LinePrompter struct {
	r   *bufio.Reader
	out io.Writer
}

// NewLinePrompter returns a prompter over r that writes labels to out.
func NewLinePrompter(r io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{r: bufio.NewReader(r), out: out}
}

// Prompt reads one line of any length. A last line without a newline is
// returned before io.EOF.
func (p *LinePrompter) Prompt(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadlinePrompter reads from a terminal with line editing and history.
type ReadlinePrompter struct {
	rl *readline.Instance
}

// NewReadlinePrompter starts a readline instance. historyFile may be empty.
func NewReadlinePrompter(historyFile string) (*ReadlinePrompter, error) {
	rl, err := readline.NewEx(&readline.Config{
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("initializing prompt: %w", err)
	}
	return &ReadlinePrompter{rl: rl}, nil
}

// Prompt reads one line. Ctrl-C ends input like Ctrl-D.
func (p *ReadlinePrompter) Prompt(label string) (string, error) {
	p.rl.SetPrompt(label)
	line, err := p.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", io.EOF
	}
	return line, err
}

// Close restores the terminal.
func (p *ReadlinePrompter) Close() error {
	return p.rl.Close()
}

// IsTerminal reports whether fd is a terminal.
func IsTerminal(fd int) bool {
	return readline.IsTerminal(fd)
}
