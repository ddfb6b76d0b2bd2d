package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Words the operator types to steer a multi-step prompt. They are checked
// before any value parsing, so they never collide with item names or amounts.
const (
	wordDone   = "done"
	wordBack   = "back"
	wordCancel = "cancel"
)

type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(r io.Reader, w io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(r), out: w}
}

// ask prints label and returns the trimmed reply. io.EOF is returned only
// when input ends before any reply text.
func (p *prompter) ask(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if errors.Is(err, io.EOF) && line == "" {
		fmt.Fprintln(p.out)
		return "", io.EOF
	}
	return strings.TrimSpace(line), nil
}

func isWord(reply, word string) bool {
	return strings.EqualFold(reply, word)
}
