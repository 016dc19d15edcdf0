// Package prompt implements interactive confirmation on plain stdio streams.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Console reads answers line by line from in and writes prompts to out.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a console prompter.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// Ask prints the message and returns the next input line, trimmed.
func (x *Console) Ask(ctx context.Context, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprintf(x.out, "%s: ", message)

	line, err := x.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", goerr.Wrap(err, "failed to read input")
	}
	return strings.TrimSpace(line), nil
}

// Confirm asks a yes/no question. An empty answer yields defaultYes; any
// answer starting with "y" or "Y" is an accept, everything else a decline.
func (x *Console) Confirm(ctx context.Context, message string, defaultYes bool) (bool, error) {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}

	answer, err := x.Ask(ctx, message+" "+hint)
	if err != nil {
		return false, err
	}
	if answer == "" {
		return defaultYes, nil
	}
	return strings.HasPrefix(strings.ToLower(answer), "y"), nil
}
