package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

// Test seams for the x/term calls.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
	getTermState = term.GetState
	restoreTerm  = term.Restore
)

type lineResult struct {
	line string
	err  error
}

// readLine reads one line from reader, giving up when ctx is done. An
// abandoned read keeps its goroutine until the line arrives; callers are
// expected to stop using reader once ctx is done.
func readLine(ctx context.Context, reader *bufio.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ch := make(chan lineResult, 1)
	go func() {
		line, err := reader.ReadString('\n')
		ch <- lineResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		return r.line, r.err
	}
}

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The line is trimmed. If EOF occurs after some input was read, the partial
// line is returned; EOF on an empty read is returned as io.EOF.
func GetSimpleText(ctx context.Context, reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := readLine(ctx, reader)
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword prints prompt to w and reads a password without echo from
// the terminal behind fd. When fd is not a terminal, or reader already holds
// buffered input, the line is read from reader instead so input stays in
// order. The value is returned untrimmed apart from the line ending.
//
// If ctx is done while the terminal read is pending, the terminal state is
// restored and ctx.Err() is returned.
func GetPassword(ctx context.Context, reader *bufio.Reader, fd int, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return "", err
	}

	if reader.Buffered() > 0 || !isTerminal(fd) {
		line, err := readLine(ctx, reader)
		if err != nil && !(errors.Is(err, io.EOF) && len(line) > 0) {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	state, err := getTermState(fd)
	if err != nil {
		return "", err
	}

	ch := make(chan lineResult, 1)
	go func() {
		pw, err := readPassword(fd)
		ch <- lineResult{line: string(pw), err: err}
	}()

	select {
	case <-ctx.Done():
		_ = restoreTerm(fd, state)
		fmt.Fprintln(w)
		return "", ctx.Err()
	case r := <-ch:
		fmt.Fprintln(w)
		return r.line, r.err
	}
}
