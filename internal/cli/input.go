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

// Test seams for the terminal; tests replace them to avoid touching a real tty.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// readLine prints prompt to w and reads one line. The trailing newline is
// trimmed. If EOF occurs after some input was read, the partial line is returned.
func readLine(reader *bufio.Reader, w io.Writer, prompt string) (string, error) {
	if _, err := fmt.Fprint(w, prompt); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// terminalFd returns the descriptor of in when it is an interactive terminal.
func terminalFd(in io.Reader) (int, bool) {
	f, ok := in.(*os.File)
	if !ok {
		return 0, false
	}
	fd := int(f.Fd())
	return fd, isTerminal(fd)
}

// newSecretReader reads passwords without echo on a terminal and as plain
// lines otherwise (pipes, tests).
func newSecretReader(in io.Reader, reader *bufio.Reader, w io.Writer) func(prompt string) (string, error) {
	fd, isTerm := terminalFd(in)
	if !isTerm {
		return func(prompt string) (string, error) {
			return readLine(reader, w, prompt)
		}
	}
	return func(prompt string) (string, error) {
		if _, err := fmt.Fprint(w, prompt); err != nil {
			return "", err
		}
		pw, err := readPassword(fd)
		fmt.Fprintln(w)
		if err != nil {
			return "", err
		}
		return string(pw), nil
	}
}
