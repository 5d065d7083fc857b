package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTerminal makes every descriptor look like a tty and answers password
// reads with pw/err. The originals are restored on cleanup.
func fakeTerminal(t *testing.T, pw string, err error) {
	t.Helper()
	origRead, origIsTerm := readPassword, isTerminal
	t.Cleanup(func() { readPassword, isTerminal = origRead, origIsTerm })
	isTerminal = func(int) bool { return true }
	readPassword = func(int) ([]byte, error) {
		if err != nil {
			return nil, err
		}
		return []byte(pw), nil
	}
}

// pipeWith returns the read end of a pipe preloaded with input.
func pipeWith(t *testing.T, input string) *os.File {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	_, err = w.WriteString(input)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func TestSecretReader_Terminal(t *testing.T) {
	fakeTerminal(t, "s3cret", nil)
	in := pipeWith(t, "")
	var out bytes.Buffer

	read := newSecretReader(in, bufio.NewReader(in), &out)
	got, err := read("Enter password: ")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)
	assert.Equal(t, "Enter password: \n", out.String())
}

func TestSecretReader_TerminalError(t *testing.T) {
	fakeTerminal(t, "", errors.New("inappropriate ioctl for device"))
	in := pipeWith(t, "")
	var out bytes.Buffer

	read := newSecretReader(in, bufio.NewReader(in), &out)
	_, err := read("Enter password: ")
	require.Error(t, err)
	assert.Equal(t, "Enter password: \n", out.String())
}

func TestSecretReader_NotTerminal(t *testing.T) {
	in := strings.NewReader("plain pw\n")
	var out bytes.Buffer

	read := newSecretReader(in, bufio.NewReader(in), &out)
	got, err := read("Enter password: ")
	require.NoError(t, err)
	assert.Equal(t, "plain pw", got)
	assert.Equal(t, "Enter password: ", out.String())
}

func TestRun_TerminalPasswordRegisterThenLogin(t *testing.T) {
	store := newStore(t, "cliterminal")
	fakeTerminal(t, "hidden-pw", nil)

	var out bytes.Buffer
	err := NewApp(store, pipeWith(t, "2\nfrank\nf@x.com\n"), &out).Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Registration successful.")
	assert.NotContains(t, out.String(), "hidden-pw")

	out.Reset()
	err = NewApp(store, pipeWith(t, "1\nfrank\n"), &out).Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Login successful.")
}

func TestRun_TerminalPasswordError(t *testing.T) {
	store := newStore(t, "cliterminalerr")
	fakeTerminal(t, "", errors.New("terminal gone"))

	var out bytes.Buffer
	err := NewApp(store, pipeWith(t, "1\nfrank\n"), &out).Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read password")
}
