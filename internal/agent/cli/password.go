package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// passwordReader отдаёт пароли по одному.
//
// Со --password-stdin каждый пароль — отдельная строка stdin,
// иначе пароль спрашивается в терминале без эха.
type passwordReader struct {
	cmd       *cobra.Command
	fromStdin bool
	lines     *bufio.Reader
}

func newPasswordReader(cmd *cobra.Command, fromStdin bool) *passwordReader {
	return &passwordReader{
		cmd:       cmd,
		fromStdin: fromStdin,
		lines:     bufio.NewReader(cmd.InOrStdin()),
	}
}

func (pr *passwordReader) read(prompt string) (string, error) {
	if pr.fromStdin {
		line, err := pr.lines.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read password from stdin: %w", err)
		}
		pw := strings.TrimRight(line, "\r\n")
		if pw == "" {
			return "", fmt.Errorf("empty %s on stdin", strings.ToLower(prompt))
		}
		return pw, nil
	}
	return ReadPassword(pr.cmd, prompt)
}

// readPassword спрашивает пароль в терминале без эха.
// Пароль не обрезается: пробелы — часть пароля.
func readPassword(cmd *cobra.Command, prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("stdin is not a terminal; use --password-stdin")
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%s: ", prompt)
	pwBytes, err := term.ReadPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	if len(pwBytes) == 0 {
		return "", fmt.Errorf("empty %s", strings.ToLower(prompt))
	}
	return string(pwBytes), nil
}
