package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// promptSuffix marks the point where the server stops talking and waits for
// input. Every server prompt ends with it.
const promptSuffix = ": "

// relay runs the turn-based exchange: read server output until it ends in a
// prompt, answer with one line of user input, repeat. A server close ends
// the loop without error; it is the normal way a session finishes.
func (a *App) relay(server *bufio.Reader, serverW io.Writer, user *bufio.Reader) error {
	for {
		chunk, err := readUntilPrompt(server)
		if chunk != "" {
			fmt.Fprint(a.out, chunk)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(a.out, "\nConnection closed by server.")
				return nil
			}
			return err
		}

		line, err := a.answer(chunk, user)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if _, err := io.WriteString(serverW, line+"\n"); err != nil {
			return fmt.Errorf("send to server: %w", err)
		}
	}
}

// answer collects one line for the prompt just printed. Password prompts on
// a real terminal are read without echo.
func (a *App) answer(chunk string, user *bufio.Reader) (string, error) {
	if a.terminal && isPasswordPrompt(chunk) {
		pw, err := promptPassword(a.out)
		if err != nil {
			return "", err
		}
		return string(pw), nil
	}

	line, err := user.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readUntilPrompt accumulates server output until the stream pauses on a
// prompt. The server writes prompts last in each turn, so the buffer going
// quiet with a prompt suffix means it is our turn to type.
func readUntilPrompt(r *bufio.Reader) (string, error) {
	var b strings.Builder
	for {
		c, err := r.ReadByte()
		if err != nil {
			return b.String(), err
		}
		b.WriteByte(c)

		if r.Buffered() == 0 && strings.HasSuffix(b.String(), promptSuffix) {
			return b.String(), nil
		}
	}
}

// isPasswordPrompt reports whether the last prompt line asks for a password.
func isPasswordPrompt(chunk string) bool {
	idx := strings.LastIndexByte(strings.TrimRight(chunk, promptSuffix), '\n')
	lastLine := chunk[idx+1:]
	return strings.Contains(strings.ToLower(lastLine), "password")
}
