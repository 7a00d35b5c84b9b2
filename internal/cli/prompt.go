// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// prompt.go - Line prompts for CLI commands.

package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/peterh/liner"
	"golang.org/x/term"
)

// ErrAborted is returned when the user cancels a prompt (Ctrl+C or EOF).
var ErrAborted = errors.New("prompt aborted")

// Prompter asks the user for values.
type Prompter interface {
	// Prompt reads one line with editing. The result is trimmed.
	Prompt(label string) (string, error)
	// Password reads one line without echo.
	Password(label string) (string, error)
}

// NewPrompter returns a liner-backed prompter for a terminal and a plain
// line reader over stdin otherwise.
func NewPrompter(out io.Writer) Prompter {
	if IsTTY() {
		return &linePrompter{out: out}
	}
	return NewReaderPrompter(os.Stdin, out)
}

// =============================================================================
// TERMINAL PROMPTER
// =============================================================================

// linePrompter opens a liner per prompt. liner switches the terminal to raw
// mode for as long as its State is open, and term.ReadPassword needs the
// original mode back.
type linePrompter struct {
	out io.Writer
}

func (p *linePrompter) Prompt(label string) (string, error) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	input, err := line.Prompt(label + ": ")
	if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
		return "", ErrAborted
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

func (p *linePrompter) Password(label string) (string, error) {
	fmt.Fprint(p.out, PromptStyle.Render(label+":")+" ")
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	return string(b), nil
}

// =============================================================================
// READER PROMPTER
// =============================================================================

// ReaderPrompter reads answers line by line from any reader. It serves
// redirected stdin and tests.
type ReaderPrompter struct {
	mu  sync.Mutex
	in  *bufio.Reader
	out io.Writer
}

// NewReaderPrompter reads answers from in and writes labels to out.
func NewReaderPrompter(in io.Reader, out io.Writer) *ReaderPrompter {
	return &ReaderPrompter{in: bufio.NewReader(in), out: out}
}

// Prompt writes the label and returns the next trimmed line.
func (p *ReaderPrompter) Prompt(label string) (string, error) {
	line, err := p.readLine(label)
	return strings.TrimSpace(line), err
}

// Password is Prompt without trimming inner text. Redirected input has no
// echo to suppress.
func (p *ReaderPrompter) Password(label string) (string, error) {
	return p.readLine(label)
}

func (p *ReaderPrompter) readLine(label string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprint(p.out, PromptStyle.Render(label+":")+" ")
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		fmt.Fprintln(p.out)
		if errors.Is(err, io.EOF) {
			return "", ErrAborted
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
