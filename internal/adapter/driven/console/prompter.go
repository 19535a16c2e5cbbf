// Package console prompts the operator on the terminal for the OAuth2
// authorization code during the one-shot interactive grant.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tmarsden/mailledger/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.CodePrompter = (*Prompter)(nil)

// Prompter presents the authorization URL on out and reads the code from in.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a Prompter. In production in is os.Stdin and out is
// os.Stdout.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Prompt blocks until the operator types the authorization code. The line
// read itself is not interruptible; ctx is honored once input arrives, which
// keeps this usable as the single human suspension point in the pipeline.
func (p *Prompter) Prompt(ctx context.Context, authURL string) (string, error) {
	fmt.Fprintf(p.out, "Authorize mailbox access by visiting:\n\n  %s\n\n", authURL)
	fmt.Fprint(p.out, "Enter the code from that page here: ")

	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("read authorization code: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	code := strings.TrimSpace(line)
	if code == "" {
		return "", errors.New("empty authorization code")
	}

	return code, nil
}
