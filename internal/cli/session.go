package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/at-ishikawa/termwords/internal/dictionary"
	"github.com/at-ishikawa/termwords/internal/render"
)

var (
	ErrUsage = errors.New("a word is required unless --interactive is set")
	// ErrLookupFailed is returned after the failure has already been printed.
	ErrLookupFailed = errors.New("lookup failed")
)

// InputError is returned when standard input can no longer be read.
type InputError struct {
	Err error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("failed to read input: %v", e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// Exit tokens are matched exactly and case-sensitively.
var exitTokens = map[string]struct{}{
	"q":    {},
	"quit": {},
	"exit": {},
}

func isExitToken(input string) bool {
	_, ok := exitTokens[input]
	return ok
}

// Session runs lookups and prints their results.
type Session struct {
	lookuper     dictionary.Lookuper
	options      render.Options
	encoder      render.Encoder
	printer      *render.Printer
	stdinReader  *bufio.Reader
	stdoutWriter io.Writer
}

func NewSession(
	lookuper dictionary.Lookuper,
	options render.Options,
	format render.Format,
	stdin io.Reader,
	stdout io.Writer,
) (*Session, error) {
	encoder, err := render.NewEncoder(format)
	if err != nil {
		return nil, fmt.Errorf("render.NewEncoder > %w", err)
	}
	return &Session{
		lookuper:     lookuper,
		options:      options,
		encoder:      encoder,
		printer:      render.NewPrinter(stdout),
		stdinReader:  bufio.NewReader(stdin),
		stdoutWriter: stdout,
	}, nil
}

// RunOnce looks up a single word. A failed lookup is printed and reported as ErrLookupFailed.
func (s *Session) RunOnce(ctx context.Context, word string) error {
	word = strings.TrimSpace(word)
	if word == "" {
		return ErrUsage
	}
	if s.encoder == nil {
		if err := s.printer.LookingUp(word); err != nil {
			return err
		}
	}
	return s.lookup(ctx, word)
}

// RunInteractive reads words from stdin until an exit token or the end of input.
// Failed lookups are printed and do not stop the loop.
func (s *Session) RunInteractive(ctx context.Context) error {
	if err := s.printer.Welcome(); err != nil {
		return err
	}

	for {
		if err := s.printer.Prompt(); err != nil {
			return err
		}

		line, readErr := s.stdinReader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return &InputError{Err: readErr}
		}
		atEOF := readErr != nil

		input := strings.TrimSpace(line)
		switch {
		case input == "":
		case isExitToken(input):
			return s.printer.Farewell()
		default:
			if err := s.lookup(ctx, input); err != nil && !errors.Is(err, ErrLookupFailed) {
				return err
			}
		}

		if atEOF {
			if input == "" {
				// The prompt is still open on the current line.
				if _, err := fmt.Fprintln(s.stdoutWriter); err != nil {
					return fmt.Errorf("fmt.Fprintln > %w", err)
				}
			}
			return s.printer.Farewell()
		}
	}
}

func (s *Session) lookup(ctx context.Context, word string) error {
	entries, err := s.lookuper.Lookup(ctx, word)
	if err != nil {
		slog.Default().Debug("lookup failed", "word", word, "error", err)
		if printErr := s.printer.Error(err); printErr != nil {
			return printErr
		}
		return fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}

	if s.encoder != nil {
		return s.encoder.Encode(s.stdoutWriter, entries)
	}
	for _, entry := range entries {
		lines := append([]render.Line{{Kind: render.KindBlank}}, render.Render(entry, s.options)...)
		if err := s.printer.Lines(lines); err != nil {
			return err
		}
	}
	return nil
}
