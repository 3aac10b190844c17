package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

type style struct {
	label *color.Color
	text  *color.Color
}

var styles = map[LineKind]style{
	KindHeader:        {label: color.New(color.FgHiGreen, color.Bold), text: color.New(color.FgHiWhite, color.Bold)},
	KindPhonetic:      {label: color.New(color.FgHiBlue), text: color.New(color.FgHiYellow)},
	KindPronunciation: {label: color.New(color.FgHiBlue), text: color.New(color.FgHiYellow)},
	KindPartOfSpeech:  {label: color.New(color.FgHiMagenta, color.Bold), text: color.New(color.FgHiCyan)},
	KindDefinition:    {label: color.New(color.FgHiGreen), text: color.New(color.FgWhite)},
	KindExample:       {label: color.New(color.FgHiBlue), text: color.New(color.Italic)},
	KindSynonyms:      {label: color.New(color.FgHiYellow), text: color.New(color.Reset)},
	KindAntonyms:      {label: color.New(color.FgHiRed), text: color.New(color.Reset)},
	KindHint:          {label: color.New(color.Faint), text: color.New(color.Faint)},
	KindSource:        {label: color.New(color.FgHiBlue), text: color.New(color.Underline)},
}

var (
	errorLabel  = color.New(color.FgHiRed, color.Bold)
	errorText   = color.New(color.FgHiRed)
	statusLabel = color.New(color.FgHiGreen)
	statusText  = color.New(color.FgHiWhite, color.Bold)
	promptStyle = color.New(color.FgHiCyan)
)

// Printer writes styled lines. Styling follows color.NoColor.
type Printer struct {
	out io.Writer
}

func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

func (p *Printer) Lines(lines []Line) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(p.out, styleLine(line)); err != nil {
			return fmt.Errorf("fmt.Fprintln > %w", err)
		}
	}
	return nil
}

func styleLine(line Line) string {
	if line.Kind == KindBlank {
		return ""
	}
	s, ok := styles[line.Kind]
	if !ok {
		return line.String()
	}

	var builder strings.Builder
	builder.WriteString(strings.Repeat(" ", line.Indent))
	if line.Label != "" {
		builder.WriteString(s.label.Sprint(line.Label))
		if line.Text != "" {
			builder.WriteString(" ")
		}
	}
	if line.Text != "" {
		builder.WriteString(s.text.Sprint(line.Text))
	}
	return builder.String()
}

func (p *Printer) LookingUp(word string) error {
	return p.println(statusLabel.Sprint("Looking up:") + " " + statusText.Sprint(word))
}

func (p *Printer) Error(err error) error {
	return p.println(errorLabel.Sprint("Error:") + " " + errorText.Sprint(err.Error()))
}

func (p *Printer) Welcome() error {
	return p.println(statusLabel.Sprint("Interactive mode.") + " Type a word to look it up, or q, quit or exit to leave.")
}

func (p *Printer) Prompt() error {
	if _, err := fmt.Fprint(p.out, promptStyle.Sprint("> ")); err != nil {
		return fmt.Errorf("fmt.Fprint > %w", err)
	}
	return nil
}

func (p *Printer) Farewell() error {
	return p.println(statusLabel.Sprint("Goodbye!"))
}

func (p *Printer) println(s string) error {
	if _, err := fmt.Fprintln(p.out, s); err != nil {
		return fmt.Errorf("fmt.Fprintln > %w", err)
	}
	return nil
}
