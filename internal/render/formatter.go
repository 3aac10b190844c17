package render

import (
	"fmt"
	"strings"

	"github.com/at-ishikawa/termwords/internal/dictionary/freedict"
)

const DefaultLimit = 3

// Options controls how much of an entry is rendered.
type Options struct {
	// Detailed shows every definition, example, synonym and antonym list and the first source URL.
	Detailed bool
	// Limit caps definitions per meaning when not Detailed.
	Limit int
}

type LineKind int

const (
	KindBlank LineKind = iota
	KindHeader
	KindPhonetic
	KindPronunciation
	KindPartOfSpeech
	KindDefinition
	KindExample
	KindSynonyms
	KindAntonyms
	KindHint
	KindSource
)

// Line is one rendered output line before styling.
type Line struct {
	Kind   LineKind
	Indent int
	Label  string
	Text   string
}

func (l Line) String() string {
	if l.Kind == KindBlank {
		return ""
	}
	var builder strings.Builder
	builder.WriteString(strings.Repeat(" ", l.Indent))
	builder.WriteString(l.Label)
	if l.Label != "" && l.Text != "" {
		builder.WriteString(" ")
	}
	builder.WriteString(l.Text)
	return builder.String()
}

const (
	definitionIndent = 2
	detailIndent     = 5
)

var blankLine = Line{Kind: KindBlank}

// Render converts an entry into display lines.
// Only the first definition of a meaning shows its example unless opts.Detailed,
// and only the first source URL is ever shown.
func Render(entry freedict.Entry, opts Options) []Line {
	limit := opts.Limit
	if limit < 1 {
		limit = 1
	}

	lines := []Line{
		{Kind: KindHeader, Label: "Word:", Text: entry.Word},
	}
	if entry.Phonetic != nil {
		lines = append(lines, Line{Kind: KindPhonetic, Label: "Phonetic:", Text: *entry.Phonetic})
	}
	for _, phonetic := range entry.Phonetics {
		if phonetic.Text == nil {
			continue
		}
		lines = append(lines, Line{Kind: KindPronunciation, Label: "Pronunciation:", Text: *phonetic.Text})
	}
	lines = append(lines, blankLine)

	for _, meaning := range entry.Meanings {
		lines = append(lines, renderMeaning(meaning, opts.Detailed, limit)...)
		lines = append(lines, blankLine)
	}

	if opts.Detailed && len(entry.SourceURLs) > 0 {
		lines = append(lines, Line{Kind: KindSource, Label: "Source:", Text: entry.SourceURLs[0]})
	}
	return lines
}

func renderMeaning(meaning freedict.Meaning, detailed bool, limit int) []Line {
	partOfSpeech := "unknown"
	if meaning.PartOfSpeech != nil {
		partOfSpeech = *meaning.PartOfSpeech
	}
	lines := []Line{
		{Kind: KindPartOfSpeech, Label: "Part of speech:", Text: partOfSpeech},
	}

	total := len(meaning.Definitions)
	showCount := total
	if !detailed {
		showCount = min(total, limit)
	}

	for i, definition := range meaning.Definitions[:showCount] {
		lines = append(lines, Line{
			Kind:   KindDefinition,
			Indent: definitionIndent,
			Label:  fmt.Sprintf("%d.", i+1),
			Text:   definition.Definition,
		})
		if definition.Example != nil && (detailed || i == 0) {
			lines = append(lines, Line{Kind: KindExample, Indent: detailIndent, Label: "Example:", Text: *definition.Example})
		}
		if detailed {
			lines = appendWordList(lines, detailIndent, definition.Synonyms, definition.Antonyms)
		}
	}

	if !detailed && total > showCount {
		lines = append(lines, Line{
			Kind:   KindHint,
			Indent: definitionIndent,
			Text:   fmt.Sprintf("(+%d more, use -d for all)", total-showCount),
		})
	}
	if detailed {
		lines = appendWordList(lines, definitionIndent, meaning.Synonyms, meaning.Antonyms)
	}
	return lines
}

func appendWordList(lines []Line, indent int, synonyms, antonyms []string) []Line {
	if len(synonyms) > 0 {
		lines = append(lines, Line{Kind: KindSynonyms, Indent: indent, Label: "Synonyms:", Text: strings.Join(synonyms, ", ")})
	}
	if len(antonyms) > 0 {
		lines = append(lines, Line{Kind: KindAntonyms, Indent: indent, Label: "Antonyms:", Text: strings.Join(antonyms, ", ")})
	}
	return lines
}
