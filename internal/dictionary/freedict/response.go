// https://dictionaryapi.dev/
package freedict

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Entry is one headword returned by the Free Dictionary API.
type Entry struct {
	Word       string     `json:"word" yaml:"word"`
	Phonetic   *string    `json:"phonetic,omitempty" yaml:"phonetic,omitempty"`
	Phonetics  []Phonetic `json:"phonetics,omitempty" yaml:"phonetics,omitempty"`
	Meanings   []Meaning  `json:"meanings" yaml:"meanings"`
	License    *License   `json:"license,omitempty" yaml:"license,omitempty"`
	SourceURLs []string   `json:"sourceUrls,omitempty" yaml:"source_urls,omitempty"`
}

type Phonetic struct {
	Text  *string `json:"text,omitempty" yaml:"text,omitempty"`
	Audio *string `json:"audio,omitempty" yaml:"audio,omitempty"`
}

// Meaning groups the definitions of a headword under one part of speech.
type Meaning struct {
	PartOfSpeech *string      `json:"partOfSpeech,omitempty" yaml:"part_of_speech,omitempty"`
	Definitions  []Definition `json:"definitions" yaml:"definitions"`
	Synonyms     []string     `json:"synonyms,omitempty" yaml:"synonyms,omitempty"`
	Antonyms     []string     `json:"antonyms,omitempty" yaml:"antonyms,omitempty"`
}

type Definition struct {
	Definition string   `json:"definition" yaml:"definition"`
	Example    *string  `json:"example,omitempty" yaml:"example,omitempty"`
	Synonyms   []string `json:"synonyms,omitempty" yaml:"synonyms,omitempty"`
	Antonyms   []string `json:"antonyms,omitempty" yaml:"antonyms,omitempty"`
}

type License struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// DecodeError is returned when a response body does not have the shape of an entry.
type DecodeError struct {
	// Field is the path of the offending field, e.g. [0].meanings[1].definitions[0].definition
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		if e.Field == "" {
			return fmt.Sprintf("decode response: %v", e.Err)
		}
		return fmt.Sprintf("decode response: %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("decode response: missing required field %s", e.Field)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// apiEntry and its children mirror the wire format. Required fields are
// pointers so that a missing key can be told apart from a zero value.
type apiEntry struct {
	Word       *string       `json:"word"`
	Phonetic   *string       `json:"phonetic"`
	Phonetics  []apiPhonetic `json:"phonetics"`
	Meanings   *[]apiMeaning `json:"meanings"`
	License    *License      `json:"license"`
	SourceURLs []string      `json:"sourceUrls"`
}

type apiPhonetic struct {
	Text  *string `json:"text"`
	Audio *string `json:"audio"`
}

type apiMeaning struct {
	PartOfSpeech *string          `json:"partOfSpeech"`
	Definitions  *[]apiDefinition `json:"definitions"`
	Synonyms     []string         `json:"synonyms"`
	Antonyms     []string         `json:"antonyms"`
}

type apiDefinition struct {
	Definition *string  `json:"definition"`
	Example    *string  `json:"example"`
	Synonyms   []string `json:"synonyms"`
	Antonyms   []string `json:"antonyms"`
}

// Decode parses a response body holding either a single entry object or an
// array of entries.
func Decode(body []byte) ([]Entry, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, &DecodeError{Err: errors.New("empty body")}
	}

	var raw []apiEntry
	if body[0] == '[' {
		if err := json.Unmarshal(body, &raw); err != nil {
			return nil, &DecodeError{Err: fmt.Errorf("json.Unmarshal > %w", err)}
		}
	} else {
		var single apiEntry
		if err := json.Unmarshal(body, &single); err != nil {
			return nil, &DecodeError{Err: fmt.Errorf("json.Unmarshal > %w", err)}
		}
		raw = []apiEntry{single}
	}

	entries := make([]Entry, 0, len(raw))
	for i, r := range raw {
		entry, err := r.toEntry(fmt.Sprintf("[%d]", i))
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r apiEntry) toEntry(path string) (Entry, error) {
	if r.Word == nil {
		return Entry{}, &DecodeError{Field: path + ".word"}
	}
	if r.Meanings == nil {
		return Entry{}, &DecodeError{Field: path + ".meanings"}
	}

	entry := Entry{
		Word:       *r.Word,
		Phonetic:   nonEmpty(r.Phonetic),
		License:    r.License,
		SourceURLs: nonEmptyList(r.SourceURLs),
	}
	for _, p := range r.Phonetics {
		phonetic := Phonetic{
			Text:  nonEmpty(p.Text),
			Audio: nonEmpty(p.Audio),
		}
		if phonetic.Text == nil && phonetic.Audio == nil {
			continue
		}
		entry.Phonetics = append(entry.Phonetics, phonetic)
	}

	entry.Meanings = make([]Meaning, 0, len(*r.Meanings))
	for i, m := range *r.Meanings {
		meaningPath := fmt.Sprintf("%s.meanings[%d]", path, i)
		if m.Definitions == nil {
			return Entry{}, &DecodeError{Field: meaningPath + ".definitions"}
		}
		meaning := Meaning{
			PartOfSpeech: nonEmpty(m.PartOfSpeech),
			Definitions:  make([]Definition, 0, len(*m.Definitions)),
			Synonyms:     nonEmptyList(m.Synonyms),
			Antonyms:     nonEmptyList(m.Antonyms),
		}
		for j, d := range *m.Definitions {
			if d.Definition == nil {
				return Entry{}, &DecodeError{Field: fmt.Sprintf("%s.definitions[%d].definition", meaningPath, j)}
			}
			meaning.Definitions = append(meaning.Definitions, Definition{
				Definition: *d.Definition,
				Example:    nonEmpty(d.Example),
				Synonyms:   nonEmptyList(d.Synonyms),
				Antonyms:   nonEmptyList(d.Antonyms),
			})
		}
		entry.Meanings = append(entry.Meanings, meaning)
	}
	return entry, nil
}

// The API sends "" and [] for missing values; both mean absent.
func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func nonEmptyList(list []string) []string {
	if len(list) == 0 {
		return nil
	}
	return list
}
