package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/at-ishikawa/termwords/internal/dictionary/freedict"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

var AllFormats = []Format{FormatText, FormatJSON, FormatYAML}

// Encoder writes decoded entries in a machine readable format.
type Encoder interface {
	Encode(w io.Writer, entries []freedict.Entry) error
}

// NewEncoder returns nil for FormatText, which goes through Render and Printer instead.
func NewEncoder(format Format) (Encoder, error) {
	switch format {
	case FormatText:
		return nil, nil
	case FormatJSON:
		return jsonEncoder{}, nil
	case FormatYAML:
		return yamlEncoder{}, nil
	}
	return nil, fmt.Errorf("unknown output format: %s", format)
}

type jsonEncoder struct{}

func (jsonEncoder) Encode(w io.Writer, entries []freedict.Entry) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(entries); err != nil {
		return fmt.Errorf("json.Encode > %w", err)
	}
	return nil
}

type yamlEncoder struct{}

func (yamlEncoder) Encode(w io.Writer, entries []freedict.Entry) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(entries); err != nil {
		return fmt.Errorf("yaml.Encode > %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("yaml.Encoder.Close > %w", err)
	}
	return nil
}
