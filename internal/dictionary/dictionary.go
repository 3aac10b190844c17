package dictionary

import (
	"context"

	"github.com/at-ishikawa/termwords/internal/dictionary/freedict"
)

//go:generate mockgen -source=dictionary.go -destination=../mocks/dictionary/mock_dictionary.go -package=mock_dictionary

// Lookuper returns the dictionary entries for a word.
type Lookuper interface {
	Lookup(ctx context.Context, word string) ([]freedict.Entry, error)
}

var _ Lookuper = (*freedict.Client)(nil)
