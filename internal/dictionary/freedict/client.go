package freedict

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"resty.dev/v3"
)

const DefaultBaseURL = "https://api.dictionaryapi.dev/api/v2/entries/en"

var (
	// ErrNotFoundOrAPI covers both an unknown word and a failing API;
	// the API does not let callers tell them apart reliably.
	ErrNotFoundOrAPI = errors.New("word not found or API error")
	ErrDecode        = errors.New("invalid dictionary response")
)

type ErrorKind int

const (
	KindNotFoundOrAPI ErrorKind = iota
	KindDecode
)

// LookupError is returned by Client.Lookup.
type LookupError struct {
	Kind ErrorKind
	Word string
	// StatusCode is 0 when no response was received.
	StatusCode int
	Err        error
}

func (e *LookupError) Error() string {
	switch e.Kind {
	case KindDecode:
		return fmt.Sprintf("%s: %v", ErrDecode, e.Err)
	default:
		return ErrNotFoundOrAPI.Error()
	}
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

func (e *LookupError) Is(target error) bool {
	switch target {
	case ErrNotFoundOrAPI:
		return e.Kind == KindNotFoundOrAPI
	case ErrDecode:
		return e.Kind == KindDecode
	}
	return false
}

// Client looks words up in the Free Dictionary API.
type Client struct {
	httpClient *resty.Client
	logger     *slog.Logger
}

// NewClient creates a Client. A zero timeout waits for the API indefinitely.
func NewClient(baseURL string, timeout time.Duration) *Client {
	client := resty.New()
	client.SetBaseURL(strings.TrimRight(baseURL, "/"))
	client.SetHeader("Accept", "application/json")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &Client{
		httpClient: client,
		logger:     slog.Default().With("adapter", "freedict"),
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

// Lookup fetches every entry the API has for word.
// The word is escaped as a single path segment.
func (client *Client) Lookup(ctx context.Context, word string) ([]Entry, error) {
	client.logger.DebugContext(ctx, "freedict request", slog.String("word", word))

	response, err := client.httpClient.R().
		SetContext(ctx).
		SetPathParam("word", word).
		Get("/{word}")
	if err != nil {
		client.logger.DebugContext(ctx, "freedict request failed",
			slog.String("word", word),
			slog.String("error", err.Error()))
		return nil, &LookupError{
			Kind: KindNotFoundOrAPI,
			Word: word,
			Err:  fmt.Errorf("httpClient.Get > %w", err),
		}
	}
	if status := response.StatusCode(); status < 200 || status >= 300 {
		client.logger.DebugContext(ctx, "freedict unexpected status",
			slog.String("word", word),
			slog.Int("status", status),
			slog.String("body", response.String()))
		return nil, &LookupError{
			Kind:       KindNotFoundOrAPI,
			Word:       word,
			StatusCode: status,
			Err:        fmt.Errorf("status code: %d", status),
		}
	}

	entries, err := Decode([]byte(response.String()))
	if err != nil {
		return nil, &LookupError{
			Kind:       KindDecode,
			Word:       word,
			StatusCode: response.StatusCode(),
			Err:        err,
		}
	}

	client.logger.DebugContext(ctx, "freedict response",
		slog.String("word", word),
		slog.Int("status", response.StatusCode()),
		slog.Int("entries", len(entries)))
	return entries, nil
}
