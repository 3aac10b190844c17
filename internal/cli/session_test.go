package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/at-ishikawa/termwords/internal/dictionary/freedict"
	mock_dictionary "github.com/at-ishikawa/termwords/internal/mocks/dictionary"
	"github.com/at-ishikawa/termwords/internal/render"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	color.NoColor = true
}

func strPtr(s string) *string { return &s }

var testEntries = []freedict.Entry{
	{
		Word: "hello",
		Meanings: []freedict.Meaning{
			{
				PartOfSpeech: strPtr("noun"),
				Definitions: []freedict.Definition{
					{Definition: "A greeting."},
				},
			},
		},
	},
}

const helloOutput = `
Word: hello

Part of speech: noun
  1. A greeting.

`

func newTestSession(t *testing.T, lookuper *mock_dictionary.MockLookuper, format render.Format, stdin string) (*Session, *bytes.Buffer) {
	t.Helper()
	var stdout bytes.Buffer
	session, err := NewSession(lookuper, render.Options{Limit: render.DefaultLimit}, format, strings.NewReader(stdin), &stdout)
	require.NoError(t, err)
	return session, &stdout
}

func TestSession_RunOnce(t *testing.T) {
	tests := []struct {
		name       string
		word       string
		format     render.Format
		setupMock  func(m *mock_dictionary.MockLookuper)
		wantOutput string
		wantErr    error
	}{
		{
			name:   "found",
			word:   "hello",
			format: render.FormatText,
			setupMock: func(m *mock_dictionary.MockLookuper) {
				m.EXPECT().Lookup(gomock.Any(), "hello").Return(testEntries, nil)
			},
			wantOutput: "Looking up: hello\n" + helloOutput,
		},
		{
			name:   "not found",
			word:   "asdfghjklqwerty123456",
			format: render.FormatText,
			setupMock: func(m *mock_dictionary.MockLookuper) {
				m.EXPECT().Lookup(gomock.Any(), "asdfghjklqwerty123456").
					Return(nil, &freedict.LookupError{Kind: freedict.KindNotFoundOrAPI, StatusCode: 404})
			},
			wantOutput: "Looking up: asdfghjklqwerty123456\nError: word not found or API error\n",
			wantErr:    ErrLookupFailed,
		},
		{
			name:   "json output has no status line",
			word:   "hello",
			format: render.FormatJSON,
			setupMock: func(m *mock_dictionary.MockLookuper) {
				m.EXPECT().Lookup(gomock.Any(), "hello").Return(testEntries, nil)
			},
			wantOutput: `[
  {
    "word": "hello",
    "meanings": [
      {
        "partOfSpeech": "noun",
        "definitions": [
          {
            "definition": "A greeting."
          }
        ]
      }
    ]
  }
]
`,
		},
		{
			name:      "blank word",
			word:      "  ",
			format:    render.FormatText,
			setupMock: func(m *mock_dictionary.MockLookuper) {},
			wantErr:   ErrUsage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			lookuper := mock_dictionary.NewMockLookuper(ctrl)
			tt.setupMock(lookuper)

			session, stdout := newTestSession(t, lookuper, tt.format, "")
			err := session.RunOnce(context.Background(), tt.word)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantOutput, stdout.String())
		})
	}
}

func TestSession_RunOnce_KeepsLookupErrorChain(t *testing.T) {
	ctrl := gomock.NewController(t)
	lookuper := mock_dictionary.NewMockLookuper(ctrl)
	lookuper.EXPECT().Lookup(gomock.Any(), "bad").
		Return(nil, &freedict.LookupError{Kind: freedict.KindDecode, Err: &freedict.DecodeError{Field: "[0].word"}})

	session, _ := newTestSession(t, lookuper, render.FormatText, "")
	err := session.RunOnce(context.Background(), "bad")

	assert.ErrorIs(t, err, ErrLookupFailed)
	assert.ErrorIs(t, err, freedict.ErrDecode)
	var decodeErr *freedict.DecodeError
	assert.ErrorAs(t, err, &decodeErr)
}

func TestSession_RunInteractive(t *testing.T) {
	tests := []struct {
		name       string
		stdin      string
		setupMock  func(m *mock_dictionary.MockLookuper)
		wantOutput []string
		notOutput  []string
	}{
		{
			name:  "lookup then quit",
			stdin: "hello\nquit\n",
			setupMock: func(m *mock_dictionary.MockLookuper) {
				m.EXPECT().Lookup(gomock.Any(), "hello").Return(testEntries, nil).Times(1)
			},
			wantOutput: []string{"Word: hello", "Goodbye!"},
		},
		{
			name:       "exit tokens",
			stdin:      "exit\nhello\n",
			setupMock:  func(m *mock_dictionary.MockLookuper) {},
			wantOutput: []string{"Goodbye!"},
			notOutput:  []string{"Word: hello"},
		},
		{
			name:       "q exits",
			stdin:      "q\n",
			setupMock:  func(m *mock_dictionary.MockLookuper) {},
			wantOutput: []string{"Goodbye!"},
		},
		{
			name:  "surrounding whitespace is trimmed before lookup and exit matching",
			stdin: "  hello \t\n   quit  \n",
			setupMock: func(m *mock_dictionary.MockLookuper) {
				m.EXPECT().Lookup(gomock.Any(), "hello").Return(testEntries, nil)
			},
			wantOutput: []string{"Word: hello", "Goodbye!"},
		},
		{
			name:  "exit tokens are case-sensitive",
			stdin: "Quit\nQ\nEXIT\n",
			setupMock: func(m *mock_dictionary.MockLookuper) {
				m.EXPECT().Lookup(gomock.Any(), "Quit").Return(testEntries, nil)
				m.EXPECT().Lookup(gomock.Any(), "Q").Return(testEntries, nil)
				m.EXPECT().Lookup(gomock.Any(), "EXIT").Return(testEntries, nil)
			},
			wantOutput: []string{"Goodbye!"},
		},
		{
			name:       "blank lines never look up",
			stdin:      "\n   \n\t\n",
			setupMock:  func(m *mock_dictionary.MockLookuper) {},
			wantOutput: []string{"Goodbye!"},
		},
		{
			name:  "lookup errors do not stop the loop",
			stdin: "asdfghjklqwerty123456\nhello\n",
			setupMock: func(m *mock_dictionary.MockLookuper) {
				gomock.InOrder(
					m.EXPECT().Lookup(gomock.Any(), "asdfghjklqwerty123456").
						Return(nil, &freedict.LookupError{Kind: freedict.KindNotFoundOrAPI, StatusCode: 404}),
					m.EXPECT().Lookup(gomock.Any(), "hello").Return(testEntries, nil),
				)
			},
			wantOutput: []string{"Error: word not found or API error", "Word: hello", "Goodbye!"},
		},
		{
			name:  "last line without newline",
			stdin: "hello",
			setupMock: func(m *mock_dictionary.MockLookuper) {
				m.EXPECT().Lookup(gomock.Any(), "hello").Return(testEntries, nil)
			},
			wantOutput: []string{"Word: hello", "Goodbye!"},
		},
		{
			name:       "end of input",
			stdin:      "",
			setupMock:  func(m *mock_dictionary.MockLookuper) {},
			wantOutput: []string{"> \nGoodbye!\n"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			lookuper := mock_dictionary.NewMockLookuper(ctrl)
			tt.setupMock(lookuper)

			session, stdout := newTestSession(t, lookuper, render.FormatText, tt.stdin)
			err := session.RunInteractive(context.Background())
			require.NoError(t, err)

			output := stdout.String()
			for _, want := range tt.wantOutput {
				assert.Contains(t, output, want)
			}
			for _, notWant := range tt.notOutput {
				assert.NotContains(t, output, notWant)
			}
			assert.True(t, strings.HasSuffix(output, "Goodbye!\n"), output)
		})
	}
}

func TestSession_RunInteractive_ReadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	lookuper := mock_dictionary.NewMockLookuper(ctrl)

	var stdout bytes.Buffer
	readErr := errors.New("device not ready")
	session, err := NewSession(lookuper, render.Options{Limit: 3}, render.FormatText, iotest.ErrReader(readErr), &stdout)
	require.NoError(t, err)

	err = session.RunInteractive(context.Background())

	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.ErrorIs(t, err, readErr)
	assert.NotContains(t, stdout.String(), "Goodbye!")
}

func TestIsExitToken(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{input: "q", want: true},
		{input: "quit", want: true},
		{input: "exit", want: true},
		{input: "Quit", want: false},
		{input: "quit ", want: false},
		{input: "Q", want: false},
		{input: "EXIT", want: false},
		{input: "", want: false},
		{input: "quite", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, isExitToken(tt.input))
		})
	}
}

func TestNewSession_UnknownFormat(t *testing.T) {
	ctrl := gomock.NewController(t)
	_, err := NewSession(mock_dictionary.NewMockLookuper(ctrl), render.Options{Limit: 3}, "xml", strings.NewReader(""), &bytes.Buffer{})
	assert.Error(t, err)
}
