package mdast_test

import (
	"testing"

	"github.com/yaklabco/mkdlint/pkg/mdast"
)

func TestToken_Text(t *testing.T) {
	t.Parallel()

	content := []byte("hello world")

	cases := []struct {
		name     string
		token    mdast.Token
		expected string
	}{
		{"full content", mdast.Token{Kind: mdast.TokText, StartOffset: 0, EndOffset: 11}, "hello world"},
		{"first word", mdast.Token{Kind: mdast.TokText, StartOffset: 0, EndOffset: 5}, "hello"},
		{"second word", mdast.Token{Kind: mdast.TokText, StartOffset: 6, EndOffset: 11}, "world"},
		{"space", mdast.Token{Kind: mdast.TokWhitespace, StartOffset: 5, EndOffset: 6}, " "},
		{"empty token", mdast.Token{Kind: mdast.TokText, StartOffset: 5, EndOffset: 5}, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := string(tc.token.Text(content)); got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestToken_TextInvalidRange(t *testing.T) {
	t.Parallel()

	content := []byte("hello")

	cases := []struct {
		name  string
		token mdast.Token
	}{
		{"negative start", mdast.Token{StartOffset: -1, EndOffset: 3}},
		{"end past content", mdast.Token{StartOffset: 0, EndOffset: 100}},
		{"start after end", mdast.Token{StartOffset: 5, EndOffset: 3}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.token.Text(content); got != nil {
				t.Errorf("expected nil for invalid range, got %q", got)
			}
		})
	}
}

func TestToken_Len(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		token    mdast.Token
		expected int
	}{
		{"non-empty", mdast.Token{StartOffset: 0, EndOffset: 5}, 5},
		{"empty", mdast.Token{StartOffset: 3, EndOffset: 3}, 0},
		{"single byte", mdast.Token{StartOffset: 0, EndOffset: 1}, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if tc.token.Len() != tc.expected {
				t.Errorf("expected %d, got %d", tc.expected, tc.token.Len())
			}
		})
	}
}

func TestToken_IsEmpty(t *testing.T) {
	t.Parallel()

	emptyToken := mdast.Token{StartOffset: 5, EndOffset: 5}
	nonEmptyToken := mdast.Token{StartOffset: 0, EndOffset: 5}

	if !emptyToken.IsEmpty() {
		t.Error("expected empty token to be empty")
	}
	if nonEmptyToken.IsEmpty() {
		t.Error("expected non-empty token to not be empty")
	}
}

func TestTokenKind_String(t *testing.T) {
	t.Parallel()

	cases := []struct {
		kind     mdast.TokenKind
		expected string
	}{
		{mdast.TokText, "Text"},
		{mdast.TokWhitespace, "Whitespace"},
		{mdast.TokNewline, "Newline"},
		{mdast.TokHeadingMarker, "HeadingMarker"},
		{mdast.TokCodeFence, "CodeFence"},
		{mdast.TokOther, "Other"},
	}

	for _, tc := range cases {
		t.Run(tc.expected, func(t *testing.T) {
			t.Parallel()
			if tc.kind.String() != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, tc.kind.String())
			}
		})
	}
}

func TestValidateTokens(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		tokens     []mdast.Token
		contentLen int
		expected   bool
	}{
		{"empty tokens empty content", []mdast.Token{}, 0, true},
		{"empty tokens non-empty content", []mdast.Token{}, 5, false},
		{
			name:       "valid single token",
			tokens:     []mdast.Token{{StartOffset: 0, EndOffset: 5}},
			contentLen: 5,
			expected:   true,
		},
		{
			name: "valid multiple tokens",
			tokens: []mdast.Token{
				{StartOffset: 0, EndOffset: 3},
				{StartOffset: 3, EndOffset: 5},
				{StartOffset: 5, EndOffset: 10},
			},
			contentLen: 10,
			expected:   true,
		},
		{
			name: "gap between tokens",
			tokens: []mdast.Token{
				{StartOffset: 0, EndOffset: 3},
				{StartOffset: 5, EndOffset: 10},
			},
			contentLen: 10,
			expected:   false,
		},
		{
			name:       "doesn't start at 0",
			tokens:     []mdast.Token{{StartOffset: 1, EndOffset: 5}},
			contentLen: 5,
			expected:   false,
		},
		{
			name:       "doesn't end at contentLen",
			tokens:     []mdast.Token{{StartOffset: 0, EndOffset: 3}},
			contentLen: 5,
			expected:   false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := mdast.ValidateTokens(tc.tokens, tc.contentLen); got != tc.expected {
				t.Errorf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}
