package fix_test

import (
	"testing"

	"github.com/yaklabco/mkdlint/pkg/fix"
)

func edit(start, end int, text string) fix.TextEdit {
	return fix.TextEdit{StartOffset: start, EndOffset: end, NewText: text}
}

func TestApplyEdits(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		content string
		edits   []fix.TextEdit
		want    string
	}{
		{name: "empty edits returns original", content: "hello world", edits: nil, want: "hello world"},
		{
			name:    "single replacement",
			content: "hello world",
			edits:   []fix.TextEdit{edit(0, 5, "hi")},
			want:    "hi world",
		},
		{
			name:    "single insertion",
			content: "hello world",
			edits:   []fix.TextEdit{edit(5, 5, " beautiful")},
			want:    "hello beautiful world",
		},
		{
			name:    "single deletion",
			content: "hello world",
			edits:   []fix.TextEdit{edit(5, 11, "")},
			want:    "hello",
		},
		{
			name:    "multiple non-overlapping edits",
			content: "hello world",
			edits:   []fix.TextEdit{edit(0, 5, "hi"), edit(6, 11, "there")},
			want:    "hi there",
		},
		{
			name:    "adjacent edits",
			content: "abcdef",
			edits:   []fix.TextEdit{edit(0, 2, "XX"), edit(2, 4, "YY"), edit(4, 6, "ZZ")},
			want:    "XXYYZZ",
		},
		{
			name:    "replace entire content",
			content: "hello",
			edits:   []fix.TextEdit{edit(0, 5, "world")},
			want:    "world",
		},
		{
			name:    "insert at start",
			content: "world",
			edits:   []fix.TextEdit{edit(0, 0, "hello ")},
			want:    "hello world",
		},
		{
			name:    "insert at end",
			content: "hello",
			edits:   []fix.TextEdit{edit(5, 5, " world")},
			want:    "hello world",
		},
		{
			name:    "empty content with insertion",
			content: "",
			edits:   []fix.TextEdit{edit(0, 0, "hello")},
			want:    "hello",
		},
		{
			name:    "delete all content",
			content: "hello",
			edits:   []fix.TextEdit{edit(0, 5, "")},
			want:    "",
		},
		{
			name:    "multiple insertions",
			content: "ac",
			edits:   []fix.TextEdit{edit(1, 1, "b")},
			want:    "abc",
		},
		{
			name:    "grow content",
			content: "ab",
			edits:   []fix.TextEdit{edit(1, 1, "xxx")},
			want:    "axxxb",
		},
		{
			name:    "shrink content",
			content: "axxxb",
			edits:   []fix.TextEdit{edit(1, 4, "")},
			want:    "ab",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result := fix.ApplyEdits([]byte(tc.content), tc.edits)
			if string(result) != tc.want {
				t.Errorf("ApplyEdits() = %q, want %q", string(result), tc.want)
			}
		})
	}
}

func TestApplyEdits_PreservesUnmodifiedContent(t *testing.T) {
	t.Parallel()

	content := []byte("hello world")
	original := make([]byte, len(content))
	copy(original, content)

	_ = fix.ApplyEdits(content, []fix.TextEdit{edit(0, 5, "hi")})

	if string(content) != string(original) {
		t.Error("ApplyEdits modified original content")
	}
}
