package goldmark

import (
	"bytes"
	"context"
	"testing"

	"github.com/yaklabco/mkdlint/pkg/mdast"
)

// seedCorpus registers each seed string as fuzz corpus input.
func seedCorpus(f *testing.F, seeds []string) {
	f.Helper()
	for _, seed := range seeds {
		f.Add([]byte(seed))
	}
}

// FuzzTokenize fuzzes the tokenizer with random input.
func FuzzTokenize(f *testing.F) {
	seedCorpus(f, []string{
		"",
		"Hello, world!",
		"# Heading",
		"## Heading 2",
		"- list item",
		"1. ordered item",
		"> blockquote",
		"```\ncode\n```",
		"```go\nfunc main() {}\n```",
		"*emphasis*",
		"**strong**",
		"`code`",
		"[link](url)",
		"![image](src)",
		"---",
		"***",
		"___",
		"\\*escaped\\*",
		"<div>html</div>",
		"Title\n=====",
		"line1\nline2",
		"line1\r\nline2",
		"# Heading\n\nParagraph with *emphasis* and **strong**.\n\n- item 1\n- item 2\n",
	})

	f.Fuzz(func(t *testing.T, data []byte) {
		tokens := Tokenize(data)

		if len(data) > 0 && len(tokens) == 0 {
			t.Error("expected tokens for non-empty input")
		}
		if len(data) > 0 && !mdast.ValidateTokens(tokens, len(data)) {
			t.Errorf("tokens are not valid for input of length %d", len(data))
		}
	})
}

// FuzzParse fuzzes the full parser with random input.
func FuzzParse(f *testing.F) {
	seedCorpus(f, []string{
		"",
		"Hello, world!",
		"# Heading",
		"- list\n- items",
		"```\ncode\n```",
		"*emphasis* and **strong**",
		"[link](url) and ![image](src)",
		"# Title\n\nParagraph.\n\n- item\n\n> quote\n",
	})

	f.Fuzz(func(t *testing.T, data []byte) {
		ctx := context.Background()
		p := New(FlavorCommonMark)

		snapshot, err := p.Parse(ctx, "fuzz.md", data)
		if err != nil {
			return
		}
		if snapshot == nil {
			t.Error("expected non-nil snapshot when err is nil")
			return
		}

		if !bytes.Equal(snapshot.Content, data) {
			t.Error("content mismatch")
		}
		if len(data) > 0 && !mdast.ValidateTokens(snapshot.Tokens, len(data)) {
			t.Error("tokens are not valid")
		}

		if snapshot.Root == nil {
			t.Error("expected non-nil root")
			return
		}
		if snapshot.Root.Kind != mdast.NodeDocument {
			t.Errorf("root kind = %v, want NodeDocument", snapshot.Root.Kind)
		}

		err = mdast.Walk(snapshot.Root, func(n *mdast.Node) error {
			if n.File != snapshot {
				t.Error("node has incorrect File reference")
			}
			return nil
		})
		if err != nil {
			t.Errorf("walk error: %v", err)
		}
	})
}

// FuzzParseGFM fuzzes the GFM parser with random input.
func FuzzParseGFM(f *testing.F) {
	seedCorpus(f, []string{
		"",
		"- [x] task 1\n- [ ] task 2",
		"| a | b |\n|---|---|\n| 1 | 2 |",
		"~~strikethrough~~",
		"https://example.com",
		"# GFM\n\n- [x] done\n\n| h |\n|---|\n| c |",
	})

	f.Fuzz(func(t *testing.T, data []byte) {
		ctx := context.Background()
		p := New(FlavorGFM)

		snapshot, err := p.Parse(ctx, "fuzz.md", data)
		if err != nil {
			return
		}
		if snapshot == nil {
			t.Error("expected non-nil snapshot when err is nil")
			return
		}
		if snapshot.Root == nil {
			t.Error("expected non-nil root")
		}
	})
}

// FuzzParseDeterministic verifies that parsing is deterministic.
func FuzzParseDeterministic(f *testing.F) {
	seedCorpus(f, []string{
		"# Hello",
		"*emphasis*",
		"- list",
	})

	f.Fuzz(func(t *testing.T, data []byte) {
		ctx := context.Background()
		p := New(FlavorCommonMark)

		s1, err1 := p.Parse(ctx, "test.md", data)
		s2, err2 := p.Parse(ctx, "test.md", data)

		if (err1 == nil) != (err2 == nil) {
			t.Error("parsing should be deterministic")
			return
		}
		if err1 != nil {
			return
		}

		if len(s1.Tokens) != len(s2.Tokens) {
			t.Errorf("token count mismatch: %d vs %d", len(s1.Tokens), len(s2.Tokens))
		}

		count1 := countNodes(s1.Root)
		count2 := countNodes(s2.Root)
		if count1 != count2 {
			t.Errorf("node count mismatch: %d vs %d", count1, count2)
		}
	})
}
