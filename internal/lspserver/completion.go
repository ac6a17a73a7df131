package lspserver

import (
	"strings"

	"github.com/yaklabco/mkdlint/internal/lsp/protocol"
)

// ialAttributeNames are the common kramdown inline-attribute-list keys,
// offered as completions inside a {: ... } block.
var ialAttributeNames = []string{
	"id", "class", "title", "lang", "dir", "style", "data-",
}

// ariaAttributeNames are the ARIA attributes mkdlint's completion offers
// inside an IAL, since kramdown attribute lists are commonly used to
// annotate accessibility metadata on headings and paragraphs.
var ariaAttributeNames = []string{
	"role",
	"aria-label", "aria-labelledby", "aria-describedby", "aria-hidden",
	"aria-live", "aria-expanded", "aria-current", "aria-controls",
	"aria-disabled", "aria-haspopup", "aria-level",
}

// handleCompletion answers textDocument/completion. mkdlint only offers
// completions inside a kramdown inline-attribute-list context (`{: ... }`);
// outside of one it returns an empty, non-incomplete list.
func (s *Server) handleCompletion(params *protocol.CompletionParams) (any, error) {
	uri := string(params.TextDocument.URI)
	doc := s.documents.Get(uri)
	if doc == nil {
		return &protocol.CompletionList{Items: []protocol.CompletionItem{}}, nil
	}

	offset := positionToOffset(doc.Text, params.Position)
	inIAL, prefix := ialContextAt(doc.Text, offset)
	if !inIAL {
		return &protocol.CompletionList{Items: []protocol.CompletionItem{}}, nil
	}

	items := ialCompletionItems(prefix)
	return &protocol.CompletionList{IsIncomplete: false, Items: items}, nil
}

// ialContextAt reports whether offset falls inside an unterminated `{: ... }`
// span on its line, and the partial token the user has typed so far (used to
// filter candidates).
func ialContextAt(text string, offset int) (bool, string) {
	if offset < 0 || offset > len(text) {
		return false, ""
	}

	lineStart := strings.LastIndexByte(text[:offset], '\n') + 1
	line := text[lineStart:offset]

	open := strings.LastIndex(line, "{:")
	if open < 0 {
		return false, ""
	}
	if strings.Contains(line[open:], "}") {
		return false, ""
	}

	typed := line[open+len("{:"):]
	prefixStart := strings.LastIndexAny(typed, " \t")
	prefix := typed[prefixStart+1:]
	return true, prefix
}

// ialCompletionItems builds the candidate list for an IAL context, filtered
// to entries matching prefix: selector sigils when prefix is empty or itself
// a sigil, attribute names and ARIA attributes by typed-prefix match.
func ialCompletionItems(prefix string) []protocol.CompletionItem {
	var items []protocol.CompletionItem

	for _, sigil := range []protocol.CompletionItem{
		{Label: "#", Kind: protocol.CompletionItemKindText, Detail: "id selector"},
		{Label: ".", Kind: protocol.CompletionItemKindText, Detail: "class selector"},
	} {
		if strings.HasPrefix(sigil.Label, prefix) {
			items = append(items, sigil)
		}
	}

	for _, name := range ialAttributeNames {
		if strings.HasPrefix(name, prefix) {
			items = append(items, protocol.CompletionItem{
				Label: name, Kind: protocol.CompletionItemKindProperty, Detail: "IAL attribute",
			})
		}
	}
	for _, name := range ariaAttributeNames {
		if strings.HasPrefix(name, prefix) {
			items = append(items, protocol.CompletionItem{
				Label: name, Kind: protocol.CompletionItemKindProperty, Detail: "ARIA attribute",
			})
		}
	}

	if items == nil {
		items = []protocol.CompletionItem{}
	}
	return items
}
