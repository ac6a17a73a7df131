package fix

import "bytes"

// ApplyEdits rewrites content by splicing in a sorted, validated slice of
// edits (see PrepareEdits). Edits are assumed non-overlapping and ordered
// by StartOffset.
func ApplyEdits(content []byte, edits []TextEdit) []byte {
	if len(edits) == 0 {
		return content
	}

	var sizeDelta int
	for _, e := range edits {
		sizeDelta += len(e.NewText) - (e.EndOffset - e.StartOffset)
	}

	var out bytes.Buffer
	out.Grow(len(content) + sizeDelta)

	cursor := 0
	for _, e := range edits {
		out.Write(content[cursor:e.StartOffset])
		out.WriteString(e.NewText)
		cursor = e.EndOffset
	}
	out.Write(content[cursor:])

	return out.Bytes()
}
