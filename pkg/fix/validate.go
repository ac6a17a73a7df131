package fix

import (
	"fmt"
	"sort"
)

// ValidationError reports an edit whose range is malformed or out of bounds
// for the content it targets.
type ValidationError struct {
	Edit    TextEdit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.StartOffset, e.Edit.EndOffset, e.Message)
}

// ConflictError reports two edits whose byte ranges overlap.
type ConflictError struct {
	Edit1 TextEdit
	Edit2 TextEdit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d:%d] and [%d:%d]",
		e.Edit1.StartOffset, e.Edit1.EndOffset,
		e.Edit2.StartOffset, e.Edit2.EndOffset)
}

// ValidateEdits reports the first edit (in slice order) whose range is
// negative, inverted, or runs past contentLen, or nil if every edit is
// well-formed.
func ValidateEdits(edits []TextEdit, contentLen int) error {
	for _, edit := range edits {
		switch {
		case edit.StartOffset < 0:
			return &ValidationError{Edit: edit, Message: "start offset is negative"}
		case edit.EndOffset < edit.StartOffset:
			return &ValidationError{Edit: edit, Message: "end offset is before start offset"}
		case edit.EndOffset > contentLen:
			return &ValidationError{
				Edit:    edit,
				Message: fmt.Sprintf("end offset %d exceeds content length %d", edit.EndOffset, contentLen),
			}
		}
	}
	return nil
}

// SortEdits orders edits by (StartOffset, EndOffset) in place, giving a
// deterministic application order.
func SortEdits(edits []TextEdit) {
	sort.Slice(edits, func(i, j int) bool {
		if edits[i].StartOffset != edits[j].StartOffset {
			return edits[i].StartOffset < edits[j].StartOffset
		}
		return edits[i].EndOffset < edits[j].EndOffset
	})
}

// DetectConflicts scans a SortEdits-ordered slice for the first pair of
// edits whose ranges overlap (the next edit starts before the previous one
// ends), returning nil if there is none.
func DetectConflicts(edits []TextEdit) error {
	for i := 1; i < len(edits); i++ {
		prev, curr := edits[i-1], edits[i]
		if curr.StartOffset < prev.EndOffset {
			return &ConflictError{Edit1: prev, Edit2: curr}
		}
	}
	return nil
}

// PrepareEdits validates edits against contentLen, then returns a sorted
// copy. It fails on the first conflict rather than resolving it — callers
// that want overlap resolution should use PrepareEditsFiltered instead.
func PrepareEdits(edits []TextEdit, contentLen int) ([]TextEdit, error) {
	if len(edits) == 0 {
		return edits, nil
	}
	if err := ValidateEdits(edits, contentLen); err != nil {
		return nil, err
	}

	sorted := make([]TextEdit, len(edits))
	copy(sorted, edits)
	SortEdits(sorted)

	if err := DetectConflicts(sorted); err != nil {
		return nil, err
	}
	return sorted, nil
}

// canMerge reports whether a and b are both pure deletions (empty
// NewText), the only case safe to fold into a single edit.
func canMerge(a, b TextEdit) bool {
	return a.NewText == "" && b.NewText == ""
}

// mergeEdits folds two overlapping deletion edits into one spanning the
// union of their ranges. Callers must have already confirmed canMerge.
func mergeEdits(a, b TextEdit) TextEdit {
	return TextEdit{
		StartOffset: min(a.StartOffset, b.StartOffset),
		EndOffset:   max(a.EndOffset, b.EndOffset),
		NewText:     "",
	}
}

// FilterConflicts greedily keeps edits from a SortEdits-ordered slice that
// don't overlap an already-accepted edit, preferring earlier-starting
// edits on a conflict. It returns the accepted edits and the ones dropped.
func FilterConflicts(edits []TextEdit) (accepted, skipped []TextEdit) {
	if len(edits) == 0 {
		return nil, nil
	}

	accepted = make([]TextEdit, 0, len(edits))
	accepted = append(accepted, edits[0])
	frontier := edits[0].EndOffset

	for _, edit := range edits[1:] {
		if edit.StartOffset >= frontier {
			accepted = append(accepted, edit)
			frontier = edit.EndOffset
			continue
		}
		skipped = append(skipped, edit)
	}
	return accepted, skipped
}

// MergeAndFilterConflicts walks a SortEdits-ordered slice, folding
// overlapping pure-deletion edits together via mergeEdits and otherwise
// dropping the later of two conflicting edits. This recovers cases
// FilterConflicts would needlessly discard, since two deletions that both
// want to remove overlapping text can simply be combined.
//
// Returns the edits to apply, the edits that had to be dropped, and how
// many merges were performed (useful for diagnostics/reporting).
func MergeAndFilterConflicts(edits []TextEdit) (accepted, skipped []TextEdit, mergedCount int) {
	if len(edits) == 0 {
		return nil, nil, 0
	}

	accepted = make([]TextEdit, 0, len(edits))
	current := edits[0]

	for _, edit := range edits[1:] {
		if edit.StartOffset >= current.EndOffset {
			accepted = append(accepted, current)
			current = edit
			continue
		}
		if canMerge(current, edit) {
			current = mergeEdits(current, edit)
			mergedCount++
			continue
		}
		skipped = append(skipped, edit)
	}
	accepted = append(accepted, current)

	return accepted, skipped, mergedCount
}

// PrepareEditsFiltered validates edits against contentLen, then sorts and
// runs MergeAndFilterConflicts over them. Unlike PrepareEdits, a conflict
// is resolved (merged or dropped) rather than surfaced as an error; only a
// validation failure produces a non-nil error.
func PrepareEditsFiltered(edits []TextEdit, contentLen int) (accepted, skipped []TextEdit, mergedCount int, err error) {
	if len(edits) == 0 {
		return nil, nil, 0, nil
	}
	if err := ValidateEdits(edits, contentLen); err != nil {
		return nil, nil, 0, err
	}

	sorted := make([]TextEdit, len(edits))
	copy(sorted, edits)
	SortEdits(sorted)

	accepted, skipped, mergedCount = MergeAndFilterConflicts(sorted)
	return accepted, skipped, mergedCount, nil
}
