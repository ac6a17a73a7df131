package fix_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/yaklabco/mkdlint/pkg/fix"
)

func TestValidateEdits(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		edits      []fix.TextEdit
		contentLen int
		wantErr    bool
		errMsg     string
	}{
		{name: "empty edits", contentLen: 10},
		{
			name: "valid edits",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 5, NewText: "hello"},
				{StartOffset: 5, EndOffset: 10, NewText: "world"},
			},
			contentLen: 10,
		},
		{
			name:       "negative start offset",
			edits:      []fix.TextEdit{{StartOffset: -1, EndOffset: 5, NewText: "hello"}},
			contentLen: 10,
			wantErr:    true,
			errMsg:     "start offset is negative",
		},
		{
			name:       "end before start",
			edits:      []fix.TextEdit{{StartOffset: 5, EndOffset: 3, NewText: "hello"}},
			contentLen: 10,
			wantErr:    true,
			errMsg:     "end offset is before start offset",
		},
		{
			name:       "end exceeds content length",
			edits:      []fix.TextEdit{{StartOffset: 5, EndOffset: 15, NewText: "hello"}},
			contentLen: 10,
			wantErr:    true,
			errMsg:     "exceeds content length",
		},
		{
			name:       "zero-length edit (insertion)",
			edits:      []fix.TextEdit{{StartOffset: 5, EndOffset: 5, NewText: "insert"}},
			contentLen: 10,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := fix.ValidateEdits(tc.edits, tc.contentLen)
			if !tc.wantErr {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}

			var valErr *fix.ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("expected ValidationError, got %T (%v)", err, err)
			}
			if tc.errMsg != "" && !strings.Contains(err.Error(), tc.errMsg) {
				t.Errorf("error message %q does not contain %q", err.Error(), tc.errMsg)
			}
		})
	}
}

func TestSortEdits(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		edits []fix.TextEdit
		want  []fix.TextEdit
	}{
		{name: "empty"},
		{
			name: "already sorted",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 5},
				{StartOffset: 5, EndOffset: 10},
			},
			want: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 5},
				{StartOffset: 5, EndOffset: 10},
			},
		},
		{
			name: "reverse order",
			edits: []fix.TextEdit{
				{StartOffset: 5, EndOffset: 10},
				{StartOffset: 0, EndOffset: 5},
			},
			want: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 5},
				{StartOffset: 5, EndOffset: 10},
			},
		},
		{
			name: "same start, different end",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 10},
				{StartOffset: 0, EndOffset: 5},
			},
			want: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 5},
				{StartOffset: 0, EndOffset: 10},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			edits := append([]fix.TextEdit(nil), tc.edits...)
			fix.SortEdits(edits)
			assertOffsets(t, edits, tc.want)
		})
	}
}

func TestDetectConflicts(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		edits   []fix.TextEdit
		wantErr bool
	}{
		{name: "empty"},
		{
			name: "no conflicts (adjacent)",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 5},
				{StartOffset: 5, EndOffset: 10},
			},
		},
		{
			name: "overlapping edits",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 7},
				{StartOffset: 5, EndOffset: 10},
			},
			wantErr: true,
		},
		{
			name: "contained edit",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 10},
				{StartOffset: 3, EndOffset: 7},
			},
			wantErr: true,
		},
		{
			name:  "single edit",
			edits: []fix.TextEdit{{StartOffset: 0, EndOffset: 5}},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := fix.DetectConflicts(tc.edits)
			if !tc.wantErr {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			var conflictErr *fix.ConflictError
			if !errors.As(err, &conflictErr) {
				t.Errorf("expected ConflictError, got %T", err)
			}
		})
	}
}

func TestPrepareEdits(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		edits      []fix.TextEdit
		contentLen int
		wantErr    bool
		wantLen    int
	}{
		{name: "empty", contentLen: 10},
		{
			name: "valid non-overlapping",
			edits: []fix.TextEdit{
				{StartOffset: 5, EndOffset: 10},
				{StartOffset: 0, EndOffset: 5},
			},
			contentLen: 10,
			wantLen:    2,
		},
		{
			name:       "validation error",
			edits:      []fix.TextEdit{{StartOffset: -1, EndOffset: 5}},
			contentLen: 10,
			wantErr:    true,
		},
		{
			name: "conflict error",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 7},
				{StartOffset: 5, EndOffset: 10},
			},
			contentLen: 10,
			wantErr:    true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			result, err := fix.PrepareEdits(tc.edits, tc.contentLen)
			if tc.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(result) != tc.wantLen {
				t.Errorf("result length: got %d, want %d", len(result), tc.wantLen)
			}
			for i := 1; i < len(result); i++ {
				if result[i].StartOffset < result[i-1].StartOffset {
					t.Error("result not sorted")
				}
			}
		})
	}
}

func TestFilterConflicts(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name         string
		edits        []fix.TextEdit
		wantAccepted []fix.TextEdit
		wantSkipped  []fix.TextEdit
	}{
		{name: "empty"},
		{
			name:         "single edit",
			edits:        []fix.TextEdit{{StartOffset: 0, EndOffset: 5, NewText: "a"}},
			wantAccepted: []fix.TextEdit{{StartOffset: 0, EndOffset: 5, NewText: "a"}},
		},
		{
			name: "no conflicts - adjacent edits",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 5, NewText: "a"},
				{StartOffset: 5, EndOffset: 10, NewText: "b"},
			},
			wantAccepted: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 5, NewText: "a"},
				{StartOffset: 5, EndOffset: 10, NewText: "b"},
			},
		},
		{
			name: "no conflicts - gap between edits",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 5, NewText: "a"},
				{StartOffset: 10, EndOffset: 15, NewText: "b"},
			},
			wantAccepted: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 5, NewText: "a"},
				{StartOffset: 10, EndOffset: 15, NewText: "b"},
			},
		},
		{
			name: "overlapping edits - first wins",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 7, NewText: "a"},
				{StartOffset: 5, EndOffset: 10, NewText: "b"},
			},
			wantAccepted: []fix.TextEdit{{StartOffset: 0, EndOffset: 7, NewText: "a"}},
			wantSkipped:  []fix.TextEdit{{StartOffset: 5, EndOffset: 10, NewText: "b"}},
		},
		{
			name: "contained edit - outer wins",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 10, NewText: "a"},
				{StartOffset: 3, EndOffset: 7, NewText: "b"},
			},
			wantAccepted: []fix.TextEdit{{StartOffset: 0, EndOffset: 10, NewText: "a"}},
			wantSkipped:  []fix.TextEdit{{StartOffset: 3, EndOffset: 7, NewText: "b"}},
		},
		{
			// Real-world case: single-trailing-newline and no-multiple-blank-lines
			// both want to delete overlapping trailing bytes.
			name: "real case - trailing newlines conflict",
			edits: []fix.TextEdit{
				{StartOffset: 6606, EndOffset: 6608, NewText: ""},
				{StartOffset: 6607, EndOffset: 6608, NewText: ""},
			},
			wantAccepted: []fix.TextEdit{{StartOffset: 6606, EndOffset: 6608, NewText: ""}},
			wantSkipped:  []fix.TextEdit{{StartOffset: 6607, EndOffset: 6608, NewText: ""}},
		},
		{
			name: "multiple conflicts - accept non-overlapping",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 10, NewText: "a"},
				{StartOffset: 5, EndOffset: 8, NewText: "b"},
				{StartOffset: 7, EndOffset: 12, NewText: "c"},
				{StartOffset: 15, EndOffset: 20, NewText: "d"},
			},
			wantAccepted: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 10, NewText: "a"},
				{StartOffset: 15, EndOffset: 20, NewText: "d"},
			},
			wantSkipped: []fix.TextEdit{
				{StartOffset: 5, EndOffset: 8, NewText: "b"},
				{StartOffset: 7, EndOffset: 12, NewText: "c"},
			},
		},
		{
			// After sort: a(0-5) b(4-9) c(8-13) d(12-17). a accepted; b
			// overlaps a, skipped; c starts at 8 >= a's end, accepted;
			// d overlaps c, skipped.
			name: "chain of conflicts",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 5, NewText: "a"},
				{StartOffset: 4, EndOffset: 9, NewText: "b"},
				{StartOffset: 8, EndOffset: 13, NewText: "c"},
				{StartOffset: 12, EndOffset: 17, NewText: "d"},
			},
			wantAccepted: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 5, NewText: "a"},
				{StartOffset: 8, EndOffset: 13, NewText: "c"},
			},
			wantSkipped: []fix.TextEdit{
				{StartOffset: 4, EndOffset: 9, NewText: "b"},
				{StartOffset: 12, EndOffset: 17, NewText: "d"},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			accepted, skipped := fix.FilterConflicts(tc.edits)
			assertEdits(t, "accepted", accepted, tc.wantAccepted)
			assertEdits(t, "skipped", skipped, tc.wantSkipped)
		})
	}
}

func TestMergeAndFilterConflicts(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name         string
		edits        []fix.TextEdit
		wantAccepted []fix.TextEdit
		wantSkipped  []fix.TextEdit
		wantMerged   int
	}{
		{name: "empty"},
		{
			name:         "single edit",
			edits:        []fix.TextEdit{{StartOffset: 0, EndOffset: 5, NewText: ""}},
			wantAccepted: []fix.TextEdit{{StartOffset: 0, EndOffset: 5, NewText: ""}},
		},
		{
			name: "no conflicts - adjacent deletions",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 5, NewText: ""},
				{StartOffset: 5, EndOffset: 10, NewText: ""},
			},
			wantAccepted: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 5, NewText: ""},
				{StartOffset: 5, EndOffset: 10, NewText: ""},
			},
		},
		{
			name: "merge overlapping deletions",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 7, NewText: ""},
				{StartOffset: 5, EndOffset: 10, NewText: ""},
			},
			wantAccepted: []fix.TextEdit{{StartOffset: 0, EndOffset: 10, NewText: ""}},
			wantMerged:   1,
		},
		{
			name: "merge contained deletion",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 10, NewText: ""},
				{StartOffset: 3, EndOffset: 7, NewText: ""},
			},
			wantAccepted: []fix.TextEdit{{StartOffset: 0, EndOffset: 10, NewText: ""}},
			wantMerged:   1,
		},
		{
			name: "real case - trailing newlines (both deletions)",
			edits: []fix.TextEdit{
				{StartOffset: 6606, EndOffset: 6608, NewText: ""},
				{StartOffset: 6607, EndOffset: 6608, NewText: ""},
			},
			wantAccepted: []fix.TextEdit{{StartOffset: 6606, EndOffset: 6608, NewText: ""}},
			wantMerged:   1,
		},
		{
			name: "cannot merge - one has replacement text",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 7, NewText: "foo"},
				{StartOffset: 5, EndOffset: 10, NewText: ""},
			},
			wantAccepted: []fix.TextEdit{{StartOffset: 0, EndOffset: 7, NewText: "foo"}},
			wantSkipped:  []fix.TextEdit{{StartOffset: 5, EndOffset: 10, NewText: ""}},
		},
		{
			name: "cannot merge - both have different replacement text",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 7, NewText: "foo"},
				{StartOffset: 5, EndOffset: 10, NewText: "bar"},
			},
			wantAccepted: []fix.TextEdit{{StartOffset: 0, EndOffset: 7, NewText: "foo"}},
			wantSkipped:  []fix.TextEdit{{StartOffset: 5, EndOffset: 10, NewText: "bar"}},
		},
		{
			name: "merge multiple overlapping deletions",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 5, NewText: ""},
				{StartOffset: 3, EndOffset: 8, NewText: ""},
				{StartOffset: 6, EndOffset: 12, NewText: ""},
			},
			wantAccepted: []fix.TextEdit{{StartOffset: 0, EndOffset: 12, NewText: ""}},
			wantMerged:   2,
		},
		{
			name: "mix of merge and non-overlap",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 5, NewText: ""},
				{StartOffset: 3, EndOffset: 8, NewText: ""},
				{StartOffset: 20, EndOffset: 25, NewText: ""},
			},
			wantAccepted: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 8, NewText: ""},
				{StartOffset: 20, EndOffset: 25, NewText: ""},
			},
			wantMerged: 1,
		},
		{
			name: "merge some, skip others",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 10, NewText: ""},
				{StartOffset: 5, EndOffset: 8, NewText: ""},
				{StartOffset: 7, EndOffset: 15, NewText: "hello"},
				{StartOffset: 20, EndOffset: 25, NewText: ""},
			},
			wantAccepted: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 10, NewText: ""},
				{StartOffset: 20, EndOffset: 25, NewText: ""},
			},
			wantSkipped: []fix.TextEdit{{StartOffset: 7, EndOffset: 15, NewText: "hello"}},
			wantMerged:  1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			accepted, skipped, merged := fix.MergeAndFilterConflicts(tc.edits)
			if merged != tc.wantMerged {
				t.Errorf("merged count: got %d, want %d", merged, tc.wantMerged)
			}
			assertEdits(t, "accepted", accepted, tc.wantAccepted)
			assertEdits(t, "skipped", skipped, tc.wantSkipped)
		})
	}
}

func TestPrepareEditsFiltered(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name            string
		edits           []fix.TextEdit
		contentLen      int
		wantAcceptedLen int
		wantSkippedLen  int
		wantErr         bool
	}{
		{name: "empty", contentLen: 10},
		{
			name: "no conflicts",
			edits: []fix.TextEdit{
				{StartOffset: 5, EndOffset: 10, NewText: "b"},
				{StartOffset: 0, EndOffset: 5, NewText: "a"},
			},
			contentLen:      10,
			wantAcceptedLen: 2,
		},
		{
			name: "with conflicts - filters instead of errors",
			edits: []fix.TextEdit{
				{StartOffset: 0, EndOffset: 7, NewText: "a"},
				{StartOffset: 5, EndOffset: 10, NewText: "b"},
			},
			contentLen:      10,
			wantAcceptedLen: 1,
			wantSkippedLen:  1,
		},
		{
			name:       "validation error still fails",
			edits:      []fix.TextEdit{{StartOffset: -1, EndOffset: 5, NewText: "a"}},
			contentLen: 10,
			wantErr:    true,
		},
		{
			name:       "out of bounds still fails",
			edits:      []fix.TextEdit{{StartOffset: 0, EndOffset: 15, NewText: "a"}},
			contentLen: 10,
			wantErr:    true,
		},
		{
			// b sorts after a, then conflicts with it: a(0-7) wins.
			name: "sorts before filtering",
			edits: []fix.TextEdit{
				{StartOffset: 5, EndOffset: 10, NewText: "b"},
				{StartOffset: 0, EndOffset: 7, NewText: "a"},
			},
			contentLen:      10,
			wantAcceptedLen: 1,
			wantSkippedLen:  1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			accepted, skipped, _, err := fix.PrepareEditsFiltered(tc.edits, tc.contentLen)
			if tc.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(accepted) != tc.wantAcceptedLen {
				t.Errorf("accepted length: got %d, want %d", len(accepted), tc.wantAcceptedLen)
			}
			if len(skipped) != tc.wantSkippedLen {
				t.Errorf("skipped length: got %d, want %d", len(skipped), tc.wantSkippedLen)
			}
			for i := 1; i < len(accepted); i++ {
				if accepted[i].StartOffset < accepted[i-1].StartOffset {
					t.Error("accepted not sorted")
				}
				if accepted[i].StartOffset < accepted[i-1].EndOffset {
					t.Error("accepted has conflicts")
				}
			}
		})
	}
}

// assertEdits compares got against want by value, reporting a per-index
// mismatch under label ("accepted" or "skipped").
func assertEdits(t *testing.T, label string, got, want []fix.TextEdit) {
	t.Helper()
	if len(got) != len(want) {
		t.Errorf("%s length: got %d, want %d", label, len(got), len(want))
		return
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("%s[%d]: got %+v, want %+v", label, i, got[i], want[i])
		}
	}
}

// assertOffsets compares got against want by StartOffset/EndOffset only.
func assertOffsets(t *testing.T, got, want []fix.TextEdit) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i].StartOffset != want[i].StartOffset || got[i].EndOffset != want[i].EndOffset {
			t.Errorf("edit[%d]: got [%d:%d], want [%d:%d]",
				i, got[i].StartOffset, got[i].EndOffset, want[i].StartOffset, want[i].EndOffset)
		}
	}
}
