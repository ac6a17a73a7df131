// Package inlineconfig implements the inline-configuration resolver: it
// scans raw Markdown source for directive comments that enable or disable
// rules over line ranges, or merge rule option overrides that apply to the
// whole file, and answers whether a given finding should be filtered out.
package inlineconfig

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// allRules is the sentinel key used when a directive lists no rule IDs,
// meaning "every rule".
const allRules = "*"

// lineSpan is a half-open range of 1-based line numbers, [Start, End).
// End of 0 means "open", i.e. extends to the end of the file.
type lineSpan struct {
	start int
	end   int
}

// Resolution is the result of scanning a file for inline-configuration
// directives: per-rule disabled line spans and a merged options override map.
type Resolution struct {
	disabled map[string][]lineSpan
	Options  map[string]map[string]any
}

// directivePattern matches a single-line HTML comment directive:
// <!-- mkdlint-disable MD009 MD010 -->
var directivePattern = regexp.MustCompile(`<!--\s*mkdlint-(disable-next-line|disable-line|disable|enable|configure-file)\b(.*?)-->`)

// Resolve scans content for mkdlint directive comments and builds a
// Resolution describing which rules are disabled on which lines and what
// per-rule option overrides apply to the file.
//
// configure-file directives are scanned up front and merged as file-wide
// overrides rather than applied only from their line onward: the lint
// driver evaluates each rule once over the whole document per pass, so true
// positional option-switching is not representable without re-evaluating
// rules per-position. This is a documented simplification.
func Resolve(content []byte) (*Resolution, error) {
	res := &Resolution{
		disabled: make(map[string][]lineSpan),
		Options:  make(map[string]map[string]any),
	}

	lineOf := func(offset int) int {
		return strings.Count(string(content[:offset]), "\n") + 1
	}

	// lines is used only to find the next non-blank line for
	// disable-next-line; it is 0-indexed here but line numbers are 1-based.
	lines := strings.Split(string(content), "\n")

	// nextNonBlank returns the first line number >= from that is not blank,
	// or from itself if every remaining line is blank (an open trailing span
	// at EOF still has to name some line).
	nextNonBlank := func(from int) int {
		target := from
		for target <= len(lines) && strings.TrimSpace(lines[target-1]) == "" {
			target++
		}
		if target > len(lines) {
			return from
		}
		return target
	}

	// Track open disable spans started by a bare `disable`/`enable` directive,
	// per rule (and for the "*" sentinel meaning "all rules").
	openSince := make(map[string]int)

	matches := directivePattern.FindAllSubmatchIndex(content, -1)
	for _, m := range matches {
		kind := string(content[m[2]:m[3]])
		argsRaw := strings.TrimSpace(string(content[m[4]:m[5]]))
		line := lineOf(m[0])

		switch kind {
		case "disable":
			for _, id := range ruleIDs(argsRaw) {
				if _, open := openSince[id]; !open {
					openSince[id] = line
				}
			}
		case "enable":
			ids := ruleIDs(argsRaw)
			if len(ids) == 0 {
				ids = openKeys(openSince)
			}
			for _, id := range ids {
				if start, open := openSince[id]; open {
					res.disabled[id] = append(res.disabled[id], lineSpan{start: start, end: line})
					delete(openSince, id)
				}
			}
		case "disable-next-line":
			target := nextNonBlank(line + 1)
			for _, id := range ruleIDs(argsRaw) {
				res.disabled[id] = append(res.disabled[id], lineSpan{start: target, end: target + 1})
			}
		case "disable-line":
			for _, id := range ruleIDs(argsRaw) {
				res.disabled[id] = append(res.disabled[id], lineSpan{start: line, end: line + 1})
			}
		case "configure-file":
			var payload map[string]map[string]any
			if err := json.Unmarshal([]byte(argsRaw), &payload); err != nil {
				return nil, fmt.Errorf("inline config: invalid configure-file JSON on line %d: %w", line, err)
			}
			for ruleID, opts := range payload {
				id := strings.ToUpper(ruleID)
				if res.Options[id] == nil {
					res.Options[id] = make(map[string]any)
				}
				for k, v := range opts {
					res.Options[id][k] = v
				}
			}
		}
	}

	// Any directive left open at EOF disables its rule(s) through the end
	// of the file.
	for id, start := range openSince {
		res.disabled[id] = append(res.disabled[id], lineSpan{start: start, end: 0})
	}

	return res, nil
}

// IsDisabled reports whether ruleID is disabled on the given 1-based line,
// either by name or via a bare "disable all rules" directive.
func (r *Resolution) IsDisabled(ruleID string, line int) bool {
	if r == nil {
		return false
	}
	id := strings.ToUpper(ruleID)
	return spanContains(r.disabled[id], line) || spanContains(r.disabled[allRules], line)
}

func spanContains(spans []lineSpan, line int) bool {
	for _, s := range spans {
		if line >= s.start && (s.end == 0 || line < s.end) {
			return true
		}
	}
	return false
}

// ruleIDs splits a directive's argument text into canonicalized rule IDs.
// An empty argument list yields the single sentinel entry meaning "all rules".
func ruleIDs(args string) []string {
	fields := strings.Fields(args)
	if len(fields) == 0 {
		return []string{allRules}
	}
	ids := make([]string, len(fields))
	for i, f := range fields {
		ids[i] = strings.ToUpper(f)
	}
	return ids
}

// openKeys returns the keys of an open-span map, used when a bare `enable`
// directive (no rule list) should close every currently open disable span.
func openKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
