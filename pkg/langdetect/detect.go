// Package langdetect guesses a programming language for a fenced code
// block's content, primarily so rules can fill in a missing or verify an
// existing info-string language tag. It layers a handful of cheap,
// high-precision heuristics in front of go-enry's statistical classifier,
// since the classifier alone is unreliable on the short snippets typical
// of documentation code blocks.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

const (
	langGo         = "go"
	langPython     = "python"
	langJavaScript = "javascript"
	langJSON       = "json"
	langYAML       = "yaml"
	langHTML       = "html"
	langSQL        = "sql"
	langRust       = "rust"
	langDockerfile = "dockerfile"
	langText       = "text"
	langBash       = "bash"
)

// classifierCandidates bounds go-enry's classifier to the languages this
// linter's users are plausibly fencing code in.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Markdown", "Dockerfile",
}

// patternDetectors runs in order of how specific (and thus trustworthy)
// each pattern is; the first match wins.
var patternDetectors = []func(content []byte, trimmed []byte, asStr string) string{
	func(_, trimmed []byte, _ string) string { return detectGo(trimmed) },
	func(_, _ []byte, s string) string { return detectPython(s) },
	func(_, trimmed []byte, _ string) string { return detectHTML(trimmed) },
	func(_, trimmed []byte, _ string) string { return detectJSON(trimmed) },
	func(content, trimmed []byte, _ string) string { return detectDockerfile(content, trimmed) },
	func(_, _ []byte, s string) string { return detectSQL(s) },
	func(_, _ []byte, s string) string { return detectRust(s) },
	func(_, _ []byte, s string) string { return detectJavaScript(s) },
	func(content, _ []byte, _ string) string { return detectYAML(content) },
}

// Detect guesses content's language, falling back to "text" when nothing
// matches with confidence.
func Detect(content []byte) string {
	if len(content) == 0 {
		return langText
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	if lang := detectByPattern(content); lang != "" {
		return lang
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return langText
}

// detectByPattern tries each heuristic in patternDetectors, returning the
// first non-empty result.
func detectByPattern(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	asStr := string(content)

	for _, detect := range patternDetectors {
		if lang := detect(content, trimmed, asStr); lang != "" {
			return lang
		}
	}
	return ""
}

func detectGo(trimmed []byte) string {
	if bytes.HasPrefix(trimmed, []byte("package ")) {
		return langGo
	}
	return ""
}

func detectPython(s string) string {
	if strings.Contains(s, "def ") && strings.Contains(s, "):") {
		return langPython
	}
	if strings.Contains(s, "import ") && !strings.Contains(s, "import (") {
		if strings.Contains(s, "from ") || strings.HasPrefix(strings.TrimSpace(s), "import ") {
			return langPython
		}
	}
	if strings.Contains(s, "__name__") || strings.Contains(s, "__main__") {
		return langPython
	}
	return ""
}

func detectHTML(trimmed []byte) string {
	lower := bytes.ToLower(trimmed)
	markers := [][]byte{[]byte("<!doctype html"), []byte("<html"), []byte("<head>"), []byte("<body>")}
	for _, marker := range markers {
		if bytes.Contains(lower, marker) {
			return langHTML
		}
	}
	return ""
}

func detectJSON(trimmed []byte) string {
	isObjectOrArray := bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))
	if isObjectOrArray && bytes.Contains(trimmed, []byte(`"`)) {
		return langJSON
	}
	return ""
}

func detectDockerfile(content, trimmed []byte) string {
	switch {
	case bytes.HasPrefix(trimmed, []byte("FROM ")):
		return langDockerfile
	case bytes.Contains(content, []byte("\nFROM ")) && bytes.Contains(content, []byte("\nRUN ")):
		return langDockerfile
	case bytes.Contains(content, []byte("WORKDIR ")) && bytes.Contains(content, []byte("COPY ")):
		return langDockerfile
	default:
		return ""
	}
}

func detectSQL(s string) string {
	trimmedUpper := strings.TrimSpace(strings.ToUpper(s))
	for _, verb := range []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE "} {
		if strings.HasPrefix(trimmedUpper, verb) {
			return langSQL
		}
	}
	return ""
}

func detectRust(s string) string {
	if strings.Contains(s, "fn main()") || strings.Contains(s, "println!") || strings.Contains(s, "let mut ") {
		return langRust
	}
	return ""
}

func detectJavaScript(s string) string {
	markers := []string{"=>", "const ", "let ", "console.log"}
	for _, marker := range markers {
		if strings.Contains(s, marker) {
			return langJavaScript
		}
	}
	return ""
}

// detectYAML counts lines that look like "key: value" or "- item" and
// requires at least two before committing to YAML, since a single colon
// or dash is too common in prose/code to be indicative alone.
func detectYAML(content []byte) string {
	var yamlLikeLines int

	for _, raw := range bytes.Split(content, []byte("\n")) {
		line := bytes.TrimSpace(raw)
		switch {
		case len(line) == 0 || bytes.HasPrefix(line, []byte("#")):
			continue
		case bytes.HasPrefix(line, []byte("- ")):
			yamlLikeLines++
		case bytes.Contains(line, []byte(": ")) &&
			!bytes.ContainsAny(line, "({") &&
			!bytes.HasPrefix(line, []byte(`"`)):
			yamlLikeLines++
		}
	}

	if yamlLikeLines >= 2 {
		return langYAML
	}
	return ""
}

// normalize maps a go-enry language name to the lowercase fence tag this
// linter emits; go-enry's "Shell" becomes the more conventional "bash".
func normalize(lang string) string {
	if lang == "Shell" {
		return langBash
	}
	return strings.ToLower(lang)
}
