// Package answer reshapes raw assistant text into numbered steps followed by
// an optional closing disclaimer line.
package answer

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	stepMarker = regexp.MustCompile(`\d+\.\s`)
	stepPrefix = regexp.MustCompile(`^\d+\.\s`)
)

// Formatted is an answer split into display lines.
type Formatted struct {
	Steps      []string
	Disclaimer string
}

// String joins the steps with newlines and appends the disclaimer as a final line.
func (f Formatted) String() string {
	lines := make([]string, 0, len(f.Steps)+1)
	lines = append(lines, f.Steps...)
	if f.Disclaimer != "" {
		lines = append(lines, f.Disclaimer)
	}
	return strings.Join(lines, "\n")
}

// Format returns text reorganized one step per line with the disclaimer last.
// Text with nothing but whitespace is returned unchanged.
func Format(text string) string {
	f, ok := Parse(text)
	if !ok {
		return text
	}
	return f.String()
}

// Parse splits text before every "<digits>. " marker. When the last segment is
// unnumbered it becomes the disclaimer and every earlier segment is a step;
// so text without any marker is all disclaimer. When the last segment is
// numbered, prose trailing the final step (after a line break, or after its
// first sentence) is taken as the disclaimer. ok is false when text has no
// non-blank segment.
func Parse(text string) (f Formatted, ok bool) {
	parts := segments(text)
	if len(parts) == 0 {
		return Formatted{}, false
	}

	last := parts[len(parts)-1]
	if !IsStep(last) {
		return Formatted{Steps: parts[:len(parts)-1], Disclaimer: last}, true
	}

	step, tail := splitTrailing(last)
	parts[len(parts)-1] = step
	return Formatted{Steps: parts, Disclaimer: tail}, true
}

// IsStep reports whether s starts with a step number such as "3. ".
func IsStep(s string) bool {
	return stepPrefix.MatchString(s)
}

func segments(text string) []string {
	var raw []string
	start := 0
	for _, loc := range stepMarker.FindAllStringIndex(text, -1) {
		if loc[0] > start {
			raw = append(raw, text[start:loc[0]])
			start = loc[0]
		}
	}
	raw = append(raw, text[start:])

	out := raw[:0]
	for _, p := range raw {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// splitTrailing separates a final step from prose that follows it.
func splitTrailing(seg string) (step, tail string) {
	if i := strings.IndexAny(seg, "\r\n"); i >= 0 {
		if tail = strings.TrimSpace(seg[i:]); tail != "" {
			return strings.TrimSpace(seg[:i]), tail
		}
		return seg, ""
	}

	bodyStart := len(stepPrefix.FindString(seg))
	if end := sentenceEnd(seg[bodyStart:]); end >= 0 {
		end += bodyStart
		return strings.TrimSpace(seg[:end]), strings.TrimSpace(seg[end:])
	}
	return seg, ""
}

// sentenceEnd returns the offset just past the first sentence terminator that
// is followed by whitespace and an upper-case letter, or -1. Abbreviations
// followed by lower-case words ("S.P. office") do not end a sentence.
func sentenceEnd(s string) int {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '.', '!', '?':
		default:
			continue
		}
		j := i + 1
		for j < len(s) && (s[j] == ' ' || s[j] == '\t') {
			j++
		}
		if j == i+1 || j == len(s) {
			continue
		}
		r, _ := utf8.DecodeRuneInString(s[j:])
		if unicode.IsUpper(r) {
			return i + 1
		}
	}
	return -1
}
