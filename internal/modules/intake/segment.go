package intake

import (
	"regexp"
	"strings"
)

var (
	segmentSplitPattern = regexp.MustCompile(`\n+|;`)
	whitespacePattern   = regexp.MustCompile(`\s+`)
)

// Split breaks raw input into trimmed, non-empty segments on newline runs
// and semicolons. Input holding only whitespace and separators yields
// nothing. Splitting a single-segment output returns it unchanged.
func Split(text string) []string {
	segments := make([]string, 0, 4)
	for _, piece := range segmentSplitPattern.Split(text, -1) {
		piece = strings.TrimSpace(piece)
		if piece != "" {
			segments = append(segments, piece)
		}
	}
	if len(segments) == 0 {
		return nil
	}
	return segments
}

// NormalizeLine collapses internal whitespace and trims.
func NormalizeLine(text string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}

// dedupe removes duplicates keeping first occurrences in order.
func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
