package labels

import (
	"regexp"
	"strings"
)

// colorPalette backs deterministic label coloring. Order matters: the
// hash of a normalized name always lands on the same entry.
var colorPalette = []string{
	"#0ea5e9", "#22c55e", "#f59e0b", "#ef4444",
	"#8b5cf6", "#14b8a6", "#f97316", "#64748b",
}

var (
	nameStripPattern = regexp.MustCompile(`[^a-zA-Z0-9\s\-_/]`)
	spacePattern     = regexp.MustCompile(`\s+`)
	hexColorPattern  = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

const maxNameLength = 30

func toTitleCase(value string) string {
	parts := strings.Fields(value)
	for i, part := range parts {
		parts[i] = strings.ToUpper(part[:1]) + strings.ToLower(part[1:])
	}
	return strings.Join(parts, " ")
}

// NormalizeLabelName strips disallowed characters, collapses whitespace,
// caps length and Title-Cases the result. Returns "" for names that are
// empty after cleaning.
func NormalizeLabelName(value string) string {
	cleaned := nameStripPattern.ReplaceAllString(value, " ")
	cleaned = strings.TrimSpace(spacePattern.ReplaceAllString(cleaned, " "))
	if len(cleaned) > maxNameLength {
		cleaned = strings.TrimSpace(cleaned[:maxNameLength])
	}
	if cleaned == "" {
		return ""
	}
	return toTitleCase(cleaned)
}

// PickColor maps a normalized name onto the palette deterministically.
func PickColor(name string) string {
	var hash int32
	for _, r := range name {
		hash = (hash << 5) - hash + int32(r)
	}
	abs := int64(hash)
	if abs < 0 {
		abs = -abs
	}
	return colorPalette[abs%int64(len(colorPalette))]
}

// ValidColor reports whether value is a 6-hex-digit color form.
func ValidColor(value string) bool {
	return hexColorPattern.MatchString(value)
}
