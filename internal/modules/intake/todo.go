package intake

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/smartnotes/core/internal/middleware"
)

// MaxTodoPhrases bounds how many todo phrases one segment can produce.
const MaxTodoPhrases = 5

var (
	needPattern       = regexp.MustCompile(`\b(need|missing|out of)\s+(.+)`)
	buyPattern        = regexp.MustCompile(`\b(buy|get|pick up)\s+(.+)`)
	taskPattern       = regexp.MustCompile(`\b(call|email|schedule|finish|submit|book)\s+(.+)`)
	somePrefixPattern = regexp.MustCompile(`^some\s+`)
)

// heuristicTodo applies the ordered trigger rules to one segment and returns
// a single rewritten imperative phrase, or "" when no rule matches.
func heuristicTodo(text string) string {
	normalized := strings.ToLower(strings.TrimSpace(text))

	if m := needPattern.FindStringSubmatch(normalized); m != nil && m[2] != "" {
		return "Buy " + somePrefixPattern.ReplaceAllString(m[2], "")
	}
	if m := buyPattern.FindStringSubmatch(normalized); m != nil && m[2] != "" {
		return "Buy " + m[2]
	}
	if m := taskPattern.FindStringSubmatch(normalized); m != nil {
		return m[0]
	}
	return ""
}

// cleanupPhrase trims, strips one trailing period, collapses whitespace and
// upper-cases the leading rune so phrases read as imperatives.
func cleanupPhrase(text string) string {
	cleaned := strings.TrimSuffix(strings.TrimSpace(text), ".")
	cleaned = NormalizeLine(cleaned)
	if cleaned == "" {
		return ""
	}
	runes := []rune(cleaned)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// ExtractTodos returns up to 5 cleaned imperative phrases for one segment.
// A configured classifier's non-empty answer supersedes the heuristic rules;
// classifier failures silently fall back to them.
func (s *Service) ExtractTodos(ctx context.Context, text string) []string {
	var heuristic []string
	if phrase := heuristicTodo(text); phrase != "" {
		if cleaned := cleanupPhrase(phrase); cleaned != "" {
			heuristic = []string{cleaned}
		}
	}

	if !s.classifier.Enabled() {
		return heuristic
	}

	suggested, err := s.classifier.ExtractTodos(ctx, text)
	if err != nil {
		middleware.ClassifierFallbacksTotal.WithLabelValues("extract_todos").Inc()
		return heuristic
	}

	cleaned := make([]string, 0, len(suggested))
	for _, item := range suggested {
		if c := cleanupPhrase(item); c != "" {
			cleaned = append(cleaned, c)
		}
		if len(cleaned) == MaxTodoPhrases {
			break
		}
	}
	if len(cleaned) > 0 {
		return cleaned
	}
	return heuristic
}
