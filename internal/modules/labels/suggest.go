package labels

import (
	"context"
	"regexp"
	"strings"

	"github.com/smartnotes/core/internal/middleware"
)

// MaxSuggestions caps how many labels one text can receive.
const MaxSuggestions = 3

type keywordRule struct {
	label   string
	pattern *regexp.Regexp
}

var keywordRules = []keywordRule{
	{"Shopping", regexp.MustCompile(`(?i)\b(buy|shopping|grocery|milk|eggs|store|market)\b`)},
	{"Work", regexp.MustCompile(`(?i)\b(meeting|client|project|deadline|roadmap|invoice|team)\b`)},
	{"Health", regexp.MustCompile(`(?i)\b(doctor|dentist|workout|sleep|medicine|health)\b`)},
	{"Family", regexp.MustCompile(`(?i)\b(mom|dad|family|kids|home)\b`)},
	{"Finance", regexp.MustCompile(`(?i)\b(budget|rent|expense|payment|bank|tax)\b`)},
	{"Urgent", regexp.MustCompile(`(?i)\b(urgent|asap|today|immediately|important)\b`)},
	{"Follow-Up", regexp.MustCompile(`(?i)\b(follow up|remind|check in|call back)\b`)},
}

// fallbackLabels collects existing label names that appear in the text
// plus keyword-rule matches, normalized and capped.
func fallbackLabels(text string, existing []string) []string {
	normalized := strings.ToLower(text)
	found := make([]string, 0, len(existing)+len(keywordRules))

	for _, name := range existing {
		if strings.Contains(normalized, strings.ToLower(name)) {
			found = append(found, name)
		}
	}
	for _, rule := range keywordRules {
		if rule.pattern.MatchString(text) {
			found = append(found, rule.label)
		}
	}

	out := make([]string, 0, MaxSuggestions)
	seen := make(map[string]struct{}, len(found))
	for _, name := range found {
		n := NormalizeLabelName(name)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
		if len(out) == MaxSuggestions {
			break
		}
	}
	return out
}

// Suggest returns up to 3 normalized label names for the text. Classifier
// suggestions lead and the keyword fallback fills the remainder; classifier
// failures degrade to the fallback alone.
func (s *Service) Suggest(ctx context.Context, text string, existing []string) []string {
	fallback := fallbackLabels(text, existing)
	if !s.classifier.Enabled() {
		return fallback
	}

	suggested, err := s.classifier.SuggestLabels(ctx, text, existing)
	if err != nil {
		middleware.ClassifierFallbacksTotal.WithLabelValues("suggest_labels").Inc()
		return fallback
	}

	out := make([]string, 0, MaxSuggestions)
	seen := make(map[string]struct{}, MaxSuggestions)
	add := func(name string) {
		n := NormalizeLabelName(name)
		if n == "" {
			return
		}
		if _, ok := seen[n]; ok {
			return
		}
		seen[n] = struct{}{}
		if len(out) < MaxSuggestions {
			out = append(out, n)
		}
	}
	for _, name := range suggested {
		add(name)
	}
	for _, name := range fallback {
		add(name)
	}
	return out
}
