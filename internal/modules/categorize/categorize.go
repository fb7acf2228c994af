package categorize

import (
	"context"
	"regexp"
	"strings"

	"github.com/smartnotes/core/internal/middleware"
	"github.com/smartnotes/core/internal/models"
	"github.com/smartnotes/core/internal/modules/ai"
	"github.com/smartnotes/core/internal/modules/intake"
)

const (
	SourceRules = "rules"
	SourceAI    = "ai"

	// MaxSubEntries bounds classifier-driven subdivision of one input.
	MaxSubEntries = 6

	maxTags = 5
)

// Result is one categorized entry.
type Result struct {
	Text         string   `json:"text"`
	CategorySlug string   `json:"categorySlug"`
	Confidence   float64  `json:"confidence"`
	Tags         []string `json:"tags"`
	Source       string   `json:"source"`
}

// Service assigns categories by keyword rules, with an optional classifier
// override. Category rows are supplied by the caller so scoring stays free
// of storage concerns.
type Service struct {
	classifier ai.Classifier
}

func NewService(classifier ai.Classifier) *Service {
	return &Service{classifier: classifier}
}

var tagStripPattern = regexp.MustCompile(`[^a-z0-9\s]`)

// normalizeTags pulls up to 3 lowercase words longer than 3 chars.
func normalizeTags(text string) []string {
	cleaned := tagStripPattern.ReplaceAllString(strings.ToLower(text), " ")
	tags := make([]string, 0, 3)
	for _, word := range strings.Fields(cleaned) {
		if len(word) > 3 {
			tags = append(tags, word)
		}
		if len(tags) == 3 {
			break
		}
	}
	return tags
}

func dedupeCap(in []string, limit int) []string {
	out := make([]string, 0, limit)
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
		if len(out) == limit {
			break
		}
	}
	return out
}

// scoreRules counts keyword hits per category over the lowercased text.
// The strict maximum hit count wins; ties keep the earliest category in
// the given order. Zero hits everywhere returns nil.
func scoreRules(text string, categories []models.CategoryModel) *Result {
	normalized := strings.ToLower(text)

	var bestHits []string
	var bestSlug string
	for _, category := range categories {
		var hits []string
		for _, keyword := range category.Keywords {
			if strings.Contains(normalized, keyword) {
				hits = append(hits, keyword)
			}
		}
		if len(hits) > len(bestHits) {
			bestHits = hits
			bestSlug = category.Slug
		}
	}
	if len(bestHits) == 0 {
		return nil
	}

	tags := append([]string{}, bestHits[:min(2, len(bestHits))]...)
	tags = append(tags, normalizeTags(text)...)
	return &Result{
		CategorySlug: bestSlug,
		Confidence:   0.9,
		Tags:         dedupeCap(tags, maxTags),
		Source:       SourceRules,
	}
}

func uncategorized(text string, confidence float64) Result {
	return Result{
		CategorySlug: models.UncategorizedSlug,
		Confidence:   confidence,
		Tags:         normalizeTags(text),
		Source:       SourceRules,
	}
}

// Categorize assigns one category to the text. Keyword rules win outright;
// otherwise a configured classifier is consulted, and any classifier
// failure degrades to uncategorized without surfacing the error.
func (s *Service) Categorize(ctx context.Context, text string, categories []models.CategoryModel) Result {
	if rule := scoreRules(text, categories); rule != nil {
		rule.Text = text
		return *rule
	}

	if !s.classifier.Enabled() {
		result := uncategorized(text, 0.25)
		result.Text = text
		return result
	}

	slugs := make([]string, 0, len(categories))
	known := make(map[string]struct{}, len(categories))
	for _, category := range categories {
		slugs = append(slugs, category.Slug)
		known[category.Slug] = struct{}{}
	}

	suggestion, err := s.classifier.Categorize(ctx, text, slugs)
	if err != nil || suggestion == nil {
		middleware.ClassifierFallbacksTotal.WithLabelValues("categorize").Inc()
		result := uncategorized(text, 0.3)
		result.Text = text
		return result
	}

	slug := strings.ToLower(strings.TrimSpace(suggestion.Category))
	if _, ok := known[slug]; !ok {
		slug = models.UncategorizedSlug
	}
	confidence := suggestion.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	tags := make([]string, 0, len(suggestion.Tags))
	for _, tag := range suggestion.Tags {
		if t := strings.ToLower(strings.TrimSpace(tag)); t != "" {
			tags = append(tags, t)
		}
	}
	return Result{
		Text:         text,
		CategorySlug: slug,
		Confidence:   confidence,
		Tags:         dedupeCap(tags, maxTags),
		Source:       SourceAI,
	}
}

// Analyze categorizes one input, optionally letting the classifier
// subdivide it into up to 6 sub-entries first. Any subdivision failure
// falls back to one rule-categorized entry per split segment.
func (s *Service) Analyze(ctx context.Context, text string, categories []models.CategoryModel) []Result {
	entries := intake.Split(text)

	if s.classifier.Enabled() {
		parts, err := s.classifier.SplitEntries(ctx, text)
		if err != nil {
			middleware.ClassifierFallbacksTotal.WithLabelValues("split").Inc()
		} else if len(parts) > 0 {
			subdivided := make([]string, 0, MaxSubEntries)
			for _, part := range parts {
				if trimmed := strings.TrimSpace(part); trimmed != "" {
					subdivided = append(subdivided, trimmed)
				}
				if len(subdivided) == MaxSubEntries {
					break
				}
			}
			if len(subdivided) > 0 {
				entries = subdivided
			}
		}
	}

	results := make([]Result, 0, len(entries))
	for _, entry := range entries {
		results = append(results, s.Categorize(ctx, entry, categories))
	}
	return results
}
