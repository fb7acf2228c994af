package ai

import (
	"context"

	"github.com/smartnotes/core/internal/config"
)

// CategorySuggestion is the classifier's verdict for a single entry.
type CategorySuggestion struct {
	Category   string   `json:"category"`
	Confidence float64  `json:"confidence"`
	Tags       []string `json:"tags"`
}

// Classifier is the optional external language-model capability. Callers
// always keep a rules-path fallback: any error from these methods means
// "no suggestion", never a request failure.
type Classifier interface {
	// Enabled reports whether a provider is configured. When false, the
	// other methods return empty results without network calls.
	Enabled() bool

	// ExtractTodos returns up to 5 concise verb-first todo phrases.
	ExtractTodos(ctx context.Context, text string) ([]string, error)

	// Categorize assigns one of the given category slugs with a confidence
	// in [0,1] and up to 5 tags.
	Categorize(ctx context.Context, text string, slugs []string) (*CategorySuggestion, error)

	// SplitEntries subdivides one input into up to 6 independent entries.
	SplitEntries(ctx context.Context, text string) ([]string, error)

	// SuggestLabels returns up to 3 short labels, preferring existing names.
	SuggestLabels(ctx context.Context, text string, existing []string) ([]string, error)
}

// NewFromConfig picks the first enabled provider, or a disabled classifier
// when none is configured.
func NewFromConfig(cfg config.AIConfig) Classifier {
	for _, provider := range cfg.Providers {
		if !provider.Enabled {
			continue
		}
		p := provider
		return &providerClassifier{provider: &p}
	}
	return disabledClassifier{}
}

// disabledClassifier is the rules-path-only implementation.
type disabledClassifier struct{}

func (disabledClassifier) Enabled() bool { return false }

func (disabledClassifier) ExtractTodos(context.Context, string) ([]string, error) {
	return nil, nil
}

func (disabledClassifier) Categorize(context.Context, string, []string) (*CategorySuggestion, error) {
	return nil, nil
}

func (disabledClassifier) SplitEntries(context.Context, string) ([]string, error) {
	return nil, nil
}

func (disabledClassifier) SuggestLabels(context.Context, string, []string) ([]string, error) {
	return nil, nil
}
