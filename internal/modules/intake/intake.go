package intake

import (
	"context"
	"regexp"
	"strings"

	"github.com/smartnotes/core/internal/middleware"
	"github.com/smartnotes/core/internal/modules/ai"
)

// todoHintPattern flags segments that read like actionable items even when
// no rewrite rule fires.
var todoHintPattern = regexp.MustCompile(`(?i)^(buy|get|pick up|pickup|call|email|schedule|book|finish|submit|pay|send|review|fix|prepare|remember)\b|\b(need to|todo|to-do|don't forget|remind me|missing|out of)\b`)

// Result is the intake partition of one raw input.
type Result struct {
	Notes []string `json:"notes"`
	Todos []string `json:"todos"`
}

// Service runs the intake pipeline: segmentation, todo extraction and
// note/todo partitioning.
type Service struct {
	classifier ai.Classifier
}

func NewService(classifier ai.Classifier) *Service {
	return &Service{classifier: classifier}
}

// Classify partitions a raw multi-segment input into notes and todos.
// For non-empty input the result always carries at least one entry.
func (s *Service) Classify(ctx context.Context, text string) Result {
	notes := make([]string, 0, 4)
	todos := make([]string, 0, 4)

	for _, segment := range Split(text) {
		extracted := s.ExtractTodos(ctx, segment)
		likelyTodo := todoHintPattern.MatchString(segment)

		switch {
		case len(extracted) > 0:
			todos = append(todos, extracted...)
		case likelyTodo:
			if normalized := NormalizeLine(segment); normalized != "" {
				todos = append(todos, normalized)
			}
		default:
			if normalized := NormalizeLine(segment); normalized != "" {
				notes = append(notes, normalized)
			}
		}
	}

	if len(notes) == 0 && len(todos) == 0 && strings.TrimSpace(text) != "" {
		notes = append(notes, NormalizeLine(text))
	}

	notes = dedupe(notes)
	todos = dedupe(todos)
	middleware.IntakeEntriesTotal.WithLabelValues("note").Add(float64(len(notes)))
	middleware.IntakeEntriesTotal.WithLabelValues("todo").Add(float64(len(todos)))
	return Result{Notes: notes, Todos: todos}
}
