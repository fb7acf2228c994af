package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	anthropicclient "github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	openaiclient "github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"
	"github.com/smartnotes/core/internal/config"
)

const (
	completionMaxTokens = 600
	completionTimeout   = 30 * time.Second
)

// providerClassifier calls a configured LLM provider and parses its
// JSON-shaped answers.
type providerClassifier struct {
	provider *config.AIProvider
}

func (p *providerClassifier) Enabled() bool { return true }

func (p *providerClassifier) ExtractTodos(ctx context.Context, text string) ([]string, error) {
	raw, err := p.complete(ctx, extractTodosSystemPrompt, text)
	if err != nil {
		return nil, err
	}
	var out struct {
		Todos []string `json:"todos"`
	}
	if err := unmarshalAIJSON(raw, &out); err != nil {
		return nil, err
	}
	return capStrings(out.Todos, maxTodoPhrases), nil
}

func (p *providerClassifier) Categorize(ctx context.Context, text string, slugs []string) (*CategorySuggestion, error) {
	prompt := fmt.Sprintf("CATEGORIES: %s\n\n<<<CONTENT\n%s\nCONTENT", strings.Join(slugs, ","), text)
	raw, err := p.complete(ctx, categorizeSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}
	var out CategorySuggestion
	if err := unmarshalAIJSON(raw, &out); err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.Category) == "" {
		return nil, errors.New("category is empty in AI response")
	}
	if out.Confidence < 0 {
		out.Confidence = 0
	}
	if out.Confidence > 1 {
		out.Confidence = 1
	}
	out.Tags = capStrings(out.Tags, 5)
	for i, tag := range out.Tags {
		out.Tags[i] = strings.ToLower(tag)
	}
	return &out, nil
}

func (p *providerClassifier) SplitEntries(ctx context.Context, text string) ([]string, error) {
	raw, err := p.complete(ctx, splitEntriesSystemPrompt, text)
	if err != nil {
		return nil, err
	}
	var out struct {
		Entries []string `json:"entries"`
	}
	if err := unmarshalAIJSON(raw, &out); err != nil {
		return nil, err
	}
	return capStrings(out.Entries, maxSplitEntries), nil
}

func (p *providerClassifier) SuggestLabels(ctx context.Context, text string, existing []string) ([]string, error) {
	names := strings.Join(existing, ", ")
	if names == "" {
		names = "none"
	}
	prompt := fmt.Sprintf("EXISTING_LABELS: %s\n\n<<<CONTENT\n%s\nCONTENT", names, text)
	raw, err := p.complete(ctx, suggestLabelsSystemPrompt, prompt)
	if err != nil {
		return nil, err
	}
	var out struct {
		Labels []string `json:"labels"`
	}
	if err := unmarshalAIJSON(raw, &out); err != nil {
		return nil, err
	}
	return capStrings(out.Labels, maxLabels), nil
}

func (p *providerClassifier) complete(ctx context.Context, systemPrompt, prompt string) (string, error) {
	if strings.TrimSpace(p.provider.APIKey) == "" {
		return "", errors.New("AI provider api key is empty")
	}

	ctx, cancel := context.WithTimeout(ctx, completionTimeout)
	defer cancel()

	switch {
	case isAnthropicProviderType(p.provider.Type):
		return p.completeAnthropic(ctx, systemPrompt, prompt)
	case isOpenAICompatibleProviderType(p.provider.Type):
		return p.completeOpenAICompatible(ctx, systemPrompt, prompt)
	default:
		return p.completeOpenAI(ctx, systemPrompt, prompt)
	}
}

func (p *providerClassifier) completeOpenAI(ctx context.Context, systemPrompt, prompt string) (string, error) {
	model := strings.TrimSpace(p.provider.DefaultModel)
	if model == "" {
		model = "gpt-4o-mini"
	}

	opts := []openaioption.RequestOption{
		openaioption.WithAPIKey(strings.TrimSpace(p.provider.APIKey)),
		openaioption.WithMaxRetries(0),
	}
	if normalized := normalizeOpenAIBaseURL(p.provider.Endpoint); normalized != "" {
		opts = append(opts, openaioption.WithBaseURL(normalized))
	}

	client := openaiclient.NewClient(opts...)
	messages := make([]openaiclient.ChatCompletionMessageParamUnion, 0, 2)
	if strings.TrimSpace(systemPrompt) != "" {
		messages = append(messages, openaiclient.SystemMessage(systemPrompt))
	}
	messages = append(messages, openaiclient.UserMessage(prompt))

	resp, err := client.Chat.Completions.New(ctx, openaiclient.ChatCompletionNewParams{
		Model:     openaiclient.ChatModel(model),
		Messages:  messages,
		MaxTokens: openaiclient.Int(completionMaxTokens),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", errors.New("empty response from AI")
	}
	return resp.Choices[0].Message.Content, nil
}

func (p *providerClassifier) completeAnthropic(ctx context.Context, systemPrompt, prompt string) (string, error) {
	model := strings.TrimSpace(p.provider.DefaultModel)
	if model == "" {
		model = "claude-haiku-4-5-20251001"
	}

	opts := []anthropicoption.RequestOption{
		anthropicoption.WithAPIKey(strings.TrimSpace(p.provider.APIKey)),
		anthropicoption.WithMaxRetries(0),
	}
	if endpoint := strings.TrimSpace(p.provider.Endpoint); endpoint != "" {
		opts = append(opts, anthropicoption.WithBaseURL(strings.TrimRight(endpoint, "/")))
	}

	client := anthropicclient.NewClient(opts...)
	params := anthropicclient.MessageNewParams{
		Model:     anthropicclient.Model(model),
		MaxTokens: completionMaxTokens,
		Messages: []anthropicclient.MessageParam{
			anthropicclient.NewUserMessage(anthropicclient.NewTextBlock(prompt)),
		},
	}
	if strings.TrimSpace(systemPrompt) != "" {
		params.System = []anthropicclient.TextBlockParam{{Text: systemPrompt}}
	}

	msg, err := client.Messages.New(ctx, params)
	if err != nil {
		return "", err
	}

	var full strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			full.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(full.String()) == "" {
		return "", errors.New("empty response from AI")
	}
	return full.String(), nil
}

func (p *providerClassifier) completeOpenAICompatible(ctx context.Context, systemPrompt, prompt string) (string, error) {
	endpoint := normalizeOpenAICompatibleEndpoint(p.provider.Endpoint)
	model := strings.TrimSpace(p.provider.DefaultModel)
	if model == "" {
		model = "gpt-4o-mini"
	}

	messages := make([]map[string]string, 0, 2)
	if strings.TrimSpace(systemPrompt) != "" {
		messages = append(messages, map[string]string{"role": "system", "content": systemPrompt})
	}
	messages = append(messages, map[string]string{"role": "user", "content": prompt})

	body, _ := json.Marshal(map[string]interface{}{
		"model":      model,
		"messages":   messages,
		"max_tokens": completionMaxTokens,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(p.provider.APIKey))
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("openai-compatible error: %s", strings.TrimSpace(string(respBody)))
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Error *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", err
	}
	if result.Error != nil && strings.TrimSpace(result.Error.Message) != "" {
		return "", fmt.Errorf("openai-compatible error: %s", result.Error.Message)
	}
	if len(result.Choices) == 0 {
		return "", errors.New("empty response from AI")
	}
	return result.Choices[0].Message.Content, nil
}

func isOpenAICompatibleProviderType(raw string) bool {
	t := normalizeProviderType(raw)
	return t == "openai-compatible" || t == "openaicompatible"
}

func isAnthropicProviderType(raw string) bool {
	return normalizeProviderType(raw) == "anthropic"
}

func normalizeProviderType(raw string) string {
	t := strings.ToLower(strings.TrimSpace(raw))
	t = strings.ReplaceAll(t, "_", "-")
	t = strings.ReplaceAll(t, " ", "")
	return t
}

func normalizeOpenAIBaseURL(raw string) string {
	base := strings.TrimSpace(raw)
	if base == "" {
		return ""
	}
	parsed, err := neturl.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return strings.TrimRight(base, "/")
	}

	path := strings.TrimRight(parsed.Path, "/")
	if !strings.HasSuffix(path, "/v1") {
		if path == "" {
			path = "/v1"
		} else {
			path += "/v1"
		}
	}
	parsed.Path = path
	return strings.TrimRight(parsed.String(), "/")
}

func normalizeOpenAICompatibleEndpoint(raw string) string {
	base := strings.TrimSpace(raw)
	if base == "" {
		return "https://api.openai.com"
	}

	parsed, err := neturl.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		cleaned := strings.TrimRight(base, "/")
		return strings.TrimSuffix(cleaned, "/v1")
	}

	path := strings.TrimRight(parsed.Path, "/")
	path = strings.TrimSuffix(path, "/v1")
	parsed.Path = path
	return strings.TrimRight(parsed.String(), "/")
}

// unmarshalAIJSON decodes model output that may arrive fenced in markdown
// code blocks or surrounded by prose.
func unmarshalAIJSON(raw string, out interface{}) error {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	if err := json.Unmarshal([]byte(cleaned), out); err == nil {
		return nil
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(cleaned[start:end+1]), out); err == nil {
			return nil
		}
	}

	return fmt.Errorf("invalid JSON response from AI")
}

func capStrings(in []string, max int) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
		if len(out) == max {
			break
		}
	}
	return out
}
