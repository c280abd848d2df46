package nlu

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/reelpick/reelpick/internal/filter"
)

const parseSystemPrompt = `You extract movie search filters from user requests. ` +
	`Output only minified JSON matching this schema: ` +
	`{"query":str,"include_terms":[str],"exclude_terms":[str],"genres":[str],` +
	`"actors":[str],"directors":[str],"year":int|null,"year_from":int|null,` +
	`"year_to":int|null,"country":str|null}. ` +
	`Do not include any text before or after the JSON.`

const clarifyingSystemPrompt = `You are a helpful movie recommendation assistant.
The previous search returned zero results.
Ask the user ONE concise question to disambiguate or broaden their request.
Prefer asking about genre, year range, actors, directors, language/country, or willingness to relax constraints.
Keep it under 25 words. Output just the question.`

const narrowingSystemPrompt = `You are a helpful movie recommendation assistant.
The previous search returned many results.
Ask the user ONE concise question to help narrow down the list.
Suggest narrowing by sub-genre, year range, specific actors/directors, runtime, language/country, or exclusions.
Keep it under 25 words. Output just the question.`

const parseAttempts = 3

// Client talks to an OpenAI-compatible LLM backend. It implements both the
// filter-parsing and the question-generation provider contracts.
type Client struct {
	model  llms.Model
	logger *slog.Logger
}

// NewClient creates a Client from the given configuration.
func NewClient(config *Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	model, err := openai.New(
		openai.WithBaseURL(config.BaseURL),
		openai.WithToken(config.APIKey),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("creating LLM client: %w", err)
	}

	return &Client{
		model:  model,
		logger: slog.Default().With("component", "nlu"),
	}, nil
}

// ParseFilters extracts a filter update from free text and merges it onto
// prior. A backend failure is returned to the caller: there is no local
// fallback for natural-language understanding.
func (c *Client) ParseFilters(ctx context.Context, userText string, prior filter.Filter) (filter.Filter, error) {
	baseJSON, err := json.Marshal(prior)
	if err != nil {
		return filter.Filter{}, fmt.Errorf("encoding prior filters: %w", err)
	}

	userPrompt := "Base filters (use as defaults; override if user specifies):\n" +
		string(baseJSON) + "\nUser request: " + userText

	var lastErr error
	for attempt := 0; attempt < parseAttempts; attempt++ {
		text, err := c.chat(ctx, parseSystemPrompt, userPrompt,
			llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			return filter.Filter{}, fmt.Errorf("filter parsing failed: %w", err)
		}

		update, err := filter.Decode([]byte(stripCodeFences(text)))
		if err != nil {
			lastErr = err
			c.logger.Warn("malformed filter JSON from model",
				"attempt", attempt+1, "response", text, "err", err)
			continue
		}

		return filter.Merge(update, prior), nil
	}

	return filter.Filter{}, fmt.Errorf("filter parsing failed after %d attempts: %w", parseAttempts, lastErr)
}

// ClarifyingQuestion asks the model for a short broadening question after a
// zero-result search. An empty string means the caller should fall back to
// its static prompt.
func (c *Client) ClarifyingQuestion(ctx context.Context, userText string, f filter.Filter) (string, error) {
	return c.question(ctx, clarifyingSystemPrompt, userText, f, 0)
}

// NarrowingQuestion asks the model for a short narrowing question when a
// search returned many results.
func (c *Client) NarrowingQuestion(ctx context.Context, userText string, f filter.Filter, total int) (string, error) {
	return c.question(ctx, narrowingSystemPrompt, userText, f, total)
}

func (c *Client) question(ctx context.Context, systemPrompt, userText string, f filter.Filter, total int) (string, error) {
	filtersJSON, err := json.Marshal(f)
	if err != nil {
		return "", fmt.Errorf("encoding filters: %w", err)
	}

	var userPrompt strings.Builder
	if total > 0 {
		fmt.Fprintf(&userPrompt, "Total results: %d\n", total)
	}
	userPrompt.WriteString("User request: " + userText + "\n")
	userPrompt.WriteString("Current filters (JSON):\n" + string(filtersJSON))

	text, err := c.chat(ctx, systemPrompt, userPrompt.String(),
		llms.WithTemperature(0.2), llms.WithMaxTokens(64))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (c *Client) chat(ctx context.Context, systemPrompt, userPrompt string, opts ...llms.CallOption) (string, error) {
	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(systemPrompt)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(userPrompt)},
		},
	}

	response, err := c.model.GenerateContent(ctx, content, opts...)
	if err != nil {
		return "", err
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from model")
	}
	return response.Choices[0].Content, nil
}

// stripCodeFences removes markdown fences some models wrap JSON in.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}
