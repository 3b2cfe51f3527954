// Package assistant answers visitor questions about the profile owner using
// an OpenAI-compatible chat completion API (OpenRouter by default).
package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/apex/log"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Answerer produces one reply for one visitor question
type Answerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

// AnswerFunc adapts a function to Answerer
type AnswerFunc func(ctx context.Context, question string) (string, error)

// Answer calls f
func (f AnswerFunc) Answer(ctx context.Context, question string) (string, error) {
	return f(ctx, question)
}

// OpenRouterConfig holds configuration for the OpenRouter answerer.
type OpenRouterConfig struct {
	APIKey  string
	BaseURL string
	Model   string

	// Resume is the compact JSON document the assistant answers from
	Resume string
	// Name is the profile owner; Contact is who visitors are pointed to
	// when the resume has no answer.
	Name    string
	Contact string
}

// Defaults for OpenRouterConfig
const (
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	DefaultModel   = "arcee-ai/trinity-large-preview:free"
)

// OpenRouter implements Answerer on top of openai-go.
type OpenRouter struct {
	client *openai.Client
	model  string
	prompt string
	logger log.Interface
}

// NewOpenRouter creates an answerer. Extra request options are passed to
// the underlying client.
func NewOpenRouter(cfg OpenRouterConfig, opts ...option.RequestOption) (*OpenRouter, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	clientOpts := append([]option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(baseURL),
	}, opts...)
	client := openai.NewClient(clientOpts...)

	return &OpenRouter{
		client: &client,
		model:  model,
		prompt: SystemPrompt(cfg.Name, cfg.Contact, cfg.Resume),
		logger: log.Log,
	}, nil
}

// Model returns the configured model id
func (o *OpenRouter) Model() string {
	return o.model
}

// Prompt returns the system prompt sent with every question
func (o *OpenRouter) Prompt() string {
	return o.prompt
}

// Answer sends the system prompt and the question and returns the content
// of the first choice.
func (o *OpenRouter) Answer(ctx context.Context, question string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: o.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(o.prompt),
			openai.UserMessage(question),
		},
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openrouter chat failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openrouter returned no choices")
	}

	o.logger.WithFields(log.Fields{
		"model":  resp.Model,
		"tokens": resp.Usage.TotalTokens,
	}).Debug("answered")

	return resp.Choices[0].Message.Content, nil
}

// SystemPrompt builds the instruction that grounds answers in the resume.
func SystemPrompt(name, contact, resume string) string {
	if strings.TrimSpace(resume) == "" {
		resume = "{}"
	}
	if name == "" {
		name = "the site owner"
	}
	if contact == "" {
		contact = name
	}
	return fmt.Sprintf(
		"I am %s's AI assistant. Answer based on this data: %s. If not found, suggest contacting %s.",
		name, resume, contact,
	)
}
